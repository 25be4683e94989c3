// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import "testing"

func TestSpanU8U32U64(t *testing.T) {
	var buf []byte
	buf = append(buf, 0x7f)
	buf = append(buf, 0x01, 0x00, 0x00, 0x00)
	buf = append(buf, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00)

	s := NewSpan(buf)
	u8, ok := s.ReadU8()
	if !ok || u8 != 0x7f {
		t.Fatalf("ReadU8: got %v, %v", u8, ok)
	}
	u32, ok := s.ReadU32LE()
	if !ok || u32 != 1 {
		t.Fatalf("ReadU32LE: got %v, %v", u32, ok)
	}
	u64, ok := s.ReadU64LE()
	if !ok || u64 != 2 {
		t.Fatalf("ReadU64LE: got %v, %v", u64, ok)
	}
	if !s.Eof() {
		t.Fatalf("expected Eof after reading every byte")
	}
}

func TestSpanI32LE(t *testing.T) {
	var buf []byte
	buf = append(buf, 0xfe, 0xff, 0xff, 0xff) // -2, little-endian
	buf = append(buf, 0x2a, 0x00, 0x00, 0x00) // 42

	s := NewSpan(buf)
	v, ok := s.ReadI32LE()
	if !ok || v != -2 {
		t.Fatalf("ReadI32LE: got %v, %v, want -2", v, ok)
	}
	v, ok = s.ReadI32LE()
	if !ok || v != 42 {
		t.Fatalf("ReadI32LE: got %v, %v, want 42", v, ok)
	}
	if !s.Eof() {
		t.Fatalf("expected Eof after reading every byte")
	}
}

func TestSpanI32LEOverreadLeavesCursorUnmoved(t *testing.T) {
	s := NewSpan([]byte{0x01, 0x02})
	before := s.Pos()
	if _, ok := s.ReadI32LE(); ok {
		t.Fatalf("expected ReadI32LE to fail on a 2-byte span")
	}
	if s.Pos() != before {
		t.Fatalf("failed read moved the cursor: got %d, want %d", s.Pos(), before)
	}
}

func TestSpanOverreadLeavesCursorUnmoved(t *testing.T) {
	s := NewSpan([]byte{0x01, 0x02})
	before := s.Pos()
	if _, ok := s.ReadU32LE(); ok {
		t.Fatalf("expected ReadU32LE to fail on a 2-byte span")
	}
	if s.Pos() != before {
		t.Fatalf("failed read moved the cursor: got %d, want %d", s.Pos(), before)
	}
	if _, ok := s.ReadU64LE(); ok {
		t.Fatalf("expected ReadU64LE to fail on a 2-byte span")
	}
	if s.Pos() != before {
		t.Fatalf("failed read moved the cursor: got %d, want %d", s.Pos(), before)
	}
}

func TestSpanVarintRoundTrip(t *testing.T) {
	vals := []uint64{0, 1, 127, 128, 300, 1 << 20, 1<<64 - 1}
	var buf []byte
	for _, v := range vals {
		buf = PutVarint(buf, v)
	}
	s := NewSpan(buf)
	for _, want := range vals {
		got, ok := s.ReadVarint()
		if !ok {
			t.Fatalf("ReadVarint failed before consuming every value")
		}
		if got != want {
			t.Errorf("got %d, want %d", got, want)
		}
	}
	if !s.Eof() {
		t.Errorf("expected Eof after consuming every varint")
	}
}

func TestSpanVarintOverreadFails(t *testing.T) {
	s := NewSpan(nil)
	if _, ok := s.ReadVarint(); ok {
		t.Fatalf("expected ReadVarint to fail on an empty span")
	}
}

func TestSpanLengthPrefixedBytes(t *testing.T) {
	var buf []byte
	buf = PutLengthPrefixedBytes(buf, []byte("foo"))
	buf = PutLengthPrefixedBytes(buf, nil)
	buf = PutLengthPrefixedBytes(buf, []byte("bar"))

	s := NewSpan(buf)
	got, ok := s.ReadLengthPrefixedBytes()
	if !ok || string(got) != "foo" {
		t.Fatalf("got %q, %v, want %q", got, ok, "foo")
	}
	got, ok = s.ReadLengthPrefixedBytes()
	if !ok || len(got) != 0 {
		t.Fatalf("got %q, %v, want empty", got, ok)
	}
	str, ok := s.ReadLengthPrefixedString()
	if !ok || str != "bar" {
		t.Fatalf("got %q, %v, want %q", str, ok, "bar")
	}
	if !s.Eof() {
		t.Errorf("expected Eof after consuming every entry")
	}
}

func TestSpanLengthPrefixedBytesOverreadFails(t *testing.T) {
	var buf []byte
	buf = PutVarint(buf, 10) // claims 10 bytes follow, but none do
	s := NewSpan(buf)
	if _, ok := s.ReadLengthPrefixedBytes(); ok {
		t.Fatalf("expected ReadLengthPrefixedBytes to fail when the length overruns the span")
	}
}

func TestSpanSkip(t *testing.T) {
	s := NewSpan([]byte("hello world"))
	if !s.Skip(6) {
		t.Fatalf("Skip(6) failed")
	}
	if string(s.Remaining()) != "world" {
		t.Errorf("got %q, want %q", s.Remaining(), "world")
	}
	if s.Skip(-1) {
		t.Errorf("expected Skip(-1) to fail")
	}
	if s.Skip(100) {
		t.Errorf("expected Skip(100) to fail past the end of the span")
	}
}
