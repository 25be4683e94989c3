// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import "encoding/binary"

// Span is a cursor over an immutable byte slice, used throughout the table
// reader, the manifest decoder, and the log record reader for decoding
// fixed ints, varints, and length-prefixed byte strings out of a fixed
// buffer. Every read method advances the cursor only on success; an
// over-read leaves the cursor untouched and returns false so callers can
// report Corruption with the context they have.
type Span struct {
	b   []byte
	pos int
}

// NewSpan wraps b for reading. The returned Span borrows b; it does not
// copy it.
func NewSpan(b []byte) Span { return Span{b: b} }

// Remaining returns the unread suffix of the span.
func (s *Span) Remaining() []byte { return s.b[s.pos:] }

// Eof reports whether every byte of the span has been consumed.
func (s *Span) Eof() bool { return s.pos >= len(s.b) }

// Pos returns the current cursor offset.
func (s *Span) Pos() int { return s.pos }

// Skip advances the cursor by n bytes. It returns false, leaving the cursor
// unmoved, if fewer than n bytes remain.
func (s *Span) Skip(n int) bool {
	if n < 0 || s.pos+n > len(s.b) {
		return false
	}
	s.pos += n
	return true
}

// ReadU8 reads one byte.
func (s *Span) ReadU8() (byte, bool) {
	if s.pos >= len(s.b) {
		return 0, false
	}
	v := s.b[s.pos]
	s.pos++
	return v, true
}

// ReadU32LE reads a 4-byte little-endian unsigned integer.
func (s *Span) ReadU32LE() (uint32, bool) {
	if s.pos+4 > len(s.b) {
		return 0, false
	}
	v := binary.LittleEndian.Uint32(s.b[s.pos:])
	s.pos += 4
	return v, true
}

// ReadI32LE reads a 4-byte little-endian signed integer.
func (s *Span) ReadI32LE() (int32, bool) {
	if s.pos+4 > len(s.b) {
		return 0, false
	}
	v := int32(binary.LittleEndian.Uint32(s.b[s.pos:]))
	s.pos += 4
	return v, true
}

// ReadU64LE reads an 8-byte little-endian unsigned integer.
func (s *Span) ReadU64LE() (uint64, bool) {
	if s.pos+8 > len(s.b) {
		return 0, false
	}
	v := binary.LittleEndian.Uint64(s.b[s.pos:])
	s.pos += 8
	return v, true
}

// ReadVarint reads an unsigned LEB128 varint of up to 10 bytes, as produced
// by encoding/binary.PutUvarint.
func (s *Span) ReadVarint() (uint64, bool) {
	v, n := binary.Uvarint(s.b[s.pos:])
	if n <= 0 {
		return 0, false
	}
	s.pos += n
	return v, true
}

// ReadLengthPrefixedBytes reads a varint length followed by that many
// bytes, returning a sub-slice that borrows the span's backing array.
func (s *Span) ReadLengthPrefixedBytes() ([]byte, bool) {
	mark := s.pos
	n, ok := s.ReadVarint()
	if !ok {
		return nil, false
	}
	if n > uint64(len(s.b)-s.pos) {
		s.pos = mark
		return nil, false
	}
	start := s.pos
	s.pos += int(n)
	return s.b[start:s.pos:s.pos], true
}

// ReadLengthPrefixedString is ReadLengthPrefixedBytes interpreted as a
// string (a copy, since Go strings are immutable).
func (s *Span) ReadLengthPrefixedString() (string, bool) {
	b, ok := s.ReadLengthPrefixedBytes()
	if !ok {
		return "", false
	}
	return string(b), true
}

// PutVarint appends the varint encoding of v to dst and returns the
// extended slice. It exists alongside the Span reader so that test fixture
// construction (building a manifest or log record to read back) uses the
// same primitive the decoder does.
func PutVarint(dst []byte, v uint64) []byte {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	return append(dst, buf[:n]...)
}

// PutLengthPrefixedBytes appends a varint length followed by p to dst.
func PutLengthPrefixedBytes(dst []byte, p []byte) []byte {
	dst = PutVarint(dst, uint64(len(p)))
	return append(dst, p...)
}
