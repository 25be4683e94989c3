// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstable

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/lvyitian/minet-leveldb/internal/base"
	"github.com/lvyitian/minet-leveldb/internal/sstablefixture"
	"github.com/lvyitian/minet-leveldb/internal/vfs/memfs"
)

func openFixture(t *testing.T, data []byte) *Reader {
	fs := memfs.New()
	fs.Create("table.ldb", data)
	f, err := fs.Open("table.ldb")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	r, err := NewReader(f, Options{})
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestReaderGetSingleBlock(t *testing.T) {
	b := sstablefixture.New()
	b.Add(base.MakeInternalKey([]byte("apple"), 3, base.ValueKindValue), []byte("red"))
	b.Add(base.MakeInternalKey([]byte("banana"), 2, base.ValueKindDeletion), nil)
	b.Add(base.MakeInternalKey([]byte("cherry"), 1, base.ValueKindValue), []byte("dark red"))

	r := openFixture(t, b.Finish())

	res, err := r.Get(context.Background(), base.MakeSearchKey([]byte("apple")))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if res.Kind != base.Found || string(res.Value) != "red" {
		t.Errorf("got %v %q, want Found %q", res.Kind, res.Value, "red")
	}

	res, err = r.Get(context.Background(), base.MakeSearchKey([]byte("banana")))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if res.Kind != base.Deleted {
		t.Errorf("got %v, want Deleted", res.Kind)
	}

	res, err = r.Get(context.Background(), base.MakeSearchKey([]byte("does-not-exist")))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if res.Kind != base.NotFound {
		t.Errorf("got %v, want NotFound", res.Kind)
	}
}

// TestReaderGetAcrossManyBlocks adds enough keys that the fixture spans
// several data blocks and an index with several entries, exercising the
// index block's own binary search in block.seek.
func TestReaderGetAcrossManyBlocks(t *testing.T) {
	b := sstablefixture.New()
	const n = 2000
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("key-%05d", i)
		val := fmt.Sprintf("value-%05d", i)
		b.Add(base.MakeInternalKey([]byte(key), base.SeqNum(i+1), base.ValueKindValue), []byte(val))
	}
	data := b.Finish()
	if len(data) < 8192 {
		t.Fatalf("fixture too small to exercise multiple blocks (%d bytes)", len(data))
	}
	r := openFixture(t, data)

	for _, i := range []int{0, 1, 500, 999, 1500, n - 1} {
		key := fmt.Sprintf("key-%05d", i)
		want := fmt.Sprintf("value-%05d", i)
		res, err := r.Get(context.Background(), base.MakeSearchKey([]byte(key)))
		if err != nil {
			t.Fatalf("Get(%q): %v", key, err)
		}
		if res.Kind != base.Found || string(res.Value) != want {
			t.Errorf("Get(%q): got %v %q, want Found %q", key, res.Kind, res.Value, want)
		}
	}

	res, err := r.Get(context.Background(), base.MakeSearchKey([]byte("key-99999")))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if res.Kind != base.NotFound {
		t.Errorf("got %v, want NotFound", res.Kind)
	}
}

func TestReaderGetRespectsNewestSequenceNumber(t *testing.T) {
	b := sstablefixture.New()
	// Internal keys sort newest-sequence-first for a shared user key.
	b.Add(base.MakeInternalKey([]byte("k"), 5, base.ValueKindValue), []byte("new"))
	b.Add(base.MakeInternalKey([]byte("k"), 1, base.ValueKindValue), []byte("old"))

	r := openFixture(t, b.Finish())
	res, err := r.Get(context.Background(), base.MakeSearchKey([]byte("k")))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if res.Kind != base.Found || string(res.Value) != "new" {
		t.Errorf("got %v %q, want Found %q", res.Kind, res.Value, "new")
	}
}

func TestReaderRejectsBadMagic(t *testing.T) {
	fs := memfs.New()
	fs.Create("table.ldb", make([]byte, footerLen))
	f, err := fs.Open("table.ldb")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_, err = NewReader(f, Options{})
	if kind, ok := base.CorruptionKindOf(err); !ok || kind != base.BadTableMagic {
		t.Errorf("got %v, want BadTableMagic corruption", err)
	}
}

func TestReaderDetectsBlockChecksumCorruption(t *testing.T) {
	b := sstablefixture.New()
	b.Add(base.MakeInternalKey([]byte("a"), 1, base.ValueKindValue), []byte("1"))
	data := b.Finish()
	data[0] ^= 0xff // corrupt the first data block's payload

	r := openFixture(t, data)
	_, err := r.Get(context.Background(), base.MakeSearchKey([]byte("a")))
	if kind, ok := base.CorruptionKindOf(err); !ok || kind != base.BadBlockChecksum {
		t.Errorf("got %v, want BadBlockChecksum corruption", err)
	}
}

// TestReaderGetCompressedBlock builds a table whose data block is
// actually snappy- or zstd-compressed (rather than every fixture in this
// file using noCompressionBlockType) and confirms Get decompresses it
// and returns the right value.
func TestReaderGetCompressedBlock(t *testing.T) {
	for _, tc := range []struct {
		name       string
		compressor byte
	}{
		{"snappy", sstablefixture.SnappyCompression},
		{"zstd", sstablefixture.ZstdCompression},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b := sstablefixture.NewCompressed(tc.compressor)
			b.Add(base.MakeInternalKey([]byte("apple"), 3, base.ValueKindValue), []byte("red"))
			b.Add(base.MakeInternalKey([]byte("banana"), 2, base.ValueKindDeletion), nil)
			b.Add(base.MakeInternalKey([]byte("cherry"), 1, base.ValueKindValue),
				[]byte(strings.Repeat("dark red ", 64))) // long enough that compression actually shrinks it

			r := openFixture(t, b.Finish())

			res, err := r.Get(context.Background(), base.MakeSearchKey([]byte("apple")))
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if res.Kind != base.Found || string(res.Value) != "red" {
				t.Errorf("got %v %q, want Found %q", res.Kind, res.Value, "red")
			}

			res, err = r.Get(context.Background(), base.MakeSearchKey([]byte("banana")))
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if res.Kind != base.Deleted {
				t.Errorf("got %v, want Deleted", res.Kind)
			}

			res, err = r.Get(context.Background(), base.MakeSearchKey([]byte("cherry")))
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if res.Kind != base.Found || string(res.Value) != strings.Repeat("dark red ", 64) {
				t.Errorf("got %v %q, want Found the repeated value", res.Kind, res.Value)
			}
		})
	}
}

// TestReaderDetectsCompressedBlockChecksumCorruption mirrors
// TestReaderDetectsBlockChecksumCorruption, but against a compressed
// block: flipping a byte in the compressed payload must still fail the
// checksum check before decompression is ever attempted.
func TestReaderDetectsCompressedBlockChecksumCorruption(t *testing.T) {
	for _, tc := range []struct {
		name       string
		compressor byte
	}{
		{"snappy", sstablefixture.SnappyCompression},
		{"zstd", sstablefixture.ZstdCompression},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b := sstablefixture.NewCompressed(tc.compressor)
			b.Add(base.MakeInternalKey([]byte("a"), 1, base.ValueKindValue), []byte("1"))
			data := b.Finish()
			data[0] ^= 0xff // corrupt the first data block's compressed payload

			r := openFixture(t, data)
			_, err := r.Get(context.Background(), base.MakeSearchKey([]byte("a")))
			if kind, ok := base.CorruptionKindOf(err); !ok || kind != base.BadBlockChecksum {
				t.Errorf("got %v, want BadBlockChecksum corruption", err)
			}
		})
	}
}
