// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package sstable reads a single LevelDB-format sorted table: the 48-byte
// footer, the index block, and the prefix-compressed data blocks it points
// to.
package sstable

import (
	"context"
	"encoding/binary"

	"github.com/cockroachdb/crlib/fifo"
	"github.com/cockroachdb/errors"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"

	"github.com/lvyitian/minet-leveldb/internal/base"
	"github.com/lvyitian/minet-leveldb/internal/crc"
	"github.com/lvyitian/minet-leveldb/internal/vfs"
)

func leU32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }

// checksumOf computes the masked CRC32C checksum a block trailer stores: it
// covers the compressed block data followed by the one-byte compression
// type.
func checksumOf(blockType byte, compressed []byte) uint32 {
	return crc.New(compressed).Update([]byte{blockType}).Value()
}

const (
	footerLen = 48
	magic     = "\x57\xfb\x80\x8b\x24\x75\x47\xdb"

	blockTrailerLen = 5

	noCompressionBlockType     byte = 0
	snappyCompressionBlockType byte = 1
	zstdCompressionBlockType   byte = 2
)

// Reader reads key/value pairs out of a single on-disk table. A Reader is
// safe for concurrent use by multiple goroutines: readBlock only reads from
// the underlying file and its own immutable fields.
type Reader struct {
	file  vfs.File
	index block
	cmp   base.Comparer
	icmp  icmp

	// sema bounds concurrent block decompression to cap peak memory use. A
	// nil sema (Options.DecompressionConcurrency == 0) means unbounded.
	sema *fifo.Semaphore

	zstdDecoder *zstd.Decoder
}

// Options configures a Reader. The zero value is valid and uses the
// database's default comparer with no concurrency bound.
type Options struct {
	Comparer                 base.Comparer
	DecompressionConcurrency int64
}

// NewReader opens f as a table, reading and validating its footer and index
// block. Closing the returned Reader closes f.
func NewReader(f vfs.File, opts Options) (*Reader, error) {
	cmp := opts.Comparer
	if cmp == nil {
		cmp = base.DefaultComparer
	}
	r := &Reader{file: f, cmp: cmp, icmp: icmp{ucmp: cmp}}
	if opts.DecompressionConcurrency > 0 {
		r.sema = fifo.NewSemaphore(opts.DecompressionConcurrency)
	}
	zr, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	r.zstdDecoder = zr

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if stat.Size() < footerLen {
		return nil, base.Corruption(base.BadTableMagic, "table file is smaller than the footer")
	}

	var footer [footerLen]byte
	if _, err := f.ReadAt(footer[:], stat.Size()-footerLen); err != nil {
		return nil, err
	}
	if string(footer[footerLen-len(magic):]) != magic {
		return nil, base.Corruption(base.BadTableMagic, "bad table magic number")
	}

	_, n := decodeBlockHandle(footer[:])
	if n == 0 {
		return nil, base.Corruption(base.BadTableMagic, "bad metaindex block handle")
	}
	indexBH, m := decodeBlockHandle(footer[n:])
	if m == 0 {
		return nil, base.Corruption(base.BadTableMagic, "bad index block handle")
	}

	r.index, err = r.readBlock(context.Background(), indexBH)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	if r.zstdDecoder != nil {
		r.zstdDecoder.Close()
	}
	return r.file.Close()
}

// Get looks up seekKey — an internal key, typically built with
// base.MakeSearchKey so it sorts before every real internal key sharing its
// user key — by binary-searching the index block for the candidate data
// block, binary-searching that block's restarts, then scanning forward for
// the first entry whose user key matches.
func (r *Reader) Get(ctx context.Context, seekKey base.InternalKey) (base.GetResult, error) {
	encoded := seekKey.EncodeTo()

	idx, err := r.index.seek(r.icmp, encoded)
	if err != nil {
		return base.GetResult{}, err
	}
	if !idx.next() {
		return base.GetResult{Kind: base.NotFound}, nil
	}
	bh, n := decodeBlockHandle(idx.Value())
	if n == 0 {
		return base.GetResult{}, base.Corruption(base.BadRestart, "corrupt index entry")
	}

	data, err := r.readBlock(ctx, bh)
	if err != nil {
		return base.GetResult{}, err
	}
	it, err := data.seek(r.icmp, encoded)
	if err != nil {
		return base.GetResult{}, err
	}
	if !it.next() {
		return base.GetResult{Kind: base.NotFound}, nil
	}

	ikey, ok := base.DecodeInternalKey(it.Key())
	if !ok {
		return base.GetResult{}, base.Corruption(base.BadInternalKey, "table entry key too short")
	}
	if r.cmp.Compare(ikey.UserKey, seekKey.UserKey) != 0 {
		// The nearest entry belongs to a different user key: the sought key
		// is absent from this table.
		return base.GetResult{Kind: base.NotFound}, nil
	}
	switch ikey.Trailer.Kind() {
	case base.ValueKindDeletion:
		return base.GetResult{Kind: base.Deleted}, nil
	case base.ValueKindValue:
		val := it.Value()
		return base.GetResult{Kind: base.Found, Value: append([]byte(nil), val...)}, nil
	default:
		return base.GetResult{}, base.Corruption(base.BadInternalKey, "unknown value kind %#02x", byte(ikey.Trailer.Kind()))
	}
}

// readBlock reads, checksum-verifies, and decompresses the block at bh.
func (r *Reader) readBlock(ctx context.Context, bh BlockHandle) (block, error) {
	b := make([]byte, bh.Length+blockTrailerLen)
	if _, err := r.file.ReadAt(b, int64(bh.Offset)); err != nil {
		return nil, err
	}

	compressed := b[:bh.Length]
	blockType := b[bh.Length]
	wantChecksum := leU32(b[bh.Length+1:])
	gotChecksum := checksumOf(blockType, compressed)
	if gotChecksum != wantChecksum {
		return nil, base.Corruption(base.BadBlockChecksum, "block at offset %d failed checksum", bh.Offset)
	}

	if r.sema != nil {
		if err := r.sema.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		defer r.sema.Release(1)
	}

	switch blockType {
	case noCompressionBlockType:
		return block(compressed), nil
	case snappyCompressionBlockType:
		decoded, err := snappy.Decode(nil, compressed)
		if err != nil {
			return nil, err
		}
		return block(decoded), nil
	case zstdCompressionBlockType:
		decoded, err := r.zstdDecoder.DecodeAll(compressed, nil)
		if err != nil {
			return nil, err
		}
		return block(decoded), nil
	default:
		return nil, errors.Mark(
			base.Corruption(base.BadBlockTrailer, "unknown block compression type %d", blockType),
			base.ErrUnsupportedCompression)
	}
}
