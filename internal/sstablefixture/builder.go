// Copyright 2011 The LevelDB-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sstablefixture builds LevelDB-format sorted tables in memory, for
// tests that need a real table to read back rather than a hand-assembled
// byte slice. Production code never writes a table; this package exists
// solely to construct fixtures.
package sstablefixture

import (
	"encoding/binary"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"

	"github.com/lvyitian/minet-leveldb/internal/base"
	"github.com/lvyitian/minet-leveldb/internal/crc"
)

const (
	blockTrailerLen = 5
	footerLen       = 48
	magic           = "\x57\xfb\x80\x8b\x24\x75\x47\xdb"

	// NoCompression, SnappyCompression, and ZstdCompression name the block
	// types sstable.Reader knows how to decode. They match its unexported
	// noCompressionBlockType/snappyCompressionBlockType/
	// zstdCompressionBlockType constants byte-for-byte.
	NoCompression     = byte(0)
	SnappyCompression = byte(1)
	ZstdCompression   = byte(2)

	// restartInterval is one restart point per 16 entries.
	restartInterval = 16
	// blockSize is the estimated size, in bytes, at which Add starts a new
	// data block.
	blockSize = 4096
)

type blockHandle struct{ offset, length uint64 }

func encodeBlockHandle(dst []byte, bh blockHandle) []byte {
	dst = base.PutVarint(dst, bh.offset)
	dst = base.PutVarint(dst, bh.length)
	return dst
}

// Builder assembles a single sorted table. Keys must be Add-ed in strictly
// increasing internal-key order, as a real table writer requires.
type Builder struct {
	buf    []byte
	offset uint64

	// compression is the block type every data block is written under.
	// The metaindex and index blocks are always written uncompressed.
	compression byte

	data     []byte
	restarts []uint32
	nEntries int
	prevKey  []byte

	indexKeys    [][]byte
	indexHandles []blockHandle

	pendingBH    blockHandle
	pendingFirst []byte
}

// New returns an empty Builder whose data blocks are written
// uncompressed.
func New() *Builder { return &Builder{compression: NoCompression} }

// NewCompressed returns an empty Builder whose data blocks are written
// compressed under blockType (SnappyCompression or ZstdCompression).
func NewCompressed(blockType byte) *Builder { return &Builder{compression: blockType} }

// Add appends a key/value pair. key.UserKey ‖ key.Trailer must sort after
// every previously added key.
func (b *Builder) Add(key base.InternalKey, value []byte) {
	encoded := key.EncodeTo()
	b.flushPendingIndexEntry()
	b.append(encoded, value)
	if len(b.data)+4*(len(b.restarts)+1) >= blockSize {
		bh := b.finishBlock(true)
		b.pendingBH = bh
	}
}

// flushPendingIndexEntry records the index entry for a just-finished data
// block. This fixture builder uses the block's own last key as the index
// separator (rather than a shortest separator between blocks), which is
// correct as long as every table key is unique.
func (b *Builder) flushPendingIndexEntry() {
	if b.pendingBH.length == 0 {
		return
	}
	b.indexKeys = append(b.indexKeys, append([]byte(nil), b.pendingFirst...))
	b.indexHandles = append(b.indexHandles, b.pendingBH)
	b.pendingBH = blockHandle{}
}

func (b *Builder) append(encoded, value []byte) {
	restart := b.nEntries%restartInterval == 0
	shared := 0
	if restart {
		b.restarts = append(b.restarts, uint32(len(b.data)))
	} else {
		shared = sharedPrefixLen(b.prevKey, encoded)
	}
	var tmp [3 * binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], uint64(shared))
	n += binary.PutUvarint(tmp[n:], uint64(len(encoded)-shared))
	n += binary.PutUvarint(tmp[n:], uint64(len(value)))
	b.data = append(b.data, tmp[:n]...)
	b.data = append(b.data, encoded[shared:]...)
	b.data = append(b.data, value...)
	b.prevKey = append(b.prevKey[:0], encoded...)
	b.nEntries++
}

func sharedPrefixLen(a, b []byte) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// finishDataBlock finishes the current block with no compression. Used
// for the metaindex and index blocks, which the real table writer never
// compresses.
func (b *Builder) finishDataBlock() blockHandle { return b.finishBlock(false) }

// finishBlock appends the restart-point array and count to the pending
// block, then writes it out. compress selects whether the block is
// written under b.compression (for a real data block) or left
// uncompressed (for the metaindex and index blocks).
func (b *Builder) finishBlock(compress bool) blockHandle {
	if b.nEntries == 0 {
		b.restarts = append(b.restarts, 0)
	}
	for _, r := range b.restarts {
		var tmp [4]byte
		binary.LittleEndian.PutUint32(tmp[:], r)
		b.data = append(b.data, tmp[:]...)
	}
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(len(b.restarts)))
	b.data = append(b.data, tmp[:]...)

	blockType := NoCompression
	if compress {
		blockType = b.compression
	}
	bh := b.writeBlock(b.data, blockType)

	b.pendingFirst = append(b.pendingFirst[:0], b.prevKey...)
	b.data = b.data[:0]
	b.restarts = b.restarts[:0]
	b.nEntries = 0
	b.prevKey = b.prevKey[:0]
	return bh
}

// writeBlock compresses data under blockType (if not NoCompression),
// appends the result to buf, and appends a trailer: the block type byte
// followed by the masked CRC32C checksum over the (possibly compressed)
// payload and that type byte, matching sstable.Reader's readBlock.
func (b *Builder) writeBlock(data []byte, blockType byte) blockHandle {
	payload := data
	switch blockType {
	case SnappyCompression:
		payload = snappy.Encode(nil, data)
	case ZstdCompression:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			panic(err)
		}
		payload = enc.EncodeAll(data, nil)
		enc.Close()
	}

	bh := blockHandle{offset: b.offset, length: uint64(len(payload))}
	b.buf = append(b.buf, payload...)
	checksum := crc.New(payload).Update([]byte{blockType}).Value()
	var tmp [blockTrailerLen]byte
	tmp[0] = blockType
	binary.LittleEndian.PutUint32(tmp[1:], checksum)
	b.buf = append(b.buf, tmp[:]...)
	b.offset += uint64(len(payload)) + blockTrailerLen
	return bh
}

// Finish closes out the last data block, writes an empty metaindex block,
// the index block, and the footer, and returns the complete table bytes.
func (b *Builder) Finish() []byte {
	if b.nEntries > 0 || len(b.indexHandles) == 0 {
		bh := b.finishBlock(true)
		b.pendingBH = bh
	}
	b.flushPendingIndexEntry()

	metaindexBH := b.finishDataBlock()

	for i, key := range b.indexKeys {
		var tmp []byte
		tmp = encodeBlockHandle(tmp, b.indexHandles[i])
		b.append(key, tmp)
	}
	indexBH := b.finishDataBlock()

	footer := make([]byte, footerLen)
	n := copy(footer, encodeBlockHandle(nil, metaindexBH))
	copy(footer[n:], encodeBlockHandle(nil, indexBH))
	copy(footer[footerLen-len(magic):], magic)
	b.buf = append(b.buf, footer...)

	return b.buf
}
