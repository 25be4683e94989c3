// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstable

import (
	"encoding/binary"
	"sort"

	"github.com/lvyitian/minet-leveldb/internal/base"
)

// BlockHandle is the file offset and length of a block, as stored varint-
// encoded in the footer and in index block entries.
type BlockHandle struct {
	Offset, Length uint64
}

// decodeBlockHandle returns the block handle encoded at the start of src and
// the number of bytes it occupies, or n == 0 on malformed input.
func decodeBlockHandle(src []byte) (BlockHandle, int) {
	offset, n := binary.Uvarint(src)
	if n <= 0 {
		return BlockHandle{}, 0
	}
	length, m := binary.Uvarint(src[n:])
	if m <= 0 {
		return BlockHandle{}, 0
	}
	return BlockHandle{offset, length}, n + m
}

// block is a decompressed, checksum-verified data or index block: a
// sequence of prefix-compressed key/value entries, followed by a restart
// point offset array and a restart count.
type block []byte

// icmp wraps a user-key Comparer so block.seek and blockIter can compare
// raw entry keys, which are always full internal keys, using internal-key
// ordering (user key first, then descending trailer).
type icmp struct{ ucmp base.Comparer }

func (c icmp) compare(a, b []byte) int {
	ia, _ := base.DecodeInternalKey(a)
	ib, _ := base.DecodeInternalKey(b)
	return base.Compare(c.ucmp, ia, ib)
}

// seek returns a blockIter positioned at the first entry whose key is >=
// key, by binary-searching restart points for the last one whose key is <=
// key, then linearly scanning forward from there.
func (b block) seek(c icmp, key []byte) (*blockIter, error) {
	if len(b) < 4 {
		return nil, base.Corruption(base.TruncatedBlock, "block too short to hold a restart count")
	}
	numRestarts := int(binary.LittleEndian.Uint32(b[len(b)-4:]))
	if numRestarts == 0 {
		return nil, base.Corruption(base.BadRestart, "block has no restart points")
	}
	n := len(b) - 4*(1+numRestarts)
	if n < 0 {
		return nil, base.Corruption(base.BadRestart, "restart array overflows block")
	}

	var offset int
	if len(key) > 0 {
		index := sort.Search(numRestarts, func(i int) bool {
			o := int(binary.LittleEndian.Uint32(b[n+4*i:]))
			// A restart point entry has zero bytes shared with the previous
			// key; the varint encoding of 0 is one byte.
			o++
			v1, n1 := binary.Uvarint(b[o:])
			_, n2 := binary.Uvarint(b[o+n1:])
			m := o + n1 + n2
			return c.compare(b[m:m+int(v1)], key) > 0
		})
		if index > 0 {
			offset = int(binary.LittleEndian.Uint32(b[n+4*(index-1):]))
		}
	}

	it := &blockIter{data: b[offset:n], key: make([]byte, 0, 256)}
	for it.next() && c.compare(it.key, key) < 0 {
	}
	if it.err != nil {
		return nil, it.err
	}
	it.started = !it.done
	return it, nil
}

// blockIter iterates the prefix-compressed entries of a single block,
// starting from wherever seek positioned it.
type blockIter struct {
	data     []byte
	key, val []byte
	err      error
	started  bool
	done     bool
}

// next decodes the next entry. It is unexported: the table reader only
// ever needs the entry seek already positioned at, or iterates forward one
// step at a time looking for an exact match.
func (it *blockIter) next() bool {
	if it.done || it.err != nil {
		return false
	}
	if it.started {
		it.started = false
		return true
	}
	if len(it.data) == 0 {
		it.done = true
		return false
	}
	shared, n0 := binary.Uvarint(it.data)
	unshared, n1 := binary.Uvarint(it.data[n0:])
	valueLen, n2 := binary.Uvarint(it.data[n0+n1:])
	if n0 <= 0 || n1 <= 0 || n2 <= 0 {
		it.err = base.Corruption(base.BadRestart, "malformed entry header")
		it.done = true
		return false
	}
	n := n0 + n1 + n2
	if uint64(n)+unshared+valueLen > uint64(len(it.data)) {
		it.err = base.Corruption(base.TruncatedBlock, "entry overflows block")
		it.done = true
		return false
	}
	if shared > uint64(len(it.key)) {
		it.err = base.Corruption(base.BadRestart, "shared prefix longer than previous key")
		it.done = true
		return false
	}
	it.key = append(it.key[:shared], it.data[n:n+int(unshared)]...)
	it.val = it.data[n+int(unshared) : n+int(unshared+valueLen)]
	it.data = it.data[n+int(unshared+valueLen):]
	return true
}

// Key returns the current entry's raw (internal) key.
func (it *blockIter) Key() []byte { return it.key }

// Value returns the current entry's value.
func (it *blockIter) Value() []byte { return it.val }
