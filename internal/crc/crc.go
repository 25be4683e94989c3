// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package crc implements the checksum used throughout the on-disk format:
// CRC-32 with the Castagnoli polynomial, finished with the mask described in
// leveldb/util/crc32c.h so that checksums of nearly-equal strings are not
// nearly equal.
package crc

import "hash/crc32"

var table = crc32.MakeTable(crc32.Castagnoli)

// CRC is an unmasked CRC-32C checksum in progress.
type CRC uint32

// New returns the CRC-32C checksum of b.
func New(b []byte) CRC {
	return CRC(0).Update(b)
}

// Update adds the bytes in p to the checksum.
func (c CRC) Update(p []byte) CRC {
	return CRC(crc32.Update(uint32(c), table, p))
}

// Value returns the masked checksum, the value actually stored on disk.
func (c CRC) Value() uint32 {
	return uint32(c>>15|c<<17) + 0xa282ead8
}

// Mask is a free function form of Value, for callers that already have a
// raw (unmasked) uint32 checksum on hand.
func Mask(crc uint32) uint32 {
	return CRC(crc).Value()
}

// Unmask reverses Mask, recovering the raw CRC-32C value from a stored
// masked checksum.
func Unmask(masked uint32) uint32 {
	rot := masked - 0xa282ead8
	return rot>>17 | rot<<15
}
