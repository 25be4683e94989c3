// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package record

import (
	"encoding/binary"
	"io"

	"github.com/lvyitian/minet-leveldb/internal/base"
	"github.com/lvyitian/minet-leveldb/internal/crc"
)

// Writer writes a sequence of records to an underlying io.Writer, framed
// exactly as Reader expects. It exists so tests can build WAL and MANIFEST
// fixtures in-process rather than shipping binary blobs; production use of
// this engine never writes a log.
type Writer struct {
	w   io.Writer
	seq int

	// buf[i:j] is the bytes that will become the current chunk. i includes
	// the chunk header.
	buf  [blockSize]byte
	i, j int

	// buf[:written] has already been written to w.
	written int

	first   bool
	pending bool
	err     error
}

// NewWriter returns a new Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) fillHeader(last bool) {
	var chunkType byte
	switch {
	case w.first && last:
		chunkType = fullChunkType
	case w.first && !last:
		chunkType = firstChunkType
	case !w.first && last:
		chunkType = lastChunkType
	default:
		chunkType = middleChunkType
	}
	c := crc.New([]byte{chunkType}).Update(w.buf[w.i+headerSize : w.j])
	binary.LittleEndian.PutUint32(w.buf[w.i:w.i+4], c.Value())
	binary.LittleEndian.PutUint16(w.buf[w.i+4:w.i+6], uint16(w.j-w.i-headerSize))
	w.buf[w.i+6] = chunkType
}

// writeBlock writes out whatever of the current block hasn't already been
// flushed by writePending, then starts a fresh block.
func (w *Writer) writeBlock() {
	_, w.err = w.w.Write(w.buf[w.written:])
	w.i = 0
	w.j = headerSize
	w.written = 0
}

// writePending finishes the current record's header and flushes the bytes
// added since the last flush.
func (w *Writer) writePending() {
	if w.err != nil {
		return
	}
	if w.pending {
		w.fillHeader(true)
		w.pending = false
	}
	_, w.err = w.w.Write(w.buf[w.written:w.j])
	w.written = w.j
}

// Next returns a writer for the next record. The writer returned becomes
// stale after the next Close or Next call.
func (w *Writer) Next() (io.Writer, error) {
	w.seq++
	if w.err != nil {
		return nil, w.err
	}
	if w.pending {
		w.fillHeader(true)
	}
	w.i = w.j
	w.j = w.j + headerSize
	if w.j > blockSize {
		clear(w.buf[w.i:])
		w.writeBlock()
		if w.err != nil {
			return nil, w.err
		}
	}
	w.first = true
	w.pending = true
	return singleWriter{w, w.seq}, nil
}

// Close finishes the current record and flushes any buffered data.
func (w *Writer) Close() error {
	w.seq++
	w.writePending()
	return w.err
}

type singleWriter struct {
	w   *Writer
	seq int
}

func (x singleWriter) Write(p []byte) (int, error) {
	w := x.w
	if w.seq != x.seq {
		return 0, base.Corruption(base.BadRecordType, "use of stale record writer")
	}
	if w.err != nil {
		return 0, w.err
	}
	n0 := len(p)
	for len(p) > 0 {
		if w.j == blockSize {
			w.fillHeader(false)
			w.writeBlock()
			w.first = false
			w.pending = true
		}
		n := copy(w.buf[w.j:blockSize], p)
		w.j += n
		p = p[n:]
	}
	return n0, nil
}
