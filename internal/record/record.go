// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package record reads (and, for test fixture construction, writes) the
// framed records used by the write-ahead log and the MANIFEST descriptor
// log: a sequence of 32768-byte blocks, each holding zero or more
// 7-byte-header chunks.
package record

import (
	"encoding/binary"
	"io"

	"github.com/lvyitian/minet-leveldb/internal/base"
	"github.com/lvyitian/minet-leveldb/internal/crc"
)

// Chunk type tags, stored in the 7th header byte. They are part of the wire
// format and must not be renumbered.
const (
	fullChunkType   = 1
	firstChunkType  = 2
	middleChunkType = 3
	lastChunkType   = 4
)

const (
	blockSize  = 32768
	headerSize = 7
)

// Reader reads a sequence of records from an underlying io.Reader, exactly
// as written by Writer. Corrupt chunks surface as base.Corruption errors;
// the reader does not attempt to resynchronize past them, since this
// engine would rather fail a read than guess at a damaged log.
type Reader struct {
	r   io.Reader
	seq int

	buf [blockSize]byte

	// i, j delimit the most recently returned chunk's payload within buf;
	// n is the number of valid bytes read into buf.
	i, j, n int

	// last is true if the most recently returned chunk finishes a record
	// (its type is Full or Last).
	last bool
	err  error
}

// NewReader returns a new reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, last: true}
}

// nextChunk advances past the next chunk in the stream. If wantFirst is
// true, it requires the start of a record (a Full or First chunk);
// otherwise it requires a Middle or Last chunk. Either way it reports
// UnexpectedContinuation if the stream disagrees about where the record
// boundary falls.
func (r *Reader) nextChunk(wantFirst bool) error {
	for {
		if r.j+headerSize <= r.n {
			checksum := binary.LittleEndian.Uint32(r.buf[r.j : r.j+4])
			length := binary.LittleEndian.Uint16(r.buf[r.j+4 : r.j+6])
			chunkType := r.buf[r.j+6]

			if checksum == 0 && length == 0 && chunkType == 0 {
				// Zero padding runs to the end of the block.
				r.i = r.n
				r.j = r.n
				continue
			}

			r.i = r.j + headerSize
			r.j = r.i + int(length)
			if r.j > r.n {
				return base.Corruption(base.TruncatedRecord,
					"chunk length %d overflows block", length)
			}
			if got := crc.New(r.buf[r.i-1 : r.j]).Value(); got != checksum {
				return base.Corruption(base.BadChecksum, "chunk checksum mismatch")
			}

			if wantFirst {
				if chunkType != fullChunkType && chunkType != firstChunkType {
					return base.Corruption(base.UnexpectedContinuation,
						"expected the start of a record, got type %d", chunkType)
				}
			} else {
				if chunkType != middleChunkType && chunkType != lastChunkType {
					return base.Corruption(base.UnexpectedContinuation,
						"expected a continuation chunk, got type %d", chunkType)
				}
			}
			r.last = chunkType == fullChunkType || chunkType == lastChunkType
			return nil
		}

		if r.n < blockSize && r.n > 0 {
			// A short final block with no header-sized remainder left: this
			// is the clean end of the log.
			return io.EOF
		}
		n, err := io.ReadFull(r.r, r.buf[:])
		if err != nil && err != io.ErrUnexpectedEOF {
			return err
		}
		if n == 0 {
			return io.EOF
		}
		r.i, r.j, r.n = 0, 0, n
	}
}

// Next returns a reader for the next record. It returns io.EOF if there are
// no more records. The reader returned by a call to Next must be fully
// consumed before the next call to Next.
func (r *Reader) Next() (io.Reader, error) {
	r.seq++
	if r.err != nil {
		return nil, r.err
	}
	r.i = r.j
	if !r.last {
		r.err = base.Corruption(base.UnexpectedContinuation, "previous record not fully consumed")
		return nil, r.err
	}
	r.err = r.nextChunk(true)
	if r.err != nil {
		return nil, r.err
	}
	return &singleReader{r, r.seq}, nil
}

type singleReader struct {
	r   *Reader
	seq int
}

func (x *singleReader) Read(p []byte) (int, error) {
	r := x.r
	if r.seq != x.seq {
		return 0, base.Corruption(base.BadRecordType, "use of stale record reader")
	}
	if r.err != nil {
		return 0, r.err
	}
	for r.i == r.j {
		if r.last {
			return 0, io.EOF
		}
		r.err = r.nextChunk(false)
		if r.err != nil {
			if r.err == io.EOF {
				r.err = base.Corruption(base.TruncatedRecord, "record truncated before last chunk")
			}
			return 0, r.err
		}
	}
	n := copy(p, r.buf[r.i:r.j])
	r.i += n
	return n, nil
}
