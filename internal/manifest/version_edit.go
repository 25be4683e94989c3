// Copyright 2012 The LevelDB-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manifest

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/lvyitian/minet-leveldb/internal/base"
)

// Tags for the versionEdit disk format. Tag 8 is no longer used by any
// version of the format this engine reads.
const (
	tagComparator     = 1
	tagLogNumber      = 2
	tagNextFileNumber = 3
	tagLastSequence   = 4
	tagCompactPointer = 5
	tagDeletedFile    = 6
	tagNewFile        = 7
	tagPrevLogNumber  = 9
)

type deletedFileEntry struct {
	level   base.Level
	fileNum base.FileNum
}

type newFileEntry struct {
	level base.Level
	meta  FileMetadata
}

// versionEdit is one decoded record from the MANIFEST descriptor log.
// Fields absent from the record keep their zero value; Load folds a
// sequence of these into a Version by cumulative application, as described
// on Version.apply.
type versionEdit struct {
	comparatorName string
	logNumber      uint64
	hasLogNumber   bool
	prevLogNumber  uint64
	nextFileNumber uint64
	hasNextFileNum bool
	lastSequence   base.SeqNum
	hasLastSeq     bool
	deletedFiles   map[deletedFileEntry]bool
	newFiles       []newFileEntry
}

type byteReader interface {
	io.ByteReader
	io.Reader
}

func (v *versionEdit) decode(r io.Reader) error {
	br, ok := r.(byteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	d := versionEditDecoder{br}
	for {
		tag, err := binary.ReadUvarint(br)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch tag {
		case tagComparator:
			s, err := d.readBytes()
			if err != nil {
				return err
			}
			v.comparatorName = string(s)

		case tagLogNumber:
			n, err := d.readUvarint()
			if err != nil {
				return err
			}
			v.logNumber = n
			v.hasLogNumber = true

		case tagNextFileNumber:
			n, err := d.readUvarint()
			if err != nil {
				return err
			}
			v.nextFileNumber = n
			v.hasNextFileNum = true

		case tagLastSequence:
			n, err := d.readUvarint()
			if err != nil {
				return err
			}
			v.lastSequence = base.SeqNum(n)
			v.hasLastSeq = true

		case tagCompactPointer:
			// Compaction pointers are write-path state this engine never
			// acts on; consume the fields so the decode stream stays
			// aligned and discard them.
			if _, err := d.readLevel(); err != nil {
				return err
			}
			if _, err := d.readBytes(); err != nil {
				return err
			}

		case tagDeletedFile:
			level, err := d.readLevel()
			if err != nil {
				return err
			}
			fileNum, err := d.readUvarint()
			if err != nil {
				return err
			}
			if v.deletedFiles == nil {
				v.deletedFiles = make(map[deletedFileEntry]bool)
			}
			v.deletedFiles[deletedFileEntry{level, base.FileNum(fileNum)}] = true

		case tagNewFile:
			level, err := d.readLevel()
			if err != nil {
				return err
			}
			fileNum, err := d.readUvarint()
			if err != nil {
				return err
			}
			size, err := d.readUvarint()
			if err != nil {
				return err
			}
			smallest, err := d.readInternalKey()
			if err != nil {
				return err
			}
			largest, err := d.readInternalKey()
			if err != nil {
				return err
			}
			v.newFiles = append(v.newFiles, newFileEntry{
				level: level,
				meta: FileMetadata{
					FileNum:  base.FileNum(fileNum),
					Size:     size,
					Smallest: smallest,
					Largest:  largest,
				},
			})

		case tagPrevLogNumber:
			n, err := d.readUvarint()
			if err != nil {
				return err
			}
			v.prevLogNumber = n

		default:
			return base.Corruption(base.BadManifestTag, "unknown manifest tag %d", tag)
		}
	}
}

type versionEditDecoder struct {
	byteReader
}

func (d versionEditDecoder) readBytes() ([]byte, error) {
	n, err := d.readUvarint()
	if err != nil {
		return nil, err
	}
	s := make([]byte, n)
	if _, err := io.ReadFull(d, s); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return nil, base.Corruption(base.BadManifestTag, "truncated length-prefixed field")
		}
		return nil, err
	}
	return s, nil
}

func (d versionEditDecoder) readInternalKey() (base.InternalKey, error) {
	b, err := d.readBytes()
	if err != nil {
		return base.InternalKey{}, err
	}
	ikey, ok := base.DecodeInternalKey(b)
	if !ok {
		return base.InternalKey{}, base.Corruption(base.BadInternalKey, "manifest internal key too short")
	}
	return ikey, nil
}

func (d versionEditDecoder) readLevel() (base.Level, error) {
	u, err := d.readUvarint()
	if err != nil {
		return 0, err
	}
	if u >= base.NumLevels {
		return 0, base.Corruption(base.BadManifestTag, "level %d out of range", u)
	}
	return base.Level(u), nil
}

func (d versionEditDecoder) readUvarint() (uint64, error) {
	u, err := binary.ReadUvarint(d)
	if err != nil {
		if err == io.EOF {
			return 0, base.Corruption(base.BadManifestTag, "truncated varint field")
		}
		return 0, err
	}
	return u, nil
}
