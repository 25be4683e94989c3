// Copyright 2012 The LevelDB-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package manifest replays the CURRENT file and MANIFEST descriptor log
// that together describe which on-disk tables make up a database.
package manifest

import (
	"io"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/lvyitian/minet-leveldb/internal/base"
	"github.com/lvyitian/minet-leveldb/internal/record"
	"github.com/lvyitian/minet-leveldb/internal/vfs"
)

// maxCurrentFileSize bounds how much of CURRENT this engine will read
// before giving up, guarding against a directory that isn't actually a
// LevelDB database.
const maxCurrentFileSize = 4096

// Manifest is the replayed state of a database directory: the current
// Version plus the bookkeeping counters needed to validate it and to name
// the log file, if any, that should be replayed on top of it.
type Manifest struct {
	Version        *Version
	LogNumber      uint64
	PrevLogNumber  uint64
	NextFileNumber uint64
	LastSequence   base.SeqNum
	ManifestName   string
}

// Load reads CURRENT and replays the MANIFEST it names, folding every
// versionEdit record into a single Version. It fails closed: any
// corruption, I/O error, or comparator mismatch aborts the load rather than
// returning a partial result.
func Load(fs vfs.FS, dirname string, cmp base.Comparer) (*Manifest, error) {
	currentName := filepath.Join(dirname, "CURRENT")
	current, err := fs.Open(currentName)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "leveldb: could not open CURRENT file for %q", dirname), base.ErrNoCurrentFile)
	}
	defer current.Close()

	stat, err := current.Stat()
	if err != nil {
		return nil, err
	}
	n := stat.Size()
	if n == 0 {
		return nil, base.Corruption(base.BadHeader, "CURRENT file for %q is empty", dirname)
	}
	if n > maxCurrentFileSize {
		return nil, base.Corruption(base.BadHeader, "CURRENT file for %q is too large", dirname)
	}
	b := make([]byte, n)
	if _, err := current.ReadAt(b, 0); err != nil {
		return nil, err
	}
	if b[n-1] != '\n' {
		return nil, base.Corruption(base.BadHeader, "CURRENT file for %q is malformed", dirname)
	}
	manifestName := string(b[:n-1])

	manifestFile, err := fs.Open(filepath.Join(dirname, manifestName))
	if err != nil {
		return nil, errors.Wrapf(err, "leveldb: could not open manifest file %q for %q", manifestName, dirname)
	}
	defer manifestFile.Close()

	m := &Manifest{Version: &Version{}, ManifestName: manifestName}
	rr := record.NewReader(manifestFile)
	for {
		r, err := rr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		var ve versionEdit
		if err := ve.decode(r); err != nil {
			return nil, err
		}
		if ve.comparatorName != "" && ve.comparatorName != cmp.Name() {
			return nil, errors.Mark(errors.Newf(
				"leveldb: comparer name from manifest %q != comparer %q", ve.comparatorName, cmp.Name()),
				base.ErrUnsupportedComparer)
		}
		m.Version.apply(&ve)
		if ve.hasLogNumber {
			m.LogNumber = ve.logNumber
		}
		if ve.prevLogNumber != 0 {
			m.PrevLogNumber = ve.prevLogNumber
		}
		if ve.hasNextFileNum {
			m.NextFileNumber = ve.nextFileNumber
		}
		if ve.hasLastSeq {
			m.LastSequence = ve.lastSequence
		}
	}
	m.Version.sortLevels(cmp)
	return m, nil
}
