// Copyright 2012 The LevelDB-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package filenames names and parses the files that make up an on-disk
// database directory: CURRENT, LOCK, MANIFEST-NNNNNN, NNNNNN.log and
// NNNNNN.ldb (or the RocksDB-style NNNNNN.sst).
package filenames

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lvyitian/minet-leveldb/internal/base"
)

// FileType identifies which of the fixed roles a filename plays.
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeLog
	FileTypeLock
	FileTypeTable
	FileTypeManifest
	FileTypeCurrent
)

func (t FileType) String() string {
	switch t {
	case FileTypeLog:
		return "log"
	case FileTypeLock:
		return "lock"
	case FileTypeTable:
		return "table"
	case FileTypeManifest:
		return "manifest"
	case FileTypeCurrent:
		return "current"
	default:
		return "unknown"
	}
}

// LogName returns the name of the log file with the given number.
func LogName(fileNum base.FileNum) string {
	return fmt.Sprintf("%06d.log", uint64(fileNum))
}

// LockName returns the name of the directory's lock file.
func LockName() string { return "LOCK" }

// TableName returns the name of the table file with the given number, using
// the LevelDB-native .ldb extension. See also TableNameSST.
func TableName(fileNum base.FileNum) string {
	return fmt.Sprintf("%06d.ldb", uint64(fileNum))
}

// TableNameSST returns the RocksDB-style alias of TableName. Both
// extensions name the same on-disk format; this engine accepts either.
func TableNameSST(fileNum base.FileNum) string {
	return fmt.Sprintf("%06d.sst", uint64(fileNum))
}

// ManifestName returns the name of the descriptor log with the given
// number.
func ManifestName(fileNum base.FileNum) string {
	return fmt.Sprintf("MANIFEST-%06d", uint64(fileNum))
}

// CurrentName returns the name of the CURRENT file.
func CurrentName() string { return "CURRENT" }

// Parse classifies filename (a base name, no directory component) and, for
// the types that carry one, extracts the embedded file number. It returns
// ok=false for any name that doesn't match one of the five recognized
// patterns — unrecognized directory entries (LOG, temp files, stray data)
// are simply ignored by callers, not treated as corruption.
func Parse(filename string) (fileType FileType, fileNum base.FileNum, ok bool) {
	switch filename {
	case "CURRENT":
		return FileTypeCurrent, 0, true
	case "LOCK":
		return FileTypeLock, 0, true
	}
	if rest, found := strings.CutPrefix(filename, "MANIFEST-"); found {
		n, err := strconv.ParseUint(rest, 10, 64)
		if err != nil {
			return FileTypeUnknown, 0, false
		}
		return FileTypeManifest, base.FileNum(n), true
	}
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	n, err := strconv.ParseUint(stem, 10, 64)
	if err != nil {
		return FileTypeUnknown, 0, false
	}
	switch ext {
	case ".log":
		return FileTypeLog, base.FileNum(n), true
	case ".ldb", ".sst":
		return FileTypeTable, base.FileNum(n), true
	default:
		return FileTypeUnknown, 0, false
	}
}
