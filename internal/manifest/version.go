// Copyright 2012 The LevelDB-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manifest

import (
	"sort"

	"github.com/lvyitian/minet-leveldb/internal/base"
)

// FileMetadata holds the metadata for an on-disk table, as recorded by a
// NewFile entry in the MANIFEST.
type FileMetadata struct {
	FileNum  base.FileNum
	Size     uint64
	Smallest base.InternalKey
	Largest  base.InternalKey
}

// Version is the set of tables that made up the database the instant the
// MANIFEST was last written. Level 0 is kept in the order NewFile entries
// were applied (which is increasing fileNum, since file numbers are
// assigned monotonically); levels 1..NumLevels-1 are kept sorted by
// Smallest and do not overlap within a level.
type Version struct {
	Files [base.NumLevels][]FileMetadata
}

// TableGetter performs a point lookup within a single on-disk table,
// returning a three-state result (NotFound, Found, or Deleted). It is the
// seam between manifest's lookup planning and the sstable reader (or its
// cache) that actually opens and searches a table.
type TableGetter interface {
	Get(fileNum base.FileNum, seekKey base.InternalKey) (base.GetResult, error)
}

// Get looks up the most recent record for userKey, searching level 0 from
// the most recently added file backwards, then levels 1..NumLevels-1 via
// binary search on each level's sorted, disjoint file ranges. The first
// table whose search is conclusive
// (Found or Deleted) wins; an inconclusive search (the table's bounds don't
// actually contain a record for userKey) falls through to the next
// candidate.
func (v *Version) Get(cmp base.Comparer, userKey []byte, tg TableGetter) (base.GetResult, error) {
	seekKey := base.MakeSearchKey(userKey)

	for i := len(v.Files[0]) - 1; i >= 0; i-- {
		f := v.Files[0][i]
		if cmp.Compare(userKey, f.Smallest.UserKey) < 0 {
			continue
		}
		if base.Compare(cmp, seekKey, f.Largest) > 0 {
			continue
		}
		res, err := tg.Get(f.FileNum, seekKey)
		if err != nil {
			return base.GetResult{}, err
		}
		if res.Kind != base.NotFound {
			return res, nil
		}
	}

	for level := 1; level < base.NumLevels; level++ {
		files := v.Files[level]
		n := len(files)
		if n == 0 {
			continue
		}
		index := sort.Search(n, func(i int) bool {
			return base.Compare(cmp, files[i].Largest, seekKey) >= 0
		})
		if index == n {
			continue
		}
		f := files[index]
		if cmp.Compare(userKey, f.Smallest.UserKey) < 0 {
			continue
		}
		res, err := tg.Get(f.FileNum, seekKey)
		if err != nil {
			return base.GetResult{}, err
		}
		if res.Kind != base.NotFound {
			return res, nil
		}
	}

	return base.GetResult{Kind: base.NotFound}, nil
}

// apply folds a decoded versionEdit into v: NewFile entries are appended to
// their level, then any file named by a DeletedFile entry at the same
// level is removed. apply does not sort; Load calls sortLevels after the
// last edit so Get's binary search over levels 1..NumLevels-1 holds.
func (v *Version) apply(ve *versionEdit) {
	for _, nf := range ve.newFiles {
		v.Files[nf.level] = append(v.Files[nf.level], nf.meta)
	}
	if len(ve.deletedFiles) > 0 {
		for level := range v.Files {
			kept := v.Files[level][:0]
			for _, f := range v.Files[level] {
				if ve.deletedFiles[deletedFileEntry{base.Level(level), f.FileNum}] {
					continue
				}
				kept = append(kept, f)
			}
			v.Files[level] = kept
		}
	}
}

// sortLevels re-sorts levels 1..NumLevels-1 by Smallest, using cmp as the
// tie-break comparer for equal internal keys (which cannot happen in a
// well-formed manifest, but a deterministic order is cheap to guarantee).
func (v *Version) sortLevels(cmp base.Comparer) {
	for level := 1; level < base.NumLevels; level++ {
		files := v.Files[level]
		sort.Slice(files, func(i, j int) bool {
			return base.Compare(cmp, files[i].Smallest, files[j].Smallest) < 0
		})
	}
}
