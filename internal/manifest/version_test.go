// Copyright 2012 The LevelDB-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manifest

import (
	"testing"

	"github.com/lvyitian/minet-leveldb/internal/base"
)

// fakeTableGetter answers Get by looking up the file number in a map of
// fixed results, so tests can exercise Version.Get's search-order logic
// without a real sstable.Reader.
type fakeTableGetter struct {
	results map[base.FileNum]base.GetResult
	calls   []base.FileNum
}

func (g *fakeTableGetter) Get(fileNum base.FileNum, _ base.InternalKey) (base.GetResult, error) {
	g.calls = append(g.calls, fileNum)
	if res, ok := g.results[fileNum]; ok {
		return res, nil
	}
	return base.GetResult{Kind: base.NotFound}, nil
}

func key(s string, seq base.SeqNum, kind base.ValueKind) base.InternalKey {
	return base.MakeInternalKey([]byte(s), seq, kind)
}

func TestVersionGetLevel0SearchesMostRecentFirst(t *testing.T) {
	cmp := base.DefaultComparer
	v := &Version{}
	v.Files[0] = []FileMetadata{
		{FileNum: 1, Smallest: key("a", 1, base.ValueKindValue), Largest: key("m", 1, base.ValueKindValue)},
		{FileNum: 2, Smallest: key("a", 2, base.ValueKindValue), Largest: key("m", 2, base.ValueKindValue)},
	}
	g := &fakeTableGetter{results: map[base.FileNum]base.GetResult{
		1: {Kind: base.Found, Value: []byte("old")},
		2: {Kind: base.Found, Value: []byte("new")},
	}}

	res, err := v.Get(cmp, []byte("a"), g)
	if err != nil {
		t.Fatal(err)
	}
	if res.Kind != base.Found || string(res.Value) != "new" {
		t.Errorf("got %v %q, want Found %q", res.Kind, res.Value, "new")
	}
	if len(g.calls) != 1 || g.calls[0] != 2 {
		t.Errorf("got calls %v, want [2] (file 2 added later, searched first)", g.calls)
	}
}

func TestVersionGetLevel0FallsThroughOnNotFound(t *testing.T) {
	cmp := base.DefaultComparer
	v := &Version{}
	v.Files[0] = []FileMetadata{
		{FileNum: 1, Smallest: key("a", 1, base.ValueKindValue), Largest: key("m", 1, base.ValueKindValue)},
		{FileNum: 2, Smallest: key("a", 2, base.ValueKindValue), Largest: key("m", 2, base.ValueKindValue)},
	}
	g := &fakeTableGetter{results: map[base.FileNum]base.GetResult{
		1: {Kind: base.Found, Value: []byte("old")},
	}}

	res, err := v.Get(cmp, []byte("a"), g)
	if err != nil {
		t.Fatal(err)
	}
	if res.Kind != base.Found || string(res.Value) != "old" {
		t.Errorf("got %v %q, want Found %q", res.Kind, res.Value, "old")
	}
	if len(g.calls) != 2 {
		t.Errorf("got calls %v, want both files searched", g.calls)
	}
}

func TestVersionGetLevel1BinarySearch(t *testing.T) {
	cmp := base.DefaultComparer
	v := &Version{}
	v.Files[1] = []FileMetadata{
		{FileNum: 10, Smallest: key("a", 1, base.ValueKindValue), Largest: key("f", 1, base.ValueKindValue)},
		{FileNum: 11, Smallest: key("g", 1, base.ValueKindValue), Largest: key("m", 1, base.ValueKindValue)},
		{FileNum: 12, Smallest: key("n", 1, base.ValueKindValue), Largest: key("z", 1, base.ValueKindValue)},
	}
	g := &fakeTableGetter{results: map[base.FileNum]base.GetResult{
		11: {Kind: base.Deleted},
	}}

	res, err := v.Get(cmp, []byte("h"), g)
	if err != nil {
		t.Fatal(err)
	}
	if res.Kind != base.Deleted {
		t.Errorf("got %v, want Deleted", res.Kind)
	}
	if len(g.calls) != 1 || g.calls[0] != 11 {
		t.Errorf("got calls %v, want only file 11 consulted", g.calls)
	}
}

func TestVersionGetNotFoundWhenNoTableOverlaps(t *testing.T) {
	cmp := base.DefaultComparer
	v := &Version{}
	v.Files[1] = []FileMetadata{
		{FileNum: 10, Smallest: key("a", 1, base.ValueKindValue), Largest: key("f", 1, base.ValueKindValue)},
	}
	g := &fakeTableGetter{}

	res, err := v.Get(cmp, []byte("z"), g)
	if err != nil {
		t.Fatal(err)
	}
	if res.Kind != base.NotFound {
		t.Errorf("got %v, want NotFound", res.Kind)
	}
	if len(g.calls) != 0 {
		t.Errorf("got calls %v, want no table consulted", g.calls)
	}
}

func TestVersionApplyAndSortLevels(t *testing.T) {
	v := &Version{}
	ve := &versionEdit{
		newFiles: []newFileEntry{
			{level: 1, meta: FileMetadata{FileNum: 2, Smallest: key("g", 1, base.ValueKindValue), Largest: key("m", 1, base.ValueKindValue)}},
			{level: 1, meta: FileMetadata{FileNum: 1, Smallest: key("a", 1, base.ValueKindValue), Largest: key("f", 1, base.ValueKindValue)}},
			{level: 0, meta: FileMetadata{FileNum: 3, Smallest: key("x", 1, base.ValueKindValue), Largest: key("y", 1, base.ValueKindValue)}},
		},
	}
	v.apply(ve)
	v.sortLevels(base.DefaultComparer)

	if len(v.Files[1]) != 2 || v.Files[1][0].FileNum != 1 || v.Files[1][1].FileNum != 2 {
		t.Errorf("level 1 not sorted by Smallest: %+v", v.Files[1])
	}
	if len(v.Files[0]) != 1 || v.Files[0][0].FileNum != 3 {
		t.Errorf("level 0: got %+v", v.Files[0])
	}

	ve2 := &versionEdit{
		deletedFiles: map[deletedFileEntry]bool{{level: 1, fileNum: 1}: true},
	}
	v.apply(ve2)
	if len(v.Files[1]) != 1 || v.Files[1][0].FileNum != 2 {
		t.Errorf("deleted file not removed: %+v", v.Files[1])
	}
}
