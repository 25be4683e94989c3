// Copyright 2012 The LevelDB-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memfs provides a memory-backed vfs.FS, for building database
// directory fixtures in tests without touching real disk.
package memfs

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/lvyitian/minet-leveldb/internal/vfs"
)

const sep = "/"

// FS is a memory-backed vfs.FS. The zero value is not usable; construct one
// with New.
type FS struct {
	mu   sync.Mutex
	root *node
}

// New returns an empty memory-backed filesystem.
func New() *FS {
	return &FS{root: &node{name: sep, children: make(map[string]*node), isDir: true}}
}

// Create adds or replaces a file with the given contents. It is not part of
// vfs.FS: production code never writes, but test setup needs to populate
// the fixture before handing it to a reader.
func (y *FS) Create(fullname string, data []byte) {
	y.mu.Lock()
	defer y.mu.Unlock()
	dir, frag := y.mkdirAllLocked(fullname)
	dir.children[frag] = &node{name: frag, data: data, modTime: time.Time{}}
}

func (y *FS) mkdirAllLocked(fullname string) (dir *node, frag string) {
	parts := splitPath(fullname)
	dir = y.root
	for _, p := range parts[:len(parts)-1] {
		child := dir.children[p]
		if child == nil {
			child = &node{name: p, children: make(map[string]*node), isDir: true}
			dir.children[p] = child
		}
		dir = child
	}
	return dir, parts[len(parts)-1]
}

func splitPath(fullname string) []string {
	fullname = strings.Trim(fullname, sep)
	return strings.Split(fullname, sep)
}

func (y *FS) lookup(fullname string) (*node, error) {
	y.mu.Lock()
	defer y.mu.Unlock()
	parts := splitPath(fullname)
	dir := y.root
	for i, p := range parts {
		child := dir.children[p]
		if child == nil {
			return nil, errors.Wrapf(os.ErrNotExist, "memfs: %q", fullname)
		}
		if i == len(parts)-1 {
			return child, nil
		}
		if !child.isDir {
			return nil, errors.Newf("memfs: %q is not a directory", fullname)
		}
		dir = child
	}
	return y.root, nil
}

// Open implements vfs.FS.
func (y *FS) Open(fullname string) (vfs.File, error) {
	n, err := y.lookup(fullname)
	if err != nil {
		return nil, err
	}
	if n.isDir {
		return nil, errors.Newf("memfs: %q is a directory", fullname)
	}
	return &openFile{n: n}, nil
}

// List implements vfs.FS.
func (y *FS) List(dirname string) ([]string, error) {
	n, err := y.lookup(dirname)
	if err != nil {
		return nil, err
	}
	if !n.isDir {
		return nil, errors.Newf("memfs: %q is not a directory", dirname)
	}
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	return names, nil
}

// Stat implements vfs.FS.
func (y *FS) Stat(fullname string) (os.FileInfo, error) {
	n, err := y.lookup(fullname)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// node implements vfs.File and os.FileInfo for an in-memory entry.
type node struct {
	name     string
	data     []byte
	modTime  time.Time
	children map[string]*node
	isDir    bool
}

func (n *node) IsDir() bool        { return n.isDir }
func (n *node) ModTime() time.Time { return n.modTime }
func (n *node) Mode() os.FileMode  { return 0444 }
func (n *node) Name() string       { return n.name }
func (n *node) Size() int64        { return int64(len(n.data)) }
func (n *node) Sys() interface{}   { return nil }

type openFile struct {
	n   *node
	pos int64
}

func (f *openFile) Close() error { return nil }

func (f *openFile) Read(p []byte) (int, error) {
	n, err := f.ReadAt(p, f.pos)
	f.pos += int64(n)
	return n, err
}

func (f *openFile) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(f.n.data)) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, f.n.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (f *openFile) Stat() (os.FileInfo, error) { return f.n, nil }
