// Copyright 2012 The LevelDB-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vfs abstracts the filesystem this engine reads a database
// directory from, so tests can exercise the manifest and table readers
// against an in-memory fixture (see vfs/memfs) instead of real disk.
package vfs

import (
	"io"
	"os"
)

// File is a readable sequence of bytes with random access, everything this
// engine ever needs from an open file since it never writes to the
// database directory.
type File interface {
	io.Closer
	io.Reader
	io.ReaderAt
	Stat() (os.FileInfo, error)
}

// FS is a namespace of files. Names are filepath names: they may be / or \
// separated depending on the underlying operating system.
type FS interface {
	// Open opens the named file for reading.
	Open(name string) (File, error)

	// List returns the base names of the directory's entries, in no
	// particular order.
	List(dir string) ([]string, error)

	// Stat returns file info for name without opening it.
	Stat(name string) (os.FileInfo, error)
}

// Default is an FS implementation backed by the operating system.
var Default FS = osFS{}

type osFS struct{}

func (osFS) Open(name string) (File, error) {
	return os.Open(name)
}

func (osFS) List(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.Readdirnames(-1)
}

func (osFS) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}
