// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import "bytes"

// Comparer defines a total ordering over the space of []byte keys: a 'less
// than' relationship. The same comparer must be used for writing and reading
// a given on-disk database.
type Comparer interface {
	// Compare returns -1, 0, or +1 depending on whether a is less than,
	// equal to, or greater than b.
	Compare(a, b []byte) int

	// Name returns the name of the comparer. This is written into the
	// MANIFEST when a database is created and is checked on every Open: two
	// databases with different comparer names are incompatible.
	Name() string
}

// bytewiseComparer implements Comparer using the natural lexicographic
// ordering of byte slices, consistent with bytes.Compare.
type bytewiseComparer struct{}

func (bytewiseComparer) Compare(a, b []byte) int { return bytes.Compare(a, b) }

func (bytewiseComparer) Name() string { return "leveldb.BytewiseComparator" }

// DefaultComparer is the bytewise comparer used by every on-disk LevelDB
// database this engine is able to read. A MANIFEST naming any other
// comparer is rejected with ErrUnsupportedComparer (see errors.go); keeping
// comparer lookup behind this interface, rather than hard-coding
// bytes.Compare at call sites, leaves room for a reverse-bytewise
// comparer to be added later without touching the manifest or table
// reader.
var DefaultComparer Comparer = bytewiseComparer{}

// Comparers indexes the comparers this engine knows how to use, by the name
// stored in a MANIFEST's Comparator field. Only the bytewise comparer is
// registered today.
var Comparers = map[string]Comparer{
	DefaultComparer.Name(): DefaultComparer,
}
