// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import "github.com/cockroachdb/redact"

// NumLevels is the number of levels a LevelDB version ever assigns tables
// to: 0 through 6.
const NumLevels = 7

// Level identifies one of the NumLevels levels of the LSM. It implements
// redact.SafeFormatter so diagnostic output can print it without redacting
// (levels carry no user data).
type Level int

// SafeFormat implements redact.SafeFormatter.
func (l Level) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("L%d", redact.SafeInt(l))
}

func (l Level) String() string { return redact.StringWithoutMarkers(l) }

// FileNum identifies an on-disk table by the number embedded in its
// filename (NNNNNN.ldb). It is also the key used by the table-reader
// cache.
type FileNum uint64

// SafeFormat implements redact.SafeFormatter.
func (n FileNum) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%06d", redact.SafeUint(n))
}

func (n FileNum) String() string { return redact.StringWithoutMarkers(n) }
