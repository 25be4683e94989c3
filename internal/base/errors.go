// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import "github.com/cockroachdb/errors"

// CorruptionKind tags the sub-kind of a Corruption error. The sub-kinds are
// informational only: every one of them is recoverable at the API boundary
// by failing the call that hit it.
type CorruptionKind string

// The corruption sub-kinds this engine distinguishes, spanning the record
// reader, the manifest decoder, and the table reader.
const (
	BadHeader              CorruptionKind = "bad-header"
	BadChecksum            CorruptionKind = "bad-checksum"
	BadRecordType          CorruptionKind = "bad-record-type"
	TruncatedRecord        CorruptionKind = "truncated-record"
	UnexpectedContinuation CorruptionKind = "unexpected-continuation"
	BadBlockChecksum       CorruptionKind = "bad-block-checksum"
	BadBlockTrailer        CorruptionKind = "bad-block-trailer"
	TruncatedBlock         CorruptionKind = "truncated-block"
	BadRestart             CorruptionKind = "bad-restart"
	BadTableMagic          CorruptionKind = "bad-table-magic"
	BadManifestTag         CorruptionKind = "bad-manifest-tag"
	BadInternalKey         CorruptionKind = "bad-internal-key"
	Overread               CorruptionKind = "overread"
)

// ErrCorruption is the sentinel every Corruption error is tagged with via
// errors.Mark, so callers can test for the class of error without caring
// about the sub-kind:
//
//	if errors.Is(err, base.ErrCorruption) { ... }
var ErrCorruption = errors.New("leveldb: corruption")

// ErrUnsupportedComparer is returned by manifest replay when the MANIFEST
// names a comparator other than "leveldb.BytewiseComparator".
var ErrUnsupportedComparer = errors.New("leveldb: unsupported comparer")

// ErrUnsupportedCompression is returned by the table reader when a block's
// compression type is not one this engine decodes.
var ErrUnsupportedCompression = errors.New("leveldb: unsupported compression")

// ErrNoCurrentFile is returned by Open when the database directory has no
// CURRENT file. This engine never creates one: it only ever reads an
// already-quiesced database directory.
var ErrNoCurrentFile = errors.New("leveldb: no CURRENT file")

// ErrInvalidArgument is returned for a call whose argument is malformed
// independently of any on-disk state, e.g. Get with an empty key.
var ErrInvalidArgument = errors.New("leveldb: invalid argument")

// Corruption wraps a CorruptionKind with a formatted message and marks the
// result so errors.Is(err, ErrCorruption) succeeds.
func Corruption(kind CorruptionKind, format string, args ...interface{}) error {
	inner := errors.Newf("leveldb: corruption (%s): "+format, append([]interface{}{kind}, args...)...)
	return errors.Mark(&corruptionKindError{kind: kind, err: inner}, ErrCorruption)
}

// CorruptionKindOf extracts the CorruptionKind a Corruption error was built
// with, for tests and diagnostics. It returns ok=false for any other error.
func CorruptionKindOf(err error) (kind CorruptionKind, ok bool) {
	var ck *corruptionKindError
	if errors.As(err, &ck) {
		return ck.kind, true
	}
	return "", false
}

type corruptionKindError struct {
	kind CorruptionKind
	err  error
}

func (e *corruptionKindError) Error() string { return e.err.Error() }
func (e *corruptionKindError) Unwrap() error { return e.err }
