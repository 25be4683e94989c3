// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import (
	"cmp"
	"encoding/binary"
	"fmt"

	"github.com/cockroachdb/redact"
)

// SeqNum is a sequence number defining precedence among identical user keys:
// a key with a higher sequence number takes precedence over a key with an
// equal user key of a lower sequence number. Sequence numbers are stored in
// the bottom 56 bits of an InternalKeyTrailer.
type SeqNum uint64

// SafeFormat implements redact.SafeFormatter. A sequence number carries no
// user data, so it prints unredacted like Level and FileNum.
func (s SeqNum) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("#%d", redact.SafeUint(s))
}

func (s SeqNum) String() string { return redact.StringWithoutMarkers(s) }

// SeqNumMax is the largest representable sequence number (2^56 - 1). A
// search key is built with this sequence number so that it sorts before
// every real internal key sharing its user key (see MakeSearchKey).
const SeqNumMax SeqNum = 1<<56 - 1

// ValueKind is the one-byte tag trailing an internal key's sequence number.
// The read path only ever needs to recognize these two kinds; any other tag
// found on disk is a Corruption.
type ValueKind uint8

const (
	// ValueKindDeletion marks a user key as logically deleted (tombstone) as
	// of its sequence number.
	ValueKindDeletion ValueKind = 0x00
	// ValueKindValue marks a live value.
	ValueKindValue ValueKind = 0x01
	// ValueKindMax is used only to build search keys (see MakeSearchKey); it
	// never appears in an on-disk trailer.
	ValueKindMax ValueKind = 0xff
)

func (k ValueKind) String() string {
	switch k {
	case ValueKindDeletion:
		return "DEL"
	case ValueKindValue:
		return "SET"
	default:
		return fmt.Sprintf("UNKNOWN(%#02x)", uint8(k))
	}
}

// InternalKeyTrailer packs a 56-bit sequence number and an 8-bit value kind
// into a single little-endian-encodable uint64: (seq << 8) | kind.
type InternalKeyTrailer uint64

// MakeTrailer builds a trailer from a sequence number and value kind.
func MakeTrailer(seq SeqNum, kind ValueKind) InternalKeyTrailer {
	return InternalKeyTrailer(seq)<<8 | InternalKeyTrailer(kind)
}

// SeqNum returns the sequence number component of the trailer.
func (t InternalKeyTrailer) SeqNum() SeqNum { return SeqNum(t >> 8) }

// Kind returns the value-kind component of the trailer.
func (t InternalKeyTrailer) Kind() ValueKind { return ValueKind(t & 0xff) }

// InternalTrailerLen is the fixed, on-disk size in bytes of an internal
// key's trailer.
const InternalTrailerLen = 8

// InternalKey is a user key plus an 8-byte trailer: user_key ‖
// little_endian_u64(sequence << 8 | value_type). Ordering over InternalKeys
// compares UserKey with the database's Comparer first, and on a tie sorts
// the larger (more recent) trailer first — see Compare below.
type InternalKey struct {
	UserKey []byte
	Trailer InternalKeyTrailer
}

// MakeInternalKey builds an InternalKey from its parts.
func MakeInternalKey(userKey []byte, seq SeqNum, kind ValueKind) InternalKey {
	return InternalKey{UserKey: userKey, Trailer: MakeTrailer(seq, kind)}
}

// MakeSearchKey builds a probe internal key that shares user key userKey but
// whose trailer (all sequence bits and all kind bits set) sorts before
// every real internal key sharing that user key.
func MakeSearchKey(userKey []byte) InternalKey {
	return InternalKey{UserKey: userKey, Trailer: MakeTrailer(SeqNumMax, ValueKindMax)}
}

// Size returns the number of bytes Encode will write.
func (k InternalKey) Size() int { return len(k.UserKey) + InternalTrailerLen }

// Encode writes the user key followed by the little-endian trailer into buf,
// which must be at least k.Size() bytes long.
func (k InternalKey) Encode(buf []byte) {
	n := copy(buf, k.UserKey)
	binary.LittleEndian.PutUint64(buf[n:], uint64(k.Trailer))
}

// EncodeTo returns k encoded as a freshly allocated byte slice.
func (k InternalKey) EncodeTo() []byte {
	buf := make([]byte, k.Size())
	k.Encode(buf)
	return buf
}

// DecodeInternalKey splits an encoded internal key into its user key and
// trailer. It does not validate the trailer's value kind; callers that care
// (the table reader's Get) check Kind() themselves and report Corruption on
// an unrecognized tag.
func DecodeInternalKey(encoded []byte) (InternalKey, bool) {
	n := len(encoded) - InternalTrailerLen
	if n < 0 {
		return InternalKey{}, false
	}
	trailer := InternalKeyTrailer(binary.LittleEndian.Uint64(encoded[n:]))
	return InternalKey{UserKey: encoded[:n:n], Trailer: trailer}, true
}

// Compare implements internal-key ordering: user keys compare first via
// ucmp; on a tie, the larger trailer (i.e. the newer sequence number, with
// ties among the same sequence broken by a larger kind) sorts first, so
// Compare returns a negative value for the internal key with the larger
// trailer.
func Compare(ucmp Comparer, a, b InternalKey) int {
	if c := ucmp.Compare(a.UserKey, b.UserKey); c != 0 {
		return c
	}
	return cmp.Compare(b.Trailer, a.Trailer)
}

// Clone returns a copy of k whose UserKey does not alias the argument's
// backing array. Used when retaining a key beyond the lifetime of the
// buffer it was decoded from (e.g. manifest FileMetadata bounds).
func (k InternalKey) Clone() InternalKey {
	uk := make([]byte, len(k.UserKey))
	copy(uk, k.UserKey)
	return InternalKey{UserKey: uk, Trailer: k.Trailer}
}
