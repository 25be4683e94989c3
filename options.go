// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package mcleveldb

import (
	"github.com/lvyitian/minet-leveldb/internal/base"
	"github.com/lvyitian/minet-leveldb/internal/vfs"
)

// minReaderCacheSize is the smallest cache size worth configuring: below
// this, a cache thrashes enough that there is no point bounding it smaller.
const minReaderCacheSize = 64

// defaultReaderCacheSize is used when Options.ReaderCacheSize is zero.
const defaultReaderCacheSize = 512

// Options holds the optional parameters for Open. The GetXxx methods return
// a default when the *Options receiver is nil or the field is unset.
type Options struct {
	// Comparer defines a total ordering over user keys. The default is the
	// bytewise comparer. This engine only ever accepts a manifest whose
	// recorded comparator name matches Comparer.Name().
	Comparer base.Comparer

	// Logger receives one diagnostic line on Open and on Close.
	Logger base.Logger

	// FS is the filesystem the database directory is read from. The
	// default reads real files; tests substitute vfs/memfs.
	FS vfs.FS

	// ReaderCacheSize bounds the number of open table readers kept in the
	// LRU cache. Zero means defaultReaderCacheSize.
	ReaderCacheSize int

	// DecompressionConcurrency bounds how many blocks may be decompressing
	// at once within each open table reader. Every reader gets its own
	// bound of this size; the bound is not shared across tables, so the
	// Database as a whole may decompress more blocks at once. Zero means
	// unbounded.
	DecompressionConcurrency int64

	// Metrics, if non-nil, receives Get-outcome counters. A nil Metrics
	// disables instrumentation entirely rather than using a no-op
	// registerer, since most callers of this read path don't want a
	// Prometheus dependency forced on them.
	Metrics *Metrics
}

func (o *Options) ensure() *Options {
	if o == nil {
		return &Options{}
	}
	return o
}

// GetComparer returns o.Comparer, or the default bytewise comparer.
func (o *Options) GetComparer() base.Comparer {
	if o == nil || o.Comparer == nil {
		return base.DefaultComparer
	}
	return o.Comparer
}

// GetLogger returns o.Logger, or DefaultLogger.
func (o *Options) GetLogger() base.Logger {
	if o == nil || o.Logger == nil {
		return base.DefaultLogger{}
	}
	return o.Logger
}

// GetFS returns o.FS, or the OS-backed default.
func (o *Options) GetFS() vfs.FS {
	if o == nil || o.FS == nil {
		return vfs.Default
	}
	return o.FS
}

// GetReaderCacheSize returns o.ReaderCacheSize, clamped to at least
// minReaderCacheSize, or defaultReaderCacheSize if unset.
func (o *Options) GetReaderCacheSize() int {
	if o == nil || o.ReaderCacheSize == 0 {
		return defaultReaderCacheSize
	}
	if o.ReaderCacheSize < minReaderCacheSize {
		return minReaderCacheSize
	}
	return o.ReaderCacheSize
}

// GetDecompressionConcurrency returns o.DecompressionConcurrency, or 0
// (unbounded) if unset.
func (o *Options) GetDecompressionConcurrency() int64 {
	if o == nil {
		return 0
	}
	return o.DecompressionConcurrency
}

// GetMetrics returns o.Metrics, which may be nil.
func (o *Options) GetMetrics() *Metrics {
	if o == nil {
		return nil
	}
	return o.Metrics
}
