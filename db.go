// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package mcleveldb

import (
	"context"

	"github.com/lvyitian/minet-leveldb/internal/base"
	"github.com/lvyitian/minet-leveldb/internal/manifest"
)

// Database is a read-only handle onto a LevelDB-format directory. Once
// Open returns, a Database observes a single immutable Version: there is
// no compaction and no way to pick up a directory's later writes short of
// calling Open again.
type Database struct {
	dirname string
	cmp     base.Comparer
	logger  base.Logger
	metrics *Metrics

	version *manifest.Version
	readers *readerCache
}

// tableGetterAdapter lets *readerCache satisfy manifest.TableGetter without
// manifest importing this package (which would be a cycle: this package
// already imports manifest).
type tableGetterAdapter struct {
	ctx context.Context
	c   *readerCache
}

func (a tableGetterAdapter) Get(fileNum base.FileNum, seekKey base.InternalKey) (base.GetResult, error) {
	return a.c.get(a.ctx, fileNum, seekKey)
}

// Open resolves dirname's CURRENT file, replays its MANIFEST, and returns a
// Database ready to serve Get calls. opts may be nil.
func Open(ctx context.Context, dirname string, opts *Options) (*Database, error) {
	opts = opts.ensure()
	cmp := opts.GetComparer()
	fs := opts.GetFS()
	logger := opts.GetLogger()
	metrics := opts.GetMetrics()

	m, err := manifest.Load(fs, dirname, cmp)
	if err != nil {
		return nil, err
	}

	d := &Database{
		dirname: dirname,
		cmp:     cmp,
		logger:  logger,
		metrics: metrics,
		version: m.Version,
		readers: newReaderCache(dirname, fs, cmp, opts.GetReaderCacheSize(), opts.GetDecompressionConcurrency(), metrics),
	}

	tableCount := 0
	for _, files := range d.version.Files {
		tableCount += len(files)
	}
	logger.Infof("mcleveldb: opened %q: manifest %s, %d tables, last sequence %d",
		dirname, m.ManifestName, tableCount, m.LastSequence)

	return d, nil
}

// Get looks up userKey. A base.NotFound result means no table held any
// record for the key; base.Deleted means the most recent record is a
// tombstone, which is a distinct outcome from NotFound.
func (d *Database) Get(ctx context.Context, userKey []byte) (base.GetResult, error) {
	if len(userKey) == 0 {
		return base.GetResult{}, base.ErrInvalidArgument
	}
	res, err := d.version.Get(d.cmp, userKey, tableGetterAdapter{ctx: ctx, c: d.readers})
	d.metrics.observeResult(res.Kind, err)
	return res, err
}

// Close releases every table reader this Database opened.
func (d *Database) Close() error {
	err := d.readers.Close()
	d.logger.Infof("mcleveldb: closed %q", d.dirname)
	return err
}
