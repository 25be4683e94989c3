// Copyright 2012 The LevelDB-Go and Pebble Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package mcleveldb reads a LevelDB-format on-disk database: the CURRENT
// file, the MANIFEST descriptor log, and the .ldb/.sst sorted tables it
// names. It is read-only — Open never writes to the database directory,
// and there is no Set, Delete, or compaction.
//
//	d, err := mcleveldb.Open(context.Background(), "/path/to/db", nil)
//	if err != nil {
//		return err
//	}
//	defer d.Close()
//	res, err := d.Get(context.Background(), []byte("key"))
package mcleveldb
