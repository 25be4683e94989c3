// Copyright 2013 The LevelDB-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package mcleveldb

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/lvyitian/minet-leveldb/internal/base"
	"github.com/lvyitian/minet-leveldb/internal/filenames"
	"github.com/lvyitian/minet-leveldb/internal/vfs"
	"github.com/lvyitian/minet-leveldb/sstable"
)

// readerCache is an LRU cache of open *sstable.Reader values, keyed by the
// primitive base.FileNum. Nodes form a doubly-linked list for LRU order,
// and each node loads its reader via a goroutine and a buffered channel, so
// concurrent Get calls racing on the same file number wait on the same load
// rather than opening the file twice. A load that fails is started again
// for the next caller.
type readerCache struct {
	dirname                  string
	fs                       vfs.FS
	cmp                      base.Comparer
	decompressionConcurrency int64
	metrics                  *Metrics
	size                     int

	mu    sync.Mutex
	nodes map[base.FileNum]*cacheNode
	dummy cacheNode
}

func newReaderCache(dirname string, fs vfs.FS, cmp base.Comparer, size int, decompressionConcurrency int64, metrics *Metrics) *readerCache {
	c := &readerCache{
		dirname:                  dirname,
		fs:                       fs,
		cmp:                      cmp,
		decompressionConcurrency: decompressionConcurrency,
		metrics:                  metrics,
		size:                     size,
		nodes:                    make(map[base.FileNum]*cacheNode),
	}
	c.dummy.next = &c.dummy
	c.dummy.prev = &c.dummy
	return c
}

// get looks up seekKey in the table named by fileNum, opening (and
// caching) that table's reader if it is not already cached.
func (c *readerCache) get(ctx context.Context, fileNum base.FileNum, seekKey base.InternalKey) (base.GetResult, error) {
	n := c.findNode(fileNum)
	x := <-n.result
	if x.err != nil {
		c.mu.Lock()
		n.refCount--
		if n.refCount == 0 {
			go n.release()
		}
		c.mu.Unlock()
		// The error may be transient (e.g. a brief EINTR); make the node
		// reloadable for the next caller instead of poisoning the cache.
		go n.load(c)
		return base.GetResult{}, x.err
	}
	n.result <- x

	defer func() {
		c.mu.Lock()
		n.refCount--
		if n.refCount == 0 {
			go n.release()
		}
		c.mu.Unlock()
	}()
	return x.reader.Get(ctx, seekKey)
}

// releaseNode removes n from the cache. c.mu must be held.
func (c *readerCache) releaseNode(n *cacheNode) {
	delete(c.nodes, n.fileNum)
	n.next.prev = n.prev
	n.prev.next = n.next
	n.refCount--
	if n.refCount == 0 {
		go n.release()
	}
}

// findNode returns the node for fileNum, creating and starting its load if
// this is the first reference. The caller is responsible for decrementing
// the returned node's refCount once it is done with the node's result.
func (c *readerCache) findNode(fileNum base.FileNum) *cacheNode {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.nodes[fileNum]
	if n == nil {
		n = &cacheNode{fileNum: fileNum, refCount: 1, result: make(chan readerOrError, 1)}
		c.nodes[fileNum] = n
		if len(c.nodes) > c.size {
			c.releaseNode(c.dummy.prev)
		}
		go n.load(c)
	} else {
		n.next.prev = n.prev
		n.prev.next = n.next
	}
	n.next = c.dummy.next
	n.prev = &c.dummy
	n.next.prev = n
	n.prev.next = n
	n.refCount++
	return n
}

// evict drops fileNum from the cache, if present. Its reader is closed
// once no caller still holds a reference to it.
func (c *readerCache) evict(fileNum base.FileNum) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n := c.nodes[fileNum]; n != nil {
		c.releaseNode(n)
	}
}

// Close releases every cached reader.
func (c *readerCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for n := c.dummy.next; n != &c.dummy; n = n.next {
		n.refCount--
		if n.refCount == 0 {
			go n.release()
		}
	}
	c.nodes = nil
	c.dummy.next = nil
	c.dummy.prev = nil
	return nil
}

type readerOrError struct {
	reader *sstable.Reader
	err    error
}

type cacheNode struct {
	fileNum base.FileNum
	result  chan readerOrError

	// The remaining fields are protected by readerCache.mu.
	next, prev *cacheNode
	refCount   int
}

func (n *cacheNode) load(c *readerCache) {
	start := time.Now()
	f, err := c.fs.Open(filepath.Join(c.dirname, filenames.TableName(n.fileNum)))
	if os.IsNotExist(err) {
		f, err = c.fs.Open(filepath.Join(c.dirname, filenames.TableNameSST(n.fileNum)))
	}
	if err != nil {
		n.result <- readerOrError{err: err}
		return
	}
	reader, err := sstable.NewReader(f, sstable.Options{
		Comparer:                 c.cmp,
		DecompressionConcurrency: c.decompressionConcurrency,
	})
	c.metrics.observeCacheLoad(time.Since(start).Seconds())
	n.result <- readerOrError{reader: reader, err: err}
}

func (n *cacheNode) release() {
	x := <-n.result
	if x.err != nil {
		return
	}
	x.reader.Close()
}
