// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import (
	"fmt"
	"log"
)

// Logger defines the narrow interface this engine needs to write
// diagnostic messages. It exists so callers can substitute their own
// structured logger without this package importing one concretely.
type Logger interface {
	Infof(format string, args ...interface{})
}

// DefaultLogger logs to the Go stdlib log package.
type DefaultLogger struct{}

// Infof implements Logger.
func (DefaultLogger) Infof(format string, args ...interface{}) {
	_ = log.Output(2, fmt.Sprintf(format, args...))
}

// NoopLogger discards everything. Useful in tests that don't want log
// output interleaved with -v output.
type NoopLogger struct{}

// Infof implements Logger.
func (NoopLogger) Infof(string, ...interface{}) {}
