// Copyright 2019 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

//go:build !debug

package main

import "github.com/spf13/cobra"

// addDebugCommands is a no-op in a release build: manifest and levels are
// diagnostic-only and compiled out unless built with "-tags debug".
func addDebugCommands(root *cobra.Command) {}
