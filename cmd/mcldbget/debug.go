// Copyright 2019 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

//go:build debug

package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/lvyitian/minet-leveldb/internal/base"
	"github.com/lvyitian/minet-leveldb/internal/manifest"
	"github.com/lvyitian/minet-leveldb/internal/vfs"
)

// addDebugCommands registers the manifest and levels introspection
// commands, present only in a build tagged "debug".
func addDebugCommands(root *cobra.Command) {
	root.AddCommand(manifestCmd, levelsCmd)
}

var manifestCmd = &cobra.Command{
	Use:   "manifest <dir>",
	Short: "print the live files per level",
	Args:  cobra.ExactArgs(1),
	Run:   runManifest,
}

var levelsCmd = &cobra.Command{
	Use:   "levels <dir>",
	Short: "plot a per-level byte-size bar chart",
	Args:  cobra.ExactArgs(1),
	Run:   runLevels,
}

func loadManifest(dirname string) *manifest.Manifest {
	m, err := manifest.Load(vfs.Default, dirname, base.DefaultComparer)
	if err != nil {
		log.Fatalf("mcldbget: load manifest for %q: %s", dirname, err)
	}
	return m
}

func runManifest(cmd *cobra.Command, args []string) {
	m := loadManifest(args[0])

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"level", "file", "size", "smallest", "largest"})
	for level, files := range m.Version.Files {
		for _, f := range files {
			table.Append([]string{
				base.Level(level).String(),
				f.FileNum.String(),
				strconv.FormatUint(f.Size, 10),
				fmt.Sprintf("%x", f.Smallest.UserKey),
				fmt.Sprintf("%x", f.Largest.UserKey),
			})
		}
	}
	table.Render()

	printSizeDistribution(m.Version)
}

// maxFileSizeBytes bounds the histogram below; a table larger than 1TiB
// is clamped into the top bucket rather than rejected.
const maxFileSizeBytes = 1 << 40

// printSizeDistribution renders a per-level file-size histogram. This is
// the read-only counterpart of a live database's compaction-history
// statistics: a single MANIFEST snapshot carries no file creation time
// and no record of files that were compacted away, so there is no
// file-lifetime distribution to report here, only the size distribution
// of the files that are live right now.
func printSizeDistribution(v *manifest.Version) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"level", "files", "mean", "p50", "p90", "max"})
	for level, files := range v.Files {
		if len(files) == 0 {
			continue
		}
		hist := hdrhistogram.New(1, maxFileSizeBytes, 3)
		for _, f := range files {
			size := int64(f.Size)
			if size < 1 {
				size = 1
			}
			hist.RecordValue(min(size, maxFileSizeBytes))
		}
		table.Append([]string{
			base.Level(level).String(),
			strconv.Itoa(len(files)),
			strconv.FormatInt(int64(hist.Mean()), 10),
			strconv.FormatInt(hist.ValueAtPercentile(50), 10),
			strconv.FormatInt(hist.ValueAtPercentile(90), 10),
			strconv.FormatInt(hist.Max(), 10),
		})
	}
	table.Render()
}

func runLevels(cmd *cobra.Command, args []string) {
	m := loadManifest(args[0])

	sizes := make([]float64, base.NumLevels)
	for level, files := range m.Version.Files {
		var total uint64
		for _, f := range files {
			total += f.Size
		}
		sizes[level] = float64(total)
	}
	graph := asciigraph.Plot(sizes,
		asciigraph.Height(10),
		asciigraph.Caption("bytes per level, L0..L6"))
	fmt.Println(graph)
}
