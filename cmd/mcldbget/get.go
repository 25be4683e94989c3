// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	mcleveldb "github.com/lvyitian/minet-leveldb"
	"github.com/lvyitian/minet-leveldb/internal/base"
)

var getCmd = &cobra.Command{
	Use:   "get <dir> <hex-key>",
	Short: "look up a single key in a LevelDB directory",
	Long: `get opens the LevelDB directory named by <dir> and looks up the key
given in hex, printing one of:

  FOUND <hex value>
  DELETED
  NOT FOUND
`,
	Args: cobra.ExactArgs(2),
	Run:  runGet,
}

func runGet(cmd *cobra.Command, args []string) {
	dirname, hexKey := args[0], args[1]

	key, err := hex.DecodeString(hexKey)
	if err != nil {
		log.Fatalf("mcldbget: invalid hex key %q: %s", hexKey, err)
	}

	ctx := context.Background()
	d, err := mcleveldb.Open(ctx, dirname, nil)
	if err != nil {
		log.Fatalf("mcldbget: open %q: %s", dirname, err)
	}
	defer d.Close()

	res, err := d.Get(ctx, key)
	if err != nil {
		log.Fatalf("mcldbget: get: %s", err)
	}
	switch res.Kind {
	case base.Found:
		fmt.Printf("FOUND %s\n", hex.EncodeToString(res.Value))
	case base.Deleted:
		fmt.Println("DELETED")
	default:
		fmt.Println("NOT FOUND")
	}
}
