// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Command ethtrie decodes Ethereum trie nodes and prints their CIDs.
package main

import (
	"fmt"
	"os"

	"github.com/ChainSafe/dageth/internal/log"
	"github.com/fatih/color"
	"github.com/urfave/cli"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "cmd"))

func main() {
	format := log.FormatConsole
	if color.NoColor {
		format = log.FormatPlain
	}
	// standard output is kept for command results.
	log.Patch(log.SetWriter(os.Stderr), log.SetFormat(format))

	err := newApp().Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	r := new(runner)

	app := cli.NewApp()
	app.Name = "ethtrie"
	app.Usage = "Ethereum trie nodes as content addressed data"
	app.Flags = []cli.Flag{ConfigFlag, LogFlag, MetricsFlag}
	app.Before = r.setup
	app.After = r.printMetrics
	app.Commands = []cli.Command{
		{
			Name:      "decode",
			Usage:     "Decode the RLP encoding of a trie node and print its tree",
			ArgsUsage: "<hex encoding>",
			Flags:     []cli.Flag{KindFlag},
			Action:    r.decodeAction,
		},
		{
			Name:      "cid",
			Usage:     "Print the CID of the RLP encoding of a trie node",
			ArgsUsage: "<hex encoding>",
			Flags:     []cli.Flag{KindFlag},
			Action:    r.cidAction,
		},
		{
			Name:   "kinds",
			Usage:  "List the supported trie kinds",
			Action: r.kindsAction,
		},
	}
	return app
}
