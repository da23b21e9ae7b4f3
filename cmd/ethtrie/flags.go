// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"github.com/urfave/cli"
)

// Global flags
var (
	// ConfigFlag is the path to the TOML configuration file.
	ConfigFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file with [log] level and [codec] default-kind",
	}
	// LogFlag overrides the log level of the configuration file.
	LogFlag = cli.StringFlag{
		Name:  "log",
		Usage: "Log level. Supports levels crit (silent), eror, warn, info, dbug and trce (trace)",
	}
	// MetricsFlag prints the codec counters after the command.
	MetricsFlag = cli.BoolFlag{
		Name:  "metrics",
		Usage: "Print the codec counters in the Prometheus text format after the command",
	}
)

// Command flags
var (
	// KindFlag selects the trie kind of the node.
	KindFlag = cli.StringFlag{
		Name:  "kind",
		Usage: "Trie kind: state, storage, tx, receipt, log, a multicodec name or a codec tag",
	}
)
