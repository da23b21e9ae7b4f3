// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

// Format is the format of the logger output.
type Format uint8

const (
	// FormatConsole prints the level coloured.
	FormatConsole Format = iota
	// FormatPlain prints the level without colour.
	FormatPlain
)

func (f Format) levelString(level Level) string {
	if f == FormatConsole {
		return level.ColouredString()
	}
	return level.String()
}
