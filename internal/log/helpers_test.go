// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"io"
	"sync"
)

// RFC3339 timestamp followed by a space.
const timePrefixRegex = `^[0-9]{4}-[0-9]{2}-[0-9]{2}T` +
	`[0-9]{2}:[0-9]{2}:[0-9]{2}(\.[0-9]+)?(Z|[+-][0-9]{2}:[0-9]{2}) `

func levelPtr(l Level) *Level { return &l }

func formatPtr(f Format) *Format { return &f }

// testLogger returns a plain format logger writing to writer,
// with the context key values given as key, value, key, value...
func testLogger(writer io.Writer, level Level, keyValues ...string) *Logger {
	s := settings{
		writer: writer,
		level:  levelPtr(level),
		format: formatPtr(FormatPlain),
	}
	for i := 0; i+1 < len(keyValues); i += 2 {
		AddContext(keyValues[i], keyValues[i+1])(&s)
	}
	return &Logger{settings: s, mutex: new(sync.Mutex)}
}
