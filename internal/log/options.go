// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"io"
)

// Option modifies the settings of a logger.
type Option func(s *settings)

// SetLevel sets the minimum level logged, Info by default.
func SetLevel(level Level) Option {
	return func(s *settings) {
		s.level = &level
	}
}

// SetFormat sets how the level is printed, FormatConsole by default.
// The command line sets FormatPlain when colours are disabled.
func SetFormat(format Format) Option {
	return func(s *settings) {
		s.format = &format
	}
}

// SetWriter sets where lines are written, os.Stdout by default.
// The command line writes to os.Stderr to keep its standard
// output for decoded nodes and CIDs.
func SetWriter(writer io.Writer) Option {
	return func(s *settings) {
		s.writer = writer
	}
}

// AddContext appends a value to the context key given, creating
// the key after the existing ones if it is not set yet.
func AddContext(key, value string) Option {
	return func(s *settings) {
		for i := range s.context {
			if s.context[i].key != key {
				continue
			}
			s.context[i].values = append(s.context[i].values, value)
			return
		}
		s.context = append(s.context, contextKeyValues{
			key:    key,
			values: []string{value},
		})
	}
}
