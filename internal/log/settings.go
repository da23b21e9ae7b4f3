// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"io"
	"os"
)

type settings struct {
	writer  io.Writer
	level   *Level
	format  *Format
	context []contextKeyValues
}

type contextKeyValues struct {
	key    string
	values []string
}

func newSettings(options []Option) (s settings) {
	for _, option := range options {
		option(&s)
	}
	return s
}

// mergeWith sets the fields of other that are set on s,
// and appends the context values of other to the ones of s.
func (s *settings) mergeWith(other settings) {
	if other.writer != nil {
		s.writer = other.writer
	}

	if other.level != nil {
		value := *other.level
		s.level = &value
	}

	if other.format != nil {
		value := *other.format
		s.format = &value
	}

	for _, kvs := range other.context {
		for _, value := range kvs.values {
			AddContext(kvs.key, value)(s)
		}
	}
}

func (s *settings) setDefaults() {
	if s.writer == nil {
		s.writer = os.Stdout
	}

	if s.level == nil {
		value := Info
		s.level = &value
	}

	if s.format == nil {
		value := FormatConsole
		s.format = &value
	}
}

func (s settings) copy() (copied settings) {
	copied = s
	copied.context = nil
	for _, kvs := range s.context {
		copied.context = append(copied.context, contextKeyValues{
			key:    kvs.key,
			values: append([]string{}, kvs.values...),
		})
	}
	return copied
}
