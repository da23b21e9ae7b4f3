// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_New(t *testing.T) {
	t.Parallel()

	defaults := New()
	assert.Equal(t, os.Stdout, defaults.settings.writer)
	assert.Equal(t, levelPtr(Info), defaults.settings.level)
	assert.Equal(t, formatPtr(FormatConsole), defaults.settings.format)
	assert.Empty(t, defaults.settings.context)

	configured := New(SetLevel(Trace), SetFormat(FormatPlain), SetWriter(io.Discard),
		AddContext("pkg", "node"), AddContext("pkg", "ethtrie"))
	assert.Equal(t, testLogger(io.Discard, Trace, "pkg", "node", "pkg", "ethtrie"), configured)
}

func Test_Logger_New(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		parent   *Logger
		options  []Option
		expected *Logger
	}{
		"inherits parent settings": {
			parent:   testLogger(io.Discard, Warn, "pkg", "cmd"),
			expected: testLogger(io.Discard, Warn, "pkg", "cmd"),
		},
		"options override parent settings": {
			parent: testLogger(os.Stdout, Info, "pkg", "cmd"),
			options: []Option{
				SetLevel(Debug),
				SetWriter(io.Discard),
				AddContext("pkg", "ethtrie"),
				AddContext("kind", "receipt"),
			},
			expected: testLogger(io.Discard, Debug,
				"pkg", "cmd", "pkg", "ethtrie", "kind", "receipt"),
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			child := testCase.parent.New(testCase.options...)

			assert.Equal(t, testCase.expected.settings, child.settings)
			assert.Same(t, testCase.parent.mutex, child.mutex)
			assert.Equal(t, []*Logger{child}, testCase.parent.childs)
		})
	}
}

func Test_Logger_New_doesNotAliasParentContext(t *testing.T) {
	t.Parallel()

	parent := testLogger(io.Discard, Info, "pkg", "parent")
	_ = parent.New(AddContext("pkg", "child"))

	assert.Equal(t, []contextKeyValues{
		{key: "pkg", values: []string{"parent"}},
	}, parent.settings.context)
}
