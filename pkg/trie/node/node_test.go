// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Node_Type(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		n        Node
		nodeType Type
		s        string
	}{
		"branch": {
			n:        &Branch{},
			nodeType: BranchType,
			s:        "branch",
		},
		"extension": {
			n:        &Extension{},
			nodeType: ExtensionType,
			s:        "extension",
		},
		"leaf": {
			n:        &Leaf{},
			nodeType: LeafType,
			s:        "leaf",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			nodeType := testCase.n.Type()

			assert.Equal(t, testCase.nodeType, nodeType)
			assert.Equal(t, testCase.s, nodeType.String())
		})
	}
}

func Test_Type_String_unknown(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unknown type 9", Type(9).String())
}

func Test_Branch_NumChildren(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, (&Branch{}).NumChildren())
	assert.Equal(t, 1, embeddedLeafBranch().NumChildren())
	branch := branchWithChildren(map[int]Child{
		0:  Ref{CID: testCID(1)},
		15: &Leaf{PartialPath: []byte{16}, Value: []byte{1}},
	}, nil)
	assert.Equal(t, 2, branch.NumChildren())
}

func Test_Node_String(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		n Node
		s string
	}{
		"empty branch": {
			n: &Branch{},
			s: `Branch
├── Value: nil
└── Children: 0`,
		},
		"branch with embedded leaf": {
			n: embeddedLeafBranch(),
			s: `Branch
├── Value: nil
├── Children: 1
└── Child3
    └── Leaf
        ├── Partial path: [5T]
        └── Value: 0x01`,
		},
		"branch with reference and value": {
			n: lastChildBranch(),
			s: `Branch
├── Value: 0x6869
├── Children: 1
└── ChildF
    └── Ref: ` + testCID(0x22).String(),
		},
		"empty extension": {
			n: &Extension{},
			s: `Extension
├── Partial path: nil
└── Child: undefined`,
		},
		"extension": {
			n: testExtension(),
			s: `Extension
├── Partial path: [123]
└── Child: ` + testCID(0x33).String(),
		},
		"leaf with long value": {
			n: &Leaf{
				PartialPath: []byte{0xa, 16},
				Value:       make([]byte, 21),
			},
			s: `Leaf
├── Partial path: [aT]
└── Value: 0x0000000000000000...0000000000000000`,
		},
		"leaf with record value": {
			n: &Leaf{
				PartialPath: []byte{16},
				Value:       struct{ Nonce uint64 }{Nonce: 7},
			},
			s: `Leaf
├── Partial path: [T]
└── Value: {Nonce:7}`,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := testCase.n.String()

			assert.Equal(t, testCase.s, s)
		})
	}
}
