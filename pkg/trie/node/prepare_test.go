// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multicodec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Prepare(t *testing.T) {
	t.Parallel()

	childCID := testCID(0x33)

	testCases := map[string]struct {
		untyped    interface{}
		n          Node
		errWrapped error
		errMessage string
	}{
		"nil": {
			errWrapped: ErrNilNode,
			errMessage: "invalid trie node: node is nil",
		},
		"unsupported type": {
			untyped:    42,
			errWrapped: ErrUnknownShape,
			errMessage: "invalid trie node: unknown node shape: int",
		},
		"typed leaf": {
			untyped: testLeaf(),
			n:       testLeaf(),
		},
		"typed leaf value without terminator": {
			untyped: Leaf{PartialPath: []byte{0xf, 0x1, 0xc, 0xb, 0x8}, Value: []byte("hello")},
			n:       testLeaf(),
		},
		"typed extension": {
			untyped: *testExtension(),
			n:       testExtension(),
		},
		"typed branch": {
			untyped: embeddedLeafBranch(),
			n:       embeddedLeafBranch(),
		},
		"nil typed extension": {
			untyped:    (*Extension)(nil),
			errWrapped: ErrNilNode,
			errMessage: "invalid trie node: node is nil",
		},
		"leaf fields with hex path": {
			untyped: map[string]interface{}{
				"PartialPath": "0xf1cb8",
				"Value":       "0x68656c6c6f",
			},
			n: testLeaf(),
		},
		"leaf fields with integer path": {
			untyped: map[string]interface{}{
				"PartialPath": []int{0xf, 0x1, 0xc, 0xb, 0x8, 16},
				"Value":       []byte("hello"),
			},
			n: testLeaf(),
		},
		"leaf fields with decoded JSON path": {
			untyped: map[string]interface{}{
				"PartialPath": []interface{}{15.0, 1.0, 12.0, 11.0, 8.0},
				"Value":       []byte("hello"),
			},
			n: testLeaf(),
		},
		"leaf fields without value": {
			untyped: map[string]interface{}{
				"PartialPath": []byte{1},
				"Value":       nil,
			},
			errWrapped: ErrLeafValueMissing,
			errMessage: "invalid trie node: leaf value is missing",
		},
		"leaf fields with empty value": {
			untyped: map[string]interface{}{
				"PartialPath": []byte{1},
				"Value":       []byte{},
			},
			errWrapped: errEmptyBytes,
			errMessage: "leaf: test value codec cannot prepare value: value is empty",
		},
		"leaf fields with bad path character": {
			untyped: map[string]interface{}{
				"PartialPath": "0x1g",
				"Value":       []byte{1},
			},
			errWrapped: ErrPathType,
			errMessage: "leaf: invalid trie node: partial path type not supported: " +
				"character 'g' at index 1",
		},
		"leaf fields with nibble out of range": {
			untyped: map[string]interface{}{
				"PartialPath": []int{1, 17},
				"Value":       []byte{1},
			},
			errWrapped: ErrNibble,
			errMessage: "leaf: invalid trie node: nibble out of range: 17 at index 1",
		},
		"extension fields with digest child": {
			untyped: map[string]interface{}{
				"PartialPath": []byte{1, 2, 3},
				"Child":       common.BytesToHash(digest(0x33)),
			},
			n: testExtension(),
		},
		"extension fields with hex digest child": {
			untyped: map[string]interface{}{
				"PartialPath": "123",
				"Child":       common.BytesToHash(digest(0x33)).Hex(),
			},
			n: testExtension(),
		},
		"extension fields with CID string child": {
			untyped: map[string]interface{}{
				"PartialPath": "123",
				"Child":       childCID.String(),
			},
			n: testExtension(),
		},
		"extension fields with binary CID child": {
			untyped: map[string]interface{}{
				"PartialPath": "123",
				"Child":       childCID.Bytes(),
			},
			n: testExtension(),
		},
		"extension fields with terminator": {
			untyped: map[string]interface{}{
				"PartialPath": []byte{1, 16},
				"Child":       childCID,
			},
			errWrapped: ErrTerminator,
			errMessage: "extension: invalid trie node: misplaced terminator: at index 1",
		},
		"extension fields without child": {
			untyped: map[string]interface{}{
				"PartialPath": []byte{1},
				"Child":       nil,
			},
			errWrapped: ErrUndefinedCID,
			errMessage: "extension child: invalid trie node: cid is undefined",
		},
		"extension fields with short digest": {
			untyped: map[string]interface{}{
				"PartialPath": []byte{1},
				"Child":       "0x0102",
			},
			errWrapped: ErrCID,
			errMessage: "extension child: invalid trie node: bad cid: " +
				"digest length is not 32 bytes: 2",
		},
		"extension fields with child of another codec": {
			untyped: map[string]interface{}{
				"PartialPath": []byte{1, 2},
				"Child":       dagCBORCID(0x42),
			},
			errWrapped: ErrCID,
			errMessage: "validating prepared node: extension: child: invalid trie node: " +
				"bad cid: codec dag-cbor instead of eth-storage-trie",
		},
		"extension fields with non keccak child": {
			untyped: map[string]interface{}{
				"PartialPath": []byte{1, 2},
				"Child":       sha256CID(t),
			},
			errWrapped: ErrCID,
			errMessage: "validating prepared node: extension: child: invalid trie node: " +
				"bad cid: multihash is not keccak-256: code 0x12",
		},
		"extension fields with extra field": {
			untyped: map[string]interface{}{
				"PartialPath": []byte{1},
				"Child":       childCID,
				"Child0":      childCID,
			},
			errWrapped: ErrExtraneousField,
			errMessage: "invalid trie node: extraneous field: Child0 in extension",
		},
		"path only": {
			untyped: map[string]interface{}{
				"PartialPath": []byte{1},
			},
			errWrapped: ErrUnknownShape,
			errMessage: "invalid trie node: unknown node shape: PartialPath without Child or Value",
		},
		"path child and value": {
			untyped: map[string]interface{}{
				"PartialPath": []byte{1},
				"Child":       childCID,
				"Value":       []byte{1},
			},
			errWrapped: ErrUnknownShape,
			errMessage: "invalid trie node: unknown node shape: " +
				"both Child and Value are set with PartialPath",
		},
		"branch fields": {
			untyped: map[string]interface{}{
				"Child3": map[string]interface{}{
					"PartialPath": []byte{5},
					"Value":       []byte{1},
				},
				"ChildF": Ref{CID: testCID(0x22)},
				"Value":  "0x6869",
			},
			n: branchWithChildren(map[int]Child{
				3:  &Leaf{PartialPath: []byte{5, 16}, Value: []byte{1}},
				15: Ref{CID: testCID(0x22)},
			}, []byte("hi")),
		},
		"empty branch fields": {
			untyped: map[string]interface{}{},
			n:       &Branch{},
		},
		"branch fields with extra field": {
			untyped: map[string]interface{}{
				"Child0": childCID,
				"Child":  childCID,
			},
			errWrapped: ErrExtraneousField,
			errMessage: "invalid trie node: extraneous field: Child in branch",
		},
		"branch fields with embedded extension": {
			untyped: map[string]interface{}{
				"Child1": map[string]interface{}{
					"PartialPath": []byte{5},
					"Child":       childCID,
				},
			},
			errWrapped: ErrChildType,
			errMessage: "branch Child1: invalid trie node: " +
				"branch child type not supported: embedded extension",
		},
		"branch fields with bad child": {
			untyped: map[string]interface{}{
				"Child2": 3.5,
			},
			errWrapped: ErrCID,
			errMessage: "branch Child2: invalid trie node: bad cid: type not supported: float64",
		},
		"branch fields with child of another codec": {
			untyped: map[string]interface{}{
				"Child9": dagCBORCID(9).String(),
			},
			errWrapped: ErrCID,
			errMessage: "validating prepared node: branch: Child9: invalid trie node: " +
				"bad cid: codec dag-cbor instead of eth-storage-trie",
		},
		"branch fields with undefined child": {
			untyped: map[string]interface{}{
				"Child2": cid.Undef,
			},
			errWrapped: ErrUndefinedCID,
			errMessage: "branch Child2: invalid trie node: cid is undefined",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			n, err := Prepare(testKind, testCase.untyped)

			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errWrapped != nil {
				assert.ErrorIs(t, err, ErrValidation)
				assert.EqualError(t, err, testCase.errMessage)
			}
			assert.Equal(t, testCase.n, n)

			if err == nil {
				assert.NoError(t, Validate(testKind, n))
			}
		})
	}
}

func Test_Prepare_doesNotAlias(t *testing.T) {
	t.Parallel()

	path := []byte{1, 2, 3}
	n, err := Prepare(testKind, map[string]interface{}{
		"PartialPath": path,
		"Child":       testCID(1),
	})
	require.NoError(t, err)

	path[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, n.(*Extension).PartialPath)
}

func Test_Prepare_Encode(t *testing.T) {
	t.Parallel()

	n, err := Prepare(testKind, map[string]interface{}{
		"PartialPath": "f1cb8",
		"Value":       []byte("hello"),
	})
	require.NoError(t, err)

	encoding, err := Encode(testKind, n)
	require.NoError(t, err)
	assert.Equal(t, leafEncoding, encoding)
}

func Test_Prepare_valueCodecError(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	values := NewMockValueCodec(ctrl)
	values.EXPECT().PrepareValue("raw").Return(nil, errTest)
	kind := Kind{Name: "mock", Code: multicodec.EthReceiptLogTrie, Values: values}

	n, err := Prepare(kind, map[string]interface{}{
		"PartialPath": []byte{1},
		"Value":       "raw",
	})

	assert.Nil(t, n)
	assert.ErrorIs(t, err, ErrValueCodec)
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, errTest)
	assert.EqualError(t, err, "leaf: mock value codec cannot prepare value: test error")
}
