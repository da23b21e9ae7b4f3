// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ChainSafe/dageth/pkg/ethcid"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multicodec"
)

var (
	errTest       = errors.New("test error")
	errNotBytes   = errors.New("value is not a byte slice")
	errEmptyBytes = errors.New("value is empty")
)

// bytesValues is a value codec storing raw byte slices.
type bytesValues struct{}

func (bytesValues) EncodeValue(value Value) (encoded []byte, err error) {
	b, ok := value.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: %T", errNotBytes, value)
	}
	return b, nil
}

func (bytesValues) DecodeValue(encoded []byte) (value Value, err error) {
	return encoded, nil
}

func (bytesValues) IsValue(x interface{}) bool {
	_, ok := x.([]byte)
	return ok
}

func (v bytesValues) PrepareValue(untyped interface{}) (value Value, err error) {
	var b []byte
	switch x := untyped.(type) {
	case []byte:
		b = append([]byte{}, x...)
	case string:
		b, err = hexutil.Decode(x)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %T", errNotBytes, untyped)
	}

	err = v.ValidateValue(b)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (bytesValues) ValidateValue(value Value) (err error) {
	if len(value.([]byte)) == 0 {
		return errEmptyBytes
	}
	return nil
}

var testKind = Kind{
	Name:   "test",
	Code:   multicodec.EthStorageTrie,
	Values: bytesValues{},
}

func digest(b byte) []byte {
	return bytes.Repeat([]byte{b}, ethcid.HashLength)
}

func testCID(b byte) cid.Cid {
	c, err := ethcid.FromHash(testKind.Code, digest(b))
	if err != nil {
		panic(err)
	}
	return c
}

// dagCBORCID is a keccak CID tagged with a codec no trie kind uses.
func dagCBORCID(b byte) cid.Cid {
	c, err := ethcid.FromHash(multicodec.DagCbor, digest(b))
	if err != nil {
		panic(err)
	}
	return c
}

func concat(slices ...[]byte) (result []byte) {
	for _, slice := range slices {
		result = append(result, slice...)
	}
	return result
}

func emptyStrings(count int) []byte {
	return bytes.Repeat([]byte{0x80}, count)
}

func branchWithChildren(children map[int]Child, value Value) *Branch {
	branch := &Branch{Value: value}
	for i, child := range children {
		branch.Children[i] = child
	}
	return branch
}

// Encodings shared by the decode and encode tests.
var (
	// Child0 references digest(0x11).
	firstChildBranchEncoding = concat([]byte{0xf1, 0xa0}, digest(0x11), emptyStrings(16))
	// Child15 references digest(0x22) and the value is "hi".
	lastChildBranchEncoding = concat([]byte{0xf3}, emptyStrings(15),
		[]byte{0xa0}, digest(0x22), []byte{0x82, 'h', 'i'})
	// Child3 embeds a leaf with path 5 and value 0x01.
	embeddedLeafBranchEncoding = concat([]byte{0xd3}, emptyStrings(3),
		[]byte{0xc2, 0x35, 0x01}, emptyStrings(13))
	// Path f1cb8 and value "hello".
	leafEncoding = []byte{0xca, 0x83, 0x3f, 0x1c, 0xb8, 0x85, 'h', 'e', 'l', 'l', 'o'}
	// Path 123 and child digest(0x33).
	extensionEncoding = concat([]byte{0xe4, 0x82, 0x11, 0x23, 0xa0}, digest(0x33))
	// Path 12 and child digest(0x44).
	evenExtensionEncoding = concat([]byte{0xe4, 0x82, 0x00, 0x12, 0xa0}, digest(0x44))
)

func firstChildBranch() *Branch {
	return branchWithChildren(map[int]Child{0: Ref{CID: testCID(0x11)}}, nil)
}

func lastChildBranch() *Branch {
	return branchWithChildren(map[int]Child{15: Ref{CID: testCID(0x22)}}, []byte("hi"))
}

func embeddedLeafBranch() *Branch {
	return branchWithChildren(map[int]Child{
		3: &Leaf{PartialPath: []byte{5, 16}, Value: []byte{0x01}},
	}, nil)
}

func testLeaf() *Leaf {
	return &Leaf{
		PartialPath: []byte{0xf, 0x1, 0xc, 0xb, 0x8, 16},
		Value:       []byte("hello"),
	}
}

func testExtension() *Extension {
	return &Extension{
		PartialPath: []byte{1, 2, 3},
		Child:       testCID(0x33),
	}
}

func evenExtension() *Extension {
	return &Extension{
		PartialPath: []byte{1, 2},
		Child:       testCID(0x44),
	}
}
