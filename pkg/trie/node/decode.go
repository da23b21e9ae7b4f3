// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"fmt"

	"github.com/ChainSafe/dageth/pkg/ethcid"
	"github.com/ChainSafe/dageth/pkg/trie/codec"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

const (
	branchItems = ChildrenCapacity + 1
	shortItems  = 2
)

// element is a single item of an RLP list.
type element struct {
	kind    rlp.Kind
	content []byte
}

func (e element) isString() bool {
	return e.kind != rlp.List
}

// Decode decodes the canonical RLP encoding of a trie node
// of the kind given.
// It returns an error wrapping ErrDecode for malformed encodings,
// ErrValidation for structurally valid encodings breaking the model
// invariants, and a *ValueCodecError if a value cannot be decoded.
func Decode(kind Kind, encoded []byte) (n Node, err error) {
	err = kind.check()
	if err != nil {
		return nil, err
	}

	rlpKind, content, rest, err := rlp.Split(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedRLP, err)
	} else if rlpKind != rlp.List {
		return nil, fmt.Errorf("%w: found %s", ErrNotList, rlpKind)
	} else if len(rest) > 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTrailingBytes, len(rest))
	}

	elements, err := splitElements(content)
	if err != nil {
		return nil, err
	}

	switch len(elements) {
	case branchItems:
		n, err = decodeBranch(kind, elements)
		if err != nil {
			return nil, fmt.Errorf("cannot decode branch: %w", err)
		}
		return n, nil
	case shortItems:
		return decodeShort(kind, elements)
	default:
		return nil, fmt.Errorf("%w: %d", ErrListLength, len(elements))
	}
}

func splitElements(content []byte) (elements []element, err error) {
	count, err := rlp.CountValues(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedRLP, err)
	}

	elements = make([]element, 0, count)
	for len(content) > 0 {
		var e element
		e.kind, e.content, content, err = rlp.Split(content)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedRLP, err)
		}
		elements = append(elements, e)
	}
	return elements, nil
}

func decodeBranch(kind Kind, elements []element) (branch *Branch, err error) {
	branch = new(Branch)

	for i := 0; i < ChildrenCapacity; i++ {
		branch.Children[i], err = decodeChild(kind, elements[i])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ChildSlotNames[i], err)
		}
	}

	valueElement := elements[ChildrenCapacity]
	if !valueElement.isString() {
		return nil, ErrValueNotAString
	}

	if len(valueElement.content) == 0 {
		return branch, nil
	}

	branch.Value, err = decodeValue(kind, valueElement.content)
	if err != nil {
		return nil, err
	}

	return branch, nil
}

func decodeChild(kind Kind, e element) (child Child, err error) {
	if !e.isString() {
		elements, err := splitElements(e.content)
		if err != nil {
			return nil, err
		}

		if len(elements) != shortItems {
			return nil, fmt.Errorf("%w: embedded list has %d items",
				ErrChildEncoding, len(elements))
		}

		n, err := decodeShort(kind, elements)
		if err != nil {
			return nil, fmt.Errorf("embedded node: %w", err)
		}

		leaf, ok := n.(*Leaf)
		if !ok {
			return nil, fmt.Errorf("%w: found %s", ErrEmbeddedNode, n.Type())
		}
		return leaf, nil
	}

	switch len(e.content) {
	case 0:
		return nil, nil //nolint:nilnil
	case ethcid.HashLength:
		c, err := ethcid.FromHash(kind.Code, e.content)
		if err != nil {
			return nil, err
		}
		return Ref{CID: c}, nil
	default:
		return nil, fmt.Errorf("%w: string of %d bytes",
			ErrChildEncoding, len(e.content))
	}
}

// decodeShort decodes the two elements of a leaf or extension node,
// telling them apart with the hex prefix flag of the partial path.
func decodeShort(kind Kind, elements []element) (n Node, err error) {
	pathElement, secondElement := elements[0], elements[1]
	if !pathElement.isString() {
		return nil, fmt.Errorf("%w: path is a list", ErrPathEncoding)
	}

	partialPath, err := codec.CompactToNibbles(pathElement.content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPathEncoding, err)
	}

	if codec.IsLeafTerminated(partialPath) {
		leaf, err := decodeLeaf(kind, partialPath, secondElement)
		if err != nil {
			return nil, fmt.Errorf("cannot decode leaf: %w", err)
		}
		return leaf, nil
	}

	extension, err := decodeExtension(kind, partialPath, secondElement)
	if err != nil {
		return nil, fmt.Errorf("cannot decode extension: %w", err)
	}
	return extension, nil
}

func decodeLeaf(kind Kind, partialPath []byte, valueElement element) (
	leaf *Leaf, err error) {
	if !valueElement.isString() {
		return nil, ErrValueNotAString
	}

	if len(valueElement.content) == 0 {
		return nil, ErrLeafValueMissing
	}

	value, err := decodeValue(kind, valueElement.content)
	if err != nil {
		return nil, err
	}

	return &Leaf{
		PartialPath: partialPath,
		Value:       value,
	}, nil
}

func decodeExtension(kind Kind, partialPath []byte, childElement element) (
	extension *Extension, err error) {
	if !childElement.isString() {
		return nil, fmt.Errorf("%w: found list", ErrExtensionChild)
	} else if len(childElement.content) != ethcid.HashLength {
		return nil, fmt.Errorf("%w: found %d bytes",
			ErrExtensionChild, len(childElement.content))
	}

	child, err := ethcid.FromHash(kind.Code, childElement.content)
	if err != nil {
		return nil, err
	}

	return &Extension{
		PartialPath: partialPath,
		Child:       child,
	}, nil
}

func decodeValue(kind Kind, content []byte) (value Value, err error) {
	value, err = kind.Values.DecodeValue(common.CopyBytes(content))
	if err != nil {
		return nil, newValueCodecError(kind, OpDecode, err)
	}
	return value, nil
}
