// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"fmt"

	"github.com/ChainSafe/dageth/pkg/ethcid"
	"github.com/ChainSafe/dageth/pkg/trie/codec"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ipfs/go-cid"
)

// Encode returns the canonical RLP encoding of the node,
// the exact inverse of Decode.
func Encode(kind Kind, n Node) (encoding []byte, err error) {
	err = kind.check()
	if err != nil {
		return nil, err
	}

	items, err := pack(kind, n)
	if err != nil {
		return nil, err
	}

	encoding, err = rlp.EncodeToBytes(items)
	if err != nil {
		return nil, fmt.Errorf("rlp encoding node: %w", err)
	}
	return encoding, nil
}

// EncodeAndHash returns the encoding of the node and
// its CID, tagged with the codec of the trie kind.
func EncodeAndHash(kind Kind, n Node) (encoding []byte, id cid.Cid, err error) {
	encoding, err = Encode(kind, n)
	if err != nil {
		return nil, cid.Undef, err
	}

	id, err = ethcid.Sum(kind.Code, encoding)
	if err != nil {
		return nil, cid.Undef, fmt.Errorf("hashing encoding: %w", err)
	}
	return encoding, id, nil
}

// pack returns the RLP items of the node, where byte slices
// are strings and []interface{} are lists.
func pack(kind Kind, n Node) (items []interface{}, err error) {
	switch n := n.(type) {
	case *Branch:
		if n == nil {
			return nil, ErrNilNode
		}
		items, err = packBranch(kind, n)
		if err != nil {
			return nil, fmt.Errorf("cannot encode branch: %w", err)
		}
		return items, nil
	case *Extension:
		if n == nil {
			return nil, ErrNilNode
		}
		items, err = packExtension(kind, n)
		if err != nil {
			return nil, fmt.Errorf("cannot encode extension: %w", err)
		}
		return items, nil
	case *Leaf:
		if n == nil {
			return nil, ErrNilNode
		}
		items, err = packLeaf(kind, n)
		if err != nil {
			return nil, fmt.Errorf("cannot encode leaf: %w", err)
		}
		return items, nil
	case nil:
		return nil, ErrNilNode
	default:
		return nil, fmt.Errorf("%w: %T", ErrNodeType, n)
	}
}

func packBranch(kind Kind, branch *Branch) (items []interface{}, err error) {
	items = make([]interface{}, branchItems)

	for i, child := range branch.Children {
		items[i], err = packChild(kind, child)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ChildSlotNames[i], err)
		}
	}

	if branch.Value == nil {
		items[ChildrenCapacity] = []byte{}
		return items, nil
	}

	encodedValue, err := encodeValue(kind, branch.Value)
	if err != nil {
		return nil, err
	}
	items[ChildrenCapacity] = encodedValue

	return items, nil
}

func packChild(kind Kind, child Child) (item interface{}, err error) {
	switch child := child.(type) {
	case nil:
		return []byte{}, nil
	case Ref:
		hash, err := cidToHash(kind, child.CID)
		if err != nil {
			return nil, err
		}
		return hash, nil
	case *Leaf:
		if child == nil {
			return nil, ErrNilNode
		}
		items, err := packLeaf(kind, child)
		if err != nil {
			return nil, fmt.Errorf("embedded leaf: %w", err)
		}
		return items, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrChildType, child)
	}
}

func packExtension(kind Kind, extension *Extension) (items []interface{}, err error) {
	err = validatePath(extension.PartialPath, false)
	if err != nil {
		return nil, err
	}

	path, err := codec.NibblesToCompact(extension.PartialPath, false)
	if err != nil {
		return nil, err
	}

	hash, err := cidToHash(kind, extension.Child)
	if err != nil {
		return nil, err
	}

	return []interface{}{path, hash}, nil
}

func packLeaf(kind Kind, leaf *Leaf) (items []interface{}, err error) {
	err = validatePath(leaf.PartialPath, true)
	if err != nil {
		return nil, err
	}

	path, err := codec.NibblesToCompact(leaf.PartialPath, true)
	if err != nil {
		return nil, err
	}

	if leaf.Value == nil {
		return nil, ErrLeafValueMissing
	}

	encodedValue, err := encodeValue(kind, leaf.Value)
	if err != nil {
		return nil, err
	}

	return []interface{}{path, encodedValue}, nil
}

func encodeValue(kind Kind, value Value) (encoded []byte, err error) {
	encoded, err = kind.Values.EncodeValue(value)
	if err != nil {
		return nil, newValueCodecError(kind, OpEncode, err)
	}

	if len(encoded) == 0 {
		return nil, ErrEmptyValue
	}
	return encoded, nil
}

func cidToHash(kind Kind, c cid.Cid) (hash []byte, err error) {
	err = validateCID(kind, c)
	if err != nil {
		return nil, err
	}
	return ethcid.ToHash(c)
}
