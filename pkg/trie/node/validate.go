// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"fmt"

	"github.com/ChainSafe/dageth/pkg/ethcid"
	"github.com/ChainSafe/dageth/pkg/trie/codec"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multicodec"
)

// Validate checks the node satisfies the invariants of the trie model
// for the kind given, and returns the first violation found.
// Every error returned wraps ErrValidation.
func Validate(kind Kind, n Node) (err error) {
	err = kind.check()
	if err != nil {
		return err
	}

	switch n := n.(type) {
	case *Branch:
		if n == nil {
			return ErrNilNode
		}
		err = validateBranch(kind, n)
		if err != nil {
			return fmt.Errorf("branch: %w", err)
		}
	case *Extension:
		if n == nil {
			return ErrNilNode
		}
		err = validateExtension(kind, n)
		if err != nil {
			return fmt.Errorf("extension: %w", err)
		}
	case *Leaf:
		if n == nil {
			return ErrNilNode
		}
		err = validateLeaf(kind, n)
		if err != nil {
			return fmt.Errorf("leaf: %w", err)
		}
	case nil:
		return ErrNilNode
	default:
		return fmt.Errorf("%w: %T", ErrNodeType, n)
	}
	return nil
}

func validateBranch(kind Kind, branch *Branch) (err error) {
	for i, child := range branch.Children {
		switch child := child.(type) {
		case nil:
		case Ref:
			err = validateCID(kind, child.CID)
			if err != nil {
				return fmt.Errorf("%s: %w", ChildSlotNames[i], err)
			}
		case *Leaf:
			if child == nil {
				return fmt.Errorf("%s: %w", ChildSlotNames[i], ErrNilNode)
			}
			err = validateLeaf(kind, child)
			if err != nil {
				return fmt.Errorf("%s: embedded leaf: %w", ChildSlotNames[i], err)
			}
		default:
			return fmt.Errorf("%s: %w: %T", ChildSlotNames[i], ErrChildType, child)
		}
	}

	if branch.Value == nil {
		return nil
	}
	return validateValue(kind, branch.Value)
}

func validateExtension(kind Kind, extension *Extension) (err error) {
	err = validatePath(extension.PartialPath, false)
	if err != nil {
		return err
	}

	err = validateCID(kind, extension.Child)
	if err != nil {
		return fmt.Errorf("child: %w", err)
	}
	return nil
}

// validateCID checks the CID carries a 32 bytes Keccak-256 digest
// and is tagged with the codec of the trie kind.
func validateCID(kind Kind, c cid.Cid) (err error) {
	if !c.Defined() {
		return ErrUndefinedCID
	}

	_, err = ethcid.ToHash(c)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrCID, err)
	}

	code := multicodec.Code(c.Prefix().Codec)
	if code != kind.Code {
		return fmt.Errorf("%w: codec %s instead of %s", ErrCID, code, kind.Code)
	}
	return nil
}

func validateLeaf(kind Kind, leaf *Leaf) (err error) {
	err = validatePath(leaf.PartialPath, true)
	if err != nil {
		return err
	}

	if leaf.Value == nil {
		return ErrLeafValueMissing
	}
	return validateValue(kind, leaf.Value)
}

// validatePath checks every nibble is in the range 0-15,
// except for the terminator 16 which must end leaf paths
// and nothing else.
func validatePath(path []byte, isLeaf bool) (err error) {
	last := len(path) - 1
	for i, nibble := range path {
		switch {
		case nibble < codec.Terminator:
		case nibble == codec.Terminator && isLeaf && i == last:
		case nibble == codec.Terminator:
			return fmt.Errorf("%w: at index %d", ErrTerminator, i)
		default:
			return fmt.Errorf("%w: %d at index %d", ErrNibble, nibble, i)
		}
	}

	if isLeaf && !codec.IsLeafTerminated(path) {
		return fmt.Errorf("%w: leaf path is not terminated", ErrTerminator)
	}
	return nil
}

func validateValue(kind Kind, value Value) (err error) {
	if !kind.Values.IsValue(value) {
		return fmt.Errorf("%w: %T", ErrValueType, value)
	}

	err = kind.Values.ValidateValue(value)
	if err != nil {
		return newValueCodecError(kind, OpValidate, err)
	}
	return nil
}
