// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ChainSafe/dageth/internal/prep"
	"github.com/ChainSafe/dageth/pkg/trie/codec"
	"github.com/ipfs/go-cid"
)

// Field names of extension and leaf nodes.
const (
	PartialPathFieldName = "PartialPath"
	ChildFieldName       = "Child"
)

// Prepare coerces a loosely typed node into a node of the model,
// which always satisfies Validate.
// It accepts typed nodes, as values or pointers, and field maps
// keyed by Child0 to ChildF and Value for branches, PartialPath and
// Child for extensions and PartialPath and Value for leaves.
func Prepare(kind Kind, untyped interface{}) (n Node, err error) {
	err = kind.check()
	if err != nil {
		return nil, err
	}

	n, err = prepare(kind, untyped)
	if err != nil {
		return nil, err
	}

	err = Validate(kind, n)
	if err != nil {
		return nil, fmt.Errorf("validating prepared node: %w", err)
	}
	return n, nil
}

func prepare(kind Kind, untyped interface{}) (n Node, err error) {
	switch x := untyped.(type) {
	case nil:
		return nil, ErrNilNode
	case *Branch:
		if x == nil {
			return nil, ErrNilNode
		}
		return prepare(kind, *x)
	case Branch:
		var children [ChildrenCapacity]interface{}
		for i, child := range x.Children {
			if child != nil {
				children[i] = child
			}
		}
		return prepareBranch(kind, children, x.Value)
	case *Extension:
		if x == nil {
			return nil, ErrNilNode
		}
		return prepare(kind, *x)
	case Extension:
		return prepareExtension(kind, x.PartialPath, x.Child)
	case *Leaf:
		if x == nil {
			return nil, ErrNilNode
		}
		return prepare(kind, *x)
	case Leaf:
		return prepareLeaf(kind, x.PartialPath, x.Value)
	case map[string]interface{}:
		return prepareFields(kind, x)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownShape, untyped)
	}
}

func prepareFields(kind Kind, fields map[string]interface{}) (n Node, err error) {
	nodeType, err := shapeOf(fields)
	if err != nil {
		return nil, err
	}

	switch nodeType {
	case ExtensionType:
		return prepareExtension(kind, fields[PartialPathFieldName], fields[ChildFieldName])
	case LeafType:
		return prepareLeaf(kind, fields[PartialPathFieldName], fields[ValueFieldName])
	default:
		var children [ChildrenCapacity]interface{}
		for i, name := range ChildSlotNames {
			children[i] = fields[name]
		}
		return prepareBranch(kind, children, fields[ValueFieldName])
	}
}

var (
	branchFields = func() map[string]struct{} {
		fields := make(map[string]struct{}, branchItems)
		for _, name := range ChildSlotNames {
			fields[name] = struct{}{}
		}
		fields[ValueFieldName] = struct{}{}
		return fields
	}()
	extensionFields = map[string]struct{}{
		PartialPathFieldName: {},
		ChildFieldName:       {},
	}
	leafFields = map[string]struct{}{
		PartialPathFieldName: {},
		ValueFieldName:       {},
	}
)

// shapeOf returns the node type matching the field names given.
func shapeOf(fields map[string]interface{}) (nodeType Type, err error) {
	_, hasPath := fields[PartialPathFieldName]
	_, hasChild := fields[ChildFieldName]
	_, hasValue := fields[ValueFieldName]

	var allowed map[string]struct{}
	switch {
	case hasPath && hasChild && hasValue:
		return 0, fmt.Errorf("%w: both %s and %s are set with %s",
			ErrUnknownShape, ChildFieldName, ValueFieldName, PartialPathFieldName)
	case hasPath && hasChild:
		nodeType, allowed = ExtensionType, extensionFields
	case hasPath && hasValue:
		nodeType, allowed = LeafType, leafFields
	case hasPath:
		return 0, fmt.Errorf("%w: %s without %s or %s",
			ErrUnknownShape, PartialPathFieldName, ChildFieldName, ValueFieldName)
	default:
		nodeType, allowed = BranchType, branchFields
	}

	for name := range fields {
		if _, ok := allowed[name]; !ok {
			return 0, fmt.Errorf("%w: %s in %s", ErrExtraneousField, name, nodeType)
		}
	}
	return nodeType, nil
}

func prepareBranch(kind Kind, children [ChildrenCapacity]interface{},
	value interface{}) (branch *Branch, err error) {
	branch = new(Branch)
	for i, child := range children {
		branch.Children[i], err = prepareChild(kind, child)
		if err != nil {
			return nil, fmt.Errorf("branch %s: %w", ChildSlotNames[i], err)
		}
	}

	if value == nil {
		return branch, nil
	}

	branch.Value, err = prepareValue(kind, value)
	if err != nil {
		return nil, fmt.Errorf("branch: %w", err)
	}
	return branch, nil
}

func prepareExtension(kind Kind, path, child interface{}) (extension *Extension, err error) {
	partialPath, err := preparePath(path, false)
	if err != nil {
		return nil, fmt.Errorf("extension: %w", err)
	}

	childCID, err := prepareCID(kind, child)
	if err != nil {
		return nil, fmt.Errorf("extension child: %w", err)
	}

	return &Extension{
		PartialPath: partialPath,
		Child:       childCID,
	}, nil
}

func prepareLeaf(kind Kind, path, value interface{}) (leaf *Leaf, err error) {
	partialPath, err := preparePath(path, true)
	if err != nil {
		return nil, fmt.Errorf("leaf: %w", err)
	}

	if value == nil {
		return nil, ErrLeafValueMissing
	}

	preparedValue, err := prepareValue(kind, value)
	if err != nil {
		return nil, fmt.Errorf("leaf: %w", err)
	}

	return &Leaf{
		PartialPath: partialPath,
		Value:       preparedValue,
	}, nil
}

func prepareChild(kind Kind, untyped interface{}) (child Child, err error) {
	switch x := untyped.(type) {
	case nil:
		return nil, nil //nolint:nilnil
	case *Leaf:
		if x == nil {
			return nil, nil //nolint:nilnil
		}
		return prepareLeaf(kind, x.PartialPath, x.Value)
	case Leaf:
		return prepareLeaf(kind, x.PartialPath, x.Value)
	case map[string]interface{}:
		nodeType, err := shapeOf(x)
		if err != nil {
			return nil, err
		}
		if nodeType != LeafType {
			return nil, fmt.Errorf("%w: embedded %s", ErrChildType, nodeType)
		}
		return prepareLeaf(kind, x[PartialPathFieldName], x[ValueFieldName])
	default:
		c, err := prepareCID(kind, untyped)
		if err != nil {
			return nil, err
		}
		return Ref{CID: c}, nil
	}
}

// prepareCID accepts a cid.Cid, a Ref, a CID string, a binary CID
// or a raw 32 bytes Keccak-256 digest, given as bytes or 0x prefixed
// hexadecimal. Raw digests are tagged with the codec of the trie kind.
func prepareCID(kind Kind, untyped interface{}) (c cid.Cid, err error) {
	switch x := untyped.(type) {
	case nil:
		return cid.Undef, ErrUndefinedCID
	case Ref:
		untyped = x.CID
	case *Ref:
		if x == nil {
			return cid.Undef, ErrUndefinedCID
		}
		untyped = x.CID
	}

	c, err = prep.CID(kind.Code, untyped)
	if errors.Is(err, prep.ErrMissing) {
		return cid.Undef, ErrUndefinedCID
	} else if err != nil {
		return cid.Undef, fmt.Errorf("%w: %s", ErrCID, err)
	}
	return c, nil
}

// preparePath accepts nibbles as []byte, []int or []interface{} of
// integers, or a hexadecimal string with one digit per nibble.
// Leaf paths get a terminator appended if it is missing, and
// extension paths must not carry one.
func preparePath(untyped interface{}, isLeaf bool) (path []byte, err error) {
	switch x := untyped.(type) {
	case nil:
		return nil, ErrPathMissing
	case []byte:
		path = make([]byte, len(x), len(x)+1)
		copy(path, x)
	case []int:
		path = make([]byte, len(x), len(x)+1)
		for i, nibble := range x {
			if nibble < 0 || nibble > int(codec.Terminator) {
				return nil, fmt.Errorf("%w: %d at index %d", ErrNibble, nibble, i)
			}
			path[i] = byte(nibble)
		}
	case []interface{}:
		path = make([]byte, len(x), len(x)+1)
		for i, element := range x {
			nibble, ok := toNibble(element)
			if !ok {
				return nil, fmt.Errorf("%w: %v at index %d", ErrNibble, element, i)
			}
			path[i] = nibble
		}
	case string:
		path, err = hexToNibbles(x)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrPathType, untyped)
	}

	if isLeaf && !codec.IsLeafTerminated(path) {
		path = append(path, codec.Terminator)
	}

	err = validatePath(path, isLeaf)
	if err != nil {
		return nil, err
	}
	return path, nil
}

func toNibble(x interface{}) (nibble byte, ok bool) {
	var value int64
	switch x := x.(type) {
	case int:
		value = int64(x)
	case int32:
		value = int64(x)
	case int64:
		value = x
	case uint8:
		value = int64(x)
	case uint:
		if x > uint(codec.Terminator) {
			return 0, false
		}
		value = int64(x)
	case uint64:
		if x > uint64(codec.Terminator) {
			return 0, false
		}
		value = int64(x)
	case float64:
		if x != float64(int64(x)) {
			return 0, false
		}
		value = int64(x)
	default:
		return 0, false
	}

	if value < 0 || value > int64(codec.Terminator) {
		return 0, false
	}
	return byte(value), true
}

func hexToNibbles(s string) (nibbles []byte, err error) {
	if has0xPrefix(s) {
		s = s[2:]
	}

	nibbles = make([]byte, len(s), len(s)+1)
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			nibbles[i] = byte(r - '0')
		case r >= 'a' && r <= 'f':
			nibbles[i] = byte(r-'a') + 10
		case r >= 'A' && r <= 'F':
			nibbles[i] = byte(r-'A') + 10
		default:
			return nil, fmt.Errorf("%w: character %q at index %d", ErrPathType, r, i)
		}
	}
	return nibbles, nil
}

func has0xPrefix(s string) bool {
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}

func prepareValue(kind Kind, untyped interface{}) (value Value, err error) {
	value, err = kind.Values.PrepareValue(untyped)
	if err != nil {
		return nil, newValueCodecError(kind, OpPrepare, err)
	}
	return value, nil
}
