// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import "fmt"

// Type is the variant of a trie node.
type Type byte

const (
	_ Type = iota
	// BranchType type is 1
	BranchType
	// ExtensionType type is 2
	ExtensionType
	// LeafType type is 3
	LeafType
)

func (t Type) String() string {
	switch t {
	case BranchType:
		return "branch"
	case ExtensionType:
		return "extension"
	case LeafType:
		return "leaf"
	default:
		return fmt.Sprintf("unknown type %d", byte(t))
	}
}
