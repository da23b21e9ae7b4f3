// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"github.com/qdm12/gotree"
)

var _ Node = (*Leaf)(nil)

// Leaf is a leaf in the trie.
type Leaf struct {
	// Partial path in nibbles, ending with the terminator nibble 16.
	PartialPath []byte
	Value       Value
}

func (*Leaf) isNode()  {}
func (*Leaf) isChild() {}

// Type returns LeafType.
func (l *Leaf) Type() Type {
	return LeafType
}

func (l *Leaf) String() string {
	return l.StringNode().String()
}

// StringNode returns a gotree compatible node for String methods.
func (l *Leaf) StringNode() (stringNode *gotree.Node) {
	stringNode = gotree.New("Leaf")
	stringNode.Appendf("Partial path: " + nibblesToString(l.PartialPath))
	stringNode.Appendf("Value: %s", valueToString(l.Value))
	return stringNode
}
