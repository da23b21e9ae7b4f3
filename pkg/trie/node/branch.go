// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"github.com/qdm12/gotree"
)

// ChildrenCapacity is the number of child slots of a branch.
const ChildrenCapacity = 16

// ChildSlotNames are the field names of the branch child slots,
// indexed by nibble.
var ChildSlotNames = [ChildrenCapacity]string{
	"Child0", "Child1", "Child2", "Child3",
	"Child4", "Child5", "Child6", "Child7",
	"Child8", "Child9", "ChildA", "ChildB",
	"ChildC", "ChildD", "ChildE", "ChildF",
}

// ValueFieldName is the field name of the branch and leaf value slot.
const ValueFieldName = "Value"

var _ Node = (*Branch)(nil)

// Branch is a branch in the trie.
type Branch struct {
	Children [ChildrenCapacity]Child
	Value    Value
}

func (*Branch) isNode() {}

// Type returns BranchType.
func (b *Branch) Type() Type {
	return BranchType
}

// NumChildren returns the number of present child slots.
func (b *Branch) NumChildren() (count int) {
	for _, child := range b.Children {
		if child != nil {
			count++
		}
	}
	return count
}

func (b *Branch) String() string {
	return b.StringNode().String()
}

// StringNode returns a gotree compatible node for String methods.
func (b *Branch) StringNode() (stringNode *gotree.Node) {
	stringNode = gotree.New("Branch")
	stringNode.Appendf("Value: %s", valueToString(b.Value))
	stringNode.Appendf("Children: %d", b.NumChildren())
	for i, child := range b.Children {
		if child == nil {
			continue
		}
		childNode := stringNode.Appendf("%s", ChildSlotNames[i])
		childNode.AppendNode(child.StringNode())
	}
	return stringNode
}
