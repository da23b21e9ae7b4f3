// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"github.com/ipfs/go-cid"
	"github.com/qdm12/gotree"
)

var _ Node = (*Extension)(nil)

// Extension is a shared path segment leading to a single child node.
type Extension struct {
	// Partial path in nibbles, without terminator.
	PartialPath []byte
	Child       cid.Cid
}

func (*Extension) isNode() {}

// Type returns ExtensionType.
func (e *Extension) Type() Type {
	return ExtensionType
}

func (e *Extension) String() string {
	return e.StringNode().String()
}

// StringNode returns a gotree compatible node for String methods.
func (e *Extension) StringNode() (stringNode *gotree.Node) {
	stringNode = gotree.New("Extension")
	stringNode.Appendf("Partial path: " + nibblesToString(e.PartialPath))
	stringNode.Appendf("Child: " + cidToString(e.Child))
	return stringNode
}
