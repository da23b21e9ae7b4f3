// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"github.com/ipfs/go-cid"
	"github.com/qdm12/gotree"
)

// Child is the content of a branch slot, either a Ref to
// a node stored elsewhere or a *Leaf embedded in the branch.
// A nil Child is an absent slot.
type Child interface {
	StringNode() (stringNode *gotree.Node)
	isChild()
}

var (
	_ Child = Ref{}
	_ Child = (*Leaf)(nil)
)

// Ref references a child node by its content identifier.
type Ref struct {
	CID cid.Cid
}

func (Ref) isChild() {}

// StringNode returns a gotree compatible node for String methods.
func (r Ref) StringNode() (stringNode *gotree.Node) {
	return gotree.New("Ref: " + cidToString(r.CID))
}

func cidToString(c cid.Cid) string {
	if !c.Defined() {
		return "undefined"
	}
	return c.String()
}
