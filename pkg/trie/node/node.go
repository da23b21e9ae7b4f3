// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"fmt"

	"github.com/qdm12/gotree"
)

// Node is a node in the trie and can be a branch, an extension or a leaf.
type Node interface {
	Type() Type
	String() string
	StringNode() (stringNode *gotree.Node)
	isNode()
}

// Value is a record stored in a branch or leaf value slot.
// Its concrete type is owned by the value codec of the trie kind.
// A nil Value is an absent value.
type Value interface{}

func bytesToString(b []byte) (s string) {
	switch {
	case b == nil:
		return "nil"
	case len(b) <= 20:
		return fmt.Sprintf("0x%x", b)
	default:
		return fmt.Sprintf("0x%x...%x", b[:8], b[len(b)-8:])
	}
}

func nibblesToString(nibbles []byte) (s string) {
	if nibbles == nil {
		return "nil"
	}

	const hexDigits = "0123456789abcdef"
	buffer := make([]byte, 0, len(nibbles))
	for _, nibble := range nibbles {
		if nibble < 16 {
			buffer = append(buffer, hexDigits[nibble])
			continue
		}
		buffer = append(buffer, 'T')
	}
	return "[" + string(buffer) + "]"
}

func valueToString(value Value) (s string) {
	switch v := value.(type) {
	case nil:
		return "nil"
	case []byte:
		return bytesToString(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%+v", v)
	}
}
