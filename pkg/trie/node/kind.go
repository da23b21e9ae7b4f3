// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"fmt"

	"github.com/multiformats/go-multicodec"
)

// ValueCodec converts the records stored in the value slots of one trie
// kind from and to their RLP encoding.
type ValueCodec interface {
	// EncodeValue returns the RLP encoding of the value.
	EncodeValue(value Value) (encoded []byte, err error)
	// DecodeValue decodes the content of a value slot.
	DecodeValue(encoded []byte) (value Value, err error)
	// IsValue returns true if x has the record type of the trie kind.
	IsValue(x interface{}) bool
	// PrepareValue coerces a loosely typed record into a valid value.
	PrepareValue(untyped interface{}) (value Value, err error)
	// ValidateValue checks the value against the record invariants.
	ValidateValue(value Value) (err error)
}

// Kind identifies a trie kind: the codec tag used to derive
// the CIDs of its nodes and the codec of its values.
type Kind struct {
	Name   string
	Code   multicodec.Code
	Values ValueCodec
}

func (k Kind) String() string {
	return fmt.Sprintf("%s (0x%x)", k.Name, uint64(k.Code))
}

func (k Kind) check() (err error) {
	if k.Values == nil {
		return fmt.Errorf("%w: %s", ErrNoValueCodec, k.Name)
	}
	return nil
}
