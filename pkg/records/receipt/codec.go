// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package receipt

import (
	"fmt"

	"github.com/ChainSafe/dageth/pkg/trie/node"
)

var _ node.ValueCodec = Codec{}

// Codec is the value codec of receipt tries.
type Codec struct{}

// EncodeValue returns the consensus encoding of the *Receipt value.
func (Codec) EncodeValue(value node.Value) (encoded []byte, err error) {
	r, err := asReceipt(value)
	if err != nil {
		return nil, err
	}
	return Encode(r)
}

// DecodeValue decodes a *Receipt from its consensus encoding.
func (Codec) DecodeValue(encoded []byte) (value node.Value, err error) {
	r, err := Decode(encoded)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// IsValue returns true if x is a *Receipt.
func (Codec) IsValue(x interface{}) bool {
	_, ok := x.(*Receipt)
	return ok
}

// PrepareValue coerces a loosely typed receipt into a *Receipt.
func (Codec) PrepareValue(untyped interface{}) (value node.Value, err error) {
	r, err := Prepare(untyped)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ValidateValue checks the value is a valid *Receipt.
func (Codec) ValidateValue(value node.Value) (err error) {
	r, err := asReceipt(value)
	if err != nil {
		return err
	}
	return r.Validate()
}

func asReceipt(value node.Value) (r *Receipt, err error) {
	r, ok := value.(*Receipt)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrValueType, value)
	} else if r == nil {
		return nil, ErrNilReceipt
	}
	return r, nil
}
