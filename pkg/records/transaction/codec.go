// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package transaction

import (
	"fmt"

	"github.com/ChainSafe/dageth/pkg/trie/node"
)

var _ node.ValueCodec = Codec{}

// Codec is the value codec of transaction tries.
type Codec struct{}

// EncodeValue returns the consensus encoding of the *Transaction value.
func (Codec) EncodeValue(value node.Value) (encoded []byte, err error) {
	t, err := asTransaction(value)
	if err != nil {
		return nil, err
	}
	return Encode(t)
}

// DecodeValue decodes a *Transaction from its consensus encoding.
func (Codec) DecodeValue(encoded []byte) (value node.Value, err error) {
	t, err := Decode(encoded)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// IsValue returns true if x is a *Transaction.
func (Codec) IsValue(x interface{}) bool {
	_, ok := x.(*Transaction)
	return ok
}

// PrepareValue coerces a loosely typed transaction into a *Transaction.
func (Codec) PrepareValue(untyped interface{}) (value node.Value, err error) {
	t, err := Prepare(untyped)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ValidateValue checks the value is a valid *Transaction.
func (Codec) ValidateValue(value node.Value) (err error) {
	t, err := asTransaction(value)
	if err != nil {
		return err
	}
	return t.Validate()
}

func asTransaction(value node.Value) (t *Transaction, err error) {
	t, ok := value.(*Transaction)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrValueType, value)
	} else if t == nil {
		return nil, ErrNilTransaction
	}
	return t, nil
}
