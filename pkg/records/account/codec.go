// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package account

import (
	"fmt"

	"github.com/ChainSafe/dageth/pkg/trie/node"
)

var _ node.ValueCodec = Codec{}

// Codec is the value codec of state tries.
type Codec struct{}

// EncodeValue returns the consensus RLP encoding of the *Account value.
func (c Codec) EncodeValue(value node.Value) (encoded []byte, err error) {
	a, err := asAccount(value)
	if err != nil {
		return nil, err
	}
	return Encode(a)
}

// DecodeValue decodes an *Account from its consensus RLP encoding.
func (Codec) DecodeValue(encoded []byte) (value node.Value, err error) {
	a, err := Decode(encoded)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// IsValue returns true if x is an *Account.
func (Codec) IsValue(x interface{}) bool {
	_, ok := x.(*Account)
	return ok
}

// PrepareValue coerces a loosely typed account into an *Account.
func (Codec) PrepareValue(untyped interface{}) (value node.Value, err error) {
	a, err := Prepare(untyped)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ValidateValue checks the value is a valid *Account.
func (Codec) ValidateValue(value node.Value) (err error) {
	a, err := asAccount(value)
	if err != nil {
		return err
	}
	return a.Validate()
}

func asAccount(value node.Value) (a *Account, err error) {
	a, ok := value.(*Account)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrValueType, value)
	} else if a == nil {
		return nil, ErrNilAccount
	}
	return a, nil
}
