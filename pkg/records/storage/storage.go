// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package storage implements the value codec of storage tries,
// whose values are the RLP encoded slot contents kept as raw bytes.
package storage

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/dageth/internal/prep"
	"github.com/ChainSafe/dageth/pkg/trie/node"
	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrValueType  = errors.New("storage value is not a byte slice")
	ErrEmptyValue = errors.New("storage value is empty")
)

var _ node.ValueCodec = Codec{}

// Codec is the value codec of storage tries.
type Codec struct{}

// EncodeValue returns the value bytes as they are.
func (c Codec) EncodeValue(value node.Value) (encoded []byte, err error) {
	err = c.ValidateValue(value)
	if err != nil {
		return nil, err
	}
	return value.([]byte), nil
}

// DecodeValue returns a copy of the encoded bytes.
func (Codec) DecodeValue(encoded []byte) (value node.Value, err error) {
	return common.CopyBytes(encoded), nil
}

// IsValue returns true if x is a byte slice.
func (Codec) IsValue(x interface{}) bool {
	_, ok := x.([]byte)
	return ok
}

// PrepareValue accepts byte slices and 0x prefixed hexadecimal strings.
func (c Codec) PrepareValue(untyped interface{}) (value node.Value, err error) {
	b, err := prep.Bytes(untyped)
	if err != nil {
		return nil, fmt.Errorf("preparing storage value: %w", err)
	}

	err = c.ValidateValue(b)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ValidateValue checks the value is a non empty byte slice.
func (Codec) ValidateValue(value node.Value) (err error) {
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("%w: %T", ErrValueType, value)
	}

	if len(b) == 0 {
		return ErrEmptyValue
	}
	return nil
}
