// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode is wrapped by every error caused by a malformed encoding.
	ErrDecode = errors.New("cannot decode trie node")
	// ErrValidation is wrapped by every error caused by a node
	// violating the model invariants.
	ErrValidation = errors.New("invalid trie node")
	// ErrValueCodec is matched by every *ValueCodecError.
	ErrValueCodec = errors.New("value codec failed")
)

var (
	ErrMalformedRLP    = fmt.Errorf("%w: malformed rlp", ErrDecode)
	ErrNotList         = fmt.Errorf("%w: encoding is not a list", ErrDecode)
	ErrTrailingBytes   = fmt.Errorf("%w: trailing bytes", ErrDecode)
	ErrListLength      = fmt.Errorf("%w: wrong number of list items", ErrDecode)
	ErrChildEncoding   = fmt.Errorf("%w: malformed branch child", ErrDecode)
	ErrEmbeddedNode    = fmt.Errorf("%w: embedded node is not a leaf", ErrDecode)
	ErrExtensionChild  = fmt.Errorf("%w: extension child is not a 32 bytes hash", ErrDecode)
	ErrPathEncoding    = fmt.Errorf("%w: malformed partial path", ErrDecode)
	ErrValueNotAString = fmt.Errorf("%w: value is not a string", ErrDecode)
)

var (
	ErrNilNode          = fmt.Errorf("%w: node is nil", ErrValidation)
	ErrNodeType         = fmt.Errorf("%w: node type not supported", ErrValidation)
	ErrNoValueCodec     = fmt.Errorf("%w: trie kind has no value codec", ErrValidation)
	ErrLeafValueMissing = fmt.Errorf("%w: leaf value is missing", ErrValidation)
	ErrEmptyValue       = fmt.Errorf("%w: value encodes to an empty string", ErrValidation)
	ErrValueType        = fmt.Errorf("%w: value type not supported by trie kind", ErrValidation)
	ErrPathMissing      = fmt.Errorf("%w: partial path is missing", ErrValidation)
	ErrPathType         = fmt.Errorf("%w: partial path type not supported", ErrValidation)
	ErrNibble           = fmt.Errorf("%w: nibble out of range", ErrValidation)
	ErrTerminator       = fmt.Errorf("%w: misplaced terminator", ErrValidation)
	ErrUndefinedCID     = fmt.Errorf("%w: cid is undefined", ErrValidation)
	ErrCID              = fmt.Errorf("%w: bad cid", ErrValidation)
	ErrChildType        = fmt.Errorf("%w: branch child type not supported", ErrValidation)
	ErrExtraneousField  = fmt.Errorf("%w: extraneous field", ErrValidation)
	ErrUnknownShape     = fmt.Errorf("%w: unknown node shape", ErrValidation)
)

// Operations of the value codec reported in ValueCodecError.
const (
	OpEncode   = "encode"
	OpDecode   = "decode"
	OpPrepare  = "prepare"
	OpValidate = "validate"
)

// ValueCodecError is returned when the value codec of a trie kind fails.
// It unwraps to the error returned by the value codec, and matches
// ErrValueCodec. Errors from preparing or validating a value also match
// ErrValidation.
type ValueCodecError struct {
	Kind string
	Op   string
	Err  error
}

func (e *ValueCodecError) Error() string {
	return fmt.Sprintf("%s value codec cannot %s value: %s", e.Kind, e.Op, e.Err)
}

func (e *ValueCodecError) Unwrap() error {
	return e.Err
}

// Is returns true for ErrValueCodec, and for ErrValidation
// if the error occurred while preparing or validating a value.
func (e *ValueCodecError) Is(target error) bool {
	switch target {
	case ErrValueCodec:
		return true
	case ErrValidation:
		return e.Op == OpPrepare || e.Op == OpValidate
	default:
		return false
	}
}

func newValueCodecError(kind Kind, op string, err error) *ValueCodecError {
	return &ValueCodecError{
		Kind: kind.Name,
		Op:   op,
		Err:  err,
	}
}
