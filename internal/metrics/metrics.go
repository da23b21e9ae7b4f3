// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package metrics defines the counters recorded by the trie node codec.
package metrics

// Operation is the codec operation a counter refers to.
type Operation string

const (
	OperationDecode   Operation = "decode"
	OperationEncode   Operation = "encode"
	OperationPrepare  Operation = "prepare"
	OperationValidate Operation = "validate"
)

// Codec records the outcome of codec operations by trie kind.
type Codec interface {
	// Succeeded records a successful operation on a node of the given type.
	Succeeded(operation Operation, kind, nodeType string)
	// Failed records a failed operation.
	Failed(operation Operation, kind string)
}

// Noop is a Codec recording nothing.
type Noop struct{}

// NewNoop returns a Codec recording nothing.
func NewNoop() *Noop { return &Noop{} }

// Succeeded does nothing.
func (*Noop) Succeeded(Operation, string, string) {}

// Failed does nothing.
func (*Noop) Failed(Operation, string) {}
