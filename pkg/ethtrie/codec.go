// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package ethtrie

import (
	"github.com/ChainSafe/dageth/internal/log"
	"github.com/ChainSafe/dageth/internal/metrics"
	"github.com/ChainSafe/dageth/pkg/trie/node"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multicodec"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "ethtrie"))

// Codec runs the trie node operations for the kind designated by a
// multicodec tag. It is safe for concurrent use.
type Codec struct {
	table   *Table
	logger  Logger
	metrics Metrics
}

// Option configures a Codec.
type Option func(c *Codec)

// WithTable sets the table of trie kinds. It defaults to DefaultTable().
func WithTable(table *Table) Option {
	return func(c *Codec) {
		c.table = table
	}
}

// WithLogger sets the logger. It defaults to the package logger.
func WithLogger(logger Logger) Option {
	return func(c *Codec) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics. It defaults to no metrics.
func WithMetrics(metrics Metrics) Option {
	return func(c *Codec) {
		c.metrics = metrics
	}
}

// New creates a codec with the options given.
func New(options ...Option) *Codec {
	c := &Codec{
		table:   DefaultTable(),
		logger:  logger,
		metrics: metrics.NewNoop(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Table returns the table of trie kinds of the codec.
func (c *Codec) Table() *Table {
	return c.table
}

// Decode decodes the RLP encoding of a node of the trie kind
// designated by code.
func (c *Codec) Decode(code multicodec.Code, encoded []byte) (n node.Node, err error) {
	kind, err := c.table.Lookup(code)
	if err != nil {
		return nil, err
	}

	n, err = node.Decode(kind, encoded)
	if err != nil {
		c.failed(metrics.OperationDecode, kind, err)
		return nil, err
	}

	c.succeeded(metrics.OperationDecode, kind, n)
	return n, nil
}

// Encode returns the RLP encoding of a node of the trie kind
// designated by code.
func (c *Codec) Encode(code multicodec.Code, n node.Node) (encoded []byte, err error) {
	kind, err := c.table.Lookup(code)
	if err != nil {
		return nil, err
	}

	encoded, err = node.Encode(kind, n)
	if err != nil {
		c.failed(metrics.OperationEncode, kind, err)
		return nil, err
	}

	c.succeeded(metrics.OperationEncode, kind, n)
	return encoded, nil
}

// EncodeAndHash returns the RLP encoding of a node of the trie kind
// designated by code, and the CID of that encoding.
func (c *Codec) EncodeAndHash(code multicodec.Code, n node.Node) (
	encoded []byte, id cid.Cid, err error) {
	kind, err := c.table.Lookup(code)
	if err != nil {
		return nil, cid.Undef, err
	}

	encoded, id, err = node.EncodeAndHash(kind, n)
	if err != nil {
		c.failed(metrics.OperationEncode, kind, err)
		return nil, cid.Undef, err
	}

	c.succeeded(metrics.OperationEncode, kind, n)
	return encoded, id, nil
}

// Prepare coerces a loosely typed node into a valid node of the trie
// kind designated by code.
func (c *Codec) Prepare(code multicodec.Code, untyped interface{}) (n node.Node, err error) {
	kind, err := c.table.Lookup(code)
	if err != nil {
		return nil, err
	}

	n, err = node.Prepare(kind, untyped)
	if err != nil {
		c.failed(metrics.OperationPrepare, kind, err)
		return nil, err
	}

	c.succeeded(metrics.OperationPrepare, kind, n)
	return n, nil
}

// Validate checks the node against the invariants of the trie kind
// designated by code.
func (c *Codec) Validate(code multicodec.Code, n node.Node) (err error) {
	kind, err := c.table.Lookup(code)
	if err != nil {
		return err
	}

	err = node.Validate(kind, n)
	if err != nil {
		c.failed(metrics.OperationValidate, kind, err)
		return err
	}

	c.succeeded(metrics.OperationValidate, kind, n)
	return nil
}

func (c *Codec) succeeded(operation metrics.Operation, kind node.Kind, n node.Node) {
	c.logger.Tracef("%s %s node of %s trie", operation, n.Type(), kind.Name)
	c.metrics.Succeeded(operation, kind.Name, n.Type().String())
}

func (c *Codec) failed(operation metrics.Operation, kind node.Kind, err error) {
	c.logger.Debugf("cannot %s node of %s trie: %s", operation, kind.Name, err)
	c.metrics.Failed(operation, kind.Name)
}
