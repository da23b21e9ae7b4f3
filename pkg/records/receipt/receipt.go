// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package receipt implements the value codec of receipt tries.
package receipt

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ChainSafe/dageth/pkg/ethcid"
	"github.com/ChainSafe/dageth/pkg/records/receiptlog"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/trie"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multicodec"
)

const (
	// Code is the codec of receipt records.
	Code = multicodec.EthTxReceipt
	// LogRootCode is the codec of the log trie root CID.
	LogRootCode = multicodec.EthReceiptLogTrie
)

var (
	ErrValueType  = errors.New("value is not a receipt")
	ErrNilReceipt = errors.New("receipt is nil")
	ErrTxType     = errors.New("transaction type not supported")
	ErrOutcome    = errors.New("receipt needs exactly one of post state and status")
	ErrPostState  = errors.New("post state is not a 32 bytes hash")
	ErrStatus     = errors.New("status is not 0 or 1")
	ErrNilLog     = errors.New("log is nil")
	ErrLogRoot    = errors.New("log root cid does not match logs")
)

// Receipt is the consensus part of a transaction receipt.
// Pre-Byzantium receipts carry a PostState, later ones a Status.
type Receipt struct {
	TxType            uint8
	PostState         []byte
	Status            *uint64
	CumulativeGasUsed uint64
	Bloom             types.Bloom
	Logs              []*receiptlog.Log
	// LogRootCID is the root of the trie of the receipt logs,
	// keyed by their RLP encoded index.
	LogRootCID cid.Cid
}

func (r *Receipt) String() string {
	outcome := fmt.Sprintf("post state 0x%x", r.PostState)
	if r.Status != nil {
		outcome = fmt.Sprintf("status %d", *r.Status)
	}
	return fmt.Sprintf("type %d receipt, %s, cumulative gas %d, %d logs",
		r.TxType, outcome, r.CumulativeGasUsed, len(r.Logs))
}

// Validate checks the receipt type is supported, the receipt has a
// single valid outcome, and its log root CID matches its logs.
func (r *Receipt) Validate() (err error) {
	switch r.TxType {
	case types.LegacyTxType, types.AccessListTxType, types.DynamicFeeTxType:
	default:
		return fmt.Errorf("%w: %d", ErrTxType, r.TxType)
	}

	switch {
	case (r.PostState == nil) == (r.Status == nil):
		return ErrOutcome
	case r.PostState != nil && len(r.PostState) != common.HashLength:
		return fmt.Errorf("%w: %d bytes", ErrPostState, len(r.PostState))
	case r.Status != nil && *r.Status != types.ReceiptStatusFailed &&
		*r.Status != types.ReceiptStatusSuccessful:
		return fmt.Errorf("%w: %d", ErrStatus, *r.Status)
	}

	root, err := LogRoot(r.Logs)
	if err != nil {
		return err
	}

	if !r.LogRootCID.Defined() {
		return fmt.Errorf("%w: cid is undefined", ErrLogRoot)
	} else if !r.LogRootCID.Equals(root) {
		return fmt.Errorf("%w: %s instead of %s", ErrLogRoot, r.LogRootCID, root)
	}

	return nil
}

type logList []*receiptlog.Log

func (l logList) Len() int { return len(l) }

func (l logList) EncodeIndex(i int, w *bytes.Buffer) {
	// Nil logs are rejected before deriving the root.
	_ = rlp.Encode(w, l[i].ToTypes())
}

// LogRoot returns the CID of the root of the trie holding the logs,
// keyed by their RLP encoded index.
func LogRoot(logs []*receiptlog.Log) (root cid.Cid, err error) {
	for i, l := range logs {
		if l == nil {
			return cid.Undef, fmt.Errorf("%w: at index %d", ErrNilLog, i)
		}
	}

	hash := types.DeriveSha(logList(logs), trie.NewStackTrie(nil))
	return ethcid.FromHash(LogRootCode, hash.Bytes())
}

// ToTypes returns the go-ethereum receipt holding the consensus fields.
func (r *Receipt) ToTypes() *types.Receipt {
	receipt := &types.Receipt{
		Type:              r.TxType,
		PostState:         common.CopyBytes(r.PostState),
		CumulativeGasUsed: r.CumulativeGasUsed,
		Bloom:             r.Bloom,
		Logs:              make([]*types.Log, len(r.Logs)),
	}
	if r.Status != nil {
		receipt.Status = *r.Status
	}
	for i, l := range r.Logs {
		receipt.Logs[i] = l.ToTypes()
	}
	return receipt
}

// FromTypes returns the receipt record of the go-ethereum receipt,
// with its log root CID derived from the logs.
func FromTypes(receipt *types.Receipt) (r *Receipt, err error) {
	r = &Receipt{
		TxType:            receipt.Type,
		CumulativeGasUsed: receipt.CumulativeGasUsed,
		Bloom:             receipt.Bloom,
		Logs:              make([]*receiptlog.Log, len(receipt.Logs)),
	}

	if len(receipt.PostState) > 0 {
		r.PostState = common.CopyBytes(receipt.PostState)
	} else {
		status := receipt.Status
		r.Status = &status
	}

	for i, l := range receipt.Logs {
		if l == nil {
			return nil, fmt.Errorf("%w: at index %d", ErrNilLog, i)
		}
		r.Logs[i] = receiptlog.FromTypes(l)
	}

	r.LogRootCID, err = LogRoot(r.Logs)
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Encode returns the consensus encoding of the receipt: an RLP list
// for legacy receipts, the type byte followed by an RLP list otherwise.
func Encode(r *Receipt) (encoded []byte, err error) {
	err = r.Validate()
	if err != nil {
		return nil, err
	}

	encoded, err = r.ToTypes().MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("encoding receipt: %w", err)
	}
	return encoded, nil
}

// Decode decodes a receipt from its consensus encoding.
func Decode(encoded []byte) (r *Receipt, err error) {
	var receipt types.Receipt
	err = receipt.UnmarshalBinary(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding receipt: %w", err)
	}

	r, err = FromTypes(&receipt)
	if err != nil {
		return nil, err
	}

	err = r.Validate()
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r Receipt) copy() *Receipt {
	copied := r
	copied.PostState = common.CopyBytes(r.PostState)
	if r.Status != nil {
		status := *r.Status
		copied.Status = &status
	}
	if r.Logs != nil {
		copied.Logs = make([]*receiptlog.Log, len(r.Logs))
		for i, l := range r.Logs {
			if l != nil {
				copied.Logs[i] = receiptlog.FromTypes(l.ToTypes())
			}
		}
	}
	return &copied
}
