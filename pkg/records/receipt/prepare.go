// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package receipt

import (
	"fmt"

	"github.com/ChainSafe/dageth/internal/prep"
	"github.com/ChainSafe/dageth/pkg/records/receiptlog"
	"github.com/ethereum/go-ethereum/core/types"
)

// Field names of a receipt record.
const (
	TxTypeField            = "TxType"
	PostStateField         = "PostState"
	StatusField            = "Status"
	CumulativeGasUsedField = "CumulativeGasUsed"
	BloomField             = "Bloom"
	LogsField              = "Logs"
	LogRootCIDField        = "LogRootCID"
)

// Prepare coerces a loosely typed receipt into a valid *Receipt.
// It accepts a Receipt, a *Receipt, a go-ethereum *types.Receipt or a map
// keyed by the receipt field names. A missing log root CID is derived
// from the logs, and a missing bloom filter from a map is computed
// from the logs.
func Prepare(untyped interface{}) (r *Receipt, err error) {
	r, err = prepare(untyped)
	if err != nil {
		return nil, err
	}

	if !r.LogRootCID.Defined() {
		r.LogRootCID, err = LogRoot(r.Logs)
		if err != nil {
			return nil, fmt.Errorf("preparing receipt: %w", err)
		}
	}

	err = r.Validate()
	if err != nil {
		return nil, err
	}
	return r, nil
}

func prepare(untyped interface{}) (r *Receipt, err error) {
	switch x := untyped.(type) {
	case *Receipt:
		if x == nil {
			return nil, ErrNilReceipt
		}
		return x.copy(), nil
	case Receipt:
		return x.copy(), nil
	case *types.Receipt:
		if x == nil {
			return nil, ErrNilReceipt
		}
		return FromTypes(x)
	}

	fields, err := prep.Fields(untyped, TxTypeField, PostStateField, StatusField,
		CumulativeGasUsedField, BloomField, LogsField, LogRootCIDField)
	if err != nil {
		return nil, fmt.Errorf("preparing receipt: %w", err)
	}

	r = new(Receipt)

	if txType := fields[TxTypeField]; txType != nil {
		n, err := prep.Uint64(txType)
		if err != nil {
			return nil, fmt.Errorf("preparing receipt %s: %w", TxTypeField, err)
		} else if n > types.DynamicFeeTxType {
			return nil, fmt.Errorf("preparing receipt %s: %w: %d", TxTypeField, ErrTxType, n)
		}
		r.TxType = uint8(n)
	}

	if postState := fields[PostStateField]; postState != nil {
		r.PostState, err = prep.Bytes(postState)
		if err != nil {
			return nil, fmt.Errorf("preparing receipt %s: %w", PostStateField, err)
		}
	}

	if status := fields[StatusField]; status != nil {
		n, err := prep.Uint64(status)
		if err != nil {
			return nil, fmt.Errorf("preparing receipt %s: %w", StatusField, err)
		}
		r.Status = &n
	}

	cumulativeGasUsed, err := prep.Required(fields, CumulativeGasUsedField)
	if err != nil {
		return nil, fmt.Errorf("preparing receipt: %w", err)
	}
	r.CumulativeGasUsed, err = prep.Uint64(cumulativeGasUsed)
	if err != nil {
		return nil, fmt.Errorf("preparing receipt %s: %w", CumulativeGasUsedField, err)
	}

	r.Logs, err = prepareLogs(fields[LogsField])
	if err != nil {
		return nil, fmt.Errorf("preparing receipt %s: %w", LogsField, err)
	}

	switch bloom := fields[BloomField].(type) {
	case nil:
		r.Bloom = types.CreateBloom(types.Receipts{r.ToTypes()})
	case types.Bloom:
		r.Bloom = bloom
	default:
		b, err := prep.Bytes(bloom)
		if err != nil {
			return nil, fmt.Errorf("preparing receipt %s: %w", BloomField, err)
		} else if len(b) != types.BloomByteLength {
			return nil, fmt.Errorf("preparing receipt %s: %w: bloom has %d bytes",
				BloomField, prep.ErrLength, len(b))
		}
		r.Bloom = types.BytesToBloom(b)
	}

	if logRootCID := fields[LogRootCIDField]; logRootCID != nil {
		r.LogRootCID, err = prep.CID(LogRootCode, logRootCID)
		if err != nil {
			return nil, fmt.Errorf("preparing receipt %s: %w", LogRootCIDField, err)
		}
	}

	return r, nil
}

func prepareLogs(untyped interface{}) (logs []*receiptlog.Log, err error) {
	var elements []interface{}
	switch x := untyped.(type) {
	case nil:
		return []*receiptlog.Log{}, nil
	case []*receiptlog.Log:
		for _, l := range x {
			elements = append(elements, l)
		}
	case []*types.Log:
		for _, l := range x {
			elements = append(elements, l)
		}
	case []interface{}:
		elements = x
	default:
		return nil, fmt.Errorf("%w: %T", prep.ErrType, untyped)
	}

	logs = make([]*receiptlog.Log, len(elements))
	for i, element := range elements {
		logs[i], err = receiptlog.Prepare(element)
		if err != nil {
			return nil, fmt.Errorf("log %d: %w", i, err)
		}
	}
	return logs, nil
}
