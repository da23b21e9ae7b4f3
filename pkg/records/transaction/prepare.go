// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package transaction

import (
	"fmt"
	"math"
	"math/big"

	"github.com/ChainSafe/dageth/internal/prep"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Field names of a transaction record.
const (
	TxTypeField       = "TxType"
	ChainIDField      = "ChainID"
	AccountNonceField = "AccountNonce"
	GasPriceField     = "GasPrice"
	GasTipCapField    = "GasTipCap"
	GasFeeCapField    = "GasFeeCap"
	GasLimitField     = "GasLimit"
	RecipientField    = "Recipient"
	AmountField       = "Amount"
	DataField         = "Data"
	AccessListField   = "AccessList"
	VField            = "V"
	RField            = "R"
	SField            = "S"
)

var fieldNames = []string{
	TxTypeField, ChainIDField, AccountNonceField, GasPriceField,
	GasTipCapField, GasFeeCapField, GasLimitField, RecipientField,
	AmountField, DataField, AccessListField, VField, RField, SField,
}

// Prepare coerces a loosely typed transaction into a valid *Transaction.
// It accepts a Transaction, a *Transaction, a go-ethereum
// *types.Transaction or a map keyed by the transaction field names.
// A missing TxType is a legacy transaction.
func Prepare(untyped interface{}) (t *Transaction, err error) {
	t, err = prepare(untyped)
	if err != nil {
		return nil, err
	}

	err = t.Validate()
	if err != nil {
		return nil, err
	}
	return t, nil
}

func prepare(untyped interface{}) (t *Transaction, err error) {
	switch x := untyped.(type) {
	case *Transaction:
		if x == nil {
			return nil, ErrNilTransaction
		}
		return prepare(*x)
	case Transaction:
		return x.copy(), nil
	case *types.Transaction:
		if x == nil {
			return nil, ErrNilTransaction
		}
		return FromTypes(x)
	}

	fields, err := prep.Fields(untyped, fieldNames...)
	if err != nil {
		return nil, fmt.Errorf("preparing transaction: %w", err)
	}

	return prepareFields(fields)
}

func prepareFields(fields map[string]interface{}) (t *Transaction, err error) {
	t = new(Transaction)

	if txType := fields[TxTypeField]; txType != nil {
		n, err := prep.Uint64(txType)
		if err != nil {
			return nil, fmt.Errorf("preparing transaction %s: %w", TxTypeField, err)
		} else if n > math.MaxUint8 {
			return nil, fmt.Errorf("preparing transaction %s: %w: %d", TxTypeField, prep.ErrRange, n)
		}
		t.TxType = uint8(n)
	}

	for _, field := range []struct {
		name     string
		required bool
		value    **big.Int
	}{
		{name: ChainIDField, value: &t.ChainID},
		{name: GasPriceField, value: &t.GasPrice},
		{name: GasTipCapField, value: &t.GasTipCap},
		{name: GasFeeCapField, value: &t.GasFeeCap},
		{name: AmountField, required: true, value: &t.Amount},
		{name: VField, required: true, value: &t.V},
		{name: RField, required: true, value: &t.R},
		{name: SField, required: true, value: &t.S},
	} {
		untyped := fields[field.name]
		if untyped == nil {
			if field.required {
				return nil, fmt.Errorf("preparing transaction: %w: %s", prep.ErrMissing, field.name)
			}
			continue
		}

		*field.value, err = prep.BigInt(untyped)
		if err != nil {
			return nil, fmt.Errorf("preparing transaction %s: %w", field.name, err)
		}
	}

	for _, field := range []struct {
		name  string
		value *uint64
	}{
		{name: AccountNonceField, value: &t.AccountNonce},
		{name: GasLimitField, value: &t.GasLimit},
	} {
		untyped, err := prep.Required(fields, field.name)
		if err != nil {
			return nil, fmt.Errorf("preparing transaction: %w", err)
		}

		*field.value, err = prep.Uint64(untyped)
		if err != nil {
			return nil, fmt.Errorf("preparing transaction %s: %w", field.name, err)
		}
	}

	if recipient := fields[RecipientField]; recipient != nil {
		address, err := prep.Address(recipient)
		if err != nil {
			return nil, fmt.Errorf("preparing transaction %s: %w", RecipientField, err)
		}
		t.Recipient = &address
	}

	t.Data = []byte{}
	if data := fields[DataField]; data != nil {
		t.Data, err = prep.Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("preparing transaction %s: %w", DataField, err)
		}
	}

	if accessList := fields[AccessListField]; accessList != nil {
		t.AccessList, err = prepareAccessList(accessList)
		if err != nil {
			return nil, fmt.Errorf("preparing transaction %s: %w", AccessListField, err)
		}
	} else if t.TxType != types.LegacyTxType {
		t.AccessList = types.AccessList{}
	}

	return t, nil
}

// prepareAccessList accepts a types.AccessList or a list of maps
// with the fields Address and StorageKeys.
func prepareAccessList(untyped interface{}) (accessList types.AccessList, err error) {
	switch x := untyped.(type) {
	case types.AccessList:
		return copyAccessList(x), nil
	case []interface{}:
		accessList = make(types.AccessList, len(x))
		for i, element := range x {
			accessList[i], err = prepareAccessTuple(element)
			if err != nil {
				return nil, fmt.Errorf("tuple %d: %w", i, err)
			}
		}
		return accessList, nil
	default:
		return nil, fmt.Errorf("%w: %T", prep.ErrType, untyped)
	}
}

func prepareAccessTuple(untyped interface{}) (tuple types.AccessTuple, err error) {
	fields, err := prep.Fields(untyped, "Address", "StorageKeys")
	if err != nil {
		return tuple, err
	}

	address, err := prep.Required(fields, "Address")
	if err != nil {
		return tuple, err
	}
	tuple.Address, err = prep.Address(address)
	if err != nil {
		return tuple, fmt.Errorf("Address: %w", err)
	}

	tuple.StorageKeys = []common.Hash{}
	switch keys := fields["StorageKeys"].(type) {
	case nil:
	case []common.Hash:
		tuple.StorageKeys = append(tuple.StorageKeys, keys...)
	case []interface{}:
		for i, key := range keys {
			hash, err := prep.Hash(key)
			if err != nil {
				return tuple, fmt.Errorf("storage key %d: %w", i, err)
			}
			tuple.StorageKeys = append(tuple.StorageKeys, hash)
		}
	default:
		return tuple, fmt.Errorf("StorageKeys: %w: %T", prep.ErrType, keys)
	}

	return tuple, nil
}
