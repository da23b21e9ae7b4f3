// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package transaction implements the value codec of transaction tries.
package transaction

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/multiformats/go-multicodec"
)

// Code is the codec of transaction records.
const Code = multicodec.EthTx

var (
	ErrValueType       = errors.New("value is not a transaction")
	ErrNilTransaction  = errors.New("transaction is nil")
	ErrTxType          = errors.New("transaction type not supported")
	ErrFieldMissing    = errors.New("field is missing")
	ErrUnexpectedField = errors.New("field is not part of the transaction type")
	ErrNegative        = errors.New("value is negative")
	ErrOverflow        = errors.New("value overflows 256 bits")
)

// Transaction is a legacy, access list or dynamic fee transaction.
// Fields not carried by the transaction type are nil.
type Transaction struct {
	TxType       uint8
	ChainID      *big.Int
	AccountNonce uint64
	GasPrice     *big.Int
	GasTipCap    *big.Int
	GasFeeCap    *big.Int
	GasLimit     uint64
	// Recipient is nil for contract creations.
	Recipient  *common.Address
	Amount     *big.Int
	Data       []byte
	AccessList types.AccessList
	V          *big.Int
	R          *big.Int
	S          *big.Int
}

func (t *Transaction) String() string {
	recipient := "contract creation"
	if t.Recipient != nil {
		recipient = t.Recipient.Hex()
	}
	return fmt.Sprintf("type %d transaction, nonce %d, recipient %s, amount %s",
		t.TxType, t.AccountNonce, recipient, t.Amount)
}

type bigField struct {
	name  string
	value *big.Int
}

// fields returns the integer fields of the transaction type,
// split between the ones carried and the ones it must leave nil.
func (t *Transaction) fields() (carried, absent []bigField, err error) {
	chainID := bigField{name: "ChainID", value: t.ChainID}
	gasPrice := bigField{name: "GasPrice", value: t.GasPrice}
	gasTipCap := bigField{name: "GasTipCap", value: t.GasTipCap}
	gasFeeCap := bigField{name: "GasFeeCap", value: t.GasFeeCap}
	shared := []bigField{
		{name: "Amount", value: t.Amount},
		{name: "V", value: t.V},
		{name: "R", value: t.R},
		{name: "S", value: t.S},
	}

	switch t.TxType {
	case types.LegacyTxType:
		carried = append(shared, gasPrice)
		absent = []bigField{chainID, gasTipCap, gasFeeCap}
	case types.AccessListTxType:
		carried = append(shared, chainID, gasPrice)
		absent = []bigField{gasTipCap, gasFeeCap}
	case types.DynamicFeeTxType:
		carried = append(shared, chainID, gasTipCap, gasFeeCap)
		absent = []bigField{gasPrice}
	default:
		return nil, nil, fmt.Errorf("%w: %d", ErrTxType, t.TxType)
	}
	return carried, absent, nil
}

// Validate checks the transaction type is supported, the integer
// fields it carries are set and fit in 256 bits, and the fields it
// does not carry are nil.
func (t *Transaction) Validate() (err error) {
	carried, absent, err := t.fields()
	if err != nil {
		return err
	}

	for _, field := range carried {
		switch {
		case field.value == nil:
			return fmt.Errorf("%w: %s", ErrFieldMissing, field.name)
		case field.value.Sign() < 0:
			return fmt.Errorf("%w: %s is %s", ErrNegative, field.name, field.value)
		}

		_, overflow := uint256.FromBig(field.value)
		if overflow {
			return fmt.Errorf("%w: %s", ErrOverflow, field.name)
		}
	}

	for _, field := range absent {
		if field.value != nil {
			return fmt.Errorf("%w: %s in type %d", ErrUnexpectedField, field.name, t.TxType)
		}
	}

	if t.TxType == types.LegacyTxType && t.AccessList != nil {
		return fmt.Errorf("%w: AccessList in type %d", ErrUnexpectedField, t.TxType)
	}

	return nil
}

// ToTypes returns the go-ethereum transaction holding the same fields.
func (t *Transaction) ToTypes() (tx *types.Transaction, err error) {
	var inner types.TxData
	switch t.TxType {
	case types.LegacyTxType:
		inner = &types.LegacyTx{
			Nonce:    t.AccountNonce,
			GasPrice: t.GasPrice,
			Gas:      t.GasLimit,
			To:       t.Recipient,
			Value:    t.Amount,
			Data:     t.Data,
			V:        t.V,
			R:        t.R,
			S:        t.S,
		}
	case types.AccessListTxType:
		inner = &types.AccessListTx{
			ChainID:    t.ChainID,
			Nonce:      t.AccountNonce,
			GasPrice:   t.GasPrice,
			Gas:        t.GasLimit,
			To:         t.Recipient,
			Value:      t.Amount,
			Data:       t.Data,
			AccessList: t.AccessList,
			V:          t.V,
			R:          t.R,
			S:          t.S,
		}
	case types.DynamicFeeTxType:
		inner = &types.DynamicFeeTx{
			ChainID:    t.ChainID,
			Nonce:      t.AccountNonce,
			GasTipCap:  t.GasTipCap,
			GasFeeCap:  t.GasFeeCap,
			Gas:        t.GasLimit,
			To:         t.Recipient,
			Value:      t.Amount,
			Data:       t.Data,
			AccessList: t.AccessList,
			V:          t.V,
			R:          t.R,
			S:          t.S,
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrTxType, t.TxType)
	}

	// NewTx deep copies the inner transaction.
	return types.NewTx(inner), nil
}

// FromTypes returns the transaction record of the go-ethereum transaction.
func FromTypes(tx *types.Transaction) (t *Transaction, err error) {
	v, r, s := tx.RawSignatureValues()
	t = &Transaction{
		TxType:       tx.Type(),
		AccountNonce: tx.Nonce(),
		GasLimit:     tx.Gas(),
		Recipient:    tx.To(),
		Amount:       tx.Value(),
		Data:         tx.Data(),
		V:            copyBig(v),
		R:            copyBig(r),
		S:            copyBig(s),
	}

	switch tx.Type() {
	case types.LegacyTxType:
		t.GasPrice = tx.GasPrice()
	case types.AccessListTxType:
		t.ChainID = copyBig(tx.ChainId())
		t.GasPrice = tx.GasPrice()
		t.AccessList = copyAccessList(tx.AccessList())
	case types.DynamicFeeTxType:
		t.ChainID = copyBig(tx.ChainId())
		t.GasTipCap = tx.GasTipCap()
		t.GasFeeCap = tx.GasFeeCap()
		t.AccessList = copyAccessList(tx.AccessList())
	default:
		return nil, fmt.Errorf("%w: %d", ErrTxType, tx.Type())
	}

	return t, nil
}

// Encode returns the consensus encoding of the transaction: an RLP list
// for legacy transactions, the type byte followed by an RLP list otherwise.
func Encode(t *Transaction) (encoded []byte, err error) {
	err = t.Validate()
	if err != nil {
		return nil, err
	}

	tx, err := t.ToTypes()
	if err != nil {
		return nil, err
	}

	encoded, err = tx.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("encoding transaction: %w", err)
	}
	return encoded, nil
}

// Decode decodes a transaction from its consensus encoding.
func Decode(encoded []byte) (t *Transaction, err error) {
	var tx types.Transaction
	err = tx.UnmarshalBinary(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding transaction: %w", err)
	}

	t, err = FromTypes(&tx)
	if err != nil {
		return nil, err
	}

	err = t.Validate()
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (t Transaction) copy() *Transaction {
	copied := t
	copied.ChainID, copied.GasPrice = copyBig(t.ChainID), copyBig(t.GasPrice)
	copied.GasTipCap, copied.GasFeeCap = copyBig(t.GasTipCap), copyBig(t.GasFeeCap)
	copied.Amount = copyBig(t.Amount)
	copied.V, copied.R, copied.S = copyBig(t.V), copyBig(t.R), copyBig(t.S)
	if t.Recipient != nil {
		recipient := *t.Recipient
		copied.Recipient = &recipient
	}
	copied.Data = append([]byte{}, t.Data...)
	copied.AccessList = copyAccessList(t.AccessList)
	return &copied
}

func copyBig(n *big.Int) *big.Int {
	if n == nil {
		return nil
	}
	return new(big.Int).Set(n)
}

func copyAccessList(accessList types.AccessList) types.AccessList {
	if accessList == nil {
		return nil
	}

	copied := make(types.AccessList, len(accessList))
	for i, tuple := range accessList {
		copied[i] = types.AccessTuple{
			Address:     tuple.Address,
			StorageKeys: append([]common.Hash{}, tuple.StorageKeys...),
		}
	}
	return copied
}
