// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package account implements the value codec of state tries,
// whose leaves hold account snapshots.
package account

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ChainSafe/dageth/internal/prep"
	"github.com/ChainSafe/dageth/pkg/ethcid"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multicodec"
)

const (
	// Code is the codec of account records.
	Code = multicodec.EthAccountSnapshot
	// StorageRootCode is the codec of the account storage root CID.
	StorageRootCode = multicodec.EthStorageTrie
	// CodeHashCode is the codec of the account code CID.
	CodeHashCode = multicodec.Raw
)

// Field names of an account record.
const (
	NonceField          = "Nonce"
	BalanceField        = "Balance"
	StorageRootCIDField = "StorageRootCID"
	CodeCIDField        = "CodeCID"
)

var (
	ErrValueType       = errors.New("value is not an account")
	ErrNilAccount      = errors.New("account is nil")
	ErrBalanceMissing  = errors.New("balance is missing")
	ErrBalanceNegative = errors.New("balance is negative")
	ErrBalanceOverflow = errors.New("balance overflows 256 bits")
	ErrCIDCodec        = errors.New("cid has the wrong codec")
	ErrCodeHashLength  = errors.New("code hash is not 32 bytes")
)

// Account is the snapshot of an account stored in the state trie.
type Account struct {
	Nonce          uint64
	Balance        *big.Int
	StorageRootCID cid.Cid
	CodeCID        cid.Cid
}

func (a *Account) String() string {
	return fmt.Sprintf("nonce %d, balance %s, storage root %s, code %s",
		a.Nonce, a.Balance, a.StorageRootCID, a.CodeCID)
}

// Validate checks the balance fits in 256 bits and the
// CIDs carry Keccak-256 digests with the expected codecs.
func (a *Account) Validate() (err error) {
	switch {
	case a.Balance == nil:
		return ErrBalanceMissing
	case a.Balance.Sign() < 0:
		return fmt.Errorf("%w: %s", ErrBalanceNegative, a.Balance)
	}

	_, overflow := uint256.FromBig(a.Balance)
	if overflow {
		return fmt.Errorf("%w: %s", ErrBalanceOverflow, a.Balance)
	}

	err = checkCID(a.StorageRootCID, StorageRootCode)
	if err != nil {
		return fmt.Errorf("%s: %w", StorageRootCIDField, err)
	}

	err = checkCID(a.CodeCID, CodeHashCode)
	if err != nil {
		return fmt.Errorf("%s: %w", CodeCIDField, err)
	}

	return nil
}

func checkCID(c cid.Cid, code multicodec.Code) (err error) {
	_, err = ethcid.ToHash(c)
	if err != nil {
		return err
	}

	actual := multicodec.Code(c.Prefix().Codec)
	if actual != code {
		return fmt.Errorf("%w: %s instead of %s", ErrCIDCodec, actual, code)
	}
	return nil
}

// ToStateAccount returns the go-ethereum representation of the account.
func (a *Account) ToStateAccount() (stateAccount *types.StateAccount, err error) {
	root, err := ethcid.ToHash(a.StorageRootCID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", StorageRootCIDField, err)
	}

	codeHash, err := ethcid.ToHash(a.CodeCID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", CodeCIDField, err)
	}

	return &types.StateAccount{
		Nonce:    a.Nonce,
		Balance:  new(big.Int).Set(a.Balance),
		Root:     common.BytesToHash(root),
		CodeHash: codeHash,
	}, nil
}

// FromStateAccount returns the account record of the go-ethereum account.
func FromStateAccount(stateAccount *types.StateAccount) (a *Account, err error) {
	storageRootCID, err := ethcid.FromHash(StorageRootCode, stateAccount.Root.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", StorageRootCIDField, err)
	}

	if len(stateAccount.CodeHash) != ethcid.HashLength {
		return nil, fmt.Errorf("%w: %d bytes", ErrCodeHashLength, len(stateAccount.CodeHash))
	}

	codeCID, err := ethcid.FromHash(CodeHashCode, stateAccount.CodeHash)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", CodeCIDField, err)
	}

	balance := new(big.Int)
	if stateAccount.Balance != nil {
		balance.Set(stateAccount.Balance)
	}

	return &Account{
		Nonce:          stateAccount.Nonce,
		Balance:        balance,
		StorageRootCID: storageRootCID,
		CodeCID:        codeCID,
	}, nil
}

// Encode returns the consensus RLP encoding of the account.
func Encode(a *Account) (encoded []byte, err error) {
	err = a.Validate()
	if err != nil {
		return nil, err
	}

	stateAccount, err := a.ToStateAccount()
	if err != nil {
		return nil, err
	}

	encoded, err = rlp.EncodeToBytes(stateAccount)
	if err != nil {
		return nil, fmt.Errorf("rlp encoding account: %w", err)
	}
	return encoded, nil
}

// Decode decodes an account from its consensus RLP encoding.
func Decode(encoded []byte) (a *Account, err error) {
	var stateAccount types.StateAccount
	err = rlp.DecodeBytes(encoded, &stateAccount)
	if err != nil {
		return nil, fmt.Errorf("rlp decoding account: %w", err)
	}

	a, err = FromStateAccount(&stateAccount)
	if err != nil {
		return nil, err
	}

	err = a.Validate()
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Prepare coerces a loosely typed account into a valid *Account.
// It accepts an Account, a *Account, a go-ethereum *types.StateAccount
// or a map with the fields Nonce, Balance, StorageRootCID and CodeCID.
func Prepare(untyped interface{}) (a *Account, err error) {
	a, err = prepare(untyped)
	if err != nil {
		return nil, err
	}

	err = a.Validate()
	if err != nil {
		return nil, err
	}
	return a, nil
}

func prepare(untyped interface{}) (a *Account, err error) {
	switch x := untyped.(type) {
	case *Account:
		if x == nil {
			return nil, ErrNilAccount
		}
		return prepare(*x)
	case Account:
		a = &Account{
			Nonce:          x.Nonce,
			StorageRootCID: x.StorageRootCID,
			CodeCID:        x.CodeCID,
		}
		if x.Balance != nil {
			a.Balance = new(big.Int).Set(x.Balance)
		}
		return a, nil
	case *types.StateAccount:
		if x == nil {
			return nil, ErrNilAccount
		}
		return FromStateAccount(x)
	}

	fields, err := prep.Fields(untyped, NonceField, BalanceField,
		StorageRootCIDField, CodeCIDField)
	if err != nil {
		return nil, fmt.Errorf("preparing account: %w", err)
	}

	a = new(Account)

	nonce, err := prep.Required(fields, NonceField)
	if err != nil {
		return nil, fmt.Errorf("preparing account: %w", err)
	}
	a.Nonce, err = prep.Uint64(nonce)
	if err != nil {
		return nil, fmt.Errorf("preparing account %s: %w", NonceField, err)
	}

	balance, err := prep.Required(fields, BalanceField)
	if err != nil {
		return nil, fmt.Errorf("preparing account: %w", err)
	}
	a.Balance, err = prep.BigInt(balance)
	if err != nil {
		return nil, fmt.Errorf("preparing account %s: %w", BalanceField, err)
	}

	storageRoot, err := prep.Required(fields, StorageRootCIDField)
	if err != nil {
		return nil, fmt.Errorf("preparing account: %w", err)
	}
	a.StorageRootCID, err = prep.CID(StorageRootCode, storageRoot)
	if err != nil {
		return nil, fmt.Errorf("preparing account %s: %w", StorageRootCIDField, err)
	}

	codeHash, err := prep.Required(fields, CodeCIDField)
	if err != nil {
		return nil, fmt.Errorf("preparing account: %w", err)
	}
	a.CodeCID, err = prep.CID(CodeHashCode, codeHash)
	if err != nil {
		return nil, fmt.Errorf("preparing account %s: %w", CodeCIDField, err)
	}

	return a, nil
}
