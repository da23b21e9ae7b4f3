// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package prep coerces loosely typed input, such as decoded JSON or
// hand written literals, into the typed fields of trie nodes and records.
package prep

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strings"

	"github.com/ChainSafe/dageth/pkg/ethcid"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multicodec"
)

var (
	ErrType            = errors.New("type not supported")
	ErrSyntax          = errors.New("invalid syntax")
	ErrRange           = errors.New("value out of range")
	ErrLength          = errors.New("wrong length")
	ErrMissing         = errors.New("missing value")
	ErrExtraneousField = errors.New("extraneous field")
)

// Fields returns the untyped value as a field map, and
// fails if it contains a field not listed in names.
func Fields(untyped interface{}, names ...string) (fields map[string]interface{}, err error) {
	fields, ok := untyped.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrType, untyped)
	}

	allowed := make(map[string]struct{}, len(names))
	for _, name := range names {
		allowed[name] = struct{}{}
	}

	var extraneous []string
	for name := range fields {
		if _, ok := allowed[name]; !ok {
			extraneous = append(extraneous, name)
		}
	}

	if len(extraneous) > 0 {
		sort.Strings(extraneous)
		return nil, fmt.Errorf("%w: %s", ErrExtraneousField, strings.Join(extraneous, ", "))
	}

	return fields, nil
}

// Required returns the field value or an error if it is nil or absent.
func Required(fields map[string]interface{}, name string) (value interface{}, err error) {
	value = fields[name]
	if value == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissing, name)
	}
	return value, nil
}

// BigInt converts integers, big integers, decimal strings,
// 0x prefixed hexadecimal strings and big endian bytes.
func BigInt(untyped interface{}) (n *big.Int, err error) {
	switch x := untyped.(type) {
	case nil:
		return nil, ErrMissing
	case *big.Int:
		if x == nil {
			return nil, ErrMissing
		}
		return new(big.Int).Set(x), nil
	case big.Int:
		return new(big.Int).Set(&x), nil
	case *hexutil.Big:
		if x == nil {
			return nil, ErrMissing
		}
		return new(big.Int).Set(x.ToInt()), nil
	case *uint256.Int:
		if x == nil {
			return nil, ErrMissing
		}
		return x.ToBig(), nil
	case int:
		return big.NewInt(int64(x)), nil
	case int32:
		return big.NewInt(int64(x)), nil
	case int64:
		return big.NewInt(x), nil
	case uint:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint64:
		return new(big.Int).SetUint64(x), nil
	case float64:
		if math.IsInf(x, 0) || math.IsNaN(x) || x != math.Trunc(x) {
			return nil, fmt.Errorf("%w: %v is not an integer", ErrSyntax, x)
		}
		n, _ = big.NewFloat(x).Int(nil)
		return n, nil
	case string:
		return parseBigInt(x)
	case []byte:
		return new(big.Int).SetBytes(x), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrType, untyped)
	}
}

func parseBigInt(s string) (n *big.Int, err error) {
	base := 10
	digits := s
	if has0xPrefix(s) {
		base = 16
		digits = s[2:]
	}

	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	return n, nil
}

// Uint64 converts the same forms as BigInt, and fails
// if the value does not fit in 64 bits.
func Uint64(untyped interface{}) (n uint64, err error) {
	if x, ok := untyped.(uint64); ok {
		return x, nil
	}

	bigInt, err := BigInt(untyped)
	if err != nil {
		return 0, err
	}

	if !bigInt.IsUint64() {
		return 0, fmt.Errorf("%w: %s does not fit in 64 bits", ErrRange, bigInt)
	}
	return bigInt.Uint64(), nil
}

// Bytes converts byte slices and 0x prefixed hexadecimal strings.
// The result never aliases the input.
func Bytes(untyped interface{}) (b []byte, err error) {
	switch x := untyped.(type) {
	case nil:
		return nil, ErrMissing
	case []byte:
		return common.CopyBytes(x), nil
	case hexutil.Bytes:
		return common.CopyBytes(x), nil
	case string:
		b, err = hexutil.Decode(x)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrSyntax, err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrType, untyped)
	}
}

// Address converts addresses, 20 bytes slices and hexadecimal strings.
func Address(untyped interface{}) (address common.Address, err error) {
	switch x := untyped.(type) {
	case nil:
		return address, ErrMissing
	case common.Address:
		return x, nil
	case *common.Address:
		if x == nil {
			return address, ErrMissing
		}
		return *x, nil
	case string:
		if !common.IsHexAddress(x) {
			return address, fmt.Errorf("%w: %q is not an address", ErrSyntax, x)
		}
		return common.HexToAddress(x), nil
	default:
		b, err := Bytes(untyped)
		if err != nil {
			return address, err
		}
		if len(b) != common.AddressLength {
			return address, fmt.Errorf("%w: address has %d bytes", ErrLength, len(b))
		}
		return common.BytesToAddress(b), nil
	}
}

// Hash converts hashes, 32 bytes slices and 0x prefixed hexadecimal strings.
func Hash(untyped interface{}) (hash common.Hash, err error) {
	switch x := untyped.(type) {
	case nil:
		return hash, ErrMissing
	case common.Hash:
		return x, nil
	default:
		b, err := Bytes(untyped)
		if err != nil {
			return hash, err
		}
		if len(b) != common.HashLength {
			return hash, fmt.Errorf("%w: hash has %d bytes", ErrLength, len(b))
		}
		return common.BytesToHash(b), nil
	}
}

// CID converts CIDs, CID strings, binary CIDs and raw 32 bytes
// Keccak-256 digests, given as hashes, bytes or 0x prefixed hexadecimal.
// Raw digests are tagged with the codec given.
func CID(code multicodec.Code, untyped interface{}) (c cid.Cid, err error) {
	switch x := untyped.(type) {
	case nil:
		return cid.Undef, ErrMissing
	case cid.Cid:
		c = x
	case *cid.Cid:
		if x == nil {
			return cid.Undef, ErrMissing
		}
		c = *x
	case common.Hash:
		return ethcid.FromHash(code, x.Bytes())
	case []byte:
		if len(x) == ethcid.HashLength {
			return ethcid.FromHash(code, x)
		}
		c, err = cid.Cast(x)
		if err != nil {
			return cid.Undef, fmt.Errorf("%w: %s", ErrSyntax, err)
		}
	case string:
		if has0xPrefix(x) {
			digest, err := hexutil.Decode(x)
			if err != nil {
				return cid.Undef, fmt.Errorf("%w: %s", ErrSyntax, err)
			}
			return ethcid.FromHash(code, digest)
		}
		c, err = cid.Decode(x)
		if err != nil {
			return cid.Undef, fmt.Errorf("%w: %s", ErrSyntax, err)
		}
	default:
		return cid.Undef, fmt.Errorf("%w: %T", ErrType, untyped)
	}

	if !c.Defined() {
		return cid.Undef, fmt.Errorf("%w: cid is undefined", ErrMissing)
	}
	return c, nil
}

func has0xPrefix(s string) bool {
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}
