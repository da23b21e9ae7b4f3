// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package ethcid converts between raw Keccak-256 digests and the version 1
// content identifiers used to address Ethereum objects.
package ethcid

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-multihash"
)

// HashLength is the length in bytes of a Keccak-256 digest.
const HashLength = 32

// Version is the CID version of every identifier built by this package.
const Version = 1

var (
	ErrDigestLength = errors.New("digest length is not 32 bytes")
	ErrNotKeccak    = errors.New("multihash is not keccak-256")
	ErrUndefined    = errors.New("cid is undefined")
	ErrMultihash    = errors.New("cannot decode multihash")
)

// FromHash wraps a raw Keccak-256 digest in a CIDv1 tagged with the codec given.
func FromHash(code multicodec.Code, hash []byte) (c cid.Cid, err error) {
	if len(hash) != HashLength {
		return cid.Undef, fmt.Errorf("%w: %d", ErrDigestLength, len(hash))
	}

	mh, err := multihash.Encode(hash, uint64(multicodec.Keccak256))
	if err != nil {
		return cid.Undef, fmt.Errorf("encoding multihash: %w", err)
	}

	return cid.NewCidV1(uint64(code), mh), nil
}

// ToHash returns the raw Keccak-256 digest carried by the CID.
func ToHash(c cid.Cid) (hash []byte, err error) {
	if !c.Defined() {
		return nil, ErrUndefined
	}

	decoded, err := multihash.Decode(c.Hash())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMultihash, err)
	}

	if decoded.Code != uint64(multicodec.Keccak256) {
		return nil, fmt.Errorf("%w: code 0x%x", ErrNotKeccak, decoded.Code)
	}

	if len(decoded.Digest) != HashLength {
		return nil, fmt.Errorf("%w: %d", ErrDigestLength, len(decoded.Digest))
	}

	return decoded.Digest, nil
}

// Keccak256 hashes the concatenation of the data given.
func Keccak256(data ...[]byte) []byte {
	return crypto.Keccak256(data...)
}

// Sum hashes an encoded object and returns its CID for the codec given.
func Sum(code multicodec.Code, encoding []byte) (c cid.Cid, err error) {
	return FromHash(code, Keccak256(encoding))
}
