// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package records groups the value codecs of the Ethereum trie kinds,
// one sub package per record stored in trie leaves and branches.
package records
