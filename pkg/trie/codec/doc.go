// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package codec converts trie paths between bytes, nibbles and the
// hex prefix (compact) encoding used in Ethereum trie nodes.
package codec
