// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package node implements the content-addressed model of Ethereum
// Merkle-Patricia trie nodes, and converts it from and to the canonical
// RLP node encoding.
package node
