// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package ethtrie maps the multicodec tags of the Ethereum trie kinds
// to their node codec, and exposes the trie node operations by tag.
package ethtrie

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ChainSafe/dageth/pkg/records/account"
	"github.com/ChainSafe/dageth/pkg/records/receipt"
	"github.com/ChainSafe/dageth/pkg/records/receiptlog"
	"github.com/ChainSafe/dageth/pkg/records/storage"
	"github.com/ChainSafe/dageth/pkg/records/transaction"
	"github.com/ChainSafe/dageth/pkg/trie/node"
	"github.com/multiformats/go-multicodec"
)

var (
	ErrUnsupportedTrieKind = errors.New("unsupported trie kind")
	ErrDuplicateKind       = errors.New("duplicate trie kind")
	ErrInvalidKind         = errors.New("invalid trie kind")
)

// Kinds of the Ethereum tries.
var (
	StateKind = node.Kind{
		Name:   "state",
		Code:   multicodec.EthStateTrie,
		Values: account.Codec{},
	}
	StorageKind = node.Kind{
		Name:   "storage",
		Code:   multicodec.EthStorageTrie,
		Values: storage.Codec{},
	}
	TxKind = node.Kind{
		Name:   "tx",
		Code:   multicodec.EthTxTrie,
		Values: transaction.Codec{},
	}
	ReceiptKind = node.Kind{
		Name:   "receipt",
		Code:   multicodec.EthTxReceiptTrie,
		Values: receipt.Codec{},
	}
	LogKind = node.Kind{
		Name:   "log",
		Code:   multicodec.EthReceiptLogTrie,
		Values: receiptlog.Codec{},
	}
)

// Table is an immutable set of trie kinds indexed by codec tag and name.
// It is safe for concurrent use.
type Table struct {
	byCode map[multicodec.Code]node.Kind
	byName map[string]node.Kind
}

// NewTable creates a table holding the kinds given. Kinds must have a
// name, a value codec, and a name and codec tag unique in the table.
func NewTable(kinds ...node.Kind) (table *Table, err error) {
	table = &Table{
		byCode: make(map[multicodec.Code]node.Kind, len(kinds)),
		byName: make(map[string]node.Kind, len(kinds)),
	}

	for _, kind := range kinds {
		switch {
		case kind.Name == "":
			return nil, fmt.Errorf("%w: kind with code 0x%x has no name", ErrInvalidKind, uint64(kind.Code))
		case kind.Values == nil:
			return nil, fmt.Errorf("%w: %s has no value codec", ErrInvalidKind, kind)
		}

		if existing, ok := table.byCode[kind.Code]; ok {
			return nil, fmt.Errorf("%w: %s and %s share their code", ErrDuplicateKind, existing, kind)
		}
		if existing, ok := table.byName[kind.Name]; ok {
			return nil, fmt.Errorf("%w: %s and %s share their name", ErrDuplicateKind, existing, kind)
		}

		table.byCode[kind.Code] = kind
		table.byName[kind.Name] = kind
	}

	return table, nil
}

var defaultTable = func() *Table {
	table, err := NewTable(StateKind, StorageKind, TxKind, ReceiptKind, LogKind)
	if err != nil {
		panic(err)
	}
	return table
}()

// DefaultTable returns the table of the five Ethereum trie kinds.
func DefaultTable() *Table {
	return defaultTable
}

// Lookup returns the kind of the codec tag given.
func (t *Table) Lookup(code multicodec.Code) (kind node.Kind, err error) {
	kind, ok := t.byCode[code]
	if !ok {
		return kind, fmt.Errorf("%w: %s", ErrUnsupportedTrieKind, codeString(code))
	}
	return kind, nil
}

// Parse returns the kind designated by s, which is either a kind name
// such as "state", a multicodec name such as "eth-state-trie", or a
// decimal or 0x prefixed hexadecimal codec tag.
func (t *Table) Parse(s string) (kind node.Kind, err error) {
	if kind, ok := t.byName[s]; ok {
		return kind, nil
	}

	for _, kind := range t.byCode {
		if kind.Code.String() == s {
			return kind, nil
		}
	}

	code, err := strconv.ParseUint(strings.ToLower(s), 0, 64)
	if err != nil {
		return kind, fmt.Errorf("%w: %q", ErrUnsupportedTrieKind, s)
	}
	return t.Lookup(multicodec.Code(code))
}

// Kinds returns the kinds of the table sorted by codec tag.
func (t *Table) Kinds() (kinds []node.Kind) {
	kinds = make([]node.Kind, 0, len(t.byCode))
	for _, kind := range t.byCode {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool {
		return kinds[i].Code < kinds[j].Code
	})
	return kinds
}

func codeString(code multicodec.Code) string {
	return fmt.Sprintf("%s (0x%x)", code, uint64(code))
}
