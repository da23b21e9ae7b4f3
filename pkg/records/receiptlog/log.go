// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package receiptlog implements the value codec of receipt log tries.
package receiptlog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ChainSafe/dageth/internal/prep"
	"github.com/ChainSafe/dageth/pkg/trie/node"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/multiformats/go-multicodec"
)

// Code is the codec of log records.
const Code = multicodec.EthRecieptLog

// Field names of a log record.
const (
	AddressField = "Address"
	TopicsField  = "Topics"
	DataField    = "Data"
)

var (
	ErrValueType = errors.New("value is not a log")
	ErrNilLog    = errors.New("log is nil")
)

// Log is an event emitted during a transaction execution.
type Log struct {
	Address common.Address
	Topics  []common.Hash
	Data    []byte
}

func (l *Log) String() string {
	topics := make([]string, len(l.Topics))
	for i, topic := range l.Topics {
		topics[i] = topic.Hex()
	}
	return fmt.Sprintf("log from %s with topics [%s] and %d bytes of data",
		l.Address.Hex(), strings.Join(topics, ", "), len(l.Data))
}

// ToTypes returns the go-ethereum log holding the consensus fields of l.
func (l *Log) ToTypes() *types.Log {
	return &types.Log{
		Address: l.Address,
		Topics:  append([]common.Hash{}, l.Topics...),
		Data:    common.CopyBytes(l.Data),
	}
}

// FromTypes returns the log record holding the consensus fields of l.
func FromTypes(l *types.Log) *Log {
	return &Log{
		Address: l.Address,
		Topics:  append([]common.Hash{}, l.Topics...),
		Data:    common.CopyBytes(l.Data),
	}
}

var _ node.ValueCodec = Codec{}

// Codec is the value codec of receipt log tries.
type Codec struct{}

// EncodeValue returns the consensus RLP encoding of the log.
func (c Codec) EncodeValue(value node.Value) (encoded []byte, err error) {
	err = c.ValidateValue(value)
	if err != nil {
		return nil, err
	}
	return Encode(value.(*Log))
}

// DecodeValue decodes a log from its consensus RLP encoding.
func (Codec) DecodeValue(encoded []byte) (value node.Value, err error) {
	return Decode(encoded)
}

// IsValue returns true if x is a *Log.
func (Codec) IsValue(x interface{}) bool {
	_, ok := x.(*Log)
	return ok
}

// PrepareValue accepts a Log, a *Log, a go-ethereum *types.Log or
// a map with the fields Address, Topics and Data.
func (c Codec) PrepareValue(untyped interface{}) (value node.Value, err error) {
	l, err := Prepare(untyped)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// ValidateValue checks the value is a non nil *Log.
func (Codec) ValidateValue(value node.Value) (err error) {
	l, ok := value.(*Log)
	if !ok {
		return fmt.Errorf("%w: %T", ErrValueType, value)
	} else if l == nil {
		return ErrNilLog
	}
	return nil
}

// Encode returns the consensus RLP encoding of the log.
func Encode(l *Log) (encoded []byte, err error) {
	encoded, err = rlp.EncodeToBytes(l.ToTypes())
	if err != nil {
		return nil, fmt.Errorf("rlp encoding log: %w", err)
	}
	return encoded, nil
}

// Decode decodes a log from its consensus RLP encoding.
func Decode(encoded []byte) (l *Log, err error) {
	var decoded types.Log
	err = rlp.DecodeBytes(encoded, &decoded)
	if err != nil {
		return nil, fmt.Errorf("rlp decoding log: %w", err)
	}
	return FromTypes(&decoded), nil
}

// Prepare coerces a loosely typed log into a *Log.
func Prepare(untyped interface{}) (l *Log, err error) {
	switch x := untyped.(type) {
	case *Log:
		if x == nil {
			return nil, ErrNilLog
		}
		return FromTypes(x.ToTypes()), nil
	case Log:
		return FromTypes(x.ToTypes()), nil
	case *types.Log:
		if x == nil {
			return nil, ErrNilLog
		}
		return FromTypes(x), nil
	}

	fields, err := prep.Fields(untyped, AddressField, TopicsField, DataField)
	if err != nil {
		return nil, fmt.Errorf("preparing log: %w", err)
	}

	l = new(Log)

	address, err := prep.Required(fields, AddressField)
	if err != nil {
		return nil, fmt.Errorf("preparing log: %w", err)
	}
	l.Address, err = prep.Address(address)
	if err != nil {
		return nil, fmt.Errorf("preparing log %s: %w", AddressField, err)
	}

	l.Topics, err = prepareTopics(fields[TopicsField])
	if err != nil {
		return nil, fmt.Errorf("preparing log %s: %w", TopicsField, err)
	}

	l.Data = []byte{}
	if data := fields[DataField]; data != nil {
		l.Data, err = prep.Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("preparing log %s: %w", DataField, err)
		}
	}

	return l, nil
}

func prepareTopics(untyped interface{}) (topics []common.Hash, err error) {
	switch x := untyped.(type) {
	case nil:
		return []common.Hash{}, nil
	case []common.Hash:
		return append([]common.Hash{}, x...), nil
	case []string:
		topics = make([]common.Hash, len(x))
		for i, topic := range x {
			topics[i], err = prep.Hash(topic)
			if err != nil {
				return nil, fmt.Errorf("topic %d: %w", i, err)
			}
		}
		return topics, nil
	case []interface{}:
		topics = make([]common.Hash, len(x))
		for i, topic := range x {
			topics[i], err = prep.Hash(topic)
			if err != nil {
				return nil, fmt.Errorf("topic %d: %w", i, err)
			}
		}
		return topics, nil
	default:
		return nil, fmt.Errorf("%w: %T", prep.ErrType, untyped)
	}
}
