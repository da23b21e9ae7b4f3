// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package codec

import (
	"errors"
	"fmt"
)

var ErrInvalidHexPrefix = errors.New("invalid hex prefix")

// Hex prefix flag nibble bits, see appendix C of the yellow paper.
const (
	oddFlag  byte = 1
	leafFlag byte = 2
)

// AddHexPrefix prepends the hex prefix flag to the path nibbles given.
// A trailing terminator is dropped first. The flag encodes the parity of
// the path length and whether the path belongs to a leaf; an even length
// path gets an extra zero nibble so the result always has an even length.
// The input slice is not modified.
func AddHexPrefix(nibbles []byte, isLeaf bool) (prefixed []byte) {
	if IsLeafTerminated(nibbles) {
		nibbles = nibbles[:len(nibbles)-1]
	}

	var flag byte
	if isLeaf {
		flag = leafFlag
	}

	if len(nibbles)%2 == 1 {
		prefixed = make([]byte, 0, len(nibbles)+1)
		prefixed = append(prefixed, flag|oddFlag)
	} else {
		prefixed = make([]byte, 0, len(nibbles)+2)
		prefixed = append(prefixed, flag, 0)
	}

	return append(prefixed, nibbles...)
}

// RemoveHexPrefix reads the hex prefix flag of the nibbles given and
// returns the raw path, with the terminator appended if the flag marks
// a leaf path.
// Only the canonical form produced by AddHexPrefix is accepted:
// a non zero padding nibble after an even flag is an error.
func RemoveHexPrefix(prefixed []byte) (nibbles []byte, err error) {
	if len(prefixed) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidHexPrefix)
	}

	flag := prefixed[0]
	if flag > oddFlag|leafFlag {
		return nil, fmt.Errorf("%w: flag nibble %d", ErrInvalidHexPrefix, flag)
	}

	path := prefixed[1:]
	if flag&oddFlag == 0 {
		if len(path) == 0 {
			return nil, fmt.Errorf("%w: missing padding nibble", ErrInvalidHexPrefix)
		} else if path[0] != 0 {
			return nil, fmt.Errorf("%w: padding nibble %d", ErrInvalidHexPrefix, path[0])
		}
		path = path[1:]
	}

	nibbles = make([]byte, 0, len(path)+1)
	for i, nibble := range path {
		if nibble > 0x0f {
			return nil, fmt.Errorf("%w: at index %d", ErrNibbleRange, i)
		}
		nibbles = append(nibbles, nibble)
	}

	if flag&leafFlag != 0 {
		nibbles = append(nibbles, Terminator)
	}

	return nibbles, nil
}

// NibblesToCompact returns the hex prefix encoded path as bytes,
// ready to be written as the first element of a two item node.
func NibblesToCompact(nibbles []byte, isLeaf bool) (compact []byte, err error) {
	return NibblesToKey(AddHexPrefix(nibbles, isLeaf))
}

// CompactToNibbles decodes a hex prefix encoded byte path into nibbles,
// terminated if the path belongs to a leaf.
func CompactToNibbles(compact []byte) (nibbles []byte, err error) {
	return RemoveHexPrefix(KeyToNibbles(compact))
}
