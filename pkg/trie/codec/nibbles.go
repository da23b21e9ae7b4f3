// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package codec

import (
	"errors"
	"fmt"
)

// Terminator is the nibble value appended to leaf paths.
const Terminator byte = 16

var (
	ErrOddNibbles  = errors.New("odd number of nibbles")
	ErrNibbleRange = errors.New("nibble out of range")
)

// KeyToNibbles converts a byte slice into nibbles, high nibble first.
// The result has twice the length of the input.
func KeyToNibbles(key []byte) (nibbles []byte) {
	nibbles = make([]byte, 2*len(key))
	for i, b := range key {
		nibbles[2*i] = b >> 4
		nibbles[2*i+1] = b & 0x0f
	}
	return nibbles
}

// NibblesToKey packs nibbles two by two into bytes, the first nibble
// of each pair being the high nibble.
// It is the exact inverse of KeyToNibbles.
func NibblesToKey(nibbles []byte) (key []byte, err error) {
	if len(nibbles)%2 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrOddNibbles, len(nibbles))
	}

	key = make([]byte, len(nibbles)/2)
	for i := 0; i < len(nibbles); i += 2 {
		high, low := nibbles[i], nibbles[i+1]
		if high > 0x0f || low > 0x0f {
			return nil, fmt.Errorf("%w: at index %d", ErrNibbleRange, i)
		}
		key[i/2] = high<<4 | low
	}

	return key, nil
}

// IsLeafTerminated returns true if the last nibble is the terminator.
func IsLeafTerminated(nibbles []byte) bool {
	return len(nibbles) > 0 && nibbles[len(nibbles)-1] == Terminator
}
