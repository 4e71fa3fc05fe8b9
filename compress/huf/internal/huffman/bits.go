// Copyright (c) 2023, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import (
	"errors"
	"strings"
)

var (
	ErrInvalidBit  = errors.New("huffman: bit-string contains a character other than '0' or '1'")
	ErrShortBuffer = errors.New("huffman: not enough bytes for requested bit count")
)

// Pack converts a bit-string into bytes, MSB first.
// The final byte is padded with trailing zero bits.
func Pack(bits string) ([]byte, error) {
	out := make([]byte, (len(bits)+7)/8)
	for i := 0; i < len(bits); i++ {
		switch bits[i] {
		case '0':
		case '1':
			out[i/8] |= 0x80 >> (i % 8)
		default:
			return nil, ErrInvalidBit
		}
	}
	return out, nil
}

// Unpack returns the first n bits of b as a bit-string, MSB first.
func Unpack(b []byte, n int) (string, error) {
	if n < 0 || len(b) < (n+7)/8 {
		return "", ErrShortBuffer
	}
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		if b[i/8]&(0x80>>(i%8)) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String(), nil
}

// ByteLen returns the number of bytes needed to hold n bits.
func ByteLen(n int) int {
	return (n + 7) / 8
}
