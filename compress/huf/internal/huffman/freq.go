// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import (
	"bufio"
	"io"
)

// Frequencies is a byte histogram indexed by symbol.
type Frequencies [256]uint64

// CountBytes builds the histogram of data.
func CountBytes(data []byte) (f Frequencies) {
	for _, b := range data {
		f[b]++
	}
	return f
}

// Count builds the histogram of everything readable from r.
// Read errors other than io.EOF are returned unchanged.
func Count(r io.Reader) (f Frequencies, n int64, err error) {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			return f, n, nil
		}
		if err != nil {
			return f, n, err
		}
		f[b]++
		n++
	}
}

// Len returns the number of distinct symbols.
func (f *Frequencies) Len() (num int) {
	for _, v := range f {
		if v != 0 {
			num++
		}
	}
	return num
}

// Total returns the sum of all counts.
func (f *Frequencies) Total() (total uint64) {
	for _, v := range f {
		total += v
	}
	return total
}

// Symbols returns the observed symbols in ascending order.
func (f *Frequencies) Symbols() []byte {
	syms := make([]byte, 0, 256)
	for i, v := range f {
		if v != 0 {
			syms = append(syms, byte(i))
		}
	}
	return syms
}
