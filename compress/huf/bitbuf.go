// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huf

import (
	"io"

	"github.com/icza/bitio"

	"github.com/intel/fasthuf/compress/huf/internal/huffman"
)

// bitBuf packs codes contiguously, MSB first. Close pads the last partial
// byte with zero bits; nothing is written if no bit was ever added.
type bitBuf struct {
	w    *bitio.Writer
	bits int64
}

func newBitBuf(w io.Writer) *bitBuf {
	return &bitBuf{w: bitio.NewWriter(w)}
}

func (b *bitBuf) writeCode(c huffman.Code) error {
	full := c.Len / 8
	for _, v := range c.Bits[:full] {
		if err := b.w.WriteByte(v); err != nil {
			return err
		}
	}
	if rest := uint8(c.Len % 8); rest != 0 {
		if err := b.w.WriteBits(uint64(c.Bits[full]>>(8-rest)), rest); err != nil {
			return err
		}
	}
	b.bits += int64(c.Len)
	return nil
}

func (b *bitBuf) Close() error {
	return b.w.Close()
}
