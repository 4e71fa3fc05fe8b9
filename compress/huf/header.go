// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huf

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/intel/fasthuf/compress/huf/internal/huffman"
)

// Stream layout:
//
//	entry count    2 bytes, big endian
//	decoded length 8 bytes, big endian
//	entries        symbol (1) | code length (1) | code bits (ceil(length/8))
//	terminator     1 byte, always 0x00
//	payload        codes packed MSB first, zero padded to a byte boundary
const (
	terminator      = 0x00
	maxEntries      = 256
	fixedHeaderSize = 2 + 8
)

// appendHeader serializes the code table in ascending symbol order.
func appendHeader(dst []byte, table *huffman.Table, length uint64) []byte {
	dst = binary.BigEndian.AppendUint16(dst, uint16(table.Len()))
	dst = binary.BigEndian.AppendUint64(dst, length)
	for _, sym := range table.Symbols() {
		c, _ := table.Code(sym)
		dst = append(dst, sym, byte(c.Len))
		dst = append(dst, c.Bits...)
	}
	return append(dst, terminator)
}

// headerReader parses a header and counts the bytes it consumed.
type headerReader struct {
	r       *bufio.Reader
	roffset int64
}

func (h *headerReader) readFull(b []byte) error {
	n, err := io.ReadFull(h.r, b)
	h.roffset += int64(n)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrTruncated
	}
	return err
}

func (h *headerReader) fail(err error) error {
	if errors.Is(err, ErrFormat) || errors.Is(err, ErrTruncated) || errors.Is(err, ErrTerminator) ||
		errors.Is(err, ErrDuplicateCode) || errors.Is(err, ErrPrefixConflict) {
		return &CorruptInputError{Offset: h.roffset, Err: err}
	}
	return err
}

// read returns the decode trie and the number of symbols in the payload.
func (h *headerReader) read() (trie *huffman.Trie, length uint64, err error) {
	var fixed [fixedHeaderSize]byte
	if err = h.readFull(fixed[:]); err != nil {
		return nil, 0, h.fail(err)
	}
	entries := int(binary.BigEndian.Uint16(fixed[:2]))
	length = binary.BigEndian.Uint64(fixed[2:])
	if entries > maxEntries {
		return nil, 0, h.fail(fmt.Errorf("%w: %d header entries", ErrFormat, entries))
	}
	if entries == 0 && length != 0 {
		return nil, 0, h.fail(fmt.Errorf("%w: %d symbols with an empty code table", ErrFormat, length))
	}

	trie = huffman.NewTrie()
	var entry [2]byte
	var code [huffman.MaxCodeLen/8 + 1]byte
	for i := 0; i < entries; i++ {
		if err = h.readFull(entry[:]); err != nil {
			return nil, 0, h.fail(err)
		}
		sym, codeLen := entry[0], int(entry[1])
		if codeLen == 0 {
			return nil, 0, h.fail(fmt.Errorf("%w: zero code length for symbol %#02x", ErrFormat, sym))
		}
		raw := code[:huffman.ByteLen(codeLen)]
		if err = h.readFull(raw); err != nil {
			return nil, 0, h.fail(err)
		}
		bits, err := huffman.Unpack(raw, codeLen)
		if err != nil {
			return nil, 0, h.fail(err)
		}
		if err = trie.Insert(bits, sym); err != nil {
			return nil, 0, h.fail(fmt.Errorf("%w: symbol %#02x code %s", err, sym, bits))
		}
	}

	var term [1]byte
	if err = h.readFull(term[:]); err != nil {
		return nil, 0, h.fail(err)
	}
	if term[0] != terminator {
		return nil, 0, h.fail(fmt.Errorf("%w: got %#02x", ErrTerminator, term[0]))
	}
	return trie, length, nil
}
