// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huf

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"

	"github.com/intel/fasthuf/compress/huf/internal/huffman"
)

var (
	ErrFormat     = errors.New("huf: malformed header")
	ErrTruncated  = errors.New("huf: unexpected end of stream")
	ErrTerminator = errors.New("huf: bad header terminator")

	ErrDuplicateCode  = huffman.ErrDuplicateCode
	ErrPrefixConflict = huffman.ErrPrefixConflict
	ErrInvalidCode    = huffman.ErrInvalidCode
)

// CorruptInputError reports a format violation at a given byte offset
// of the compressed stream.
type CorruptInputError struct {
	Offset int64
	Err    error
}

func (e *CorruptInputError) Error() string {
	return fmt.Sprintf("huf: corrupt input before offset %d: %v", e.Offset, e.Err)
}

func (e *CorruptInputError) Unwrap() error { return e.Err }

// Resetter resets a reader returned by NewReader to read from a new source.
type Resetter interface {
	Reset(r io.Reader) error
}

const (
	phaseHeader = iota
	phasePayload
	phaseFinish
)

type decompressor struct {
	rBuf      *bufio.Reader
	bits      *bitio.Reader
	trie      *huffman.Trie
	phase     int
	remaining uint64
	hdrSize   int64
	bitsRead  int64
	err       error
}

// NewReader returns a reader that decompresses the stream read from r.
// The header is parsed by the first call to Read.
func NewReader(r io.Reader) io.ReadCloser {
	d := &decompressor{}
	d.Reset(r)
	return d
}

func (d *decompressor) Reset(under io.Reader) error {
	if ur, ok := under.(*bufio.Reader); ok {
		d.rBuf = ur
	} else if d.rBuf != nil {
		d.rBuf.Reset(under)
	} else {
		d.rBuf = bufio.NewReader(under)
	}
	d.bits = nil
	d.trie = nil
	d.phase = phaseHeader
	d.remaining = 0
	d.hdrSize = 0
	d.bitsRead = 0
	d.err = nil
	return nil
}

func (d *decompressor) Close() error {
	return nil
}

func (d *decompressor) Read(b []byte) (n int, err error) {
	if d.err != nil {
		return 0, d.err
	}
	if d.phase == phaseHeader {
		if d.err = d.readHeader(); d.err != nil {
			return 0, d.err
		}
	}
	for n < len(b) && d.remaining > 0 {
		sym, err := d.decodeSymbol()
		if err != nil {
			d.err = err
			return n, err
		}
		b[n] = sym
		n++
		d.remaining--
	}
	if d.remaining == 0 {
		// leftover bits in the last byte are padding
		d.phase = phaseFinish
		d.err = io.EOF
		if n == 0 {
			return 0, io.EOF
		}
	}
	return n, nil
}

func (d *decompressor) readHeader() error {
	h := headerReader{r: d.rBuf}
	trie, length, err := h.read()
	d.hdrSize = h.roffset
	if err != nil {
		return err
	}
	d.trie = trie
	d.remaining = length
	d.bits = bitio.NewReader(d.rBuf)
	d.phase = phasePayload
	return nil
}

func (d *decompressor) offset() int64 {
	return d.hdrSize + (d.bitsRead+7)/8
}

// decodeSymbol walks the trie one bit at a time until it reaches a code.
func (d *decompressor) decodeSymbol() (byte, error) {
	state := d.trie.Root()
	for {
		bit, err := d.bits.ReadBool()
		if err == io.EOF {
			return 0, &CorruptInputError{Offset: d.offset(), Err: ErrTruncated}
		}
		if err != nil {
			return 0, err
		}
		d.bitsRead++
		next, sym, ok, err := d.trie.Next(state, bit)
		if err != nil {
			return 0, &CorruptInputError{Offset: d.offset(), Err: err}
		}
		if ok {
			return sym, nil
		}
		state = next
	}
}

// Decompress decodes the stream read from src into dst and returns the
// number of bytes written.
func Decompress(dst io.Writer, src io.Reader) (int64, error) {
	return io.Copy(dst, NewReader(src))
}
