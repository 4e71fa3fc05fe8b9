// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package huf implements the .huf compressed stream: a code table header
// followed by the input re-encoded with a byte-level Huffman code.
package huf

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/intel/fasthuf/compress/huf/internal/huffman"
)

var (
	errWriterClosed = errors.New("huf: write to closed writer")
	errInputChanged = errors.New("huf: input changed between frequency and encoding passes")
)

// SymbolCode describes the code assigned to one symbol.
type SymbolCode struct {
	Symbol byte
	Len    int
	Bits   string
}

// Stats summarizes one compression run.
type Stats struct {
	In         int64 // input bytes
	Out        int64 // output bytes, header included
	HeaderSize int64
	MaxCodeLen int
	Codes      []SymbolCode // ascending by symbol
}

// Symbols returns the number of distinct input bytes.
func (s Stats) Symbols() int { return len(s.Codes) }

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (n int, err error) {
	n, err = c.w.Write(p)
	c.n += int64(n)
	return
}

// Compress reads src twice, once to count byte frequencies and once to
// encode it, and writes the compressed stream to dst. src is read from its
// current position to the end.
func Compress(dst io.Writer, src io.ReadSeeker) (stats Stats, err error) {
	start, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return stats, err
	}
	freqs, n, err := huffman.Count(src)
	if err != nil {
		return stats, err
	}
	stats.In = n

	var table *huffman.Table
	if n > 0 {
		table, err = huffman.Generate(&freqs)
		if err != nil {
			return stats, fmt.Errorf("huf: generate codes: %w", err)
		}
	} else {
		table = &huffman.Table{}
	}
	stats.MaxCodeLen = table.MaxLen()
	for _, sym := range table.Symbols() {
		c, _ := table.Code(sym)
		stats.Codes = append(stats.Codes, SymbolCode{Symbol: sym, Len: c.Len, Bits: c.String()})
	}

	cw := &countWriter{w: dst}
	defer func() { stats.Out = cw.n }()

	hdr := appendHeader(make([]byte, 0, fixedHeaderSize+3*table.Len()+1), table, uint64(n))
	stats.HeaderSize = int64(len(hdr))
	if _, err = cw.Write(hdr); err != nil {
		return stats, err
	}
	if n == 0 {
		return stats, nil
	}

	if _, err = src.Seek(start, io.SeekStart); err != nil {
		return stats, err
	}
	buf := newBitBuf(cw)
	br := bufio.NewReader(io.LimitReader(src, n))
	var read int64
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, err
		}
		c, ok := table.Code(b)
		if !ok {
			return stats, errInputChanged
		}
		if err = buf.writeCode(c); err != nil {
			return stats, err
		}
		read++
	}
	if read != n {
		return stats, errInputChanged
	}
	return stats, buf.Close()
}

// Writer compresses everything written to it. Because codes depend on the
// frequencies of the whole input, the data is buffered and the stream is
// produced by Close.
type Writer struct {
	w      io.Writer
	buf    bytes.Buffer
	stats  Stats
	err    error
	closed bool
}

// NewWriter returns a Writer compressing into w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write buffers data for compression.
func (w *Writer) Write(data []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	if w.closed {
		return 0, errWriterClosed
	}
	return w.buf.Write(data)
}

// Close compresses the buffered input and writes the stream.
// It does not close the underlying writer.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		return nil
	}
	w.closed = true
	w.stats, w.err = Compress(w.w, bytes.NewReader(w.buf.Bytes()))
	w.buf.Reset()
	return w.err
}

// Reset discards buffered data and state and directs output to under.
func (w *Writer) Reset(under io.Writer) {
	w.w = under
	w.buf.Reset()
	w.stats = Stats{}
	w.err = nil
	w.closed = false
}

// Stats reports the run completed by the last Close.
func (w *Writer) Stats() Stats {
	return w.stats
}
