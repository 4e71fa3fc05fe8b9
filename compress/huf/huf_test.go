// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huf

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
)

func opticks(t testing.TB) (data []byte) {
	data, _ = os.ReadFile(filepath.Join(runtime.GOROOT(), "src", "testdata", "Isaac.Newton-Opticks.txt"))
	if data == nil {
		t.Skip("skip for no test data file")
	}
	return data
}

func compress(t testing.TB, data []byte) []byte {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	_, err := Compress(buf, bytes.NewReader(data))
	require.NoError(t, err)
	return buf.Bytes()
}

func decompress(t testing.TB, stream []byte) []byte {
	t.Helper()
	out := bytes.NewBuffer(nil)
	_, err := Decompress(out, bytes.NewReader(stream))
	require.NoError(t, err)
	return out.Bytes()
}

func TestRoundTrip(t *testing.T) {
	random := make([]byte, 4096)
	rand.Read(random)
	allBytes := make([]byte, 256)
	for i := range allBytes {
		allBytes[i] = byte(i)
	}

	for name, data := range map[string][]byte{
		"empty":      {},
		"one byte":   {0x7f},
		"repeated":   bytes.Repeat([]byte{'z'}, 333),
		"two":        []byte("abababababbbbba"),
		"text":       []byte("the quick brown fox jumps over the lazy dog"),
		"nul bytes":  {0, 0, 1, 0, 2, 0, 0, 3},
		"all bytes":  allBytes,
		"random":     random,
		"skewed":     append(bytes.Repeat([]byte{1}, 5000), 2, 3, 4, 5),
		"high bytes": {0xff, 0xfe, 0xff, 0x80, 0xff},
	} {
		t.Run(name, func(t *testing.T) {
			got := decompress(t, compress(t, data))
			require.Equal(t, len(data), len(got))
			require.True(t, bytes.Equal(data, got))
		})
	}
}

func TestOpticks(t *testing.T) {
	data := opticks(t)
	stream := compress(t, data)
	require.Less(t, len(stream), len(data))
	require.True(t, bytes.Equal(data, decompress(t, stream)))
}

func TestLiteralStream(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	stats, err := Compress(buf, bytes.NewReader([]byte("aaabbc")))
	require.NoError(t, err)

	want := []byte{
		0x00, 0x03, // entries
		0, 0, 0, 0, 0, 0, 0, 6, // decoded length
		'a', 1, 0x00,
		'b', 2, 0xc0,
		'c', 2, 0x80,
		0x00,       // terminator
		0x1f, 0x00, // 0 0 0 11 11 10, zero padded
	}
	require.Equal(t, want, buf.Bytes())
	require.Equal(t, int64(6), stats.In)
	require.Equal(t, int64(len(want)), stats.Out)
	require.Equal(t, int64(20), stats.HeaderSize)
	require.Equal(t, 3, stats.Symbols())
	require.Equal(t, 2, stats.MaxCodeLen)
	require.Equal(t, []SymbolCode{
		{Symbol: 'a', Len: 1, Bits: "0"},
		{Symbol: 'b', Len: 2, Bits: "11"},
		{Symbol: 'c', Len: 2, Bits: "10"},
	}, stats.Codes)

	require.Equal(t, "aaabbc", string(decompress(t, buf.Bytes())))
}

func TestEmptyInput(t *testing.T) {
	stream := compress(t, nil)
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, terminator}, stream)
	require.Empty(t, decompress(t, stream))
}

func TestSingleSymbol(t *testing.T) {
	data := bytes.Repeat([]byte{0x41}, 10000)
	stream := compress(t, data)

	require.Equal(t, uint16(1), binary.BigEndian.Uint16(stream))
	require.Equal(t, []byte{0x41, 1, 0x00, terminator}, stream[fixedHeaderSize:fixedHeaderSize+4])
	require.Len(t, stream, fixedHeaderSize+4+10000/8)
	require.True(t, bytes.Equal(data, decompress(t, stream)))
}

// A 0x00 symbol used to be indistinguishable from the header terminator.
// The entry count makes it an ordinary entry.
func TestNulSymbolIsNotTerminator(t *testing.T) {
	data := []byte{0x00, 'x', 0x00, 0x00, 'y'}
	stream := compress(t, data)
	require.Equal(t, byte(0x00), stream[fixedHeaderSize], "0x00 sorts first in the header")
	require.True(t, bytes.Equal(data, decompress(t, stream)))
}

func TestBadTerminator(t *testing.T) {
	stream := compress(t, []byte("aaabbc"))
	stream[19] = 0x07
	_, err := Decompress(io.Discard, bytes.NewReader(stream))
	require.ErrorIs(t, err, ErrTerminator)

	var cie *CorruptInputError
	require.ErrorAs(t, err, &cie)
	require.Equal(t, int64(20), cie.Offset)
}

func header(entries uint16, length uint64, body ...byte) []byte {
	b := binary.BigEndian.AppendUint16(nil, entries)
	b = binary.BigEndian.AppendUint64(b, length)
	return append(b, body...)
}

func TestCorruptHeader(t *testing.T) {
	valid := compress(t, []byte("aaabbc"))

	for _, tc := range []struct {
		name   string
		stream []byte
		want   error
	}{
		{"no header", nil, ErrTruncated},
		{"short fixed header", valid[:5], ErrTruncated},
		{"truncated entry", valid[:12], ErrTruncated},
		{"truncated code bits", header(1, 1, 'a', 9, 0x00), ErrTruncated},
		{"missing terminator", valid[:19], ErrTruncated},
		{"too many entries", header(257, 0), ErrFormat},
		{"zero code length", header(1, 1, 'a', 0, terminator, 0x00), ErrFormat},
		{"symbols without codes", header(0, 3, terminator), ErrFormat},
		{"duplicate code", header(2, 2, 'a', 1, 0x00, 'b', 1, 0x00, terminator, 0x00), ErrDuplicateCode},
		{"prefix conflict", header(2, 2, 'a', 1, 0x00, 'b', 2, 0x00, terminator, 0x00), ErrPrefixConflict},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decompress(io.Discard, bytes.NewReader(tc.stream))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCorruptPayload(t *testing.T) {
	valid := compress(t, []byte("aaabbc"))
	_, err := Decompress(io.Discard, bytes.NewReader(valid[:len(valid)-1]))
	require.ErrorIs(t, err, ErrTruncated)

	// only "0" is a code, so a leading 1 bit cannot be decoded
	_, err = Decompress(io.Discard, bytes.NewReader(header(1, 2, 'a', 1, 0x00, terminator, 0x80)))
	require.ErrorIs(t, err, ErrInvalidCode)
}

func TestTrailingPaddingDiscarded(t *testing.T) {
	// "a" is coded as a single 0 bit, so the seven padding zeros would
	// otherwise decode as seven extra symbols.
	stream := compress(t, []byte("aaabbc"))
	require.Equal(t, "aaabbc", string(decompress(t, stream)))

	// trailing bytes after the payload are not consumed as data
	stream = append(stream, 0x00, 0x00)
	require.Equal(t, "aaabbc", string(decompress(t, stream)))
}

func TestReaderSmallReads(t *testing.T) {
	data := []byte("she sells sea shells by the sea shore")
	stream := compress(t, data)

	r := NewReader(iotest.OneByteReader(bytes.NewReader(stream)))
	var got []byte
	b := make([]byte, 1)
	for {
		n, err := r.Read(b)
		got = append(got, b[:n]...)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
	require.Equal(t, data, got)

	n, err := r.Read(b)
	require.Zero(t, n)
	require.Equal(t, io.EOF, err)
	require.NoError(t, r.Close())
}

func TestReaderReset(t *testing.T) {
	first := compress(t, []byte("first stream"))
	second := compress(t, []byte("second, longer stream"))

	r := NewReader(bytes.NewReader(first))
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "first stream", string(got))

	require.NoError(t, r.(Resetter).Reset(bytes.NewReader(second)))
	got, err = io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "second, longer stream", string(got))
}

func TestWriter(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	w := NewWriter(buf)
	for _, part := range []string{"aaa", "bb", "c"} {
		n, err := w.Write([]byte(part))
		require.NoError(t, err)
		require.Equal(t, len(part), n)
	}
	require.NoError(t, w.Close())
	require.Equal(t, compress(t, []byte("aaabbc")), buf.Bytes())
	require.Equal(t, int64(buf.Len()), w.Stats().Out)

	_, err := w.Write([]byte("late"))
	require.ErrorIs(t, err, errWriterClosed)
	require.NoError(t, w.Close())

	buf2 := bytes.NewBuffer(nil)
	w.Reset(buf2)
	_, err = io.Copy(w, bytes.NewReader([]byte{9, 9, 9}))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.Equal(t, []byte{9, 9, 9}, decompress(t, buf2.Bytes()))
	require.Equal(t, 1, w.Stats().Symbols())
}

func TestCompressFromOffset(t *testing.T) {
	src := bytes.NewReader([]byte("skip-me:payload"))
	_, err := src.Seek(8, io.SeekStart)
	require.NoError(t, err)

	buf := bytes.NewBuffer(nil)
	stats, err := Compress(buf, src)
	require.NoError(t, err)
	require.Equal(t, int64(7), stats.In)
	require.Equal(t, "payload", string(decompress(t, buf.Bytes())))
}

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestCompressWriteError(t *testing.T) {
	_, err := Compress(errWriter{}, bytes.NewReader([]byte("data")))
	require.ErrorIs(t, err, io.ErrClosedPipe)
}

func BenchmarkCompress(b *testing.B) {
	data := opticks(b)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Compress(io.Discard, bytes.NewReader(data))
	}
}

func BenchmarkDecompress(b *testing.B) {
	data := opticks(b)
	stream := compress(b, data)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Decompress(io.Discard, bytes.NewReader(stream))
	}
}
