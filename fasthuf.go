// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package fasthuf compresses and decompresses files with the .huf Huffman
// format. The file extension selects the direction: ".txt" files are
// compressed to ".huf", ".huf" files are decompressed back to ".txt".
// The codec itself lives in github.com/intel/fasthuf/compress/huf.
package fasthuf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/intel/fasthuf/compress/huf"
)

// File extensions, without the leading dot.
const (
	CompressedExt = "huf"
	OriginalExt   = "txt"
)

var (
	ErrUnknownExtension = errors.New(`fasthuf: expected a file with the extension "huf" or "txt"`)
	ErrInput            = errors.New("fasthuf: input unavailable")
	ErrSamePath         = errors.New("fasthuf: output path equals input path")
)

// Mode is the direction of a file operation.
type Mode int

const (
	Compress Mode = iota + 1
	Decompress
)

func (m Mode) String() string {
	switch m {
	case Compress:
		return "compress"
	case Decompress:
		return "decompress"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ModeOf selects the operation from the extension of path.
func ModeOf(path string) (Mode, error) {
	switch strings.TrimPrefix(filepath.Ext(path), ".") {
	case OriginalExt:
		return Compress, nil
	case CompressedExt:
		return Decompress, nil
	}
	return 0, ErrUnknownExtension
}

// OutputPath returns path with its extension swapped for the opposite one.
func OutputPath(path string) (string, error) {
	mode, err := ModeOf(path)
	if err != nil {
		return "", err
	}
	base := strings.TrimSuffix(path, filepath.Ext(path))
	if mode == Compress {
		return base + "." + CompressedExt, nil
	}
	return base + "." + OriginalExt, nil
}

// Result describes a completed file operation.
type Result struct {
	Mode   Mode
	Input  string
	Output string
	In     int64 // bytes read
	Out    int64 // bytes written
	Stats  huf.Stats
}

// ProcessFile compresses or decompresses path into OutputPath(path).
func ProcessFile(path string) (Result, error) {
	return ProcessFileTo(path, "")
}

// ProcessFileTo is like ProcessFile but writes to output when it is not
// empty. A partially written output file is removed on failure.
func ProcessFileTo(path, output string) (res Result, err error) {
	res.Mode, err = ModeOf(path)
	if err != nil {
		return res, err
	}
	if output == "" {
		if output, err = OutputPath(path); err != nil {
			return res, err
		}
	}
	if filepath.Clean(output) == filepath.Clean(path) {
		return res, ErrSamePath
	}
	res.Input, res.Output = path, output

	in, err := os.Open(path)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrInput, err)
	}
	defer in.Close()

	out, err := os.Create(output)
	if err != nil {
		return res, err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(output)
		}
	}()

	switch res.Mode {
	case Compress:
		res.Stats, err = huf.Compress(out, in)
		res.In, res.Out = res.Stats.In, res.Stats.Out
	case Decompress:
		res.Out, err = huf.Decompress(out, in)
		if fi, serr := in.Stat(); serr == nil {
			res.In = fi.Size()
		}
	}
	return res, err
}
