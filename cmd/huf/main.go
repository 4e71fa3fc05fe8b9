// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// huf compresses a .txt file into a .huf file, or decompresses a .huf file
// back into a .txt file.
//
// Usage:
//
//	huf [-config file] [-o output] [-v] [-table] <path>
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/intel/fasthuf"
	"github.com/intel/fasthuf/internal/config"
	"github.com/intel/fasthuf/internal/logger"
)

var errUsage = errors.New("incorrect number of arguments, only enter one valid path")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		logger.New(false).Errorf("%v", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	conf, paths, err := config.Parse("huf", args)
	if err != nil {
		return err
	}
	if len(paths) != 1 {
		return errUsage
	}
	log := logger.New(conf.Verbose)

	res, err := fasthuf.ProcessFileTo(paths[0], conf.Output)
	if err != nil {
		return err
	}
	log.Infof("%sed %s (%d bytes) to %s (%d bytes)", res.Mode, res.Input, res.In, res.Output, res.Out)
	if res.Mode == fasthuf.Compress {
		log.Debugf("%d distinct symbols, longest code %d bits, header %d bytes",
			res.Stats.Symbols(), res.Stats.MaxCodeLen, res.Stats.HeaderSize)
		if conf.Table {
			printTable(stdout, res)
		}
	}
	return nil
}

func printTable(w io.Writer, res fasthuf.Result) {
	for _, c := range res.Stats.Codes {
		fmt.Fprintf(w, "%-6s %3d %s\n", symbolName(c.Symbol), c.Len, c.Bits)
	}
}

func symbolName(b byte) string {
	if b >= 0x21 && b < 0x7f {
		return string(rune(b))
	}
	return strconv.Quote(string(rune(b)))
}
