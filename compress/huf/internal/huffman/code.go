// Copyright (c) 2023, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import "errors"

// MaxCodeLen is the longest code the 8-bit length field can describe.
const MaxCodeLen = 255

var ErrCodeTooLong = errors.New("huffman: code length exceeds 255 bits")

// Code is a prefix code stored MSB first in ceil(Len/8) zero-padded bytes.
type Code struct {
	Len  int
	Bits []byte
}

// String returns the code as a bit-string of '0' and '1'.
func (c Code) String() string {
	s, _ := Unpack(c.Bits, c.Len)
	return s
}

// Table maps every coded symbol to its Code.
type Table struct {
	codes [256]Code
	num   int
	max   int
}

// Code returns the code of sym; ok is false if sym has none.
func (t *Table) Code(sym byte) (c Code, ok bool) {
	c = t.codes[sym]
	return c, c.Len != 0
}

// Len returns the number of coded symbols.
func (t *Table) Len() int { return t.num }

// MaxLen returns the longest code length in the table.
func (t *Table) MaxLen() int { return t.max }

// Symbols returns the coded symbols in ascending order.
func (t *Table) Symbols() []byte {
	syms := make([]byte, 0, t.num)
	for i := range t.codes {
		if t.codes[i].Len != 0 {
			syms = append(syms, byte(i))
		}
	}
	return syms
}

type frame struct {
	idx   int
	depth int
	bit   byte
}

// Assign walks the tree depth first and records the root-to-leaf path of
// every leaf, '0' for a left edge and '1' for a right edge.
func Assign(tree *Tree) (*Table, error) {
	t := &Table{}
	path := make([]byte, 0, 64)
	stack := []frame{{idx: tree.root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.depth > 0 {
			path = append(path[:f.depth-1], f.bit)
		}

		n := &tree.nodes[f.idx]
		if !n.isLeaf() {
			if n.right != nilNode {
				stack = append(stack, frame{idx: n.right, depth: f.depth + 1, bit: '1'})
			}
			if n.left != nilNode {
				stack = append(stack, frame{idx: n.left, depth: f.depth + 1, bit: '0'})
			}
			continue
		}

		if f.depth > MaxCodeLen {
			return nil, ErrCodeTooLong
		}
		bits, err := Pack(string(path))
		if err != nil {
			return nil, err
		}
		t.codes[n.symbol] = Code{Len: f.depth, Bits: bits}
		t.num++
		if f.depth > t.max {
			t.max = f.depth
		}
	}
	return t, nil
}

// Generate runs the tree builder and code assigner over the histogram.
func Generate(f *Frequencies) (*Table, error) {
	tree, err := Build(f)
	if err != nil {
		return nil, err
	}
	return Assign(tree)
}
