// Copyright (c) 2023, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import "errors"

var (
	ErrDuplicateCode  = errors.New("huffman: duplicate code")
	ErrPrefixConflict = errors.New("huffman: code is a prefix of another code")
	ErrInvalidCode    = errors.New("huffman: bit sequence matches no code")
)

type trieNode struct {
	child  [2]int32
	symbol byte
	leaf   bool
}

// Trie is the decode-side lookup: a binary trie keyed by code bits whose
// leaves carry symbols. Node 0 is the root.
type Trie struct {
	nodes []trieNode
}

// NewTrie returns a trie holding only the root.
func NewTrie() *Trie {
	return &Trie{nodes: []trieNode{{}}}
}

// Root returns the starting state for Next.
func (t *Trie) Root() int32 { return 0 }

// Len returns the number of codes in the trie.
func (t *Trie) Len() (num int) {
	for i := range t.nodes {
		if t.nodes[i].leaf {
			num++
		}
	}
	return num
}

// Insert adds a code given as a bit-string.
func (t *Trie) Insert(bits string, sym byte) error {
	if len(bits) == 0 {
		return ErrInvalidBit
	}
	cur := int32(0)
	for i := 0; i < len(bits); i++ {
		if t.nodes[cur].leaf {
			return ErrPrefixConflict
		}
		var b int
		switch bits[i] {
		case '0':
		case '1':
			b = 1
		default:
			return ErrInvalidBit
		}
		next := t.nodes[cur].child[b]
		if next == 0 {
			t.nodes = append(t.nodes, trieNode{})
			next = int32(len(t.nodes) - 1)
			t.nodes[cur].child[b] = next
		}
		cur = next
	}
	n := &t.nodes[cur]
	if n.leaf {
		return ErrDuplicateCode
	}
	if n.child[0] != 0 || n.child[1] != 0 {
		return ErrPrefixConflict
	}
	n.leaf = true
	n.symbol = sym
	return nil
}

// Next follows one bit from state. When the walk reaches a code, ok is true,
// sym holds the decoded symbol and next is the root again.
func (t *Trie) Next(state int32, bit bool) (next int32, sym byte, ok bool, err error) {
	b := 0
	if bit {
		b = 1
	}
	next = t.nodes[state].child[b]
	if next == 0 {
		return 0, 0, false, ErrInvalidCode
	}
	if n := &t.nodes[next]; n.leaf {
		return 0, n.symbol, true, nil
	}
	return next, 0, false, nil
}
