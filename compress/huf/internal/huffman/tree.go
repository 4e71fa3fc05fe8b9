// Copyright (c) 2023, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import (
	"container/heap"
	"errors"
)

// ErrEmptyTable is returned when a tree is requested for an empty histogram.
var ErrEmptyTable = errors.New("huffman: empty frequency table")

const nilNode = -1

// node is either a leaf (left == right == nilNode) or an internal node.
// A synthesized root over a single leaf has only a left child.
type node struct {
	symbol byte
	freq   uint64
	left   int
	right  int
}

func (n *node) isLeaf() bool {
	return n.left == nilNode && n.right == nilNode
}

// Tree is a Huffman tree stored as an arena of nodes addressed by index.
// Every child index belongs to exactly one parent.
type Tree struct {
	nodes []node
	root  int
}

// Root returns the index of the root node.
func (t *Tree) Root() int { return t.root }

// Leaves returns the number of leaves in the tree.
func (t *Tree) Leaves() (num int) {
	for i := range t.nodes {
		if t.nodes[i].isLeaf() {
			num++
		}
	}
	return num
}

// queueItem orders nodes by frequency, then by arrival.
type queueItem struct {
	idx  int
	freq uint64
	seq  int
}

type nodeQueue []queueItem

func (q nodeQueue) Len() int { return len(q) }
func (q nodeQueue) Less(i, j int) bool {
	if q[i].freq != q[j].freq {
		return q[i].freq < q[j].freq
	}
	return q[i].seq < q[j].seq
}
func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x any) {
	*q = append(*q, x.(queueItem))
}

func (q *nodeQueue) Pop() any {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}

// Build generates the Huffman tree for the histogram.
// Leaves are seeded in ascending symbol order so the result is deterministic.
func Build(f *Frequencies) (*Tree, error) {
	k := f.Len()
	if k == 0 {
		return nil, ErrEmptyTable
	}
	t := &Tree{nodes: make([]node, 0, 2*k)}

	if k == 1 {
		for i, v := range f {
			if v != 0 {
				t.nodes = append(t.nodes,
					node{symbol: byte(i), freq: v, left: nilNode, right: nilNode},
					node{freq: v, left: 0, right: nilNode})
				break
			}
		}
		t.root = 1
		return t, nil
	}

	q := make(nodeQueue, 0, k)
	seq := 0
	for i, v := range f {
		if v == 0 {
			continue
		}
		t.nodes = append(t.nodes, node{symbol: byte(i), freq: v, left: nilNode, right: nilNode})
		q = append(q, queueItem{idx: len(t.nodes) - 1, freq: v, seq: seq})
		seq++
	}
	heap.Init(&q)

	for q.Len() > 1 {
		a := heap.Pop(&q).(queueItem)
		b := heap.Pop(&q).(queueItem)
		t.nodes = append(t.nodes, node{freq: a.freq + b.freq, left: a.idx, right: b.idx})
		heap.Push(&q, queueItem{idx: len(t.nodes) - 1, freq: a.freq + b.freq, seq: seq})
		seq++
	}
	t.root = q[0].idx
	return t, nil
}
