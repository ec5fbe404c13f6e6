package bnb

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/matzehuels/flowshop/pkg/flowshop"
)

// node is a partial sequence in the search tree.
//
// A node stores only the job it appends and the timing row of that job;
// the rest of the prefix is reached through parent. Children share their
// ancestors, so memory per node is O(M + N/64).
type node struct {
	parent *node
	job    int // -1 for the root
	depth  int
	row    []flowshop.Timing

	remaining *bitset.BitSet
	// remSum[k] is the summed time of the unscheduled jobs on machine k.
	remSum []int

	bound int
	seq   uint64 // insertion order
}

func newRoot(m flowshop.Matrix) *node {
	jobs, machines := m.Jobs(), m.Machines()
	remaining := bitset.New(uint(jobs))
	remSum := make([]int, machines)
	for j := 0; j < jobs; j++ {
		remaining.Set(uint(j))
		for k := 0; k < machines; k++ {
			remSum[k] += m[j][k]
		}
	}
	n := &node{job: -1, remaining: remaining, remSum: remSum}
	n.bound = n.lowerBound()
	return n
}

// child appends job to the prefix of n.
func (n *node) child(m flowshop.Matrix, job int) *node {
	remSum := make([]int, len(n.remSum))
	for k := range remSum {
		remSum[k] = n.remSum[k] - m[job][k]
	}
	remaining := n.remaining.Clone()
	remaining.Clear(uint(job))

	c := &node{
		parent:    n,
		job:       job,
		depth:     n.depth + 1,
		row:       flowshop.NextRow(m, n.row, job),
		remaining: remaining,
		remSum:    remSum,
	}
	c.bound = c.lowerBound()
	return c
}

// lowerBound is the largest, over all machines, of the machine's completion
// time for the prefix plus the remaining work on that machine. For a complete
// prefix it equals the makespan.
func (n *node) lowerBound() int {
	bound := 0
	for k, rem := range n.remSum {
		done := 0
		if n.row != nil {
			done = n.row[k].End
		}
		bound = max(bound, done+rem)
	}
	return bound
}

func (n *node) complete() bool {
	return n.remaining.None()
}

// sequence returns the prefix from the root down to n.
func (n *node) sequence() []int {
	seq := make([]int, n.depth)
	for cur := n; cur.parent != nil; cur = cur.parent {
		seq[cur.depth-1] = cur.job
	}
	return seq
}

// timings returns the timing table of the prefix.
func (n *node) timings() [][]flowshop.Timing {
	t := make([][]flowshop.Timing, n.depth)
	for cur := n; cur.parent != nil; cur = cur.parent {
		t[cur.depth-1] = cur.row
	}
	return t
}
