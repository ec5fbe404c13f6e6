package bnb

import (
	"github.com/google/btree"
)

// queue is a min-priority queue of open nodes. Order: lower bound ascending,
// then deeper first, then insertion order. The insertion sequence makes every
// key unique, so the ordered set never replaces an entry.
type queue struct {
	tree *btree.BTreeG[*node]
	next uint64
}

func nodeLess(a, b *node) bool {
	if a.bound != b.bound {
		return a.bound < b.bound
	}
	if a.depth != b.depth {
		return a.depth > b.depth
	}
	return a.seq < b.seq
}

func newQueue() *queue {
	return &queue{tree: btree.NewG(16, nodeLess)}
}

func (q *queue) push(n *node) {
	n.seq = q.next
	q.next++
	q.tree.ReplaceOrInsert(n)
}

func (q *queue) pop() (*node, bool) {
	return q.tree.DeleteMin()
}

func (q *queue) len() int {
	return q.tree.Len()
}
