package bnb

import (
	"math/big"
	"time"
)

// Stats describes one branch-and-bound run.
type Stats struct {
	// NodesExplored counts nodes taken off the queue, including the one that
	// tripped a limit.
	NodesExplored int `json:"nodes_explored"`
	// NodesPruned counts nodes discarded because their bound could not beat
	// the incumbent, whether at generation or when popped.
	NodesPruned int `json:"nodes_pruned"`
	// BestFoundAt is the value of NodesExplored when the final incumbent was
	// found, or 0 if none was.
	BestFoundAt int `json:"best_found_at"`
	// Permutations is N!, the size of the full sequence space.
	Permutations *big.Int      `json:"permutations"`
	Elapsed      time.Duration `json:"elapsed"`
}

// Optimal reports whether the search finished having explored fewer nodes
// than there are permutations, i.e. pruning did real work.
func (s *Stats) Optimal() bool {
	if s.Permutations == nil {
		return false
	}
	return big.NewInt(int64(s.NodesExplored)).Cmp(s.Permutations) < 0
}

// PruningRatio returns pruned / (explored + pruned), or 0 before any node has
// been touched.
func (s *Stats) PruningRatio() float64 {
	total := s.NodesExplored + s.NodesPruned
	if total == 0 {
		return 0
	}
	return float64(s.NodesPruned) / float64(total)
}

// Factorial returns n! as a big integer. Values of n below 2 yield 1.
func Factorial(n int) *big.Int {
	f := big.NewInt(1)
	if n < 2 {
		return f
	}
	return f.MulRange(1, int64(n))
}
