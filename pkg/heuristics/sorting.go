package heuristics

import (
	"cmp"
	"slices"

	"github.com/matzehuels/flowshop/pkg/flowshop"
)

// Method names reported in results.
const (
	MethodMinFirstMachine = "Min first-machine time"
	MethodMaxLastMachine  = "Max last-machine time"
	MethodBottleneck      = "Bottleneck machine"
	MethodMaxTotal        = "Max total time"
)

// keyOrder stably sorts job indices by key. Equal keys keep ascending job
// index.
func keyOrder(n int, key func(job int) int, descending bool) []int {
	seq := make([]int, n)
	for i := range seq {
		seq[i] = i
	}
	slices.SortStableFunc(seq, func(a, b int) int {
		if descending {
			return cmp.Compare(key(b), key(a))
		}
		return cmp.Compare(key(a), key(b))
	})
	return seq
}

// MinFirstMachine orders jobs by ascending processing time on the first
// machine.
func MinFirstMachine(m flowshop.Matrix) (*flowshop.Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	seq := keyOrder(m.Jobs(), func(j int) int { return m[j][0] }, false)
	return flowshop.NewResult(MethodMinFirstMachine, m, seq)
}

// MaxLastMachine orders jobs by descending processing time on the last
// machine.
func MaxLastMachine(m flowshop.Matrix) (*flowshop.Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	last := m.Machines() - 1
	seq := keyOrder(m.Jobs(), func(j int) int { return m[j][last] }, true)
	return flowshop.NewResult(MethodMaxLastMachine, m, seq)
}

// Bottleneck orders jobs by descending index of the machine on which each
// job takes longest. Jobs whose bottleneck is late in the line go first.
func Bottleneck(m flowshop.Matrix) (*flowshop.Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	seq := keyOrder(m.Jobs(), func(j int) int { return bottleneckMachine(m[j]) }, true)
	return flowshop.NewResult(MethodBottleneck, m, seq)
}

// bottleneckMachine returns the machine with the largest time in row.
// Equal maxima resolve to the highest machine index.
func bottleneckMachine(row []int) int {
	idx := 0
	for k, v := range row {
		if v >= row[idx] {
			idx = k
		}
	}
	return idx
}

// MaxTotal orders jobs by descending total processing time.
func MaxTotal(m flowshop.Matrix) (*flowshop.Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	n := m.Machines()
	seq := keyOrder(m.Jobs(), func(j int) int { return m.RowSum(j, 0, n) }, true)
	return flowshop.NewResult(MethodMaxTotal, m, seq)
}
