package heuristics

import (
	"github.com/matzehuels/flowshop/pkg/flowshop"
)

// MethodPriorityRule is the method name reported by [PriorityRule].
const MethodPriorityRule = "Priority index"

// PriorityRule orders a 2-machine matrix by a signed priority index.
//
// For a job with times (a, b) the index is sign × (max − min(a, b)), where
// max is the largest time in the whole matrix and sign is +1 when a < b,
// −1 otherwise. Jobs are sorted by descending index, which pulls jobs that
// are quick on the first machine to the front and jobs that are quick on the
// second machine to the back.
func PriorityRule(m flowshop.Matrix) (*flowshop.Result, error) {
	if err := m.RequireMachines(MethodPriorityRule, 2, 2); err != nil {
		return nil, err
	}
	seq := keyOrder(m.Jobs(), priorityIndex(m), true)
	return flowshop.NewResult(MethodPriorityRule, m, seq)
}

func priorityIndex(m flowshop.Matrix) func(job int) int {
	top := m.MaxTime()
	return func(job int) int {
		a, b := m[job][0], m[job][1]
		if a < b {
			return top - a
		}
		return -(top - min(a, b))
	}
}
