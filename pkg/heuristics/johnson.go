package heuristics

import (
	"github.com/matzehuels/flowshop/pkg/errors"
	"github.com/matzehuels/flowshop/pkg/flowshop"
)

// Method names reported in results.
const (
	MethodJohnsonClassic     = "Johnson (classic)"
	MethodJohnsonGeneralized = "Johnson (generalized)"
)

// pseudoJob is a job reduced to two processing times.
type pseudoJob struct {
	job  int
	a, b int
}

// Johnson applies Johnson's rule: the classic two-machine version when the
// matrix has 2 machines, the generalized version when it has more.
func Johnson(m flowshop.Matrix) (*flowshop.Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	switch n := m.Machines(); {
	case n == 2:
		return JohnsonClassic(m)
	case n > 2:
		return JohnsonGeneralized(m)
	default:
		return nil, errors.Validation(errors.ErrCodeUnsupportedMachines,
			"Johnson's rule requires at least 2 machines (got %d)", n)
	}
}

// JohnsonClassic applies Johnson's rule to a 2-machine matrix. The sequence
// it produces is optimal for that case.
func JohnsonClassic(m flowshop.Matrix) (*flowshop.Result, error) {
	if err := m.RequireMachines(MethodJohnsonClassic, 2, 2); err != nil {
		return nil, err
	}
	jobs := make([]pseudoJob, m.Jobs())
	for i, row := range m {
		jobs[i] = pseudoJob{job: i, a: row[0], b: row[1]}
	}
	return flowshop.NewResult(MethodJohnsonClassic, m, johnsonOrder(jobs))
}

// JohnsonGeneralized applies Johnson's rule to M > 2 machines by folding them
// into two pseudo-machines: the sum of the first k = ceil(M/2) machines and
// the sum of the last k. For odd M the middle machine counts in both.
// No optimality guarantee.
func JohnsonGeneralized(m flowshop.Matrix) (*flowshop.Result, error) {
	if err := m.RequireMachines(MethodJohnsonGeneralized, 3, 0); err != nil {
		return nil, err
	}
	n := m.Machines()
	k := (n + 1) / 2
	jobs := make([]pseudoJob, m.Jobs())
	for i := range m {
		jobs[i] = pseudoJob{job: i, a: m.RowSum(i, 0, k), b: m.RowSum(i, n-k, n)}
	}
	return flowshop.NewResult(MethodJohnsonGeneralized, m, johnsonOrder(jobs))
}

// johnsonOrder repeatedly removes the job holding the smallest remaining
// time. A minimum on the first pseudo-machine fills the next front slot, a
// minimum on the second fills the next back slot.
func johnsonOrder(jobs []pseudoJob) []int {
	seq := make([]int, len(jobs))
	left, right := 0, len(jobs)-1

	for len(jobs) > 0 {
		idx, onFirst := smallestTime(jobs)
		job := jobs[idx].job
		jobs = append(jobs[:idx], jobs[idx+1:]...)

		if onFirst {
			seq[left] = job
			left++
		} else {
			seq[right] = job
			right--
		}
	}
	return seq
}

// smallestTime scans jobs in order and returns the index of the first job
// holding the strict minimum, and whether that minimum is on the first
// pseudo-machine. Within a job the first machine wins ties.
func smallestTime(jobs []pseudoJob) (int, bool) {
	best, idx, onFirst := int(^uint(0)>>1), 0, true
	for i, j := range jobs {
		if j.a < best {
			best, idx, onFirst = j.a, i, true
		}
		if j.b < best {
			best, idx, onFirst = j.b, i, false
		}
	}
	return idx, onFirst
}
