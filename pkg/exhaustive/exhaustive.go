// Package exhaustive finds an optimal job order by evaluating every
// permutation.
//
// Permutations are generated in lexicographic order and scheduled
// incrementally, one timing row per position, so a prefix shared by many
// permutations is computed once. The first permutation reaching the minimum
// makespan wins, which makes the result deterministic.
//
// The search space is N!, so the job count is capped at [MaxJobs].
package exhaustive

import (
	"context"

	"github.com/matzehuels/flowshop/pkg/errors"
	"github.com/matzehuels/flowshop/pkg/flowshop"
)

// MaxJobs is the largest job count Search accepts (10! = 3,628,800).
const MaxJobs = 10

// MethodExhaustive is the method name reported by [Search].
const MethodExhaustive = "Exhaustive search"

// checkEvery is how many complete permutations are evaluated between
// context checks.
const checkEvery = 4096

// Search evaluates all permutations of the jobs in m and returns the one with
// the smallest makespan.
//
// It fails with a ValidationError when m is invalid or has more than
// [MaxJobs] jobs, and with a LimitExceededError wrapping the context error
// when ctx is done before the search finishes.
func Search(ctx context.Context, m flowshop.Matrix) (*flowshop.Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if n := m.Jobs(); n > MaxJobs {
		return nil, errors.Validation(errors.ErrCodeTooManyJobs,
			"exhaustive search supports at most %d jobs (got %d)", MaxJobs, n)
	}

	s := newSearch(ctx, m)
	s.walk(0, nil)
	if s.err != nil {
		return nil, s.err
	}
	return flowshop.NewResult(MethodExhaustive, m, s.best)
}

type search struct {
	ctx context.Context
	m   flowshop.Matrix

	seq  []int
	used []bool

	best         []int
	bestMakespan int
	evaluated    int
	err          error
}

func newSearch(ctx context.Context, m flowshop.Matrix) *search {
	n := m.Jobs()
	return &search{
		ctx:          ctx,
		m:            m,
		seq:          make([]int, n),
		used:         make([]bool, n),
		bestMakespan: -1,
	}
}

// walk fills position pos with every unused job in ascending order. prev is
// the timing row of position pos-1.
func (s *search) walk(pos int, prev []flowshop.Timing) {
	if s.err != nil {
		return
	}
	n := len(s.seq)
	if pos == n {
		s.evaluate(prev)
		return
	}
	for job := 0; job < n; job++ {
		if s.used[job] {
			continue
		}
		s.used[job] = true
		s.seq[pos] = job
		s.walk(pos+1, flowshop.NextRow(s.m, prev, job))
		s.used[job] = false
	}
}

func (s *search) evaluate(last []flowshop.Timing) {
	s.evaluated++
	if s.evaluated%checkEvery == 0 {
		if err := s.ctx.Err(); err != nil {
			s.err = &errors.LimitExceededError{
				Limit:         errors.LimitCancelled,
				NodesExplored: s.evaluated,
				BestSequence:  append([]int(nil), s.best...),
				BestMakespan:  s.bestMakespan,
				Cause:         err,
			}
			return
		}
	}
	makespan := last[len(last)-1].End
	if s.best == nil || makespan < s.bestMakespan {
		s.best = append(s.best[:0], s.seq...)
		s.bestMakespan = makespan
	}
}
