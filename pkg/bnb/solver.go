package bnb

import (
	"context"
	"math"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/matzehuels/flowshop/pkg/errors"
	"github.com/matzehuels/flowshop/pkg/flowshop"
	"github.com/matzehuels/flowshop/pkg/observability"
)

// MethodBranchAndBound is the method name reported in results.
const MethodBranchAndBound = "Branch and bound"

// MaxUnlimitedJobs is the largest job count accepted when neither a node nor
// a time limit is set.
const MaxUnlimitedJobs = 15

// Solver is a best-first branch-and-bound search over job prefixes.
//
// The zero value searches without limits. A Solver holds no state between
// calls and may be reused.
type Solver struct {
	// TimeLimit stops the search once elapsed time exceeds it. 0 = unlimited.
	TimeLimit time.Duration
	// NodeLimit stops the search once more than NodeLimit nodes have been
	// explored. 0 = unlimited.
	NodeLimit int

	// Clock measures elapsed time. Defaults to the wall clock.
	Clock clock.Clock
	// Hooks receives incumbent and limit events. Defaults to the globally
	// registered observability.Search() hooks.
	Hooks observability.SearchHooks
}

// Solve searches for a sequence of minimum makespan.
//
// Errors:
//   - ValidationError when m is invalid, has fewer than 2 machines, a limit
//     is negative, or m has more than [MaxUnlimitedJobs] jobs while both
//     limits are 0.
//   - LimitExceededError when a limit trips or ctx is done. It carries the
//     incumbent at that moment, if any, and Stats are still returned.
//   - NoSolutionError when the queue drains without a complete sequence.
func (s *Solver) Solve(ctx context.Context, m flowshop.Matrix) (*flowshop.Result, *Stats, error) {
	if err := s.validate(m); err != nil {
		return nil, nil, err
	}

	clk := s.Clock
	if clk == nil {
		clk = clock.New()
	}
	hooks := s.Hooks
	if hooks == nil {
		hooks = observability.Search()
	}

	r := &run{
		ctx:   ctx,
		m:     m,
		s:     s,
		clk:   clk,
		hooks: hooks,
		start: clk.Now(),
		best:  math.MaxInt,
		stats: &Stats{Permutations: Factorial(m.Jobs())},
	}
	err := r.search()
	r.stats.Elapsed = clk.Since(r.start)
	if err != nil {
		return nil, r.stats, err
	}

	res := flowshop.FromSchedule(MethodBranchAndBound, r.incumbent.sequence(), &flowshop.Schedule{
		Timings:  r.incumbent.timings(),
		Makespan: r.best,
		Idle:     flowshop.IdleTimes(r.incumbent.timings()),
	})
	return res, r.stats, nil
}

func (s *Solver) validate(m flowshop.Matrix) error {
	if err := m.RequireMachines(MethodBranchAndBound, 2, 0); err != nil {
		return err
	}
	if s.NodeLimit < 0 {
		return errors.Validation(errors.ErrCodeInvalidInput, "node limit must not be negative (got %d)", s.NodeLimit)
	}
	if s.TimeLimit < 0 {
		return errors.Validation(errors.ErrCodeInvalidInput, "time limit must not be negative (got %s)", s.TimeLimit)
	}
	if n := m.Jobs(); n > MaxUnlimitedJobs && s.NodeLimit == 0 && s.TimeLimit == 0 {
		return errors.Validation(errors.ErrCodeTooManyJobs,
			"%d jobs exceed %d; set a node or time limit", n, MaxUnlimitedJobs)
	}
	return nil
}

// run is the state of a single Solve call.
type run struct {
	ctx   context.Context
	m     flowshop.Matrix
	s     *Solver
	clk   clock.Clock
	hooks observability.SearchHooks
	start time.Time

	best      int
	incumbent *node
	stats     *Stats
}

func (r *run) search() error {
	q := newQueue()
	q.push(newRoot(r.m))

	for q.len() > 0 {
		n, _ := q.pop()
		r.stats.NodesExplored++

		if err := r.checkLimits(); err != nil {
			return err
		}

		if n.bound >= r.best {
			r.stats.NodesPruned++
			continue
		}
		if n.complete() {
			r.best = n.bound
			r.incumbent = n
			r.stats.BestFoundAt = r.stats.NodesExplored
			r.hooks.OnIncumbent(r.ctx, r.best, r.stats.NodesExplored)
			continue
		}

		for job := 0; job < r.m.Jobs(); job++ {
			if !n.remaining.Test(uint(job)) {
				continue
			}
			c := n.child(r.m, job)
			if c.bound >= r.best {
				r.stats.NodesPruned++
				continue
			}
			q.push(c)
		}
	}

	if r.incumbent == nil {
		return &errors.NoSolutionError{NodesExplored: r.stats.NodesExplored}
	}
	return nil
}

// checkLimits runs after the explored counter is bumped for the popped node.
func (r *run) checkLimits() error {
	explored := r.stats.NodesExplored
	if r.s.NodeLimit > 0 && explored > r.s.NodeLimit {
		return r.limitError(errors.LimitNodes, nil)
	}
	if r.s.TimeLimit > 0 && r.clk.Since(r.start) > r.s.TimeLimit {
		return r.limitError(errors.LimitTime, nil)
	}
	if err := r.ctx.Err(); err != nil {
		return r.limitError(errors.LimitCancelled, err)
	}
	return nil
}

func (r *run) limitError(limit errors.Limit, cause error) error {
	r.hooks.OnLimit(r.ctx, string(limit), r.stats.NodesExplored)
	e := &errors.LimitExceededError{
		Limit:         limit,
		NodeLimit:     r.s.NodeLimit,
		TimeLimit:     r.s.TimeLimit,
		NodesExplored: r.stats.NodesExplored,
		Elapsed:       r.clk.Since(r.start),
		Cause:         cause,
	}
	if r.incumbent != nil {
		e.BestSequence = r.incumbent.sequence()
		e.BestMakespan = r.best
	}
	return e
}
