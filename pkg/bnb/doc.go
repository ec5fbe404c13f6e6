// Package bnb implements a best-first branch-and-bound solver for the
// permutation flow-shop problem.
//
// # Search
//
// Each node of the search tree is a prefix of the final sequence. The open
// nodes sit in a priority queue ordered by lower bound, deeper nodes first on
// equal bounds, then insertion order. The lower bound of a prefix is
//
//	max over machines k of (completion of the prefix on k + remaining work on k)
//
// which never overestimates the makespan of any completion of the prefix.
// A popped node whose bound is not below the incumbent is pruned; a complete
// node below the incumbent replaces it; anything else is expanded with one
// child per unscheduled job in ascending job order. Children that cannot beat
// the incumbent are pruned before they enter the queue.
//
// # Limits
//
// [Solver.NodeLimit] and [Solver.TimeLimit] bound the work; 0 means
// unlimited. Without either, instances above [MaxUnlimitedJobs] jobs are
// rejected up front. When a limit trips, or the context is cancelled, Solve
// returns a LimitExceededError that carries the incumbent found so far:
//
//	res, stats, err := (&bnb.Solver{NodeLimit: 100_000}).Solve(ctx, m)
//	var le *errors.LimitExceededError
//	if stderrors.As(err, &le) && le.HasIncumbent() {
//	    // use le.BestSequence as a best-effort answer
//	}
package bnb
