// Package solver runs flow-shop algorithms by name.
//
// It is the single entry point shared by the CLI, the terminal picker and the
// HTTP API. The registry maps stable names ("johnson", "bnb", ...) to the
// algorithm packages, and a [Runner] adds logging, observability hooks,
// best-effort handling of search limits and an in-process outcome cache.
//
// # Usage
//
//	runner := solver.NewRunner(nil, nil, logger)
//	out, err := runner.Run(ctx, solver.AlgBranchAndBound, m, solver.Options{
//	    NodeLimit:  1_000_000,
//	    BestEffort: true,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Print(out.Report())
package solver
