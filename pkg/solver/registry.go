package solver

import (
	"context"
	"slices"
	"strings"

	"github.com/matzehuels/flowshop/pkg/bnb"
	"github.com/matzehuels/flowshop/pkg/errors"
	"github.com/matzehuels/flowshop/pkg/exhaustive"
	"github.com/matzehuels/flowshop/pkg/flowshop"
	"github.com/matzehuels/flowshop/pkg/heuristics"
)

// Algorithm names accepted by [Runner.Run].
const (
	AlgJohnson            = "johnson"
	AlgJohnsonClassic     = "johnson-classic"
	AlgJohnsonGeneralized = "johnson-generalized"
	AlgMinFirst           = "min-first"
	AlgMaxLast            = "max-last"
	AlgBottleneck         = "bottleneck"
	AlgMaxTotal           = "max-total"
	AlgPriority           = "priority"
	AlgThreeCandidate     = "three-candidate"
	AlgExhaustive         = "exhaustive"
	AlgBranchAndBound     = "bnb"
)

// Kind groups algorithms by how they search.
type Kind string

const (
	KindHeuristic Kind = "heuristic"
	KindExact     Kind = "exact"
)

// Info describes a registered algorithm.
type Info struct {
	Name        string `json:"name"`
	Method      string `json:"method"`
	Kind        Kind   `json:"kind"`
	Description string `json:"description"`
	// MinMachines and MaxMachines bound the machine count (0 = no bound).
	MinMachines int `json:"min_machines,omitempty"`
	MaxMachines int `json:"max_machines,omitempty"`
	// MaxJobs is the job cap, 0 when there is none.
	MaxJobs int `json:"max_jobs,omitempty"`
}

// Supports reports whether the algorithm accepts a matrix of the given shape.
// The branch-and-bound job cap depends on limits and is not checked here.
func (i Info) Supports(jobs, machines int) bool {
	if i.MinMachines > 0 && machines < i.MinMachines {
		return false
	}
	if i.MaxMachines > 0 && machines > i.MaxMachines {
		return false
	}
	return i.MaxJobs == 0 || jobs <= i.MaxJobs
}

type algorithm struct {
	Info
	run func(ctx context.Context, m flowshop.Matrix, opts Options) (*Outcome, error)
}

func heuristic(fn func(flowshop.Matrix) (*flowshop.Result, error)) func(context.Context, flowshop.Matrix, Options) (*Outcome, error) {
	return func(_ context.Context, m flowshop.Matrix, _ Options) (*Outcome, error) {
		r, err := fn(m)
		if err != nil {
			return nil, err
		}
		return &Outcome{Result: r}, nil
	}
}

// registry lists algorithms in display order.
var registry = []algorithm{
	{
		Info: Info{Name: AlgJohnson, Method: "Johnson", Kind: KindHeuristic, MinMachines: 2,
			Description: "Johnson's rule: classic on 2 machines, generalized above"},
		run: heuristic(heuristics.Johnson),
	},
	{
		Info: Info{Name: AlgJohnsonClassic, Method: heuristics.MethodJohnsonClassic, Kind: KindHeuristic, MinMachines: 2, MaxMachines: 2,
			Description: "Johnson's rule for exactly 2 machines (optimal)"},
		run: heuristic(heuristics.JohnsonClassic),
	},
	{
		Info: Info{Name: AlgJohnsonGeneralized, Method: heuristics.MethodJohnsonGeneralized, Kind: KindHeuristic, MinMachines: 3,
			Description: "Johnson's rule on two summed pseudo-machines"},
		run: heuristic(heuristics.JohnsonGeneralized),
	},
	{
		Info: Info{Name: AlgMinFirst, Method: heuristics.MethodMinFirstMachine, Kind: KindHeuristic,
			Description: "ascending time on the first machine"},
		run: heuristic(heuristics.MinFirstMachine),
	},
	{
		Info: Info{Name: AlgMaxLast, Method: heuristics.MethodMaxLastMachine, Kind: KindHeuristic,
			Description: "descending time on the last machine"},
		run: heuristic(heuristics.MaxLastMachine),
	},
	{
		Info: Info{Name: AlgBottleneck, Method: heuristics.MethodBottleneck, Kind: KindHeuristic,
			Description: "descending index of each job's slowest machine"},
		run: heuristic(heuristics.Bottleneck),
	},
	{
		Info: Info{Name: AlgMaxTotal, Method: heuristics.MethodMaxTotal, Kind: KindHeuristic,
			Description: "descending total processing time"},
		run: heuristic(heuristics.MaxTotal),
	},
	{
		Info: Info{Name: AlgPriority, Method: heuristics.MethodPriorityRule, Kind: KindHeuristic, MinMachines: 2, MaxMachines: 2,
			Description: "signed priority index for 2 machines"},
		run: heuristic(heuristics.PriorityRule),
	},
	{
		Info: Info{Name: AlgThreeCandidate, Method: heuristics.MethodThreeCandidate, Kind: KindHeuristic, MinMachines: 2,
			Description: "best of S1 descending, S2 ascending, D descending"},
		run: func(_ context.Context, m flowshop.Matrix, _ Options) (*Outcome, error) {
			c, err := heuristics.ThreeCandidateBreakdown(m)
			if err != nil {
				return nil, err
			}
			return &Outcome{Result: c.Best(), Candidates: c}, nil
		},
	},
	{
		Info: Info{Name: AlgExhaustive, Method: exhaustive.MethodExhaustive, Kind: KindExact, MaxJobs: exhaustive.MaxJobs,
			Description: "every permutation, first minimum wins"},
		run: func(ctx context.Context, m flowshop.Matrix, _ Options) (*Outcome, error) {
			r, err := exhaustive.Search(ctx, m)
			if err != nil {
				return nil, err
			}
			return &Outcome{Result: r}, nil
		},
	},
	{
		Info: Info{Name: AlgBranchAndBound, Method: bnb.MethodBranchAndBound, Kind: KindExact, MinMachines: 2,
			Description: "best-first branch and bound with node and time limits"},
		run: func(ctx context.Context, m flowshop.Matrix, opts Options) (*Outcome, error) {
			s := &bnb.Solver{TimeLimit: opts.TimeLimit, NodeLimit: opts.NodeLimit, Clock: opts.Clock}
			r, stats, err := s.Solve(ctx, m)
			if err != nil {
				return &Outcome{Stats: stats}, err
			}
			return &Outcome{Result: r, Stats: stats}, nil
		},
	},
}

// Algorithms returns every registered algorithm in display order.
func Algorithms() []Info {
	out := make([]Info, len(registry))
	for i, a := range registry {
		out[i] = a.Info
	}
	return out
}

// Names returns the registered algorithm names in display order.
func Names() []string {
	names := make([]string, len(registry))
	for i, a := range registry {
		names[i] = a.Name
	}
	return names
}

// Lookup returns the algorithm registered under name. Names are
// case-insensitive.
func Lookup(name string) (Info, error) {
	a, err := lookup(name)
	if err != nil {
		return Info{}, err
	}
	return a.Info, nil
}

func lookup(name string) (algorithm, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	i := slices.IndexFunc(registry, func(a algorithm) bool { return a.Name == name })
	if i < 0 {
		return algorithm{}, errors.Validation(errors.ErrCodeInvalidAlgorithm,
			"unknown algorithm %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return registry[i], nil
}

// Applicable returns the algorithms that accept a matrix of the given shape.
func Applicable(jobs, machines int) []Info {
	var out []Info
	for _, a := range registry {
		if a.Supports(jobs, machines) {
			out = append(out, a.Info)
		}
	}
	return out
}
