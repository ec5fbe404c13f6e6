package solver

import (
	"context"

	"github.com/matzehuels/flowshop/pkg/bnb"
	"github.com/matzehuels/flowshop/pkg/flowshop"
)

// Comparison is one row of [Runner.Compare].
type Comparison struct {
	Info    Info
	Outcome *Outcome
	Err     error
}

// Compare runs each named algorithm on m and collects the outcomes in order.
// With no names it runs every algorithm applicable to the shape of m,
// skipping branch and bound on large instances unless a limit is set.
// A failing algorithm does not stop the others; its error is kept in the row.
func (r *Runner) Compare(ctx context.Context, m flowshop.Matrix, names []string, opts Options) ([]Comparison, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	infos, err := compareSet(m, names, opts)
	if err != nil {
		return nil, err
	}

	rows := make([]Comparison, 0, len(infos))
	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return rows, err
		}
		out, err := r.Run(ctx, info.Name, m, opts)
		rows = append(rows, Comparison{Info: info, Outcome: out, Err: err})
	}
	return rows, nil
}

func compareSet(m flowshop.Matrix, names []string, opts Options) ([]Info, error) {
	if len(names) > 0 {
		infos := make([]Info, 0, len(names))
		for _, n := range names {
			info, err := Lookup(n)
			if err != nil {
				return nil, err
			}
			infos = append(infos, info)
		}
		return infos, nil
	}

	unlimited := opts.TimeLimit == 0 && opts.NodeLimit == 0
	var infos []Info
	for _, info := range Applicable(m.Jobs(), m.Machines()) {
		if info.Name == AlgBranchAndBound && unlimited && m.Jobs() > bnb.MaxUnlimitedJobs {
			continue
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Best returns the successful row with the smallest makespan, earliest row
// on ties, or nil when every row failed.
func Best(rows []Comparison) *Comparison {
	var best *Comparison
	for i := range rows {
		row := &rows[i]
		if row.Err != nil || row.Outcome == nil || row.Outcome.Result == nil {
			continue
		}
		if best == nil || row.Outcome.Result.Makespan < best.Outcome.Result.Makespan {
			best = row
		}
	}
	return best
}
