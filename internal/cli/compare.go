package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowshop/pkg/errors"
	"github.com/matzehuels/flowshop/pkg/io"
	"github.com/matzehuels/flowshop/pkg/report"
	"github.com/matzehuels/flowshop/pkg/solver"
)

// compareCommand creates the compare command, which runs several algorithms
// on one matrix and tabulates their makespans.
func (c *CLI) compareCommand() *cobra.Command {
	var (
		names  []string
		limits limitFlags
	)

	cmd := &cobra.Command{
		Use:   "compare [file]",
		Short: "Run several algorithms on a matrix and compare makespans",
		Long: `Compare runs every algorithm that accepts the matrix (or those named with
--algorithms) and prints one row per algorithm. The best makespan is
highlighted. Branch and bound is skipped on instances above 15 jobs unless a
limit is given.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeMatrixFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := io.ImportMatrix(args[0])
			if err != nil {
				return err
			}
			opts := limits.options(cmd, c.Config.Solver)

			prog := newProgress(c.Logger)
			rows, err := c.newRunner(true).Compare(cmd.Context(), m, names, opts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Compared %d algorithms", len(rows)))

			c.printComparison(rows)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&names, "algorithms", nil, "comma-separated algorithms to run (default: all applicable)")
	limits.register(cmd)
	_ = cmd.RegisterFlagCompletionFunc("algorithms", completeAlgorithms)

	return cmd
}

func (c *CLI) printComparison(rows []solver.Comparison) {
	best := solver.Best(rows)
	highlight := -1

	data := make([][]string, 0, len(rows))
	for i, row := range rows {
		mark := ""
		if best != nil && row.Info.Name == best.Info.Name {
			highlight = i
			mark = iconBest
		}
		if row.Err != nil {
			data = append(data, []string{mark, row.Info.Name, "—", string(errors.GetCode(row.Err)), "—"})
			continue
		}
		res := row.Outcome.Result
		makespan := strconv.Itoa(res.Makespan)
		if row.Outcome.BestEffort {
			makespan += "*"
		}
		data = append(data, []string{
			mark,
			row.Info.Name,
			makespan,
			report.Sequence(res.Sequence),
			row.Outcome.Duration.Round(time.Microsecond).String(),
		})
	}

	fmt.Fprintln(c.out, newTable([]string{"", "Algorithm", "Makespan", "Sequence", "Time"}, data, highlight).Render())
	if best != nil {
		printSuccess(c.out, "Best makespan %s from %s",
			StyleNumber.Render(strconv.Itoa(best.Outcome.Result.Makespan)), best.Info.Method)
	}
	for _, row := range rows {
		if row.Err != nil {
			printInfo(c.out, "%s: %s", row.Info.Name, errors.UserMessage(row.Err))
		}
	}
}
