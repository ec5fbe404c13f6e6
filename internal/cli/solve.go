package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowshop/pkg/bnb"
	"github.com/matzehuels/flowshop/pkg/errors"
	"github.com/matzehuels/flowshop/pkg/io"
	"github.com/matzehuels/flowshop/pkg/solver"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	algorithm string
	limits    limitFlags
	gantt     string // gantt chart path (.svg, .png, .pdf)
	network   string // operation network path (.dot, .svg, .png, .pdf)
	json      string // outcome JSON path, "-" for stdout
}

// solveCommand creates the solve command, which runs one algorithm on a matrix file.
func (c *CLI) solveCommand() *cobra.Command {
	var opts solveOpts

	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Sequence the jobs of a processing-time matrix",
		Long: `Solve reads a processing-time matrix (CSV, TSV or JSON; one row per job,
one column per machine) and prints the sequence, schedule and makespan found
by the chosen algorithm.`,
		Example: `  flowshop solve jobs.csv
  flowshop solve jobs.csv -a bnb --time-limit 5s --best-effort
  flowshop solve jobs.csv -a three-candidate --gantt schedule.svg --network ops.svg`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeMatrixFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", "", "algorithm to run (see 'flowshop algorithms')")
	opts.limits.register(cmd)
	cmd.Flags().StringVar(&opts.gantt, "gantt", "", "write a Gantt chart (.svg, .png, .pdf)")
	cmd.Flags().StringVar(&opts.network, "network", "", "write the operation network (.dot, .svg, .png, .pdf)")
	cmd.Flags().StringVar(&opts.json, "json", "", "write the outcome as JSON ('-' for stdout)")
	_ = cmd.RegisterFlagCompletionFunc("algorithm", completeAlgorithms)

	return cmd
}

func (c *CLI) runSolve(cmd *cobra.Command, input string, opts *solveOpts) error {
	ctx := cmd.Context()
	m, err := io.ImportMatrix(input)
	if err != nil {
		return err
	}
	c.Logger.Debugf("Loaded %s: %d jobs, %d machines", input, m.Jobs(), m.Machines())

	name := c.Config.Solver.Algorithm
	if opts.algorithm != "" {
		name = opts.algorithm
	}
	info, err := solver.Lookup(name)
	if err != nil {
		return err
	}
	runOpts := opts.limits.options(cmd, c.Config.Solver)

	runner := c.newRunner(false)
	out, err := runWithSpinner(ctx, info, m.Jobs(), func(ctx context.Context) (*solver.Outcome, error) {
		return runner.Run(ctx, info.Name, m, runOpts)
	})
	if err != nil {
		c.explainLimit(err, runOpts)
		return err
	}

	paths := artifactPaths{
		gantt:   pick(opts.gantt, c.Config.Output.Gantt),
		network: pick(opts.network, c.Config.Output.Network),
		json:    pick(opts.json, c.Config.Output.JSON),
	}
	if paths.json == stdoutPath {
		if err := io.WriteJSON(out, c.out); err != nil {
			return err
		}
	} else {
		fmt.Fprint(c.out, out.Report())
	}
	return c.writeArtifacts(out, paths)
}

// runWithSpinner shows a spinner on an interactive stderr while an exact
// search runs. Heuristics return too quickly to need one.
func runWithSpinner(ctx context.Context, info solver.Info, jobs int, run func(context.Context) (*solver.Outcome, error)) (*solver.Outcome, error) {
	if info.Kind != solver.KindExact || !isTerminal(os.Stderr) {
		return run(ctx)
	}
	s := newSpinner(ctx, os.Stderr, fmt.Sprintf("Searching %s permutations with %s...",
		humanize.BigComma(bnb.Factorial(jobs)), info.Method))
	s.Start()
	out, err := run(ctx)
	s.Stop()
	return out, err
}

// explainLimit suggests --best-effort when a limit stopped a search that
// already had a sequence to offer.
func (c *CLI) explainLimit(err error, opts solver.Options) {
	var le *errors.LimitExceededError
	if !stderrors.As(err, &le) || !le.HasIncumbent() || opts.BestEffort {
		return
	}
	printWarning(c.out, "best sequence so far has makespan %d", le.BestMakespan)
	printNextStep(c.out, "Accept it with", "--best-effort")
}

// pick returns flag when set, otherwise the config value.
func pick(flag, cfg string) string {
	if flag != "" {
		return flag
	}
	return cfg
}
