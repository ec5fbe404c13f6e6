package cli

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowshop/pkg/errors"
	"github.com/matzehuels/flowshop/pkg/flowshop"
	"github.com/matzehuels/flowshop/pkg/io"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	jobs     int
	machines int
	min, max int
	seed     int64
	format   string // csv or json
	output   string // file path, stdout when empty
}

// generateCommand writes a random processing-time matrix.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{jobs: 8, machines: 3, min: 1, max: 20, format: "csv"}

	cmd := &cobra.Command{
		Use:     "generate",
		Short:   "Generate a random processing-time matrix",
		Example: `  flowshop generate -n 12 -m 4 --seed 7 -o jobs.csv`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				opts.seed = time.Now().UnixNano()
			}
			return c.runGenerate(&opts)
		},
	}

	cmd.Flags().IntVarP(&opts.jobs, "jobs", "n", opts.jobs, "number of jobs")
	cmd.Flags().IntVarP(&opts.machines, "machines", "m", opts.machines, "number of machines")
	cmd.Flags().IntVar(&opts.min, "min", opts.min, "smallest processing time")
	cmd.Flags().IntVar(&opts.max, "max", opts.max, "largest processing time")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed (default: time based)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: csv, json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func (c *CLI) runGenerate(opts *generateOpts) error {
	if opts.jobs < 1 || opts.machines < 1 {
		return errors.Validation(errors.ErrCodeInvalidInput, "jobs and machines must be positive")
	}
	if opts.min < 0 || opts.max < opts.min {
		return errors.Validation(errors.ErrCodeInvalidInput, "need 0 <= min <= max, got %d..%d", opts.min, opts.max)
	}

	m := flowshop.RandomMatrix(opts.jobs, opts.machines, opts.min, opts.max, rand.New(rand.NewSource(opts.seed)))

	w := c.out
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("create %s: %w", opts.output, err)
		}
		defer f.Close()
		w = f
	}

	var err error
	switch opts.format {
	case "csv":
		err = io.WriteMatrixCSV(m, w)
	case "json":
		err = io.WriteMatrixJSON(m, w)
	default:
		return errors.Validation(errors.ErrCodeInvalidFormat, "unknown format %q (must be 'csv' or 'json')", opts.format)
	}
	if err != nil {
		return err
	}

	c.Logger.Debug("Generated matrix", "jobs", opts.jobs, "machines", opts.machines, "seed", opts.seed)
	if opts.output != "" {
		printFile(c.out, opts.output)
	}
	return nil
}
