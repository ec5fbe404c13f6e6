package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowshop/pkg/io"
	"github.com/matzehuels/flowshop/pkg/solver"
)

// pickCommand lets the user choose an algorithm interactively and then
// solves with it.
func (c *CLI) pickCommand() *cobra.Command {
	var limits limitFlags

	cmd := &cobra.Command{
		Use:               "pick [file]",
		Short:             "Choose an algorithm interactively and solve",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeMatrixFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := io.ImportMatrix(args[0])
			if err != nil {
				return err
			}
			if err := m.Validate(); err != nil {
				return err
			}

			final, err := tea.NewProgram(NewAlgorithmListModel(m.Jobs(), m.Machines()),
				tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("algorithm picker: %w", err)
			}
			model, ok := final.(AlgorithmListModel)
			if !ok || model.Selected == nil {
				printInfo(c.out, "No algorithm selected")
				return nil
			}

			info := *model.Selected
			out, err := runWithSpinner(cmd.Context(), info, m.Jobs(), func(ctx context.Context) (*solver.Outcome, error) {
				return c.newRunner(false).Run(ctx, info.Name, m, limits.options(cmd, c.Config.Solver))
			})
			if err != nil {
				c.explainLimit(err, limits.options(cmd, c.Config.Solver))
				return err
			}
			fmt.Fprint(c.out, out.Report())
			return nil
		},
	}

	limits.register(cmd)
	return cmd
}
