package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowshop/pkg/io"
	"github.com/matzehuels/flowshop/pkg/solver"
)

// algorithmsCommand lists the registered algorithms, optionally only those
// that accept a given matrix.
func (c *CLI) algorithmsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "algorithms [file]",
		Aliases:           []string{"algs"},
		Short:             "List available algorithms",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeMatrixFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := solver.Algorithms()
			if len(args) == 1 {
				m, err := io.ImportMatrix(args[0])
				if err != nil {
					return err
				}
				if err := m.Validate(); err != nil {
					return err
				}
				infos = solver.Applicable(m.Jobs(), m.Machines())
				printInfo(c.out, "%d jobs, %d machines", m.Jobs(), m.Machines())
			}
			c.printAlgorithms(infos)
			return nil
		},
	}
	return cmd
}

func (c *CLI) printAlgorithms(infos []solver.Info) {
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{info.Name, string(info.Kind), machineRange(info), jobCap(info), info.Description})
	}
	fmt.Fprintln(c.out, newTable([]string{"Name", "Kind", "Machines", "Jobs", "Description"}, rows, -1).Render())
}

func machineRange(info solver.Info) string {
	switch {
	case info.MinMachines == info.MaxMachines && info.MinMachines > 0:
		return strconv.Itoa(info.MinMachines)
	case info.MaxMachines > 0:
		return fmt.Sprintf("%d–%d", info.MinMachines, info.MaxMachines)
	case info.MinMachines > 0:
		return fmt.Sprintf("≥ %d", info.MinMachines)
	}
	return "any"
}

func jobCap(info solver.Info) string {
	if info.MaxJobs > 0 {
		return fmt.Sprintf("≤ %d", info.MaxJobs)
	}
	return "any"
}

// completeAlgorithms offers algorithm names for shell completion.
func completeAlgorithms(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, name := range solver.Names() {
		if strings.HasPrefix(name, toComplete) {
			out = append(out, name)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
