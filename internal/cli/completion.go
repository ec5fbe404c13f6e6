package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// matrixExtensions are the file types ImportMatrix understands.
var matrixExtensions = []string{"csv", "tsv", "json"}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for flowshop.

Completions cover subcommands and their flags, algorithm names for
"solve --algorithm" and "compare --algorithms", and matrix files
(.csv, .tsv, .json) for solve, compare, pick and algorithms.

Bash:
  $ source <(flowshop completion bash)

Zsh:
  $ flowshop completion zsh > "${fpath[1]}/_flowshop"

Fish:
  $ flowshop completion fish > ~/.config/fish/completions/flowshop.fish

PowerShell:
  PS> flowshop completion powershell | Out-String | Invoke-Expression

Start a new shell after installing a script.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(c.out, true)
			case "zsh":
				return root.GenZshCompletion(c.out)
			case "fish":
				return root.GenFishCompletion(c.out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(c.out)
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}

	return cmd
}

// completeMatrixFile offers matrix files for the first positional argument.
func completeMatrixFile(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return matrixExtensions, cobra.ShellCompDirectiveFilterFileExt
}
