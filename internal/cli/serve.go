package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowshop/internal/server"
)

// serveCommand starts the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Long: `Serve exposes the solver as a JSON API:

  GET  /api/v1/algorithms
  POST /api/v1/solve      {"algorithm": "bnb", "matrix": [[5,2],[1,6],[4,3]]}
  GET  /api/v1/version

Search limits from the config file apply to requests that set none.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			runner := c.newRunner(true)
			defer runner.Close()

			srv := server.New(runner, c.Logger, c.Config.Solver.Options())
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
