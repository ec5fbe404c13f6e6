// Package cli implements the flowshop command-line interface.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowshop/pkg/buildinfo"
	"github.com/matzehuels/flowshop/pkg/cache"
	"github.com/matzehuels/flowshop/pkg/config"
	"github.com/matzehuels/flowshop/pkg/observability"
	"github.com/matzehuels/flowshop/pkg/solver"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "flowshop"

	// cacheEntries bounds the in-process outcome memo used by compare and serve.
	cacheEntries = 256
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded from --config (or the XDG default) before any
	// subcommand runs.
	Config config.Config

	configPath string
	out        io.Writer
}

// New creates a new CLI instance with a default logger. Reports and tables
// go to out, logs to w.
func New(w, out io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		out:    out,
	}
}

// SetLogLevel updates the logger's level. At debug level solver and search
// hooks are routed to the logger as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		h := &logHooks{logger: c.Logger}
		observability.SetSolverHooks(h)
		observability.SetSearchHooks(h)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Flowshop sequences jobs on a permutation flow shop",
		Long:         `Flowshop finds job orders for permutation flow shops. It runs Johnson's rule, several sort-key heuristics, the priority rule, the three-candidate heuristic, exhaustive search and branch and bound, and reports the resulting schedules.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/flowshop/config.toml)")

	// Register all subcommands
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.algorithmsCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("Config loaded", "path", c.configPath, "algorithm", cfg.Solver.Algorithm)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a solver runner for CLI use. A single solve has nothing
// to memoize, so only commands that repeat work ask for a cache.
func (c *CLI) newRunner(memo bool) *solver.Runner {
	var ch cache.Cache = cache.NewNullCache()
	if memo {
		ch = cache.NewMemoryCache(cacheEntries, nil)
	}
	return solver.NewRunner(ch, nil, c.Logger)
}

// =============================================================================
// Options Helpers
// =============================================================================

// limitFlags holds the search flags shared by solve, compare and pick.
type limitFlags struct {
	timeLimit  time.Duration
	nodeLimit  int
	bestEffort bool
}

func (f *limitFlags) register(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&f.timeLimit, "time-limit", 0, "stop branch and bound after this long (e.g. 5s)")
	cmd.Flags().IntVar(&f.nodeLimit, "node-limit", 0, "stop branch and bound after this many nodes")
	cmd.Flags().BoolVar(&f.bestEffort, "best-effort", false, "report the best sequence found when a limit stops the search")
}

// options merges config values with any flags set on the command line.
func (f *limitFlags) options(cmd *cobra.Command, cfg config.Solver) solver.Options {
	opts := cfg.Options()
	if cmd.Flags().Changed("time-limit") {
		opts.TimeLimit = f.timeLimit
	}
	if cmd.Flags().Changed("node-limit") {
		opts.NodeLimit = f.nodeLimit
	}
	if cmd.Flags().Changed("best-effort") {
		opts.BestEffort = f.bestEffort
	}
	return opts
}
