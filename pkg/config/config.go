// Package config loads user settings for the flowshop CLI and server.
//
// Settings live in a TOML file, by default
// $XDG_CONFIG_HOME/flowshop/config.toml (or ~/.config/flowshop/config.toml):
//
//	[solver]
//	algorithm = "bnb"
//	time_limit_ms = 5000
//	node_limit = 1000000
//	best_effort = true
//
//	[output]
//	gantt = "schedule.svg"
//	network = ""
//	json = ""
//
//	[server]
//	addr = ":8080"
//
// A missing file is not an error; [Default] values are used instead.
// Command-line flags override whatever the file sets.
package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flowshop/pkg/errors"
	"github.com/matzehuels/flowshop/pkg/solver"
)

const appName = "flowshop"

// Config is the decoded configuration file.
type Config struct {
	Solver Solver `toml:"solver"`
	Output Output `toml:"output"`
	Server Server `toml:"server"`
}

// Solver holds defaults for a solve run.
type Solver struct {
	Algorithm   string `toml:"algorithm"`
	TimeLimitMS int64  `toml:"time_limit_ms"`
	NodeLimit   int    `toml:"node_limit"`
	BestEffort  bool   `toml:"best_effort"`
}

// Output holds default artifact paths. Empty means the artifact is not written.
type Output struct {
	Gantt   string `toml:"gantt"`
	Network string `toml:"network"`
	JSON    string `toml:"json"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Solver: Solver{Algorithm: solver.AlgJohnson},
		Server: Server{Addr: ":8080"},
	}
}

// TimeLimit returns the solver time limit as a duration. Zero means none.
func (s Solver) TimeLimit() time.Duration {
	return time.Duration(s.TimeLimitMS) * time.Millisecond
}

// Options converts the solver section into runner options.
func (s Solver) Options() solver.Options {
	return solver.Options{
		TimeLimit:  s.TimeLimit(),
		NodeLimit:  s.NodeLimit,
		BestEffort: s.BestEffort,
	}
}

// Validate rejects negative limits and unknown algorithm names.
func (c Config) Validate() error {
	if c.Solver.TimeLimitMS < 0 {
		return errors.Validation(errors.ErrCodeInvalidInput, "solver.time_limit_ms must not be negative, got %d", c.Solver.TimeLimitMS)
	}
	if c.Solver.NodeLimit < 0 {
		return errors.Validation(errors.ErrCodeInvalidInput, "solver.node_limit must not be negative, got %d", c.Solver.NodeLimit)
	}
	if _, err := solver.Lookup(c.Solver.Algorithm); err != nil {
		return err
	}
	return nil
}

// Load reads the file at path over the defaults. An empty path means
// [DefaultPath]. A missing file yields the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DefaultPath returns the XDG config location of the file.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
