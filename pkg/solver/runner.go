package solver

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowshop/pkg/bnb"
	"github.com/matzehuels/flowshop/pkg/cache"
	"github.com/matzehuels/flowshop/pkg/errors"
	"github.com/matzehuels/flowshop/pkg/flowshop"
	"github.com/matzehuels/flowshop/pkg/heuristics"
	"github.com/matzehuels/flowshop/pkg/observability"
	"github.com/matzehuels/flowshop/pkg/report"
)

// Options tune a single run. Only the branch-and-bound solver reads the
// limits; the other algorithms ignore them.
type Options struct {
	// TimeLimit and NodeLimit bound a branch-and-bound search (0 = unlimited).
	TimeLimit time.Duration
	NodeLimit int

	// BestEffort turns a limit error that carries an incumbent into a
	// successful outcome flagged with Outcome.BestEffort.
	BestEffort bool

	// Clock is passed to the branch-and-bound solver. Defaults to wall time.
	Clock clock.Clock

	// Refresh skips the cache lookup but still stores the fresh outcome.
	Refresh bool
}

// Outcome is the result of one algorithm run.
type Outcome struct {
	Algorithm string           `json:"algorithm"`
	Result    *flowshop.Result `json:"result"`
	// Stats is set for branch-and-bound runs, including failed ones.
	Stats *bnb.Stats `json:"stats,omitempty"`
	// Candidates is set for three-candidate runs.
	Candidates *heuristics.Candidates `json:"candidates,omitempty"`

	// BestEffort marks a result taken from a search stopped by a limit.
	BestEffort bool `json:"best_effort,omitempty"`
	// Limit is the error that stopped a best-effort search.
	Limit *errors.LimitExceededError `json:"-"`

	Duration time.Duration `json:"duration"`
	Cached   bool          `json:"cached,omitempty"`
}

// Report renders the outcome as plain text.
func (o *Outcome) Report() string {
	if o.Result == nil {
		return ""
	}
	var body string
	switch {
	case o.Candidates != nil:
		body = report.FormatThreeCandidate(o.Candidates)
	case o.Stats != nil:
		body = report.FormatSearch(o.Result, o.Stats)
	default:
		body = report.Format(o.Result)
	}
	if o.BestEffort && o.Limit != nil {
		return fmt.Sprintf("Search stopped early (%s); showing the best sequence found.\n\n%s",
			errors.UserMessage(o.Limit), body)
	}
	return body
}

// Runner executes algorithms by name and memoizes their outcomes.
// Both CLI and API use it so that logging, hooks and caching behave the same.
//
// The Runner stores nothing besides the cache, so multiple goroutines can
// share one.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Run executes the named algorithm on m.
//
// Errors are those of the algorithm (ValidationError, LimitExceededError,
// NoSolutionError) plus an INVALID_ALGORITHM ValidationError for unknown
// names. A branch-and-bound failure still returns an Outcome carrying Stats.
func (r *Runner) Run(ctx context.Context, name string, m flowshop.Matrix, opts Options) (*Outcome, error) {
	alg, err := lookup(name)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	key := r.cacheKey(alg.Name, m, opts)
	if !opts.Refresh && key != "" {
		if out, ok := r.cached(ctx, key); ok {
			r.Logger.Debug("cache hit", "algorithm", alg.Name)
			return out, nil
		}
	}

	hooks := observability.Solver()
	hooks.OnSolveStart(ctx, alg.Name, m.Jobs(), m.Machines())
	r.Logger.Debug("solving", "algorithm", alg.Name, "jobs", m.Jobs(), "machines", m.Machines())

	start := time.Now()
	out, err := alg.run(ctx, m, opts)
	duration := time.Since(start)
	if out == nil {
		out = &Outcome{}
	}
	out.Algorithm = alg.Name
	out.Duration = duration

	if err != nil {
		out, err = r.bestEffort(m, out, err, opts)
	}

	makespan := 0
	if err == nil {
		makespan = out.Result.Makespan
	}
	hooks.OnSolveComplete(ctx, alg.Name, makespan, duration, err)

	if err != nil {
		r.Logger.Debug("solve failed", "algorithm", alg.Name, "error", err)
		return out, err
	}

	r.Logger.Info("solved",
		"algorithm", alg.Name,
		"makespan", out.Result.Makespan,
		"duration", duration)

	if !out.BestEffort && key != "" {
		r.store(ctx, key, out)
	}
	return out, nil
}

// bestEffort converts a limit error with an incumbent into an outcome when
// opts allow it. Any other error is returned unchanged.
func (r *Runner) bestEffort(m flowshop.Matrix, out *Outcome, err error, opts Options) (*Outcome, error) {
	var le *errors.LimitExceededError
	if !opts.BestEffort || !stderrors.As(err, &le) || !le.HasIncumbent() {
		return out, err
	}
	res, buildErr := flowshop.NewResult(bnb.MethodBranchAndBound+" (best effort)", m, le.BestSequence)
	if buildErr != nil {
		return out, errors.Wrap(errors.ErrCodeInternal, buildErr, "rebuild incumbent")
	}
	r.Logger.Warn("search stopped early, using incumbent",
		"limit", le.Limit,
		"explored", le.NodesExplored,
		"makespan", le.BestMakespan)
	out.Result = res
	out.BestEffort = true
	out.Limit = le
	return out, nil
}

func (r *Runner) cacheKey(name string, m flowshop.Matrix, opts Options) string {
	return r.Keyer.OutcomeKey(name, cache.MatrixHash(m), cache.OutcomeKeyOpts{
		TimeLimit: opts.TimeLimit,
		NodeLimit: opts.NodeLimit,
	})
}

func (r *Runner) cached(ctx context.Context, key string) (*Outcome, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		return nil, false
	}
	var out Outcome
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, false
	}
	out.Cached = true
	return &out, true
}

func (r *Runner) store(ctx context.Context, key string, out *Outcome) {
	data, err := json.Marshal(out)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLOutcome); err != nil {
		r.Logger.Debug("cache write failed", "error", err)
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
