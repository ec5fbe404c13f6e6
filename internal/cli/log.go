package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Compared 11 algorithms (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logHooks writes solver and search events to the debug log.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnSolveStart(_ context.Context, algorithm string, jobs, machines int) {
	h.logger.Debug("Solve started", "algorithm", algorithm, "jobs", jobs, "machines", machines)
}

func (h *logHooks) OnSolveComplete(_ context.Context, algorithm string, makespan int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("Solve failed", "algorithm", algorithm, "elapsed", d.Round(time.Microsecond), "err", err)
		return
	}
	h.logger.Debug("Solve finished", "algorithm", algorithm, "makespan", makespan, "elapsed", d.Round(time.Microsecond))
}

func (h *logHooks) OnIncumbent(_ context.Context, makespan, explored int) {
	h.logger.Debug("New incumbent", "makespan", makespan, "explored", explored)
}

func (h *logHooks) OnLimit(_ context.Context, limit string, explored int) {
	h.logger.Debug("Search limit reached", "limit", limit, "explored", explored)
}
