package bnb

import (
	"context"
	stderrors "errors"
	"math/rand"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/flowshop/pkg/errors"
	"github.com/matzehuels/flowshop/pkg/exhaustive"
	"github.com/matzehuels/flowshop/pkg/flowshop"
)

// recordingHooks records search events and optionally advances a mock clock
// on every new incumbent.
type recordingHooks struct {
	mock       *clock.Mock
	advance    time.Duration
	incumbents []int
	limits     []string
}

func (h *recordingHooks) OnIncumbent(_ context.Context, makespan, _ int) {
	h.incumbents = append(h.incumbents, makespan)
	if h.mock != nil {
		h.mock.Add(h.advance)
	}
}

func (h *recordingHooks) OnLimit(_ context.Context, limit string, _ int) {
	h.limits = append(h.limits, limit)
}

func TestSolveKnownInstance(t *testing.T) {
	m := flowshop.Matrix{{5, 2}, {1, 6}, {4, 3}}

	res, stats, err := (&Solver{}).Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if res.Makespan != 12 {
		t.Errorf("Makespan = %d, want 12", res.Makespan)
	}
	if res.Method != MethodBranchAndBound {
		t.Errorf("Method = %q", res.Method)
	}

	rebuilt, err := flowshop.NewResult(res.Method, m, res.Sequence)
	if err != nil {
		t.Fatalf("NewResult() error: %v", err)
	}
	if diff := cmp.Diff(rebuilt, res); diff != "" {
		t.Errorf("reconstructed schedule differs from a fresh build (-want +got):\n%s", diff)
	}
	if stats.BestFoundAt == 0 || stats.BestFoundAt > stats.NodesExplored {
		t.Errorf("BestFoundAt = %d, explored %d", stats.BestFoundAt, stats.NodesExplored)
	}
	if stats.Permutations.Int64() != 6 {
		t.Errorf("Permutations = %s, want 6", stats.Permutations)
	}
}

func TestSolveTieBreak(t *testing.T) {
	m := flowshop.Matrix{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}

	res, stats, err := (&Solver{}).Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}

	// Root, J1, J1J2, J1J2J3 are popped in that order; then J1J3, J2 and J3
	// are popped and pruned against the zero makespan.
	if diff := cmp.Diff([]int{0, 1, 2}, res.Sequence); diff != "" {
		t.Errorf("Sequence mismatch (-want +got):\n%s", diff)
	}
	want := Stats{NodesExplored: 7, NodesPruned: 3, BestFoundAt: 4}
	got := Stats{NodesExplored: stats.NodesExplored, NodesPruned: stats.NodesPruned, BestFoundAt: stats.BestFoundAt}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Stats mismatch (-want +got):\n%s", diff)
	}
	// Explored exceeds N! here even though the answer is optimal.
	if stats.Optimal() {
		t.Error("Optimal() = true with 7 explored of 6 permutations")
	}
}

func TestSolveSingleJob(t *testing.T) {
	res, stats, err := (&Solver{}).Solve(context.Background(), flowshop.Matrix{{2, 3, 4}})
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if res.Makespan != 9 {
		t.Errorf("Makespan = %d, want 9", res.Makespan)
	}
	if stats.NodesExplored != 2 {
		t.Errorf("NodesExplored = %d, want 2", stats.NodesExplored)
	}
}

func TestSolveMatchesExhaustive(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 30; iter++ {
		m := flowshop.RandomMatrix(1+rng.Intn(7), 2+rng.Intn(3), 0, 15, rng)

		want, err := exhaustive.Search(context.Background(), m)
		if err != nil {
			t.Fatalf("exhaustive.Search() error: %v", err)
		}
		got, stats, err := (&Solver{}).Solve(context.Background(), m)
		if err != nil {
			t.Fatalf("Solve() error: %v", err)
		}
		if got.Makespan != want.Makespan {
			t.Fatalf("instance %v: B&B makespan %d, exhaustive %d", m, got.Makespan, want.Makespan)
		}
		if ms, _ := flowshop.Makespan(m, got.Sequence); ms != got.Makespan {
			t.Fatalf("reported makespan %d, sequence evaluates to %d", got.Makespan, ms)
		}

		// Every explored node is a distinct tree node, and so is every node
		// pruned at generation, so both counts stay within the tree size.
		tree := treeSize(m.Jobs())
		if stats.NodesExplored > tree || stats.NodesPruned > tree {
			t.Fatalf("explored %d, pruned %d, tree size %d", stats.NodesExplored, stats.NodesPruned, tree)
		}
	}
}

func TestSolveOptimalOnRandomInstance(t *testing.T) {
	m := flowshop.RandomMatrix(8, 3, 1, 9, rand.New(rand.NewSource(9)))

	_, stats, err := (&Solver{}).Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if !stats.Optimal() {
		t.Errorf("Optimal() = false with %d explored of %s", stats.NodesExplored, stats.Permutations)
	}
	if stats.PruningRatio() <= 0 {
		t.Errorf("PruningRatio() = %v, want > 0", stats.PruningRatio())
	}
}

func TestSolveNodeLimit(t *testing.T) {
	m := flowshop.RandomMatrix(6, 3, 1, 9, rand.New(rand.NewSource(1)))
	hooks := &recordingHooks{}

	res, stats, err := (&Solver{NodeLimit: 1, Hooks: hooks}).Solve(context.Background(), m)
	if res != nil {
		t.Error("Solve() should not return a result on limit")
	}

	var le *errors.LimitExceededError
	if !stderrors.As(err, &le) {
		t.Fatalf("err = %v, want LimitExceededError", err)
	}
	if le.Limit != errors.LimitNodes {
		t.Errorf("Limit = %q, want %q", le.Limit, errors.LimitNodes)
	}
	if le.NodesExplored != 2 || stats.NodesExplored != 2 {
		t.Errorf("explored = %d / %d, want 2", le.NodesExplored, stats.NodesExplored)
	}
	if le.HasIncumbent() {
		t.Error("no complete sequence can exist after two pops of a 6-job tree")
	}
	if diff := cmp.Diff([]string{"nodes"}, hooks.limits); diff != "" {
		t.Errorf("OnLimit events mismatch (-want +got):\n%s", diff)
	}
}

func TestSolveTimeLimit(t *testing.T) {
	m := flowshop.RandomMatrix(7, 3, 1, 9, rand.New(rand.NewSource(2)))
	mock := clock.NewMock()
	hooks := &recordingHooks{mock: mock, advance: 2 * time.Second}

	s := &Solver{TimeLimit: time.Second, Clock: mock, Hooks: hooks}
	_, stats, err := s.Solve(context.Background(), m)

	var le *errors.LimitExceededError
	if !stderrors.As(err, &le) {
		t.Fatalf("err = %v, want LimitExceededError", err)
	}
	if le.Limit != errors.LimitTime {
		t.Errorf("Limit = %q, want %q", le.Limit, errors.LimitTime)
	}
	// The first incumbent moves the clock past the limit; the queue still
	// holds unexplored siblings, so the next pop trips it.
	if len(hooks.incumbents) != 1 {
		t.Fatalf("incumbents = %v, want exactly one", hooks.incumbents)
	}
	if !le.HasIncumbent() || le.BestMakespan != hooks.incumbents[0] {
		t.Errorf("incumbent = %v/%d, want makespan %d", le.BestSequence, le.BestMakespan, hooks.incumbents[0])
	}
	if ms, _ := flowshop.Makespan(m, le.BestSequence); ms != le.BestMakespan {
		t.Errorf("BestSequence evaluates to %d, BestMakespan %d", ms, le.BestMakespan)
	}
	if stats.BestFoundAt != stats.NodesExplored-1 {
		t.Errorf("BestFoundAt = %d, explored %d", stats.BestFoundAt, stats.NodesExplored)
	}
	if stats.Elapsed != 2*time.Second {
		t.Errorf("Elapsed = %s, want 2s", stats.Elapsed)
	}
}

func TestSolveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := (&Solver{}).Solve(ctx, flowshop.Matrix{{1, 2}, {3, 4}})

	var le *errors.LimitExceededError
	if !stderrors.As(err, &le) || le.Limit != errors.LimitCancelled {
		t.Fatalf("err = %v, want cancelled LimitExceededError", err)
	}
	if !stderrors.Is(err, context.Canceled) {
		t.Error("error should wrap context.Canceled")
	}
}

func TestSolveValidation(t *testing.T) {
	big := make(flowshop.Matrix, MaxUnlimitedJobs+1)
	for i := range big {
		big[i] = []int{1, 2}
	}

	tests := []struct {
		name   string
		solver Solver
		m      flowshop.Matrix
		code   errors.Code
	}{
		{"invalid matrix", Solver{}, flowshop.Matrix{{1, 2}, {3}}, errors.ErrCodeInvalidMatrix},
		{"one machine", Solver{}, flowshop.Matrix{{1}, {2}}, errors.ErrCodeUnsupportedMachines},
		{"negative node limit", Solver{NodeLimit: -1}, flowshop.Matrix{{1, 2}}, errors.ErrCodeInvalidInput},
		{"negative time limit", Solver{TimeLimit: -time.Second}, flowshop.Matrix{{1, 2}}, errors.ErrCodeInvalidInput},
		{"too many jobs without limits", Solver{}, big, errors.ErrCodeTooManyJobs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stats, err := tt.solver.Solve(context.Background(), tt.m)
			if !errors.Is(err, tt.code) {
				t.Fatalf("err = %v, want code %s", err, tt.code)
			}
			if !errors.IsValidation(err) {
				t.Error("want a ValidationError")
			}
			if stats != nil {
				t.Error("validation failures should do no search work")
			}
		})
	}
}

func TestSolveLargeInstanceWithLimit(t *testing.T) {
	m := flowshop.RandomMatrix(MaxUnlimitedJobs+5, 4, 1, 20, rand.New(rand.NewSource(4)))

	_, stats, err := (&Solver{NodeLimit: 500}).Solve(context.Background(), m)
	if errors.IsValidation(err) {
		t.Fatalf("a node limit should lift the job cap: %v", err)
	}
	if err != nil && !errors.Is(err, errors.ErrCodeLimitExceeded) {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.NodesExplored > 501 {
		t.Errorf("NodesExplored = %d, want at most 501", stats.NodesExplored)
	}
	if stats.Permutations.String() != "2432902008176640000" {
		t.Errorf("Permutations = %s, want 20!", stats.Permutations)
	}
}

// treeSize counts the prefixes of all lengths 0..n of n jobs.
func treeSize(n int) int {
	total, level := 1, 1
	for k := 0; k < n; k++ {
		level *= n - k
		total += level
	}
	return total
}
