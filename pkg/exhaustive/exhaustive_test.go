package exhaustive

import (
	"context"
	stderrors "errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/flowshop/pkg/errors"
	"github.com/matzehuels/flowshop/pkg/flowshop"
	"github.com/matzehuels/flowshop/pkg/heuristics"
)

func TestSearch(t *testing.T) {
	tests := []struct {
		name         string
		m            flowshop.Matrix
		wantSeq      []int
		wantMakespan int
	}{
		{
			name:         "two machines",
			m:            flowshop.Matrix{{5, 2}, {1, 6}, {4, 3}},
			wantSeq:      []int{1, 2, 0},
			wantMakespan: 12,
		},
		{
			name:         "single job",
			m:            flowshop.Matrix{{3, 4, 5}},
			wantSeq:      []int{0},
			wantMakespan: 12,
		},
		{
			name:         "ties keep first lexicographic order",
			m:            flowshop.Matrix{{0, 0}, {0, 0}, {0, 0}},
			wantSeq:      []int{0, 1, 2},
			wantMakespan: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Search(context.Background(), tt.m)
			if err != nil {
				t.Fatalf("Search() error: %v", err)
			}
			if diff := cmp.Diff(tt.wantSeq, r.Sequence); diff != "" {
				t.Errorf("Sequence mismatch (-want +got):\n%s", diff)
			}
			if r.Makespan != tt.wantMakespan {
				t.Errorf("Makespan = %d, want %d", r.Makespan, tt.wantMakespan)
			}
			if r.Method != MethodExhaustive {
				t.Errorf("Method = %q, want %q", r.Method, MethodExhaustive)
			}
		})
	}
}

func TestSearchErrors(t *testing.T) {
	tooMany := make(flowshop.Matrix, MaxJobs+1)
	for i := range tooMany {
		tooMany[i] = []int{1, 1}
	}

	tests := []struct {
		name string
		m    flowshop.Matrix
		code errors.Code
	}{
		{"empty", flowshop.Matrix{}, errors.ErrCodeInvalidMatrix},
		{"ragged", flowshop.Matrix{{1, 2}, {3}}, errors.ErrCodeInvalidMatrix},
		{"too many jobs", tooMany, errors.ErrCodeTooManyJobs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Search(context.Background(), tt.m)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := flowshop.RandomMatrix(8, 3, 1, 9, rand.New(rand.NewSource(1)))
	_, err := Search(ctx, m)

	var le *errors.LimitExceededError
	if !stderrors.As(err, &le) {
		t.Fatalf("err = %v, want LimitExceededError", err)
	}
	if le.Limit != errors.LimitCancelled {
		t.Errorf("Limit = %q, want %q", le.Limit, errors.LimitCancelled)
	}
	if !stderrors.Is(err, context.Canceled) {
		t.Error("error should wrap context.Canceled")
	}
	if !le.HasIncumbent() {
		t.Error("cancellation after evaluating permutations should keep the incumbent")
	}
}

// Johnson's rule is optimal on two machines, so both must agree on the
// makespan (not necessarily the sequence).
func TestSearchMatchesJohnson(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for iter := 0; iter < 40; iter++ {
		m := flowshop.RandomMatrix(1+rng.Intn(7), 2, 0, 12, rng)

		want, err := Search(context.Background(), m)
		if err != nil {
			t.Fatalf("Search() error: %v", err)
		}
		got, err := heuristics.JohnsonClassic(m)
		if err != nil {
			t.Fatalf("JohnsonClassic() error: %v", err)
		}
		if got.Makespan != want.Makespan {
			t.Fatalf("instance %v: Johnson makespan %d, exhaustive %d", m, got.Makespan, want.Makespan)
		}
	}
}

// No heuristic can beat the optimum.
func TestSearchLowerBoundsHeuristics(t *testing.T) {
	rules := []func(flowshop.Matrix) (*flowshop.Result, error){
		heuristics.Johnson,
		heuristics.MinFirstMachine,
		heuristics.MaxLastMachine,
		heuristics.Bottleneck,
		heuristics.MaxTotal,
		heuristics.ThreeCandidate,
	}
	rng := rand.New(rand.NewSource(5))
	for iter := 0; iter < 20; iter++ {
		m := flowshop.RandomMatrix(2+rng.Intn(5), 2+rng.Intn(3), 1, 9, rng)
		opt, err := Search(context.Background(), m)
		if err != nil {
			t.Fatalf("Search() error: %v", err)
		}
		for _, rule := range rules {
			r, err := rule(m)
			if err != nil {
				t.Fatalf("heuristic error: %v", err)
			}
			if r.Makespan < opt.Makespan {
				t.Fatalf("%s makespan %d below optimum %d", r.Method, r.Makespan, opt.Makespan)
			}
		}
	}
}
