package heuristics

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/flowshop/pkg/errors"
	"github.com/matzehuels/flowshop/pkg/flowshop"
)

var twoMachine = flowshop.Matrix{{5, 2}, {1, 6}, {4, 3}}

type rule struct {
	name string
	fn   func(flowshop.Matrix) (*flowshop.Result, error)
}

var allRules = []rule{
	{"Johnson", Johnson},
	{"JohnsonClassic", JohnsonClassic},
	{"JohnsonGeneralized", JohnsonGeneralized},
	{"MinFirstMachine", MinFirstMachine},
	{"MaxLastMachine", MaxLastMachine},
	{"Bottleneck", Bottleneck},
	{"MaxTotal", MaxTotal},
	{"PriorityRule", PriorityRule},
	{"ThreeCandidate", ThreeCandidate},
}

func TestSequencesTwoMachines(t *testing.T) {
	tests := []struct {
		name string
		fn   func(flowshop.Matrix) (*flowshop.Result, error)
		want []int
	}{
		{"JohnsonClassic", JohnsonClassic, []int{1, 2, 0}},
		{"Johnson dispatches to classic", Johnson, []int{1, 2, 0}},
		{"MinFirstMachine", MinFirstMachine, []int{1, 2, 0}},
		{"MaxLastMachine", MaxLastMachine, []int{1, 2, 0}},
		{"Bottleneck", Bottleneck, []int{1, 0, 2}},
		{"MaxTotal keeps index order on ties", MaxTotal, []int{0, 1, 2}},
		{"PriorityRule", PriorityRule, []int{1, 2, 0}},
		{"ThreeCandidate", ThreeCandidate, []int{1, 2, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.fn(twoMachine)
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if diff := cmp.Diff(tt.want, r.Sequence); diff != "" {
				t.Errorf("Sequence mismatch (-want +got):\n%s", diff)
			}
			want, _ := flowshop.Makespan(twoMachine, tt.want)
			if r.Makespan != want {
				t.Errorf("Makespan = %d, want %d", r.Makespan, want)
			}
		})
	}
}

func TestJohnsonClassicMakespan(t *testing.T) {
	r, err := JohnsonClassic(twoMachine)
	if err != nil {
		t.Fatalf("JohnsonClassic() error: %v", err)
	}
	if r.Makespan != 12 {
		t.Errorf("Makespan = %d, want 12", r.Makespan)
	}
	if r.Method != MethodJohnsonClassic {
		t.Errorf("Method = %q, want %q", r.Method, MethodJohnsonClassic)
	}
}

func TestJohnsonGeneralized(t *testing.T) {
	m := flowshop.Matrix{{3, 1, 2}, {1, 4, 5}, {2, 2, 1}}

	r, err := JohnsonGeneralized(m)
	if err != nil {
		t.Fatalf("JohnsonGeneralized() error: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2, 0}, r.Sequence); diff != "" {
		t.Errorf("Sequence mismatch (-want +got):\n%s", diff)
	}
	if r.Makespan != 13 {
		t.Errorf("Makespan = %d, want 13", r.Makespan)
	}

	viaDispatch, err := Johnson(m)
	if err != nil {
		t.Fatalf("Johnson() error: %v", err)
	}
	if viaDispatch.Method != MethodJohnsonGeneralized {
		t.Errorf("Johnson() on 3 machines used %q", viaDispatch.Method)
	}
}

func TestMachineCountPreconditions(t *testing.T) {
	one := flowshop.Matrix{{1}, {2}}
	three := flowshop.Matrix{{1, 2, 3}, {3, 2, 1}}

	tests := []struct {
		name    string
		fn      func(flowshop.Matrix) (*flowshop.Result, error)
		m       flowshop.Matrix
		wantErr bool
	}{
		{"Johnson one machine", Johnson, one, true},
		{"JohnsonClassic three machines", JohnsonClassic, three, true},
		{"JohnsonGeneralized two machines", JohnsonGeneralized, twoMachine, true},
		{"PriorityRule three machines", PriorityRule, three, true},
		{"PriorityRule one machine", PriorityRule, one, true},
		{"ThreeCandidate one machine", ThreeCandidate, one, true},
		{"ThreeCandidate three machines", ThreeCandidate, three, false},
		{"MinFirstMachine one machine", MinFirstMachine, one, false},
		{"MaxTotal one machine", MaxTotal, one, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fn(tt.m)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeUnsupportedMachines) {
				t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeUnsupportedMachines)
			}
		})
	}
}

func TestRaggedInputRejected(t *testing.T) {
	ragged := flowshop.Matrix{{1, 2}, {3}}
	for _, r := range allRules {
		t.Run(r.name, func(t *testing.T) {
			_, err := r.fn(ragged)
			if !errors.Is(err, errors.ErrCodeInvalidMatrix) {
				t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidMatrix)
			}
		})
	}
}

func TestNegativeTimeRejected(t *testing.T) {
	m := flowshop.Matrix{{1, 2, 3}, {3, -1, 1}}
	for _, r := range allRules {
		t.Run(r.name, func(t *testing.T) {
			if _, err := r.fn(m); !errors.IsValidation(err) {
				t.Errorf("err = %v, want a validation error", err)
			}
		})
	}
}

func TestSingleJob(t *testing.T) {
	row := []int{4, 1, 3}
	m := flowshop.Matrix{row}
	for _, r := range []rule{
		{"Johnson", Johnson},
		{"MinFirstMachine", MinFirstMachine},
		{"MaxLastMachine", MaxLastMachine},
		{"Bottleneck", Bottleneck},
		{"MaxTotal", MaxTotal},
		{"ThreeCandidate", ThreeCandidate},
	} {
		t.Run(r.name, func(t *testing.T) {
			res, err := r.fn(m)
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if res.Makespan != 8 {
				t.Errorf("Makespan = %d, want 8", res.Makespan)
			}
			if diff := cmp.Diff([]int{0, 4, 5}, res.Idle); diff != "" {
				t.Errorf("Idle mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for iter := 0; iter < 20; iter++ {
		m := flowshop.RandomMatrix(2+rng.Intn(7), 2, 1, 9, rng)
		for _, r := range allRules {
			if r.name == "JohnsonGeneralized" {
				continue
			}
			a, errA := r.fn(m)
			b, errB := r.fn(m)
			if errA != nil || errB != nil {
				t.Fatalf("%s: errors %v / %v", r.name, errA, errB)
			}
			if diff := cmp.Diff(a, b); diff != "" {
				t.Fatalf("%s: results differ between runs:\n%s", r.name, diff)
			}
		}
	}
}

func TestBottleneckMachine(t *testing.T) {
	tests := []struct {
		row  []int
		want int
	}{
		{[]int{1, 5, 2}, 1},
		{[]int{3, 3, 1}, 1},
		{[]int{2, 2, 2}, 2},
		{[]int{9}, 0},
	}
	for _, tt := range tests {
		if got := bottleneckMachine(tt.row); got != tt.want {
			t.Errorf("bottleneckMachine(%v) = %d, want %d", tt.row, got, tt.want)
		}
	}
}

func TestPriorityIndex(t *testing.T) {
	idx := priorityIndex(twoMachine)
	want := []int{-4, 5, -3}
	for j, w := range want {
		if got := idx(j); got != w {
			t.Errorf("priority(job %d) = %d, want %d", j, got, w)
		}
	}
}

func TestThreeCandidateBreakdown(t *testing.T) {
	m := flowshop.Matrix{{2, 5, 1}, {4, 1, 3}, {3, 3, 3}}

	c, err := ThreeCandidateBreakdown(m)
	if err != nil {
		t.Fatalf("ThreeCandidateBreakdown() error: %v", err)
	}

	wantMetrics := []JobMetrics{
		{Job: 0, S1: 6, S2: 7, D: -1},
		{Job: 1, S1: 4, S2: 5, D: -1},
		{Job: 2, S1: 6, S2: 6, D: 0},
	}
	if diff := cmp.Diff(wantMetrics, c.Metrics); diff != "" {
		t.Errorf("Metrics mismatch (-want +got):\n%s", diff)
	}

	if len(c.Candidates) != 3 {
		t.Fatalf("got %d candidates, want 3", len(c.Candidates))
	}
	wantRules := []string{RuleS1Descending, RuleS2Ascending, RuleDDescending}
	selected := 0
	best := c.Candidates[0].Result.Makespan
	for i, cand := range c.Candidates {
		if cand.Rule != wantRules[i] {
			t.Errorf("candidate %d rule = %q, want %q", i, cand.Rule, wantRules[i])
		}
		if cand.Selected {
			selected++
		}
		best = min(best, cand.Result.Makespan)
	}
	if selected != 1 {
		t.Fatalf("%d candidates selected, want 1", selected)
	}
	if c.Best().Makespan != best {
		t.Errorf("Best().Makespan = %d, want minimum %d", c.Best().Makespan, best)
	}

	// The winner is the first candidate reaching the minimum.
	for _, cand := range c.Candidates {
		if cand.Result.Makespan == best {
			if !cand.Selected {
				t.Errorf("first minimal candidate %q not selected", cand.Rule)
			}
			break
		}
	}
}
