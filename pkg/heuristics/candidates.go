package heuristics

import (
	"github.com/matzehuels/flowshop/pkg/flowshop"
)

// MethodThreeCandidate is the method name reported by [ThreeCandidate].
const MethodThreeCandidate = "Three-candidate (Petrov-Sokolitsyn)"

// JobMetrics holds the statistics the three-candidate heuristic sorts by.
type JobMetrics struct {
	Job int `json:"job"`
	// S1 is the total time without the first machine.
	S1 int `json:"s1"`
	// S2 is the total time without the last machine.
	S2 int `json:"s2"`
	// D is S1 - S2.
	D int `json:"d"`
}

// Candidate is one of the three sequences the heuristic compares.
type Candidate struct {
	Rule     string           `json:"rule"`
	Result   *flowshop.Result `json:"result"`
	Selected bool             `json:"selected"`
}

// Candidates is the full breakdown of a three-candidate run.
type Candidates struct {
	Metrics    []JobMetrics `json:"metrics"`
	Candidates []Candidate  `json:"candidates"`
}

// Best returns the selected candidate's result.
func (c *Candidates) Best() *flowshop.Result {
	for _, cand := range c.Candidates {
		if cand.Selected {
			return cand.Result
		}
	}
	return nil
}

// Rule labels, in generation order.
const (
	RuleS1Descending = "S1 descending"
	RuleS2Ascending  = "S2 ascending"
	RuleDDescending  = "D descending"
)

// ThreeCandidate builds three sequences (S1 descending, S2 ascending,
// D descending), schedules each and returns the one with the smallest
// makespan. Ties go to the earlier candidate in that order.
// Requires at least 2 machines.
func ThreeCandidate(m flowshop.Matrix) (*flowshop.Result, error) {
	c, err := ThreeCandidateBreakdown(m)
	if err != nil {
		return nil, err
	}
	return c.Best(), nil
}

// ThreeCandidateBreakdown runs the heuristic and returns the per-job metrics
// and all three candidates with the winner marked.
func ThreeCandidateBreakdown(m flowshop.Matrix) (*Candidates, error) {
	if err := m.RequireMachines(MethodThreeCandidate, 2, 0); err != nil {
		return nil, err
	}
	metrics := JobStatistics(m)

	orders := []struct {
		rule       string
		key        func(int) int
		descending bool
	}{
		{RuleS1Descending, func(j int) int { return metrics[j].S1 }, true},
		{RuleS2Ascending, func(j int) int { return metrics[j].S2 }, false},
		{RuleDDescending, func(j int) int { return metrics[j].D }, true},
	}

	out := &Candidates{Metrics: metrics}
	best := -1
	for i, o := range orders {
		r, err := flowshop.NewResult(MethodThreeCandidate, m, keyOrder(m.Jobs(), o.key, o.descending))
		if err != nil {
			return nil, err
		}
		out.Candidates = append(out.Candidates, Candidate{Rule: o.rule, Result: r})
		if best < 0 || r.Makespan < out.Candidates[best].Result.Makespan {
			best = i
		}
	}
	out.Candidates[best].Selected = true
	return out, nil
}

// JobStatistics computes S1, S2 and D for every job.
func JobStatistics(m flowshop.Matrix) []JobMetrics {
	n := m.Machines()
	metrics := make([]JobMetrics, m.Jobs())
	for j := range m {
		s1 := m.RowSum(j, 1, n)
		s2 := m.RowSum(j, 0, n-1)
		metrics[j] = JobMetrics{Job: j, S1: s1, S2: s2, D: s1 - s2}
	}
	return metrics
}
