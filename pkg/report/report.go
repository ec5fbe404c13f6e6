// Package report renders results as plain-text reports.
//
// Reports contain no terminal control sequences and can be shown verbatim in
// a terminal, a text widget or an HTTP response. Jobs and machines are
// labelled from 1 (J1, M1) while the data model indexes them from 0.
package report

import (
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/matzehuels/flowshop/pkg/bnb"
	"github.com/matzehuels/flowshop/pkg/flowshop"
	"github.com/matzehuels/flowshop/pkg/heuristics"
)

// JobLabel returns the 1-based label of job j, e.g. "J3".
func JobLabel(j int) string { return fmt.Sprintf("J%d", j+1) }

// MachineLabel returns the 1-based label of machine k, e.g. "M1".
func MachineLabel(k int) string { return fmt.Sprintf("M%d", k+1) }

// Sequence renders seq as "J2 → J3 → J1".
func Sequence(seq []int) string {
	labels := make([]string, len(seq))
	for i, j := range seq {
		labels[i] = JobLabel(j)
	}
	return strings.Join(labels, " → ")
}

// Format renders the method, sequence, schedule grid, makespan and idle
// times of r.
func Format(r *flowshop.Result) string {
	var b strings.Builder
	writeResult(&b, r)
	return b.String()
}

// FormatSearch renders branch-and-bound statistics followed by the result.
func FormatSearch(r *flowshop.Result, s *bnb.Stats) string {
	var b strings.Builder

	b.WriteString("Search statistics:\n")
	stat(&b, "Nodes explored:", humanize.Comma(int64(s.NodesExplored)))
	stat(&b, "Nodes pruned:", humanize.Comma(int64(s.NodesPruned)))
	stat(&b, "Best found at node:", "#"+humanize.Comma(int64(s.BestFoundAt)))
	if s.Permutations != nil {
		stat(&b, fmt.Sprintf("Permutations (%d!):", len(r.Sequence)), humanize.BigComma(new(big.Int).Set(s.Permutations)))
	}
	stat(&b, "Pruning efficiency:", fmt.Sprintf("%.2f%%", s.PruningRatio()*100))
	stat(&b, "Elapsed:", s.Elapsed.String())
	b.WriteString("\n")

	// A finished search is always optimal; limits end in an error instead.
	if s.Optimal() {
		b.WriteString("Optimal: every promising branch was explored.\n\n")
	} else {
		b.WriteString("Optimal: the search completed, visiting at least as many nodes as there are permutations.\n\n")
	}

	writeResult(&b, r)
	return b.String()
}

func stat(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %-21s%s\n", label, value)
}

// FormatThreeCandidate renders the per-job metrics and the three candidate
// sequences of a three-candidate run, followed by the selected result.
func FormatThreeCandidate(c *heuristics.Candidates) string {
	var b strings.Builder

	b.WriteString("Job metrics:\n")
	fmt.Fprintf(&b, "%-5s %6s %6s %6s\n", "Job", "S1", "S2", "D")
	for _, m := range c.Metrics {
		fmt.Fprintf(&b, "%-5s %6d %6d %6d\n", JobLabel(m.Job), m.S1, m.S2, m.D)
	}
	b.WriteString("\n")

	b.WriteString("Candidate sequences:\n")
	for i, cand := range c.Candidates {
		marker := " "
		if cand.Selected {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %d) %s: %s (makespan %d)\n",
			marker, i+1, cand.Rule, Sequence(cand.Result.Sequence), cand.Result.Makespan)
	}
	b.WriteString("\n")

	if best := c.Best(); best != nil {
		writeResult(&b, best)
	}
	return b.String()
}

func writeResult(b *strings.Builder, r *flowshop.Result) {
	fmt.Fprintf(b, "Method: %s\n", r.Method)
	fmt.Fprintf(b, "Jobs: %d, machines: %d\n\n", len(r.Sequence), r.Machines())

	b.WriteString("Sequence:\n")
	fmt.Fprintf(b, "  %s\n\n", Sequence(r.Sequence))

	b.WriteString("Schedule (start→end):\n")
	writeGrid(b, r)
	b.WriteString("\n")

	fmt.Fprintf(b, "Makespan: %d\n", r.Makespan)
	b.WriteString("Idle time:\n")
	for k, idle := range r.Idle {
		fmt.Fprintf(b, "  %s: %d\n", MachineLabel(k), idle)
	}
}

// writeGrid writes one row per sequence position and one "start→end" cell
// per machine, sized to the widest number in the schedule.
func writeGrid(b *strings.Builder, r *flowshop.Result) {
	machines := r.Machines()
	w := len(fmt.Sprintf("%d", r.Makespan))

	jobW := len("Job")
	for _, j := range r.Sequence {
		jobW = max(jobW, len(JobLabel(j)))
	}
	cellW := max(2*w+3, len(MachineLabel(machines-1))+2)

	fmt.Fprintf(b, "%-*s |", jobW, "Job")
	for k := 0; k < machines; k++ {
		fmt.Fprintf(b, " %-*s|", cellW-1, MachineLabel(k))
	}
	b.WriteString("\n")

	b.WriteString(strings.Repeat("-", jobW+1) + "+")
	for k := 0; k < machines; k++ {
		b.WriteString(strings.Repeat("-", cellW) + "+")
	}
	b.WriteString("\n")

	for p, j := range r.Sequence {
		fmt.Fprintf(b, "%-*s |", jobW, JobLabel(j))
		for _, t := range r.Timings[p] {
			cell := fmt.Sprintf(" %*d→%*d", w, t.Start, w, t.End)
			b.WriteString(cell + strings.Repeat(" ", cellW-utf8.RuneCountInString(cell)) + "|")
		}
		b.WriteString("\n")
	}
}
