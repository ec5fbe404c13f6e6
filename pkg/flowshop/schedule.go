package flowshop

import (
	"github.com/matzehuels/flowshop/pkg/errors"
)

// Timing is the processing window of one job on one machine.
type Timing struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Schedule is the timing table of a sequence.
//
// Timings is indexed by position in the sequence, not by job id:
// Timings[p][m] is the window of the job at position p on machine m.
type Schedule struct {
	Timings  [][]Timing
	Makespan int
	Idle     []int
}

// Build computes the schedule of seq on m.
//
// It fails with a ValidationError when seq is empty, the matrix has no
// columns or is otherwise invalid, or seq is not a permutation of the jobs.
func Build(m Matrix, seq []int) (*Schedule, error) {
	if len(seq) == 0 {
		return nil, errors.Validation(errors.ErrCodeInvalidSequence, "sequence is empty")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := ValidatePermutation(seq, m.Jobs()); err != nil {
		return nil, err
	}

	timings := make([][]Timing, len(seq))
	var prev []Timing
	for p, job := range seq {
		timings[p] = NextRow(m, prev, job)
		prev = timings[p]
	}

	return &Schedule{
		Timings:  timings,
		Makespan: timings[len(timings)-1][m.Machines()-1].End,
		Idle:     IdleTimes(timings),
	}, nil
}

// NextRow returns the timings of job appended after a position whose timings
// are prev. A nil prev means job is first in the sequence.
func NextRow(m Matrix, prev []Timing, job int) []Timing {
	machines := m.Machines()
	row := make([]Timing, machines)
	for k := 0; k < machines; k++ {
		start := 0
		if k > 0 {
			start = row[k-1].End
		}
		if prev != nil && prev[k].End > start {
			start = prev[k].End
		}
		row[k] = Timing{Start: start, End: start + m[job][k]}
	}
	return row
}

// IdleTimes returns the idle time of every machine for a timing table.
//
// Machine m is idle before its first job starts and in every positive gap
// between one job's end and the next job's start. Time after the machine's
// last job is not counted.
func IdleTimes(timings [][]Timing) []int {
	if len(timings) == 0 {
		return nil
	}
	idle := make([]int, len(timings[0]))
	for k := range idle {
		total := timings[0][k].Start
		for p := 1; p < len(timings); p++ {
			if gap := timings[p][k].Start - timings[p-1][k].End; gap > 0 {
				total += gap
			}
		}
		idle[k] = total
	}
	return idle
}

// ValidatePermutation checks that seq holds every job in [0, n) exactly once.
func ValidatePermutation(seq []int, n int) error {
	if len(seq) != n {
		return errors.Validation(errors.ErrCodeInvalidSequence,
			"sequence length must be %d (got %d)", n, len(seq))
	}
	seen := make([]bool, n)
	for i, v := range seq {
		if v < 0 || v >= n {
			return errors.Validation(errors.ErrCodeInvalidSequence,
				"sequence[%d]=%d out of range [0,%d)", i, v, n)
		}
		if seen[v] {
			return errors.Validation(errors.ErrCodeInvalidSequence,
				"duplicate job %d in sequence", v)
		}
		seen[v] = true
	}
	return nil
}

// Makespan is a convenience wrapper returning only the makespan of seq.
func Makespan(m Matrix, seq []int) (int, error) {
	s, err := Build(m, seq)
	if err != nil {
		return 0, err
	}
	return s.Makespan, nil
}
