package flowshop

// Result is the outcome of one algorithm run: a sequence, its schedule and
// the name of the method that produced it. Results are not mutated after
// construction.
type Result struct {
	Method   string     `json:"method"`
	Sequence []int      `json:"sequence"`
	Timings  [][]Timing `json:"timings"`
	Makespan int        `json:"makespan"`
	Idle     []int      `json:"idle"`
}

// NewResult builds the schedule of seq and wraps it in a Result.
// The sequence is copied.
func NewResult(method string, m Matrix, seq []int) (*Result, error) {
	s, err := Build(m, seq)
	if err != nil {
		return nil, err
	}
	return FromSchedule(method, seq, s), nil
}

// FromSchedule wraps an already built schedule. The sequence is copied.
func FromSchedule(method string, seq []int, s *Schedule) *Result {
	return &Result{
		Method:   method,
		Sequence: append([]int(nil), seq...),
		Timings:  s.Timings,
		Makespan: s.Makespan,
		Idle:     s.Idle,
	}
}

// Machines returns the number of machines in the schedule.
func (r *Result) Machines() int {
	if len(r.Timings) == 0 {
		return 0
	}
	return len(r.Timings[0])
}

// MachineLoad returns the summed processing time on machine k.
func (r *Result) MachineLoad(k int) int {
	load := 0
	for _, row := range r.Timings {
		load += row[k].End - row[k].Start
	}
	return load
}

// Completion returns the time machine k finishes its last job.
func (r *Result) Completion(k int) int {
	if len(r.Timings) == 0 {
		return 0
	}
	return r.Timings[len(r.Timings)-1][k].End
}
