package flowshop

import (
	"math/rand"

	"github.com/matzehuels/flowshop/pkg/errors"
)

// Matrix holds processing times: Matrix[job][machine].
//
// A Matrix is input owned by the caller. No function in this module writes to
// it, so one Matrix can be shared by concurrent algorithm runs.
type Matrix [][]int

// Jobs returns the number of rows.
func (m Matrix) Jobs() int { return len(m) }

// Machines returns the number of columns of the first row, or 0 for an empty
// matrix. Call [Matrix.Validate] first if rows may be ragged.
func (m Matrix) Machines() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Time returns the processing time of job on machine.
func (m Matrix) Time(job, machine int) int {
	return m[job][machine]
}

// Validate checks the matrix shape and contents.
//
// It rejects an empty matrix, zero columns, rows whose length differs from
// the first row and negative processing times. Every failure is an
// *errors.ValidationError with code ErrCodeInvalidMatrix.
func (m Matrix) Validate() error {
	if len(m) == 0 {
		return errors.Validation(errors.ErrCodeInvalidMatrix, "matrix is empty")
	}
	machines := len(m[0])
	if machines == 0 {
		return errors.Validation(errors.ErrCodeInvalidMatrix, "matrix has no machine columns")
	}
	for i, row := range m {
		if len(row) != machines {
			return errors.Validation(errors.ErrCodeInvalidMatrix,
				"ragged matrix: row %d has %d entries, expected %d", i, len(row), machines)
		}
		for j, v := range row {
			if v < 0 {
				return errors.Validation(errors.ErrCodeInvalidMatrix,
					"negative processing time %d for job %d on machine %d", v, i, j)
			}
		}
	}
	return nil
}

// RequireMachines validates m and then checks min <= Machines() <= max.
// A max of 0 means no upper bound.
func (m Matrix) RequireMachines(algorithm string, min, max int) error {
	if err := m.Validate(); err != nil {
		return err
	}
	n := m.Machines()
	switch {
	case max > 0 && min == max && n != min:
		return errors.Validation(errors.ErrCodeUnsupportedMachines,
			"%s requires exactly %d machines (got %d)", algorithm, min, n)
	case n < min:
		return errors.Validation(errors.ErrCodeUnsupportedMachines,
			"%s requires at least %d machines (got %d)", algorithm, min, n)
	case max > 0 && n > max:
		return errors.Validation(errors.ErrCodeUnsupportedMachines,
			"%s supports at most %d machines (got %d)", algorithm, max, n)
	}
	return nil
}

// RowSum returns the total processing time of job over machines [from, to).
func (m Matrix) RowSum(job, from, to int) int {
	sum := 0
	for _, v := range m[job][from:to] {
		sum += v
	}
	return sum
}

// MaxTime returns the largest entry of the matrix.
func (m Matrix) MaxTime() int {
	best := 0
	for _, row := range m {
		for _, v := range row {
			if v > best {
				best = v
			}
		}
	}
	return best
}

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// RandomMatrix returns a jobs×machines matrix with times drawn uniformly from
// [minTime, maxTime]. It panics on a nil rng or inverted bounds.
func RandomMatrix(jobs, machines, minTime, maxTime int, rng *rand.Rand) Matrix {
	if rng == nil {
		panic("flowshop: nil random source")
	}
	if minTime < 0 || maxTime < minTime {
		panic("flowshop: invalid time bounds")
	}
	span := maxTime - minTime + 1
	m := make(Matrix, jobs)
	for i := range m {
		m[i] = make([]int, machines)
		for j := range m[i] {
			m[i][j] = minTime + rng.Intn(span)
		}
	}
	return m
}
