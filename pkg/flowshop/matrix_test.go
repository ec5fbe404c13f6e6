package flowshop

import (
	"math/rand"
	"testing"

	"github.com/matzehuels/flowshop/pkg/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		m       Matrix
		wantErr bool
	}{
		{"valid", Matrix{{1, 2}, {3, 4}}, false},
		{"zeros allowed", Matrix{{0, 0}}, false},
		{"single column", Matrix{{4}, {2}}, false},
		{"nil", nil, true},
		{"empty", Matrix{}, true},
		{"empty row", Matrix{{}}, true},
		{"ragged", Matrix{{1, 2}, {3}}, true},
		{"ragged longer", Matrix{{1}, {3, 4}}, true},
		{"negative", Matrix{{1, 2}, {3, -1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidMatrix) {
				t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidMatrix)
			}
		})
	}
}

func TestRequireMachines(t *testing.T) {
	tests := []struct {
		name     string
		m        Matrix
		min, max int
		code     errors.Code
	}{
		{"exact ok", Matrix{{1, 2}}, 2, 2, ""},
		{"exact too many", Matrix{{1, 2, 3}}, 2, 2, errors.ErrCodeUnsupportedMachines},
		{"exact too few", Matrix{{1}}, 2, 2, errors.ErrCodeUnsupportedMachines},
		{"at least ok", Matrix{{1, 2, 3}}, 2, 0, ""},
		{"at least too few", Matrix{{1}}, 2, 0, errors.ErrCodeUnsupportedMachines},
		{"range too many", Matrix{{1, 2, 3, 4}}, 1, 3, errors.ErrCodeUnsupportedMachines},
		{"invalid matrix first", Matrix{{1, 2}, {1}}, 2, 0, errors.ErrCodeInvalidMatrix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.RequireMachines("test", tt.min, tt.max)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err=%v)", got, tt.code, err)
			}
		})
	}
}

func TestMatrixHelpers(t *testing.T) {
	m := Matrix{{1, 2, 3}, {7, 0, 4}}

	if m.Jobs() != 2 || m.Machines() != 3 {
		t.Errorf("shape = %dx%d, want 2x3", m.Jobs(), m.Machines())
	}
	if got := m.RowSum(1, 0, 3); got != 11 {
		t.Errorf("RowSum(1,0,3) = %d, want 11", got)
	}
	if got := m.RowSum(0, 1, 3); got != 5 {
		t.Errorf("RowSum(0,1,3) = %d, want 5", got)
	}
	if got := m.MaxTime(); got != 7 {
		t.Errorf("MaxTime() = %d, want 7", got)
	}

	c := m.Clone()
	c[0][0] = 99
	if m[0][0] != 1 {
		t.Error("Clone() should not share rows")
	}
	if (Matrix{}).Machines() != 0 {
		t.Error("empty matrix should report 0 machines")
	}
}

func TestRandomMatrix(t *testing.T) {
	m := RandomMatrix(6, 4, 3, 9, rand.New(rand.NewSource(1)))
	if err := m.Validate(); err != nil {
		t.Fatalf("random matrix invalid: %v", err)
	}
	for _, row := range m {
		for _, v := range row {
			if v < 3 || v > 9 {
				t.Fatalf("value %d outside [3,9]", v)
			}
		}
	}

	again := RandomMatrix(6, 4, 3, 9, rand.New(rand.NewSource(1)))
	for i := range m {
		for j := range m[i] {
			if m[i][j] != again[i][j] {
				t.Fatal("RandomMatrix should be deterministic for a fixed seed")
			}
		}
	}
}

func TestRandomMatrixPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("RandomMatrix with nil rng should panic")
		}
	}()
	RandomMatrix(2, 2, 0, 1, nil)
}
