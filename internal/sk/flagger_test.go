package sk

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"skpipe/internal/spectral"
)

// identityEval reports S1 itself as the SK statistic, which lets tests
// place values precisely around the thresholds.
type identityEval struct {
	lower, upper float64
	thresholdErr error
	calls        int
}

func (e *identityEval) Evaluate(s1, s2 []float64, p Params) []float64 {
	e.calls++
	return append([]float64(nil), s1...)
}

func (e *identityEval) Thresholds(p Params) (float64, float64, error) {
	return e.lower, e.upper, e.thresholdErr
}

func validParams() Params {
	return Params{M: 64, N: 24, D: 1.0, PFA: 1e-3}
}

func TestFlagBlockClassification(t *testing.T) {
	eval := &identityEval{lower: 0.8, upper: 1.2}
	f, err := NewFlagger(eval, validParams())
	if err != nil {
		t.Fatalf("NewFlagger: %v", err)
	}

	// Threshold equality is not an outlier: LOW and HIGH are strict.
	sk := []float64{0.5, 0.8, 1.0, 1.2, 1.5, math.NaN()}
	want := []Flag{FlagLow, FlagOK, FlagOK, FlagOK, FlagHigh, FlagOK}

	got := f.FlagBlock(sk, make([]float64, len(sk)))
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("flag[%d] for SK=%v: got %d, want %d", i, sk[i], got[i], want[i])
		}
	}
}

func TestFlagExclusivity(t *testing.T) {
	eval := &identityEval{lower: 0.9, upper: 1.1}
	f, err := NewFlagger(eval, validParams())
	if err != nil {
		t.Fatalf("NewFlagger: %v", err)
	}

	lower, upper := f.Thresholds()
	sk := []float64{0.0, 0.9, 0.95, 1.0, 1.1, 2.0}
	flags := f.FlagBlock(sk, make([]float64, len(sk)))

	for i, v := range sk {
		var want Flag
		switch {
		case v < lower:
			want = FlagLow
		case v > upper:
			want = FlagHigh
		default:
			want = FlagOK
		}
		if flags[i] != want {
			t.Errorf("SK=%v: got flag %d, want %d", v, flags[i], want)
		}
		if flags[i] != FlagLow && flags[i] != FlagOK && flags[i] != FlagHigh {
			t.Errorf("SK=%v: flag %d outside {-1, 0, 1}", v, flags[i])
		}
	}
}

func TestFlagMomentsCallsEvaluatorPerBlock(t *testing.T) {
	eval := &identityEval{lower: 0.8, upper: 1.2}
	f, err := NewFlagger(eval, validParams())
	if err != nil {
		t.Fatalf("NewFlagger: %v", err)
	}

	const blocks, channels = 5, 3
	m := Moments{
		S1: mat.NewDense(blocks, channels, nil),
		S2: mat.NewDense(blocks, channels, nil),
	}
	m.S1.Set(2, 1, 9.0) // the only outlier cell

	grid := f.FlagMoments(m)
	if eval.calls != blocks {
		t.Errorf("evaluator called %d times, want once per block (%d)", eval.calls, blocks)
	}
	if grid.Rows != blocks || grid.Cols != channels {
		t.Fatalf("grid is (%d, %d), want (%d, %d)", grid.Rows, grid.Cols, blocks, channels)
	}
	for ti := 0; ti < blocks; ti++ {
		for fi := 0; fi < channels; fi++ {
			want := FlagLow // zero S1 scores below lower
			if ti == 2 && fi == 1 {
				want = FlagHigh
			}
			if got := grid.At(ti, fi); got != want {
				t.Errorf("flag(%d, %d) = %d, want %d", ti, fi, got, want)
			}
		}
	}
}

func TestNewFlaggerErrors(t *testing.T) {
	tests := []struct {
		name    string
		eval    *identityEval
		params  Params
		wantErr error
	}{
		{
			name:    "invalid params rejected before thresholds",
			eval:    &identityEval{lower: 0.8, upper: 1.2},
			params:  Params{M: 0, N: 24, D: 1, PFA: 1e-3},
			wantErr: spectral.ErrConfig,
		},
		{
			name:    "threshold error propagates",
			eval:    &identityEval{thresholdErr: spectral.ErrConfig},
			params:  validParams(),
			wantErr: spectral.ErrConfig,
		},
		{
			name:    "inverted interval rejected",
			eval:    &identityEval{lower: 1.2, upper: 0.8},
			params:  validParams(),
			wantErr: spectral.ErrConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFlagger(tt.eval, tt.params)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewFlagger error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		ok     bool
	}{
		{"defaults", validParams(), true},
		{"zero M", Params{M: 0, N: 24, D: 1, PFA: 1e-3}, false},
		{"zero N", Params{M: 64, N: 0, D: 1, PFA: 1e-3}, false},
		{"zero d", Params{M: 64, N: 24, D: 0, PFA: 1e-3}, false},
		{"pfa at half", Params{M: 64, N: 24, D: 1, PFA: 0.5}, false},
		{"pfa zero", Params{M: 64, N: 24, D: 1, PFA: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.ok && err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if !tt.ok && !errors.Is(err, spectral.ErrConfig) {
				t.Fatalf("Validate error = %v, want %v", err, spectral.ErrConfig)
			}
		})
	}
}
