package sk

import (
	"fmt"

	"skpipe/internal/spectral"
)

// Flag classifies one (block, channel, polarization) cell. The numeric
// values are the on-disk encoding and must stay fixed.
type Flag int8

const (
	FlagLow  Flag = -1 // SK below the lower threshold
	FlagOK   Flag = 0  // SK inside the decision interval
	FlagHigh Flag = 1  // SK above the upper threshold
)

// FlagGrid is a (T, F) row-major grid of flags for one polarization.
type FlagGrid struct {
	Rows  int
	Cols  int
	Flags []Flag
}

// NewFlagGrid allocates a grid with every cell FlagOK.
func NewFlagGrid(rows, cols int) *FlagGrid {
	return &FlagGrid{Rows: rows, Cols: cols, Flags: make([]Flag, rows*cols)}
}

// At returns the flag for block t, channel f.
func (g *FlagGrid) At(t, f int) Flag {
	return g.Flags[t*g.Cols+f]
}

// Row returns the flags of block t as a shared slice.
func (g *FlagGrid) Row(t int) []Flag {
	return g.Flags[t*g.Cols : (t+1)*g.Cols]
}

// Flagger turns moment sums into ternary flags. The decision
// thresholds are computed once at construction and reused unchanged
// for every block and both polarizations.
type Flagger struct {
	eval   Evaluator
	params Params
	lower  float64
	upper  float64
}

// NewFlagger computes the decision thresholds for p via eval and
// returns a flagger bound to them.
func NewFlagger(eval Evaluator, p Params) (*Flagger, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	lower, upper, err := eval.Thresholds(p)
	if err != nil {
		return nil, err
	}
	if lower >= upper {
		return nil, fmt.Errorf("%w: evaluator produced lower=%g >= upper=%g",
			spectral.ErrConfig, lower, upper)
	}
	return &Flagger{eval: eval, params: p, lower: lower, upper: upper}, nil
}

// Thresholds returns the decision interval the flagger was built with.
func (f *Flagger) Thresholds() (lower, upper float64) {
	return f.lower, f.upper
}

// FlagBlock evaluates one block of one polarization and classifies
// each channel: Low below the lower threshold, High above the upper,
// OK otherwise. A non-finite SK value (for example from an all-zero
// block) compares false against both bounds and stays OK.
func (f *Flagger) FlagBlock(s1, s2 []float64) []Flag {
	sk := f.eval.Evaluate(s1, s2, f.params)
	flags := make([]Flag, len(sk))
	for i, v := range sk {
		switch {
		case v < f.lower:
			flags[i] = FlagLow
		case v > f.upper:
			flags[i] = FlagHigh
		default:
			flags[i] = FlagOK
		}
	}
	return flags
}

// FlagMoments classifies every block of one polarization, calling the
// evaluator once per block, in ascending block order.
func (f *Flagger) FlagMoments(m Moments) *FlagGrid {
	rows, cols := m.S1.Dims()
	grid := NewFlagGrid(rows, cols)
	for k := 0; k < rows; k++ {
		copy(grid.Row(k), f.FlagBlock(m.S1.RawRowView(k), m.S2.RawRowView(k)))
	}
	return grid
}
