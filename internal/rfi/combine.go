package rfi

import (
	"fmt"

	"skpipe/internal/sk"
	"skpipe/internal/spectral"
)

// Mask is a (T, F) row-major good-channel mask: true means the cell
// was not flagged as RFI.
type Mask struct {
	Rows int
	Cols int
	Good []bool
}

// NewMask allocates an all-bad mask.
func NewMask(rows, cols int) *Mask {
	return &Mask{Rows: rows, Cols: cols, Good: make([]bool, rows*cols)}
}

// At reports whether block t, channel f is good.
func (m *Mask) At(t, f int) bool {
	return m.Good[t*m.Cols+f]
}

// goodFromFlags builds a mask with good ⟺ flag == OK.
func goodFromFlags(g *sk.FlagGrid) *Mask {
	m := NewMask(g.Rows, g.Cols)
	for i, f := range g.Flags {
		m.Good[i] = f == sk.FlagOK
	}
	return m
}

// Masks is the result of a mask combination: one good mask per present
// polarization. Under PolicyOr and PolicyAnd with both polarizations
// present, XX and YY point at the same shared mask.
type Masks struct {
	XX       *Mask // nil when XX flags were absent
	YY       *Mask // nil when YY flags were absent
	Shared   bool  // XX and YY are the same object
	Fallback bool  // or/and requested with only one polarization present
}

// Combine derives good masks from the present polarizations' flags
// under the given policy. Either flag grid may be nil. When PolicyOr
// or PolicyAnd is requested but only one polarization is present, the
// combiner falls back to that polarization's own flags; this degraded
// mode is reported through Masks.Fallback, not as an error.
func Combine(xx, yy *sk.FlagGrid, policy Policy) (*Masks, error) {
	if xx == nil && yy == nil {
		return nil, fmt.Errorf("%w: no polarization flags to combine",
			spectral.ErrInsufficientData)
	}
	if xx != nil && yy != nil && (xx.Rows != yy.Rows || xx.Cols != yy.Cols) {
		return nil, fmt.Errorf("%w: XX flags are (%d, %d) but YY flags are (%d, %d)",
			spectral.ErrShapeMismatch, xx.Rows, xx.Cols, yy.Rows, yy.Cols)
	}

	switch policy {
	case PolicySeparate:
		out := &Masks{}
		if xx != nil {
			out.XX = goodFromFlags(xx)
		}
		if yy != nil {
			out.YY = goodFromFlags(yy)
		}
		return out, nil

	case PolicyOr, PolicyAnd:
		if xx == nil || yy == nil {
			// Single-polarization fallback: behave as PolicySeparate
			// for the one that is present.
			out := &Masks{Fallback: true}
			if xx != nil {
				out.XX = goodFromFlags(xx)
			} else {
				out.YY = goodFromFlags(yy)
			}
			return out, nil
		}

		shared := NewMask(xx.Rows, xx.Cols)
		for i := range shared.Good {
			fxx := xx.Flags[i] != sk.FlagOK
			fyy := yy.Flags[i] != sk.FlagOK
			if policy == PolicyOr {
				shared.Good[i] = !(fxx || fyy)
			} else {
				shared.Good[i] = !(fxx && fyy)
			}
		}
		return &Masks{XX: shared, YY: shared, Shared: true}, nil

	default:
		return nil, fmt.Errorf("%w: unknown flag policy %d", spectral.ErrConfig, int(policy))
	}
}
