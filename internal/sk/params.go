// Package sk implements the first pipeline stage: reduction of a raw
// dual-polarization spectrogram into per-block power moment sums and
// ternary spectral-kurtosis outlier flags.
package sk

import (
	"fmt"

	"skpipe/internal/spectral"
)

// Params are the spectral-kurtosis parameters shared by the estimator
// and the threshold computation. Thresholds depend only on these
// values, never on the data.
type Params struct {
	M   int     // time samples per block
	N   int     // gamma shape parameter of the underlying power statistics
	D   float64 // gamma scale parameter
	PFA float64 // one-sided probability of false alarm
}

// Validate checks the parameter ranges common to every evaluator.
func (p Params) Validate() error {
	if p.M <= 0 {
		return fmt.Errorf("%w: block size M=%d must be > 0", spectral.ErrConfig, p.M)
	}
	if p.N <= 0 {
		return fmt.Errorf("%w: shape parameter N=%d must be > 0", spectral.ErrConfig, p.N)
	}
	if p.D <= 0 {
		return fmt.Errorf("%w: scale parameter d=%g must be > 0", spectral.ErrConfig, p.D)
	}
	if p.PFA <= 0 || p.PFA >= 0.5 {
		return fmt.Errorf("%w: pfa=%g must lie in (0, 0.5)", spectral.ErrConfig, p.PFA)
	}
	return nil
}
