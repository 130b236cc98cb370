// Package spectral holds the data model shared by the SK stream and
// RFI clean stages: dual-polarization power spectrograms and the
// common error taxonomy.
package spectral

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Polarization labels used in dataset names and product schemas.
const (
	PolXX = "xx"
	PolYY = "yy"
)

// Spectrogram is an immutable dual-polarization power spectrogram.
// XX and YY are (ns, nf) matrices with one row per time sample and one
// column per frequency channel. Both polarizations share the same time
// base and frequency axis.
type Spectrogram struct {
	XX     *mat.Dense
	YY     *mat.Dense
	FreqHz []float64 // (nf,) channel center frequencies, Hz
	Time   []float64 // (ns,) per-sample timestamps
}

// Dims returns (time samples, frequency channels) of the spectrogram.
func (s *Spectrogram) Dims() (ns, nf int) {
	return s.XX.Dims()
}

// Validate checks the cross-array shape invariants: equal XX/YY shapes,
// a frequency axis matching the channel count, and a time axis matching
// the sample count.
func (s *Spectrogram) Validate() error {
	if s.XX == nil || s.YY == nil {
		return fmt.Errorf("%w: spectrogram must carry both XX and YY polarizations", ErrShapeMismatch)
	}
	nsXX, nfXX := s.XX.Dims()
	nsYY, nfYY := s.YY.Dims()
	if nsXX != nsYY || nfXX != nfYY {
		return fmt.Errorf("%w: XX is (%d, %d) but YY is (%d, %d)",
			ErrShapeMismatch, nsXX, nfXX, nsYY, nfYY)
	}
	if len(s.FreqHz) != nfXX {
		return fmt.Errorf("%w: frequency axis has %d channels but data has %d",
			ErrShapeMismatch, len(s.FreqHz), nfXX)
	}
	if len(s.Time) != nsXX {
		return fmt.Errorf("%w: time axis has %d samples but data has %d",
			ErrShapeMismatch, len(s.Time), nsXX)
	}
	return nil
}
