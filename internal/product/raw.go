package product

import (
	"fmt"

	"skpipe/internal/spectral"
)

// RawFile is the on-disk layout of a raw dual-polarization
// spectrogram segment: (ns, nf) power per polarization, the channel
// frequency axis, and an optional per-sample time axis.
type RawFile struct {
	Kind   string    `msgpack:"kind"`
	XX     *GridF32  `msgpack:"xx"`
	YY     *GridF32  `msgpack:"yy"`
	FreqHz []float64 `msgpack:"freq_hz"`
	Time   []float64 `msgpack:"time,omitempty"`
}

// WriteRaw persists a spectrogram segment.
func WriteRaw(path string, sp *spectral.Spectrogram) (overwrote bool, err error) {
	if err := sp.Validate(); err != nil {
		return false, err
	}
	f := &RawFile{
		Kind:   KindRaw,
		XX:     F32FromDense(sp.XX),
		YY:     F32FromDense(sp.YY),
		FreqHz: sp.FreqHz,
		Time:   sp.Time,
	}
	return writeContainer(path, f)
}

// ReadRaw loads a spectrogram segment and validates its shape
// invariants. When the file carries no time axis, a synthetic
// 0, 1, 2, … axis is substituted; syntheticTime reports this so the
// caller can warn.
func ReadRaw(path string) (sp *spectral.Spectrogram, syntheticTime bool, err error) {
	var f RawFile
	if err := readContainer(path, &f); err != nil {
		return nil, false, err
	}
	if f.XX == nil || f.YY == nil {
		return nil, false, fmt.Errorf("%w: %s must contain both xx and yy datasets",
			spectral.ErrShapeMismatch, path)
	}

	sp = &spectral.Spectrogram{
		XX:     f.XX.Dense(),
		YY:     f.YY.Dense(),
		FreqHz: f.FreqHz,
		Time:   f.Time,
	}
	if len(sp.Time) == 0 {
		syntheticTime = true
		sp.Time = make([]float64, f.XX.Rows)
		for i := range sp.Time {
			sp.Time[i] = float64(i)
		}
	}
	if err := sp.Validate(); err != nil {
		return nil, syntheticTime, err
	}
	return sp, syntheticTime, nil
}
