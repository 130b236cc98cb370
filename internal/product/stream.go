package product

import (
	"fmt"

	"skpipe/internal/spectral"
)

// StreamMeta is the stage-1 metadata block.
type StreamMeta struct {
	InputFile   string  `msgpack:"input_file"`
	M           int     `msgpack:"m"`
	N           int     `msgpack:"n"`
	D           float64 `msgpack:"d"`
	PFA         float64 `msgpack:"pfa"`
	NsTotal     int     `msgpack:"ns_total"`
	NsStart     int     `msgpack:"ns_start"`
	NsSel       int     `msgpack:"ns_sel"`
	NsEff       int     `msgpack:"ns_eff"`
	NFreq       int     `msgpack:"nfreq"`
	Description string  `msgpack:"description"`
}

// StreamFile is the persisted stage-1 product: per-polarization block
// power sums (float32) and SK flags (int8) over (T, F), the channel
// frequency axis, and block-center times. Either polarization may be
// absent in a degraded product; at least one must be present.
type StreamFile struct {
	Kind    string     `msgpack:"kind"`
	S1XX    *GridF32   `msgpack:"s1_xx,omitempty"`
	S1YY    *GridF32   `msgpack:"s1_yy,omitempty"`
	FlagsXX *GridI8    `msgpack:"sk_flags_xx,omitempty"`
	FlagsYY *GridI8    `msgpack:"sk_flags_yy,omitempty"`
	FreqHz  []float64  `msgpack:"freq_hz"`
	TimeBlk []float64  `msgpack:"time_blk"`
	Meta    StreamMeta `msgpack:"meta"`
}

// HasXX reports whether the XX polarization pair is present.
func (f *StreamFile) HasXX() bool { return f.S1XX != nil && f.FlagsXX != nil }

// HasYY reports whether the YY polarization pair is present.
func (f *StreamFile) HasYY() bool { return f.S1YY != nil && f.FlagsYY != nil }

func (f *StreamFile) validate() error {
	if !f.HasXX() && !f.HasYY() {
		return fmt.Errorf("%w: stream product must contain at least one of (s1_xx & sk_flags_xx) or (s1_yy & sk_flags_yy)",
			spectral.ErrShapeMismatch)
	}
	if len(f.FreqHz) == 0 || len(f.TimeBlk) == 0 {
		return fmt.Errorf("%w: stream product must contain freq_hz and time_blk axes",
			spectral.ErrShapeMismatch)
	}
	check := func(pol string, rows, cols int) error {
		if rows != len(f.TimeBlk) {
			return fmt.Errorf("%w: %s has %d blocks but time_blk has %d",
				spectral.ErrShapeMismatch, pol, rows, len(f.TimeBlk))
		}
		if cols != len(f.FreqHz) {
			return fmt.Errorf("%w: %s has %d channels but freq_hz has %d",
				spectral.ErrShapeMismatch, pol, cols, len(f.FreqHz))
		}
		return nil
	}
	if f.HasXX() {
		if err := check(spectral.PolXX, f.S1XX.Rows, f.S1XX.Cols); err != nil {
			return err
		}
		if f.FlagsXX.Rows != f.S1XX.Rows || f.FlagsXX.Cols != f.S1XX.Cols {
			return fmt.Errorf("%w: s1_xx is (%d, %d) but sk_flags_xx is (%d, %d)",
				spectral.ErrShapeMismatch, f.S1XX.Rows, f.S1XX.Cols, f.FlagsXX.Rows, f.FlagsXX.Cols)
		}
	}
	if f.HasYY() {
		if err := check(spectral.PolYY, f.S1YY.Rows, f.S1YY.Cols); err != nil {
			return err
		}
		if f.FlagsYY.Rows != f.S1YY.Rows || f.FlagsYY.Cols != f.S1YY.Cols {
			return fmt.Errorf("%w: s1_yy is (%d, %d) but sk_flags_yy is (%d, %d)",
				spectral.ErrShapeMismatch, f.S1YY.Rows, f.S1YY.Cols, f.FlagsYY.Rows, f.FlagsYY.Cols)
		}
	}
	return nil
}

// WriteStream persists the stage-1 product after validating its
// internal shape invariants.
func WriteStream(path string, f *StreamFile) (overwrote bool, err error) {
	f.Kind = KindStream
	if err := f.validate(); err != nil {
		return false, err
	}
	return writeContainer(path, f)
}

// ReadStream loads and validates a stage-1 product.
func ReadStream(path string) (*StreamFile, error) {
	var f StreamFile
	if err := readContainer(path, &f); err != nil {
		return nil, err
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}
