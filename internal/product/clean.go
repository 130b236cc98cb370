package product

import (
	"fmt"

	"skpipe/internal/spectral"
)

// CleanMeta is the stage-2 metadata block: the SK parameters copied
// from stage 1 plus the integration parameters.
type CleanMeta struct {
	M        int     `msgpack:"m"`
	N        int     `msgpack:"n"`
	D        float64 `msgpack:"d"`
	PFA      float64 `msgpack:"pfa"`
	MStage1  int     `msgpack:"m_stage1"`
	FBlock   int     `msgpack:"f_block"`
	FlagMode string  `msgpack:"flag_mode"`
	FEff     int     `msgpack:"f_eff"`
	NBlocks  int     `msgpack:"n_blocks"`
}

// CleanFile is the persisted stage-2 product: per-polarization cleaned
// block power (float64, NaN where no channel survived), good-channel
// counts in [0, F_block], the block-averaged frequency axis, and the
// block times carried through unchanged from stage 1.
type CleanFile struct {
	Kind        string    `msgpack:"kind"`
	S1XXClean   *GridF64  `msgpack:"s1_xx_clean,omitempty"`
	S1YYClean   *GridF64  `msgpack:"s1_yy_clean,omitempty"`
	MaskXX      *GridI32  `msgpack:"mask_xx,omitempty"`
	MaskYY      *GridI32  `msgpack:"mask_yy,omitempty"`
	FreqBlockHz []float64 `msgpack:"freq_block_hz"`
	TimeBlk     []float64 `msgpack:"time_blk"`
	Meta        CleanMeta `msgpack:"meta"`
}

func (f *CleanFile) validate() error {
	hasXX := f.S1XXClean != nil && f.MaskXX != nil
	hasYY := f.S1YYClean != nil && f.MaskYY != nil
	if !hasXX && !hasYY {
		return fmt.Errorf("%w: clean product must contain at least one polarization",
			spectral.ErrShapeMismatch)
	}
	check := func(pol string, clean *GridF64, mask *GridI32) error {
		if clean.Rows != mask.Rows || clean.Cols != mask.Cols {
			return fmt.Errorf("%w: s1_%s_clean is (%d, %d) but mask_%s is (%d, %d)",
				spectral.ErrShapeMismatch, pol, clean.Rows, clean.Cols, pol, mask.Rows, mask.Cols)
		}
		if clean.Rows != len(f.TimeBlk) {
			return fmt.Errorf("%w: s1_%s_clean has %d blocks but time_blk has %d",
				spectral.ErrShapeMismatch, pol, clean.Rows, len(f.TimeBlk))
		}
		if clean.Cols != len(f.FreqBlockHz) {
			return fmt.Errorf("%w: s1_%s_clean has %d frequency blocks but freq_block_hz has %d",
				spectral.ErrShapeMismatch, pol, clean.Cols, len(f.FreqBlockHz))
		}
		return nil
	}
	if hasXX {
		if err := check(spectral.PolXX, f.S1XXClean, f.MaskXX); err != nil {
			return err
		}
	}
	if hasYY {
		if err := check(spectral.PolYY, f.S1YYClean, f.MaskYY); err != nil {
			return err
		}
	}
	return nil
}

// WriteClean persists the stage-2 product after validating its
// internal shape invariants.
func WriteClean(path string, f *CleanFile) (overwrote bool, err error) {
	f.Kind = KindClean
	if err := f.validate(); err != nil {
		return false, err
	}
	return writeContainer(path, f)
}

// ReadClean loads and validates a stage-2 product.
func ReadClean(path string) (*CleanFile, error) {
	var f CleanFile
	if err := readContainer(path, &f); err != nil {
		return nil, err
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}
