package pipeline

import (
	"fmt"
	"math"

	"skpipe/internal/log"
	"skpipe/internal/product"
	"skpipe/internal/rfi"
	"skpipe/internal/sk"
	"skpipe/internal/spectral"
)

// CleanOptions configures a stage-2 run.
type CleanOptions struct {
	FBlock int
	Policy rfi.Policy

	// OutDir receives the auto-named output when no explicit output
	// path is given.
	OutDir string
}

// RunClean executes stage 2: SK-stream product in, RFI-cleaned product
// out. An empty outPath selects the informative default name
// (<base>_rfi_M<M>_F<FBlock>_<mode>.skp) inside opts.OutDir.
func RunClean(skPath, outPath string, opts CleanOptions) error {
	log.Infof("RFI cleaning input: %s", skPath)
	log.Infof("F_block=%d, flag_mode=%s", opts.FBlock, opts.Policy)

	sf, err := product.ReadStream(skPath)
	if err != nil {
		return err
	}

	if outPath == "" {
		dir := opts.OutDir
		if dir == "" {
			dir = "."
		}
		mStage1 := sf.Meta.M
		if mStage1 <= 0 {
			mStage1 = -1
		}
		outPath = product.DefaultCleanPath(skPath, dir, mStage1, opts.FBlock, opts.Policy.String())
		log.Infof("output file: %s", outPath)
	}

	var flagsXX, flagsYY *sk.FlagGrid
	if sf.HasXX() {
		flagsXX = sf.FlagsXX.Flags()
		log.Infof("XX present: s1_xx shape=(%d, %d)", sf.S1XX.Rows, sf.S1XX.Cols)
	}
	if sf.HasYY() {
		flagsYY = sf.FlagsYY.Flags()
		log.Infof("YY present: s1_yy shape=(%d, %d)", sf.S1YY.Rows, sf.S1YY.Cols)
	}

	masks, err := rfi.Combine(flagsXX, flagsYY, opts.Policy)
	if err != nil {
		return err
	}
	if masks.Fallback {
		log.Warnf("flag mode %q requested with a single polarization; using its own flags", opts.Policy)
	}
	if masks.Shared {
		log.Infof("using shared mask for XX/YY via %q combination", opts.Policy)
	}

	integ := &rfi.Integrator{FBlock: opts.FBlock}
	var ixx, iyy *rfi.Integration
	if sf.HasXX() {
		if ixx, err = integ.Integrate(sf.S1XX.Dense(), masks.XX); err != nil {
			return err
		}
	}
	if sf.HasYY() {
		if iyy, err = integ.Integrate(sf.S1YY.Dense(), masks.YY); err != nil {
			return err
		}
	}

	if ixx != nil && iyy != nil &&
		(ixx.EffChans != iyy.EffChans || ixx.Blocks != iyy.Blocks) {
		return fmt.Errorf("%w: inconsistent integration between XX (F_eff=%d, n_blocks=%d) and YY (F_eff=%d, n_blocks=%d)",
			spectral.ErrShapeMismatch, ixx.EffChans, ixx.Blocks, iyy.EffChans, iyy.Blocks)
	}

	ref := ixx
	if ref == nil {
		ref = iyy
	}
	if ref.Dropped > 0 {
		log.Warnf("F=%d is not a multiple of F_block=%d; dropping %d trailing channels",
			len(sf.FreqHz), opts.FBlock, ref.Dropped)
	}
	log.Infof("effective F_eff=%d, n_blocks=%d", ref.EffChans, ref.Blocks)

	freqBlk, err := integ.BlockFreq(sf.FreqHz)
	if err != nil {
		return err
	}

	cf := &product.CleanFile{
		FreqBlockHz: freqBlk,
		TimeBlk:     sf.TimeBlk,
		Meta: product.CleanMeta{
			M:        sf.Meta.M,
			N:        sf.Meta.N,
			D:        sf.Meta.D,
			PFA:      sf.Meta.PFA,
			MStage1:  sf.Meta.M,
			FBlock:   opts.FBlock,
			FlagMode: opts.Policy.String(),
			FEff:     ref.EffChans,
			NBlocks:  ref.Blocks,
		},
	}
	if ixx != nil {
		cf.S1XXClean, cf.MaskXX = materialize(ixx)
	}
	if iyy != nil {
		cf.S1YYClean, cf.MaskYY = materialize(iyy)
	}

	overwrote, err := product.WriteClean(outPath, cf)
	if overwrote {
		log.Warnf("overwriting existing output file: %s", outPath)
	}
	if err != nil {
		return err
	}
	log.Infof("output written to: %s", outPath)
	return nil
}

// materialize converts an integration to the storage layout. Undefined
// cells become the NaN sentinel here, at the serialization boundary.
func materialize(in *rfi.Integration) (*product.GridF64, *product.GridI32) {
	clean := &product.GridF64{Rows: in.T, Cols: in.Blocks, Data: make([]float64, in.T*in.Blocks)}
	mask := &product.GridI32{Rows: in.T, Cols: in.Blocks, Data: make([]int32, in.T*in.Blocks)}
	for t := 0; t < in.T; t++ {
		for b := 0; b < in.Blocks; b++ {
			i := t*in.Blocks + b
			mask.Data[i] = int32(in.NGood(t, b))
			if v, ok := in.Clean(t, b); ok {
				clean.Data[i] = v
			} else {
				clean.Data[i] = math.NaN()
			}
		}
	}
	return clean, mask
}
