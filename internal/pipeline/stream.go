// Package pipeline ties the core packages into the two batch stage
// drivers. A fatal error aborts the whole stage with no partial-result
// recovery; advisory conditions are logged and processing continues.
package pipeline

import (
	"path/filepath"

	"skpipe/internal/log"
	"skpipe/internal/product"
	"skpipe/internal/sk"
	"skpipe/internal/sk/estimator"
)

const streamDescription = "Streaming SK spectrometer product: s1_xx(t,f), s1_yy(t,f), " +
	"and SK flags for XX and YY (sk_flags_xx, sk_flags_yy) computed " +
	"from non-overlapping blocks of M spectra. " +
	"time_blk is the block-center time derived from the original time array."

// StreamOptions configures a stage-1 run.
type StreamOptions struct {
	Params     sk.Params
	Start      int
	MaxSamples int // 0 means to the end of the input

	// Evaluator overrides the SK strategy; nil selects the default
	// generalized estimator.
	Evaluator sk.Evaluator
}

// RunStream executes stage 1: raw spectrogram in, SK-stream product
// out. Output blocks are written in ascending time-block order.
func RunStream(inPath, outPath string, opts StreamOptions) error {
	eval := opts.Evaluator
	if eval == nil {
		eval = estimator.Generalized{}
	}

	log.Infof("input: %s", inPath)
	log.Infof("SK parameters: M=%d, N=%d, d=%g, pfa=%g",
		opts.Params.M, opts.Params.N, opts.Params.D, opts.Params.PFA)

	// Thresholds depend only on the parameters; compute them once and
	// fail early on bad configuration.
	flagger, err := sk.NewFlagger(eval, opts.Params)
	if err != nil {
		return err
	}
	lower, upper := flagger.Thresholds()
	log.Infof("SK thresholds: lower=%.6g, upper=%.6g", lower, upper)

	sp, syntheticTime, err := product.ReadRaw(inPath)
	if err != nil {
		return err
	}
	if syntheticTime {
		log.Warnf("no time axis in %s; using synthetic time axis (0, 1, 2, ...)", inPath)
	}
	ns, nf := sp.Dims()
	log.Infof("raw shape: ns=%d, nf=%d", ns, nf)

	reducer := &sk.Reducer{M: opts.Params.M, Start: opts.Start, MaxSamples: opts.MaxSamples}
	red, err := reducer.Reduce(sp)
	if err != nil {
		return err
	}
	if red.Dropped > 0 {
		log.Warnf("%d selected samples are not a multiple of M=%d; dropping tail of length %d",
			red.Sel, opts.Params.M, red.Dropped)
	}
	log.Infof("effective samples: ns_eff=%d -> T=%d blocks of size M=%d",
		red.Eff, red.Blocks, opts.Params.M)

	flagsXX := flagger.FlagMoments(red.XX)
	flagsYY := flagger.FlagMoments(red.YY)

	abs, err := filepath.Abs(inPath)
	if err != nil {
		abs = inPath
	}
	file := &product.StreamFile{
		S1XX:    product.F32FromDense(red.XX.S1),
		S1YY:    product.F32FromDense(red.YY.S1),
		FlagsXX: product.I8FromFlags(flagsXX),
		FlagsYY: product.I8FromFlags(flagsYY),
		FreqHz:  sp.FreqHz,
		TimeBlk: red.TimeBlk,
		Meta: product.StreamMeta{
			InputFile:   abs,
			M:           opts.Params.M,
			N:           opts.Params.N,
			D:           opts.Params.D,
			PFA:         opts.Params.PFA,
			NsTotal:     ns,
			NsStart:     opts.Start,
			NsSel:       red.Sel,
			NsEff:       red.Eff,
			NFreq:       nf,
			Description: streamDescription,
		},
	}

	overwrote, err := product.WriteStream(outPath, file)
	if overwrote {
		log.Warnf("overwriting existing output file: %s", outPath)
	}
	if err != nil {
		return err
	}
	log.Infof("output written to: %s", outPath)
	return nil
}
