package sk

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"skpipe/internal/spectral"
)

// Reducer slices the time axis into non-overlapping blocks of M
// samples and accumulates first and second power moments per channel.
// Blocks never overlap and a trailing partial block is never reduced.
type Reducer struct {
	M          int // samples per block
	Start      int // first time sample to process
	MaxSamples int // cap on samples after Start; 0 means to the end
}

// Moments holds one polarization's per-block moment sums.
// S1 and S2 are (T, F): row k carries block k's per-channel sum and
// sum of squares, accumulated in float64.
type Moments struct {
	S1 *mat.Dense
	S2 *mat.Dense
}

// Reduction is the output of one reducer pass over both polarizations.
type Reduction struct {
	XX      Moments
	YY      Moments
	TimeBlk []float64 // (T,) block-center times, mean of raw timestamps
	Blocks  int       // T
	Sel     int       // samples selected after Start and MaxSamples
	Eff     int       // samples actually reduced: Blocks * M
	Dropped int       // trailing samples excluded: Sel - Eff
}

// Reduce validates the configuration against the spectrogram and
// computes moment sums for every full block, in ascending block order.
func (r *Reducer) Reduce(sp *spectral.Spectrogram) (*Reduction, error) {
	if err := sp.Validate(); err != nil {
		return nil, err
	}
	ns, nf := sp.Dims()

	if r.M <= 0 {
		return nil, fmt.Errorf("%w: block size M=%d must be > 0", spectral.ErrConfig, r.M)
	}
	if r.Start < 0 || r.Start >= ns {
		return nil, fmt.Errorf("%w: start offset %d is outside [0, %d)",
			spectral.ErrConfig, r.Start, ns)
	}
	if r.MaxSamples < 0 {
		return nil, fmt.Errorf("%w: sample cap %d must be positive",
			spectral.ErrConfig, r.MaxSamples)
	}

	sel := ns - r.Start
	if r.MaxSamples > 0 && r.MaxSamples < sel {
		sel = r.MaxSamples
	}

	t := sel / r.M
	if t == 0 {
		return nil, fmt.Errorf("%w: %d selected samples cannot fill one block of M=%d",
			spectral.ErrInsufficientData, sel, r.M)
	}

	red := &Reduction{
		XX:      Moments{S1: mat.NewDense(t, nf, nil), S2: mat.NewDense(t, nf, nil)},
		YY:      Moments{S1: mat.NewDense(t, nf, nil), S2: mat.NewDense(t, nf, nil)},
		TimeBlk: make([]float64, t),
		Blocks:  t,
		Sel:     sel,
		Eff:     t * r.M,
		Dropped: sel - t*r.M,
	}

	for k := 0; k < t; k++ {
		i0 := r.Start + k*r.M
		accumulateBlock(sp.XX, i0, r.M, red.XX.S1.RawRowView(k), red.XX.S2.RawRowView(k))
		accumulateBlock(sp.YY, i0, r.M, red.YY.S1.RawRowView(k), red.YY.S2.RawRowView(k))
		red.TimeBlk[k] = stat.Mean(sp.Time[i0:i0+r.M], nil)
	}

	return red, nil
}

func accumulateBlock(power *mat.Dense, i0, m int, s1, s2 []float64) {
	for i := i0; i < i0+m; i++ {
		row := power.RawRowView(i)
		floats.Add(s1, row)
		for j, v := range row {
			s2[j] += v * v
		}
	}
}
