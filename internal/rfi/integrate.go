package rfi

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"skpipe/internal/spectral"
)

// Integrator aggregates unmasked block power into groups of FBlock
// contiguous frequency channels. The cleaned estimate for a group is
// the average of its surviving good channels inflated back to the full
// group width (average_good · FBlock). This flux-conserving
// extrapolation assumes the signal is uniform across the group; the
// assumption is inherited from the SK-stream design and is preserved
// as documented behavior.
type Integrator struct {
	FBlock int // channels per frequency block
}

// Integration holds one polarization's masked frequency-block
// integration. Cells with no surviving good channels have an undefined
// cleaned value; Clean reports them with ok == false, and callers
// materialize the NaN sentinel only when serializing.
type Integration struct {
	T        int // time blocks
	Blocks   int // frequency blocks: floor(F / FBlock)
	EffChans int // Blocks * FBlock
	Dropped  int // trailing channels excluded
	FBlock   int

	sums  []float64 // (T, Blocks) row-major masked S1 sums
	nGood []int     // (T, Blocks) row-major good-channel counts
}

// Integrate reduces s1 (T, F) under the good mask. Trailing channels
// beyond floor(F/FBlock)·FBlock never contribute to any output cell.
func (ig *Integrator) Integrate(s1 *mat.Dense, good *Mask) (*Integration, error) {
	if ig.FBlock <= 0 {
		return nil, fmt.Errorf("%w: frequency block size F_block=%d must be > 0",
			spectral.ErrConfig, ig.FBlock)
	}
	t, f := s1.Dims()
	if good.Rows != t || good.Cols != f {
		return nil, fmt.Errorf("%w: S1 is (%d, %d) but good mask is (%d, %d)",
			spectral.ErrShapeMismatch, t, f, good.Rows, good.Cols)
	}
	blocks := f / ig.FBlock
	if blocks == 0 {
		return nil, fmt.Errorf("%w: F=%d channels cannot fill one block of F_block=%d",
			spectral.ErrInsufficientData, f, ig.FBlock)
	}

	out := &Integration{
		T:        t,
		Blocks:   blocks,
		EffChans: blocks * ig.FBlock,
		Dropped:  f - blocks*ig.FBlock,
		FBlock:   ig.FBlock,
		sums:     make([]float64, t*blocks),
		nGood:    make([]int, t*blocks),
	}

	for k := 0; k < t; k++ {
		row := s1.RawRowView(k)
		for b := 0; b < blocks; b++ {
			var sum float64
			var n int
			base := b * ig.FBlock
			for j := 0; j < ig.FBlock; j++ {
				if good.At(k, base+j) {
					sum += row[base+j]
					n++
				}
			}
			out.sums[k*blocks+b] = sum
			out.nGood[k*blocks+b] = n
		}
	}
	return out, nil
}

// BlockFreq computes the frequency-block labels: the mean of each
// block's constituent channel frequencies over the truncated axis.
func (ig *Integrator) BlockFreq(freqHz []float64) ([]float64, error) {
	if ig.FBlock <= 0 {
		return nil, fmt.Errorf("%w: frequency block size F_block=%d must be > 0",
			spectral.ErrConfig, ig.FBlock)
	}
	blocks := len(freqHz) / ig.FBlock
	if blocks == 0 {
		return nil, fmt.Errorf("%w: frequency axis of %d channels cannot fill one block of F_block=%d",
			spectral.ErrInsufficientData, len(freqHz), ig.FBlock)
	}
	labels := make([]float64, blocks)
	for b := 0; b < blocks; b++ {
		labels[b] = stat.Mean(freqHz[b*ig.FBlock:(b+1)*ig.FBlock], nil)
	}
	return labels, nil
}

// NGood returns the good-channel count for time block t, frequency
// block b, valued in [0, FBlock].
func (n *Integration) NGood(t, b int) int {
	return n.nGood[t*n.Blocks+b]
}

// Clean returns the flux-conserving cleaned estimate for time block t,
// frequency block b. ok is false when the cell has no good channels
// and the estimate is undefined.
func (n *Integration) Clean(t, b int) (v float64, ok bool) {
	i := t*n.Blocks + b
	if n.nGood[i] == 0 {
		return 0, false
	}
	avg := n.sums[i] / float64(n.nGood[i])
	return avg * float64(n.FBlock), true
}
