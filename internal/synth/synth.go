// Package synth generates synthetic dual-polarization spectrogram
// segments for trying the pipeline end to end: gamma-distributed noise
// power with optional persistent narrowband carriers and an impulsive
// broadband burst.
package synth

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"skpipe/internal/spectral"
)

// Options controls the generated segment.
type Options struct {
	Samples  int // time samples
	Channels int // frequency channels

	StartFreqHz float64 // frequency of channel 0
	ChanWidthHz float64 // channel spacing
	StartTime   float64 // timestamp of sample 0
	SampleDt    float64 // sample spacing, seconds

	// N and D shape the noise power distribution; matching the SK
	// parameters of a later stream run makes the clean channels score
	// SK ≈ 1.
	N int
	D float64

	Seed uint64

	// RFIChannels receive a persistent carrier: their noise power is
	// scaled by RFIPower. A 100% duty-cycle carrier drives SK below
	// the lower threshold.
	RFIChannels []int
	RFIPower    float64

	// BurstStart/BurstLen add an impulsive broadband burst: BurstPower
	// is added to every channel for BurstLen consecutive samples,
	// driving SK above the upper threshold.
	BurstStart int
	BurstLen   int
	BurstPower float64
}

// Generate builds a segment. The two polarizations draw from
// independent streams seeded from Options.Seed, so they are
// uncorrelated but reproducible.
func Generate(opts Options) *spectral.Spectrogram {
	nd := float64(opts.N) * opts.D
	if nd <= 0 {
		nd = 1
	}

	sp := &spectral.Spectrogram{
		XX:     genPol(opts, nd, opts.Seed),
		YY:     genPol(opts, nd, opts.Seed+1),
		FreqHz: make([]float64, opts.Channels),
		Time:   make([]float64, opts.Samples),
	}
	for j := range sp.FreqHz {
		sp.FreqHz[j] = opts.StartFreqHz + float64(j)*opts.ChanWidthHz
	}
	for i := range sp.Time {
		sp.Time[i] = opts.StartTime + float64(i)*opts.SampleDt
	}
	return sp
}

func genPol(opts Options, nd float64, seed uint64) *mat.Dense {
	// Gamma with mean 1 models accumulated noise power.
	noise := distuv.Gamma{
		Alpha: nd,
		Beta:  nd,
		Src:   rand.NewSource(seed),
	}

	rfi := make(map[int]bool, len(opts.RFIChannels))
	for _, c := range opts.RFIChannels {
		rfi[c] = true
	}

	m := mat.NewDense(opts.Samples, opts.Channels, nil)
	for i := 0; i < opts.Samples; i++ {
		row := m.RawRowView(i)
		inBurst := opts.BurstLen > 0 && i >= opts.BurstStart && i < opts.BurstStart+opts.BurstLen
		for j := range row {
			v := noise.Rand()
			if rfi[j] && opts.RFIPower > 0 {
				v *= opts.RFIPower
			}
			if inBurst {
				v += opts.BurstPower
			}
			row[j] = v
		}
	}
	return m
}
