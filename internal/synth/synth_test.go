package synth

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func baseOptions() Options {
	return Options{
		Samples:     64,
		Channels:    16,
		StartFreqHz: 30e6,
		ChanWidthHz: 24e3,
		SampleDt:    0.1,
		N:           24,
		D:           1,
		Seed:        42,
	}
}

func TestGenerateShapeAndAxes(t *testing.T) {
	sp := Generate(baseOptions())
	if err := sp.Validate(); err != nil {
		t.Fatalf("generated spectrogram invalid: %v", err)
	}
	ns, nf := sp.Dims()
	if ns != 64 || nf != 16 {
		t.Fatalf("dims (%d, %d), want (64, 16)", ns, nf)
	}
	if sp.FreqHz[1]-sp.FreqHz[0] != 24e3 {
		t.Errorf("channel spacing = %v, want 24e3", sp.FreqHz[1]-sp.FreqHz[0])
	}
	if sp.Time[1]-sp.Time[0] != 0.1 {
		t.Errorf("sample spacing = %v, want 0.1", sp.Time[1]-sp.Time[0])
	}
}

func TestGenerateReproducibleAndUncorrelated(t *testing.T) {
	a := Generate(baseOptions())
	b := Generate(baseOptions())
	if !mat.Equal(a.XX, b.XX) || !mat.Equal(a.YY, b.YY) {
		t.Error("same seed must reproduce the same segment")
	}
	if mat.Equal(a.XX, a.YY) {
		t.Error("polarizations must draw from independent streams")
	}

	other := baseOptions()
	other.Seed = 43
	c := Generate(other)
	if mat.Equal(a.XX, c.XX) {
		t.Error("different seeds must differ")
	}
}

func TestGenerateInjectsRFI(t *testing.T) {
	opts := baseOptions()
	opts.Samples = 256
	opts.RFIChannels = []int{5}
	opts.RFIPower = 10

	sp := Generate(opts)
	ns, nf := sp.Dims()

	colMean := func(j int) float64 {
		var sum float64
		for i := 0; i < ns; i++ {
			sum += sp.XX.At(i, j)
		}
		return sum / float64(ns)
	}

	hot := colMean(5)
	var clean float64
	for j := 0; j < nf; j++ {
		if j != 5 {
			clean += colMean(j)
		}
	}
	clean /= float64(nf - 1)

	if hot < 5*clean {
		t.Errorf("carrier channel mean %v not well above clean mean %v", hot, clean)
	}
}

func TestGenerateBurstRaisesPower(t *testing.T) {
	opts := baseOptions()
	opts.BurstStart = 10
	opts.BurstLen = 4
	opts.BurstPower = 20

	sp := Generate(opts)
	_, nf := sp.Dims()
	for j := 0; j < nf; j++ {
		if sp.XX.At(10, j) < opts.BurstPower {
			t.Fatalf("burst sample (10, %d) = %v, want >= %v", j, sp.XX.At(10, j), opts.BurstPower)
		}
		if sp.XX.At(9, j) > opts.BurstPower {
			// Not a hard bound, but gamma noise at mean 1 essentially
			// never reaches 20.
			t.Fatalf("pre-burst sample (9, %d) = %v unexpectedly high", j, sp.XX.At(9, j))
		}
	}
}
