package rfi

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"skpipe/internal/spectral"
)

func allGood(rows, cols int) *Mask {
	m := NewMask(rows, cols)
	for i := range m.Good {
		m.Good[i] = true
	}
	return m
}

func TestIntegrateAllGoodIsStraightSum(t *testing.T) {
	// With no flagged channels, average·F_block equals the plain sum.
	s1 := mat.NewDense(2, 8, []float64{
		1, 2, 3, 4, 5, 6, 7, 8,
		2, 2, 2, 2, 10, 10, 10, 10,
	})
	in, err := (&Integrator{FBlock: 4}).Integrate(s1, allGood(2, 8))
	if err != nil {
		t.Fatalf("Integrate: %v", err)
	}
	if in.Blocks != 2 || in.EffChans != 8 || in.Dropped != 0 {
		t.Fatalf("got Blocks=%d EffChans=%d Dropped=%d, want 2, 8, 0",
			in.Blocks, in.EffChans, in.Dropped)
	}

	want := [][]float64{{10, 26}, {8, 40}}
	for ti := 0; ti < 2; ti++ {
		for b := 0; b < 2; b++ {
			v, ok := in.Clean(ti, b)
			if !ok {
				t.Fatalf("Clean(%d, %d) undefined with all channels good", ti, b)
			}
			if v != want[ti][b] {
				t.Errorf("Clean(%d, %d) = %v, want %v", ti, b, v, want[ti][b])
			}
			if n := in.NGood(ti, b); n != 4 {
				t.Errorf("NGood(%d, %d) = %d, want 4", ti, b, n)
			}
		}
	}
}

func TestIntegrateDropsTailChannels(t *testing.T) {
	// F=10 at F_block=4: two blocks, the last 2 channels excluded
	// from every output.
	data := make([]float64, 10)
	for j := range data {
		data[j] = 1
	}
	data[8], data[9] = 1e9, 1e9 // poison the tail
	s1 := mat.NewDense(1, 10, data)

	in, err := (&Integrator{FBlock: 4}).Integrate(s1, allGood(1, 10))
	if err != nil {
		t.Fatalf("Integrate: %v", err)
	}
	if in.Blocks != 2 || in.EffChans != 8 || in.Dropped != 2 {
		t.Fatalf("got Blocks=%d EffChans=%d Dropped=%d, want 2, 8, 2",
			in.Blocks, in.EffChans, in.Dropped)
	}
	for b := 0; b < 2; b++ {
		if v, _ := in.Clean(0, b); v != 4 {
			t.Errorf("Clean(0, %d) = %v, want 4 (tail leaked in)", b, v)
		}
	}
}

func TestIntegratePartialMask(t *testing.T) {
	s1 := mat.NewDense(1, 4, []float64{3, 5, 100, 200})
	mask := NewMask(1, 4)
	mask.Good[0], mask.Good[1] = true, true // channels 2, 3 flagged

	in, err := (&Integrator{FBlock: 4}).Integrate(s1, mask)
	if err != nil {
		t.Fatalf("Integrate: %v", err)
	}
	if n := in.NGood(0, 0); n != 2 {
		t.Fatalf("NGood = %d, want 2", n)
	}
	// average of good channels (4) inflated to the full block width.
	v, ok := in.Clean(0, 0)
	if !ok || v != 16 {
		t.Errorf("Clean = %v (ok=%v), want 16", v, ok)
	}
}

func TestIntegrateNoGoodChannels(t *testing.T) {
	s1 := mat.NewDense(1, 4, []float64{1, 2, 3, 4})
	in, err := (&Integrator{FBlock: 4}).Integrate(s1, NewMask(1, 4))
	if err != nil {
		t.Fatalf("Integrate: %v", err)
	}
	if n := in.NGood(0, 0); n != 0 {
		t.Fatalf("NGood = %d, want 0", n)
	}
	if v, ok := in.Clean(0, 0); ok {
		t.Errorf("Clean = %v with zero good channels, want undefined", v)
	}
}

func TestBlockFreqLabels(t *testing.T) {
	freq := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	labels, err := (&Integrator{FBlock: 4}).BlockFreq(freq)
	if err != nil {
		t.Fatalf("BlockFreq: %v", err)
	}
	want := []float64{25, 65} // means over the truncated 8-channel axis
	if len(labels) != len(want) {
		t.Fatalf("got %d labels, want %d", len(labels), len(want))
	}
	for i := range want {
		if math.Abs(labels[i]-want[i]) > 1e-12 {
			t.Errorf("label[%d] = %v, want %v", i, labels[i], want[i])
		}
	}
}

func TestIntegrateErrors(t *testing.T) {
	s1 := mat.NewDense(1, 4, []float64{1, 2, 3, 4})

	tests := []struct {
		name    string
		integ   Integrator
		mask    *Mask
		wantErr error
	}{
		{
			name:    "zero block size",
			integ:   Integrator{FBlock: 0},
			mask:    allGood(1, 4),
			wantErr: spectral.ErrConfig,
		},
		{
			name:    "fewer channels than one block",
			integ:   Integrator{FBlock: 8},
			mask:    allGood(1, 4),
			wantErr: spectral.ErrInsufficientData,
		},
		{
			name:    "mask shape mismatch",
			integ:   Integrator{FBlock: 2},
			mask:    allGood(1, 5),
			wantErr: spectral.ErrShapeMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.integ.Integrate(s1, tt.mask)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Integrate error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := (&Integrator{FBlock: 8}).BlockFreq([]float64{1, 2}); !errors.Is(err, spectral.ErrInsufficientData) {
		t.Errorf("BlockFreq error = %v, want %v", err, spectral.ErrInsufficientData)
	}
}
