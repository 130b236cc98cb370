// Package product defines the on-disk container files the pipeline
// reads and writes: the raw dual-polarization spectrogram, the stage-1
// SK-stream product, and the stage-2 RFI-cleaned product. All three
// share one msgpack container layout so a single inspector can walk
// any of them.
package product

import (
	"gonum.org/v1/gonum/mat"

	"skpipe/internal/sk"
)

// GridF32 is a dense row-major float32 matrix as stored on disk.
// Storage precision is float32; computation happens in float64.
type GridF32 struct {
	Rows int       `msgpack:"rows"`
	Cols int       `msgpack:"cols"`
	Data []float32 `msgpack:"data"`
}

// GridF64 is a dense row-major float64 matrix. Used where NaN
// sentinels must survive unchanged.
type GridF64 struct {
	Rows int       `msgpack:"rows"`
	Cols int       `msgpack:"cols"`
	Data []float64 `msgpack:"data"`
}

// GridI8 is a dense row-major int8 matrix, the storage encoding of
// ternary flags.
type GridI8 struct {
	Rows int    `msgpack:"rows"`
	Cols int    `msgpack:"cols"`
	Data []int8 `msgpack:"data"`
}

// GridI32 is a dense row-major int32 matrix, used for good-channel
// counts.
type GridI32 struct {
	Rows int     `msgpack:"rows"`
	Cols int     `msgpack:"cols"`
	Data []int32 `msgpack:"data"`
}

// F32FromDense narrows a float64 matrix to storage precision.
func F32FromDense(m *mat.Dense) *GridF32 {
	rows, cols := m.Dims()
	g := &GridF32{Rows: rows, Cols: cols, Data: make([]float32, rows*cols)}
	for i := 0; i < rows; i++ {
		row := m.RawRowView(i)
		for j, v := range row {
			g.Data[i*cols+j] = float32(v)
		}
	}
	return g
}

// Dense widens the grid back to a float64 matrix for computation.
func (g *GridF32) Dense() *mat.Dense {
	data := make([]float64, len(g.Data))
	for i, v := range g.Data {
		data[i] = float64(v)
	}
	return mat.NewDense(g.Rows, g.Cols, data)
}

// I8FromFlags encodes a flag grid with the documented −1/0/+1 mapping.
func I8FromFlags(f *sk.FlagGrid) *GridI8 {
	g := &GridI8{Rows: f.Rows, Cols: f.Cols, Data: make([]int8, len(f.Flags))}
	for i, v := range f.Flags {
		g.Data[i] = int8(v)
	}
	return g
}

// Flags decodes the grid back into typed flags.
func (g *GridI8) Flags() *sk.FlagGrid {
	f := sk.NewFlagGrid(g.Rows, g.Cols)
	for i, v := range g.Data {
		f.Flags[i] = sk.Flag(v)
	}
	return f
}
