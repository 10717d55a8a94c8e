package stats

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// MinMax holds the per-column bounds observed when scaling, so the
// transform can be inverted.
type MinMax struct {
	Min []float64
	Max []float64
}

// Scale returns a copy of m with each column linearly rescaled to [0, 1]
// using its observed minimum and maximum, along with the bounds used.
// NaN cells are ignored when computing bounds and stay NaN in the output.
// A constant column (min == max) maps to 0 everywhere to avoid dividing
// by zero.
func Scale(m *mat.Dense) (*mat.Dense, *MinMax) {
	if m == nil {
		return nil, nil
	}
	r, c := m.Dims()
	mm := &MinMax{Min: make([]float64, c), Max: make([]float64, c)}
	out := mat.NewDense(r, c, nil)

	for j := 0; j < c; j++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for i := 0; i < r; i++ {
			v := m.At(i, j)
			if math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		if lo > hi {
			// Column is all NaN.
			lo, hi = math.NaN(), math.NaN()
		}
		mm.Min[j], mm.Max[j] = lo, hi

		span := hi - lo
		for i := 0; i < r; i++ {
			v := m.At(i, j)
			switch {
			case math.IsNaN(v):
				out.Set(i, j, math.NaN())
			case span == 0:
				out.Set(i, j, 0)
			default:
				out.Set(i, j, (v-lo)/span)
			}
		}
	}
	return out, mm
}

// Unscale inverts Scale using the retained bounds. Constant columns restore
// their constant value.
func (mm *MinMax) Unscale(m *mat.Dense) *mat.Dense {
	if m == nil || mm == nil {
		return nil
	}
	r, c := m.Dims()
	out := mat.NewDense(r, c, nil)
	for j := 0; j < c && j < len(mm.Min); j++ {
		span := mm.Max[j] - mm.Min[j]
		for i := 0; i < r; i++ {
			v := m.At(i, j)
			if math.IsNaN(v) {
				out.Set(i, j, math.NaN())
				continue
			}
			out.Set(i, j, v*span+mm.Min[j])
		}
	}
	return out
}
