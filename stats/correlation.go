package stats

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Correlation returns the pairwise Pearson correlation matrix of the columns
// of m. Columns with zero variance yield NaN entries; the function never
// panics on degenerate input.
func Correlation(m *mat.Dense) *mat.SymDense {
	if m == nil {
		return nil
	}
	_, c := m.Dims()
	dst := mat.NewSymDense(c, nil)
	stat.CorrelationMatrix(dst, m, nil)
	return dst
}
