// Package stats provides the numeric utilities behind indicator clustering.
//
// # Correlation
//
// Compute a pairwise Pearson correlation matrix over the numeric columns of
// an indicator table:
//
//	corr := stats.Correlation(table.Matrix())
//
// Columns with zero variance produce NaN entries rather than an error.
//
// # Scaling
//
// Min-max normalize columns to [0, 1] for clustering, keeping the observed
// bounds so the transform is invertible:
//
//	scaled, mm := stats.Scale(m)
//	original := mm.Unscale(scaled)
//
// Constant columns map to 0 and unscale back to the constant.
package stats
