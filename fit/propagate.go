package fit

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// Propagate returns the standard error of the fitted prediction at each x,
// computed as sqrt(J·Σ·Jᵗ) where J is the gradient of f with respect to the
// parameters at that x and Σ is the parameter covariance matrix.
//
// The band prediction ± sigma is one standard error wide. It is not scaled
// by a critical value, so it understates a confidence interval at any
// conventional significance level.
func Propagate(f Func, xs []float64, params []float64, cov *mat.SymDense) []float64 {
	sigmas := make([]float64, len(xs))
	grad := make([]float64, len(params))
	for i, x := range xs {
		fd.Gradient(grad, func(theta []float64) float64 {
			return f(x, theta)
		}, params, nil)
		g := mat.NewVecDense(len(grad), grad)
		v := mat.Inner(g, cov, g)
		if v < 0 {
			v = 0
		}
		sigmas[i] = math.Sqrt(v)
	}
	return sigmas
}

// Band returns lower and upper bounds prediction ± sigma.
func Band(pred, sigma []float64) (lower, upper []float64) {
	lower = make([]float64, len(pred))
	upper = make([]float64, len(pred))
	for i := range pred {
		lower[i] = pred[i] - sigma[i]
		upper[i] = pred[i] + sigma[i]
	}
	return lower, upper
}
