package fit

// Func is a parametric model function evaluated at a single x.
type Func func(x float64, params []float64) float64

// Linear is the two-parameter line params[0]*x + params[1].
func Linear(x float64, params []float64) float64 {
	return params[0]*x + params[1]
}

// Predict evaluates f at every x with the given parameters.
func Predict(f Func, xs []float64, params []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = f(x, params)
	}
	return out
}
