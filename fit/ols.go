package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultAlpha is the two-sided significance level used when none is given.
const DefaultAlpha = 0.05

// OLSResult holds an ordinary least squares line fit with confidence bounds
// for the mean response.
type OLSResult struct {
	Intercept float64
	Slope     float64
	Alpha     float64
	R2        float64
	Fitted    []float64
	Lower     []float64 // lower confidence bound at each x
	Upper     []float64 // upper confidence bound at each x
}

// OLS fits y = a + b·x by ordinary least squares with an explicit intercept
// and computes two-sided confidence bounds for the mean response at the
// given significance level. alpha zero selects DefaultAlpha.
func OLS(x, y []float64, alpha float64) (*OLSResult, error) {
	if len(x) != len(y) {
		return nil, &ParameterError{Param: "x, y", Reason: fmt.Sprintf("length mismatch %d != %d", len(x), len(y))}
	}
	n := len(x)
	if n < 3 {
		return nil, &ParameterError{Param: "x", Reason: "need at least 3 observations"}
	}
	if alpha == 0 {
		alpha = DefaultAlpha
	}
	if alpha <= 0 || alpha >= 1 {
		return nil, &ParameterError{Param: "alpha", Reason: fmt.Sprintf("%g outside (0, 1)", alpha)}
	}

	intercept, slope := stat.LinearRegression(x, y, nil, false)
	if math.IsNaN(intercept) || math.IsNaN(slope) {
		return nil, &ParameterError{Param: "x", Reason: "regression undefined, x has no variance"}
	}

	fitted := make([]float64, n)
	sse := 0.0
	for i := range x {
		fitted[i] = intercept + slope*x[i]
		r := y[i] - fitted[i]
		sse += r * r
	}

	meanX := stat.Mean(x, nil)
	sxx := 0.0
	for _, v := range x {
		d := v - meanX
		sxx += d * d
	}
	if sxx == 0 {
		return nil, &ParameterError{Param: "x", Reason: "all x values identical"}
	}

	s2 := sse / float64(n-2)
	tcrit := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}.Quantile(1 - alpha/2)

	lower := make([]float64, n)
	upper := make([]float64, n)
	for i := range x {
		d := x[i] - meanX
		se := math.Sqrt(s2 * (1/float64(n) + d*d/sxx))
		lower[i] = fitted[i] - tcrit*se
		upper[i] = fitted[i] + tcrit*se
	}

	return &OLSResult{
		Intercept: intercept,
		Slope:     slope,
		Alpha:     alpha,
		R2:        stat.RSquaredFrom(fitted, y, nil),
		Fitted:    fitted,
		Lower:     lower,
		Upper:     upper,
	}, nil
}
