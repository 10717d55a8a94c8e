package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// ParameterError reports invalid fitting input, such as mismatched series
// lengths or too few observations for the parameter count.
type ParameterError struct {
	Param  string
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("fit: parameter %s: %s", e.Param, e.Reason)
}

// ConvergenceError reports that the optimizer failed to converge or that
// the model produced an undefined value during fitting.
type ConvergenceError struct {
	Reason string
	Err    error
}

func (e *ConvergenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fit: %s: %v", e.Reason, e.Err)
	}
	return "fit: " + e.Reason
}

func (e *ConvergenceError) Unwrap() error { return e.Err }

// CurveResult holds the optimal parameters and their covariance.
type CurveResult struct {
	Params []float64
	Cov    *mat.SymDense // parameter covariance, s²(JᵀJ)⁻¹
	SSR    float64       // sum of squared residuals at the optimum
}

// Curve fits f to the (x, y) series by minimizing the sum of squared
// residuals. p0 is the initial parameter guess and fixes the parameter
// count; nil defaults to the two-parameter guess {1, 1}.
//
// The covariance matrix is s²(JᵀJ)⁻¹ with the Jacobian of f with respect to
// the parameters evaluated numerically at the optimum.
func Curve(f Func, x, y, p0 []float64) (*CurveResult, error) {
	if len(x) != len(y) {
		return nil, &ParameterError{Param: "x, y", Reason: fmt.Sprintf("length mismatch %d != %d", len(x), len(y))}
	}
	if p0 == nil {
		p0 = []float64{1, 1}
	}
	n, p := len(x), len(p0)
	if n <= p {
		return nil, &ParameterError{Param: "x", Reason: fmt.Sprintf("need more than %d observations for %d parameters", p, p)}
	}

	undefined := false
	ssr := func(params []float64) float64 {
		sum := 0.0
		for i := range x {
			r := y[i] - f(x[i], params)
			if math.IsNaN(r) || math.IsInf(r, 0) {
				undefined = true
				return math.Inf(1)
			}
			sum += r * r
		}
		return sum
	}

	problem := optimize.Problem{Func: ssr}
	result, err := optimize.Minimize(problem, append([]float64(nil), p0...), nil, &optimize.NelderMead{})
	if err != nil && result == nil {
		return nil, &ConvergenceError{Reason: "optimizer did not converge", Err: err}
	}
	if math.IsNaN(result.F) || math.IsInf(result.F, 0) {
		reason := "objective is not finite at the reported optimum"
		if undefined {
			reason = "model produced an undefined value"
		}
		return nil, &ConvergenceError{Reason: reason}
	}

	params, best := polish(f, x, y, ssr, result.X, result.F)

	cov, err := covariance(f, x, params, best)
	if err != nil {
		return nil, err
	}

	return &CurveResult{Params: params, Cov: cov, SSR: best}, nil
}

// polish refines the simplex optimum with a few Gauss-Newton steps,
// params += (JᵀJ)⁻¹Jᵀr. For a model linear in its parameters one step lands
// on the exact least-squares solution. Steps that fail to improve the
// objective are discarded.
func polish(f Func, x, y []float64, ssr func([]float64) float64, params []float64, best float64) ([]float64, float64) {
	n, p := len(x), len(params)
	jac := mat.NewDense(n, p, nil)

	for step := 0; step < 3; step++ {
		fd.Jacobian(jac, func(dst, theta []float64) {
			for i := range x {
				dst[i] = f(x[i], theta)
			}
		}, params, &fd.JacobianSettings{})

		resid := mat.NewVecDense(n, nil)
		for i := range x {
			resid.SetVec(i, y[i]-f(x[i], params))
		}

		var delta mat.VecDense
		if err := delta.SolveVec(jac, resid); err != nil {
			break
		}

		trial := make([]float64, p)
		for i := range trial {
			trial[i] = params[i] + delta.AtVec(i)
		}
		trialSSR := ssr(trial)
		if math.IsNaN(trialSSR) || math.IsInf(trialSSR, 0) || trialSSR > best {
			break
		}
		improved := best - trialSSR
		params, best = trial, trialSSR
		if improved < 1e-15 {
			break
		}
	}
	return params, best
}

// covariance computes s²(JᵀJ)⁻¹ at the fitted parameters.
func covariance(f Func, x, params []float64, ssr float64) (*mat.SymDense, error) {
	n, p := len(x), len(params)

	jac := mat.NewDense(n, p, nil)
	fd.Jacobian(jac, func(dst, theta []float64) {
		for i := range x {
			dst[i] = f(x[i], theta)
		}
	}, params, &fd.JacobianSettings{})

	var jtj mat.Dense
	jtj.Mul(jac.T(), jac)

	var inv mat.Dense
	if err := inv.Inverse(&jtj); err != nil {
		return nil, &ConvergenceError{Reason: "singular Jacobian at the optimum", Err: err}
	}

	s2 := ssr / float64(n-p)
	cov := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			cov.SetSym(i, j, s2*(inv.At(i, j)+inv.At(j, i))/2)
		}
	}
	return cov, nil
}
