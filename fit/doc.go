// Package fit estimates parametric trends over (x, y) series two ways and
// derives uncertainty for both.
//
// Curve minimizes the sum of squared residuals of an arbitrary model
// function with a derivative-free optimizer and recovers a parameter
// covariance matrix from the numerical Jacobian at the optimum:
//
//	res, err := fit.Curve(fit.Linear, years, values, nil)
//	sigma := fit.Propagate(fit.Linear, years, res.Params, res.Cov)
//
// Propagate gives the standard error of the prediction at each x as
// sqrt(J·Σ·Jᵗ). The band prediction ± sigma is one standard error wide; it
// is deliberately not scaled by a t or z critical value, so it is narrower
// than a true confidence interval at a chosen significance level.
//
// OLS fits y = a + b·x with an explicit intercept and produces two-sided
// confidence bounds for the mean response at a significance level, scaled
// by the Student-t quantile:
//
//	ols, err := fit.OLS(years, values, 0.05)
package fit
