// Package indikit provides loading, reshaping, clustering, and trend fitting
// for World Development Indicators style panel data.
//
// Indikit reads a wide-by-year CSV export (one row per indicator and country,
// one column per year), cleans and reshapes it into a wide-by-indicator table,
// partitions country-year observations with k-means, and fits linear trends to
// an indicator over time using both nonlinear least squares and ordinary least
// squares with uncertainty bands.
//
// # Quick Start
//
// Load and reshape a dataset:
//
//	wide, byIndicator, _ := dataset.Load("wdi.csv", nil)
//
// Cluster the normalized indicator vectors:
//
//	m := byIndicator.CompleteRows().Matrix()
//	scaled, _ := stats.Scale(m)
//	result, _ := cluster.KMeans(scaled, 4, 0)
//
// Fit a linear trend with error propagation:
//
//	res, _ := fit.Curve(fit.Linear, years, values, nil)
//	sigma := fit.Propagate(fit.Linear, years, res.Params, res.Cov)
//
// # Packages
//
// The library is organized into the following packages:
//
//   - dataset: CSV loading, cleaning, and wide/long reshaping
//   - stats: correlation matrices and min-max scaling
//   - cluster: k-means partitioning of observation vectors
//   - fit: nonlinear curve fitting, OLS regression, error propagation
//   - viz: chart rendering for rankings, clusters, and fitted trends
//   - report: spreadsheet summaries of a pipeline run
//   - pipeline: the batch load, cluster, fit, render sequence
package indikit
