// Package pipeline runs the full indicator analysis: load and clean the
// CSV export, pivot to wide-by-indicator form, correlate, cluster, fit a
// trend with confidence bands, and write chart and workbook artifacts.
package pipeline
