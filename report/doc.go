// Package report assembles the pipeline's tabular results into a single
// xlsx workbook with one sheet per analysis stage.
package report
