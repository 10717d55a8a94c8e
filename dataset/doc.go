// Package dataset provides loading, cleaning, and reshaping of World
// Development Indicators style CSV exports.
//
// An export has one row per (indicator, country) pair with a fixed set of
// year columns. Loading normalizes the missing-value sentinel, fills gaps
// forward then backward per year column, drops duplicate rows, and truncates
// the trailing metadata block that WDI exports append after the data rows.
//
// # Reshaping
//
// The cleaned wide-by-year table melts into long form and pivots into a
// wide-by-indicator table keyed by (year, country):
//
//	wide, byIndicator, err := dataset.Load("wdi.csv", nil)
//	long := wide.Melt()
//	byIndicator = long.PivotByIndicator()
//
// Duplicate (year, country, indicator) combinations resolve to the first
// observed value. The pivoted column set is fixed by the distinct indicator
// names present at reshape time.
package dataset
