package dataset

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Table is a cleaned wide-by-year table: one row per (indicator, country)
// pair, one value column per year.
type Table struct {
	Indicators []string    // series name per row
	Countries  []string    // country name per row
	Years      []int       // year column order
	Values     [][]float64 // Values[row][yearIndex]; NaN marks missing
}

// NRows returns the number of data rows.
func (t *Table) NRows() int {
	return len(t.Values)
}

// IndicatorNames returns the distinct indicator names in first-seen order.
func (t *Table) IndicatorNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, name := range t.Indicators {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// LongRow is one observation in long form.
type LongRow struct {
	Indicator string
	Country   string
	Year      int
	Value     float64
}

// LongTable holds one row per (indicator, country, year) triple.
type LongTable struct {
	Rows []LongRow
}

// IndicatorTable is a wide-by-indicator table: one row per (year, country)
// pair, one column per indicator.
type IndicatorTable struct {
	Years     []int       // row key, parallel to Countries
	Countries []string    // row key, parallel to Years
	Columns   []string    // indicator names in sorted order
	Values    [][]float64 // Values[row][col]; NaN marks missing
}

// NRows returns the number of (year, country) rows.
func (t *IndicatorTable) NRows() int {
	return len(t.Values)
}

// Column returns the values of the named indicator column.
func (t *IndicatorTable) Column(name string) ([]float64, error) {
	for j, col := range t.Columns {
		if col == name {
			out := make([]float64, len(t.Values))
			for i := range t.Values {
				out[i] = t.Values[i][j]
			}
			return out, nil
		}
	}
	return nil, &FormatError{Column: name, Reason: "indicator column not found"}
}

// FilterYear returns a copy containing only rows for the given year.
func (t *IndicatorTable) FilterYear(year int) *IndicatorTable {
	out := &IndicatorTable{Columns: append([]string(nil), t.Columns...)}
	for i, y := range t.Years {
		if y != year {
			continue
		}
		out.Years = append(out.Years, y)
		out.Countries = append(out.Countries, t.Countries[i])
		out.Values = append(out.Values, append([]float64(nil), t.Values[i]...))
	}
	return out
}

// CompleteRows returns a copy containing only rows with no missing values.
// Pivoting introduces NaN for (year, country) pairs that lack some
// indicator; downstream numeric routines require complete vectors.
func (t *IndicatorTable) CompleteRows() *IndicatorTable {
	out := &IndicatorTable{Columns: append([]string(nil), t.Columns...)}
	for i, row := range t.Values {
		complete := true
		for _, v := range row {
			if math.IsNaN(v) {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		out.Years = append(out.Years, t.Years[i])
		out.Countries = append(out.Countries, t.Countries[i])
		out.Values = append(out.Values, append([]float64(nil), row...))
	}
	return out
}

// Matrix returns the numeric values as a dense matrix, one row per
// (year, country) pair, or nil when the table is empty. The matrix is a
// copy; mutating it does not affect the table.
func (t *IndicatorTable) Matrix() *mat.Dense {
	r, c := len(t.Values), len(t.Columns)
	if r == 0 || c == 0 {
		return nil
	}
	m := mat.NewDense(r, c, nil)
	for i, row := range t.Values {
		m.SetRow(i, row)
	}
	return m
}
