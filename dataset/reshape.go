package dataset

import (
	"math"
	"sort"
)

var nan = math.NaN()

// Melt converts the wide-by-year table into long form, one row per
// (indicator, country, year) triple. Row order follows the source table,
// years innermost.
func (t *Table) Melt() *LongTable {
	long := &LongTable{Rows: make([]LongRow, 0, len(t.Values)*len(t.Years))}
	for i := range t.Values {
		for j, year := range t.Years {
			long.Rows = append(long.Rows, LongRow{
				Indicator: t.Indicators[i],
				Country:   t.Countries[i],
				Year:      year,
				Value:     t.Values[i][j],
			})
		}
	}
	return long
}

// PivotByIndicator pivots the long table into a wide-by-indicator table
// keyed by (year, country). Duplicate (year, country, indicator)
// combinations resolve to the first observed value. Rows are ordered by
// year then country, columns by indicator name; combinations absent from
// the input are NaN.
func (l *LongTable) PivotByIndicator() *IndicatorTable {
	colIdx := make(map[string]int)
	var columns []string
	for _, r := range l.Rows {
		if _, ok := colIdx[r.Indicator]; !ok {
			colIdx[r.Indicator] = 0
			columns = append(columns, r.Indicator)
		}
	}
	sort.Strings(columns)
	for j, name := range columns {
		colIdx[name] = j
	}

	type key struct {
		year    int
		country string
	}
	rowIdx := make(map[key]int)
	var keys []key
	for _, r := range l.Rows {
		k := key{r.Year, r.Country}
		if _, ok := rowIdx[k]; !ok {
			rowIdx[k] = 0
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].country < keys[j].country
	})
	for i, k := range keys {
		rowIdx[k] = i
	}

	t := &IndicatorTable{
		Years:     make([]int, len(keys)),
		Countries: make([]string, len(keys)),
		Columns:   columns,
		Values:    make([][]float64, len(keys)),
	}
	filled := make([][]bool, len(keys))
	for i, k := range keys {
		t.Years[i] = k.year
		t.Countries[i] = k.country
		t.Values[i] = nanRow(len(columns))
		filled[i] = make([]bool, len(columns))
	}

	for _, r := range l.Rows {
		i := rowIdx[key{r.Year, r.Country}]
		j := colIdx[r.Indicator]
		if filled[i][j] {
			continue // first value wins
		}
		t.Values[i][j] = r.Value
		filled[i][j] = true
	}

	return t
}

func nanRow(n int) []float64 {
	row := make([]float64, n)
	for i := range row {
		row[i] = nan
	}
	return row
}
