package dataset

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Default column names in a WDI export.
const (
	SeriesNameColumn  = "Series Name"
	SeriesCodeColumn  = "Series Code"
	CountryNameColumn = "Country Name"
	CountryCodeColumn = "Country Code"
)

// FormatError reports a malformed input file: a missing expected column,
// an unparseable value, or an empty data section.
type FormatError struct {
	Column string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Column == "" {
		return "dataset: " + e.Reason
	}
	return fmt.Sprintf("dataset: column %q: %s", e.Column, e.Reason)
}

// Options holds loading options.
type Options struct {
	MissingToken   string // sentinel for missing values (default "..")
	Delimiter      rune   // field delimiter (default ',')
	YearColumns    []int  // expected year columns (default 1980..2020 step 5)
	MetadataMarker string // prefix marking the trailing metadata block (default "Data from database")
	MaxRows        int    // fallback truncation for files without a marker (0 = no limit)
}

// DefaultOptions returns the options matching a standard WDI CSV export.
func DefaultOptions() *Options {
	return &Options{
		MissingToken:   "..",
		Delimiter:      ',',
		YearColumns:    []int{1980, 1985, 1990, 1995, 2000, 2005, 2010, 2015, 2020},
		MetadataMarker: "Data from database",
	}
}

// Load reads a WDI style CSV file and returns the cleaned wide-by-year table
// together with its wide-by-indicator pivot.
func Load(filename string, opts *Options) (*Table, *IndicatorTable, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return LoadFromReader(f, opts)
}

// LoadFromReader is Load for an io.Reader.
//
// Cleaning happens in a fixed order: the missing-value sentinel becomes NaN,
// each year column is forward filled then backward filled, duplicate rows
// are dropped, and rows from the metadata marker onward are truncated.
// Filling fabricates values: a gap takes the last earlier observation in the
// column, and a leading gap takes the first later one. This mirrors how the
// source exports are conventionally repaired but can mask genuinely missing
// data.
func LoadFromReader(r io.Reader, opts *Options) (*Table, *IndicatorTable, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	df := dataframe.ReadCSV(r,
		dataframe.WithDelimiter(opts.Delimiter),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, nil, &FormatError{Reason: df.Err.Error()}
	}

	names := make(map[string]bool, df.Ncol())
	for _, n := range df.Names() {
		names[n] = true
	}
	for _, want := range []string{SeriesNameColumn, SeriesCodeColumn, CountryNameColumn, CountryCodeColumn} {
		if !names[want] {
			return nil, nil, &FormatError{Column: want, Reason: "expected column not found"}
		}
	}
	for _, year := range opts.YearColumns {
		if col := yearColumnName(df.Names(), year); col == "" {
			return nil, nil, &FormatError{Column: strconv.Itoa(year), Reason: "expected year column not found"}
		}
	}

	indicators := df.Col(SeriesNameColumn).Records()
	countries := df.Col(CountryNameColumn).Records()

	// The metadata block starts at the marker row or at the first row with
	// an empty series name; everything from there on is not data.
	limit := len(indicators)
	for i, name := range indicators {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" || (opts.MetadataMarker != "" && strings.HasPrefix(trimmed, opts.MetadataMarker)) {
			limit = i
			break
		}
	}
	if opts.MaxRows > 0 && opts.MaxRows < limit {
		limit = opts.MaxRows
	}
	if limit == 0 {
		return nil, nil, &FormatError{Reason: "no data rows before metadata block"}
	}

	values := make([][]float64, limit)
	for i := range values {
		values[i] = make([]float64, len(opts.YearColumns))
	}
	for j, year := range opts.YearColumns {
		col := yearColumnName(df.Names(), year)
		records := df.Col(col).Records()
		for i := 0; i < limit; i++ {
			cell := strings.TrimSpace(records[i])
			if cell == "" || cell == opts.MissingToken {
				values[i][j] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, nil, &FormatError{Column: col, Reason: fmt.Sprintf("unparseable value %q at row %d", cell, i)}
			}
			values[i][j] = v
		}
	}

	for j := range opts.YearColumns {
		fillColumn(values, j)
	}

	t := &Table{Years: append([]int(nil), opts.YearColumns...)}
	seen := make(map[string]bool, limit)
	for i := 0; i < limit; i++ {
		key := rowKey(indicators[i], countries[i], values[i])
		if seen[key] {
			continue
		}
		seen[key] = true
		t.Indicators = append(t.Indicators, indicators[i])
		t.Countries = append(t.Countries, countries[i])
		t.Values = append(t.Values, values[i])
	}

	return t, t.Melt().PivotByIndicator(), nil
}

// yearColumnName resolves a year to its header name. Some exports label year
// columns "2020", others "2020 [YR2020]".
func yearColumnName(names []string, year int) string {
	plain := strconv.Itoa(year)
	for _, n := range names {
		if n == plain || strings.HasPrefix(n, plain+" ") {
			return n
		}
	}
	return ""
}

// fillColumn forward fills then backward fills NaN gaps in column j.
func fillColumn(values [][]float64, j int) {
	last := math.NaN()
	for i := range values {
		if math.IsNaN(values[i][j]) {
			values[i][j] = last
		} else {
			last = values[i][j]
		}
	}
	next := math.NaN()
	for i := len(values) - 1; i >= 0; i-- {
		if math.IsNaN(values[i][j]) {
			values[i][j] = next
		} else {
			next = values[i][j]
		}
	}
}

func rowKey(indicator, country string, vals []float64) string {
	var b strings.Builder
	b.WriteString(indicator)
	b.WriteByte('\x1f')
	b.WriteString(country)
	for _, v := range vals {
		b.WriteByte('\x1f')
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return b.String()
}
