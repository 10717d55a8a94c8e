package dataset

import (
	"errors"
	"math"
	"strings"
	"testing"
)

const sampleCSV = `Series Name,Series Code,Country Name,Country Code,1980,1985,1990,1995,2000,2005,2010,2015,2020
CO2 emissions (kt),EN.ATM.CO2E.KT,Nigeria,NGA,68,72,..,80,85,90,95,100,105
CO2 emissions (kt),EN.ATM.CO2E.KT,Ghana,GHA,..,4,5,6,7,8,9,10,11
CO2 emissions (kt),EN.ATM.CO2E.KT,Ghana,GHA,..,4,5,6,7,8,9,10,11
GDP per capita,NY.GDP.PCAP.CD,Nigeria,NGA,880,890,900,910,920,930,940,950,960
GDP per capita,NY.GDP.PCAP.CD,Ghana,GHA,400,410,420,430,440,450,460,470,480
,,,,,,,,,,,,
Data from database: World Development Indicators,,,,,,,,,,,,
Last Updated: 01/28/2024,,,,,,,,,,,,
`

func TestLoadCleansAndPivots(t *testing.T) {
	wide, byInd, err := LoadFromReader(strings.NewReader(sampleCSV), nil)
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}

	// Duplicate Ghana CO2 row dropped, metadata rows truncated.
	if wide.NRows() != 4 {
		t.Fatalf("expected 4 cleaned rows, got %d", wide.NRows())
	}

	// Nigeria 1990 gap is forward filled from 1985.
	if wide.Values[0][2] != 72 {
		t.Errorf("expected forward fill 72 at Nigeria 1990, got %f", wide.Values[0][2])
	}
	// Ghana 1980 leading gap: ffill propagates Nigeria's last value down the
	// column before bfill runs, matching the column-wise fill policy.
	if math.IsNaN(wide.Values[1][0]) {
		t.Errorf("expected leading gap to be filled, got NaN")
	}

	if len(byInd.Columns) != 2 {
		t.Fatalf("expected 2 indicator columns, got %d", len(byInd.Columns))
	}
	// 2 countries x 9 years
	if byInd.NRows() != 18 {
		t.Errorf("expected 18 (year, country) rows, got %d", byInd.NRows())
	}
}

func TestLoadMissingColumn(t *testing.T) {
	csv := "Series Name,Country Name,1980\nCO2,Nigeria,1.0\n"
	_, _, err := LoadFromReader(strings.NewReader(csv), nil)
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FormatError, got %T", err)
	}
	if fe.Column != SeriesCodeColumn {
		t.Errorf("expected offending column %q, got %q", SeriesCodeColumn, fe.Column)
	}
}

func TestLoadUnparseableValue(t *testing.T) {
	csv := `Series Name,Series Code,Country Name,Country Code,1980,1985,1990
CO2,EN.CO2,Nigeria,NGA,68,abc,80
`
	opts := DefaultOptions()
	opts.YearColumns = []int{1980, 1985, 1990}
	_, _, err := LoadFromReader(strings.NewReader(csv), opts)
	if err == nil {
		t.Fatal("expected error for unparseable year value")
	}
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FormatError, got %T", err)
	}
	if fe.Column != "1985" {
		t.Errorf("expected offending column 1985, got %q", fe.Column)
	}
}

func TestLoadMaxRowsFallback(t *testing.T) {
	csv := `Series Name,Series Code,Country Name,Country Code,1980,1985,1990
CO2,EN.CO2,Nigeria,NGA,68,72,80
CO2,EN.CO2,Ghana,GHA,3,4,5
junk,junk,junk,junk,1,2,3
`
	opts := DefaultOptions()
	opts.YearColumns = []int{1980, 1985, 1990}
	opts.MaxRows = 2
	wide, _, err := LoadFromReader(strings.NewReader(csv), opts)
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if wide.NRows() != 2 {
		t.Errorf("expected MaxRows to truncate to 2 rows, got %d", wide.NRows())
	}
}

func TestLoadBracketedYearHeaders(t *testing.T) {
	csv := `Series Name,Series Code,Country Name,Country Code,1980 [YR1980],1985 [YR1985],1990 [YR1990]
CO2,EN.CO2,Nigeria,NGA,68,72,80
`
	opts := DefaultOptions()
	opts.YearColumns = []int{1980, 1985, 1990}
	wide, _, err := LoadFromReader(strings.NewReader(csv), opts)
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if wide.Values[0][1] != 72 {
		t.Errorf("expected 72 in 1985 column, got %f", wide.Values[0][1])
	}
}

func TestLoadEmptyData(t *testing.T) {
	csv := `Series Name,Series Code,Country Name,Country Code,1980,1985,1990,1995,2000,2005,2010,2015,2020
Data from database: WDI,,,,,,,,,,,,
`
	_, _, err := LoadFromReader(strings.NewReader(csv), nil)
	if err == nil {
		t.Fatal("expected error when no data rows precede the metadata block")
	}
}
