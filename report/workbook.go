package report

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/mat"

	"github.com/indikit/indikit/cluster"
	"github.com/indikit/indikit/dataset"
	"github.com/indikit/indikit/fit"
)

const (
	rankingsSheet    = "Rankings"
	clustersSheet    = "Clusters"
	correlationSheet = "Correlation"
	fitSheet         = "Fit"
)

// Workbook accumulates result sheets and writes them out as one xlsx file.
type Workbook struct {
	f *excelize.File
}

// New returns an empty workbook with the Rankings sheet in place.
func New() *Workbook {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", rankingsSheet)
	return &Workbook{f: f}
}

// AddRankings fills the Rankings sheet with countries ordered as given.
func (w *Workbook) AddRankings(indicator string, year int, countries []string, values []float64) {
	w.f.SetCellValue(rankingsSheet, "A1", fmt.Sprintf("%s, %d", indicator, year))
	headers := []string{"Rank", "Country", "Value"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		w.f.SetCellValue(rankingsSheet, cell, h)
		w.f.SetColWidth(rankingsSheet, cell, cell, 18)
	}
	for i, country := range countries {
		row := i + 3
		w.f.SetCellValue(rankingsSheet, fmt.Sprintf("A%d", row), i+1)
		w.f.SetCellValue(rankingsSheet, fmt.Sprintf("B%d", row), country)
		w.f.SetCellValue(rankingsSheet, fmt.Sprintf("C%d", row), values[i])
	}
}

// AddClusters writes one row per clustered observation followed by the
// centroid block. rows must index into the table rows the labels refer to.
func (w *Workbook) AddClusters(t *dataset.IndicatorTable, rows []int, res *cluster.Result) {
	w.f.NewSheet(clustersSheet)

	headers := append([]string{"Year", "Country", "Cluster"}, t.Columns...)
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		w.f.SetCellValue(clustersSheet, cell, h)
		w.f.SetColWidth(clustersSheet, cell, cell, 18)
	}
	for i, r := range rows {
		row := i + 2
		w.f.SetCellValue(clustersSheet, fmt.Sprintf("A%d", row), t.Years[r])
		w.f.SetCellValue(clustersSheet, fmt.Sprintf("B%d", row), t.Countries[r])
		w.f.SetCellValue(clustersSheet, fmt.Sprintf("C%d", row), res.Labels[i])
		for j := range t.Columns {
			cell, _ := excelize.CoordinatesToCellName(j+4, row)
			w.f.SetCellValue(clustersSheet, cell, t.Values[r][j])
		}
	}

	k, cols := res.Centroids.Dims()
	base := len(rows) + 3
	w.f.SetCellValue(clustersSheet, fmt.Sprintf("A%d", base), "Centroids (scaled)")
	w.f.SetCellValue(clustersSheet, fmt.Sprintf("A%d", base+1), fmt.Sprintf("Inertia: %.6g", res.Inertia))
	for c := 0; c < k; c++ {
		row := base + 2 + c
		w.f.SetCellValue(clustersSheet, fmt.Sprintf("A%d", row), c)
		for j := 0; j < cols; j++ {
			cell, _ := excelize.CoordinatesToCellName(j+2, row)
			w.f.SetCellValue(clustersSheet, cell, res.Centroids.At(c, j))
		}
	}
}

// AddCorrelation writes the indicator correlation matrix with row and
// column labels. NaN entries are left blank.
func (w *Workbook) AddCorrelation(indicators []string, corr *mat.SymDense) {
	w.f.NewSheet(correlationSheet)

	for j, name := range indicators {
		cell, _ := excelize.CoordinatesToCellName(j+2, 1)
		w.f.SetCellValue(correlationSheet, cell, name)
		w.f.SetColWidth(correlationSheet, cell, cell, 20)
	}
	for i, name := range indicators {
		row := i + 2
		w.f.SetCellValue(correlationSheet, fmt.Sprintf("A%d", row), name)
		for j := range indicators {
			v := corr.At(i, j)
			if math.IsNaN(v) {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(j+2, row)
			w.f.SetCellValue(correlationSheet, cell, v)
		}
	}
}

// AddFit writes the OLS coefficients, the curve-fit parameters, and the
// per-observation band for the fitted indicator.
func (w *Workbook) AddFit(indicator string, x []float64, ols *fit.OLSResult, curve *fit.CurveResult, curvePred, curveSigma []float64) {
	w.f.NewSheet(fitSheet)

	w.f.SetCellValue(fitSheet, "A1", "Indicator")
	w.f.SetCellValue(fitSheet, "B1", indicator)
	w.f.SetCellValue(fitSheet, "A2", "OLS slope")
	w.f.SetCellValue(fitSheet, "B2", ols.Slope)
	w.f.SetCellValue(fitSheet, "A3", "OLS intercept")
	w.f.SetCellValue(fitSheet, "B3", ols.Intercept)
	w.f.SetCellValue(fitSheet, "A4", "R²")
	w.f.SetCellValue(fitSheet, "B4", ols.R2)
	w.f.SetCellValue(fitSheet, "A5", "Alpha")
	w.f.SetCellValue(fitSheet, "B5", ols.Alpha)
	for i, p := range curve.Params {
		w.f.SetCellValue(fitSheet, fmt.Sprintf("A%d", 6+i), fmt.Sprintf("Curve p%d", i))
		w.f.SetCellValue(fitSheet, fmt.Sprintf("B%d", 6+i), p)
	}

	base := 7 + len(curve.Params)
	headers := []string{"X", "OLS fit", "OLS lower", "OLS upper", "Curve fit", "Curve sigma"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, base)
		w.f.SetCellValue(fitSheet, cell, h)
		w.f.SetColWidth(fitSheet, cell, cell, 14)
	}
	for i := range x {
		row := base + 1 + i
		w.f.SetCellValue(fitSheet, fmt.Sprintf("A%d", row), x[i])
		w.f.SetCellValue(fitSheet, fmt.Sprintf("B%d", row), ols.Fitted[i])
		w.f.SetCellValue(fitSheet, fmt.Sprintf("C%d", row), ols.Lower[i])
		w.f.SetCellValue(fitSheet, fmt.Sprintf("D%d", row), ols.Upper[i])
		w.f.SetCellValue(fitSheet, fmt.Sprintf("E%d", row), curvePred[i])
		w.f.SetCellValue(fitSheet, fmt.Sprintf("F%d", row), curveSigma[i])
	}
}

// Save writes the workbook to path.
func (w *Workbook) Save(path string) error {
	return w.f.SaveAs(path)
}
