package pipeline

import (
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/indikit/indikit/cluster"
	"github.com/indikit/indikit/dataset"
	"github.com/indikit/indikit/fit"
	"github.com/indikit/indikit/internal/config"
	"github.com/indikit/indikit/report"
	"github.com/indikit/indikit/stats"
	"github.com/indikit/indikit/viz"
)

// Summary reports what a run produced.
type Summary struct {
	Rows          int // cleaned (indicator, country) rows
	Indicators    []string
	ClusteredRows int
	Labels        []int
	Inertia       float64
	Correlation   *mat.SymDense
	OLS           *fit.OLSResult
	Curve         *fit.CurveResult
	Artifacts     []string // paths written under the output directory
}

// Run executes every stage against the configured input and writes the
// chart and workbook artifacts into cfg.OutDir.
func Run(cfg *config.Run) (*Summary, error) {
	opts := dataset.DefaultOptions()
	if cfg.MissingToken != "" {
		opts.MissingToken = cfg.MissingToken
	}
	if cfg.MetadataMarker != "" {
		opts.MetadataMarker = cfg.MetadataMarker
	}
	if cfg.MaxRows > 0 {
		opts.MaxRows = cfg.MaxRows
	}
	if len(cfg.YearColumns) > 0 {
		opts.YearColumns = cfg.YearColumns
	}

	log.Printf("loading %s", cfg.Input)
	table, wide, err := dataset.Load(cfg.Input, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	log.Printf("cleaned %d rows, %d indicators", table.NRows(), len(wide.Columns))

	fitIndicator := cfg.FitIndicator
	if fitIndicator == "" && len(wide.Columns) > 0 {
		fitIndicator = wide.Columns[0]
	}
	rankIndicator := cfg.RankIndicator
	if rankIndicator == "" {
		rankIndicator = fitIndicator
	}

	complete := wide.CompleteRows()
	corr := stats.Correlation(complete.Matrix())

	log.Printf("clustering %d complete rows into %d clusters", complete.NRows(), cfg.Clusters)
	scaled, _ := stats.Scale(complete.Matrix())
	clusters, err := cluster.KMeans(scaled, cfg.Clusters, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("clustering: %w", err)
	}

	log.Printf("fitting %q", fitIndicator)
	x, y, err := fitSeries(wide, fitIndicator)
	if err != nil {
		return nil, fmt.Errorf("fitting: %w", err)
	}
	ols, err := fit.OLS(x, y, cfg.Alpha)
	if err != nil {
		return nil, fmt.Errorf("fitting: %w", err)
	}
	curve, err := fit.Curve(fit.Linear, x, y, nil)
	if err != nil {
		return nil, fmt.Errorf("fitting: %w", err)
	}
	curvePred := fit.Predict(fit.Linear, x, curve.Params)
	curveSigma := fit.Propagate(fit.Linear, x, curve.Params, curve.Cov)

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("rendering: %w", err)
	}

	summary := &Summary{
		Rows:          table.NRows(),
		Indicators:    append([]string(nil), wide.Columns...),
		ClusteredRows: complete.NRows(),
		Labels:        clusters.Labels,
		Inertia:       clusters.Inertia,
		Correlation:   corr,
		OLS:           ols,
		Curve:         curve,
	}

	log.Printf("rendering charts into %s", cfg.OutDir)
	rankPath := filepath.Join(cfg.OutDir, "rank.png")
	if err := viz.RankBar(rankPath, wide, cfg.RankYear, rankIndicator, cfg.TopN,
		fmt.Sprintf("Top countries by %s, %d", rankIndicator, cfg.RankYear)); err != nil {
		return nil, fmt.Errorf("rendering: %w", err)
	}
	clustersPath := filepath.Join(cfg.OutDir, "clusters.png")
	if err := viz.ClusterMeans(clustersPath, complete, clusters.Labels, cfg.Clusters, fitIndicator,
		fmt.Sprintf("Mean %s per cluster", fitIndicator)); err != nil {
		return nil, fmt.Errorf("rendering: %w", err)
	}
	trendPath := filepath.Join(cfg.OutDir, "trend.png")
	if err := viz.TrendBand(trendPath, x, y, ols.Fitted, curvePred, ols.Lower, ols.Upper,
		fmt.Sprintf("%s trend", fitIndicator), "Year", fitIndicator); err != nil {
		return nil, fmt.Errorf("rendering: %w", err)
	}
	summary.Artifacts = append(summary.Artifacts, rankPath, clustersPath, trendPath)

	reportPath := filepath.Join(cfg.OutDir, "report.xlsx")
	log.Printf("writing %s", reportPath)
	wb := report.New()
	countries, values := rank(wide, cfg.RankYear, rankIndicator, cfg.TopN)
	wb.AddRankings(rankIndicator, cfg.RankYear, countries, values)
	wb.AddClusters(complete, rowIndices(complete.NRows()), clusters)
	wb.AddCorrelation(wide.Columns, corr)
	wb.AddFit(fitIndicator, x, ols, curve, curvePred, curveSigma)
	if err := wb.Save(reportPath); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	summary.Artifacts = append(summary.Artifacts, reportPath)

	return summary, nil
}

// fitSeries extracts the pooled (year, value) observations for the named
// indicator, dropping pairs whose value is missing.
func fitSeries(t *dataset.IndicatorTable, indicator string) (x, y []float64, err error) {
	col, err := t.Column(indicator)
	if err != nil {
		return nil, nil, err
	}
	for i, v := range col {
		if math.IsNaN(v) {
			continue
		}
		x = append(x, float64(t.Years[i]))
		y = append(y, v)
	}
	return x, y, nil
}

// rank returns the top n countries by the named indicator in the given
// year, in descending order.
func rank(t *dataset.IndicatorTable, year int, indicator string, n int) ([]string, []float64) {
	col, err := t.Column(indicator)
	if err != nil {
		return nil, nil
	}
	type entry struct {
		country string
		value   float64
	}
	var entries []entry
	for i := range col {
		if t.Years[i] != year || math.IsNaN(col[i]) {
			continue
		}
		entries = append(entries, entry{t.Countries[i], col[i]})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].value > entries[j].value })
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	countries := make([]string, len(entries))
	values := make([]float64, len(entries))
	for i, e := range entries {
		countries[i] = e.country
		values[i] = e.value
	}
	return countries, values
}

func rowIndices(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}
