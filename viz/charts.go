package viz

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/indikit/indikit/dataset"
)

var (
	barColor   = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	dataColor  = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	fitColor   = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	bandColor  = color.RGBA{R: 0, G: 0, B: 0, A: 50}
	curveColor = color.RGBA{R: 44, G: 160, B: 44, A: 255}
)

// RankBar renders a bar chart of the top n countries by the named indicator
// in the given year.
func RankBar(path string, t *dataset.IndicatorTable, year int, indicator string, n int, title string) error {
	col, err := t.Column(indicator)
	if err != nil {
		return err
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
	if len(entries) == 0 {
		return fmt.Errorf("viz: no %q observations for year %d", indicator, year)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].value > entries[j].value })
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}

	values := make(plotter.Values, len(entries))
	labels := make([]string, len(entries))
	for i, e := range entries {
		values[i] = e.value
		labels[i] = e.country
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = indicator

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return err
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 3

	return p.Save(10*vg.Inch, 6*vg.Inch, path)
}

// ClusterMeans renders a bar chart of the mean indicator value per cluster.
// labels must be parallel to the table rows.
func ClusterMeans(path string, t *dataset.IndicatorTable, labels []int, k int, indicator string, title string) error {
	if len(labels) != t.NRows() {
		return fmt.Errorf("viz: %d labels for %d rows", len(labels), t.NRows())
	}
	col, err := t.Column(indicator)
	if err != nil {
		return err
	}

	sums := make([]float64, k)
	counts := make([]int, k)
	for i, v := range col {
		if math.IsNaN(v) {
			continue
		}
		sums[labels[i]] += v
		counts[labels[i]]++
	}

	values := make(plotter.Values, k)
	names := make([]string, k)
	for c := 0; c < k; c++ {
		if counts[c] > 0 {
			values[c] = sums[c] / float64(counts[c])
		}
		names[c] = strconv.Itoa(c)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Cluster"
	p.Y.Label.Text = indicator

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return err
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)

	return p.Save(8*vg.Inch, 6*vg.Inch, path)
}

// TrendBand renders observed points, the OLS fitted line, the curve-fit
// line, and a shaded confidence band between lower and upper.
func TrendBand(path string, x, y, fitted, curve, lower, upper []float64, title, xLabel, yLabel string) error {
	if len(x) != len(y) || len(x) != len(fitted) || len(x) != len(lower) || len(x) != len(upper) {
		return fmt.Errorf("viz: series length mismatch")
	}

	order := sortedOrder(x)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	band := make(plotter.XYs, 0, 2*len(x))
	for _, i := range order {
		band = append(band, plotter.XY{X: x[i], Y: upper[i]})
	}
	for j := len(order) - 1; j >= 0; j-- {
		i := order[j]
		band = append(band, plotter.XY{X: x[i], Y: lower[i]})
	}
	poly, err := plotter.NewPolygon(band)
	if err != nil {
		return err
	}
	poly.Color = bandColor
	poly.LineStyle.Width = vg.Length(0)
	p.Add(poly)

	obs := make(plotter.XYs, len(order))
	fitLine := make(plotter.XYs, len(order))
	curveLine := make(plotter.XYs, len(order))
	for j, i := range order {
		obs[j] = plotter.XY{X: x[i], Y: y[i]}
		fitLine[j] = plotter.XY{X: x[i], Y: fitted[i]}
		curveLine[j] = plotter.XY{X: x[i], Y: curve[i]}
	}

	scatter, err := plotter.NewScatter(obs)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Color = dataColor
	scatter.GlyphStyle.Radius = vg.Points(2)
	p.Add(scatter)

	olsLine, err := plotter.NewLine(fitLine)
	if err != nil {
		return err
	}
	olsLine.Color = fitColor
	olsLine.Width = vg.Points(2)
	p.Add(olsLine)

	cfLine, err := plotter.NewLine(curveLine)
	if err != nil {
		return err
	}
	cfLine.Color = curveColor
	cfLine.Width = vg.Points(1)
	cfLine.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(cfLine)

	p.Add(plotter.NewGrid())
	p.Legend.Add("observed", scatter)
	p.Legend.Add("OLS fit", olsLine)
	p.Legend.Add("curve fit", cfLine)
	p.Legend.Top = true

	return p.Save(10*vg.Inch, 6*vg.Inch, path)
}

// sortedOrder returns row indices ordered by ascending x without touching
// the input slice.
func sortedOrder(x []float64) []int {
	order := make([]int, len(x))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return x[order[a]] < x[order[b]] })
	return order
}
