package viz

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/indikit/indikit/dataset"
)

func fixtureTable() *dataset.IndicatorTable {
	return &dataset.IndicatorTable{
		Years:     []int{2020, 2020, 2020, 2015, 2015, 2015},
		Countries: []string{"Ghana", "Kenya", "Nigeria", "Ghana", "Kenya", "Nigeria"},
		Columns:   []string{"GDP per capita", "Life expectancy"},
		Values: [][]float64{
			{2200, 64}, {1800, 66}, {2100, 55},
			{1700, 62}, {1400, 64}, {math.NaN(), 53},
		},
	}
}

func assertNonEmptyFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	if info.Size() == 0 {
		t.Fatalf("%s is empty", path)
	}
}

func TestRankBar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rank.png")
	if err := RankBar(path, fixtureTable(), 2020, "GDP per capita", 2, "Top economies"); err != nil {
		t.Fatalf("RankBar failed: %v", err)
	}
	assertNonEmptyFile(t, path)
}

func TestRankBarNoObservations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rank.png")
	if err := RankBar(path, fixtureTable(), 1999, "GDP per capita", 2, "Top economies"); err == nil {
		t.Error("expected error for a year with no observations")
	}
}

func TestRankBarUnknownIndicator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rank.png")
	if err := RankBar(path, fixtureTable(), 2020, "No such series", 2, ""); err == nil {
		t.Error("expected error for an unknown indicator")
	}
}

func TestClusterMeans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clusters.png")
	labels := []int{0, 0, 1, 1, 0, 1}
	if err := ClusterMeans(path, fixtureTable(), labels, 2, "Life expectancy", "Cluster means"); err != nil {
		t.Fatalf("ClusterMeans failed: %v", err)
	}
	assertNonEmptyFile(t, path)
}

func TestClusterMeansLabelMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clusters.png")
	if err := ClusterMeans(path, fixtureTable(), []int{0, 1}, 2, "Life expectancy", ""); err == nil {
		t.Error("expected error for label count mismatch")
	}
}

func TestTrendBand(t *testing.T) {
	x := []float64{2000, 2005, 2010, 2015, 2020}
	y := []float64{50, 54, 57, 61, 64}
	fitted := []float64{50.2, 53.7, 57.2, 60.7, 64.2}
	curve := []float64{50.1, 53.8, 57.1, 60.8, 64.1}
	lower := []float64{49, 53, 56.5, 60, 63}
	upper := []float64{51.4, 54.4, 57.9, 61.4, 65.4}

	path := filepath.Join(t.TempDir(), "trend.png")
	if err := TrendBand(path, x, y, fitted, curve, lower, upper, "Life expectancy", "Year", "Years"); err != nil {
		t.Fatalf("TrendBand failed: %v", err)
	}
	assertNonEmptyFile(t, path)
}

func TestTrendBandLengthMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trend.png")
	x := []float64{1, 2, 3}
	short := []float64{1, 2}
	if err := TrendBand(path, x, short, x, x, x, x, "", "", ""); err == nil {
		t.Error("expected error for series length mismatch")
	}
}

func TestTrendBandDoesNotMutateInput(t *testing.T) {
	x := []float64{2020, 2000, 2010}
	y := []float64{3, 1, 2}
	orig := append([]float64(nil), x...)

	path := filepath.Join(t.TempDir(), "trend.png")
	if err := TrendBand(path, x, y, y, y, y, y, "", "", ""); err != nil {
		t.Fatalf("TrendBand failed: %v", err)
	}
	for i := range x {
		if x[i] != orig[i] {
			t.Fatalf("input x mutated at %d: %g != %g", i, x[i], orig[i])
		}
	}
}
