package pipeline

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/indikit/indikit/internal/config"
)

const scenarioCSV = `"Series Name","Series Code","Country Name","Country Code","1980","1985","1990"
"Life expectancy","SP.DYN.LE00.IN","Ghana","GHA","52","56","60"
"Life expectancy","SP.DYN.LE00.IN","Nigeria","NGA","..","50","54"
"","","","","","",""
"Data from database: WDI","","","","","",""
`

// leastSquares solves the normal equations for y = b*x + a directly.
func leastSquares(x, y []float64) (slope, intercept float64) {
	n := float64(len(x))
	var sumX, sumY, sumXY, sumXX float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumXX += x[i] * x[i]
	}
	slope = (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "wdi.csv")
	if err := os.WriteFile(input, []byte(scenarioCSV), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg := &config.Run{
		Input:        input,
		MissingToken: "..",
		YearColumns:  []int{1980, 1985, 1990},
		Clusters:     2,
		Seed:         0,
		Alpha:        0.05,
		FitIndicator: "Life expectancy",
		RankYear:     1990,
		TopN:         10,
		OutDir:       filepath.Join(dir, "out"),
	}

	sum, err := Run(cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if sum.Rows != 2 {
		t.Errorf("cleaned rows: got %d want 2", sum.Rows)
	}
	if sum.ClusteredRows != 6 {
		t.Errorf("clustered rows: got %d want 6", sum.ClusteredRows)
	}

	// Two clusters must both be populated.
	seen := map[int]bool{}
	for _, l := range sum.Labels {
		seen[l] = true
	}
	if len(seen) != 2 {
		t.Errorf("expected 2 distinct labels, got %d (%v)", len(seen), sum.Labels)
	}

	// The Nigeria 1980 gap fills from the column above, so the pooled
	// series is fully determined.
	x := []float64{1980, 1985, 1990, 1980, 1985, 1990}
	y := []float64{52, 56, 60, 52, 50, 54}
	slope, intercept := leastSquares(x, y)

	if math.Abs(sum.OLS.Slope-slope) > 1e-6 {
		t.Errorf("OLS slope: got %g want %g", sum.OLS.Slope, slope)
	}
	if math.Abs(sum.OLS.Intercept-intercept) > 1e-6 {
		t.Errorf("OLS intercept: got %g want %g", sum.OLS.Intercept, intercept)
	}
	if math.Abs(sum.Curve.Params[0]-slope) > 1e-6 {
		t.Errorf("curve slope: got %g want %g", sum.Curve.Params[0], slope)
	}
	if math.Abs(sum.Curve.Params[1]-intercept) > 1e-6 {
		t.Errorf("curve intercept: got %g want %g", sum.Curve.Params[1], intercept)
	}

	for i := range sum.OLS.Fitted {
		if sum.OLS.Lower[i] > sum.OLS.Fitted[i] || sum.OLS.Fitted[i] > sum.OLS.Upper[i] {
			t.Errorf("band ordering violated at %d", i)
		}
	}

	if len(sum.Artifacts) != 4 {
		t.Fatalf("artifacts: got %d want 4 (%v)", len(sum.Artifacts), sum.Artifacts)
	}
	for _, path := range sum.Artifacts {
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("missing artifact %s: %v", path, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("empty artifact %s", path)
		}
	}
}

func TestRunDeterministic(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "wdi.csv")
	if err := os.WriteFile(input, []byte(scenarioCSV), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	run := func(out string) *Summary {
		cfg := &config.Run{
			Input:        input,
			YearColumns:  []int{1980, 1985, 1990},
			Clusters:     2,
			Seed:         42,
			Alpha:        0.05,
			FitIndicator: "Life expectancy",
			RankYear:     1990,
			TopN:         10,
			OutDir:       filepath.Join(dir, out),
		}
		sum, err := Run(cfg)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		return sum
	}

	a, b := run("a"), run("b")
	for i := range a.Labels {
		if a.Labels[i] != b.Labels[i] {
			t.Fatalf("labels differ at %d with the same seed: %v vs %v", i, a.Labels, b.Labels)
		}
	}
	if a.Inertia != b.Inertia {
		t.Errorf("inertia differs with the same seed: %g vs %g", a.Inertia, b.Inertia)
	}
}

func TestRunBadInput(t *testing.T) {
	cfg := &config.Run{
		Input:    filepath.Join(t.TempDir(), "absent.csv"),
		Clusters: 2,
		OutDir:   t.TempDir(),
	}
	if _, err := Run(cfg); err == nil {
		t.Error("expected error for missing input file")
	}
}
