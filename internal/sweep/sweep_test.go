package sweep

import (
	"errors"
	"slices"
	"testing"

	"difgrow/internal/core"
	"difgrow/internal/sims/pigment"
)

func baseConfig() pigment.Config {
	cfg := pigment.DefaultConfig()
	cfg.Rows = 16
	cfg.Cols = 16
	cfg.PerCycle = 300
	cfg.NumCycles = 2
	return cfg
}

func TestGridOrder(t *testing.T) {
	points := Grid([]float64{1, 2}, []float64{3}, []int64{5, 6})
	want := []Point{
		{Lx: 1, H: 3, Seed: 5},
		{Lx: 1, H: 3, Seed: 6},
		{Lx: 2, H: 3, Seed: 5},
		{Lx: 2, H: 3, Seed: 6},
	}
	if !slices.Equal(points, want) {
		t.Fatalf("Grid = %v", points)
	}
}

func TestRunIndependentOfWorkerCount(t *testing.T) {
	points := Grid([]float64{0.5, 2.5}, []float64{2, 4}, []int64{1})
	serial := Run(baseConfig(), points, 1, nil)
	var seen int
	parallel := Run(baseConfig(), points, 4, func(Result) { seen++ })
	if seen != len(points) {
		t.Fatalf("progress called %d times, want %d", seen, len(points))
	}
	for i := range points {
		a, b := serial[i], parallel[i]
		if a.Err != nil || b.Err != nil {
			t.Fatalf("unexpected errors %v %v", a.Err, b.Err)
		}
		if a.Point != points[i] || b.Point != points[i] {
			t.Fatalf("result %d out of order", i)
		}
		if a.Melanophore != b.Melanophore || a.Contrast != b.Contrast {
			t.Fatalf("point %v differs between worker counts", points[i])
		}
	}
}

func TestEvaluateReportsConfigErrors(t *testing.T) {
	res := Evaluate(baseConfig(), Point{Lx: 1, H: 0, Seed: 1})
	if !errors.Is(res.Err, core.ErrConfig) {
		t.Fatalf("expected config error, got %v", res.Err)
	}
}

func TestByContrast(t *testing.T) {
	results := []Result{
		{Point: Point{Lx: 1}, Contrast: 0.1},
		{Point: Point{Lx: 2}, Err: errors.New("boom"), Contrast: 0.9},
		{Point: Point{Lx: 3}, Contrast: 0.3},
	}
	ByContrast(results)
	got := []float64{results[0].Point.Lx, results[1].Point.Lx, results[2].Point.Lx}
	if !slices.Equal(got, []float64{3, 1, 2}) {
		t.Fatalf("order %v", got)
	}
}

func TestParseFloats(t *testing.T) {
	got, err := ParseFloats(" 1, 2.5 ,,4")
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []float64{1, 2.5, 4}) {
		t.Fatalf("ParseFloats = %v", got)
	}
	if _, err := ParseFloats("1,x"); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := ParseFloats(" , "); err == nil {
		t.Fatal("expected empty list error")
	}
}
