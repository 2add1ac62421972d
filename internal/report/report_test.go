package report

import (
	"bytes"
	"encoding/csv"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"difgrow/internal/core"
	"difgrow/internal/engine"
	"difgrow/internal/lattice"
	"difgrow/internal/reaction"
	"difgrow/internal/render"
)

func newEngine(t *testing.T, s *lattice.State) *engine.Engine {
	t.Helper()
	nbr, err := lattice.BuildNeighbors(s.Rows(), s.Cols())
	if err != nil {
		t.Fatal(err)
	}
	model, err := reaction.NewModel(reaction.DefaultRates())
	if err != nil {
		t.Fatal(err)
	}
	e, err := engine.New(s, nbr, model, 4, core.NewRNG(9))
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func stripedState(t *testing.T) *lattice.State {
	t.Helper()
	s, err := lattice.Basic(6, 4)
	if err != nil {
		t.Fatal(err)
	}
	for r := 0; r < 6; r += 2 {
		for c := 0; c < 4; c++ {
			s.Set(r, c, lattice.Melanophore)
		}
	}
	return s
}

func TestSeriesObserveAndCSV(t *testing.T) {
	s, err := lattice.RandomStart(12, 12, 0.1, core.NewRNG(1))
	if err != nil {
		t.Fatal(err)
	}
	var series Series
	series.Add(0, 0, s.Census())
	e := newEngine(t, s)
	if err := e.Run(3, 100, series.Observe); err != nil {
		t.Fatal(err)
	}
	if series.Len() != 4 {
		t.Fatalf("expected 4 samples, got %d", series.Len())
	}
	for i, smp := range series.Samples {
		if smp.Cycle != i || smp.Trials != int64(i*100) {
			t.Fatalf("sample %d has cycle %d trials %d", i, smp.Cycle, smp.Trials)
		}
		if smp.Total() != 144 {
			t.Fatalf("sample %d counts %d cells", i, smp.Total())
		}
	}

	var buf bytes.Buffer
	if err := series.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 5 {
		t.Fatalf("expected header + 4 rows, got %d records", len(records))
	}
	if !slices.Equal(records[0], csvHeader) {
		t.Fatalf("unexpected header %v", records[0])
	}
	if records[4][0] != "3" || records[4][1] != "300" {
		t.Fatalf("unexpected last row %v", records[4])
	}
}

func TestRowProfileAndContrast(t *testing.T) {
	s := stripedState(t)
	profile := RowProfile(s, lattice.Melanophore)
	if !slices.Equal(profile, []float64{1, 0, 1, 0, 1, 0}) {
		t.Fatalf("unexpected profile %v", profile)
	}
	if got := StripeContrast(profile); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("contrast %v, expected 0.5", got)
	}
	if got := StripeContrast([]float64{0.3, 0.3, 0.3}); got != 0 {
		t.Fatalf("uniform profile contrast %v, expected 0", got)
	}
	if got := StripeContrast(nil); got != 0 {
		t.Fatalf("empty profile contrast %v, expected 0", got)
	}
}

func TestPlotPopulationWritesPNG(t *testing.T) {
	var series Series
	series.Add(0, 0, lattice.Population{Empty: 10})
	series.Add(1, 10, lattice.Population{Empty: 4, Xanthophore: 5, Melanophore: 1})
	series.Add(2, 20, lattice.Population{Empty: 2, Xanthophore: 5, Melanophore: 3})

	var buf bytes.Buffer
	if err := PlotPopulation(&buf, &series); err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("plot is not a PNG: %v", err)
	}
	if err := PlotPopulation(&buf, &Series{}); err == nil {
		t.Fatal("expected an error for an empty series")
	}
}

func TestRenderProfileWritesPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderProfile(&buf, stripedState(t)); err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("profile chart is not a PNG: %v", err)
	}
}

func TestMovieFrames(t *testing.T) {
	s, err := lattice.RandomStart(10, 10, 0, core.NewRNG(2))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "run.avi")
	movie, err := NewMovie(path, s.Rows(), s.Cols(), render.Options{Scale: 2}, 5, 2)
	if err != nil {
		t.Fatal(err)
	}
	e := newEngine(t, s)
	if err := e.Run(5, 50, movie.Observe); err != nil {
		t.Fatal(err)
	}
	if movie.Frames() != 2 {
		t.Fatalf("expected frames for cycles 2 and 4, got %d", movie.Frames())
	}
	if err := movie.Close(); err != nil {
		t.Fatal(err)
	}
	if err := movie.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Fatal("movie file is empty")
	}
}
