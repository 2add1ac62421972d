package report

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/stat"

	"difgrow/internal/lattice"
)

// RowProfile returns, per lattice row, the fraction of cells holding c.
// Stripes parallel to the rows show up as oscillations of the profile.
func RowProfile(s *lattice.State, c lattice.Cell) []float64 {
	rows, cols := s.Rows(), s.Cols()
	profile := make([]float64, rows)
	cells := s.Cells()
	for r := 0; r < rows; r++ {
		n := 0
		for _, v := range cells[r*cols : (r+1)*cols] {
			if lattice.Cell(v) == c {
				n++
			}
		}
		profile[r] = float64(n) / float64(cols)
	}
	return profile
}

// StripeContrast is the standard deviation of a row profile. A uniform
// lattice scores 0; sharp full-width stripes approach 0.5.
func StripeContrast(profile []float64) float64 {
	if len(profile) < 2 {
		return 0
	}
	return stat.PopStdDev(profile, nil)
}

// RenderProfile draws the melanophore and xanthophore row profiles as a PNG
// chart.
func RenderProfile(w io.Writer, s *lattice.State) error {
	rows := make([]float64, s.Rows())
	for i := range rows {
		rows[i] = float64(i)
	}
	graph := chart.Chart{
		Title:  "Row profile",
		Width:  800,
		Height: 300,
		XAxis: chart.XAxis{
			Name:  "Row",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "Fraction",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Melanophores",
				XValues: rows,
				YValues: RowProfile(s, lattice.Melanophore),
				Style:   chart.Style{StrokeColor: drawing.ColorBlack, StrokeWidth: 2.0},
			},
			chart.ContinuousSeries{
				Name:    "Xanthophores",
				XValues: rows,
				YValues: RowProfile(s, lattice.Xanthophore),
				Style:   chart.Style{StrokeColor: drawing.Color{R: 230, G: 180, B: 0, A: 255}, StrokeWidth: 2.0},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render row profile: %w", err)
	}
	return nil
}
