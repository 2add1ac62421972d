package report

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"difgrow/internal/lattice"
)

// PlotPopulation renders the fraction of xanthophores, melanophores and
// empty cells per cycle as a PNG line plot.
func PlotPopulation(w io.Writer, s *Series) error {
	if s.Len() == 0 {
		return fmt.Errorf("plot population: no samples")
	}
	p := plot.New()
	p.Title.Text = "Pigment cell population"
	p.X.Label.Text = "Cycle"
	p.Y.Label.Text = "Fraction of lattice"
	p.Y.Min = 0
	p.Y.Max = 1

	series := func(c lattice.Cell) plotter.XYs {
		pts := make(plotter.XYs, s.Len())
		for i, smp := range s.Samples {
			pts[i].X = float64(smp.Cycle)
			pts[i].Y = smp.Population.Fraction(c)
		}
		return pts
	}

	err := plotutil.AddLinePoints(p,
		"Xanthophores", series(lattice.Xanthophore),
		"Melanophores", series(lattice.Melanophore),
		"Empty", series(lattice.Empty),
	)
	if err != nil {
		return fmt.Errorf("plot population: %w", err)
	}

	wt, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("plot population: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("plot population: %w", err)
	}
	return nil
}
