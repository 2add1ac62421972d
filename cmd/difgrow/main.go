package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"difgrow/internal/core"
	"difgrow/internal/engine"
	"difgrow/internal/lattice"
	"difgrow/internal/render"
	"difgrow/internal/report"
	"difgrow/internal/sims/pigment"
)

type outputs struct {
	png        string
	scale      int
	irid       float64
	csv        string
	plot       string
	profile    string
	movie      string
	movieEvery int
	fps        int
	quiet      bool
}

func main() {
	cfg := pigment.DefaultConfig()
	cfg.Bind(flag.CommandLine)
	configPath := flag.String("config", "", "TOML configuration file; explicit flags override it")
	var out outputs
	flag.StringVar(&out.png, "png", "", "write the final lattice as PNG")
	flag.IntVar(&out.scale, "scale", 4, "pixels per cell for -png and -movie")
	flag.Float64Var(&out.irid, "irid", 0, "iridophore tint weight in (0, 1] for images")
	flag.StringVar(&out.csv, "csv", "", "write the per-cycle population as CSV")
	flag.StringVar(&out.plot, "plot", "", "write a population plot as PNG")
	flag.StringVar(&out.profile, "profile", "", "write the final row profile chart as PNG")
	flag.StringVar(&out.movie, "movie", "", "write an MJPEG AVI of the run")
	flag.IntVar(&out.movieEvery, "movie_every", 1, "cycles between movie frames")
	flag.IntVar(&out.fps, "fps", 10, "movie frames per second")
	flag.BoolVar(&out.quiet, "quiet", false, "suppress per-cycle progress logging")
	flag.Parse()

	if *configPath != "" {
		loaded, err := pigment.LoadFile(*configPath)
		if err != nil {
			log.Fatalf("difgrow: %v", err)
		}
		flag.Visit(func(f *flag.Flag) {
			if err := loaded.Set(f.Name, f.Value.String()); err != nil && !errors.Is(err, pigment.ErrUnknownKey) {
				log.Fatalf("difgrow: -%s: %v", f.Name, err)
			}
		})
		cfg = loaded
	}

	start := time.Now()
	if err := run(cfg, out); err != nil {
		if engine.IsInvariant(err) {
			log.Fatalf("difgrow: internal error: %v", err)
		}
		log.Fatalf("difgrow: %v", err)
	}
	fmt.Printf("elapsed %s\n", time.Since(start).Round(time.Millisecond))
}

func run(cfg pigment.Config, out outputs) error {
	sim, err := pigment.New(cfg)
	if err != nil {
		return err
	}
	if !out.quiet {
		log.Printf("%dx%d lattice, h=%g, %d cycles of %d trials, init=%s, seed=%d",
			cfg.Rows, cfg.Cols, cfg.H, cfg.NumCycles, cfg.PerCycle, cfg.Init.Policy, cfg.Seed)
	}

	var observers []engine.CycleFunc
	var series report.Series
	if out.csv != "" || out.plot != "" {
		series.Add(0, 0, sim.State().Census())
		observers = append(observers, series.Observe)
	}

	opt := render.Options{Scale: out.scale, Iridophores: out.irid}
	var movie *report.Movie
	if out.movie != "" {
		movie, err = report.NewMovie(out.movie, cfg.Rows, cfg.Cols, opt, out.fps, out.movieEvery)
		if err != nil {
			return err
		}
		defer movie.Close()
		if err := movie.AddFrame(sim.State()); err != nil {
			return err
		}
		observers = append(observers, movie.Observe)
	}

	if !out.quiet {
		tp := core.NewThroughput()
		observers = append(observers, func(cycle int, e *engine.Engine) error {
			rate := tp.Mark(cfg.PerCycle)
			pop := e.State().Census()
			log.Printf("cycle %d/%d: X=%.3f M=%.3f (%.0f trials/s)",
				cycle, cfg.NumCycles, pop.Fraction(lattice.Xanthophore), pop.Fraction(lattice.Melanophore), rate)
			return nil
		})
	}

	if err := sim.Run(observers...); err != nil {
		return err
	}

	if movie != nil {
		if err := movie.Close(); err != nil {
			return fmt.Errorf("close movie: %w", err)
		}
		if !out.quiet {
			log.Printf("wrote %d frames to %s", movie.Frames(), out.movie)
		}
	}
	if out.png != "" {
		if err := writeFile(out.png, func(f *os.File) error {
			return render.WritePNG(f, render.Image(sim.State(), opt))
		}); err != nil {
			return err
		}
	}
	if out.csv != "" {
		if err := writeFile(out.csv, func(f *os.File) error { return series.WriteCSV(f) }); err != nil {
			return err
		}
	}
	if out.plot != "" {
		if err := writeFile(out.plot, func(f *os.File) error { return report.PlotPopulation(f, &series) }); err != nil {
			return err
		}
	}
	if out.profile != "" {
		if err := writeFile(out.profile, func(f *os.File) error { return report.RenderProfile(f, sim.State()) }); err != nil {
			return err
		}
	}
	if !out.quiet {
		contrast := report.StripeContrast(report.RowProfile(sim.State(), lattice.Melanophore))
		log.Printf("stripe contrast %.3f", contrast)
	}
	return nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
