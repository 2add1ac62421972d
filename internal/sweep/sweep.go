// Package sweep runs independent pigment simulations over a grid of
// long-range activation strengths and distances.
package sweep

import (
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"difgrow/internal/lattice"
	"difgrow/internal/report"
	"difgrow/internal/sims/pigment"
)

// Point is one sweep candidate.
type Point struct {
	Lx   float64
	H    float64
	Seed int64
}

func (p Point) String() string {
	return fmt.Sprintf("lx=%g h=%g seed=%d", p.Lx, p.H, p.Seed)
}

// Result summarises the final lattice of one candidate run.
type Result struct {
	Point       Point
	Melanophore float64
	Xanthophore float64
	Contrast    float64
	Elapsed     time.Duration
	Err         error
}

// Grid returns the cartesian product of lx, h and seeds in that nesting
// order.
func Grid(lx, h []float64, seeds []int64) []Point {
	points := make([]Point, 0, len(lx)*len(h)*len(seeds))
	for _, l := range lx {
		for _, d := range h {
			for _, s := range seeds {
				points = append(points, Point{Lx: l, H: d, Seed: s})
			}
		}
	}
	return points
}

// Run evaluates every point on top of base using a pool of workers. Each run
// owns its simulation and random stream, so results do not depend on the
// worker count. Results are returned in the order of points.
func Run(base pigment.Config, points []Point, workers int, progress func(Result)) []Result {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	type job struct {
		idx int
		p   Point
	}
	type done struct {
		idx int
		res Result
	}

	jobs := make(chan job)
	results := make(chan done)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- done{idx: j.idx, res: Evaluate(base, j.p)}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for i, p := range points {
			jobs <- job{idx: i, p: p}
		}
		close(jobs)
	}()

	out := make([]Result, len(points))
	for d := range results {
		out[d.idx] = d.res
		if progress != nil {
			progress(d.res)
		}
	}
	return out
}

// Evaluate runs a single candidate to completion.
func Evaluate(base pigment.Config, p Point) Result {
	start := time.Now()
	cfg := base
	cfg.Rates.Lx = p.Lx
	cfg.H = p.H
	cfg.Seed = p.Seed

	res := Result{Point: p}
	sim, err := pigment.New(cfg)
	if err != nil {
		res.Err = err
		return res
	}
	if err := sim.Run(); err != nil {
		res.Err = err
		return res
	}
	st := sim.State()
	pop := st.Census()
	res.Melanophore = pop.Fraction(lattice.Melanophore)
	res.Xanthophore = pop.Fraction(lattice.Xanthophore)
	res.Contrast = report.StripeContrast(report.RowProfile(st, lattice.Melanophore))
	res.Elapsed = time.Since(start)
	return res
}

// ByContrast orders results by descending stripe contrast; failed runs sort
// last.
func ByContrast(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Contrast > results[j].Contrast
	})
}

// ParseFloats parses a comma-separated list such as "1,2.5,4".
func ParseFloats(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", part, err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty list %q", s)
	}
	return out, nil
}
