package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"difgrow/internal/sims/pigment"
	"difgrow/internal/sweep"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	lxList := flag.String("lx", "1,2.5,4", "comma-separated long-range activation strengths")
	hList := flag.String("h", "5,10,15", "comma-separated activation distances")
	seeds := flag.Int("seeds", 1, "seeds per parameter pair, starting at -seed")
	seed := flag.Int64("seed", 1337, "first seed")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	top := flag.Int("top", 5, "number of results to print")
	configPath := flag.String("config", "", "TOML base configuration")
	csvPath := flag.String("csv", "", "write every result to this CSV file")
	var overrides kvList
	flag.Var(&overrides, "set", "base parameter override in key=value form (repeatable)")
	flag.Parse()

	base := pigment.DefaultConfig()
	base.Rows, base.Cols = 64, 64
	base.PerCycle, base.NumCycles = 400_000, 20
	if *configPath != "" {
		cfg, err := pigment.LoadFile(*configPath)
		if err != nil {
			log.Fatalf("rate-sweep: %v", err)
		}
		base = cfg
	}
	for _, kv := range overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			log.Fatalf("rate-sweep: override %q must be key=value", kv)
		}
		if err := base.Set(strings.TrimSpace(key), value); err != nil {
			log.Fatalf("rate-sweep: %v", err)
		}
	}

	lx, err := sweep.ParseFloats(*lxList)
	if err != nil {
		log.Fatalf("rate-sweep: -lx: %v", err)
	}
	hs, err := sweep.ParseFloats(*hList)
	if err != nil {
		log.Fatalf("rate-sweep: -h: %v", err)
	}
	if *seeds <= 0 {
		log.Fatalf("rate-sweep: -seeds must be positive, got %d", *seeds)
	}
	seedList := make([]int64, *seeds)
	for i := range seedList {
		seedList[i] = *seed + int64(i)
	}
	points := sweep.Grid(lx, hs, seedList)

	fmt.Printf("Sweeping %d parameter sets (%d workers, %dx%d lattice, %d trials each)\n",
		len(points), *workers, base.Rows, base.Cols, base.Trials())

	start := time.Now()
	completed := 0
	results := sweep.Run(base, points, *workers, func(res sweep.Result) {
		completed++
		if res.Err != nil {
			log.Printf("[%d/%d] %s failed: %v", completed, len(points), res.Point, res.Err)
			return
		}
		log.Printf("[%d/%d] %s contrast=%.3f melanophores=%.3f (%s)",
			completed, len(points), res.Point, res.Contrast, res.Melanophore, res.Elapsed.Round(time.Millisecond))
	})

	if *csvPath != "" {
		if err := writeCSV(*csvPath, results); err != nil {
			log.Fatalf("rate-sweep: %v", err)
		}
	}

	sweep.ByContrast(results)
	fmt.Printf("\nTop %d results (elapsed %s):\n", *top, time.Since(start).Round(time.Millisecond))
	for i := 0; i < len(results) && i < *top; i++ {
		res := results[i]
		if res.Err != nil {
			break
		}
		fmt.Printf("%2d) contrast=%.3f melanophores=%.3f xanthophores=%.3f %s\n",
			i+1, res.Contrast, res.Melanophore, res.Xanthophore, res.Point)
	}
}

func writeCSV(path string, results []sweep.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"lx", "h", "seed", "melanophore", "xanthophore", "contrast", "error"}); err != nil {
		return err
	}
	for _, res := range results {
		errText := ""
		if res.Err != nil {
			errText = res.Err.Error()
		}
		row := []string{
			strconv.FormatFloat(res.Point.Lx, 'g', -1, 64),
			strconv.FormatFloat(res.Point.H, 'g', -1, 64),
			strconv.FormatInt(res.Point.Seed, 10),
			strconv.FormatFloat(res.Melanophore, 'f', 6, 64),
			strconv.FormatFloat(res.Xanthophore, 'f', 6, 64),
			strconv.FormatFloat(res.Contrast, 'f', 6, 64),
			errText,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
