package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"difgrow/internal/engine"
	"difgrow/internal/lattice"
)

// Sample is the population of the lattice after a given cycle.
type Sample struct {
	Cycle  int
	Trials int64
	lattice.Population
}

// Series accumulates one Sample per observed cycle.
type Series struct {
	Samples []Sample
}

// Observe records the population after cycle. Its signature matches
// engine.CycleFunc.
func (s *Series) Observe(cycle int, e *engine.Engine) error {
	s.Samples = append(s.Samples, Sample{
		Cycle:      cycle,
		Trials:     e.Stats().Trials,
		Population: e.State().Census(),
	})
	return nil
}

// Add appends a sample taken outside an engine run, e.g. the initial state.
func (s *Series) Add(cycle int, trials int64, pop lattice.Population) {
	s.Samples = append(s.Samples, Sample{Cycle: cycle, Trials: trials, Population: pop})
}

// Len returns the number of samples.
func (s *Series) Len() int { return len(s.Samples) }

var csvHeader = []string{"cycle", "trials", "empty", "xanthophore", "melanophore", "iridophore"}

// WriteCSV writes the series with a header row.
func (s *Series) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, smp := range s.Samples {
		row := []string{
			strconv.Itoa(smp.Cycle),
			strconv.FormatInt(smp.Trials, 10),
			strconv.Itoa(smp.Empty),
			strconv.Itoa(smp.Xanthophore),
			strconv.Itoa(smp.Melanophore),
			strconv.Itoa(smp.Iridophore),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for cycle %d: %w", smp.Cycle, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
