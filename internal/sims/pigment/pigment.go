package pigment

import (
	"fmt"
	"image/color"

	"difgrow/internal/core"
	"difgrow/internal/engine"
	"difgrow/internal/lattice"
	"difgrow/internal/reaction"
	"difgrow/internal/render"
)

// Simulation wires a validated Config into the lattice, the reaction model
// and the Monte Carlo engine. Independent Simulations share no state.
type Simulation struct {
	cfg Config

	nbr    *lattice.Neighbors
	model  *reaction.Model
	state  *lattice.State
	engine *engine.Engine

	cycle int
}

// New validates cfg and builds a simulation seeded with cfg.Seed. No trial
// runs before every configuration check has passed.
func New(cfg Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	nbr, err := lattice.BuildNeighbors(cfg.Rows, cfg.Cols)
	if err != nil {
		return nil, err
	}
	model, err := reaction.NewModel(cfg.Rates)
	if err != nil {
		return nil, err
	}
	s := &Simulation{cfg: cfg, nbr: nbr, model: model}
	if err := s.Reset(0); err != nil {
		return nil, err
	}
	return s, nil
}

// Name returns the simulation identifier.
func (s *Simulation) Name() string { return "pigment" }

// Size reports the grid dimensions.
func (s *Simulation) Size() core.Size { return core.Size{W: s.cfg.Cols, H: s.cfg.Rows} }

// Cells exposes the current pigment grid.
func (s *Simulation) Cells() []uint8 { return s.state.Cells() }

// Palette exposes the colours used to render each pigment state.
func (s *Simulation) Palette() []color.RGBA { return render.Palette() }

// Config returns the configuration the simulation was built from.
func (s *Simulation) Config() Config { return s.cfg }

// State exposes the lattice state.
func (s *Simulation) State() *lattice.State { return s.state }

// Engine exposes the Monte Carlo engine driving the current state.
func (s *Simulation) Engine() *engine.Engine { return s.engine }

// Model exposes the reaction model.
func (s *Simulation) Model() *reaction.Model { return s.model }

// Cycle reports how many cycles have completed since the last Reset.
func (s *Simulation) Cycle() int { return s.cycle }

// Status summarises progress and the current census for display.
func (s *Simulation) Status() []string {
	pop := s.state.Census()
	return []string{
		fmt.Sprintf("cycle %d/%d", s.cycle, s.cfg.NumCycles),
		fmt.Sprintf("trials %d", s.engine.Stats().Trials),
		fmt.Sprintf("xanthophores %5.1f%%", 100*pop.Fraction(lattice.Xanthophore)),
		fmt.Sprintf("melanophores %5.1f%%", 100*pop.Fraction(lattice.Melanophore)),
		fmt.Sprintf("empty        %5.1f%%", 100*pop.Fraction(lattice.Empty)),
		fmt.Sprintf("iridophores  %d", pop.Iridophore),
	}
}

// Reset regenerates the initial condition and restarts the random stream.
// A zero seed falls back to the configured seed.
func (s *Simulation) Reset(seed int64) error {
	effective := seed
	if effective == 0 {
		effective = s.cfg.Seed
	}
	gen, err := lattice.Policy(s.cfg.Init.Policy)
	if err != nil {
		return err
	}
	rng := core.NewRNG(effective)
	params := lattice.InitParams{Bandwidth: s.cfg.Init.Bandwidth, IridRatio: s.cfg.Init.IridRatio}
	state, err := gen(s.cfg.Rows, s.cfg.Cols, params, rng)
	if err != nil {
		return fmt.Errorf("initial condition %q: %w", s.cfg.Init.Policy, err)
	}
	eng, err := engine.New(state, s.nbr, s.model, s.cfg.H, rng)
	if err != nil {
		return err
	}
	s.state = state
	s.engine = eng
	s.cycle = 0
	return nil
}

// Step advances the simulation by one cycle of PerCycle trials.
func (s *Simulation) Step() error {
	if err := s.engine.RunCycle(s.cfg.PerCycle); err != nil {
		return fmt.Errorf("cycle %d: %w", s.cycle+1, err)
	}
	s.cycle++
	return nil
}

// Run performs the full trial budget, NumCycles cycles of PerCycle trials,
// calling the observers after every cycle.
func (s *Simulation) Run(observers ...engine.CycleFunc) error {
	track := func(int, *engine.Engine) error {
		s.cycle++
		return nil
	}
	return s.engine.Run(s.cfg.NumCycles, s.cfg.PerCycle, append([]engine.CycleFunc{track}, observers...)...)
}

func init() {
	core.Register("pigment", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		return New(c)
	})
}
