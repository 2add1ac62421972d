//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"difgrow/internal/app"
	"difgrow/internal/core"
	"difgrow/internal/sims/pigment"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	sim, err := buildSim(cfg)
	if err != nil {
		log.Fatalf("viewer: %v", err)
	}
	if cfg.Seed != 0 {
		if err := sim.Reset(cfg.Seed); err != nil {
			log.Fatalf("viewer: reset: %v", err)
		}
	}

	game := app.New(sim, cfg.Scale, cfg.Seed, cfg.HUDWidth)
	size := sim.Size()

	ebiten.SetWindowTitle("difgrow - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

func buildSim(cfg *app.Config) (core.Sim, error) {
	if cfg.File != "" {
		if cfg.Sim != "pigment" {
			return nil, errors.New("-config is only supported for the pigment simulation")
		}
		pc, err := pigment.LoadFile(cfg.File)
		if err != nil {
			return nil, err
		}
		if err := pc.Apply(cfg.Set); err != nil {
			return nil, err
		}
		return pigment.New(pc)
	}
	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		return nil, errors.New("unknown sim " + cfg.Sim)
	}
	return factory(cfg.Set)
}
