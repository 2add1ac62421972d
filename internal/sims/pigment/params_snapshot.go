package pigment

import (
	"strconv"

	"difgrow/internal/core"
	"difgrow/internal/lattice"
	"difgrow/internal/reaction"
)

// Parameters describes the configuration and derived event probabilities.
func (s *Simulation) Parameters() core.ParameterSnapshot {
	cfg := s.cfg
	probs := s.model.Probabilities()

	rates := make([]core.Parameter, 0, reaction.NumEvents)
	odds := make([]core.Parameter, 0, reaction.NumEvents)
	for _, e := range reaction.Events() {
		rates = append(rates, floatParam(e.String(), e.Label(), cfg.Rates.Rate(e)))
		odds = append(odds, floatParam("p_"+e.String(), "P("+e.String()+")", probs.Of(e)))
	}

	initParams := []core.Parameter{stringParam("init", "Policy", cfg.Init.Policy)}
	switch cfg.Init.Policy {
	case lattice.PolicyBand:
		initParams = append(initParams, intParam("bandwidth", "Band height", cfg.Init.Bandwidth))
	case lattice.PolicyRandom:
		initParams = append(initParams, floatParam("irid_ratio", "Iridophore ratio", cfg.Init.IridRatio))
	}

	groups := []core.ParameterGroup{
		{
			Name: "Lattice",
			Params: []core.Parameter{
				intParam("rows", "Rows", cfg.Rows),
				intParam("cols", "Columns", cfg.Cols),
				floatParam("h", "Activation distance", cfg.H),
			},
		},
		{
			Name: "Run",
			Params: []core.Parameter{
				intParam("per_cycle", "Trials per cycle", cfg.PerCycle),
				intParam("num_cycles", "Cycles", cfg.NumCycles),
				int64Param("seed", "Seed", cfg.Seed),
				intParam("cycle", "Completed cycles", s.cycle),
			},
		},
		{Name: "Initial Condition", Params: initParams},
		{Name: "Rates", Params: rates},
		{Name: "Event Probabilities", Params: odds, Summary: "rate / sum of rates"},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
