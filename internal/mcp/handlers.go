package mcp

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Theovanstratum1953/montecarlo/internal/input"
	"github.com/Theovanstratum1953/montecarlo/internal/report"
	"github.com/Theovanstratum1953/montecarlo/internal/simulation"
)

func (s *Server) handleDeliveryForecast(args map[string]interface{}) (interface{}, error) {
	minItems, err := requireInt(args, "min_items")
	if err != nil {
		return nil, err
	}
	maxItems, err := requireInt(args, "max_items")
	if err != nil {
		return nil, err
	}
	counts, err := intSlice(args["throughput"])
	if err != nil {
		return nil, fmt.Errorf("throughput: %w", err)
	}

	history, err := simulation.NewHistory(counts)
	if err != nil {
		return nil, err
	}

	cfg := s.simulationConfig(args)
	if levels, ok := args["levels"]; ok {
		cfg.ForecastLevels, err = floatSlice(levels)
		if err != nil {
			return nil, fmt.Errorf("levels: %w", err)
		}
	}

	engine := simulation.NewEngine(history, cfg)
	res, err := engine.RunDeliveryForecast(simulation.ScopeRange{Min: minItems, Max: maxItems})
	if err != nil {
		return nil, err
	}

	log.Info().Int("trials", res.Trials).Str("status", string(res.Status)).Msg("Delivery forecast completed")
	return map[string]interface{}{
		"result": res,
		"report": report.ForecastMarkdown(res, counts),
	}, nil
}

func (s *Server) handleRiskHorizon(args map[string]interface{}) (interface{}, error) {
	totalScope, err := requireInt(args, "total_scope")
	if err != nil {
		return nil, err
	}
	pulse, err := intSlice(args["throughput"])
	if err != nil {
		return nil, fmt.Errorf("throughput: %w", err)
	}
	var actuals []int
	if raw, ok := args["actuals"]; ok {
		actuals, err = intSlice(raw)
		if err != nil {
			return nil, fmt.Errorf("actuals: %w", err)
		}
	}

	pool := input.CombinePool(pulse, actuals)
	history, err := simulation.NewHistory(pool)
	if err != nil {
		return nil, err
	}

	cfg := s.simulationConfig(args)
	if _, ok := args["horizon"]; !ok {
		cfg.MaxHorizon = s.cfg.HorizonWindow
	}
	if levels, ok := args["cone_levels"]; ok {
		cfg.ConeLevels, err = floatSlice(levels)
		if err != nil {
			return nil, fmt.Errorf("cone_levels: %w", err)
		}
	}

	completed, elapsed := input.SumActuals(actuals)
	snap := simulation.ProgressSnapshot{
		TotalScope:     totalScope,
		Completed:      completed,
		PeriodsElapsed: elapsed,
	}

	engine := simulation.NewEngine(history, cfg)
	res, err := engine.RunRiskHorizon(snap)
	if err != nil {
		return nil, err
	}

	log.Info().Int("trials", res.Trials).Str("status", string(res.Status)).Msg("Risk horizon completed")
	return map[string]interface{}{
		"result": res,
		"report": report.HorizonMarkdown(res, pool),
	}, nil
}

func (s *Server) simulationConfig(args map[string]interface{}) simulation.Config {
	cfg := simulation.DefaultConfig()
	cfg.Trials = s.cfg.Trials
	cfg.MaxHorizon = s.cfg.MaxHorizon
	if v, ok := asInt(args["trials"]); ok {
		cfg.Trials = v
	}
	if v, ok := asInt(args["horizon"]); ok {
		cfg.MaxHorizon = v
	}
	return cfg
}

// JSON numbers arrive as float64; tool arguments are integers semantically.

func asInt(v interface{}) (int, bool) {
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func requireInt(args map[string]interface{}, key string) (int, error) {
	v, ok := asInt(args[key])
	if !ok {
		return 0, fmt.Errorf("missing or non-integer argument %q", key)
	}
	return v, nil
}

func intSlice(v interface{}) ([]int, error) {
	raw, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected an array of integers")
	}
	out := make([]int, 0, len(raw))
	for _, item := range raw {
		n, ok := asInt(item)
		if !ok {
			return nil, fmt.Errorf("expected an array of integers, found %v", item)
		}
		out = append(out, n)
	}
	return out, nil
}

func floatSlice(v interface{}) ([]float64, error) {
	raw, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected an array of numbers")
	}
	out := make([]float64, 0, len(raw))
	for _, item := range raw {
		f, ok := item.(float64)
		if !ok {
			return nil, fmt.Errorf("expected an array of numbers, found %v", item)
		}
		out = append(out, f)
	}
	return out, nil
}
