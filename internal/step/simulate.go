// Package step simulates the unit-step response of a transfer function and
// derives the classical performance metrics. The simulation integrates the
// controllable canonical realization with a fixed-step RK4 whose substep
// count is bounded, so degenerate systems fail fast instead of hanging.
package step

import (
	"fmt"
	"math"

	"regulab/internal/lti"
	"regulab/internal/poles"
	"regulab/internal/ss"
)

// Simulate produces the unit-step response of sys. The horizon is derived
// from the slowest pole for strictly stable systems; otherwise a fixed
// default horizon is used and the metrics are tagged undefined rather than
// reporting misleading numbers.
func Simulate(sys lti.TransferFunction, cfg Config) (*Response, error) {
	cfg = withDefaults(cfg)
	if cfg.Samples < MinSamples {
		return nil, fmt.Errorf("%w: need at least %d samples, got %d", lti.ErrInvalidSystem, MinSamples, cfg.Samples)
	}

	model, err := ss.FromTransferFunction(sys)
	if err != nil {
		return nil, err
	}
	ps, err := poles.Poles(sys, cfg.Epsilon)
	if err != nil {
		return nil, err
	}

	stable := len(ps) > 0
	slowest := math.Inf(1)
	fastest := 0.0
	for _, p := range ps {
		if real(p) >= -cfg.Epsilon {
			stable = false
		}
		if re := math.Abs(real(p)); re < slowest {
			slowest = re
		}
		if m := math.Hypot(real(p), imag(p)); m > fastest {
			fastest = m
		}
	}
	if len(ps) == 0 {
		// Pure gain: flat response over the default horizon.
		stable = true
	}

	horizon := cfg.DefaultHorizon
	if stable && len(ps) > 0 {
		horizon = cfg.HorizonMultiplier / slowest
		if horizon > cfg.MaxHorizon {
			horizon = cfg.MaxHorizon
		}
	}

	resp := &Response{
		Samples: make([]Sample, 0, cfg.Samples),
		Horizon: horizon,
		Stable:  stable,
	}

	dt := horizon / float64(cfg.Samples-1)
	substeps := 1
	if fastest > 0 {
		// Resolve the fastest mode to a tenth of its time scale.
		substeps = int(math.Ceil(dt * fastest / 0.1))
		if substeps < 1 {
			substeps = 1
		}
		if substeps > cfg.MaxSubsteps {
			return nil, fmt.Errorf("%w: stiffness needs %d substeps per sample", lti.ErrNumericInstability, substeps)
		}
	}

	x := make([]float64, model.Order())
	integ := newRK4(model.Order())
	const u = 1.0

	resp.Samples = append(resp.Samples, Sample{T: 0, Y: model.Output(x, u)})
	h := dt / float64(substeps)
	for i := 1; i < cfg.Samples; i++ {
		for k := 0; k < substeps; k++ {
			integ.step(model, x, u, h)
		}
		y := model.Output(x, u)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			if stable {
				return nil, fmt.Errorf("%w: state diverged at t=%.4f", lti.ErrNumericInstability, float64(i)*dt)
			}
			// An unstable system is allowed to overflow; keep what we have.
			break
		}
		resp.Samples = append(resp.Samples, Sample{T: float64(i) * dt, Y: y})
	}

	resp.Metrics = computeMetrics(sys, resp.Samples, stable, cfg)
	return resp, nil
}

func withDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Samples == 0 {
		cfg.Samples = def.Samples
	}
	if cfg.HorizonMultiplier == 0 {
		cfg.HorizonMultiplier = def.HorizonMultiplier
	}
	if cfg.DefaultHorizon == 0 {
		cfg.DefaultHorizon = def.DefaultHorizon
	}
	if cfg.MaxHorizon == 0 {
		cfg.MaxHorizon = def.MaxHorizon
	}
	if cfg.SettleBand == 0 {
		cfg.SettleBand = def.SettleBand
	}
	if cfg.Epsilon == 0 {
		cfg.Epsilon = def.Epsilon
	}
	if cfg.MaxSubsteps == 0 {
		cfg.MaxSubsteps = def.MaxSubsteps
	}
	return cfg
}
