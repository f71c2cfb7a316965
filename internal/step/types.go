package step

import (
	"errors"
	"fmt"
)

var (
	// ErrUnstable marks metrics of a system with a pole on or right of the
	// imaginary axis; overshoot/settling numbers would be misleading there.
	ErrUnstable = errors.New("step: system is not strictly stable")

	// ErrNotSettled marks a settling time that never occurs in the horizon.
	ErrNotSettled = errors.New("step: response does not settle within horizon")

	// ErrNoCrossing marks a rise time whose 90% threshold is never crossed.
	ErrNoCrossing = errors.New("step: response does not cross rise threshold")
)

// Sample is one point of the simulated response.
type Sample struct {
	T float64 `json:"t"`
	Y float64 `json:"y"`
}

// Measure is a metric value with an explicit undefined marker. Err, when
// set, explains why the value is undefined; a sentinel number is never used.
type Measure struct {
	Value   float64
	Defined bool
	Err     error
}

func defined(v float64) Measure   { return Measure{Value: v, Defined: true} }
func undefined(err error) Measure { return Measure{Err: err} }

func (m Measure) String() string {
	if !m.Defined {
		if m.Err != nil {
			return "undefined (" + m.Err.Error() + ")"
		}
		return "undefined"
	}
	return fmt.Sprintf("%.4g", m.Value)
}

// Metrics are the step-response performance figures.
type Metrics struct {
	SteadyState  Measure
	Overshoot    Measure // percent
	SettlingTime Measure
	RiseTime     Measure
	PeakTime     Measure
}

// Response is the simulated unit-step output with derived metrics.
type Response struct {
	Samples []Sample
	Horizon float64
	Stable  bool
	Metrics Metrics
}

// Config bounds the simulation. All fields have working defaults.
type Config struct {
	Samples           int     // uniform sample count, at least MinSamples
	HorizonMultiplier float64 // horizon in slowest time constants
	DefaultHorizon    float64 // horizon for non-strictly-stable systems
	MaxHorizon        float64
	SettleBand        float64 // fraction of steady state, classically 0.02
	Epsilon           float64 // pole tolerance
	MaxSubsteps       int     // integrator substeps per sample, stiffness bound
}

const (
	MinSamples               = 200
	DefaultSamples           = 500
	DefaultHorizonMultiplier = 9.0
	DefaultHorizon           = 10.0
	DefaultMaxHorizon        = 1000.0
	DefaultSettleBand        = 0.02
	DefaultMaxSubsteps       = 10000
)

func DefaultConfig() Config {
	return Config{
		Samples:           DefaultSamples,
		HorizonMultiplier: DefaultHorizonMultiplier,
		DefaultHorizon:    DefaultHorizon,
		MaxHorizon:        DefaultMaxHorizon,
		SettleBand:        DefaultSettleBand,
		Epsilon:           1e-9,
		MaxSubsteps:       DefaultMaxSubsteps,
	}
}
