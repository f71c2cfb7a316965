package step

import (
	"math"

	"regulab/internal/lti"
)

// computeMetrics derives the performance figures from the sample sequence.
// For a non-strictly-stable system every metric is undefined: the final
// value theorem does not apply and transient numbers would mislead.
func computeMetrics(sys lti.TransferFunction, samples []Sample, stable bool, cfg Config) Metrics {
	if !stable {
		return Metrics{
			SteadyState:  undefined(ErrUnstable),
			Overshoot:    undefined(ErrUnstable),
			SettlingTime: undefined(ErrUnstable),
			RiseTime:     undefined(ErrUnstable),
			PeakTime:     undefined(ErrUnstable),
		}
	}

	// Final value theorem: lim s->0 of s*G(s)*(1/s) = G(0).
	steady := sys.Eval(0)
	m := Metrics{SteadyState: defined(steady)}

	peakIdx := 0
	for i, s := range samples {
		if math.Abs(s.Y) > math.Abs(samples[peakIdx].Y) {
			peakIdx = i
		}
	}
	m.PeakTime = defined(samples[peakIdx].T)

	if steady == 0 {
		m.Overshoot = undefined(lti.ErrDivisionByZero)
		m.SettlingTime = undefined(lti.ErrDivisionByZero)
		m.RiseTime = undefined(lti.ErrDivisionByZero)
		return m
	}

	m.Overshoot = defined((samples[peakIdx].Y - steady) / steady * 100)
	m.SettlingTime = settlingTime(samples, steady, cfg.SettleBand)
	m.RiseTime = riseTime(samples, steady)
	return m
}

// settlingTime is the earliest time after which every later sample stays
// within the band around steady state.
func settlingTime(samples []Sample, steady, band float64) Measure {
	tol := band * math.Abs(steady)
	lastViolation := -1
	for i, s := range samples {
		if math.Abs(s.Y-steady) > tol {
			lastViolation = i
		}
	}
	if lastViolation == len(samples)-1 {
		return undefined(ErrNotSettled)
	}
	return defined(samples[lastViolation+1].T)
}

// riseTime is the span between the first crossings of 10% and 90% of
// steady state.
func riseTime(samples []Sample, steady float64) Measure {
	t10 := math.NaN()
	t90 := math.NaN()
	for _, s := range samples {
		frac := s.Y / steady
		if math.IsNaN(t10) && frac >= 0.1 {
			t10 = s.T
		}
		if frac >= 0.9 {
			t90 = s.T
			break
		}
	}
	if math.IsNaN(t10) || math.IsNaN(t90) {
		return undefined(ErrNoCrossing)
	}
	return defined(t90 - t10)
}
