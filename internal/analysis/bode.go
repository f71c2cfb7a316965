// Package analysis computes the frequency response of a transfer function.
package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"regulab/internal/lti"
)

// FrequencyPoint is one sample of the frequency response at omega rad/s.
type FrequencyPoint struct {
	Omega       float64
	MagnitudeDB float64
	PhaseDeg    float64
}

// Bode evaluates G(jw) on a log-spaced frequency grid. Phase is unwrapped
// so adjacent points never jump by more than 180 degrees.
func Bode(sys lti.TransferFunction, wmin, wmax float64, points int) ([]FrequencyPoint, error) {
	if wmin <= 0 || wmax <= wmin {
		return nil, fmt.Errorf("analysis: frequency range [%g, %g] is not increasing and positive", wmin, wmax)
	}
	if points < 2 {
		return nil, fmt.Errorf("analysis: need at least 2 points, got %d", points)
	}

	num, den := sys.Num(), sys.Den()
	logMin, logMax := math.Log10(wmin), math.Log10(wmax)
	step := (logMax - logMin) / float64(points-1)

	out := make([]FrequencyPoint, 0, points)
	prevPhase := math.NaN()
	for i := 0; i < points; i++ {
		w := math.Pow(10, logMin+float64(i)*step)
		s := complex(0, w)
		g := hornerComplex(num, s) / hornerComplex(den, s)

		phase := cmplx.Phase(g) * 180 / math.Pi
		if !math.IsNaN(prevPhase) {
			for phase-prevPhase > 180 {
				phase -= 360
			}
			for prevPhase-phase > 180 {
				phase += 360
			}
		}
		prevPhase = phase

		out = append(out, FrequencyPoint{
			Omega:       w,
			MagnitudeDB: 20 * math.Log10(cmplx.Abs(g)),
			PhaseDeg:    phase,
		})
	}
	return out, nil
}

func hornerComplex(coeffs []float64, s complex128) complex128 {
	var acc complex128
	for _, c := range coeffs {
		acc = acc*s + complex(c, 0)
	}
	return acc
}
