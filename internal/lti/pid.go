package lti

import (
	"fmt"
	"math"
)

// WarnNegativeGains is returned by PID when at least one gain is negative.
// Negative gains are mathematically valid (deliberate open-loop instability
// analysis uses them) so they warn instead of failing.
const WarnNegativeGains = "negative gain: closed loop may be destabilized"

// PID builds the ideal controller C(s) = (Kd*s^2 + Kp*s + Ki) / s.
// Non-finite gains fail with ErrInvalidGains. The numerator keeps its
// leading zero when Kd is zero so gain positions stay recognizable.
func PID(kp, ki, kd float64) (TransferFunction, string, error) {
	for _, g := range []float64{kp, ki, kd} {
		if math.IsNaN(g) || math.IsInf(g, 0) {
			return TransferFunction{}, "", fmt.Errorf("%w: Kp=%v Ki=%v Kd=%v", ErrInvalidGains, kp, ki, kd)
		}
	}
	warning := ""
	if kp < 0 || ki < 0 || kd < 0 {
		warning = WarnNegativeGains
	}
	ctrl, err := New([]float64{kd, kp, ki}, []float64{1, 0})
	if err != nil {
		return TransferFunction{}, "", err
	}
	return ctrl, warning, nil
}
