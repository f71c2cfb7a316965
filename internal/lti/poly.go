package lti

import "math"

// Coefficient slices are ordered highest degree first throughout.

func trimLeading(c []float64) []float64 {
	i := 0
	for i < len(c)-1 && c[i] == 0 {
		i++
	}
	return c[i:]
}

func allZero(c []float64) bool {
	for _, v := range c {
		if v != 0 {
			return false
		}
	}
	return true
}

func allFinite(c []float64) bool {
	for _, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// polyMul convolves two coefficient sequences.
func polyMul(a, b []float64) []float64 {
	out := make([]float64, len(a)+len(b)-1)
	for i, av := range a {
		for j, bv := range b {
			out[i+j] += av * bv
		}
	}
	return out
}

// polyAdd sums two coefficient sequences, right-aligned.
func polyAdd(a, b []float64) []float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]float64, n)
	for i, v := range a {
		out[n-len(a)+i] += v
	}
	for i, v := range b {
		out[n-len(b)+i] += v
	}
	return out
}

// polyEval evaluates the polynomial at x by Horner's rule.
func polyEval(c []float64, x float64) float64 {
	y := 0.0
	for _, v := range c {
		y = y*x + v
	}
	return y
}
