package symbolic

import (
	"math"
	"math/big"
)

func ratInt(n int64) *big.Rat  { return new(big.Rat).SetInt64(n) }
func ratZero() *big.Rat        { return new(big.Rat) }
func ratOne() *big.Rat         { return ratInt(1) }
func ratNeg(a *big.Rat) *big.Rat { return new(big.Rat).Neg(a) }

func ratAdd(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }
func ratSub(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(a, b) }
func ratMul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }
func ratDiv(a, b *big.Rat) *big.Rat { return new(big.Rat).Quo(a, b) }

const (
	// approxDenomBound caps the denominator accepted from the continued
	// fraction approximation of a float coefficient.
	approxDenomBound = 1_000_000
	approxTol        = 1e-9
)

// ratFromFloat converts a float coefficient to an exact rational. Binary
// floats of "nice" decimal inputs (0.1, 1.2) have enormous exact
// denominators, so a continued-fraction convergent with a small denominator
// is preferred when it reproduces the float within tolerance; otherwise the
// exact binary value is kept.
func ratFromFloat(f float64) *big.Rat {
	exact := new(big.Rat).SetFloat64(f)
	if exact == nil {
		return nil
	}
	if exact.Denom().IsInt64() && exact.Denom().Int64() <= approxDenomBound {
		return exact
	}
	if approx, ok := continuedFraction(f); ok {
		return approx
	}
	return exact
}

// continuedFraction finds the best rational approximation of f with a
// bounded denominator, walking convergents h/k of the continued fraction.
func continuedFraction(f float64) (*big.Rat, bool) {
	neg := f < 0
	x := math.Abs(f)
	var h0, k0, h1, k1 int64 = 0, 1, 1, 0
	v := x
	for i := 0; i < 64; i++ {
		a := int64(math.Floor(v))
		h0, k0, h1, k1 = h1, k1, a*h1+h0, a*k1+k0
		if k1 > approxDenomBound || k1 <= 0 {
			return nil, false
		}
		approx := float64(h1) / float64(k1)
		if math.Abs(approx-x) <= approxTol*(1+x) {
			if neg {
				h1 = -h1
			}
			return big.NewRat(h1, k1), true
		}
		frac := v - math.Floor(v)
		if frac == 0 {
			break
		}
		v = 1 / frac
	}
	return nil, false
}
