package lti

import (
	"fmt"
	"math"
	"strings"
)

// TransferFunction is an immutable rational transfer function G(s) = N(s)/D(s),
// held as numerator and denominator coefficients ordered highest degree first.
// The denominator is trimmed of leading zeros at construction; the numerator is
// kept exactly as supplied. Transformations always return a new value.
type TransferFunction struct {
	num []float64
	den []float64
}

// New validates the coefficient pair and builds a transfer function.
// The denominator must be non-empty, not identically zero, and finite;
// leading zeros are trimmed so its leading coefficient is non-zero.
func New(num, den []float64) (TransferFunction, error) {
	if len(num) == 0 {
		return TransferFunction{}, fmt.Errorf("%w: empty numerator", ErrInvalidSystem)
	}
	if len(den) == 0 {
		return TransferFunction{}, fmt.Errorf("%w: empty denominator", ErrInvalidSystem)
	}
	if !allFinite(num) || !allFinite(den) {
		return TransferFunction{}, fmt.Errorf("%w: non-finite coefficient", ErrInvalidSystem)
	}
	if allZero(den) {
		return TransferFunction{}, fmt.Errorf("%w: zero denominator", ErrInvalidSystem)
	}
	d := trimLeading(den)
	if d[0] == 0 {
		return TransferFunction{}, fmt.Errorf("%w: zero leading denominator coefficient", ErrInvalidSystem)
	}
	tf := TransferFunction{
		num: make([]float64, len(num)),
		den: make([]float64, len(d)),
	}
	copy(tf.num, num)
	copy(tf.den, d)
	return tf, nil
}

// MustNew is New for statically known coefficients; it panics on error.
func MustNew(num, den []float64) TransferFunction {
	tf, err := New(num, den)
	if err != nil {
		panic(err)
	}
	return tf
}

// Num returns a copy of the numerator coefficients.
func (tf TransferFunction) Num() []float64 {
	out := make([]float64, len(tf.num))
	copy(out, tf.num)
	return out
}

// Den returns a copy of the denominator coefficients.
func (tf TransferFunction) Den() []float64 {
	out := make([]float64, len(tf.den))
	copy(out, tf.den)
	return out
}

// NumDegree is len(num)-1 with the numerator exactly as supplied.
func (tf TransferFunction) NumDegree() int { return len(tf.num) - 1 }

// DenDegree is len(den)-1 after leading-zero trimming.
func (tf TransferFunction) DenDegree() int { return len(tf.den) - 1 }

// Proper reports whether the effective numerator degree does not exceed the
// denominator degree, i.e. the function is realizable in state space.
func (tf TransferFunction) Proper() bool {
	return len(trimLeading(tf.num))-1 <= tf.DenDegree()
}

// Eval evaluates G at a real point s. The result is not finite at a pole.
func (tf TransferFunction) Eval(s float64) float64 {
	return polyEval(tf.num, s) / polyEval(tf.den, s)
}

// Normalize returns the monic-denominator form. The engine never normalizes
// implicitly; callers needing a canonical form request it here.
func (tf TransferFunction) Normalize() TransferFunction {
	lead := tf.den[0]
	num := make([]float64, len(tf.num))
	den := make([]float64, len(tf.den))
	for i, v := range tf.num {
		num[i] = v / lead
	}
	for i, v := range tf.den {
		den[i] = v / lead
	}
	return TransferFunction{num: num, den: den}
}

// Equivalent reports whether a and b describe the same function, i.e. their
// coefficient sequences are proportional by a single non-zero scalar.
func Equivalent(a, b TransferFunction, eps float64) bool {
	an, bn := trimLeading(a.num), trimLeading(b.num)
	if len(an) != len(bn) || len(a.den) != len(b.den) {
		return false
	}
	k := a.den[0] / b.den[0]
	if k == 0 || math.IsNaN(k) || math.IsInf(k, 0) {
		return false
	}
	close := func(x, y float64) bool {
		return math.Abs(x-y) <= eps*math.Max(1, math.Max(math.Abs(x), math.Abs(y)))
	}
	for i := range a.den {
		if !close(a.den[i], k*b.den[i]) {
			return false
		}
	}
	for i := range an {
		if !close(an[i], k*bn[i]) {
			return false
		}
	}
	return true
}

// String renders the function as "num / den" with bracketed coefficients,
// e.g. "[1] / [1 2 1]".
func (tf TransferFunction) String() string {
	f := func(c []float64) string {
		parts := make([]string, len(c))
		for i, v := range c {
			parts[i] = fmt.Sprintf("%g", v)
		}
		return "[" + strings.Join(parts, " ") + "]"
	}
	return f(tf.num) + " / " + f(tf.den)
}
