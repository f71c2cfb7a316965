package symbolic

import (
	"fmt"

	"regulab/internal/lti"
)

// RatFunc is an exact rational function N(s)/D(s). It is a derived view of a
// transfer function, never part of its identity.
type RatFunc struct {
	N Poly
	D Poly
}

// FromSystem builds the exact rational expression of a coefficient pair
// (highest degree first) and simplifies the ratio.
func FromSystem(num, den []float64) (RatFunc, error) {
	d := polyFromDesc(den)
	if d.IsZero() {
		return RatFunc{}, fmt.Errorf("%w: zero denominator", lti.ErrInvalidSystem)
	}
	return RatFunc{N: polyFromDesc(num), D: d}.Simplify(), nil
}

// FromTransferFunction is FromSystem on an already validated system.
func FromTransferFunction(tf lti.TransferFunction) RatFunc {
	f, err := FromSystem(tf.Num(), tf.Den())
	if err != nil {
		// A validated system cannot have a zero denominator.
		panic(err)
	}
	return f
}

// Simplify cancels the polynomial GCD of numerator and denominator and folds
// constant denominators into the numerator. The result is a new value.
func (f RatFunc) Simplify() RatFunc {
	n, d := f.N.Clone(), f.D.Clone()
	if n.IsZero() {
		return RatFunc{N: Poly{}, D: Poly{ratOne()}}
	}
	g := n.GCD(d)
	if !g.IsZero() && g.Degree() > 0 {
		n, _ = n.QuoRem(g)
		d, _ = d.QuoRem(g)
	}
	if d.Degree() == 0 {
		n = n.Scale(ratDiv(ratOne(), d[0]))
		d = Poly{ratOne()}
	}
	return RatFunc{N: n, D: d}
}

// IsPolynomial reports whether the denominator is the constant 1.
func (f RatFunc) IsPolynomial() bool { return f.D.IsOne() }

// Derivative applies the quotient rule exactly:
//
//	(N'D - ND') / D^2
//
// and simplifies the result.
func (f RatFunc) Derivative() RatFunc {
	n := f.N.Derivative().Mul(f.D).Sub(f.N.Mul(f.D.Derivative()))
	d := f.D.Mul(f.D)
	return RatFunc{N: n, D: d}.Simplify()
}

// Add sums two rational functions exactly.
func (f RatFunc) Add(g RatFunc) RatFunc {
	n := f.N.Mul(g.D).Add(g.N.Mul(f.D))
	d := f.D.Mul(g.D)
	return RatFunc{N: n, D: d}.Simplify()
}

func (f RatFunc) IsZero() bool { return f.N.IsZero() }

func (f RatFunc) String() string {
	if f.IsPolynomial() {
		return f.N.String()
	}
	return "(" + f.N.String() + ")/(" + f.D.String() + ")"
}

func (f RatFunc) LaTeX() string {
	if f.IsPolynomial() {
		return f.N.LaTeX()
	}
	return "\\frac{" + f.N.LaTeX() + "}{" + f.D.LaTeX() + "}"
}
