package symbolic

import (
	"fmt"
	"math/big"

	"regulab/internal/lti"
)

// Integrate computes an exact antiderivative of f with zero integration
// constant. The closed form exists whenever the denominator factors over the
// rationals into linear factors (any multiplicity) and distinct irreducible
// quadratics; the quadratics contribute log and arctangent terms with exact
// square-root coefficients. Anything else fails with
// lti.ErrUnsupportedSymbolicForm instead of a numeric placeholder.
func Integrate(f RatFunc) (Expr, error) {
	f = f.Simplify()
	if f.IsZero() {
		return newNum(ratZero()), nil
	}

	quo, rem := f.N.QuoRem(f.D)
	var terms []Expr
	if !quo.IsZero() {
		terms = append(terms, PolyExpr{P: quo.AntiDerivative()})
	}
	if rem.IsZero() {
		return newSum(terms...), nil
	}

	fact, err := factorPoly(f.D)
	if err != nil {
		return nil, err
	}
	for _, q := range fact.Quads {
		if q.Mult > 1 {
			return nil, fmt.Errorf("%w: repeated irreducible quadratic factor", lti.ErrUnsupportedSymbolicForm)
		}
	}

	// Fold the leading coefficient into the remainder so the factor product
	// is monic: rem/D = (rem/lead) / monic(D).
	rem = rem.Scale(ratDiv(ratOne(), fact.Lead))
	monic, _ := f.D.Monic()

	coeffs, err := partialFractions(rem, monic, fact)
	if err != nil {
		return nil, err
	}

	ratPart := RatFunc{N: Poly{}, D: Poly{ratOne()}}
	var logAtan []Expr
	idx := 0
	for _, lin := range fact.Linear {
		for i := 1; i <= lin.Mult; i++ {
			a := coeffs[idx]
			idx++
			if a.Sign() == 0 {
				continue
			}
			if i == 1 {
				logAtan = append(logAtan, newProd(a, Log{Arg: PolyExpr{P: polyLinear(lin.Root)}}))
				continue
			}
			// A/(s-r)^i integrates to -A/((i-1)(s-r)^(i-1)).
			k := ratDiv(ratNeg(a), ratInt(int64(i-1)))
			ratPart = ratPart.Add(RatFunc{N: polyConst(k), D: polyLinear(lin.Root).Pow(i - 1)})
		}
	}
	for _, quad := range fact.Quads {
		b := coeffs[idx]
		c := coeffs[idx+1]
		idx += 2
		logAtan = append(logAtan, quadTerms(b, c, quad)...)
	}

	if !ratPart.IsZero() {
		terms = append(terms, RatExpr{F: ratPart})
	}
	terms = append(terms, logAtan...)
	return newSum(terms...), nil
}

// partialFractions solves for the decomposition coefficients of rem/monic:
// one unknown per power of each linear factor, and B,C per quadratic.
// Unknown ordering matches the iteration order in Integrate.
func partialFractions(rem, monic Poly, fact factorization) ([]*big.Rat, error) {
	n := monic.Degree()
	var basis []Poly
	for _, lin := range fact.Linear {
		factor := polyLinear(lin.Root)
		for i := 1; i <= lin.Mult; i++ {
			q, _ := monic.QuoRem(factor.Pow(i))
			basis = append(basis, q)
		}
	}
	for _, quad := range fact.Quads {
		q, _ := monic.QuoRem(polyQuadratic(quad.P, quad.Q))
		basis = append(basis, q.Mul(Poly{ratZero(), ratOne()})) // B * s * (D/Q)
		basis = append(basis, q)                                // C * (D/Q)
	}
	if len(basis) != n {
		return nil, fmt.Errorf("%w: incomplete factorization", lti.ErrUnsupportedSymbolicForm)
	}

	a := make([][]*big.Rat, n)
	b := make([]*big.Rat, n)
	for row := 0; row < n; row++ {
		a[row] = make([]*big.Rat, n)
		for col, p := range basis {
			a[row][col] = p.Coeff(row)
		}
		b[row] = rem.Coeff(row)
	}
	return solveLinear(a, b)
}

// quadTerms integrates (B*s + C)/(s^2 + P*s + Q) for an irreducible
// quadratic. With d = Q - P^2/4:
//
//	d > 0: (B/2)·log(s^2+Ps+Q) + (C-BP/2)/√d · atan((s+P/2)/√d)
//	d < 0: (B/2)·log(s^2+Ps+Q) + (C-BP/2)/(2√e)·[log(s+P/2-√e) - log(s+P/2+√e)]
//
// with e = -d. Square-root coefficients are rationalized so every surd
// appears as an explicit Sqrt factor.
func quadTerms(b, c *big.Rat, quad quadFactor) []Expr {
	var out []Expr
	half := big.NewRat(1, 2)
	if b.Sign() != 0 {
		out = append(out, newProd(ratMul(b, half), Log{Arg: PolyExpr{P: polyQuadratic(quad.P, quad.Q)}}))
	}
	u := ratSub(c, ratMul(ratMul(b, quad.P), half))
	if u.Sign() == 0 {
		return out
	}
	d := ratSub(quad.Q, ratMul(ratMul(quad.P, quad.P), big.NewRat(1, 4)))
	if d.Sign() == 0 {
		// A zero discriminant means a repeated rational root, which the
		// factorization extracts as a linear factor; unreachable.
		return out
	}
	shifted := polyLinear(ratNeg(ratMul(quad.P, half))) // s + P/2

	if d.Sign() > 0 {
		// u/√d = (u/d)·√d; argument (s+P/2)/√d = (1/d)·√d·(s+P/2).
		arg := newProd(ratDiv(ratOne(), d), newSqrt(d), PolyExpr{P: shifted})
		out = append(out, newProd(ratDiv(u, d), newSqrt(d), Atan{Arg: arg}))
		return out
	}

	e := ratNeg(d)
	k := ratDiv(u, ratMul(ratInt(2), e)) // u/(2√e) rationalized to (u/(2e))·√e
	sq := newSqrt(e)
	minus := newSum(PolyExpr{P: shifted}, newProd(ratInt(-1), sq))
	plus := newSum(PolyExpr{P: shifted}, sq)
	out = append(out,
		newProd(k, sq, Log{Arg: minus}),
		newProd(ratNeg(k), sq, Log{Arg: plus}),
	)
	return out
}
