package symbolic

import (
	"fmt"
	"math/big"
	"sort"

	"regulab/internal/lti"
)

// Factoring works entirely over the rationals: square-free decomposition by
// Yun's algorithm, then rational-root extraction on each square-free part.
// What remains after pulling out rational roots must be an irreducible
// quadratic, or the polynomial has no closed-form factorization here.

type linearFactor struct {
	Root *big.Rat
	Mult int
}

// quadFactor is the monic irreducible quadratic s^2 + P*s + Q.
type quadFactor struct {
	P, Q *big.Rat
	Mult int
}

type factorization struct {
	Lead   *big.Rat
	Linear []linearFactor
	Quads  []quadFactor
}

const (
	// divisorBound caps the integers whose divisors are enumerated for the
	// rational root theorem; larger constants give up rather than loop.
	divisorBound = int64(1_000_000_000_000)
	// candidateBound caps the number of candidate roots tested.
	candidateBound = 20000
)

func factorPoly(d Poly) (factorization, error) {
	monic, lead := d.Monic()
	fact := factorization{Lead: lead}
	if monic.Degree() < 1 {
		return fact, nil
	}
	parts, err := squareFree(monic)
	if err != nil {
		return fact, err
	}
	for _, part := range parts {
		lin, quads, err := factorSquareFree(part.poly)
		if err != nil {
			return fact, err
		}
		for _, root := range lin {
			fact.Linear = append(fact.Linear, linearFactor{Root: root, Mult: part.mult})
		}
		for _, q := range quads {
			q.Mult = part.mult
			fact.Quads = append(fact.Quads, q)
		}
	}
	sort.Slice(fact.Linear, func(i, j int) bool {
		return fact.Linear[i].Root.Cmp(fact.Linear[j].Root) < 0
	})
	sort.Slice(fact.Quads, func(i, j int) bool {
		if c := fact.Quads[i].P.Cmp(fact.Quads[j].P); c != 0 {
			return c < 0
		}
		return fact.Quads[i].Q.Cmp(fact.Quads[j].Q) < 0
	})
	return fact, nil
}

type squareFreePart struct {
	poly Poly
	mult int
}

// squareFree runs Yun's algorithm on a monic polynomial, yielding pairwise
// coprime square-free parts a_i with f = prod a_i^i.
func squareFree(f Poly) ([]squareFreePart, error) {
	df := f.Derivative()
	g := f.GCD(df)
	if g.Degree() == 0 {
		return []squareFreePart{{poly: f, mult: 1}}, nil
	}
	c, _ := f.QuoRem(g)
	q, _ := df.QuoRem(g)
	d := q.Sub(c.Derivative())
	var parts []squareFreePart
	for i := 1; i <= f.Degree()+1; i++ {
		if c.Degree() < 1 {
			return parts, nil
		}
		a := c.GCD(d)
		if a.Degree() > 0 {
			parts = append(parts, squareFreePart{poly: a, mult: i})
		}
		c, _ = c.QuoRem(a)
		q, _ = d.QuoRem(a)
		d = q.Sub(c.Derivative())
	}
	return nil, fmt.Errorf("%w: square-free decomposition did not terminate", lti.ErrNumericInstability)
}

// factorSquareFree splits a monic square-free polynomial into rational roots
// and irreducible quadratics. Any non-quadratic remainder without rational
// roots has no closed form here.
func factorSquareFree(f Poly) ([]*big.Rat, []quadFactor, error) {
	var roots []*big.Rat
	rest := f.Clone()

	// s^k factor first: square-free means k <= 1.
	if rest.Degree() >= 1 && rest[0].Sign() == 0 {
		roots = append(roots, ratZero())
		rest, _ = rest.QuoRem(polyLinear(ratZero()))
	}

	if rest.Degree() >= 1 {
		candidates, err := rationalRootCandidates(rest)
		if err != nil {
			return nil, nil, err
		}
		for _, cand := range candidates {
			if rest.Degree() < 1 {
				break
			}
			if rest.Eval(cand).Sign() == 0 {
				roots = append(roots, cand)
				rest, _ = rest.QuoRem(polyLinear(cand))
			}
		}
	}

	switch rest.Degree() {
	case 0:
		return roots, nil, nil
	case 2:
		m, _ := rest.Monic()
		return roots, []quadFactor{{P: m.Coeff(1), Q: m.Coeff(0)}}, nil
	default:
		return nil, nil, fmt.Errorf("%w: irreducible factor of degree %d", lti.ErrUnsupportedSymbolicForm, rest.Degree())
	}
}

// rationalRootCandidates lists every p/q allowed by the rational root
// theorem for the integer image of f, sorted ascending for determinism.
func rationalRootCandidates(f Poly) ([]*big.Rat, error) {
	ints, err := integerImage(f)
	if err != nil {
		return nil, err
	}
	lo := ints[0]
	hi := ints[len(ints)-1]
	pDivs, err := divisors(lo)
	if err != nil {
		return nil, err
	}
	qDivs, err := divisors(hi)
	if err != nil {
		return nil, err
	}
	if len(pDivs)*len(qDivs)*2 > candidateBound {
		return nil, fmt.Errorf("%w: too many root candidates", lti.ErrUnsupportedSymbolicForm)
	}
	seen := make(map[string]bool)
	var cands []*big.Rat
	for _, p := range pDivs {
		for _, q := range qDivs {
			for _, sign := range []int64{1, -1} {
				r := big.NewRat(sign*p, q)
				key := r.RatString()
				if !seen[key] {
					seen[key] = true
					cands = append(cands, r)
				}
			}
		}
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].Cmp(cands[j]) < 0 })
	return cands, nil
}

// integerImage clears denominators and content, returning primitive integer
// coefficients ascending. Fails when coefficients exceed the divisor bound.
func integerImage(f Poly) ([]int64, error) {
	lcm := big.NewInt(1)
	for _, c := range f {
		d := c.Denom()
		g := new(big.Int).GCD(nil, nil, lcm, d)
		lcm.Div(new(big.Int).Mul(lcm, d), g)
	}
	ints := make([]*big.Int, len(f))
	gcd := new(big.Int)
	for i, c := range f {
		v := new(big.Int).Mul(c.Num(), new(big.Int).Div(lcm, c.Denom()))
		ints[i] = v
		gcd.GCD(nil, nil, gcd, new(big.Int).Abs(v))
	}
	out := make([]int64, len(ints))
	for i, v := range ints {
		if gcd.Sign() != 0 {
			v = new(big.Int).Div(v, gcd)
		}
		if !v.IsInt64() {
			return nil, fmt.Errorf("%w: coefficients too large for exact factoring", lti.ErrUnsupportedSymbolicForm)
		}
		out[i] = v.Int64()
	}
	return out, nil
}

func divisors(n int64) ([]int64, error) {
	if n < 0 {
		n = -n
	}
	if n == 0 {
		return []int64{1}, nil
	}
	if n > divisorBound {
		return nil, fmt.Errorf("%w: constant term too large for exact factoring", lti.ErrUnsupportedSymbolicForm)
	}
	var divs []int64
	for d := int64(1); d*d <= n; d++ {
		if n%d == 0 {
			divs = append(divs, d)
			if q := n / d; q != d {
				divs = append(divs, q)
			}
		}
	}
	sort.Slice(divs, func(i, j int) bool { return divs[i] < divs[j] })
	return divs, nil
}
