package symbolic

import (
	"math/big"
	"strings"
)

// Expr is a closed-form symbolic expression in s, produced by Integrate.
// Implementations render deterministically; identical inputs always yield
// identical strings.
type Expr interface {
	String() string
	LaTeX() string
}

// Num is an exact rational constant.
type Num struct{ Val *big.Rat }

func newNum(r *big.Rat) Num { return Num{Val: new(big.Rat).Set(r)} }

func (n Num) String() string { return ratString(n.Val) }
func (n Num) LaTeX() string  { return ratLaTeX(n.Val) }

// Sqrt is the exact square root of a positive rational radicand. Perfect
// squares are folded to Num by newSqrt and never appear as Sqrt nodes.
type Sqrt struct{ Rad *big.Rat }

// newSqrt returns √r as an Expr, folding perfect rational squares.
func newSqrt(r *big.Rat) Expr {
	if sq, ok := ratPerfectSqrt(r); ok {
		return newNum(sq)
	}
	return Sqrt{Rad: new(big.Rat).Set(r)}
}

func ratPerfectSqrt(r *big.Rat) (*big.Rat, bool) {
	if r.Sign() < 0 {
		return nil, false
	}
	num, den := r.Num(), r.Denom()
	ns := new(big.Int).Sqrt(num)
	ds := new(big.Int).Sqrt(den)
	if new(big.Int).Mul(ns, ns).Cmp(num) != 0 || new(big.Int).Mul(ds, ds).Cmp(den) != 0 {
		return nil, false
	}
	return new(big.Rat).SetFrac(ns, ds), true
}

func (s Sqrt) String() string { return "sqrt(" + ratString(s.Rad) + ")" }
func (s Sqrt) LaTeX() string  { return "\\sqrt{" + ratLaTeX(s.Rad) + "}" }

// PolyExpr wraps a polynomial as an expression term.
type PolyExpr struct{ P Poly }

func (p PolyExpr) String() string { return p.P.String() }
func (p PolyExpr) LaTeX() string  { return p.P.LaTeX() }

// RatExpr wraps a rational function as an expression term.
type RatExpr struct{ F RatFunc }

func (r RatExpr) String() string { return r.F.String() }
func (r RatExpr) LaTeX() string  { return r.F.LaTeX() }

// Log is the natural logarithm of an expression.
type Log struct{ Arg Expr }

func (l Log) String() string { return "log(" + l.Arg.String() + ")" }
func (l Log) LaTeX() string  { return "\\ln\\left(" + l.Arg.LaTeX() + "\\right)" }

// Atan is the inverse tangent of an expression.
type Atan struct{ Arg Expr }

func (a Atan) String() string { return "atan(" + a.Arg.String() + ")" }
func (a Atan) LaTeX() string  { return "\\arctan\\left(" + a.Arg.LaTeX() + "\\right)" }

// Sum is an ordered sum of terms. Construction drops zero terms and
// collapses singletons.
type Sum struct{ Terms []Expr }

func newSum(terms ...Expr) Expr {
	kept := make([]Expr, 0, len(terms))
	for _, t := range terms {
		if t == nil || isZeroExpr(t) {
			continue
		}
		kept = append(kept, t)
	}
	switch len(kept) {
	case 0:
		return newNum(ratZero())
	case 1:
		return kept[0]
	}
	return Sum{Terms: kept}
}

func isZeroExpr(e Expr) bool {
	switch v := e.(type) {
	case Num:
		return v.Val.Sign() == 0
	case PolyExpr:
		return v.P.IsZero()
	case RatExpr:
		return v.F.IsZero()
	}
	return false
}

func (s Sum) String() string { return s.render(func(e Expr) string { return e.String() }) }
func (s Sum) LaTeX() string  { return s.render(func(e Expr) string { return e.LaTeX() }) }

func (s Sum) render(f func(Expr) string) string {
	var b strings.Builder
	for i, t := range s.Terms {
		part := f(t)
		if i == 0 {
			b.WriteString(part)
			continue
		}
		if strings.HasPrefix(part, "-") {
			b.WriteString(" - ")
			b.WriteString(part[1:])
		} else {
			b.WriteString(" + ")
			b.WriteString(part)
		}
	}
	return b.String()
}

// Prod is an ordered product. Construction folds rational factors, drops
// unit factors and returns zero when any factor is zero.
type Prod struct {
	Coeff   *big.Rat
	Factors []Expr
}

func newProd(coeff *big.Rat, factors ...Expr) Expr {
	c := new(big.Rat).Set(coeff)
	kept := make([]Expr, 0, len(factors))
	for _, f := range factors {
		if n, ok := f.(Num); ok {
			c.Mul(c, n.Val)
			continue
		}
		if isZeroExpr(f) {
			return newNum(ratZero())
		}
		kept = append(kept, f)
	}
	if c.Sign() == 0 {
		return newNum(ratZero())
	}
	if len(kept) == 0 {
		return newNum(c)
	}
	if len(kept) == 1 && c.Cmp(ratOne()) == 0 {
		return kept[0]
	}
	return Prod{Coeff: c, Factors: kept}
}

func (p Prod) String() string {
	return p.render(func(e Expr) string { return e.String() }, ratString, "*", "(", ")")
}

func (p Prod) LaTeX() string {
	return p.render(func(e Expr) string { return e.LaTeX() }, ratLaTeX, " \\, ", "\\left(", "\\right)")
}

func (p Prod) render(f func(Expr) string, num func(*big.Rat) string, mul, lp, rp string) string {
	prefix := ""
	c := new(big.Rat).Set(p.Coeff)
	if c.Sign() < 0 {
		prefix = "-"
		c.Neg(c)
	}
	parts := make([]string, 0, len(p.Factors)+1)
	if c.Cmp(ratOne()) != 0 {
		parts = append(parts, num(c))
	}
	for _, fac := range p.Factors {
		s := f(fac)
		if needsParens(fac) {
			s = lp + s + rp
		}
		parts = append(parts, s)
	}
	return prefix + strings.Join(parts, mul)
}

func needsParens(e Expr) bool {
	switch v := e.(type) {
	case Sum:
		return true
	case PolyExpr:
		return v.P.Degree() > 0
	case RatExpr:
		return true
	}
	return false
}
