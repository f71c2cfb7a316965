package symbolic

import (
	"math/big"
	"strconv"
	"strings"
)

// Poly is an exact polynomial in the Laplace variable s over the rationals,
// stored ascending: p[i] is the coefficient of s^i. The zero polynomial is
// the empty slice; otherwise the highest coefficient is non-zero.
type Poly []*big.Rat

// polyFromDesc builds a Poly from float coefficients ordered highest degree
// first (the transfer-function convention).
func polyFromDesc(desc []float64) Poly {
	p := make(Poly, len(desc))
	for i, c := range desc {
		p[len(desc)-1-i] = ratFromFloat(c)
	}
	return p.trim()
}

func polyConst(c *big.Rat) Poly {
	return Poly{new(big.Rat).Set(c)}.trim()
}

// polyLinear is s - root.
func polyLinear(root *big.Rat) Poly {
	return Poly{ratNeg(root), ratOne()}
}

// polyQuadratic is s^2 + p*s + q.
func polyQuadratic(p, q *big.Rat) Poly {
	return Poly{new(big.Rat).Set(q), new(big.Rat).Set(p), ratOne()}
}

func (p Poly) trim() Poly {
	n := len(p)
	for n > 0 && p[n-1].Sign() == 0 {
		n--
	}
	return p[:n]
}

func (p Poly) Degree() int  { return len(p) - 1 }
func (p Poly) IsZero() bool { return len(p) == 0 }

// IsOne reports whether p is the constant polynomial 1.
func (p Poly) IsOne() bool {
	return len(p) == 1 && p[0].Cmp(ratOne()) == 0
}

func (p Poly) Clone() Poly {
	out := make(Poly, len(p))
	for i, c := range p {
		out[i] = new(big.Rat).Set(c)
	}
	return out
}

// Coeff returns the coefficient of s^i, zero beyond the degree.
func (p Poly) Coeff(i int) *big.Rat {
	if i < 0 || i >= len(p) {
		return ratZero()
	}
	return new(big.Rat).Set(p[i])
}

func (p Poly) Lead() *big.Rat {
	if p.IsZero() {
		return ratZero()
	}
	return new(big.Rat).Set(p[len(p)-1])
}

func (p Poly) Add(q Poly) Poly {
	n := len(p)
	if len(q) > n {
		n = len(q)
	}
	out := make(Poly, n)
	for i := range out {
		out[i] = ratAdd(p.Coeff(i), q.Coeff(i))
	}
	return out.trim()
}

func (p Poly) Sub(q Poly) Poly {
	return p.Add(q.Neg())
}

func (p Poly) Neg() Poly {
	out := make(Poly, len(p))
	for i, c := range p {
		out[i] = ratNeg(c)
	}
	return out
}

func (p Poly) Scale(k *big.Rat) Poly {
	if k.Sign() == 0 {
		return Poly{}
	}
	out := make(Poly, len(p))
	for i, c := range p {
		out[i] = ratMul(c, k)
	}
	return out
}

func (p Poly) Mul(q Poly) Poly {
	if p.IsZero() || q.IsZero() {
		return Poly{}
	}
	out := make(Poly, len(p)+len(q)-1)
	for i := range out {
		out[i] = ratZero()
	}
	for i, a := range p {
		for j, b := range q {
			out[i+j].Add(out[i+j], ratMul(a, b))
		}
	}
	return out.trim()
}

// Pow raises p to a non-negative integer power.
func (p Poly) Pow(n int) Poly {
	out := Poly{ratOne()}
	for i := 0; i < n; i++ {
		out = out.Mul(p)
	}
	return out
}

func (p Poly) Derivative() Poly {
	if len(p) <= 1 {
		return Poly{}
	}
	out := make(Poly, len(p)-1)
	for i := 1; i < len(p); i++ {
		out[i-1] = ratMul(p[i], ratInt(int64(i)))
	}
	return out.trim()
}

// AntiDerivative is the antiderivative with zero constant term.
func (p Poly) AntiDerivative() Poly {
	if p.IsZero() {
		return Poly{}
	}
	out := make(Poly, len(p)+1)
	out[0] = ratZero()
	for i, c := range p {
		out[i+1] = ratDiv(c, ratInt(int64(i+1)))
	}
	return out.trim()
}

// QuoRem divides p by d, returning quotient and remainder with
// deg(rem) < deg(d). Division is exact over the rationals.
func (p Poly) QuoRem(d Poly) (Poly, Poly) {
	if d.IsZero() {
		panic("symbolic: division by zero polynomial")
	}
	rem := p.Clone()
	if rem.Degree() < d.Degree() {
		return Poly{}, rem
	}
	quo := make(Poly, rem.Degree()-d.Degree()+1)
	for i := range quo {
		quo[i] = ratZero()
	}
	dl := d.Lead()
	for !rem.IsZero() && rem.Degree() >= d.Degree() {
		shift := rem.Degree() - d.Degree()
		k := ratDiv(rem.Lead(), dl)
		quo[shift] = k
		sub := make(Poly, shift+len(d))
		for i := range sub {
			sub[i] = ratZero()
		}
		for i, c := range d {
			sub[shift+i] = ratMul(c, k)
		}
		rem = rem.Sub(sub.trim())
	}
	return quo.trim(), rem
}

// Monic returns p scaled to a unit leading coefficient plus the original
// leading coefficient.
func (p Poly) Monic() (Poly, *big.Rat) {
	if p.IsZero() {
		return Poly{}, ratZero()
	}
	lead := p.Lead()
	return p.Scale(ratDiv(ratOne(), lead)), lead
}

// GCD computes the monic greatest common divisor by the Euclidean algorithm.
func (p Poly) GCD(q Poly) Poly {
	a, b := p.Clone(), q.Clone()
	if a.IsZero() {
		g, _ := b.Monic()
		return g
	}
	// Bounded by the degree: each remainder strictly drops it.
	for i := 0; i <= p.Degree()+q.Degree()+2 && !b.IsZero(); i++ {
		_, r := a.QuoRem(b)
		a, b = b, r
	}
	g, _ := a.Monic()
	return g
}

func (p Poly) Eval(x *big.Rat) *big.Rat {
	y := ratZero()
	for i := len(p) - 1; i >= 0; i-- {
		y = ratAdd(ratMul(y, x), p[i])
	}
	return y
}

func ratString(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	return r.RatString()
}

func ratLaTeX(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	sign := ""
	v := new(big.Rat).Set(r)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return sign + "\\frac{" + v.Num().String() + "}{" + v.Denom().String() + "}"
}

// String renders the polynomial highest degree first, e.g. "s^2 + 2*s + 1".
func (p Poly) String() string { return p.render(ratString, "*", "^") }

// LaTeX renders the polynomial for math markup, e.g. "s^{2} + 2 s + 1".
func (p Poly) LaTeX() string {
	return p.render(ratLaTeX, " ", "^") // exponents get braces below
}

func (p Poly) render(num func(*big.Rat) string, mul, pow string) string {
	if p.IsZero() {
		return "0"
	}
	latex := mul == " "
	var b strings.Builder
	first := true
	for i := len(p) - 1; i >= 0; i-- {
		c := p[i]
		if c.Sign() == 0 {
			continue
		}
		abs := new(big.Rat).Abs(c)
		if first {
			if c.Sign() < 0 {
				b.WriteString("-")
			}
			first = false
		} else if c.Sign() < 0 {
			b.WriteString(" - ")
		} else {
			b.WriteString(" + ")
		}
		coeff := num(abs)
		if strings.HasPrefix(coeff, "-") {
			coeff = coeff[1:]
		}
		switch {
		case i == 0:
			b.WriteString(coeff)
		case abs.Cmp(ratOne()) == 0:
			b.WriteString(varTerm(i, latex, pow))
		default:
			b.WriteString(coeff)
			b.WriteString(mul)
			b.WriteString(varTerm(i, latex, pow))
		}
	}
	if first {
		return "0"
	}
	return b.String()
}

func varTerm(i int, latex bool, pow string) string {
	if i == 1 {
		return indeterminate
	}
	exp := strconv.Itoa(i)
	if latex {
		return indeterminate + pow + "{" + exp + "}"
	}
	return indeterminate + pow + exp
}

const indeterminate = "s"
