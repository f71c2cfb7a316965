package symbolic

import (
	"math/big"
	"testing"
)

func ratsEqual(p Poly, want []int64) bool {
	if len(p) != len(want) {
		return false
	}
	for i, w := range want {
		if p[i].Cmp(ratInt(w)) != 0 {
			return false
		}
	}
	return true
}

func TestPolyFromDescTrims(t *testing.T) {
	p := polyFromDesc([]float64{0, 0, 1, 2})
	if p.Degree() != 1 {
		t.Errorf("expected degree 1, got %d", p.Degree())
	}
	if !ratsEqual(p, []int64{2, 1}) {
		t.Errorf("expected s + 2, got %s", p)
	}
}

func TestPolyMul(t *testing.T) {
	sp1 := polyFromDesc([]float64{1, 1}) // s + 1
	got := sp1.Mul(sp1)
	if !ratsEqual(got, []int64{1, 2, 1}) {
		t.Errorf("expected s^2 + 2*s + 1, got %s", got)
	}
}

func TestPolyQuoRem(t *testing.T) {
	num := polyFromDesc([]float64{1, 3, 3, 2}) // s^3 + 3s^2 + 3s + 2
	den := polyFromDesc([]float64{1, 1})       // s + 1
	q, r := num.QuoRem(den)
	// (s+1)(s^2+2s+1) + 1
	if !ratsEqual(q, []int64{1, 2, 1}) {
		t.Errorf("unexpected quotient %s", q)
	}
	if !ratsEqual(r, []int64{1}) {
		t.Errorf("unexpected remainder %s", r)
	}
	if back := q.Mul(den).Add(r); !ratsEqual(back, []int64{2, 3, 3, 1}) {
		t.Errorf("division does not reconstruct: %s", back)
	}
}

func TestPolyGCD(t *testing.T) {
	f := polyFromDesc([]float64{1, 2, 1}) // (s+1)^2
	g := f.Derivative()                   // 2s + 2
	gcd := f.GCD(g)
	if !ratsEqual(gcd, []int64{1, 1}) {
		t.Errorf("expected monic s + 1, got %s", gcd)
	}
}

func TestPolyAntiDerivative(t *testing.T) {
	p := polyFromDesc([]float64{2, 0}) // 2s
	anti := p.AntiDerivative()
	if !ratsEqual(anti, []int64{0, 0, 1}) {
		t.Errorf("expected s^2, got %s", anti)
	}
}

func TestPolyString(t *testing.T) {
	cases := []struct {
		desc []float64
		want string
	}{
		{[]float64{1, 2, 1}, "s^2 + 2*s + 1"},
		{[]float64{1, 0}, "s"},
		{[]float64{-1, 0, 3}, "-s^2 + 3"},
		{[]float64{0.5, 1}, "1/2*s + 1"},
		{[]float64{0}, "0"},
	}
	for _, c := range cases {
		if got := polyFromDesc(c.desc).String(); got != c.want {
			t.Errorf("coeffs %v: expected %q, got %q", c.desc, c.want, got)
		}
	}
}

func TestPolyLaTeX(t *testing.T) {
	p := polyFromDesc([]float64{1, 2, 1})
	if got := p.LaTeX(); got != "s^{2} + 2 s + 1" {
		t.Errorf("unexpected latex %q", got)
	}
}

func TestRatFromFloatSmallDecimal(t *testing.T) {
	r := ratFromFloat(0.1)
	if r.Cmp(big.NewRat(1, 10)) != 0 {
		t.Errorf("expected 1/10, got %s", r.RatString())
	}
	r = ratFromFloat(0.5)
	if r.Cmp(big.NewRat(1, 2)) != 0 {
		t.Errorf("expected 1/2, got %s", r.RatString())
	}
	r = ratFromFloat(-2.25)
	if r.Cmp(big.NewRat(-9, 4)) != 0 {
		t.Errorf("expected -9/4, got %s", r.RatString())
	}
}

func TestSquareFreeDecomposition(t *testing.T) {
	// (s+1)^2 (s+2)
	f := polyFromDesc([]float64{1, 1}).Pow(2).Mul(polyFromDesc([]float64{1, 2}))
	parts, err := squareFree(f)
	if err != nil {
		t.Fatalf("squarefree failed: %v", err)
	}
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if parts[0].mult != 1 || !ratsEqual(parts[0].poly, []int64{2, 1}) {
		t.Errorf("expected (s+2)^1, got %s mult %d", parts[0].poly, parts[0].mult)
	}
	if parts[1].mult != 2 || !ratsEqual(parts[1].poly, []int64{1, 1}) {
		t.Errorf("expected (s+1)^2, got %s mult %d", parts[1].poly, parts[1].mult)
	}
}

func TestFactorPoly(t *testing.T) {
	// 2(s+1)(s^2+s+1)
	f := polyFromDesc([]float64{2, 2}).Mul(polyFromDesc([]float64{1, 1, 1}))
	fact, err := factorPoly(f)
	if err != nil {
		t.Fatalf("factor failed: %v", err)
	}
	if fact.Lead.Cmp(ratInt(2)) != 0 {
		t.Errorf("expected lead 2, got %s", fact.Lead.RatString())
	}
	if len(fact.Linear) != 1 || fact.Linear[0].Root.Cmp(ratInt(-1)) != 0 {
		t.Errorf("expected single root -1, got %+v", fact.Linear)
	}
	if len(fact.Quads) != 1 || fact.Quads[0].P.Cmp(ratInt(1)) != 0 || fact.Quads[0].Q.Cmp(ratInt(1)) != 0 {
		t.Errorf("expected s^2+s+1, got %+v", fact.Quads)
	}
}
