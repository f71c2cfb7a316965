package symbolic

import (
	"errors"
	"testing"

	"regulab/internal/lti"
)

func mustRat(t *testing.T, num, den []float64) RatFunc {
	t.Helper()
	f, err := FromSystem(num, den)
	if err != nil {
		t.Fatalf("from system failed: %v", err)
	}
	return f
}

func TestFromSystemRendering(t *testing.T) {
	f := mustRat(t, []float64{1}, []float64{1, 2, 1})
	if got := f.String(); got != "(1)/(s^2 + 2*s + 1)" {
		t.Errorf("unexpected string %q", got)
	}
	if got := f.LaTeX(); got != "\\frac{1}{s^{2} + 2 s + 1}" {
		t.Errorf("unexpected latex %q", got)
	}
}

func TestFromSystemSimplifies(t *testing.T) {
	// (s+1)/(s^2+2s+1) reduces to 1/(s+1).
	f := mustRat(t, []float64{1, 1}, []float64{1, 2, 1})
	if got := f.String(); got != "(1)/(s + 1)" {
		t.Errorf("expected reduced form, got %q", got)
	}
}

func TestFromSystemRoundTrip(t *testing.T) {
	// Re-expanding N and D reproduces the originals up to a scalar.
	f := mustRat(t, []float64{2, 2}, []float64{2, 4, 2})
	// simplified: (s+1)/(s+1)^2 -> 1/(s+1)
	if !f.N.Mul(polyFromDesc([]float64{1, 1})).Sub(f.D).IsZero() {
		t.Errorf("expected D = (s+1)*N, got N=%s D=%s", f.N, f.D)
	}
}

func TestFromSystemZeroDenominator(t *testing.T) {
	if _, err := FromSystem([]float64{1}, []float64{0, 0}); !errors.Is(err, lti.ErrInvalidSystem) {
		t.Errorf("expected ErrInvalidSystem, got %v", err)
	}
}

func TestDerivativeQuotientRule(t *testing.T) {
	f := mustRat(t, []float64{1}, []float64{1, 2, 1})
	df := f.Derivative()
	if got := df.String(); got != "(-2)/(s^3 + 3*s^2 + 3*s + 1)" {
		t.Errorf("unexpected derivative %q", got)
	}
}

func TestDerivativePolynomial(t *testing.T) {
	f := mustRat(t, []float64{1, 0}, []float64{1}) // s
	if got := f.Derivative().String(); got != "1" {
		t.Errorf("expected 1, got %q", got)
	}
}

func TestIntegrateIntegrator(t *testing.T) {
	f := mustRat(t, []float64{1}, []float64{1, 0}) // 1/s
	expr, err := Integrate(f)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}
	if got := expr.String(); got != "log(s)" {
		t.Errorf("expected log(s), got %q", got)
	}
}

func TestIntegrateRepeatedRealRoot(t *testing.T) {
	f := mustRat(t, []float64{1}, []float64{1, 2, 1}) // 1/(s+1)^2
	expr, err := Integrate(f)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}
	if got := expr.String(); got != "(-1)/(s + 1)" {
		t.Errorf("expected -1/(s+1), got %q", got)
	}
}

func TestIntegrateDistinctRealRoots(t *testing.T) {
	f := mustRat(t, []float64{1}, []float64{1, 3, 2}) // 1/((s+1)(s+2))
	expr, err := Integrate(f)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}
	if got := expr.String(); got != "-log(s + 2) + log(s + 1)" {
		t.Errorf("unexpected decomposition %q", got)
	}
}

func TestIntegrateComplexPair(t *testing.T) {
	f := mustRat(t, []float64{1}, []float64{1, 2, 2}) // 1/(s^2+2s+2)
	expr, err := Integrate(f)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}
	if got := expr.String(); got != "atan(s + 1)" {
		t.Errorf("expected atan(s + 1), got %q", got)
	}
}

func TestIntegrateIrrationalRealRoots(t *testing.T) {
	f := mustRat(t, []float64{1}, []float64{1, 0, -2}) // 1/(s^2-2)
	expr, err := Integrate(f)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}
	want := "1/4*sqrt(2)*log(s - sqrt(2)) - 1/4*sqrt(2)*log(s + sqrt(2))"
	if got := expr.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestIntegrateImproperPart(t *testing.T) {
	f := mustRat(t, []float64{1, 0}, []float64{1, 1}) // s/(s+1)
	expr, err := Integrate(f)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}
	if got := expr.String(); got != "s - log(s + 1)" {
		t.Errorf("unexpected integral %q", got)
	}
}

func TestIntegratePolynomial(t *testing.T) {
	f := mustRat(t, []float64{2, 0}, []float64{1}) // 2s
	expr, err := Integrate(f)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}
	if got := expr.String(); got != "s^2" {
		t.Errorf("expected s^2, got %q", got)
	}
}

func TestIntegrateZero(t *testing.T) {
	f := mustRat(t, []float64{0}, []float64{1, 1})
	expr, err := Integrate(f)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}
	if got := expr.String(); got != "0" {
		t.Errorf("expected 0, got %q", got)
	}
}

func TestIntegrateIrreducibleCubic(t *testing.T) {
	f := mustRat(t, []float64{1}, []float64{1, 0, 1, 1}) // 1/(s^3+s+1)
	if _, err := Integrate(f); !errors.Is(err, lti.ErrUnsupportedSymbolicForm) {
		t.Errorf("expected ErrUnsupportedSymbolicForm, got %v", err)
	}
}

func TestIntegrateRepeatedQuadratic(t *testing.T) {
	f := mustRat(t, []float64{1}, []float64{1, 0, 2, 0, 1}) // 1/(s^2+1)^2
	if _, err := Integrate(f); !errors.Is(err, lti.ErrUnsupportedSymbolicForm) {
		t.Errorf("expected ErrUnsupportedSymbolicForm, got %v", err)
	}
}

func TestIntegrateDeterministic(t *testing.T) {
	f := mustRat(t, []float64{1, 3}, []float64{1, 4, 5, 2}) // repeated + simple roots
	a, err := Integrate(f)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}
	b, err := Integrate(mustRat(t, []float64{1, 3}, []float64{1, 4, 5, 2}))
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}
	if a.String() != b.String() {
		t.Errorf("integration is not deterministic: %q vs %q", a.String(), b.String())
	}
}
