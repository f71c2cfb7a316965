package ss

import (
	"errors"
	"math"
	"testing"

	"regulab/internal/lti"
)

func TestCanonicalForm(t *testing.T) {
	// 1/(s^2+2s+1)
	sys := lti.MustNew([]float64{1}, []float64{1, 2, 1})
	m, err := FromTransferFunction(sys)
	if err != nil {
		t.Fatalf("realize failed: %v", err)
	}
	if m.Order() != 2 {
		t.Fatalf("expected order 2, got %d", m.Order())
	}
	if m.A.At(0, 1) != 1 {
		t.Error("expected shifted identity in upper rows")
	}
	if m.A.At(1, 0) != -1 || m.A.At(1, 1) != -2 {
		t.Errorf("expected companion row [-1 -2], got [%f %f]", m.A.At(1, 0), m.A.At(1, 1))
	}
	if m.B.AtVec(0) != 0 || m.B.AtVec(1) != 1 {
		t.Error("expected unit input vector")
	}
	if m.C.AtVec(0) != 1 || m.C.AtVec(1) != 0 {
		t.Errorf("expected output vector [1 0], got [%f %f]", m.C.AtVec(0), m.C.AtVec(1))
	}
	if m.D != 0 {
		t.Errorf("expected no feed-through, got %f", m.D)
	}
}

func TestFeedThroughOnEqualDegrees(t *testing.T) {
	// (2s+1)/(s+1): D = 2
	sys := lti.MustNew([]float64{2, 1}, []float64{1, 1})
	m, err := FromTransferFunction(sys)
	if err != nil {
		t.Fatalf("realize failed: %v", err)
	}
	if m.D != 2 {
		t.Errorf("expected D=2, got %f", m.D)
	}
	// C = b0 - a0*d = 1 - 1*2 = -1
	if m.C.AtVec(0) != -1 {
		t.Errorf("expected C=[-1], got %f", m.C.AtVec(0))
	}
}

func TestLeadingZeroNumerator(t *testing.T) {
	// PID numerator keeps a leading zero; realization must trim it.
	sys := lti.MustNew([]float64{0, 1, 1}, []float64{1, 0})
	m, err := FromTransferFunction(sys)
	if err != nil {
		t.Fatalf("realize failed: %v", err)
	}
	if m.Order() != 1 {
		t.Errorf("expected order 1, got %d", m.Order())
	}
	if m.D != 1 {
		t.Errorf("expected feed-through 1, got %f", m.D)
	}
}

func TestImproperRejected(t *testing.T) {
	sys := lti.MustNew([]float64{1, 0, 0}, []float64{1, 1})
	if _, err := FromTransferFunction(sys); !errors.Is(err, lti.ErrInvalidSystem) {
		t.Errorf("expected ErrInvalidSystem, got %v", err)
	}
}

func TestPureGain(t *testing.T) {
	sys := lti.MustNew([]float64{3}, []float64{2})
	m, err := FromTransferFunction(sys)
	if err != nil {
		t.Fatalf("realize failed: %v", err)
	}
	if m.Order() != 0 || m.D != 1.5 {
		t.Errorf("expected order 0 gain 1.5, got order %d D %f", m.Order(), m.D)
	}
}

func TestDerivativeAndOutput(t *testing.T) {
	// 1/(s+1): x' = -x + u, y = x.
	sys := lti.MustNew([]float64{1}, []float64{1, 1})
	m, err := FromTransferFunction(sys)
	if err != nil {
		t.Fatalf("realize failed: %v", err)
	}
	dst := make([]float64, 1)
	m.Derivative(dst, []float64{0.5}, 1)
	if math.Abs(dst[0]-0.5) > 1e-12 {
		t.Errorf("expected x'=0.5, got %f", dst[0])
	}
	if y := m.Output([]float64{0.5}, 1); math.Abs(y-0.5) > 1e-12 {
		t.Errorf("expected y=0.5, got %f", y)
	}
}
