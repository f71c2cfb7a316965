package analysis

import (
	"math"
	"testing"

	"regulab/internal/lti"
)

func TestBodeFirstOrderLag(t *testing.T) {
	sys := lti.MustNew([]float64{1}, []float64{1, 1})
	pts, err := Bode(sys, 0.01, 100, 200)
	if err != nil {
		t.Fatalf("bode failed: %v", err)
	}
	if len(pts) != 200 {
		t.Fatalf("expected 200 points, got %d", len(pts))
	}

	// DC gain 0 dB, phase 0; far above the corner the slope is -20 dB/dec
	// and the phase approaches -90.
	first, last := pts[0], pts[len(pts)-1]
	if math.Abs(first.MagnitudeDB) > 0.01 {
		t.Errorf("expected ~0 dB at low frequency, got %f", first.MagnitudeDB)
	}
	if math.Abs(first.PhaseDeg) > 1 {
		t.Errorf("expected ~0 phase at low frequency, got %f", first.PhaseDeg)
	}
	if math.Abs(last.MagnitudeDB+40) > 0.1 {
		t.Errorf("expected ~-40 dB at w=100, got %f", last.MagnitudeDB)
	}
	if math.Abs(last.PhaseDeg+89.4) > 1 {
		t.Errorf("expected ~-89 phase at w=100, got %f", last.PhaseDeg)
	}
}

func TestBodeCornerFrequency(t *testing.T) {
	sys := lti.MustNew([]float64{1}, []float64{1, 1})
	pts, err := Bode(sys, 1, 1, 2)
	if err == nil {
		t.Fatal("expected error for degenerate range")
	}
	_ = pts

	pts, err = Bode(sys, 0.999, 1.001, 3)
	if err != nil {
		t.Fatalf("bode failed: %v", err)
	}
	// |G(j1)| = 1/sqrt(2) = -3.01 dB, phase -45.
	mid := pts[1]
	if math.Abs(mid.MagnitudeDB+3.01) > 0.05 {
		t.Errorf("expected -3 dB at corner, got %f", mid.MagnitudeDB)
	}
	if math.Abs(mid.PhaseDeg+45) > 0.5 {
		t.Errorf("expected -45 phase at corner, got %f", mid.PhaseDeg)
	}
}

func TestBodePhaseUnwrapping(t *testing.T) {
	// Third-order system passes through -180 without wrapping back to +180.
	sys := lti.MustNew([]float64{1}, []float64{1, 3, 3, 1})
	pts, err := Bode(sys, 0.01, 1000, 400)
	if err != nil {
		t.Fatalf("bode failed: %v", err)
	}
	for i := 1; i < len(pts); i++ {
		if math.Abs(pts[i].PhaseDeg-pts[i-1].PhaseDeg) > 180 {
			t.Fatalf("phase jump at w=%g: %f -> %f", pts[i].Omega, pts[i-1].PhaseDeg, pts[i].PhaseDeg)
		}
	}
	last := pts[len(pts)-1]
	if last.PhaseDeg > -260 || last.PhaseDeg < -280 {
		t.Errorf("expected phase near -270 at high frequency, got %f", last.PhaseDeg)
	}
}

func TestBodeRejectsBadRange(t *testing.T) {
	sys := lti.MustNew([]float64{1}, []float64{1, 1})
	if _, err := Bode(sys, -1, 10, 10); err == nil {
		t.Error("expected error for negative wmin")
	}
	if _, err := Bode(sys, 1, 10, 1); err == nil {
		t.Error("expected error for too few points")
	}
}
