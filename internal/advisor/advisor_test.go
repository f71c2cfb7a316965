package advisor

import (
	"errors"
	"testing"

	"regulab/internal/lti"
	"regulab/internal/step"
)

func metrics(overshoot, settling float64) step.Metrics {
	return step.Metrics{
		SteadyState:  step.Measure{Value: 1, Defined: true},
		Overshoot:    step.Measure{Value: overshoot, Defined: true},
		SettlingTime: step.Measure{Value: settling, Defined: true},
	}
}

func TestLadder(t *testing.T) {
	cases := []struct {
		name      string
		overshoot float64
		settling  float64
		want      ControllerType
	}{
		{"fast and flat", 0.5, 1.5, TypeP},
		{"flat but slow", 0.5, 4.0, TypePI},
		{"mild overshoot", 5.0, 1.0, TypePI},
		{"heavy ringing", 45.0, 12.0, TypePD},
		{"boundary ten", 10.0, 3.0, TypePID},
		{"boundary twenty", 20.0, 3.0, TypePID},
		{"between ten and twenty", 15.0, 3.0, TypePID},
		{"just above twenty", 20.1, 3.0, TypePD},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := Recommend(metrics(tc.overshoot, tc.settling))
			if err != nil {
				t.Fatalf("recommend failed: %v", err)
			}
			if rec.Type != tc.want {
				t.Errorf("expected %s, got %s", tc.want, rec.Type)
			}
			if rec.Rationale == "" {
				t.Error("expected a rationale")
			}
		})
	}
}

func TestUndefinedOvershootIsIndeterminate(t *testing.T) {
	m := step.Metrics{Overshoot: step.Measure{Err: step.ErrUnstable}}
	_, err := Recommend(m)
	if !errors.Is(err, lti.ErrIndeterminateRecommendation) {
		t.Errorf("expected ErrIndeterminateRecommendation, got %v", err)
	}
}

func TestUndefinedSettlingSkipsFirstRule(t *testing.T) {
	m := step.Metrics{
		SteadyState:  step.Measure{Value: 1, Defined: true},
		Overshoot:    step.Measure{Value: 0.2, Defined: true},
		SettlingTime: step.Measure{Err: step.ErrNotSettled},
	}
	rec, err := Recommend(m)
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if rec.Type != TypePI {
		t.Errorf("expected PI when settling is undefined, got %s", rec.Type)
	}
}

func TestDeterminism(t *testing.T) {
	a, _ := Recommend(metrics(7, 3))
	b, _ := Recommend(metrics(7, 3))
	if a != b {
		t.Error("same metrics must yield the same recommendation")
	}
}
