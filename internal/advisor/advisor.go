// Package advisor maps step-response metrics to a recommended controller
// topology. The mapping is a fixed threshold ladder; same metrics in, same
// recommendation out.
package advisor

import (
	"fmt"

	"regulab/internal/lti"
	"regulab/internal/step"
)

// ControllerType is one of the four classical topologies.
type ControllerType string

const (
	TypeP   ControllerType = "P"
	TypePI  ControllerType = "PI"
	TypePD  ControllerType = "PD"
	TypePID ControllerType = "PID"
)

// Recommendation pairs a topology with its rationale.
type Recommendation struct {
	Type      ControllerType
	Rationale string
}

const (
	rationaleP   = "The system is already stable and fast; a proportional controller is sufficient."
	rationalePI  = "Steady-state error is possible but the dynamics are stable; PI is appropriate."
	rationalePD  = "The response is oscillatory; derivative action is needed."
	rationalePID = "General case; PID for both accuracy and stability."
)

// Recommend walks the ladder in fixed order:
//
//	overshoot < 1 and settling < 2  -> P
//	overshoot < 10                  -> PI
//	overshoot > 20                  -> PD
//	otherwise                       -> PID
//
// Overshoot of exactly 10 falls through to the PD/PID rules and exactly 20
// lands on PID, exactly as the ladder is written. Undefined overshoot fails
// with lti.ErrIndeterminateRecommendation; an undefined settling time only
// disqualifies the first rule.
func Recommend(m step.Metrics) (Recommendation, error) {
	if !m.Overshoot.Defined {
		return Recommendation{}, fmt.Errorf("%w: overshoot is undefined", lti.ErrIndeterminateRecommendation)
	}
	overshoot := m.Overshoot.Value
	if overshoot < 1 && m.SettlingTime.Defined && m.SettlingTime.Value < 2 {
		return Recommendation{Type: TypeP, Rationale: rationaleP}, nil
	}
	if overshoot < 10 {
		return Recommendation{Type: TypePI, Rationale: rationalePI}, nil
	}
	if overshoot > 20 {
		return Recommendation{Type: TypePD, Rationale: rationalePD}, nil
	}
	return Recommendation{Type: TypePID, Rationale: rationalePID}, nil
}
