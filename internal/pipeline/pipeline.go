// Package pipeline runs the full analysis chain on a transfer function:
// exact symbolic forms, poles, step response, and the controller
// recommendation. Stages are independent; a failure in one is recorded on
// its field and the remaining stages still run.
package pipeline

import (
	"regulab/internal/advisor"
	"regulab/internal/lti"
	"regulab/internal/poles"
	"regulab/internal/step"
	"regulab/internal/symbolic"
)

// Report collects every analysis product. Fields that can fail carry their
// error next to the value; a nil error means the value is usable.
type Report struct {
	System lti.TransferFunction

	Expression      string
	ExpressionLaTeX string

	Derivative      string
	DerivativeLaTeX string

	Integral      string
	IntegralLaTeX string
	IntegralErr   error

	Poles      []complex128
	PoleGroups []poles.Group
	PolesErr   error

	Response    *step.Response
	ResponseErr error

	Recommendation    advisor.Recommendation
	RecommendationErr error
}

// Analyze validates the coefficient pair and runs every stage on it. The
// returned error is non-nil only when no system can be formed at all.
func Analyze(num, den []float64, cfg step.Config) (*Report, error) {
	sys, err := lti.New(num, den)
	if err != nil {
		return nil, err
	}
	return analyzeSystem(sys, normalize(cfg)), nil
}

func analyzeSystem(sys lti.TransferFunction, cfg step.Config) *Report {
	r := &Report{System: sys}

	f := symbolic.FromTransferFunction(sys)
	r.Expression = f.String()
	r.ExpressionLaTeX = f.LaTeX()

	df := f.Derivative()
	r.Derivative = df.String()
	r.DerivativeLaTeX = df.LaTeX()

	if integral, err := symbolic.Integrate(f); err != nil {
		r.IntegralErr = err
	} else {
		r.Integral = integral.String()
		r.IntegralLaTeX = integral.LaTeX()
	}

	if ps, err := poles.Poles(sys, cfg.Epsilon); err != nil {
		r.PolesErr = err
	} else {
		r.Poles = ps
		r.PoleGroups = poles.GroupByMultiplicity(ps, cfg.Epsilon)
	}

	if resp, err := step.Simulate(sys, cfg); err != nil {
		r.ResponseErr = err
		r.RecommendationErr = err
	} else {
		r.Response = resp
		r.Recommendation, r.RecommendationErr = advisor.Recommend(resp.Metrics)
	}

	return r
}

// ClosedLoop is the result of synthesizing a PID controller and closing the
// unity negative feedback loop around it and the plant.
type ClosedLoop struct {
	Controller lti.TransferFunction
	Warning    string // non-empty when a gain is negative
	System     lti.TransferFunction
	Report     *Report
}

// CloseLoop builds C(s) from the gains, forms the closed loop with the
// plant, and analyzes the result.
func CloseLoop(plant lti.TransferFunction, kp, ki, kd float64, cfg step.Config) (*ClosedLoop, error) {
	ctrl, warning, err := lti.PID(kp, ki, kd)
	if err != nil {
		return nil, err
	}
	closed, err := lti.Feedback(ctrl, plant)
	if err != nil {
		return nil, err
	}
	cfg = normalize(cfg)
	return &ClosedLoop{
		Controller: ctrl,
		Warning:    warning,
		System:     closed,
		Report:     analyzeSystem(closed, cfg),
	}, nil
}

// normalize fills in the epsilon used outside step.Simulate, which applies
// its own defaults internally.
func normalize(cfg step.Config) step.Config {
	if cfg.Epsilon == 0 {
		cfg.Epsilon = step.DefaultConfig().Epsilon
	}
	return cfg
}
