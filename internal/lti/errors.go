package lti

import "errors"

// Domain errors shared across the analysis pipeline.
var (
	// ErrInvalidSystem indicates a malformed or degenerate polynomial system.
	ErrInvalidSystem = errors.New("lti: invalid system (degenerate denominator)")

	// ErrInvalidGains indicates a non-finite controller gain.
	ErrInvalidGains = errors.New("lti: invalid gains (NaN or Inf)")

	// ErrNumericInstability indicates a root finder or integrator failed to
	// converge within its iteration bound.
	ErrNumericInstability = errors.New("lti: numeric instability (bound exceeded)")

	// ErrDivisionByZero indicates a metric that divides by a zero or
	// undefined steady-state value.
	ErrDivisionByZero = errors.New("lti: division by zero steady state")

	// ErrUnsupportedSymbolicForm indicates no closed-form expression was found.
	ErrUnsupportedSymbolicForm = errors.New("lti: no closed symbolic form")

	// ErrIndeterminateRecommendation indicates the advisor was invoked with
	// undefined metrics.
	ErrIndeterminateRecommendation = errors.New("lti: indeterminate recommendation")
)
