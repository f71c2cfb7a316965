// Package lti defines the transfer-function value type shared by the whole
// analysis pipeline, along with PID synthesis and unity-feedback composition.
//
// A [TransferFunction] is an immutable numerator/denominator coefficient pair
// (highest degree first). Every transformation returns a fresh value, so a
// pipeline invocation is self-contained and safe to re-enter:
//
//	plant := lti.MustNew([]float64{1}, []float64{1, 2, 1})
//	ctrl, warn, _ := lti.PID(1.0, 1.0, 0.1)
//	closed, _ := lti.Feedback(ctrl, plant)
//
// The package also declares the sentinel errors used by the downstream
// symbolic, pole, simulation and advisor packages.
package lti
