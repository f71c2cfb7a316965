package lti

import "fmt"

// Feedback closes the loop around controller*plant under unity negative
// feedback:
//
//	G_cl(s) = Nc*Np / (Dc*Dp + Nc*Np)
//
// The products and sum are exact polynomial convolution/addition; no
// pole-zero cancellation is performed, since cancellation needs tolerance-
// based root finding and would silently lose exactness. Callers wanting a
// reduced form must cancel explicitly.
func Feedback(controller, plant TransferFunction) (TransferFunction, error) {
	num := polyMul(controller.num, plant.num)
	den := polyAdd(polyMul(controller.den, plant.den), num)
	if allZero(den) {
		return TransferFunction{}, fmt.Errorf("%w: closed-loop denominator is identically zero", ErrInvalidSystem)
	}
	return New(num, den)
}

// Series multiplies two transfer functions without closing the loop.
func Series(a, b TransferFunction) (TransferFunction, error) {
	return New(polyMul(a.num, b.num), polyMul(a.den, b.den))
}
