// Package symbolic derives exact closed-form expressions from transfer
// functions. All arithmetic runs over math/big.Rat, so simplification,
// differentiation and integration are exact, deterministic, and independent
// of evaluation order.
//
// A [RatFunc] is the symbolic view N(s)/D(s) of a coefficient pair. Its
// [RatFunc.Derivative] applies the quotient rule and cancels the polynomial
// GCD. [Integrate] produces an antiderivative [Expr] through exact
// partial-fraction decomposition: square-free factorization (Yun), rational
// root extraction, and log/atan terms for irreducible quadratics, with
// square roots kept as exact surd nodes. When no closed form is reachable
// the error is lti.ErrUnsupportedSymbolicForm, never a numeric stand-in.
package symbolic
