// Package ss realizes a proper transfer function in controllable canonical
// state-space form, the shape the step simulator integrates.
package ss

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"regulab/internal/lti"
)

// StateSpace is x' = A x + B u, y = C x + D u with a single input and
// output. Order zero (a pure gain) has nil matrices and only D set.
type StateSpace struct {
	A *mat.Dense
	B *mat.VecDense
	C *mat.VecDense
	D float64

	order int
}

// Order is the state dimension, the denominator degree.
func (s *StateSpace) Order() int { return s.order }

// FromTransferFunction builds the controllable canonical realization: the
// companion matrix of the denominator as A, a unit input vector B, the
// padded numerator as C, and the leading-coefficient ratio as D when
// numerator and denominator degree match. Improper systems (numerator
// degree above denominator degree) cannot be realized.
func FromTransferFunction(sys lti.TransferFunction) (*StateSpace, error) {
	if !sys.Proper() {
		return nil, fmt.Errorf("%w: improper transfer function", lti.ErrInvalidSystem)
	}
	den := sys.Den()
	n := len(den) - 1
	lead := den[0]

	// Ascending normalized coefficients a0..a(n-1) and b0..bn.
	a := make([]float64, n)
	for i := 0; i < n; i++ {
		a[i] = den[n-i] / lead
	}
	num := sys.Num()
	for len(num) > 1 && num[0] == 0 {
		num = num[1:]
	}
	b := make([]float64, n+1)
	for i, c := range num {
		b[len(num)-1-i] = c / lead
	}

	d := b[n]
	if n == 0 {
		return &StateSpace{D: d}, nil
	}

	A := mat.NewDense(n, n, nil)
	for i := 0; i < n-1; i++ {
		A.Set(i, i+1, 1)
	}
	for j := 0; j < n; j++ {
		A.Set(n-1, j, -a[j])
	}

	B := mat.NewVecDense(n, nil)
	B.SetVec(n-1, 1)

	C := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		C.SetVec(i, b[i]-a[i]*d)
	}

	return &StateSpace{A: A, B: B, C: C, D: d, order: n}, nil
}

// Derivative writes A x + B u into dst.
func (s *StateSpace) Derivative(dst, x []float64, u float64) {
	for i := 0; i < s.order; i++ {
		acc := s.B.AtVec(i) * u
		for j := 0; j < s.order; j++ {
			acc += s.A.At(i, j) * x[j]
		}
		dst[i] = acc
	}
}

// Output is y = C x + D u.
func (s *StateSpace) Output(x []float64, u float64) float64 {
	y := s.D * u
	for i := 0; i < s.order; i++ {
		y += s.C.AtVec(i) * x[i]
	}
	return y
}
