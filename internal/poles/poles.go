// Package poles computes transfer-function poles as eigenvalues of the
// denominator's companion matrix. One deterministic algorithm, no fallback
// path: gonum's Eigen on the monic companion form.
package poles

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"regulab/internal/lti"
)

// DefaultEpsilon is the clustering tolerance for repeated roots.
const DefaultEpsilon = 1e-9

// Poles returns the roots of the denominator polynomial, sorted by ascending
// real part with ties broken by ascending imaginary part. A degree-zero
// denominator has no poles. Imaginary parts within eps of zero are snapped
// to the real axis so conjugate rounding noise cannot break determinism.
func Poles(sys lti.TransferFunction, eps float64) ([]complex128, error) {
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	den := sys.Den()
	n := len(den) - 1
	if n == 0 {
		return nil, nil
	}

	// Monic companion matrix: subdiagonal ones, last row -a0..-a(n-1).
	lead := den[0]
	c := mat.NewDense(n, n, nil)
	for i := 1; i < n; i++ {
		c.Set(i-1, i, 1)
	}
	for j := 0; j < n; j++ {
		c.Set(n-1, j, -den[n-j]/lead)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(c, mat.EigenNone); !ok {
		return nil, fmt.Errorf("%w: companion eigendecomposition failed", lti.ErrNumericInstability)
	}
	values := eig.Values(nil)

	// A root of multiplicity m is recovered to roughly eps^(1/m), so the
	// snapping tolerance is sqrt(eps), not eps itself.
	snap := math.Sqrt(eps)
	out := make([]complex128, n)
	for i, v := range values {
		re, im := real(v), imag(v)
		if math.Abs(im) < snap {
			im = 0
		}
		out[i] = complex(re, im)
	}
	sort.Slice(out, func(i, j int) bool {
		if real(out[i]) != real(out[j]) {
			return real(out[i]) < real(out[j])
		}
		return imag(out[i]) < imag(out[j])
	})
	return out, nil
}

// Group is a pole cluster with its multiplicity.
type Group struct {
	Value        complex128
	Multiplicity int
}

// GroupByMultiplicity clusters sorted poles that lie within eps of each
// other, averaging each cluster so repeated roots report one value with the
// correct multiplicity.
func GroupByMultiplicity(poles []complex128, eps float64) []Group {
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	// Same conditioning argument as in Poles: repeated eigenvalues scatter
	// at the square root of the working tolerance.
	eps = math.Sqrt(eps)
	var groups []Group
	for _, p := range poles {
		if len(groups) > 0 {
			last := &groups[len(groups)-1]
			if closeTo(last.Value, p, eps) {
				// Running mean keeps the cluster centered.
				m := float64(last.Multiplicity)
				last.Value = (last.Value*complex(m, 0) + p) / complex(m+1, 0)
				last.Multiplicity++
				continue
			}
		}
		groups = append(groups, Group{Value: p, Multiplicity: 1})
	}
	return groups
}

func closeTo(a, b complex128, eps float64) bool {
	scale := math.Max(1, math.Max(cmplxAbs(a), cmplxAbs(b)))
	return cmplxAbs(a-b) <= eps*scale
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}
