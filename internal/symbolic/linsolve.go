package symbolic

import (
	"fmt"
	"math/big"

	"regulab/internal/lti"
)

// solveLinear solves A x = b exactly by Gaussian elimination with partial
// (first non-zero) pivoting over the rationals. The matrix is square; a
// singular system reports numeric instability since a reduced partial
// fraction system is always uniquely solvable.
func solveLinear(a [][]*big.Rat, b []*big.Rat) ([]*big.Rat, error) {
	n := len(b)
	m := make([][]*big.Rat, n)
	for i := range m {
		m[i] = make([]*big.Rat, n+1)
		for j := 0; j < n; j++ {
			m[i][j] = new(big.Rat).Set(a[i][j])
		}
		m[i][n] = new(big.Rat).Set(b[i])
	}

	for col := 0; col < n; col++ {
		pivot := -1
		for row := col; row < n; row++ {
			if m[row][col].Sign() != 0 {
				pivot = row
				break
			}
		}
		if pivot < 0 {
			return nil, fmt.Errorf("%w: singular partial-fraction system", lti.ErrNumericInstability)
		}
		m[col], m[pivot] = m[pivot], m[col]
		inv := ratDiv(ratOne(), m[col][col])
		for j := col; j <= n; j++ {
			m[col][j] = ratMul(m[col][j], inv)
		}
		for row := 0; row < n; row++ {
			if row == col || m[row][col].Sign() == 0 {
				continue
			}
			k := new(big.Rat).Set(m[row][col])
			for j := col; j <= n; j++ {
				m[row][j] = ratSub(m[row][j], ratMul(k, m[col][j]))
			}
		}
	}

	x := make([]*big.Rat, n)
	for i := range x {
		x[i] = m[i][n]
	}
	return x, nil
}
