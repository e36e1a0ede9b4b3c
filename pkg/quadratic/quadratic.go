// Package quadratic finds the integer roots of ax² + bx + c = 0.
//
// Arithmetic is exact: the discriminant and the divisions are carried out on
// [big.Int], so large coefficients neither overflow nor lose precision the
// way a floating-point square root would.
package quadratic

import (
	"errors"
	"math/big"
	"slices"
)

// ErrDegenerate is returned when a, b and c are all zero; every integer is
// then a root.
var ErrDegenerate = errors.New("all coefficients are zero")

// Roots returns the distinct integers x with ax² + bx + c = 0 in ascending
// order. The result is empty, never nil, when there are none.
func Roots(a, b, c int64) ([]int64, error) {
	switch {
	case a == 0 && b == 0 && c == 0:
		return nil, ErrDegenerate
	case a == 0:
		return linearRoot(b, c), nil
	}

	A, B, C := big.NewInt(a), big.NewInt(b), big.NewInt(c)

	// disc = b² - 4ac
	disc := new(big.Int).Mul(B, B)
	disc.Sub(disc, new(big.Int).Mul(big.NewInt(4), new(big.Int).Mul(A, C)))
	if disc.Sign() < 0 {
		return []int64{}, nil
	}
	s := new(big.Int).Sqrt(disc)
	if new(big.Int).Mul(s, s).Cmp(disc) != 0 {
		return []int64{}, nil
	}

	den := new(big.Int).Mul(big.NewInt(2), A)
	negB := new(big.Int).Neg(B)

	roots := []int64{}
	for _, num := range []*big.Int{new(big.Int).Add(negB, s), new(big.Int).Sub(negB, s)} {
		q, r := new(big.Int).QuoRem(num, den, new(big.Int))
		if r.Sign() == 0 && q.IsInt64() {
			roots = append(roots, q.Int64())
		}
	}
	slices.Sort(roots)
	return slices.Compact(roots), nil
}

// linearRoot solves bx + c = 0 for b or c non-zero.
func linearRoot(b, c int64) []int64 {
	if b == 0 {
		return []int64{}
	}
	q, r := new(big.Int).QuoRem(big.NewInt(-c), big.NewInt(b), new(big.Int))
	if r.Sign() != 0 || !q.IsInt64() {
		return []int64{}
	}
	return []int64{q.Int64()}
}
