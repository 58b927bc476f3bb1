// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package arith

import (
	"math"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// AddWithOverflow returns a+b. If ok is false, a+b overflowed.
func AddWithOverflow(a, b int64) (r int64, ok bool) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, false
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, false
	}
	return a + b, true
}

// SubWithOverflow returns a-b. If ok is false, a-b overflowed.
func SubWithOverflow(a, b int64) (r int64, ok bool) {
	if b < 0 && a > math.MaxInt64+b {
		return 0, false
	}
	if b > 0 && a < math.MinInt64+b {
		return 0, false
	}
	return a - b, true
}

// MulWithOverflow returns a*b. If ok is false, a*b overflowed.
func MulWithOverflow(a, b int64) (r int64, ok bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if (c < 0) == ((a < 0) != (b < 0)) && c/b == a {
		return c, true
	}
	return 0, false
}

// UnsignedAddWithOverflow returns a+b for unsigned operands.
func UnsignedAddWithOverflow(a, b uint64) (r uint64, ok bool) {
	sum, carry := bits.Add64(a, b, 0)
	return sum, carry == 0
}

// UnsignedSubWithOverflow returns a-b; it overflows when b > a.
func UnsignedSubWithOverflow(a, b uint64) (r uint64, ok bool) {
	diff, borrow := bits.Sub64(a, b, 0)
	return diff, borrow == 0
}

// UnsignedMulWithOverflow returns a*b for unsigned operands.
func UnsignedMulWithOverflow(a, b uint64) (r uint64, ok bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi == 0
}

// InRange reports whether v fits in the inclusive range [lo, hi].
func InRange[T constraints.Integer](v, lo, hi T) bool {
	return v >= lo && v <= hi
}

// TruncDiv returns a/b truncated toward zero and a%b, where the
// remainder has the sign of the dividend. The caller rules out b == 0.
// MinInt64 / -1 overflows.
func TruncDiv(a, b int64) (q, rem int64, ok bool) {
	if a == math.MinInt64 && b == -1 {
		return 0, 0, false
	}
	return a / b, a % b, true
}
