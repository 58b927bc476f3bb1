// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package arith

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignedWithOverflow(t *testing.T) {
	testData := []struct {
		fn     func(a, b int64) (int64, bool)
		a, b   int64
		result int64
		ok     bool
	}{
		{AddWithOverflow, 1, 2, 3, true},
		{AddWithOverflow, math.MaxInt64, 1, 0, false},
		{AddWithOverflow, math.MinInt64, -1, 0, false},
		{AddWithOverflow, math.MinInt64, math.MaxInt64, -1, true},
		{SubWithOverflow, 5, 2, 3, true},
		{SubWithOverflow, math.MinInt64, 1, 0, false},
		{SubWithOverflow, math.MaxInt64, -1, 0, false},
		{SubWithOverflow, 0, math.MinInt64, 0, false},
		{MulWithOverflow, 3, -4, -12, true},
		{MulWithOverflow, math.MaxInt64, 2, 0, false},
		{MulWithOverflow, math.MinInt64, -1, 0, false},
		{MulWithOverflow, math.MinInt64, 1, math.MinInt64, true},
		{MulWithOverflow, 0, math.MinInt64, 0, true},
	}
	for i, d := range testData {
		r, ok := d.fn(d.a, d.b)
		require.Equal(t, d.ok, ok, "case %d", i)
		if ok {
			require.Equal(t, d.result, r, "case %d", i)
		}
	}
}

func TestUnsignedWithOverflow(t *testing.T) {
	r, ok := UnsignedAddWithOverflow(math.MaxUint64, 1)
	require.False(t, ok)
	r, ok = UnsignedSubWithOverflow(1, 2)
	require.False(t, ok)
	r, ok = UnsignedSubWithOverflow(5, 2)
	require.True(t, ok)
	require.Equal(t, uint64(3), r)
	_, ok = UnsignedMulWithOverflow(math.MaxUint32+1, math.MaxUint32+1)
	require.False(t, ok)
}

func TestTruncDiv(t *testing.T) {
	q, rem, ok := TruncDiv(-7, 2)
	require.True(t, ok)
	require.Equal(t, int64(-3), q)
	require.Equal(t, int64(-1), rem)
	_, _, ok = TruncDiv(math.MinInt64, -1)
	require.False(t, ok)
	require.True(t, InRange[int64](5, 0, 10))
	require.False(t, InRange[int64](-1, 0, 10))
}
