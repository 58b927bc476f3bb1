// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package types

import (
	"testing"

	"github.com/cockroachdb/sqlscalar/pkg/util/leaktest"
	"github.com/stretchr/testify/require"
)

func TestFamilyByName(t *testing.T) {
	defer leaktest.AfterTest(t)()

	for _, f := range AllFamilies() {
		got, ok := FamilyByName(f.String())
		require.True(t, ok, f.String())
		require.Equal(t, f, got)
	}
	for name, exp := range map[string]Family{
		"bigint":   LongFamily,
		" integer": IntFamily,
		"numeric":  DecimalFamily,
		"u_bigint": UBigIntFamily,
	} {
		got, ok := FamilyByName(name)
		require.True(t, ok, name)
		require.Equal(t, exp, got, name)
	}
	_, ok := FamilyByName("geometry")
	require.False(t, ok)
}

func TestNumericPromotion(t *testing.T) {
	defer leaktest.AfterTest(t)()

	testData := []struct {
		a, b Family
		exp  Family
		ok   bool
	}{
		{UIntFamily, UIntFamily, UIntFamily, true},
		{UIntFamily, LongFamily, LongFamily, true},
		{IntFamily, IntFamily, LongFamily, true},
		{LongFamily, UBigIntFamily, UBigIntFamily, true},
		{UBigIntFamily, FloatFamily, DoubleFamily, true},
		{UBigIntFamily, DoubleFamily, DoubleFamily, true},
		{LongFamily, DoubleFamily, DoubleFamily, true},
		{DoubleFamily, DecimalFamily, DecimalFamily, true},
		{LongFamily, DecimalFamily, DecimalFamily, true},
		{VarcharFamily, LongFamily, DoubleFamily, true},
		{TextFamily, DecimalFamily, DecimalFamily, true},
		{BoolFamily, UIntFamily, LongFamily, true},
		{NullFamily, DecimalFamily, DecimalFamily, true},
		{NullFamily, NullFamily, LongFamily, true},
		{DateFamily, LongFamily, UnsupportedFamily, false},
		{IntervalMillisFamily, LongFamily, UnsupportedFamily, false},
	}
	for _, d := range testData {
		res, ok := NumericPromotion(d.a, d.b)
		require.Equal(t, d.ok, ok, "%s, %s", d.a, d.b)
		require.Equal(t, d.exp, res, "%s, %s", d.a, d.b)
		// Promotion is symmetric.
		res, ok = NumericPromotion(d.b, d.a)
		require.Equal(t, d.ok, ok, "%s, %s", d.b, d.a)
		require.Equal(t, d.exp, res, "%s, %s", d.b, d.a)
	}
}

func TestPredicates(t *testing.T) {
	defer leaktest.AfterTest(t)()

	for _, f := range AllFamilies() {
		// The categories are disjoint.
		n := 0
		for _, p := range []bool{f.IsNumeric(), f.IsString(), f.IsDateTime(), f.IsInterval()} {
			if p {
				n++
			}
		}
		require.LessOrEqual(t, n, 1, f.String())
		if f.IsIntegral() || f.IsApproximate() {
			require.True(t, f.IsNumeric(), f.String())
		}
	}
	require.Equal(t, "UNKNOWN", Family(99).String())
}
