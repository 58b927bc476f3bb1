// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package eval

import (
	"math"
	"testing"

	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
	"github.com/cockroachdb/sqlscalar/pkg/util/leaktest"
	"github.com/cockroachdb/sqlscalar/pkg/util/log"
	"github.com/stretchr/testify/require"
)

func TestCompareValues(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	ctx := NewTestingEvalContext()
	testData := []struct {
		a, b     tree.Value
		expected int
	}{
		{tree.NewLong(1), tree.NewLong(2), -1},
		{tree.NewLong(2), tree.NewDouble(1.5), 1},
		{tree.NewLong(-1), tree.NewUInt(math.MaxUint64), -1},
		{tree.NewUInt(math.MaxUint64), tree.NewLong(math.MaxInt64), 1},
		{decimal(t, "3.00"), tree.NewLong(3), 0},
		{tree.NewVarchar("10"), tree.NewLong(9), 1},
		{tree.NewVarchar("abc"), tree.NewText("ABC"), 0},
		{tree.NewVarchar("abc"), tree.NewVarchar("abd"), -1},
		{tree.NewVarbinary([]byte("abc")), tree.NewVarbinary([]byte("ABC")), 1},
		{date(2009, 12, 12), datetime(2009, 12, 12, 0, 0, 0), 0},
		{date(2009, 12, 12), datetime(2009, 12, 12, 0, 0, 1), -1},
		{date(2009, 12, 12), tree.NewVarchar("2009-12-12"), 0},
		{tree.NewVarchar("2010-01-01"), date(2009, 12, 12), 1},
		{date(2009, 12, 12), tree.NewLong(20091212), 0},
		{tree.NewTime(-10000), tree.NewTime(0), -1},
		{year(2006), year(1991), 1},
		{year(2009), date(2009, 1, 1), 0},
		{tree.NewIntervalMonth(1), tree.NewIntervalMillis(1000), 1},
		{tree.NewBool(true), tree.NewLong(1), 0},
	}
	for _, d := range testData {
		c, err := CompareValues(ctx, d.a, d.b)
		require.NoError(t, err, "%s vs %s", d.a, d.b)
		require.Equal(t, d.expected, c, "%s (%s) vs %s (%s)", d.a, d.a.Type(), d.b, d.b.Type())
	}
}

func TestCompareValuesCollation(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	ctx := NewTestingEvalContext()
	ctx.Session.Collation = "binary"
	c, err := CompareValues(ctx, tree.NewVarchar("abc"), tree.NewVarchar("ABC"))
	require.NoError(t, err)
	require.Equal(t, 1, c)

	ctx.Session.Collation = "de_ci"
	c, err = CompareValues(ctx, tree.NewVarchar("Äpfel"), tree.NewVarchar("apfel"))
	require.NoError(t, err)
	require.Equal(t, 1, c)
}

func TestCompareValuesErrors(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	ctx := NewTestingEvalContext()
	_, err := CompareValues(ctx, tree.NewIntervalMillis(1), tree.NewLong(1))
	require.Equal(t, pgcode.InvalidArgumentType, pgerror.GetPGCode(err))
	require.False(t, Comparable(types.IntervalMonthFamily, types.DateFamily))
	require.True(t, Comparable(types.NullFamily, types.DateFamily))

	// Text that is not a date falls back to a string comparison.
	c, err := CompareValues(ctx, date(2009, 12, 12), tree.NewVarchar("zzz"))
	require.NoError(t, err)
	require.Equal(t, -1, c)
	require.Len(t, ctx.Warnings(), 1)
}
