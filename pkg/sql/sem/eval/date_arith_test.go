// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package eval

import (
	"testing"
	"time"

	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree/treebin"
	"github.com/cockroachdb/sqlscalar/pkg/util/duration"
	"github.com/cockroachdb/sqlscalar/pkg/util/leaktest"
	"github.com/cockroachdb/sqlscalar/pkg/util/log"
	"github.com/cockroachdb/sqlscalar/pkg/util/timeutil/sqldate"
	"github.com/stretchr/testify/require"
)

func date(y, m, d int) tree.Value {
	return tree.NewDateFromFields(sqldate.Fields{Year: y, Month: m, Day: d})
}

func datetime(y, mo, d, h, mi, s int) tree.Value {
	return tree.NewDateTimeFromFields(sqldate.Fields{Year: y, Month: mo, Day: d, Hour: h, Minute: mi, Second: s})
}

func year(y int) tree.Value {
	return tree.NewYear(sqldate.EncodeYear(y))
}

func days(n int64) tree.Value {
	return tree.NewIntervalMillis(n * duration.MillisPerDay)
}

func TestDateArith(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	ctx := NewTestingEvalContext()
	testData := []struct {
		op       treebin.BinaryOperatorSymbol
		l, r     tree.Value
		expected string
	}{
		{treebin.Plus, date(2009, 12, 12), days(12), "2009-12-24"},
		{treebin.Plus, days(12), date(2009, 12, 12), "2009-12-24"},
		{treebin.Minus, date(2009, 3, 1), days(1), "2009-02-28"},
		{treebin.Plus, date(2009, 1, 31), tree.NewIntervalMonth(1), "2009-02-28"},
		{treebin.Plus, date(2008, 1, 31), tree.NewIntervalMonth(1), "2008-02-29"},
		{treebin.Minus, date(2009, 3, 31), tree.NewIntervalMonth(13), "2008-02-29"},
		{treebin.Plus, datetime(2009, 12, 31, 23, 59, 59), tree.NewIntervalMillis(1000), "2010-01-01 00:00:00"},
		{treebin.Plus, tree.NewTime(235959), tree.NewIntervalMillis(1000), "24:00:00"},
		{treebin.Minus, tree.NewTime(0), tree.NewIntervalMillis(3600 * 1000), "-01:00:00"},
		{treebin.Minus, year(2006), year(1991), "15 years"},
		{treebin.Plus, year(2006), tree.NewIntervalMonth(24), "2008"},
		{treebin.Minus, date(2009, 12, 24), date(2009, 12, 12), "12 days"},
		{treebin.Minus, datetime(2009, 12, 12, 1, 0, 0), datetime(2009, 12, 12, 0, 0, 0), "01:00:00"},
		{treebin.Minus, tree.NewTimestamp(100), tree.NewTimestamp(40), "00:01:00"},
		{treebin.Plus, tree.NewIntervalMonth(14), tree.NewIntervalMonth(1), "1 year 3 mons"},
		{treebin.Mult, tree.NewIntervalMillis(1000), tree.NewLong(3), "00:00:03"},
		{treebin.Mult, tree.NewDouble(1.5), tree.NewIntervalMillis(1000), "00:00:01.500"},
	}
	for _, d := range testData {
		res, err := binary(ctx, d.op, d.l, d.r)
		require.NoError(t, err, "%s %s %s", d.l, d.op, d.r)
		require.Equal(t, d.expected, res.String(), "%s %s %s", d.l, d.op, d.r)
	}
	require.Empty(t, ctx.Warnings())
}

func TestDateArithOutOfRange(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	testData := []struct {
		op   treebin.BinaryOperatorSymbol
		l, r tree.Value
	}{
		{treebin.Plus, tree.NewTime(8385959), tree.NewIntervalMillis(1000)},
		{treebin.Plus, year(2155), tree.NewIntervalMonth(12)},
		{treebin.Plus, date(9999, 12, 31), days(1)},
		{treebin.Plus, tree.NewDate(0), days(1)},
	}
	for _, d := range testData {
		ctx := NewTestingEvalContext()
		res, err := binary(ctx, d.op, d.l, d.r)
		require.NoError(t, err)
		require.True(t, res.IsNull(), "%s %s %s = %s", d.l, d.op, d.r, res)
		require.Len(t, ctx.Warnings(), 1)
	}
}

func TestToTime(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	ctx := NewTestingEvalContext()
	tm, k, err := ToTime(ctx, tree.NewVarchar("2009-12-12 10:11:12"))
	require.NoError(t, err)
	require.Equal(t, sqldate.KindDateTime, k)
	require.Equal(t, time.Date(2009, 12, 12, 10, 11, 12, 0, time.UTC), tm)

	_, _, err = ToTime(ctx, tree.NewTime(101112))
	require.Equal(t, pgcode.InvalidDatetimeFormat, pgerror.GetPGCode(err))
}
