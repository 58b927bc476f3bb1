// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"testing"

	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree/treebin"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
	"github.com/cockroachdb/sqlscalar/pkg/util/leaktest"
	"github.com/cockroachdb/sqlscalar/pkg/util/log"
	"github.com/stretchr/testify/require"
)

func TestBinaryResultType(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	const bad = types.UnsupportedFamily
	testData := []struct {
		op   treebin.BinaryOperatorSymbol
		l, r types.Family
		exp  types.Family
	}{
		{treebin.Plus, types.LongFamily, types.DoubleFamily, types.DoubleFamily},
		{treebin.Minus, types.IntFamily, types.IntFamily, types.LongFamily},
		{treebin.Mult, types.UIntFamily, types.UIntFamily, types.UIntFamily},
		{treebin.Plus, types.UBigIntFamily, types.DoubleFamily, types.DoubleFamily},
		{treebin.Div, types.UBigIntFamily, types.LongFamily, types.UBigIntFamily},
		{treebin.Plus, types.DecimalFamily, types.DoubleFamily, types.DecimalFamily},
		{treebin.Plus, types.VarcharFamily, types.LongFamily, types.DoubleFamily},
		{treebin.Plus, types.NullFamily, types.DecimalFamily, types.DecimalFamily},
		{treebin.IntDiv, types.DoubleFamily, types.LongFamily, types.LongFamily},
		{treebin.Mod, types.IntFamily, types.UIntFamily, types.LongFamily},
		{treebin.Bitand, types.TextFamily, types.LongFamily, types.UIntFamily},
		{treebin.LShift, types.DateFamily, types.LongFamily, bad},

		{treebin.Minus, types.DateFamily, types.DateFamily, types.IntervalMillisFamily},
		{treebin.Minus, types.YearFamily, types.YearFamily, types.IntervalMonthFamily},
		{treebin.Minus, types.TimeFamily, types.TimeFamily, types.IntervalMillisFamily},
		{treebin.Plus, types.DateFamily, types.IntervalMonthFamily, types.DateFamily},
		{treebin.Plus, types.IntervalMillisFamily, types.DateTimeFamily, types.DateTimeFamily},
		{treebin.Minus, types.TimestampFamily, types.IntervalMillisFamily, types.TimestampFamily},
		{treebin.Plus, types.TimeFamily, types.IntervalMillisFamily, types.TimeFamily},
		{treebin.Plus, types.TimeFamily, types.IntervalMonthFamily, bad},
		{treebin.Plus, types.YearFamily, types.IntervalMonthFamily, types.YearFamily},
		{treebin.Plus, types.YearFamily, types.IntervalMillisFamily, bad},
		{treebin.Minus, types.IntervalMonthFamily, types.DateFamily, bad},
		{treebin.Plus, types.IntervalMonthFamily, types.IntervalMonthFamily, types.IntervalMonthFamily},
		{treebin.Plus, types.IntervalMonthFamily, types.IntervalMillisFamily, bad},
		{treebin.Mult, types.IntervalMillisFamily, types.LongFamily, types.IntervalMillisFamily},
		{treebin.Mult, types.DoubleFamily, types.IntervalMonthFamily, types.IntervalMonthFamily},
		{treebin.Div, types.IntervalMillisFamily, types.LongFamily, bad},
		{treebin.Minus, types.DateFamily, types.DateTimeFamily, bad},
		{treebin.Plus, types.DateFamily, types.DateFamily, bad},
		{treebin.Mult, types.DateFamily, types.LongFamily, bad},
		{treebin.Plus, types.DateFamily, types.LongFamily, bad},
		{treebin.Plus, types.DateFamily, types.NullFamily, types.DateFamily},
		{treebin.Minus, types.NullFamily, types.DateFamily, types.IntervalMillisFamily},
		{treebin.Plus, types.NullFamily, types.IntervalMonthFamily, types.IntervalMonthFamily},
		{treebin.Minus, types.NullFamily, types.IntervalMillisFamily, types.IntervalMillisFamily},
		{treebin.Mult, types.NullFamily, types.IntervalMonthFamily, types.IntervalMonthFamily},
		{treebin.Div, types.NullFamily, types.IntervalMonthFamily, bad},
		{treebin.IntDiv, types.NullFamily, types.IntervalMillisFamily, bad},
		{treebin.Mod, types.NullFamily, types.IntervalMonthFamily, bad},
		{treebin.Bitand, types.NullFamily, types.IntervalMonthFamily, bad},
	}
	for _, d := range testData {
		res, err := BinaryResultType(d.op, d.l, d.r)
		if d.exp == bad {
			require.Errorf(t, err, "%s %s %s", d.l, d.op, d.r)
			require.Equal(t, pgcode.InvalidArgumentType, pgerror.GetPGCode(err))
			continue
		}
		require.NoErrorf(t, err, "%s %s %s", d.l, d.op, d.r)
		require.Equalf(t, d.exp, res, "%s %s %s", d.l, d.op, d.r)
	}
}

func TestBinaryResultTypeCommutes(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	fams := types.AllFamilies()
	for op := treebin.Plus; op < treebin.NumBinaryOperatorSymbols; op++ {
		if !op.IsCommutative() {
			continue
		}
		for _, l := range fams {
			for _, r := range fams {
				a, errA := BinaryResultType(op, l, r)
				b, errB := BinaryResultType(op, r, l)
				require.Equalf(t, errA == nil, errB == nil, "%s %s %s", l, op, r)
				require.Equalf(t, a, b, "%s %s %s", l, op, r)
			}
		}
	}
}
