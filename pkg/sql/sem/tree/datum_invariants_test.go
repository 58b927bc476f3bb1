// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"testing"

	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
	"github.com/cockroachdb/sqlscalar/pkg/util/leaktest"
	"github.com/cockroachdb/sqlscalar/pkg/util/log"
	"github.com/stretchr/testify/require"
)

func TestAllTypesCastableToString(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)
	for _, typ := range types.AllFamilies() {
		if typ == types.UnsupportedFamily {
			continue
		}
		if _, ok := FindCast(typ, types.VarcharFamily, CastContextExplicit); !ok {
			t.Errorf("%s is not castable to VARCHAR, all types should be", typ)
		}
	}
}

func TestAllTypesCastableFromString(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)
	for _, typ := range types.AllFamilies() {
		if typ == types.UnsupportedFamily || typ == types.NullFamily {
			continue
		}
		if _, ok := FindCast(types.TextFamily, typ, CastContextExplicit); !ok {
			t.Errorf("%s is not castable from TEXT, all types should be", typ)
		}
	}
}

func TestCastContexts(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	testData := []struct {
		src, tgt types.Family
		ctx      CastContext
		ok       bool
	}{
		{types.IntFamily, types.LongFamily, CastContextImplicit, true},
		{types.LongFamily, types.IntFamily, CastContextImplicit, false},
		{types.LongFamily, types.IntFamily, CastContextAssignment, true},
		{types.LongFamily, types.DoubleFamily, CastContextImplicit, true},
		{types.DoubleFamily, types.DecimalFamily, CastContextImplicit, true},
		{types.DateFamily, types.DateTimeFamily, CastContextImplicit, true},
		{types.DateTimeFamily, types.DateFamily, CastContextAssignment, true},
		{types.LongFamily, types.DateFamily, CastContextAssignment, false},
		{types.LongFamily, types.DateFamily, CastContextExplicit, true},
		{types.IntervalMillisFamily, types.IntervalMonthFamily, CastContextExplicit, false},
		{types.IntervalMonthFamily, types.DateFamily, CastContextExplicit, false},
		{types.YearFamily, types.DateFamily, CastContextExplicit, false},
		{types.UnsupportedFamily, types.VarcharFamily, CastContextExplicit, false},
	}
	for _, d := range testData {
		c, ok := FindCast(d.src, d.tgt, d.ctx)
		require.Equalf(t, d.ok, ok, "%s -> %s (%s)", d.src, d.tgt, d.ctx)
		if ok {
			require.Equal(t, d.src, c.Source)
			require.Equal(t, d.tgt, c.Target)
		}
	}
}
