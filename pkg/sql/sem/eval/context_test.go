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
	"github.com/cockroachdb/sqlscalar/pkg/util/leaktest"
	"github.com/cockroachdb/sqlscalar/pkg/util/log"
	"github.com/cockroachdb/sqlscalar/pkg/util/timeutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestContextWarnings(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	reg := prometheus.NewRegistry()
	ctx := NewTestingEvalContext()
	ctx.Metrics = NewMetrics(reg)
	ctx.Session.MaxWarnings = 2

	warning := pgerror.New(pgcode.InvalidDatetimeFormat, "bad date")
	for i := 0; i < 5; i++ {
		ctx.Warn(warning)
	}
	require.Len(t, ctx.Warnings(), 2)
	require.Equal(t, 3, ctx.DroppedWarnings())
	require.Equal(t, 5.0, testutil.ToFloat64(ctx.Metrics.Warnings.WithLabelValues(pgcode.InvalidDatetimeFormat.String())))

	ctx.RecordError(ErrDivByZero)
	require.Equal(t, 1.0, testutil.ToFloat64(ctx.Metrics.Errors.WithLabelValues(pgcode.DivisionByZero.String())))

	ctx.StartStatement()
	require.Empty(t, ctx.Warnings())
	require.Zero(t, ctx.DroppedWarnings())
}

func TestContextStatementTime(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	ctx := NewTestingEvalContext()
	clock := ctx.TimeSource.(*timeutil.ManualTime)
	first := ctx.StatementTime()
	clock.Advance(time.Hour)
	require.Equal(t, first, ctx.StatementTime())
	ctx.StartStatement()
	require.Equal(t, first.Add(time.Hour), ctx.StatementTime())
}

func TestContextBinding(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	ctx := NewTestingEvalContext()
	ctx.Placeholders = []tree.Value{tree.NewLong(7)}
	v, err := ctx.Binding(0)
	require.NoError(t, err)
	require.Equal(t, int64(7), v.Int64())
	_, err = ctx.Binding(1)
	require.Equal(t, pgcode.InvalidParameterValue, pgerror.GetPGCode(err))
}

func TestStringComparer(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	for _, d := range []struct {
		collation string
		ci        bool
	}{
		{"utf8_general_ci", true},
		{"binary", false},
		{"en", true},
		{"en_cs", false},
	} {
		c, err := NewStringComparer(d.collation)
		require.NoError(t, err)
		require.Equal(t, d.ci, c.CaseInsensitive(), d.collation)
		require.Equal(t, d.ci, c.Compare("abc", "ABC") == 0, d.collation)
	}
}
