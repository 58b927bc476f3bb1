// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package eval

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
	"github.com/cockroachdb/sqlscalar/pkg/util/duration"
	"github.com/cockroachdb/sqlscalar/pkg/util/timeutil/sqldate"
)

// Comparable reports whether values of families a and b can be
// compared.
func Comparable(a, b types.Family) bool {
	if a == types.NullFamily || b == types.NullFamily {
		return true
	}
	switch {
	case a == types.UnsupportedFamily || b == types.UnsupportedFamily:
		return false
	case a.IsInterval() || b.IsInterval():
		return a.IsInterval() && b.IsInterval()
	case a.IsDateTime() || b.IsDateTime():
		return !a.IsInterval() && !b.IsInterval()
	}
	_, ok := types.NumericPromotion(a, b)
	return ok || (a.IsString() && b.IsString())
}

// CompareValues returns -1, 0 or 1 as a is less than, equal to or
// greater than b. Neither value may be NULL.
//
// Character strings are compared under the session collation and
// binary strings byte-wise. A date/time compared with text parses the
// text; if that fails, both sides are compared as text and a warning is
// recorded. A date/time compared with a number is compared through its
// numeric reading (DATE 2009-12-12 reads 20091212). Numbers compare
// after promotion.
func CompareValues(ctx tree.QueryContext, a, b tree.Value) (int, error) {
	at, bt := a.Type(), b.Type()
	if a.IsNull() || b.IsNull() {
		return 0, errors.AssertionFailedf("comparing NULL")
	}
	switch {
	case at.IsText() && bt.IsText():
		c, err := comparerFor(ctx)
		if err != nil {
			return 0, err
		}
		return c.Compare(a.StringValue(), b.StringValue()), nil
	case at.IsString() && bt.IsString():
		// At least one side is binary.
		x, _ := tree.ExtractString(ctx, a)
		y, _ := tree.ExtractString(ctx, b)
		return strings.Compare(x, y), nil
	case at.IsInterval() && bt.IsInterval():
		return DurationOf(a).Compare(DurationOf(b)), nil
	case at.IsDateTime() && bt.IsDateTime():
		return compareTemporal(ctx, a, b)
	case at.IsDateTime() && bt.IsText():
		return compareTemporalText(ctx, a, b)
	case at.IsText() && bt.IsDateTime():
		c, err := compareTemporalText(ctx, b, a)
		return -c, err
	case at.IsDateTime() && bt.IsNumeric():
		return compareNumeric(ctx, tree.NewLong(temporalInt(ctx, a)), b)
	case at.IsNumeric() && bt.IsDateTime():
		return compareNumeric(ctx, a, tree.NewLong(temporalInt(ctx, b)))
	}
	if !Comparable(at, bt) {
		return 0, pgerror.Newf(pgcode.InvalidArgumentType, "cannot compare %s with %s", at, bt)
	}
	return compareNumeric(ctx, a, b)
}

func temporalInt(ctx tree.QueryContext, v tree.Value) int64 {
	i, _ := tree.ExtractInt64(ctx, v)
	return i
}

func compareInts(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// compareTemporal orders two date/time values. TIME values are
// compared as durations; a TIME against a date is placed on the
// statement date. YEAR values compare by year number.
func compareTemporal(ctx tree.QueryContext, a, b tree.Value) (int, error) {
	at, bt := a.Type(), b.Type()
	switch {
	case at == types.TimeFamily && bt == types.TimeFamily:
		return compareInts(a.TimeEncoded(), b.TimeEncoded()), nil
	case at == types.YearFamily || bt == types.YearFamily:
		return compareInts(yearOf(ctx, a), yearOf(ctx, b)), nil
	}
	x, err := datetimeNumber(ctx, a)
	if err != nil {
		return 0, err
	}
	y, err := datetimeNumber(ctx, b)
	if err != nil {
		return 0, err
	}
	return compareInts(x, y), nil
}

func yearOf(ctx tree.QueryContext, v tree.Value) int64 {
	if v.Type() == types.YearFamily {
		return int64(sqldate.DecodeYear(v.YearEncoded()))
	}
	f, _, err := tree.ExtractDateTime(ctx, v)
	if err != nil {
		return 0
	}
	return int64(f.Year)
}

// datetimeNumber returns the YYYYMMDDhhmmss reading of a date/time
// value.
func datetimeNumber(ctx tree.QueryContext, v tree.Value) (int64, error) {
	f, k, err := tree.ExtractDateTime(ctx, v)
	if err != nil {
		return 0, err
	}
	if k == sqldate.KindTime {
		day := sqldate.FromTime(stmtTime(ctx))
		secs := f.TimeSeconds()
		f = sqldate.AddDays(sqldate.Fields{Year: day.Year, Month: day.Month, Day: day.Day},
			floorDiv(secs, duration.SecsPerDay))
		tod := sqldate.TimeFromSeconds(secs - floorDiv(secs, duration.SecsPerDay)*duration.SecsPerDay)
		f.Hour, f.Minute, f.Second = tod.Hour, tod.Minute, tod.Second
	}
	return sqldate.EncodeDateTime(f), nil
}

func stmtTime(ctx tree.QueryContext) time.Time {
	if ctx == nil {
		ctx = tree.EmptyQueryContext
	}
	return ctx.StatementTime().In(tree.Location(ctx))
}

func compareTemporalText(ctx tree.QueryContext, a, s tree.Value) (int, error) {
	f, k, err := sqldate.Parse(s.StringValue())
	if err != nil {
		if ctx != nil {
			ctx.Warn(err)
		}
		str, err := tree.ExtractString(ctx, a)
		if err != nil {
			return 0, err
		}
		return compareTextFallback(ctx, str, s.StringValue())
	}
	var parsed tree.Value
	switch k {
	case sqldate.KindTime:
		parsed = tree.NewTimeFromFields(f)
	case sqldate.KindDate:
		parsed = tree.NewDateFromFields(f)
	default:
		parsed = tree.NewDateTimeFromFields(f)
	}
	if a.Type() == types.TimeFamily && k != sqldate.KindTime {
		parsed = tree.NewTimeFromFields(sqldate.Fields{Hour: f.Hour, Minute: f.Minute, Second: f.Second})
	}
	return compareTemporal(ctx, a, parsed)
}

func compareTextFallback(ctx tree.QueryContext, a, b string) (int, error) {
	c, err := comparerFor(ctx)
	if err != nil {
		return 0, err
	}
	return c.Compare(a, b), nil
}

func compareNumeric(ctx tree.QueryContext, a, b tree.Value) (int, error) {
	typ, ok := types.NumericPromotion(a.Type(), b.Type())
	if !ok {
		return 0, pgerror.Newf(pgcode.InvalidArgumentType, "cannot compare %s with %s", a.Type(), b.Type())
	}
	unsigned := a.Type() == types.UIntFamily || b.Type() == types.UIntFamily ||
		a.Type() == types.UBigIntFamily || b.Type() == types.UBigIntFamily
	switch {
	case typ == types.LongFamily && !unsigned:
		x, err := tree.ExtractInt64(ctx, a)
		if err != nil {
			return 0, err
		}
		y, err := tree.ExtractInt64(ctx, b)
		if err != nil {
			return 0, err
		}
		return compareInts(x, y), nil
	case typ.IsIntegral():
		x, err := tree.ExtractBigInt(ctx, a)
		if err != nil {
			return 0, err
		}
		y, err := tree.ExtractBigInt(ctx, b)
		if err != nil {
			return 0, err
		}
		return x.Cmp(y), nil
	case typ == types.DecimalFamily:
		x, err := tree.ExtractDecimal(ctx, a)
		if err != nil {
			return 0, err
		}
		y, err := tree.ExtractDecimal(ctx, b)
		if err != nil {
			return 0, err
		}
		return x.Cmp(y), nil
	}
	x, err := tree.ExtractFloat64(ctx, a)
	if err != nil {
		return 0, err
	}
	y, err := tree.ExtractFloat64(ctx, b)
	if err != nil {
		return 0, err
	}
	switch {
	case x < y:
		return -1, nil
	case x > y:
		return 1, nil
	}
	return 0, nil
}
