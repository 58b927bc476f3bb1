// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package eval

import (
	"math"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
	"github.com/cockroachdb/sqlscalar/pkg/util/timeutil/sqldate"
)

// PerformCast converts v to the family target. A value already of the
// target family is returned unchanged. Text that does not denote a
// date/time yields a NULL and a warning rather than an error.
func PerformCast(ctx tree.QueryContext, v tree.Value, target types.Family) (tree.Value, error) {
	if v.IsNull() {
		return tree.TypedNull(target), nil
	}
	src := v.Type()
	if src == target {
		return v, nil
	}
	if _, ok := tree.FindCast(src, target, tree.CastContextExplicit); !ok {
		return tree.Value{}, pgerror.Newf(pgcode.InvalidArgumentType,
			"invalid cast: %s -> %s", src, target)
	}
	res, err := performCast(ctx, v, target)
	if err != nil && errors.Is(err, sqldate.ErrInvalidDatetime) {
		return WarnNull(ctx, target, err)
	}
	return res, err
}

func performCast(ctx tree.QueryContext, v tree.Value, target types.Family) (tree.Value, error) {
	switch target {
	case types.BoolFamily:
		b, err := tree.ExtractBool(ctx, v)
		return tree.NewBool(b), err

	case types.IntFamily:
		i, err := tree.ExtractInt64(ctx, v)
		if err != nil {
			return tree.Value{}, err
		}
		if i < math.MinInt32 || i > math.MaxInt32 {
			return tree.Value{}, errors.Wrapf(ErrOverflow, "%s out of range for INT", v)
		}
		return tree.NewInt(int32(i)), nil

	case types.LongFamily:
		i, err := tree.ExtractInt64(ctx, v)
		return tree.NewLong(i), err

	case types.UIntFamily:
		u, err := tree.ExtractUint64(ctx, v)
		return tree.NewUInt(u), err

	case types.UBigIntFamily:
		b, err := tree.ExtractBigInt(ctx, v)
		if err != nil {
			return tree.Value{}, err
		}
		if b.Sign() < 0 {
			return tree.Value{}, errors.Wrapf(ErrOverflow, "%s out of range for U_BIGINT", v)
		}
		return tree.NewUBigInt(b), nil

	case types.FloatFamily, types.UFloatFamily, types.DoubleFamily, types.UDoubleFamily:
		f, err := tree.ExtractFloat64(ctx, v)
		if err != nil {
			return tree.Value{}, err
		}
		if target.IsUnsigned() && f < 0 {
			return tree.Value{}, errors.Wrapf(ErrOverflow, "%s out of range for %s", v, target)
		}
		switch target {
		case types.FloatFamily:
			if math.Abs(f) > math.MaxFloat32 && isFinite(f) {
				return tree.Value{}, errors.Wrapf(ErrOverflow, "%s out of range for FLOAT", v)
			}
			return tree.NewFloat(f), nil
		case types.UFloatFamily:
			return tree.NewUFloat(f), nil
		case types.UDoubleFamily:
			return tree.NewUDouble(f), nil
		}
		return tree.NewDouble(f), nil

	case types.DecimalFamily:
		d, err := tree.ExtractDecimal(ctx, v)
		return tree.NewDecimal(d), err

	case types.VarcharFamily, types.TextFamily:
		s, err := tree.ExtractString(ctx, v)
		if err != nil {
			return tree.Value{}, err
		}
		if target == types.TextFamily {
			return tree.NewText(s), nil
		}
		return tree.NewVarchar(s), nil

	case types.VarbinaryFamily:
		s, err := tree.ExtractString(ctx, v)
		return tree.NewVarbinary([]byte(s)), err

	case types.DateFamily, types.DateTimeFamily, types.TimestampFamily:
		return castToDate(ctx, v, target)

	case types.TimeFamily:
		return castToTime(ctx, v)

	case types.YearFamily:
		return castToYear(ctx, v)

	case types.IntervalMillisFamily, types.IntervalMonthFamily:
		i, err := tree.ExtractInt64(ctx, v)
		if target == types.IntervalMonthFamily {
			return tree.NewIntervalMonth(i), err
		}
		return tree.NewIntervalMillis(i), err
	}
	return tree.Value{}, errors.AssertionFailedf("unhandled cast %s -> %s", v.Type(), target)
}

func castToDate(ctx tree.QueryContext, v tree.Value, target types.Family) (tree.Value, error) {
	var f sqldate.Fields
	switch v.Type() {
	case types.TimeFamily:
		day := sqldate.FromTime(stmtTime(ctx))
		tod := sqldate.DecodeTime(v.TimeEncoded())
		f = sqldate.Fields{Year: day.Year, Month: day.Month, Day: day.Day}
		f = sqldate.AddDays(f, floorDiv(tod.TimeSeconds(), 86400))
		t := sqldate.TimeFromSeconds(tod.TimeSeconds() - floorDiv(tod.TimeSeconds(), 86400)*86400)
		f.Hour, f.Minute, f.Second = t.Hour, t.Minute, t.Second
	default:
		var k sqldate.Kind
		var err error
		f, k, err = tree.ExtractDateTime(ctx, v)
		if err != nil {
			return tree.Value{}, err
		}
		if k == sqldate.KindTime {
			return WarnNull(ctx, target, errors.Mark(
				pgerror.Newf(pgcode.InvalidDatetimeFormat, "%s is not a date", v), sqldate.ErrInvalidDatetime))
		}
	}
	if !sqldate.ValidDate(f) {
		return WarnNull(ctx, target, pgerror.Newf(pgcode.InvalidDatetimeFormat, "invalid date: %s", v))
	}
	switch target {
	case types.DateFamily:
		return tree.NewDateFromFields(f), nil
	case types.DateTimeFamily:
		return tree.NewDateTimeFromFields(f), nil
	}
	return tree.NewTimestamp(sqldate.FieldsToTimestamp(f, tree.Location(ctx))), nil
}

func castToTime(ctx tree.QueryContext, v tree.Value) (tree.Value, error) {
	var f sqldate.Fields
	var err error
	switch t := v.Type(); {
	case t.IsText():
		f, err = sqldate.ParseTime(v.StringValue())
	case t.IsNumeric():
		var n int64
		if n, err = tree.ExtractInt64(ctx, v); err == nil {
			f, err = sqldate.TimeFromNumber(n)
		}
	case t == types.DateFamily:
		return tree.NewTime(0), nil
	default:
		var dt sqldate.Fields
		dt, _, err = tree.ExtractDateTime(ctx, v)
		f = sqldate.Fields{Hour: dt.Hour, Minute: dt.Minute, Second: dt.Second}
	}
	if err != nil {
		return tree.Value{}, errors.Mark(err, sqldate.ErrInvalidDatetime)
	}
	return tree.NewTimeFromFields(f), nil
}

// castToYear accepts 4-digit years in the YEAR range, and 1 to 99 as
// two-digit years (1-69 are 20xx, 70-99 are 19xx).
func castToYear(ctx tree.QueryContext, v tree.Value) (tree.Value, error) {
	if t := v.Type(); t.IsNumeric() || t.IsText() {
		y, err := tree.ExtractInt64(ctx, v)
		if err != nil {
			return tree.Value{}, err
		}
		switch {
		case y == 0:
			return tree.NewYear(0), nil
		case y >= 1 && y < 70:
			y += 2000
		case y >= 70 && y < 100:
			y += 1900
		}
		return yearValue(ctx, y)
	}
	f, _, err := tree.ExtractDateTime(ctx, v)
	if err != nil {
		return tree.Value{}, err
	}
	return yearValue(ctx, int64(f.Year))
}

// CurrentTime returns the statement time in the session time zone.
func CurrentTime(ctx tree.QueryContext) time.Time {
	return stmtTime(ctx)
}
