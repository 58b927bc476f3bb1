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
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree/treebin"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
	"github.com/cockroachdb/sqlscalar/pkg/util/duration"
	"github.com/cockroachdb/sqlscalar/pkg/util/timeutil/sqldate"
)

// MinYear and MaxYear bound the values of the YEAR type.
const (
	MinYear = 1901
	MaxYear = 2155
)

const maxTimeSeconds = sqldate.MaxTimeHours*3600 + 59*60 + 59

// WarnNull reports err as a warning and returns a NULL of type typ.
func WarnNull(ctx tree.QueryContext, typ types.Family, err error) (tree.Value, error) {
	if ctx != nil {
		ctx.Warn(err)
	}
	return tree.TypedNull(typ), nil
}

func fieldOverflow(typ types.Family) error {
	return pgerror.Newf(pgcode.DatetimeFieldOverflow, "%s value out of range", typ)
}

// DurationOf returns the payload of an interval value.
func DurationOf(v tree.Value) duration.Duration {
	if v.Type() == types.IntervalMonthFamily {
		return duration.FromMonths(v.IntervalMonths())
	}
	return duration.FromMillis(v.IntervalMillis())
}

// DurationValue wraps d as a value of the interval type typ.
func DurationValue(typ types.Family, d duration.Duration) tree.Value {
	if typ == types.IntervalMonthFamily {
		return tree.NewIntervalMonth(d.Months)
	}
	return tree.NewIntervalMillis(d.Millis)
}

// ToTime converts a DATE, DATETIME or TIMESTAMP value to an instant.
// DATE and DATETIME are wall clock readings taken in UTC; TIMESTAMP is
// converted to the session time zone. Text and numbers are parsed.
// Invalid dates yield an error marked with sqldate.ErrInvalidDatetime.
func ToTime(ctx tree.QueryContext, v tree.Value) (time.Time, sqldate.Kind, error) {
	if v.Type() == types.TimestampFamily {
		return time.Unix(v.TimestampUnix(), 0).In(tree.Location(ctx)), sqldate.KindDateTime, nil
	}
	f, k, err := tree.ExtractDateTime(ctx, v)
	if err != nil {
		return time.Time{}, 0, err
	}
	if k == sqldate.KindTime {
		return time.Time{}, k, errors.Mark(
			pgerror.Newf(pgcode.InvalidDatetimeFormat, "%s has no date", v),
			sqldate.ErrInvalidDatetime)
	}
	if !sqldate.ValidDate(f) {
		return time.Time{}, k, errors.Mark(
			pgerror.Newf(pgcode.InvalidDatetimeFormat, "invalid date: %s", v),
			sqldate.ErrInvalidDatetime)
	}
	return f.ToTime(time.UTC), k, nil
}

// FromTime converts an instant to a value of the date/time type typ. An
// instant outside of the years 0000-9999 yields a NULL and a warning.
func FromTime(ctx tree.QueryContext, typ types.Family, t time.Time) (tree.Value, error) {
	if y := t.Year(); y < 0 || y > 9999 {
		return WarnNull(ctx, typ, fieldOverflow(typ))
	}
	switch typ {
	case types.DateFamily:
		return tree.NewDateFromFields(sqldate.FromTime(t)), nil
	case types.DateTimeFamily:
		return tree.NewDateTimeFromFields(sqldate.FromTime(t)), nil
	case types.TimestampFamily:
		return tree.NewTimestamp(t.Unix()), nil
	case types.TimeFamily:
		return tree.NewTimeFromFields(sqldate.FromTime(t)), nil
	case types.YearFamily:
		return yearValue(ctx, int64(t.Year()))
	}
	return tree.Value{}, errors.AssertionFailedf("%s is not a date/time type", typ)
}

func yearValue(ctx tree.QueryContext, y int64) (tree.Value, error) {
	if y < MinYear || y > MaxYear {
		return WarnNull(ctx, types.YearFamily, fieldOverflow(types.YearFamily))
	}
	return tree.NewYear(sqldate.EncodeYear(int(y))), nil
}

// TimeValue returns a TIME of secs seconds, or a NULL and a warning
// outside of the TIME range.
func TimeValue(ctx tree.QueryContext, secs int64) (tree.Value, error) {
	if secs > maxTimeSeconds || secs < -maxTimeSeconds {
		return WarnNull(ctx, types.TimeFamily, fieldOverflow(types.TimeFamily))
	}
	return tree.NewTimeFromFields(sqldate.TimeFromSeconds(secs)), nil
}

func dateArith(
	ctx tree.QueryContext, op treebin.BinaryOperatorSymbol, typ types.Family, l, r tree.Value,
) (tree.Value, error) {
	lt, rt := l.Type(), r.Type()
	switch {
	case lt.IsInterval() && rt.IsInterval():
		a, b := DurationOf(l), DurationOf(r)
		var res duration.Duration
		var err error
		if op == treebin.Minus {
			res, err = a.Sub(b)
		} else {
			res, err = a.Add(b)
		}
		if err != nil {
			return tree.Value{}, err
		}
		return DurationValue(typ, res), nil

	case op == treebin.Mult:
		iv, n := l, r
		if rt.IsInterval() {
			iv, n = r, l
		}
		return scaleInterval(ctx, typ, iv, n)

	case op == treebin.Minus && lt == rt && !lt.IsInterval():
		return temporalDiff(ctx, typ, l, r)

	case lt.IsInterval():
		return addInterval(ctx, typ, r, DurationOf(l))

	default:
		d := DurationOf(r)
		if op == treebin.Minus {
			d = d.Neg()
		}
		return addInterval(ctx, typ, l, d)
	}
}

func scaleInterval(ctx tree.QueryContext, typ types.Family, iv, n tree.Value) (tree.Value, error) {
	d := DurationOf(iv)
	f, err := tree.ExtractFloat64(ctx, n)
	if err != nil {
		return tree.Value{}, err
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<62 {
		res, err := d.Mul(int64(f))
		if err != nil {
			return tree.Value{}, err
		}
		return DurationValue(typ, res), nil
	}
	scaled := math.Round(float64(d.Millis+d.Months) * f)
	if !isFinite(scaled) || math.Abs(scaled) >= math.MaxInt64 {
		return tree.Value{}, errors.WithStack(duration.ErrOverflow)
	}
	if d.IsMonths() {
		return DurationValue(typ, duration.FromMonths(int64(scaled))), nil
	}
	return DurationValue(typ, duration.FromMillis(int64(scaled))), nil
}

// temporalDiff subtracts two values of the same date/time type. The
// difference counts whole units of the type: months for YEAR, days for
// DATE and seconds for the others.
func temporalDiff(ctx tree.QueryContext, typ types.Family, l, r tree.Value) (tree.Value, error) {
	switch l.Type() {
	case types.YearFamily:
		years := int64(sqldate.DecodeYear(l.YearEncoded()) - sqldate.DecodeYear(r.YearEncoded()))
		return tree.NewIntervalMonth(years * duration.MonthsPerYear), nil
	case types.DateFamily:
		a, b := sqldate.DecodeDate(l.DateEncoded()), sqldate.DecodeDate(r.DateEncoded())
		if !sqldate.ValidDate(a) || !sqldate.ValidDate(b) {
			return WarnNull(ctx, typ, fieldOverflow(types.DateFamily))
		}
		return tree.NewIntervalMillis((sqldate.DayNumber(a) - sqldate.DayNumber(b)) * duration.MillisPerDay), nil
	case types.TimeFamily:
		a, b := sqldate.DecodeTime(l.TimeEncoded()), sqldate.DecodeTime(r.TimeEncoded())
		return tree.NewIntervalMillis((a.TimeSeconds() - b.TimeSeconds()) * duration.MillisPerSec), nil
	case types.DateTimeFamily:
		a, b := sqldate.DecodeDateTime(l.DateTimeEncoded()), sqldate.DecodeDateTime(r.DateTimeEncoded())
		secs := sqldate.FieldsToTimestamp(a, time.UTC) - sqldate.FieldsToTimestamp(b, time.UTC)
		return tree.NewIntervalMillis(secs * duration.MillisPerSec), nil
	case types.TimestampFamily:
		return tree.NewIntervalMillis((l.TimestampUnix() - r.TimestampUnix()) * duration.MillisPerSec), nil
	}
	return tree.Value{}, errors.AssertionFailedf("cannot subtract %s values", l.Type())
}

// addInterval adds d to the date/time value v, of type typ. Month
// intervals use calendar arithmetic, clamping to the end of the month.
func addInterval(ctx tree.QueryContext, typ types.Family, v tree.Value, d duration.Duration) (tree.Value, error) {
	switch typ {
	case types.TimeFamily:
		f := sqldate.DecodeTime(v.TimeEncoded())
		return TimeValue(ctx, f.TimeSeconds()+d.Millis/duration.MillisPerSec)
	case types.YearFamily:
		y := int64(sqldate.DecodeYear(v.YearEncoded()))
		return yearValue(ctx, y+floorDiv(d.Months, duration.MonthsPerYear))
	}
	t, _, err := ToTime(ctx, v)
	if err != nil {
		if errors.Is(err, sqldate.ErrInvalidDatetime) {
			return WarnNull(ctx, typ, err)
		}
		return tree.Value{}, err
	}
	return FromTime(ctx, typ, duration.Add(t, d))
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
