// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtins

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/eval"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree/treebin"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
	"github.com/cockroachdb/sqlscalar/pkg/util/duration"
	"github.com/cockroachdb/sqlscalar/pkg/util/timeutil/sqldate"
	"github.com/knz/strtime"
)

// fieldSet is a set of the parts of a date/time value.
type fieldSet uint8

const (
	dateFields fieldSet = 1 << iota
	timeFields
)

func (s fieldSet) String() string {
	switch s {
	case dateFields:
		return "date"
	case timeFields:
		return "time"
	}
	return "date and time"
}

func fieldsOf(k sqldate.Kind) fieldSet {
	switch k {
	case sqldate.KindDate:
		return dateFields
	case sqldate.KindTime:
		return timeFields
	}
	return dateFields | timeFields
}

// readTemporal reads v as date/time fields holding at least the parts
// in need. When v cannot hold them, does not parse, or names no valid
// calendar day, readTemporal warns and returns ok=false.
func readTemporal(
	ctx tree.QueryContext, v tree.Value, need fieldSet,
) (f sqldate.Fields, k sqldate.Kind, ok bool, err error) {
	if v.Type() == types.YearFamily {
		ctx.Warn(pgerror.Newf(pgcode.InvalidParameterValue, "YEAR value %s has no %s fields", v, need))
		return f, k, false, nil
	}
	f, k, err = tree.ExtractDateTime(ctx, v)
	if err != nil {
		if errors.Is(err, sqldate.ErrInvalidDatetime) {
			ctx.Warn(err)
			return f, k, false, nil
		}
		return f, k, false, err
	}
	if fieldsOf(k)&need != need {
		ctx.Warn(pgerror.Newf(pgcode.InvalidParameterValue, "%s value %s has no %s fields", k, v, need))
		return f, k, false, nil
	}
	valid := true
	if k != sqldate.KindTime {
		valid = sqldate.ValidDate(f)
	}
	if need&timeFields != 0 {
		valid = valid && sqldate.ValidTime(f, k == sqldate.KindTime)
	}
	if !valid {
		ctx.Warn(pgerror.Newf(pgcode.DatetimeFieldOverflow, "invalid %s value: %s", k, v))
		return f, k, false, nil
	}
	return f, k, true, nil
}

var (
	dayBuiltin = fieldBuiltin(dateFields, "Day of the month, 1 to 31.",
		func(f sqldate.Fields) int64 { return int64(f.Day) })

	nowBuiltin = currentBuiltin(types.DateTimeFamily, "The statement time as a DATETIME.")

	addDateBuiltin = dateAddBuiltin(treebin.Plus,
		"DATE_ADD(d, INTERVAL(n, unit)) adds an interval to a date/time. "+
			"A plain number is a count of days.")
	subDateBuiltin = dateAddBuiltin(treebin.Minus,
		"DATE_SUB(d, INTERVAL(n, unit)) subtracts an interval from a date/time. "+
			"A plain number is a count of days.")
)

var dateTimeBuiltins = map[string]builtinDefinition{
	"YEAR": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryDateAndTime,
			NullTreating: tree.NullTreatingReturnNull,
			NeedsContext: true,
			MinArgs:      1,
			MaxArgs:      1,
			Info:         "Year of a date.",
		},
		argsOf(isTemporal, types.LongFamily),
		unary(func(ctx tree.QueryContext, v tree.Value) (tree.Value, error) {
			if v.Type() == types.YearFamily {
				return tree.NewLong(int64(sqldate.DecodeYear(v.YearEncoded()))), nil
			}
			f, _, ok, err := readTemporal(ctx, v, dateFields)
			if !ok {
				return tree.TypedNull(types.LongFamily), err
			}
			return tree.NewLong(int64(f.Year)), nil
		}),
	),
	"MONTH": fieldBuiltin(dateFields, "Month of a date, 1 to 12.",
		func(f sqldate.Fields) int64 { return int64(f.Month) }),
	"DAY":        dayBuiltin,
	"DAYOFMONTH": dayBuiltin,
	"HOUR": fieldBuiltin(timeFields, "Hour of a time. The hour of a TIME may exceed 23.",
		func(f sqldate.Fields) int64 { return int64(f.Hour) }),
	"MINUTE": fieldBuiltin(timeFields, "Minute of a time.",
		func(f sqldate.Fields) int64 { return int64(f.Minute) }),
	"SECOND": fieldBuiltin(timeFields, "Second of a time.",
		func(f sqldate.Fields) int64 { return int64(f.Second) }),
	"DAYOFYEAR": fieldBuiltin(dateFields, "Day of the year, 1 to 366.",
		func(f sqldate.Fields) int64 { return dayOfYear(f) }),
	"DAYOFWEEK": fieldBuiltin(dateFields, "Day of the week, 1 (Sunday) to 7 (Saturday).",
		func(f sqldate.Fields) int64 { return int64(sqldate.Weekday(f)) + 1 }),
	"WEEKDAY": fieldBuiltin(dateFields, "Day of the week, 0 (Monday) to 6 (Sunday).",
		func(f sqldate.Fields) int64 { return int64(sqldate.Weekday(f)+6) % 7 }),
	"QUARTER": fieldBuiltin(dateFields, "Quarter of the year, 1 to 4.",
		func(f sqldate.Fields) int64 { return int64(f.Month+2) / 3 }),
	"WEEK": fieldBuiltin(dateFields,
		"Week of the year, 0 to 53. Weeks start on Sunday; days before the first Sunday are in week 0.",
		func(f sqldate.Fields) int64 { return week(f) }),
	"TO_DAYS": fieldBuiltin(dateFields, "Number of days since the year 0.",
		func(f sqldate.Fields) int64 { return sqldate.DayNumber(f) }),
	"TIME_TO_SEC": fieldBuiltin(timeFields, "Number of seconds a time of day or TIME denotes.",
		func(f sqldate.Fields) int64 { return f.TimeSeconds() }),

	"DAYNAME": nameBuiltin("Name of the weekday.",
		func(f sqldate.Fields) string { return time.Weekday(sqldate.Weekday(f)).String() }),
	"MONTHNAME": nameBuiltin("Name of the month.",
		func(f sqldate.Fields) string { return time.Month(f.Month).String() }),

	"DATE": convertBuiltin(types.DateFamily, dateFields, "Date part of a date/time.",
		func(ctx tree.QueryContext, f sqldate.Fields) (tree.Value, error) {
			return tree.NewDateFromFields(f), nil
		}),
	"TIME": convertBuiltin(types.TimeFamily, timeFields, "Time part of a date/time.",
		func(ctx tree.QueryContext, f sqldate.Fields) (tree.Value, error) {
			return tree.NewTimeFromFields(f), nil
		}),
	"DATETIME": convertBuiltin(types.DateTimeFamily, dateFields,
		"Converts to DATETIME. A date is at midnight.",
		func(ctx tree.QueryContext, f sqldate.Fields) (tree.Value, error) {
			return tree.NewDateTimeFromFields(f), nil
		}),
	"TIMESTAMP": convertBuiltin(types.TimestampFamily, dateFields,
		"Converts to TIMESTAMP, reading the date/time in the session time zone.",
		func(ctx tree.QueryContext, f sqldate.Fields) (tree.Value, error) {
			return tree.NewTimestamp(sqldate.FieldsToTimestamp(f, tree.Location(ctx))), nil
		}),
	"LAST_DAY": convertBuiltin(types.DateFamily, dateFields, "Last day of the month of a date.",
		func(ctx tree.QueryContext, f sqldate.Fields) (tree.Value, error) {
			f.Day = sqldate.DaysInMonth(f.Year, f.Month)
			return tree.NewDateFromFields(f), nil
		}),

	"FROM_DAYS": dateTimeBuiltin(1, 1, types.DateFamily,
		"Date of a day number, the inverse of TO_DAYS.",
		func(ctx tree.QueryContext, r *argReader, vals []tree.Value) (tree.Value, error) {
			n := r.int(vals[0])
			if r.err != nil {
				return tree.Value{}, r.err
			}
			if n < 1 || n > sqldate.DayNumber(sqldate.Fields{Year: 9999, Month: 12, Day: 31}) {
				return eval.WarnNull(ctx, types.DateFamily, fieldOverflow(types.DateFamily))
			}
			return tree.NewDateFromFields(sqldate.FromDayNumber(n)), nil
		}),
	"MAKEDATE": dateTimeBuiltin(2, 2, types.DateFamily,
		"MAKEDATE(year, dayofyear) is the date of a day of the year. NULL for a dayofyear below 1.",
		func(ctx tree.QueryContext, r *argReader, vals []tree.Value) (tree.Value, error) {
			y, n := r.int(vals[0]), r.int(vals[1])
			if r.err != nil || n < 1 || y < 0 || y > 9999 {
				return tree.TypedNull(types.DateFamily), r.err
			}
			f := sqldate.AddDays(sqldate.Fields{Year: int(y), Month: 1, Day: 1}, n-1)
			if f.Year > 9999 {
				return eval.WarnNull(ctx, types.DateFamily, fieldOverflow(types.DateFamily))
			}
			return tree.NewDateFromFields(f), nil
		}),
	"MAKETIME": dateTimeBuiltin(3, 3, types.TimeFamily,
		"MAKETIME(hour, minute, second) builds a TIME. NULL for a minute or second out of range.",
		func(ctx tree.QueryContext, r *argReader, vals []tree.Value) (tree.Value, error) {
			h, m, s := r.int(vals[0]), r.int(vals[1]), r.int(vals[2])
			if r.err != nil || m < 0 || m > 59 || s < 0 || s > 59 {
				return tree.TypedNull(types.TimeFamily), r.err
			}
			secs := abs64(h)*3600 + m*60 + s
			if h < 0 {
				secs = -secs
			}
			return eval.TimeValue(ctx, secs)
		}),
	"SEC_TO_TIME": dateTimeBuiltin(1, 1, types.TimeFamily,
		"TIME of a number of seconds.",
		func(ctx tree.QueryContext, r *argReader, vals []tree.Value) (tree.Value, error) {
			n := r.int(vals[0])
			if r.err != nil {
				return tree.Value{}, r.err
			}
			return eval.TimeValue(ctx, n)
		}),

	"UNIX_TIMESTAMP": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryDateAndTime,
			NullTreating: tree.NullTreatingReturnNull,
			Volatility:   tree.VolatilityStable,
			NeedsContext: true,
			MinArgs:      0,
			MaxArgs:      1,
			Info: "Seconds since the Unix epoch of the statement time, or of a date/time read " +
				"in the session time zone.",
		},
		argsOf(isTemporal, types.LongFamily),
		func(ctx tree.QueryContext, args *tree.Args) (tree.Value, error) {
			if args.Len() == 0 {
				return tree.NewLong(ctx.StatementTime().Unix()), nil
			}
			v, err := args.Get(0)
			if err != nil {
				return tree.Value{}, err
			}
			if v.Type() == types.TimestampFamily {
				return tree.NewLong(v.TimestampUnix()), nil
			}
			f, _, ok, err := readTemporal(ctx, v, dateFields)
			if !ok {
				return tree.TypedNull(types.LongFamily), err
			}
			return tree.NewLong(sqldate.FieldsToTimestamp(f, tree.Location(ctx))), nil
		},
	),
	"FROM_UNIXTIME": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryDateAndTime,
			NullTreating: tree.NullTreatingReturnNull,
			NeedsContext: true,
			MinArgs:      1,
			MaxArgs:      2,
			Info: "FROM_UNIXTIME(n[, format]) is the DATETIME, in the session time zone, n seconds " +
				"after the Unix epoch. With a format, the result is formatted as by DATE_FORMAT.",
		},
		func(args []tree.Expression) (types.Family, error) {
			if err := checkArgs(args, isScalar); err != nil {
				return types.UnsupportedFamily, err
			}
			if len(args) == 2 {
				return types.VarcharFamily, nil
			}
			return types.DateTimeFamily, nil
		},
		variadic(func(ctx tree.QueryContext, vals []tree.Value) (tree.Value, error) {
			r := argReader{ctx: ctx}
			n := r.int(vals[0])
			if r.err != nil {
				return tree.Value{}, r.err
			}
			t := time.Unix(n, 0).In(tree.Location(ctx))
			if len(vals) == 1 {
				return eval.FromTime(ctx, types.DateTimeFamily, t)
			}
			format := r.str(vals[1])
			if r.err != nil {
				return tree.Value{}, r.err
			}
			return formatDate(ctx, sqldate.FromTime(t), format)
		}),
	),

	"DATEDIFF": dateTimeBuiltin(2, 2, types.LongFamily,
		"DATEDIFF(a, b) is the number of days from the date of b to the date of a.",
		func(ctx tree.QueryContext, r *argReader, vals []tree.Value) (tree.Value, error) {
			a, _, ok, err := readTemporal(ctx, vals[0], dateFields)
			if !ok {
				return tree.TypedNull(types.LongFamily), err
			}
			b, _, ok, err := readTemporal(ctx, vals[1], dateFields)
			if !ok {
				return tree.TypedNull(types.LongFamily), err
			}
			return tree.NewLong(sqldate.DayNumber(a) - sqldate.DayNumber(b)), nil
		}),
	"TIMEDIFF": dateTimeBuiltin(2, 2, types.TimeFamily,
		"TIMEDIFF(a, b) is a - b as a TIME. Both arguments must be times, or both date/times.",
		func(ctx tree.QueryContext, r *argReader, vals []tree.Value) (tree.Value, error) {
			a, ka, ok, err := readTemporal(ctx, vals[0], timeFields)
			if !ok {
				return tree.TypedNull(types.TimeFamily), err
			}
			b, kb, ok, err := readTemporal(ctx, vals[1], timeFields)
			if !ok {
				return tree.TypedNull(types.TimeFamily), err
			}
			if (ka == sqldate.KindTime) != (kb == sqldate.KindTime) {
				return tree.TypedNull(types.TimeFamily), nil
			}
			return eval.TimeValue(ctx, secondsOf(a, ka)-secondsOf(b, kb))
		}),
	"ADDTIME": addTimeBuiltin(1, "ADDTIME(d, t) adds the TIME t to a time or date/time."),
	"SUBTIME": addTimeBuiltin(-1, "SUBTIME(d, t) subtracts the TIME t from a time or date/time."),

	"PERIOD_ADD": dateTimeBuiltin(2, 2, types.LongFamily,
		"PERIOD_ADD(p, n) adds n months to the YYMM or YYYYMM period p, giving a YYYYMM period.",
		func(ctx tree.QueryContext, r *argReader, vals []tree.Value) (tree.Value, error) {
			p, n := r.int(vals[0]), r.int(vals[1])
			if r.err != nil {
				return tree.Value{}, r.err
			}
			months, err := sqldate.PeriodMonths(p)
			if err != nil {
				return tree.Value{}, err
			}
			months += n
			if months < 0 {
				return tree.Value{}, pgerror.Newf(pgcode.InvalidParameterValue,
					"PERIOD_ADD(%d, %d) is before the year 0", p, n)
			}
			return tree.NewLong(sqldate.MonthsToPeriod(months)), nil
		}),
	"PERIOD_DIFF": dateTimeBuiltin(2, 2, types.LongFamily,
		"PERIOD_DIFF(p1, p2) is the number of months from the period p2 to the period p1.",
		func(ctx tree.QueryContext, r *argReader, vals []tree.Value) (tree.Value, error) {
			p1, p2 := r.int(vals[0]), r.int(vals[1])
			if r.err != nil {
				return tree.Value{}, r.err
			}
			a, err := sqldate.PeriodMonths(p1)
			if err != nil {
				return tree.Value{}, err
			}
			b, err := sqldate.PeriodMonths(p2)
			if err != nil {
				return tree.Value{}, err
			}
			return tree.NewLong(a - b), nil
		}),

	"TIMESTAMPDIFF": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryDateAndTime,
			NullTreating: tree.NullTreatingReturnNull,
			NeedsContext: true,
			MinArgs:      3,
			MaxArgs:      3,
			Info: "TIMESTAMPDIFF(unit, a, b) counts the whole units from a to b. A month only " +
				"counts once its day and time of day are reached.",
		},
		func(args []tree.Expression) (types.Family, error) {
			if _, err := unitArg(args, 0); err != nil {
				return types.UnsupportedFamily, err
			}
			if err := checkArgs(args[1:], isTemporal); err != nil {
				return types.UnsupportedFamily, err
			}
			return types.LongFamily, nil
		},
		variadic(func(ctx tree.QueryContext, vals []tree.Value) (tree.Value, error) {
			r := argReader{ctx: ctx}
			unit, err := duration.ParseUnit(r.str(vals[0]))
			if r.err != nil {
				return tree.Value{}, r.err
			}
			if err != nil {
				return tree.Value{}, err
			}
			a, ok, err := instantOf(ctx, vals[1])
			if !ok {
				return tree.TypedNull(types.LongFamily), err
			}
			b, ok, err := instantOf(ctx, vals[2])
			if !ok {
				return tree.TypedNull(types.LongFamily), err
			}
			n, err := duration.Diff(unit, a, b)
			if err != nil {
				return tree.Value{}, err
			}
			return tree.NewLong(n), nil
		}),
	),
	"MONTHS_BETWEEN": dateTimeBuiltin(2, 2, types.LongFamily,
		"MONTHS_BETWEEN(a, b) counts the whole months from b to a. A month only counts once "+
			"its day and time of day are reached.",
		func(ctx tree.QueryContext, r *argReader, vals []tree.Value) (tree.Value, error) {
			a, ok, err := instantOf(ctx, vals[0])
			if !ok {
				return tree.TypedNull(types.LongFamily), err
			}
			b, ok, err := instantOf(ctx, vals[1])
			if !ok {
				return tree.TypedNull(types.LongFamily), err
			}
			return tree.NewLong(duration.MonthsBetween(b, a)), nil
		}),

	"INTERVAL": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryDateAndTime,
			NullTreating: tree.NullTreatingReturnNull,
			MinArgs:      2,
			MaxArgs:      2,
			Info: "INTERVAL(n, unit) is an interval of n units. Compound units such as " +
				"HOUR_MINUTE take a string: INTERVAL('1:30', 'HOUR_MINUTE').",
		},
		func(args []tree.Expression) (types.Family, error) {
			unit, err := unitArg(args, 1)
			if err != nil {
				return types.UnsupportedFamily, err
			}
			if t := args[0].ValueType(); t != types.NullFamily && !isNumeric(t) {
				return types.UnsupportedFamily, tree.NewArgTypeError(0, t)
			}
			if unit.IsMonths() {
				return types.IntervalMonthFamily, nil
			}
			return types.IntervalMillisFamily, nil
		},
		func(ctx tree.QueryContext, args *tree.Args) (tree.Value, error) {
			vals, err := args.All()
			if err != nil {
				return tree.Value{}, err
			}
			r := argReader{ctx: ctx}
			unit, err := duration.ParseUnit(r.str(vals[1]))
			if r.err != nil {
				return tree.Value{}, r.err
			}
			if err != nil {
				return tree.Value{}, err
			}
			var d duration.Duration
			if vals[0].Type().IsIntegral() {
				d, err = duration.FromInt(r.int(vals[0]), unit)
			} else {
				d, err = duration.ParseInterval(r.str(vals[0]), unit)
			}
			if r.err != nil {
				return tree.Value{}, r.err
			}
			if err != nil {
				return tree.Value{}, err
			}
			return eval.DurationValue(args.ResultType(), d), nil
		},
	),
	"DATE_ADD": addDateBuiltin,
	"ADDDATE":  addDateBuiltin,
	"DATE_SUB": subDateBuiltin,
	"SUBDATE":  subDateBuiltin,

	"DATE_FORMAT": dateTimeBuiltin(2, 2, types.VarcharFamily,
		"DATE_FORMAT(d, format) formats a date/time with MySQL format specifiers "+
			"(%Y-%m-%d %H:%i:%s).",
		func(ctx tree.QueryContext, r *argReader, vals []tree.Value) (tree.Value, error) {
			f, _, ok, err := readTemporal(ctx, vals[0], dateFields)
			if !ok {
				return tree.TypedNull(types.VarcharFamily), err
			}
			format := r.str(vals[1])
			if r.err != nil {
				return tree.Value{}, r.err
			}
			return formatDate(ctx, f, format)
		}),
	"STR_TO_DATE": dateTimeBuiltin(2, 2, types.DateTimeFamily,
		"STR_TO_DATE(s, format) parses s with MySQL format specifiers. NULL if s does not "+
			"match the format.",
		func(ctx tree.QueryContext, r *argReader, vals []tree.Value) (tree.Value, error) {
			s, format := r.str(vals[0]), r.str(vals[1])
			if r.err != nil {
				return tree.Value{}, r.err
			}
			layout, err := strptimeLayout(format)
			if err != nil {
				return eval.WarnNull(ctx, types.DateTimeFamily, err)
			}
			t, err := strtime.Strptime(s, layout)
			if err != nil {
				return eval.WarnNull(ctx, types.DateTimeFamily, pgerror.Wrapf(err,
					pgcode.InvalidDatetimeFormat, "could not parse %q with format %q", s, format))
			}
			return eval.FromTime(ctx, types.DateTimeFamily, t)
		}),

	"CURRENT_DATE":      currentBuiltin(types.DateFamily, "The statement date."),
	"CURRENT_TIME":      currentBuiltin(types.TimeFamily, "The statement time of day."),
	"CURRENT_TIMESTAMP": nowBuiltin,
	"NOW":               nowBuiltin,
}

// fieldBuiltin extracts a number from the parts of a date/time in need.
func fieldBuiltin(need fieldSet, info string, fn func(f sqldate.Fields) int64) builtinDefinition {
	return makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryDateAndTime,
			NullTreating: tree.NullTreatingReturnNull,
			NeedsContext: true,
			MinArgs:      1,
			MaxArgs:      1,
			Info:         info,
		},
		argsOf(isTemporal, types.LongFamily),
		unary(func(ctx tree.QueryContext, v tree.Value) (tree.Value, error) {
			f, _, ok, err := readTemporal(ctx, v, need)
			if !ok {
				return tree.TypedNull(types.LongFamily), err
			}
			return tree.NewLong(fn(f)), nil
		}),
	)
}

func nameBuiltin(info string, fn func(f sqldate.Fields) string) builtinDefinition {
	return convertBuiltin(types.VarcharFamily, dateFields, info,
		func(ctx tree.QueryContext, f sqldate.Fields) (tree.Value, error) {
			return tree.NewVarchar(fn(f)), nil
		})
}

// convertBuiltin builds a value of type typ from the parts of a
// date/time in need.
func convertBuiltin(
	typ types.Family,
	need fieldSet,
	info string,
	fn func(ctx tree.QueryContext, f sqldate.Fields) (tree.Value, error),
) builtinDefinition {
	return makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryDateAndTime,
			NullTreating: tree.NullTreatingReturnNull,
			NeedsContext: true,
			MinArgs:      1,
			MaxArgs:      1,
			Info:         info,
		},
		argsOf(isTemporal, typ),
		unary(func(ctx tree.QueryContext, v tree.Value) (tree.Value, error) {
			f, k, ok, err := readTemporal(ctx, v, need)
			if !ok {
				return tree.TypedNull(typ), err
			}
			f.Hour, f.Minute, f.Second = timeOfDay(f, k)
			return fn(ctx, f)
		}),
	)
}

// dateTimeBuiltin is a NULL-contaminating date/time function over all
// its arguments.
func dateTimeBuiltin(
	minArgs, maxArgs int,
	typ types.Family,
	info string,
	fn func(ctx tree.QueryContext, r *argReader, vals []tree.Value) (tree.Value, error),
) builtinDefinition {
	return makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryDateAndTime,
			NullTreating: tree.NullTreatingReturnNull,
			NeedsContext: true,
			MinArgs:      minArgs,
			MaxArgs:      maxArgs,
			Info:         info,
		},
		argsOf(isScalar, typ),
		variadic(func(ctx tree.QueryContext, vals []tree.Value) (tree.Value, error) {
			return fn(ctx, &argReader{ctx: ctx}, vals)
		}),
	)
}

// currentBuiltin reads the statement time, in the session time zone, as
// a value of type typ.
func currentBuiltin(typ types.Family, info string) builtinDefinition {
	return makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryDateAndTime,
			Volatility:   tree.VolatilityStable,
			NeedsContext: true,
			Info:         info,
		},
		fixedReturnType(typ),
		func(ctx tree.QueryContext, _ *tree.Args) (tree.Value, error) {
			return eval.FromTime(ctx, typ, eval.CurrentTime(ctx))
		},
	)
}

// dateAddBuiltin is DATE_ADD or DATE_SUB. Text and numbers are read as
// DATETIME.
func dateAddBuiltin(op treebin.BinaryOperatorSymbol, info string) builtinDefinition {
	operandTypes := func(l, r types.Family) (types.Family, types.Family) {
		if l.IsString() || l.IsNumeric() {
			l = types.DateTimeFamily
		}
		if !r.IsInterval() && r != types.NullFamily {
			r = types.IntervalMillisFamily
		}
		return l, r
	}
	return makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryDateAndTime,
			NullTreating: tree.NullTreatingReturnNull,
			NeedsContext: true,
			MinArgs:      2,
			MaxArgs:      2,
			Info:         info,
		},
		func(args []tree.Expression) (types.Family, error) {
			if t := args[1].ValueType(); !t.IsInterval() && t != types.NullFamily && !isNumeric(t) {
				return types.UnsupportedFamily, tree.NewArgTypeError(1, t)
			}
			l, r := operandTypes(args[0].ValueType(), args[1].ValueType())
			return tree.BinaryResultType(op, l, r)
		},
		func(ctx tree.QueryContext, args *tree.Args) (tree.Value, error) {
			vals, err := args.All()
			if err != nil {
				return tree.Value{}, err
			}
			iv := vals[1]
			if !iv.Type().IsInterval() {
				days, err := tree.ExtractInt64(ctx, iv)
				if err != nil {
					return tree.Value{}, err
				}
				d, err := duration.FromInt(days, duration.UnitDay)
				if err != nil {
					return tree.Value{}, err
				}
				iv = tree.NewIntervalMillis(d.Millis)
			}
			return eval.BinaryArith(ctx, op, args.ResultType(), vals[0], iv)
		},
	)
}

func addTimeBuiltin(sign int64, info string) builtinDefinition {
	return makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryDateAndTime,
			NullTreating: tree.NullTreatingReturnNull,
			NeedsContext: true,
			MinArgs:      2,
			MaxArgs:      2,
			Info:         info,
		},
		func(args []tree.Expression) (types.Family, error) {
			if err := checkArgs(args, isTemporal); err != nil {
				return types.UnsupportedFamily, err
			}
			if args[0].ValueType() == types.TimeFamily {
				return types.TimeFamily, nil
			}
			return types.DateTimeFamily, nil
		},
		func(ctx tree.QueryContext, args *tree.Args) (tree.Value, error) {
			vals, err := args.All()
			if err != nil {
				return tree.Value{}, err
			}
			typ := args.ResultType()
			t, _, ok, err := readTemporal(ctx, vals[1], timeFields)
			if !ok {
				return tree.TypedNull(typ), err
			}
			delta := sign * t.TimeSeconds()
			f, k, ok, err := readTemporal(ctx, vals[0], timeFields)
			if !ok {
				return tree.TypedNull(typ), err
			}
			if typ == types.TimeFamily {
				return eval.TimeValue(ctx, f.TimeSeconds()+delta)
			}
			if k == sqldate.KindTime {
				return eval.WarnNull(ctx, typ, pgerror.Newf(pgcode.InvalidParameterValue,
					"%s is not a date/time", vals[0]))
			}
			return eval.FromTime(ctx, typ, f.ToTime(time.UTC).Add(time.Duration(delta)*time.Second))
		},
	)
}

// unitArg reads the interval unit given as the string literal argument
// at position i.
func unitArg(args []tree.Expression, i int) (duration.Unit, error) {
	s, ok := literalString(args[i])
	if !ok {
		return 0, pgerror.Newf(pgcode.InvalidArgumentType,
			"argument %d must be an interval unit literal", i+1)
	}
	return duration.ParseUnit(s)
}

// instantOf reads v as a wall clock instant. A date is at midnight.
func instantOf(ctx tree.QueryContext, v tree.Value) (time.Time, bool, error) {
	f, k, ok, err := readTemporal(ctx, v, dateFields)
	if !ok {
		return time.Time{}, false, err
	}
	f.Hour, f.Minute, f.Second = timeOfDay(f, k)
	return f.ToTime(time.UTC), true, nil
}

func timeOfDay(f sqldate.Fields, k sqldate.Kind) (h, m, s int) {
	if k == sqldate.KindDate {
		return 0, 0, 0
	}
	return f.Hour, f.Minute, f.Second
}

// secondsOf is the signed second count of a TIME, or the seconds since
// the epoch of a date/time.
func secondsOf(f sqldate.Fields, k sqldate.Kind) int64 {
	if k == sqldate.KindTime {
		return f.TimeSeconds()
	}
	return sqldate.FieldsToTimestamp(f, time.UTC)
}

func fieldOverflow(typ types.Family) error {
	return pgerror.Newf(pgcode.DatetimeFieldOverflow, "%s value out of range", typ)
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func dayOfYear(f sqldate.Fields) int64 {
	return sqldate.DayNumber(f) - sqldate.DayNumber(sqldate.Fields{Year: f.Year, Month: 1, Day: 1}) + 1
}

// week numbers the Sunday-based weeks of the year: week 1 starts on the
// first Sunday, and the days before it are in week 0.
func week(f sqldate.Fields) int64 {
	jan1 := sqldate.Weekday(sqldate.Fields{Year: f.Year, Month: 1, Day: 1})
	firstSunday := int64(7-jan1) % 7
	yday := dayOfYear(f) - 1
	if yday < firstSunday {
		return 0
	}
	return (yday-firstSunday)/7 + 1
}

// formatDate renders f with a MySQL DATE_FORMAT format. Specifiers with
// a strftime equivalent are delegated to strtime; the others are
// computed here.
func formatDate(ctx tree.QueryContext, f sqldate.Fields, format string) (tree.Value, error) {
	var layout strings.Builder
	literal := func(s string) {
		layout.WriteString(strings.ReplaceAll(s, "%", "%%"))
	}
	hour12 := f.Hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i == len(format)-1 {
			literal(string(c))
			continue
		}
		i++
		switch spec := format[i]; spec {
		case 'a', 'b', 'd', 'H', 'I', 'j', 'm', 'p', 'S', 'y', 'Y':
			layout.WriteByte('%')
			layout.WriteByte(spec)
		case 'h':
			layout.WriteString("%I")
		case 'i':
			layout.WriteString("%M")
		case 's':
			layout.WriteString("%S")
		case 'M':
			layout.WriteString("%B")
		case 'W':
			layout.WriteString("%A")
		case 'r':
			layout.WriteString("%I:%M:%S %p")
		case 'T':
			layout.WriteString("%H:%M:%S")
		case 'c':
			literal(fmt.Sprint(f.Month))
		case 'e':
			literal(fmt.Sprint(f.Day))
		case 'D':
			literal(fmt.Sprint(f.Day) + ordinalSuffix(f.Day))
		case 'f':
			literal("000000")
		case 'k':
			literal(fmt.Sprint(f.Hour))
		case 'l':
			literal(fmt.Sprint(hour12))
		case 'U':
			literal(fmt.Sprintf("%02d", week(f)))
		case 'w':
			literal(fmt.Sprint(sqldate.Weekday(f)))
		default:
			// %% and unknown specifiers stand for the character itself.
			literal(string(spec))
		}
	}
	s, err := strtime.Strftime(f.ToTime(time.UTC), layout.String())
	if err != nil {
		return eval.WarnNull(ctx, types.VarcharFamily, pgerror.Wrapf(err,
			pgcode.InvalidParameterValue, "invalid date format %q", format))
	}
	return tree.NewVarchar(s), nil
}

func ordinalSuffix(day int) string {
	if day/10 == 1 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

// strptimeSpecs maps the MySQL format specifiers STR_TO_DATE accepts to
// strptime.
var strptimeSpecs = map[byte]string{
	'Y': "%Y",
	'y': "%y",
	'm': "%m",
	'c': "%m",
	'd': "%d",
	'e': "%d",
	'H': "%H",
	'k': "%H",
	'i': "%M",
	's': "%S",
	'S': "%S",
	'f': "%f",
	'b': "%b",
	'M': "%B",
	'j': "%j",
	'%': "%%",
}

func strptimeLayout(format string) (string, error) {
	var layout strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			layout.WriteByte(c)
			continue
		}
		i++
		if i == len(format) {
			return "", pgerror.Newf(pgcode.InvalidParameterValue, "format %q ends with %%", format)
		}
		spec, ok := strptimeSpecs[format[i]]
		if !ok {
			return "", pgerror.Newf(pgcode.InvalidParameterValue,
				"unsupported format specifier %%%c in %q", format[i], format)
		}
		layout.WriteString(spec)
	}
	return layout.String(), nil
}
