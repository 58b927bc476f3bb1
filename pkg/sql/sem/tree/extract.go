// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
	"github.com/cockroachdb/sqlscalar/pkg/util/timeutil/sqldate"
)

// The Extract functions convert a non-NULL value of any family to the
// Go representation an operator works on. They are lenient the way
// MySQL is: text is read up to its longest numeric prefix, temporal
// values read as their YYYYMMDDhhmmss numbers, and a lossy read records
// a warning on ctx (which may be nil) instead of failing.

// ErrNumericOverflow is returned when a value does not fit the
// requested representation.
var ErrNumericOverflow = pgerror.New(pgcode.Overflow, "value out of range")

func warn(ctx QueryContext, err error) {
	if ctx != nil {
		ctx.Warn(err)
	}
}

func truncated(kind, s string) error {
	return pgerror.Newf(pgcode.InvalidCharToNum, "truncated incorrect %s value: '%s'", kind, s)
}

func overflow(v Value, kind string) error {
	return errors.Wrapf(ErrNumericOverflow, "%s value %s out of range for %s", v.typ, v, kind)
}

func nullErr() error {
	return errors.WithStack(ErrValueSourceIsNull)
}

// numericPrefix returns the longest prefix of s (after leading blanks)
// that reads as a number. exact is false if anything but trailing
// blanks follows it. With integral set, the prefix stops at the decimal
// point.
func numericPrefix(s string, integral bool) (prefix string, exact bool) {
	t := strings.TrimLeft(s, " \t\n\r")
	i := 0
	if i < len(t) && (t[i] == '+' || t[i] == '-') {
		i++
	}
	digits := 0
	for i < len(t) && t[i] >= '0' && t[i] <= '9' {
		i++
		digits++
	}
	if !integral && i < len(t) && t[i] == '.' {
		i++
		for i < len(t) && t[i] >= '0' && t[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return "0", false
	}
	if !integral && i < len(t) && (t[i] == 'e' || t[i] == 'E') {
		j := i + 1
		if j < len(t) && (t[j] == '+' || t[j] == '-') {
			j++
		}
		if j < len(t) && t[j] >= '0' && t[j] <= '9' {
			for j < len(t) && t[j] >= '0' && t[j] <= '9' {
				j++
			}
			i = j
		}
	}
	prefix = t[:i]
	if prefix[len(prefix)-1] == '.' {
		prefix = prefix[:len(prefix)-1]
	}
	return prefix, strings.TrimRight(t[i:], " \t\n\r") == ""
}

// temporalNumber returns the numeric reading of a temporal or interval
// value.
func temporalNumber(ctx QueryContext, v Value) int64 {
	switch v.typ {
	case types.DateFamily:
		f := sqldate.DecodeDate(v.i)
		return int64(f.Year)*10000 + int64(f.Month)*100 + int64(f.Day)
	case types.TimestampFamily:
		loc := EmptyQueryContext.SessionData().Location()
		if ctx != nil {
			loc = Location(ctx)
		}
		return sqldate.EncodeDateTime(sqldate.TimestampToFields(v.i, loc))
	case types.YearFamily:
		return int64(sqldate.DecodeYear(v.i))
	}
	return v.i
}

func roundToInt64(v Value, f float64) (int64, error) {
	r := math.Round(f)
	if math.IsNaN(r) || r < -9.223372036854775808e18 || r >= 9.223372036854775808e18 {
		return 0, overflow(v, "LONG")
	}
	return int64(r), nil
}

// ExtractInt64 reads v as a signed 64-bit integer. Approximate and
// decimal values are rounded half away from zero.
func ExtractInt64(ctx QueryContext, v Value) (int64, error) {
	if v.IsNull() {
		return 0, nullErr()
	}
	switch v.typ {
	case types.BoolFamily, types.IntFamily, types.LongFamily:
		return v.i, nil
	case types.UIntFamily:
		if v.i < 0 {
			return 0, overflow(v, "LONG")
		}
		return v.i, nil
	case types.UBigIntFamily:
		if !v.big.IsInt64() {
			return 0, overflow(v, "LONG")
		}
		return v.big.Int64(), nil
	case types.FloatFamily, types.UFloatFamily, types.DoubleFamily, types.UDoubleFamily:
		return roundToInt64(v, v.f)
	case types.DecimalFamily:
		var r apd.Decimal
		if _, err := apd.BaseContext.WithPrecision(65).RoundToIntegralValue(&r, v.dec); err != nil {
			return 0, err
		}
		i, err := r.Int64()
		if err != nil {
			return 0, overflow(v, "LONG")
		}
		return i, nil
	case types.VarcharFamily, types.TextFamily, types.VarbinaryFamily:
		prefix, exact := numericPrefix(v.s, true)
		i, err := strconv.ParseInt(prefix, 10, 64)
		if err != nil {
			return 0, overflow(v, "LONG")
		}
		if !exact {
			warn(ctx, truncated("INTEGER", v.s))
		}
		return i, nil
	case types.DateFamily, types.TimeFamily, types.DateTimeFamily, types.TimestampFamily,
		types.YearFamily, types.IntervalMillisFamily, types.IntervalMonthFamily:
		return temporalNumber(ctx, v), nil
	}
	return 0, pgerror.Newf(pgcode.InvalidArgumentType, "cannot read %s as an integer", v.typ)
}

// ExtractUint64 reads v as an unsigned 64-bit integer. Negative signed
// values are reinterpreted in two's complement, which is what the
// bitwise operators expect.
func ExtractUint64(ctx QueryContext, v Value) (uint64, error) {
	if v.IsNull() {
		return 0, nullErr()
	}
	switch v.typ {
	case types.UIntFamily:
		return uint64(v.i), nil
	case types.UBigIntFamily:
		if !v.big.IsUint64() {
			return 0, overflow(v, "U_INT")
		}
		return v.big.Uint64(), nil
	case types.FloatFamily, types.UFloatFamily, types.DoubleFamily, types.UDoubleFamily:
		if r := math.Round(v.f); r >= 9.223372036854775808e18 && r < 1.8446744073709551616e19 {
			return uint64(r), nil
		}
	case types.VarcharFamily, types.TextFamily, types.VarbinaryFamily:
		prefix, exact := numericPrefix(v.s, true)
		if !strings.HasPrefix(prefix, "-") {
			u, err := strconv.ParseUint(strings.TrimPrefix(prefix, "+"), 10, 64)
			if err != nil {
				return 0, overflow(v, "U_INT")
			}
			if !exact {
				warn(ctx, truncated("INTEGER", v.s))
			}
			return u, nil
		}
	case types.DecimalFamily:
		if v.dec.Sign() > 0 {
			b, err := ExtractBigInt(ctx, v)
			if err != nil {
				return 0, err
			}
			if !b.IsUint64() {
				return 0, overflow(v, "U_INT")
			}
			return b.Uint64(), nil
		}
	}
	i, err := ExtractInt64(ctx, v)
	return uint64(i), err
}

// ExtractBigInt reads v as an arbitrary precision integer.
func ExtractBigInt(ctx QueryContext, v Value) (*big.Int, error) {
	if v.IsNull() {
		return nil, nullErr()
	}
	switch v.typ {
	case types.UIntFamily:
		return new(big.Int).SetUint64(uint64(v.i)), nil
	case types.UBigIntFamily:
		return new(big.Int).Set(v.big), nil
	case types.FloatFamily, types.UFloatFamily, types.DoubleFamily, types.UDoubleFamily:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return nil, overflow(v, "U_BIGINT")
		}
		b, _ := big.NewFloat(math.Round(v.f)).Int(nil)
		return b, nil
	case types.DecimalFamily:
		var r apd.Decimal
		if _, err := apd.BaseContext.WithPrecision(65).RoundToIntegralValue(&r, v.dec); err != nil {
			return nil, err
		}
		b, ok := new(big.Int).SetString(r.Text('f'), 10)
		if !ok {
			return nil, overflow(v, "U_BIGINT")
		}
		return b, nil
	case types.VarcharFamily, types.TextFamily, types.VarbinaryFamily:
		prefix, exact := numericPrefix(v.s, true)
		b, ok := new(big.Int).SetString(prefix, 10)
		if !ok {
			return nil, pgerror.Newf(pgcode.InvalidCharToNum, "invalid integer: '%s'", v.s)
		}
		if !exact {
			warn(ctx, truncated("INTEGER", v.s))
		}
		return b, nil
	}
	i, err := ExtractInt64(ctx, v)
	if err != nil {
		return nil, err
	}
	return big.NewInt(i), nil
}

// ExtractFloat64 reads v as a double. A U_BIGINT or DECIMAL too large
// for a double is an overflow.
func ExtractFloat64(ctx QueryContext, v Value) (float64, error) {
	if v.IsNull() {
		return 0, nullErr()
	}
	switch v.typ {
	case types.FloatFamily, types.UFloatFamily, types.DoubleFamily, types.UDoubleFamily:
		return v.f, nil
	case types.UIntFamily:
		return float64(uint64(v.i)), nil
	case types.UBigIntFamily:
		f, _ := new(big.Float).SetInt(v.big).Float64()
		if math.IsInf(f, 0) {
			return 0, overflow(v, "DOUBLE")
		}
		return f, nil
	case types.DecimalFamily:
		f, err := v.dec.Float64()
		if err != nil || math.IsInf(f, 0) {
			return 0, overflow(v, "DOUBLE")
		}
		return f, nil
	case types.VarcharFamily, types.TextFamily, types.VarbinaryFamily:
		prefix, exact := numericPrefix(v.s, false)
		f, err := strconv.ParseFloat(prefix, 64)
		if err != nil {
			return 0, overflow(v, "DOUBLE")
		}
		if !exact {
			warn(ctx, truncated("DOUBLE", v.s))
		}
		return f, nil
	}
	i, err := ExtractInt64(ctx, v)
	return float64(i), err
}

// ExtractDecimal reads v as a decimal.
func ExtractDecimal(ctx QueryContext, v Value) (*apd.Decimal, error) {
	if v.IsNull() {
		return nil, nullErr()
	}
	switch v.typ {
	case types.DecimalFamily:
		return new(apd.Decimal).Set(v.dec), nil
	case types.UIntFamily, types.UBigIntFamily:
		b, err := ExtractBigInt(ctx, v)
		if err != nil {
			return nil, err
		}
		return apd.NewWithBigInt(new(apd.BigInt).SetMathBigInt(b), 0), nil
	case types.FloatFamily, types.UFloatFamily, types.DoubleFamily, types.UDoubleFamily:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return nil, overflow(v, "DECIMAL")
		}
		d := new(apd.Decimal)
		if _, err := d.SetFloat64(v.f); err != nil {
			return nil, err
		}
		return d, nil
	case types.VarcharFamily, types.TextFamily, types.VarbinaryFamily:
		prefix, exact := numericPrefix(v.s, false)
		d, _, err := apd.NewFromString(prefix)
		if err != nil {
			return nil, pgerror.Wrapf(err, pgcode.InvalidCharToNum, "invalid decimal: '%s'", v.s)
		}
		if !exact {
			warn(ctx, truncated("DECIMAL", v.s))
		}
		return d, nil
	}
	i, err := ExtractInt64(ctx, v)
	if err != nil {
		return nil, err
	}
	return apd.New(i, 0), nil
}

// ExtractBool reads v as a truth value: non-zero numbers are true.
// The strings "true" and "false" are accepted in any case.
func ExtractBool(ctx QueryContext, v Value) (bool, error) {
	if v.IsNull() {
		return false, nullErr()
	}
	switch v.typ {
	case types.BoolFamily:
		return v.i != 0, nil
	case types.VarcharFamily, types.TextFamily:
		switch strings.ToLower(strings.TrimSpace(v.s)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	case types.DecimalFamily:
		return v.dec.Sign() != 0, nil
	case types.UBigIntFamily:
		return v.big.Sign() != 0, nil
	}
	f, err := ExtractFloat64(ctx, v)
	return f != 0, err
}

// ExtractString renders v as text. Timestamps are rendered in the
// session time zone.
func ExtractString(ctx QueryContext, v Value) (string, error) {
	if v.IsNull() {
		return "", nullErr()
	}
	switch v.typ {
	case types.VarcharFamily, types.TextFamily, types.VarbinaryFamily:
		return v.s, nil
	case types.TimestampFamily:
		if ctx != nil {
			return formatDateTime(sqldate.TimestampToFields(v.i, Location(ctx))), nil
		}
	}
	return v.String(), nil
}

// ExtractDateTime reads v as broken-down date and time fields. Text is
// parsed; numbers read as YYYYMMDD or YYYYMMDDhhmmss. The returned Kind
// says which fields are meaningful. A value that does not denote a
// valid date or time yields an error marked with
// sqldate.ErrInvalidDatetime.
func ExtractDateTime(ctx QueryContext, v Value) (sqldate.Fields, sqldate.Kind, error) {
	if v.IsNull() {
		return sqldate.Fields{}, 0, nullErr()
	}
	switch v.typ {
	case types.DateFamily:
		return sqldate.DecodeDate(v.i), sqldate.KindDate, nil
	case types.DateTimeFamily:
		return sqldate.DecodeDateTime(v.i), sqldate.KindDateTime, nil
	case types.TimestampFamily:
		loc := EmptyQueryContext.SessionData().Location()
		if ctx != nil {
			loc = Location(ctx)
		}
		return sqldate.TimestampToFields(v.i, loc), sqldate.KindDateTime, nil
	case types.TimeFamily:
		return sqldate.DecodeTime(v.i), sqldate.KindTime, nil
	case types.VarcharFamily, types.TextFamily:
		return sqldate.Parse(v.s)
	case types.IntFamily, types.LongFamily, types.UIntFamily, types.UBigIntFamily,
		types.FloatFamily, types.UFloatFamily, types.DoubleFamily, types.UDoubleFamily,
		types.DecimalFamily:
		n, err := ExtractInt64(ctx, v)
		if err != nil {
			return sqldate.Fields{}, 0, errors.Mark(err, sqldate.ErrInvalidDatetime)
		}
		return sqldate.FromNumber(n)
	}
	return sqldate.Fields{}, 0, errors.Mark(
		pgerror.Newf(pgcode.InvalidDatetimeFormat, "%s value %s is not a date or time", v.typ, v),
		sqldate.ErrInvalidDatetime)
}
