// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"encoding/hex"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
	"github.com/cockroachdb/sqlscalar/pkg/util/duration"
	"github.com/cockroachdb/sqlscalar/pkg/util/timeutil/sqldate"
)

// Value is an immutable, single typed scalar. A Value is either NULL or
// carries a payload matching its type. A NULL may still carry a type
// (see TypedNull) so that the result type of an expression survives a
// NULL result.
//
// The zero Value is a NULL of UnsupportedFamily and is what functions
// return alongside an error; DNull is the untyped NULL.
type Value struct {
	typ     types.Family
	present bool

	i   int64
	f   float64
	s   string
	big *big.Int
	dec *apd.Decimal
}

// DNull is the untyped NULL.
var DNull = Value{typ: types.NullFamily}

// TypedNull returns a NULL of the given type.
func TypedNull(typ types.Family) Value {
	return Value{typ: typ}
}

// ErrValueSourceIsNull is the cause of the panic raised by an accessor
// invoked on a NULL.
var ErrValueSourceIsNull = pgerror.New(pgcode.NullValueNotAllowed, "value source is null")

// NewBool returns a BOOL.
func NewBool(b bool) Value {
	v := Value{typ: types.BoolFamily, present: true}
	if b {
		v.i = 1
	}
	return v
}

// DBoolTrue and DBoolFalse are the two BOOL values.
var (
	DBoolTrue  = NewBool(true)
	DBoolFalse = NewBool(false)
)

// NewInt returns an INT.
func NewInt(i int32) Value {
	return Value{typ: types.IntFamily, present: true, i: int64(i)}
}

// NewLong returns a LONG.
func NewLong(i int64) Value {
	return Value{typ: types.LongFamily, present: true, i: i}
}

// NewUInt returns a U_INT.
func NewUInt(u uint64) Value {
	return Value{typ: types.UIntFamily, present: true, i: int64(u)}
}

// NewUBigInt returns a U_BIGINT. The argument is copied. It panics if b
// is negative.
func NewUBigInt(b *big.Int) Value {
	if b.Sign() < 0 {
		panic(errors.AssertionFailedf("negative U_BIGINT: %s", b))
	}
	return Value{typ: types.UBigIntFamily, present: true, big: new(big.Int).Set(b)}
}

// NewUBigIntFromUint64 returns a U_BIGINT.
func NewUBigIntFromUint64(u uint64) Value {
	return Value{typ: types.UBigIntFamily, present: true, big: new(big.Int).SetUint64(u)}
}

// NewFloat returns a FLOAT, rounded to single precision.
func NewFloat(f float64) Value {
	return Value{typ: types.FloatFamily, present: true, f: float64(float32(f))}
}

// NewUFloat returns a U_FLOAT, rounded to single precision.
func NewUFloat(f float64) Value {
	return Value{typ: types.UFloatFamily, present: true, f: float64(float32(f))}
}

// NewDouble returns a DOUBLE.
func NewDouble(f float64) Value {
	return Value{typ: types.DoubleFamily, present: true, f: f}
}

// NewUDouble returns a U_DOUBLE.
func NewUDouble(f float64) Value {
	return Value{typ: types.UDoubleFamily, present: true, f: f}
}

// NewDecimal returns a DECIMAL. The argument is copied.
func NewDecimal(d *apd.Decimal) Value {
	return Value{typ: types.DecimalFamily, present: true, dec: new(apd.Decimal).Set(d)}
}

// NewVarchar returns a VARCHAR.
func NewVarchar(s string) Value {
	return Value{typ: types.VarcharFamily, present: true, s: s}
}

// NewText returns a TEXT.
func NewText(s string) Value {
	return Value{typ: types.TextFamily, present: true, s: s}
}

// NewVarbinary returns a VARBINARY. The argument is copied.
func NewVarbinary(b []byte) Value {
	return Value{typ: types.VarbinaryFamily, present: true, s: string(b)}
}

// NewDate returns a DATE from its encoding.
func NewDate(enc int64) Value {
	return Value{typ: types.DateFamily, present: true, i: enc}
}

// NewTime returns a TIME from its encoding.
func NewTime(enc int64) Value {
	return Value{typ: types.TimeFamily, present: true, i: enc}
}

// NewDateTime returns a DATETIME from its encoding.
func NewDateTime(enc int64) Value {
	return Value{typ: types.DateTimeFamily, present: true, i: enc}
}

// NewTimestamp returns a TIMESTAMP from Unix seconds.
func NewTimestamp(unix int64) Value {
	return Value{typ: types.TimestampFamily, present: true, i: unix}
}

// NewYear returns a YEAR from its encoding.
func NewYear(enc int64) Value {
	return Value{typ: types.YearFamily, present: true, i: enc}
}

// NewIntervalMillis returns an INTERVAL_MILLIS.
func NewIntervalMillis(ms int64) Value {
	return Value{typ: types.IntervalMillisFamily, present: true, i: ms}
}

// NewIntervalMonth returns an INTERVAL_MONTH.
func NewIntervalMonth(months int64) Value {
	return Value{typ: types.IntervalMonthFamily, present: true, i: months}
}

// NewDateFromFields encodes the date fields of f.
func NewDateFromFields(f sqldate.Fields) Value { return NewDate(sqldate.EncodeDate(f)) }

// NewTimeFromFields encodes the time fields of f.
func NewTimeFromFields(f sqldate.Fields) Value { return NewTime(sqldate.EncodeTime(f)) }

// NewDateTimeFromFields encodes f as a DATETIME.
func NewDateTimeFromFields(f sqldate.Fields) Value {
	return NewDateTime(sqldate.EncodeDateTime(f))
}

// Type returns the semantic type. A typed NULL reports its type.
func (v Value) Type() types.Family {
	return v.typ
}

// IsNull returns true iff v is NULL.
func (v Value) IsNull() bool {
	return !v.present
}

// check panics unless v is non-NULL and of one of the given families.
func (v Value) check(fams ...types.Family) {
	if !v.present {
		panic(errors.WithStack(ErrValueSourceIsNull))
	}
	for _, f := range fams {
		if v.typ == f {
			return
		}
	}
	panic(errors.AssertionFailedf("expected %v, found %s", fams, v.typ))
}

// Bool returns the payload of a BOOL.
func (v Value) Bool() bool {
	v.check(types.BoolFamily)
	return v.i != 0
}

// Int64 returns the payload of an INT or a LONG.
func (v Value) Int64() int64 {
	v.check(types.IntFamily, types.LongFamily)
	return v.i
}

// Uint64 returns the payload of a U_INT.
func (v Value) Uint64() uint64 {
	v.check(types.UIntFamily)
	return uint64(v.i)
}

// BigInt returns a copy of the payload of a U_BIGINT.
func (v Value) BigInt() *big.Int {
	v.check(types.UBigIntFamily)
	return new(big.Int).Set(v.big)
}

// Float64 returns the payload of a FLOAT, U_FLOAT, DOUBLE or U_DOUBLE.
func (v Value) Float64() float64 {
	v.check(types.FloatFamily, types.UFloatFamily, types.DoubleFamily, types.UDoubleFamily)
	return v.f
}

// Decimal returns a copy of the payload of a DECIMAL.
func (v Value) Decimal() *apd.Decimal {
	v.check(types.DecimalFamily)
	return new(apd.Decimal).Set(v.dec)
}

// StringValue returns the payload of a VARCHAR or TEXT.
func (v Value) StringValue() string {
	v.check(types.VarcharFamily, types.TextFamily)
	return v.s
}

// Bytes returns a copy of the payload of a VARBINARY.
func (v Value) Bytes() []byte {
	v.check(types.VarbinaryFamily)
	return []byte(v.s)
}

// DateEncoded returns the encoding of a DATE.
func (v Value) DateEncoded() int64 {
	v.check(types.DateFamily)
	return v.i
}

// TimeEncoded returns the encoding of a TIME.
func (v Value) TimeEncoded() int64 {
	v.check(types.TimeFamily)
	return v.i
}

// DateTimeEncoded returns the encoding of a DATETIME.
func (v Value) DateTimeEncoded() int64 {
	v.check(types.DateTimeFamily)
	return v.i
}

// TimestampUnix returns the Unix seconds of a TIMESTAMP.
func (v Value) TimestampUnix() int64 {
	v.check(types.TimestampFamily)
	return v.i
}

// YearEncoded returns the encoding of a YEAR.
func (v Value) YearEncoded() int64 {
	v.check(types.YearFamily)
	return v.i
}

// IntervalMillis returns the payload of an INTERVAL_MILLIS.
func (v Value) IntervalMillis() int64 {
	v.check(types.IntervalMillisFamily)
	return v.i
}

// IntervalMonths returns the payload of an INTERVAL_MONTH.
func (v Value) IntervalMonths() int64 {
	v.check(types.IntervalMonthFamily)
	return v.i
}

// Equal reports whether two values have the same type, nullness and
// payload. Decimals are compared numerically, so 3.0 equals 3.00.
// NaN doubles are equal to each other.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ || v.present != o.present {
		return false
	}
	if !v.present {
		return true
	}
	switch v.typ {
	case types.UBigIntFamily:
		return v.big.Cmp(o.big) == 0
	case types.DecimalFamily:
		return v.dec.Cmp(o.dec) == 0
	case types.FloatFamily, types.UFloatFamily, types.DoubleFamily, types.UDoubleFamily:
		if math.IsNaN(v.f) && math.IsNaN(o.f) {
			return true
		}
		return v.f == o.f
	case types.VarcharFamily, types.TextFamily, types.VarbinaryFamily:
		return v.s == o.s
	default:
		return v.i == o.i
	}
}

// String renders the value the way a MySQL client displays it.
// Timestamps are shown in UTC.
func (v Value) String() string {
	if !v.present {
		return "NULL"
	}
	switch v.typ {
	case types.BoolFamily:
		return strconv.FormatBool(v.i != 0)
	case types.IntFamily, types.LongFamily:
		return strconv.FormatInt(v.i, 10)
	case types.UIntFamily:
		return strconv.FormatUint(uint64(v.i), 10)
	case types.UBigIntFamily:
		return v.big.String()
	case types.FloatFamily, types.UFloatFamily:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case types.DoubleFamily, types.UDoubleFamily:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case types.DecimalFamily:
		return v.dec.Text('f')
	case types.VarcharFamily, types.TextFamily:
		return v.s
	case types.VarbinaryFamily:
		return `\x` + hex.EncodeToString([]byte(v.s))
	case types.DateFamily:
		f := sqldate.DecodeDate(v.i)
		return fmt.Sprintf("%04d-%02d-%02d", f.Year, f.Month, f.Day)
	case types.TimeFamily:
		f := sqldate.DecodeTime(v.i)
		sign := ""
		if f.Neg {
			sign = "-"
		}
		return fmt.Sprintf("%s%02d:%02d:%02d", sign, f.Hour, f.Minute, f.Second)
	case types.DateTimeFamily:
		return formatDateTime(sqldate.DecodeDateTime(v.i))
	case types.TimestampFamily:
		return formatDateTime(sqldate.TimestampToFields(v.i, time.UTC))
	case types.YearFamily:
		return fmt.Sprintf("%04d", sqldate.DecodeYear(v.i))
	case types.IntervalMillisFamily:
		return duration.FromMillis(v.i).String()
	case types.IntervalMonthFamily:
		return duration.FromMonths(v.i).String()
	}
	return fmt.Sprintf("<%s>", v.typ)
}

func formatDateTime(f sqldate.Fields) string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second)
}
