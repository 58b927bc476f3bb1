// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package eval

import (
	"math"
	"math/big"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree/treebin"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sessiondata"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
	"github.com/cockroachdb/sqlscalar/pkg/util/arith"
)

// MaxDecimalPrecision is the number of significant digits kept by
// decimal arithmetic.
const MaxDecimalPrecision = 65

// DecimalCtx is the default context for decimal operations.
var DecimalCtx = &apd.Context{
	Precision:   MaxDecimalPrecision,
	Rounding:    apd.RoundHalfUp,
	MaxExponent: 2000,
	MinExponent: -2000,
	Traps:       apd.DefaultTraps,
}

// ErrDivByZero is reported when a number is divided by zero.
var ErrDivByZero = pgerror.New(pgcode.DivisionByZero, "division by zero")

// ErrOverflow is reported when a result does not fit its type.
var ErrOverflow = pgerror.New(pgcode.Overflow, "numeric overflow")

func overflowErr(op treebin.BinaryOperatorSymbol, typ types.Family) error {
	return errors.Wrapf(ErrOverflow, "%s out of range for %s", op, typ)
}

// divByZero resolves a division by zero according to the session: an
// error, or a NULL and a warning.
func divByZero(ctx tree.QueryContext, typ types.Family) (tree.Value, error) {
	err := errors.WithStack(ErrDivByZero)
	if ctx != nil && ctx.SessionData().DivisionByZero == sessiondata.DivisionByZeroNull {
		ctx.Warn(err)
		return tree.TypedNull(typ), nil
	}
	return tree.Value{}, err
}

// BinaryArith computes l op r, where typ is the result type returned by
// tree.BinaryResultType for the operand types.
func BinaryArith(
	ctx tree.QueryContext, op treebin.BinaryOperatorSymbol, typ types.Family, l, r tree.Value,
) (tree.Value, error) {
	if l.IsNull() || r.IsNull() {
		return tree.TypedNull(typ), nil
	}
	if op.IsBitwise() {
		return bitwiseArith(ctx, op, l, r)
	}
	if typ.IsDateTime() || typ.IsInterval() {
		return dateArith(ctx, op, typ, l, r)
	}
	if op == treebin.IntDiv && typ == types.LongFamily && !isExactIntegral(l, r) {
		return intDivInexact(ctx, l, r)
	}
	switch typ {
	case types.LongFamily:
		a, err := tree.ExtractInt64(ctx, l)
		if err != nil {
			return tree.Value{}, err
		}
		b, err := tree.ExtractInt64(ctx, r)
		if err != nil {
			return tree.Value{}, err
		}
		return intArith(ctx, op, a, b)
	case types.UIntFamily:
		a, err := tree.ExtractUint64(ctx, l)
		if err != nil {
			return tree.Value{}, err
		}
		b, err := tree.ExtractUint64(ctx, r)
		if err != nil {
			return tree.Value{}, err
		}
		return uintArith(ctx, op, a, b)
	case types.UBigIntFamily:
		a, err := tree.ExtractBigInt(ctx, l)
		if err != nil {
			return tree.Value{}, err
		}
		b, err := tree.ExtractBigInt(ctx, r)
		if err != nil {
			return tree.Value{}, err
		}
		return bigArith(ctx, op, a, b)
	case types.DoubleFamily:
		a, err := tree.ExtractFloat64(ctx, l)
		if err != nil {
			return tree.Value{}, err
		}
		b, err := tree.ExtractFloat64(ctx, r)
		if err != nil {
			return tree.Value{}, err
		}
		return floatArith(ctx, op, a, b)
	case types.DecimalFamily:
		a, err := tree.ExtractDecimal(ctx, l)
		if err != nil {
			return tree.Value{}, err
		}
		b, err := tree.ExtractDecimal(ctx, r)
		if err != nil {
			return tree.Value{}, err
		}
		return decimalArith(ctx, op, a, b)
	}
	return tree.Value{}, errors.AssertionFailedf("unexpected result type %s for %s", typ, op)
}

func isExactIntegral(vals ...tree.Value) bool {
	for _, v := range vals {
		if !v.Type().IsIntegral() && v.Type() != types.BoolFamily {
			return false
		}
	}
	return true
}

func intArith(ctx tree.QueryContext, op treebin.BinaryOperatorSymbol, a, b int64) (tree.Value, error) {
	var r int64
	ok := true
	switch op {
	case treebin.Plus:
		r, ok = arith.AddWithOverflow(a, b)
	case treebin.Minus:
		r, ok = arith.SubWithOverflow(a, b)
	case treebin.Mult:
		r, ok = arith.MulWithOverflow(a, b)
	case treebin.Div, treebin.IntDiv, treebin.Mod:
		if b == 0 {
			return divByZero(ctx, types.LongFamily)
		}
		q, rem, divOK := arith.TruncDiv(a, b)
		if op == treebin.Mod {
			return tree.NewLong(rem), nil
		}
		r, ok = q, divOK
	}
	if !ok {
		return tree.Value{}, overflowErr(op, types.LongFamily)
	}
	return tree.NewLong(r), nil
}

func uintArith(
	ctx tree.QueryContext, op treebin.BinaryOperatorSymbol, a, b uint64,
) (tree.Value, error) {
	var r uint64
	ok := true
	switch op {
	case treebin.Plus:
		r, ok = arith.UnsignedAddWithOverflow(a, b)
	case treebin.Minus:
		r, ok = arith.UnsignedSubWithOverflow(a, b)
	case treebin.Mult:
		r, ok = arith.UnsignedMulWithOverflow(a, b)
	case treebin.Div, treebin.IntDiv:
		if b == 0 {
			return divByZero(ctx, types.UIntFamily)
		}
		r = a / b
	case treebin.Mod:
		if b == 0 {
			return divByZero(ctx, types.UIntFamily)
		}
		r = a % b
	}
	if !ok {
		return tree.Value{}, overflowErr(op, types.UIntFamily)
	}
	return tree.NewUInt(r), nil
}

func bigArith(ctx tree.QueryContext, op treebin.BinaryOperatorSymbol, a, b *big.Int) (tree.Value, error) {
	r := new(big.Int)
	switch op {
	case treebin.Plus:
		r.Add(a, b)
	case treebin.Minus:
		r.Sub(a, b)
	case treebin.Mult:
		r.Mul(a, b)
	case treebin.Div, treebin.IntDiv:
		if b.Sign() == 0 {
			return divByZero(ctx, types.UBigIntFamily)
		}
		r.Quo(a, b)
	case treebin.Mod:
		if b.Sign() == 0 {
			return divByZero(ctx, types.UBigIntFamily)
		}
		r.Rem(a, b)
	}
	if r.Sign() < 0 {
		return tree.Value{}, overflowErr(op, types.UBigIntFamily)
	}
	return tree.NewUBigInt(r), nil
}

func floatArith(ctx tree.QueryContext, op treebin.BinaryOperatorSymbol, a, b float64) (tree.Value, error) {
	var r float64
	switch op {
	case treebin.Plus:
		r = a + b
	case treebin.Minus:
		r = a - b
	case treebin.Mult:
		r = a * b
	case treebin.Div:
		if b == 0 {
			return divByZero(ctx, types.DoubleFamily)
		}
		r = a / b
	case treebin.Mod:
		if b == 0 {
			return divByZero(ctx, types.DoubleFamily)
		}
		r = math.Mod(a, b)
	}
	if isFinite(a) && isFinite(b) && !isFinite(r) {
		return tree.Value{}, overflowErr(op, types.DoubleFamily)
	}
	return tree.NewDouble(r), nil
}

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// decimalScale returns the number of digits after the decimal point.
func decimalScale(d *apd.Decimal) int32 {
	if d.Exponent < 0 {
		return -d.Exponent
	}
	return 0
}

func decimalArith(
	ctx tree.QueryContext, op treebin.BinaryOperatorSymbol, a, b *apd.Decimal,
) (tree.Value, error) {
	r := new(apd.Decimal)
	var err error
	switch op {
	case treebin.Plus:
		_, err = DecimalCtx.Add(r, a, b)
	case treebin.Minus:
		_, err = DecimalCtx.Sub(r, a, b)
	case treebin.Mult:
		_, err = DecimalCtx.Mul(r, a, b)
	case treebin.Div:
		if b.IsZero() {
			return divByZero(ctx, types.DecimalFamily)
		}
		if _, err = DecimalCtx.Quo(r, a, b); err == nil {
			incr := int32(ctx.SessionData().DivPrecisionIncrement)
			_, err = DecimalCtx.Quantize(r, r, -(decimalScale(a) + incr))
		}
	case treebin.Mod:
		if b.IsZero() {
			return divByZero(ctx, types.DecimalFamily)
		}
		_, err = DecimalCtx.Rem(r, a, b)
	}
	if err != nil {
		return tree.Value{}, pgerror.Wrapf(err, pgcode.Overflow, "decimal %s", op)
	}
	return tree.NewDecimal(r), nil
}

// intDivInexact computes DIV over approximate or decimal operands: the
// exact quotient truncated toward zero.
func intDivInexact(ctx tree.QueryContext, l, r tree.Value) (tree.Value, error) {
	a, err := tree.ExtractDecimal(ctx, l)
	if err != nil {
		return tree.Value{}, err
	}
	b, err := tree.ExtractDecimal(ctx, r)
	if err != nil {
		return tree.Value{}, err
	}
	if b.IsZero() {
		return divByZero(ctx, types.LongFamily)
	}
	q := new(apd.Decimal)
	if _, err := DecimalCtx.QuoInteger(q, a, b); err != nil {
		return tree.Value{}, pgerror.Wrapf(err, pgcode.Overflow, "DIV")
	}
	i, err := q.Int64()
	if err != nil {
		return tree.Value{}, overflowErr(treebin.IntDiv, types.LongFamily)
	}
	return tree.NewLong(i), nil
}

func bitwiseArith(
	ctx tree.QueryContext, op treebin.BinaryOperatorSymbol, l, r tree.Value,
) (tree.Value, error) {
	a, err := tree.ExtractUint64(ctx, l)
	if err != nil {
		return tree.Value{}, err
	}
	b, err := tree.ExtractUint64(ctx, r)
	if err != nil {
		return tree.Value{}, err
	}
	var res uint64
	switch op {
	case treebin.Bitand:
		res = a & b
	case treebin.Bitor:
		res = a | b
	case treebin.Bitxor:
		res = a ^ b
	case treebin.LShift:
		if b < 64 {
			res = a << b
		}
	case treebin.RShift:
		if b < 64 {
			res = a >> b
		}
	}
	return tree.NewUInt(res), nil
}

// UnaryMinusResultType returns the type of -x for an operand of type
// typ.
func UnaryMinusResultType(typ types.Family) (types.Family, error) {
	switch {
	case typ == types.NullFamily, typ == types.BoolFamily, typ == types.UIntFamily:
		return types.LongFamily, nil
	case typ == types.UBigIntFamily:
		return types.DecimalFamily, nil
	case typ.IsInterval():
		return typ, nil
	}
	if f, ok := types.ArithmeticOperand(typ); ok {
		return types.CanonicalNumeric(f), nil
	}
	return types.UnsupportedFamily, tree.NewArgTypeError(0, typ)
}

// UnaryMinus computes -v, where typ was returned by
// UnaryMinusResultType.
func UnaryMinus(ctx tree.QueryContext, typ types.Family, v tree.Value) (tree.Value, error) {
	if v.IsNull() {
		return tree.TypedNull(typ), nil
	}
	switch typ {
	case types.LongFamily:
		if v.Type() == types.UIntFamily {
			u := v.Uint64()
			if u > 1<<63 {
				return tree.Value{}, overflowErr(treebin.Minus, typ)
			}
			return tree.NewLong(int64(-u)), nil
		}
		i, err := tree.ExtractInt64(ctx, v)
		if err != nil {
			return tree.Value{}, err
		}
		if i == math.MinInt64 {
			return tree.Value{}, overflowErr(treebin.Minus, typ)
		}
		return tree.NewLong(-i), nil
	case types.DoubleFamily:
		f, err := tree.ExtractFloat64(ctx, v)
		if err != nil {
			return tree.Value{}, err
		}
		return tree.NewDouble(-f), nil
	case types.DecimalFamily:
		d, err := tree.ExtractDecimal(ctx, v)
		if err != nil {
			return tree.Value{}, err
		}
		return tree.NewDecimal(d.Neg(d)), nil
	case types.IntervalMillisFamily:
		if v.IntervalMillis() == math.MinInt64 {
			return tree.Value{}, overflowErr(treebin.Minus, typ)
		}
		return tree.NewIntervalMillis(-v.IntervalMillis()), nil
	case types.IntervalMonthFamily:
		if v.IntervalMonths() == math.MinInt64 {
			return tree.Value{}, overflowErr(treebin.Minus, typ)
		}
		return tree.NewIntervalMonth(-v.IntervalMonths()), nil
	}
	return tree.Value{}, errors.AssertionFailedf("unexpected type %s for unary minus", typ)
}

// Complement computes ~v over 64-bit unsigned integers.
func Complement(ctx tree.QueryContext, v tree.Value) (tree.Value, error) {
	if v.IsNull() {
		return tree.TypedNull(types.UIntFamily), nil
	}
	u, err := tree.ExtractUint64(ctx, v)
	if err != nil {
		return tree.Value{}, err
	}
	return tree.NewUInt(^u), nil
}
