// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtins

import (
	"math"
	"math/rand"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/eval"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
)

var (
	ceilBuiltin = roundingBuiltin(1, 1,
		"Smallest integer not less than the argument.",
		math.Ceil, apd.RoundCeiling)
	logBuiltin = makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryMath,
			NullTreating: tree.NullTreatingReturnNull,
			MinArgs:      1,
			MaxArgs:      2,
			Info:         "LOG(x) is the natural logarithm of x; LOG(b, x) the logarithm of x in base b.",
		},
		argsOf(isNumeric, types.DoubleFamily),
		variadic(func(ctx tree.QueryContext, vals []tree.Value) (tree.Value, error) {
			r := argReader{ctx: ctx}
			if len(vals) == 1 {
				return logarithm(ctx, r.float(vals[0]), math.Log, r.err)
			}
			b, x := r.float(vals[0]), r.float(vals[1])
			if r.err != nil {
				return tree.Value{}, r.err
			}
			if b <= 0 || b == 1 {
				return eval.WarnNull(ctx, types.DoubleFamily, errInvalidLogArgument)
			}
			return logarithm(ctx, x, func(x float64) float64 { return math.Log(x) / math.Log(b) }, nil)
		}),
	)
	powBuiltin = floatBuiltin(2, "POW(x, y) is x raised to the power y.",
		func(ctx tree.QueryContext, x []float64) (tree.Value, error) {
			return doubleResult(math.Pow(x[0], x[1]))
		})
)

var errInvalidLogArgument = pgerror.New(pgcode.InvalidParameterValue, "invalid argument for logarithm")

var mathBuiltins = map[string]builtinDefinition{
	"ABS": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryMath,
			NullTreating: tree.NullTreatingReturnNull,
			MinArgs:      1,
			MaxArgs:      1,
			Info:         "Absolute value.",
		},
		numericResultType,
		func(ctx tree.QueryContext, args *tree.Args) (tree.Value, error) {
			v, err := args.Get(0)
			if err != nil {
				return tree.Value{}, err
			}
			switch typ := args.ResultType(); typ {
			case types.LongFamily:
				i, err := tree.ExtractInt64(ctx, v)
				if err != nil {
					return tree.Value{}, err
				}
				if i == math.MinInt64 {
					return tree.Value{}, errors.Wrapf(eval.ErrOverflow, "ABS out of range for %s", typ)
				}
				if i < 0 {
					i = -i
				}
				return tree.NewLong(i), nil
			case types.DecimalFamily:
				d, err := tree.ExtractDecimal(ctx, v)
				if err != nil {
					return tree.Value{}, err
				}
				return tree.NewDecimal(new(apd.Decimal).Abs(d)), nil
			case types.DoubleFamily:
				f, err := tree.ExtractFloat64(ctx, v)
				return tree.NewDouble(math.Abs(f)), err
			}
			// Unsigned.
			return eval.PerformCast(ctx, v, args.ResultType())
		},
	),

	"SIGN": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryMath,
			NullTreating: tree.NullTreatingReturnNull,
			MinArgs:      1,
			MaxArgs:      1,
			Info:         "-1, 0 or 1 according to the sign of the argument.",
		},
		argsOf(isNumeric, types.LongFamily),
		unary(func(ctx tree.QueryContext, v tree.Value) (tree.Value, error) {
			if v.Type() == types.DecimalFamily {
				return tree.NewLong(int64(v.Decimal().Sign())), nil
			}
			f, err := tree.ExtractFloat64(ctx, v)
			switch {
			case f < 0:
				return tree.NewLong(-1), err
			case f > 0:
				return tree.NewLong(1), err
			}
			return tree.NewLong(0), err
		}),
	),

	"FLOOR": roundingBuiltin(1, 1,
		"Largest integer not greater than the argument.",
		math.Floor, apd.RoundFloor),
	"CEIL":    ceilBuiltin,
	"CEILING": ceilBuiltin,
	"ROUND": roundingBuiltin(1, 2,
		"ROUND(x[, d]) rounds x to d decimal places (default 0), halves away from zero. "+
			"A negative d rounds to the left of the decimal point.",
		math.Round, apd.RoundHalfUp),
	"TRUNCATE": roundingBuiltin(2, 2,
		"TRUNCATE(x, d) truncates x to d decimal places.",
		math.Trunc, apd.RoundDown),

	"SQRT": floatBuiltin(1, "Square root. NULL for a negative argument.",
		func(ctx tree.QueryContext, x []float64) (tree.Value, error) {
			if x[0] < 0 {
				return tree.TypedNull(types.DoubleFamily), nil
			}
			return tree.NewDouble(math.Sqrt(x[0])), nil
		}),
	"POW":   powBuiltin,
	"POWER": powBuiltin,
	"EXP": floatBuiltin(1, "e raised to the power of the argument.",
		func(ctx tree.QueryContext, x []float64) (tree.Value, error) {
			return doubleResult(math.Exp(x[0]))
		}),
	"LOG": logBuiltin,

	"LN": logBuiltin1("Natural logarithm.", math.Log),

	"LOG2": logBuiltin1("Base 2 logarithm.", math.Log2),

	"LOG10": logBuiltin1("Base 10 logarithm.", math.Log10),

	"PI": makeBuiltin(
		tree.FunctionProperties{
			Category: categoryMath,
			Info:     "The constant π.",
		},
		fixedReturnType(types.DoubleFamily),
		func(tree.QueryContext, *tree.Args) (tree.Value, error) {
			return tree.NewDouble(math.Pi), nil
		},
	),
	"DEGREES": floatBuiltin(1, "Converts radians to degrees.",
		func(ctx tree.QueryContext, x []float64) (tree.Value, error) {
			return tree.NewDouble(x[0] * 180 / math.Pi), nil
		}),
	"RADIANS": floatBuiltin(1, "Converts degrees to radians.",
		func(ctx tree.QueryContext, x []float64) (tree.Value, error) {
			return tree.NewDouble(x[0] * math.Pi / 180), nil
		}),
	"SIN": trigBuiltin("Sine.", math.Sin),
	"COS": trigBuiltin("Cosine.", math.Cos),
	"TAN": trigBuiltin("Tangent.", math.Tan),
	"COT": floatBuiltin(1, "Cotangent.",
		func(ctx tree.QueryContext, x []float64) (tree.Value, error) {
			return doubleResult(1 / math.Tan(x[0]))
		}),
	"ASIN": trigBuiltin("Arc sine. NULL outside [-1, 1].", math.Asin),
	"ACOS": trigBuiltin("Arc cosine. NULL outside [-1, 1].", math.Acos),
	"ATAN": trigBuiltin("Arc tangent.", math.Atan),
	"ATAN2": floatBuiltin(2, "ATAN2(y, x) is the arc tangent of y/x, in the quadrant of (x, y).",
		func(ctx tree.QueryContext, x []float64) (tree.Value, error) {
			return tree.NewDouble(math.Atan2(x[0], x[1])), nil
		}),

	"RAND": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryMath,
			NullTreating: tree.NullTreatingIgnore,
			Volatility:   tree.VolatilityVolatile,
			MinArgs:      0,
			MaxArgs:      1,
			Info:         "A random number in [0, 1). RAND(seed) is repeatable.",
		},
		argsOf(isNumeric, types.DoubleFamily),
		func(ctx tree.QueryContext, args *tree.Args) (tree.Value, error) {
			if args.Len() == 0 {
				return tree.NewDouble(rand.Float64()), nil
			}
			v, err := args.Get(0)
			if err != nil {
				return tree.Value{}, err
			}
			var seed int64
			if !v.IsNull() {
				if seed, err = tree.ExtractInt64(ctx, v); err != nil {
					return tree.Value{}, err
				}
			}
			return tree.NewDouble(rand.New(rand.NewSource(seed)).Float64()), nil
		},
	),
}

// numericResultType gives a function of one number the canonical
// numeric type of its argument. Strings are read as DOUBLE.
func numericResultType(args []tree.Expression) (types.Family, error) {
	if err := checkArgs(args, isNumeric); err != nil {
		return types.UnsupportedFamily, err
	}
	typ, _ := types.NumericPromotion(args[0].ValueType(), types.NullFamily)
	return typ, nil
}

// floatBuiltin is a function of n DOUBLE arguments.
func floatBuiltin(
	n int, info string, fn func(ctx tree.QueryContext, x []float64) (tree.Value, error),
) builtinDefinition {
	return makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryMath,
			NullTreating: tree.NullTreatingReturnNull,
			MinArgs:      n,
			MaxArgs:      n,
			Info:         info,
		},
		argsOf(isNumeric, types.DoubleFamily),
		variadic(func(ctx tree.QueryContext, vals []tree.Value) (tree.Value, error) {
			r := argReader{ctx: ctx}
			x := make([]float64, len(vals))
			for i, v := range vals {
				x[i] = r.float(v)
			}
			if r.err != nil {
				return tree.Value{}, r.err
			}
			return fn(ctx, x)
		}),
	)
}

// trigBuiltin is a function of one DOUBLE. A NaN result is NULL.
func trigBuiltin(info string, fn func(float64) float64) builtinDefinition {
	return floatBuiltin(1, info, func(ctx tree.QueryContext, x []float64) (tree.Value, error) {
		res := fn(x[0])
		if math.IsNaN(res) {
			return tree.TypedNull(types.DoubleFamily), nil
		}
		return tree.NewDouble(res), nil
	})
}

func logBuiltin1(info string, fn func(float64) float64) builtinDefinition {
	return floatBuiltin(1, info+" NULL for a non-positive argument.",
		func(ctx tree.QueryContext, x []float64) (tree.Value, error) {
			return logarithm(ctx, x[0], fn, nil)
		})
}

// logarithm computes fn(x). The logarithm of a non-positive number is a
// NULL and a warning.
func logarithm(
	ctx tree.QueryContext, x float64, fn func(float64) float64, err error,
) (tree.Value, error) {
	if err != nil {
		return tree.Value{}, err
	}
	if x <= 0 {
		return eval.WarnNull(ctx, types.DoubleFamily, errInvalidLogArgument)
	}
	return tree.NewDouble(fn(x)), nil
}

// doubleResult wraps f, failing on an infinite or NaN result.
func doubleResult(f float64) (tree.Value, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return tree.Value{}, errors.Wrapf(eval.ErrOverflow, "%g out of range for DOUBLE", f)
	}
	return tree.NewDouble(f), nil
}

// roundingBuiltin builds FLOOR, CEIL, ROUND and TRUNCATE. The second
// argument, when allowed, is the number of decimal places to keep. fn
// rounds a DOUBLE to an integer, mode is the equivalent decimal
// rounding.
func roundingBuiltin(
	minArgs, maxArgs int, info string, fn func(float64) float64, mode apd.Rounder,
) builtinDefinition {
	return makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryMath,
			NullTreating: tree.NullTreatingReturnNull,
			MinArgs:      minArgs,
			MaxArgs:      maxArgs,
			Info:         info,
		},
		numericResultType,
		func(ctx tree.QueryContext, args *tree.Args) (tree.Value, error) {
			vals, err := args.All()
			if err != nil {
				return tree.Value{}, err
			}
			var places int64
			if len(vals) == 2 {
				if places, err = tree.ExtractInt64(ctx, vals[1]); err != nil {
					return tree.Value{}, err
				}
			}
			// Integers only change when digits left of the point go.
			typ := args.ResultType()
			if typ != types.DoubleFamily && typ != types.DecimalFamily && places >= 0 {
				return eval.PerformCast(ctx, vals[0], typ)
			}
			switch typ {
			case types.DoubleFamily:
				f, err := tree.ExtractFloat64(ctx, vals[0])
				if err != nil {
					return tree.Value{}, err
				}
				return tree.NewDouble(roundFloat(f, places, fn)), nil
			case types.DecimalFamily:
				d, err := tree.ExtractDecimal(ctx, vals[0])
				if err != nil {
					return tree.Value{}, err
				}
				return roundDecimal(d, places, mode)
			}
			// An integer rounded to tens, hundreds, ...
			d, err := tree.ExtractDecimal(ctx, vals[0])
			if err != nil {
				return tree.Value{}, err
			}
			res, err := roundDecimal(d, places, mode)
			if err != nil {
				return tree.Value{}, err
			}
			return eval.PerformCast(ctx, res, typ)
		},
	)
}

func roundFloat(f float64, places int64, fn func(float64) float64) float64 {
	if places > 308 {
		return f
	}
	if places < -308 {
		return 0
	}
	scale := math.Pow(10, float64(places))
	res := fn(f*scale) / scale
	if math.IsInf(res, 0) || math.IsNaN(res) {
		return f
	}
	return res
}

func roundDecimal(d *apd.Decimal, places int64, mode apd.Rounder) (tree.Value, error) {
	if places > eval.MaxDecimalPrecision {
		places = eval.MaxDecimalPrecision
	}
	if places < -eval.MaxDecimalPrecision {
		places = -eval.MaxDecimalPrecision
	}
	c := *eval.DecimalCtx
	c.Rounding = mode
	res := new(apd.Decimal)
	if _, err := c.Quantize(res, d, int32(-places)); err != nil {
		return tree.Value{}, pgerror.Wrapf(err, pgcode.Overflow, "decimal rounding")
	}
	if places < 0 {
		// Quantize leaves a positive exponent; normalize to an integer.
		if _, err := c.Quantize(res, res, 0); err != nil {
			return tree.Value{}, pgerror.Wrapf(err, pgcode.Overflow, "decimal rounding")
		}
	}
	return tree.NewDecimal(res), nil
}
