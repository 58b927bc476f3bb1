// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtins

import (
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/eval"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
)

// fixedReturnType accepts any scalar arguments and returns typ.
func fixedReturnType(typ types.Family) tree.TypeCheckFn {
	return argsOf(isScalar, typ)
}

// argsOf checks every argument with ok before returning typ. Untyped
// NULLs are always accepted.
func argsOf(ok func(types.Family) bool, typ types.Family) tree.TypeCheckFn {
	return func(args []tree.Expression) (types.Family, error) {
		if err := checkArgs(args, ok); err != nil {
			return types.UnsupportedFamily, err
		}
		return typ, nil
	}
}

func checkArgs(args []tree.Expression, ok func(types.Family) bool) error {
	for i, a := range args {
		if t := a.ValueType(); t != types.NullFamily && !ok(t) {
			return tree.NewArgTypeError(i, t)
		}
	}
	return nil
}

func isScalar(t types.Family) bool {
	return t != types.UnsupportedFamily
}

// isNumeric accepts the families that take part in numeric arithmetic,
// strings included.
func isNumeric(t types.Family) bool {
	_, ok := types.ArithmeticOperand(t)
	return ok
}

// isTemporal accepts the families a date/time can be read from.
func isTemporal(t types.Family) bool {
	return t.IsDateTime() || t.IsString() || t.IsNumeric()
}

// isTextual accepts the families that render as text.
func isTextual(t types.Family) bool {
	return t != types.UnsupportedFamily && !t.IsInterval()
}

// unary adapts a function of the first argument.
func unary(fn func(ctx tree.QueryContext, v tree.Value) (tree.Value, error)) tree.EvalFn {
	return func(ctx tree.QueryContext, args *tree.Args) (tree.Value, error) {
		v, err := args.Get(0)
		if err != nil {
			return tree.Value{}, err
		}
		return fn(ctx, v)
	}
}

// variadic adapts a function of all the arguments, evaluated.
func variadic(fn func(ctx tree.QueryContext, vals []tree.Value) (tree.Value, error)) tree.EvalFn {
	return func(ctx tree.QueryContext, args *tree.Args) (tree.Value, error) {
		vals, err := args.All()
		if err != nil {
			return tree.Value{}, err
		}
		return fn(ctx, vals)
	}
}

// firstNonNullType returns the type of the first argument that is not an
// untyped NULL, or NullFamily.
func firstNonNullType(args []tree.Expression) types.Family {
	for _, a := range args {
		if t := a.ValueType(); t != types.NullFamily {
			return t
		}
	}
	return types.NullFamily
}

// commonType returns the type a set of arguments is unified to by the
// value returning functions (COALESCE, IF, GREATEST, ...). Identical
// types are kept; numbers are promoted; anything else falls back to
// VARCHAR.
func commonType(ts ...types.Family) types.Family {
	res := types.NullFamily
	for _, t := range ts {
		switch {
		case t == types.NullFamily:
		case res == types.NullFamily:
			res = t
		case res == t:
		case isNumber(res) && isNumber(t):
			res, _ = types.NumericPromotion(res, t)
		case res.IsText() && t.IsText():
			res = types.VarcharFamily
		default:
			return types.VarcharFamily
		}
	}
	return res
}

// coerce converts v to the unified type typ computed by commonType.
func coerce(ctx tree.QueryContext, v tree.Value, typ types.Family) (tree.Value, error) {
	if v.IsNull() || v.Type() == typ {
		return v, nil
	}
	if typ == types.VarcharFamily {
		s, err := tree.ExtractString(ctx, v)
		if err != nil {
			return tree.Value{}, err
		}
		return tree.NewVarchar(s), nil
	}
	return eval.PerformCast(ctx, v, typ)
}

func isNumber(t types.Family) bool {
	return t.IsNumeric() || t == types.BoolFamily
}

// argReader converts argument values, keeping the first error. After an
// error every read returns a zero value.
type argReader struct {
	ctx tree.QueryContext
	err error
}

func (r *argReader) str(v tree.Value) string {
	if r.err != nil {
		return ""
	}
	s, err := tree.ExtractString(r.ctx, v)
	r.err = err
	return s
}

func (r *argReader) int(v tree.Value) int64 {
	if r.err != nil {
		return 0
	}
	i, err := tree.ExtractInt64(r.ctx, v)
	r.err = err
	return i
}

func (r *argReader) float(v tree.Value) float64 {
	if r.err != nil {
		return 0
	}
	f, err := tree.ExtractFloat64(r.ctx, v)
	r.err = err
	return f
}

// literalString returns the text of a non-NULL string literal argument.
func literalString(e tree.Expression) (string, bool) {
	l, ok := e.(*tree.Literal)
	if !ok || l.Val.IsNull() || !l.Val.Type().IsString() {
		return "", false
	}
	if l.Val.Type() == types.VarbinaryFamily {
		return string(l.Val.Bytes()), true
	}
	return l.Val.StringValue(), true
}
