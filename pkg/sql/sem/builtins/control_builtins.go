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

var controlBuiltins = map[string]builtinDefinition{
	"COALESCE": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryConditional,
			NullTreating: tree.NullTreatingRemoveAfterFirst,
			MinArgs:      1,
			MaxArgs:      -1,
			Info:         "Returns the first non-NULL argument. Later arguments are not evaluated.",
		},
		unifiedReturnType(0),
		firstNonNull,
	),

	"IFNULL": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryConditional,
			NullTreating: tree.NullTreatingIgnore,
			MinArgs:      2,
			MaxArgs:      2,
			Info:         "Returns the first argument if it is not NULL, the second one otherwise.",
		},
		unifiedReturnType(0),
		firstNonNull,
	),

	"NULLIF": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryConditional,
			NullTreating: tree.NullTreatingIgnore,
			MinArgs:      2,
			MaxArgs:      2,
			Info:         "Returns NULL if the arguments are equal, the first argument otherwise.",
		},
		func(args []tree.Expression) (types.Family, error) {
			if _, err := checkComparable(args); err != nil {
				return types.UnsupportedFamily, err
			}
			return args[0].ValueType(), nil
		},
		variadic(func(ctx tree.QueryContext, vals []tree.Value) (tree.Value, error) {
			a, b := vals[0], vals[1]
			if a.IsNull() || b.IsNull() {
				return a, nil
			}
			c, err := eval.CompareValues(ctx, a, b)
			if err != nil {
				return tree.Value{}, err
			}
			if c == 0 {
				return tree.DNull, nil
			}
			return a, nil
		}),
	),

	"IF": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryConditional,
			NullTreating: tree.NullTreatingIgnore,
			MinArgs:      3,
			MaxArgs:      3,
			Info:         "Returns the second argument if the first one is TRUE, the third one otherwise.",
		},
		unifiedReturnType(1),
		func(ctx tree.QueryContext, args *tree.Args) (tree.Value, error) {
			c, err := args.Get(0)
			if err != nil {
				return tree.Value{}, err
			}
			t, err := truthOf(ctx, c)
			if err != nil {
				return tree.Value{}, err
			}
			pick := 2
			if t == truthTrue {
				pick = 1
			}
			return unifiedArg(ctx, args, pick)
		},
	),

	"CASE": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryConditional,
			NullTreating: tree.NullTreatingIgnore,
			MinArgs:      2,
			MaxArgs:      -1,
			Info: "Searched CASE: CASE(cond1, val1, cond2, val2, ..., [else]). Returns the value " +
				"of the first TRUE condition, the else value, or NULL.",
		},
		func(args []tree.Expression) (types.Family, error) {
			var vals []types.Family
			for i := 1; i < len(args); i += 2 {
				vals = append(vals, args[i].ValueType())
			}
			if len(args)%2 == 1 {
				vals = append(vals, args[len(args)-1].ValueType())
			}
			return commonType(vals...), nil
		},
		func(ctx tree.QueryContext, args *tree.Args) (tree.Value, error) {
			n := args.Len()
			for i := 0; i+1 < n; i += 2 {
				c, err := args.Get(i)
				if err != nil {
					return tree.Value{}, err
				}
				t, err := truthOf(ctx, c)
				if err != nil {
					return tree.Value{}, err
				}
				if t == truthTrue {
					return unifiedArg(ctx, args, i+1)
				}
			}
			if n%2 == 1 {
				return unifiedArg(ctx, args, n-1)
			}
			return tree.DNull, nil
		},
	),

	"ISNULL": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryConditional,
			NullTreating: tree.NullTreatingIgnore,
			MinArgs:      1,
			MaxArgs:      1,
			Info:         "Returns 1 if the argument is NULL, 0 otherwise.",
		},
		fixedReturnType(types.LongFamily),
		unary(func(_ tree.QueryContext, v tree.Value) (tree.Value, error) {
			if v.IsNull() {
				return tree.NewLong(1), nil
			}
			return tree.NewLong(0), nil
		}),
	),

	"IS NULL": isBuiltin("Tests whether the argument is NULL.",
		func(t truth) bool { return t == truthNull }),
	"IS NOT NULL": isBuiltin("Tests whether the argument is not NULL.",
		func(t truth) bool { return t != truthNull }),
	"IS TRUE": isBuiltin("Tests whether the argument is TRUE. NULL is not.",
		func(t truth) bool { return t == truthTrue }),
	"IS FALSE": isBuiltin("Tests whether the argument is FALSE. NULL is not.",
		func(t truth) bool { return t == truthFalse }),

	"IN": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryComparison,
			NullTreating: tree.NullTreatingIgnore,
			MinArgs:      2,
			MaxArgs:      -1,
			Info: "IN(x, a, b, ...): TRUE if x equals one of the other arguments, NULL if x is " +
				"NULL or no argument matches but one is NULL, FALSE otherwise.",
		},
		checkComparable,
		func(ctx tree.QueryContext, args *tree.Args) (tree.Value, error) {
			x, err := args.Get(0)
			if err != nil {
				return tree.Value{}, err
			}
			if x.IsNull() {
				return tree.DNull, nil
			}
			sawNull := false
			for i := 1; i < args.Len(); i++ {
				v, err := args.Get(i)
				if err != nil {
					return tree.Value{}, err
				}
				if v.IsNull() {
					sawNull = true
					continue
				}
				c, err := eval.CompareValues(ctx, x, v)
				if err != nil {
					return tree.Value{}, err
				}
				if c == 0 {
					return tree.DBoolTrue, nil
				}
			}
			if sawNull {
				return tree.DNull, nil
			}
			return tree.DBoolFalse, nil
		},
	),

	"BETWEEN": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryComparison,
			NullTreating: tree.NullTreatingReturnNull,
			MinArgs:      3,
			MaxArgs:      3,
			Info:         "BETWEEN(x, lo, hi) is lo <= x AND x <= hi.",
		},
		checkComparable,
		variadic(func(ctx tree.QueryContext, vals []tree.Value) (tree.Value, error) {
			lo, err := eval.CompareValues(ctx, vals[0], vals[1])
			if err != nil {
				return tree.Value{}, err
			}
			hi, err := eval.CompareValues(ctx, vals[0], vals[2])
			if err != nil {
				return tree.Value{}, err
			}
			return tree.NewBool(lo >= 0 && hi <= 0), nil
		}),
	),

	"GREATEST": extremum(1, "Returns the largest argument, or NULL if any argument is NULL."),
	"LEAST":    extremum(-1, "Returns the smallest argument, or NULL if any argument is NULL."),
}

// unifiedReturnType unifies the types of the arguments from position
// first on.
func unifiedReturnType(first int) tree.TypeCheckFn {
	return func(args []tree.Expression) (types.Family, error) {
		ts := make([]types.Family, 0, len(args))
		for _, a := range args[first:] {
			ts = append(ts, a.ValueType())
		}
		return commonType(ts...), nil
	}
}

// unifiedArg evaluates argument i and converts it to the result type.
func unifiedArg(ctx tree.QueryContext, args *tree.Args, i int) (tree.Value, error) {
	v, err := args.Get(i)
	if err != nil {
		return tree.Value{}, err
	}
	return coerce(ctx, v, args.ResultType())
}

func firstNonNull(ctx tree.QueryContext, args *tree.Args) (tree.Value, error) {
	for i := 0; i < args.Len(); i++ {
		v, err := args.Get(i)
		if err != nil {
			return tree.Value{}, err
		}
		if !v.IsNull() {
			return coerce(ctx, v, args.ResultType())
		}
	}
	return tree.DNull, nil
}

func isBuiltin(info string, test func(truth) bool) builtinDefinition {
	return makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryConditional,
			NullTreating: tree.NullTreatingIgnore,
			MinArgs:      1,
			MaxArgs:      1,
			Info:         info,
		},
		fixedReturnType(types.BoolFamily),
		unary(func(ctx tree.QueryContext, v tree.Value) (tree.Value, error) {
			t, err := truthOf(ctx, v)
			if err != nil {
				return tree.Value{}, err
			}
			return tree.NewBool(test(t)), nil
		}),
	)
}

// extremum is GREATEST (sign 1) or LEAST (sign -1).
func extremum(sign int, info string) builtinDefinition {
	return makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryComparison,
			NullTreating: tree.NullTreatingReturnNull,
			MinArgs:      2,
			MaxArgs:      -1,
			Info:         info,
		},
		func(args []tree.Expression) (types.Family, error) {
			if _, err := checkComparable(args); err != nil {
				return types.UnsupportedFamily, err
			}
			return unifiedReturnType(0)(args)
		},
		func(ctx tree.QueryContext, args *tree.Args) (tree.Value, error) {
			vals, err := args.All()
			if err != nil {
				return tree.Value{}, err
			}
			typ := args.ResultType()
			var best tree.Value
			for i, v := range vals {
				if v, err = coerce(ctx, v, typ); err != nil || v.IsNull() {
					// A value that does not convert is NULL.
					return v, err
				}
				if i == 0 {
					best = v
					continue
				}
				c, err := eval.CompareValues(ctx, v, best)
				if err != nil {
					return tree.Value{}, err
				}
				if c*sign > 0 {
					best = v
				}
			}
			return best, nil
		},
	)
}
