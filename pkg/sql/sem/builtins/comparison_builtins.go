// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtins

import (
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/eval"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
)

var notEqualBuiltin = comparisonBuiltin("Not equal.", func(c int) bool { return c != 0 })

var comparisonBuiltins = map[string]builtinDefinition{
	"=":  comparisonBuiltin("Equal.", func(c int) bool { return c == 0 }),
	"<>": notEqualBuiltin,
	"!=": notEqualBuiltin,
	"<":  comparisonBuiltin("Less than.", func(c int) bool { return c < 0 }),
	"<=": comparisonBuiltin("Less than or equal.", func(c int) bool { return c <= 0 }),
	">":  comparisonBuiltin("Greater than.", func(c int) bool { return c > 0 }),
	">=": comparisonBuiltin("Greater than or equal.", func(c int) bool { return c >= 0 }),

	"<=>": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryComparison,
			NullTreating: tree.NullTreatingIgnore,
			Infix:        true,
			MinArgs:      2,
			MaxArgs:      2,
			Info:         "NULL-safe equal: true when both operands are NULL, false when only one is.",
		},
		checkComparable,
		variadic(func(ctx tree.QueryContext, vals []tree.Value) (tree.Value, error) {
			l, r := vals[0], vals[1]
			if l.IsNull() || r.IsNull() {
				return tree.NewBool(l.IsNull() && r.IsNull()), nil
			}
			c, err := eval.CompareValues(ctx, l, r)
			if err != nil {
				return tree.Value{}, err
			}
			return tree.NewBool(c == 0), nil
		}),
	),
}

func comparisonBuiltin(info string, test func(int) bool) builtinDefinition {
	return makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryComparison,
			NullTreating: tree.NullTreatingReturnNull,
			Infix:        true,
			MinArgs:      2,
			MaxArgs:      2,
			Info:         info,
		},
		checkComparable,
		variadic(func(ctx tree.QueryContext, vals []tree.Value) (tree.Value, error) {
			c, err := eval.CompareValues(ctx, vals[0], vals[1])
			if err != nil {
				return tree.Value{}, err
			}
			return tree.NewBool(test(c)), nil
		}),
	)
}

// checkComparable requires every argument to be comparable with the
// first one.
func checkComparable(args []tree.Expression) (types.Family, error) {
	first := args[0].ValueType()
	for _, a := range args[1:] {
		if t := a.ValueType(); !eval.Comparable(first, t) {
			return types.UnsupportedFamily, pgerror.Newf(pgcode.InvalidArgumentType,
				"cannot compare %s with %s", first, t)
		}
	}
	return types.BoolFamily, nil
}
