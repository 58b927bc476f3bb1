// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtins

import (
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/eval"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree/treebin"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
)

var modBuiltin = binaryArithBuiltin(treebin.Mod, categoryArithmetic,
	"Remainder of the division. The result has the sign of the dividend.")

var arithBuiltins = map[string]builtinDefinition{
	"+": binaryArithBuiltin(treebin.Plus, categoryArithmetic, "Addition."),
	"-": binaryArithBuiltin(treebin.Minus, categoryArithmetic,
		"Subtraction. Subtracting two date/time values of the same type yields an interval."),
	"*": binaryArithBuiltin(treebin.Mult, categoryArithmetic, "Multiplication."),
	"/": binaryArithBuiltin(treebin.Div, categoryArithmetic,
		"Division. Integer division truncates toward zero."),
	"DIV": binaryArithBuiltin(treebin.IntDiv, categoryArithmetic,
		"Integer division, truncating toward zero."),
	"%":   modBuiltin,
	"MOD": modBuiltin,

	"NEGATE": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryArithmetic,
			NullTreating: tree.NullTreatingReturnNull,
			MinArgs:      1,
			MaxArgs:      1,
			Info:         "Unary minus.",
		},
		func(args []tree.Expression) (types.Family, error) {
			return eval.UnaryMinusResultType(args[0].ValueType())
		},
		func(ctx tree.QueryContext, args *tree.Args) (tree.Value, error) {
			v, err := args.Get(0)
			if err != nil {
				return tree.Value{}, err
			}
			return eval.UnaryMinus(ctx, args.ResultType(), v)
		},
	),
}

// binaryArithBuiltin is the infix operator op. Its result type follows
// numeric promotion, or the date/time arithmetic table.
func binaryArithBuiltin(
	op treebin.BinaryOperatorSymbol, category string, info string,
) builtinDefinition {
	return makeBuiltin(
		tree.FunctionProperties{
			Category:     category,
			NullTreating: tree.NullTreatingReturnNull,
			Infix:        true,
			MinArgs:      2,
			MaxArgs:      2,
			Info:         info,
		},
		func(args []tree.Expression) (types.Family, error) {
			return tree.BinaryResultType(op, args[0].ValueType(), args[1].ValueType())
		},
		func(ctx tree.QueryContext, args *tree.Args) (tree.Value, error) {
			vals, err := args.All()
			if err != nil {
				return tree.Value{}, err
			}
			return eval.BinaryArith(ctx, op, args.ResultType(), vals[0], vals[1])
		},
	)
}
