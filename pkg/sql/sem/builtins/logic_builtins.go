// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtins

import (
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
)

// truth is a three-valued logic value.
type truth int8

const (
	truthNull truth = iota
	truthFalse
	truthTrue
)

func truthOf(ctx tree.QueryContext, v tree.Value) (truth, error) {
	if v.IsNull() {
		return truthNull, nil
	}
	b, err := tree.ExtractBool(ctx, v)
	if err != nil {
		return truthNull, err
	}
	if b {
		return truthTrue, nil
	}
	return truthFalse, nil
}

func (t truth) value() tree.Value {
	switch t {
	case truthTrue:
		return tree.DBoolTrue
	case truthFalse:
		return tree.DBoolFalse
	}
	return tree.TypedNull(types.BoolFamily)
}

var logicBuiltins = map[string]builtinDefinition{
	"AND": connective(truthFalse, "Logical AND. FALSE if either operand is FALSE, otherwise NULL if either is NULL."),
	"OR":  connective(truthTrue, "Logical OR. TRUE if either operand is TRUE, otherwise NULL if either is NULL."),

	"XOR": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryLogic,
			NullTreating: tree.NullTreatingReturnNull,
			Infix:        true,
			MinArgs:      2,
			MaxArgs:      2,
			Info:         "Logical exclusive OR.",
		},
		argsOf(isTextual, types.BoolFamily),
		variadic(func(ctx tree.QueryContext, vals []tree.Value) (tree.Value, error) {
			l, err := truthOf(ctx, vals[0])
			if err != nil {
				return tree.Value{}, err
			}
			r, err := truthOf(ctx, vals[1])
			if err != nil {
				return tree.Value{}, err
			}
			return tree.NewBool(l != r), nil
		}),
	),

	"NOT": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryLogic,
			NullTreating: tree.NullTreatingReturnNull,
			MinArgs:      1,
			MaxArgs:      1,
			Info:         "Logical negation.",
		},
		argsOf(isTextual, types.BoolFamily),
		unary(func(ctx tree.QueryContext, v tree.Value) (tree.Value, error) {
			t, err := truthOf(ctx, v)
			if err != nil {
				return tree.Value{}, err
			}
			return tree.NewBool(t == truthFalse), nil
		}),
	),
}

// connective is AND (dominant FALSE) or OR (dominant TRUE). The left
// operand is evaluated first and the right one is skipped when the left
// one is dominant. An error of the left operand is forgiven when the
// right operand is dominant.
func connective(dominant truth, info string) builtinDefinition {
	return makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryLogic,
			NullTreating: tree.NullTreatingIgnore,
			Infix:        true,
			MinArgs:      2,
			MaxArgs:      2,
			Info:         info,
		},
		argsOf(isTextual, types.BoolFamily),
		func(ctx tree.QueryContext, args *tree.Args) (tree.Value, error) {
			l, lErr := args.Get(0)
			var lt truth
			if lErr == nil {
				if lt, lErr = truthOf(ctx, l); lErr == nil && lt == dominant {
					return dominant.value(), nil
				}
			}
			r, err := args.Get(1)
			if err != nil {
				return tree.Value{}, err
			}
			rt, err := truthOf(ctx, r)
			if err != nil {
				return tree.Value{}, err
			}
			switch {
			case rt == dominant:
				return dominant.value(), nil
			case lErr != nil:
				return tree.Value{}, lErr
			case lt == truthNull || rt == truthNull:
				return truthNull.value(), nil
			}
			return lt.value(), nil
		},
	)
}
