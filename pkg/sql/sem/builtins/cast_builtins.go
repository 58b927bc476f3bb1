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

var castBuiltins = map[string]builtinDefinition{
	"CAST": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryCast,
			NullTreating: tree.NullTreatingReturnNull,
			MinArgs:      2,
			MaxArgs:      2,
			Info: "CAST(x, 'type') converts x to the named type, e.g. CAST('2009-12-12', 'DATE'). " +
				"The type must be given as a string literal.",
		},
		castTarget,
		func(ctx tree.QueryContext, args *tree.Args) (tree.Value, error) {
			v, err := args.Get(0)
			if err != nil {
				return tree.Value{}, err
			}
			return eval.PerformCast(ctx, v, args.ResultType())
		},
	),
}

// castTarget resolves the target type of a CAST, which must be explicitly
// castable from the type of the operand.
func castTarget(args []tree.Expression) (types.Family, error) {
	name, ok := literalString(args[1])
	if !ok {
		return types.UnsupportedFamily, pgerror.New(pgcode.InvalidArgumentType,
			"the target of CAST must be a type name literal")
	}
	tgt, ok := types.FamilyByName(name)
	if !ok || tgt == types.UnsupportedFamily || tgt == types.NullFamily {
		return types.UnsupportedFamily, pgerror.Newf(pgcode.InvalidArgumentType, "unknown type %q", name)
	}
	src := args[0].ValueType()
	if src == types.NullFamily || src == tgt {
		return tgt, nil
	}
	if _, ok := tree.FindCast(src, tgt, tree.CastContextExplicit); !ok {
		return types.UnsupportedFamily, pgerror.Newf(pgcode.InvalidArgumentType,
			"invalid cast: %s -> %s", src, tgt)
	}
	return tgt, nil
}
