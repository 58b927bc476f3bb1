// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtins

import (
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
	"github.com/google/uuid"
)

var currentUserBuiltin = sessionBuiltin("The user of the session.",
	func(ctx tree.QueryContext) string { return ctx.SessionData().User })

var systemBuiltins = map[string]builtinDefinition{
	"CURRENT_USER": currentUserBuiltin,
	"USER":         currentUserBuiltin,
	"DATABASE": sessionBuiltin("The current database of the session. NULL if none is set.",
		func(ctx tree.QueryContext) string { return ctx.SessionData().Database }),

	"UUID": makeBuiltin(
		tree.FunctionProperties{
			Category:   categorySystemInfo,
			Volatility: tree.VolatilityVolatile,
			Info:       "A random (version 4) UUID, as 36 characters.",
		},
		fixedReturnType(types.VarcharFamily),
		func(ctx tree.QueryContext, _ *tree.Args) (tree.Value, error) {
			id, err := uuid.NewRandom()
			if err != nil {
				return tree.Value{}, pgerror.Wrapf(err, pgcode.Internal, "UUID")
			}
			return tree.NewVarchar(id.String()), nil
		},
	),
	"IS_UUID": uuidBuiltin(types.LongFamily,
		"1 if the argument is a valid UUID string, 0 otherwise.",
		func(ctx tree.QueryContext, v tree.Value) (tree.Value, error) {
			s, err := tree.ExtractString(ctx, v)
			if err != nil {
				return tree.Value{}, err
			}
			if _, err := uuid.Parse(s); err != nil {
				return tree.NewLong(0), nil
			}
			return tree.NewLong(1), nil
		}),
	"UUID_TO_BIN": uuidBuiltin(types.VarbinaryFamily,
		"The 16 bytes of a UUID string.",
		func(ctx tree.QueryContext, v tree.Value) (tree.Value, error) {
			s, err := tree.ExtractString(ctx, v)
			if err != nil {
				return tree.Value{}, err
			}
			id, err := uuid.Parse(s)
			if err != nil {
				return tree.Value{}, pgerror.Wrapf(err, pgcode.InvalidParameterValue,
					"incorrect UUID value %q", s)
			}
			return tree.NewVarbinary(id[:]), nil
		}),
	"BIN_TO_UUID": uuidBuiltin(types.VarcharFamily,
		"The UUID string of 16 bytes.",
		func(ctx tree.QueryContext, v tree.Value) (tree.Value, error) {
			b, err := bytesOf(ctx, v)
			if err != nil {
				return tree.Value{}, err
			}
			id, err := uuid.FromBytes(b)
			if err != nil {
				return tree.Value{}, pgerror.Wrapf(err, pgcode.InvalidParameterValue,
					"incorrect UUID value of %d bytes", len(b))
			}
			return tree.NewVarchar(id.String()), nil
		}),
}

func uuidBuiltin(
	typ types.Family, info string, fn func(ctx tree.QueryContext, v tree.Value) (tree.Value, error),
) builtinDefinition {
	return makeBuiltin(
		tree.FunctionProperties{
			Category:     categorySystemInfo,
			NullTreating: tree.NullTreatingReturnNull,
			MinArgs:      1,
			MaxArgs:      1,
			Info:         info,
		},
		argsOf(isTextual, typ),
		unary(fn),
	)
}

// sessionBuiltin reads a session setting. An empty setting is NULL.
func sessionBuiltin(info string, get func(ctx tree.QueryContext) string) builtinDefinition {
	return makeBuiltin(
		tree.FunctionProperties{
			Category:     categorySystemInfo,
			Volatility:   tree.VolatilityStable,
			NeedsContext: true,
			Info:         info,
		},
		fixedReturnType(types.VarcharFamily),
		func(ctx tree.QueryContext, _ *tree.Args) (tree.Value, error) {
			s := get(ctx)
			if s == "" {
				return tree.TypedNull(types.VarcharFamily), nil
			}
			return tree.NewVarchar(s), nil
		},
	)
}
