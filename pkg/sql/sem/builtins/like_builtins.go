// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtins

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/eval"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
)

var regexpBuiltin = makeBuiltin(
	tree.FunctionProperties{
		Category:     categoryString,
		NullTreating: tree.NullTreatingReturnNull,
		NeedsContext: true,
		Infix:        true,
		MinArgs:      2,
		MaxArgs:      2,
		Info:         "s REGEXP pattern is true if s contains a match of the regular expression.",
	},
	argsOf(isTextual, types.BoolFamily),
	variadic(func(ctx tree.QueryContext, vals []tree.Value) (tree.Value, error) {
		r := argReader{ctx: ctx}
		s, pattern := r.str(vals[0]), r.str(vals[1])
		if r.err != nil {
			return tree.Value{}, r.err
		}
		ok, err := eval.MatchRegexp(ctx, s, pattern, false)
		if err != nil {
			return tree.Value{}, err
		}
		return tree.NewBool(ok), nil
	}),
)

var likeBuiltins = map[string]builtinDefinition{
	"LIKE": likeBuiltin(eval.LikeCaseCollation,
		"s LIKE pattern [ESCAPE e] matches s against a pattern where % is any "+
			"sequence and _ any character. Letter case follows the collation."),
	"ILIKE": likeBuiltin(eval.LikeCaseFold,
		"Case-insensitive LIKE."),
	"BLIKE": likeBuiltin(eval.LikeCaseExact,
		"Case-sensitive LIKE."),
	"REGEXP": regexpBuiltin,
	"RLIKE":  regexpBuiltin,
}

func likeBuiltin(mode eval.LikeCase, info string) builtinDefinition {
	return makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryString,
			NullTreating: tree.NullTreatingReturnNull,
			NeedsContext: true,
			Infix:        true,
			MinArgs:      2,
			MaxArgs:      3,
			Info:         info,
		},
		argsOf(isTextual, types.BoolFamily),
		variadic(func(ctx tree.QueryContext, vals []tree.Value) (tree.Value, error) {
			r := argReader{ctx: ctx}
			s, pattern := r.str(vals[0]), r.str(vals[1])
			escape := sessionLikeEscape(ctx)
			if len(vals) == 3 {
				escape = r.str(vals[2])
			}
			if r.err != nil {
				return tree.Value{}, r.err
			}
			ok, err := eval.MatchLike(ctx, s, pattern, escape, mode)
			if errors.Is(err, eval.ErrIllegalEscape) {
				return eval.WarnNull(ctx, types.BoolFamily, err)
			}
			if err != nil {
				return tree.Value{}, err
			}
			return tree.NewBool(ok), nil
		}),
	)
}

// sessionLikeEscape returns the escape character LIKE uses when the
// expression names none.
func sessionLikeEscape(ctx tree.QueryContext) string {
	if ctx != nil {
		if sd := ctx.SessionData(); sd != nil {
			return sd.LikeEscape
		}
	}
	return eval.DefaultLikeEscape
}
