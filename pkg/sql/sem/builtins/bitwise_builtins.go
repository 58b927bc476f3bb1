// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtins

import (
	"math/bits"

	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/eval"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree/treebin"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
)

// The bitwise operators work on 64-bit unsigned integers. Negative
// operands are read in two's complement.
var bitwiseBuiltins = map[string]builtinDefinition{
	"&":  binaryArithBuiltin(treebin.Bitand, categoryBitwise, "Bitwise AND."),
	"|":  binaryArithBuiltin(treebin.Bitor, categoryBitwise, "Bitwise OR."),
	"^":  binaryArithBuiltin(treebin.Bitxor, categoryBitwise, "Bitwise XOR."),
	"<<": binaryArithBuiltin(treebin.LShift, categoryBitwise, "Left shift. Shifting by 64 or more yields 0."),
	">>": binaryArithBuiltin(treebin.RShift, categoryBitwise, "Right shift. Shifting by 64 or more yields 0."),

	"~": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryBitwise,
			NullTreating: tree.NullTreatingReturnNull,
			MinArgs:      1,
			MaxArgs:      1,
			Info:         "Bitwise inversion.",
		},
		argsOf(isNumeric, types.UIntFamily),
		unary(eval.Complement),
	),

	"BIT_COUNT": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryBitwise,
			NullTreating: tree.NullTreatingReturnNull,
			MinArgs:      1,
			MaxArgs:      1,
			Info:         "Number of bits set in the argument.",
		},
		argsOf(isNumeric, types.LongFamily),
		unary(func(ctx tree.QueryContext, v tree.Value) (tree.Value, error) {
			u, err := tree.ExtractUint64(ctx, v)
			if err != nil {
				return tree.Value{}, err
			}
			return tree.NewLong(int64(bits.OnesCount64(u))), nil
		}),
	),
}
