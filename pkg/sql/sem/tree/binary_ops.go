// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree/treebin"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
)

type binOpKey struct {
	op   treebin.BinaryOperatorSymbol
	l, r types.Family
}

// temporalBinOps holds the result types of the arithmetic involving
// date/time and interval operands. Pairs missing from the table are
// invalid.
var temporalBinOps = map[binOpKey]types.Family{}

func addTemporalBinOp(op treebin.BinaryOperatorSymbol, l, r, res types.Family) {
	temporalBinOps[binOpKey{op: op, l: l, r: r}] = res
}

func init() {
	both := []types.Family{types.IntervalMillisFamily, types.IntervalMonthFamily}
	accepts := map[types.Family][]types.Family{
		types.DateFamily:      both,
		types.DateTimeFamily:  both,
		types.TimestampFamily: both,
		types.TimeFamily:      {types.IntervalMillisFamily},
		types.YearFamily:      {types.IntervalMonthFamily},
	}
	for dt, ivs := range accepts {
		for _, iv := range ivs {
			addTemporalBinOp(treebin.Plus, dt, iv, dt)
			addTemporalBinOp(treebin.Plus, iv, dt, dt)
			addTemporalBinOp(treebin.Minus, dt, iv, dt)
		}
		diff := types.IntervalMillisFamily
		if dt == types.YearFamily {
			diff = types.IntervalMonthFamily
		}
		addTemporalBinOp(treebin.Minus, dt, dt, diff)
	}
	for _, iv := range both {
		addTemporalBinOp(treebin.Plus, iv, iv, iv)
		addTemporalBinOp(treebin.Minus, iv, iv, iv)
	}
}

// BinaryResultType returns the type of the result of l op r. An
// operand pairing with no rule is an InvalidArgumentType error.
func BinaryResultType(op treebin.BinaryOperatorSymbol, l, r types.Family) (types.Family, error) {
	if op.IsBitwise() {
		if bitwiseOperand(l) && bitwiseOperand(r) {
			return types.UIntFamily, nil
		}
		return types.UnsupportedFamily, binOpTypeError(op, l, r)
	}
	if l.IsDateTime() || l.IsInterval() || r.IsDateTime() || r.IsInterval() {
		return temporalResultType(op, l, r)
	}
	res, ok := types.NumericPromotion(l, r)
	if !ok {
		return types.UnsupportedFamily, binOpTypeError(op, l, r)
	}
	if op == treebin.IntDiv {
		switch res {
		case types.UIntFamily, types.UBigIntFamily:
		default:
			res = types.LongFamily
		}
	}
	return res, nil
}

func temporalResultType(op treebin.BinaryOperatorSymbol, l, r types.Family) (types.Family, error) {
	// An untyped NULL stands for whatever completes a valid pairing.
	switch {
	case l == types.NullFamily:
		if op == treebin.Plus || (r.IsInterval() && (op == treebin.Minus || op == treebin.Mult)) {
			return r, nil
		}
		if op == treebin.Minus {
			if res, ok := temporalBinOps[binOpKey{op: op, l: r, r: r}]; ok {
				return res, nil
			}
		}
	case r == types.NullFamily:
		if op == treebin.Plus || op == treebin.Minus {
			return l, nil
		}
		if op == treebin.Mult && l.IsInterval() {
			return l, nil
		}
	}
	if res, ok := temporalBinOps[binOpKey{op: op, l: l, r: r}]; ok {
		return res, nil
	}
	if op == treebin.Mult {
		if l.IsInterval() && isNumericOperand(r) {
			return l, nil
		}
		if r.IsInterval() && isNumericOperand(l) {
			return r, nil
		}
	}
	return types.UnsupportedFamily, binOpTypeError(op, l, r)
}

func isNumericOperand(f types.Family) bool {
	a, ok := types.ArithmeticOperand(f)
	return ok && a != types.NullFamily
}

func bitwiseOperand(f types.Family) bool {
	_, ok := types.ArithmeticOperand(f)
	return ok || f == types.VarbinaryFamily
}

func binOpTypeError(op treebin.BinaryOperatorSymbol, l, r types.Family) error {
	return pgerror.Newf(pgcode.InvalidArgumentType,
		"unsupported binary operator: <%s> %s <%s>", l, op, r)
}
