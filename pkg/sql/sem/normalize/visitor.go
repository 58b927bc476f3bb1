// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package normalize folds the constant parts of an expression tree and
// applies algebraic identities, before the tree is evaluated row by row.
package normalize

import (
	"context"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/eval"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
	"github.com/cockroachdb/sqlscalar/pkg/util/log"
)

// Expr normalizes the provided expr.
func Expr(ctx context.Context, evalCtx *eval.Context, expr tree.Expression) (tree.Expression, error) {
	v := MakeNormalizeVisitor(ctx, evalCtx)
	res, _ := tree.WalkExpr(&v, expr)
	if v.err != nil {
		return nil, v.err
	}
	return res, nil
}

// Visitor supports the execution of Expr.
type Visitor struct {
	ctx     context.Context
	evalCtx *eval.Context
	err     error

	// Folded counts the expressions replaced by their value.
	Folded int
}

var _ tree.Visitor = &Visitor{}

// MakeNormalizeVisitor creates a Visitor instance.
func MakeNormalizeVisitor(ctx context.Context, evalCtx *eval.Context) Visitor {
	return Visitor{ctx: ctx, evalCtx: evalCtx}
}

// Err retrieves the error field in the Visitor.
func (v *Visitor) Err() error { return v.err }

// VisitPre implements the Visitor interface.
func (v *Visitor) VisitPre(expr tree.Expression) (recurse bool, newExpr tree.Expression) {
	if v.err != nil {
		return false, expr
	}
	return true, expr
}

// VisitPost implements the Visitor interface.
func (v *Visitor) VisitPost(expr tree.Expression) tree.Expression {
	if v.err != nil {
		return expr
	}
	f, ok := expr.(*tree.FuncExpr)
	if !ok {
		return expr
	}
	if s := v.simplify(f); s != expr {
		if s.ValueType() != f.ValueType() {
			v.err = errors.AssertionFailedf("simplifying %s changed its type to %s", f, s.ValueType())
			return expr
		}
		return s
	}
	if !v.isConst(f) {
		return expr
	}
	// Errors and warnings are left for execution: the expression may sit
	// in a branch that is never evaluated, e.g. IF(TRUE, 1, 1 / 0).
	scratch := eval.NewContext(v.ctx, v.evalCtx.Session)
	scratch.StmtTimestamp = v.evalCtx.StmtTimestamp
	ev := f.Evaluation()
	ev.OfContext(scratch)
	value, err := ev.Eval()
	if err != nil || len(scratch.Warnings()) > 0 {
		log.VEventf(v.ctx, 2, "not folding %s: %v", f, err)
		return expr
	}
	if value.IsNull() {
		value = tree.TypedNull(f.ValueType())
	}
	v.Folded++
	return tree.NewLiteral(value)
}

// isConst is true when every argument was already folded into a literal
// and the function reads nothing but its arguments.
func (v *Visitor) isConst(f *tree.FuncExpr) bool {
	if f.Def.Volatility != tree.VolatilityImmutable || f.Def.NeedsContext {
		return false
	}
	for _, e := range f.Exprs {
		if _, ok := e.(*tree.Literal); !ok {
			return false
		}
	}
	return true
}

// simplify applies the identities x + 0 = x, x - 0 = x, x * 1 = x,
// TRUE AND x = x and FALSE OR x = x, when x already has the type of the
// result.
func (v *Visitor) simplify(f *tree.FuncExpr) tree.Expression {
	if len(f.Exprs) != 2 {
		return f
	}
	left, right := f.Exprs[0], f.Exprs[1]
	switch f.Def.Name {
	case "+":
		if isNumericZero(right) && left.ValueType() == f.Typ {
			return left
		}
		if isNumericZero(left) && right.ValueType() == f.Typ {
			return right
		}
	case "-":
		if isNumericZero(right) && left.ValueType() == f.Typ {
			return left
		}
	case "*":
		if isNumericOne(right) && left.ValueType() == f.Typ {
			return left
		}
		if isNumericOne(left) && right.ValueType() == f.Typ {
			return right
		}
	case "AND":
		if isBool(left, true) && right.ValueType() == f.Typ {
			return right
		}
	case "OR":
		if isBool(left, false) && right.ValueType() == f.Typ {
			return right
		}
	}
	return f
}

// isNumericZero returns true if the expression is a numeric literal
// equal to zero.
func isNumericZero(expr tree.Expression) bool {
	return numericLiteralCmp(expr, 0)
}

// isNumericOne returns true if the expression is a numeric literal equal
// to one.
func isNumericOne(expr tree.Expression) bool {
	return numericLiteralCmp(expr, 1)
}

func numericLiteralCmp(expr tree.Expression, n int64) bool {
	l, ok := expr.(*tree.Literal)
	if !ok || l.Val.IsNull() {
		return false
	}
	switch t := l.Val.Type(); {
	case t == types.DecimalFamily:
		// 2.5 * 1.0 is 2.50, so only integral decimals are identities.
		d := l.Val.Decimal()
		return d.Exponent == 0 && d.Cmp(apd.New(n, 0)) == 0
	case t.IsApproximate():
		return l.Val.Float64() == float64(n)
	case t == types.UBigIntFamily:
		return l.Val.BigInt().IsInt64() && l.Val.BigInt().Int64() == n
	case t == types.UIntFamily:
		return l.Val.Uint64() == uint64(n)
	case t == types.IntFamily, t == types.LongFamily:
		return l.Val.Int64() == n
	}
	return false
}

func isBool(expr tree.Expression, b bool) bool {
	l, ok := expr.(*tree.Literal)
	return ok && l.Val.Type() == types.BoolFamily && !l.Val.IsNull() && l.Val.Bool() == b
}
