// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
)

// Expression is a typed, immutable node of a scalar expression tree. An
// Expression is a plan: it is evaluated through the Evaluations it
// creates, each of which is bound to rows and a QueryContext.
//
// Expressions are safe for concurrent use. Evaluations are not.
type Expression interface {
	fmt.Stringer
	// Name identifies the node kind or the function.
	Name() string
	// ValueType is the type of every value produced by the expression.
	ValueType() types.Family
	// IsConstant is true if every evaluation yields the same value
	// regardless of row and context.
	IsConstant() bool
	// NeedsRow is true if the expression reads fields of a row.
	NeedsRow() bool
	// NeedsBindings is true if the expression reads the QueryContext.
	NeedsBindings() bool
	// NullIsContaminating is true if the expression yields NULL whenever
	// any of its children does.
	NullIsContaminating() bool
	// Evaluation returns a fresh evaluation of the expression.
	Evaluation() Evaluation
	// Explain describes the expression for EXPLAIN output.
	Explain(ctx ExplainContext) Explainer
}

// Evaluation is a stateful evaluator of an Expression. Typical use:
//
//	ev := expr.Evaluation()
//	ev.OfContext(qctx)
//	for each row {
//	  ev.OfRow(row)
//	  v, err := ev.Eval()
//	}
//
// Eval must not be called before OfRow when the expression NeedsRow,
// nor before OfContext when it NeedsBindings.
type Evaluation interface {
	Shareable
	// OfRow binds the row that subsequent calls to Eval read.
	OfRow(row Row)
	// OfContext binds the QueryContext.
	OfContext(ctx QueryContext)
	// Eval computes the value for the current bindings. A non-nil error
	// aborts the statement; conditions that only warrant a warning are
	// reported through the QueryContext and yield a NULL.
	Eval() (Value, error)
}

// NullTreating tells a composer how to handle NULL arguments.
type NullTreating int

const (
	// NullTreatingIgnore passes NULL arguments to the function, which
	// decides what they mean.
	NullTreatingIgnore NullTreating = iota
	// NullTreatingReturnNull yields NULL as soon as any argument is NULL,
	// without invoking the function.
	NullTreatingReturnNull
	// NullTreatingRemoveAfterFirst drops literal NULL arguments after the
	// first one at compose time (COALESCE, CONCAT_WS).
	NullTreatingRemoveAfterFirst
)

func (n NullTreating) String() string {
	switch n {
	case NullTreatingIgnore:
		return "IGNORE"
	case NullTreatingReturnNull:
		return "RETURN_NULL"
	case NullTreatingRemoveAfterFirst:
		return "REMOVE_AFTER_FIRST"
	}
	return fmt.Sprintf("NullTreating(%d)", int(n))
}

// Composer builds an Expression from argument expressions.
type Composer interface {
	// Compose type checks the arguments and builds the expression.
	Compose(args []Expression) (Expression, error)
	// NullTreating says how the composed expression handles NULLs.
	NullTreating() NullTreating
}

// Literal is a constant.
type Literal struct {
	Val Value
}

var _ Expression = (*Literal)(nil)

// NewLiteral returns a literal expression of v.
func NewLiteral(v Value) *Literal {
	return &Literal{Val: v}
}

// IsNullLiteral is true for literal NULLs.
func IsNullLiteral(e Expression) bool {
	l, ok := e.(*Literal)
	return ok && l.Val.IsNull()
}

// Name implements the Expression interface.
func (l *Literal) Name() string { return "Literal" }

// ValueType implements the Expression interface.
func (l *Literal) ValueType() types.Family { return l.Val.Type() }

// IsConstant implements the Expression interface.
func (l *Literal) IsConstant() bool { return true }

// NeedsRow implements the Expression interface.
func (l *Literal) NeedsRow() bool { return false }

// NeedsBindings implements the Expression interface.
func (l *Literal) NeedsBindings() bool { return false }

// NullIsContaminating implements the Expression interface.
func (l *Literal) NullIsContaminating() bool { return true }

// Evaluation implements the Expression interface.
func (l *Literal) Evaluation() Evaluation { return &literalEvaluation{val: l.Val} }

func (l *Literal) String() string {
	if !l.Val.IsNull() && l.Val.Type().IsString() {
		return fmt.Sprintf("'%s'", l.Val)
	}
	return l.Val.String()
}

// Explain implements the Expression interface.
func (l *Literal) Explain(ctx ExplainContext) Explainer {
	return newExplainer(ctx, KindLiteral, l.String(), l)
}

type literalEvaluation struct {
	RefCount
	val Value
}

func (e *literalEvaluation) OfRow(Row)              {}
func (e *literalEvaluation) OfContext(QueryContext) {}
func (e *literalEvaluation) Eval() (Value, error)   { return e.val, nil }

// FieldExpr reads the field at a fixed position of the current row.
type FieldExpr struct {
	Pos int
	Typ types.Family
}

var _ Expression = (*FieldExpr)(nil)

// NewFieldExpr returns an expression reading field pos, of type typ.
func NewFieldExpr(pos int, typ types.Family) *FieldExpr {
	return &FieldExpr{Pos: pos, Typ: typ}
}

// Name implements the Expression interface.
func (f *FieldExpr) Name() string { return "Field" }

// ValueType implements the Expression interface.
func (f *FieldExpr) ValueType() types.Family { return f.Typ }

// IsConstant implements the Expression interface.
func (f *FieldExpr) IsConstant() bool { return false }

// NeedsRow implements the Expression interface.
func (f *FieldExpr) NeedsRow() bool { return true }

// NeedsBindings implements the Expression interface.
func (f *FieldExpr) NeedsBindings() bool { return false }

// NullIsContaminating implements the Expression interface.
func (f *FieldExpr) NullIsContaminating() bool { return true }

func (f *FieldExpr) String() string { return fmt.Sprintf("Field(%d)", f.Pos) }

// Evaluation implements the Expression interface.
func (f *FieldExpr) Evaluation() Evaluation { return &fieldEvaluation{expr: f} }

// Explain implements the Expression interface.
func (f *FieldExpr) Explain(ctx ExplainContext) Explainer {
	e := newExplainer(ctx, KindField, f.String(), f)
	e.Attrs = append(e.Attrs, Attr{Key: "position", Value: fmt.Sprint(f.Pos)})
	return e
}

type fieldEvaluation struct {
	RefCount
	expr *FieldExpr
	row  Row
}

// OfRow acquires the new row and releases the previous one, so that the
// row is seen as shared while this evaluation still reads it.
func (e *fieldEvaluation) OfRow(row Row) {
	if row == e.row {
		return
	}
	if row != nil {
		row.Acquire()
	}
	if e.row != nil {
		e.row.Release()
	}
	e.row = row
}

func (e *fieldEvaluation) OfContext(QueryContext) {}

func (e *fieldEvaluation) Eval() (Value, error) {
	if e.row == nil {
		return Value{}, errors.AssertionFailedf("%s evaluated before a row was bound", e.expr)
	}
	if e.expr.Pos < 0 || e.expr.Pos >= e.row.Len() {
		return Value{}, errors.AssertionFailedf("%s out of range for a row of %d fields",
			e.expr, e.row.Len())
	}
	v := e.row.Value(e.expr.Pos)
	if v.IsNull() {
		return TypedNull(e.expr.Typ), nil
	}
	return v, nil
}

// ParameterExpr reads a value bound in the QueryContext.
type ParameterExpr struct {
	Pos int
	Typ types.Family
}

var _ Expression = (*ParameterExpr)(nil)

// NewParameterExpr returns an expression reading parameter pos, of type
// typ.
func NewParameterExpr(pos int, typ types.Family) *ParameterExpr {
	return &ParameterExpr{Pos: pos, Typ: typ}
}

// Name implements the Expression interface.
func (p *ParameterExpr) Name() string { return "Parameter" }

// ValueType implements the Expression interface.
func (p *ParameterExpr) ValueType() types.Family { return p.Typ }

// IsConstant implements the Expression interface.
func (p *ParameterExpr) IsConstant() bool { return false }

// NeedsRow implements the Expression interface.
func (p *ParameterExpr) NeedsRow() bool { return false }

// NeedsBindings implements the Expression interface.
func (p *ParameterExpr) NeedsBindings() bool { return true }

// NullIsContaminating implements the Expression interface.
func (p *ParameterExpr) NullIsContaminating() bool { return true }

func (p *ParameterExpr) String() string { return fmt.Sprintf("$%d", p.Pos+1) }

// Evaluation implements the Expression interface.
func (p *ParameterExpr) Evaluation() Evaluation { return &parameterEvaluation{expr: p} }

// Explain implements the Expression interface.
func (p *ParameterExpr) Explain(ctx ExplainContext) Explainer {
	e := newExplainer(ctx, KindParameter, p.String(), p)
	e.Attrs = append(e.Attrs, Attr{Key: "position", Value: fmt.Sprint(p.Pos)})
	return e
}

type parameterEvaluation struct {
	RefCount
	expr *ParameterExpr
	ctx  QueryContext
}

func (e *parameterEvaluation) OfRow(Row) {}

func (e *parameterEvaluation) OfContext(ctx QueryContext) { e.ctx = ctx }

func (e *parameterEvaluation) Eval() (Value, error) {
	if e.ctx == nil {
		return Value{}, errors.AssertionFailedf("%s evaluated before a context was bound", e.expr)
	}
	v, err := e.ctx.Binding(e.expr.Pos)
	if err != nil {
		return Value{}, err
	}
	if v.IsNull() {
		return TypedNull(e.expr.Typ), nil
	}
	return v, nil
}
