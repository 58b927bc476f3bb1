// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
	"github.com/dustin/go-humanize"
)

// Volatility indicates whether the result of a function is dependent
// only on the values of its explicit arguments, or can change due to
// outside factors (such as the statement time).
type Volatility int8

const (
	// VolatilityImmutable means that the function's result is determined
	// by its arguments.
	VolatilityImmutable Volatility = iota
	// VolatilityStable means that the function's result is fixed for the
	// duration of a statement (NOW, CURRENT_USER).
	VolatilityStable
	// VolatilityVolatile means that the function can return a different
	// value on each call (RAND).
	VolatilityVolatile
)

func (v Volatility) String() string {
	switch v {
	case VolatilityImmutable:
		return "immutable"
	case VolatilityStable:
		return "stable"
	case VolatilityVolatile:
		return "volatile"
	}
	return fmt.Sprintf("Volatility(%d)", int8(v))
}

// FunctionProperties are the properties shared by every use of a
// function.
type FunctionProperties struct {
	// Category is used to generate documentation strings.
	Category string
	// NullTreating is how the function handles NULL arguments.
	NullTreating NullTreating
	// Volatility of the function.
	Volatility Volatility
	// NeedsContext is set for functions that read the QueryContext.
	NeedsContext bool
	// Infix is set for operators, which are displayed between their
	// operands.
	Infix bool
	// MinArgs and MaxArgs bound the arity. A negative MaxArgs means the
	// function is variadic.
	MinArgs, MaxArgs int
	// Info is a description of the function.
	Info string
}

// TypeCheckFn checks the argument types of a function and returns the
// type of its result.
type TypeCheckFn func(args []Expression) (types.Family, error)

// EvalFn computes the value of a function. Arguments are evaluated on
// demand through args. A returned non-NULL value must be of the result
// type the TypeCheckFn announced.
type EvalFn func(ctx QueryContext, args *Args) (Value, error)

// FunctionDefinition describes a scalar function or operator. It is the
// Composer of its invocations.
type FunctionDefinition struct {
	// Name is the name of the function, or the symbol of an operator.
	Name string
	FunctionProperties
	TypeCheck TypeCheckFn
	Fn        EvalFn
}

var _ Composer = (*FunctionDefinition)(nil)

func (fd *FunctionDefinition) String() string { return fd.Name }

// NullTreating implements the Composer interface.
func (fd *FunctionDefinition) NullTreating() NullTreating {
	return fd.FunctionProperties.NullTreating
}

// Signature renders the arity of the function, e.g. "CONCAT(arg1, ...)".
func (fd *FunctionDefinition) Signature() string {
	var b strings.Builder
	b.WriteString(fd.Name)
	b.WriteByte('(')
	for i := 0; i < fd.MinArgs; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "arg%d", i+1)
	}
	switch {
	case fd.MaxArgs < 0:
		if fd.MinArgs > 0 {
			b.WriteString(", ")
		}
		b.WriteString("...")
	case fd.MaxArgs > fd.MinArgs:
		b.WriteString(" [")
		for i := fd.MinArgs; i < fd.MaxArgs; i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "arg%d", i+1)
		}
		b.WriteByte(']')
	}
	b.WriteByte(')')
	return b.String()
}

// MatchLen is true if the function accepts n arguments.
func (fd *FunctionDefinition) MatchLen(n int) bool {
	return n >= fd.MinArgs && (fd.MaxArgs < 0 || n <= fd.MaxArgs)
}

// Compose implements the Composer interface.
func (fd *FunctionDefinition) Compose(args []Expression) (Expression, error) {
	if !fd.MatchLen(len(args)) {
		return nil, pgerror.Newf(pgcode.WrongArity,
			"%s: wrong number of arguments: expected %s, got %d", fd.Name, fd.arity(), len(args))
	}
	if fd.FunctionProperties.NullTreating == NullTreatingRemoveAfterFirst && len(args) > 1 {
		pruned := make([]Expression, 1, len(args))
		pruned[0] = args[0]
		for _, a := range args[1:] {
			if !IsNullLiteral(a) {
				pruned = append(pruned, a)
			}
		}
		if fd.MatchLen(len(pruned)) {
			args = pruned
		}
	}
	typ := types.NullFamily
	if fd.TypeCheck != nil {
		var err error
		if typ, err = fd.TypeCheck(args); err != nil {
			return nil, errors.Wrapf(err, "%s", fd.Name)
		}
	}
	return &FuncExpr{Def: fd, Exprs: args, Typ: typ}, nil
}

func (fd *FunctionDefinition) arity() string {
	switch {
	case fd.MaxArgs < 0:
		return fmt.Sprintf("at least %d", fd.MinArgs)
	case fd.MaxArgs == fd.MinArgs:
		return fmt.Sprint(fd.MinArgs)
	}
	return fmt.Sprintf("%d to %d", fd.MinArgs, fd.MaxArgs)
}

// NewArgTypeError reports an argument of an unsupported type. Positions
// are 0-based.
func NewArgTypeError(pos int, typ types.Family) error {
	return pgerror.Newf(pgcode.InvalidArgumentType,
		"unsupported type %s for the %s argument", typ, humanize.Ordinal(pos+1))
}

// FuncExpr is an invocation of a FunctionDefinition.
type FuncExpr struct {
	Def   *FunctionDefinition
	Exprs []Expression
	Typ   types.Family
}

var _ Expression = (*FuncExpr)(nil)

// Name implements the Expression interface.
func (f *FuncExpr) Name() string { return f.Def.Name }

// ValueType implements the Expression interface.
func (f *FuncExpr) ValueType() types.Family { return f.Typ }

// IsConstant implements the Expression interface.
func (f *FuncExpr) IsConstant() bool {
	if f.Def.Volatility != VolatilityImmutable || f.Def.NeedsContext {
		return false
	}
	for _, e := range f.Exprs {
		if !e.IsConstant() {
			return false
		}
	}
	return true
}

// NeedsRow implements the Expression interface.
func (f *FuncExpr) NeedsRow() bool {
	for _, e := range f.Exprs {
		if e.NeedsRow() {
			return true
		}
	}
	return false
}

// NeedsBindings implements the Expression interface.
func (f *FuncExpr) NeedsBindings() bool {
	if f.Def.NeedsContext {
		return true
	}
	for _, e := range f.Exprs {
		if e.NeedsBindings() {
			return true
		}
	}
	return false
}

// NullIsContaminating implements the Expression interface.
func (f *FuncExpr) NullIsContaminating() bool {
	return f.Def.FunctionProperties.NullTreating == NullTreatingReturnNull
}

func (f *FuncExpr) String() string {
	var b strings.Builder
	if f.Def.Infix && len(f.Exprs) == 2 {
		fmt.Fprintf(&b, "(%s %s %s)", f.Exprs[0], f.Def.Name, f.Exprs[1])
		return b.String()
	}
	b.WriteString(f.Def.Name)
	b.WriteByte('(')
	for i, e := range f.Exprs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Explain implements the Expression interface.
func (f *FuncExpr) Explain(ctx ExplainContext) Explainer {
	kind := KindFunction
	if f.Def.Infix {
		kind = KindBinaryOperator
	}
	e := newExplainer(ctx, kind, f.Def.Name, f)
	for _, c := range f.Exprs {
		e.Children = append(e.Children, c.Explain(ctx))
	}
	return e
}

// Evaluation implements the Expression interface.
func (f *FuncExpr) Evaluation() Evaluation {
	ev := &funcEvaluation{expr: f, needsRow: f.NeedsRow()}
	ev.args.typ = f.Typ
	ev.args.exprs = f.Exprs
	ev.args.evals = make([]Evaluation, len(f.Exprs))
	ev.args.vals = make([]Value, len(f.Exprs))
	ev.args.done = make([]bool, len(f.Exprs))
	for i, e := range f.Exprs {
		ev.args.evals[i] = e.Evaluation()
	}
	return ev
}

// Args gives a function access to its arguments. Each argument is
// evaluated at most once per call, on first access; functions that
// short-circuit never evaluate the arguments they skip.
type Args struct {
	evals []Evaluation
	vals  []Value
	done  []bool
	exprs []Expression
	typ   types.Family
}

// Len returns the number of arguments.
func (a *Args) Len() int { return len(a.evals) }

// ResultType is the type the invocation was composed with.
func (a *Args) ResultType() types.Family { return a.typ }

// ArgType is the static type of argument i.
func (a *Args) ArgType(i int) types.Family { return a.exprs[i].ValueType() }

// Get evaluates argument i.
func (a *Args) Get(i int) (Value, error) {
	if !a.done[i] {
		v, err := a.evals[i].Eval()
		if err != nil {
			return Value{}, err
		}
		a.vals[i] = v
		a.done[i] = true
	}
	return a.vals[i], nil
}

// All evaluates every argument.
func (a *Args) All() ([]Value, error) {
	for i := range a.evals {
		if _, err := a.Get(i); err != nil {
			return nil, err
		}
	}
	return a.vals, nil
}

func (a *Args) reset() {
	for i := range a.done {
		a.done[i] = false
		a.vals[i] = Value{}
	}
}

type funcEvaluation struct {
	RefCount
	expr     *FuncExpr
	args     Args
	ctx      QueryContext
	rowBound bool
	needsRow bool
}

func (e *funcEvaluation) OfRow(row Row) {
	for _, c := range e.args.evals {
		c.OfRow(row)
	}
	e.rowBound = row != nil
}

func (e *funcEvaluation) OfContext(ctx QueryContext) {
	for _, c := range e.args.evals {
		c.OfContext(ctx)
	}
	e.ctx = ctx
}

// Acquire propagates to the children, which are owned through this
// evaluation.
func (e *funcEvaluation) Acquire() {
	e.RefCount.Acquire()
	for _, c := range e.args.evals {
		c.Acquire()
	}
}

// Release propagates to the children only if this evaluation was held.
func (e *funcEvaluation) Release() {
	if e.Owners() == 0 {
		return
	}
	e.RefCount.Release()
	for _, c := range e.args.evals {
		c.Release()
	}
}

func (e *funcEvaluation) Eval() (_ Value, retErr error) {
	if e.needsRow && !e.rowBound {
		return Value{}, errors.AssertionFailedf("%s evaluated before a row was bound", e.expr)
	}
	ctx := e.ctx
	if ctx == nil {
		if e.expr.Def.NeedsContext {
			return Value{}, errors.AssertionFailedf("%s evaluated before a context was bound", e.expr)
		}
		ctx = EmptyQueryContext
	}
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok || (!errors.IsAssertionFailure(err) && pgerror.GetPGCode(err) == pgcode.Uncategorized) {
				panic(r)
			}
			retErr = errors.Wrapf(err, "%s", e.expr.Def.Name)
		}
	}()
	e.args.reset()
	if e.expr.NullIsContaminating() {
		for i := range e.args.evals {
			v, err := e.args.Get(i)
			if err != nil {
				return Value{}, err
			}
			if v.IsNull() {
				return TypedNull(e.expr.Typ), nil
			}
		}
	}
	v, err := e.expr.Def.Fn(ctx, &e.args)
	if err != nil {
		return Value{}, err
	}
	if v.IsNull() {
		return TypedNull(e.expr.Typ), nil
	}
	if v.Type() != e.expr.Typ {
		return Value{}, errors.AssertionFailedf("%s produced %s, expected %s", e.expr.Def.Name, v.Type(), e.expr.Typ)
	}
	return v, nil
}
