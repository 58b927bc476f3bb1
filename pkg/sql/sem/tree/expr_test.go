// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree/treebin"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
	"github.com/cockroachdb/sqlscalar/pkg/util/leaktest"
	"github.com/cockroachdb/sqlscalar/pkg/util/log"
	"github.com/stretchr/testify/require"
)

// plusCalls counts the invocations of testPlus.
var plusCalls int

var testPlus = &FunctionDefinition{
	Name: "+",
	FunctionProperties: FunctionProperties{
		NullTreating: NullTreatingReturnNull,
		Infix:        true,
		MinArgs:      2,
		MaxArgs:      2,
	},
	TypeCheck: func(args []Expression) (types.Family, error) {
		return BinaryResultType(treebin.Plus, args[0].ValueType(), args[1].ValueType())
	},
	Fn: func(ctx QueryContext, args *Args) (Value, error) {
		plusCalls++
		vals, err := args.All()
		if err != nil {
			return Value{}, err
		}
		return NewLong(vals[0].Int64() + vals[1].Int64()), nil
	},
}

var testCoalesce = &FunctionDefinition{
	Name: "COALESCE",
	FunctionProperties: FunctionProperties{
		NullTreating: NullTreatingRemoveAfterFirst,
		MinArgs:      1,
		MaxArgs:      -1,
	},
	TypeCheck: func(args []Expression) (types.Family, error) {
		return args[0].ValueType(), nil
	},
	Fn: func(ctx QueryContext, args *Args) (Value, error) {
		for i := 0; i < args.Len(); i++ {
			v, err := args.Get(i)
			if err != nil || !v.IsNull() {
				return v, err
			}
		}
		return DNull, nil
	},
}

var testNow = &FunctionDefinition{
	Name: "NOW",
	FunctionProperties: FunctionProperties{
		NullTreating: NullTreatingReturnNull,
		Volatility:   VolatilityStable,
		NeedsContext: true,
	},
	TypeCheck: func([]Expression) (types.Family, error) { return types.TimestampFamily, nil },
	Fn: func(ctx QueryContext, _ *Args) (Value, error) {
		return NewTimestamp(ctx.StatementTime().Unix()), nil
	},
}

func mustCompose(t *testing.T, c Composer, args ...Expression) Expression {
	t.Helper()
	e, err := c.Compose(args)
	require.NoError(t, err)
	return e
}

func TestNullContamination(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	e := mustCompose(t, testPlus, NewLiteral(NewLong(1)), NewLiteral(DNull))
	require.True(t, e.NullIsContaminating())
	require.Equal(t, types.LongFamily, e.ValueType())

	plusCalls = 0
	v, err := e.Evaluation().Eval()
	require.NoError(t, err)
	require.True(t, v.IsNull())
	require.Equal(t, types.LongFamily, v.Type())
	require.Zero(t, plusCalls, "the operator must not run on a NULL operand")

	e = mustCompose(t, testPlus, NewLiteral(NewLong(1)), NewLiteral(NewLong(2)))
	v, err = e.Evaluation().Eval()
	require.NoError(t, err)
	require.True(t, NewLong(3).Equal(v))
	require.Equal(t, 1, plusCalls)

	c := mustCompose(t, testCoalesce, NewLiteral(DNull), NewFieldExpr(0, types.LongFamily))
	require.False(t, c.NullIsContaminating())
}

func TestNullTreatingConsistency(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	for _, c := range []*FunctionDefinition{testPlus, testCoalesce, testNow} {
		args := make([]Expression, c.MinArgs)
		for i := range args {
			args[i] = NewLiteral(NewLong(int64(i)))
		}
		e := mustCompose(t, c, args...)
		require.Equal(t, c.NullTreating() == NullTreatingReturnNull, e.NullIsContaminating(), c.Name)
	}
}

func TestCompose(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	_, err := testPlus.Compose([]Expression{NewLiteral(NewLong(1))})
	require.Equal(t, pgcode.WrongArity, pgerror.GetPGCode(err))
	require.Contains(t, err.Error(), "expected 2, got 1")

	_, err = testPlus.Compose([]Expression{
		NewLiteral(NewDateFromFields(dateFields(2000, 1, 1))),
		NewLiteral(NewTimeFromFields(dateFields(0, 0, 0))),
	})
	require.Equal(t, pgcode.InvalidArgumentType, pgerror.GetPGCode(err))

	e := mustCompose(t, testCoalesce,
		NewLiteral(DNull), NewLiteral(DNull), NewFieldExpr(0, types.LongFamily), NewLiteral(DNull))
	require.Len(t, e.(*FuncExpr).Exprs, 2, "literal NULLs after the first are dropped")
	require.Equal(t, "COALESCE(NULL, Field(0))", e.String())

	require.True(t, testCoalesce.MatchLen(5))
	require.False(t, testCoalesce.MatchLen(0))
	require.Equal(t, "COALESCE(arg1, ...)", testCoalesce.Signature())
	require.Equal(t, "+(arg1, arg2)", testPlus.Signature())

	err = NewArgTypeError(1, types.IntervalMonthFamily)
	require.Equal(t, "unsupported type INTERVAL_MONTH for the 2nd argument", err.Error())
}

func TestExpressionProperties(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	lit := NewLiteral(NewLong(1))
	field := NewFieldExpr(0, types.LongFamily)
	param := NewParameterExpr(0, types.LongFamily)

	testData := []struct {
		e                                Expression
		constant, needsRow, needsBinding bool
	}{
		{lit, true, false, false},
		{field, false, true, false},
		{param, false, false, true},
		{mustCompose(t, testPlus, lit, lit), true, false, false},
		{mustCompose(t, testPlus, lit, field), false, true, false},
		{mustCompose(t, testPlus, param, lit), false, false, true},
		{mustCompose(t, testNow), false, false, true},
	}
	for _, d := range testData {
		require.Equal(t, d.constant, d.e.IsConstant(), d.e.String())
		require.Equal(t, d.needsRow, d.e.NeedsRow(), d.e.String())
		require.Equal(t, d.needsBinding, d.e.NeedsBindings(), d.e.String())
	}
}

func TestEvalBeforeBinding(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	e := mustCompose(t, testPlus, NewFieldExpr(0, types.LongFamily), NewLiteral(NewLong(1)))
	ev := e.Evaluation()
	_, err := ev.Eval()
	require.True(t, errors.IsAssertionFailure(err))

	ev.OfRow(NewRow(NewLong(41)))
	v, err := ev.Eval()
	require.NoError(t, err)
	require.True(t, NewLong(42).Equal(v))
	v, err = ev.Eval()
	require.NoError(t, err)
	require.True(t, NewLong(42).Equal(v), "Eval is idempotent for a fixed binding")

	pev := NewParameterExpr(0, types.LongFamily).Evaluation()
	_, err = pev.Eval()
	require.True(t, errors.IsAssertionFailure(err))
	pev.OfContext(newTestQueryContext(NewLong(7)))
	v, err = pev.Eval()
	require.NoError(t, err)
	require.True(t, NewLong(7).Equal(v))

	nev := mustCompose(t, testNow).Evaluation()
	_, err = nev.Eval()
	require.True(t, errors.IsAssertionFailure(err))
	qctx := newTestQueryContext()
	nev.OfContext(qctx)
	v, err = nev.Eval()
	require.NoError(t, err)
	require.Equal(t, qctx.StatementTime().Unix(), v.TimestampUnix())
}

func TestAccessorPanicBecomesError(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	bad := &FunctionDefinition{
		Name:               "BAD",
		FunctionProperties: FunctionProperties{MinArgs: 1, MaxArgs: 1},
		TypeCheck:          func([]Expression) (types.Family, error) { return types.LongFamily, nil },
		Fn: func(_ QueryContext, args *Args) (Value, error) {
			v, err := args.Get(0)
			if err != nil {
				return Value{}, err
			}
			return NewLong(v.Int64()), nil
		},
	}
	_, err := mustCompose(t, bad, NewLiteral(DNull)).Evaluation().Eval()
	require.Equal(t, pgcode.NullValueNotAllowed, pgerror.GetPGCode(err))
	require.True(t, strings.HasPrefix(err.Error(), "BAD: "))
}

func TestSharingProtocol(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	e := mustCompose(t, testPlus, NewFieldExpr(0, types.LongFamily), NewLiteral(NewLong(1)))
	ev := e.Evaluation()
	child := ev.(*funcEvaluation).args.evals[0].(*fieldEvaluation)

	require.False(t, ev.IsShared())
	ev.Acquire()
	require.False(t, ev.IsShared())
	ev.Acquire()
	require.True(t, ev.IsShared())
	require.Equal(t, 2, child.Owners())
	ev.Release()
	ev.Release()
	require.False(t, ev.IsShared())
	require.Zero(t, child.Owners())

	// Releasing at zero owners is not propagated.
	child.Acquire()
	ev.Release()
	require.Equal(t, 1, child.Owners())
	child.Release()

	require.NoError(t, WithAcquired(ev, func() error {
		require.Equal(t, 1, child.Owners())
		return nil
	}))
	require.Zero(t, child.Owners())
}

func TestRowSharing(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	row := NewRow(NewLong(1), NewText("a"))
	ev := NewFieldExpr(1, types.TextFamily).Evaluation()
	ev.OfRow(row)
	require.Equal(t, 1, row.Owners())
	require.Same(t, row, CopyIfShared(row), "a row with one owner is not copied")
	require.NoError(t, row.Set(0, NewLong(2)))

	row.Acquire()
	require.True(t, row.IsShared())
	require.Error(t, row.Set(0, NewLong(3)))
	cp := CopyIfShared(row)
	require.NotSame(t, row, cp)
	require.True(t, NewLong(2).Equal(cp.Value(0)))

	other := NewRow(NewLong(9), NewText("b"))
	ev.OfRow(other)
	require.Equal(t, 1, row.Owners(), "binding a new row releases the previous one")
	require.Equal(t, 1, other.Owners())
	v, err := ev.Eval()
	require.NoError(t, err)
	require.Equal(t, "b", v.StringValue())

	_, err = NewFieldExpr(5, types.TextFamily).Evaluation().Eval()
	require.True(t, errors.IsAssertionFailure(err))
}

func TestWalkExpr(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	inner := mustCompose(t, testPlus, NewLiteral(NewLong(1)), NewLiteral(NewLong(2)))
	outer := mustCompose(t, testPlus, inner, NewFieldExpr(0, types.LongFamily))

	v := &replaceFields{with: NewLiteral(NewLong(10))}
	n, changed := WalkExpr(v, outer)
	require.True(t, changed)
	require.Equal(t, "((1 + 2) + Field(0))", outer.String())
	require.Equal(t, "((1 + 2) + 10)", n.String())
	require.Same(t, inner, n.(*FuncExpr).Exprs[0], "unchanged subtrees are shared")
}

type replaceFields struct {
	with Expression
}

func (r *replaceFields) VisitPre(e Expression) (bool, Expression) {
	if _, ok := e.(*FieldExpr); ok {
		return false, r.with
	}
	return true, e
}

func (r *replaceFields) VisitPost(e Expression) Expression { return e }
