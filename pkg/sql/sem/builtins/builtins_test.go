// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtins

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/eval"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sessiondata"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
	"github.com/cockroachdb/sqlscalar/pkg/util/leaktest"
	"github.com/cockroachdb/sqlscalar/pkg/util/log"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

// evalExpr parses and evaluates s with no row bound.
func evalExpr(ctx *eval.Context, s string) (tree.Value, error) {
	e, err := ParseExpr(ctx, s)
	if err != nil {
		return tree.Value{}, err
	}
	ev := e.Evaluation()
	ev.OfContext(ctx)
	return ev.Eval()
}

func evalLiterals(ctx tree.QueryContext, name string, vals ...tree.Value) (tree.Value, error) {
	args := make([]tree.Expression, len(vals))
	for i, v := range vals {
		args[i] = tree.NewLiteral(v)
	}
	e, err := Compose(name, args...)
	if err != nil {
		return tree.Value{}, err
	}
	ev := e.Evaluation()
	ev.OfContext(ctx)
	return ev.Eval()
}

func TestCategory(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)
	getCategory := func(name string) string {
		def, err := Lookup(name)
		require.NoError(t, err)
		return def.Category
	}
	require.Equal(t, categoryString, getCategory("lower"))
	require.Equal(t, categoryString, getCategory("length"))
	require.Equal(t, categoryDateAndTime, getCategory("now"))
	require.Equal(t, categorySystemInfo, getCategory("database"))
	require.Equal(t, categoryArithmetic, getCategory("+"))
}

func TestLookup(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	def, err := Lookup(" concat_ws ")
	require.NoError(t, err)
	require.Equal(t, "CONCAT_WS", def.Name)

	_, err = Lookup("no_such_function")
	require.Error(t, err)
	require.Equal(t, pgcode.UndefinedFunction, pgerror.GetPGCode(err))

	_, err = Compose("LOWER")
	require.Equal(t, pgcode.WrongArity, pgerror.GetPGCode(err))

	_, err = Compose("YEAR", tree.NewLiteral(tree.NewIntervalMonth(1)))
	require.Equal(t, pgcode.InvalidArgumentType, pgerror.GetPGCode(err))

	require.True(t, sortedNames(AllBuiltinNames))
	require.Len(t, Definitions(), len(AllBuiltinNames))
}

func sortedNames(names []string) bool {
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			return false
		}
	}
	return true
}

// TestNullTreating checks that a function composed over NULLs is null
// contaminating exactly when it returns NULL for NULL arguments without
// looking at them.
func TestNullTreating(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	ctx := eval.NewTestingEvalContext()
	for _, def := range Definitions() {
		n := def.MinArgs
		if n == 0 {
			continue
		}
		args := make([]tree.Expression, n)
		for i := range args {
			args[i] = tree.NewLiteral(tree.DNull)
		}
		e, err := def.Compose(args)
		if err != nil {
			// Functions that need a literal argument (CAST, INTERVAL, ...).
			continue
		}
		require.Equal(t, def.NullTreating() == tree.NullTreatingReturnNull, e.NullIsContaminating(), def.Name)
		if !e.NullIsContaminating() {
			continue
		}
		ev := e.Evaluation()
		ev.OfContext(ctx)
		v, err := ev.Eval()
		require.NoError(t, err, def.Name)
		require.True(t, v.IsNull(), def.Name)
		require.Equal(t, e.ValueType(), v.Type(), def.Name)
	}
}

func TestRemoveAfterFirst(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	null := tree.NewLiteral(tree.DNull)
	e, err := Compose("COALESCE", null, null, tree.NewLiteral(tree.NewLong(2)), null)
	require.NoError(t, err)
	require.Len(t, e.(*tree.FuncExpr).Exprs, 2)
	require.Equal(t, "COALESCE(NULL, 2)", e.String())
}

func TestLogicTables(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	ctx := eval.NewTestingEvalContext()
	tr, f, n := tree.DBoolTrue, tree.DBoolFalse, tree.DNull
	testData := []struct {
		l, r         tree.Value
		and, or, xor tree.Value
	}{
		{tr, tr, tr, tr, f},
		{tr, f, f, tr, tr},
		{tr, n, n, tr, n},
		{f, tr, f, tr, tr},
		{f, f, f, f, f},
		{f, n, f, n, n},
		{n, tr, n, tr, n},
		{n, f, f, n, n},
		{n, n, n, n, n},
	}
	str := func(v tree.Value) string { return v.String() }
	for _, d := range testData {
		for _, op := range []struct {
			name     string
			expected tree.Value
		}{{"AND", d.and}, {"OR", d.or}, {"XOR", d.xor}} {
			res, err := evalLiterals(ctx, op.name, d.l, d.r)
			require.NoError(t, err)
			require.Equal(t, str(op.expected), str(res), "%s %s %s", d.l, op.name, d.r)
		}
	}
	for _, d := range []struct{ in, expected tree.Value }{{tr, f}, {f, tr}, {n, n}} {
		res, err := evalLiterals(ctx, "NOT", d.in)
		require.NoError(t, err)
		require.Equal(t, str(d.expected), str(res))
	}
}

// TestShortCircuit checks that AND and OR do not evaluate the right
// operand when the left one decides.
func TestShortCircuit(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	ctx := eval.NewTestingEvalContext()
	for _, s := range []string{
		"AND(bool:false, =(/(long:1, long:0), long:1))",
		"OR(bool:true, =(/(long:1, long:0), long:1))",
	} {
		_, err := evalExpr(ctx, s)
		require.NoError(t, err, s)
	}
	_, err := evalExpr(ctx, "AND(bool:true, =(/(long:1, long:0), long:1))")
	require.Equal(t, pgcode.DivisionByZero, pgerror.GetPGCode(err))
}

func TestDivisionByZeroMode(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	ctx := eval.NewTestingEvalContext()
	_, err := evalExpr(ctx, "/(u_bigint:1, u_bigint:0)")
	require.Equal(t, pgcode.DivisionByZero, pgerror.GetPGCode(err))

	ctx.Session.DivisionByZero = sessiondata.DivisionByZeroNull
	v, err := evalExpr(ctx, "/(u_bigint:1, u_bigint:0)")
	require.NoError(t, err)
	require.True(t, v.IsNull())
	require.Equal(t, types.UBigIntFamily, v.Type())
	require.Len(t, ctx.Warnings(), 1)
	require.Equal(t, pgcode.DivisionByZero, pgerror.GetPGCode(ctx.Warnings()[0]))
}

func TestParameters(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	ctx := eval.NewTestingEvalContext()
	ctx.Placeholders = []tree.Value{tree.NewLong(40), tree.NewVarchar("x")}
	e, err := ParseExpr(ctx, "CONCAT($2:varchar, +($1:long, long:2))")
	require.NoError(t, err)
	require.True(t, e.NeedsBindings())
	require.False(t, e.IsConstant())

	ev := e.Evaluation()
	ev.OfContext(ctx)
	v, err := ev.Eval()
	require.NoError(t, err)
	require.Equal(t, "x42", v.String())
}

func TestFields(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	ctx := eval.NewTestingEvalContext()
	e, err := ParseExpr(ctx, "UPPER(@1:varchar)")
	require.NoError(t, err)
	require.True(t, e.NeedsRow())

	ev := e.Evaluation()
	ev.OfContext(ctx)
	for _, s := range []string{"a", "b"} {
		ev.OfRow(tree.NewRow(tree.NewLong(1), tree.NewVarchar(s)))
		v, err := ev.Eval()
		require.NoError(t, err)
		require.Equal(t, strings.ToUpper(s), v.String())
	}
}

func TestParseErrors(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	ctx := eval.NewTestingEvalContext()
	for _, d := range []struct {
		in   string
		code pgcode.Code
	}{
		{"CONCAT(varchar:a", pgcode.Syntax},
		{"CONCAT(varchar:'a)", pgcode.Syntax},
		{"abc", pgcode.Syntax},
		{"long:1 long:2", pgcode.Syntax},
		{"$0:long", pgcode.Syntax},
		{"widget:1", pgcode.InvalidArgumentType},
		{"date:2009-13-45", pgcode.InvalidDatetimeFormat},
		{"interval:12", pgcode.InvalidIntervalFormat},
		{"NO_SUCH(long:1)", pgcode.UndefinedFunction},
	} {
		_, err := ParseExpr(ctx, d.in)
		require.Error(t, err, d.in)
		require.Equal(t, d.code, pgerror.GetPGCode(err), "%s: %v", d.in, err)
	}
}

func TestSessionBuiltins(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	ctx := eval.NewTestingEvalContext()
	ctx.Session.User = "alice"
	ctx.Session.Database = ""
	v, err := evalExpr(ctx, "CURRENT_USER()")
	require.NoError(t, err)
	require.Equal(t, "alice", v.String())
	v, err = evalExpr(ctx, "DATABASE()")
	require.NoError(t, err)
	require.True(t, v.IsNull())

	v, err = evalExpr(ctx, "CURRENT_DATE()")
	require.NoError(t, err)
	require.Equal(t, ctx.StmtTimestamp.Format("2006-01-02"), v.String())
}

func TestRandomBytes(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	ctx := eval.NewTestingEvalContext()
	e, err := ParseExpr(ctx, "RANDOM_BYTES(long:16)")
	require.NoError(t, err)
	require.False(t, e.IsConstant())
	v, err := evalExpr(ctx, "LENGTH(RANDOM_BYTES(long:16))")
	require.NoError(t, err)
	require.Equal(t, "16", v.String())

	_, err = evalExpr(ctx, "RANDOM_BYTES(long:0)")
	require.Equal(t, pgcode.InvalidParameterValue, pgerror.GetPGCode(err))
}

func TestCompressionRoundTrip(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	ctx := eval.NewTestingEvalContext()
	data := strings.Repeat("sqlscalar ", 100)
	for _, codec := range []string{"", "gzip", "zlib", "zstd", "lz4", "snappy"} {
		args := []tree.Value{tree.NewVarchar(data)}
		if codec != "" {
			args = append(args, tree.NewVarchar(codec))
		}
		c, err := evalLiterals(ctx, "COMPRESS", args...)
		require.NoError(t, err, codec)
		require.Less(t, len(c.Bytes()), len(data), codec)

		args[0] = c
		u, err := evalLiterals(ctx, "UNCOMPRESS", args...)
		require.NoError(t, err, codec)
		require.Equal(t, data, string(u.Bytes()), codec)
	}
	_, err := evalLiterals(ctx, "COMPRESS", tree.NewVarchar(data), tree.NewVarchar("brotli"))
	require.Equal(t, pgcode.InvalidParameterValue, pgerror.GetPGCode(err))

	v, err := evalLiterals(ctx, "UNCOMPRESS", tree.NewVarbinary([]byte("garbage")), tree.NewVarchar("gzip"))
	require.NoError(t, err)
	require.True(t, v.IsNull())
	require.NotEmpty(t, ctx.Warnings())
	require.True(t, errors.Is(ctx.Warnings()[0], errCorruptCompressed))
}

func TestUncompressResultTooLong(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	ctx := eval.NewTestingEvalContext()
	for _, codec := range []string{"", "gzip", "zstd"} {
		ctx.StartStatement()
		args := []tree.Value{tree.NewVarbinary(make([]byte, maxResultLength+1))}
		if codec != "" {
			args = append(args, tree.NewVarchar(codec))
		}
		c, err := evalLiterals(ctx, "COMPRESS", args...)
		require.NoError(t, err, codec)

		args[0] = c
		v, err := evalLiterals(ctx, "UNCOMPRESS", args...)
		require.NoError(t, err, codec)
		require.True(t, v.IsNull(), codec)
		require.Len(t, ctx.Warnings(), 1, codec)
		w := ctx.Warnings()[0]
		require.True(t, errors.Is(w, errUncompressTooLong), codec)
		require.False(t, errors.Is(w, errCorruptCompressed), codec)
		require.Contains(t, w.Error(), "result of UNCOMPRESS() was larger than", codec)
	}
}

// TestProperties checks algebraic properties over random operands.
func TestProperties(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	ctx := eval.NewTestingEvalContext()
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("+ commutes over LONG", prop.ForAll(
		func(a, b int64) bool {
			l, errL := evalLiterals(ctx, "+", tree.NewLong(a), tree.NewLong(b))
			r, errR := evalLiterals(ctx, "+", tree.NewLong(b), tree.NewLong(a))
			if errL != nil || errR != nil {
				return pgerror.GetPGCode(errL) == pgcode.Overflow && pgerror.GetPGCode(errR) == pgcode.Overflow
			}
			return l.Equal(r)
		},
		gen.Int64(), gen.Int64(),
	))

	properties.Property("+ commutes across types", prop.ForAll(
		func(a int32, b float64) bool {
			l, errL := evalLiterals(ctx, "+", tree.NewInt(a), tree.NewDouble(b))
			r, errR := evalLiterals(ctx, "+", tree.NewDouble(b), tree.NewInt(a))
			return errL == nil && errR == nil && l.Type() == r.Type() && l.Equal(r)
		},
		gen.Int32(), gen.Float64Range(-1e12, 1e12),
	))

	properties.Property("CAST to the own type is the identity", prop.ForAll(
		func(i int64, s string, f float64) bool {
			for _, v := range []tree.Value{tree.NewLong(i), tree.NewVarchar(s), tree.NewDouble(f)} {
				res, err := evalLiterals(ctx, "CAST", v, tree.NewVarchar(v.Type().String()))
				if err != nil || !res.Equal(v) {
					return false
				}
			}
			return true
		},
		gen.Int64(), gen.AnyString(), gen.Float64().SuchThat(func(f float64) bool { return !math.IsNaN(f) }),
	))

	properties.Property("NOT is an involution", prop.ForAll(
		func(b bool) bool {
			v, err := evalExpr(ctx, fmt.Sprintf("NOT(NOT(bool:%t))", b))
			return err == nil && v.Equal(tree.NewBool(b))
		},
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestEval(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	datadriven.Walk(t, "testdata", func(t *testing.T, path string) {
		datadriven.RunTest(t, path, func(t *testing.T, d *datadriven.TestData) string {
			ctx := eval.NewTestingEvalContext()
			if d.HasArg("div_by_zero_null") {
				ctx.Session.DivisionByZero = sessiondata.DivisionByZeroNull
			}
			if d.HasArg("collation") {
				d.ScanArgs(t, "collation", &ctx.Session.Collation)
			}
			var b strings.Builder
			for _, line := range strings.Split(d.Input, "\n") {
				if line = strings.TrimSpace(line); line == "" {
					continue
				}
				ctx.StartStatement()
				b.WriteString(formatResult(d.Cmd, ctx, line))
				b.WriteByte('\n')
			}
			return b.String()
		})
	})
}

// formatResult renders one evaluation: the value (or its type, for the
// type command), then the codes of the warnings, or the code of the
// error.
func formatResult(cmd string, ctx *eval.Context, s string) string {
	var res string
	switch cmd {
	case "eval":
		v, err := evalExpr(ctx, s)
		if err != nil {
			return fmt.Sprintf("error %s", pgerror.GetPGCode(err))
		}
		if res = v.String(); res == "" {
			res = "<empty>"
		}
	case "type":
		e, err := ParseExpr(ctx, s)
		if err != nil {
			return fmt.Sprintf("error %s", pgerror.GetPGCode(err))
		}
		res = e.ValueType().String()
	default:
		return fmt.Sprintf("unknown command %s", cmd)
	}
	for _, w := range ctx.Warnings() {
		res += fmt.Sprintf(" [warning %s]", pgerror.GetPGCode(w))
	}
	return res
}
