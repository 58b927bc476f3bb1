// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/cli/exit"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/builtins"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/eval"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/normalize"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
	"github.com/cockroachdb/sqlscalar/pkg/util/log"
	"github.com/spf13/cobra"
)

func (c *cliContext) evalCmd() *cobra.Command {
	var params, fields []string
	var showMetrics bool
	cmd := &cobra.Command{
		Use:   "eval [flags] <expr>...",
		Short: "evaluate expressions",
		Long: `
Evaluate each expression and print its value. Expressions are written as
calls, with typed literals:

  sqlscalar eval 'CONCAT(varchar:a, UPPER(varchar:b))'
  sqlscalar eval '+(long:1, $1:long)' --param long:41
  sqlscalar eval 'DATE_ADD(@0:date, interval:3:MONTH)' --field date:2026-01-31

Warnings are printed to stderr after the value they concern.
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ec, err := c.newEvalContext(ctx)
			if err != nil {
				return err
			}
			if ec.Placeholders, err = parseBindings(ec, params); err != nil {
				return withExitCode(errors.Wrap(err, "invalid --param"), exit.CommandLineFlagError())
			}
			rowVals, err := parseBindings(ec, fields)
			if err != nil {
				return withExitCode(errors.Wrap(err, "invalid --field"), exit.CommandLineFlagError())
			}
			row := tree.NewRow(rowVals...)
			for _, s := range args {
				v, err := c.evalOne(ctx, ec, s, row)
				ec.RecordError(err)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), tree.NewLiteral(v))
				printWarnings(cmd.ErrOrStderr(), ec)
			}
			if showMetrics {
				return c.printMetrics(cmd.OutOrStdout())
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringArrayVar(&params, "param", nil,
		"value of the next parameter, as type:text; repeat for $1, $2, ...")
	f.StringArrayVar(&fields, "field", nil,
		"value of the next field of the input row, as type:text; repeat for @0, @1, ...")
	f.BoolVar(&showMetrics, "metrics", false, "print the error and warning counters")
	return cmd
}

// evalOne parses and evaluates a single expression as a statement of its
// own.
func (c *cliContext) evalOne(
	ctx context.Context, ec *eval.Context, s string, row tree.Row,
) (tree.Value, error) {
	ec.StartStatement()
	expr, err := c.prepare(ctx, ec, s)
	if err != nil {
		return tree.Value{}, err
	}
	if expr.NeedsRow() && row.Len() == 0 {
		return tree.Value{}, withExitCode(
			errors.Newf("%s reads the input row; pass its fields with --field", expr),
			exit.CommandLineFlagError())
	}
	ev := expr.Evaluation()
	ev.OfContext(ec)
	ev.OfRow(row)
	log.VEventf(ctx, 2, "evaluating %s", expr)
	return ev.Eval()
}

// prepare parses s and, if requested, normalizes it.
func (c *cliContext) prepare(
	ctx context.Context, ec *eval.Context, s string,
) (tree.Expression, error) {
	expr, err := builtins.ParseExpr(ec, s)
	if err != nil {
		return nil, err
	}
	if c.normalize {
		if expr, err = normalize.Expr(ctx, ec, expr); err != nil {
			return nil, err
		}
	}
	return expr, nil
}

// parseBindings converts type:text specs into values. The text "null"
// gives a NULL of the type.
func parseBindings(ec *eval.Context, specs []string) ([]tree.Value, error) {
	vals := make([]tree.Value, 0, len(specs))
	for _, spec := range specs {
		typ, text, ok := strings.Cut(spec, ":")
		if !ok {
			return nil, errors.Newf("%q must be written type:text", spec)
		}
		if strings.EqualFold(text, "null") {
			fam, ok := types.FamilyByName(typ)
			if !ok {
				return nil, errors.Newf("unknown type %q", typ)
			}
			vals = append(vals, tree.TypedNull(fam))
			continue
		}
		v, err := builtins.ParseLiteral(ec, typ, text)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func printWarnings(w io.Writer, ec *eval.Context) {
	for _, warn := range ec.Warnings() {
		fmt.Fprintf(w, "WARNING: %v (SQLSTATE %s)\n", warn, pgerror.GetPGCode(warn))
	}
	if n := ec.DroppedWarnings(); n > 0 {
		fmt.Fprintf(w, "WARNING: %d more warnings were dropped\n", n)
	}
}

// printMetrics writes the non-zero counters, one per line.
func (c *cliContext) printMetrics(w io.Writer) error {
	mfs, err := c.registry.Gather()
	if err != nil {
		return errors.Wrap(err, "gathering metrics")
	}
	var lines []string
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, l := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %g",
				mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	return nil
}
