// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/cli/exit"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree"
	"github.com/spf13/cobra"
)

func (c *cliContext) explainCmd() *cobra.Command {
	var verbose bool
	var format string
	cmd := &cobra.Command{
		Use:   "explain [flags] <expr>",
		Short: "show the tree of an expression",
		Long: `
Show the tree an expression is composed into, with the type of every
node. With --verbose, also show whether each node is constant, reads the
row or the parameters, and is contaminated by NULL.
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ec, err := c.newEvalContext(ctx)
			if err != nil {
				return err
			}
			expr, err := c.prepare(ctx, ec, args[0])
			if err != nil {
				return err
			}
			ex := expr.Explain(tree.ExplainContext{Verbose: verbose})
			switch format {
			case "yaml":
				out, err := ex.YAML()
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
			case "text":
				fmt.Fprint(cmd.OutOrStdout(), ex.String())
			default:
				return withExitCode(errors.Newf("unknown format %q", format), exit.CommandLineFlagError())
			}
			printWarnings(cmd.ErrOrStderr(), ec)
			return nil
		},
	}
	cmd.Flags().BoolVar(&verbose, "verbose", false, "show the evaluation properties of every node")
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or text")
	return cmd
}
