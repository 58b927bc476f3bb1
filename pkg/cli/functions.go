// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/cli/exit"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/builtins"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree"
	"github.com/dustin/go-humanize"
	"github.com/grafana/regexp"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func (c *cliContext) functionsCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "functions [flags] [<regexp>]",
		Short: "list the functions and operators",
		Long: `
List the functions and operators whose name matches the optional regular
expression, which is case-insensitive.
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var re *regexp.Regexp
			if len(args) == 1 {
				var err error
				if re, err = regexp.Compile("(?i)" + args[0]); err != nil {
					return withExitCode(errors.Wrap(err, "invalid pattern"), exit.CommandLineFlagError())
				}
			}
			var defs []*tree.FunctionDefinition
			for _, def := range builtins.Definitions() {
				if re != nil && !re.MatchString(def.Name) {
					continue
				}
				if category != "" && !strings.EqualFold(def.Category, category) {
					continue
				}
				defs = append(defs, def)
			}
			printFunctions(cmd.OutOrStdout(), defs)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list the functions of this category")
	return cmd
}

// printFunctions writes a table with one row per function.
func printFunctions(w io.Writer, defs []*tree.FunctionDefinition) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"function", "category", "volatility", "nulls", "description"})
	for _, def := range defs {
		table.Append([]string{
			def.Signature(),
			def.Category,
			def.Volatility.String(),
			def.FunctionProperties.NullTreating.String(),
			def.Info,
		})
	}
	table.Render()
	suffix := "s"
	if len(defs) == 1 {
		suffix = ""
	}
	fmt.Fprintf(w, "(%s function%s)\n", humanize.Comma(int64(len(defs))), suffix)
}
