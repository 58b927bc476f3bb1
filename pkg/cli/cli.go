// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package cli implements the sqlscalar command, which evaluates and
// explains scalar expressions from the command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/cli/exit"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/eval"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sessiondata"
	"github.com/cockroachdb/sqlscalar/pkg/util/log"
	"github.com/cockroachdb/sqlscalar/pkg/util/timeutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Main is the entry point of the sqlscalar command.
func Main() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr).Int())
}

// Run executes the command line args and reports the outcome as an exit
// code. Errors are printed to stderr.
func Run(args []string, stdout, stderr io.Writer) exit.Code {
	c, cmd := newCLI()
	defer c.cleanup()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		printError(stderr, err)
		return exitCodeOf(err)
	}
	return exit.Success()
}

// cliContext holds the state shared by the commands of a single
// invocation.
type cliContext struct {
	session      *sessiondata.SessionData
	sessionFlags *pflag.FlagSet

	configPath    string
	logConfigPath string
	verbosity     int32
	now           string
	normalize     bool

	restoreLog func()
	registry   *prometheus.Registry
	metrics    *eval.Metrics
}

// newCLI returns the sqlscalar command tree, with its own flag state.
func newCLI() (*cliContext, *cobra.Command) {
	c := &cliContext{
		session:      sessiondata.Default(),
		sessionFlags: pflag.NewFlagSet("session", pflag.ContinueOnError),
		registry:     prometheus.NewRegistry(),
	}
	c.metrics = eval.NewMetrics(c.registry)
	c.session.RegisterFlags(c.sessionFlags)

	root := &cobra.Command{
		Use:           "sqlscalar [command] (flags)",
		Short:         "evaluate SQL scalar expressions",
		Long:          `Evaluate, explain and list SQL scalar expressions and functions.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "",
		"YAML file with the session parameters; flags take precedence")
	pf.StringVar(&c.logConfigPath, "log-config", "", "YAML logging configuration file")
	pf.Int32Var(&c.verbosity, "verbosity", 0, "logging verbosity")
	pf.StringVar(&c.now, "now", "",
		"statement timestamp, in RFC 3339 format (default: the current time)")
	pf.BoolVar(&c.normalize, "normalize", false,
		"fold constant subexpressions before evaluating")
	pf.AddFlagSet(c.sessionFlags)

	cobra.EnableCommandSorting = false
	root.AddCommand(
		c.evalCmd(),
		c.explainCmd(),
		c.functionsCmd(),
	)
	return c, root
}

// cleanup restores the logging configuration in effect before setup.
func (c *cliContext) cleanup() {
	if c.restoreLog != nil {
		c.restoreLog()
		c.restoreLog = nil
	}
}

// setup loads the configuration files and validates the session.
func (c *cliContext) setup() error {
	if c.configPath != "" {
		sd, err := sessiondata.LoadFile(c.configPath)
		if err != nil {
			return withExitCode(err, exit.CommandLineFlagError())
		}
		// Flags given on the command line override the file.
		changed := map[string]string{}
		c.sessionFlags.VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				changed[f.Name] = f.Value.String()
			}
		})
		*c.session = *sd
		for name, val := range changed {
			if err := c.sessionFlags.Set(name, val); err != nil {
				return withExitCode(err, exit.CommandLineFlagError())
			}
		}
	}
	if err := c.session.Validate(); err != nil {
		return withExitCode(err, exit.CommandLineFlagError())
	}

	cfg := log.DefaultConfig()
	if c.logConfigPath != "" {
		data, err := os.ReadFile(c.logConfigPath)
		if err != nil {
			return withExitCode(errors.Wrapf(err, "reading %s", c.logConfigPath),
				exit.CommandLineFlagError())
		}
		if cfg, err = log.ParseConfig(data); err != nil {
			return withExitCode(err, exit.CommandLineFlagError())
		}
	}
	if c.verbosity != 0 {
		cfg.Verbosity = c.verbosity
	}
	restore, err := log.ApplyConfig(cfg)
	if err != nil {
		return withExitCode(err, exit.CommandLineFlagError())
	}
	c.restoreLog = restore
	return nil
}

// newEvalContext returns a Context for one statement.
func (c *cliContext) newEvalContext(ctx context.Context) (*eval.Context, error) {
	ec := eval.NewContext(ctx, c.session)
	ec.Metrics = c.metrics
	if c.now != "" {
		t, err := time.Parse(time.RFC3339Nano, c.now)
		if err != nil {
			return nil, withExitCode(errors.Wrap(err, "invalid --now"), exit.CommandLineFlagError())
		}
		ec.TimeSource = timeutil.NewManualTime(t)
	}
	ec.StartStatement()
	return ec, nil
}

type withCode struct {
	cause error
	code  exit.Code
}

func (w *withCode) Error() string { return w.cause.Error() }
func (w *withCode) Unwrap() error { return w.cause }

func withExitCode(err error, code exit.Code) error {
	return &withCode{cause: err, code: code}
}

func exitCodeOf(err error) exit.Code {
	var w *withCode
	if errors.As(err, &w) {
		return w.code
	}
	if pgerror.GetPGCode(err) != pgcode.Uncategorized {
		return exit.EvalError()
	}
	return exit.UnspecifiedError()
}

// printError reports err the way a SQL client would.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "ERROR: %v\n", err)
	if code := pgerror.GetPGCode(err); code != pgcode.Uncategorized {
		fmt.Fprintf(w, "SQLSTATE: %s\n", code)
	}
	if d := errors.FlattenDetails(err); d != "" {
		fmt.Fprintf(w, "DETAIL: %s\n", d)
	}
	if h := errors.FlattenHints(err); h != "" {
		fmt.Fprintf(w, "HINT: %s\n", h)
	}
}
