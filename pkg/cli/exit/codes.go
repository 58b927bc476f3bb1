// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package exit defines the process exit codes of the sqlscalar command.
package exit

// Code is a process exit code.
type Code struct {
	code int
}

// String implements fmt.Stringer.
func (c Code) String() string {
	switch c.code {
	case 0:
		return "success"
	case 1:
		return "unspecified error"
	case 4:
		return "command-line flag error"
	case 10:
		return "evaluation error"
	}
	return "unknown"
}

// Int returns the integer value of the code.
func (c Code) Int() int { return c.code }

// Success (0) represents a normal process termination.
func Success() Code { return Code{0} }

// UnspecifiedError (1) indicates the process has terminated with an
// error condition that is not an evaluation error.
func UnspecifiedError() Code { return Code{1} }

// CommandLineFlagError (4) indicates there was an error in the
// command-line parameters or the configuration file.
func CommandLineFlagError() Code { return Code{4} }

// EvalError (10) indicates that an expression could not be parsed or
// its evaluation raised an error.
func EvalError() Code { return Code{10} }
