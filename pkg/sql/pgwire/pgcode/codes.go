// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package pgcode

import "github.com/cockroachdb/redact"

// Code is a SQLSTATE error code. Codes are five characters: a two
// character class followed by a three character subclass.
type Code struct {
	code string
}

// MakeCode converts a string into a Code.
func MakeCode(s string) Code {
	return Code{code: s}
}

// String returns the underlying SQLSTATE string.
func (c Code) String() string {
	return c.code
}

// SafeValue implements redact.SafeValue.
func (c Code) SafeValue() {}

var _ redact.SafeValue = Code{}

// Class returns the two character class of the code.
func (c Code) Class() string {
	if len(c.code) < 2 {
		return c.code
	}
	return c.code[:2]
}

// Codes for the evaluation error taxonomy. Where a subclass is
// engine-specific it follows the 5xx numbering of the SQL layer.
var (
	// Class 22 - Data Exception
	NumericValueOutOfRange = MakeCode("22003")
	NullValueNotAllowed    = MakeCode("22004")
	InvalidIntervalFormat  = MakeCode("22006")
	InvalidDatetimeFormat  = MakeCode("22007")
	DatetimeFieldOverflow  = MakeCode("22008")
	DivisionByZero         = MakeCode("22012")
	InvalidCharToNum       = MakeCode("22018")
	InvalidParameterValue  = MakeCode("22023")
	InvalidArgumentType    = MakeCode("22503")

	// Class 42 - Syntax Error or Access Rule Violation
	Syntax            = MakeCode("42601")
	WrongArity        = MakeCode("4250C")
	UndefinedFunction = MakeCode("4250D")

	// Class 55 - Object Not In Prerequisite State
	Overflow = MakeCode("55004")

	// Class XX - Internal Error
	Internal = MakeCode("XX000")

	// Uncategorized is used for errors that flow out to a client
	// when there's no code known yet.
	Uncategorized = MakeCode("XXUUU")
)
