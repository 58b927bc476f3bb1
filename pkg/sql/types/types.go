// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package types defines the closed set of semantic types that scalar
// values and expressions carry, and the promotion rules between them.
package types

import (
	"strings"

	"github.com/cockroachdb/redact"
)

// Family identifies the semantic type of a value. The set is closed;
// code that switches over families is expected to be exhaustive.
type Family int32

const (
	// UnsupportedFamily is the sentinel for types the engine cannot
	// process.
	UnsupportedFamily Family = iota
	// NullFamily is the type of the untyped NULL literal.
	NullFamily
	BoolFamily
	// IntFamily is a signed 32-bit integer.
	IntFamily
	// LongFamily is a signed 64-bit integer.
	LongFamily
	// UIntFamily is an unsigned 32-bit integer.
	UIntFamily
	// UBigIntFamily is an arbitrary precision non-negative integer.
	UBigIntFamily
	FloatFamily
	UFloatFamily
	DoubleFamily
	UDoubleFamily
	DecimalFamily
	VarcharFamily
	TextFamily
	VarbinaryFamily
	// DateFamily is encoded as day + month*32 + year*512.
	DateFamily
	// TimeFamily is encoded as a signed hhmmss integer.
	TimeFamily
	// DateTimeFamily is encoded as a YYYYMMDDhhmmss integer.
	DateTimeFamily
	// TimestampFamily is encoded as Unix seconds.
	TimestampFamily
	// YearFamily is encoded as year-1900; 0 stands for the year 0000.
	YearFamily
	IntervalMillisFamily
	IntervalMonthFamily

	numFamilies
)

var familyNames = [...]string{
	UnsupportedFamily:    "UNSUPPORTED",
	NullFamily:           "NULL",
	BoolFamily:           "BOOL",
	IntFamily:            "INT",
	LongFamily:           "LONG",
	UIntFamily:           "U_INT",
	UBigIntFamily:        "U_BIGINT",
	FloatFamily:          "FLOAT",
	UFloatFamily:         "U_FLOAT",
	DoubleFamily:         "DOUBLE",
	UDoubleFamily:        "U_DOUBLE",
	DecimalFamily:        "DECIMAL",
	VarcharFamily:        "VARCHAR",
	TextFamily:           "TEXT",
	VarbinaryFamily:      "VARBINARY",
	DateFamily:           "DATE",
	TimeFamily:           "TIME",
	DateTimeFamily:       "DATETIME",
	TimestampFamily:      "TIMESTAMP",
	YearFamily:           "YEAR",
	IntervalMillisFamily: "INTERVAL_MILLIS",
	IntervalMonthFamily:  "INTERVAL_MONTH",
}

func (f Family) String() string {
	if f < 0 || f >= numFamilies {
		return "UNKNOWN"
	}
	return familyNames[f]
}

// SafeValue implements redact.SafeValue.
func (f Family) SafeValue() {}

var _ redact.SafeValue = Family(0)

// AllFamilies returns every family, in declaration order.
func AllFamilies() []Family {
	r := make([]Family, 0, numFamilies)
	for f := UnsupportedFamily; f < numFamilies; f++ {
		r = append(r, f)
	}
	return r
}

// FamilyByName looks up a family by its (case-insensitive) name. A few
// SQL spellings are accepted as aliases.
func FamilyByName(name string) (Family, bool) {
	n := strings.ToUpper(strings.TrimSpace(name))
	switch n {
	case "BIGINT":
		return LongFamily, true
	case "INTEGER":
		return IntFamily, true
	case "BOOLEAN":
		return BoolFamily, true
	case "CHAR", "STRING":
		return VarcharFamily, true
	case "BINARY", "BYTES":
		return VarbinaryFamily, true
	case "REAL":
		return FloatFamily, true
	case "NUMERIC":
		return DecimalFamily, true
	}
	for f := UnsupportedFamily; f < numFamilies; f++ {
		if familyNames[f] == n {
			return f, true
		}
	}
	return UnsupportedFamily, false
}

// IsIntegral is true for the exact integer families.
func (f Family) IsIntegral() bool {
	switch f {
	case IntFamily, LongFamily, UIntFamily, UBigIntFamily:
		return true
	}
	return false
}

// IsApproximate is true for the floating point families.
func (f Family) IsApproximate() bool {
	switch f {
	case FloatFamily, UFloatFamily, DoubleFamily, UDoubleFamily:
		return true
	}
	return false
}

// IsNumeric is true for integers, floating point and decimals.
func (f Family) IsNumeric() bool {
	return f.IsIntegral() || f.IsApproximate() || f == DecimalFamily
}

// IsUnsigned is true for the unsigned numeric families.
func (f Family) IsUnsigned() bool {
	switch f {
	case UIntFamily, UBigIntFamily, UFloatFamily, UDoubleFamily:
		return true
	}
	return false
}

// IsText is true for the character string families.
func (f Family) IsText() bool {
	return f == VarcharFamily || f == TextFamily
}

// IsString is true for character and binary strings.
func (f Family) IsString() bool {
	return f.IsText() || f == VarbinaryFamily
}

// IsDateTime is true for the calendar and clock families.
func (f Family) IsDateTime() bool {
	switch f {
	case DateFamily, TimeFamily, DateTimeFamily, TimestampFamily, YearFamily:
		return true
	}
	return false
}

// IsInterval is true for the two interval families.
func (f Family) IsInterval() bool {
	return f == IntervalMillisFamily || f == IntervalMonthFamily
}
