// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package duration

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/util/arith"
)

// Unit is an interval unit keyword.
type Unit int

const (
	UnitMicrosecond Unit = iota + 1
	UnitSecond
	UnitMinute
	UnitHour
	UnitDay
	UnitWeek
	UnitMonth
	UnitQuarter
	UnitYear
	UnitSecondMicrosecond
	UnitMinuteMicrosecond
	UnitMinuteSecond
	UnitHourMicrosecond
	UnitHourSecond
	UnitHourMinute
	UnitDayMicrosecond
	UnitDaySecond
	UnitDayMinute
	UnitDayHour
	UnitYearMonth
)

var unitNames = map[Unit]string{
	UnitMicrosecond:       "MICROSECOND",
	UnitSecond:            "SECOND",
	UnitMinute:            "MINUTE",
	UnitHour:              "HOUR",
	UnitDay:               "DAY",
	UnitWeek:              "WEEK",
	UnitMonth:             "MONTH",
	UnitQuarter:           "QUARTER",
	UnitYear:              "YEAR",
	UnitSecondMicrosecond: "SECOND_MICROSECOND",
	UnitMinuteMicrosecond: "MINUTE_MICROSECOND",
	UnitMinuteSecond:      "MINUTE_SECOND",
	UnitHourMicrosecond:   "HOUR_MICROSECOND",
	UnitHourSecond:        "HOUR_SECOND",
	UnitHourMinute:        "HOUR_MINUTE",
	UnitDayMicrosecond:    "DAY_MICROSECOND",
	UnitDaySecond:         "DAY_SECOND",
	UnitDayMinute:         "DAY_MINUTE",
	UnitDayHour:           "DAY_HOUR",
	UnitYearMonth:         "YEAR_MONTH",
}

func (u Unit) String() string {
	if n, ok := unitNames[u]; ok {
		return n
	}
	return "UNKNOWN"
}

// SafeValue implements redact.SafeValue.
func (u Unit) SafeValue() {}

// ParseUnit looks up a unit keyword, case-insensitively. Plural forms
// ("DAYS") are accepted.
func ParseUnit(s string) (Unit, error) {
	n := strings.ToUpper(strings.TrimSpace(s))
	for u, name := range unitNames {
		if n == name || n == name+"S" {
			return u, nil
		}
	}
	return 0, pgerror.Newf(pgcode.InvalidParameterValue, "unknown interval unit: %q", s)
}

// IsMonths reports whether the unit produces a month interval.
func (u Unit) IsMonths() bool {
	switch u {
	case UnitMonth, UnitQuarter, UnitYear, UnitYearMonth:
		return true
	}
	return false
}

// millisPer gives the length of the simple time units.
var millisPer = map[Unit]int64{
	UnitSecond: MillisPerSec,
	UnitMinute: SecsPerMinute * MillisPerSec,
	UnitHour:   SecsPerHour * MillisPerSec,
	UnitDay:    MillisPerDay,
	UnitWeek:   7 * MillisPerDay,
}

// FromInt returns n units of the given simple unit.
func FromInt(n int64, unit Unit) (Duration, error) {
	switch unit {
	case UnitMicrosecond:
		return FromMillis(n / 1000), nil
	case UnitMonth, UnitQuarter, UnitYear:
		per := map[Unit]int64{UnitMonth: 1, UnitQuarter: 3, UnitYear: MonthsPerYear}[unit]
		m, ok := arith.MulWithOverflow(n, per)
		if !ok {
			return Duration{}, ErrOverflow
		}
		return FromMonths(m), nil
	}
	per, ok := millisPer[unit]
	if !ok {
		return Duration{}, pgerror.Newf(pgcode.InvalidIntervalFormat,
			"interval unit %s requires a string value", unit)
	}
	ms, ok := arith.MulWithOverflow(n, per)
	if !ok {
		return Duration{}, ErrOverflow
	}
	return FromMillis(ms), nil
}

// compoundParts lists, for each compound unit, the simple units of its
// fields from most to least significant.
var compoundParts = map[Unit][]Unit{
	UnitSecondMicrosecond: {UnitSecond, UnitMicrosecond},
	UnitMinuteMicrosecond: {UnitMinute, UnitSecond, UnitMicrosecond},
	UnitMinuteSecond:      {UnitMinute, UnitSecond},
	UnitHourMicrosecond:   {UnitHour, UnitMinute, UnitSecond, UnitMicrosecond},
	UnitHourSecond:        {UnitHour, UnitMinute, UnitSecond},
	UnitHourMinute:        {UnitHour, UnitMinute},
	UnitDayMicrosecond:    {UnitDay, UnitHour, UnitMinute, UnitSecond, UnitMicrosecond},
	UnitDaySecond:         {UnitDay, UnitHour, UnitMinute, UnitSecond},
	UnitDayMinute:         {UnitDay, UnitHour, UnitMinute},
	UnitDayHour:           {UnitDay, UnitHour},
	UnitYearMonth:         {UnitYear, UnitMonth},
}

// ParseInterval parses the value of an INTERVAL expression given as a
// string, such as '1:30' HOUR_MINUTE or '2-6' YEAR_MONTH. Any run of
// punctuation or spaces separates fields. Fewer fields than the unit
// has are aligned to the right ('5' HOUR_MINUTE is five minutes), and a
// leading '-' negates the whole interval. A microsecond field is read
// as a fraction of a second.
func ParseInterval(s string, unit Unit) (Duration, error) {
	t := strings.TrimSpace(s)
	neg := strings.HasPrefix(t, "-")
	if neg {
		t = strings.TrimSpace(t[1:])
	}
	parts, ok := compoundParts[unit]
	if !ok {
		return parseSimple(s, t, neg, unit)
	}
	fields, fieldErr := splitFields(t)
	if fieldErr || len(fields) == 0 || len(fields) > len(parts) {
		return Duration{}, invalidInterval(s, unit)
	}
	// Align to the right.
	parts = parts[len(parts)-len(fields):]

	var d Duration
	for i, u := range parts {
		f := fields[i]
		var part Duration
		var err error
		if u == UnitMicrosecond && len(parts) > 1 {
			part, err = fractionMicros(f)
		} else {
			var n int64
			n, err = strconv.ParseInt(f, 10, 64)
			if err == nil {
				part, err = FromInt(n, u)
			}
		}
		if err != nil {
			return Duration{}, invalidInterval(s, unit)
		}
		if d, err = d.Add(part); err != nil {
			return Duration{}, err
		}
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// parseSimple parses the value of a single-unit interval. Seconds may
// carry a fraction; other units drop it.
func parseSimple(orig, t string, neg bool, unit Unit) (Duration, error) {
	if neg {
		t = "-" + t
	}
	if n, err := strconv.ParseInt(t, 10, 64); err == nil {
		return FromInt(n, unit)
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return Duration{}, invalidInterval(orig, unit)
	}
	if unit == UnitSecond {
		ms := math.Round(f * MillisPerSec)
		if math.Abs(ms) > math.MaxInt64/2 {
			return Duration{}, ErrOverflow
		}
		return FromMillis(int64(ms)), nil
	}
	if math.Abs(f) > math.MaxInt64/2 {
		return Duration{}, ErrOverflow
	}
	return FromInt(int64(f), unit)
}

// fractionMicros reads the digits after the decimal point of a seconds
// value, so that "5" means half a second.
func fractionMicros(f string) (Duration, error) {
	for len(f) < 6 {
		f += "0"
	}
	n, err := strconv.ParseInt(f[:6], 10, 64)
	if err != nil {
		return Duration{}, err
	}
	return FromMillis(n / 1000), nil
}

// splitFields returns the digit runs of s. The second result is true if
// s contains characters other than digits and separators.
func splitFields(s string) ([]string, bool) {
	var fields []string
	start := -1
	for i := 0; i <= len(s); i++ {
		isDigit := i < len(s) && s[i] >= '0' && s[i] <= '9'
		if isDigit {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			fields = append(fields, s[start:i])
			start = -1
		}
		if i < len(s) && !isSeparator(s[i]) {
			return nil, true
		}
	}
	return fields, false
}

func isSeparator(c byte) bool {
	switch c {
	case ' ', ':', '-', '.', '_', '/', ',', '\t':
		return true
	}
	return false
}

func invalidInterval(s string, unit Unit) error {
	return pgerror.Newf(pgcode.InvalidIntervalFormat,
		"invalid interval value %q for unit %s", s, unit)
}

// Diff counts the whole units from a to b, as TIMESTAMPDIFF does.
// Month-based units use MonthsBetween; the others truncate the elapsed
// time.
func Diff(unit Unit, a, b time.Time) (int64, error) {
	switch unit {
	case UnitMonth:
		return MonthsBetween(a, b), nil
	case UnitQuarter:
		return MonthsBetween(a, b) / 3, nil
	case UnitYear:
		return MonthsBetween(a, b) / MonthsPerYear, nil
	case UnitMicrosecond:
		return b.Sub(a).Microseconds(), nil
	}
	per, ok := millisPer[unit]
	if !ok {
		return 0, pgerror.Newf(pgcode.InvalidParameterValue, "invalid unit for TIMESTAMPDIFF: %s", unit)
	}
	// Work in seconds to stay clear of time.Duration's 292 year range.
	secs := b.Unix() - a.Unix()
	return secs * MillisPerSec / per, nil
}
