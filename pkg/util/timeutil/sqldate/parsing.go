// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package sqldate

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
)

// ErrInvalidDatetime is the cause of every parse failure; callers that
// resolve malformed input to NULL test for it with errors.Is.
var ErrInvalidDatetime = errors.New("invalid date/time value")

// Parse converts loosely formatted text into date/time fields. The
// accepted forms are those MySQL accepts in a date/time context:
//
//	YYYY-MM-DD, YY-MM-DD, YYYYMMDD, YYMMDD (any punctuation delimits)
//	hh:mm:ss[.frac], hh:mm, [-][D ]hh:mm:ss
//	a date and a time separated by a space or 'T'
//	YYYYMMDDhhmmss, YYMMDDhhmmss
//
// Two-digit years 00-69 are 20xx and 70-99 are 19xx. Fractional
// seconds are truncated.
func Parse(s string) (Fields, Kind, error) {
	f, k, err := parse(strings.TrimSpace(s))
	if err != nil {
		return Fields{}, 0, parseError(err, "date/time", s)
	}
	return f, k, nil
}

// ParseDate converts text into date fields. A datetime is truncated to
// its date.
func ParseDate(s string) (Fields, error) {
	f, k, err := parse(strings.TrimSpace(s))
	if err == nil && k == KindTime {
		err = errors.New("missing date")
	}
	if err != nil {
		return Fields{}, parseError(err, "date", s)
	}
	f.Hour, f.Minute, f.Second = 0, 0, 0
	return f, nil
}

// ParseDateTime converts text into datetime fields. A date gets a
// midnight time of day.
func ParseDateTime(s string) (Fields, error) {
	f, k, err := parse(strings.TrimSpace(s))
	if err == nil && k == KindTime {
		err = errors.New("missing date")
	}
	if err != nil {
		return Fields{}, parseError(err, "datetime", s)
	}
	return f, nil
}

// ParseTime converts text into time fields. Bare digits are read as
// [h]hmmss. A datetime contributes its time of day.
func ParseTime(s string) (Fields, error) {
	t := strings.TrimSpace(s)
	if isDigits(strings.TrimPrefix(t, "-")) && t != "" && t != "-" {
		n, err := strconv.ParseInt(t, 10, 64)
		if err == nil {
			if f, ok := timeFromNumber(n); ok {
				return f, nil
			}
		}
		return Fields{}, parseError(errors.New("out of range"), "time", s)
	}
	f, k, err := parse(t)
	if err == nil && k == KindDate {
		err = errors.New("missing time")
	}
	if err != nil {
		return Fields{}, parseError(err, "time", s)
	}
	if k == KindDateTime {
		f = Fields{Hour: f.Hour, Minute: f.Minute, Second: f.Second}
	}
	return f, nil
}

// FromNumber interprets an integer as a date (up to 8 digits, YYMMDD or
// YYYYMMDD) or a datetime (YYMMDDhhmmss or YYYYMMDDhhmmss).
func FromNumber(n int64) (Fields, Kind, error) {
	if n <= 0 {
		return Fields{}, 0, parseError(errors.New("out of range"), "date/time", strconv.FormatInt(n, 10))
	}
	digits := len(strconv.FormatInt(n, 10))
	var f Fields
	k := KindDate
	if digits > 8 {
		k = KindDateTime
		f.Hour, f.Minute, f.Second = int(n/10000%100), int(n/100%100), int(n%100)
		n /= 1000000
		digits -= 6
	}
	f.Year, f.Month, f.Day = int(n/10000), int(n/100%100), int(n%100)
	if digits <= 6 {
		f.Year = twoDigitYear(f.Year)
	}
	if !valid(f, k) {
		return Fields{}, 0, parseError(errors.New("out of range"), k.String(), strconv.FormatInt(n, 10))
	}
	return f, k, nil
}

// TimeFromNumber interprets an integer as [-]hhmmss.
func TimeFromNumber(n int64) (Fields, error) {
	f, ok := timeFromNumber(n)
	if !ok {
		return Fields{}, parseError(errors.New("out of range"), "time", strconv.FormatInt(n, 10))
	}
	return f, nil
}

func timeFromNumber(n int64) (Fields, bool) {
	f := DecodeTime(n)
	return f, ValidTime(f, true)
}

func parse(s string) (Fields, Kind, error) {
	if s == "" {
		return Fields{}, 0, errors.New("empty string")
	}
	if isDigits(s) {
		switch len(s) {
		case 6, 8, 12, 14:
			if len(s) == 12 || len(s) == 14 {
				// Split the time of day off so that the date part is parsed
				// the same way as a delimited one.
				date, err := parseDate(s[:len(s)-6])
				if err != nil {
					return Fields{}, 0, err
				}
				tod, err := parseTimeOfDay(s[len(s)-6:], false)
				if err != nil {
					return Fields{}, 0, err
				}
				return merge(date, tod), KindDateTime, nil
			}
			f, err := parseDate(s)
			return f, KindDate, err
		}
		return Fields{}, 0, errors.Newf("unexpected number of digits: %d", len(s))
	}

	datePart, timePart := s, ""
	if i := strings.IndexAny(s, " T"); i > 0 {
		datePart, timePart = s[:i], strings.TrimLeft(s[i+1:], " ")
	} else if strings.Contains(s, ":") {
		f, err := parseTimeOfDay(s, true)
		return f, KindTime, err
	}

	if timePart == "" {
		f, err := parseDate(datePart)
		return f, KindDate, err
	}
	if isDigits(datePart) && len(datePart) <= 2 {
		// [D ]hh:mm:ss is a TIME with a day count.
		days, _ := strconv.Atoi(datePart)
		f, err := parseTimeOfDay(timePart, true)
		if err != nil {
			return Fields{}, 0, err
		}
		f.Hour += days * 24
		if !ValidTime(f, true) {
			return Fields{}, 0, errors.New("time out of range")
		}
		return f, KindTime, nil
	}
	date, err := parseDate(datePart)
	if err != nil {
		return Fields{}, 0, err
	}
	tod, err := parseTimeOfDay(timePart, false)
	if err != nil {
		return Fields{}, 0, err
	}
	return merge(date, tod), KindDateTime, nil
}

func parseDate(s string) (Fields, error) {
	var groups []string
	if isDigits(s) {
		switch len(s) {
		case 6:
			groups = []string{s[:2], s[2:4], s[4:]}
		case 8:
			groups = []string{s[:4], s[4:6], s[6:]}
		default:
			return Fields{}, errors.Newf("unexpected number of digits: %d", len(s))
		}
	} else {
		groups = splitDigitGroups(s)
	}
	if len(groups) != 3 {
		return Fields{}, errors.Newf("expected 3 date fields, found %d", len(groups))
	}
	var f Fields
	var err error
	if f.Year, err = strconv.Atoi(groups[0]); err != nil {
		return Fields{}, err
	}
	if len(groups[0]) <= 2 {
		f.Year = twoDigitYear(f.Year)
	}
	if f.Month, err = strconv.Atoi(groups[1]); err != nil {
		return Fields{}, err
	}
	if f.Day, err = strconv.Atoi(groups[2]); err != nil {
		return Fields{}, err
	}
	if !ValidDate(f) {
		return Fields{}, errors.Newf("date out of range: %d-%d-%d", f.Year, f.Month, f.Day)
	}
	return f, nil
}

// parseTimeOfDay parses hh:mm[:ss[.frac]] or bare digits. allowLong
// admits negative values and hours past 23.
func parseTimeOfDay(s string, allowLong bool) (Fields, error) {
	var f Fields
	if allowLong && strings.HasPrefix(s, "-") {
		f.Neg = true
		s = s[1:]
	}
	if i := strings.IndexByte(s, '.'); i >= 0 {
		if !isDigits(s[i+1:]) {
			return Fields{}, errors.New("invalid fractional seconds")
		}
		s = s[:i]
	}
	var groups []string
	if isDigits(s) {
		// hhmmss, mmss or ss.
		for len(s) > 2 {
			groups = append([]string{s[len(s)-2:]}, groups...)
			s = s[:len(s)-2]
		}
		groups = append([]string{s}, groups...)
		for len(groups) < 3 {
			groups = append([]string{"0"}, groups...)
		}
	} else {
		groups = strings.Split(s, ":")
		if len(groups) == 2 {
			groups = append(groups, "0")
		}
	}
	if len(groups) != 3 {
		return Fields{}, errors.Newf("expected 3 time fields, found %d", len(groups))
	}
	vals := [3]int{}
	for i, g := range groups {
		if g == "" || !isDigits(g) {
			return Fields{}, errors.Newf("invalid time field %q", g)
		}
		v, err := strconv.Atoi(g)
		if err != nil {
			return Fields{}, err
		}
		vals[i] = v
	}
	f.Hour, f.Minute, f.Second = vals[0], vals[1], vals[2]
	if !ValidTime(f, allowLong) {
		return Fields{}, errors.Newf("time out of range: %d:%d:%d", f.Hour, f.Minute, f.Second)
	}
	return f, nil
}

func merge(date, tod Fields) Fields {
	date.Hour, date.Minute, date.Second = tod.Hour, tod.Minute, tod.Second
	return date
}

func valid(f Fields, k Kind) bool {
	switch k {
	case KindDate:
		return ValidDate(f)
	case KindTime:
		return ValidTime(f, true)
	default:
		return ValidDateTime(f)
	}
}

func twoDigitYear(y int) int {
	if y < 70 {
		return 2000 + y
	}
	if y < 100 {
		return 1900 + y
	}
	return y
}

// splitDigitGroups splits s on every run of non-digit characters.
func splitDigitGroups(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r < '0' || r > '9' })
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func parseError(err error, kind string, s string) error {
	return pgerror.WithCandidateCode(
		errors.Mark(errors.Wrapf(err, "could not parse %q as type %s", s, kind), ErrInvalidDatetime),
		pgcode.InvalidDatetimeFormat,
	)
}
