// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package sqldate contains the integer encodings of the MySQL-style
// temporal types, calendar validation and the loose string parser used
// to coerce text into dates and times.
//
// The encodings are:
//
//	DATE      day + month*32 + year*512
//	DATETIME  YYYYMMDDhhmmss
//	TIME      [-]hhmmss
//	TIMESTAMP seconds since the Unix epoch
//	YEAR      year-1900, with 0 standing for the year 0000
package sqldate

import (
	"fmt"
	"time"
)

// Fields is a broken-down date and time of day. Which fields are
// meaningful depends on the Kind the fields were produced for.
type Fields struct {
	Year, Month, Day     int
	Hour, Minute, Second int
	// Neg marks a negative TIME value.
	Neg bool
}

// Kind says which fields of a Fields are meaningful.
type Kind int

const (
	// KindDate has Year, Month and Day.
	KindDate Kind = iota + 1
	// KindTime has Hour, Minute, Second and Neg. Hour may exceed 23.
	KindTime
	// KindDateTime has every field but Neg.
	KindDateTime
)

func (k Kind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindDateTime:
		return "datetime"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MaxTimeHours bounds the magnitude of a TIME value (838:59:59).
const MaxTimeHours = 838

// EncodeDate packs the date fields of f.
func EncodeDate(f Fields) int64 {
	return int64(f.Day) + int64(f.Month)*32 + int64(f.Year)*512
}

// DecodeDate unpacks an encoded DATE.
func DecodeDate(enc int64) Fields {
	return Fields{
		Year:  int(enc / 512),
		Month: int(enc / 32 % 16),
		Day:   int(enc % 32),
	}
}

// EncodeDateTime packs f as YYYYMMDDhhmmss.
func EncodeDateTime(f Fields) int64 {
	return int64(f.Year)*10000000000 +
		int64(f.Month)*100000000 +
		int64(f.Day)*1000000 +
		int64(f.Hour)*10000 +
		int64(f.Minute)*100 +
		int64(f.Second)
}

// DecodeDateTime unpacks an encoded DATETIME.
func DecodeDateTime(enc int64) Fields {
	return Fields{
		Year:   int(enc / 10000000000),
		Month:  int(enc / 100000000 % 100),
		Day:    int(enc / 1000000 % 100),
		Hour:   int(enc / 10000 % 100),
		Minute: int(enc / 100 % 100),
		Second: int(enc % 100),
	}
}

// EncodeTime packs the time fields of f as [-]hhmmss.
func EncodeTime(f Fields) int64 {
	v := int64(f.Hour)*10000 + int64(f.Minute)*100 + int64(f.Second)
	if f.Neg {
		return -v
	}
	return v
}

// DecodeTime unpacks an encoded TIME.
func DecodeTime(enc int64) Fields {
	var f Fields
	if enc < 0 {
		f.Neg = true
		enc = -enc
	}
	f.Hour = int(enc / 10000)
	f.Minute = int(enc / 100 % 100)
	f.Second = int(enc % 100)
	return f
}

// EncodeYear encodes a calendar year.
func EncodeYear(year int) int64 {
	if year == 0 {
		return 0
	}
	return int64(year) - 1900
}

// DecodeYear decodes an encoded YEAR.
func DecodeYear(enc int64) int {
	if enc == 0 {
		return 0
	}
	return int(enc) + 1900
}

// TimeSeconds returns the signed number of seconds a TIME denotes.
func (f Fields) TimeSeconds() int64 {
	s := int64(f.Hour)*3600 + int64(f.Minute)*60 + int64(f.Second)
	if f.Neg {
		return -s
	}
	return s
}

// TimeFromSeconds builds TIME fields from a signed second count.
func TimeFromSeconds(secs int64) Fields {
	var f Fields
	if secs < 0 {
		f.Neg = true
		secs = -secs
	}
	f.Hour = int(secs / 3600)
	f.Minute = int(secs / 60 % 60)
	f.Second = int(secs % 60)
	return f
}

// IsLeapYear reports whether year has a February 29th.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days of the month.
func DaysInMonth(year, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// ValidDate reports whether the date fields name a calendar day.
func ValidDate(f Fields) bool {
	return f.Year >= 0 && f.Year <= 9999 &&
		f.Month >= 1 && f.Month <= 12 &&
		f.Day >= 1 && f.Day <= DaysInMonth(f.Year, f.Month)
}

// ValidTime reports whether the time-of-day fields are in range. The
// hour may exceed 23 up to MaxTimeHours when allowLong is set.
func ValidTime(f Fields, allowLong bool) bool {
	maxHour := 23
	if allowLong {
		maxHour = MaxTimeHours
	}
	return f.Hour >= 0 && f.Hour <= maxHour &&
		f.Minute >= 0 && f.Minute < 60 &&
		f.Second >= 0 && f.Second < 60
}

// ValidDateTime reports whether f names an instant.
func ValidDateTime(f Fields) bool {
	return ValidDate(f) && ValidTime(f, false)
}

// ToTime converts the date and time-of-day fields to a time.Time in loc.
func (f Fields) ToTime(loc *time.Location) time.Time {
	return time.Date(f.Year, time.Month(f.Month), f.Day, f.Hour, f.Minute, f.Second, 0, loc)
}

// FromTime breaks t down into date and time-of-day fields.
func FromTime(t time.Time) Fields {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	return Fields{Year: y, Month: int(m), Day: d, Hour: hh, Minute: mm, Second: ss}
}

// TimestampToFields breaks a Unix timestamp down in loc.
func TimestampToFields(unix int64, loc *time.Location) Fields {
	return FromTime(time.Unix(unix, 0).In(loc))
}

// FieldsToTimestamp converts date and time-of-day fields in loc to a
// Unix timestamp.
func FieldsToTimestamp(f Fields, loc *time.Location) int64 {
	return f.ToTime(loc).Unix()
}

// unixEpochDayNumber is the day number of 1970-01-01.
const unixEpochDayNumber = 719528

// DayNumber returns the number of days since the year 0000, so that
// 0000-01-01 is day 1.
func DayNumber(f Fields) int64 {
	t := time.Date(f.Year, time.Month(f.Month), f.Day, 0, 0, 0, 0, time.UTC)
	return floorDiv(t.Unix(), 86400) + unixEpochDayNumber
}

// FromDayNumber is the inverse of DayNumber.
func FromDayNumber(n int64) Fields {
	t := time.Unix((n-unixEpochDayNumber)*86400, 0).UTC()
	f := FromTime(t)
	f.Hour, f.Minute, f.Second = 0, 0, 0
	return f
}

// AddDays moves the date fields of f by n days. Time-of-day fields are
// preserved.
func AddDays(f Fields, n int64) Fields {
	t := f.ToTime(time.UTC).AddDate(0, 0, int(n))
	r := FromTime(t)
	return r
}

// Weekday returns the day of the week, Sunday being 0.
func Weekday(f Fields) int {
	return int(f.ToTime(time.UTC).Weekday())
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
