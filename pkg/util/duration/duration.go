// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package duration

import (
	"bytes"
	"fmt"
	"time"

	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/util/arith"
)

const (
	// MillisPerSec is the amount of milliseconds in a second.
	MillisPerSec = 1000
	// SecsPerMinute is the amount of seconds in a minute.
	SecsPerMinute = 60
	// SecsPerHour is the amount of seconds in an hour.
	SecsPerHour = 3600
	// SecsPerDay is the amount of seconds in a day.
	SecsPerDay = 86400
	// MillisPerDay is the amount of milliseconds in a day.
	MillisPerDay = SecsPerDay * MillisPerSec
	// MonthsPerYear is the amount of months in the year.
	MonthsPerYear = 12
)

// ErrOverflow is returned when interval arithmetic leaves the int64
// range.
var ErrOverflow = pgerror.New(pgcode.Overflow, "interval out of range")

// Duration is a SQL interval. Month intervals and millisecond intervals
// are distinct types, so at most one of the two fields is set for
// values that come out of SQL; the struct allows both so that Add can
// apply a compound interval in one go.
type Duration struct {
	Months int64
	Millis int64
}

// MakeDuration returns a Duration with the given fields.
func MakeDuration(millis, months int64) Duration {
	return Duration{Months: months, Millis: millis}
}

// FromMonths returns a month interval.
func FromMonths(months int64) Duration {
	return Duration{Months: months}
}

// FromMillis returns a millisecond interval.
func FromMillis(millis int64) Duration {
	return Duration{Millis: millis}
}

// IsMonths reports whether d counts calendar months rather than
// elapsed time.
func (d Duration) IsMonths() bool {
	return d.Months != 0 && d.Millis == 0
}

// Neg returns -d.
func (d Duration) Neg() Duration {
	return Duration{Months: -d.Months, Millis: -d.Millis}
}

// Add returns d+x.
func (d Duration) Add(x Duration) (Duration, error) {
	m, ok1 := arith.AddWithOverflow(d.Months, x.Months)
	ms, ok2 := arith.AddWithOverflow(d.Millis, x.Millis)
	if !ok1 || !ok2 {
		return Duration{}, ErrOverflow
	}
	return Duration{Months: m, Millis: ms}, nil
}

// Sub returns d-x.
func (d Duration) Sub(x Duration) (Duration, error) {
	m, ok1 := arith.SubWithOverflow(d.Months, x.Months)
	ms, ok2 := arith.SubWithOverflow(d.Millis, x.Millis)
	if !ok1 || !ok2 {
		return Duration{}, ErrOverflow
	}
	return Duration{Months: m, Millis: ms}, nil
}

// Mul returns d*x.
func (d Duration) Mul(x int64) (Duration, error) {
	m, ok1 := arith.MulWithOverflow(d.Months, x)
	ms, ok2 := arith.MulWithOverflow(d.Millis, x)
	if !ok1 || !ok2 {
		return Duration{}, ErrOverflow
	}
	return Duration{Months: m, Millis: ms}, nil
}

// Compare returns an integer representing the relative length of two
// Durations. Months count as 30 days for the purpose of ordering.
func (d Duration) Compare(x Duration) int {
	l := d.Months*30*MillisPerDay + d.Millis
	r := x.Months*30*MillisPerDay + x.Millis
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

// Format emits a string representation of a Duration to a Buffer.
func (d Duration) Format(buf *bytes.Buffer) {
	if d.Months == 0 && d.Millis == 0 {
		buf.WriteString("00:00:00")
		return
	}
	wrote := false
	if d.Months != 0 {
		years, months := d.Months/MonthsPerYear, d.Months%MonthsPerYear
		if years != 0 {
			fmt.Fprintf(buf, "%d year%s", years, isPlural(years))
			wrote = true
		}
		if months != 0 {
			if wrote {
				buf.WriteByte(' ')
			}
			fmt.Fprintf(buf, "%d mon%s", months, isPlural(months))
			wrote = true
		}
	}
	if d.Millis != 0 {
		ms := d.Millis
		neg := ms < 0
		if neg {
			ms = -ms
		}
		days := ms / MillisPerDay
		ms %= MillisPerDay
		if days != 0 {
			if wrote {
				buf.WriteByte(' ')
			}
			if neg {
				buf.WriteByte('-')
			}
			fmt.Fprintf(buf, "%d day%s", days, isPlural(days))
			wrote = true
		}
		if ms != 0 {
			if wrote {
				buf.WriteByte(' ')
			}
			if neg {
				buf.WriteByte('-')
			}
			secs := ms / MillisPerSec
			fmt.Fprintf(buf, "%02d:%02d:%02d", secs/SecsPerHour, secs/SecsPerMinute%60, secs%60)
			if frac := ms % MillisPerSec; frac != 0 {
				fmt.Fprintf(buf, ".%03d", frac)
			}
		}
	}
}

func (d Duration) String() string {
	var buf bytes.Buffer
	d.Format(&buf)
	return buf.String()
}

func isPlural(i int64) string {
	if i == 1 || i == -1 {
		return ""
	}
	return "s"
}

// Add returns the time t+d. Months are added first, clamping the day to
// the last day of the resulting month (2009-01-31 + 1 month is
// 2009-02-28); milliseconds are then added to the instant.
func Add(t time.Time, d Duration) time.Time {
	if d.Months == 0 {
		return t.Add(time.Duration(d.Millis) * time.Millisecond)
	}
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	total := int64(year)*MonthsPerYear + int64(month) - 1 + d.Months
	newYear, newMonth := int(floorDiv(total, MonthsPerYear)), int(floorMod(total, MonthsPerYear))+1
	if last := daysIn(newYear, time.Month(newMonth)); day > last {
		day = last
	}
	res := time.Date(newYear, time.Month(newMonth), day, hour, min, sec, t.Nanosecond(), t.Location())
	return res.Add(time.Duration(d.Millis) * time.Millisecond)
}

func daysIn(year int, month time.Month) int {
	// Take the first day of the month, add a month and subtract a day.
	// This returns the last day of the month, which the number of days in the month.
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

// MonthsBetween returns the number of whole months from a to b. A month
// only counts once its day of month and time of day have been reached,
// so 2005-12-07 to 2006-11-06 is 10 months and 2005-12-07 to
// 2006-11-07 is 11. The result is negative when b is before a.
func MonthsBetween(a, b time.Time) int64 {
	ay, am, _ := a.Date()
	by, bm, _ := b.Date()
	months := (int64(by)-int64(ay))*MonthsPerYear + int64(bm) - int64(am)
	// Compare the position within the month.
	aRest := withinMonth(a)
	bRest := withinMonth(b)
	if months > 0 && bRest < aRest {
		months--
	} else if months < 0 && bRest > aRest {
		months++
	}
	return months
}

// withinMonth returns the offset of t from the start of its month.
func withinMonth(t time.Time) time.Duration {
	y, m, _ := t.Date()
	return t.Sub(time.Date(y, m, 1, 0, 0, 0, 0, t.Location()))
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}
