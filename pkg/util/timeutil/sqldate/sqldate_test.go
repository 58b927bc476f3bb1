// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package sqldate

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/stretchr/testify/require"
)

func TestEncodings(t *testing.T) {
	f := Fields{Year: 2009, Month: 12, Day: 12, Hour: 10, Minute: 5, Second: 7}
	require.Equal(t, int64(12+12*32+2009*512), EncodeDate(f))
	require.Equal(t, Fields{Year: 2009, Month: 12, Day: 12}, DecodeDate(EncodeDate(f)))
	require.Equal(t, int64(20091212100507), EncodeDateTime(f))
	require.Equal(t, f, DecodeDateTime(EncodeDateTime(f)))

	tm := Fields{Hour: 838, Minute: 59, Second: 59, Neg: true}
	require.Equal(t, int64(-8385959), EncodeTime(tm))
	require.Equal(t, tm, DecodeTime(EncodeTime(tm)))
	require.Equal(t, int64(-(838*3600 + 59*60 + 59)), tm.TimeSeconds())
	require.Equal(t, tm, TimeFromSeconds(tm.TimeSeconds()))

	require.Equal(t, int64(106), EncodeYear(2006))
	require.Equal(t, 2006, DecodeYear(106))
	require.Equal(t, int64(0), EncodeYear(0))
	require.Equal(t, 0, DecodeYear(0))
}

func TestValidation(t *testing.T) {
	require.True(t, ValidDate(Fields{Year: 2000, Month: 2, Day: 29}))
	require.False(t, ValidDate(Fields{Year: 1900, Month: 2, Day: 29}))
	require.False(t, ValidDate(Fields{Year: 2009, Month: 30, Day: 1}))
	require.False(t, ValidDate(Fields{Year: 2009, Month: 4, Day: 31}))
	require.False(t, ValidDate(Fields{}))
	require.True(t, ValidTime(Fields{Hour: 100}, true))
	require.False(t, ValidTime(Fields{Hour: 100}, false))
	require.False(t, ValidTime(Fields{Minute: 60}, true))
}

func TestParse(t *testing.T) {
	testData := []struct {
		in   string
		kind Kind
		exp  Fields
	}{
		{"2009-12-12", KindDate, Fields{Year: 2009, Month: 12, Day: 12}},
		{" 2009/1/2 ", KindDate, Fields{Year: 2009, Month: 1, Day: 2}},
		{"09-12-12", KindDate, Fields{Year: 2009, Month: 12, Day: 12}},
		{"99.12.31", KindDate, Fields{Year: 1999, Month: 12, Day: 31}},
		{"20091212", KindDate, Fields{Year: 2009, Month: 12, Day: 12}},
		{"091212", KindDate, Fields{Year: 2009, Month: 12, Day: 12}},
		{"2009-12-12 10:05:07", KindDateTime, Fields{Year: 2009, Month: 12, Day: 12, Hour: 10, Minute: 5, Second: 7}},
		{"2009-12-12T10:05:07.999", KindDateTime, Fields{Year: 2009, Month: 12, Day: 12, Hour: 10, Minute: 5, Second: 7}},
		{"20091212100507", KindDateTime, Fields{Year: 2009, Month: 12, Day: 12, Hour: 10, Minute: 5, Second: 7}},
		{"10:05:07", KindTime, Fields{Hour: 10, Minute: 5, Second: 7}},
		{"10:05", KindTime, Fields{Hour: 10, Minute: 5}},
		{"-838:59:59", KindTime, Fields{Hour: 838, Minute: 59, Second: 59, Neg: true}},
		{"2 10:00:00", KindTime, Fields{Hour: 58}},
	}
	for _, d := range testData {
		f, k, err := Parse(d.in)
		require.NoError(t, err, d.in)
		require.Equal(t, d.kind, k, d.in)
		require.Equal(t, d.exp, f, d.in)
	}

	for _, bad := range []string{"", "abc", "2009-30-12", "2009-04-31", "2009-12", "10:61:00", "1234567", "2009-12-12 25:00:00"} {
		_, _, err := Parse(bad)
		require.Error(t, err, bad)
		require.True(t, errors.Is(err, ErrInvalidDatetime), bad)
		require.Equal(t, pgcode.InvalidDatetimeFormat, pgerror.GetPGCode(err), bad)
	}
}

func TestParseVariants(t *testing.T) {
	d, err := ParseDate("2009-12-12 10:05:07")
	require.NoError(t, err)
	require.Equal(t, Fields{Year: 2009, Month: 12, Day: 12}, d)

	_, err = ParseDate("10:05:07")
	require.Error(t, err)

	tm, err := ParseTime("100507")
	require.NoError(t, err)
	require.Equal(t, Fields{Hour: 10, Minute: 5, Second: 7}, tm)

	tm, err = ParseTime("2009-12-12 10:05:07")
	require.NoError(t, err)
	require.Equal(t, Fields{Hour: 10, Minute: 5, Second: 7}, tm)

	dt, err := ParseDateTime("2009-12-12")
	require.NoError(t, err)
	require.Equal(t, Fields{Year: 2009, Month: 12, Day: 12}, dt)
}

func TestFromNumber(t *testing.T) {
	f, k, err := FromNumber(20091212)
	require.NoError(t, err)
	require.Equal(t, KindDate, k)
	require.Equal(t, Fields{Year: 2009, Month: 12, Day: 12}, f)

	f, k, err = FromNumber(991231)
	require.NoError(t, err)
	require.Equal(t, KindDate, k)
	require.Equal(t, 1999, f.Year)

	f, k, err = FromNumber(20091212100507)
	require.NoError(t, err)
	require.Equal(t, KindDateTime, k)
	require.Equal(t, Fields{Year: 2009, Month: 12, Day: 12, Hour: 10, Minute: 5, Second: 7}, f)

	_, _, err = FromNumber(20093012)
	require.Error(t, err)

	tm, err := TimeFromNumber(-120000)
	require.NoError(t, err)
	require.Equal(t, Fields{Hour: 12, Neg: true}, tm)
}

func TestDayNumbers(t *testing.T) {
	require.Equal(t, int64(719528), DayNumber(Fields{Year: 1970, Month: 1, Day: 1}))
	require.Equal(t, int64(734118), DayNumber(Fields{Year: 2009, Month: 12, Day: 12}))
	require.Equal(t, Fields{Year: 2009, Month: 12, Day: 12}, FromDayNumber(734118))

	require.Equal(t, Fields{Year: 2009, Month: 12, Day: 24}, AddDays(Fields{Year: 2009, Month: 12, Day: 12}, 12))
	require.Equal(t, Fields{Year: 2010, Month: 3, Day: 1}, AddDays(Fields{Year: 2010, Month: 2, Day: 28}, 1))
	// 2009-12-12 was a Saturday.
	require.Equal(t, 6, Weekday(Fields{Year: 2009, Month: 12, Day: 12}))

	loc := time.FixedZone("x", 3600)
	f := Fields{Year: 2009, Month: 12, Day: 12, Hour: 1}
	require.Equal(t, f, TimestampToFields(FieldsToTimestamp(f, loc), loc))
}

func TestPeriods(t *testing.T) {
	y, m, err := ParsePeriod(9801)
	require.NoError(t, err)
	require.Equal(t, [2]int{1998, 1}, [2]int{y, m})

	y, m, err = ParsePeriod(200802)
	require.NoError(t, err)
	require.Equal(t, [2]int{2008, 2}, [2]int{y, m})

	_, _, err = ParsePeriod(200813)
	require.Equal(t, pgcode.InvalidParameterValue, pgerror.GetPGCode(err))

	months, err := PeriodMonths(200801)
	require.NoError(t, err)
	require.Equal(t, int64(200803), MonthsToPeriod(months+2))
	require.Equal(t, int64(200712), MonthsToPeriod(months-1))
}
