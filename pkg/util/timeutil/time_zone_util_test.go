// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimeZoneStringToLocation(t *testing.T) {
	testData := []struct {
		tz     string
		offset int
	}{
		{"UTC", 0},
		{"+05:30", 5*3600 + 30*60},
		{"-08:00", -8 * 3600},
		{"GMT+3", 3 * 3600},
		{"UTC-04:30", -(4*3600 + 30*60)},
		{FixedOffsetTimeZoneToLocation(3600, "+01:00").String(), 3600},
	}
	ref := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, d := range testData {
		loc, err := TimeZoneStringToLocation(d.tz)
		require.NoError(t, err, d.tz)
		_, off := ref.In(loc).Zone()
		require.Equal(t, d.offset, off, d.tz)
	}

	_, err := TimeZoneStringToLocation("Not/AZone")
	require.Error(t, err)
	_, err = TimeZoneStringToLocation("+25:00")
	require.Error(t, err)
}

func TestManualTime(t *testing.T) {
	start := time.Date(2009, 12, 12, 10, 0, 0, 0, time.UTC)
	m := NewManualTime(start)
	require.Equal(t, start, m.Now())
	m.Advance(time.Hour)
	require.Equal(t, start.Add(time.Hour), m.Now())
}
