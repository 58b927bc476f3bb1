// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package timeutil

import (
	"sync"
	"time"
)

// FullTimeFormat is the time format used to display any timestamp
// with date, time and time zone data.
const FullTimeFormat = "2006-01-02 15:04:05.999999-07:00:00"

// Now returns the current UTC time.
func Now() time.Time {
	return time.Now().UTC()
}

// Unix wraps time.Unix ensuring that the result is in UTC instead of Local.
func Unix(sec, nsec int64) time.Time {
	return time.Unix(sec, nsec).UTC()
}

// TimeSource is used to interact with clocks. Statement times are read
// from a TimeSource so that tests can pin them.
type TimeSource interface {
	Now() time.Time
}

// DefaultTimeSource reads the system clock.
type DefaultTimeSource struct{}

var _ TimeSource = DefaultTimeSource{}

// Now implements TimeSource.
func (DefaultTimeSource) Now() time.Time { return Now() }

// ManualTime is a TimeSource that only moves when told to.
type ManualTime struct {
	mu  sync.Mutex
	now time.Time
}

var _ TimeSource = (*ManualTime)(nil)

// NewManualTime constructs a ManualTime reading initialTime.
func NewManualTime(initialTime time.Time) *ManualTime {
	return &ManualTime{now: initialTime}
}

// Now implements TimeSource.
func (m *ManualTime) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d.
func (m *ManualTime) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
