// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package timeutil

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

var errTZDataNotFound = errors.New("timezone data cannot be found")

// LoadLocation returns the time.Location with the given name.
// The name is taken to be a location name corresponding to a file
// in the IANA Time Zone database, such as "America/New_York".
//
// "Local" and "default" map to UTC rather than the process' zone, and a
// missing tz database is reported plainly.
func LoadLocation(name string) (*time.Location, error) {
	switch strings.ToLower(name) {
	case "local", "default", "system", "":
		name = "UTC"
	}
	l, err := time.LoadLocation(name)
	if err != nil {
		if strings.Contains(err.Error(), "zoneinfo.zip") {
			err = errTZDataNotFound
		}
		return nil, errors.Wrapf(err, "loading time zone %q", name)
	}
	return l, nil
}
