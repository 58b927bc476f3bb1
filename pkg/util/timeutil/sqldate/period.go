// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package sqldate

import (
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
)

// ParsePeriod splits a YYMM or YYYYMM period into its year and month.
func ParsePeriod(p int64) (year, month int, err error) {
	if p <= 0 {
		return 0, 0, pgerror.Newf(pgcode.InvalidParameterValue, "invalid period: %d", p)
	}
	year, month = int(p/100), int(p%100)
	if month < 1 || month > 12 {
		return 0, 0, pgerror.Newf(pgcode.InvalidParameterValue, "invalid month in period: %d", p)
	}
	if year < 100 {
		year = twoDigitYear(year)
	}
	return year, month, nil
}

// PeriodMonths converts a period to a count of months since year 0.
func PeriodMonths(p int64) (int64, error) {
	y, m, err := ParsePeriod(p)
	if err != nil {
		return 0, err
	}
	return int64(y)*12 + int64(m) - 1, nil
}

// MonthsToPeriod converts a count of months since year 0 to a YYYYMM
// period.
func MonthsToPeriod(months int64) int64 {
	return (months/12)*100 + months%12 + 1
}
