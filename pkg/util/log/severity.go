// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Severity identifies the importance of a log entry.
type Severity int32

const (
	// SeverityUnknown is the zero value.
	SeverityUnknown Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
	SeverityFatal
)

// SafeValue implements redact.SafeValue.
func (s Severity) SafeValue() {}

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	case SeverityFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// letter is the single character prefix of a log line.
func (s Severity) letter() byte {
	return s.String()[0]
}

// SeverityByName looks up a severity by its (case-insensitive) name.
func SeverityByName(name string) (Severity, error) {
	for s := SeverityInfo; s <= SeverityFatal; s++ {
		if strings.EqualFold(s.String(), name) {
			return s, nil
		}
	}
	return SeverityUnknown, errors.Newf("unknown severity: %q", name)
}
