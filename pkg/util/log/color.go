// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"os"
	"strings"
)

// colorProfile defines escape sequences which provide color in
// terminals. Some terminals support 8 colors, some 256, others
// none at all.
type colorProfile struct {
	infoPrefix  []byte
	warnPrefix  []byte
	errorPrefix []byte
}

var colorReset = []byte("\033[0m")

var colorProfile8 = &colorProfile{
	infoPrefix:  []byte("\033[0;36;49m"),
	warnPrefix:  []byte("\033[0;33;49m"),
	errorPrefix: []byte("\033[0;31;49m"),
}

var colorProfile256 = &colorProfile{
	infoPrefix:  []byte("\033[38;5;33m"),
	warnPrefix:  []byte("\033[38;5;214m"),
	errorPrefix: []byte("\033[38;5;160m"),
}

// stderrColorProfile is nil when stderr is not a color terminal.
var stderrColorProfile = func() *colorProfile {
	fi, err := os.Stderr.Stat()
	if err != nil || fi.Mode()&os.ModeCharDevice == 0 {
		return nil
	}
	term := os.Getenv("TERM")
	switch {
	case term == "ansi" || term == "tmux":
		return colorProfile8
	case term == "st" || strings.HasSuffix(term, "256color"):
		return colorProfile256
	case strings.HasSuffix(term, "color") || strings.HasPrefix(term, "screen"):
		return colorProfile8
	}
	return nil
}()

func (cp *colorProfile) prefix(sev Severity) []byte {
	switch sev {
	case SeverityInfo:
		return cp.infoPrefix
	case SeverityWarning:
		return cp.warnPrefix
	default:
		return cp.errorPrefix
	}
}
