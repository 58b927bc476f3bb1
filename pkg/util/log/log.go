// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package log implements context-aware, redaction-aware logging.
//
// Every entry carries the logging tags of its context (see
// github.com/cockroachdb/logtags). Arguments are formatted with
// github.com/cockroachdb/redact: values that are not marked as safe are
// enclosed in redaction markers when the logger is configured to emit
// redactable output, and printed verbatim otherwise.
package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
)

type loggerT struct {
	// verbosity is the V() threshold.
	verbosity atomic.Int32

	mu struct {
		sync.Mutex
		out        io.Writer
		redactable bool
		minSev     Severity
		exitFn     func(int)
	}
}

var mainLog = func() *loggerT {
	l := &loggerT{}
	l.mu.out = os.Stderr
	l.mu.minSev = SeverityInfo
	return l
}()

// timeNow is swapped out in tests.
var timeNow = time.Now

// V returns true if the logging verbosity is set to the specified level
// or higher.
func V(level int32) bool {
	return mainLog.verbosity.Load() >= level
}

// SetVerbosity changes the V() threshold and returns the previous one.
func SetVerbosity(level int32) int32 {
	return mainLog.verbosity.Swap(level)
}

// SetExitFunc allows setting a function that will be called to exit
// the process when a Fatal message is generated. Call with a nil
// function to undo.
func SetExitFunc(f func(int)) {
	mainLog.mu.Lock()
	defer mainLog.mu.Unlock()
	mainLog.mu.exitFn = f
}

// Infof logs to the INFO severity.
func Infof(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, 1, SeverityInfo, format, args...)
}

// Info logs a constant message to the INFO severity.
func Info(ctx context.Context, msg redact.SafeString) {
	logDepth(ctx, 1, SeverityInfo, "%s", msg)
}

// Warningf logs to the WARNING severity.
func Warningf(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, 1, SeverityWarning, format, args...)
}

// Errorf logs to the ERROR severity.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, 1, SeverityError, format, args...)
}

// Fatalf logs to the FATAL severity and then exits the process.
func Fatalf(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, 1, SeverityFatal, format, args...)
	mainLog.mu.Lock()
	f := mainLog.mu.exitFn
	mainLog.mu.Unlock()
	if f != nil {
		f(255)
		return
	}
	os.Exit(255)
}

// VEventf logs to the INFO severity if the verbosity is at least level.
func VEventf(ctx context.Context, level int32, format string, args ...interface{}) {
	if !V(level) {
		return
	}
	logDepth(ctx, 1, SeverityInfo, format, args...)
}

// InfofDepth logs to the INFO severity, attributing the entry to the
// caller depth frames up the stack.
func InfofDepth(ctx context.Context, depth int, format string, args ...interface{}) {
	logDepth(ctx, depth+1, SeverityInfo, format, args...)
}

func logDepth(
	ctx context.Context, depth int, sev Severity, format string, args ...interface{},
) {
	mainLog.mu.Lock()
	defer mainLog.mu.Unlock()
	if sev < mainLog.mu.minSev {
		return
	}
	entry := makeEntry(ctx, depth+1, sev, mainLog.mu.redactable, format, args...)
	if cp := stderrColorProfile; cp != nil && mainLog.mu.out == os.Stderr {
		entry = append(append(append([]byte(nil), cp.prefix(sev)...), entry[:len(entry)-1]...), colorReset...)
		entry = append(entry, '\n')
	}
	_, _ = mainLog.mu.out.Write(entry)
}

// makeEntry renders a log line:
//
//	I261017 15:04:05.000000 file.go:12  [tag1,tag2=v] message
func makeEntry(
	ctx context.Context,
	depth int,
	sev Severity,
	redactable bool,
	format string,
	args ...interface{},
) []byte {
	var buf bytes.Buffer
	now := timeNow().UTC()
	buf.WriteByte(sev.letter())
	buf.WriteString(now.Format("060102 15:04:05.000000"))

	file, line := "???", 0
	if _, f, l, ok := runtime.Caller(depth + 1); ok {
		file, line = filepath.Base(f), l
	}
	fmt.Fprintf(&buf, " %s:%d ", file, line)

	if tags := logtags.FromContext(ctx); tags != nil {
		buf.WriteString(" [")
		buf.WriteString(tags.String())
		buf.WriteString("] ")
	}

	msg := redact.Sprintf(format, args...)
	if redactable {
		buf.WriteString(string(msg))
	} else {
		buf.WriteString(msg.StripMarkers())
	}
	if b := buf.Bytes(); len(b) == 0 || b[len(b)-1] != '\n' {
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
