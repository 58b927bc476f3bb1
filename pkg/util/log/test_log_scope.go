// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"bytes"
	"io"
	"sync"
)

// tShim is the subset of testing.TB used by TestLogScope.
type tShim interface {
	Helper()
	Logf(format string, args ...interface{})
	Failed() bool
	Name() string
}

// TestLogScope captures the log output of a test. The output is
// replayed through the test's own log if the test fails, and dropped
// otherwise.
type TestLogScope struct {
	buf     *syncBuffer
	prevOut io.Writer
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Scope starts capturing log output. Use as follows:
//
//	defer log.Scope(t).Close(t)
func Scope(t tShim) *TestLogScope {
	t.Helper()
	buf := &syncBuffer{}
	return &TestLogScope{buf: buf, prevOut: setOutput(buf)}
}

// Output returns what has been logged in the scope so far.
func (l *TestLogScope) Output() string {
	return l.buf.String()
}

// Close restores the previous log output.
func (l *TestLogScope) Close(t tShim) {
	t.Helper()
	setOutput(l.prevOut)
	if t.Failed() {
		if out := l.buf.String(); out != "" {
			t.Logf("log output of %s:\n%s", t.Name(), out)
		}
	}
}
