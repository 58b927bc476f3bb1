// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sessiondata"
	"github.com/cockroachdb/sqlscalar/pkg/util/timeutil/sqldate"
)

type testQueryContext struct {
	bindings []Value
	warnings []error
	sd       *sessiondata.SessionData
}

var _ QueryContext = (*testQueryContext)(nil)

func newTestQueryContext(bindings ...Value) *testQueryContext {
	return &testQueryContext{bindings: bindings, sd: sessiondata.Default()}
}

func (c *testQueryContext) Ctx() context.Context { return context.Background() }

func (c *testQueryContext) Binding(pos int) (Value, error) {
	if pos >= len(c.bindings) {
		return Value{}, errors.Newf("no binding %d", pos)
	}
	return c.bindings[pos], nil
}

func (c *testQueryContext) StatementTime() time.Time {
	return time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
}

func (c *testQueryContext) SessionData() *sessiondata.SessionData { return c.sd }

func (c *testQueryContext) Warn(err error) { c.warnings = append(c.warnings, err) }

// catchPanic returns the error a function panicked with.
func catchPanic(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = r.(error)
		}
	}()
	fn()
	return nil
}

func dateFields(y, m, d int) sqldate.Fields {
	return sqldate.Fields{Year: y, Month: m, Day: d}
}
