// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"context"
	"time"

	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sessiondata"
	"github.com/cockroachdb/sqlscalar/pkg/util/log"
	"github.com/cockroachdb/sqlscalar/pkg/util/timeutil"
)

// QueryContext is the per-statement environment of an evaluation. It
// gives access to parameter bindings, the statement time, the session
// settings, and a sink for warnings.
type QueryContext interface {
	// Ctx returns the context.Context used for logging.
	Ctx() context.Context
	// Binding returns the value bound to the parameter at position pos.
	Binding(pos int) (Value, error)
	// StatementTime is fixed for the duration of a statement. All
	// environment functions observe the same instant.
	StatementTime() time.Time
	// SessionData returns the session settings. It must not be modified.
	SessionData() *sessiondata.SessionData
	// Warn records a non-fatal condition. Warnings never abort the
	// evaluation.
	Warn(err error)
}

// Location returns the session time zone of ctx.
func Location(ctx QueryContext) *time.Location {
	return ctx.SessionData().Location()
}

// EmptyQueryContext is used by evaluations that were never bound to a
// QueryContext and only need the session defaults. It has no bindings
// and logs its warnings.
var EmptyQueryContext QueryContext = emptyQueryContext{sd: sessiondata.Default()}

type emptyQueryContext struct {
	sd *sessiondata.SessionData
}

var warnEvery = log.Every(time.Second)

func (emptyQueryContext) Ctx() context.Context { return context.Background() }

func (emptyQueryContext) Binding(pos int) (Value, error) {
	return Value{}, pgerror.Newf(pgcode.InvalidParameterValue, "no value bound to parameter $%d", pos+1)
}

func (emptyQueryContext) StatementTime() time.Time { return timeutil.Now() }

func (c emptyQueryContext) SessionData() *sessiondata.SessionData { return c.sd }

func (emptyQueryContext) Warn(err error) {
	if warnEvery.ShouldLog() {
		log.Warningf(context.Background(), "%v", err)
	}
}
