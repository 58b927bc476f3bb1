// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package eval

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sessiondata"
	"github.com/cockroachdb/sqlscalar/pkg/util/log"
	"github.com/cockroachdb/sqlscalar/pkg/util/timeutil"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
)

// Context defines the context in which to evaluate an expression,
// allowing the retrieval of state such as the statement timestamp and
// the bound placeholders. It implements tree.QueryContext.
//
// A Context is used by a single statement at a time and is not safe for
// concurrent use.
type Context struct {
	// Context is the context.Context used for logging.
	Context context.Context

	// Session contains the session settings. It must not be modified
	// during a statement.
	Session *sessiondata.SessionData

	// Placeholders are the values bound to the parameters of the
	// statement, by position.
	Placeholders []tree.Value

	// TimeSource is used to fix StmtTimestamp when a statement starts.
	TimeSource timeutil.TimeSource

	// StmtTimestamp is the time the current statement started. All the
	// environment functions of a statement observe it.
	StmtTimestamp time.Time

	// Metrics, if set, counts errors and warnings.
	Metrics *Metrics

	warnings        []error
	droppedWarnings int
	warnEvery       *log.EveryN

	comparer     *StringComparer
	comparerName string
	patterns     *patternCache
}

var _ tree.QueryContext = (*Context)(nil)

// NewContext returns a Context for the given session.
func NewContext(ctx context.Context, sd *sessiondata.SessionData) *Context {
	return &Context{
		Context:    logtags.AddTag(ctx, "eval", nil),
		Session:    sd,
		TimeSource: timeutil.DefaultTimeSource{},
		warnEvery:  log.Every(time.Second),
	}
}

// NewTestingEvalContext is a convenience version of NewContext for use
// in tests. The statement time is pinned, so results are reproducible.
func NewTestingEvalContext() *Context {
	ctx := NewContext(context.Background(), sessiondata.Default())
	ctx.TimeSource = timeutil.NewManualTime(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	ctx.StartStatement()
	return ctx
}

// StartStatement fixes the statement time and clears the warnings of
// the previous statement.
func (ec *Context) StartStatement() {
	ec.StmtTimestamp = ec.TimeSource.Now()
	ec.warnings = ec.warnings[:0]
	ec.droppedWarnings = 0
}

// Ctx implements the tree.QueryContext interface.
func (ec *Context) Ctx() context.Context {
	if ec.Context == nil {
		return context.Background()
	}
	return ec.Context
}

// Binding implements the tree.QueryContext interface.
func (ec *Context) Binding(pos int) (tree.Value, error) {
	if pos < 0 || pos >= len(ec.Placeholders) {
		return tree.Value{}, pgerror.Newf(pgcode.InvalidParameterValue,
			"no value provided for placeholder: $%d", pos+1)
	}
	return ec.Placeholders[pos], nil
}

// StatementTime implements the tree.QueryContext interface.
func (ec *Context) StatementTime() time.Time {
	if ec.StmtTimestamp.IsZero() {
		ec.StmtTimestamp = ec.TimeSource.Now()
	}
	return ec.StmtTimestamp
}

// SessionData implements the tree.QueryContext interface.
func (ec *Context) SessionData() *sessiondata.SessionData {
	if ec.Session == nil {
		ec.Session = sessiondata.Default()
	}
	return ec.Session
}

// Location returns the session time zone.
func (ec *Context) Location() *time.Location {
	return ec.SessionData().Location()
}

// Warn implements the tree.QueryContext interface. At most
// SessionData.MaxWarnings warnings are kept per statement; the others
// are only counted.
func (ec *Context) Warn(err error) {
	code := pgerror.GetPGCode(err)
	if ec.Metrics != nil {
		ec.Metrics.Warnings.WithLabelValues(code.String()).Inc()
	}
	if len(ec.warnings) >= ec.SessionData().MaxWarnings {
		ec.droppedWarnings++
		if ec.warnEvery != nil && ec.warnEvery.ShouldLog() {
			log.Warningf(ec.Ctx(), "dropped %d warnings; last: %v", ec.droppedWarnings, err)
		}
		return
	}
	log.VEventf(ec.Ctx(), 2, "warning %s: %v", code, err)
	ec.warnings = append(ec.warnings, err)
}

// Warnings returns the warnings kept for the current statement.
func (ec *Context) Warnings() []error {
	return ec.warnings
}

// DroppedWarnings returns the number of warnings over the limit.
func (ec *Context) DroppedWarnings() int {
	return ec.droppedWarnings
}

// RecordError counts an error that aborted an evaluation.
func (ec *Context) RecordError(err error) {
	if ec.Metrics != nil && err != nil {
		ec.Metrics.Errors.WithLabelValues(pgerror.GetPGCode(err).String()).Inc()
	}
}

// Comparer returns the string comparer of the session collation.
func (ec *Context) Comparer() (*StringComparer, error) {
	name := ec.SessionData().Collation
	if ec.comparer != nil && ec.comparerName == name {
		return ec.comparer, nil
	}
	c, err := NewStringComparer(name)
	if err != nil {
		return nil, err
	}
	ec.comparer, ec.comparerName = c, name
	return c, nil
}

// comparerFor returns the string comparer for ctx, building one when
// ctx is not an eval.Context.
func comparerFor(ctx tree.QueryContext) (*StringComparer, error) {
	if ec, ok := ctx.(*Context); ok {
		return ec.Comparer()
	}
	if ctx == nil {
		return NewStringComparer(sessiondata.DefaultCollation)
	}
	return NewStringComparer(ctx.SessionData().Collation)
}

// StringComparer orders strings according to a collation.
type StringComparer struct {
	coll *collate.Collator
	fold bool
	ci   bool
}

// NewStringComparer returns the comparer of the named collation.
func NewStringComparer(name string) (*StringComparer, error) {
	kind, tag, err := sessiondata.ParseCollation(name)
	if err != nil {
		return nil, errors.Wrap(err, "resolving collation")
	}
	switch kind {
	case sessiondata.CollationBinary:
		return &StringComparer{}, nil
	case sessiondata.CollationCaseInsensitive:
		return &StringComparer{fold: true, ci: true}, nil
	case sessiondata.CollationLocale:
		return &StringComparer{coll: collate.New(tag, collate.IgnoreCase), ci: true}, nil
	default:
		return &StringComparer{coll: collate.New(tag)}, nil
	}
}

// Compare returns -1, 0 or 1.
func (c *StringComparer) Compare(a, b string) int {
	switch {
	case c.coll != nil:
		return c.coll.CompareString(a, b)
	case c.fold:
		f := cases.Fold()
		return strings.Compare(f.String(a), f.String(b))
	}
	return strings.Compare(a, b)
}

// CaseInsensitive is true if the comparer ignores case.
func (c *StringComparer) CaseInsensitive() bool {
	return c.ci
}
