// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import "github.com/cockroachdb/errors"

// Shareable is implemented by objects that track how many owners hold
// them. An owner that needs the object to stay unchanged beyond the
// current call acquires it, and releases it when done. An object with
// more than one owner must not be mutated in place.
type Shareable interface {
	Acquire()
	Release()
	IsShared() bool
}

// RefCount is a Shareable counter meant to be embedded. It is not safe
// for concurrent use; sharing is single-threaded by construction.
type RefCount struct {
	owners int
}

// Acquire adds an owner.
func (r *RefCount) Acquire() {
	r.owners++
}

// Release drops an owner. Releasing an object without owners does
// nothing.
func (r *RefCount) Release() {
	if r.owners > 0 {
		r.owners--
	}
}

// IsShared is true while more than one owner holds the object.
func (r *RefCount) IsShared() bool {
	return r.owners > 1
}

// Owners returns the number of current owners.
func (r *RefCount) Owners() int {
	return r.owners
}

// WithAcquired runs fn while holding s.
func WithAcquired(s Shareable, fn func() error) error {
	s.Acquire()
	defer s.Release()
	return fn()
}

// Row is a positional sequence of values, as produced by the operator
// that feeds the expressions.
type Row interface {
	Shareable
	// Len returns the number of fields.
	Len() int
	// Value returns the field at position i.
	Value(i int) Value
}

// RowValues is the in-memory Row.
type RowValues struct {
	RefCount
	vals []Value
}

var _ Row = (*RowValues)(nil)

// NewRow returns a Row over the given values. The slice is not copied.
func NewRow(vals ...Value) *RowValues {
	return &RowValues{vals: vals}
}

// Len implements the Row interface.
func (r *RowValues) Len() int { return len(r.vals) }

// Value implements the Row interface.
func (r *RowValues) Value(i int) Value { return r.vals[i] }

// Set overwrites the field at position i. It fails if the row is shared.
func (r *RowValues) Set(i int, v Value) error {
	if r.IsShared() {
		return errors.AssertionFailedf("cannot modify a shared row")
	}
	if i < 0 || i >= len(r.vals) {
		return errors.AssertionFailedf("field %d out of range for a row of %d fields", i, len(r.vals))
	}
	r.vals[i] = v
	return nil
}

// CopyIfShared returns r itself unless another owner holds it, in which
// case a private copy is returned.
func CopyIfShared(r Row) Row {
	if !r.IsShared() {
		return r
	}
	vals := make([]Value, r.Len())
	for i := range vals {
		vals[i] = r.Value(i)
	}
	return NewRow(vals...)
}
