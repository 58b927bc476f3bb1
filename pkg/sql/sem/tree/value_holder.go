// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
)

// ValueHolder is a mutable slot of a fixed type. Evaluations keep one
// to hold their most recent result, so the Value returned by Source is
// only valid until the next Put.
type ValueHolder struct {
	typ types.Family
	v   Value
}

// NewValueHolder returns a holder of the given type, initially NULL.
func NewValueHolder(typ types.Family) *ValueHolder {
	return &ValueHolder{typ: typ, v: TypedNull(typ)}
}

// Type returns the type of the holder.
func (h *ValueHolder) Type() types.Family { return h.typ }

// Source returns the held value.
func (h *ValueHolder) Source() Value { return h.v }

// Put stores v. A NULL takes the type of the holder. It panics if a
// non-NULL v does not match the type of the holder.
func (h *ValueHolder) Put(v Value) {
	if v.IsNull() {
		h.PutNull()
		return
	}
	if v.typ != h.typ {
		panic(errors.AssertionFailedf("cannot put %s into a %s holder", v.typ, h.typ))
	}
	h.v = v
}

// PutNull stores a NULL.
func (h *ValueHolder) PutNull() { h.v = TypedNull(h.typ) }

// PutBool stores a BOOL.
func (h *ValueHolder) PutBool(b bool) { h.Put(NewBool(b)) }

// PutLong stores a LONG.
func (h *ValueHolder) PutLong(i int64) { h.Put(NewLong(i)) }

// PutDouble stores a DOUBLE.
func (h *ValueHolder) PutDouble(f float64) { h.Put(NewDouble(f)) }

// PutString stores s as a VARCHAR or a TEXT, depending on the type of
// the holder.
func (h *ValueHolder) PutString(s string) {
	if h.typ == types.TextFamily {
		h.Put(NewText(s))
		return
	}
	h.Put(NewVarchar(s))
}
