// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"fmt"

	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
)

// CastContext specifies how a given Castable can be used.
// A higher value corresponds to a higher strictness.
// Higher value CastContext can use lower value CastContexts.
type CastContext uint8

const (
	_ CastContext = iota
	// CastContextImplicit implies the cast can be set implicitly
	// in any context, e.g. when an operand is promoted.
	CastContextImplicit
	// CastContextAssignment implies that the cast can be done implicitly
	// when a value is stored into a holder of the target type.
	CastContextAssignment
	// CastContextExplicit implies that the cast can only be used
	// in an explicit CAST.
	CastContextExplicit
)

func (c CastContext) String() string {
	switch c {
	case CastContextImplicit:
		return "implicit"
	case CastContextAssignment:
		return "assignment"
	case CastContextExplicit:
		return "explicit"
	}
	return fmt.Sprintf("CastContext(%d)", c)
}

// Castable defines how a family can be cast to another.
type Castable struct {
	Source  types.Family
	Target  types.Family
	Context CastContext
}

// castableMap goes from source family -> target family -> Castable.
// Source and Target are filled in by init.
var castableMap = map[types.Family]map[types.Family]Castable{
	types.DateFamily: {
		types.DateTimeFamily:  {Context: CastContextImplicit},
		types.TimestampFamily: {Context: CastContextImplicit},
		types.YearFamily:      {Context: CastContextAssignment},
		types.TimeFamily:      {Context: CastContextExplicit},
	},
	types.DateTimeFamily: {
		types.TimestampFamily: {Context: CastContextImplicit},
		types.DateFamily:      {Context: CastContextAssignment},
		types.TimeFamily:      {Context: CastContextAssignment},
		types.YearFamily:      {Context: CastContextAssignment},
	},
	types.TimestampFamily: {
		types.DateTimeFamily: {Context: CastContextImplicit},
		types.DateFamily:     {Context: CastContextAssignment},
		types.TimeFamily:     {Context: CastContextAssignment},
		types.YearFamily:     {Context: CastContextAssignment},
	},
	types.TimeFamily: {
		types.DateFamily:      {Context: CastContextExplicit},
		types.DateTimeFamily:  {Context: CastContextExplicit},
		types.TimestampFamily: {Context: CastContextExplicit},
	},
	types.VarbinaryFamily: {
		types.VarcharFamily: {Context: CastContextAssignment},
		types.TextFamily:    {Context: CastContextAssignment},
	},
}

// numericLike are the families that convert freely among each other.
var numericLike = []types.Family{
	types.BoolFamily,
	types.IntFamily, types.LongFamily, types.UIntFamily, types.UBigIntFamily,
	types.FloatFamily, types.UFloatFamily, types.DoubleFamily, types.UDoubleFamily,
	types.DecimalFamily,
}

var temporal = []types.Family{
	types.DateFamily, types.TimeFamily, types.DateTimeFamily, types.TimestampFamily, types.YearFamily,
}

var intervals = []types.Family{types.IntervalMillisFamily, types.IntervalMonthFamily}

func addCast(src, tgt types.Family, ctx CastContext) {
	tgts, ok := castableMap[src]
	if !ok {
		tgts = make(map[types.Family]Castable)
		castableMap[src] = tgts
	}
	if _, ok := tgts[tgt]; !ok {
		tgts[tgt] = Castable{Context: ctx}
	}
}

// numericWidth orders the numeric families by the range they can hold.
var numericWidth = map[types.Family]int{
	types.BoolFamily:    0,
	types.IntFamily:     1,
	types.UIntFamily:    1,
	types.LongFamily:    2,
	types.UBigIntFamily: 3,
	types.FloatFamily:   4,
	types.UFloatFamily:  4,
	types.DoubleFamily:  5,
	types.UDoubleFamily: 5,
	types.DecimalFamily: 6,
}

func numericCastContext(src, tgt types.Family) CastContext {
	switch {
	case src == tgt, src == types.BoolFamily:
		return CastContextImplicit
	case tgt == types.BoolFamily:
		return CastContextExplicit
	case numericWidth[tgt] > numericWidth[src]:
		return CastContextImplicit
	}
	return CastContextAssignment
}

// FindCast returns whether the given src family can be cast to the
// target family, given the CastContext.
func FindCast(src, tgt types.Family, ctx CastContext) (Castable, bool) {
	if tgts, ok := castableMap[src]; ok {
		if castable, ok := tgts[tgt]; ok {
			return castable, ctx >= castable.Context
		}
	}
	return Castable{}, false
}

func init() {
	strings := []types.Family{types.VarcharFamily, types.TextFamily}
	for _, f := range types.AllFamilies() {
		if f == types.UnsupportedFamily {
			continue
		}
		addCast(f, f, CastContextImplicit)
		addCast(types.NullFamily, f, CastContextImplicit)
		if f == types.NullFamily {
			continue
		}
		for _, s := range strings {
			if f.IsText() {
				addCast(f, s, CastContextImplicit)
			} else {
				addCast(f, s, CastContextAssignment)
			}
			addCast(s, f, CastContextImplicit)
		}
	}
	for _, src := range numericLike {
		for _, tgt := range numericLike {
			addCast(src, tgt, numericCastContext(src, tgt))
		}
		for _, tgt := range temporal {
			addCast(src, tgt, CastContextExplicit)
			addCast(tgt, src, CastContextExplicit)
		}
		for _, tgt := range intervals {
			addCast(src, tgt, CastContextExplicit)
			addCast(tgt, src, CastContextExplicit)
		}
	}
	for src, tgts := range castableMap {
		for tgt := range tgts {
			ent := castableMap[src][tgt]
			ent.Source = src
			ent.Target = tgt
			if ent.Context == CastContext(0) {
				panic(fmt.Sprintf("cast from %s to %s has no Context set", src, tgt))
			}
			castableMap[src][tgt] = ent
		}
	}
}
