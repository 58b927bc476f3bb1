// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

// Visitor defines methods that are called for nodes during an expression
// walk.
type Visitor interface {
	// VisitPre is called for each node before recursing into that subtree.
	// Upon return, if recurse is false, the visit will not recurse into
	// the subtree (and VisitPost will not be called for this node).
	//
	// The returned Expression replaces the visited expression and can be
	// used for rewriting expressions.
	VisitPre(expr Expression) (recurse bool, newExpr Expression)

	// VisitPost is called for each node after recursing into the
	// subtree. The returned Expression replaces the visited expression
	// and can be used for rewriting expressions.
	VisitPost(expr Expression) (newNode Expression)
}

// WalkExpr traverses the nodes in an expression. Nodes are never
// modified in place: a node whose children change is copied.
func WalkExpr(v Visitor, expr Expression) (newExpr Expression, changed bool) {
	recurse, newExpr := v.VisitPre(expr)
	if recurse {
		if w, ok := newExpr.(walkableExpr); ok {
			newExpr = w.walk(v)
		}
		newExpr = v.VisitPost(newExpr)
	}
	return newExpr, newExpr != expr
}

type walkableExpr interface {
	Expression
	walk(Visitor) Expression
}

func (l *Literal) walk(Visitor) Expression       { return l }
func (f *FieldExpr) walk(Visitor) Expression     { return f }
func (p *ParameterExpr) walk(Visitor) Expression { return p }

func (f *FuncExpr) walk(v Visitor) Expression {
	var exprs []Expression
	for i, e := range f.Exprs {
		n, changed := WalkExpr(v, e)
		if changed {
			if exprs == nil {
				exprs = append([]Expression(nil), f.Exprs...)
			}
			exprs[i] = n
		}
	}
	if exprs == nil {
		return f
	}
	return &FuncExpr{Def: f.Def, Exprs: exprs, Typ: f.Typ}
}
