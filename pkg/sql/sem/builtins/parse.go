// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtins

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/eval"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
	"github.com/cockroachdb/sqlscalar/pkg/util/duration"
)

// ParseExpr parses the call syntax used by the command line tool and the
// test files:
//
//	expr    := name '(' [expr {',' expr}] ')' | literal | param | field
//	literal := 'null' | type ':' text
//	param   := '$' n ':' type
//	field   := '@' n ':' type
//
// text is either a bare word or a single-quoted string, in which a
// doubled quote stands for a quote. Intervals are written
// interval:n:UNIT. Operators are called like functions: +(long:1,long:2).
// Literals are converted with ctx, which receives the conversion
// warnings.
func ParseExpr(ctx tree.QueryContext, s string) (tree.Expression, error) {
	p := exprParser{ctx: ctx, s: s}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.s) {
		return nil, p.errorf("unexpected %q", p.s[p.pos:])
	}
	return e, nil
}

type exprParser struct {
	ctx tree.QueryContext
	s   string
	pos int
}

func (p *exprParser) errorf(format string, args ...interface{}) error {
	return errors.WithDetailf(
		pgerror.Newf(pgcode.Syntax, format, args...),
		"at offset %d of %q", p.pos, p.s)
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.s) && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t' || p.s[p.pos] == '\n') {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	p.skipSpace()
	if p.pos == len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

// word reads up to the next delimiter.
func (p *exprParser) word() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.s) && !strings.ContainsRune(" \t\n(),'", rune(p.s[p.pos])) {
		p.pos++
	}
	return p.s[start:p.pos]
}

func (p *exprParser) quoted() (string, error) {
	var b strings.Builder
	p.pos++
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		p.pos++
		if c != '\'' {
			b.WriteByte(c)
			continue
		}
		if p.pos < len(p.s) && p.s[p.pos] == '\'' {
			b.WriteByte(c)
			p.pos++
			continue
		}
		return b.String(), nil
	}
	return "", p.errorf("unterminated string")
}

func (p *exprParser) parseExpr() (tree.Expression, error) {
	w := p.word()
	if w == "" {
		return nil, p.errorf("expected an expression")
	}
	if p.peek() == '(' {
		p.pos++
		var args []tree.Expression
		if p.peek() == ')' {
			p.pos++
			return Compose(w)
		}
		for {
			a, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			switch p.peek() {
			case ',':
				p.pos++
				continue
			case ')':
				p.pos++
				return Compose(w, args...)
			}
			return nil, p.errorf("expected ',' or ')'")
		}
	}
	if strings.EqualFold(w, "null") {
		return tree.NewLiteral(tree.DNull), nil
	}
	typ, text, ok := strings.Cut(w, ":")
	if !ok || typ == "" {
		return nil, p.errorf("%q is neither a call nor a typed literal", w)
	}
	if text == "" && p.pos < len(p.s) && p.s[p.pos] == '\'' {
		var err error
		if text, err = p.quoted(); err != nil {
			return nil, err
		}
	}
	switch typ[0] {
	case '$', '@':
		n, err := strconv.Atoi(typ[1:])
		if err != nil || n < 0 {
			return nil, p.errorf("invalid position %q", typ)
		}
		fam, ok := types.FamilyByName(text)
		if !ok {
			return nil, p.errorf("unknown type %q", text)
		}
		if typ[0] == '$' {
			if n == 0 {
				return nil, p.errorf("parameters are numbered from $1")
			}
			return tree.NewParameterExpr(n-1, fam), nil
		}
		return tree.NewFieldExpr(n, fam), nil
	}
	v, err := ParseLiteral(p.ctx, typ, text)
	if err != nil {
		return nil, err
	}
	return tree.NewLiteral(v), nil
}

// ParseLiteral converts text to a value of the named type. An interval
// is written n:UNIT, e.g. 12:DAY or 1:30:HOUR_MINUTE.
func ParseLiteral(ctx tree.QueryContext, typ, text string) (tree.Value, error) {
	if strings.EqualFold(typ, "interval") {
		i := strings.LastIndexByte(text, ':')
		if i < 0 {
			return tree.Value{}, pgerror.Newf(pgcode.InvalidIntervalFormat,
				"interval %q must be written n:UNIT", text)
		}
		unit, err := duration.ParseUnit(text[i+1:])
		if err != nil {
			return tree.Value{}, err
		}
		d, err := intervalOf(text[:i], unit)
		if err != nil {
			return tree.Value{}, err
		}
		fam := types.IntervalMillisFamily
		if unit.IsMonths() {
			fam = types.IntervalMonthFamily
		}
		return eval.DurationValue(fam, d), nil
	}
	fam, ok := types.FamilyByName(typ)
	if !ok || fam == types.UnsupportedFamily || fam == types.NullFamily {
		return tree.Value{}, pgerror.Newf(pgcode.InvalidArgumentType, "unknown type %q", typ)
	}
	v, err := eval.PerformCast(ctx, tree.NewVarchar(text), fam)
	if err != nil {
		return tree.Value{}, err
	}
	if v.IsNull() {
		return tree.Value{}, pgerror.Newf(pgcode.InvalidDatetimeFormat, "invalid %s literal %q", fam, text)
	}
	return v, nil
}

func intervalOf(text string, unit duration.Unit) (duration.Duration, error) {
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return duration.FromInt(n, unit)
	}
	return duration.ParseInterval(text, unit)
}
