// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package eval

import (
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree"
	"github.com/grafana/regexp"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
)

// DefaultLikeEscape is the LIKE escape character when the session does
// not set one.
const DefaultLikeEscape = `\`

// ErrIllegalEscape is reported for a pattern ending in the escape
// character.
var ErrIllegalEscape = pgerror.New(pgcode.InvalidParameterValue, "illegal escape sequence in LIKE pattern")

// LikeCase selects how a LIKE pattern treats letter case.
type LikeCase uint8

const (
	// LikeCaseCollation follows the session collation: binary and _cs
	// collations match exactly, language collations compare literal
	// characters with the collator and the others fold case.
	LikeCaseCollation LikeCase = iota
	// LikeCaseFold always folds case.
	LikeCaseFold
	// LikeCaseExact always compares code points.
	LikeCaseExact
)

type likeTokenKind uint8

const (
	likeLiteral likeTokenKind = iota
	likeOne
	likeAny
)

type likeToken struct {
	kind likeTokenKind
	r    rune
}

// LikePattern is a compiled LIKE pattern.
type LikePattern struct {
	tokens []likeToken
	fold   bool
	// coll, if set, decides the equality of literal characters.
	coll *collate.Collator
}

// CompileLike compiles a LIKE pattern. '_' matches one character and
// '%' any run of characters. escape, if not empty, must be a single
// character; it makes the following character literal, so that with
// escape '+' the pattern '++' matches "+". A pattern ending in the
// escape character is invalid. With fold set the pattern matches
// case-insensitively under Unicode case folding.
func CompileLike(pattern, escape string, fold bool) (*LikePattern, error) {
	return compileLike(pattern, escape, fold, nil)
}

func compileLike(pattern, escape string, fold bool, coll *collate.Collator) (*LikePattern, error) {
	esc, hasEsc := rune(0), false
	if escape != "" {
		r, n := utf8.DecodeRuneInString(escape)
		if n != len(escape) {
			return nil, pgerror.Newf(pgcode.InvalidParameterValue,
				"invalid escape string %q: must be a single character", escape)
		}
		esc, hasEsc = r, true
	}
	runes := []rune(pattern)
	p := &LikePattern{fold: fold, coll: coll}
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case hasEsc && r == esc:
			if i+1 == len(runes) {
				return nil, errors.WithStack(ErrIllegalEscape)
			}
			i++
			p.addLiteral(runes[i])
		case r == '_':
			p.tokens = append(p.tokens, likeToken{kind: likeOne})
		case r == '%':
			// Consecutive '%' are equivalent to one.
			if n := len(p.tokens); n == 0 || p.tokens[n-1].kind != likeAny {
				p.tokens = append(p.tokens, likeToken{kind: likeAny})
			}
		default:
			p.addLiteral(r)
		}
	}
	return p, nil
}

func (p *LikePattern) addLiteral(r rune) {
	if !p.fold {
		p.tokens = append(p.tokens, likeToken{kind: likeLiteral, r: r})
		return
	}
	for _, f := range cases.Fold().String(string(r)) {
		p.tokens = append(p.tokens, likeToken{kind: likeLiteral, r: f})
	}
}

// Match reports whether s matches the pattern.
func (p *LikePattern) Match(s string) bool {
	if p.fold {
		s = cases.Fold().String(s)
	}
	in := []rune(s)
	toks := p.tokens
	i, j := 0, 0
	// Position of the last '%' seen and of the input it was tried at.
	star, mark := -1, 0
	for i < len(in) {
		if j < len(toks) {
			switch t := toks[j]; {
			case t.kind == likeAny:
				star, mark = j, i
				j++
				continue
			case t.kind == likeOne || p.literalEq(t.r, in[i]):
				i++
				j++
				continue
			}
		}
		if star < 0 {
			return false
		}
		mark++
		i, j = mark, star+1
	}
	for j < len(toks) && toks[j].kind == likeAny {
		j++
	}
	return j == len(toks)
}

func (p *LikePattern) literalEq(pr, r rune) bool {
	if pr == r {
		return true
	}
	return p.coll != nil && p.coll.CompareString(string(pr), string(r)) == 0
}

type likeKey struct {
	pattern, escape string
	fold            bool
	coll            *collate.Collator
}

// patternCache holds compiled LIKE and regular expression patterns.
type patternCache struct {
	like *lru.Cache[likeKey, *LikePattern]
	re   *lru.Cache[string, *regexp.Regexp]
}

const patternCacheSize = 64

func newPatternCache() *patternCache {
	like, _ := lru.New[likeKey, *LikePattern](patternCacheSize)
	re, _ := lru.New[string, *regexp.Regexp](patternCacheSize)
	return &patternCache{like: like, re: re}
}

// patterns returns the pattern cache of ctx, or nil if ctx is not an
// eval.Context.
func patterns(ctx tree.QueryContext) *patternCache {
	if ec, ok := ctx.(*Context); ok {
		if ec.patterns == nil {
			ec.patterns = newPatternCache()
		}
		return ec.patterns
	}
	return nil
}

// MatchLike evaluates s LIKE pattern ESCAPE escape.
func MatchLike(ctx tree.QueryContext, s, pattern, escape string, mode LikeCase) (bool, error) {
	key := likeKey{pattern: pattern, escape: escape}
	switch mode {
	case LikeCaseFold:
		key.fold = true
	case LikeCaseCollation:
		c, err := comparerFor(ctx)
		if err != nil {
			return false, err
		}
		key.fold, key.coll = c.fold, c.coll
	}
	cache := patterns(ctx)
	if cache != nil {
		if p, ok := cache.like.Get(key); ok {
			return p.Match(s), nil
		}
	}
	p, err := compileLike(pattern, escape, key.fold, key.coll)
	if err != nil {
		return false, err
	}
	if cache != nil {
		cache.like.Add(key, p)
	}
	return p.Match(s), nil
}

// MatchRegexp reports whether s contains a match of the regular
// expression pattern. With fold set the match ignores case.
func MatchRegexp(ctx tree.QueryContext, s, pattern string, fold bool) (bool, error) {
	if fold {
		pattern = "(?i)" + pattern
	}
	cache := patterns(ctx)
	if cache != nil {
		if re, ok := cache.re.Get(pattern); ok {
			return re.MatchString(s), nil
		}
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, pgerror.Wrapf(err, pgcode.InvalidParameterValue, "invalid regular expression")
	}
	if cache != nil {
		cache.re.Add(pattern, re)
	}
	return re.MatchString(s), nil
}
