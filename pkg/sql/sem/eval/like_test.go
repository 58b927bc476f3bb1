// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package eval

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/util/leaktest"
	"github.com/cockroachdb/sqlscalar/pkg/util/log"
	"github.com/stretchr/testify/require"
)

func TestLike(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)
	testData := []struct {
		expr      string
		pattern   string
		matches   bool
		erroneous bool
	}{
		{``, `{`, false, false},
		{``, `%%%%%`, true, false},
		{`a[b]`, `%[[_]`, false, false},
		{`+`, `++`, false, false},
		{`a`, `}`, false, false},
		{`a{}%`, `%\}\%`, true, false},
		{`a{}%a`, `%\}\%\`, false, true},
		{`G\n%`, `%__%`, true, false},
		{``, `\`, false, true},
		{`ab`, `%ab\`, false, true},
		{`_%\b\n`, `%__`, true, false},
		{`_\nL_`, `%_%`, true, false},
		{`abc`, `a%c`, true, false},
		{`abc`, `a_c`, true, false},
		{`abcbc`, `a%bc`, true, false},
		{`abcbd`, `a%bc`, false, false},
		{`ABC`, `abc`, true, false},
		{`Straße`, `STRASSE`, true, false},
	}
	ctx := NewTestingEvalContext()
	for _, d := range testData {
		matches, err := MatchLike(ctx, d.expr, d.pattern, DefaultLikeEscape, LikeCaseFold)
		if err != nil && !d.erroneous {
			t.Error(err)
		} else if err == nil && d.erroneous {
			t.Errorf("%s matching the pattern %s: expected to return an error", d.expr, d.pattern)
		} else if err != nil {
			require.True(t, errors.Is(err, ErrIllegalEscape))
		} else if matches != d.matches {
			t.Errorf("%s matching the pattern %s: expected %v but found %v",
				d.expr, d.pattern, d.matches, matches)
		}
	}
}

func TestLikeEscape(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)
	testData := []struct {
		expr      string
		pattern   string
		escape    string
		matches   bool
		erroneous bool
	}{
		{``, `{`, string('\x7f'), false, false},
		{``, `}`, `}`, false, true},
		{``, `%%%%%`, ``, true, false},
		{``, `%%%%%`, `\`, true, false},
		{`a[b]`, `%[[_]`, `[`, true, false},
		{`+`, `++`, `+`, true, false},
		{`a`, `}`, `}`, false, true},
		{`a{}%`, `%}}}%`, `}`, true, false},
		{`BG_`, `%__`, `.`, true, false},
		{`_%\b\n`, `%__`, ``, true, false},
		{`_\nL_`, `%_%`, `{`, true, false},
		{`_\nL_`, `%_%`, `%`, false, true},
		{`\n\t`, `_%%_`, string('\x7f'), true, false},
		{`a%`, `a%%`, `%`, true, false},
		{`abc`, `a%%`, `%`, false, false},
		{`x`, `x`, `ab`, false, true},
	}
	ctx := NewTestingEvalContext()
	for _, d := range testData {
		if matches, err := MatchLike(ctx, d.expr, d.pattern, d.escape, LikeCaseExact); err != nil && !d.erroneous {
			t.Error(err)
		} else if err == nil && d.erroneous {
			t.Errorf("%s matching the pattern %s with escape character %s: expected to return an error",
				d.expr, d.pattern, d.escape)
		} else if matches != d.matches {
			t.Errorf("%s matching the pattern %s with escape character %s: expected %v but found %v",
				d.expr, d.pattern, d.escape, d.matches, matches)
		}
	}
}

func TestLikeCaseSensitive(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	ctx := NewTestingEvalContext()
	m, err := MatchLike(ctx, "ABC", "abc", DefaultLikeEscape, LikeCaseExact)
	require.NoError(t, err)
	require.False(t, m)

	// A second lookup is served from the cache.
	m, err = MatchLike(ctx, "abc", "abc", DefaultLikeEscape, LikeCaseExact)
	require.NoError(t, err)
	require.True(t, m)
	require.Equal(t, 1, ctx.patterns.like.Len())
}

func TestLikeSessionCollation(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	testData := []struct {
		collation string
		expr      string
		pattern   string
		mode      LikeCase
		matches   bool
	}{
		{"utf8_general_ci", "ABC", "a%", LikeCaseCollation, true},
		{"utf8_bin", "ABC", "a%", LikeCaseCollation, false},
		{"utf8_bin", "abc", "a%", LikeCaseCollation, true},
		{"utf8_bin", "ABC", "a%", LikeCaseFold, true},
		{"utf8_general_ci", "ABC", "a%", LikeCaseExact, false},
		{"en_cs", "ABC", "a%", LikeCaseCollation, false},
		{"en", "ABC", "a%", LikeCaseCollation, true},
		{"en", "ABC", "a_d", LikeCaseCollation, false},
	}
	for _, d := range testData {
		ctx := NewTestingEvalContext()
		ctx.Session.Collation = d.collation
		m, err := MatchLike(ctx, d.expr, d.pattern, DefaultLikeEscape, d.mode)
		require.NoError(t, err)
		require.Equal(t, d.matches, m, "%s LIKE %s under %s", d.expr, d.pattern, d.collation)
	}

	// Patterns compiled under one collation are not reused under another.
	ctx := NewTestingEvalContext()
	m, err := MatchLike(ctx, "ABC", "abc", DefaultLikeEscape, LikeCaseCollation)
	require.NoError(t, err)
	require.True(t, m)
	ctx.Session.Collation = "binary"
	m, err = MatchLike(ctx, "ABC", "abc", DefaultLikeEscape, LikeCaseCollation)
	require.NoError(t, err)
	require.False(t, m)
}

func TestMatchRegexp(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	ctx := NewTestingEvalContext()
	m, err := MatchRegexp(ctx, "Hello world", "^hel+o", true)
	require.NoError(t, err)
	require.True(t, m)
	m, err = MatchRegexp(ctx, "Hello world", "^hel+o", false)
	require.NoError(t, err)
	require.False(t, m)
	_, err = MatchRegexp(ctx, "x", "(", false)
	require.Error(t, err)
}

func BenchmarkLike(b *testing.B) {
	ctx := NewTestingEvalContext()
	patterns := []string{`test%`, `%test%`, `%test`, ``, `%`, `_`, `test`, `bad`, `also\%`}
	for n := 0; n < b.N; n++ {
		for _, p := range patterns {
			if _, err := MatchLike(ctx, "test", p, DefaultLikeEscape, LikeCaseFold); err != nil {
				b.Fatalf("LIKE evaluation failed with error: %v", err)
			}
		}
	}
}
