// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package sessiondata

import (
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/language"
)

// DefaultCollation compares strings case-insensitively after simple
// case folding.
const DefaultCollation = "utf8_general_ci"

// CollationKind classifies a collation name.
type CollationKind int

const (
	// CollationCaseInsensitive folds case before comparing code points.
	CollationCaseInsensitive CollationKind = iota
	// CollationBinary compares bytes.
	CollationBinary
	// CollationLocale uses the Unicode collation algorithm tailored to a
	// language; the name is a BCP 47 tag optionally suffixed with _ci
	// or _cs (the default is _ci).
	CollationLocale
	// CollationLocaleCaseSensitive is CollationLocale with _cs.
	CollationLocaleCaseSensitive
)

// ParseCollation classifies a collation name and, for locale
// collations, returns the language.
func ParseCollation(name string) (CollationKind, language.Tag, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "", DefaultCollation, "utf8mb4_general_ci", "latin1_swedish_ci":
		return CollationCaseInsensitive, language.Und, nil
	case "binary", "utf8_bin", "utf8mb4_bin":
		return CollationBinary, language.Und, nil
	}
	kind := CollationLocale
	switch {
	case strings.HasSuffix(n, "_cs"):
		kind = CollationLocaleCaseSensitive
		n = strings.TrimSuffix(n, "_cs")
	case strings.HasSuffix(n, "_ci"):
		n = strings.TrimSuffix(n, "_ci")
	}
	tag, err := language.Parse(n)
	if err != nil {
		return 0, language.Und, errors.Wrapf(err, "invalid collation %q", name)
	}
	return kind, tag, nil
}
