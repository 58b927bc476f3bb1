// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package builtins is the library of scalar functions and operators.
// Every builtin is a tree.FunctionDefinition, registered under its
// upper-case name; Lookup and Compose resolve them by name.
package builtins

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Categories used to group the builtins in documentation.
const (
	categoryArithmetic  = "Arithmetic"
	categoryComparison  = "Comparison"
	categoryBitwise     = "Bitwise"
	categoryLogic       = "Logic"
	categoryConditional = "Conditional"
	categoryString      = "String and byte"
	categoryDateAndTime = "Date and time"
	categoryMath        = "Math and numeric"
	categoryCompression = "Compression"
	categoryCrypto      = "Cryptographic"
	categorySystemInfo  = "System info"
	categoryCast        = "Cast"
)

// builtinDefinition is a FunctionDefinition before it is given a name.
// Aliases share one builtinDefinition.
type builtinDefinition struct {
	props     tree.FunctionProperties
	typeCheck tree.TypeCheckFn
	fn        tree.EvalFn
}

func makeBuiltin(
	props tree.FunctionProperties, typeCheck tree.TypeCheckFn, fn tree.EvalFn,
) builtinDefinition {
	return builtinDefinition{props: props, typeCheck: typeCheck, fn: fn}
}

// builtins holds every registered function, by upper-case name.
var builtins = map[string]*tree.FunctionDefinition{}

// AllBuiltinNames is an array containing all the built-in function
// names, sorted in alphabetical order. This can be used for a
// deterministic walk through the builtins.
var AllBuiltinNames []string

func init() {
	for _, m := range []map[string]builtinDefinition{
		arithBuiltins,
		comparisonBuiltins,
		bitwiseBuiltins,
		logicBuiltins,
		controlBuiltins,
		stringBuiltins,
		likeBuiltins,
		mathBuiltins,
		dateTimeBuiltins,
		castBuiltins,
		compressionBuiltins,
		cryptoBuiltins,
		systemBuiltins,
	} {
		registerAll(m)
	}
	AllBuiltinNames = maps.Keys(builtins)
	slices.Sort(AllBuiltinNames)
}

// registerAll adds the definitions of m to the registry after a sanity
// check.
func registerAll(m map[string]builtinDefinition) {
	for name, b := range m {
		if name != strings.ToUpper(name) {
			panic(errors.AssertionFailedf("builtin %q must be upper case", name))
		}
		if _, exists := builtins[name]; exists {
			panic(errors.AssertionFailedf("duplicate builtin: %s", name))
		}
		if b.fn == nil || b.typeCheck == nil {
			panic(errors.AssertionFailedf("builtin %s is incomplete", name))
		}
		builtins[name] = &tree.FunctionDefinition{
			Name:               name,
			FunctionProperties: b.props,
			TypeCheck:          b.typeCheck,
			Fn:                 b.fn,
		}
	}
}

// Lookup returns the function registered under name, which is
// case-insensitive.
func Lookup(name string) (*tree.FunctionDefinition, error) {
	if def, ok := builtins[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return def, nil
	}
	return nil, errors.WithHint(
		pgerror.Newf(pgcode.UndefinedFunction, "unknown function: %s()", name),
		"the available functions are listed by `sqlscalar functions`",
	)
}

// Compose looks up the named function and composes it over args.
func Compose(name string, args ...tree.Expression) (tree.Expression, error) {
	def, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return def.Compose(args)
}

// Definitions returns every registered function, ordered by name.
func Definitions() []*tree.FunctionDefinition {
	defs := make([]*tree.FunctionDefinition, len(AllBuiltinNames))
	for i, name := range AllBuiltinNames {
		defs[i] = builtins[name]
	}
	return defs
}
