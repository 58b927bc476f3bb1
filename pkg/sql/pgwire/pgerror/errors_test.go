// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package pgerror_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/util/leaktest"
	"github.com/stretchr/testify/require"
)

func TestGetPGCode(t *testing.T) {
	defer leaktest.AfterTest(t)()

	testData := []struct {
		err  error
		code pgcode.Code
	}{
		{nil, pgcode.Uncategorized},
		{errors.New("plain"), pgcode.Uncategorized},
		{pgerror.New(pgcode.DivisionByZero, "division by zero"), pgcode.DivisionByZero},
		{pgerror.Newf(pgcode.Overflow, "overflow in %s", "+"), pgcode.Overflow},
		{errors.AssertionFailedf("oops"), pgcode.Internal},
		// The innermost code wins.
		{
			pgerror.Wrap(pgerror.New(pgcode.DivisionByZero, "div"), pgcode.InvalidParameterValue, "outer"),
			pgcode.DivisionByZero,
		},
		{
			pgerror.Wrapf(errors.New("plain"), pgcode.InvalidIntervalFormat, "interval %q", "1:x"),
			pgcode.InvalidIntervalFormat,
		},
		{
			errors.Wrap(pgerror.New(pgcode.WrongArity, "arity"), "composing"),
			pgcode.WrongArity,
		},
	}
	for _, d := range testData {
		require.Equal(t, d.code, pgerror.GetPGCode(d.err), "%v", d.err)
	}
}

func TestWrap(t *testing.T) {
	defer leaktest.AfterTest(t)()

	err := errors.New("boom")
	require.Nil(t, pgerror.Wrap(nil, pgcode.Internal, "x"))

	e1 := pgerror.Wrap(err, pgcode.InvalidParameterValue, "")
	require.Equal(t, "boom", e1.Error())
	require.True(t, pgerror.HasCode(e1, pgcode.InvalidParameterValue))
	require.True(t, errors.Is(e1, err))

	e2 := pgerror.Wrapf(err, pgcode.InvalidParameterValue, "in %s", "LIKE")
	require.Equal(t, "in LIKE: boom", e2.Error())
}
