// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"math"
	"math/big"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
	"github.com/cockroachdb/sqlscalar/pkg/util/leaktest"
	"github.com/cockroachdb/sqlscalar/pkg/util/log"
	"github.com/cockroachdb/sqlscalar/pkg/util/timeutil/sqldate"
	"github.com/stretchr/testify/require"
)

func TestValueAccessors(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	require.Equal(t, int64(5), NewLong(5).Int64())
	require.Equal(t, int64(-3), NewInt(-3).Int64())
	require.Equal(t, uint64(math.MaxUint64), NewUInt(math.MaxUint64).Uint64())
	require.True(t, NewBool(true).Bool())
	require.Equal(t, float64(float32(0.1)), NewFloat(0.1).Float64())
	require.Equal(t, "abc", NewVarchar("abc").StringValue())
	require.Equal(t, []byte{1, 2}, NewVarbinary([]byte{1, 2}).Bytes())

	b := big.NewInt(42)
	v := NewUBigInt(b)
	b.SetInt64(7)
	require.Equal(t, int64(42), v.BigInt().Int64(), "the payload must not alias the argument")

	t.Run("null", func(t *testing.T) {
		err := catchPanic(func() { TypedNull(types.LongFamily).Int64() })
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrValueSourceIsNull))
		require.Equal(t, pgcode.NullValueNotAllowed, pgerror.GetPGCode(err))
	})

	t.Run("mismatch", func(t *testing.T) {
		err := catchPanic(func() { NewLong(1).Float64() })
		require.Error(t, err)
		require.True(t, errors.IsAssertionFailure(err))
	})

	t.Run("negative ubigint", func(t *testing.T) {
		require.Error(t, catchPanic(func() { NewUBigInt(big.NewInt(-1)) }))
	})
}

func TestTypedNull(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	n := TypedNull(types.DateFamily)
	require.True(t, n.IsNull())
	require.Equal(t, types.DateFamily, n.Type())
	require.True(t, DNull.IsNull())
	require.Equal(t, types.NullFamily, DNull.Type())
	require.False(t, n.Equal(DNull))
	require.True(t, n.Equal(TypedNull(types.DateFamily)))
	require.Equal(t, "NULL", n.String())
}

func TestValueString(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	d := apd.New(31415, -4)
	testData := []struct {
		v   Value
		exp string
	}{
		{NewBool(false), "false"},
		{NewLong(-12), "-12"},
		{NewUInt(math.MaxUint64), "18446744073709551615"},
		{NewUBigIntFromUint64(10), "10"},
		{NewDouble(3), "3"},
		{NewDouble(2.5), "2.5"},
		{NewFloat(0.1), "0.1"},
		{NewDecimal(d), "3.1415"},
		{NewText("x y"), "x y"},
		{NewVarbinary([]byte("AB")), `\x4142`},
		{NewDateFromFields(sqldate.Fields{Year: 2006, Month: 11, Day: 7}), "2006-11-07"},
		{NewTimeFromFields(sqldate.Fields{Hour: 838, Minute: 59, Second: 59, Neg: true}), "-838:59:59"},
		{NewDateTimeFromFields(sqldate.Fields{Year: 1999, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 1}), "1999-12-31 23:59:01"},
		{NewTimestamp(0), "1970-01-01 00:00:00"},
		{NewYear(sqldate.EncodeYear(2011)), "2011"},
		{NewIntervalMonth(15), "1 year 3 mons"},
		{NewIntervalMillis(-86400000), "-1 day"},
	}
	for _, d := range testData {
		require.Equal(t, d.exp, d.v.String())
	}
}

func TestValueEqual(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	require.True(t, NewDecimal(apd.New(30, -1)).Equal(NewDecimal(apd.New(300, -2))))
	require.True(t, NewDouble(math.NaN()).Equal(NewDouble(math.NaN())))
	require.False(t, NewLong(1).Equal(NewInt(1)))
	require.False(t, NewLong(1).Equal(TypedNull(types.LongFamily)))
	require.True(t, NewUBigIntFromUint64(9).Equal(NewUBigInt(big.NewInt(9))))
}

func TestValueHolder(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	h := NewValueHolder(types.TextFamily)
	require.True(t, h.Source().IsNull())
	require.Equal(t, types.TextFamily, h.Source().Type())

	h.PutString("a")
	require.True(t, NewText("a").Equal(h.Source()))

	h.Put(DNull)
	require.True(t, h.Source().IsNull())
	require.Equal(t, types.TextFamily, h.Source().Type())

	require.Error(t, catchPanic(func() { h.PutLong(1) }))
}
