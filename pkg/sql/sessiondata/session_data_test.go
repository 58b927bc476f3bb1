// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package sessiondata

import (
	"testing"
	"time"

	"github.com/cockroachdb/sqlscalar/pkg/util/leaktest"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestParse(t *testing.T) {
	defer leaktest.AfterTest(t)()

	sd, err := Parse([]byte(`
user: alice
time_zone: "+05:30"
division_by_zero: "null"
div_precision_increment: 6
collation: de_cs
`))
	require.NoError(t, err)
	require.Equal(t, "alice", sd.User)
	require.Equal(t, "test", sd.Database)
	require.Equal(t, DivisionByZeroNull, sd.DivisionByZero)
	require.Equal(t, 6, sd.DivPrecisionIncrement)
	_, off := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).In(sd.Location()).Zone()
	require.Equal(t, 5*3600+30*60, off)

	kind, tag, err := ParseCollation(sd.Collation)
	require.NoError(t, err)
	require.Equal(t, CollationLocaleCaseSensitive, kind)
	require.Equal(t, language.German, tag)

	for _, bad := range []string{
		"time_zone: Mars/Olympus",
		"division_by_zero: maybe",
		"div_precision_increment: 31",
		"like_escape: ab",
		"collation: '!!'",
	} {
		_, err := Parse([]byte(bad))
		require.Error(t, err, bad)
	}
}

func TestRegisterFlags(t *testing.T) {
	defer leaktest.AfterTest(t)()

	sd := Default()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	sd.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"--division-by-zero=null", "--time-zone=America/New_York", "--like-escape=!",
	}))
	require.NoError(t, sd.Validate())
	require.Equal(t, DivisionByZeroNull, sd.DivisionByZero)
	require.Equal(t, "America/New_York", sd.Location().String())
	require.Equal(t, "!", sd.LikeEscape)

	require.Error(t, fs.Parse([]string{"--division-by-zero=never"}))
}

func TestGetFloatPrec(t *testing.T) {
	defer leaktest.AfterTest(t)()

	c := DataConversionConfig{}
	require.Equal(t, 15, c.GetFloatPrec())
	c.ExtraFloatDigits = 3
	require.Equal(t, -1, c.GetFloatPrec())
	c.ExtraFloatDigits = -15
	require.Equal(t, 1, c.GetFloatPrec())
}
