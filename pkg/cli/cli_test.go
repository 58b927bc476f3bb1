// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/sqlscalar/pkg/cli/exit"
	"github.com/cockroachdb/sqlscalar/pkg/util/leaktest"
	"github.com/cockroachdb/sqlscalar/pkg/util/log"
	"github.com/stretchr/testify/require"
)

const testNow = "--now=2026-01-02T03:04:05Z"

func runCLI(t *testing.T, args ...string) (stdout, stderr string, code exit.Code) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = Run(args, &out, &errOut)
	return out.String(), errOut.String(), code
}

func TestEval(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	testData := []struct {
		args   []string
		stdout string
		stderr string
		code   exit.Code
	}{
		{
			args:   []string{"eval", `CONCAT(varchar:a, UPPER(varchar:b))`, `+(long:1, $1:long)`, "--param", "long:41"},
			stdout: "'aB'\n42\n",
			code:   exit.Success(),
		},
		{
			args:   []string{"eval", `+(@0:long, @1:long)`, "--field", "long:2", "--field", "long:null"},
			stdout: "NULL\n",
			code:   exit.Success(),
		},
		{
			args:   []string{"eval", `CURRENT_DATE()`},
			stdout: "2026-01-02\n",
			code:   exit.Success(),
		},
		{
			args:   []string{"eval", `HOUR(date:2009-12-12)`},
			stdout: "NULL\n",
			stderr: "SQLSTATE 22023",
			code:   exit.Success(),
		},
		{
			args:   []string{"eval", `/(long:1, long:0)`},
			stderr: "SQLSTATE: 22012",
			code:   exit.EvalError(),
		},
		{
			args:   []string{"eval", "--division-by-zero=null", `/(long:1, long:0)`},
			stdout: "NULL\n",
			stderr: "SQLSTATE 22012",
			code:   exit.Success(),
		},
		{
			args:   []string{"eval", `+(long:1`},
			stderr: "SQLSTATE: 42601",
			code:   exit.EvalError(),
		},
		{
			args:   []string{"eval", `NO_SUCH_FUNCTION()`},
			stderr: "HINT: the available functions are listed",
			code:   exit.EvalError(),
		},
		{
			args:   []string{"eval", `+(@0:long, long:1)`},
			stderr: "pass its fields with --field",
			code:   exit.CommandLineFlagError(),
		},
		{
			args:   []string{"eval", "--time-zone=Mars/Olympus", `NOW()`},
			stderr: "invalid time_zone",
			code:   exit.CommandLineFlagError(),
		},
		{
			args:   []string{"eval", "--param", "long", `$1:long`},
			stderr: "invalid --param",
			code:   exit.CommandLineFlagError(),
		},
		{
			args:   []string{"eval", "--normalize", `*(+(long:1, long:2), @0:long)`, "--field", "long:5"},
			stdout: "15\n",
			code:   exit.Success(),
		},
	}
	for _, d := range testData {
		t.Run(d.args[1], func(t *testing.T) {
			stdout, stderr, code := runCLI(t, append([]string{testNow}, d.args...)...)
			require.Equal(t, d.code, code, "stderr: %s", stderr)
			require.Equal(t, d.stdout, stdout)
			if d.stderr == "" {
				require.Empty(t, stderr)
			} else {
				require.Contains(t, stderr, d.stderr)
			}
		})
	}
}

func TestConfigFile(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
user: alice
database: shop
division_by_zero: "null"
`), 0644))

	stdout, stderr, code := runCLI(t, testNow, "--config", path,
		"eval", `CURRENT_USER()`, `DATABASE()`, `/(long:1, long:0)`)
	require.Equal(t, exit.Success(), code, stderr)
	require.Equal(t, "'alice'\n'shop'\nNULL\n", stdout)

	// Flags take precedence over the file.
	stdout, stderr, code = runCLI(t, testNow, "--config", path, "--user", "bob",
		"eval", `CURRENT_USER()`)
	require.Equal(t, exit.Success(), code, stderr)
	require.Equal(t, "'bob'\n", stdout)

	require.NoError(t, os.WriteFile(path, []byte("max_warnings: -1\n"), 0644))
	_, stderr, code = runCLI(t, "--config", path, "eval", `long:1`)
	require.Equal(t, exit.CommandLineFlagError(), code)
	require.Contains(t, stderr, "max_warnings")
}

func TestMetrics(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	stdout, stderr, code := runCLI(t, testNow, "--division-by-zero=null",
		"eval", "--metrics", `/(long:1, long:0)`, `/(long:2, long:0)`)
	require.Equal(t, exit.Success(), code, stderr)
	require.Contains(t, stdout, `sqlscalar_eval_warnings_total{code="22012"} 2`)
}

func TestExplain(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	stdout, stderr, code := runCLI(t, testNow, "explain", `+(long:1, @0:long)`)
	require.Equal(t, exit.Success(), code, stderr)
	require.Contains(t, stdout, "kind: BINARY_OPERATOR")
	require.Contains(t, stdout, "name: +")
	require.Contains(t, stdout, "type: LONG")

	stdout, stderr, code = runCLI(t, testNow, "explain", "--format=text", "--verbose",
		`UPPER(varchar:a)`)
	require.Equal(t, exit.Success(), code, stderr)
	require.Contains(t, stdout, "FUNCTION UPPER [type=VARCHAR constant=true")

	stdout, stderr, code = runCLI(t, testNow, "--normalize", "explain", "--format=text",
		`UPPER(varchar:a)`)
	require.Equal(t, exit.Success(), code, stderr)
	require.NotContains(t, stdout, "UPPER")

	_, _, code = runCLI(t, testNow, "explain", "--format=xml", `long:1`)
	require.Equal(t, exit.CommandLineFlagError(), code)
}

func TestFunctions(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	stdout, stderr, code := runCLI(t, "functions", "^concat$")
	require.Equal(t, exit.Success(), code, stderr)
	require.Contains(t, stdout, "CONCAT(")
	require.Contains(t, stdout, "(1 function)")

	stdout, stderr, code = runCLI(t, "functions", "--category", "compression")
	require.Equal(t, exit.Success(), code, stderr)
	require.Contains(t, stdout, "UNCOMPRESS")
	require.NotContains(t, stdout, "CONCAT")

	_, _, code = runCLI(t, "functions", "(")
	require.Equal(t, exit.CommandLineFlagError(), code)
}
