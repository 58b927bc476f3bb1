// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtins

import (
	"encoding/hex"
	"math"
	"math/bits"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/eval"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// maxResultLength bounds the strings built by REPEAT, SPACE and the pad
// functions.
const maxResultLength = 16 << 20

var (
	lengthBuiltin = stringBuiltin(1, 1, types.LongFamily,
		"Length of the argument in bytes.",
		func(r *argReader, vals []tree.Value) (tree.Value, error) {
			return tree.NewLong(int64(len(r.str(vals[0])))), r.err
		})
	charLengthBuiltin = stringBuiltin(1, 1, types.LongFamily,
		"Length of the argument in characters.",
		func(r *argReader, vals []tree.Value) (tree.Value, error) {
			return tree.NewLong(int64(utf8.RuneCountInString(r.str(vals[0])))), r.err
		})
	lowerBuiltin = stringBuiltin(1, 1, types.VarcharFamily,
		"Converts to lower case.",
		func(r *argReader, vals []tree.Value) (tree.Value, error) {
			return tree.NewVarchar(cases.Lower(language.Und).String(r.str(vals[0]))), r.err
		})
	upperBuiltin = stringBuiltin(1, 1, types.VarcharFamily,
		"Converts to upper case.",
		func(r *argReader, vals []tree.Value) (tree.Value, error) {
			return tree.NewVarchar(cases.Upper(language.Und).String(r.str(vals[0]))), r.err
		})
	substringBuiltin = stringBuiltin(2, 3, types.VarcharFamily,
		"SUBSTRING(s, pos[, len]): the characters of s from the 1-based position pos. "+
			"A negative pos counts from the end.",
		func(r *argReader, vals []tree.Value) (tree.Value, error) {
			s, pos := []rune(r.str(vals[0])), r.int(vals[1])
			n, hasLen := int64(0), len(vals) == 3
			if hasLen {
				n = r.int(vals[2])
			}
			return tree.NewVarchar(substring(s, pos, n, hasLen)), r.err
		})
)

var stringBuiltins = map[string]builtinDefinition{
	"CONCAT": stringBuiltin(1, -1, types.VarcharFamily,
		"Concatenates the arguments. NULL if any argument is NULL.",
		func(r *argReader, vals []tree.Value) (tree.Value, error) {
			var b strings.Builder
			for _, v := range vals {
				b.WriteString(r.str(v))
			}
			return tree.NewVarchar(b.String()), r.err
		}),

	"CONCAT_WS": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryString,
			NullTreating: tree.NullTreatingRemoveAfterFirst,
			MinArgs:      2,
			MaxArgs:      -1,
			Info: "CONCAT_WS(sep, s1, s2, ...) concatenates the non-NULL strings, separated " +
				"by sep. NULL if sep is NULL.",
		},
		argsOf(isTextual, types.VarcharFamily),
		variadic(func(ctx tree.QueryContext, vals []tree.Value) (tree.Value, error) {
			if vals[0].IsNull() {
				return tree.DNull, nil
			}
			r := argReader{ctx: ctx}
			sep := r.str(vals[0])
			parts := make([]string, 0, len(vals)-1)
			for _, v := range vals[1:] {
				if !v.IsNull() {
					parts = append(parts, r.str(v))
				}
			}
			return tree.NewVarchar(strings.Join(parts, sep)), r.err
		}),
	),

	"LENGTH":           lengthBuiltin,
	"OCTET_LENGTH":     lengthBuiltin,
	"CHAR_LENGTH":      charLengthBuiltin,
	"CHARACTER_LENGTH": charLengthBuiltin,
	"BIT_LENGTH": stringBuiltin(1, 1, types.LongFamily,
		"Length of the argument in bits.",
		func(r *argReader, vals []tree.Value) (tree.Value, error) {
			return tree.NewLong(8 * int64(len(r.str(vals[0])))), r.err
		}),

	"LOWER":     lowerBuiltin,
	"LCASE":     lowerBuiltin,
	"UPPER":     upperBuiltin,
	"UCASE":     upperBuiltin,
	"SUBSTRING": substringBuiltin,
	"SUBSTR":    substringBuiltin,

	"LEFT": stringBuiltin(2, 2, types.VarcharFamily,
		"The n leftmost characters.",
		func(r *argReader, vals []tree.Value) (tree.Value, error) {
			s, n := []rune(r.str(vals[0])), r.int(vals[1])
			return tree.NewVarchar(string(s[:clamp(n, len(s))])), r.err
		}),
	"RIGHT": stringBuiltin(2, 2, types.VarcharFamily,
		"The n rightmost characters.",
		func(r *argReader, vals []tree.Value) (tree.Value, error) {
			s, n := []rune(r.str(vals[0])), r.int(vals[1])
			return tree.NewVarchar(string(s[len(s)-clamp(n, len(s)):])), r.err
		}),

	"TRIM": stringBuiltin(1, 2, types.VarcharFamily,
		"TRIM(s[, remstr]) removes the leading and trailing occurrences of remstr (default: spaces).",
		func(r *argReader, vals []tree.Value) (tree.Value, error) {
			s, rem := r.str(vals[0]), " "
			if len(vals) == 2 {
				rem = r.str(vals[1])
			}
			return tree.NewVarchar(trimSuffixes(trimPrefixes(s, rem), rem)), r.err
		}),
	"LTRIM": stringBuiltin(1, 1, types.VarcharFamily,
		"Removes leading spaces.",
		func(r *argReader, vals []tree.Value) (tree.Value, error) {
			return tree.NewVarchar(trimPrefixes(r.str(vals[0]), " ")), r.err
		}),
	"RTRIM": stringBuiltin(1, 1, types.VarcharFamily,
		"Removes trailing spaces.",
		func(r *argReader, vals []tree.Value) (tree.Value, error) {
			return tree.NewVarchar(trimSuffixes(r.str(vals[0]), " ")), r.err
		}),

	"LOCATE": stringBuiltin(2, 3, types.LongFamily,
		"LOCATE(substr, s[, pos]) is the 1-based position of the first occurrence of substr "+
			"in s at or after pos, or 0.",
		func(r *argReader, vals []tree.Value) (tree.Value, error) {
			sub, s, pos := r.str(vals[0]), r.str(vals[1]), int64(1)
			if len(vals) == 3 {
				pos = r.int(vals[2])
			}
			return tree.NewLong(locate(sub, s, pos)), r.err
		}),
	"POSITION": stringBuiltin(2, 2, types.LongFamily,
		"POSITION(substr, s) is LOCATE(substr, s).",
		func(r *argReader, vals []tree.Value) (tree.Value, error) {
			return tree.NewLong(locate(r.str(vals[0]), r.str(vals[1]), 1)), r.err
		}),
	"INSTR": stringBuiltin(2, 2, types.LongFamily,
		"INSTR(s, substr) is LOCATE(substr, s).",
		func(r *argReader, vals []tree.Value) (tree.Value, error) {
			return tree.NewLong(locate(r.str(vals[1]), r.str(vals[0]), 1)), r.err
		}),

	"REPEAT": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryString,
			NullTreating: tree.NullTreatingReturnNull,
			MinArgs:      2,
			MaxArgs:      2,
			Info:         "Repeats s n times.",
		},
		argsOf(isTextual, types.VarcharFamily),
		variadic(func(ctx tree.QueryContext, vals []tree.Value) (tree.Value, error) {
			r := argReader{ctx: ctx}
			s, n := r.str(vals[0]), r.int(vals[1])
			if r.err != nil {
				return tree.Value{}, r.err
			}
			if n <= 0 || s == "" {
				return tree.NewVarchar(""), nil
			}
			if n > maxResultLength/int64(len(s)) {
				return eval.WarnNull(ctx, types.VarcharFamily, resultTooLong("REPEAT"))
			}
			return tree.NewVarchar(strings.Repeat(s, int(n))), nil
		}),
	),
	"SPACE": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryString,
			NullTreating: tree.NullTreatingReturnNull,
			MinArgs:      1,
			MaxArgs:      1,
			Info:         "A string of n spaces.",
		},
		argsOf(isTextual, types.VarcharFamily),
		unary(func(ctx tree.QueryContext, v tree.Value) (tree.Value, error) {
			n, err := tree.ExtractInt64(ctx, v)
			if err != nil {
				return tree.Value{}, err
			}
			if n > maxResultLength {
				return eval.WarnNull(ctx, types.VarcharFamily, resultTooLong("SPACE"))
			}
			if n < 0 {
				n = 0
			}
			return tree.NewVarchar(strings.Repeat(" ", int(n))), nil
		}),
	),

	"REVERSE": stringBuiltin(1, 1, types.VarcharFamily,
		"Reverses the order of the characters.",
		func(r *argReader, vals []tree.Value) (tree.Value, error) {
			s := []rune(r.str(vals[0]))
			for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
				s[i], s[j] = s[j], s[i]
			}
			return tree.NewVarchar(string(s)), r.err
		}),
	"REPLACE": stringBuiltin(3, 3, types.VarcharFamily,
		"REPLACE(s, from, to) replaces every occurrence of from by to.",
		func(r *argReader, vals []tree.Value) (tree.Value, error) {
			s, from, to := r.str(vals[0]), r.str(vals[1]), r.str(vals[2])
			if from == "" {
				return tree.NewVarchar(s), r.err
			}
			return tree.NewVarchar(strings.ReplaceAll(s, from, to)), r.err
		}),

	"LPAD": padBuiltin(true),
	"RPAD": padBuiltin(false),

	"INSERT": stringBuiltin(4, 4, types.VarcharFamily,
		"INSERT(s, pos, len, new) replaces the len characters of s starting at pos by new.",
		func(r *argReader, vals []tree.Value) (tree.Value, error) {
			s, pos, n, repl := []rune(r.str(vals[0])), r.int(vals[1]), r.int(vals[2]), r.str(vals[3])
			l := int64(len(s))
			if pos < 1 || pos > l {
				return tree.NewVarchar(string(s)), r.err
			}
			end := l
			if n >= 0 && n < l-pos+1 {
				end = pos - 1 + n
			}
			return tree.NewVarchar(string(s[:pos-1]) + repl + string(s[end:])), r.err
		}),

	"ASCII": stringBuiltin(1, 1, types.LongFamily,
		"Numeric value of the first byte, or 0 for the empty string.",
		func(r *argReader, vals []tree.Value) (tree.Value, error) {
			s := r.str(vals[0])
			if s == "" {
				return tree.NewLong(0), r.err
			}
			return tree.NewLong(int64(s[0])), r.err
		}),
	"ORD": stringBuiltin(1, 1, types.LongFamily,
		"Code of the first character, combining the bytes of a multi-byte character.",
		func(r *argReader, vals []tree.Value) (tree.Value, error) {
			s := r.str(vals[0])
			if s == "" {
				return tree.NewLong(0), r.err
			}
			_, size := utf8.DecodeRuneInString(s)
			var code int64
			for i := 0; i < size; i++ {
				code = code*256 + int64(s[i])
			}
			return tree.NewLong(code), r.err
		}),
	"CHAR": stringBuiltin(1, -1, types.VarcharFamily,
		"CHAR(n1, n2, ...) is the string of the bytes of each integer.",
		func(r *argReader, vals []tree.Value) (tree.Value, error) {
			var b []byte
			for _, v := range vals {
				n := uint64(r.int(v))
				var buf [8]byte
				i := len(buf)
				for ; n > 0; n >>= 8 {
					i--
					buf[i] = byte(n)
				}
				b = append(b, buf[i:]...)
			}
			return tree.NewVarchar(string(b)), r.err
		}),

	"HEX": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryString,
			NullTreating: tree.NullTreatingReturnNull,
			MinArgs:      1,
			MaxArgs:      1,
			Info:         "Hexadecimal form of a number, or of the bytes of a string.",
		},
		argsOf(isTextual, types.VarcharFamily),
		unary(func(ctx tree.QueryContext, v tree.Value) (tree.Value, error) {
			if v.Type().IsString() {
				s, err := tree.ExtractString(ctx, v)
				return tree.NewVarchar(strings.ToUpper(hex.EncodeToString([]byte(s)))), err
			}
			if v.Type().IsUnsigned() {
				u, err := tree.ExtractUint64(ctx, v)
				return tree.NewVarchar(strings.ToUpper(strconv.FormatUint(u, 16))), err
			}
			i, err := tree.ExtractInt64(ctx, v)
			return tree.NewVarchar(strings.ToUpper(strconv.FormatUint(uint64(i), 16))), err
		}),
	),
	"UNHEX": stringBuiltin(1, 1, types.VarbinaryFamily,
		"Bytes of a hexadecimal string. NULL if the argument is not hexadecimal.",
		func(r *argReader, vals []tree.Value) (tree.Value, error) {
			s := r.str(vals[0])
			if len(s)%2 == 1 {
				s = "0" + s
			}
			b, err := hex.DecodeString(s)
			if err != nil {
				return tree.DNull, r.err
			}
			return tree.NewVarbinary(b), r.err
		}),
	"BIN": stringBuiltin(1, 1, types.VarcharFamily,
		"Binary form of an integer: CONV(n, 10, 2).",
		func(r *argReader, vals []tree.Value) (tree.Value, error) {
			res, _ := conv(r.str(vals[0]), 10, 2)
			return tree.NewVarchar(res), r.err
		}),
	"OCT": stringBuiltin(1, 1, types.VarcharFamily,
		"Octal form of an integer: CONV(n, 10, 8).",
		func(r *argReader, vals []tree.Value) (tree.Value, error) {
			res, _ := conv(r.str(vals[0]), 10, 8)
			return tree.NewVarchar(res), r.err
		}),
	"CONV": stringBuiltin(3, 3, types.VarcharFamily,
		"CONV(n, from, to) converts n between bases 2 to 36. A negative base means a signed "+
			"number. NULL for an invalid base.",
		func(r *argReader, vals []tree.Value) (tree.Value, error) {
			res, ok := conv(r.str(vals[0]), r.int(vals[1]), r.int(vals[2]))
			if !ok {
				return tree.DNull, r.err
			}
			return tree.NewVarchar(res), r.err
		}),

	"FIELD": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryString,
			NullTreating: tree.NullTreatingIgnore,
			MinArgs:      2,
			MaxArgs:      -1,
			Info: "FIELD(x, a, b, ...) is the 1-based position of the first argument equal to x, " +
				"or 0. A NULL x is never found.",
		},
		fixedReturnType(types.LongFamily),
		func(ctx tree.QueryContext, args *tree.Args) (tree.Value, error) {
			x, err := args.Get(0)
			if err != nil || x.IsNull() {
				return tree.NewLong(0), err
			}
			for i := 1; i < args.Len(); i++ {
				v, err := args.Get(i)
				if err != nil {
					return tree.Value{}, err
				}
				if v.IsNull() {
					continue
				}
				eq, err := fieldEqual(ctx, x, v)
				if err != nil {
					return tree.Value{}, err
				}
				if eq {
					return tree.NewLong(int64(i)), nil
				}
			}
			return tree.NewLong(0), nil
		},
	),
	"ELT": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryString,
			NullTreating: tree.NullTreatingIgnore,
			MinArgs:      2,
			MaxArgs:      -1,
			Info:         "ELT(n, s1, s2, ...) is the n-th string, or NULL.",
		},
		fixedReturnType(types.VarcharFamily),
		func(ctx tree.QueryContext, args *tree.Args) (tree.Value, error) {
			nv, err := args.Get(0)
			if err != nil || nv.IsNull() {
				return tree.DNull, err
			}
			n, err := tree.ExtractInt64(ctx, nv)
			if err != nil {
				return tree.Value{}, err
			}
			if n < 1 || n >= int64(args.Len()) {
				return tree.DNull, nil
			}
			v, err := args.Get(int(n))
			if err != nil || v.IsNull() {
				return tree.DNull, err
			}
			s, err := tree.ExtractString(ctx, v)
			return tree.NewVarchar(s), err
		},
	),
	"FIND_IN_SET": stringBuiltin(2, 2, types.LongFamily,
		"FIND_IN_SET(s, list) is the 1-based position of s in the comma separated list, or 0.",
		func(r *argReader, vals []tree.Value) (tree.Value, error) {
			s, list := r.str(vals[0]), r.str(vals[1])
			if list == "" || strings.Contains(s, ",") {
				return tree.NewLong(0), r.err
			}
			for i, item := range strings.Split(list, ",") {
				if item == s {
					return tree.NewLong(int64(i + 1)), r.err
				}
			}
			return tree.NewLong(0), r.err
		}),
	"STRCMP": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryString,
			NullTreating: tree.NullTreatingReturnNull,
			MinArgs:      2,
			MaxArgs:      2,
			Info:         "-1, 0 or 1 as the first string sorts before, with or after the second.",
		},
		argsOf(isTextual, types.LongFamily),
		variadic(func(ctx tree.QueryContext, vals []tree.Value) (tree.Value, error) {
			r := argReader{ctx: ctx}
			a, b := r.str(vals[0]), r.str(vals[1])
			if r.err != nil {
				return tree.Value{}, r.err
			}
			c, err := eval.CompareValues(ctx, tree.NewVarchar(a), tree.NewVarchar(b))
			return tree.NewLong(int64(c)), err
		}),
	),
	"QUOTE": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryString,
			NullTreating: tree.NullTreatingIgnore,
			MinArgs:      1,
			MaxArgs:      1,
			Info:         "Quotes a string for use in a SQL statement. QUOTE(NULL) is the word NULL.",
		},
		argsOf(isTextual, types.VarcharFamily),
		unary(func(ctx tree.QueryContext, v tree.Value) (tree.Value, error) {
			if v.IsNull() {
				return tree.NewVarchar("NULL"), nil
			}
			s, err := tree.ExtractString(ctx, v)
			if err != nil {
				return tree.Value{}, err
			}
			return tree.NewVarchar(quote(s)), nil
		}),
	),
}

// stringBuiltin is a NULL-contaminating function over textual
// arguments.
func stringBuiltin(
	minArgs, maxArgs int,
	typ types.Family,
	info string,
	fn func(r *argReader, vals []tree.Value) (tree.Value, error),
) builtinDefinition {
	return makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryString,
			NullTreating: tree.NullTreatingReturnNull,
			MinArgs:      minArgs,
			MaxArgs:      maxArgs,
			Info:         info,
		},
		argsOf(isTextual, typ),
		variadic(func(ctx tree.QueryContext, vals []tree.Value) (tree.Value, error) {
			return fn(&argReader{ctx: ctx}, vals)
		}),
	)
}

func resultTooLong(fn string) error {
	return pgerror.Newf(pgcode.InvalidParameterValue,
		"result of %s() was larger than %s", fn, humanize.IBytes(maxResultLength))
}

// clamp bounds n to [0, l].
func clamp(n int64, l int) int {
	switch {
	case n < 0:
		return 0
	case n > int64(l):
		return l
	}
	return int(n)
}

func substring(s []rune, pos, n int64, hasLen bool) string {
	l := int64(len(s))
	if pos == 0 || pos > l || -pos > l {
		return ""
	}
	start := pos - 1
	if pos < 0 {
		start = l + pos
	}
	end := l
	if hasLen {
		if n <= 0 {
			return ""
		}
		if n < l-start {
			end = start + n
		}
	}
	return string(s[start:end])
}

func trimPrefixes(s, rem string) string {
	if rem == "" {
		return s
	}
	for strings.HasPrefix(s, rem) {
		s = s[len(rem):]
	}
	return s
}

func trimSuffixes(s, rem string) string {
	if rem == "" {
		return s
	}
	for strings.HasSuffix(s, rem) {
		s = s[:len(s)-len(rem)]
	}
	return s
}

// locate returns the 1-based character position of sub in s, searching
// from the character position pos, or 0.
func locate(sub, s string, pos int64) int64 {
	r := []rune(s)
	if pos < 1 || pos > int64(len(r))+1 {
		return 0
	}
	rest := string(r[pos-1:])
	i := strings.Index(rest, sub)
	if i < 0 {
		return 0
	}
	return pos + int64(utf8.RuneCountInString(rest[:i]))
}

func padBuiltin(left bool) builtinDefinition {
	info := "RPAD(s, n, pad) pads s on the right with pad to n characters. A longer s is truncated."
	if left {
		info = "LPAD(s, n, pad) pads s on the left with pad to n characters. A longer s is truncated."
	}
	name := "RPAD"
	if left {
		name = "LPAD"
	}
	return makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryString,
			NullTreating: tree.NullTreatingReturnNull,
			MinArgs:      3,
			MaxArgs:      3,
			Info:         info,
		},
		argsOf(isTextual, types.VarcharFamily),
		variadic(func(ctx tree.QueryContext, vals []tree.Value) (tree.Value, error) {
			r := argReader{ctx: ctx}
			s, n, pad := []rune(r.str(vals[0])), r.int(vals[1]), []rune(r.str(vals[2]))
			switch {
			case r.err != nil:
				return tree.Value{}, r.err
			case n < 0:
				return tree.DNull, nil
			case n <= int64(len(s)):
				return tree.NewVarchar(string(s[:n])), nil
			case len(pad) == 0:
				return tree.DNull, nil
			case n > maxResultLength:
				return eval.WarnNull(ctx, types.VarcharFamily, resultTooLong(name))
			}
			fill := make([]rune, 0, int(n)-len(s))
			for len(fill) < cap(fill) {
				fill = append(fill, pad[len(fill)%len(pad)])
			}
			if left {
				return tree.NewVarchar(string(fill) + string(s)), nil
			}
			return tree.NewVarchar(string(s) + string(fill)), nil
		}),
	)
}

// conv converts the number written in s in base from to base to. A
// negative base denotes a signed number. Parsing stops at the first
// character that is not a digit of the base, and an out of range value
// saturates. A negative value written in an unsigned base is shown in
// 64-bit two's complement.
func conv(s string, from, to int64) (string, bool) {
	fromSigned, toSigned := from < 0, to < 0
	if fromSigned {
		from = -from
	}
	if toSigned {
		to = -to
	}
	if from < 2 || from > 36 || to < 2 || to > 36 {
		return "", false
	}
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	if neg || strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	var u uint64
	overflow := false
	for i := 0; i < len(s); i++ {
		d := digitValue(s[i])
		if d < 0 || int64(d) >= from {
			break
		}
		hi, lo := bits.Mul64(u, uint64(from))
		sum, carry := bits.Add64(lo, uint64(d), 0)
		if hi != 0 || carry != 0 {
			overflow = true
			break
		}
		u = sum
	}
	switch {
	case fromSigned && neg && (overflow || u > 1<<63):
		u = 1 << 63
	case fromSigned && !neg && (overflow || u > math.MaxInt64):
		u = math.MaxInt64
	case overflow:
		u = math.MaxUint64
	}
	if neg {
		u = -u
	}
	if toSigned && int64(u) < 0 {
		return "-" + strings.ToUpper(strconv.FormatUint(-u, int(to))), true
	}
	return strings.ToUpper(strconv.FormatUint(u, int(to))), true
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return -1
}

// fieldEqual compares the arguments of FIELD: as values when their
// types are comparable, as strings otherwise.
func fieldEqual(ctx tree.QueryContext, x, v tree.Value) (bool, error) {
	if eval.Comparable(x.Type(), v.Type()) {
		c, err := eval.CompareValues(ctx, x, v)
		return c == 0, err
	}
	r := argReader{ctx: ctx}
	a, b := r.str(x), r.str(v)
	return a == b, r.err
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\', '\'':
			b.WriteByte('\\')
			b.WriteByte(c)
		case 0:
			b.WriteString(`\0`)
		case 0x1a:
			b.WriteString(`\Z`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
