// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtins

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"hash"
	"hash/crc32"
	"strings"

	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
	"golang.org/x/crypto/sha3"
)

var sha1Builtin = hexDigestBuiltin(sha1.New, "SHA-1 checksum of the argument, as 40 hexadecimal digits.")

var cryptoBuiltins = map[string]builtinDefinition{
	"MD5":  hexDigestBuiltin(md5.New, "MD5 checksum of the argument, as 32 hexadecimal digits."),
	"SHA1": sha1Builtin,
	"SHA":  sha1Builtin,

	"SHA2": cryptoBuiltin(2, 2, types.VarcharFamily,
		"SHA2(s, bits) is the SHA-2 checksum of s in hexadecimal. bits is 224, 256, 384 or 512 "+
			"(0 means 256); any other length gives NULL.",
		func(ctx tree.QueryContext, r *argReader, vals []tree.Value) (tree.Value, error) {
			data, n := r.str(vals[0]), r.int(vals[1])
			if r.err != nil {
				return tree.Value{}, r.err
			}
			var h hash.Hash
			switch n {
			case 0, 256:
				h = sha256.New()
			case 224:
				h = sha256.New224()
			case 384:
				h = sha512.New384()
			case 512:
				h = sha512.New()
			default:
				return tree.TypedNull(types.VarcharFamily), nil
			}
			h.Write([]byte(data))
			return tree.NewVarchar(hex.EncodeToString(h.Sum(nil))), nil
		}),

	"DIGEST": cryptoBuiltin(2, 2, types.VarbinaryFamily,
		"DIGEST(data, type) computes a binary hash of data. type is the algorithm to use "+
			"(md5, sha1, sha224, sha256, sha384, sha512, sha3-224, sha3-256, sha3-384 or sha3-512).",
		func(ctx tree.QueryContext, r *argReader, vals []tree.Value) (tree.Value, error) {
			alg := r.str(vals[1])
			if r.err != nil {
				return tree.Value{}, r.err
			}
			hashFunc, err := getHashFunc(alg)
			if err != nil {
				return tree.Value{}, err
			}
			data, err := bytesOf(ctx, vals[0])
			if err != nil {
				return tree.Value{}, err
			}
			h := hashFunc()
			h.Write(data)
			return tree.NewVarbinary(h.Sum(nil)), nil
		}),

	"HMAC": cryptoBuiltin(3, 3, types.VarbinaryFamily,
		"HMAC(data, key, type) computes a keyed hash of data. type is as for DIGEST.",
		func(ctx tree.QueryContext, r *argReader, vals []tree.Value) (tree.Value, error) {
			alg := r.str(vals[2])
			if r.err != nil {
				return tree.Value{}, r.err
			}
			hashFunc, err := getHashFunc(alg)
			if err != nil {
				return tree.Value{}, err
			}
			data, err := bytesOf(ctx, vals[0])
			if err != nil {
				return tree.Value{}, err
			}
			key, err := bytesOf(ctx, vals[1])
			if err != nil {
				return tree.Value{}, err
			}
			h := hmac.New(hashFunc, key)
			h.Write(data)
			return tree.NewVarbinary(h.Sum(nil)), nil
		}),

	"CRC32": cryptoBuiltin(1, 1, types.LongFamily,
		"IEEE CRC-32 checksum of the argument.",
		func(ctx tree.QueryContext, r *argReader, vals []tree.Value) (tree.Value, error) {
			data, err := bytesOf(ctx, vals[0])
			if err != nil {
				return tree.Value{}, err
			}
			return tree.NewLong(int64(crc32.ChecksumIEEE(data))), nil
		}),

	"TO_BASE64": cryptoBuiltin(1, 1, types.VarcharFamily,
		"Base-64 encoding of the argument.",
		func(ctx tree.QueryContext, r *argReader, vals []tree.Value) (tree.Value, error) {
			data, err := bytesOf(ctx, vals[0])
			if err != nil {
				return tree.Value{}, err
			}
			return tree.NewVarchar(base64.StdEncoding.EncodeToString(data)), nil
		}),
	"FROM_BASE64": cryptoBuiltin(1, 1, types.VarbinaryFamily,
		"Decodes a base-64 string. NULL if the argument is not valid base-64.",
		func(ctx tree.QueryContext, r *argReader, vals []tree.Value) (tree.Value, error) {
			s := r.str(vals[0])
			if r.err != nil {
				return tree.Value{}, r.err
			}
			b, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return tree.TypedNull(types.VarbinaryFamily), nil
			}
			return tree.NewVarbinary(b), nil
		}),

	"RANDOM_BYTES": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryCrypto,
			NullTreating: tree.NullTreatingReturnNull,
			Volatility:   tree.VolatilityVolatile,
			MinArgs:      1,
			MaxArgs:      1,
			Info:         "RANDOM_BYTES(n) is n cryptographically random bytes, 1 <= n <= 1024.",
		},
		argsOf(isNumeric, types.VarbinaryFamily),
		unary(func(ctx tree.QueryContext, v tree.Value) (tree.Value, error) {
			n, err := tree.ExtractInt64(ctx, v)
			if err != nil {
				return tree.Value{}, err
			}
			if n < 1 || n > 1024 {
				return tree.Value{}, pgerror.Newf(pgcode.InvalidParameterValue,
					"length %d is out of range for RANDOM_BYTES", n)
			}
			b := make([]byte, n)
			if _, err := rand.Read(b); err != nil {
				return tree.Value{}, pgerror.Wrapf(err, pgcode.Internal, "RANDOM_BYTES")
			}
			return tree.NewVarbinary(b), nil
		}),
	),
}

func cryptoBuiltin(
	minArgs, maxArgs int,
	typ types.Family,
	info string,
	fn func(ctx tree.QueryContext, r *argReader, vals []tree.Value) (tree.Value, error),
) builtinDefinition {
	return makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryCrypto,
			NullTreating: tree.NullTreatingReturnNull,
			MinArgs:      minArgs,
			MaxArgs:      maxArgs,
			Info:         info,
		},
		argsOf(isTextual, typ),
		variadic(func(ctx tree.QueryContext, vals []tree.Value) (tree.Value, error) {
			return fn(ctx, &argReader{ctx: ctx}, vals)
		}),
	)
}

// hexDigestBuiltin hashes its argument and returns the lower-case
// hexadecimal digest.
func hexDigestBuiltin(newHash func() hash.Hash, info string) builtinDefinition {
	return cryptoBuiltin(1, 1, types.VarcharFamily, info,
		func(ctx tree.QueryContext, r *argReader, vals []tree.Value) (tree.Value, error) {
			data, err := bytesOf(ctx, vals[0])
			if err != nil {
				return tree.Value{}, err
			}
			h := newHash()
			h.Write(data)
			return tree.NewVarchar(hex.EncodeToString(h.Sum(nil))), nil
		})
}

// getHashFunc returns a function that will create a new hash.Hash using the
// given algorithm.
func getHashFunc(alg string) (func() hash.Hash, error) {
	switch strings.ToLower(alg) {
	case "md5":
		return md5.New, nil
	case "sha1":
		return sha1.New, nil
	case "sha224":
		return sha256.New224, nil
	case "sha256":
		return sha256.New, nil
	case "sha384":
		return sha512.New384, nil
	case "sha512":
		return sha512.New, nil
	case "sha3-224":
		return sha3.New224, nil
	case "sha3-256":
		return sha3.New256, nil
	case "sha3-384":
		return sha3.New384, nil
	case "sha3-512":
		return sha3.New512, nil
	default:
		return nil, pgerror.Newf(pgcode.InvalidParameterValue, "cannot use %q, no such hash algorithm", alg)
	}
}
