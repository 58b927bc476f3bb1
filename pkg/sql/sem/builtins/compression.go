// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtins

import (
	"bytes"
	"encoding/binary"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlscalar/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/eval"
	"github.com/cockroachdb/sqlscalar/pkg/sql/sem/tree"
	"github.com/cockroachdb/sqlscalar/pkg/sql/types"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var compressionBuiltins = map[string]builtinDefinition{
	"COMPRESS": compressionBuiltin(
		"COMPRESS(s[, codec]) compresses a string. Without a codec the result is zlib data "+
			"behind a 4-byte little-endian length, as UNCOMPRESSED_LENGTH reads it. "+
			"Codecs: gzip, lz4, snappy, zstd.",
		func(ctx tree.QueryContext, data []byte, c codec, framed bool) (tree.Value, error) {
			if framed && len(data) == 0 {
				return tree.NewVarbinary(nil), nil
			}
			out, err := c.compress(data)
			if err != nil {
				return tree.Value{}, pgerror.Wrapf(err, pgcode.Internal, "compress")
			}
			if framed {
				hdr := make([]byte, 4, 4+len(out))
				binary.LittleEndian.PutUint32(hdr, uint32(len(data)))
				out = append(hdr, out...)
			}
			return tree.NewVarbinary(out), nil
		}),
	"UNCOMPRESS": compressionBuiltin(
		"UNCOMPRESS(b[, codec]) reverses COMPRESS. NULL if b is not compressed data.",
		func(ctx tree.QueryContext, data []byte, c codec, framed bool) (tree.Value, error) {
			if framed {
				if len(data) == 0 {
					return tree.NewVarbinary(nil), nil
				}
				if len(data) < 4 {
					return eval.WarnNull(ctx, types.VarbinaryFamily, errCorruptCompressed)
				}
				data = data[4:]
			}
			out, err := c.decompress(data)
			if errors.Is(err, errUncompressTooLong) {
				return eval.WarnNull(ctx, types.VarbinaryFamily, err)
			}
			if err != nil {
				return eval.WarnNull(ctx, types.VarbinaryFamily,
					errors.WithSecondaryError(errCorruptCompressed, err))
			}
			return tree.NewVarbinary(out), nil
		}),
	"UNCOMPRESSED_LENGTH": makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryCompression,
			NullTreating: tree.NullTreatingReturnNull,
			MinArgs:      1,
			MaxArgs:      1,
			Info:         "Length of the data compressed by COMPRESS(s), read from its header.",
		},
		argsOf(isTextual, types.LongFamily),
		unary(func(ctx tree.QueryContext, v tree.Value) (tree.Value, error) {
			data, err := bytesOf(ctx, v)
			if err != nil {
				return tree.Value{}, err
			}
			if len(data) < 4 {
				return tree.NewLong(0), nil
			}
			return tree.NewLong(int64(binary.LittleEndian.Uint32(data))), nil
		}),
	),
}

// compressionBuiltin reads the data and the optional codec name of
// COMPRESS and UNCOMPRESS. framed is set when no codec was named.
func compressionBuiltin(
	info string,
	fn func(ctx tree.QueryContext, data []byte, c codec, framed bool) (tree.Value, error),
) builtinDefinition {
	return makeBuiltin(
		tree.FunctionProperties{
			Category:     categoryCompression,
			NullTreating: tree.NullTreatingReturnNull,
			MinArgs:      1,
			MaxArgs:      2,
			Info:         info,
		},
		argsOf(isTextual, types.VarbinaryFamily),
		variadic(func(ctx tree.QueryContext, vals []tree.Value) (tree.Value, error) {
			data, err := bytesOf(ctx, vals[0])
			if err != nil {
				return tree.Value{}, err
			}
			if len(vals) == 1 {
				return fn(ctx, data, zlibCodec{}, true)
			}
			name, err := tree.ExtractString(ctx, vals[1])
			if err != nil {
				return tree.Value{}, err
			}
			c, ok := codecs[strings.ToUpper(name)]
			if !ok {
				return tree.Value{}, invalidCompressionCodecError
			}
			return fn(ctx, data, c, false)
		}),
	)
}

// bytesOf returns the payload of a VARBINARY, or the bytes of the text
// form of any other value.
func bytesOf(ctx tree.QueryContext, v tree.Value) ([]byte, error) {
	if v.Type() == types.VarbinaryFamily {
		return v.Bytes(), nil
	}
	s, err := tree.ExtractString(ctx, v)
	return []byte(s), err
}

type codec interface {
	compress(uncompressedData []byte) ([]byte, error)
	decompress(compressedData []byte) ([]byte, error)
}

var codecs = map[string]codec{
	"GZIP":   gzipCodec{},
	"ZLIB":   zlibCodec{},
	"ZSTD":   zstdCodec{},
	"LZ4":    lz4Codec{},
	"SNAPPY": snappyCodec{},
}

var invalidCompressionCodecError = pgerror.New(
	pgcode.InvalidParameterValue,
	"only 'gzip', 'lz4', 'snappy', 'zlib' or 'zstd' compression codecs are supported")

var errCorruptCompressed = pgerror.New(pgcode.InvalidParameterValue, "input is not valid compressed data")

var errUncompressTooLong = resultTooLong("UNCOMPRESS")

type gzipCodec struct{}
type zlibCodec struct{}
type zstdCodec struct{}
type lz4Codec struct{}
type snappyCodec struct{}

func (c snappyCodec) compress(uncompressedData []byte) ([]byte, error) {
	return compressUsing(
		uncompressedData,
		func(buf io.Writer) (io.WriteCloser, error) {
			return snappy.NewBufferedWriter(buf), nil
		},
	)
}

func (c snappyCodec) decompress(compressedData []byte) ([]byte, error) {
	return decompressUsing(
		compressedData,
		func(buf io.Reader) (io.ReadCloser, error) {
			return io.NopCloser(snappy.NewReader(buf)), nil
		},
	)
}

func (c lz4Codec) compress(uncompressedData []byte) ([]byte, error) {
	return compressUsing(
		uncompressedData,
		func(buf io.Writer) (io.WriteCloser, error) {
			return lz4.NewWriter(buf), nil
		},
	)
}

func (c lz4Codec) decompress(compressedData []byte) ([]byte, error) {
	return decompressUsing(
		compressedData,
		func(buf io.Reader) (io.ReadCloser, error) {
			return io.NopCloser(lz4.NewReader(buf)), nil
		},
	)
}

func (c zstdCodec) compress(uncompressedData []byte) ([]byte, error) {
	return compressUsing(
		uncompressedData,
		func(buf io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(buf)
		},
	)
}

type readCloserNoError interface {
	io.Reader
	Close()
}

type noErrorCloser struct {
	readCloserNoError
}

func (c noErrorCloser) Close() error {
	c.readCloserNoError.Close()
	return nil
}

func (c zstdCodec) decompress(compressedData []byte) ([]byte, error) {
	return decompressUsing(
		compressedData,
		func(buf io.Reader) (io.ReadCloser, error) {
			r, err := zstd.NewReader(buf)
			if err != nil {
				return nil, err
			}
			return noErrorCloser{readCloserNoError: r}, nil
		})
}

func (c gzipCodec) compress(uncompressedData []byte) ([]byte, error) {
	return compressUsing(
		uncompressedData,
		func(buf io.Writer) (io.WriteCloser, error) {
			return gzip.NewWriter(buf), nil
		},
	)
}

func (c gzipCodec) decompress(compressedData []byte) ([]byte, error) {
	return decompressUsing(compressedData, func(buf io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(buf)
	})
}

func (c zlibCodec) compress(uncompressedData []byte) ([]byte, error) {
	return compressUsing(
		uncompressedData,
		func(buf io.Writer) (io.WriteCloser, error) {
			return zlib.NewWriter(buf), nil
		},
	)
}

func (c zlibCodec) decompress(compressedData []byte) ([]byte, error) {
	return decompressUsing(compressedData, zlib.NewReader)
}

// compressUsing compresses uncompressed input using compressor returned
// by the getImpl function.
func compressUsing(
	uncompressed []byte, getImpl func(buf io.Writer) (io.WriteCloser, error),
) ([]byte, error) {
	var buf bytes.Buffer
	w, err := getImpl(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(uncompressed); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decompressUsing decompresses input data using decompressor returned by
// the getImpl function. The output is bounded by maxResultLength.
func decompressUsing(
	compressedData []byte, getImpl func(buf io.Reader) (io.ReadCloser, error),
) (_ []byte, err error) {
	r, err := getImpl(bytes.NewReader(compressedData))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decompress")
	}

	defer func() {
		err = errors.CombineErrors(err, r.Close())
	}()

	decompressedBytes, err := io.ReadAll(io.LimitReader(r, maxResultLength+1))
	if err != nil {
		return nil, err
	}
	if len(decompressedBytes) > maxResultLength {
		return nil, errors.WithStack(errUncompressTooLong)
	}
	return decompressedBytes, nil
}
