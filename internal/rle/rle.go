// Package rle implements the two-stage pixel-plane decompression used by
// compressed ACS image entries: an outer zlib/DEFLATE layer wrapping an
// inner byte-oriented run-length stream.
package rle

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"

	"github.com/msagent/acs/internal/pool"
)

// Decode reverses both compression layers and returns exactly outSize
// uncompressed bytes: zlib-inflate compressed, then run-length decode the
// inflated stream into a buffer of outSize bytes (the row-padded,
// bottom-up DIB plane before row-padding removal). The returned slice is
// drawn from internal/pool; the caller should return it with pool.Put
// once it has copied out whatever it needs, since every image decode
// churns through an inflate/run-decode pair of this size.
func Decode(compressed []byte, inflatedSize, outSize int) ([]byte, error) {
	inflated, err := inflate(compressed, inflatedSize)
	if err != nil {
		return nil, err
	}
	out, err := decodeRuns(inflated, outSize)
	pool.Put(inflated)
	if err != nil {
		return nil, fmt.Errorf("run-length decode: %w", err)
	}
	return out, nil
}

// inflate runs the outer zlib layer into a pool-backed buffer and checks
// the result against the declared inflated size, including that the
// stream doesn't contain more than inflatedSize bytes.
func inflate(compressed []byte, inflatedSize int) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeflate, err)
	}
	defer zr.Close()

	buf := pool.Get(inflatedSize)
	n := 0
	for n < inflatedSize {
		m, err := zr.Read(buf[n:])
		n += m
		if err == io.EOF && n < inflatedSize {
			pool.Put(buf)
			return nil, fmt.Errorf("%w: inflated output is %d bytes, declared %d", ErrSizeMismatch, n, inflatedSize)
		}
		if err != nil && err != io.EOF {
			pool.Put(buf)
			return nil, fmt.Errorf("%w: %v", ErrDeflate, err)
		}
	}

	var probe [1]byte
	if n, err := io.ReadFull(zr, probe[:]); n > 0 || err != io.EOF {
		pool.Put(buf)
		return nil, fmt.Errorf("%w: inflated output longer than declared %d bytes", ErrSizeMismatch, inflatedSize)
	}
	return buf, nil
}
