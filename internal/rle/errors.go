package rle

import "errors"

var (
	// ErrDeflate is returned when the outer zlib stream fails to inflate.
	ErrDeflate = errors.New("acs: deflate stream corrupt")

	// ErrSizeMismatch is returned when an inflated or run-decoded payload's
	// length does not match its declared size.
	ErrSizeMismatch = errors.New("acs: decompressed size mismatch")

	// ErrTruncated is returned when the inner run stream runs out of bytes
	// before producing its expected output length.
	ErrTruncated = errors.New("acs: run-length stream truncated")
)
