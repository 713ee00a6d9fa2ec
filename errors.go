package acs

import (
	"github.com/msagent/acs/internal/acsfile"
	"github.com/msagent/acs/internal/binreader"
	"github.com/msagent/acs/internal/rle"
)

// Sentinel errors surfaced by Open and the Archive accessors. These alias
// the internal parser's errors so callers can use errors.Is without ever
// importing internal/acsfile, internal/binreader, or internal/rle
// themselves — e.g. a caller distinguishing a single corrupt image's
// ErrDeflate from a fatal Open error to fall back to a placeholder.
var (
	ErrInvalidMagic       = acsfile.ErrInvalidMagic
	ErrInvalidUTF16       = acsfile.ErrInvalidUTF16
	ErrIndexOutOfRange    = acsfile.ErrIndexOutOfRange
	ErrMalformedStructure = acsfile.ErrMalformedStructure
	ErrUnexpectedEOF      = binreader.ErrUnexpectedEOF
	ErrDeflate            = rle.ErrDeflate
	ErrSizeMismatch       = rle.ErrSizeMismatch
	ErrTruncated          = rle.ErrTruncated
)
