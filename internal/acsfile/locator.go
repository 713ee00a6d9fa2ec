package acsfile

import (
	"fmt"

	"github.com/msagent/acs/internal/binreader"
)

// Locator is an absolute (offset, size) pair into the archive's backing
// buffer. A zero-valued Locator (offset and size both 0) denotes "absent".
type Locator struct {
	Offset uint32
	Size   uint32
}

// IsNil reports whether the locator denotes an absent record.
func (l Locator) IsNil() bool { return l.Offset == 0 && l.Size == 0 }

// readLocator decodes a Locator from the cursor: two little-endian u32s,
// offset then size.
func readLocator(c *binreader.Cursor) (Locator, error) {
	off, err := c.U32()
	if err != nil {
		return Locator{}, fmt.Errorf("locator offset: %w", err)
	}
	size, err := c.U32()
	if err != nil {
		return Locator{}, fmt.Errorf("locator size: %w", err)
	}
	return Locator{Offset: off, Size: size}, nil
}

// deref opens a bounds-checked subcursor over the window a locator points
// to within the full archive buffer. Decoders reached through the
// returned cursor cannot read past loc.Size bytes.
func deref(full *binreader.Cursor, loc Locator) (*binreader.Cursor, error) {
	if loc.IsNil() {
		return nil, fmt.Errorf("%w: dereferencing absent locator", ErrMalformedStructure)
	}
	end := uint64(loc.Offset) + uint64(loc.Size)
	if end > uint64(full.Len()) {
		return nil, fmt.Errorf("%w: locator {offset:%d, size:%d} exceeds file length %d",
			ErrMalformedStructure, loc.Offset, loc.Size, full.Len())
	}
	return full.Sub(int(loc.Offset), int(loc.Size))
}
