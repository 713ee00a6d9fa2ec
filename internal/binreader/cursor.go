// Package binreader provides a bounds-checked, little-endian cursor over a
// byte slice. It is the lowest layer of the ACS archive parser: every
// record decoder in internal/acsfile reads through a Cursor rather than
// indexing the backing buffer directly.
package binreader

import (
	"errors"
	"fmt"
)

// ErrUnexpectedEOF is returned when a read requests more bytes than remain
// between the cursor's position and the end of its window.
var ErrUnexpectedEOF = errors.New("acs: unexpected end of data")

// Cursor reads little-endian primitives from a byte slice, tracking an
// absolute position. A Cursor never reads past the end of its own buffer;
// Sub carves out a bounds-checked window for nested records.
type Cursor struct {
	buf []byte
	pos int
}

// New creates a Cursor over buf starting at position 0.
func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Len returns the number of bytes in the cursor's buffer.
func (c *Cursor) Len() int { return len(c.buf) }

// Pos returns the current absolute read position.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Seek moves the cursor to an absolute offset within its buffer. It fails
// if offset is out of range.
func (c *Cursor) Seek(offset int) error {
	if offset < 0 || offset > len(c.buf) {
		return fmt.Errorf("%w: seek to %d, len %d", ErrUnexpectedEOF, offset, len(c.buf))
	}
	c.pos = offset
	return nil
}

// Sub returns a new Cursor whose buffer is the window [offset, offset+size)
// of c's underlying buffer, positioned at its start. Reads through the
// returned Cursor cannot escape that window.
func (c *Cursor) Sub(offset, size int) (*Cursor, error) {
	if offset < 0 || size < 0 || offset+size > len(c.buf) {
		return nil, fmt.Errorf("%w: sub-window [%d,%d) exceeds buffer of len %d", ErrUnexpectedEOF, offset, offset+size, len(c.buf))
	}
	return &Cursor{buf: c.buf[offset : offset+size]}, nil
}

func (c *Cursor) require(n int) error {
	if c.Remaining() < n {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrUnexpectedEOF, n, c.Remaining())
	}
	return nil
}

// Bytes reads and returns the next n bytes as a sub-slice of the cursor's
// underlying buffer (no copy).
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if err := c.require(n); err != nil {
		return nil, err
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// U8 reads an unsigned 8-bit integer.
func (c *Cursor) U8() (uint8, error) {
	if err := c.require(1); err != nil {
		return 0, err
	}
	v := c.buf[c.pos]
	c.pos++
	return v, nil
}

// U16 reads a little-endian unsigned 16-bit integer.
func (c *Cursor) U16() (uint16, error) {
	if err := c.require(2); err != nil {
		return 0, err
	}
	v := uint16(c.buf[c.pos]) | uint16(c.buf[c.pos+1])<<8
	c.pos += 2
	return v, nil
}

// I16 reads a little-endian signed 16-bit integer.
func (c *Cursor) I16() (int16, error) {
	v, err := c.U16()
	return int16(v), err
}

// U32 reads a little-endian unsigned 32-bit integer.
func (c *Cursor) U32() (uint32, error) {
	if err := c.require(4); err != nil {
		return 0, err
	}
	v := uint32(c.buf[c.pos]) | uint32(c.buf[c.pos+1])<<8 |
		uint32(c.buf[c.pos+2])<<16 | uint32(c.buf[c.pos+3])<<24
	c.pos += 4
	return v, nil
}

// I32 reads a little-endian signed 32-bit integer.
func (c *Cursor) I32() (int32, error) {
	v, err := c.U32()
	return int32(v), err
}
