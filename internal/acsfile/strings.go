package acsfile

import (
	"fmt"
	"unicode/utf16"

	"github.com/msagent/acs/internal/binreader"
)

// readString decodes a length-prefixed UTF-16LE string: a u32 code-unit
// count, that many UTF-16 code units, then a mandatory u16 NUL terminator.
// A zero count consumes only the 4-byte length and yields "".
func readString(c *binreader.Cursor) (string, error) {
	n, err := c.U32()
	if err != nil {
		return "", fmt.Errorf("string length: %w", err)
	}
	if n == 0 {
		return "", nil
	}

	units := make([]uint16, n)
	for i := range units {
		u, err := c.U16()
		if err != nil {
			return "", fmt.Errorf("string code unit %d/%d: %w", i, n, err)
		}
		units[i] = u
	}

	if _, err := c.U16(); err != nil {
		return "", fmt.Errorf("string NUL terminator: %w", err)
	}

	if err := validateSurrogates(units); err != nil {
		return "", err
	}
	return string(utf16.Decode(units)), nil
}

// validateSurrogates rejects unpaired UTF-16 surrogates: a high surrogate
// not immediately followed by a low surrogate, or a low surrogate not
// preceded by a high one.
func validateSurrogates(units []uint16) error {
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u >= 0xD800 && u <= 0xDBFF: // high surrogate
			if i+1 >= len(units) || units[i+1] < 0xDC00 || units[i+1] > 0xDFFF {
				return fmt.Errorf("%w: unpaired high surrogate", ErrInvalidUTF16)
			}
			i++ // consume its low surrogate partner
		case u >= 0xDC00 && u <= 0xDFFF: // low surrogate with no preceding high
			return fmt.Errorf("%w: unpaired low surrogate", ErrInvalidUTF16)
		}
	}
	return nil
}
