package acsfile

import (
	"fmt"

	"github.com/msagent/acs/internal/binreader"
)

// Magic is the required ACS v2 header signature.
const Magic uint32 = 0xABCDABC3

// headerSize is the fixed 36-byte header: a u32 magic followed by four
// 8-byte locators (character info, animation info, image info, audio
// info).
const headerSize = 4 + 4*8

// Header holds the four root locators read from the archive header.
type Header struct {
	CharacterInfo Locator
	AnimationInfo Locator
	ImageInfo     Locator
	AudioInfo     Locator
}

// readHeader validates the magic signature and decodes the four root
// locators from the start of the archive.
func readHeader(c *binreader.Cursor) (Header, error) {
	magic, err := c.U32()
	if err != nil {
		return Header{}, fmt.Errorf("magic: %w", err)
	}
	if magic != Magic {
		return Header{}, fmt.Errorf("%w: got 0x%08X, want 0x%08X", ErrInvalidMagic, magic, Magic)
	}

	var h Header
	for _, loc := range []*Locator{&h.CharacterInfo, &h.AnimationInfo, &h.ImageInfo, &h.AudioInfo} {
		l, err := readLocator(c)
		if err != nil {
			return Header{}, fmt.Errorf("header locator: %w", err)
		}
		*loc = l
	}
	return h, nil
}
