package acsfile

import (
	"fmt"
	"image/color"

	"github.com/msagent/acs/internal/binreader"
)

// PaletteEntry is one on-disk RGBQUAD: blue, green, red, then a reserved
// byte that observed files always leave zero and which this decoder
// ignores rather than trusting as an alpha channel.
type PaletteEntry struct {
	Blue     uint8
	Green    uint8
	Red      uint8
	Reserved uint8
}

// Palette is the archive's shared, ordered color table. The count is
// whatever the file declares (observed files always use 256, but the
// on-disk field is a u32 and is honored as-is rather than hardcoded).
type Palette []PaletteEntry

// Resolve converts palette index i to a straight-alpha color: opaque
// unless i is the character's transparent index, in which case alpha is 0.
func (p Palette) Resolve(i uint8, transparentIndex uint8) color.NRGBA {
	e := p[i]
	a := uint8(255)
	if i == transparentIndex {
		a = 0
	}
	return color.NRGBA{R: e.Red, G: e.Green, B: e.Blue, A: a}
}

func readPalette(c *binreader.Cursor, count uint32) (Palette, error) {
	pal := make(Palette, count)
	for i := range pal {
		b, err := c.U8()
		if err != nil {
			return nil, fmt.Errorf("palette[%d].blue: %w", i, err)
		}
		g, err := c.U8()
		if err != nil {
			return nil, fmt.Errorf("palette[%d].green: %w", i, err)
		}
		r, err := c.U8()
		if err != nil {
			return nil, fmt.Errorf("palette[%d].red: %w", i, err)
		}
		reserved, err := c.U8()
		if err != nil {
			return nil, fmt.Errorf("palette[%d].reserved: %w", i, err)
		}
		pal[i] = PaletteEntry{Blue: b, Green: g, Red: r, Reserved: reserved}
	}
	return pal, nil
}
