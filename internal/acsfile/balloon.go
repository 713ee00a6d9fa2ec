package acsfile

import (
	"fmt"

	"github.com/msagent/acs/internal/binreader"
)

// BalloonInfo describes how the host front-end should draw the
// character's speech balloon. The core never renders text itself (the
// host front-end is an external collaborator); this is decoded and
// exposed purely because §6 commits to the byte layout and a real
// balloon renderer needs it.
type BalloonInfo struct {
	Lines         uint8
	CharsPerLine  uint8
	Foreground    PaletteEntry
	Background    PaletteEntry
	Border        PaletteEntry
	FontName      string
	FontHeight    int32
	FontWeight    int32
	Italic        bool
	ReservedByte  uint8
}

func readRGBQUAD(c *binreader.Cursor) (PaletteEntry, error) {
	b, err := c.U8()
	if err != nil {
		return PaletteEntry{}, err
	}
	g, err := c.U8()
	if err != nil {
		return PaletteEntry{}, err
	}
	r, err := c.U8()
	if err != nil {
		return PaletteEntry{}, err
	}
	reserved, err := c.U8()
	if err != nil {
		return PaletteEntry{}, err
	}
	return PaletteEntry{Blue: b, Green: g, Red: r, Reserved: reserved}, nil
}

func readBalloonInfo(c *binreader.Cursor) (BalloonInfo, error) {
	var bi BalloonInfo
	var err error

	if bi.Lines, err = c.U8(); err != nil {
		return BalloonInfo{}, fmt.Errorf("balloon lines: %w", err)
	}
	if bi.CharsPerLine, err = c.U8(); err != nil {
		return BalloonInfo{}, fmt.Errorf("balloon chars_per_line: %w", err)
	}
	if bi.Foreground, err = readRGBQUAD(c); err != nil {
		return BalloonInfo{}, fmt.Errorf("balloon foreground: %w", err)
	}
	if bi.Background, err = readRGBQUAD(c); err != nil {
		return BalloonInfo{}, fmt.Errorf("balloon background: %w", err)
	}
	if bi.Border, err = readRGBQUAD(c); err != nil {
		return BalloonInfo{}, fmt.Errorf("balloon border: %w", err)
	}
	if bi.FontName, err = readString(c); err != nil {
		return BalloonInfo{}, fmt.Errorf("balloon font name: %w", err)
	}
	if bi.FontHeight, err = c.I32(); err != nil {
		return BalloonInfo{}, fmt.Errorf("balloon font height: %w", err)
	}
	if bi.FontWeight, err = c.I32(); err != nil {
		return BalloonInfo{}, fmt.Errorf("balloon font weight: %w", err)
	}
	italic, err := c.U8()
	if err != nil {
		return BalloonInfo{}, fmt.Errorf("balloon italic: %w", err)
	}
	bi.Italic = italic != 0
	if bi.ReservedByte, err = c.U8(); err != nil {
		return BalloonInfo{}, fmt.Errorf("balloon reserved: %w", err)
	}
	return bi, nil
}
