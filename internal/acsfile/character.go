package acsfile

import (
	"fmt"

	"github.com/msagent/acs/animation"
	"github.com/msagent/acs/internal/binreader"
)

// Character feature flag bits (CharacterInfo.Flags).
const (
	FlagVoiceOutputEnabled = 0x01
	FlagBalloonAutoHide    = 0x02
	FlagBalloonAutoPace    = 0x04
	FlagStdAnimSetSupport  = 0x20
)

// TrayIcon holds an optional system-tray icon as opaque bytes (typically
// an ICO image). The core never decodes it to pixels; no operation in
// this spec needs to.
type TrayIcon struct {
	Bytes []byte
}

// CharacterInfo is the character's top-level metadata: identity,
// dimensions, palette, voice/balloon configuration, and state table.
type CharacterInfo struct {
	MinorVersion uint16
	MajorVersion uint16

	LocalizedInfo []LocalizedInfo

	GUID GUID

	Width             uint16
	Height            uint16
	TransparentIndex  uint8
	Flags             uint32
	AnimMinorVersion  uint16
	AnimMajorVersion  uint16

	Voice   VoiceInfo
	Balloon BalloonInfo

	Palette Palette

	HasTrayIcon bool
	TrayIcon    TrayIcon

	States animation.StateTable
}

// VoiceOutputEnabled reports FlagVoiceOutputEnabled.
func (ci CharacterInfo) VoiceOutputEnabled() bool { return ci.Flags&FlagVoiceOutputEnabled != 0 }

// BalloonAutoHide reports FlagBalloonAutoHide.
func (ci CharacterInfo) BalloonAutoHide() bool { return ci.Flags&FlagBalloonAutoHide != 0 }

// BalloonAutoPace reports FlagBalloonAutoPace.
func (ci CharacterInfo) BalloonAutoPace() bool { return ci.Flags&FlagBalloonAutoPace != 0 }

// StdAnimSetSupport reports FlagStdAnimSetSupport.
func (ci CharacterInfo) StdAnimSetSupport() bool { return ci.Flags&FlagStdAnimSetSupport != 0 }

// readCharacterInfo decodes the CharacterInfo record per §6's field order.
func readCharacterInfo(full *binreader.Cursor, loc Locator) (CharacterInfo, error) {
	c, err := deref(full, loc)
	if err != nil {
		return CharacterInfo{}, fmt.Errorf("character info: %w", err)
	}

	var ci CharacterInfo
	if ci.MinorVersion, err = c.U16(); err != nil {
		return CharacterInfo{}, fmt.Errorf("character minor version: %w", err)
	}
	if ci.MajorVersion, err = c.U16(); err != nil {
		return CharacterInfo{}, fmt.Errorf("character major version: %w", err)
	}

	locInfoLoc, err := readLocator(c)
	if err != nil {
		return CharacterInfo{}, fmt.Errorf("localized info locator: %w", err)
	}
	if !locInfoLoc.IsNil() {
		sub, err := deref(full, locInfoLoc)
		if err != nil {
			return CharacterInfo{}, fmt.Errorf("localized info: %w", err)
		}
		if ci.LocalizedInfo, err = readLocalizedInfoList(sub); err != nil {
			return CharacterInfo{}, fmt.Errorf("localized info: %w", err)
		}
	}

	if ci.GUID, err = readGUID(c); err != nil {
		return CharacterInfo{}, fmt.Errorf("character guid: %w", err)
	}
	if ci.Width, err = c.U16(); err != nil {
		return CharacterInfo{}, fmt.Errorf("character width: %w", err)
	}
	if ci.Height, err = c.U16(); err != nil {
		return CharacterInfo{}, fmt.Errorf("character height: %w", err)
	}
	if ci.TransparentIndex, err = c.U8(); err != nil {
		return CharacterInfo{}, fmt.Errorf("character transparent index: %w", err)
	}
	if ci.Flags, err = c.U32(); err != nil {
		return CharacterInfo{}, fmt.Errorf("character flags: %w", err)
	}
	if ci.AnimMinorVersion, err = c.U16(); err != nil {
		return CharacterInfo{}, fmt.Errorf("character anim minor version: %w", err)
	}
	if ci.AnimMajorVersion, err = c.U16(); err != nil {
		return CharacterInfo{}, fmt.Errorf("character anim major version: %w", err)
	}

	if ci.Voice, err = readVoiceInfo(c); err != nil {
		return CharacterInfo{}, fmt.Errorf("character voice info: %w", err)
	}
	if ci.Balloon, err = readBalloonInfo(c); err != nil {
		return CharacterInfo{}, fmt.Errorf("character balloon info: %w", err)
	}

	paletteCount, err := c.U32()
	if err != nil {
		return CharacterInfo{}, fmt.Errorf("character palette count: %w", err)
	}
	if ci.Palette, err = readPalette(c, paletteCount); err != nil {
		return CharacterInfo{}, fmt.Errorf("character palette: %w", err)
	}
	if uint32(ci.TransparentIndex)+1 > paletteCount {
		return CharacterInfo{}, fmt.Errorf("%w: transparent index %d exceeds palette count %d",
			ErrMalformedStructure, ci.TransparentIndex, paletteCount)
	}

	hasTray, err := c.U8()
	if err != nil {
		return CharacterInfo{}, fmt.Errorf("character has_tray_icon: %w", err)
	}
	ci.HasTrayIcon = hasTray != 0
	if ci.HasTrayIcon {
		b, err := readDataBlock(c)
		if err != nil {
			return CharacterInfo{}, fmt.Errorf("character tray icon: %w", err)
		}
		ci.TrayIcon = TrayIcon{Bytes: b}
	}

	if ci.States, err = readStateTable(c); err != nil {
		return CharacterInfo{}, fmt.Errorf("character state table: %w", err)
	}

	return ci, nil
}
