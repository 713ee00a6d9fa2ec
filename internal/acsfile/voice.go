package acsfile

import (
	"fmt"

	"github.com/msagent/acs/internal/binreader"
)

// VoiceGender enumerates the VoiceInfo extra block's gender field.
type VoiceGender uint16

const (
	VoiceGenderNeutral VoiceGender = 0
	VoiceGenderFemale  VoiceGender = 1
	VoiceGenderMale    VoiceGender = 2
)

// VoiceInfo describes the character's SAPI4 voice selection. The Extra
// fields are only present (and only meaningful) when HasExtra is true.
type VoiceInfo struct {
	EngineID GUID
	ModeID   GUID
	Speed    uint32
	Pitch    uint16
	HasExtra bool

	LangID  uint16
	Dialect string
	Gender  VoiceGender
	Age     uint16
	Style   string
}

func readVoiceInfo(c *binreader.Cursor) (VoiceInfo, error) {
	var v VoiceInfo
	var err error

	if v.EngineID, err = readGUID(c); err != nil {
		return VoiceInfo{}, fmt.Errorf("voice engine id: %w", err)
	}
	if v.ModeID, err = readGUID(c); err != nil {
		return VoiceInfo{}, fmt.Errorf("voice mode id: %w", err)
	}
	if v.Speed, err = c.U32(); err != nil {
		return VoiceInfo{}, fmt.Errorf("voice speed: %w", err)
	}
	if v.Pitch, err = c.U16(); err != nil {
		return VoiceInfo{}, fmt.Errorf("voice pitch: %w", err)
	}
	hasExtra, err := c.U8()
	if err != nil {
		return VoiceInfo{}, fmt.Errorf("voice has_extra: %w", err)
	}
	v.HasExtra = hasExtra != 0
	if !v.HasExtra {
		return v, nil
	}

	if v.LangID, err = c.U16(); err != nil {
		return VoiceInfo{}, fmt.Errorf("voice lang id: %w", err)
	}
	if v.Dialect, err = readString(c); err != nil {
		return VoiceInfo{}, fmt.Errorf("voice dialect: %w", err)
	}
	gender, err := c.U16()
	if err != nil {
		return VoiceInfo{}, fmt.Errorf("voice gender: %w", err)
	}
	if v.Gender, err = voiceGenderFromU16(gender); err != nil {
		return VoiceInfo{}, fmt.Errorf("voice gender: %w", err)
	}
	if v.Age, err = c.U16(); err != nil {
		return VoiceInfo{}, fmt.Errorf("voice age: %w", err)
	}
	if v.Style, err = readString(c); err != nil {
		return VoiceInfo{}, fmt.Errorf("voice style: %w", err)
	}
	return v, nil
}

// voiceGenderFromU16 validates a wire gender value against the known
// domain {Neutral, Female, Male}, failing on any other value instead of
// silently coercing it into an out-of-range VoiceGender.
func voiceGenderFromU16(v uint16) (VoiceGender, error) {
	switch VoiceGender(v) {
	case VoiceGenderNeutral, VoiceGenderFemale, VoiceGenderMale:
		return VoiceGender(v), nil
	default:
		return 0, fmt.Errorf("%w: unrecognized voice gender %d", ErrMalformedStructure, v)
	}
}
