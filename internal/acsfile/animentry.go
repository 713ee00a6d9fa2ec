package acsfile

import (
	"fmt"

	"github.com/msagent/acs/animation"
	"github.com/msagent/acs/internal/binreader"
)

// sentinelNone marks an absent optional u16 field (sound_index) and,
// decoded as i16, an absent exit_frame.
const sentinelNone = 0xFFFF

// AnimationEntry is one archive animation: its outer name (duplicated
// inside the decoded record) and the locator of its frame data.
type AnimationEntry struct {
	Name string
	Data Locator
}

// readAnimationInfoList decodes an AnimationInfoList: u32 count, then
// count {String name, locator} entries.
func readAnimationInfoList(c *binreader.Cursor) ([]AnimationEntry, error) {
	count, err := c.U32()
	if err != nil {
		return nil, fmt.Errorf("animation list count: %w", err)
	}
	entries := make([]AnimationEntry, count)
	for i := range entries {
		name, err := readString(c)
		if err != nil {
			return nil, fmt.Errorf("animation[%d] name: %w", i, err)
		}
		loc, err := readLocator(c)
		if err != nil {
			return nil, fmt.Errorf("animation[%d] data locator: %w", i, err)
		}
		entries[i] = AnimationEntry{Name: name, Data: loc}
	}
	return entries, nil
}

// readAnimation decodes the Animation record at entry.Data: name,
// transition_type, an optional return_animation, then a frame list.
func readAnimation(full *binreader.Cursor, entry AnimationEntry) (*animation.Animation, error) {
	c, err := deref(full, entry.Data)
	if err != nil {
		return nil, fmt.Errorf("animation %q: %w", entry.Name, err)
	}

	name, err := readString(c)
	if err != nil {
		return nil, fmt.Errorf("animation %q name: %w", entry.Name, err)
	}
	transitionByte, err := c.U8()
	if err != nil {
		return nil, fmt.Errorf("animation %q transition type: %w", entry.Name, err)
	}
	transitionType, err := transitionTypeFromByte(transitionByte)
	if err != nil {
		return nil, fmt.Errorf("animation %q transition type: %w", entry.Name, err)
	}
	returnAnimation, err := readString(c)
	if err != nil {
		return nil, fmt.Errorf("animation %q return animation: %w", entry.Name, err)
	}

	frames, err := readFrameList(c)
	if err != nil {
		return nil, fmt.Errorf("animation %q frames: %w", entry.Name, err)
	}

	return &animation.Animation{
		Name:            name,
		TransitionType:  transitionType,
		ReturnAnimation: returnAnimation,
		Frames:          frames,
	}, nil
}

// transitionTypeFromByte validates a wire transition_type byte against the
// known domain {Return, ExitBranches, None}, failing on any other value
// instead of silently coercing it into an out-of-range TransitionType.
func transitionTypeFromByte(b uint8) (animation.TransitionType, error) {
	switch animation.TransitionType(b) {
	case animation.TransitionReturn, animation.TransitionExitBranches, animation.TransitionNone:
		return animation.TransitionType(b), nil
	default:
		return 0, fmt.Errorf("%w: unrecognized transition_type %d", ErrMalformedStructure, b)
	}
}

func readFrameList(c *binreader.Cursor) ([]animation.Frame, error) {
	count, err := c.U32()
	if err != nil {
		return nil, fmt.Errorf("frame count: %w", err)
	}
	frames := make([]animation.Frame, count)
	for i := range frames {
		f, err := readFrame(c)
		if err != nil {
			return nil, fmt.Errorf("frame[%d]: %w", i, err)
		}
		frames[i] = f
	}
	return frames, nil
}

func readFrame(c *binreader.Cursor) (animation.Frame, error) {
	images, err := readFrameImages(c)
	if err != nil {
		return animation.Frame{}, fmt.Errorf("images: %w", err)
	}

	soundRaw, err := c.U16()
	if err != nil {
		return animation.Frame{}, fmt.Errorf("sound index: %w", err)
	}
	var soundIndex *uint16
	if soundRaw != sentinelNone {
		v := soundRaw
		soundIndex = &v
	}

	durationCS, err := c.U16()
	if err != nil {
		return animation.Frame{}, fmt.Errorf("duration: %w", err)
	}

	exitRaw, err := c.I16()
	if err != nil {
		return animation.Frame{}, fmt.Errorf("exit frame: %w", err)
	}
	var exitFrame *int16
	if uint16(exitRaw) != sentinelNone {
		v := exitRaw
		exitFrame = &v
	}

	branches, err := readBranches(c)
	if err != nil {
		return animation.Frame{}, fmt.Errorf("branches: %w", err)
	}
	overlays, err := readOverlays(c)
	if err != nil {
		return animation.Frame{}, fmt.Errorf("overlays: %w", err)
	}

	return animation.Frame{
		Images:     images,
		SoundIndex: soundIndex,
		DurationCS: durationCS,
		ExitFrame:  exitFrame,
		Branches:   branches,
		Overlays:   overlays,
	}, nil
}

func readFrameImages(c *binreader.Cursor) ([]animation.FrameImage, error) {
	count, err := c.U16()
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	images := make([]animation.FrameImage, count)
	for i := range images {
		idx, err := c.U16()
		if err != nil {
			return nil, fmt.Errorf("[%d] image index: %w", i, err)
		}
		dx, err := c.I16()
		if err != nil {
			return nil, fmt.Errorf("[%d] dx: %w", i, err)
		}
		dy, err := c.I16()
		if err != nil {
			return nil, fmt.Errorf("[%d] dy: %w", i, err)
		}
		images[i] = animation.FrameImage{ImageIndex: idx, DX: dx, DY: dy}
	}
	return images, nil
}

func readBranches(c *binreader.Cursor) ([]animation.Branch, error) {
	count, err := c.U16()
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	branches := make([]animation.Branch, count)
	for i := range branches {
		target, err := c.U16()
		if err != nil {
			return nil, fmt.Errorf("[%d] target frame: %w", i, err)
		}
		prob, err := c.U16()
		if err != nil {
			return nil, fmt.Errorf("[%d] probability: %w", i, err)
		}
		branches[i] = animation.Branch{TargetFrame: target, ProbabilityPct: prob}
	}
	return branches, nil
}

func readOverlays(c *binreader.Cursor) ([]animation.Overlay, error) {
	count, err := c.U16()
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	overlays := make([]animation.Overlay, count)
	for i := range overlays {
		kind, err := c.U8()
		if err != nil {
			return nil, fmt.Errorf("[%d] kind: %w", i, err)
		}
		replaceByte, err := c.U8()
		if err != nil {
			return nil, fmt.Errorf("[%d] replace: %w", i, err)
		}
		idx, err := c.U16()
		if err != nil {
			return nil, fmt.Errorf("[%d] image index: %w", i, err)
		}
		dx, err := c.I16()
		if err != nil {
			return nil, fmt.Errorf("[%d] dx: %w", i, err)
		}
		dy, err := c.I16()
		if err != nil {
			return nil, fmt.Errorf("[%d] dy: %w", i, err)
		}
		overlays[i] = animation.Overlay{
			Kind:       animation.OverlayKind(kind),
			Replace:    replaceByte != 0,
			ImageIndex: idx,
			DX:         dx,
			DY:         dy,
		}
	}
	return overlays, nil
}
