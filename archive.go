package acs

import (
	"fmt"
	"image"
	"strings"

	"github.com/msagent/acs/animation"
	"github.com/msagent/acs/internal/acsfile"
)

// Character summarizes the archive's identity and canvas dimensions: the
// fields a host front-end needs before it starts asking for frames.
type Character struct {
	Width       int
	Height      int
	GUID        string
	PaletteSize int
	Name        string
	Description string
}

// AnimationInfo is the bulk-enumerable summary of one animation, shaped
// to amortize cross-boundary calls when the caller embeds this package
// behind another runtime (cgo, wasm, an RPC boundary).
type AnimationInfo struct {
	Name            string
	FrameCount      int
	HasSound        bool
	TransitionType  animation.TransitionType
	ReturnAnimation string
}

// RenderedFrame is one composited frame: its pixels plus the timing and
// sound hints the playback driver would emit alongside it.
type RenderedFrame struct {
	Width         int
	Height        int
	RGBA          *image.NRGBA
	DurationMillis int
	SoundIndex    *uint16
}

// Archive is a fully parsed, immutable ACS character. Create one with
// Open; every accessor below is a pure function of the archive's bytes.
type Archive struct {
	file       *acsfile.Archive
	compositor *animation.Compositor

	playable map[string]bool
}

// Open parses data as a complete ACS v2 archive.
func Open(data []byte) (*Archive, error) {
	file, err := acsfile.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	a := &Archive{
		file:       file,
		compositor: animation.NewCompositor(int(file.Character.Width), int(file.Character.Height)),
	}
	a.playable = a.computePlayable()
	return a, nil
}

// computePlayable excludes every animation named as the return target of
// some other animation, whatever other role it has (a state-table member
// included): those are treated as transition fragments,
// not something a user-facing picker should list directly. Everything
// else, including idle-fallback candidates, stays playable since a
// caller may still want to start them explicitly.
func (a *Archive) computePlayable() map[string]bool {
	returnTargets := make(map[string]bool)
	for _, name := range a.file.AnimationNames() {
		anim, err := a.file.Animation(name)
		if err != nil {
			continue
		}
		if anim.UsesReturnAnimation() {
			returnTargets[canonicalKey(anim.ReturnAnimation)] = true
		}
	}

	playable := make(map[string]bool)
	for _, name := range a.file.AnimationNames() {
		if !returnTargets[canonicalKey(name)] {
			playable[canonicalKey(name)] = true
		}
	}
	return playable
}

// canonicalKey matches the case-insensitive resolution internal/acsfile
// already applies to animation lookups.
func canonicalKey(name string) string {
	return strings.ToUpper(name)
}

// Character returns the archive's identity and canvas summary. Name and
// Description come from the first localized-info entry, if any.
func (a *Archive) Character() Character {
	ci := a.file.Character
	c := Character{
		Width:       int(ci.Width),
		Height:      int(ci.Height),
		GUID:        ci.GUID.String(),
		PaletteSize: len(ci.Palette),
	}
	if len(ci.LocalizedInfo) > 0 {
		c.Name = ci.LocalizedInfo[0].Name
		c.Description = ci.LocalizedInfo[0].Description
	}
	return c
}

// AnimationNames returns every animation name in archive order.
func (a *Archive) AnimationNames() []string {
	return a.file.AnimationNames()
}

// PlayableAnimationNames returns animation names minus every name that is
// another animation's return target.
func (a *Archive) PlayableAnimationNames() []string {
	var names []string
	for _, name := range a.file.AnimationNames() {
		if a.playable[canonicalKey(name)] {
			names = append(names, name)
		}
	}
	return names
}

// Animation returns the named animation, resolved case-insensitively.
func (a *Archive) Animation(name string) (*animation.Animation, error) {
	return a.file.Animation(name)
}

// StateTable returns the character's named states and their member
// animation names.
func (a *Archive) StateTable() animation.StateTable {
	return a.file.Character.States
}

// AllAnimationInfo returns the bulk-enumerable summary of every
// animation in the archive.
func (a *Archive) AllAnimationInfo() ([]AnimationInfo, error) {
	names := a.file.AnimationNames()
	infos := make([]AnimationInfo, len(names))
	for i, name := range names {
		anim, err := a.file.Animation(name)
		if err != nil {
			return nil, err
		}
		infos[i] = AnimationInfo{
			Name:            anim.Name,
			FrameCount:      len(anim.Frames),
			HasSound:        anim.HasSound(),
			TransitionType:  anim.TransitionType,
			ReturnAnimation: anim.ReturnAnimation,
		}
	}
	return infos, nil
}

// RenderFrame composites frameIndex of the named animation and returns
// it alongside its timing and sound hints.
func (a *Archive) RenderFrame(animationName string, frameIndex int) (RenderedFrame, error) {
	anim, err := a.file.Animation(animationName)
	if err != nil {
		return RenderedFrame{}, err
	}
	if frameIndex < 0 || frameIndex >= len(anim.Frames) {
		return RenderedFrame{}, fmt.Errorf("render frame: %w: frame %d, animation %q has %d frames",
			acsfile.ErrIndexOutOfRange, frameIndex, animationName, len(anim.Frames))
	}
	frame := &anim.Frames[frameIndex]

	rgba, err := a.compositor.Draw(frame, a.file.Images)
	if err != nil {
		return RenderedFrame{}, fmt.Errorf("render frame: %w", err)
	}

	return RenderedFrame{
		Width:          a.compositor.Width,
		Height:         a.compositor.Height,
		RGBA:           rgba,
		DurationMillis: frame.DurationMillis(),
		SoundIndex:     frame.SoundIndex,
	}, nil
}

// Sound returns sound index i's raw payload bytes (typically a complete
// RIFF/WAVE file). The core never decodes audio itself.
func (a *Archive) Sound(i int) ([]byte, error) {
	return a.file.Sound(i)
}

// NewPlayer creates a playback driver bound to this archive's
// animations, state table, compositor, and image store.
func (a *Archive) NewPlayer(seed int64) *animation.Player {
	return animation.NewPlayer(a.file, a.file.Character.States, a.compositor, a.file.Images, seed)
}
