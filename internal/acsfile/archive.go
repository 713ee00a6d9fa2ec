package acsfile

import (
	"fmt"
	"strings"

	"github.com/msagent/acs/animation"
	"github.com/msagent/acs/internal/binreader"
)

// Archive is the fully-parsed contents of one ACS file: the decoded
// character metadata plus the three record lists it references. Pixel
// and audio payloads are resolved lazily from the backing buffer rather
// than materialized here.
type Archive struct {
	Character  CharacterInfo
	Animations []AnimationEntry
	Images     *ImageStore
	Audio      []AudioEntry

	full *binreader.Cursor

	decodedAnimations map[string]*animation.Animation
}

// Parse decodes data as an ACS v2 archive: the header, character info,
// and all three root record lists, then validates the cross-reference
// invariants (§3.2-3.3) that no single record decoder can check in
// isolation.
func Parse(data []byte) (*Archive, error) {
	full := binreader.New(data)

	hdr, err := readHeader(full)
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	character, err := readCharacterInfo(full, hdr.CharacterInfo)
	if err != nil {
		return nil, fmt.Errorf("character info: %w", err)
	}

	animSub, err := deref(full, hdr.AnimationInfo)
	if err != nil {
		return nil, fmt.Errorf("animation list: %w", err)
	}
	animations, err := readAnimationInfoList(animSub)
	if err != nil {
		return nil, fmt.Errorf("animation list: %w", err)
	}

	imgSub, err := deref(full, hdr.ImageInfo)
	if err != nil {
		return nil, fmt.Errorf("image list: %w", err)
	}
	images, err := readImageInfoList(imgSub)
	if err != nil {
		return nil, fmt.Errorf("image list: %w", err)
	}

	audioSub, err := deref(full, hdr.AudioInfo)
	if err != nil {
		return nil, fmt.Errorf("audio list: %w", err)
	}
	audio, err := readAudioInfoList(audioSub)
	if err != nil {
		return nil, fmt.Errorf("audio list: %w", err)
	}

	store := newImageStore(full, images, character.Palette, character.TransparentIndex)

	a := &Archive{
		Character:         character,
		Animations:        animations,
		Images:            store,
		Audio:             audio,
		full:              full,
		decodedAnimations: make(map[string]*animation.Animation, len(animations)),
	}

	if err := a.validateReferences(len(images), len(audio)); err != nil {
		return nil, err
	}
	return a, nil
}

// validateReferences decodes every animation up front (small: hundreds of
// frames per character) and checks every image/sound index it names
// against the image and audio list lengths, per invariant #2.
func (a *Archive) validateReferences(imageCount, audioCount int) error {
	for _, entry := range a.Animations {
		anim, err := readAnimation(a.full, entry)
		if err != nil {
			return fmt.Errorf("animation %q: %w", entry.Name, err)
		}
		for fi, frame := range anim.Frames {
			for _, img := range frame.Images {
				if int(img.ImageIndex) >= imageCount {
					return fmt.Errorf("animation %q frame %d: %w: image index %d, have %d images",
						entry.Name, fi, ErrIndexOutOfRange, img.ImageIndex, imageCount)
				}
			}
			for _, ov := range frame.Overlays {
				if int(ov.ImageIndex) >= imageCount {
					return fmt.Errorf("animation %q frame %d: %w: overlay image index %d, have %d images",
						entry.Name, fi, ErrIndexOutOfRange, ov.ImageIndex, imageCount)
				}
			}
			if frame.SoundIndex != nil && int(*frame.SoundIndex) >= audioCount {
				return fmt.Errorf("animation %q frame %d: %w: sound index %d, have %d sounds",
					entry.Name, fi, ErrIndexOutOfRange, *frame.SoundIndex, audioCount)
			}
		}
		a.decodedAnimations[canonicalName(entry.Name)] = anim
	}
	return nil
}

// Animation returns the named animation, resolved case-insensitively. It
// is decoded once during Parse, not on every call.
func (a *Archive) Animation(name string) (*animation.Animation, error) {
	anim, ok := a.decodedAnimations[canonicalName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: animation %q not found", ErrIndexOutOfRange, name)
	}
	return anim, nil
}

// AnimationNames returns every animation name in archive order.
func (a *Archive) AnimationNames() []string {
	names := make([]string, len(a.Animations))
	for i, e := range a.Animations {
		names[i] = e.Name
	}
	return names
}

// Sound returns sound index i's raw payload bytes.
func (a *Archive) Sound(i int) ([]byte, error) {
	if i < 0 || i >= len(a.Audio) {
		return nil, fmt.Errorf("%w: sound index %d, have %d sounds", ErrIndexOutOfRange, i, len(a.Audio))
	}
	return readAudioPayload(a.full, a.Audio[i])
}

func canonicalName(name string) string {
	return strings.ToUpper(name)
}
