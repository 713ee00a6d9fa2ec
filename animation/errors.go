package animation

import "errors"

var (
	// ErrNoFrames is returned when Play targets an animation with no frames.
	ErrNoFrames = errors.New("acs: animation has no frames")

	// ErrNotPlaying is returned by Step when called before any Play.
	ErrNotPlaying = errors.New("acs: no animation is currently playing")

	// ErrFrameIndexOutOfRange is returned when a frame index is outside
	// the current animation's frame list.
	ErrFrameIndexOutOfRange = errors.New("acs: frame index out of range")
)
