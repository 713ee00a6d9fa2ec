package animation

import (
	"fmt"
	"image"
	"math/rand"
	"time"
)

// idleFallbackNames is tried, in order, when the state table has no member
// whose state name contains "IDL". These are the conventional idle-pose
// animation names used across ACS-family characters.
var idleFallbackNames = []string{"RestPose", "Idle1_1", "Idle", "Stand", "Neutral"}

// AnimationSource resolves an animation by name, case-insensitively. It is
// satisfied by the archive facade; the player never parses file bytes.
type AnimationSource interface {
	Animation(name string) (*Animation, error)
}

// StepCommand selects which of a frame's two advance mechanisms Step takes.
type StepCommand int

const (
	// StepAdvance moves to the next frame via branch selection (or frame+1
	// when branching is disabled or the frame has no branches).
	StepAdvance StepCommand = iota
	// StepExit jumps to the frame's ExitFrame, simulating an external
	// interrupt (e.g. "stop talking now"). If the frame has no ExitFrame,
	// playback stops.
	StepExit
)

// Emission is one frame's worth of playback output: the composited canvas,
// how long to hold it, and the sound to play alongside it, if any.
type Emission struct {
	RGBA     *image.NRGBA
	Duration time.Duration
	Sound    *uint16
}

// Player drives an animation frame by frame: branch selection, Return/
// ExitBranches/None completion, and idle-state fallback. It holds no file
// bytes; callers wire it to an AnimationSource, a StateTable, and an
// ImageSource so render plumbing stays in the archive facade.
type Player struct {
	animations AnimationSource
	states     StateTable
	compositor *Compositor
	images     ImageSource
	rng        *rand.Rand

	current  *Animation
	frameIdx int

	loop      bool
	branching bool
}

// NewPlayer creates a Player. seed makes branch and idle-fallback selection
// reproducible across runs with the same archive and inputs.
func NewPlayer(animations AnimationSource, states StateTable, compositor *Compositor, images ImageSource, seed int64) *Player {
	return &Player{
		animations: animations,
		states:     states,
		compositor: compositor,
		images:     images,
		rng:        rand.New(rand.NewSource(seed)),
		branching:  true,
	}
}

// SetBranchingEnabled toggles probabilistic branch selection; when
// disabled, Step(StepAdvance) always moves to frame+1.
func (p *Player) SetBranchingEnabled(enabled bool) { p.branching = enabled }

// SetLoop controls what happens when playback completes and no idle or
// return animation takes over: restart from frame 0 instead of stopping.
func (p *Player) SetLoop(loop bool) { p.loop = loop }

// Current returns the name of the animation currently playing, or "" if
// nothing has been played yet.
func (p *Player) Current() string {
	if p.current == nil {
		return ""
	}
	return p.current.Name
}

// Play starts name from frame 0 and returns its first emission.
func (p *Player) Play(name string) (Emission, error) {
	anim, err := p.animations.Animation(name)
	if err != nil {
		return Emission{}, fmt.Errorf("play %q: %w", name, err)
	}
	if len(anim.Frames) == 0 {
		return Emission{}, fmt.Errorf("play %q: %w", name, ErrNoFrames)
	}
	p.current = anim
	p.frameIdx = 0
	return p.emit()
}

// Step advances playback by one frame according to cmd and returns the
// resulting emission. stopped is true when playback has ended with no
// further frame to show (no loop, no return animation, no idle candidate).
func (p *Player) Step(cmd StepCommand) (emission Emission, stopped bool, err error) {
	if p.current == nil {
		return Emission{}, false, ErrNotPlaying
	}
	frame := &p.current.Frames[p.frameIdx]

	if cmd == StepExit {
		if frame.ExitFrame == nil {
			return Emission{}, true, nil
		}
		idx := int(*frame.ExitFrame)
		if idx < 0 || idx >= len(p.current.Frames) {
			return Emission{}, false, fmt.Errorf("exit frame: %w", ErrFrameIndexOutOfRange)
		}
		p.frameIdx = idx
		emission, err = p.emit()
		return emission, false, err
	}

	next := p.nextFrameIndex(frame)
	if next < len(p.current.Frames) {
		p.frameIdx = next
		emission, err = p.emit()
		return emission, false, err
	}
	return p.complete()
}

// nextFrameIndex resolves Branches into a single target frame. With
// branching disabled, no branches declared, or total probability zero, the
// walk falls back to the plain linear successor.
func (p *Player) nextFrameIndex(frame *Frame) int {
	if !p.branching || len(frame.Branches) == 0 {
		return p.frameIdx + 1
	}

	total := 0
	for _, b := range frame.Branches {
		total += int(b.ProbabilityPct)
	}
	if total <= 0 {
		return p.frameIdx + 1
	}

	r := p.rng.Intn(total)
	cumulative := 0
	for _, b := range frame.Branches {
		cumulative += int(b.ProbabilityPct)
		if r < cumulative {
			return int(b.TargetFrame)
		}
	}
	return int(frame.Branches[len(frame.Branches)-1].TargetFrame)
}

// complete runs the end-of-animation policy for p.current.TransitionType.
func (p *Player) complete() (Emission, bool, error) {
	if p.current.UsesReturnAnimation() {
		emission, err := p.Play(p.current.ReturnAnimation)
		if err != nil {
			return Emission{}, false, err
		}
		return emission, false, nil
	}

	if !p.states.isIdleAnimation(p.current.Name) {
		if emission, ok, err := p.tryIdleFallback(); ok {
			return emission, false, err
		}
	}

	if p.loop {
		p.frameIdx = 0
		emission, err := p.emit()
		return emission, false, err
	}
	return Emission{}, true, nil
}

// tryIdleFallback attempts to start an idle animation: first the uniform
// random choice among the state table's own idle members, then (when the
// table names none, or the chosen member cannot be played) the fixed
// preference list. ok is false when no
// candidate could be played and the caller should fall through to
// loop-or-stop.
func (p *Player) tryIdleFallback() (emission Emission, ok bool, err error) {
	if members := p.states.IdleMembers(); len(members) > 0 {
		name := members[p.rng.Intn(len(members))]
		emission, err = p.Play(name)
		if err == nil {
			return emission, true, nil
		}
	}

	for _, name := range idleFallbackNames {
		emission, err = p.Play(name)
		if err == nil {
			return emission, true, nil
		}
	}
	return Emission{}, false, nil
}

// emit composites the current frame and packages it as an Emission.
func (p *Player) emit() (Emission, error) {
	frame := &p.current.Frames[p.frameIdx]
	rgba, err := p.compositor.Draw(frame, p.images)
	if err != nil {
		return Emission{}, fmt.Errorf("render frame %d of %q: %w", p.frameIdx, p.current.Name, err)
	}
	return Emission{
		RGBA:     rgba,
		Duration: time.Duration(frame.DurationMillis()) * time.Millisecond,
		Sound:    frame.SoundIndex,
	}, nil
}
