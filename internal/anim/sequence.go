// Package anim loads and plays frame animations for desktop pets.
//
// Decoding and compositing stay on the CPU (Sequence), so everything up to
// texture upload is testable without a GPU. A Clip wraps a Sequence's frames
// as textures, and a Player advances through a Clip with dt timing.
package anim

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sequence is a decoded animation: full composited frames with per-frame
// durations in seconds. Frames all share the same logical size.
type Sequence struct {
	Frames    []*image.RGBA
	Durations []float64
	W, H      int
	Loop      bool
}

// Duration returns the total length of one playthrough in seconds.
func (s *Sequence) Duration() float64 {
	var total float64
	for _, d := range s.Durations {
		total += d
	}
	return total
}

// Clip is a Sequence uploaded to textures, ready for scene sprites.
type Clip struct {
	Textures  []*ebiten.Image
	Durations []float64
	W, H      int
	Loop      bool
}

// NewClip uploads all frames of a sequence. Call only with a running game
// loop; tests stay on Sequence.
func NewClip(seq *Sequence) *Clip {
	c := &Clip{
		Textures:  make([]*ebiten.Image, len(seq.Frames)),
		Durations: seq.Durations,
		W:         seq.W,
		H:         seq.H,
		Loop:      seq.Loop,
	}
	for i, f := range seq.Frames {
		c.Textures[i] = ebiten.NewImageFromImage(f)
	}
	return c
}

// Player steps through a clip's frames using per-frame durations.
// Call Update once per tick with the frame's dt.
type Player struct {
	clip    *Clip
	index   int
	elapsed float64

	// Speed scales playback. 1 is natural speed, 0 pauses.
	Speed float64
	// OnLoop, if set, fires every time playback wraps to frame 0.
	OnLoop func()

	finished bool
}

// NewPlayer creates a player positioned at the first frame.
func NewPlayer(clip *Clip) *Player {
	return &Player{clip: clip, Speed: 1}
}

// Update advances playback by dt seconds. Returns true when the visible
// frame changed. Non-looping clips hold their last frame.
func (p *Player) Update(dt float64) bool {
	if p.clip == nil || len(p.clip.Textures) <= 1 || p.finished {
		return false
	}

	p.elapsed += dt * p.Speed
	changed := false
	for p.elapsed >= p.clip.Durations[p.index] {
		// Loaders clamp durations above zero; this keeps a malformed clip
		// from spinning the loop.
		if p.clip.Durations[p.index] <= 0 {
			break
		}
		p.elapsed -= p.clip.Durations[p.index]
		p.index++
		changed = true
		if p.index >= len(p.clip.Textures) {
			if p.clip.Loop {
				p.index = 0
				if p.OnLoop != nil {
					p.OnLoop()
				}
			} else {
				p.index = len(p.clip.Textures) - 1
				p.finished = true
				break
			}
		}
	}
	return changed
}

// Frame returns the current texture, or nil for an empty clip.
func (p *Player) Frame() *ebiten.Image {
	if p.clip == nil || len(p.clip.Textures) == 0 {
		return nil
	}
	return p.clip.Textures[p.index]
}

// Index returns the current frame index.
func (p *Player) Index() int {
	return p.index
}

// Reset rewinds to the first frame and clears accumulated time.
func (p *Player) Reset() {
	p.index = 0
	p.elapsed = 0
	p.finished = false
}

// SetClip swaps the clip being played and rewinds.
func (p *Player) SetClip(clip *Clip) {
	p.clip = clip
	p.Reset()
}

// Clip returns the clip currently playing.
func (p *Player) Clip() *Clip {
	return p.clip
}
