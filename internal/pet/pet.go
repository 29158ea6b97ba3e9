// Package pet turns scene nodes into desktop pets: draggable, lockable
// animated sprites that remember how the user treats them.
package pet

import (
	"fmt"

	"github.com/tanema/gween/ease"

	"github.com/tushargaudara/Anima-Engine/internal/anim"
	"github.com/tushargaudara/Anima-Engine/internal/scene"
)

// Pet is one on-screen creature. It owns a sprite node in the scene and an
// animation player feeding frames into it.
type Pet struct {
	node   *scene.Node
	player *anim.Player
	path   string // animation file behind the current clip, "" for builtin

	size       float64 // on-screen edge length in pixels
	opacity    float64
	minOpacity float64
	locked     bool
	dragging   bool

	boundsW, boundsH float64
	fade             *scene.TweenGroup

	// OnInteract fires on any pointer interaction with this pet.
	OnInteract func(*Pet)
	// OnMoved fires when a drag finishes, the moment worth persisting.
	OnMoved func(*Pet)
	// OnMenu fires on a right click, with the click position in scene
	// coordinates.
	OnMenu func(p *Pet, x, y float64)
}

// New creates a pet of the given display size. It has no animation until
// SetClip; the node still hit-tests at full size so input works during
// loading.
func New(name string, size, minOpacity float64) *Pet {
	n := scene.NewSprite(name, nil)
	n.SetSize(size, size)
	n.Interactable = true

	p := &Pet{
		node:       n,
		player:     anim.NewPlayer(nil),
		size:       size,
		opacity:    1,
		minOpacity: minOpacity,
	}
	p.wireInput()
	return p
}

func (p *Pet) wireInput() {
	p.node.OnPointerDown = func(scene.PointerContext) {
		p.interact()
	}
	p.node.OnDragStart = func(scene.DragContext) {
		if p.locked {
			return
		}
		p.dragging = true
		p.interact()
	}
	p.node.OnDrag = func(ctx scene.DragContext) {
		if !p.dragging {
			return
		}
		p.SetPosition(p.node.X+ctx.DeltaX, p.node.Y+ctx.DeltaY)
		p.interact()
	}
	p.node.OnDragEnd = func(ctx scene.DragContext) {
		if !p.dragging {
			return
		}
		// The release carries the last segment of movement.
		p.SetPosition(p.node.X+ctx.DeltaX, p.node.Y+ctx.DeltaY)
		p.dragging = false
		p.interact()
		if p.OnMoved != nil {
			p.OnMoved(p)
		}
	}
	p.node.OnDoubleClick = func(scene.ClickContext) {
		p.ToggleLock()
		p.interact()
	}
	p.node.OnClick = func(ctx scene.ClickContext) {
		if ctx.Button != scene.MouseButtonRight {
			return
		}
		p.interact()
		if p.OnMenu != nil {
			p.OnMenu(p, ctx.GlobalX, ctx.GlobalY)
		}
	}
}

func (p *Pet) interact() {
	if p.OnInteract != nil {
		p.OnInteract(p)
	}
}

// Node returns the pet's scene node.
func (p *Pet) Node() *scene.Node {
	return p.node
}

// Update advances the animation and any running fade by dt seconds.
func (p *Pet) Update(dt float64) {
	if p.player.Update(dt) {
		if tex := p.player.Frame(); tex != nil {
			p.node.SetImage(tex)
		}
	}
	if p.fade != nil {
		p.fade.Update(dt)
		if p.fade.Done {
			p.fade = nil
		}
	}
}

// SetClip swaps the animation. The node is rescaled so frames of any
// resolution render at the pet's display size.
func (p *Pet) SetClip(clip *anim.Clip, path string) {
	p.player.SetClip(clip)
	p.path = path
	if clip == nil || clip.W <= 0 {
		return
	}

	s := p.size / float64(clip.W)
	p.node.SetScale(s, s)
	if len(clip.Textures) > 0 && clip.Textures[0] != nil {
		p.node.SetImage(clip.Textures[0])
	} else {
		// Headless path: keep the hit box in frame units to match the
		// scale above.
		p.node.SetSize(float64(clip.W), float64(clip.H))
	}
}

// Clip returns the current animation clip.
func (p *Pet) Clip() *anim.Clip {
	return p.player.Clip()
}

// Path returns the animation file behind the current clip, "" for the
// builtin.
func (p *Pet) Path() string {
	return p.path
}

// SetBounds sets the area pet positions clamp to, usually the monitor size.
func (p *Pet) SetBounds(w, h float64) {
	p.boundsW = w
	p.boundsH = h
}

// SetPosition moves the pet, clamped so it stays fully on screen.
func (p *Pet) SetPosition(x, y float64) {
	if p.boundsW > 0 {
		x = clamp(x, 0, p.boundsW-p.size)
	}
	if p.boundsH > 0 {
		y = clamp(y, 0, p.boundsH-p.size)
	}
	p.node.SetPosition(x, y)
}

// Position returns the pet's top-left corner.
func (p *Pet) Position() (x, y float64) {
	return p.node.X, p.node.Y
}

// Size returns the pet's display edge length.
func (p *Pet) Size() float64 {
	return p.size
}

// SetOpacity sets the pet's opacity, clamped to the configured floor so a
// pet can never become invisible. Cancels a running fade.
func (p *Pet) SetOpacity(v float64) {
	v = clamp(v, p.minOpacity, 1)
	p.opacity = v
	p.fade = nil
	p.node.SetAlpha(v)
}

// Opacity returns the pet's target opacity.
func (p *Pet) Opacity() float64 {
	return p.opacity
}

// FadeIn restarts the pet fully transparent and fades to its opacity over
// the given duration. A zero duration shows the pet immediately.
func (p *Pet) FadeIn(duration float64) {
	if duration <= 0 {
		p.node.SetAlpha(p.opacity)
		return
	}
	p.node.SetAlpha(0)
	p.fade = scene.TweenAlpha(p.node, p.opacity, duration, ease.Linear)
}

// SetLocked freezes or frees the pet's position. Locking mid-drag drops
// the drag.
func (p *Pet) SetLocked(locked bool) {
	p.locked = locked
	if locked {
		p.dragging = false
	}
}

// Locked reports whether the pet ignores drags.
func (p *Pet) Locked() bool {
	return p.locked
}

// ToggleLock flips the lock and reports the new state.
func (p *Pet) ToggleLock() bool {
	p.SetLocked(!p.locked)
	return p.locked
}

// Dragging reports whether the user is currently moving this pet.
func (p *Pet) Dragging() bool {
	return p.dragging
}

// Dispose removes the pet's node from the scene.
func (p *Pet) Dispose() {
	p.node.Dispose()
}

func (p *Pet) String() string {
	return fmt.Sprintf("pet %q at (%.0f, %.0f)", p.node.Name, p.node.X, p.node.Y)
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
