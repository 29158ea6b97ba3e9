package pet

import (
	"fmt"

	"github.com/tushargaudara/Anima-Engine/internal/anim"
	"github.com/tushargaudara/Anima-Engine/internal/scene"
)

const (
	// Primary pet spawn margins when no position was saved.
	defaultMarginX      = 30
	defaultMarginBottom = 50
	// Horizontal gap between pets spawned next to each other.
	addSpacing = 20
)

// Options configures a Manager.
type Options struct {
	Size       float64 // pet display size in pixels
	MaxCount   int     // most pets allowed at once
	MinOpacity float64 // opacity floor
	FadeIn     float64 // spawn fade duration in seconds
	BoundsW    float64 // monitor width
	BoundsH    float64 // monitor height
}

// Manager owns every pet on screen. The first pet spawned is the primary:
// its position and animation are what gets persisted, and added pets copy
// its look.
type Manager struct {
	container *scene.Node
	pets      []*Pet
	opts      Options
	nextID    int
	idleFor   float64

	// OnInteract fires when a pet is touched, with the pet that was.
	OnInteract func(*Pet)
	// OnMoved fires when a pet finishes a drag.
	OnMoved func(*Pet)
	// OnMenu fires when a pet is right-clicked.
	OnMenu func(p *Pet, x, y float64)
}

// NewManager creates a manager whose pets live under a dedicated container
// node attached to parent.
func NewManager(parent *scene.Node, opts Options) *Manager {
	container := scene.NewContainer("pets")
	container.Interactable = true
	parent.AddChild(container)
	return &Manager{container: container, opts: opts}
}

// SpawnPrimary creates the first pet. A saved position is clamped back onto
// the monitor; without one the pet sits near the bottom-left corner.
// opacity <= 0 means "never saved" and shows the pet fully opaque.
func (m *Manager) SpawnPrimary(clip *anim.Clip, path string, pos *[2]float64, opacity float64) *Pet {
	x := float64(defaultMarginX)
	y := m.opts.BoundsH - m.opts.Size - defaultMarginBottom
	if pos != nil {
		x, y = pos[0], pos[1]
	}
	if opacity <= 0 {
		opacity = 1
	}
	return m.spawn(clip, path, x, y, opacity)
}

// Add creates another pet copying the primary's animation and opacity,
// offset to the right of the last pet.
func (m *Manager) Add() (*Pet, error) {
	if len(m.pets) == 0 {
		return nil, fmt.Errorf("anima: no primary pet to copy")
	}
	if len(m.pets) >= m.opts.MaxCount {
		return nil, fmt.Errorf("anima: pet limit reached (%d)", m.opts.MaxCount)
	}

	primary := m.pets[0]
	x := primary.node.X + float64(len(m.pets))*(m.opts.Size+addSpacing)
	return m.spawn(primary.Clip(), primary.Path(), x, primary.node.Y, primary.Opacity()), nil
}

func (m *Manager) spawn(clip *anim.Clip, path string, x, y, opacity float64) *Pet {
	m.nextID++
	p := New(fmt.Sprintf("pet-%d", m.nextID), m.opts.Size, m.opts.MinOpacity)
	p.SetBounds(m.opts.BoundsW, m.opts.BoundsH)
	p.SetClip(clip, path)
	p.SetPosition(x, y)
	p.SetOpacity(opacity)
	p.FadeIn(m.opts.FadeIn)

	p.OnInteract = func(touched *Pet) {
		m.idleFor = 0
		if m.OnInteract != nil {
			m.OnInteract(touched)
		}
	}
	p.OnMoved = func(moved *Pet) {
		if m.OnMoved != nil {
			m.OnMoved(moved)
		}
	}
	p.OnMenu = func(clicked *Pet, x, y float64) {
		if m.OnMenu != nil {
			m.OnMenu(clicked, x, y)
		}
	}

	m.container.AddChild(p.Node())
	m.pets = append(m.pets, p)
	return p
}

// Remove disposes the most recently added pet. The last pet stays; an
// empty desktop is what quit is for.
func (m *Manager) Remove() error {
	if len(m.pets) <= 1 {
		return fmt.Errorf("anima: the last pet stays")
	}
	last := m.pets[len(m.pets)-1]
	m.pets = m.pets[:len(m.pets)-1]
	last.Dispose()
	return nil
}

// Primary returns the first pet, or nil before SpawnPrimary.
func (m *Manager) Primary() *Pet {
	if len(m.pets) == 0 {
		return nil
	}
	return m.pets[0]
}

// Count returns the number of live pets.
func (m *Manager) Count() int {
	return len(m.pets)
}

// Pets returns the live pets in spawn order.
func (m *Manager) Pets() []*Pet {
	return m.pets
}

// Update advances all pets and the shared idle clock.
func (m *Manager) Update(dt float64) {
	for _, p := range m.pets {
		p.Update(dt)
	}
	if !m.AnyDragging() {
		m.idleFor += dt
	}
}

// AnyDragging reports whether any pet is mid-drag.
func (m *Manager) AnyDragging() bool {
	for _, p := range m.pets {
		if p.dragging {
			return true
		}
	}
	return false
}

// IdleFor returns seconds since the last pet interaction.
func (m *Manager) IdleFor() float64 {
	return m.idleFor
}

// ResetIdle marks an interaction from outside the pets, like panel input.
func (m *Manager) ResetIdle() {
	m.idleFor = 0
}

// SetOpacityAll applies one opacity to every pet.
func (m *Manager) SetOpacityAll(v float64) {
	for _, p := range m.pets {
		p.SetOpacity(v)
	}
}

// SetClipAll switches every pet to the given animation.
func (m *Manager) SetClipAll(clip *anim.Clip, path string) {
	for _, p := range m.pets {
		p.SetClip(clip, path)
	}
}
