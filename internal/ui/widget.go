// Package ui assembles the overlay's panels out of scene nodes: labels,
// buttons, lists, and sliders with just enough behavior for a pet picker.
package ui

import (
	"github.com/tushargaudara/Anima-Engine/internal/scene"
)

// Dark palette shared by every widget.
var (
	colorPanel       = scene.Color{R: 0.11, G: 0.11, B: 0.14, A: 0.97}
	colorPanelBorder = scene.Color{R: 0.36, G: 0.34, B: 0.52, A: 1}
	colorButton      = scene.Color{R: 0.21, G: 0.21, B: 0.29, A: 1}
	colorButtonHover = scene.Color{R: 0.29, G: 0.29, B: 0.41, A: 1}
	colorButtonDown  = scene.Color{R: 0.15, G: 0.15, B: 0.22, A: 1}
	colorRow         = scene.Color{R: 0.14, G: 0.14, B: 0.18, A: 1}
	colorRowSelected = scene.Color{R: 0.27, G: 0.33, B: 0.55, A: 1}
	colorTrack       = scene.Color{R: 0.18, G: 0.18, B: 0.24, A: 1}
	colorTrackFill   = scene.Color{R: 0.38, G: 0.45, B: 0.75, A: 1}
	colorKnob        = scene.Color{R: 0.80, G: 0.82, B: 0.90, A: 1}
	colorText        = scene.Color{R: 0.92, G: 0.92, B: 0.95, A: 1}
	colorTextDim     = scene.Color{R: 0.52, G: 0.52, B: 0.58, A: 1}
)

const (
	panelPad  = 10.0
	titleRowH = 26.0
)

// fillRect builds a solid-color rectangle from the shared white pixel.
func fillRect(name string, w, h float64, c scene.Color) *scene.Node {
	n := scene.NewSprite(name, scene.WhitePixel())
	n.SetScale(w, h)
	n.Color = c
	return n
}

// NewLabel builds a plain text node in the standard UI color.
func NewLabel(name, content string) *scene.Node {
	n := scene.NewText(name, content, scene.BasicFont())
	n.Text.Color = colorText
	return n
}

// trimToWidth shortens s with a "..." suffix until it fits maxW.
func trimToWidth(f scene.Font, s string, maxW float64) string {
	if w, _ := f.MeasureString(s); w <= maxW {
		return s
	}
	ellW, _ := f.MeasureString("...")
	runes := []rune(s)
	for i := len(runes) - 1; i > 0; i-- {
		if w, _ := f.MeasureString(string(runes[:i])); w+ellW <= maxW {
			return string(runes[:i]) + "..."
		}
	}
	return "..."
}

// --- Panel ---

// Panel is a bordered box that hosts other widgets. Its hit rect swallows
// pointer input so clicks on the panel never reach pets underneath.
type Panel struct {
	Node  *scene.Node
	title *scene.Node
	w, h  float64
	nextY float64 // row layout cursor
}

// NewPanel builds a titled panel of the given outer size.
func NewPanel(name, title string, w, h float64) *Panel {
	root := scene.NewContainer(name)
	root.Interactable = true
	root.HitShape = scene.HitRect{Width: w, Height: h}

	border := fillRect(name+"-border", w+2, h+2, colorPanelBorder)
	border.SetPosition(-1, -1)
	root.AddChild(border)

	bg := fillRect(name+"-bg", w, h, colorPanel)
	root.AddChild(bg)

	t := NewLabel(name+"-title", title)
	t.SetPosition(panelPad, 7)
	root.AddChild(t)

	return &Panel{Node: root, title: t, w: w, h: h, nextY: titleRowH + 4}
}

// Place attaches a child node at a fixed panel-local position.
func (p *Panel) Place(n *scene.Node, x, y float64) {
	n.SetPosition(x, y)
	p.Node.AddChild(n)
}

// AddRow places a child at the layout cursor and advances it by rowH.
func (p *Panel) AddRow(n *scene.Node, rowH float64) {
	p.Place(n, panelPad, p.nextY)
	p.nextY += rowH
}

// Size returns the panel's outer dimensions.
func (p *Panel) Size() (w, h float64) {
	return p.w, p.h
}

// Show makes the panel visible.
func (p *Panel) Show() {
	p.Node.Visible = true
}

// Hide removes the panel from view and input.
func (p *Panel) Hide() {
	p.Node.Visible = false
}

// Visible reports whether the panel is shown.
func (p *Panel) Visible() bool {
	return p.Node.Visible
}

// --- Button ---

// Button is a clickable box with hover and pressed tints.
type Button struct {
	Node  *scene.Node
	bg    *scene.Node
	label *scene.Node
	w, h  float64

	hovered  bool
	pressed  bool
	disabled bool

	// OnTap fires on a completed click while enabled.
	OnTap func()
}

// NewButton builds a button with a centered label.
func NewButton(name, text string, w, h float64) *Button {
	b := &Button{w: w, h: h}

	b.Node = scene.NewContainer(name)
	b.Node.Interactable = true
	b.Node.HitShape = scene.HitRect{Width: w, Height: h}

	b.bg = fillRect(name+"-bg", w, h, colorButton)
	b.Node.AddChild(b.bg)

	b.label = NewLabel(name+"-label", text)
	b.label.Text.Align = scene.TextAlignCenter
	b.label.Text.FixedWidth = w
	b.label.SetPosition(0, (h-scene.BasicFont().LineHeight())/2)
	b.Node.AddChild(b.label)

	b.Node.OnPointerEnter = func(scene.PointerContext) {
		b.hovered = true
		b.refresh()
	}
	b.Node.OnPointerLeave = func(scene.PointerContext) {
		b.hovered = false
		b.pressed = false
		b.refresh()
	}
	b.Node.OnPointerDown = func(scene.PointerContext) {
		b.pressed = true
		b.refresh()
	}
	b.Node.OnPointerUp = func(scene.PointerContext) {
		b.pressed = false
		b.refresh()
	}
	b.Node.OnClick = func(scene.ClickContext) {
		if !b.disabled && b.OnTap != nil {
			b.OnTap()
		}
	}
	return b
}

// SetText replaces the button label.
func (b *Button) SetText(text string) {
	b.label.Text.SetContent(text)
}

// SetDisabled greys the button out and stops it receiving input.
func (b *Button) SetDisabled(disabled bool) {
	if b.disabled == disabled {
		return
	}
	b.disabled = disabled
	b.Node.Interactable = !disabled
	if disabled {
		b.hovered = false
		b.pressed = false
	}
	b.refresh()
}

// Disabled reports whether the button is greyed out.
func (b *Button) Disabled() bool {
	return b.disabled
}

func (b *Button) refresh() {
	switch {
	case b.disabled:
		b.bg.Color = colorRow
		b.label.Text.Color = colorTextDim
	case b.pressed:
		b.bg.Color = colorButtonDown
		b.label.Text.Color = colorText
	case b.hovered:
		b.bg.Color = colorButtonHover
		b.label.Text.Color = colorText
	default:
		b.bg.Color = colorButton
		b.label.Text.Color = colorText
	}
}

// --- List ---

const listRowH = 20.0

// List shows string rows with a selection highlight. When the items
// outgrow the box it scrolls by whole rows.
type List struct {
	Node *scene.Node

	items    []string
	selected int
	top      int // first visible row index
	visible  int // row slots that fit the box
	w        float64

	slots []listSlot

	// OnSelect fires when the user clicks a row.
	OnSelect func(index int)
}

type listSlot struct {
	row   *scene.Node
	bg    *scene.Node
	label *scene.Node
}

// NewList builds an empty list box of the given size.
func NewList(name string, w, h float64) *List {
	l := &List{selected: -1, visible: int(h / listRowH), w: w}
	l.Node = scene.NewContainer(name)
	l.Node.Interactable = true
	l.Node.HitShape = scene.HitRect{Width: w, Height: h}

	bg := fillRect(name+"-bg", w, h, colorTrack)
	l.Node.AddChild(bg)

	for i := 0; i < l.visible; i++ {
		slot := i
		row := scene.NewContainer("row")
		row.Interactable = true
		row.HitShape = scene.HitRect{Width: w, Height: listRowH}
		row.SetPosition(0, float64(i)*listRowH)
		row.OnClick = func(scene.ClickContext) {
			l.clickSlot(slot)
		}

		rbg := fillRect("row-bg", w-2, listRowH-1, colorRow)
		rbg.SetPosition(1, 0)
		row.AddChild(rbg)

		label := NewLabel("row-label", "")
		label.SetPosition(6, (listRowH-scene.BasicFont().LineHeight())/2)
		row.AddChild(label)

		l.Node.AddChild(row)
		l.slots = append(l.slots, listSlot{row: row, bg: rbg, label: label})
	}
	l.refresh()
	return l
}

func (l *List) clickSlot(slot int) {
	idx := l.top + slot
	if idx < 0 || idx >= len(l.items) {
		return
	}
	l.selected = idx
	l.refresh()
	if l.OnSelect != nil {
		l.OnSelect(idx)
	}
}

// SetItems replaces the rows. Selection and scroll reset unless the
// previously selected value survives.
func (l *List) SetItems(items []string) {
	prev := ""
	if l.selected >= 0 && l.selected < len(l.items) {
		prev = l.items[l.selected]
	}
	l.items = items
	l.selected = -1
	for i, it := range items {
		if prev != "" && it == prev {
			l.selected = i
			break
		}
	}
	l.clampScroll()
	l.refresh()
}

// Items returns the current rows.
func (l *List) Items() []string {
	return l.items
}

// Select moves the selection without firing OnSelect. Out-of-range
// indexes clear it. The selected row is scrolled into view.
func (l *List) Select(index int) {
	if index < 0 || index >= len(l.items) {
		l.selected = -1
	} else {
		l.selected = index
		if index < l.top {
			l.top = index
		} else if index >= l.top+l.visible {
			l.top = index - l.visible + 1
		}
	}
	l.clampScroll()
	l.refresh()
}

// Selected returns the selected row index, -1 for none.
func (l *List) Selected() int {
	return l.selected
}

// Scroll moves the visible window by whole rows.
func (l *List) Scroll(rows int) {
	l.top += rows
	l.clampScroll()
	l.refresh()
}

func (l *List) clampScroll() {
	max := len(l.items) - l.visible
	if max < 0 {
		max = 0
	}
	if l.top > max {
		l.top = max
	}
	if l.top < 0 {
		l.top = 0
	}
}

func (l *List) refresh() {
	font := scene.BasicFont()
	for i := range l.slots {
		idx := l.top + i
		s := &l.slots[i]
		if idx >= len(l.items) {
			s.row.Visible = false
			continue
		}
		s.row.Visible = true
		s.label.Text.SetContent(trimToWidth(font, l.items[idx], l.w-12))
		if idx == l.selected {
			s.bg.Color = colorRowSelected
		} else {
			s.bg.Color = colorRow
		}
	}
}

// --- Slider ---

// Slider maps a horizontal drag to a value in [min, max].
type Slider struct {
	Node *scene.Node
	fill *scene.Node
	knob *scene.Node

	min, max float64
	value    float64
	w, h     float64

	// OnChange fires when pointer input moves the value.
	OnChange func(v float64)
}

// NewSlider builds a slider spanning [min, max] starting at value.
func NewSlider(name string, w, h, min, max, value float64) *Slider {
	s := &Slider{min: min, max: max, w: w, h: h}

	s.Node = scene.NewContainer(name)
	s.Node.Interactable = true
	// Hit area taller than the track so the thumb is easy to grab.
	s.Node.HitShape = scene.HitRect{Y: -4, Width: w, Height: h + 8}

	track := fillRect(name+"-track", w, h, colorTrack)
	s.Node.AddChild(track)

	s.fill = fillRect(name+"-fill", 1, h, colorTrackFill)
	s.Node.AddChild(s.fill)

	s.knob = fillRect(name+"-knob", 8, h+6, colorKnob)
	s.knob.SetPosition(0, -3)
	s.Node.AddChild(s.knob)

	s.Node.OnPointerDown = func(ctx scene.PointerContext) {
		s.setFromLocalX(ctx.LocalX)
	}
	s.Node.OnDrag = func(ctx scene.DragContext) {
		s.setFromLocalX(ctx.LocalX)
	}

	s.SetValue(value)
	return s
}

func (s *Slider) setFromLocalX(lx float64) {
	t := lx / s.w
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	v := s.min + (s.max-s.min)*t
	if v == s.value {
		return
	}
	s.value = v
	s.layout()
	if s.OnChange != nil {
		s.OnChange(v)
	}
}

// SetValue moves the slider without firing OnChange.
func (s *Slider) SetValue(v float64) {
	if v < s.min {
		v = s.min
	}
	if v > s.max {
		v = s.max
	}
	s.value = v
	s.layout()
}

// Value returns the current value.
func (s *Slider) Value() float64 {
	return s.value
}

func (s *Slider) layout() {
	t := 0.0
	if s.max > s.min {
		t = (s.value - s.min) / (s.max - s.min)
	}
	s.fill.Visible = t > 0
	if t > 0 {
		s.fill.SetScale(s.w*t, s.h)
	}
	s.knob.SetPosition(s.w*t-4, -3)
}
