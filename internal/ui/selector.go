package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tushargaudara/Anima-Engine/internal/anim"
	"github.com/tushargaudara/Anima-Engine/internal/scene"
)

const (
	selectorListW = 180.0
	buttonW       = 80.0
	buttonH       = 24.0
)

// Selector is the companion panel: a list of known animations, a live
// preview of the selected one, and an opacity slider. It owns no pets;
// choices surface through the On* callbacks.
type Selector struct {
	Panel *Panel

	list       *List
	slider     *Slider
	opacityLbl *scene.Node
	preview    *scene.Node
	missing    *scene.Node
	player     *anim.Player

	applyBtn  *Button
	addBtn    *Button
	deleteBtn *Button
	closeBtn  *Button

	lib         *anim.Library
	entries     []anim.Entry
	previewSize float64

	// OnApply fires with the selected animation path when Apply is hit.
	OnApply func(path string)
	// OnOpacity fires with the opacity fraction as the slider moves.
	OnOpacity func(v float64)
	// OnAddRequest fires when the user wants to browse for a new file.
	OnAddRequest func()
	// OnClose fires after the panel hides itself.
	OnClose func()
	// OnEntriesChanged fires after Add or Delete rewrites the entry set.
	OnEntriesChanged func()
}

// NewSelector builds the selector panel around a preview box of the given
// size. The panel starts hidden.
func NewSelector(lib *anim.Library, previewSize float64) *Selector {
	s := &Selector{lib: lib, previewSize: previewSize}

	w := panelPad*3 + selectorListW + previewSize
	h := titleRowH + 8 + previewSize + 64 + buttonH + panelPad
	s.Panel = NewPanel("selector", "Character Selector", w, h)
	s.Panel.Hide()

	listTop := titleRowH + 8.0
	listH := h - listTop - buttonH - panelPad*2
	s.list = NewList("selector-list", selectorListW, listH)
	s.list.OnSelect = func(int) { s.refreshPreview() }
	s.Panel.Place(s.list.Node, panelPad, listTop)

	colX := panelPad*2 + selectorListW

	box := fillRect("selector-preview-box", previewSize, previewSize, colorTrack)
	s.Panel.Place(box, colX, listTop)

	s.preview = scene.NewSprite("selector-preview", nil)
	s.preview.Visible = false
	s.Panel.Place(s.preview, colX, listTop)

	s.missing = NewLabel("selector-missing", "File not found")
	s.missing.Text.Color = colorTextDim
	s.missing.Text.Align = scene.TextAlignCenter
	s.missing.Text.FixedWidth = previewSize
	s.missing.Visible = false
	s.Panel.Place(s.missing, colX, listTop+previewSize/2-7)

	s.opacityLbl = NewLabel("selector-opacity-label", "Opacity 100%")
	s.Panel.Place(s.opacityLbl, colX, listTop+previewSize+10)

	s.slider = NewSlider("selector-opacity", previewSize, 8, 30, 100, 100)
	s.slider.OnChange = func(v float64) {
		s.setOpacityLabel(v)
		if s.OnOpacity != nil {
			s.OnOpacity(v / 100)
		}
	}
	s.Panel.Place(s.slider.Node, colX, listTop+previewSize+30)

	btnY := h - buttonH - panelPad
	names := []string{"Apply", "Add", "Delete", "Close"}
	btns := make([]*Button, len(names))
	for i, n := range names {
		btns[i] = NewButton("selector-"+strings.ToLower(n), n, buttonW, buttonH)
		s.Panel.Place(btns[i].Node, panelPad+float64(i)*(buttonW+8), btnY)
	}
	s.applyBtn, s.addBtn, s.deleteBtn, s.closeBtn = btns[0], btns[1], btns[2], btns[3]

	s.applyBtn.OnTap = func() {
		if path := s.SelectedPath(); path != "" && s.OnApply != nil {
			s.OnApply(path)
		}
	}
	s.addBtn.OnTap = func() {
		if s.OnAddRequest != nil {
			s.OnAddRequest()
		}
	}
	s.deleteBtn.OnTap = func() { s.deleteSelected() }
	s.closeBtn.OnTap = func() {
		s.Hide()
		if s.OnClose != nil {
			s.OnClose()
		}
	}

	return s
}

// SetEntries replaces the animation list, keeping the selection when its
// path survives the rewrite.
func (s *Selector) SetEntries(entries []anim.Entry) {
	prev := s.SelectedPath()
	s.entries = entries
	s.list.SetItems(entryNames(entries))
	if prev != "" {
		s.SelectPath(prev)
		return
	}
	s.refreshPreview()
}

// Entries returns the current animation list.
func (s *Selector) Entries() []anim.Entry {
	return s.entries
}

// AddEntry appends a new animation path, ignoring exact duplicates. The
// new entry is selected so the preview shows what was just picked.
func (s *Selector) AddEntry(path string) bool {
	for i, e := range s.entries {
		if e.Path == path {
			s.list.Select(i)
			s.refreshPreview()
			return false
		}
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	s.entries = append(s.entries, anim.Entry{Name: name, Path: path})
	s.list.SetItems(entryNames(s.entries))
	s.list.Select(len(s.entries) - 1)
	s.refreshPreview()
	if s.OnEntriesChanged != nil {
		s.OnEntriesChanged()
	}
	return true
}

// deleteSelected removes the selected entry. The next entry inherits the
// selection, or the new last one when the tail was deleted.
func (s *Selector) deleteSelected() {
	idx := s.list.Selected()
	if idx < 0 || idx >= len(s.entries) {
		return
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	s.list.SetItems(entryNames(s.entries))
	if idx >= len(s.entries) {
		idx = len(s.entries) - 1
	}
	s.list.Select(idx)
	s.refreshPreview()
	if s.OnEntriesChanged != nil {
		s.OnEntriesChanged()
	}
}

// SelectPath highlights the entry with the given path, if present.
func (s *Selector) SelectPath(path string) {
	for i, e := range s.entries {
		if e.Path == path {
			s.list.Select(i)
			s.refreshPreview()
			return
		}
	}
}

// SelectedPath returns the path of the highlighted entry, "" for none.
func (s *Selector) SelectedPath() string {
	idx := s.list.Selected()
	if idx < 0 || idx >= len(s.entries) {
		return ""
	}
	return s.entries[idx].Path
}

// SetOpacity positions the slider from a saved fraction without firing
// OnOpacity.
func (s *Selector) SetOpacity(v float64) {
	s.slider.SetValue(v * 100)
	s.setOpacityLabel(s.slider.Value())
}

func (s *Selector) setOpacityLabel(percent float64) {
	s.opacityLbl.Text.SetContent(fmt.Sprintf("Opacity %.0f%%", percent))
}

// Update advances the preview animation while the panel is visible.
func (s *Selector) Update(dt float64) {
	if !s.Panel.Visible() || s.player == nil {
		return
	}
	if s.player.Update(dt) {
		if frame := s.player.Frame(); frame != nil {
			s.preview.SetImage(frame)
		}
	}
}

// HandleWheel scrolls the list by whole rows; positive dy scrolls up.
func (s *Selector) HandleWheel(dy float64) {
	if dy > 0 {
		s.list.Scroll(-1)
	} else if dy < 0 {
		s.list.Scroll(1)
	}
}

// Show opens the panel.
func (s *Selector) Show() {
	s.Panel.Show()
}

// Hide closes the panel.
func (s *Selector) Hide() {
	s.Panel.Hide()
}

// Visible reports whether the panel is open.
func (s *Selector) Visible() bool {
	return s.Panel.Visible()
}

// refreshPreview rebuilds the preview player for the selected entry.
// A missing or unreadable file shows the placeholder label instead.
func (s *Selector) refreshPreview() {
	s.player = nil
	s.preview.Visible = false
	s.missing.Visible = false

	path := s.SelectedPath()
	if path == "" {
		return
	}
	if !s.lib.Exists(path) {
		s.missing.Visible = true
		return
	}
	seq, err := s.lib.Load(path)
	if err != nil {
		s.missing.Visible = true
		return
	}

	clip := anim.NewClip(seq)
	s.player = anim.NewPlayer(clip)

	// Fit the frame into the preview box, centered.
	side := float64(seq.W)
	if float64(seq.H) > side {
		side = float64(seq.H)
	}
	sc := 1.0
	if side > 0 {
		sc = s.previewSize / side
	}
	s.preview.SetScale(sc, sc)
	s.preview.SetPosition(
		s.previewColX()+(s.previewSize-float64(seq.W)*sc)/2,
		titleRowH+8+(s.previewSize-float64(seq.H)*sc)/2,
	)
	if len(clip.Textures) > 0 && clip.Textures[0] != nil {
		s.preview.SetImage(clip.Textures[0])
	}
	s.preview.Visible = true
}

func (s *Selector) previewColX() float64 {
	return panelPad*2 + selectorListW
}

func entryNames(entries []anim.Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}
