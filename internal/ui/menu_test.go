package ui

import (
	"testing"

	"github.com/tushargaudara/Anima-Engine/internal/scene"
)

func newTestMenu() (*scene.Scene, *Menu) {
	s := scene.NewScene()
	m := NewMenu(800, 600)
	m.Attach(s)
	s.Root().AddChild(m.Panel.Node)
	return s, m
}

func TestMenuLockLabelReflectsState(t *testing.T) {
	_, m := newTestMenu()

	m.ShowFor(100, 100, false, true, true)
	if got := m.lockItem.label.Text.Content; got != "Lock" {
		t.Errorf("label = %q, want Lock", got)
	}

	m.ShowFor(100, 100, true, true, true)
	if got := m.lockItem.label.Text.Content; got != "Unlock" {
		t.Errorf("label = %q, want Unlock", got)
	}
}

func TestMenuItemLimits(t *testing.T) {
	_, m := newTestMenu()

	m.ShowFor(100, 100, false, false, false)
	if !m.addItem.Disabled() || !m.removeItem.Disabled() {
		t.Error("limits did not disable Add/Remove")
	}

	m.ShowFor(100, 100, false, true, true)
	if m.addItem.Disabled() || m.removeItem.Disabled() {
		t.Error("items stayed disabled after limits lifted")
	}
}

func TestMenuClampsToScreen(t *testing.T) {
	_, m := newTestMenu()

	m.ShowFor(790, 590, false, true, true)
	w, h := m.Panel.Size()
	if m.Panel.Node.X != 800-w || m.Panel.Node.Y != 600-h {
		t.Errorf("menu at (%v, %v), want clamped (%v, %v)",
			m.Panel.Node.X, m.Panel.Node.Y, 800-w, 600-h)
	}

	m.ShowFor(-20, -20, false, true, true)
	if m.Panel.Node.X != 0 || m.Panel.Node.Y != 0 {
		t.Errorf("menu at (%v, %v), want (0, 0)", m.Panel.Node.X, m.Panel.Node.Y)
	}
}

func TestMenuOutsidePressCloses(t *testing.T) {
	s, m := newTestMenu()
	m.ShowFor(100, 100, false, true, true)

	s.InjectPress(700, 50)
	s.InjectRelease(700, 50)
	drain(s)

	if m.Visible() {
		t.Error("press outside did not close the menu")
	}
}

func TestMenuInsidePressStaysOpen(t *testing.T) {
	s, m := newTestMenu()
	m.ShowFor(100, 100, false, true, true)

	// The padding strip at the top edge belongs to the panel, not an item.
	s.InjectPress(103, 103)
	s.InjectRelease(103, 103)
	drain(s)

	if !m.Visible() {
		t.Error("press on the menu body closed it")
	}
}

func TestMenuItemFiresAndCloses(t *testing.T) {
	s, m := newTestMenu()

	quits := 0
	m.OnQuit = func() { quits++ }

	m.ShowFor(100, 100, false, true, true)

	// Quit is the fifth row.
	s.InjectClick(100+menuW/2, 100+menuPad+4*menuItemH+10)
	drain(s)

	if quits != 1 {
		t.Errorf("quits = %d, want 1", quits)
	}
	if m.Visible() {
		t.Error("menu still open after choosing an item")
	}
}

func TestMenuLockToggleItem(t *testing.T) {
	s, m := newTestMenu()

	toggles := 0
	m.OnLockToggle = func() { toggles++ }

	m.ShowFor(100, 100, false, true, true)
	s.InjectClick(100+menuW/2, 100+menuPad+10)
	drain(s)

	if toggles != 1 {
		t.Errorf("toggles = %d, want 1", toggles)
	}
}

func TestMenuDisabledItemInert(t *testing.T) {
	s, m := newTestMenu()

	adds := 0
	m.OnAddPet = func() { adds++ }

	m.ShowFor(100, 100, false, false, true)

	// Add Pet is the third row; disabled clicks land on the panel body.
	s.InjectClick(100+menuW/2, 100+menuPad+2*menuItemH+10)
	drain(s)

	if adds != 0 {
		t.Errorf("disabled Add Pet fired %d times", adds)
	}
	if !m.Visible() {
		t.Error("clicking a disabled item closed the menu")
	}
}

func TestMenuChangeCharacterItem(t *testing.T) {
	s, m := newTestMenu()

	changes := 0
	m.OnChangeCharacter = func() { changes++ }

	m.ShowFor(200, 200, false, true, true)
	s.InjectClick(200+menuW/2, 200+menuPad+menuItemH+10)
	drain(s)

	if changes != 1 {
		t.Errorf("changes = %d, want 1", changes)
	}
}
