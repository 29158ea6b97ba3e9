package ui

import (
	"github.com/tushargaudara/Anima-Engine/internal/scene"
)

const (
	menuW     = 150.0
	menuItemH = 26.0
	menuPad   = 6.0
)

// Menu is the right-click context menu for a pet. It closes itself when a
// press lands anywhere outside it.
type Menu struct {
	Panel *Panel

	lockItem   *Button
	changeItem *Button
	addItem    *Button
	removeItem *Button
	quitItem   *Button

	boundsW, boundsH float64

	// OnLockToggle fires for Lock/Unlock.
	OnLockToggle func()
	// OnChangeCharacter opens the selector for the menu's pet.
	OnChangeCharacter func()
	// OnAddPet fires for Add Pet.
	OnAddPet func()
	// OnRemovePet fires for Remove Pet.
	OnRemovePet func()
	// OnQuit fires for Quit.
	OnQuit func()
}

// NewMenu builds the context menu clamped to the given screen bounds.
// The menu starts hidden.
func NewMenu(boundsW, boundsH float64) *Menu {
	m := &Menu{boundsW: boundsW, boundsH: boundsH}

	labels := []string{"Lock", "Change Character", "Add Pet", "Remove Pet", "Quit"}
	h := menuPad*2 + float64(len(labels))*menuItemH
	m.Panel = NewPanel("menu", "", menuW, h)
	m.Panel.Hide()

	items := make([]*Button, len(labels))
	for i, lbl := range labels {
		items[i] = NewButton("menu-item", lbl, menuW-menuPad*2, menuItemH-2)
		items[i].label.Text.Align = scene.TextAlignLeft
		items[i].label.SetPosition(8, items[i].label.Y)
		m.Panel.Place(items[i].Node, menuPad, menuPad+float64(i)*menuItemH)
	}
	m.lockItem, m.changeItem, m.addItem, m.removeItem, m.quitItem =
		items[0], items[1], items[2], items[3], items[4]

	m.lockItem.OnTap = m.tap(func() {
		if m.OnLockToggle != nil {
			m.OnLockToggle()
		}
	})
	m.changeItem.OnTap = m.tap(func() {
		if m.OnChangeCharacter != nil {
			m.OnChangeCharacter()
		}
	})
	m.addItem.OnTap = m.tap(func() {
		if m.OnAddPet != nil {
			m.OnAddPet()
		}
	})
	m.removeItem.OnTap = m.tap(func() {
		if m.OnRemovePet != nil {
			m.OnRemovePet()
		}
	})
	m.quitItem.OnTap = m.tap(func() {
		if m.OnQuit != nil {
			m.OnQuit()
		}
	})

	return m
}

// tap wraps an item action so choosing it also closes the menu.
func (m *Menu) tap(fn func()) func() {
	return func() {
		m.Hide()
		fn()
	}
}

// Attach registers the outside-press handler that dismisses the menu.
func (m *Menu) Attach(s *scene.Scene) {
	s.OnPointerDown(func(ctx scene.PointerContext) {
		if !m.Visible() {
			return
		}
		if ctx.Node == nil || !m.Panel.Node.ContainsDescendant(ctx.Node) {
			m.Hide()
		}
	})
}

// ShowFor opens the menu near (x, y), kept on screen, with item states
// matching the clicked pet and the fleet limits.
func (m *Menu) ShowFor(x, y float64, locked, canAdd, canRemove bool) {
	if locked {
		m.lockItem.SetText("Unlock")
	} else {
		m.lockItem.SetText("Lock")
	}
	m.addItem.SetDisabled(!canAdd)
	m.removeItem.SetDisabled(!canRemove)

	w, h := m.Panel.Size()
	if x+w > m.boundsW {
		x = m.boundsW - w
	}
	if y+h > m.boundsH {
		y = m.boundsH - h
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	m.Panel.Node.SetPosition(x, y)
	m.Panel.Show()
}

// Hide closes the menu.
func (m *Menu) Hide() {
	m.Panel.Hide()
}

// Visible reports whether the menu is open.
func (m *Menu) Visible() bool {
	return m.Panel.Visible()
}
