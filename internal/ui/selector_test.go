package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/tushargaudara/Anima-Engine/internal/anim"
	"github.com/tushargaudara/Anima-Engine/internal/scene"
)

// writeGIF drops a 2-frame 16x16 animation at path, 50ms per frame.
func writeGIF(t *testing.T, path string) {
	t.Helper()
	pal := color.Palette{
		color.RGBA{},
		color.RGBA{R: 255, A: 255},
		color.RGBA{G: 255, A: 255},
	}
	g := &gif.GIF{Delay: []int{5, 5}, Disposal: []byte{gif.DisposalNone, gif.DisposalNone}}
	for i := 0; i < 2; i++ {
		frame := image.NewPaletted(image.Rect(0, 0, 16, 16), pal)
		for p := range frame.Pix {
			frame.Pix[p] = uint8(i + 1)
		}
		g.Image = append(g.Image, frame)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, g); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

// newTestSelector builds a selector over a library with blob.gif and
// cat.gif, mounted in a fresh scene at the origin.
func newTestSelector(t *testing.T) (*scene.Scene, *Selector) {
	t.Helper()
	dir := t.TempDir()
	writeGIF(t, filepath.Join(dir, "blob.gif"))
	writeGIF(t, filepath.Join(dir, "cat.gif"))

	lib := anim.NewLibrary(dir)
	sel := NewSelector(lib, 180)
	sel.SetEntries(lib.Scan())

	s := scene.NewScene()
	s.Root().AddChild(sel.Panel.Node)
	return s, sel
}

func TestSelectorListsBasenames(t *testing.T) {
	_, sel := newTestSelector(t)

	items := sel.list.Items()
	if len(items) != 2 || items[0] != "blob" || items[1] != "cat" {
		t.Errorf("items = %v, want [blob cat]", items)
	}
	if sel.Visible() {
		t.Error("selector must start hidden")
	}
}

func TestSelectorPreviewFollowsSelection(t *testing.T) {
	_, sel := newTestSelector(t)

	sel.SelectPath(sel.entries[0].Path)
	if sel.player == nil || !sel.preview.Visible {
		t.Fatal("selecting an entry must build a preview")
	}
	if sel.missing.Visible {
		t.Error("placeholder shown for a readable file")
	}

	// 16px frames scale up to fill the 180px box.
	want := 180.0 / 16.0
	if sel.preview.ScaleX != want {
		t.Errorf("preview scale = %v, want %v", sel.preview.ScaleX, want)
	}
}

func TestSelectorPreviewMissingFile(t *testing.T) {
	_, sel := newTestSelector(t)

	sel.AddEntry("/nowhere/ghost.gif")
	if !sel.missing.Visible {
		t.Error("placeholder hidden for a missing file")
	}
	if sel.preview.Visible || sel.player != nil {
		t.Error("preview active for a missing file")
	}
}

func TestSelectorPreviewAnimates(t *testing.T) {
	_, sel := newTestSelector(t)

	sel.SelectPath(sel.entries[0].Path)
	sel.Show()

	sel.Update(0.06)
	if sel.player.Index() != 1 {
		t.Errorf("preview frame = %d, want 1 after 60ms", sel.player.Index())
	}
}

func TestSelectorPreviewFrozenWhileHidden(t *testing.T) {
	_, sel := newTestSelector(t)

	sel.SelectPath(sel.entries[0].Path)
	sel.Update(0.5)
	if sel.player.Index() != 0 {
		t.Errorf("hidden selector advanced to frame %d", sel.player.Index())
	}
}

func TestSelectorAddEntry(t *testing.T) {
	_, sel := newTestSelector(t)

	changed := 0
	sel.OnEntriesChanged = func() { changed++ }

	if !sel.AddEntry("/tmp/new.gif") {
		t.Fatal("AddEntry rejected a new path")
	}
	if len(sel.entries) != 3 || sel.entries[2].Name != "new" {
		t.Errorf("entries = %+v", sel.entries)
	}
	if sel.list.Selected() != 2 {
		t.Errorf("selected = %d, want the new entry", sel.list.Selected())
	}
	if changed != 1 {
		t.Errorf("OnEntriesChanged fired %d times, want 1", changed)
	}
}

func TestSelectorAddEntryDedupes(t *testing.T) {
	_, sel := newTestSelector(t)

	changed := 0
	sel.OnEntriesChanged = func() { changed++ }

	if sel.AddEntry(sel.entries[1].Path) {
		t.Fatal("AddEntry accepted a duplicate")
	}
	if len(sel.entries) != 2 {
		t.Errorf("entries grew to %d", len(sel.entries))
	}
	if sel.list.Selected() != 1 {
		t.Errorf("selected = %d, want the existing entry", sel.list.Selected())
	}
	if changed != 0 {
		t.Errorf("OnEntriesChanged fired %d times for a duplicate", changed)
	}
}

func TestSelectorDeleteAdjustsSelection(t *testing.T) {
	_, sel := newTestSelector(t)
	sel.AddEntry("/tmp/zed.gif") // entries: blob cat zed

	sel.list.Select(1)
	sel.deleteSelected() // blob zed
	if len(sel.entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(sel.entries))
	}
	if sel.entries[1].Name != "zed" {
		t.Errorf("entries = %+v", sel.entries)
	}
	if sel.list.Selected() != 1 {
		t.Errorf("selected = %d, want successor at 1", sel.list.Selected())
	}

	sel.deleteSelected() // blob
	if sel.list.Selected() != 0 {
		t.Errorf("selected = %d, want last entry after tail delete", sel.list.Selected())
	}

	sel.deleteSelected() // empty
	if len(sel.entries) != 0 || sel.list.Selected() != -1 {
		t.Errorf("entries = %d selected = %d, want empty/-1",
			len(sel.entries), sel.list.Selected())
	}

	// Nothing left to delete.
	sel.deleteSelected()
}

func TestSelectorApplyButton(t *testing.T) {
	s, sel := newTestSelector(t)
	sel.SelectPath(sel.entries[0].Path)
	sel.Show()

	var applied string
	sel.OnApply = func(path string) { applied = path }

	// Apply sits first in the button row along the bottom edge.
	_, h := sel.Panel.Size()
	s.InjectClick(50, h-22)
	drain(s)

	if applied != sel.entries[0].Path {
		t.Errorf("applied = %q, want %q", applied, sel.entries[0].Path)
	}
}

func TestSelectorCloseButton(t *testing.T) {
	s, sel := newTestSelector(t)
	sel.Show()

	closed := false
	sel.OnClose = func() { closed = true }

	_, h := sel.Panel.Size()
	s.InjectClick(panelPad+3*(buttonW+8)+40, h-22)
	drain(s)

	if sel.Visible() {
		t.Error("Close left the panel open")
	}
	if !closed {
		t.Error("OnClose did not fire")
	}
}

func TestSelectorAddButtonRequestsDialog(t *testing.T) {
	s, sel := newTestSelector(t)
	sel.Show()

	requests := 0
	sel.OnAddRequest = func() { requests++ }

	_, h := sel.Panel.Size()
	s.InjectClick(panelPad+(buttonW+8)+40, h-22)
	drain(s)

	if requests != 1 {
		t.Errorf("add requests = %d, want 1", requests)
	}
}

func TestSelectorOpacitySlider(t *testing.T) {
	s, sel := newTestSelector(t)
	sel.Show()

	var got float64
	sel.OnOpacity = func(v float64) { got = v }

	// Slider spans previewSize px starting right of the list.
	colX := panelPad*2 + selectorListW
	y := titleRowH + 8 + 180 + 30 + 4
	s.InjectPress(colX+90, y)
	s.InjectRelease(colX+90, y)
	drain(s)

	if got != 0.65 {
		t.Errorf("opacity = %v, want 0.65 at mid-track", got)
	}
	if sel.opacityLbl.Text.Content != "Opacity 65%" {
		t.Errorf("label = %q", sel.opacityLbl.Text.Content)
	}
}

func TestSelectorSetOpacity(t *testing.T) {
	_, sel := newTestSelector(t)

	fired := false
	sel.OnOpacity = func(float64) { fired = true }

	sel.SetOpacity(0.8)
	if sel.slider.Value() != 80 {
		t.Errorf("slider = %v, want 80", sel.slider.Value())
	}
	if sel.opacityLbl.Text.Content != "Opacity 80%" {
		t.Errorf("label = %q", sel.opacityLbl.Text.Content)
	}
	if fired {
		t.Error("SetOpacity must not fire OnOpacity")
	}
}

func TestSelectorWheelScrollsList(t *testing.T) {
	_, sel := newTestSelector(t)

	for i := 0; i < 14; i++ {
		sel.AddEntry(fmt.Sprintf("/tmp/extra-%02d.gif", i))
	}

	sel.list.Select(0)
	sel.HandleWheel(-1)
	if sel.list.top != 1 {
		t.Errorf("top = %d after wheel down, want 1", sel.list.top)
	}
	sel.HandleWheel(1)
	if sel.list.top != 0 {
		t.Errorf("top = %d after wheel up, want 0", sel.list.top)
	}
}

func TestSelectorKeepsSelectionAcrossRescan(t *testing.T) {
	_, sel := newTestSelector(t)
	catPath := sel.entries[1].Path
	sel.SelectPath(catPath)

	// A rescan that still contains the file keeps it selected.
	sel.SetEntries([]anim.Entry{
		{Name: "ant", Path: "/tmp/ant.gif"},
		{Name: "cat", Path: catPath},
	})
	if sel.SelectedPath() != catPath {
		t.Errorf("selected = %q, want %q", sel.SelectedPath(), catPath)
	}
}
