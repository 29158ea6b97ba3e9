package pet

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tushargaudara/Anima-Engine/internal/anim"
	"github.com/tushargaudara/Anima-Engine/internal/scene"
)

// petScene builds a scene with one 100px pet at (100, 100) inside a
// 1000x1000 bound, so injected input at (150, 150) lands on it.
func petScene(t *testing.T) (*scene.Scene, *Pet) {
	t.Helper()
	s := scene.NewScene()
	p := New("pet-test", 100, 0.30)
	p.SetBounds(1000, 1000)
	p.SetPosition(100, 100)
	s.Root().AddChild(p.Node())
	return s, p
}

// drain runs scene frames until the injected input queue empties.
func drain(s *scene.Scene) {
	for s.HasPendingInput() {
		s.Update(0.016)
	}
}

func TestNewPet(t *testing.T) {
	p := New("buddy", 250, 0.30)
	if !p.Node().Interactable {
		t.Error("pets must be interactable")
	}
	if p.Node().W != 250 || p.Node().H != 250 {
		t.Errorf("hit box = %vx%v, want 250x250", p.Node().W, p.Node().H)
	}
	if p.Opacity() != 1 {
		t.Errorf("opacity = %v, want 1", p.Opacity())
	}
	if p.Locked() {
		t.Error("pets start unlocked")
	}
}

func TestSetPositionClamps(t *testing.T) {
	p := New("p", 100, 0.30)
	p.SetBounds(800, 600)

	tests := []struct {
		name         string
		x, y         float64
		wantX, wantY float64
	}{
		{"inside", 300, 200, 300, 200},
		{"past right", 900, 200, 700, 200},
		{"past bottom", 300, 700, 300, 500},
		{"negative", -50, -50, 0, 0},
		{"corner", 1e9, 1e9, 700, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.SetPosition(tt.x, tt.y)
			x, y := p.Position()
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("position = (%v, %v), want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestSetPositionWithoutBounds(t *testing.T) {
	p := New("p", 100, 0.30)
	p.SetPosition(-500, 9000)
	x, y := p.Position()
	if x != -500 || y != 9000 {
		t.Errorf("unbounded position = (%v, %v), want (-500, 9000)", x, y)
	}
}

func TestSetOpacityClampsToFloor(t *testing.T) {
	p := New("p", 100, 0.30)

	p.SetOpacity(0.05)
	if p.Opacity() != 0.30 {
		t.Errorf("opacity below floor = %v, want 0.30", p.Opacity())
	}
	p.SetOpacity(2.5)
	if p.Opacity() != 1 {
		t.Errorf("opacity above 1 = %v, want 1", p.Opacity())
	}
	p.SetOpacity(0.75)
	if p.Opacity() != 0.75 {
		t.Errorf("opacity = %v, want 0.75", p.Opacity())
	}
	if p.Node().Alpha != 0.75 {
		t.Errorf("node alpha = %v, want 0.75", p.Node().Alpha)
	}
}

func TestFadeIn(t *testing.T) {
	p := New("p", 100, 0.30)
	p.SetOpacity(0.8)
	p.FadeIn(0.6)

	if p.Node().Alpha != 0 {
		t.Errorf("alpha at fade start = %v, want 0", p.Node().Alpha)
	}

	p.Update(0.3)
	if math.Abs(p.Node().Alpha-0.4) > 1e-3 {
		t.Errorf("alpha halfway = %v, want 0.4", p.Node().Alpha)
	}

	p.Update(0.3)
	if math.Abs(p.Node().Alpha-0.8) > 1e-3 {
		t.Errorf("alpha after fade = %v, want 0.8", p.Node().Alpha)
	}

	// Extra updates don't disturb the settled alpha.
	p.Update(1)
	if math.Abs(p.Node().Alpha-0.8) > 1e-3 {
		t.Errorf("alpha after settle = %v, want 0.8", p.Node().Alpha)
	}
}

func TestFadeInZeroDuration(t *testing.T) {
	p := New("p", 100, 0.30)
	p.SetOpacity(0.5)
	p.FadeIn(0)
	if p.Node().Alpha != 0.5 {
		t.Errorf("alpha = %v, want immediate 0.5", p.Node().Alpha)
	}
}

func TestSetOpacityCancelsFade(t *testing.T) {
	p := New("p", 100, 0.30)
	p.FadeIn(10)
	p.Update(0.1)

	p.SetOpacity(0.6)
	p.Update(1)
	if p.Node().Alpha != 0.6 {
		t.Errorf("alpha = %v, want 0.6 after fade cancel", p.Node().Alpha)
	}
}

func TestSetClipScalesNode(t *testing.T) {
	p := New("p", 250, 0.30)
	clip := &anim.Clip{
		Textures:  make([]*ebiten.Image, 2),
		Durations: []float64{0.1, 0.1},
		W:         128, H: 128,
		Loop: true,
	}
	p.SetClip(clip, "/pets/blob.gif")

	want := 250.0 / 128.0
	if math.Abs(p.Node().ScaleX-want) > 1e-9 {
		t.Errorf("scale = %v, want %v", p.Node().ScaleX, want)
	}
	if p.Node().W != 128 || p.Node().H != 128 {
		t.Errorf("hit box = %vx%v, want frame-sized 128x128", p.Node().W, p.Node().H)
	}
	if p.Path() != "/pets/blob.gif" {
		t.Errorf("path = %q", p.Path())
	}
	if p.Clip() != clip {
		t.Error("Clip() must return the active clip")
	}
}

func TestDragMovesPet(t *testing.T) {
	s, p := petScene(t)

	moved := 0
	p.OnMoved = func(*Pet) { moved++ }

	s.InjectDrag(150, 150, 250, 230, 6)
	drain(s)

	x, y := p.Position()
	if x != 200 || y != 180 {
		t.Errorf("pet at (%v, %v), want (200, 180)", x, y)
	}
	if moved != 1 {
		t.Errorf("OnMoved fired %d times, want 1", moved)
	}
	if p.Dragging() {
		t.Error("drag flag still set after release")
	}
}

func TestDragClampsAtEdges(t *testing.T) {
	s, p := petScene(t)

	// Drag far past the right edge; the pet must stop at bounds - size.
	s.InjectDrag(150, 150, 2000, 150, 8)
	drain(s)

	x, _ := p.Position()
	if x != 900 {
		t.Errorf("pet x = %v, want clamped 900", x)
	}
}

func TestLockedPetIgnoresDrag(t *testing.T) {
	s, p := petScene(t)
	p.SetLocked(true)

	moved := 0
	p.OnMoved = func(*Pet) { moved++ }

	s.InjectDrag(150, 150, 400, 400, 6)
	drain(s)

	x, y := p.Position()
	if x != 100 || y != 100 {
		t.Errorf("locked pet moved to (%v, %v)", x, y)
	}
	if moved != 0 {
		t.Errorf("OnMoved fired %d times on a locked pet", moved)
	}
}

func TestDoubleClickTogglesLock(t *testing.T) {
	s, p := petScene(t)

	s.InjectDoubleClick(150, 150)
	drain(s)
	if !p.Locked() {
		t.Fatal("double click did not lock the pet")
	}

	// The click pair was consumed; another double click unlocks.
	s.InjectDoubleClick(150, 150)
	drain(s)
	if p.Locked() {
		t.Error("second double click did not unlock the pet")
	}
}

func TestInteractionCallback(t *testing.T) {
	s, p := petScene(t)

	interactions := 0
	p.OnInteract = func(*Pet) { interactions++ }

	s.InjectClick(150, 150)
	drain(s)

	if interactions == 0 {
		t.Error("click did not fire OnInteract")
	}
}

func TestRightClickOpensMenu(t *testing.T) {
	s, p := petScene(t)

	var menuX, menuY float64
	menus := 0
	p.OnMenu = func(_ *Pet, x, y float64) {
		menus++
		menuX, menuY = x, y
	}

	s.InjectRightClick(150, 150)
	drain(s)

	if menus != 1 {
		t.Fatalf("right click fired OnMenu %d times, want 1", menus)
	}
	if menuX != 150 || menuY != 150 {
		t.Errorf("menu position = (%v, %v), want (150, 150)", menuX, menuY)
	}

	// A plain left click must not open the menu.
	s.InjectClick(150, 150)
	drain(s)
	if menus != 1 {
		t.Errorf("left click fired OnMenu, count = %d", menus)
	}
}

func TestLockingMidDragDropsDrag(t *testing.T) {
	s, p := petScene(t)

	s.InjectPress(150, 150)
	s.InjectMove(200, 200)
	drain(s)
	if !p.Dragging() {
		t.Fatal("drag did not start")
	}

	p.SetLocked(true)
	if p.Dragging() {
		t.Error("lock must drop an active drag")
	}

	// Release the pointer so the scene state settles.
	s.InjectRelease(200, 200)
	drain(s)
}
