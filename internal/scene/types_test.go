package scene

import "testing"

// --- Rect.Contains ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"left edge", 10, 40, true},
		{"right edge", 110, 40, true},
		{"top edge", 50, 20, true},
		{"bottom edge", 50, 70, true},
		{"outside left", 9, 40, false},
		{"outside right", 111, 40, false},
		{"outside above", 50, 19, false},
		{"outside below", 50, 71, false},
		{"far outside", 999, 999, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Contains(tt.x, tt.y)
			if got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

// --- Rect.Intersects ---

func TestRectIntersects(t *testing.T) {
	base := Rect{10, 10, 100, 100}
	tests := []struct {
		name   string
		other  Rect
		expect bool
	}{
		{"overlapping", Rect{50, 50, 100, 100}, true},
		{"fully contained", Rect{20, 20, 10, 10}, true},
		{"containing", Rect{0, 0, 200, 200}, true},
		{"adjacent right", Rect{110, 10, 50, 50}, true},
		{"adjacent bottom", Rect{10, 110, 50, 50}, true},
		{"disjoint right", Rect{111, 10, 50, 50}, false},
		{"disjoint left", Rect{-100, 10, 50, 50}, false},
		{"disjoint above", Rect{10, -100, 50, 50}, false},
		{"disjoint below", Rect{10, 111, 50, 50}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base.Intersects(tt.other)
			if got != tt.expect {
				t.Errorf("Rect%v.Intersects(%v) = %v, want %v", base, tt.other, got, tt.expect)
			}
			// Intersection is symmetric.
			if rev := tt.other.Intersects(base); rev != got {
				t.Errorf("Intersects not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

// --- EventType.String ---

func TestEventTypeString(t *testing.T) {
	tests := []struct {
		typ  EventType
		want string
	}{
		{EventPointerDown, "pointer-down"},
		{EventPointerUp, "pointer-up"},
		{EventPointerMove, "pointer-move"},
		{EventClick, "click"},
		{EventDoubleClick, "double-click"},
		{EventDragStart, "drag-start"},
		{EventDrag, "drag"},
		{EventDragEnd, "drag-end"},
		{EventPointerEnter, "pointer-enter"},
		{EventPointerLeave, "pointer-leave"},
		{EventType(255), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("EventType(%d).String() = %q, want %q", tt.typ, tt.typ, tt.want)
		}
	}
}

// --- HitRect / HitCircle ---

func TestHitShapes(t *testing.T) {
	rect := HitRect{X: 0, Y: 0, Width: 10, Height: 10}
	if !rect.Contains(5, 5) {
		t.Error("HitRect should contain center point")
	}
	if rect.Contains(11, 5) {
		t.Error("HitRect should not contain point outside")
	}

	circle := HitCircle{CenterX: 0, CenterY: 0, Radius: 5}
	if !circle.Contains(3, 4) {
		t.Error("HitCircle should contain point on radius")
	}
	if circle.Contains(4, 4) {
		t.Error("HitCircle should not contain point outside radius")
	}
}
