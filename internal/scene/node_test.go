package scene

import "testing"

func TestNewNodeDefaults(t *testing.T) {
	n := NewContainer("box")
	if n.Name != "box" {
		t.Errorf("Name = %q, want %q", n.Name, "box")
	}
	if n.Type != NodeTypeContainer {
		t.Errorf("Type = %v, want NodeTypeContainer", n.Type)
	}
	if n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("scale = (%v, %v), want (1, 1)", n.ScaleX, n.ScaleY)
	}
	if n.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", n.Alpha)
	}
	if !n.Visible || !n.Renderable {
		t.Error("new nodes start visible and renderable")
	}
	if n.Interactable {
		t.Error("new nodes start non-interactable")
	}
	if n.ID == 0 {
		t.Error("node ID not assigned")
	}
}

func TestNodeIDsUnique(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	if a.ID == b.ID {
		t.Errorf("two nodes share ID %d", a.ID)
	}
}

func TestAddChild(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent not set")
	}
	if parent.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", parent.NumChildren())
	}
	if parent.ChildAt(0) != child {
		t.Error("ChildAt(0) is not the added child")
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	child := NewContainer("child")

	a.AddChild(child)
	b.AddChild(child)

	if child.Parent != b {
		t.Error("child not reparented to b")
	}
	if a.NumChildren() != 0 {
		t.Errorf("old parent still has %d children", a.NumChildren())
	}
	if b.NumChildren() != 1 {
		t.Errorf("new parent has %d children, want 1", b.NumChildren())
	}
}

func TestAddChildPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil child", func() {
			NewContainer("p").AddChild(nil)
		}},
		{"self as child", func() {
			n := NewContainer("n")
			n.AddChild(n)
		}},
		{"ancestor as child", func() {
			a := NewContainer("a")
			b := NewContainer("b")
			a.AddChild(b)
			b.AddChild(a)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestRemoveChild(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	parent.RemoveChild(child)

	if child.Parent != nil {
		t.Error("child.Parent not cleared")
	}
	if parent.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", parent.NumChildren())
	}
}

func TestRemoveChildWrongParentPanics(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	child := NewContainer("child")
	a.AddChild(child)

	defer func() {
		if recover() == nil {
			t.Error("expected panic removing a child of another parent")
		}
	}()
	b.RemoveChild(child)
}

func TestRemoveFromParent(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	child.RemoveFromParent()

	if child.Parent != nil || parent.NumChildren() != 0 {
		t.Error("RemoveFromParent did not detach the child")
	}

	// Detached nodes tolerate a second call.
	child.RemoveFromParent()
}

func TestRemoveChildren(t *testing.T) {
	parent := NewContainer("parent")
	kids := make([]*Node, 5)
	for i := range kids {
		kids[i] = NewContainer("kid")
		parent.AddChild(kids[i])
	}
	parent.RemoveChildren()

	if parent.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", parent.NumChildren())
	}
	for i, k := range kids {
		if k.Parent != nil {
			t.Errorf("kid %d still parented", i)
		}
		if k.IsDisposed() {
			t.Errorf("kid %d disposed; RemoveChildren only detaches", i)
		}
	}
}

func TestChildAtOutOfRange(t *testing.T) {
	parent := NewContainer("parent")
	if parent.ChildAt(0) != nil {
		t.Error("ChildAt on empty parent should return nil")
	}
	if parent.ChildAt(-1) != nil {
		t.Error("ChildAt(-1) should return nil")
	}
}

func TestContainsDescendant(t *testing.T) {
	root := NewContainer("root")
	mid := NewContainer("mid")
	leaf := NewContainer("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)

	if !root.ContainsDescendant(leaf) {
		t.Error("root should contain leaf")
	}
	if !root.ContainsDescendant(root) {
		t.Error("a node contains itself")
	}
	if leaf.ContainsDescendant(root) {
		t.Error("leaf should not contain root")
	}
	if root.ContainsDescendant(nil) {
		t.Error("nil is never a descendant")
	}
}

func TestDispose(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	grandchild := NewContainer("grandchild")
	parent.AddChild(child)
	child.AddChild(grandchild)

	child.Dispose()

	if !child.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("Dispose must cover the whole subtree")
	}
	if parent.NumChildren() != 0 {
		t.Error("disposed child still attached to parent")
	}
	if parent.IsDisposed() {
		t.Error("parent must survive child disposal")
	}

	// Double dispose is a no-op.
	child.Dispose()
}

func TestSetImageSyncsSize(t *testing.T) {
	n := NewSprite("sprite", nil)
	if n.W != 0 || n.H != 0 {
		t.Errorf("nil-image sprite size = (%v, %v), want (0, 0)", n.W, n.H)
	}
	n.SetSize(64, 32)
	if n.W != 64 || n.H != 32 {
		t.Errorf("size = (%v, %v), want (64, 32)", n.W, n.H)
	}
}

func TestSetZIndexResortsChildren(t *testing.T) {
	s := NewScene()
	parent := NewContainer("parent")
	s.Root().AddChild(parent)

	a := NewSprite("a", nil)
	b := NewSprite("b", nil)
	c := NewSprite("c", nil)
	parent.AddChild(a)
	parent.AddChild(b)
	parent.AddChild(c)

	a.SetZIndex(10)
	b.SetZIndex(-5)

	rebuildSortedChildren(parent)
	order := parent.sortedChildren
	if len(order) != 3 {
		t.Fatalf("sorted children = %d, want 3", len(order))
	}
	if order[0] != b || order[1] != c || order[2] != a {
		t.Errorf("sorted order = [%s %s %s], want [b c a]",
			order[0].Name, order[1].Name, order[2].Name)
	}
}

func TestZIndexSortStable(t *testing.T) {
	parent := NewContainer("parent")
	nodes := make([]*Node, 6)
	for i := range nodes {
		nodes[i] = NewSprite("n", nil)
		parent.AddChild(nodes[i])
	}
	// Equal z-indices keep insertion order.
	rebuildSortedChildren(parent)
	for i, n := range parent.sortedChildren {
		if n != nodes[i] {
			t.Fatalf("equal z-index sort not stable at %d", i)
		}
	}
}
