package scene

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// drawNode walks the node tree depth-first, updating world transforms and
// drawing visible, renderable nodes directly to screen in painter order.
// Returns the number of draw calls issued.
func (s *Scene) drawNode(screen *ebiten.Image, n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool, drawn int) int {
	if !n.Visible {
		return drawn
	}

	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := computeLocalTransform(n)
		n.worldTransform = multiplyAffine(parentTransform, local)
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	if n.Renderable {
		switch n.Type {
		case NodeTypeSprite:
			if n.Image != nil && n.worldAlpha > 0 {
				var op ebiten.DrawImageOptions
				setGeoM(&op.GeoM, n.worldTransform)
				op.ColorScale.Scale(float32(n.Color.R), float32(n.Color.G), float32(n.Color.B), 1)
				op.ColorScale.ScaleAlpha(float32(n.Color.A * n.worldAlpha))
				op.Filter = ebiten.FilterLinear
				screen.DrawImage(n.Image, &op)
				drawn++
			}
		case NodeTypeText:
			if n.Text != nil && n.worldAlpha > 0 {
				drawn += drawTextBlock(screen, n)
			}
		}
	}

	if len(n.children) == 0 {
		return drawn
	}
	children := n.children
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		drawn = s.drawNode(screen, child, n.worldTransform, n.worldAlpha, recompute, drawn)
	}
	return drawn
}

// setGeoM copies a [6]float64 affine matrix into an ebiten.GeoM.
//
//	GeoM layout:            affine layout [a, b, c, d, tx, ty]:
//	| e00 e01 e02 |         | a  c  tx |
//	| e10 e11 e12 |         | b  d  ty |
func setGeoM(g *ebiten.GeoM, m [6]float64) {
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[2])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[3])
	g.SetElement(1, 2, m[5])
}

// rebuildSortedChildren rebuilds the ZIndex-sorted traversal order for a node.
// Uses insertion sort: zero allocations, stable, and optimal for the typical
// case of few children that are nearly sorted (O(n) when already sorted).
func rebuildSortedChildren(n *Node) {
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	// Stable insertion sort by ZIndex.
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
}
