package scene

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Font is the interface for text measurement and layout.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// FaceFont adapts a golang.org/x/image font.Face for scene text nodes.
// Measurement is pure (no GPU); rendering goes through Ebitengine's text/v2.
type FaceFont struct {
	face   font.Face
	goFace *text.GoXFace // lazy, draw path only
	lh     float64
}

// NewFaceFont wraps a font.Face. Line height comes from the face metrics.
func NewFaceFont(face font.Face) *FaceFont {
	m := face.Metrics()
	return &FaceFont{
		face: face,
		lh:   float64(m.Height) / 64,
	}
}

// MeasureString returns the width and height of the rendered text.
// Newlines break lines; the width is the widest line.
func (f *FaceFont) MeasureString(s string) (width, height float64) {
	var maxW float64
	lines := 1
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '\n' {
			w := float64(font.MeasureString(f.face, s[start:i])) / 64
			if w > maxW {
				maxW = w
			}
			if i < len(s) {
				lines++
				start = i + 1
			}
		}
	}
	return maxW, float64(lines) * f.lh
}

// LineHeight returns the vertical distance between baselines.
func (f *FaceFont) LineHeight() float64 {
	return f.lh
}

// drawFace returns the text/v2 face for rendering, creating it on first use.
func (f *FaceFont) drawFace() *text.GoXFace {
	if f.goFace == nil {
		f.goFace = text.NewGoXFace(f.face)
	}
	return f.goFace
}

// basicFont singleton (no sync.Once; the scene is single-threaded).
var basicFont *FaceFont

// BasicFont returns the built-in fixed 7x13 bitmap face. It needs no font
// assets and measures without a GPU, which keeps text layout testable.
func BasicFont() *FaceFont {
	if basicFont == nil {
		basicFont = NewFaceFont(basicfont.Face7x13)
	}
	return basicFont
}

// --- TextBlock ---

// TextBlock holds text content, formatting, and cached line layout.
type TextBlock struct {
	Content string
	Font    Font
	Color   Color
	Align   TextAlign
	// FixedWidth, when > 0, is the reference width for alignment. Zero means
	// align against the widest line.
	FixedWidth float64

	// Cached layout (unexported)
	layoutDirty bool
	measuredW   float64
	measuredH   float64
	lines       []textLine
}

// textLine is one laid-out line with its horizontal offset applied.
type textLine struct {
	text  string
	x     float64
	width float64
}

// SetContent replaces the text and invalidates the cached layout.
func (tb *TextBlock) SetContent(content string) {
	if tb.Content == content {
		return
	}
	tb.Content = content
	tb.layoutDirty = true
}

// SetAlign changes the horizontal alignment and invalidates the layout.
func (tb *TextBlock) SetAlign(align TextAlign) {
	if tb.Align == align {
		return
	}
	tb.Align = align
	tb.layoutDirty = true
}

// Measure returns the laid-out block dimensions, recomputing if dirty.
func (tb *TextBlock) Measure() (w, h float64) {
	tb.layout()
	return tb.measuredW, tb.measuredH
}

// layout recomputes line positions if dirty. Returns the cached lines.
func (tb *TextBlock) layout() []textLine {
	if !tb.layoutDirty {
		return tb.lines
	}
	tb.layoutDirty = false

	tb.lines = tb.lines[:0]
	if tb.Font == nil {
		tb.measuredW = 0
		tb.measuredH = 0
		return tb.lines
	}

	var maxW float64
	for _, line := range strings.Split(tb.Content, "\n") {
		w, _ := tb.Font.MeasureString(line)
		if w > maxW {
			maxW = w
		}
		tb.lines = append(tb.lines, textLine{text: line, width: w})
	}

	alignW := maxW
	if tb.FixedWidth > 0 {
		alignW = tb.FixedWidth
	}
	for i := range tb.lines {
		switch tb.Align {
		case TextAlignCenter:
			tb.lines[i].x = (alignW - tb.lines[i].width) / 2
		case TextAlignRight:
			tb.lines[i].x = alignW - tb.lines[i].width
		}
	}

	tb.measuredW = maxW
	tb.measuredH = float64(len(tb.lines)) * tb.Font.LineHeight()
	return tb.lines
}

// drawTextBlock renders a text node line by line. Returns draw call count.
func drawTextBlock(screen *ebiten.Image, n *Node) int {
	tb := n.Text
	ff, ok := tb.Font.(*FaceFont)
	if !ok {
		return 0
	}
	lines := tb.layout()
	if len(lines) == 0 {
		return 0
	}

	lh := tb.Font.LineHeight()
	r := tb.Color.R * n.Color.R
	g := tb.Color.G * n.Color.G
	b := tb.Color.B * n.Color.B
	a := tb.Color.A * n.Color.A * n.worldAlpha

	drawn := 0
	face := ff.drawFace()
	for i, line := range lines {
		if line.text == "" {
			continue
		}
		op := &text.DrawOptions{}
		setGeoM(&op.GeoM, composeOffset(n.worldTransform, line.x, float64(i)*lh))
		op.ColorScale.Scale(float32(r), float32(g), float32(b), 1)
		op.ColorScale.ScaleAlpha(float32(a))
		text.Draw(screen, line.text, face, op)
		drawn++
	}
	return drawn
}

// composeOffset builds a world transform for content at the given local
// offset relative to the node's world transform.
// This is: worldTransform * Translate(localX, localY)
func composeOffset(world [6]float64, localX, localY float64) [6]float64 {
	return [6]float64{
		world[0], world[1], world[2], world[3],
		world[0]*localX + world[2]*localY + world[4],
		world[1]*localX + world[3]*localY + world[5],
	}
}
