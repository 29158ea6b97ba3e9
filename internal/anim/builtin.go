package anim

import (
	"image"
	"image/color"
	"math"
)

const (
	builtinFrameCount = 8
	builtinSize       = 128
	builtinFrameTime  = 0.12
)

// Builtin drawing palette. Values are alpha-premultiplied to match
// image.RGBA storage.
var (
	builtinBody   = color.RGBA{R: 110, G: 90, B: 220, A: 255}
	builtinBelly  = color.RGBA{R: 150, G: 135, B: 240, A: 255}
	builtinEye    = color.RGBA{R: 250, G: 250, B: 250, A: 255}
	builtinPupil  = color.RGBA{R: 35, G: 30, B: 60, A: 255}
	builtinCheek  = color.RGBA{R: 120, G: 70, B: 80, A: 120}
	builtinShadow = color.RGBA{R: 0, G: 0, B: 0, A: 50}
)

// BuiltinSequence generates the fallback pet, a bobbing blob that blinks.
// It keeps the app alive when no animation files can be loaded and needs no
// assets on disk.
func BuiltinSequence() *Sequence {
	seq := &Sequence{
		Frames:    make([]*image.RGBA, 0, builtinFrameCount),
		Durations: make([]float64, 0, builtinFrameCount),
		W:         builtinSize,
		H:         builtinSize,
		Loop:      true,
	}
	for i := 0; i < builtinFrameCount; i++ {
		seq.Frames = append(seq.Frames, builtinFrame(i))
		seq.Durations = append(seq.Durations, builtinFrameTime)
	}
	return seq
}

func builtinFrame(i int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, builtinSize, builtinSize))

	phase := 2 * math.Pi * float64(i) / builtinFrameCount
	bob := math.Sin(phase) * 6
	squash := bob * 0.5

	// Ground shadow shrinks as the body rises.
	fillEllipse(img, 64, 112, 34-bob*0.8, 7, builtinShadow)

	bodyCY := 72 - bob
	fillEllipse(img, 64, bodyCY, 40+squash, 44-squash, builtinBody)
	fillEllipse(img, 64, bodyCY+16, 24+squash*0.6, 20-squash*0.6, builtinBelly)

	// One blink per cycle.
	blink := i == 6
	for _, eyeCX := range []float64{48, 80} {
		if blink {
			fillEllipse(img, eyeCX, bodyCY-10, 6, 1.5, builtinPupil)
			continue
		}
		fillEllipse(img, eyeCX, bodyCY-10, 6, 8, builtinEye)
		fillEllipse(img, eyeCX, bodyCY-9, 2.5, 3.5, builtinPupil)
	}

	fillEllipse(img, 38, bodyCY+4, 4, 2.5, builtinCheek)
	fillEllipse(img, 90, bodyCY+4, 4, 2.5, builtinCheek)

	return img
}

// fillEllipse rasterizes a filled ellipse with source-over blending.
// The color must be alpha-premultiplied.
func fillEllipse(img *image.RGBA, cx, cy, rx, ry float64, c color.RGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	x0 := int(math.Floor(cx - rx))
	x1 := int(math.Ceil(cx + rx))
	y0 := int(math.Floor(cy - ry))
	y1 := int(math.Ceil(cy + ry))
	b := img.Rect
	for y := y0; y <= y1; y++ {
		if y < b.Min.Y || y >= b.Max.Y {
			continue
		}
		dy := (float64(y) + 0.5 - cy) / ry
		for x := x0; x <= x1; x++ {
			if x < b.Min.X || x >= b.Max.X {
				continue
			}
			dx := (float64(x) + 0.5 - cx) / rx
			if dx*dx+dy*dy > 1 {
				continue
			}
			blendPixel(img, x, y, c)
		}
	}
}

func blendPixel(img *image.RGBA, x, y int, c color.RGBA) {
	i := img.PixOffset(x, y)
	p := img.Pix[i : i+4 : i+4]
	if c.A == 255 {
		p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
		return
	}
	inv := uint32(255 - c.A)
	p[0] = uint8(uint32(c.R) + uint32(p[0])*inv/255)
	p[1] = uint8(uint32(c.G) + uint32(p[1])*inv/255)
	p[2] = uint8(uint32(c.B) + uint32(p[2])*inv/255)
	p[3] = uint8(uint32(c.A) + uint32(p[3])*inv/255)
}
