package anim

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"
	"os"
)

const (
	// GIF delays are hundredths of a second.
	gifDelayUnit = 0.01
	// Zero-delay frames get this duration, matching how browsers and most
	// viewers treat them.
	defaultFrameDuration = 0.1
)

// DecodeGIF decodes an animated GIF into a sequence of fully composited
// frames. Partial frames are layered onto a persistent canvas according to
// each frame's disposal method, so every output frame is complete.
func DecodeGIF(r io.Reader) (*Sequence, error) {
	seq, err := decodeGIF(r)
	if err != nil {
		return nil, fmt.Errorf("anima: decode gif: %w", err)
	}
	return seq, nil
}

// LoadGIF reads and decodes an animated GIF from disk.
func LoadGIF(path string) (*Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("anima: open animation %s: %w", path, err)
	}
	defer f.Close()

	seq, err := decodeGIF(f)
	if err != nil {
		return nil, fmt.Errorf("anima: decode %s: %w", path, err)
	}
	return seq, nil
}

func decodeGIF(r io.Reader) (*Sequence, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, err
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("no frames")
	}

	// The logical screen defines the composition area. Some encoders leave
	// the config zeroed; fall back to the first frame's extent.
	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		b := g.Image[0].Bounds()
		w, h = b.Max.X, b.Max.Y
	}
	bounds := image.Rect(0, 0, w, h)

	seq := &Sequence{
		Frames:    make([]*image.RGBA, 0, len(g.Image)),
		Durations: make([]float64, 0, len(g.Image)),
		W:         w,
		H:         h,
		// LoopCount 0 means forever; -1 means play once.
		Loop: g.LoopCount != -1,
	}

	canvas := image.NewRGBA(bounds)
	var saved *image.RGBA // canvas snapshot for DisposalPrevious

	for i, frame := range g.Image {
		fb := frame.Bounds().Intersect(bounds)

		if g.Disposal[i] == gif.DisposalPrevious {
			saved = cloneRGBA(canvas)
		}

		draw.Draw(canvas, fb, frame, fb.Min, draw.Over)
		seq.Frames = append(seq.Frames, cloneRGBA(canvas))

		duration := defaultFrameDuration
		if g.Delay[i] > 0 {
			duration = float64(g.Delay[i]) * gifDelayUnit
		}
		seq.Durations = append(seq.Durations, duration)

		switch g.Disposal[i] {
		case gif.DisposalBackground:
			// The background color is taken as transparent, which is what
			// every mainstream renderer does for GIFs with transparency.
			draw.Draw(canvas, fb, image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			if saved != nil {
				canvas = saved
				saved = nil
			}
		}
	}

	return seq, nil
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}
