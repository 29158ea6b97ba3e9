package anim

import (
	"encoding/json"
	"fmt"
	"image"
	"image/draw"
	_ "image/png" // sheet images are PNG
	"os"
	"path/filepath"
)

// defaultSheetFPS applies when a manifest specifies neither fps nor frame_ms.
const defaultSheetFPS = 8.0

// --- JSON structure types ---

// jsonSheet is the sprite sheet manifest format. The sheet image is cut
// into a grid of frame_width x frame_height cells, read left to right, top
// to bottom.
//
//	{
//	  "image": "walk.png",
//	  "frame_width": 64,
//	  "frame_height": 64,
//	  "fps": 8,
//	  "loop": true,
//	  "frames": [0, 1, 2, 1]
//	}
//
// "frames" reorders or repeats cells and defaults to every cell in order.
// "frame_ms" gives per-frame durations in milliseconds and overrides "fps".
type jsonSheet struct {
	Image       string    `json:"image"`
	FrameWidth  int       `json:"frame_width"`
	FrameHeight int       `json:"frame_height"`
	FPS         float64   `json:"fps"`
	FrameMS     []float64 `json:"frame_ms"`
	Loop        *bool     `json:"loop"`
	Frames      []int     `json:"frames"`
}

// LoadSheet loads a sprite sheet animation from a JSON manifest. The image
// path in the manifest is resolved relative to the manifest's directory.
func LoadSheet(manifestPath string) (*Sequence, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("anima: read sheet manifest %s: %w", manifestPath, err)
	}

	var m jsonSheet
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("anima: parse sheet manifest %s: %w", manifestPath, err)
	}
	if m.Image == "" {
		return nil, fmt.Errorf("anima: sheet %s: missing \"image\" key", manifestPath)
	}
	if m.FrameWidth <= 0 || m.FrameHeight <= 0 {
		return nil, fmt.Errorf("anima: sheet %s: frame size must be positive", manifestPath)
	}

	imgPath := filepath.Join(filepath.Dir(manifestPath), m.Image)
	f, err := os.Open(imgPath)
	if err != nil {
		return nil, fmt.Errorf("anima: open sheet image %s: %w", imgPath, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("anima: decode sheet image %s: %w", imgPath, err)
	}

	// Cells outside a full grid row or column are ignored.
	b := img.Bounds()
	cols := b.Dx() / m.FrameWidth
	rows := b.Dy() / m.FrameHeight
	total := cols * rows
	if total == 0 {
		return nil, fmt.Errorf("anima: sheet %s: image %dx%d fits no %dx%d frames",
			manifestPath, b.Dx(), b.Dy(), m.FrameWidth, m.FrameHeight)
	}

	indices := m.Frames
	if len(indices) == 0 {
		indices = make([]int, total)
		for i := range indices {
			indices[i] = i
		}
	}
	if len(m.FrameMS) > 0 && len(m.FrameMS) != len(indices) {
		return nil, fmt.Errorf("anima: sheet %s: frame_ms has %d entries for %d frames",
			manifestPath, len(m.FrameMS), len(indices))
	}

	fps := m.FPS
	if fps <= 0 {
		fps = defaultSheetFPS
	}

	seq := &Sequence{
		Frames:    make([]*image.RGBA, 0, len(indices)),
		Durations: make([]float64, 0, len(indices)),
		W:         m.FrameWidth,
		H:         m.FrameHeight,
		Loop:      m.Loop == nil || *m.Loop,
	}

	for i, idx := range indices {
		if idx < 0 || idx >= total {
			return nil, fmt.Errorf("anima: sheet %s: frame index %d out of range (sheet has %d)",
				manifestPath, idx, total)
		}
		cx := (idx % cols) * m.FrameWidth
		cy := (idx / cols) * m.FrameHeight
		src := image.Rect(b.Min.X+cx, b.Min.Y+cy,
			b.Min.X+cx+m.FrameWidth, b.Min.Y+cy+m.FrameHeight)

		frame := image.NewRGBA(image.Rect(0, 0, m.FrameWidth, m.FrameHeight))
		draw.Draw(frame, frame.Rect, img, src.Min, draw.Src)
		seq.Frames = append(seq.Frames, frame)

		duration := 1 / fps
		if len(m.FrameMS) > 0 {
			duration = m.FrameMS[i] / 1000
		}
		if duration <= 0 {
			duration = defaultFrameDuration
		}
		seq.Durations = append(seq.Durations, duration)
	}

	return seq, nil
}
