package anim

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	xdraw "golang.org/x/image/draw"
)

// iconSize matches the common tray icon slot on Linux desktops.
const iconSize = 22

// IconPNG renders the sequence's first frame as a small PNG for the system
// tray.
func IconPNG(seq *Sequence) ([]byte, error) {
	if seq == nil || len(seq.Frames) == 0 {
		return nil, fmt.Errorf("anima: icon: empty sequence")
	}

	dst := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	src := seq.Frames[0]
	xdraw.CatmullRom.Scale(dst, dst.Rect, src, src.Rect, xdraw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("anima: encode icon: %w", err)
	}
	return buf.Bytes(), nil
}
