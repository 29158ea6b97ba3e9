package app

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/tushargaudara/Anima-Engine/internal/monitor"
	"github.com/tushargaudara/Anima-Engine/internal/pet"
	"github.com/tushargaudara/Anima-Engine/internal/scene"
)

const (
	hudW       = 168
	hudH       = 52
	hudRefresh = 0.5
)

// newHUD creates a debug overlay node showing frame rates, process resource
// usage, and pet state. The text is redrawn every ~0.5 seconds.
func newHUD(sampler *monitor.Sampler, m *pet.Manager) *scene.Node {
	img := ebiten.NewImage(hudW, hudH)

	n := scene.NewSprite("hud", img)
	n.SetPosition(8, 8)
	n.ZIndex = 1000

	var lastUpdate float64
	n.OnUpdate = func(dt float64) {
		lastUpdate += dt
		if lastUpdate < hudRefresh {
			return
		}
		lastUpdate = 0

		img.Clear()
		// Semi-transparent background for readability
		img.Fill(color.RGBA{0, 0, 0, 128})

		s := sampler.Latest()
		ebitenutil.DebugPrint(img, fmt.Sprintf(
			"FPS %.1f  TPS %.1f\nCPU %.1f%%  RSS %.1f MiB\npets %d  idle %.0fs",
			ebiten.ActualFPS(), ebiten.ActualTPS(),
			s.CPU, s.RSSMB, m.Count(), m.IdleFor()))
	}
	return n
}
