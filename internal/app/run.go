package app

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tushargaudara/Anima-Engine/internal/config"
	"github.com/tushargaudara/Anima-Engine/internal/settings"
)

// Run builds the app and drives the game loop until quit. The window is a
// borderless, always-on-top, transparent sheet covering the whole monitor;
// mouse passthrough makes the uncovered parts behave like bare desktop.
func Run(cfg settings.Config) error {
	monitorW, monitorH := ebiten.Monitor().Size()
	if monitorW <= 0 || monitorH <= 0 {
		return fmt.Errorf("anima: monitor size unavailable")
	}

	a, err := New(cfg, config.DefaultPath(), monitorW, monitorH)
	if err != nil {
		return err
	}
	a.Start()
	defer a.Close()

	ebiten.SetWindowTitle("Anima")
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowPosition(0, 0)
	ebiten.SetWindowSize(monitorW, monitorH)
	ebiten.SetTPS(cfg.Window.ActiveTPS)

	opts := &ebiten.RunGameOptions{
		ScreenTransparent: true,
		SkipTaskbar:       true,
		InitUnfocused:     true,
		X11ClassName:      "anima",
		X11InstanceName:   "anima",
	}
	if err := ebiten.RunGameWithOptions(a, opts); err != nil {
		return fmt.Errorf("anima: game loop: %w", err)
	}
	slog.Info("overlay closed")
	return nil
}
