// Package tray runs the system tray icon and forwards its menu clicks
// into the game loop over a channel. The tray owns no app state; it is
// the keep-alive surface while every panel is closed.
package tray

import (
	"log/slog"

	"fyne.io/systray"
)

// Request is a tray menu action awaiting the game loop.
type Request int

const (
	RequestShowSelector Request = iota
	RequestHideSelector
	RequestQuit
)

func (r Request) String() string {
	switch r {
	case RequestShowSelector:
		return "show-selector"
	case RequestHideSelector:
		return "hide-selector"
	case RequestQuit:
		return "quit"
	}
	return "unknown"
}

// requestBuffer absorbs click bursts between frames; overflow is dropped.
const requestBuffer = 8

// Tray bridges systray's goroutine world into the single-threaded loop.
type Tray struct {
	requests chan Request
	stop     chan struct{}
}

// New builds an unstarted tray bridge.
func New() *Tray {
	return &Tray{
		requests: make(chan Request, requestBuffer),
		stop:     make(chan struct{}),
	}
}

// Requests is the channel the game loop drains each frame.
func (t *Tray) Requests() <-chan Request {
	return t.requests
}

// Start launches the tray in its own goroutine. Best-effort: on desktops
// without a tray host the icon never appears and the app runs unchanged.
func (t *Tray) Start(icon []byte, title string) {
	go systray.Run(func() { t.onReady(icon, title) }, nil)
}

// Stop tears the tray icon down and releases the forward goroutine.
func (t *Tray) Stop() {
	close(t.stop)
	systray.Quit()
}

func (t *Tray) onReady(icon []byte, title string) {
	if len(icon) > 0 {
		systray.SetIcon(icon)
	}
	systray.SetTitle(title)
	systray.SetTooltip(title)

	show := systray.AddMenuItem("Show Selector", "Open the character selector")
	hide := systray.AddMenuItem("Hide Selector", "Close the character selector")
	systray.AddSeparator()
	quit := systray.AddMenuItem("Quit", "Exit "+title)

	go func() {
		for {
			select {
			case <-show.ClickedCh:
				t.send(RequestShowSelector)
			case <-hide.ClickedCh:
				t.send(RequestHideSelector)
			case <-quit.ClickedCh:
				t.send(RequestQuit)
			case <-t.stop:
				return
			}
		}
	}()
}

// send never blocks the tray goroutine; a full buffer drops the click.
func (t *Tray) send(r Request) {
	select {
	case t.requests <- r:
	default:
		slog.Debug("tray request dropped", "request", r.String())
	}
}
