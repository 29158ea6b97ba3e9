// Package dialog opens the native file picker without blocking the game
// loop. The blocking call runs in a goroutine; the loop polls for the
// outcome once per frame.
package dialog

import (
	"errors"
	"log/slog"

	"github.com/ncruces/zenity"
)

// Result is the outcome of one file dialog.
type Result struct {
	Path     string
	Canceled bool
}

// Picker runs at most one dialog at a time. All methods belong to the
// game loop; only the internal goroutine touches the result channel's
// send side.
type Picker struct {
	results chan Result
	busy    bool

	// selectFile is swapped out in tests; the default talks to zenity.
	selectFile func(title string) (string, error)
}

// New builds an idle picker.
func New() *Picker {
	return &Picker{
		results:    make(chan Result, 1),
		selectFile: zenitySelect,
	}
}

// Open launches the dialog unless one is already up. Reports whether a
// dialog was actually opened.
func (p *Picker) Open(title string) bool {
	if p.busy {
		return false
	}
	p.busy = true
	go func() {
		path, err := p.selectFile(title)
		switch {
		case err == nil:
			p.results <- Result{Path: path}
		case errors.Is(err, zenity.ErrCanceled):
			p.results <- Result{Canceled: true}
		default:
			slog.Warn("file dialog failed", "error", err)
			p.results <- Result{Canceled: true}
		}
	}()
	return true
}

// Busy reports whether a dialog is currently open.
func (p *Picker) Busy() bool {
	return p.busy
}

// Poll returns the pending result, if the dialog has finished.
func (p *Picker) Poll() (Result, bool) {
	select {
	case r := <-p.results:
		p.busy = false
		return r, true
	default:
		return Result{}, false
	}
}

func zenitySelect(title string) (string, error) {
	return zenity.SelectFile(
		zenity.Title(title),
		zenity.FileFilters{
			{Name: "Animations", Patterns: []string{"*.gif", "*.json"}, CaseFold: true},
		})
}
