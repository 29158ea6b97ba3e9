// Package config persists runtime pet state between sessions: the chosen
// animation, where the primary pet sat, and the overlay opacity. Hand-edited
// preferences live in internal/settings; this file is written by the app.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// State is the persisted runtime state.
type State struct {
	// Animation is the path of the active animation. The key name predates
	// sprite sheet support; it may point at a sheet manifest too.
	Animation string `json:"last_gif,omitempty"`
	// Pos is the primary pet's top-left corner, absent until the user moves
	// a pet.
	Pos *[2]float64 `json:"pos,omitempty"`
	// Opacity is the shared pet opacity fraction. Zero means never set.
	Opacity float64 `json:"opacity,omitempty"`
}

// DefaultPath returns the state file location inside the anima config dir.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "anima", "state.json")
}

// Load reads persisted state. A missing or unreadable file yields a zero
// state; stale or corrupt state must never stop the app from starting.
func Load(path string) State {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Debug("no saved state", "path", path, "error", err)
		return State{}
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		slog.Warn("saved state unreadable, starting fresh", "path", path, "error", err)
		return State{}
	}
	return st
}

// Save writes state as indented JSON, creating the directory if needed.
func Save(path string, st State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("anima: create state dir: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("anima: encode state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("anima: write state %s: %w", path, err)
	}
	return nil
}
