package anim

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one animation discovered on disk.
type Entry struct {
	Name string // file name without extension, used for display
	Path string // full path to the gif or sheet manifest
}

// Library finds and caches animations from a set of directories. It is not
// safe for concurrent use; the app accesses it from the game loop only.
type Library struct {
	dirs    []string
	cache   map[string]*Sequence
	builtin *Sequence
}

// NewLibrary creates a library over the given search directories.
func NewLibrary(dirs ...string) *Library {
	return &Library{
		dirs:  dirs,
		cache: make(map[string]*Sequence),
	}
}

// Dirs returns the search directories.
func (l *Library) Dirs() []string {
	return l.dirs
}

// Scan lists every animation file in the search directories, sorted by
// name. Directories that don't exist are skipped.
func (l *Library) Scan() []Entry {
	var entries []Entry
	for _, dir := range l.dirs {
		files, err := os.ReadDir(dir)
		if err != nil {
			slog.Debug("animation dir skipped", "dir", dir, "error", err)
			continue
		}
		for _, f := range files {
			if f.IsDir() || !IsAnimationPath(f.Name()) {
				continue
			}
			name := strings.TrimSuffix(f.Name(), filepath.Ext(f.Name()))
			entries = append(entries, Entry{
				Name: name,
				Path: filepath.Join(dir, f.Name()),
			})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Path < entries[j].Path
	})
	return entries
}

// IsAnimationPath reports whether the file name has a loadable animation
// extension.
func IsAnimationPath(path string) bool {
	ext := filepath.Ext(path)
	return strings.EqualFold(ext, ".gif") || strings.EqualFold(ext, ".json")
}

// Load decodes the animation at path, going through the cache.
func (l *Library) Load(path string) (*Sequence, error) {
	if seq, ok := l.cache[path]; ok {
		return seq, nil
	}

	var seq *Sequence
	var err error
	ext := filepath.Ext(path)
	switch {
	case strings.EqualFold(ext, ".gif"):
		seq, err = LoadGIF(path)
	case strings.EqualFold(ext, ".json"):
		seq, err = LoadSheet(path)
	default:
		return nil, fmt.Errorf("anima: unsupported animation type %q", ext)
	}
	if err != nil {
		return nil, err
	}

	l.cache[path] = seq
	return seq, nil
}

// LoadOrBuiltin decodes the animation at path, falling back to the builtin
// blob when the path is empty or loading fails. Never returns nil.
func (l *Library) LoadOrBuiltin(path string) *Sequence {
	if path == "" {
		return l.Builtin()
	}
	seq, err := l.Load(path)
	if err != nil {
		slog.Warn("animation load failed, using builtin", "path", path, "error", err)
		return l.Builtin()
	}
	return seq
}

// Builtin returns the generated fallback animation, built once.
func (l *Library) Builtin() *Sequence {
	if l.builtin == nil {
		l.builtin = BuiltinSequence()
	}
	return l.builtin
}

// Exists reports whether the animation file is still present on disk.
func (l *Library) Exists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
