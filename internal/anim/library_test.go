package anim

import (
	"bytes"
	"image"
	"image/gif"
	"os"
	"path/filepath"
	"testing"
)

// writeLibraryDir populates a temp dir with one GIF, one sheet, and some
// noise files that must be ignored.
func writeLibraryDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	g := &gif.GIF{
		Image:     []*image.Paletted{solidFrame(image.Rect(0, 0, 2, 2), red)},
		Delay:     []int{10},
		Disposal:  []byte{gif.DisposalNone},
		LoopCount: 0,
		Config:    image.Config{Width: 2, Height: 2},
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		t.Fatalf("encode gif: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "blob.gif"), buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write gif: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write noise: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	return dir
}

func TestLibraryScan(t *testing.T) {
	dir := writeLibraryDir(t)
	lib := NewLibrary(dir, filepath.Join(dir, "does-not-exist"))

	entries := lib.Scan()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].Name != "blob" {
		t.Errorf("entry name = %q, want %q", entries[0].Name, "blob")
	}
	if entries[0].Path != filepath.Join(dir, "blob.gif") {
		t.Errorf("entry path = %q", entries[0].Path)
	}
}

func TestLibraryScanSorted(t *testing.T) {
	dir := writeLibraryDir(t)
	src, err := os.ReadFile(filepath.Join(dir, "blob.gif"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, name := range []string{"zebra.gif", "ant.gif"} {
		if err := os.WriteFile(filepath.Join(dir, name), src, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	entries := NewLibrary(dir).Scan()
	want := []string{"ant", "blob", "zebra"}
	if len(entries) != len(want) {
		t.Fatalf("entries = %d, want %d", len(entries), len(want))
	}
	for i, w := range want {
		if entries[i].Name != w {
			t.Errorf("entry %d = %q, want %q", i, entries[i].Name, w)
		}
	}
}

func TestLibraryLoadCaches(t *testing.T) {
	dir := writeLibraryDir(t)
	lib := NewLibrary(dir)
	path := filepath.Join(dir, "blob.gif")

	first, err := lib.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, err := lib.Load(path)
	if err != nil {
		t.Fatalf("Load (cached): %v", err)
	}
	if first != second {
		t.Error("second load must return the cached sequence")
	}
}

func TestLibraryLoadUnsupported(t *testing.T) {
	lib := NewLibrary(t.TempDir())
	if _, err := lib.Load("pet.webm"); err == nil {
		t.Fatal("expected an error for an unsupported extension")
	}
}

func TestLibraryLoadOrBuiltin(t *testing.T) {
	dir := writeLibraryDir(t)
	lib := NewLibrary(dir)

	// Valid path loads the real animation.
	seq := lib.LoadOrBuiltin(filepath.Join(dir, "blob.gif"))
	if seq.W != 2 {
		t.Errorf("loaded width = %d, want 2", seq.W)
	}

	// Broken path falls back to the builtin, never nil.
	fb := lib.LoadOrBuiltin(filepath.Join(dir, "missing.gif"))
	if fb == nil {
		t.Fatal("fallback returned nil")
	}
	if fb != lib.Builtin() {
		t.Error("fallback must be the shared builtin sequence")
	}

	// Empty path goes straight to the builtin.
	if lib.LoadOrBuiltin("") != lib.Builtin() {
		t.Error("empty path must use the builtin")
	}
}

func TestLibraryExists(t *testing.T) {
	dir := writeLibraryDir(t)
	lib := NewLibrary(dir)

	if !lib.Exists(filepath.Join(dir, "blob.gif")) {
		t.Error("Exists = false for a real file")
	}
	if lib.Exists(filepath.Join(dir, "missing.gif")) {
		t.Error("Exists = true for a missing file")
	}
	if lib.Exists("") {
		t.Error("Exists = true for an empty path")
	}
	if lib.Exists(dir) {
		t.Error("Exists = true for a directory")
	}
}

func TestIsAnimationPath(t *testing.T) {
	tests := []struct {
		path   string
		expect bool
	}{
		{"pet.gif", true},
		{"pet.GIF", true},
		{"sheet.json", true},
		{"pet.png", false},
		{"pet", false},
		{"gif", false},
	}
	for _, tt := range tests {
		if got := IsAnimationPath(tt.path); got != tt.expect {
			t.Errorf("IsAnimationPath(%q) = %v, want %v", tt.path, got, tt.expect)
		}
	}
}
