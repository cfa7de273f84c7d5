package mdlocal

import (
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// TestOSFileSystem - Local disk capability
// ---------------------------------------------------------------------------

func TestOSFileSystem(t *testing.T) {
	t.Parallel()

	var fs FileSystem = OSFileSystem{}
	dir := filepath.Join(t.TempDir(), "media", "nested")
	path := filepath.Join(dir, "asset.png")

	if err := fs.MkdirAll(dir); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if fs.FileExists(dir) {
		t.Error("FileExists(dir) = true, want false for a directory")
	}
	if fs.FileExists(path) {
		t.Error("FileExists() = true before write")
	}

	if err := fs.WriteFile(path, []byte("first")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := fs.WriteFile(path, []byte("second")); err != nil {
		t.Fatalf("WriteFile() overwrite error = %v", err)
	}
	if !fs.FileExists(path) {
		t.Error("FileExists() = false after write")
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "second" {
		t.Errorf("ReadFile() = %q, want %q", data, "second")
	}
}

func TestOSFileSystem_ReadMissing(t *testing.T) {
	t.Parallel()

	if _, err := (OSFileSystem{}).ReadFile(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("ReadFile() on missing file should fail")
	}
}
