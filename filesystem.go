package mdlocal

import (
	"os"

	"github.com/alnah/go-mdlocal/internal/fileutil"
)

// FileSystem is the storage capability used by Localizer.
type FileSystem interface {
	FileExists(path string) bool
	MkdirAll(path string) error
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// OSFileSystem implements FileSystem on the local disk.
// WriteFile is atomic: a failed write never leaves a partial asset.
type OSFileSystem struct{}

// FileExists reports whether path is an existing regular file.
func (OSFileSystem) FileExists(path string) bool {
	return fileutil.FileExists(path)
}

// MkdirAll creates path and any missing parents.
func (OSFileSystem) MkdirAll(path string) error {
	return os.MkdirAll(path, fileutil.DirPermissions)
}

// ReadFile returns the contents of path.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path) // #nosec G304 -- path is user-provided
}

// WriteFile replaces path with data through a temp file and a rename.
func (OSFileSystem) WriteFile(path string, data []byte) error {
	return fileutil.WriteFileAtomic(path, data)
}
