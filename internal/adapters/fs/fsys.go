package fs

import (
	"errors"
	iofs "io/fs"
	"path/filepath"
	"strings"
)

// ReadOnlyFileSystem serves absolute paths from an io/fs.FS rooted at "/".
// Symlinks are not followed.
type ReadOnlyFileSystem struct {
	fs iofs.FS
}

func NewReadOnlyFileSystem(fsys iofs.FS) *ReadOnlyFileSystem {
	return &ReadOnlyFileSystem{fs: fsys}
}

func (fs *ReadOnlyFileSystem) name(path string) string {
	name := strings.TrimPrefix(filepath.ToSlash(filepath.Clean(path)), "/")
	if name == "" {
		return "."
	}
	return name
}

func (fs *ReadOnlyFileSystem) ReadFile(path string) ([]byte, error) {
	return iofs.ReadFile(fs.fs, fs.name(path))
}

func (fs *ReadOnlyFileSystem) ReadDir(path string) ([]iofs.DirEntry, error) {
	return iofs.ReadDir(fs.fs, fs.name(path))
}

func (fs *ReadOnlyFileSystem) FileExists(path string) bool {
	_, err := iofs.Stat(fs.fs, fs.name(path))
	return err == nil
}

func (fs *ReadOnlyFileSystem) IsFile(path string) bool {
	info, err := iofs.Stat(fs.fs, fs.name(path))
	return err == nil && !info.IsDir()
}

func (fs *ReadOnlyFileSystem) RealPath(path string) (string, error) {
	if !fs.FileExists(path) {
		return "", &iofs.PathError{Op: "realpath", Path: path, Err: iofs.ErrNotExist}
	}
	return filepath.Clean(path), nil
}

func (fs *ReadOnlyFileSystem) WriteFile(path string, data []byte, perm iofs.FileMode) error {
	return errors.New("read-only filesystem")
}

func (fs *ReadOnlyFileSystem) MkdirAll(path string, perm iofs.FileMode) error {
	return errors.New("read-only filesystem")
}

func (fs *ReadOnlyFileSystem) Remove(path string) error {
	return errors.New("read-only filesystem")
}
