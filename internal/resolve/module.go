package resolve

import (
	"path/filepath"

	"github.com/3-lines-studio/jsx2mp/internal/adapters/fs"
	"github.com/3-lines-studio/jsx2mp/internal/core"
)

var scriptExts = []string{".jsx", ".js"}

// Modules locates component modules the way the bundler does: relative
// specifiers against the importing file, package specifiers through the
// node_modules directories above it.
type Modules struct {
	fs fs.FileSystem
}

func NewModules(fsys fs.FileSystem) *Modules {
	return &Modules{fs: fsys}
}

// Local resolves a relative specifier and returns its template reference.
func (m *Modules) Local(resourcePath, specifier string) (string, error) {
	dir := filepath.Dir(resourcePath)
	target := filepath.Join(dir, specifier)

	if ext := filepath.Ext(specifier); (ext == ".jsx" || ext == ".js") && m.fs.IsFile(target) {
		return core.LocalReference(specifier, false), nil
	}
	for _, ext := range scriptExts {
		if m.fs.IsFile(target + ext) {
			return core.LocalReference(specifier, false), nil
		}
	}
	for _, ext := range scriptExts {
		if m.fs.IsFile(filepath.Join(target, "index"+ext)) {
			return core.LocalReference(specifier, true), nil
		}
	}
	return "", core.ModuleNotResolved(specifier)
}

// PackageJSON finds the package.json of an installed package.
func (m *Modules) PackageJSON(resourcePath, specifier string) (string, bool) {
	dir := filepath.Dir(resourcePath)
	for {
		candidate := filepath.Join(dir, "node_modules", specifier, "package.json")
		if m.fs.IsFile(candidate) {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Entry returns the real path of a package's main file.
func (m *Modules) Entry(pkgJSON string, pkg *core.PackageConfig) (string, error) {
	base := filepath.Join(filepath.Dir(pkgJSON), pkg.MainFile())
	for _, candidate := range []string{base, base + ".js", filepath.Join(base, "index.js")} {
		if !m.fs.IsFile(candidate) {
			continue
		}
		resolved, err := m.fs.RealPath(candidate)
		if err != nil {
			return "", err
		}
		return resolved, nil
	}
	return "", core.ModuleNotResolved(pkg.Name)
}
