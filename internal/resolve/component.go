package resolve

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/3-lines-studio/jsx2mp/internal/core"
)

// Paths maps retained component aliases to usingComponents references.
type Paths struct {
	modules *Modules
	configs *Configs
}

func NewPaths(modules *Modules, configs *Configs) *Paths {
	return &Paths{modules: modules, configs: configs}
}

// ComponentPath returns the reference for alias. A package without a miniapp
// entry for the active platform yields an error wrapping
// core.ErrUnmappedPlatformEntry; the caller decides whether that is fatal.
func (p *Paths) ComponentPath(alias core.ComponentAlias, opts core.Options) (string, error) {
	if opts.ResourcePath == "" {
		return "", fmt.Errorf("%w: `resourcePath` must be passed to calc dependency path", core.ErrMissingConfig)
	}
	if alias.IsLocal() {
		return p.modules.Local(opts.ResourcePath, alias.From)
	}

	pkgJSON, pkg, err := p.configs.load(alias.From, opts.ResourcePath)
	if err != nil {
		return "", err
	}
	realFile, err := p.modules.Entry(pkgJSON, pkg)
	if err != nil {
		return "", err
	}

	field := opts.MainField()
	entry, ok := pkg.Entry(field)
	if !ok {
		return "", core.UnmappedPlatformEntry(pkg.Name, field)
	}
	if opts.DisableCopyNpm {
		return path.Join(pkg.Name, filepath.ToSlash(entry)), nil
	}

	npmRel, err := core.NpmRelativePath(opts.SourcePath, opts.OutputPath, opts.ResourcePath)
	if err != nil {
		return "", fmt.Errorf("failed to compute npm path for %s: %w", opts.ResourcePath, err)
	}
	entryRel, err := filepath.Rel(filepath.Clean(pkg.MainFile()), filepath.Clean(entry))
	if err != nil {
		return "", fmt.Errorf("failed to locate %s entry %q: %w", pkg.Name, entry, err)
	}
	pkgDir := core.PackageDirFromPath(realFile)
	realEntry := filepath.Join(realFile, entryRel)
	return core.NpmReference(npmRel, pkgDir, core.PathAfterPackageDir(realEntry, pkgDir)), nil
}
