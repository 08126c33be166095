package resolve

import (
	"fmt"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tidwall/gjson"

	"github.com/3-lines-studio/jsx2mp/internal/adapters/fs"
	"github.com/3-lines-studio/jsx2mp/internal/core"
)

const configCacheSize = 512

// Configs reads component package manifests. Parsed manifests are cached by
// package.json path and shared between concurrently compiled files.
type Configs struct {
	fs      fs.FileSystem
	modules *Modules
	cache   *lru.Cache[string, *core.PackageConfig]
}

func NewConfigs(fsys fs.FileSystem, modules *Modules) (*Configs, error) {
	cache, err := lru.New[string, *core.PackageConfig](configCacheSize)
	if err != nil {
		return nil, err
	}
	return &Configs{fs: fsys, modules: modules, cache: cache}, nil
}

func (c *Configs) PackageConfig(specifier, resourcePath string) (*core.PackageConfig, error) {
	_, pkg, err := c.load(specifier, resourcePath)
	return pkg, err
}

func (c *Configs) load(specifier, resourcePath string) (string, *core.PackageConfig, error) {
	if resourcePath == "" {
		return "", nil, fmt.Errorf("%w: `resourcePath` must be passed to resolve %q", core.ErrMissingConfig, specifier)
	}
	pkgJSON, ok := c.modules.PackageJSON(resourcePath, specifier)
	if !ok {
		return "", nil, core.ModuleNotResolved(specifier)
	}
	if pkg, ok := c.cache.Get(pkgJSON); ok {
		return pkgJSON, pkg, nil
	}

	data, err := c.fs.ReadFile(pkgJSON)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", pkgJSON, err)
	}
	pkg, err := ParsePackageConfig(data)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", pkgJSON, err)
	}
	pkg.Dir = filepath.Dir(pkgJSON)
	c.cache.Add(pkgJSON, pkg)
	return pkgJSON, pkg, nil
}

func ParsePackageConfig(data []byte) (*core.PackageConfig, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid package.json")
	}
	doc := gjson.ParseBytes(data)
	pkg := &core.PackageConfig{
		Name: doc.Get("name").String(),
		Main: doc.Get("main").String(),
	}

	mc := doc.Get("miniappConfig")
	if !mc.IsObject() {
		return pkg, nil
	}
	miniapp := &core.MiniappConfig{
		SubComponents: map[string]core.SubComponent{},
		Entries:       map[string]string{},
	}
	for _, prop := range mc.Get("renderSlotProps").Array() {
		miniapp.RenderSlotProps = append(miniapp.RenderSlotProps, prop.String())
	}
	mc.Get("subComponents").ForEach(func(key, value gjson.Result) bool {
		miniapp.SubComponents[key.String()] = core.SubComponent{
			TagNameMap: value.Get("tagNameMap").String(),
			Style:      value.Get("attributes.style").String(),
		}
		return true
	})
	mc.ForEach(func(key, value gjson.Result) bool {
		if k := key.String(); k == "main" || strings.HasPrefix(k, "main:") {
			miniapp.Entries[k] = value.String()
		}
		return true
	})
	pkg.Miniapp = miniapp
	return pkg, nil
}
