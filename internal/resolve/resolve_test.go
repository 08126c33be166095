package resolve

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3-lines-studio/jsx2mp/internal/adapters/fs"
	"github.com/3-lines-studio/jsx2mp/internal/core"
)

const resource = "/p/src/pages/index.jsx"

func projectFS() fs.FileSystem {
	files := fstest.MapFS{}
	add := func(name, data string) {
		files[name] = &fstest.MapFile{Data: []byte(data)}
	}

	add("p/src/pages/index.jsx", "")
	add("p/src/components/Card.jsx", "")
	add("p/src/components/list/index.js", "")

	add("p/node_modules/rax-picker/lib/index.js", "")
	add("p/node_modules/rax-picker/package.json", `{
		"name": "rax-picker",
		"main": "lib/index.js",
		"miniappConfig": {
			"main": "lib/miniapp/index",
			"main:wechat": "lib/wechat/index",
			"renderSlotProps": ["renderItem"],
			"subComponents": {
				"Item": {"tagNameMap": "picker-item", "attributes": {"style": "flex:1"}}
			}
		}
	}`)

	add("p/node_modules/@ali/rax-tabs/index.js", "")
	add("p/node_modules/@ali/rax-tabs/package.json", `{
		"name": "@ali/rax-tabs",
		"miniappConfig": {"main:wechat": "miniapp/index"}
	}`)

	add("p/node_modules/rax-plain/index.js", "")
	add("p/node_modules/rax-plain/package.json", `{"name": "rax-plain", "main": "index.js"}`)

	return fs.NewReadOnlyFileSystem(files)
}

func newPaths(t *testing.T) (*Paths, *Configs) {
	t.Helper()
	fsys := projectFS()
	modules := NewModules(fsys)
	configs, err := NewConfigs(fsys, modules)
	require.NoError(t, err)
	return NewPaths(modules, configs), configs
}

func options(platform string) core.Options {
	opts := core.DefaultOptions()
	opts.ResourcePath = resource
	opts.SourcePath = "/p/src"
	opts.OutputPath = "/p/dist"
	opts.Platform = core.Platform{Type: platform}
	return opts
}

func TestModules_Local(t *testing.T) {
	modules := NewModules(projectFS())

	tests := []struct {
		name      string
		specifier string
		want      string
	}{
		{name: "jsx file", specifier: "../components/Card", want: "../components/Card"},
		{name: "explicit extension", specifier: "../components/Card.jsx", want: "../components/Card"},
		{name: "directory index", specifier: "../components/list", want: "../components/list/index"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := modules.Local(resource, tt.specifier)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := modules.Local(resource, "./Missing")
	assert.True(t, errors.Is(err, core.ErrModuleNotResolved))
}

func TestComponentPath(t *testing.T) {
	picker := core.ComponentAlias{From: "rax-picker", Local: "Picker", Imported: "default"}
	tabs := core.ComponentAlias{From: "@ali/rax-tabs", Local: "Tabs", Imported: "default"}
	card := core.ComponentAlias{From: "../components/Card", Local: "Card", Imported: "default"}

	tests := []struct {
		name     string
		alias    core.ComponentAlias
		platform string
		noCopy   bool
		want     string
	}{
		{name: "local component", alias: card, platform: core.PlatformWeChat, want: "../components/Card"},
		{name: "package default entry", alias: picker, platform: core.PlatformQuickApp, want: "./../npm/rax-picker/lib/miniapp/index"},
		{name: "package platform entry", alias: picker, platform: core.PlatformWeChat, want: "./../npm/rax-picker/lib/wechat/index"},
		{name: "npm copy disabled", alias: picker, platform: core.PlatformWeChat, noCopy: true, want: "rax-picker/lib/wechat/index"},
		{name: "scoped package", alias: tabs, platform: core.PlatformWeChat, want: "./../npm/_ali/rax-tabs/miniapp/index"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths, _ := newPaths(t)
			opts := options(tt.platform)
			opts.DisableCopyNpm = tt.noCopy

			got, err := paths.ComponentPath(tt.alias, opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComponentPath_Errors(t *testing.T) {
	paths, _ := newPaths(t)

	_, err := paths.ComponentPath(core.ComponentAlias{From: "@ali/rax-tabs", Local: "Tabs"}, options(core.PlatformQuickApp))
	assert.True(t, errors.Is(err, core.ErrUnmappedPlatformEntry), "got %v", err)

	_, err = paths.ComponentPath(core.ComponentAlias{From: "rax-plain", Local: "Plain"}, options(core.PlatformWeChat))
	assert.True(t, errors.Is(err, core.ErrUnmappedPlatformEntry), "got %v", err)

	_, err = paths.ComponentPath(core.ComponentAlias{From: "rax-missing", Local: "Missing"}, options(core.PlatformWeChat))
	assert.True(t, errors.Is(err, core.ErrModuleNotResolved), "got %v", err)

	opts := options(core.PlatformWeChat)
	opts.ResourcePath = ""
	_, err = paths.ComponentPath(core.ComponentAlias{From: "./Card", Local: "Card"}, opts)
	assert.True(t, errors.Is(err, core.ErrMissingConfig), "got %v", err)
}

func TestConfigs_PackageConfig(t *testing.T) {
	_, configs := newPaths(t)

	pkg, err := configs.PackageConfig("rax-picker", resource)
	require.NoError(t, err)
	assert.Equal(t, "rax-picker", pkg.Name)
	assert.Equal(t, "/p/node_modules/rax-picker", pkg.Dir)
	assert.True(t, pkg.IsRenderSlotProp("renderItem"))

	sub, ok := pkg.SubComponent("Item")
	require.True(t, ok)
	assert.Equal(t, core.SubComponent{TagNameMap: "picker-item", Style: "flex:1"}, sub)

	entry, ok := pkg.Entry("main:wechat")
	require.True(t, ok)
	assert.Equal(t, "lib/wechat/index", entry)

	again, err := configs.PackageConfig("rax-picker", resource)
	require.NoError(t, err)
	assert.Same(t, pkg, again, "manifests are cached per package.json")

	_, err = configs.PackageConfig("rax-picker", "")
	assert.True(t, errors.Is(err, core.ErrMissingConfig))
}

func TestParsePackageConfig(t *testing.T) {
	pkg, err := ParsePackageConfig([]byte(`{"name": "rax-plain"}`))
	require.NoError(t, err)
	assert.Nil(t, pkg.Miniapp)
	assert.Equal(t, "index.js", pkg.MainFile())

	_, err = ParsePackageConfig([]byte(`{"name": `))
	assert.Error(t, err)
}
