package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3-lines-studio/jsx2mp/internal/ast"
)

func TestComponentAlias_Name(t *testing.T) {
	tests := []struct {
		name  string
		alias ComponentAlias
		want  string
	}{
		{name: "local default", alias: ComponentAlias{From: "./Card", Local: "Card", Imported: "default"}, want: "Card"},
		{name: "local named", alias: ComponentAlias{From: "../ui", Local: "Button", Imported: "Button"}, want: "Button"},
		{name: "package default", alias: ComponentAlias{From: "rax-view", Local: "View", Imported: "default"}, want: "rax-view"},
		{name: "package named", alias: ComponentAlias{From: "rax-recyclerview", Local: "Cell", Imported: "Cell"}, want: "rax-recyclerview/Cell"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.alias.Name())
		})
	}
}

func TestFindAlias(t *testing.T) {
	imports := []*ast.ImportDecl{
		{Source: "rax", Specifiers: []ast.ImportSpecifier{{Local: "createElement", Imported: "createElement"}}},
		{Source: "rax-view", Specifiers: []ast.ImportSpecifier{{Local: "View", Imported: "default"}}},
	}

	alias, ok := FindAlias(imports, "View")
	require.True(t, ok)
	assert.Equal(t, ComponentAlias{From: "rax-view", Local: "View", Imported: "default"}, alias)
	assert.True(t, alias.IsDefault())
	assert.False(t, alias.IsLocal())

	_, ok = FindAlias(imports, "Text")
	assert.False(t, ok)
}

func TestOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, "main", opts.MainField())
	assert.True(t, opts.IsBaseComponent("rax-view"))
	assert.False(t, opts.IsBaseComponent("rax-picker"))

	opts.Platform = Platform{Type: PlatformWeChat}
	assert.Equal(t, "main:wechat", opts.MainField())

	assert.Equal(t, "main", Options{}.MainField())
	assert.Equal(t, ".ux", TemplateExt(PlatformQuickApp))
	assert.Equal(t, ".wxml", TemplateExt(PlatformWeChat))
	assert.Equal(t, ".swan", TemplateExt(PlatformBaidu))
}

func TestPackageConfig(t *testing.T) {
	var missing *PackageConfig
	assert.False(t, missing.IsRenderSlotProp("renderItem"))

	pkg := &PackageConfig{
		Name: "rax-picker",
		Miniapp: &MiniappConfig{
			RenderSlotProps: []string{"renderItem"},
			Entries:         map[string]string{"main": "lib/miniapp/index", "main:wechat": ""},
		},
	}
	assert.True(t, pkg.IsRenderSlotProp("renderItem"))
	assert.Equal(t, "index.js", pkg.MainFile())

	entry, ok := pkg.Entry("main")
	assert.True(t, ok)
	assert.Equal(t, "lib/miniapp/index", entry)

	_, ok = pkg.Entry("main:wechat")
	assert.False(t, ok, "empty entries count as unmapped")
}

func TestErrors(t *testing.T) {
	err := Unsupported("Unsupported type of sub components.", "<Owner[0]>")
	assert.True(t, errors.Is(err, ErrUnsupported))

	var unsupported *UnsupportedError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "<Owner[0]>", unsupported.Fragment)
	assert.Contains(t, err.Error(), "<Owner[0]>")

	assert.True(t, errors.Is(ModuleNotResolved("./Missing"), ErrModuleNotResolved))
	assert.True(t, errors.Is(UnmappedPlatformEntry("rax-picker", "main:wechat"), ErrUnmappedPlatformEntry))
}
