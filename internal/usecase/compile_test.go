package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/3-lines-studio/jsx2mp/internal/adapters/codec"
	"github.com/3-lines-studio/jsx2mp/internal/adapters/fs"
	"github.com/3-lines-studio/jsx2mp/internal/ast"
	"github.com/3-lines-studio/jsx2mp/internal/core"
)

const pageDocument = `{
  "imports": [
    {"source": "rax", "specifiers": [{"local": "createElement", "imported": "createElement"}]},
    {"source": "../components/Card", "specifiers": [{"local": "Card"}]},
    {"source": "rax-picker", "specifiers": [{"local": "Picker"}]}
  ],
  "render": {
    "type": "Function",
    "name": "render",
    "params": [],
    "block": [{"type": "ReturnStatement", "argument": {
      "type": "Element",
      "name": {"type": "Identifier", "name": "view"},
      "attributes": [{"name": "className", "value": {"type": "StringLiteral", "value": "page"}}],
      "children": [
        {
          "type": "Element",
          "name": {"type": "Identifier", "name": "Card"},
          "attributes": [{"name": "title", "value": {"type": "Identifier", "name": "title"}}],
          "children": [],
          "selfClosing": true
        },
        {
          "type": "Element",
          "name": {"type": "Identifier", "name": "Picker"},
          "attributes": [{"name": "renderItem", "value": {
            "type": "Function",
            "arrow": true,
            "params": [{"type": "Identifier", "name": "item"}],
            "body": {
              "type": "Element",
              "name": {"type": "Identifier", "name": "text"},
              "attributes": [],
              "children": [{"type": "ExpressionSlot", "expression": {
                "type": "MemberExpression",
                "object": {"type": "Identifier", "name": "item"},
                "property": {"type": "Identifier", "name": "label"}
              }}]
            }
          }}],
          "children": [],
          "selfClosing": true
        }
      ]
    }}]
  }
}`

const tabsDocument = `{
  "imports": [{"source": "rax-tabs", "specifiers": [{"local": "Tabs"}]}],
  "render": {
    "type": "Function",
    "name": "render",
    "block": [{"type": "ReturnStatement", "argument": {
      "type": "Element",
      "name": {"type": "Identifier", "name": "Tabs"},
      "attributes": [],
      "children": []
    }}]
  }
}`

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// setupProject lays out a project with one page, one local component and two
// installed component packages. rax-tabs only ships a quickapp entry.
func setupProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, root, "src/pages/index.ast.json", pageDocument)
	writeFile(t, root, "src/pages/index.json", `{"navigationBarTitleText":"Home"}`)
	writeFile(t, root, "src/components/Card.jsx", "")

	writeFile(t, root, "node_modules/rax-picker/lib/index.js", "")
	writeFile(t, root, "node_modules/rax-picker/package.json", `{
		"name": "rax-picker",
		"main": "lib/index.js",
		"miniappConfig": {
			"main": "lib/miniapp/index",
			"main:wechat": "lib/wechat/index",
			"renderSlotProps": ["renderItem"]
		}
	}`)

	writeFile(t, root, "node_modules/rax-tabs/index.js", "")
	writeFile(t, root, "node_modules/rax-tabs/package.json", `{
		"name": "rax-tabs",
		"main": "index.js",
		"miniappConfig": {"main": "miniapp/index"}
	}`)
	return root
}

func newService(t *testing.T) *CompileService {
	t.Helper()
	s, err := NewCompileService(fs.NewOSFileSystem(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return s
}

func projectOptions(root, platform string) core.Options {
	opts := core.DefaultOptions()
	opts.SourcePath = filepath.Join(root, "src")
	opts.OutputPath = filepath.Join(root, "dist")
	opts.Platform = core.Platform{Type: platform}
	return opts
}

func TestCompileFile_WritesOutputs(t *testing.T) {
	root := setupProject(t)
	s := newService(t)

	out, err := s.CompileFile(context.Background(), filepath.Join(root, "src/pages/index.ast.json"), projectOptions(root, core.PlatformWeChat))
	require.NoError(t, err)

	assert.Equal(t, core.UsingComponents{
		"Card":       "../components/Card",
		"rax-picker": "./../npm/rax-picker/lib/wechat/index",
	}, out.UsingComponents)
	assert.Empty(t, out.Warnings)
	assert.EqualValues(t, 2, s.Counter().Peek())

	require.Len(t, out.Module.Imports, 1, "component imports are pruned from the script")
	assert.Equal(t, "rax", out.Module.Imports[0].Source)

	tpl, err := os.ReadFile(filepath.Join(root, "dist/pages/index.wxml"))
	require.NoError(t, err)
	assert.Equal(t, ast.Source(out.Template), string(tpl))
	snaps.MatchSnapshot(t, string(tpl))

	config, err := os.ReadFile(filepath.Join(root, "dist/pages/index.json"))
	require.NoError(t, err)
	assert.Equal(t, "Home", gjson.GetBytes(config, "navigationBarTitleText").String())
	assert.Len(t, gjson.GetBytes(config, "usingComponents").Map(), 2)
	assert.Equal(t, "../components/Card", gjson.GetBytes(config, "usingComponents.Card").String())

	meta, err := os.ReadFile(filepath.Join(root, "dist/pages/index.meta.json"))
	require.NoError(t, err)
	snaps.MatchSnapshot(t, string(meta))
}

func TestCompile_QuickAppImports(t *testing.T) {
	root := setupProject(t)
	s := newService(t)

	mod, err := s.ParseFile(filepath.Join(root, "src/pages/index.ast.json"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "src/pages/index"), mod.ResourcePath)

	out, err := s.Compile(context.Background(), mod, projectOptions(root, core.PlatformQuickApp))
	require.NoError(t, err)

	assert.Equal(t, "./../npm/rax-picker/lib/miniapp/index", out.UsingComponents["rax-picker"])
	assert.True(t, strings.HasPrefix(ast.Source(out.Template),
		`<template pagePath="true">`+
			`<import src="../components/Card" name="Card" />`+
			`<import src="./../npm/rax-picker/lib/miniapp/index" name="rax-picker" />`+
			`<view`), ast.Source(out.Template))
}

func TestCompile_UnmappedPlatformEntry(t *testing.T) {
	root := setupProject(t)
	writeFile(t, root, "src/pages/tabs.ast.json", tabsDocument)
	astPath := filepath.Join(root, "src/pages/tabs.ast.json")

	t.Run("warns and omits", func(t *testing.T) {
		s := newService(t)
		mod, err := s.ParseFile(astPath)
		require.NoError(t, err)

		out, err := s.Compile(context.Background(), mod, projectOptions(root, core.PlatformWeChat))
		require.NoError(t, err)

		assert.Empty(t, out.UsingComponents)
		require.Len(t, out.Warnings, 1)
		assert.Contains(t, out.Warnings[0], `miniappConfig["main:wechat"]`)
		assert.Contains(t, ast.Source(out.Template), `<rax-tabs parent-id="{{tag-id}}" tag-id="0" />`)
	})

	t.Run("strict fails", func(t *testing.T) {
		s := newService(t)
		mod, err := s.ParseFile(astPath)
		require.NoError(t, err)

		opts := projectOptions(root, core.PlatformWeChat)
		opts.StrictPlatformEntries = true
		_, err = s.Compile(context.Background(), mod, opts)
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrUnmappedPlatformEntry))
		assert.Contains(t, err.Error(), "failed to resolve component <rax-tabs>")
	})

	t.Run("mapped on quickapp", func(t *testing.T) {
		s := newService(t)
		mod, err := s.ParseFile(astPath)
		require.NoError(t, err)

		out, err := s.Compile(context.Background(), mod, projectOptions(root, core.PlatformQuickApp))
		require.NoError(t, err)
		assert.Equal(t, "./../npm/rax-tabs/miniapp/index", out.UsingComponents["rax-tabs"])
	})
}

func TestCompile_Canceled(t *testing.T) {
	s := newService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Compile(ctx, &ast.Module{}, core.DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompileProject_ContinuesAfterFailure(t *testing.T) {
	root := setupProject(t)
	writeFile(t, root, "src/pages/broken.ast.json", `{"render": `)
	writeFile(t, root, "src/node_modules/ignored.ast.json", pageDocument)
	writeFile(t, root, "src/.cache/ignored.ast.json", pageDocument)

	var stdout, stderr strings.Builder
	reporter := cliOutput(&stdout, &stderr)
	s := newService(t)

	result := s.CompileProject(context.Background(), reporter, CompileInput{
		Options:     projectOptions(root, core.PlatformWeChat),
		Concurrency: 2,
	})

	assert.False(t, result.Success)
	require.Len(t, result.Results, 2)

	broken, page := result.Results[0], result.Results[1]
	assert.ErrorIs(t, broken.Err, codec.ErrInvalidDocument)
	assert.Nil(t, broken.Output)
	require.NoError(t, page.Err)
	assert.Len(t, page.Output.UsingComponents, 2)

	require.Error(t, result.Error)
	assert.Contains(t, result.Error.Error(), filepath.Join("pages", "broken")+":")

	assert.FileExists(t, filepath.Join(root, "dist/pages/index.wxml"))
	assert.NoFileExists(t, filepath.Join(root, "dist/pages/broken.wxml"))

	assert.Contains(t, stdout.String(), "2 files found")
	assert.Contains(t, stderr.String(), "Errors (1):")
}

func TestCompileProject_DryRun(t *testing.T) {
	root := setupProject(t)
	s := newService(t)

	var stdout, stderr strings.Builder
	result := s.CompileProject(context.Background(), cliOutput(&stdout, &stderr), CompileInput{
		Options: projectOptions(root, core.PlatformWeChat),
		DryRun:  true,
	})

	require.NoError(t, result.Error)
	assert.True(t, result.Success)
	assert.NoDirExists(t, filepath.Join(root, "dist"))
}

func TestCompileProject_SharedTagCounter(t *testing.T) {
	root := setupProject(t)
	writeFile(t, root, "src/pages/second.ast.json", pageDocument)
	s := newService(t)

	var stdout, stderr strings.Builder
	result := s.CompileProject(context.Background(), cliOutput(&stdout, &stderr), CompileInput{
		Options: projectOptions(root, core.PlatformWeChat),
		DryRun:  true,
	})
	require.NoError(t, result.Error)

	seen := map[string]bool{}
	for _, r := range result.Results {
		ast.WalkElements(r.Output.Template, func(el *ast.Element, _ []*ast.Element) bool {
			if el.TagID != "" {
				assert.False(t, seen[el.TagID], "tag id %s assigned twice", el.TagID)
				seen[el.TagID] = true
			}
			return true
		})
	}
	assert.Len(t, seen, 4)
	assert.EqualValues(t, 4, s.Counter().Peek())
}

func TestCompileProject_NoFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))
	s := newService(t)

	var stdout, stderr strings.Builder
	result := s.CompileProject(context.Background(), cliOutput(&stdout, &stderr), CompileInput{
		Options: projectOptions(root, core.PlatformWeChat),
	})
	assert.False(t, result.Success)
	assert.ErrorContains(t, result.Error, "no .ast.json files found")
}
