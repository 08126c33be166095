package codec

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3-lines-studio/jsx2mp/internal/ast"
	"github.com/3-lines-studio/jsx2mp/internal/core"
)

const listDocument = `{
  "resourcePath": "/p/src/pages/index.jsx",
  "imports": [
    {"source": "rax", "specifiers": [{"local": "createElement", "imported": "createElement"}]},
    {"source": "rax-view", "specifiers": [{"local": "View"}]}
  ],
  "bindings": {
    "renderRow": {
      "type": "Function",
      "name": "renderRow",
      "params": [{"type": "Identifier", "name": "row"}],
      "block": [
        {"type": "RawStatement", "source": "const label = row.label;"},
        {"type": "ReturnStatement", "argument": {"type": "Identifier", "name": "label"}}
      ]
    }
  },
  "render": {
    "type": "Function",
    "name": "render",
    "params": [],
    "block": [{"type": "ReturnStatement", "argument": {
      "type": "Element",
      "name": {"type": "Identifier", "name": "View"},
      "attributes": [
        {"name": "className", "value": {"type": "StringLiteral", "value": "list"}},
        {"name": "hidden"},
        {"name": "count", "value": {"type": "NumericLiteral", "value": 3}}
      ],
      "children": [
        {"type": "Text", "value": "Total: "},
        {"type": "ExpressionSlot", "expression": {
          "type": "BinaryExpression", "operator": "+",
          "left": {"type": "MemberExpression", "object": {"type": "ThisExpression"}, "property": {"type": "Identifier", "name": "count"}},
          "right": {"type": "NumericLiteral", "value": 1}
        }},
        {
          "type": "Element",
          "name": {"type": "MemberExpression", "object": {"type": "Identifier", "name": "Ctx"}, "property": {"type": "Identifier", "name": "Provider"}},
          "attributes": [{"name": "value", "value": {"type": "NullLiteral"}}],
          "children": [],
          "selfClosing": true,
          "jsxList": {
            "args": [{"type": "Identifier", "name": "item"}, {"type": "Identifier", "name": "i"}],
            "loopFnBody": {"type": "Raw", "source": "list.map(fn)"}
          }
        }
      ]
    }}]
  }
}`

func TestDecodeModule(t *testing.T) {
	mod, err := DecodeModule([]byte(listDocument))
	require.NoError(t, err)

	assert.Equal(t, "/p/src/pages/index.jsx", mod.ResourcePath)
	require.Len(t, mod.Imports, 2)
	assert.Equal(t, []ast.ImportSpecifier{{Local: "View", Imported: "default"}}, mod.Imports[1].Specifiers)

	alias, ok := core.FindAlias(mod.Imports, "View")
	require.True(t, ok)
	assert.True(t, alias.IsDefault())

	require.Contains(t, mod.Bindings, "renderRow")
	assert.Equal(t, "function renderRow(row) { const label = row.label; return label; }", ast.Source(mod.Bindings["renderRow"]))

	require.NotNil(t, mod.Render)
	view, ok := mod.Render.ReturnedExpr().(*ast.Element)
	require.True(t, ok)
	assert.Equal(t,
		`<View className="list" hidden count={3}>Total: {this.count + 1}<Ctx.Provider value={null} /></View>`,
		ast.Source(view))

	provider := view.Children[2].(*ast.Element)
	require.NotNil(t, provider.List)
	assert.True(t, provider.SelfClosing)
	assert.Equal(t, "i", ast.Source(provider.List.Args[1]))
	assert.Equal(t, "list.map(fn)", ast.Source(provider.List.LoopFnBody))
}

const declarationsDocument = `{
  "render": {
    "type": "Function",
    "name": "render",
    "block": [
      {"type": "FunctionDeclaration", "name": "renderItem", "params": [{"type": "Identifier", "name": "item"}], "block": [
        {"type": "ReturnStatement", "argument": {"type": "Element", "name": {"type": "Identifier", "name": "Text"}, "children": [
          {"type": "ExpressionSlot", "expression": {"type": "Identifier", "name": "item"}}
        ]}}
      ]},
      {"type": "VariableDeclaration", "kind": "const", "declarations": [
        {"id": {"type": "Identifier", "name": "title"}, "init": {"type": "StringLiteral", "value": "Home"}},
        {"id": {"type": "Identifier", "name": "empty"}}
      ]},
      {"type": "VariableDeclaration", "kind": "const", "source": "const { a } = this.props;", "declarations": [
        {"id": {"type": "ObjectPattern"}}
      ]},
      {"type": "ReturnStatement", "argument": {
        "type": "Element",
        "name": {"type": "Identifier", "name": "Picker"},
        "attributes": [{"name": "renderItem", "value": {"type": "Identifier", "name": "renderItem"}}]
      }}
    ]
  }
}`

func TestDecodeModule_Declarations(t *testing.T) {
	mod, err := DecodeModule([]byte(declarationsDocument))
	require.NoError(t, err)

	want := "function render() { function renderItem(item) { return <Text>{item}</Text>; } " +
		"const title = 'Home'; const empty; const { a } = this.props; return <Picker renderItem={renderItem} />; }"
	assert.Equal(t, want, ast.Source(mod.Render))

	locals := mod.Render.Locals()
	require.Len(t, locals, 3)
	fn, ok := locals["renderItem"].(*ast.Func)
	require.True(t, ok)
	assert.Equal(t, []string{"item"}, fn.ParamNames())
	assert.Equal(t, "'Home'", ast.Source(locals["title"]))
	assert.Nil(t, locals["empty"])
}

func TestDecodeModule_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: `{"render": `},
		{name: "unknown expression", doc: `{"render": {"type": "Function", "body": {"type": "YieldExpression"}}}`},
		{name: "render is not a function", doc: `{"render": {"type": "Identifier", "name": "render"}}`},
		{name: "unknown statement", doc: `{"render": {"type": "Function", "block": [{"type": "IfStatement"}]}}`},
		{name: "destructuring without source", doc: `{"render": {"type": "Function", "block": [{"type": "VariableDeclaration", "declarations": [{"id": {"type": "ArrayPattern"}}]}]}}`},
		{name: "unknown node", doc: `{"render": {"type": "Function", "body": {"type": "Element", "name": {"type": "Identifier", "name": "a"}, "children": [{"type": "Comment"}]}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeModule([]byte(tt.doc))
			assert.True(t, errors.Is(err, ErrInvalidDocument), "got %v", err)
		})
	}
}

func TestEncodeMeta(t *testing.T) {
	out := &core.Output{
		Module: &ast.Module{
			Imports: []*ast.ImportDecl{{Source: "rax"}},
			Render:  &ast.Func{Name: "render"},
		},
		ContextList: []core.ContextRecord{
			{ContextName: "Ctx", ContextInitValue: ast.NewString("dark")},
		},
		DynamicValue: core.DynamicValues{
			"title": ast.NewIdent("title"),
			"_d0":   &ast.Binary{Op: "+", X: ast.NewIdent("a"), Y: ast.NewIdent("b")},
		},
		ComponentDependentProps: map[string]*core.DependentProps{
			"0-{{i}}": {
				TagIDExpression: core.TagIDExpression{Base: "0", Index: "i"},
				ParentNode:      &ast.Raw{Src: "list.map(fn)"},
			},
		},
	}

	data, err := EncodeMeta(out)
	require.NoError(t, err)

	var meta Meta
	require.NoError(t, json.Unmarshal(data, &meta))
	assert.Equal(t, []ContextEntry{{ContextName: "Ctx", ContextInitValue: "'dark'"}}, meta.ContextList)
	assert.Equal(t, map[string]string{"title": "title", "_d0": "a + b"}, meta.DynamicValue)
	assert.Equal(t, DependentEntry{TagIDExpression: [2]string{"0", "i"}, ParentNode: "list.map(fn)"}, meta.ComponentDependentProps["0-{{i}}"])
	assert.Equal(t, "function render() {}", meta.Render)
	assert.Equal(t, []string{"rax"}, meta.Imports)
}
