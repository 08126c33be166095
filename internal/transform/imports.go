package transform

import (
	"slices"

	"github.com/maruel/natural"

	"github.com/3-lines-studio/jsx2mp/internal/ast"
	"github.com/3-lines-studio/jsx2mp/internal/core"
	"github.com/3-lines-studio/jsx2mp/internal/template"
)

// PruneImports deletes the import declarations of consumed component aliases
// from the companion script.
func PruneImports(mod *ast.Module, consumed []core.ComponentAlias) {
	if len(consumed) == 0 {
		return
	}
	sources := make(map[string]bool, len(consumed))
	for _, alias := range consumed {
		sources[alias.From] = true
	}
	mod.Imports = slices.DeleteFunc(mod.Imports, func(decl *ast.ImportDecl) bool {
		return sources[decl.Source]
	})
}

// InjectTemplateImports prepends an <import> element per used component to a
// root template element, ordered by tag name.
func InjectTemplateImports(root *ast.Element, using core.UsingComponents) {
	if root.TagName() != template.RootTag || len(using) == 0 {
		return
	}
	tags := make([]string, 0, len(using))
	for tag := range using {
		tags = append(tags, tag)
	}
	slices.SortFunc(tags, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})

	imports := make([]ast.Node, 0, len(tags)+len(root.Children))
	for _, tag := range tags {
		imp := ast.NewElement("import")
		imp.SetAttr("src", using[tag])
		imp.SetAttr("name", tag)
		imports = append(imports, imp)
	}
	root.Children = append(imports, root.Children...)
	root.SelfClosing = false
}
