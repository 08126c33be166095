package core

import "github.com/3-lines-studio/jsx2mp/internal/ast"

// ComponentAlias records where a JSX tag's identifier was imported from.
type ComponentAlias struct {
	From     string
	Local    string
	Imported string
}

func (a ComponentAlias) IsDefault() bool {
	return a.Imported == "" || a.Imported == "default"
}

func (a ComponentAlias) IsLocal() bool {
	return IsRelativeSpecifier(a.From)
}

// Name is the component name the template tag is derived from.
func (a ComponentAlias) Name() string {
	switch {
	case a.IsLocal():
		return a.Local
	case a.IsDefault():
		return a.From
	default:
		return a.From + "/" + a.Imported
	}
}

// FindAlias looks a tag name up among the module's import specifiers.
func FindAlias(imports []*ast.ImportDecl, tagName string) (ComponentAlias, bool) {
	for _, decl := range imports {
		for _, spec := range decl.Specifiers {
			if spec.Local == tagName {
				return ComponentAlias{From: decl.Source, Local: spec.Local, Imported: spec.Imported}, true
			}
		}
	}
	return ComponentAlias{}, false
}
