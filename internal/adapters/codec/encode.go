package codec

import (
	"encoding/json"

	"github.com/3-lines-studio/jsx2mp/internal/ast"
	"github.com/3-lines-studio/jsx2mp/internal/core"
)

type ContextEntry struct {
	ContextName      string `json:"contextName"`
	ContextInitValue string `json:"contextInitValue"`
}

type DependentEntry struct {
	TagIDExpression [2]string `json:"tagIdExpression"`
	ParentNode      string    `json:"parentNode,omitempty"`
}

// Meta is the binding metadata handed to the code generator, with expressions
// rendered back to source.
type Meta struct {
	ContextList             []ContextEntry            `json:"contextList"`
	DynamicValue            map[string]string         `json:"dynamicValue"`
	ComponentDependentProps map[string]DependentEntry `json:"componentDependentProps,omitempty"`
	Render                  string                    `json:"render,omitempty"`
	Imports                 []string                  `json:"imports,omitempty"`
}

func NewMeta(out *core.Output) Meta {
	meta := Meta{
		ContextList:  make([]ContextEntry, 0, len(out.ContextList)),
		DynamicValue: make(map[string]string, len(out.DynamicValue)),
	}
	for _, ctx := range out.ContextList {
		meta.ContextList = append(meta.ContextList, ContextEntry{
			ContextName:      ctx.ContextName,
			ContextInitValue: ast.Source(ctx.ContextInitValue),
		})
	}
	for key, e := range out.DynamicValue {
		meta.DynamicValue[key] = ast.Source(e)
	}
	if len(out.ComponentDependentProps) > 0 {
		meta.ComponentDependentProps = make(map[string]DependentEntry, len(out.ComponentDependentProps))
		for id, props := range out.ComponentDependentProps {
			meta.ComponentDependentProps[id] = DependentEntry{
				TagIDExpression: [2]string{props.TagIDExpression.Base, props.TagIDExpression.Index},
				ParentNode:      ast.Source(props.ParentNode),
			}
		}
	}
	if out.Module != nil {
		if out.Module.Render != nil {
			meta.Render = ast.Source(out.Module.Render)
		}
		for _, imp := range out.Module.Imports {
			meta.Imports = append(meta.Imports, imp.Source)
		}
	}
	return meta
}

func EncodeMeta(out *core.Output) ([]byte, error) {
	return json.MarshalIndent(NewMeta(out), "", "  ")
}
