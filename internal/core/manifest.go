package core

import (
	"maps"

	"github.com/3-lines-studio/jsx2mp/internal/ast"
)

type ContextRecord struct {
	ContextName      string
	ContextInitValue ast.Expr
}

type TagIDExpression struct {
	Base  string
	Index string
}

// DependentProps is the binding metadata of a tag id rendered inside a loop.
type DependentProps struct {
	TagIDExpression TagIDExpression
	ParentNode      ast.Expr
}

type DynamicValues map[string]ast.Expr

func (d DynamicValues) Merge(other DynamicValues) {
	maps.Copy(d, other)
}

type UsingComponents map[string]string

// Output is the compiled record of one component file.
type Output struct {
	Template                *ast.Element
	Module                  *ast.Module
	UsingComponents         UsingComponents
	ContextList             []ContextRecord
	DynamicValue            DynamicValues
	ComponentDependentProps map[string]*DependentProps
	Warnings                []string
}
