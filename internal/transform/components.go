package transform

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/3-lines-studio/jsx2mp/internal/ast"
	"github.com/3-lines-studio/jsx2mp/internal/core"
	"github.com/3-lines-studio/jsx2mp/internal/template"
)

const (
	GroupTag    = "block"
	SlotTag     = "slot"
	SlotScope   = "props"
	DefaultLoop = "index"
)

// ConfigSource loads the package.json of an installed component package.
type ConfigSource interface {
	PackageConfig(specifier, resourcePath string) (*core.PackageConfig, error)
}

type Deps struct {
	Configs ConfigSource
	Counter *core.TagCounter
	Builder *template.Builder
	Logger  *slog.Logger
}

// Result holds the side tables collected while resolving components.
type Result struct {
	// Aliases maps each retained sanitized tag to the import it came from.
	Aliases map[string]core.ComponentAlias
	// Consumed lists every alias whose import is no longer needed by the script.
	Consumed       []core.ComponentAlias
	ContextList    []core.ContextRecord
	DynamicValue   core.DynamicValues
	DependentProps map[string]*core.DependentProps
}

type resolver struct {
	mod  *ast.Module
	opts core.Options
	deps Deps
	res  *Result
	// scopes holds the declarations visible below an element: the render
	// function's locals at the root and a render prop's locals at its slot.
	scopes map[*ast.Element]map[string]ast.Expr
	slots  map[*ast.Element]bool
}

// Components resolves component tags in tpl against mod's imports. It assigns
// tag ids, rewrites Providers and sub-components, extracts render-prop slots
// and replaces children accessors with slot placeholders.
func Components(mod *ast.Module, tpl *ast.Element, opts core.Options, deps Deps) (*Result, error) {
	if deps.Counter == nil {
		deps.Counter = core.NewTagCounter()
	}
	if deps.Builder == nil {
		deps.Builder = template.NewBuilder()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	r := &resolver{
		mod:  mod,
		opts: opts,
		deps: deps,
		res: &Result{
			Aliases:        map[string]core.ComponentAlias{},
			DynamicValue:   core.DynamicValues{},
			DependentProps: map[string]*core.DependentProps{},
		},
		scopes: map[*ast.Element]map[string]ast.Expr{tpl: mod.RenderLocals},
		slots:  map[*ast.Element]bool{},
	}

	if err := r.walk(tpl, nil); err != nil {
		return nil, err
	}
	return r.res, nil
}

// walk resolves every element below root. outer lists the ancestors of root
// itself. Slots appended during the walk are resolved when they are created
// and skipped here.
func (r *resolver) walk(root *ast.Element, outer []*ast.Element) error {
	var err error
	ast.WalkElements(root, func(el *ast.Element, ancestors []*ast.Element) bool {
		if err != nil || (r.slots[el] && el != root) {
			return false
		}
		if len(outer) > 0 {
			ancestors = append(slices.Clone(outer), ancestors...)
		}
		el.PromoteElementSlots()
		replaceChildrenAccessors(el)
		err = r.element(el, ancestors)
		return err == nil
	})
	return err
}

func (r *resolver) element(el *ast.Element, ancestors []*ast.Element) error {
	switch name := el.Name.(type) {
	case *ast.Ident:
		return r.identifierComponent(el, name.Name, ancestors)
	case *ast.Member:
		return r.memberComponent(el, name)
	default:
		return core.Unsupported("Unsupported type of component name.", "<"+ast.Source(el.Name)+">")
	}
}

// <View />
func (r *resolver) identifierComponent(el *ast.Element, name string, ancestors []*ast.Element) error {
	alias, ok := core.FindAlias(r.mod.Imports, name)
	if !ok {
		return nil
	}
	r.res.Consumed = append(r.res.Consumed, alias)

	tag := core.SanitizeTag(alias.Name(), r.opts.VendorPrefixes)
	if native, ok := r.opts.NativeTag(tag); ok {
		el.Rename(native)
		return r.nativeSlots(el, alias, ancestors)
	}
	el.Rename(tag)
	r.assignTagID(el, tag, ancestors)

	if !alias.IsLocal() {
		pkg, err := r.deps.Configs.PackageConfig(alias.From, r.opts.ResourcePath)
		if err != nil {
			return err
		}
		if err := r.extractSlots(el, pkg, ancestors); err != nil {
			return err
		}
	}
	r.res.Aliases[tag] = alias
	return nil
}

// nativeSlots extracts render props of a native component whose package is
// installed. Native packages need not be installed at all.
func (r *resolver) nativeSlots(el *ast.Element, alias core.ComponentAlias, ancestors []*ast.Element) error {
	if alias.IsLocal() {
		return nil
	}
	pkg, err := r.deps.Configs.PackageConfig(alias.From, r.opts.ResourcePath)
	if errors.Is(err, core.ErrModuleNotResolved) {
		return nil
	}
	if err != nil {
		return err
	}
	return r.extractSlots(el, pkg, ancestors)
}

func (r *resolver) assignTagID(el *ast.Element, tag string, ancestors []*ast.Element) {
	base := r.deps.Counter.Next()
	tagID := base
	if list := nearestList(el, ancestors); list != nil {
		index := DefaultLoop
		if len(list.Args) > 1 {
			index = ast.Source(list.Args[1])
		}
		tagID = core.ListTagID(base, index)
		r.res.DependentProps[tagID] = &core.DependentProps{
			TagIDExpression: core.TagIDExpression{Base: base, Index: index},
			ParentNode:      list.LoopFnBody,
		}
	}
	el.TagID = tagID

	if !r.opts.IsBaseComponent(tag) {
		el.SetAttr("parent-id", "{{tag-id}}")
	}
	el.SetAttr("tag-id", tagID)
}

func nearestList(el *ast.Element, ancestors []*ast.Element) *ast.ListInfo {
	if el.List != nil {
		return el.List
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		if ancestors[i].List != nil {
			return ancestors[i].List
		}
	}
	return nil
}

// <RecyclerView.Cell /> or <Context.Provider>
func (r *resolver) memberComponent(el *ast.Element, name *ast.Member) error {
	owner, ownerOK := name.Object.(*ast.Ident)
	member, memberOK := name.Property.(*ast.Ident)
	if name.Computed || !ownerOK || !memberOK {
		return core.Unsupported("Unsupported type of sub components.", "<"+ast.Source(name)+">")
	}

	if member.Name == "Provider" {
		var initValue ast.Expr = ast.NewIdent("undefined")
		if value := el.Attr("value"); value != nil && value.Value != nil {
			initValue = value.Value
		}
		r.res.ContextList = append(r.res.ContextList, core.ContextRecord{
			ContextName:      owner.Name,
			ContextInitValue: initValue,
		})
		el.Rename(GroupTag)
		el.Attrs = nil
		return nil
	}

	alias, ok := core.FindAlias(r.mod.Imports, owner.Name)
	if !ok {
		return nil
	}
	r.res.Consumed = append(r.res.Consumed, alias)
	if alias.IsLocal() {
		return nil
	}

	pkg, err := r.deps.Configs.PackageConfig(alias.From, r.opts.ResourcePath)
	if err != nil {
		return err
	}
	sub, ok := pkg.SubComponent(member.Name)
	if !ok {
		r.deps.Logger.Debug("no sub component mapping", "package", alias.From, "member", member.Name)
		return nil
	}
	el.Rename(sub.TagNameMap)
	if sub.Style != "" {
		el.SetAttr("style", sub.Style)
	}
	return nil
}

func replaceChildrenAccessors(el *ast.Element) {
	for i, c := range el.Children {
		if slot, ok := c.(*ast.ExprSlot); ok && ast.IsChildrenAccessor(slot.X) {
			el.Children[i] = ast.NewElement(SlotTag)
		}
	}
}
