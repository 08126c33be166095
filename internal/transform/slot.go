package transform

import (
	"slices"
	"strings"

	"github.com/3-lines-studio/jsx2mp/internal/ast"
	"github.com/3-lines-studio/jsx2mp/internal/core"
)

// extractSlots moves render-prop attributes declared by pkg into slot
// sub-templates appended to el's children.
func (r *resolver) extractSlots(el *ast.Element, pkg *core.PackageConfig, ancestors []*ast.Element) error {
	for _, attr := range slices.Clone(el.Attrs) {
		if !pkg.IsRenderSlotProp(attr.Name) {
			continue
		}
		fn, err := r.renderFunc(attr, el, ancestors)
		if err != nil {
			return err
		}
		if fn == nil {
			continue
		}
		el.RemoveAttr(attr)

		slot, dv, err := r.createSlot(fn, attr.Name, append(slices.Clone(ancestors), el))
		if err != nil {
			return err
		}
		if slot == nil {
			r.deps.Logger.Debug("render prop returns no element", "attr", attr.Name)
			continue
		}
		r.res.DynamicValue.Merge(dv)
		el.AppendChild(slot)
	}
	return nil
}

func (r *resolver) renderFunc(attr *ast.Attr, el *ast.Element, ancestors []*ast.Element) (*ast.Func, error) {
	switch v := attr.Value.(type) {
	case *ast.Func:
		return v, nil
	case *ast.Ident:
		if fn, ok := r.lookup(v.Name, el, ancestors).(*ast.Func); ok {
			return fn, nil
		}
		return nil, core.Unsupported("Can not resolve render function binding, please use anonymous function instead.", ast.Source(attr))
	case *ast.Member:
		return nil, core.Unsupported("Not support MemberExpression at render function, please use anonymous function instead.", ast.Source(attr))
	}
	return nil, nil
}

// lookup resolves name through the innermost enclosing scope first, then the
// module's top-level bindings.
func (r *resolver) lookup(name string, el *ast.Element, ancestors []*ast.Element) ast.Expr {
	if v, ok := r.scopes[el][name]; ok {
		return v
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		if v, ok := r.scopes[ancestors[i]][name]; ok {
			return v
		}
	}
	return r.mod.Bindings[name]
}

// createSlot converts a render function into a named slot element. References
// to the function's parameters are read from the slot scope object. Components
// inside the slot are resolved against the function's own declarations before
// its expressions are bound.
func (r *resolver) createSlot(fn *ast.Func, slotName string, outer []*ast.Element) (*ast.Element, core.DynamicValues, error) {
	body, ok := fn.ReturnedExpr().(*ast.Element)
	if !ok {
		return nil, nil, nil
	}
	el := ast.CloneElement(body)

	params := map[string]bool{}
	for _, name := range fn.ParamNames() {
		params[name] = true
	}
	scoped := false
	ast.RewriteIdents(el, func(id *ast.Ident) ast.Expr {
		if !params[id.Name] {
			return id
		}
		scoped = true
		return &ast.Member{Object: ast.NewIdent(SlotScope), Property: ast.NewIdent(id.Name)}
	})

	ast.WalkElements(el, func(cur *ast.Element, _ []*ast.Element) bool {
		replaceChildrenAccessors(cur)
		return true
	})
	r.deps.Builder.Classify(el)
	r.scopes[el] = fn.Locals()
	r.slots[el] = true
	if err := r.walk(el, outer); err != nil {
		return nil, nil, err
	}
	dv := r.deps.Builder.Bind(el, slotName)
	for key := range dv {
		if params[key] || strings.HasPrefix(key, SlotScope+".") {
			delete(dv, key)
		}
	}

	if scoped {
		el.SetAttr("slot-scope", SlotScope)
	}
	el.SetAttr("slot", slotName)
	return el, dv, nil
}
