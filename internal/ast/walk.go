package ast

// WalkElements calls fn for el and every descendant element in document order,
// passing the chain of ancestors (outermost first). Returning false skips the
// element's children. Elements nested inside expressions are not visited.
func WalkElements(el *Element, fn func(el *Element, ancestors []*Element) bool) {
	walkElements(el, nil, fn)
}

func walkElements(el *Element, ancestors []*Element, fn func(*Element, []*Element) bool) {
	if !fn(el, ancestors) {
		return
	}
	next := append(ancestors[:len(ancestors):len(ancestors)], el)
	// Children may be replaced or appended by fn's caller; iterate by index.
	for i := 0; i < len(el.Children); i++ {
		switch child := el.Children[i].(type) {
		case *Element:
			walkElements(child, next, fn)
		case *ExprSlot:
			for _, nested := range ExprElements(child.X) {
				walkElements(nested, next, fn)
			}
		}
	}
}

// ExprElements returns the elements e can evaluate to through conditional,
// logical and array operands. Elements under functions and calls are left to
// the render prop and loop passes.
func ExprElements(e Expr) []*Element {
	var out []*Element
	var collect func(Expr)
	collect = func(e Expr) {
		switch t := e.(type) {
		case *Element:
			out = append(out, t)
		case *Conditional:
			collect(t.Then)
			collect(t.Else)
		case *Binary:
			collect(t.X)
			collect(t.Y)
		case *Array:
			for _, x := range t.Elems {
				collect(x)
			}
		}
	}
	collect(e)
	return out
}

// RewriteIdents replaces identifier references reachable from e with the
// result of fn. Non-computed member properties, object keys, tag names and
// attribute names are not references. Identifiers bound as parameters of a
// nested function are shadowed and left alone.
func RewriteIdents(e Expr, fn func(*Ident) Expr) Expr {
	return rewriteIdents(e, nil, fn)
}

func rewriteIdents(e Expr, shadowed map[string]bool, fn func(*Ident) Expr) Expr {
	switch t := e.(type) {
	case nil:
		return nil
	case *Ident:
		if shadowed[t.Name] {
			return t
		}
		return fn(t)
	case *Member:
		t.Object = rewriteIdents(t.Object, shadowed, fn)
		if t.Computed {
			t.Property = rewriteIdents(t.Property, shadowed, fn)
		}
	case *Call:
		t.Callee = rewriteIdents(t.Callee, shadowed, fn)
		for i := range t.Args {
			t.Args[i] = rewriteIdents(t.Args[i], shadowed, fn)
		}
	case *Func:
		inner := make(map[string]bool, len(shadowed)+len(t.Params))
		for k := range shadowed {
			inner[k] = true
		}
		for _, name := range t.ParamNames() {
			inner[name] = true
		}
		for name := range t.Locals() {
			inner[name] = true
		}
		t.Body = rewriteIdents(t.Body, inner, fn)
		for _, s := range t.Block {
			switch st := s.(type) {
			case *Return:
				st.X = rewriteIdents(st.X, inner, fn)
			case *ExprStmt:
				st.X = rewriteIdents(st.X, inner, fn)
			case *Decl:
				st.Value = rewriteIdents(st.Value, inner, fn)
			}
		}
	case *Binary:
		t.X = rewriteIdents(t.X, shadowed, fn)
		t.Y = rewriteIdents(t.Y, shadowed, fn)
	case *Unary:
		t.X = rewriteIdents(t.X, shadowed, fn)
	case *Conditional:
		t.Test = rewriteIdents(t.Test, shadowed, fn)
		t.Then = rewriteIdents(t.Then, shadowed, fn)
		t.Else = rewriteIdents(t.Else, shadowed, fn)
	case *Object:
		for i := range t.Props {
			t.Props[i].Value = rewriteIdents(t.Props[i].Value, shadowed, fn)
		}
	case *Array:
		for i := range t.Elems {
			t.Elems[i] = rewriteIdents(t.Elems[i], shadowed, fn)
		}
	case *Element:
		for _, a := range t.Attrs {
			a.Value = rewriteIdents(a.Value, shadowed, fn)
		}
		for _, c := range t.Children {
			switch child := c.(type) {
			case *ExprSlot:
				child.X = rewriteIdents(child.X, shadowed, fn)
			case *Element:
				rewriteIdents(child, shadowed, fn)
			}
		}
	}
	return e
}

// IsPath reports whether e is an identifier, `this`, or a non-computed member
// chain rooted at one of them.
func IsPath(e Expr) bool {
	switch t := e.(type) {
	case *Ident, *This:
		return true
	case *Member:
		if t.Computed {
			return false
		}
		if _, ok := t.Property.(*Ident); !ok {
			return false
		}
		return IsPath(t.Object)
	}
	return false
}

var childrenAccessors = map[string]bool{
	"this.props.children": true,
	"props.children":      true,
	"children":            true,
}

// IsChildrenAccessor reports whether e reads the component's children.
func IsChildrenAccessor(e Expr) bool {
	return IsPath(e) && childrenAccessors[Source(e)]
}

// ReturnedExpr yields the function's result expression: the expression body of
// an arrow function or the argument of the first top-level return statement.
func (f *Func) ReturnedExpr() Expr {
	if f.Body != nil {
		return f.Body
	}
	for _, s := range f.Block {
		if r, ok := s.(*Return); ok {
			return r.X
		}
	}
	return nil
}

// Locals returns the functions and variables declared directly in the
// function's block body, by name.
func (f *Func) Locals() map[string]Expr {
	var locals map[string]Expr
	for _, s := range f.Block {
		if d, ok := s.(*Decl); ok {
			if locals == nil {
				locals = map[string]Expr{}
			}
			locals[d.Name] = d.Value
		}
	}
	return locals
}

// ParamNames returns the names of the function's identifier parameters.
func (f *Func) ParamNames() []string {
	var names []string
	for _, p := range f.Params {
		if id, ok := p.(*Ident); ok {
			names = append(names, id.Name)
		}
	}
	return names
}
