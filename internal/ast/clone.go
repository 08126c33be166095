package ast

// CloneExpr returns a deep copy of e. Loop markers on copied elements are shared.
func CloneExpr(e Expr) Expr {
	switch t := e.(type) {
	case nil:
		return nil
	case *Ident:
		c := *t
		return &c
	case *This:
		return &This{}
	case *Literal:
		c := *t
		return &c
	case *Member:
		return &Member{Object: CloneExpr(t.Object), Property: CloneExpr(t.Property), Computed: t.Computed}
	case *Call:
		return &Call{Callee: CloneExpr(t.Callee), Args: cloneExprs(t.Args)}
	case *Func:
		c := &Func{Name: t.Name, Params: cloneExprs(t.Params), Body: CloneExpr(t.Body), Arrow: t.Arrow}
		for _, s := range t.Block {
			c.Block = append(c.Block, cloneStmt(s))
		}
		return c
	case *Binary:
		return &Binary{Op: t.Op, X: CloneExpr(t.X), Y: CloneExpr(t.Y)}
	case *Unary:
		return &Unary{Op: t.Op, X: CloneExpr(t.X)}
	case *Conditional:
		return &Conditional{Test: CloneExpr(t.Test), Then: CloneExpr(t.Then), Else: CloneExpr(t.Else)}
	case *Object:
		c := &Object{Props: make([]Property, len(t.Props))}
		for i, p := range t.Props {
			c.Props[i] = Property{Key: p.Key, Value: CloneExpr(p.Value)}
		}
		return c
	case *Array:
		return &Array{Elems: cloneExprs(t.Elems)}
	case *Element:
		return CloneElement(t)
	case *Raw:
		c := *t
		return &c
	}
	return e
}

func CloneElement(el *Element) *Element {
	c := &Element{
		Name:        CloneExpr(el.Name),
		SelfClosing: el.SelfClosing,
		List:        el.List,
		TagID:       el.TagID,
	}
	for _, a := range el.Attrs {
		c.Attrs = append(c.Attrs, &Attr{Name: a.Name, Value: CloneExpr(a.Value)})
	}
	for _, n := range el.Children {
		c.Children = append(c.Children, CloneNode(n))
	}
	return c
}

func CloneNode(n Node) Node {
	switch t := n.(type) {
	case *Element:
		return CloneElement(t)
	case *ExprSlot:
		return &ExprSlot{X: CloneExpr(t.X)}
	case *Text:
		c := *t
		return &c
	}
	return n
}

func cloneExprs(es []Expr) []Expr {
	if es == nil {
		return nil
	}
	out := make([]Expr, len(es))
	for i, e := range es {
		out[i] = CloneExpr(e)
	}
	return out
}

func cloneStmt(s Stmt) Stmt {
	switch t := s.(type) {
	case *Return:
		return &Return{X: CloneExpr(t.X)}
	case *ExprStmt:
		return &ExprStmt{X: CloneExpr(t.X)}
	case *RawStmt:
		c := *t
		return &c
	case *Decl:
		return &Decl{Kind: t.Kind, Name: t.Name, Value: CloneExpr(t.Value)}
	}
	return s
}
