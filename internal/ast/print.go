package ast

import (
	"fmt"
	"strings"
)

// Source renders an expression, statement or template node back to source text.
func Source(n any) string {
	var p printer
	p.any(n)
	return p.b.String()
}

type printer struct {
	b strings.Builder
}

func (p *printer) any(n any) {
	switch t := n.(type) {
	case nil:
	case Expr:
		p.expr(t)
	case Node:
		p.node(t)
	case Stmt:
		p.stmt(t)
	case *Attr:
		p.attr(t)
	default:
		panic(fmt.Sprintf("ast: cannot print %T", n))
	}
}

func (p *printer) node(n Node) {
	switch t := n.(type) {
	case *Element:
		p.element(t)
	case *ExprSlot:
		p.b.WriteByte('{')
		p.expr(t.X)
		p.b.WriteByte('}')
	case *Text:
		p.b.WriteString(textEscaper.Replace(t.Value))
	}
}

func (p *printer) element(el *Element) {
	p.b.WriteByte('<')
	p.expr(el.Name)
	for _, a := range el.Attrs {
		p.b.WriteByte(' ')
		p.attr(a)
	}
	if len(el.Children) == 0 {
		p.b.WriteString(" />")
		return
	}
	p.b.WriteByte('>')
	for _, c := range el.Children {
		p.node(c)
	}
	p.b.WriteString("</")
	p.expr(el.Name)
	p.b.WriteByte('>')
}

func (p *printer) attr(a *Attr) {
	p.b.WriteString(a.Name)
	if a.Value == nil {
		return
	}
	if lit, ok := a.Value.(*Literal); ok && lit.Kind == LitString {
		p.b.WriteString(`="`)
		p.b.WriteString(strings.ReplaceAll(lit.Value, `"`, "&quot;"))
		p.b.WriteByte('"')
		return
	}
	p.b.WriteString("={")
	p.expr(a.Value)
	p.b.WriteByte('}')
}

func (p *printer) expr(e Expr) {
	switch t := e.(type) {
	case *Ident:
		p.b.WriteString(t.Name)
	case *This:
		p.b.WriteString("this")
	case *Literal:
		if t.Kind == LitString {
			p.b.WriteString(quote(t.Value))
			return
		}
		p.b.WriteString(t.Value)
	case *Member:
		p.operand(t.Object)
		if t.Computed {
			p.b.WriteByte('[')
			p.expr(t.Property)
			p.b.WriteByte(']')
			return
		}
		p.b.WriteByte('.')
		p.expr(t.Property)
	case *Call:
		p.operand(t.Callee)
		p.b.WriteByte('(')
		p.list(t.Args)
		p.b.WriteByte(')')
	case *Func:
		p.fn(t)
	case *Binary:
		p.operand(t.X)
		p.b.WriteString(" " + t.Op + " ")
		p.operand(t.Y)
	case *Unary:
		p.b.WriteString(t.Op)
		if len(t.Op) > 1 {
			p.b.WriteByte(' ')
		}
		p.operand(t.X)
	case *Conditional:
		p.operand(t.Test)
		p.b.WriteString(" ? ")
		p.operand(t.Then)
		p.b.WriteString(" : ")
		p.operand(t.Else)
	case *Object:
		if len(t.Props) == 0 {
			p.b.WriteString("{}")
			return
		}
		p.b.WriteString("{ ")
		for i, prop := range t.Props {
			if i > 0 {
				p.b.WriteString(", ")
			}
			p.b.WriteString(prop.Key)
			p.b.WriteString(": ")
			p.expr(prop.Value)
		}
		p.b.WriteString(" }")
	case *Array:
		p.b.WriteByte('[')
		p.list(t.Elems)
		p.b.WriteByte(']')
	case *Element:
		p.element(t)
	case *Raw:
		p.b.WriteString(t.Src)
	}
}

// operand parenthesizes compound expressions used inside another expression.
func (p *printer) operand(e Expr) {
	switch e.(type) {
	case *Binary, *Conditional, *Func:
		p.b.WriteByte('(')
		p.expr(e)
		p.b.WriteByte(')')
	default:
		p.expr(e)
	}
}

func (p *printer) list(es []Expr) {
	for i, e := range es {
		if i > 0 {
			p.b.WriteString(", ")
		}
		p.expr(e)
	}
}

func (p *printer) fn(f *Func) {
	if f.Arrow {
		p.b.WriteByte('(')
		p.list(f.Params)
		p.b.WriteString(") => ")
	} else {
		p.b.WriteString("function ")
		p.b.WriteString(f.Name)
		p.b.WriteByte('(')
		p.list(f.Params)
		p.b.WriteString(") ")
	}
	if f.Body != nil {
		if _, ok := f.Body.(*Object); ok {
			p.b.WriteByte('(')
			p.expr(f.Body)
			p.b.WriteByte(')')
			return
		}
		p.expr(f.Body)
		return
	}
	if len(f.Block) == 0 {
		p.b.WriteString("{}")
		return
	}
	p.b.WriteString("{ ")
	for _, s := range f.Block {
		p.stmt(s)
		p.b.WriteByte(' ')
	}
	p.b.WriteByte('}')
}

func (p *printer) stmt(s Stmt) {
	switch t := s.(type) {
	case *Return:
		p.b.WriteString("return")
		if t.X != nil {
			p.b.WriteByte(' ')
			p.expr(t.X)
		}
		p.b.WriteByte(';')
	case *ExprStmt:
		p.expr(t.X)
		p.b.WriteByte(';')
	case *RawStmt:
		p.b.WriteString(t.Src)
	case *Decl:
		if fn, ok := t.Value.(*Func); ok && t.Kind == "function" {
			p.fn(fn)
			return
		}
		p.b.WriteString(t.Kind + " " + t.Name)
		if t.Value != nil {
			p.b.WriteString(" = ")
			p.expr(t.Value)
		}
		p.b.WriteByte(';')
	}
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)
	return "'" + r.Replace(s) + "'"
}
