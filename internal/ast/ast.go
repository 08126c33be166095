package ast

// Node is a template child: *Element, *ExprSlot or *Text.
type Node interface {
	node()
}

// Expr is a source-language expression as produced by the host parser.
type Expr interface {
	expr()
}

// Stmt only appears inside function block bodies.
type Stmt interface {
	stmt()
}

type Text struct {
	Value string
}

type ExprSlot struct {
	X Expr
}

type Attr struct {
	Name string
	// Value is nil for boolean attributes (`<input disabled />`).
	Value Expr
}

// ListInfo is the marker left on an element by the list-rendering pass.
type ListInfo struct {
	Args       []Expr
	LoopFnBody Expr
}

type Element struct {
	// Name is an *Ident (`<Foo>`) or a *Member (`<Foo.Bar>`).
	Name        Expr
	Attrs       []*Attr
	Children    []Node
	SelfClosing bool
	List        *ListInfo
	TagID       string
}

func (*Text) node()     {}
func (*ExprSlot) node() {}
func (*Element) node()  {}

type Ident struct {
	Name string
}

type This struct{}

type LiteralKind int

const (
	LitString LiteralKind = iota
	LitNumber
	LitBool
	LitNull
)

type Literal struct {
	Kind LiteralKind
	// Value is the unquoted string for LitString, raw source otherwise.
	Value string
}

type Member struct {
	Object   Expr
	Property Expr
	Computed bool
}

type Call struct {
	Callee Expr
	Args   []Expr
}

type Func struct {
	Name   string
	Params []Expr
	// Exactly one of Body and Block is set.
	Body  Expr
	Block []Stmt
	Arrow bool
}

type Binary struct {
	Op   string
	X, Y Expr
}

type Unary struct {
	Op string
	X  Expr
}

type Conditional struct {
	Test, Then, Else Expr
}

type Property struct {
	Key   string
	Value Expr
}

type Object struct {
	Props []Property
}

type Array struct {
	Elems []Expr
}

// Raw is an expression the parser handed over as opaque source.
type Raw struct {
	Src string
}

func (*Ident) expr()       {}
func (*This) expr()        {}
func (*Literal) expr()     {}
func (*Member) expr()      {}
func (*Call) expr()        {}
func (*Func) expr()        {}
func (*Binary) expr()      {}
func (*Unary) expr()       {}
func (*Conditional) expr() {}
func (*Object) expr()      {}
func (*Array) expr()       {}
func (*Element) expr()     {}
func (*Raw) expr()         {}

type Return struct {
	X Expr
}

type ExprStmt struct {
	X Expr
}

type RawStmt struct {
	Src string
}

// Decl is a function or variable declaration in a block body. Kind is
// "function", "const", "let" or "var".
type Decl struct {
	Kind  string
	Name  string
	Value Expr
}

func (*Return) stmt()   {}
func (*ExprStmt) stmt() {}
func (*RawStmt) stmt()  {}
func (*Decl) stmt()     {}

type ImportSpecifier struct {
	Local string
	// Imported is "default" for default imports.
	Imported string
}

type ImportDecl struct {
	Source     string
	Specifiers []ImportSpecifier
}

// Module is the companion script of one compiled component.
type Module struct {
	ResourcePath string
	Imports      []*ImportDecl
	// Bindings holds top-level declarations by name, used to resolve identifiers
	// that refer to functions declared elsewhere in the file.
	Bindings map[string]Expr
	Render   *Func
	// RenderLocals holds the declarations of the render function body. They
	// stay visible to render props after the body has been cleared.
	RenderLocals map[string]Expr
}

func NewIdent(name string) *Ident {
	return &Ident{Name: name}
}

func NewString(v string) *Literal {
	return &Literal{Kind: LitString, Value: v}
}

func NewElement(tag string, attrs ...*Attr) *Element {
	return &Element{Name: NewIdent(tag), Attrs: attrs, SelfClosing: true}
}

// TagName returns the element name when it is a plain identifier.
func (e *Element) TagName() string {
	if id, ok := e.Name.(*Ident); ok {
		return id.Name
	}
	return ""
}

func (e *Element) Rename(tag string) {
	e.Name = NewIdent(tag)
}

func (e *Element) Attr(name string) *Attr {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a
		}
	}
	return nil
}

func (e *Element) SetAttr(name, value string) {
	e.Attrs = append(e.Attrs, &Attr{Name: name, Value: NewString(value)})
}

func (e *Element) RemoveAttr(a *Attr) {
	for i, cur := range e.Attrs {
		if cur == a {
			e.Attrs = append(e.Attrs[:i], e.Attrs[i+1:]...)
			return
		}
	}
}

// PromoteElementSlots replaces children of the form `{<Foo />}` with the
// element itself.
func (e *Element) PromoteElementSlots() {
	for i, c := range e.Children {
		if slot, ok := c.(*ExprSlot); ok {
			if child, ok := slot.X.(*Element); ok {
				e.Children[i] = child
			}
		}
	}
}

func (e *Element) AppendChild(n Node) {
	e.Children = append(e.Children, n)
	e.SelfClosing = false
}
