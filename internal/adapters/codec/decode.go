package codec

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/3-lines-studio/jsx2mp/internal/ast"
)

var ErrInvalidDocument = errors.New("invalid AST document")

// DecodeModule decodes the JSON document written by the host parser.
func DecodeModule(data []byte) (*ast.Module, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidDocument
	}
	doc := gjson.ParseBytes(data)

	mod := &ast.Module{
		ResourcePath: doc.Get("resourcePath").String(),
		Bindings:     map[string]ast.Expr{},
	}
	for _, imp := range doc.Get("imports").Array() {
		decl := &ast.ImportDecl{Source: imp.Get("source").String()}
		for _, spec := range imp.Get("specifiers").Array() {
			imported := spec.Get("imported").String()
			if imported == "" {
				imported = "default"
			}
			decl.Specifiers = append(decl.Specifiers, ast.ImportSpecifier{
				Local:    spec.Get("local").String(),
				Imported: imported,
			})
		}
		mod.Imports = append(mod.Imports, decl)
	}

	var err error
	doc.Get("bindings").ForEach(func(key, value gjson.Result) bool {
		var e ast.Expr
		e, err = decodeExpr(value)
		if err != nil {
			err = fmt.Errorf("binding %q: %w", key.String(), err)
			return false
		}
		mod.Bindings[key.String()] = e
		return true
	})
	if err != nil {
		return nil, err
	}

	if render := doc.Get("render"); render.Exists() {
		e, err := decodeExpr(render)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		fn, ok := e.(*ast.Func)
		if !ok {
			return nil, fmt.Errorf("%w: render must be a Function, got %s", ErrInvalidDocument, render.Get("type").String())
		}
		mod.Render = fn
	}
	return mod, nil
}

func decodeNode(r gjson.Result) (ast.Node, error) {
	switch typ := r.Get("type").String(); typ {
	case "Element":
		return decodeElement(r)
	case "ExpressionSlot":
		x, err := decodeExpr(r.Get("expression"))
		if err != nil {
			return nil, err
		}
		return &ast.ExprSlot{X: x}, nil
	case "Text":
		return &ast.Text{Value: r.Get("value").String()}, nil
	default:
		return nil, fmt.Errorf("%w: unknown node type %q", ErrInvalidDocument, typ)
	}
}

func decodeElement(r gjson.Result) (*ast.Element, error) {
	name, err := decodeExpr(r.Get("name"))
	if err != nil {
		return nil, fmt.Errorf("element name: %w", err)
	}
	el := &ast.Element{Name: name, SelfClosing: r.Get("selfClosing").Bool()}
	for _, a := range r.Get("attributes").Array() {
		attr := &ast.Attr{Name: a.Get("name").String()}
		if v := a.Get("value"); v.Exists() {
			if attr.Value, err = decodeExpr(v); err != nil {
				return nil, fmt.Errorf("attribute %q: %w", attr.Name, err)
			}
		}
		el.Attrs = append(el.Attrs, attr)
	}
	for _, c := range r.Get("children").Array() {
		child, err := decodeNode(c)
		if err != nil {
			return nil, err
		}
		el.Children = append(el.Children, child)
	}
	if list := r.Get("jsxList"); list.Exists() {
		info := &ast.ListInfo{}
		if info.Args, err = decodeExprs(list.Get("args")); err != nil {
			return nil, err
		}
		if info.LoopFnBody, err = decodeExpr(list.Get("loopFnBody")); err != nil {
			return nil, err
		}
		el.List = info
	}
	return el, nil
}

func decodeExprs(r gjson.Result) ([]ast.Expr, error) {
	var out []ast.Expr
	for _, item := range r.Array() {
		e, err := decodeExpr(item)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func decodeExpr(r gjson.Result) (ast.Expr, error) {
	if !r.Exists() || r.Type == gjson.Null {
		return nil, nil
	}
	var err error
	switch typ := r.Get("type").String(); typ {
	case "Element":
		return decodeElement(r)
	case "Identifier":
		return ast.NewIdent(r.Get("name").String()), nil
	case "ThisExpression":
		return &ast.This{}, nil
	case "StringLiteral":
		return ast.NewString(r.Get("value").String()), nil
	case "NumericLiteral":
		return &ast.Literal{Kind: ast.LitNumber, Value: r.Get("value").Raw}, nil
	case "BooleanLiteral":
		return &ast.Literal{Kind: ast.LitBool, Value: r.Get("value").Raw}, nil
	case "NullLiteral":
		return &ast.Literal{Kind: ast.LitNull, Value: "null"}, nil
	case "MemberExpression":
		m := &ast.Member{Computed: r.Get("computed").Bool()}
		if m.Object, err = decodeExpr(r.Get("object")); err != nil {
			return nil, err
		}
		if m.Property, err = decodeExpr(r.Get("property")); err != nil {
			return nil, err
		}
		return m, nil
	case "CallExpression":
		c := &ast.Call{}
		if c.Callee, err = decodeExpr(r.Get("callee")); err != nil {
			return nil, err
		}
		if c.Args, err = decodeExprs(r.Get("arguments")); err != nil {
			return nil, err
		}
		return c, nil
	case "Function":
		return decodeFunc(r)
	case "BinaryExpression", "LogicalExpression":
		b := &ast.Binary{Op: r.Get("operator").String()}
		if b.X, err = decodeExpr(r.Get("left")); err != nil {
			return nil, err
		}
		if b.Y, err = decodeExpr(r.Get("right")); err != nil {
			return nil, err
		}
		return b, nil
	case "UnaryExpression":
		u := &ast.Unary{Op: r.Get("operator").String()}
		if u.X, err = decodeExpr(r.Get("argument")); err != nil {
			return nil, err
		}
		return u, nil
	case "ConditionalExpression":
		c := &ast.Conditional{}
		if c.Test, err = decodeExpr(r.Get("test")); err != nil {
			return nil, err
		}
		if c.Then, err = decodeExpr(r.Get("consequent")); err != nil {
			return nil, err
		}
		if c.Else, err = decodeExpr(r.Get("alternate")); err != nil {
			return nil, err
		}
		return c, nil
	case "ObjectExpression":
		o := &ast.Object{}
		for _, p := range r.Get("properties").Array() {
			v, err := decodeExpr(p.Get("value"))
			if err != nil {
				return nil, err
			}
			o.Props = append(o.Props, ast.Property{Key: p.Get("key").String(), Value: v})
		}
		return o, nil
	case "ArrayExpression":
		a := &ast.Array{}
		if a.Elems, err = decodeExprs(r.Get("elements")); err != nil {
			return nil, err
		}
		return a, nil
	case "Raw":
		return &ast.Raw{Src: r.Get("source").String()}, nil
	default:
		return nil, fmt.Errorf("%w: unknown expression type %q", ErrInvalidDocument, typ)
	}
}

func decodeFunc(r gjson.Result) (*ast.Func, error) {
	fn := &ast.Func{Name: r.Get("name").String(), Arrow: r.Get("arrow").Bool()}
	var err error
	if fn.Params, err = decodeExprs(r.Get("params")); err != nil {
		return nil, err
	}
	if body := r.Get("body"); body.Exists() {
		if fn.Body, err = decodeExpr(body); err != nil {
			return nil, err
		}
	}
	for _, s := range r.Get("block").Array() {
		switch typ := s.Get("type").String(); typ {
		case "ReturnStatement":
			x, err := decodeExpr(s.Get("argument"))
			if err != nil {
				return nil, err
			}
			fn.Block = append(fn.Block, &ast.Return{X: x})
		case "ExpressionStatement":
			x, err := decodeExpr(s.Get("expression"))
			if err != nil {
				return nil, err
			}
			fn.Block = append(fn.Block, &ast.ExprStmt{X: x})
		case "RawStatement":
			fn.Block = append(fn.Block, &ast.RawStmt{Src: s.Get("source").String()})
		case "FunctionDeclaration":
			decl, err := decodeFunc(s)
			if err != nil {
				return nil, err
			}
			fn.Block = append(fn.Block, &ast.Decl{Kind: "function", Name: decl.Name, Value: decl})
		case "VariableDeclaration":
			decls, err := decodeVariables(s)
			if err != nil {
				return nil, err
			}
			fn.Block = append(fn.Block, decls...)
		default:
			return nil, fmt.Errorf("%w: unknown statement type %q", ErrInvalidDocument, typ)
		}
	}
	return fn, nil
}

// decodeVariables splits `const a = 1, b = 2` into one declaration per
// name. A destructuring pattern keeps the statement's source when the parser
// provided it.
func decodeVariables(r gjson.Result) ([]ast.Stmt, error) {
	kind := r.Get("kind").String()
	if kind == "" {
		kind = "var"
	}
	var out []ast.Stmt
	for _, d := range r.Get("declarations").Array() {
		id := d.Get("id")
		if id.Get("type").String() != "Identifier" {
			if src := r.Get("source"); src.Exists() {
				return []ast.Stmt{&ast.RawStmt{Src: src.String()}}, nil
			}
			return nil, fmt.Errorf("%w: unsupported declarator %q", ErrInvalidDocument, id.Get("type").String())
		}
		value, err := decodeExpr(d.Get("init"))
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.Decl{Kind: kind, Name: id.Get("name").String(), Value: value})
	}
	return out, nil
}
