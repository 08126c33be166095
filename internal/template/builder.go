package template

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/3-lines-studio/jsx2mp/internal/ast"
	"github.com/3-lines-studio/jsx2mp/internal/core"
)

const (
	RootTag = "template"
	TextTag = "text"
)

var ErrNoRender = errors.New("component has no render function")

var eventAttr = regexp.MustCompile(`^on[A-Z]`)

// Result is the output of Build: the root template and the render function,
// whose body has been cleared.
type Result struct {
	Template *ast.Element
	Render   *ast.Func
}

// Builder generates placeholder names for one compiled file. It is not safe
// for concurrent use.
type Builder struct {
	textTags map[string]bool
	next     int
}

func NewBuilder() *Builder {
	return &Builder{textTags: map[string]bool{TextTag: true, "Text": true}}
}

func (b *Builder) Build(mod *ast.Module) (Result, error) {
	if mod == nil || mod.Render == nil {
		return Result{}, ErrNoRender
	}
	root := ast.NewElement(RootTag)
	root.SetAttr("pagePath", "true")

	switch out := mod.Render.ReturnedExpr().(type) {
	case nil:
	case *ast.Element:
		root.AppendChild(out)
	default:
		root.AppendChild(&ast.ExprSlot{X: out})
	}
	b.Classify(root)

	mod.RenderLocals = mod.Render.Locals()
	mod.Render.Body = nil
	mod.Render.Block = nil
	return Result{Template: root, Render: mod.Render}, nil
}

// Classify promotes `{<Foo />}` children to elements and wraps runs of text
// and expression children in a text element, unless the parent already is one.
func (b *Builder) Classify(el *ast.Element) {
	ast.WalkElements(el, func(cur *ast.Element, _ []*ast.Element) bool {
		cur.PromoteElementSlots()
		if !b.textTags[cur.TagName()] {
			cur.Children = b.wrapRuns(cur.Children)
		}
		return true
	})
}

func (b *Builder) wrapRuns(children []ast.Node) []ast.Node {
	var out, run []ast.Node
	flush := func() {
		if len(run) == 0 {
			return
		}
		if blank(run) {
			out = append(out, run...)
		} else {
			text := ast.NewElement(TextTag)
			for _, n := range run {
				text.AppendChild(n)
			}
			out = append(out, text)
		}
		run = nil
	}
	for _, c := range children {
		if inline(c) {
			run = append(run, c)
			continue
		}
		flush()
		out = append(out, c)
	}
	flush()
	return out
}

func inline(n ast.Node) bool {
	switch t := n.(type) {
	case *ast.Text:
		return true
	case *ast.ExprSlot:
		if len(ast.ExprElements(t.X)) > 0 {
			return false
		}
		return !ast.IsChildrenAccessor(t.X)
	}
	return false
}

func blank(run []ast.Node) bool {
	for _, n := range run {
		t, ok := n.(*ast.Text)
		if !ok || strings.TrimSpace(t.Value) != "" {
			return false
		}
	}
	return true
}

// Bind replaces attribute and child expressions under el with `{{key}}`
// placeholders and returns the expressions by key. Generated keys are tagged
// with prefix. Event handler attributes are left to the event binding layer.
func (b *Builder) Bind(el *ast.Element, prefix string) core.DynamicValues {
	dv := core.DynamicValues{}
	ast.WalkElements(el, func(cur *ast.Element, _ []*ast.Element) bool {
		for _, a := range cur.Attrs {
			if a.Value == nil || eventAttr.MatchString(a.Name) {
				continue
			}
			if lit, ok := a.Value.(*ast.Literal); ok && lit.Kind == ast.LitString {
				continue
			}
			a.Value = ast.NewString(b.placeholder(a.Value, prefix, dv))
		}
		for i, c := range cur.Children {
			slot, ok := c.(*ast.ExprSlot)
			if !ok || ast.IsChildrenAccessor(slot.X) {
				continue
			}
			if child, ok := slot.X.(*ast.Element); ok {
				cur.Children[i] = child
				continue
			}
			cur.Children[i] = &ast.Text{Value: b.placeholder(slot.X, prefix, dv)}
		}
		return true
	})
	return dv
}

func (b *Builder) placeholder(e ast.Expr, prefix string, dv core.DynamicValues) string {
	if lit, ok := e.(*ast.Literal); ok && lit.Kind != ast.LitString {
		return "{{" + lit.Value + "}}"
	}
	var key string
	if ast.IsPath(e) {
		key = ast.Source(e)
	} else {
		key = b.name(prefix)
	}
	dv[key] = e
	return "{{" + key + "}}"
}

func (b *Builder) name(prefix string) string {
	n := b.next
	b.next++
	if prefix == "" {
		return fmt.Sprintf("_d%d", n)
	}
	return fmt.Sprintf("_%s_d%d", prefix, n)
}
