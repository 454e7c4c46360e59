// Package builder provides a fluent API for constructing vdom trees.
//
//	builder.Ul().Class("track").Children(
//		builder.Li().Text("one").Build(),
//	).Build()
package builder

import (
	"strings"

	"github.com/recera/slider/pkg/vango/vdom"
)

// ElementBuilder accumulates props and children for a single element
type ElementBuilder struct {
	tag      string
	props    vdom.Props
	children []*vdom.VNode
}

// El starts a builder for an arbitrary tag
func El(tag string) *ElementBuilder {
	return &ElementBuilder{
		tag:   tag,
		props: make(vdom.Props),
	}
}

// Html creates an <html> builder
func Html() *ElementBuilder { return El("html") }

// Head creates a <head> builder
func Head() *ElementBuilder { return El("head") }

// Body creates a <body> builder
func Body() *ElementBuilder { return El("body") }

// Title creates a <title> builder
func Title() *ElementBuilder { return El("title") }

// Meta creates a <meta> builder
func Meta() *ElementBuilder { return El("meta") }

// StyleTag creates a <style> builder
func StyleTag() *ElementBuilder { return El("style") }

// Script creates a <script> builder
func Script() *ElementBuilder { return El("script") }

// Div creates a <div> builder
func Div() *ElementBuilder { return El("div") }

// Span creates a <span> builder
func Span() *ElementBuilder { return El("span") }

// Ul creates a <ul> builder
func Ul() *ElementBuilder { return El("ul") }

// Li creates a <li> builder
func Li() *ElementBuilder { return El("li") }

// Button creates a <button> builder
func Button() *ElementBuilder { return El("button") }

// Class appends to the class attribute. Empty names are skipped.
func (b *ElementBuilder) Class(names ...string) *ElementBuilder {
	var parts []string
	if existing, ok := b.props["class"].(string); ok && existing != "" {
		parts = append(parts, existing)
	}
	for _, n := range names {
		if n != "" {
			parts = append(parts, n)
		}
	}
	if len(parts) > 0 {
		b.props["class"] = strings.Join(parts, " ")
	}
	return b
}

// ClassIf appends name to the class attribute when cond holds
func (b *ElementBuilder) ClassIf(cond bool, name string) *ElementBuilder {
	if cond {
		return b.Class(name)
	}
	return b
}

// ID sets the id attribute
func (b *ElementBuilder) ID(id string) *ElementBuilder {
	b.props["id"] = id
	return b
}

// Style sets an inline style declaration. Declarations are kept in call
// order so the rendered attribute is stable across renders.
func (b *ElementBuilder) Style(property, value string) *ElementBuilder {
	decl := property + ": " + value
	if existing, ok := b.props["style"].(string); ok && existing != "" {
		b.props["style"] = existing + "; " + decl
	} else {
		b.props["style"] = decl
	}
	return b
}

// Key sets the reconciliation key
func (b *ElementBuilder) Key(key string) *ElementBuilder {
	b.props["key"] = key
	return b
}

// Text appends a text child
func (b *ElementBuilder) Text(text string) *ElementBuilder {
	b.children = append(b.children, vdom.NewText(text))
	return b
}

// Children appends child nodes; nil children are ignored
func (b *ElementBuilder) Children(children ...*vdom.VNode) *ElementBuilder {
	b.children = append(b.children, children...)
	return b
}

// OnClick sets the onclick handler
func (b *ElementBuilder) OnClick(handler func()) *ElementBuilder {
	b.props["onclick"] = handler
	return b
}

// Build finalizes the element
func (b *ElementBuilder) Build() *vdom.VNode {
	return vdom.NewElement(b.tag, b.props, b.children...)
}
