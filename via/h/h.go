// Package h provides a typed HTML builder for via views.
//
// It wraps maragu.dev/gomponents so view code depends on a single package and
// every element and attribute renders through the same Node interface.
package h

import (
	"io"

	g "maragu.dev/gomponents"
	gc "maragu.dev/gomponents/components"
)

// H is an HTML node or attribute that renders itself.
type H interface {
	Render(w io.Writer) error
}

// Text is an escaped text node.
func Text(s string) H {
	return g.Text(s)
}

// Textf is an escaped, formatted text node.
func Textf(format string, a ...any) H {
	return g.Textf(format, a...)
}

// Raw renders s without escaping.
func Raw(s string) H {
	return g.Raw(s)
}

// Attr renders an arbitrary attribute.
func Attr(name string, value ...string) H {
	return g.Attr(name, value...)
}

// If returns n when cond holds, nil otherwise.
func If(cond bool, n H) H {
	if !cond || n == nil {
		return nil
	}
	return n
}

// Group renders the given nodes one after another without a wrapping element.
func Group(nodes ...H) H {
	return g.Group(retype(compact(nodes)))
}

// HTML5Props configures a full HTML5 document.
type HTML5Props struct {
	Title    string
	Language string
	Head     []H
	Body     []H
}

// HTML5 renders a complete document with doctype.
func HTML5(p HTML5Props) H {
	return gc.HTML5(gc.HTML5Props{
		Title:    p.Title,
		Language: p.Language,
		Head:     retype(compact(p.Head)),
		Body:     retype(compact(p.Body)),
	})
}
