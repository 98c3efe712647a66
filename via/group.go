package via

import (
	"net/http"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Group represents a route group with a common prefix and middleware.
type Group struct {
	v           *V
	prefix      string
	middlewares []Middleware
}

// Group creates a new route group with the given prefix.
// The callback receives the Group for registering routes.
func (v *V) Group(prefix string, fn func(*Group)) {
	fn(&Group{v: v, prefix: prefix})
}

// Use adds middleware to this group only.
func (g *Group) Use(middleware ...Middleware) {
	g.middlewares = append(g.middlewares, middleware...)
}

// Group creates a nested route group within this group.
func (g *Group) Group(prefix string, fn func(*Group)) {
	fn(&Group{
		v:           g.v,
		prefix:      g.prefix + prefix,
		middlewares: append([]Middleware{}, g.middlewares...),
	})
}

// Page registers a page route within the group.
func (g *Group) Page(route string, fn func(*Composition)) {
	fullRoute := g.prefix + route
	c := newComposition(fullRoute, false)
	fn(c)
	if c.viewFn == nil {
		panic("page " + fullRoute + " has no view")
	}

	// first registered middleware runs outermost
	var handler http.Handler = g.v.newPageHTTPHandler(c)
	for i := len(g.middlewares) - 1; i >= 0; i-- {
		handler = g.middlewares[i](handler)
	}
	g.v.mux.Handle("GET "+fullRoute, handler)
}
