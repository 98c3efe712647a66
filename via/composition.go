package via

import (
	"maps"

	"github.com/go-via/storefront/via/h"
)

// Composition describes a page (or component): its view, actions, signals and
// state. It is built once at registration; per-visit values live in the session store.
type Composition struct {
	id          string
	route       string
	viewFn      func(*Context) h.H
	actions     map[string]func(*Context)
	signals     []signalRegistration
	states      []stateRegistration
	isComponent bool
}

type signalRegistration struct {
	id      string
	initial any
}

type stateRegistration struct {
	id      string
	initial any
}

func newComposition(route string, isComponent bool) *Composition {
	return &Composition{
		id:          genRandID(),
		route:       route,
		actions:     make(map[string]func(*Context)),
		isComponent: isComponent,
	}
}

func (c *Composition) ID() string {
	return c.id
}

// View sets the view fn. Pages are wrapped in a <main> carrying the composition
// ID so element patches morph onto the rendered document.
func (c *Composition) View(viewFn func(ctx *Context) h.H) {
	if viewFn == nil {
		panic("composition contains no view")
	}
	if c.isComponent {
		c.viewFn = viewFn
		return
	}
	c.viewFn = func(ctx *Context) h.H {
		return h.Main(h.ID(c.id), viewFn(ctx))
	}
}

func (c *Composition) mustBeOpen(what string) {
	if c.viewFn != nil {
		panic(what + " must be declared before View()")
	}
}

// ComposeFn is the compose function for a component (same shape as a page's).
type ComposeFn func(c *Composition)

// CompHandle is a handle to a composed component.
type CompHandle struct {
	id     string
	viewFn func(*Context) h.H
}

// ID returns the DOM id the component is mounted under.
func (ch *CompHandle) ID() string {
	return ch.id
}

// Mount renders the component into the parent view, wrapped in a div with its ID.
func (ch *CompHandle) Mount(ctx *Context) h.H {
	return h.Div(h.ID(ch.id), ch.viewFn(ctx))
}

// Component creates a child component from a compose function. The child's
// actions, signals and states are owned by the parent page.
func (c *Composition) Component(composeFn ComposeFn) *CompHandle {
	child := newComposition(c.route, true)
	composeFn(child)
	if child.viewFn == nil {
		panic("component has no view")
	}
	maps.Copy(c.actions, child.actions)
	c.signals = append(c.signals, child.signals...)
	c.states = append(c.states, child.states...)
	return &CompHandle{id: child.id, viewFn: child.viewFn}
}
