package via

import (
	"testing"

	"github.com/go-via/storefront/via/h"
	"github.com/stretchr/testify/assert"
)

func TestComposition_View_PanicsOnNil(t *testing.T) {
	c := newComposition("/", false)
	assert.Panics(t, func() { c.View(nil) }, "View(nil) should panic")
}

func TestComposition_View_WrapsInMain(t *testing.T) {
	c := newComposition("/test", false)
	c.View(func(ctx *Context) h.H { return h.Div(h.Text("content")) })

	html := renderToString(c.viewFn(NewContext(nil)))
	assert.Equal(t, `<main id="`+c.ID()+`"><div>content</div></main>`, html)
}

func TestComposition_View_ComponentSkipsMain(t *testing.T) {
	c := newComposition("", true)
	c.View(func(ctx *Context) h.H { return h.Div(h.Text("component content")) })

	assert.Equal(t, "<div>component content</div>", renderToString(c.viewFn(NewContext(nil))))
}

func TestComposition_StateAndSignalAfterViewPanic(t *testing.T) {
	c := newComposition("/", false)
	c.View(func(ctx *Context) h.H { return h.Div() })

	assert.Panics(t, func() { State(c, 42) }, "State() after View() should panic")
	assert.Panics(t, func() { Signal(c, 42) }, "Signal() after View() should panic")
}

func TestComposition_ComponentMergesIntoParent(t *testing.T) {
	parent := newComposition("/", false)
	var childAction *ActionHandle
	var childSignal *SignalHandle[string]

	comp := parent.Component(func(c *Composition) {
		childSignal = Signal(c, "x")
		State(c, 1)
		childAction = Action(c, func(ctx *Context) {})
		c.View(func(ctx *Context) h.H { return h.Span(h.Text("child")) })
	})

	assert.Contains(t, parent.actions, childAction.ID())
	assert.Len(t, parent.signals, 1)
	assert.Equal(t, childSignal.ID(), parent.signals[0].id)
	assert.Len(t, parent.states, 1)

	html := renderToString(comp.Mount(NewContext(nil)))
	assert.Equal(t, `<div id="`+comp.ID()+`"><span>child</span></div>`, html)
}

func TestComposition_ComponentWithoutViewPanics(t *testing.T) {
	parent := newComposition("/", false)
	assert.Panics(t, func() {
		parent.Component(func(c *Composition) {})
	})
}
