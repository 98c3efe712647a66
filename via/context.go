package via

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-via/storefront/via/h"
)

type sessionMode uint8

const (
	sessionModeView sessionMode = iota
	sessionModeAction
)

// Context is the living bridge between Go and the browser.
//
// A Context is handed to every view render and every action call. It reads and
// writes the visit's states and signals, pushes patches over the SSE stream and
// exposes the HTTP request that triggered the call.
type Context struct {
	v         *V
	s         *session
	sessionID string
	mode      sessionMode
	r         *http.Request
	w         http.ResponseWriter
	warn      func(string, ...any)
}

// NewContext returns a detached Context in action mode with its own store.
// Useful for tests and for work that runs outside of a request.
func NewContext(v *V) *Context {
	ctx := &Context{
		v:    v,
		s:    &session{store: newStore(), patchChan: make(chan patch, 10)},
		mode: sessionModeAction,
	}
	ctx.warn = func(format string, a ...any) { v.logWarn(ctx, format, a...) }
	return ctx
}

func newRequestContext(v *V, s *session, mode sessionMode, w http.ResponseWriter, r *http.Request) *Context {
	ctx := &Context{v: v, s: s, sessionID: s.sessionID, mode: mode, r: r, w: w}
	ctx.warn = func(format string, a ...any) { v.logWarn(ctx, format, a...) }
	return ctx
}

func (ctx *Context) warnf(format string, a ...any) {
	if ctx.warn != nil {
		ctx.warn(format, a...)
	}
}

// TabID returns the id of the page visit this context belongs to.
func (ctx *Context) TabID() string {
	if ctx == nil || ctx.s == nil {
		return ""
	}
	return ctx.s.id
}

// Request returns the HTTP request behind the current render or action. It is
// nil for detached contexts.
func (ctx *Context) Request() *http.Request {
	return ctx.r
}

// Context returns the request's context, or context.Background() when detached.
func (ctx *Context) Context() context.Context {
	if ctx == nil || ctx.r == nil {
		return context.Background()
	}
	return ctx.r.Context()
}

// PathParam returns the value of a {name} wildcard of the page route.
func (ctx *Context) PathParam(name string) string {
	if ctx == nil || ctx.s == nil || ctx.s.store == nil {
		return ""
	}
	return ctx.s.store.pathParams[name]
}

// SetCookie adds a Set-Cookie header to the action's response.
func (ctx *Context) SetCookie(c *http.Cookie) {
	if ctx.w == nil || ctx.mode != sessionModeAction {
		ctx.warnf("SetCookie() called outside of an action; cookie %q dropped", c.Name)
		return
	}
	http.SetCookie(ctx.w, c)
}

// Sync re-renders the view and pushes it, along with changed signals, to the
// browser over the SSE stream.
func (ctx *Context) Sync() {
	if ctx == nil || ctx.s == nil {
		return
	}
	if ctx.mode == sessionModeView {
		ctx.warnf("Sync() called during view render; no-op")
		return
	}
	if ctx.s.c != nil && ctx.s.c.viewFn != nil {
		viewCtx := *ctx
		viewCtx.mode = sessionModeView
		var buf bytes.Buffer
		if err := ctx.s.c.viewFn(&viewCtx).Render(&buf); err != nil {
			ctx.v.logErr(ctx, "sync view failed: %v", err)
			return
		}
		ctx.send(patch{patchTypeElements, buf.String()})
	}
	ctx.SyncSignals()
}

// SyncElements pushes an html patch that merges with the DOM. The top level
// element must carry an ID already present in the view.
func (ctx *Context) SyncElements(elem h.H) {
	if elem == nil {
		ctx.v.logErr(ctx, "sync element failed: nil element")
		return
	}
	var buf bytes.Buffer
	if err := elem.Render(&buf); err != nil {
		ctx.v.logErr(ctx, "sync element failed: %v", err)
		return
	}
	ctx.send(patch{patchTypeElements, buf.String()})
}

// SyncSignals pushes the signals changed since the last sync.
func (ctx *Context) SyncSignals() {
	if ctx == nil || ctx.s == nil || len(ctx.s.store.changedSignals) == 0 {
		return
	}
	b, err := json.Marshal(ctx.s.store.changedSignals)
	if err != nil {
		ctx.v.logErr(ctx, "sync signals failed: %v", err)
		return
	}
	ctx.s.store.changedSignals = make(map[string]any)
	ctx.send(patch{patchTypeSignals, string(b)})
}

// ExecScript runs s in the browser.
func (ctx *Context) ExecScript(s string) {
	if s == "" {
		return
	}
	ctx.send(patch{patchTypeScript, s})
}

// Replace navigates the browser to path, replacing the current history entry
// so the back button does not return to this page.
func (ctx *Context) Replace(path string) {
	target, _ := json.Marshal(path)
	ctx.ExecScript("window.location.replace(" + string(target) + ")")
}

func (ctx *Context) send(p patch) {
	if ctx.s == nil || ctx.s.patchChan == nil {
		return
	}
	select {
	case ctx.s.patchChan <- p:
	default:
		ctx.v.logWarn(ctx, "patch dropped: stream buffer full")
	}
}

func (ctx *Context) Debugf(format string, a ...any) { ctx.v.logDebug(ctx, format, a...) }
func (ctx *Context) Infof(format string, a ...any)  { ctx.v.logInfo(ctx, format, a...) }
func (ctx *Context) Warnf(format string, a ...any)  { ctx.v.logWarn(ctx, format, a...) }
func (ctx *Context) Errorf(format string, a ...any) { ctx.v.logErr(ctx, format, a...) }
