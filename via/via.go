// Package via is the server-driven UI runtime behind the storefront pages.
// Pages are composed in Go, rendered as HTML and kept live over a Datastar
// SSE stream.
package via

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"regexp"
	"slices"
	"time"

	"github.com/go-via/storefront/via/h"
	"github.com/starfederation/datastar-go/datastar"
)

// DatastarURL is the Datastar client bundle linked into every page.
const DatastarURL = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// ctxSignal carries the page visit id with every Datastar request.
const ctxSignal = "via-c"

// V is the root application.
// It manages page routing, visits, browser sessions and SSE connections for live updates.
type V struct {
	cfg                  Options
	mux                  *http.ServeMux
	middlewares          []Middleware
	sessions             *sessionRegistry
	documentHeadIncludes []h.H
	documentFootIncludes []h.H
	done                 chan struct{}
	janitor              *Routine
}

// New creates a new Via application with default configuration.
func New() *V {
	v := &V{
		mux:      http.NewServeMux(),
		sessions: newSessionRegistry(),
		done:     make(chan struct{}),
		cfg: Options{
			ServerAddress:       ":3000",
			LogLvl:              LogLevelInfo,
			DocumentTitle:       "⚡ Via",
			SessionTTL:          30 * 60,
			SessionCookieName:   "via_sid",
			SessionCookieMaxAge: 30 * 24 * 60 * 60,
		},
	}
	v.janitor = newRoutine(v.done)
	v.documentHeadIncludes = []h.H{h.Script(h.Type("module"), h.Src(DatastarURL))}

	v.mux.HandleFunc("GET /_sse", v.handleSSE)
	v.mux.HandleFunc("GET /_action/{id}", v.handleAction)
	v.mux.HandleFunc("POST /_session/close", v.handleSessionClose)
	return v
}

// Config overrides the default configuration with the given configuration options.
func (v *V) Config(cfg Options) *V {
	if cfg.LogLvl != undefined {
		v.cfg.LogLvl = cfg.LogLvl
	}
	if cfg.DocumentTitle != "" {
		v.cfg.DocumentTitle = cfg.DocumentTitle
	}
	if cfg.DocumentLanguage != "" {
		v.cfg.DocumentLanguage = cfg.DocumentLanguage
	}
	if cfg.DevMode != v.cfg.DevMode {
		v.cfg.DevMode = cfg.DevMode
	}
	if cfg.ServerAddress != "" {
		v.cfg.ServerAddress = cfg.ServerAddress
	}
	if cfg.SessionTTL != 0 {
		v.cfg.SessionTTL = cfg.SessionTTL
	}
	if cfg.SessionCookieName != "" {
		v.cfg.SessionCookieName = cfg.SessionCookieName
	}
	if cfg.SessionCookieMaxAge > 0 {
		v.cfg.SessionCookieMaxAge = cfg.SessionCookieMaxAge
	}
	for _, plugin := range cfg.Plugins {
		if plugin != nil {
			plugin.Register(v)
		}
	}
	return v
}

// AppendToHead appends the given h.H nodes to the head of the base HTML document.
// Useful for including css stylesheets and JS scripts.
func (v *V) AppendToHead(elements ...h.H) *V {
	for _, el := range elements {
		if el != nil {
			v.documentHeadIncludes = append(v.documentHeadIncludes, el)
		}
	}
	return v
}

// AppendToFoot appends the given h.H nodes to the end of the base HTML document body.
// Useful for including JS scripts.
func (v *V) AppendToFoot(elements ...h.H) *V {
	for _, el := range elements {
		if el != nil {
			v.documentFootIncludes = append(v.documentFootIncludes, el)
		}
	}
	return v
}

// Use adds global middleware. It wraps every route, including the SSE and
// action endpoints.
func (v *V) Use(middleware ...Middleware) {
	v.middlewares = append(v.middlewares, middleware...)
}

// Page registers a route and its composition.
//
// Example:
//
//	v.Page("/", func(c *via.Composition) {
//		c.View(func(ctx *via.Context) h.H {
//			return h.H1(h.Text("Hello, Via!"))
//		})
//	})
func (v *V) Page(route string, fn func(c *Composition)) {
	(&Group{v: v}).Page(route, fn)
}

// HandleFunc registers the HTTP handler function for a given pattern. The handler function panics if
// in conflict with another registered handler with the same pattern.
func (v *V) HandleFunc(pattern string, f http.HandlerFunc) {
	v.mux.HandleFunc(pattern, f)
}

// HTTPServeMux returns the app's handler with global middleware applied.
func (v *V) HTTPServeMux() http.Handler {
	var handler http.Handler = v.mux
	for i := len(v.middlewares) - 1; i >= 0; i-- {
		handler = v.middlewares[i](handler)
	}
	return handler
}

// ListenAndServe serves the app until ctx is done, then shuts the server down.
func (v *V) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              v.cfg.ServerAddress,
		Handler:           v.HTTPServeMux(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	if v.cfg.SessionTTL > 0 {
		v.janitor.OnInterval(time.Duration(v.cfg.SessionTTL)*time.Second/2, v.cleanupStaleSessions)
		v.janitor.Start()
	}

	errCh := make(chan error, 1)
	go func() {
		v.logInfo(nil, "via started on address: %s", v.cfg.ServerAddress)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		v.dispose()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	v.dispose()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// Start starts the Via HTTP server on the configured address.
func (v *V) Start() {
	if err := v.ListenAndServe(context.Background()); err != nil {
		log.Fatalf("[fatal] %v", err)
	}
}

// NewRoutine returns a stopped Routine that ends when the app shuts down.
func (v *V) NewRoutine() *Routine {
	return newRoutine(v.done)
}

func (v *V) dispose() {
	select {
	case <-v.done:
	default:
		close(v.done)
	}
}

var routeParamRe = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)(\.\.\.)?\}`)

func (v *V) newPageHTTPHandler(c *Composition) http.Handler {
	params := routeParamRe.FindAllStringSubmatch(c.route, -1)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := v.browserSession(w, r)
		sess := v.newSession(c, sessionID)
		for _, p := range params {
			sess.store.pathParams[p[1]] = r.PathValue(p[1])
		}
		ctx := newRequestContext(v, sess, sessionModeView, w, r)
		v.logDebug(ctx, "GET %s", c.route)

		signals := map[string]any{ctxSignal: sess.id}
		for _, sig := range c.signals {
			signals[sig.id] = sig.initial
		}
		signalsJSON, err := json.Marshal(signals)
		if err != nil {
			v.logErr(ctx, "failed to encode page signals: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		head := slices.Clone(v.documentHeadIncludes)
		head = append(head,
			h.Meta(h.Data("signals", string(signalsJSON))),
			h.Meta(h.Data("init", "@get('/_sse')")),
		)
		body := append([]h.H{c.viewFn(ctx)}, v.documentFootIncludes...)
		doc := h.HTML5(h.HTML5Props{
			Title:    v.cfg.DocumentTitle,
			Language: v.cfg.DocumentLanguage,
			Head:     head,
			Body:     body,
		})
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := doc.Render(w); err != nil {
			v.logErr(ctx, "failed to render page: %v", err)
		}
	})
}

func readCtxSignals(r *http.Request) (string, map[string]any, error) {
	var sigs map[string]any
	if err := datastar.ReadSignals(r, &sigs); err != nil {
		return "", nil, err
	}
	id, _ := sigs[ctxSignal].(string)
	return id, sigs, nil
}

func (v *V) handleSSE(w http.ResponseWriter, r *http.Request) {
	id, _, err := readCtxSignals(r)
	if err != nil {
		http.Error(w, "bad signals", http.StatusBadRequest)
		return
	}
	sess, err := v.getSession(id)
	if err != nil {
		v.logErr(nil, "sse connect failed: %v", err)
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	ctx := newRequestContext(v, sess, sessionModeAction, nil, r)
	sse := datastar.NewSSE(w, r)
	v.logDebug(ctx, "SSE connection established")
	defer v.logDebug(ctx, "SSE connection closed")

	for {
		select {
		case <-sse.Context().Done():
			return
		case <-v.done:
			return
		case p := <-sess.patchChan:
			sess.touch()
			if err := sendPatch(sse, p); err != nil {
				v.logWarn(ctx, "failed to send patch: %v", err)
				return
			}
			if v.cfg.DevMode {
				v.logDebug(ctx, "patch sent type=%d bytes=%d", p.typ, len(p.content))
			}
		}
	}
}

func sendPatch(sse *datastar.ServerSentEventGenerator, p patch) error {
	switch p.typ {
	case patchTypeElements:
		return sse.PatchElements(p.content)
	case patchTypeSignals:
		return sse.PatchSignals([]byte(p.content))
	case patchTypeScript:
		return sse.ExecuteScript(p.content)
	}
	return nil
}

func (v *V) handleAction(w http.ResponseWriter, r *http.Request) {
	actionID := r.PathValue("id")
	if !isValidHexID(actionID) {
		http.Error(w, "invalid action", http.StatusBadRequest)
		return
	}
	id, sigs, err := readCtxSignals(r)
	if err != nil {
		http.Error(w, "bad signals", http.StatusBadRequest)
		return
	}
	sess, err := v.getSession(id)
	if err != nil {
		v.logErr(nil, "action '%s' failed: %v", actionID, err)
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	actionFn, ok := sess.c.actions[actionID]
	if !ok {
		v.logDebug(nil, "action '%s' not found", actionID)
		http.Error(w, "action not found", http.StatusNotFound)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch()
	injectSignals(sess.store, sigs)
	ctx := newRequestContext(v, sess, sessionModeAction, w, r)
	v.logDebug(ctx, "action '%s' signals=%v", actionID, sigs)

	defer func() {
		if rec := recover(); rec != nil {
			v.logErr(ctx, "action '%s' failed: %v", actionID, rec)
			w.WriteHeader(http.StatusInternalServerError)
		}
	}()
	actionFn(ctx)
	w.WriteHeader(http.StatusNoContent)
}

// handleSessionClose is the target of the unload beacon; the body is the visit id.
func (v *V) handleSessionClose(w http.ResponseWriter, r *http.Request) {
	b, err := io.ReadAll(io.LimitReader(r.Body, 64))
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	id := string(b)
	if v.closeSession(id) {
		v.logDebug(nil, "session '%s' closed", id)
	}
	w.WriteHeader(http.StatusNoContent)
}

func genRandID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func genSessionID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func isValidHexID(id string) bool {
	if id == "" || len(id) > 64 {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}
