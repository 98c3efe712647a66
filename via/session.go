package via

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

type patchType uint8

const (
	patchTypeElements patchType = iota
	patchTypeSignals
	patchTypeScript
)

type patch struct {
	typ     patchType
	content string
}

// store holds the per-visit values of a composition's states and signals.
type store struct {
	state          map[string]any
	pathParams     map[string]string
	signals        map[string]any
	changedSignals map[string]any
}

func newStore() *store {
	return &store{
		state:          make(map[string]any),
		pathParams:     make(map[string]string),
		signals:        make(map[string]any),
		changedSignals: make(map[string]any),
	}
}

func injectSignals(st *store, sigs map[string]any) {
	if st == nil || sigs == nil {
		return
	}
	for k, v := range sigs {
		if k == ctxSignal {
			continue
		}
		st.signals[k] = v
	}
}

// session is one page visit (one browser tab). sessionID links it to the
// browser session cookie shared by all tabs of the same browser.
type session struct {
	id         string
	sessionID  string
	c          *Composition
	store      *store
	patchChan  chan patch
	lastAccess atomic.Int64
	mu         sync.Mutex
}

func (s *session) touch() {
	s.lastAccess.Store(time.Now().Unix())
}

type sessionRegistry struct {
	registryMu sync.RWMutex
	registry   map[string]*session

	stateMu    sync.RWMutex
	state      map[string]map[string]any
	lastAccess map[string]int64

	invalidatedMu sync.Mutex
	invalidated   map[string]int64
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{
		registry:    make(map[string]*session),
		state:       make(map[string]map[string]any),
		lastAccess:  make(map[string]int64),
		invalidated: make(map[string]int64),
	}
}

func (v *V) newSession(c *Composition, sessionID string) *session {
	sess := &session{
		id:        genRandID(),
		sessionID: sessionID,
		c:         c,
		store:     newStore(),
		patchChan: make(chan patch, 100),
	}
	sess.touch()
	v.sessions.registryMu.Lock()
	v.sessions.registry[sess.id] = sess
	v.sessions.registryMu.Unlock()
	return sess
}

func (v *V) getSession(id string) (*session, error) {
	v.sessions.registryMu.RLock()
	defer v.sessions.registryMu.RUnlock()
	if sess, ok := v.sessions.registry[id]; ok {
		return sess, nil
	}
	return nil, fmt.Errorf("session '%s' not found", id)
}

func (v *V) closeSession(id string) bool {
	v.sessions.registryMu.Lock()
	defer v.sessions.registryMu.Unlock()
	if _, ok := v.sessions.registry[id]; !ok {
		return false
	}
	delete(v.sessions.registry, id)
	return true
}

func (v *V) isInvalidated(sessionID string) bool {
	v.sessions.invalidatedMu.Lock()
	defer v.sessions.invalidatedMu.Unlock()
	_, ok := v.sessions.invalidated[sessionID]
	return ok
}

// browserSession returns the browser session id carried by the request cookie,
// issuing a fresh one when it is missing, malformed or invalidated.
func (v *V) browserSession(w http.ResponseWriter, r *http.Request) string {
	if ck, err := r.Cookie(v.cfg.SessionCookieName); err == nil {
		if isValidHexID(ck.Value) && !v.isInvalidated(ck.Value) {
			v.touchBrowserSession(ck.Value)
			return ck.Value
		}
	}
	id := genSessionID()
	http.SetCookie(w, &http.Cookie{
		Name:     v.cfg.SessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   v.cfg.SessionCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	v.touchBrowserSession(id)
	return id
}

func (v *V) touchBrowserSession(id string) {
	v.sessions.stateMu.Lock()
	v.sessions.lastAccess[id] = time.Now().Unix()
	v.sessions.stateMu.Unlock()
}

// cleanupStaleSessions removes visits and browser session data that haven't
// been accessed within SessionTTL.
func (v *V) cleanupStaleSessions() {
	if v.cfg.SessionTTL <= 0 {
		return
	}
	now := time.Now().Unix()
	cutoff := now - int64(v.cfg.SessionTTL)

	v.sessions.registryMu.Lock()
	for id, sess := range v.sessions.registry {
		if sess.lastAccess.Load() < cutoff {
			delete(v.sessions.registry, id)
		}
	}
	v.sessions.registryMu.Unlock()

	v.sessions.stateMu.Lock()
	for id, lastAccess := range v.sessions.lastAccess {
		if lastAccess < cutoff {
			delete(v.sessions.state, id)
			delete(v.sessions.lastAccess, id)
		}
	}
	v.sessions.stateMu.Unlock()

	// invalidation is tied to the cookie, so it lives as long as the cookie could
	cutoffInvalidated := now - int64(v.cfg.SessionCookieMaxAge)
	v.sessions.invalidatedMu.Lock()
	for id, invalidatedAt := range v.sessions.invalidated {
		if invalidatedAt < cutoffInvalidated {
			delete(v.sessions.invalidated, id)
		}
	}
	v.sessions.invalidatedMu.Unlock()
}
