package via

import "time"

// SessionDataHandle provides access to browser-session-scoped data.
// The data type T is defined by the application.
type SessionDataHandle[T any] struct {
	id string
}

// NewSessionDataHandle creates a new session data handle.
// Session data persists across tabs for the same browser session.
func NewSessionDataHandle[T any]() *SessionDataHandle[T] {
	return &SessionDataHandle[T]{
		id: genRandID(),
	}
}

func (sd *SessionDataHandle[T]) usable(ctx *Context) bool {
	return ctx != nil && ctx.v != nil && ctx.sessionID != ""
}

// Get returns the session data and whether data exists.
// Returns (zero value, false) if no data has been set.
func (sd *SessionDataHandle[T]) Get(ctx *Context) (T, bool) {
	var zero T
	if !sd.usable(ctx) {
		return zero, false
	}

	ctx.v.sessions.stateMu.RLock()
	defer ctx.v.sessions.stateMu.RUnlock()

	if sessionData, ok := ctx.v.sessions.state[ctx.sessionID]; ok {
		if val, ok := sessionData[sd.id]; ok {
			return val.(T), true
		}
	}
	return zero, false
}

// Exists returns true if data has been set for this session.
func (sd *SessionDataHandle[T]) Exists(ctx *Context) bool {
	_, ok := sd.Get(ctx)
	return ok
}

// Clear removes the data and invalidates the browser session, so the next page
// load is issued a fresh session cookie.
func (sd *SessionDataHandle[T]) Clear(ctx *Context) {
	if !sd.usable(ctx) {
		return
	}

	ctx.v.sessions.stateMu.Lock()
	if sessionData, ok := ctx.v.sessions.state[ctx.sessionID]; ok {
		delete(sessionData, sd.id)
	}
	ctx.v.sessions.stateMu.Unlock()

	ctx.v.sessions.invalidatedMu.Lock()
	ctx.v.sessions.invalidated[ctx.sessionID] = time.Now().Unix()
	ctx.v.sessions.invalidatedMu.Unlock()
}

// Set stores data for the session.
func (sd *SessionDataHandle[T]) Set(ctx *Context, data T) {
	if !sd.usable(ctx) {
		return
	}

	ctx.v.sessions.stateMu.Lock()
	if ctx.v.sessions.state[ctx.sessionID] == nil {
		ctx.v.sessions.state[ctx.sessionID] = make(map[string]any)
	}
	ctx.v.sessions.state[ctx.sessionID][sd.id] = data
	ctx.v.sessions.lastAccess[ctx.sessionID] = time.Now().Unix()
	ctx.v.sessions.stateMu.Unlock()
}
