package session

import (
	"context"
	"fmt"
	"net/http"
)

// CookieSetter is anything that can attach a Set-Cookie header to the current
// response, e.g. a via action context.
type CookieSetter interface {
	SetCookie(c *http.Cookie)
}

// ResponseCookies adapts an http.ResponseWriter to CookieSetter.
type ResponseCookies struct {
	W http.ResponseWriter
}

func (rc ResponseCookies) SetCookie(c *http.Cookie) {
	http.SetCookie(rc.W, c)
}

// Manager reads the session marker cookie and hands it to a Validator.
type Manager struct {
	validator  Validator
	cookieName string
}

func NewManager(v Validator, cookieName string) *Manager {
	return &Manager{validator: v, cookieName: cookieName}
}

// CookieName is the name of the marker cookie.
func (m *Manager) CookieName() string {
	return m.cookieName
}

func (m *Manager) token(r *http.Request) (string, error) {
	if r == nil {
		return "", ErrNoSession
	}
	c, err := r.Cookie(m.cookieName)
	if err != nil || c.Value == "" {
		return "", ErrNoSession
	}
	return c.Value, nil
}

// Check returns the user behind r, or why there is none.
func (m *Manager) Check(ctx context.Context, r *http.Request) (User, error) {
	token, err := m.token(r)
	if err != nil {
		return User{}, err
	}
	return m.validator.Validate(ctx, token)
}

// Resolve turns the outcome of Check into a Status. Any failure counts as no
// session.
func (m *Manager) Resolve(ctx context.Context, r *http.Request) Status {
	u, err := m.Check(ctx, r)
	if err != nil {
		return Unauthenticated()
	}
	return Authenticated(u)
}

// Logout expires the marker cookie and, when the validator supports it,
// retires the token server-side. The cookie is expired even if termination
// fails.
func (m *Manager) Logout(ctx context.Context, r *http.Request, cs CookieSetter) error {
	cs.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	t, ok := m.validator.(Terminator)
	if !ok {
		return nil
	}
	token, err := m.token(r)
	if err != nil {
		return nil
	}
	if err := t.Terminate(ctx, token); err != nil {
		return fmt.Errorf("terminate session: %w", err)
	}
	return nil
}
