package account

import "github.com/go-via/storefront/internal/session"

// Router performs client navigation that replaces the current history entry.
type Router interface {
	Replace(path string)
}

// Phase is what the page renders for a visit.
type Phase uint8

const (
	PhaseLoading Phase = iota
	PhaseRedirecting
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseRedirecting:
		return "redirecting"
	case PhaseReady:
		return "ready"
	}
	return "unknown"
}

// Visit is the session gate of one page visit.
type Visit struct {
	Status     session.Status
	Redirected bool
}

// NewVisit starts a visit whose session is still resolving.
func NewVisit() Visit {
	return Visit{Status: session.Resolving()}
}

func (v Visit) Phase() Phase {
	switch {
	case v.Status.Loading:
		return PhaseLoading
	case v.Status.Valid():
		return PhaseReady
	}
	return PhaseRedirecting
}

// Observe records st and sends the visitor to loginPath on the first
// observation of a missing session. Later observations of the same state
// navigate no further. Nothing happens while st is still loading.
func (v *Visit) Observe(st session.Status, r Router, loginPath string) {
	v.Status = st
	switch v.Phase() {
	case PhaseLoading:
	case PhaseReady:
		v.Redirected = false
	case PhaseRedirecting:
		if !v.Redirected {
			v.Redirected = true
			r.Replace(loginPath)
		}
	}
}
