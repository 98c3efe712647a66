// Package session answers one question for the storefront pages: who, if
// anyone, is behind this request. Identity issuance lives elsewhere; this
// package only reads and retires the marker the identity provider leaves.
package session

import (
	"context"
	"errors"
)

var (
	ErrNoSession    = errors.New("no session")
	ErrInvalidToken = errors.New("invalid session token")
	ErrRevoked      = errors.New("session revoked")
)

// User is the identity carried by a valid session. Name and Email may be
// empty when the marker does not carry profile fields.
type User struct {
	ID    string
	Name  string
	Email string
}

// Status is what a page sees of the session while it renders.
type Status struct {
	User    *User
	Loading bool
}

// Resolving reports a session that has not been checked yet.
func Resolving() Status {
	return Status{Loading: true}
}

// Unauthenticated reports a resolved visit without a valid session.
func Unauthenticated() Status {
	return Status{}
}

// Authenticated reports a resolved visit with a valid session for u.
func Authenticated(u User) Status {
	return Status{User: &u}
}

// Valid is true once resolution finished with a user.
func (s Status) Valid() bool {
	return !s.Loading && s.User != nil
}

// Validator decides whether a session marker is valid and who it belongs to.
type Validator interface {
	Validate(ctx context.Context, token string) (User, error)
}

// Terminator is implemented by validators that can retire a marker
// server-side, so that a copied cookie stops working after logout.
type Terminator interface {
	Terminate(ctx context.Context, token string) error
}
