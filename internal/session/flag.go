package session

import "context"

// FlagValidator accepts the plain "auth=true" marker cookie set by the static
// login flow. The marker carries no profile, so the user has no name or email.
type FlagValidator struct{}

func (FlagValidator) Validate(_ context.Context, token string) (User, error) {
	if token != "true" {
		return User{}, ErrNoSession
	}
	return User{}, nil
}
