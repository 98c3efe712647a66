package account

import (
	"testing"

	"github.com/go-via/storefront/internal/session"
	"github.com/stretchr/testify/assert"
)

func TestDisplay(t *testing.T) {
	tests := []struct {
		name      string
		status    session.Status
		wantName  string
		wantEmail string
	}{
		{"alice", session.Authenticated(session.User{ID: "u1", Name: "Alice", Email: "alice@example.com"}), "Alice", "alice@example.com"},
		{"no profile fields", session.Authenticated(session.User{}), PlaceholderName, PlaceholderEmail},
		{"name only", session.Authenticated(session.User{Name: "Bob"}), "Bob", PlaceholderEmail},
		{"no session", session.Unauthenticated(), PlaceholderName, PlaceholderEmail},
		{"resolving", session.Resolving(), PlaceholderName, PlaceholderEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, email := Display(tt.status)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantEmail, email)
		})
	}
}
