package account

import "github.com/go-via/storefront/internal/session"

const (
	PlaceholderName  = "ユーザー１"
	PlaceholderEmail = "Jason@gmail.com"
)

// Display returns the name and email shown on the profile panel. Fields the
// session does not carry fall back to placeholders.
func Display(st session.Status) (name, email string) {
	name, email = PlaceholderName, PlaceholderEmail
	if st.User == nil {
		return name, email
	}
	if st.User.Name != "" {
		name = st.User.Name
	}
	if st.User.Email != "" {
		email = st.User.Email
	}
	return name, email
}
