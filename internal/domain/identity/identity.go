// Package identity defines the caller identity that scopes every
// gateway operation. Authentication itself is delegated to the auth
// provider; this package only carries the resolved result.
package identity

// User identifies the authenticated caller. The zero value is the
// anonymous caller: chat still works for it (welcome message only)
// but nothing is persisted.
type User struct {
	ID    string
	Email string
}

// Anonymous reports whether the caller has no authenticated session.
func (u User) Anonymous() bool {
	return u.ID == ""
}
