package auth

import "github.com/mauv0809/courtside/internal/club"

// Sessions resolves opaque bearer tokens to identities and issues new ones.
// Tokens live in the sessions table with an expiry, so any instance of the
// service can resolve a token issued by another.
type Sessions interface {
	Issue(user *club.User) (string, error)
	Resolve(token string) (*Identity, error)
	Revoke(token string) error
}
