// internal/domain/session/entity.go
package session

import (
	"errors"
	"strings"
)

var ErrInvalidIdentity = errors.New("session: invalid identity")

// Role is the coarse authorization level derived from the identity.
type Role string

const (
	RoleShopper Role = "shopper"
	RoleAdmin   Role = "admin"
)

// Identity is the signed-in user as reported by the auth provider.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// New constructs a validated Identity.
func New(uid, email string) (Identity, error) {
	id := Identity{
		UID:   strings.TrimSpace(uid),
		Email: strings.TrimSpace(email),
	}
	if id.UID == "" {
		return Identity{}, ErrInvalidIdentity
	}
	return id, nil
}

// ResolveRole derives the role from the admin allow-list.
// Membership is exact and case-sensitive: the allow-list is configuration,
// the identity email comes back verbatim from the provider.
func ResolveRole(email string, adminEmails []string) Role {
	for _, a := range adminEmails {
		if email == a {
			return RoleAdmin
		}
	}
	return RoleShopper
}

// IsAdmin is a convenience wrapper over ResolveRole.
func IsAdmin(email string, adminEmails []string) bool {
	return ResolveRole(email, adminEmails) == RoleAdmin
}
