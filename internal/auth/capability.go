package auth

import "github.com/mmynk/fintrack/internal/models"

// Capability names an operation that needs more than an authenticated user.
type Capability string

const (
	// CapAdmin allows cross-cutting maintenance such as balance reconciliation.
	CapAdmin Capability = "admin"
)

// Capabilities answers permission questions about a caller.
type Capabilities interface {
	Can(c Capability) bool
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID    string
	Email     string
	Role      models.Role
	Anonymous bool
}

var _ Capabilities = Principal{}

// PrincipalFromClaims builds the caller from a validated session token.
func PrincipalFromClaims(c *Claims) Principal {
	return Principal{
		UserID:    c.UserID,
		Email:     c.Email,
		Role:      c.Role,
		Anonymous: c.Anonymous,
	}
}

// Can reports whether the caller's role grants c. Anonymous sessions never
// hold capabilities.
func (p Principal) Can(c Capability) bool {
	if p.Anonymous {
		return false
	}
	switch c {
	case CapAdmin:
		return p.Role == models.RoleAdmin
	}
	return false
}
