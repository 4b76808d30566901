package rolegate

import (
	"bankerdir/internal/console/session"
	"bankerdir/internal/core/domain"
	"bankerdir/internal/pkg/jwt"
)

// Gate derives an advisory role from the stored session token.
// It peeks at the token payload without verifying the signature, so the
// result gates UI affordances only; the server enforces authorization
// on every request regardless of what the gate reports.
//
// Every call re-reads the store, so a token swapped by login/logout is
// picked up on the next evaluation.
type Gate struct {
	store session.Store
}

// New creates a role gate over the given session store
func New(store session.Store) *Gate {
	return &Gate{store: store}
}

// Role returns the role claim of the stored token, or "" when the token
// is missing, malformed, or carries no role claim (fail-closed).
func (g *Gate) Role() domain.Role {
	token, err := g.store.GetToken()
	if err != nil {
		return ""
	}

	claims, err := jwt.PeekClaims(token)
	if err != nil {
		return ""
	}

	switch domain.Role(claims.Role) {
	case domain.RoleAdmin:
		return domain.RoleAdmin
	case domain.RoleUser:
		return domain.RoleUser
	default:
		return ""
	}
}

// IsAdmin reports whether admin-only controls should be shown
func (g *Gate) IsAdmin() bool {
	return g.Role() == domain.RoleAdmin
}

// Email returns the email claim of the stored token, or "" when the
// token is missing or malformed. Advisory, for display lookups only.
func (g *Gate) Email() string {
	token, err := g.store.GetToken()
	if err != nil {
		return ""
	}

	claims, err := jwt.PeekClaims(token)
	if err != nil {
		return ""
	}
	return claims.Email
}
