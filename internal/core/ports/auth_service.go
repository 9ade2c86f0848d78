package ports

import (
	"context"

	"github.com/tributestream/livestream-api/internal/core/domain"
)

// AuthService combines the CMS login with the capability lookup into a full
// identity, and fronts token validation and logout.
type AuthService interface {
	// Login authenticates and returns the combined identity. The capability
	// fetch is best-effort: on failure the identity degrades to empty roles.
	Login(ctx context.Context, username, password string) (*domain.Identity, error)
	// Register validates inputs locally, creates the account, authenticates
	// it and returns the resulting identity.
	Register(ctx context.Context, in RegisterInput) (*domain.Identity, error)
	// Validate reports whether the token is still accepted by the CMS.
	Validate(ctx context.Context, token string) bool
	// Logout invalidates the token upstream, best-effort. It never fails the
	// caller; the local credential clear always proceeds.
	Logout(ctx context.Context, token string)
	// Capabilities returns roles/capabilities for a token, cache-assisted.
	Capabilities(ctx context.Context, token string) (*Capabilities, error)
}
