package ports

import (
	"context"

	"github.com/tributestream/livestream-api/internal/core/domain"
)

// LoginResult is the CMS token response combined with the profile fields the
// JWT plugin returns alongside it.
type LoginResult struct {
	Token       string
	DisplayName string
	Email       string
	Nicename    string
}

// Capabilities is the role/capability record from the CMS. Fields may be
// empty when the upstream plugin omits them; callers must tolerate that.
type Capabilities struct {
	UserID       int64
	Roles        []string
	Capabilities map[string]bool
}

// RegisterInput is the account-creation payload forwarded to the CMS.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Meta     map[string]any
}

// IdentityGateway wraps the remote identity service. All methods honour the
// caller's context and apply a bounded per-call timeout.
type IdentityGateway interface {
	// Login exchanges credentials for a bearer token. Non-2xx responses
	// surface as *domain.UpstreamError with the remote message when present.
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Register creates an account and returns the new user id.
	Register(ctx context.Context, in RegisterInput) (int64, error)
	// ValidateToken reports whether the token is still accepted upstream.
	// Any non-2xx or network failure counts as invalid, not as an error.
	ValidateToken(ctx context.Context, token string) bool
	// UserCapabilities fetches roles/capabilities for the token's user.
	UserCapabilities(ctx context.Context, token string) (*Capabilities, error)
	// Logout asks the CMS to invalidate the token. Best-effort.
	Logout(ctx context.Context, token string) error
}

// ListTributesInput are the listing query parameters forwarded upstream.
type ListTributesInput struct {
	Page    int
	PerPage int
	Search  string
}

// ContentGateway wraps the remote content endpoints (tributes and user
// metadata). Mutations require the caller's bearer token.
type ContentGateway interface {
	ListTributes(ctx context.Context, in ListTributesInput) (*domain.TributePage, error)
	GetTribute(ctx context.Context, id int64) (*domain.Tribute, error)
	GetTributeBySlug(ctx context.Context, slug string) (*domain.Tribute, error)
	CreateTribute(ctx context.Context, token string, t domain.NewTribute) (int64, error)
	UpdateTribute(ctx context.Context, token string, id int64, fields map[string]any) (*domain.Tribute, error)
	DeleteTribute(ctx context.Context, token string, id int64) error

	GetUserMeta(ctx context.Context, token string, userID int64) ([]domain.MetaEntry, error)
	SetUserMeta(ctx context.Context, token string, entry domain.MetaEntry) error
}
