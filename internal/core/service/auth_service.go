package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tributestream/livestream-api/internal/core/domain"
	"github.com/tributestream/livestream-api/internal/core/ports"
)

// AuthService fronts the remote identity gateway and assembles the combined
// identity (token + profile + roles/capabilities) the rest of the service
// works with.
type AuthService struct {
	gateway ports.IdentityGateway
	cache   ports.CapabilityCache
	log     zerolog.Logger
}

func NewAuthService(gateway ports.IdentityGateway, cache ports.CapabilityCache, log zerolog.Logger) *AuthService {
	return &AuthService{gateway: gateway, cache: cache, log: log}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Identity, error) {
	if username == "" || password == "" {
		return nil, domain.Validationf("username and password are required")
	}

	res, err := s.gateway.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	identity := &domain.Identity{
		Token:       res.Token,
		DisplayName: res.DisplayName,
		Email:       res.Email,
		Nicename:    res.Nicename,
		Roles:       []string{},
	}

	// Role/capability lookup is non-fatal: a failure degrades the identity
	// to empty roles rather than failing the login.
	if caps, err := s.Capabilities(ctx, res.Token); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("capability fetch failed, proceeding without roles")
	} else if caps != nil {
		identity.UserID = caps.UserID
		identity.Roles = caps.Roles
		identity.Capabilities = caps.Capabilities
	}

	return identity, nil
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Identity, error) {
	if err := ValidateUsername(in.Username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	userID, err := s.gateway.Register(ctx, in)
	if err != nil {
		return nil, err
	}

	identity, err := s.Login(ctx, in.Username, in.Password)
	if err != nil {
		return nil, err
	}
	if identity.UserID == 0 {
		identity.UserID = userID
	}
	return identity, nil
}

func (s *AuthService) Validate(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	return s.gateway.ValidateToken(ctx, token)
}

// Logout invalidates the token upstream. Failures are logged, never
// propagated: the caller's local credential clear must always succeed.
func (s *AuthService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.gateway.Logout(ctx, token); err != nil {
		s.log.Warn().Err(err).Msg("remote session invalidation failed")
	}
}

func (s *AuthService) Capabilities(ctx context.Context, token string) (*ports.Capabilities, error) {
	if s.cache != nil {
		if caps, ok, err := s.cache.Get(ctx, token); err != nil {
			s.log.Warn().Err(err).Msg("capability cache read failed")
		} else if ok {
			return caps, nil
		}
	}

	caps, err := s.gateway.UserCapabilities(ctx, token)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, token, caps); err != nil {
			s.log.Warn().Err(err).Msg("capability cache write failed")
		}
	}
	return caps, nil
}
