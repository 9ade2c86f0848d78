package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tributestream/livestream-api/internal/core/domain"
	"github.com/tributestream/livestream-api/internal/core/ports"
)

type stubIdentityGateway struct {
	loginCalls    int
	registerCalls int
	capsCalls     int
	logoutCalls   int
	logoutTokens  []string

	loginResult *ports.LoginResult
	loginErr    error
	registerID  int64
	registerErr error
	caps        *ports.Capabilities
	capsErr     error
	validToken  bool
	logoutErr   error
}

func (g *stubIdentityGateway) Login(_ context.Context, _, _ string) (*ports.LoginResult, error) {
	g.loginCalls++
	return g.loginResult, g.loginErr
}

func (g *stubIdentityGateway) Register(_ context.Context, _ ports.RegisterInput) (int64, error) {
	g.registerCalls++
	return g.registerID, g.registerErr
}

func (g *stubIdentityGateway) ValidateToken(_ context.Context, _ string) bool {
	return g.validToken
}

func (g *stubIdentityGateway) UserCapabilities(_ context.Context, _ string) (*ports.Capabilities, error) {
	g.capsCalls++
	return g.caps, g.capsErr
}

func (g *stubIdentityGateway) Logout(_ context.Context, token string) error {
	g.logoutCalls++
	g.logoutTokens = append(g.logoutTokens, token)
	return g.logoutErr
}

type stubCapCache struct {
	entries map[string]*ports.Capabilities
	getErr  error
	sets    int
}

func newStubCapCache() *stubCapCache {
	return &stubCapCache{entries: make(map[string]*ports.Capabilities)}
}

func (c *stubCapCache) Get(_ context.Context, token string) (*ports.Capabilities, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	caps, ok := c.entries[token]
	return caps, ok, nil
}

func (c *stubCapCache) Set(_ context.Context, token string, caps *ports.Capabilities) error {
	c.sets++
	c.entries[token] = caps
	return nil
}

func TestAuthService_Login_Success(t *testing.T) {
	gw := &stubIdentityGateway{
		loginResult: &ports.LoginResult{Token: "tok", DisplayName: "Alice", Email: "alice@example.com", Nicename: "alice"},
		caps:        &ports.Capabilities{UserID: 7, Roles: []string{"administrator"}, Capabilities: map[string]bool{"manage_options": true}},
	}
	svc := NewAuthService(gw, nil, zerolog.Nop())

	id, err := svc.Login(context.Background(), "alice", "pw")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if id.Token != "tok" || id.UserID != 7 {
		t.Fatalf("unexpected identity: %+v", id)
	}
	if !id.IsAdmin() {
		t.Fatalf("expected admin identity")
	}
	if !id.HasCapability("manage_options") {
		t.Fatalf("expected manage_options capability")
	}
}

func TestAuthService_Login_CapabilityFetchDegrades(t *testing.T) {
	gw := &stubIdentityGateway{
		loginResult: &ports.LoginResult{Token: "tok", DisplayName: "Bob"},
		capsErr:     errors.New("cap endpoint down"),
	}
	svc := NewAuthService(gw, nil, zerolog.Nop())

	id, err := svc.Login(context.Background(), "bob", "pw")
	if err != nil {
		t.Fatalf("login should survive capability failure: %v", err)
	}
	if id.IsAdmin() {
		t.Fatalf("degraded identity must not be admin")
	}
	if id.Roles == nil || len(id.Roles) != 0 {
		t.Fatalf("expected empty roles, got %v", id.Roles)
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	gw := &stubIdentityGateway{}
	svc := NewAuthService(gw, nil, zerolog.Nop())

	if _, err := svc.Login(context.Background(), "", "pw"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if gw.loginCalls != 0 {
		t.Fatalf("gateway should not be called for empty credentials")
	}
}

func TestAuthService_Register_ValidatesBeforeRemote(t *testing.T) {
	gw := &stubIdentityGateway{}
	svc := NewAuthService(gw, nil, zerolog.Nop())

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "carol",
		Email:    "not-an-email",
		Password: "Abcdef1!",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if gw.registerCalls != 0 {
		t.Fatalf("register must fail locally before any remote call")
	}
}

func TestAuthService_Register_LogsInNewAccount(t *testing.T) {
	gw := &stubIdentityGateway{
		registerID:  42,
		loginResult: &ports.LoginResult{Token: "tok", Email: "carol@example.com"},
		capsErr:     errors.New("no caps yet"),
	}
	svc := NewAuthService(gw, nil, zerolog.Nop())

	id, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "Abcdef1!",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if gw.registerCalls != 1 || gw.loginCalls != 1 {
		t.Fatalf("expected 1 register + 1 login, got %d/%d", gw.registerCalls, gw.loginCalls)
	}
	if id.UserID != 42 {
		t.Fatalf("expected user id from registration, got %d", id.UserID)
	}
}

func TestAuthService_Logout_SwallowsRemoteFailure(t *testing.T) {
	gw := &stubIdentityGateway{logoutErr: errors.New("cms down")}
	svc := NewAuthService(gw, nil, zerolog.Nop())

	svc.Logout(context.Background(), "tok")
	svc.Logout(context.Background(), "tok")
	if gw.logoutCalls != 2 {
		t.Fatalf("expected 2 logout attempts, got %d", gw.logoutCalls)
	}

	svc.Logout(context.Background(), "")
	if gw.logoutCalls != 2 {
		t.Fatalf("empty token must not reach the gateway")
	}
}

func TestAuthService_Capabilities_CacheHitSkipsGateway(t *testing.T) {
	gw := &stubIdentityGateway{
		caps: &ports.Capabilities{UserID: 9, Roles: []string{"subscriber"}},
	}
	cache := newStubCapCache()
	svc := NewAuthService(gw, cache, zerolog.Nop())

	if _, err := svc.Capabilities(context.Background(), "tok"); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if gw.capsCalls != 1 || cache.sets != 1 {
		t.Fatalf("expected gateway fetch + cache write, got %d/%d", gw.capsCalls, cache.sets)
	}

	caps, err := svc.Capabilities(context.Background(), "tok")
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if gw.capsCalls != 1 {
		t.Fatalf("cache hit should skip the gateway, calls=%d", gw.capsCalls)
	}
	if caps.UserID != 9 {
		t.Fatalf("unexpected cached caps: %+v", caps)
	}
}

func TestAuthService_Capabilities_CacheErrorIsAMiss(t *testing.T) {
	gw := &stubIdentityGateway{caps: &ports.Capabilities{UserID: 3}}
	cache := newStubCapCache()
	cache.getErr = errors.New("redis gone")
	svc := NewAuthService(gw, cache, zerolog.Nop())

	caps, err := svc.Capabilities(context.Background(), "tok")
	if err != nil {
		t.Fatalf("cache error must degrade to a miss: %v", err)
	}
	if caps.UserID != 3 || gw.capsCalls != 1 {
		t.Fatalf("expected gateway fallback, caps=%+v calls=%d", caps, gw.capsCalls)
	}
}
