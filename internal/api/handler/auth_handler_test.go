package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tributestream/livestream-api/internal/api/middleware"
	"github.com/tributestream/livestream-api/internal/core/domain"
	"github.com/tributestream/livestream-api/internal/core/ports"
)

type stubAuthService struct {
	identity    *domain.Identity
	loginErr    error
	valid       bool
	logoutCalls int
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (*domain.Identity, error) {
	return s.identity, s.loginErr
}

func (s *stubAuthService) Register(_ context.Context, _ ports.RegisterInput) (*domain.Identity, error) {
	return s.identity, s.loginErr
}

func (s *stubAuthService) Validate(_ context.Context, _ string) bool {
	return s.valid
}

func (s *stubAuthService) Logout(_ context.Context, _ string) {
	s.logoutCalls++
}

func (s *stubAuthService) Capabilities(_ context.Context, _ string) (*ports.Capabilities, error) {
	return nil, nil
}

func testCookieSettings() CookieSettings {
	return CookieSettings{
		SessionTTL: 168 * time.Hour,
		ProfileTTL: 24 * time.Hour,
		Secure:     true,
	}
}

func newAuthContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, ck := range cookies {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestAuthHandler_Login_SetsCookies(t *testing.T) {
	svc := &stubAuthService{identity: &domain.Identity{
		Token:       "tok-123",
		UserID:      7,
		DisplayName: "Alice",
		Email:       "alice@example.com",
		Roles:       []string{"administrator"},
	}}
	h := NewAuthHandler(svc, testCookieSettings())

	c, rec := newAuthContext(t, http.MethodPost, "/api/auth", `{"username":"alice","password":"pw"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookies := rec.Result().Cookies()

	session := cookieByName(cookies, middleware.CookieSessionToken)
	if session == nil || session.Value != "tok-123" {
		t.Fatalf("session cookie missing or wrong: %+v", session)
	}
	if !session.HttpOnly || !session.Secure {
		t.Fatalf("session cookie must be HttpOnly and Secure: %+v", session)
	}

	profile := cookieByName(cookies, middleware.CookieProfile)
	if profile == nil {
		t.Fatalf("profile cookie missing")
	}
	if profile.HttpOnly {
		t.Fatalf("profile cookie must stay client-readable")
	}
	raw, err := url.QueryUnescape(profile.Value)
	if err != nil {
		t.Fatalf("profile cookie not URL-encoded: %v", err)
	}
	var prof map[string]any
	if err := json.Unmarshal([]byte(raw), &prof); err != nil {
		t.Fatalf("profile cookie not JSON: %v", err)
	}
	if prof["is_admin"] != true {
		t.Fatalf("expected is_admin=true for administrator role, got %v", prof["is_admin"])
	}

	owner := cookieByName(cookies, middleware.CookieOwnerUserID)
	if owner == nil || owner.Value != "7" {
		t.Fatalf("owner cookie missing or wrong: %+v", owner)
	}

	var resp identityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if !resp.Success || resp.Token != "tok-123" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, testCookieSettings())

	c, _ := newAuthContext(t, http.MethodPost, "/api/auth", `{"username":"alice"}`)
	if err := h.Login(c); err == nil {
		t.Fatalf("expected validation error for missing password")
	}
}

func TestAuthHandler_Logout_Idempotent(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, testCookieSettings())

	// With a session: remote logout attempted, cookies cleared.
	c, rec := newAuthContext(t, http.MethodPost, "/api/logout", "")
	c.Request().AddCookie(&http.Cookie{Name: middleware.CookieSessionToken, Value: "tok"})
	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if svc.logoutCalls != 1 {
		t.Fatalf("expected 1 remote logout, got %d", svc.logoutCalls)
	}
	session := cookieByName(rec.Result().Cookies(), middleware.CookieSessionToken)
	if session == nil || session.MaxAge != -1 {
		t.Fatalf("session cookie not cleared: %+v", session)
	}

	// Without a session: still succeeds, no remote call.
	c2, rec2 := newAuthContext(t, http.MethodPost, "/api/logout", "")
	if err := h.Logout(c2); err != nil {
		t.Fatalf("second Logout returned error: %v", err)
	}
	if svc.logoutCalls != 1 {
		t.Fatalf("anonymous logout must not call the gateway")
	}
	if rec2.Code != http.StatusOK {
		t.Fatalf("expected 200 for anonymous logout, got %d", rec2.Code)
	}
}

func TestAuthHandler_Validate_InvalidClearsCookies(t *testing.T) {
	svc := &stubAuthService{valid: false}
	h := NewAuthHandler(svc, testCookieSettings())

	c, rec := newAuthContext(t, http.MethodPost, "/api/auth/validate", "")
	c.Request().AddCookie(&http.Cookie{Name: middleware.CookieSessionToken, Value: "stale"})
	if err := h.Validate(c); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	var resp map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if resp["valid"] {
		t.Fatalf("expected valid=false")
	}
	session := cookieByName(rec.Result().Cookies(), middleware.CookieSessionToken)
	if session == nil || session.MaxAge != -1 {
		t.Fatalf("stale session cookie not cleared: %+v", session)
	}
}

func TestAuthHandler_Validate_ValidKeepsCookies(t *testing.T) {
	svc := &stubAuthService{valid: true}
	h := NewAuthHandler(svc, testCookieSettings())

	c, rec := newAuthContext(t, http.MethodPost, "/api/auth/validate", "")
	c.Request().AddCookie(&http.Cookie{Name: middleware.CookieSessionToken, Value: "tok"})
	if err := h.Validate(c); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	var resp map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if !resp["valid"] {
		t.Fatalf("expected valid=true")
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("valid session must not touch cookies")
	}
}
