package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tributestream/livestream-api/internal/api/middleware"
	"github.com/tributestream/livestream-api/internal/core/domain"
)

// bearerToken resolves the caller's bearer token: the Authorization header
// wins, the session cookie set at login is the fallback. Mutating endpoints
// require one or the other.
func bearerToken(c echo.Context) (string, error) {
	if h := c.Request().Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") && parts[1] != "" {
			return parts[1], nil
		}
		return "", domain.ErrAuthRequired
	}

	if tok := sessionToken(c); tok != "" {
		return tok, nil
	}
	return "", domain.ErrAuthRequired
}

// sessionToken returns the caller's session token, empty when anonymous. The
// context value set by the session middleware is preferred, but the raw
// session_token cookie is consulted too: the profile cookie expires earlier
// than the token cookie, and a bare token is still a live session.
func sessionToken(c echo.Context) string {
	if tok, ok := c.Get(middleware.CtxToken).(string); ok && tok != "" {
		return tok
	}
	if ck, err := c.Cookie(middleware.CookieSessionToken); err == nil && ck.Value != "" {
		return ck.Value
	}
	return ""
}
