package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/tributestream/livestream-api/internal/api/middleware"
	"github.com/tributestream/livestream-api/internal/core/domain"
)

// CookieSettings controls the server-side credential store.
type CookieSettings struct {
	SessionTTL time.Duration
	ProfileTTL time.Duration
	Secure     bool
}

// writeSessionCookies persists the identity client-side: the bearer token in
// an HttpOnly cookie, the display profile in a readable one so client code
// can show role/display data without access to the token, and the owner user
// id in its own HttpOnly cookie.
func writeSessionCookies(c echo.Context, identity *domain.Identity, cs CookieSettings) {
	sessionTTL := cs.SessionTTL
	if exp, ok := tokenExpiry(identity.Token); ok {
		if until := time.Until(exp); until > 0 && until < sessionTTL {
			sessionTTL = until
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieSessionToken,
		Value:    identity.Token,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   cs.Secure,
		SameSite: http.SameSiteStrictMode,
	})

	roles := identity.Roles
	if roles == nil {
		roles = []string{}
	}
	profile, err := json.Marshal(map[string]any{
		"display_name": identity.DisplayName,
		"email":        identity.Email,
		"nicename":     identity.Nicename,
		"roles":        roles,
		"is_admin":     identity.IsAdmin(),
	})
	if err == nil {
		// URL-encoded: raw JSON contains quotes and commas, which are not
		// valid cookie octets.
		c.SetCookie(&http.Cookie{
			Name:     middleware.CookieProfile,
			Value:    url.QueryEscape(string(profile)),
			Path:     "/",
			MaxAge:   int(cs.ProfileTTL.Seconds()),
			Secure:   cs.Secure,
			SameSite: http.SameSiteStrictMode,
		})
	}

	if identity.UserID != 0 {
		c.SetCookie(&http.Cookie{
			Name:     middleware.CookieOwnerUserID,
			Value:    strconv.FormatInt(identity.UserID, 10),
			Path:     "/",
			MaxAge:   int(sessionTTL.Seconds()),
			HttpOnly: true,
			Secure:   cs.Secure,
			SameSite: http.SameSiteStrictMode,
		})
	}
}

// clearSessionCookies expires all credential cookies. Idempotent: clearing an
// already-clear session is a no-op, never an error.
func clearSessionCookies(c echo.Context, cs CookieSettings) {
	for _, name := range []string{
		middleware.CookieSessionToken,
		middleware.CookieProfile,
		middleware.CookieOwnerUserID,
	} {
		c.SetCookie(&http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Secure:   cs.Secure,
			SameSite: http.SameSiteStrictMode,
		})
	}
}

// tokenExpiry decodes the CMS token's exp claim without verifying the
// signature; the CMS is the verifier, this is only used to avoid handing out
// cookies that outlive their token.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
