package middleware

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tributestream/livestream-api/internal/core/domain"
)

// Cookie names shared between the session middleware and the handlers that
// set them.
const (
	CookieSessionToken = "session_token"
	CookieProfile      = "profile"
	CookieOwnerUserID  = "owner_user_id"
)

// Context keys populated by the session middleware.
const (
	CtxIdentity = "identity"
	CtxToken    = "token"
)

// Guard target paths.
const (
	adminRoot      = "/admin"
	adminDashboard = "/admin-dashboard"
	dashboard      = "/dashboard"
	loginPage      = "/login"
)

// State is the per-request authentication state derived from cookies.
type State struct {
	Authenticated bool
	Identity      *domain.Identity
}

// Decision is the route-guard outcome for one request.
type Decision struct {
	Redirect bool
	Target   string
}

// Resolve is the route-guard policy: a pure function of (path, state).
//
//   - The bare /admin root (and anything under /admin/) always redirects to
//     the admin dashboard, before any auth check.
//   - Admin-dashboard paths require an authenticated administrator:
//     anonymous goes to the login page, a non-admin to the general dashboard.
//   - Everything else proceeds.
func Resolve(path string, st State) Decision {
	if path == adminRoot || strings.HasPrefix(path, adminRoot+"/") {
		return Decision{Redirect: true, Target: adminDashboard}
	}
	if path == adminDashboard || strings.HasPrefix(path, adminDashboard+"/") {
		if !st.Authenticated {
			return Decision{Redirect: true, Target: loginPage}
		}
		if !st.Identity.IsAdmin() {
			return Decision{Redirect: true, Target: dashboard}
		}
	}
	return Decision{}
}

// profileCookie is the client-readable profile payload. The is_admin field is
// written for client convenience but never trusted on the way back in: the
// flag is recomputed from roles on every request.
type profileCookie struct {
	DisplayName string   `json:"display_name"`
	Email       string   `json:"email"`
	Nicename    string   `json:"nicename"`
	Roles       []string `json:"roles"`
	IsAdmin     bool     `json:"is_admin"`
}

// Session resolves the request's authentication state from cookies, attaches
// the identity and token to the Echo context, and applies the admin route
// guard. Cookie parse failures fail closed to an anonymous state and are
// logged, never surfaced to the client.
func Session(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			st := resolveState(c, log)
			if st.Authenticated {
				c.Set(CtxIdentity, st.Identity)
				c.Set(CtxToken, st.Identity.Token)
			}

			if d := Resolve(c.Request().URL.Path, st); d.Redirect {
				return c.Redirect(http.StatusSeeOther, d.Target)
			}
			return next(c)
		}
	}
}

func resolveState(c echo.Context, log zerolog.Logger) State {
	tokenCookie, err := c.Cookie(CookieSessionToken)
	if err != nil || tokenCookie.Value == "" {
		return State{}
	}

	profCookie, err := c.Cookie(CookieProfile)
	if err != nil || profCookie.Value == "" {
		return State{}
	}

	raw, err := url.QueryUnescape(profCookie.Value)
	if err != nil {
		log.Warn().Err(err).Str("path", c.Request().URL.Path).Msg("malformed profile cookie, treating request as anonymous")
		return State{}
	}

	var prof profileCookie
	if err := json.Unmarshal([]byte(raw), &prof); err != nil {
		log.Warn().Err(err).Str("path", c.Request().URL.Path).Msg("malformed profile cookie, treating request as anonymous")
		return State{}
	}
	if prof.Roles == nil {
		prof.Roles = []string{}
	}

	identity := &domain.Identity{
		Token:       tokenCookie.Value,
		DisplayName: prof.DisplayName,
		Email:       prof.Email,
		Nicename:    prof.Nicename,
		Roles:       prof.Roles,
	}
	return State{Authenticated: true, Identity: identity}
}
