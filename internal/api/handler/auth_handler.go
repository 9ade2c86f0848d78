package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tributestream/livestream-api/internal/core/domain"
	"github.com/tributestream/livestream-api/internal/core/ports"
)

// AuthHandler exposes login, registration, token validation and logout.
type AuthHandler struct {
	auth    ports.AuthService
	cookies CookieSettings
}

func NewAuthHandler(auth ports.AuthService, cookies CookieSettings) *AuthHandler {
	return &AuthHandler{auth: auth, cookies: cookies}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username string         `json:"username" validate:"required"`
	Email    string         `json:"email"    validate:"required,email"`
	Password string         `json:"password" validate:"required,min=8"`
	Meta     map[string]any `json:"meta,omitempty"`
}

// identityResponse mirrors the combined payload the CMS plugins return.
type identityResponse struct {
	Success         bool            `json:"success"`
	Token           string          `json:"token"`
	UserID          int64           `json:"user_id,omitempty"`
	UserDisplayName string          `json:"user_display_name"`
	UserEmail       string          `json:"user_email"`
	UserNicename    string          `json:"user_nicename"`
	Roles           []string        `json:"roles"`
	Capabilities    map[string]bool `json:"capabilities"`
}

// Login handles POST /api/auth.
//
// @Summary      Authenticate against the CMS
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  identityResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identity, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	writeSessionCookies(c, identity, h.cookies)
	return c.JSON(http.StatusOK, toIdentityResponse(identity))
}

// Register handles POST /api/register.
//
// @Summary      Register a new account and authenticate it
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  identityResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identity, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Meta:     req.Meta,
	})
	if err != nil {
		return err
	}

	writeSessionCookies(c, identity, h.cookies)
	return c.JSON(http.StatusCreated, toIdentityResponse(identity))
}

// Validate handles POST /api/auth/validate: checks the caller's token
// upstream and clears the local credentials when it is no longer accepted.
//
// @Summary      Validate the current session token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /api/auth/validate [post]
func (h *AuthHandler) Validate(c echo.Context) error {
	token, err := bearerToken(c)
	if err != nil {
		clearSessionCookies(c, h.cookies)
		return c.JSON(http.StatusOK, map[string]bool{"valid": false})
	}

	valid := h.auth.Validate(c.Request().Context(), token)
	if !valid {
		clearSessionCookies(c, h.cookies)
	}
	return c.JSON(http.StatusOK, map[string]bool{"valid": valid})
}

// Logout handles POST /api/logout. Remote invalidation is best-effort; the
// local credential clear always succeeds, and doing it twice is harmless.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := sessionToken(c); token != "" {
		h.auth.Logout(c.Request().Context(), token)
	}
	clearSessionCookies(c, h.cookies)
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Logged out successfully",
	})
}

func toIdentityResponse(identity *domain.Identity) identityResponse {
	roles := identity.Roles
	if roles == nil {
		roles = []string{}
	}
	caps := identity.Capabilities
	if caps == nil {
		caps = map[string]bool{}
	}
	return identityResponse{
		Success:         true,
		Token:           identity.Token,
		UserID:          identity.UserID,
		UserDisplayName: identity.DisplayName,
		UserEmail:       identity.Email,
		UserNicename:    identity.Nicename,
		Roles:           roles,
		Capabilities:    caps,
	}
}
