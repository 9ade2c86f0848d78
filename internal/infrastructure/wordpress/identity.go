package wordpress

import (
	"context"
	"net/http"

	"github.com/tributestream/livestream-api/internal/core/ports"
)

// CMS endpoints for authentication and account management.
const (
	pathToken    = "/wp-json/jwt-auth/v1/token"
	pathValidate = "/wp-json/jwt-auth/v1/token/validate"
	pathRegister = "/wp-json/tributestream/v1/register"
	pathUserCap  = "/wp-json/tributestream/v1/user-cap"
	pathLogout   = "/wp-json/tributestream/v1/logout"
)

func (c *Client) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	var resp struct {
		Token           string `json:"token"`
		UserDisplayName string `json:"user_display_name"`
		UserEmail       string `json:"user_email"`
		UserNicename    string `json:"user_nicename"`
	}
	err := c.do(ctx, "login", http.MethodPost, pathToken, "", map[string]string{
		"username": username,
		"password": password,
	}, &resp, "authentication failed")
	if err != nil {
		return nil, err
	}
	return &ports.LoginResult{
		Token:       resp.Token,
		DisplayName: resp.UserDisplayName,
		Email:       resp.UserEmail,
		Nicename:    resp.UserNicename,
	}, nil
}

func (c *Client) Register(ctx context.Context, in ports.RegisterInput) (int64, error) {
	payload := map[string]any{
		"username": in.Username,
		"email":    in.Email,
		"password": in.Password,
	}
	if in.Meta != nil {
		payload["meta"] = in.Meta
	}
	var resp struct {
		UserID int64 `json:"user_id"`
	}
	if err := c.do(ctx, "register", http.MethodPost, pathRegister, "", payload, &resp, "registration failed"); err != nil {
		return 0, err
	}
	return resp.UserID, nil
}

// ValidateToken treats any non-2xx or transport failure as an invalid token.
func (c *Client) ValidateToken(ctx context.Context, token string) bool {
	var resp struct {
		Code string `json:"code"`
	}
	err := c.do(ctx, "validate_token", http.MethodPost, pathValidate, token, nil, &resp, "token validation failed")
	if err != nil {
		return false
	}
	return resp.Code == "jwt_auth_valid_token"
}

func (c *Client) UserCapabilities(ctx context.Context, token string) (*ports.Capabilities, error) {
	var resp struct {
		UserID       int64           `json:"user_id"`
		Roles        []string        `json:"roles"`
		Capabilities map[string]bool `json:"capabilities"`
	}
	err := c.do(ctx, "user_capabilities", http.MethodGet, pathUserCap, token, nil, &resp, "failed to fetch user capabilities")
	if err != nil {
		return nil, err
	}
	// The plugin may omit either field; callers expect non-nil collections.
	if resp.Roles == nil {
		resp.Roles = []string{}
	}
	if resp.Capabilities == nil {
		resp.Capabilities = map[string]bool{}
	}
	return &ports.Capabilities{
		UserID:       resp.UserID,
		Roles:        resp.Roles,
		Capabilities: resp.Capabilities,
	}, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, "logout", http.MethodPost, pathLogout, token, nil, nil, "logout failed")
}
