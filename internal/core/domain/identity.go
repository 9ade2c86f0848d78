package domain

// RoleAdministrator is the CMS role that grants access to admin routes.
const RoleAdministrator = "administrator"

// Identity is the authenticated actor as known to the remote CMS. It is
// derived per request from the session cookies and never persisted locally.
type Identity struct {
	Token        string          `json:"-"`
	UserID       int64           `json:"user_id,omitempty"`
	DisplayName  string          `json:"display_name"`
	Email        string          `json:"email"`
	Nicename     string          `json:"nicename"`
	Roles        []string        `json:"roles"`
	Capabilities map[string]bool `json:"capabilities,omitempty"`
}

// IsAdmin reports whether the identity carries the administrator role.
// Always computed from Roles; the flag is never stored independently.
func (i *Identity) IsAdmin() bool {
	for _, r := range i.Roles {
		if r == RoleAdministrator {
			return true
		}
	}
	return false
}

// HasCapability reports whether the CMS granted the named capability.
func (i *Identity) HasCapability(name string) bool {
	return i.Capabilities[name]
}
