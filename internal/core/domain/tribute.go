package domain

import "strings"

// Tribute is a memorial page record. The remote CMS is the system of record;
// this service only proxies and reshapes it.
type Tribute struct {
	ID           int64  `json:"id"`
	LovedOneName string `json:"loved_one_name"`
	Slug         string `json:"slug"`
	OwnerUserID  int64  `json:"user_id"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	Status       string `json:"status,omitempty"`
	CustomHTML   string `json:"custom_html,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// NewTribute is the creation payload forwarded to the CMS.
type NewTribute struct {
	LovedOneName string `json:"loved_one_name"`
	Slug         string `json:"slug"`
	OwnerUserID  int64  `json:"user_id"`
	PhoneNumber  string `json:"phone_number"`
}

// TributePage is one page of a tribute listing.
type TributePage struct {
	Items       []Tribute `json:"items"`
	Total       int64     `json:"total"`
	TotalPages  int       `json:"total_pages"`
	CurrentPage int       `json:"current_page"`
}

// TributeSlug builds the URL slug for a tribute from the deceased's name:
// lowercase, whitespace collapsed to underscores.
func TributeSlug(firstName, lastName string) string {
	s := strings.ToLower(strings.TrimSpace(firstName)) + "_" + strings.ToLower(strings.TrimSpace(lastName))
	return strings.Join(strings.Fields(s), "_")
}
