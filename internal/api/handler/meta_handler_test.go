package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/tributestream/livestream-api/internal/api/middleware"
	"github.com/tributestream/livestream-api/internal/core/domain"
	"github.com/tributestream/livestream-api/internal/core/ports"
)

type stubContentGateway struct {
	entries []domain.MetaEntry
	tokens  []string
}

func (g *stubContentGateway) ListTributes(_ context.Context, _ ports.ListTributesInput) (*domain.TributePage, error) {
	return &domain.TributePage{}, nil
}

func (g *stubContentGateway) GetTribute(_ context.Context, _ int64) (*domain.Tribute, error) {
	return nil, domain.ErrNotFound
}

func (g *stubContentGateway) GetTributeBySlug(_ context.Context, _ string) (*domain.Tribute, error) {
	return nil, domain.ErrNotFound
}

func (g *stubContentGateway) CreateTribute(_ context.Context, _ string, _ domain.NewTribute) (int64, error) {
	return 1, nil
}

func (g *stubContentGateway) UpdateTribute(_ context.Context, _ string, _ int64, _ map[string]any) (*domain.Tribute, error) {
	return nil, domain.ErrNotFound
}

func (g *stubContentGateway) DeleteTribute(_ context.Context, _ string, _ int64) error {
	return nil
}

func (g *stubContentGateway) GetUserMeta(_ context.Context, _ string, _ int64) ([]domain.MetaEntry, error) {
	return g.entries, nil
}

func (g *stubContentGateway) SetUserMeta(_ context.Context, token string, entry domain.MetaEntry) error {
	g.tokens = append(g.tokens, token)
	g.entries = append(g.entries, entry)
	return nil
}

func TestMetaHandler_Set(t *testing.T) {
	gw := &stubContentGateway{}
	h := NewMetaHandler(gw)

	body := `{"user_id":7,"meta_key":"memorial_form_data","meta_value":{"deceased":{"firstName":"John"}}}`
	c, rec := newAuthContext(t, http.MethodPost, "/api/user-meta", body)
	c.Request().AddCookie(&http.Cookie{Name: middleware.CookieSessionToken, Value: "tok"})

	if err := h.Set(c); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(gw.entries) != 1 {
		t.Fatalf("expected 1 meta write, got %d", len(gw.entries))
	}
	if gw.tokens[0] != "tok" {
		t.Fatalf("session token not forwarded, got %q", gw.tokens[0])
	}

	entry := gw.entries[0]
	if entry.OwnerUserID != 7 || entry.Key != domain.MetaKeyMemorialForm {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	var value map[string]any
	if err := json.Unmarshal(entry.Value, &value); err != nil {
		t.Fatalf("meta value did not round-trip as JSON: %v", err)
	}
}

func TestMetaHandler_Set_MissingFields(t *testing.T) {
	gw := &stubContentGateway{}
	h := NewMetaHandler(gw)

	c, _ := newAuthContext(t, http.MethodPost, "/api/user-meta", `{"user_id":7}`)
	c.Request().AddCookie(&http.Cookie{Name: middleware.CookieSessionToken, Value: "tok"})

	if err := h.Set(c); err == nil {
		t.Fatalf("expected validation error for missing meta_key/meta_value")
	}
	if len(gw.entries) != 0 {
		t.Fatalf("invalid payload must not reach the gateway")
	}
}

func TestMetaHandler_Set_Anonymous(t *testing.T) {
	h := NewMetaHandler(&stubContentGateway{})

	c, _ := newAuthContext(t, http.MethodPost, "/api/user-meta", `{"user_id":7,"meta_key":"k","meta_value":{}}`)
	if err := h.Set(c); !errors.Is(err, domain.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
}
