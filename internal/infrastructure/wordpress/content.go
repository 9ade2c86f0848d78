package wordpress

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tributestream/livestream-api/internal/core/domain"
	"github.com/tributestream/livestream-api/internal/core/ports"
)

const (
	pathTributes      = "/wp-json/tributestream/v1/tributes"
	pathTributeBySlug = "/wp-json/tributestream/v1/tribute/"
	pathUserMeta      = "/wp-json/tributestream/v1/user-meta"
)

func (c *Client) ListTributes(ctx context.Context, in ports.ListTributesInput) (*domain.TributePage, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PerPage < 1 {
		in.PerPage = 10
	}
	q := url.Values{}
	q.Set("page", fmt.Sprint(in.Page))
	q.Set("per_page", fmt.Sprint(in.PerPage))
	if in.Search != "" {
		q.Set("search", in.Search)
	}

	var resp struct {
		Items       []domain.Tribute `json:"items"`
		Total       int64            `json:"total"`
		TotalPages  int              `json:"total_pages"`
		CurrentPage int              `json:"current_page"`
	}
	err := c.do(ctx, "list_tributes", http.MethodGet, pathTributes+"?"+q.Encode(), "", nil, &resp, "failed to fetch tributes")
	if err != nil {
		return nil, err
	}
	if resp.Items == nil {
		resp.Items = []domain.Tribute{}
	}
	return &domain.TributePage{
		Items:       resp.Items,
		Total:       resp.Total,
		TotalPages:  resp.TotalPages,
		CurrentPage: resp.CurrentPage,
	}, nil
}

func (c *Client) GetTribute(ctx context.Context, id int64) (*domain.Tribute, error) {
	var t domain.Tribute
	err := c.do(ctx, "get_tribute", http.MethodGet, fmt.Sprintf("%s/%d", pathTributes, id), "", nil, &t, "failed to fetch tribute")
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &t, nil
}

func (c *Client) GetTributeBySlug(ctx context.Context, slug string) (*domain.Tribute, error) {
	var t domain.Tribute
	err := c.do(ctx, "get_tribute_by_slug", http.MethodGet, pathTributeBySlug+url.PathEscape(slug), "", nil, &t, "failed to fetch tribute")
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &t, nil
}

func (c *Client) CreateTribute(ctx context.Context, token string, t domain.NewTribute) (int64, error) {
	var resp struct {
		ID int64 `json:"id"`
	}
	err := c.do(ctx, "create_tribute", http.MethodPost, pathTributes, token, t, &resp, "failed to create tribute")
	if err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (c *Client) UpdateTribute(ctx context.Context, token string, id int64, fields map[string]any) (*domain.Tribute, error) {
	var t domain.Tribute
	err := c.do(ctx, "update_tribute", http.MethodPut, fmt.Sprintf("%s/%d", pathTributes, id), token, fields, &t, "failed to update tribute")
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &t, nil
}

func (c *Client) DeleteTribute(ctx context.Context, token string, id int64) error {
	err := c.do(ctx, "delete_tribute", http.MethodDelete, fmt.Sprintf("%s/%d", pathTributes, id), token, nil, nil, "failed to delete tribute")
	if err != nil {
		return notFoundOr(err)
	}
	return nil
}

func (c *Client) GetUserMeta(ctx context.Context, token string, userID int64) ([]domain.MetaEntry, error) {
	var entries []domain.MetaEntry
	err := c.do(ctx, "get_user_meta", http.MethodGet, fmt.Sprintf("%s/%d", pathUserMeta, userID), token, nil, &entries, "failed to fetch meta entries")
	if err != nil {
		return nil, err
	}
	// An absent entry set is a valid state distinct from an empty object.
	if entries == nil {
		entries = []domain.MetaEntry{}
	}
	return entries, nil
}

func (c *Client) SetUserMeta(ctx context.Context, token string, entry domain.MetaEntry) error {
	return c.do(ctx, "set_user_meta", http.MethodPost, pathUserMeta, token, entry, nil, "failed to write meta entry")
}

// notFoundOr maps an upstream 404 to the domain sentinel so the error handler
// renders it as a proper not-found instead of a generic upstream failure.
func notFoundOr(err error) error {
	var ue *domain.UpstreamError
	if errors.As(err, &ue) && ue.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, ue.Message)
	}
	return err
}
