package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tributestream/livestream-api/internal/core/domain"
	"github.com/tributestream/livestream-api/internal/core/ports"
)

// MetaHandler proxies per-user metadata reads and writes. Both directions
// require a bearer token; values are raw JSON and round-trip untouched.
type MetaHandler struct {
	content ports.ContentGateway
}

func NewMetaHandler(content ports.ContentGateway) *MetaHandler {
	return &MetaHandler{content: content}
}

type setMetaRequest struct {
	UserID    int64           `json:"user_id"    validate:"required"`
	MetaKey   string          `json:"meta_key"   validate:"required"`
	MetaValue json.RawMessage `json:"meta_value" validate:"required"`
}

type metaResponse struct {
	Success bool               `json:"success"`
	Entries []domain.MetaEntry `json:"entries"`
}

// Get handles GET /api/user-meta?user_id=N.
//
// @Summary      Fetch metadata entries for a user
// @Tags         user-meta
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  query     int  true  "Owner user id"
// @Success      200      {object}  metaResponse
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Router       /api/user-meta [get]
func (h *MetaHandler) Get(c echo.Context) error {
	token, err := bearerToken(c)
	if err != nil {
		return err
	}

	userID, err := strconv.ParseInt(c.QueryParam("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		return domain.Validationf("user_id is required as a query parameter")
	}

	entries, err := h.content.GetUserMeta(c.Request().Context(), token, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, metaResponse{Success: true, Entries: entries})
}

// Set handles POST /api/user-meta.
//
// @Summary      Write a metadata entry
// @Tags         user-meta
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      setMetaRequest  true  "Metadata entry"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/user-meta [post]
func (h *MetaHandler) Set(c echo.Context) error {
	token, err := bearerToken(c)
	if err != nil {
		return err
	}

	var req setMetaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.content.SetUserMeta(c.Request().Context(), token, domain.MetaEntry{
		OwnerUserID: req.UserID,
		Key:         req.MetaKey,
		Value:       req.MetaValue,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
