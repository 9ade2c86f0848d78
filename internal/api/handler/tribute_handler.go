package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tributestream/livestream-api/internal/core/domain"
	"github.com/tributestream/livestream-api/internal/core/ports"
)

// TributeHandler proxies tribute CRUD to the CMS. Reads are public; mutations
// require a bearer token.
type TributeHandler struct {
	content ports.ContentGateway
}

func NewTributeHandler(content ports.ContentGateway) *TributeHandler {
	return &TributeHandler{content: content}
}

type createTributeRequest struct {
	LovedOneName string `json:"loved_one_name" validate:"required"`
	Slug         string `json:"slug"           validate:"required"`
	UserID       int64  `json:"user_id"        validate:"required"`
	PhoneNumber  string `json:"phone_number"`
}

type createTributeResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

type listTributesResponse struct {
	Success     bool             `json:"success"`
	Items       []domain.Tribute `json:"items"`
	Total       int64            `json:"total"`
	TotalPages  int              `json:"total_pages"`
	CurrentPage int              `json:"current_page"`
}

// List handles GET /api/tributes.
//
// @Summary      List tributes
// @Tags         tributes
// @Produce      json
// @Param        page      query     int     false  "Page number"
// @Param        per_page  query     int     false  "Page size"
// @Param        search    query     string  false  "Search term"
// @Success      200       {object}  listTributesResponse
// @Failure      502       {object}  errorResponse
// @Router       /api/tributes [get]
func (h *TributeHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))

	result, err := h.content.ListTributes(c.Request().Context(), ports.ListTributesInput{
		Page:    page,
		PerPage: perPage,
		Search:  c.QueryParam("search"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listTributesResponse{
		Success:     true,
		Items:       result.Items,
		Total:       result.Total,
		TotalPages:  result.TotalPages,
		CurrentPage: result.CurrentPage,
	})
}

// Create handles POST /api/tributes.
//
// @Summary      Create a tribute
// @Tags         tributes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTributeRequest  true  "Tribute details"
// @Success      201   {object}  createTributeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/tributes [post]
func (h *TributeHandler) Create(c echo.Context) error {
	token, err := bearerToken(c)
	if err != nil {
		return err
	}

	var req createTributeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.content.CreateTribute(c.Request().Context(), token, domain.NewTribute{
		LovedOneName: req.LovedOneName,
		Slug:         req.Slug,
		OwnerUserID:  req.UserID,
		PhoneNumber:  req.PhoneNumber,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createTributeResponse{Success: true, ID: id})
}

// Get handles GET /api/tributes/:id.
//
// @Summary      Get a tribute by id
// @Tags         tributes
// @Produce      json
// @Param        id   path      int  true  "Tribute id"
// @Success      200  {object}  domain.Tribute
// @Failure      404  {object}  errorResponse
// @Router       /api/tributes/{id} [get]
func (h *TributeHandler) Get(c echo.Context) error {
	id, err := tributeID(c)
	if err != nil {
		return err
	}

	t, err := h.content.GetTribute(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// GetBySlug handles GET /api/tributes/by-slug/:slug.
//
// @Summary      Get a tribute by slug
// @Tags         tributes
// @Produce      json
// @Param        slug  path      string  true  "Tribute slug"
// @Success      200   {object}  domain.Tribute
// @Failure      404   {object}  errorResponse
// @Router       /api/tributes/by-slug/{slug} [get]
func (h *TributeHandler) GetBySlug(c echo.Context) error {
	slug := c.Param("slug")
	if slug == "" {
		return domain.Validationf("slug is required")
	}

	t, err := h.content.GetTributeBySlug(c.Request().Context(), slug)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// Update handles PUT /api/tributes/:id. The body is forwarded as-is so the
// CMS decides which fields are updatable.
//
// @Summary      Update a tribute
// @Tags         tributes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Tribute id"
// @Param        body  body      map[string]any  true  "Fields to update"
// @Success      200   {object}  domain.Tribute
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/tributes/{id} [put]
func (h *TributeHandler) Update(c echo.Context) error {
	token, err := bearerToken(c)
	if err != nil {
		return err
	}
	id, err := tributeID(c)
	if err != nil {
		return err
	}

	var fields map[string]any
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(fields) == 0 {
		return domain.Validationf("no fields to update")
	}

	t, err := h.content.UpdateTribute(c.Request().Context(), token, id, fields)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// Delete handles DELETE /api/tributes/:id.
//
// @Summary      Delete a tribute
// @Tags         tributes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Tribute id"
// @Success      200  {object}  map[string]bool
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/tributes/{id} [delete]
func (h *TributeHandler) Delete(c echo.Context) error {
	token, err := bearerToken(c)
	if err != nil {
		return err
	}
	id, err := tributeID(c)
	if err != nil {
		return err
	}

	if err := h.content.DeleteTribute(c.Request().Context(), token, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func tributeID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validationf("id must be a positive integer")
	}
	return id, nil
}
