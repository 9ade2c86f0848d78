package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tributestream/livestream-api/internal/api/middleware"
	"github.com/tributestream/livestream-api/internal/core/domain"
	"github.com/tributestream/livestream-api/internal/core/ports"
	"github.com/tributestream/livestream-api/internal/core/service"
)

// WorkflowHandler fronts the multi-step memorial onboarding saga.
type WorkflowHandler struct {
	workflow ports.WorkflowService
	cookies  CookieSettings
}

func NewWorkflowHandler(workflow ports.WorkflowService, cookies CookieSettings) *WorkflowHandler {
	return &WorkflowHandler{workflow: workflow, cookies: cookies}
}

type memorialFormResponse struct {
	Success    bool            `json:"success"`
	RunID      string          `json:"run_id"`
	Tribute    *domain.Tribute `json:"tribute"`
	EmailError string          `json:"email_error,omitempty"`
}

// SubmitMemorialForm handles POST /api/fd-form. On success the caller is left
// logged in as the freshly created account; any prior session is invalidated
// by the workflow itself.
//
// @Summary      Submit the funeral-director intake form
// @Tags         workflow
// @Accept       json
// @Produce      json
// @Param        body  body      domain.MemorialForm  true  "Intake form"
// @Success      201   {object}  memorialFormResponse
// @Failure      400   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/fd-form [post]
func (h *WorkflowHandler) SubmitMemorialForm(c echo.Context) error {
	var form domain.MemorialForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	ctx := service.WithPriorToken(c.Request().Context(), sessionToken(c))

	result, err := h.workflow.CreateMemorial(ctx, ports.MemorialWorkflowInput{Form: form})
	if err != nil {
		return err
	}

	writeSessionCookies(c, result.Identity, h.cookies)
	return c.JSON(http.StatusCreated, memorialFormResponse{
		Success:    true,
		RunID:      result.RunID,
		Tribute:    result.Tribute,
		EmailError: result.EmailError,
	})
}

// RunFinder looks up one workflow run from the audit log.
type RunFinder interface {
	FindByID(ctx context.Context, id string) (*domain.WorkflowRun, error)
}

// RunLogHandler exposes the saga audit trail to administrators for manual
// follow-up on partial failures.
type RunLogHandler struct {
	runs RunFinder
}

func NewRunLogHandler(runs RunFinder) *RunLogHandler {
	return &RunLogHandler{runs: runs}
}

// GetRun handles GET /api/workflow-runs/:id.
//
// @Summary      Fetch a workflow run record
// @Tags         workflow
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Run id"
// @Success      200  {object}  domain.WorkflowRun
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/workflow-runs/{id} [get]
func (h *RunLogHandler) GetRun(c echo.Context) error {
	identity, ok := c.Get(middleware.CtxIdentity).(*domain.Identity)
	if !ok {
		return domain.ErrAuthRequired
	}
	if !identity.IsAdmin() {
		return echo.NewHTTPError(http.StatusForbidden, "administrator role required")
	}

	run, err := h.runs.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, run)
}
