package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tributestream/livestream-api/internal/metrics"
	"github.com/tributestream/livestream-api/internal/core/domain"
	"github.com/tributestream/livestream-api/internal/core/ports"
)

// EmailHandler exposes direct email sending for authenticated staff tooling.
type EmailHandler struct {
	mailer ports.Mailer
}

func NewEmailHandler(mailer ports.Mailer) *EmailHandler {
	return &EmailHandler{mailer: mailer}
}

type sendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject" validate:"required"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

// Send handles POST /api/send-email. An empty recipient falls back to the
// staff inbox, matching the provider configuration.
//
// @Summary      Send an email
// @Tags         email
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendEmailRequest  true  "Message"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/send-email [post]
func (h *EmailHandler) Send(c echo.Context) error {
	if _, err := bearerToken(c); err != nil {
		return err
	}

	var req sendEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Text == "" && req.HTML == "" {
		return domain.Validationf("text or html body is required")
	}

	err := h.mailer.Send(c.Request().Context(), domain.Email{
		To:      req.To,
		Subject: req.Subject,
		Text:    req.Text,
		HTML:    req.HTML,
	})
	if err != nil {
		metrics.EmailsSentTotal.WithLabelValues("api", "error").Inc()
		return err
	}

	metrics.EmailsSentTotal.WithLabelValues("api", "ok").Inc()
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Email sent successfully!",
	})
}
