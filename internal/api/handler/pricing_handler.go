package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tributestream/livestream-api/internal/core/domain"
)

// PricingHandler serves the package catalog and itemized quotes. Pricing is
// pure catalog data, so the handler works on the domain directly.
type PricingHandler struct{}

func NewPricingHandler() *PricingHandler {
	return &PricingHandler{}
}

type quoteRequest struct {
	PackageName   string `json:"package_name"   validate:"required"`
	DurationHours int    `json:"duration_hours"`
	SecondAddress bool   `json:"second_address"`
	ThirdAddress  bool   `json:"third_address"`
}

// Packages handles GET /api/packages.
//
// @Summary      List livestream packages
// @Tags         pricing
// @Produce      json
// @Success      200  {array}  domain.LivestreamPackage
// @Router       /api/packages [get]
func (h *PricingHandler) Packages(c echo.Context) error {
	return c.JSON(http.StatusOK, domain.Packages)
}

// Quote handles POST /api/quote.
//
// @Summary      Price a livestream booking
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        body  body      quoteRequest  true  "Booking options"
// @Success      200   {object}  domain.Quote
// @Failure      400   {object}  errorResponse
// @Router       /api/quote [post]
func (h *PricingHandler) Quote(c echo.Context) error {
	var req quoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	quote, err := domain.ComputeQuote(domain.QuoteInput{
		PackageName:   req.PackageName,
		DurationHours: req.DurationHours,
		SecondAddress: req.SecondAddress,
		ThirdAddress:  req.ThirdAddress,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, quote)
}
