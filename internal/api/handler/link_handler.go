package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/horizonbank/banking-api/internal/api/metrics"
	"github.com/horizonbank/banking-api/internal/api/middleware"
	"github.com/horizonbank/banking-api/internal/core/ports"
)

// LinkHandler handles the bank-link consent and exchange routes.
type LinkHandler struct {
	linkService ports.LinkService
}

func NewLinkHandler(linkService ports.LinkService) *LinkHandler {
	return &LinkHandler{linkService: linkService}
}

type linkTokenResponse struct {
	LinkToken string `json:"linkToken"`
}

type exchangeRequest struct {
	PublicToken string `json:"publicToken" validate:"required"`
}

// CreateToken issues a consent-widget token for the signed-in user.
//
// @Summary      Create a link token
// @Tags         link
// @Produce      json
// @Success      200  {object}  linkTokenResponse
// @Failure      401  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/link/token [post]
func (h *LinkHandler) CreateToken(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}

	token, err := h.linkService.CreateLinkToken(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, linkTokenResponse{LinkToken: token})
}

// Exchange runs the full linking pipeline for a public token obtained from
// the consent widget.
//
// @Summary      Exchange a public token
// @Tags         link
// @Accept       json
// @Produce      json
// @Param        body  body      exchangeRequest  true  "Public token"
// @Success      200   {object}  ports.ExchangeResult
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/link/exchange [post]
func (h *LinkHandler) Exchange(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}

	var req exchangeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	start := time.Now()
	result, err := h.linkService.ExchangePublicToken(c.Request().Context(), req.PublicToken, user)
	metrics.LinkExchangeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LinkExchangesTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.LinkExchangesTotal.WithLabelValues("complete").Inc()
	return c.JSON(http.StatusOK, result)
}
