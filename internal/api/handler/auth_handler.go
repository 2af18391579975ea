package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/horizonbank/banking-api/internal/api/metrics"
	"github.com/horizonbank/banking-api/internal/api/middleware"
	"github.com/horizonbank/banking-api/internal/core/domain"
	"github.com/horizonbank/banking-api/internal/core/ports"
)

// AuthHandler handles the sign-up, sign-in, current-user, and logout routes.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignUp registers a new user and opens a session.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Sign-up details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/auth/sign-up [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.authService.SignUp(c.Request().Context(), ports.SignUpInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Address1:    req.Address1,
		City:        req.City,
		State:       req.State,
		PostalCode:  req.PostalCode,
		DateOfBirth: req.DateOfBirth,
		SSN:         req.SSN,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			metrics.SignUpsTotal.WithLabelValues("duplicate_email").Inc()
			return c.JSON(http.StatusConflict, errorResponse{Error: "The email address is already associated with an existing account."})
		}
		if ve, ok := domain.AsVendorError(err); ok {
			if ve.Kind == domain.VendorDuplicate {
				metrics.SignUpsTotal.WithLabelValues("duplicate_email").Inc()
				return c.JSON(http.StatusConflict, errorResponse{Error: ve.Message})
			}
			metrics.SignUpsTotal.WithLabelValues("vendor_error").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: ve.Message})
		}
		metrics.SignUpsTotal.WithLabelValues("error").Inc()
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "An unexpected error occurred."})
	}

	metrics.SignUpsTotal.WithLabelValues("success").Inc()
	middleware.SetSessionCookie(c, result.SessionSecret)
	return c.JSON(http.StatusCreated, authResponse{User: result.User})
}

// SignIn authenticates a user and opens a session.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/auth/sign-in [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.SignInsTotal.WithLabelValues("invalid_credentials").Inc()
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			// Session succeeded but no user document exists.
			metrics.SignInsTotal.WithLabelValues("no_user").Inc()
			return c.JSON(http.StatusNotFound, errorResponse{Error: domain.MsgNoSuchUser})
		}
		metrics.SignInsTotal.WithLabelValues("error").Inc()
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "An unexpected error occurred."})
	}

	metrics.SignInsTotal.WithLabelValues("success").Inc()
	middleware.SetSessionCookie(c, result.SessionSecret)
	return c.JSON(http.StatusOK, authResponse{User: result.User})
}

// Me returns the user bound to the current session, or a null user when no
// valid session exists. Absence of a session is not an error.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authResponse
// @Router       /v1/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.authService.CurrentUser(c.Request().Context(), middleware.SessionSecret(c))
	if err != nil || user == nil {
		return c.JSON(http.StatusOK, authResponse{User: nil})
	}
	return c.JSON(http.StatusOK, authResponse{User: user})
}

// Logout deletes the session cookie and invalidates the remote session.
// Best effort: server-side failures are logged by the service, never
// surfaced.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      204  "no content"
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.authService.Logout(c.Request().Context(), middleware.SessionSecret(c))
	middleware.ClearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}
