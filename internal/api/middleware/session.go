package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/horizonbank/banking-api/internal/core/domain"
	"github.com/horizonbank/banking-api/internal/core/ports"
)

// SessionCookieName is the cookie holding the signed session secret.
// Kept for compatibility with the clients of the original dashboard.
const SessionCookieName = "appwrite-session"

// SetSessionCookie writes the session cookie: root path, script-unreadable,
// cross-site restricted, transport-secure only.
func SetSessionCookie(c echo.Context, secret string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    secret,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   true,
	})
}

// ClearSessionCookie expires the session cookie client-side.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   true,
	})
}

// SessionSecret reads the raw session secret from the request, or "".
func SessionSecret(c echo.Context) string {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Session resolves the session cookie to a user and injects it into the
// echo context under "user". Requests without a valid session are rejected.
func Session(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := auth.CurrentUser(c.Request().Context(), SessionSecret(c))
			if err != nil || user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
			}
			c.Set("user", user)
			return next(c)
		}
	}
}

// UserFromContext extracts the user injected by the Session middleware.
func UserFromContext(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get("user").(*domain.User)
	return user, ok
}
