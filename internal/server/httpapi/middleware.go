package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/projboard/internal/server/auth"
	"github.com/labstack/echo/v4"
)

// userIDContextKey is the echo context key holding the resolved identity.
const userIDContextKey = "userID"

// sessionMiddleware resolves the session cookie into a user id and stores
// it in the request context. Requests without a valid session never reach
// the handlers: they are redirected to the login page.
func (s *Server) sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			return c.Redirect(http.StatusSeeOther, "/login")
		}

		userID, err := auth.GetUserIDFromToken(cookie.Value, s.jwtSecret)
		if err != nil {
			// expired or tampered token: drop the cookie and start over
			s.clearSessionCookie(c)
			return c.Redirect(http.StatusSeeOther, "/login")
		}

		c.Set(userIDContextKey, userID)
		return next(c)
	}
}

// identity returns the authenticated user id stored by sessionMiddleware.
func identity(c echo.Context) string {
	id, _ := c.Get(userIDContextKey).(string)
	return id
}

func (s *Server) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.sessionValidity),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
