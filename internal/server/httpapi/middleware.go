package httpapi

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cortex-chat/cortex-server/internal/server/models"
)

const currentUserKey = "currentUser"

const bearerPrefix = "Bearer "

// requireAuth resolves the bearer token to a user and stashes it in the
// request context. Missing, malformed, invalid, or expired tokens all yield
// the same 401.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return errUnauthorized
		}

		userID, err := s.users.VerifyToken(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			return errUnauthorized
		}

		user, err := s.users.GetUser(c.Request().Context(), userID)
		if err != nil {
			// A valid token for a vanished user is still unauthorized.
			return errUnauthorized
		}

		c.Set(currentUserKey, user)
		return next(c)
	}
}

// currentUser returns the authenticated user placed by requireAuth.
func currentUser(c echo.Context) *models.User {
	user, _ := c.Get(currentUserKey).(*models.User)
	return user
}
