package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/labstack/echo/v4"
)

const userIDContextKey = "userID"

// withUser resolves the bearer access token into a user id when present.
// The token only counts while its backing session survives, so a logged-out
// token resolves to nobody. Requests without a valid token proceed
// unauthenticated.
func (s *Server) withUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if token := bearerToken(c); token != "" {
			userID, err := s.users.Authenticate(c.Request().Context(), token)
			if err == nil {
				c.Set(userIDContextKey, userID)
			} else {
				s.logger.Debug(c.Request().Context(), "access token rejected", "error", err.Error())
			}
		}
		return next(c)
	}
}

// requireUser rejects requests whose access token is missing, invalid, or
// bound to a revoked or expired session.
func (s *Server) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c)
		if token == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing token"})
		}
		userID, err := s.users.Authenticate(c.Request().Context(), token)
		if err != nil {
			s.logger.Debug(c.Request().Context(), "access token rejected", "error", err.Error())
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
		}
		c.Set(userIDContextKey, userID)
		return next(c)
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(common.AccessTokenHeaderName)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func currentUserID(c echo.Context) string {
	if v, ok := c.Get(userIDContextKey).(string); ok {
		return v
	}
	return ""
}
