package middleware

import (
	"net/http"
	"strings"
	"time"

	"retroFinder/pkg/logger"
	"retroFinder/pkg/utils"

	jsonres "retroFinder/pkg/response"

	"github.com/labstack/echo/v4"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"

	roleAdmin = "ADMIN"
)

// AuthMiddleware validates the bearer JWT and puts its claims on the context.
func AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return deny(c, http.StatusUnauthorized, "Missing authorization header")
			}

			token, ok := bearerToken(header)
			if !ok {
				return deny(c, http.StatusUnauthorized, "Invalid authorization format")
			}

			claims, err := utils.ParseJWT(token)
			if err != nil {
				logger.Debug("jwt_rejected", "error", err, "path", c.Path())
				return deny(c, http.StatusUnauthorized, "Invalid token")
			}

			// tokens without an expiry are never accepted
			expAt, err := claims.GetExpirationTime()
			if err != nil || expAt == nil || time.Now().After(expAt.Time) {
				return deny(c, http.StatusForbidden, "Token expired")
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextRole, claims.Role)

			return next(c)
		}
	}
}

// AdminOnly must run after AuthMiddleware.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if !strings.EqualFold(role, roleAdmin) {
				return deny(c, http.StatusForbidden, "Admin access required")
			}

			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" || token == "" || strings.Contains(token, " ") {
		return "", false
	}
	return token, true
}

func deny(c echo.Context, status int, message string) error {
	code := "UNAUTHORIZED"
	if status == http.StatusForbidden {
		code = "FORBIDDEN"
	}
	return c.JSON(status, jsonres.Error(code, message, nil))
}
