package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopper-api/internal/token"
)

// HeaderName is the custom header carrying the auth token.
const HeaderName = "auth-token"

const userIDKey = "userID"

// FetchUser gates a route on a valid auth token and puts the caller's user
// id into the echo context.
func FetchUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(HeaderName)
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"errors": "No valid token"})
			}
			userID, err := token.Parse(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"errors": "use valid token"})
			}
			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// UserID reads the id FetchUser stored in the context.
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(userIDKey).(uint)
	return id, ok
}
