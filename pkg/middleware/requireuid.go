package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireUID gates requests on an established grower identity, read
// from the X-Grower-Uid header or the GROWER_UID cookie. When disabled
// it passes through so DevLogin can supply the identity instead.
func RequireUID(enabled bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !enabled {
				return next(c)
			}
			uid := c.Request().Header.Get("X-Grower-Uid")
			if uid == "" {
				if ck, err := c.Cookie("GROWER_UID"); err == nil {
					uid = ck.Value
				}
			}
			if uid == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing grower identity"})
			}
			c.Set("uid", uid)
			return next(c)
		}
	}
}
