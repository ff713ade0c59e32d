package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DevLogin identifies the grower by cookie, minting a default identity
// when none exists. Good enough for a single-farm deployment.
func DevLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := ""
			if ck, err := c.Cookie("GROWER_UID"); err == nil {
				uid = ck.Value
			}
			if uid == "" {
				if q := c.QueryParam("uid"); q != "" {
					c.SetCookie(&http.Cookie{Name: "GROWER_UID", Value: q, Path: "/"})
					uid = q
				} else {
					uid = "G_DEV_DEFAULT"
					c.SetCookie(&http.Cookie{Name: "GROWER_UID", Value: uid, Path: "/"})
				}
			}
			c.Set("uid", uid)
			return next(c)
		}
	}
}
