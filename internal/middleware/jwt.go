package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"photobooking/internal/utils"
)

// EmailKey is the context key under which JWTAuth stores the verified
// email claim for downstream middleware and handlers.
const EmailKey = "email"

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's email claim into the request context.  Every
// failure mode (missing header, malformed token, bad signature, expired)
// produces the same generic 401 body so the response cannot be used as an
// oracle for which check failed.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return unauthorized(c)
			}
			raw := strings.TrimPrefix(auth, "Bearer ")
			email, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return unauthorized(c)
			}
			c.Set(EmailKey, email)
			return next(c)
		}
	}
}

// CallerEmail extracts the verified email stored by JWTAuth.  The second
// return value is false when the request never passed the middleware.
func CallerEmail(c echo.Context) (string, bool) {
	email, ok := c.Get(EmailKey).(string)
	return email, ok && email != ""
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": true, "message": "unauthorized access"})
}
