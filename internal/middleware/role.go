package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"photobooking/internal/repository"
)

// RoleStore looks up the current role for an email.  *repository.UserRepo
// satisfies it; tests substitute a stub.
type RoleStore interface {
	RoleByEmail(ctx context.Context, email string) (string, error)
}

// RequireRole returns a middleware that enforces that the authenticated
// caller currently holds the given role.  The role is re-fetched from the
// identity store on every request rather than read from the token: a role
// embedded at issue time can go stale, and a demotion must take effect
// immediately.  It assumes JWTAuth already stored the caller's email in
// the context; denial always short-circuits with 403.
func RequireRole(store RoleStore, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, ok := CallerEmail(c)
			if !ok {
				return unauthorized(c)
			}
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			current, err := store.RoleByEmail(ctx, email)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					return forbidden(c)
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "role lookup failed"})
			}
			if current != role {
				return forbidden(c)
			}
			return next(c)
		}
	}
}

func forbidden(c echo.Context) error {
	return c.JSON(http.StatusForbidden, echo.Map{"error": true, "message": "forbidden access"})
}
