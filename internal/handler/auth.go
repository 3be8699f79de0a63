package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"photobooking/internal/config"
	"photobooking/internal/middleware"
	"photobooking/internal/repository"
	"photobooking/internal/utils"
)

// AuthHandler bundles dependencies for token issuing and role-flag checks.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

type jwtReq struct {
	Email string `json:"email"`
}

// IssueToken handles POST /jwt.  The client-side auth provider has already
// verified the identity; this endpoint exchanges the asserted email for a
// signed, time-limited server token.
func (h *AuthHandler) IssueToken(c echo.Context) error {
	var req jwtReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email required"})
	}
	access, err := utils.IssueAccessToken(h.Cfg.JWTSecret, email, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"token": access.Token})
}

// AdminFlag handles GET /users/admin/:email.  A caller asking about any
// identity other than their own receives a false-shaped answer rather than
// an error, so the endpoint cannot be used to probe other accounts.
func (h *AuthHandler) AdminFlag(c echo.Context) error {
	return h.roleFlag(c, "admin")
}

// InstructorFlag handles GET /users/instructor/:email; same self-only rule
// as AdminFlag.
func (h *AuthHandler) InstructorFlag(c echo.Context) error {
	return h.roleFlag(c, "instructor")
}

func (h *AuthHandler) roleFlag(c echo.Context, role string) error {
	caller, ok := middleware.CallerEmail(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": true, "message": "unauthorized access"})
	}
	target := strings.ToLower(strings.TrimSpace(c.Param("email")))
	if caller != target {
		return c.JSON(http.StatusOK, echo.Map{role: false})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	current, err := h.Users.RoleByEmail(ctx, target)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusOK, echo.Map{role: false})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{role: current == role})
}
