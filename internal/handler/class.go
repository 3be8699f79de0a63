package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"photobooking/internal/middleware"
	"photobooking/internal/model"
	"photobooking/internal/repository"
)

// ClassHandler serves class submission, browsing and the admin moderation
// endpoints.
type ClassHandler struct {
	Classes *repository.ClassRepo
}

func NewClassHandler(r *repository.ClassRepo) *ClassHandler { return &ClassHandler{Classes: r} }

type submitClassReq struct {
	Name           string `json:"name"`
	Image          string `json:"image"`
	InstructorName string `json:"instructor_name"`
	AvailableSeats uint32 `json:"available_seats"`
	PriceCents     uint32 `json:"price_cents"`
}

type statusReq struct {
	Text string `json:"text"`
}

type feedbackReq struct {
	Feedback string `json:"feedback"`
}

// Submit handles POST /class (instructor only).  The instructor email is
// taken from the verified token, never from the body, and the status is
// forced to pending regardless of input.
func (h *ClassHandler) Submit(c echo.Context) error {
	email, ok := middleware.CallerEmail(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": true, "message": "unauthorized access"})
	}
	var req submitClassReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Classes.Submit(ctx, model.Class{
		Name:            req.Name,
		Image:           req.Image,
		InstructorName:  req.InstructorName,
		InstructorEmail: email,
		AvailableSeats:  req.AvailableSeats,
		PriceCents:      req.PriceCents,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create class failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"insertedId": id})
}

// ListAll handles GET /all-classes with an optional ?email= instructor
// filter.  No authentication: pending and rejected offerings are visible
// on purpose so instructors can track their submissions.
func (h *ClassHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	classes, err := h.Classes.ListAll(ctx, c.QueryParam("email"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, classes)
}

// ListApproved handles GET /approved-class, the public browsing endpoint.
func (h *ClassHandler) ListApproved(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	classes, err := h.Classes.ListApproved(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, classes)
}

// SetStatus handles PATCH /class-status/:id (admin only).  Unrecognized
// status values are rejected instead of being written through.
func (h *ClassHandler) SetStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid class id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Classes.SetStatus(ctx, id, strings.ToLower(strings.TrimSpace(req.Text)))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidStatus):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unrecognized status"})
		case errors.Is(err, repository.ErrClassNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "class not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"modifiedCount": n})
}

// SetFeedback handles PATCH /feedback/:id (admin only).
func (h *ClassHandler) SetFeedback(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid class id"})
	}
	var req feedbackReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Classes.SetFeedback(ctx, id, req.Feedback)
	if err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "class not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"modifiedCount": n})
}
