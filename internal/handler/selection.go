package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"photobooking/internal/middleware"
	"photobooking/internal/model"
	"photobooking/internal/repository"
)

// SelectionHandler serves the pending-selection ledger for students.
type SelectionHandler struct {
	Selections *repository.SelectionRepo
}

func NewSelectionHandler(r *repository.SelectionRepo) *SelectionHandler {
	return &SelectionHandler{Selections: r}
}

type addSelectionReq struct {
	ClassID    uint64 `json:"classId"`
	ClassName  string `json:"className"`
	PriceCents uint32 `json:"price_cents"`
}

// Add handles POST /userSelectedClass.  The student email comes from the
// verified token; class name and price are snapshotted into the ledger so
// checkout stays stable against later class edits.  Selecting the same
// class twice is rejected with 409.
func (h *SelectionHandler) Add(c echo.Context) error {
	email, ok := middleware.CallerEmail(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": true, "message": "unauthorized access"})
	}
	var req addSelectionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ClassID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "classId required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Selections.Add(ctx, model.Selection{
		StudentEmail: email,
		ClassID:      req.ClassID,
		ClassName:    req.ClassName,
		PriceCents:   req.PriceCents,
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadySelected) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "class already selected"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create selection failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"insertedId": id})
}

// List handles GET /selectedClasses for the calling student.
func (h *SelectionHandler) List(c echo.Context) error {
	email, ok := middleware.CallerEmail(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": true, "message": "unauthorized access"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	selections, err := h.Selections.ListForStudent(ctx, email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, selections)
}

// Remove handles DELETE /selectedClasses/:id.  The delete is idempotent
// and scoped to the caller: removing an absent or foreign selection
// reports a zero count instead of an error.
func (h *SelectionHandler) Remove(c echo.Context) error {
	email, ok := middleware.CallerEmail(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": true, "message": "unauthorized access"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid selection id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Selections.Remove(ctx, id, email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deletedCount": n})
}
