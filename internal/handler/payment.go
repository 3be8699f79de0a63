package handler

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"photobooking/internal/middleware"
	"photobooking/internal/payment"
	"photobooking/internal/queue"
	"photobooking/internal/repository"
)

// PaymentHandler serves the two-phase checkout: intent creation against
// the external gateway, then settlement once the client has confirmed the
// charge.
type PaymentHandler struct {
	Gateway     payment.Gateway
	Coordinator *payment.Coordinator
	Payments    *repository.PaymentRepo
	// Publish sends the enrollment-confirmed event after a successful
	// settlement.  Best effort: a publish failure is logged by the
	// publisher and never fails the request.  Nil disables publishing.
	Publish func(ctx context.Context, ev queue.EnrollmentConfirmedEvent) error
}

type intentReq struct {
	Price float64 `json:"price"`
}

type settleReq struct {
	// ClassID is the selection ledger entry being settled; the field name
	// is part of the client contract.
	ClassID  uint64 `json:"classId"`
	CourseID uint64 `json:"course_id"`
	OrderID  string `json:"orderId"`
}

// CreateIntent handles POST /create-payment-intent.  Price arrives in
// major currency units and is converted to minor units for the gateway.
// Nothing is written locally; a gateway failure or timeout surfaces as a
// 500 with a generic message.
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	if _, ok := middleware.CallerEmail(c); !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": true, "message": "unauthorized access"})
	}
	var req intentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Price <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be positive"})
	}
	amountMinor := int64(math.Round(req.Price * 100))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	intent, err := h.Gateway.CreateIntent(ctx, amountMinor, uuid.NewString())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment gateway error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"clientSecret": intent.ClientSecret, "orderId": intent.OrderID})
}

// Settle handles POST /payments.  By the time this runs the gateway has
// already charged the client, so the three local writes happen inside one
// transaction; the response mirrors the three operation results.
func (h *PaymentHandler) Settle(c echo.Context) error {
	email, ok := middleware.CallerEmail(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": true, "message": "unauthorized access"})
	}
	var req settleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ClassID == 0 || req.CourseID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "classId and course_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	res, err := h.Coordinator.Settle(ctx, payment.SettleRequest{
		StudentEmail: email,
		SelectionID:  req.ClassID,
		ClassID:      req.CourseID,
		OrderID:      req.OrderID,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSelectionNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "selection not found"})
		case errors.Is(err, repository.ErrClassNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "class not found"})
		case errors.Is(err, repository.ErrSeatExhausted):
			return c.JSON(http.StatusConflict, echo.Map{"error": "no seats available"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "settlement failed"})
	}

	if h.Publish != nil {
		ev := queue.EnrollmentConfirmedEvent{
			PaymentID:    res.Payment.ID,
			StudentEmail: res.Payment.StudentEmail,
			ClassID:      res.Payment.ClassID,
			ClassName:    res.Payment.ClassName,
			AmountCents:  res.Payment.AmountCents,
			Currency:     res.Payment.Currency,
			ConfirmedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		_ = h.Publish(context.Background(), ev)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"result":       echo.Map{"insertedId": res.Payment.ID},
		"deleteResult": echo.Map{"deletedCount": res.DeletedCount},
		"updateResult": echo.Map{"modifiedCount": res.UpdatedCount},
	})
}

// History handles GET /payments for the calling student.
func (h *PaymentHandler) History(c echo.Context) error {
	email, ok := middleware.CallerEmail(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": true, "message": "unauthorized access"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	payments, err := h.Payments.ListForStudent(ctx, email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, payments)
}
