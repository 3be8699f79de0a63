package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"photobooking/internal/model"
	"photobooking/internal/repository"
)

// ErrSettlementFailed marks a post-guard consistency failure.  The client
// has already been charged by the gateway when settlement runs, so this
// error is logged with full context before being surfaced: it means a paid
// but unconfirmed enrollment that needs human follow-up.
var ErrSettlementFailed = errors.New("settlement failed")

// Coordinator finalises a paid enrollment.  It is the only writer of
// payment rows and seat counters and the only deleter of selections on
// settlement.
type Coordinator struct {
	DB         *sql.DB
	Classes    *repository.ClassRepo
	Selections *repository.SelectionRepo
	Payments   *repository.PaymentRepo
	Currency   string
}

// SettleRequest identifies the selection being paid for and the class it
// enrolls into, plus the gateway order reference produced at intent time.
type SettleRequest struct {
	StudentEmail string
	SelectionID  uint64
	ClassID      uint64
	OrderID      string
}

// SettleResult reports the three legs of a successful settlement.
type SettleResult struct {
	Payment      model.Payment
	DeletedCount int64
	UpdatedCount int64
}

// Settle runs the three dependent writes as one database transaction:
// seat guard first, then the payment insert, then the selection delete.
// Either all three commit or none do.  The seat guard is an atomic
// compare-and-decrement, so concurrent settlements against the last seat
// resolve to exactly one success and one ErrSeatExhausted.
func (co *Coordinator) Settle(ctx context.Context, req SettleRequest) (SettleResult, error) {
	tx, err := co.DB.BeginTx(ctx, nil)
	if err != nil {
		return SettleResult{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	sel, err := co.Selections.GetByIDTx(ctx, tx, req.SelectionID)
	if err != nil {
		return SettleResult{}, err
	}
	// A student may only settle their own selection; report the mismatch as
	// not-found rather than confirming the id exists.
	if !strings.EqualFold(sel.StudentEmail, req.StudentEmail) {
		return SettleResult{}, repository.ErrSelectionNotFound
	}
	if sel.ClassID != req.ClassID {
		return SettleResult{}, repository.ErrSelectionNotFound
	}

	// Seat guard before any money-moving write.  Failing here is clean: the
	// transaction holds nothing yet that reflects the external charge.
	if err := co.Classes.ReserveSeatTx(ctx, tx, req.ClassID); err != nil {
		return SettleResult{}, err
	}

	pay := model.Payment{
		StudentEmail: sel.StudentEmail,
		ClassID:      sel.ClassID,
		ClassName:    sel.ClassName,
		AmountCents:  sel.PriceCents,
		Currency:     co.Currency,
		OrderID:      req.OrderID,
	}
	payID, err := co.Payments.InsertTx(ctx, tx, pay)
	if err != nil {
		return SettleResult{}, co.fail("payment insert", sel, err)
	}
	pay.ID = payID

	deleted, err := co.Selections.RemoveTx(ctx, tx, sel.ID)
	if err != nil {
		return SettleResult{}, co.fail("selection delete", sel, err)
	}
	// A concurrent settlement of the same selection can win the race after
	// our snapshot read: its delete consumes the row and ours affects
	// nothing.  Committing anyway would record a second payment and a
	// second seat for one checkout, so abort and let the rollback undo the
	// guard and the payment insert.
	if deleted != 1 {
		log.Printf("settlement aborted, selection already consumed: selection_id=%d class_id=%d student=%s",
			sel.ID, sel.ClassID, sel.StudentEmail)
		return SettleResult{}, repository.ErrSelectionNotFound
	}

	if err := tx.Commit(); err != nil {
		return SettleResult{}, co.fail("commit", sel, err)
	}
	committed = true

	return SettleResult{Payment: pay, DeletedCount: deleted, UpdatedCount: 1}, nil
}

// fail logs a post-guard failure with enough context for manual
// reconciliation and wraps it in ErrSettlementFailed.  The transaction is
// rolled back by the caller's defer, so the seat decrement never survives
// a failed payment insert.
func (co *Coordinator) fail(step string, sel model.Selection, err error) error {
	log.Printf("settlement failed at %s: selection_id=%d class_id=%d student=%s amount_cents=%d err=%v",
		step, sel.ID, sel.ClassID, sel.StudentEmail, sel.PriceCents, err)
	return fmt.Errorf("%w at %s: %v", ErrSettlementFailed, step, err)
}
