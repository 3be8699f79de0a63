package repository

import (
	"context"
	"database/sql"
	"strings"

	"photobooking/internal/model"
)

// PaymentRepo persists completed checkouts.  Rows are append-only: the
// settlement transaction is the only writer and nothing ever updates or
// deletes a payment.
type PaymentRepo struct{ db *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// InsertTx writes a payment row inside the settlement transaction and
// returns its ID.
func (r *PaymentRepo) InsertTx(ctx context.Context, tx *sql.Tx, p model.Payment) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO payments (student_email, class_id, class_name, amount_cents, currency, order_id) VALUES (?,?,?,?,?,?)",
		strings.ToLower(strings.TrimSpace(p.StudentEmail)), p.ClassID, p.ClassName,
		p.AmountCents, p.Currency, p.OrderID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListForStudent returns the student's payment history, newest first.
func (r *PaymentRepo) ListForStudent(ctx context.Context, email string) ([]model.Payment, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	rows, err := r.db.QueryContext(ctx,
		"SELECT id,student_email,class_id,class_name,amount_cents,currency,order_id,created_at FROM payments WHERE student_email=? ORDER BY created_at DESC",
		email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	payments := make([]model.Payment, 0)
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.StudentEmail, &p.ClassID, &p.ClassName,
			&p.AmountCents, &p.Currency, &p.OrderID, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
