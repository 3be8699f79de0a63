package repository

import (
	"context"
	"database/sql"
	"strings"

	"photobooking/internal/model"
)

// SelectionRepo is the ledger of pending enrollment intents.  A row lives
// from the moment a student picks a class until they either drop it or the
// settlement transaction consumes it.
type SelectionRepo struct{ db *sql.DB }

func NewSelectionRepo(db *sql.DB) *SelectionRepo { return &SelectionRepo{db: db} }

const selectionColumns = "id,student_email,class_id,class_name,price_cents,created_at"

// Add inserts a selection.  The table carries a unique key on
// (student_email, class_id); a second pending selection of the same class
// maps to ErrAlreadySelected.
func (r *SelectionRepo) Add(ctx context.Context, s model.Selection) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO selections (student_email, class_id, class_name, price_cents) VALUES (?,?,?,?)",
		strings.ToLower(strings.TrimSpace(s.StudentEmail)), s.ClassID, s.ClassName, s.PriceCents)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrAlreadySelected
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListForStudent returns the student's pending selections, newest first.
func (r *SelectionRepo) ListForStudent(ctx context.Context, email string) ([]model.Selection, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+selectionColumns+" FROM selections WHERE student_email=? ORDER BY created_at DESC", email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	selections := make([]model.Selection, 0)
	for rows.Next() {
		var s model.Selection
		if err := rows.Scan(&s.ID, &s.StudentEmail, &s.ClassID, &s.ClassName, &s.PriceCents, &s.CreatedAt); err != nil {
			return nil, err
		}
		selections = append(selections, s)
	}
	return selections, rows.Err()
}

// GetByIDTx loads a selection inside the caller's transaction so the
// settlement sees a row that cannot be deleted out from under it.
func (r *SelectionRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Selection, error) {
	var s model.Selection
	err := tx.QueryRowContext(ctx,
		"SELECT "+selectionColumns+" FROM selections WHERE id=? LIMIT 1", id).
		Scan(&s.ID, &s.StudentEmail, &s.ClassID, &s.ClassName, &s.PriceCents, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Selection{}, ErrSelectionNotFound
	}
	return s, err
}

// Remove deletes a selection by id on behalf of its owner.  The delete is
// idempotent: removing an absent row succeeds with a zero count.
func (r *SelectionRepo) Remove(ctx context.Context, id uint64, studentEmail string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM selections WHERE id=? AND student_email=?",
		id, strings.ToLower(strings.TrimSpace(studentEmail)))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// RemoveTx deletes a selection inside the caller's transaction; used by
// the settlement once the payment row is written.
func (r *SelectionRepo) RemoveTx(ctx context.Context, tx *sql.Tx, id uint64) (int64, error) {
	res, err := tx.ExecContext(ctx, "DELETE FROM selections WHERE id=?", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
