package repository

import (
	"context"
	"database/sql"
	"strings"

	"photobooking/internal/model"
)

// ClassRepo provides CRUD operations for class offerings and the seat
// accounting used by the settlement transaction.
type ClassRepo struct{ db *sql.DB }

func NewClassRepo(db *sql.DB) *ClassRepo { return &ClassRepo{db: db} }

// DB exposes the underlying handle so the payment coordinator can open a
// transaction spanning this and the other repositories.
func (r *ClassRepo) DB() *sql.DB { return r.db }

const classColumns = "id,name,image,instructor_name,instructor_email,available_seats,enrolled_count,price_cents,status,feedback,created_at,updated_at"

// Submit inserts a new offering with status forced to pending and returns
// its ID.  No uniqueness check: an instructor may offer the same class
// title repeatedly.
func (r *ClassRepo) Submit(ctx context.Context, c model.Class) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO classes (name, image, instructor_name, instructor_email, available_seats, enrolled_count, price_cents, status) VALUES (?,?,?,?,?,0,?,?)",
		c.Name, c.Image, c.InstructorName, strings.ToLower(strings.TrimSpace(c.InstructorEmail)),
		c.AvailableSeats, c.PriceCents, model.ClassPending)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListApproved returns all offerings visible to browsing students.
func (r *ClassRepo) ListApproved(ctx context.Context) ([]model.Class, error) {
	return r.list(ctx,
		"SELECT "+classColumns+" FROM classes WHERE status=? ORDER BY created_at DESC",
		model.ClassApproved)
}

// ListAll returns every offering, optionally filtered by instructor email.
func (r *ClassRepo) ListAll(ctx context.Context, instructorEmail string) ([]model.Class, error) {
	if e := strings.ToLower(strings.TrimSpace(instructorEmail)); e != "" {
		return r.list(ctx,
			"SELECT "+classColumns+" FROM classes WHERE instructor_email=? ORDER BY created_at DESC", e)
	}
	return r.list(ctx, "SELECT "+classColumns+" FROM classes ORDER BY created_at DESC")
}

// GetByID fetches a single offering.
func (r *ClassRepo) GetByID(ctx context.Context, id uint64) (model.Class, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+classColumns+" FROM classes WHERE id=? LIMIT 1", id)
	c, err := scanClass(row)
	if err == sql.ErrNoRows {
		return model.Class{}, ErrClassNotFound
	}
	return c, err
}

// SetStatus sets the lifecycle status only.  The value is validated
// against the status enum before touching the database.
func (r *ClassRepo) SetStatus(ctx context.Context, id uint64, status string) (int64, error) {
	if !model.ValidClassStatus(status) {
		return 0, ErrInvalidStatus
	}
	res, err := r.db.ExecContext(ctx, "UPDATE classes SET status=? WHERE id=?", status, id)
	if err != nil {
		return 0, err
	}
	return r.affectedOrMissing(ctx, res, id)
}

// SetFeedback sets the admin feedback text only.
func (r *ClassRepo) SetFeedback(ctx context.Context, id uint64, feedback string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "UPDATE classes SET feedback=? WHERE id=?", feedback, id)
	if err != nil {
		return 0, err
	}
	return r.affectedOrMissing(ctx, res, id)
}

// ReserveSeatTx moves one seat from available to enrolled inside the
// caller's transaction.  The guard and the decrement are a single UPDATE so
// two concurrent settlements against the last seat cannot both pass: one
// sees rows-affected 1, the other 0.  A zero result is disambiguated into
// ErrClassNotFound or ErrSeatExhausted.
func (r *ClassRepo) ReserveSeatTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE classes SET available_seats=available_seats-1, enrolled_count=enrolled_count+1 WHERE id=? AND available_seats > 0",
		id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	var seats uint32
	if err := tx.QueryRowContext(ctx, "SELECT available_seats FROM classes WHERE id=? LIMIT 1", id).Scan(&seats); err != nil {
		if err == sql.ErrNoRows {
			return ErrClassNotFound
		}
		return err
	}
	return ErrSeatExhausted
}

func (r *ClassRepo) list(ctx context.Context, query string, args ...interface{}) ([]model.Class, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	classes := make([]model.Class, 0)
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// affectedOrMissing turns a zero-row UPDATE into ErrClassNotFound when the
// id does not exist, while leaving value-unchanged updates as a zero count.
func (r *ClassRepo) affectedOrMissing(ctx context.Context, res sql.Result, id uint64) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM classes WHERE id=? LIMIT 1", id).Scan(&exists); err != nil {
			if err == sql.ErrNoRows {
				return 0, ErrClassNotFound
			}
			return 0, err
		}
	}
	return n, nil
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanClass(row rowScanner) (model.Class, error) {
	var c model.Class
	var feedback sql.NullString
	err := row.Scan(&c.ID, &c.Name, &c.Image, &c.InstructorName, &c.InstructorEmail,
		&c.AvailableSeats, &c.EnrolledCount, &c.PriceCents, &c.Status, &feedback,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return model.Class{}, err
	}
	if feedback.Valid {
		f := feedback.String
		c.Feedback = &f
	}
	return c, nil
}
