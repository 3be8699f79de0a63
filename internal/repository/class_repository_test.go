package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

const seatGuardQuery = "UPDATE classes SET available_seats=available_seats-1, enrolled_count=enrolled_count+1 WHERE id=? AND available_seats > 0"

func TestClassRepo_ReserveSeatTx_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(seatGuardQuery)).
		WithArgs(uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	repo := NewClassRepo(db)
	require.NoError(t, repo.ReserveSeatTx(context.Background(), tx, 9))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepo_ReserveSeatTx_SeatExhausted(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The guard matches no row; the follow-up lookup finds the class with
	// zero seats, so the failure is capacity, not a missing class.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(seatGuardQuery)).
		WithArgs(uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT available_seats FROM classes WHERE id=?")).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats"}).AddRow(0))

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	repo := NewClassRepo(db)
	err = repo.ReserveSeatTx(context.Background(), tx, 9)
	require.ErrorIs(t, err, ErrSeatExhausted)
}

func TestClassRepo_ReserveSeatTx_ClassNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(seatGuardQuery)).
		WithArgs(uint64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT available_seats FROM classes WHERE id=?")).
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats"}))

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	repo := NewClassRepo(db)
	err = repo.ReserveSeatTx(context.Background(), tx, 404)
	require.ErrorIs(t, err, ErrClassNotFound)
}

func TestClassRepo_SetStatus_InvalidEnum(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewClassRepo(db)
	_, err = repo.SetStatus(context.Background(), 1, "published")
	require.ErrorIs(t, err, ErrInvalidStatus)
	// Rejected before any SQL runs.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepo_SetStatus_Approve(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE classes SET status=? WHERE id=?")).
		WithArgs("approved", uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewClassRepo(db)
	n, err := repo.SetStatus(context.Background(), 3, "approved")
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestClassRepo_Submit_ForcesPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO classes")).
		WithArgs("Night Photography", "", "Ana", "ana@example.com", uint32(12), uint32(4900), "pending").
		WillReturnResult(sqlmock.NewResult(11, 1))

	repo := NewClassRepo(db)
	id, err := repo.Submit(context.Background(), classFixture())
	require.NoError(t, err)
	require.Equal(t, uint64(11), id)
	require.NoError(t, mock.ExpectationsWereMet())
}
