package handler

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"photobooking/internal/middleware"
	"photobooking/internal/repository"
)

func newClassHandler(t *testing.T) (*ClassHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewClassHandler(repository.NewClassRepo(db)), mock, func() { db.Close() }
}

func TestSetStatus_UnrecognizedValueRejected(t *testing.T) {
	h, mock, done := newClassHandler(t)
	defer done()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"text":"live"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/class-status/:id")
	c.SetParamNames("id")
	c.SetParamValues("3")

	require.NoError(t, h.SetStatus(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	// The invalid enum never reaches the database.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStatus_Approve(t *testing.T) {
	h, mock, done := newClassHandler(t)
	defer done()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE classes SET status=? WHERE id=?")).
		WithArgs("approved", uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"text":"Approved"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/class-status/:id")
	c.SetParamNames("id")
	c.SetParamValues("3")

	require.NoError(t, h.SetStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"modifiedCount":1}`, rec.Body.String())
}

func TestListApproved(t *testing.T) {
	h, mock, done := newClassHandler(t)
	defer done()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT .+ FROM classes WHERE status=").
		WithArgs("approved").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "image", "instructor_name", "instructor_email",
			"available_seats", "enrolled_count", "price_cents", "status", "feedback",
			"created_at", "updated_at",
		}).AddRow(3, "Night Photography", "", "Ana", "ana@example.com", 2, 1, 4900, "approved", nil, now, now))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/approved-class", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.ListApproved(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"Night Photography"`)
	require.Contains(t, rec.Body.String(), `"available_seats":2`)
}

func TestSubmit_UsesTokenEmail(t *testing.T) {
	h, mock, done := newClassHandler(t)
	defer done()

	// The instructor email comes from the verified token, not the body.
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO classes")).
		WithArgs("Studio Lighting", "", "Ana", "ana@example.com", uint32(8), uint32(9900), "pending").
		WillReturnResult(sqlmock.NewResult(21, 1))

	e := echo.New()
	body := `{"name":"Studio Lighting","instructor_name":"Ana","available_seats":8,"price_cents":9900}`
	req := httptest.NewRequest(http.MethodPost, "/class", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.EmailKey, "ana@example.com")

	require.NoError(t, h.Submit(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `{"insertedId":21}`, rec.Body.String())
}
