package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"photobooking/internal/repository"
)

func newUserHandler(t *testing.T) (*UserHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewUserHandler(repository.NewUserRepo(db)), mock, func() { db.Close() }
}

func postJSON(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegister(t *testing.T) {
	h, mock, done := newUserHandler(t)
	defer done()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (email, name, photo_url, role) VALUES (?,?,?,'')")).
		WithArgs("mia@example.com", "Mia", "").
		WillReturnResult(sqlmock.NewResult(7, 1))

	c, rec := postJSON(echo.New(), "/users", `{"email":"Mia@Example.com","name":"Mia"}`)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `{"insertedId":7}`, rec.Body.String())
}

func TestRegister_DuplicateEmailIsNoOp(t *testing.T) {
	h, mock, done := newUserHandler(t)
	defer done()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("mia@example.com", "Mia", "").
		WillReturnError(errors.New("Error 1062: Duplicate entry 'mia@example.com' for key 'users.email'"))

	c, rec := postJSON(echo.New(), "/users", `{"email":"mia@example.com","name":"Mia"}`)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message":"user already exists"}`, rec.Body.String())
}

func TestRegister_EmailRequired(t *testing.T) {
	h, mock, done := newUserHandler(t)
	defer done()

	c, rec := postJSON(echo.New(), "/users", `{"name":"Mia"}`)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetRole_Promote(t *testing.T) {
	h, mock, done := newUserHandler(t)
	defer done()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET role=? WHERE id=?")).
		WithArgs("instructor", uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"text":"Instructor"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/user/admin/:id")
	c.SetParamNames("id")
	c.SetParamValues("7")

	require.NoError(t, h.SetRole(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"modifiedCount":1}`, rec.Body.String())
}

func TestSetRole_UnrecognizedValueRejected(t *testing.T) {
	h, mock, done := newUserHandler(t)
	defer done()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"text":"superuser"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/user/admin/:id")
	c.SetParamNames("id")
	c.SetParamValues("7")

	require.NoError(t, h.SetRole(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
