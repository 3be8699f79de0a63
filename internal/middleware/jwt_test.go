package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"photobooking/internal/utils"
)

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	h := JWTAuth("secret")(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, h(c))
	return rec, c
}

func TestJWTAuth_ValidToken(t *testing.T) {
	access, err := utils.IssueAccessToken("secret", "student@example.com", 5)
	require.NoError(t, err)

	rec, c := runJWT(t, "Bearer "+access.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	email, ok := CallerEmail(c)
	require.True(t, ok)
	require.Equal(t, "student@example.com", email)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	rec, _ := runJWT(t, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":true,"message":"unauthorized access"}`, rec.Body.String())
}

func TestJWTAuth_MalformedToken(t *testing.T) {
	rec, _ := runJWT(t, "Bearer garbage")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	// Same generic body as every other auth failure.
	require.JSONEq(t, `{"error":true,"message":"unauthorized access"}`, rec.Body.String())
}

func TestJWTAuth_WrongScheme(t *testing.T) {
	rec, _ := runJWT(t, "Basic dXNlcjpwYXNz")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	access, err := utils.IssueAccessToken("other-secret", "student@example.com", 5)
	require.NoError(t, err)

	rec, _ := runJWT(t, "Bearer "+access.Token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
