package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestAccessToken_Roundtrip(t *testing.T) {
	access, err := IssueAccessToken("secret", "student@example.com", 60)
	require.NoError(t, err)
	require.NotEmpty(t, access.Token)
	require.WithinDuration(t, time.Now().UTC().Add(time.Hour), access.Exp, 5*time.Second)

	email, err := ParseAccessToken("secret", access.Token)
	require.NoError(t, err)
	require.Equal(t, "student@example.com", email)
}

func TestAccessToken_WrongSecret(t *testing.T) {
	access, err := IssueAccessToken("secret", "student@example.com", 60)
	require.NoError(t, err)

	_, err = ParseAccessToken("another-secret", access.Token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessToken_Garbage(t *testing.T) {
	_, err := ParseAccessToken("secret", "not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessToken_Expired(t *testing.T) {
	// Build a token whose expiry is one second in the past; verification
	// must reject it even though the signature is valid.
	claims := jwt.MapClaims{
		"email": "student@example.com",
		"exp":   time.Now().UTC().Add(-time.Second).Unix(),
		"iat":   time.Now().UTC().Add(-time.Minute).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = ParseAccessToken("secret", signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessToken_NotYetExpired(t *testing.T) {
	// One second of remaining lifetime is still valid.
	claims := jwt.MapClaims{
		"email": "student@example.com",
		"exp":   time.Now().UTC().Add(time.Second).Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	email, err := ParseAccessToken("secret", signed)
	require.NoError(t, err)
	require.Equal(t, "student@example.com", email)
}

// A token signed without an exp claim would otherwise verify forever;
// every issued token carries one, so its absence marks a forgery.
func TestAccessToken_MissingExpiryRejected(t *testing.T) {
	claims := jwt.MapClaims{
		"email": "student@example.com",
		"iat":   time.Now().UTC().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = ParseAccessToken("secret", signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessToken_MissingEmailClaim(t *testing.T) {
	claims := jwt.MapClaims{
		"exp": time.Now().UTC().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = ParseAccessToken("secret", signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}
