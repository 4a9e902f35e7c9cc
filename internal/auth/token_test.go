package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markitup/markitup-api/internal/user"
)

func TestNewJWTService_EmptySecret(t *testing.T) {
	_, err := NewJWTService(nil, time.Hour)
	assert.Error(t, err)
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc, err := NewJWTService([]byte("test-secret"), time.Hour)
	require.NoError(t, err)

	userID := user.ID("64f1c2d4e5a6b7c8d9e0f1a2")

	token, err := svc.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestJWTService_IssuanceVariance(t *testing.T) {
	svc, err := NewJWTService([]byte("test-secret"), time.Hour)
	require.NoError(t, err)

	userID := user.ID("64f1c2d4e5a6b7c8d9e0f1a2")

	first, err := svc.Issue(userID)
	require.NoError(t, err)
	second, err := svc.Issue(userID)
	require.NoError(t, err)

	// Distinct strings (jti varies), both independently valid
	assert.NotEqual(t, first, second)

	got, err := svc.Verify(first)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
	got, err = svc.Verify(second)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestJWTService_Expired(t *testing.T) {
	svc, err := NewJWTService([]byte("test-secret"), -time.Minute)
	require.NoError(t, err)

	token, err := svc.Issue(user.ID("64f1c2d4e5a6b7c8d9e0f1a2"))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_WrongKey(t *testing.T) {
	issuer, err := NewJWTService([]byte("key-one"), time.Hour)
	require.NoError(t, err)
	verifier, err := NewJWTService([]byte("key-two"), time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue(user.ID("64f1c2d4e5a6b7c8d9e0f1a2"))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_WrongAlgorithm(t *testing.T) {
	svc, err := NewJWTService([]byte("test-secret"), time.Hour)
	require.NoError(t, err)

	// Unsigned token with the right claims must still be rejected
	claims := jwt.RegisteredClaims{
		Subject:   "64f1c2d4e5a6b7c8d9e0f1a2",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_Malformed(t *testing.T) {
	svc, err := NewJWTService([]byte("test-secret"), time.Hour)
	require.NoError(t, err)

	for _, tokenString := range []string{"", "garbage", "a.b.c", "a.b"} {
		_, err := svc.Verify(tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tokenString)
	}
}

func TestJWTService_MissingSubject(t *testing.T) {
	svc, err := NewJWTService([]byte("test-secret"), time.Hour)
	require.NoError(t, err)

	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Verify(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
