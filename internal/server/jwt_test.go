package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-advisor/internal/config"
)

func newTestJWTService(secret string) *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: secret, ExpirationHours: 24})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := newTestJWTService("test-secret-key")
	userID := uuid.New()

	token, err := service.GenerateToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID, claims.GetUserID())
}

func TestJWTService_ValidateEmptyToken(t *testing.T) {
	service := newTestJWTService("test-secret-key")

	_, err := service.ValidateToken("")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestJWTService_WrongSecret(t *testing.T) {
	serviceA := newTestJWTService("secret-a")
	serviceB := newTestJWTService("secret-b")

	token, err := serviceA.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = serviceB.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_MalformedToken(t *testing.T) {
	service := newTestJWTService("test-secret-key")

	_, err := service.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	service := newTestJWTService("test-secret-key")

	// Build a token that expired an hour ago
	claims := &Claims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret-key"))
	require.NoError(t, err)

	_, err = service.ValidateToken(signed)
	assert.Error(t, err)
}

func TestJWTService_RejectsUnexpectedSigningMethod(t *testing.T) {
	service := newTestJWTService("test-secret-key")

	// "none" algorithm tokens must never validate
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: uuid.New()})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.ValidateToken(signed)
	assert.Error(t, err)
}
