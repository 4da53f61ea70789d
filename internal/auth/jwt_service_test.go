package auth

import (
	"regexp"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJWTService_ConfirmationTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")
	userID := uuid.New()

	token, err := svc.GenerateConfirmationToken(userID, "jo@x.com", "Jo")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ParseConfirmationToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "jo@x.com", claims.Email)
	assert.Equal(t, "Jo", claims.Name)
	assert.Equal(t, PurposeEmailConfirmation, claims.Purpose)
	assert.WithinDuration(t, time.Now().Add(ConfirmationTokenExpiry), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_SessionTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")
	userID := uuid.New()

	token, err := svc.GenerateSessionToken(userID)
	assert.NoError(t, err)

	claims, err := svc.ParseSessionToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.WithinDuration(t, time.Now().Add(SessionTokenExpiry), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	userID := uuid.New()
	token, err := NewJWTService("secret-a").GenerateConfirmationToken(userID, "jo@x.com", "Jo")
	assert.NoError(t, err)

	_, err = NewJWTService("secret-b").ParseConfirmationToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret")

	claims := &ConfirmationClaims{
		UserID:  uuid.NewString(),
		Purpose: PurposeEmailConfirmation,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = svc.ParseConfirmationToken(expired)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTService_SessionTokenHasNoPurpose(t *testing.T) {
	svc := NewJWTService("test-secret")
	token, err := svc.GenerateSessionToken(uuid.New())
	assert.NoError(t, err)

	// Parsed as a confirmation token the purpose claim is absent, which the
	// verification flow treats as a type mismatch.
	claims, err := svc.ParseConfirmationToken(token)
	assert.NoError(t, err)
	assert.NotEqual(t, PurposeEmailConfirmation, claims.Purpose)
}

func TestGenerateConfirmationCode(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{6}$`)

	for i := 0; i < 100; i++ {
		code, err := GenerateConfirmationCode()
		assert.NoError(t, err)
		assert.Regexp(t, pattern, code)
	}
}
