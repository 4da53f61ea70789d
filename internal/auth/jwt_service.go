package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	// ConfirmationTokenExpiry is how long an emailed confirmation link stays valid.
	ConfirmationTokenExpiry = time.Hour
	// SessionTokenExpiry is the validity of tokens issued after a successful verification.
	SessionTokenExpiry = 24 * time.Hour

	// PurposeEmailConfirmation tags tokens embedded in confirmation links.
	PurposeEmailConfirmation = "email-confirmation"
)

var (
	// ErrTokenInvalid is returned when a token fails signature or expiry checks.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrWrongPurpose is returned when a confirmation token carries an unexpected purpose.
	ErrWrongPurpose = errors.New("unexpected token purpose")
)

// ConfirmationClaims are carried by tokens embedded in confirmation links.
type ConfirmationClaims struct {
	UserID  string `json:"userId"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Purpose string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// SessionClaims are carried by session tokens. Only the user id is consumed
// by downstream handlers.
type SessionClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies confirmation and session tokens.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// GenerateConfirmationToken signs a 1-hour token identifying the user and
// tagged with the email-confirmation purpose.
func (s *JWTService) GenerateConfirmationToken(userID uuid.UUID, email, name string) (string, error) {
	now := time.Now()
	claims := &ConfirmationClaims{
		UserID:  userID.String(),
		Email:   email,
		Name:    name,
		Purpose: PurposeEmailConfirmation,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ConfirmationTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// GenerateSessionToken signs a 24-hour session token carrying the user id.
func (s *JWTService) GenerateSessionToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseConfirmationToken validates a token from a confirmation link. Signature
// and expiry failures return ErrTokenInvalid; purpose checking is left to the
// caller because confirmed-user logins accept tokens regardless of purpose.
func (s *JWTService) ParseConfirmationToken(tokenString string) (*ConfirmationClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ConfirmationClaims{}, s.keyFunc)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*ConfirmationClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// ParseSessionToken validates a session token and returns its claims.
func (s *JWTService) ParseSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, s.keyFunc)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (s *JWTService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return s.secret, nil
}
