package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Rafael-Rueda/academic-manager-api/internal/auth"
	apperrors "github.com/Rafael-Rueda/academic-manager-api/internal/errors"
	"github.com/Rafael-Rueda/academic-manager-api/internal/mailer"
	"github.com/Rafael-Rueda/academic-manager-api/internal/model"
	"github.com/Rafael-Rueda/academic-manager-api/internal/repository"
)

type confirmationKind int

const (
	registrationConfirmation confirmationKind = iota
	loginConfirmation
)

// AuthService orchestrates registration, login requests and verification.
type AuthService interface {
	// Register creates an unconfirmed user and emails a confirmation.
	// Registering an already-registered email resends a fresh confirmation
	// instead of reporting the conflict.
	Register(ctx context.Context, name, email string) (*model.User, error)
	// RequestLogin emails a confirmation to an existing user. The user
	// does not have to be confirmed yet.
	RequestLogin(ctx context.Context, email string) (*model.User, error)
	// Verify proves email ownership with a 6-digit code or a confirmation
	// token and returns the user plus a fresh 24h session token.
	Verify(ctx context.Context, email, code, token string) (*model.User, string, error)
}

type authService struct {
	userRepo    repository.UserRepository
	codeRepo    repository.ConfirmationCodeRepository
	jwtService  *auth.JWTService
	mailer      mailer.Service
	frontendURL string
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	codeRepo repository.ConfirmationCodeRepository,
	jwtService *auth.JWTService,
	mailerSvc mailer.Service,
	frontendURL string,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		codeRepo:    codeRepo,
		jwtService:  jwtService,
		mailer:      mailerSvc,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

func (s *authService) Register(ctx context.Context, name, email string) (*model.User, error) {
	user := &model.User{
		Name:  name,
		Email: email,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Most likely a duplicate email: fall back to the existing row and
		// resend a confirmation rather than surfacing the conflict.
		existing, lookupErr := s.userRepo.FindByEmail(ctx, email)
		if lookupErr != nil {
			return nil, apperrors.ErrUserCreationFailed
		}
		user = existing
	}

	if err := s.sendConfirmation(ctx, user, registrationConfirmation); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) RequestLogin(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if err := s.sendConfirmation(ctx, user, loginConfirmation); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Verify(ctx context.Context, email, code, token string) (*model.User, string, error) {
	if code == "" && token == "" {
		return nil, "", apperrors.ErrMissingCredential
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.ErrUserNotFound
		}
		return nil, "", err
	}

	if !user.Confirmed {
		if code != "" {
			user, err = s.confirmWithCode(ctx, user, code)
		} else {
			user, err = s.confirmWithToken(ctx, token)
		}
	} else {
		// Already confirmed: the same credentials act as a login.
		if code != "" {
			err = s.loginWithCode(ctx, user, code)
		} else {
			err = s.loginWithToken(user, token)
		}
	}
	if err != nil {
		return nil, "", err
	}

	sessionToken, err := s.jwtService.GenerateSessionToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("generate session token: %w", err)
	}
	return user, sessionToken, nil
}

// confirmWithCode consumes an unused, unexpired code and confirms the user.
// Both writes run in one transaction guarded on the code's unused state, so
// concurrent identical requests cannot both consume the same code.
func (s *authService) confirmWithCode(ctx context.Context, user *model.User, code string) (*model.User, error) {
	row, err := s.codeRepo.FindActive(ctx, user.ID, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCode
		}
		return nil, err
	}
	if time.Now().After(row.ExpiresAt) {
		return nil, apperrors.ErrCodeExpired
	}

	if err := s.codeRepo.ConsumeAndConfirmUser(ctx, row.ID, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCode
		}
		return nil, err
	}

	user.Confirmed = true
	return user, nil
}

// confirmWithToken confirms whichever user the token's subject names. The
// purpose claim must be email-confirmation.
func (s *authService) confirmWithToken(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.jwtService.ParseConfirmationToken(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if claims.Purpose != auth.PurposeEmailConfirmation {
		return nil, apperrors.ErrInvalidTokenType
	}

	subjectID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	confirmed, err := s.userRepo.Confirm(ctx, subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return confirmed, nil
}

func (s *authService) loginWithCode(ctx context.Context, user *model.User, code string) error {
	row, err := s.codeRepo.FindActive(ctx, user.ID, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidCode
		}
		return err
	}
	if time.Now().After(row.ExpiresAt) {
		return apperrors.ErrCodeExpired
	}

	if err := s.codeRepo.Consume(ctx, row.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidCode
		}
		return err
	}
	return nil
}

// loginWithToken accepts any valid token whose subject matches the user,
// regardless of purpose.
func (s *authService) loginWithToken(user *model.User, token string) error {
	claims, err := s.jwtService.ParseConfirmationToken(token)
	if err != nil {
		return apperrors.ErrInvalidToken
	}
	if claims.UserID != user.ID.String() {
		return apperrors.ErrTokenUserMismatch
	}
	return nil
}

// sendConfirmation issues a fresh code and confirmation token and emails
// both. Previously issued codes stay valid until they expire or are used.
func (s *authService) sendConfirmation(ctx context.Context, user *model.User, kind confirmationKind) error {
	token, err := s.jwtService.GenerateConfirmationToken(user.ID, user.Email, user.Name)
	if err != nil {
		return fmt.Errorf("generate confirmation token: %w", err)
	}

	code, err := auth.GenerateConfirmationCode()
	if err != nil {
		return err
	}

	row := &model.EmailConfirmationCode{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: time.Now().Add(auth.ConfirmationTokenExpiry),
	}
	if err := s.codeRepo.Create(ctx, row); err != nil {
		return fmt.Errorf("persist confirmation code: %w", err)
	}

	link := fmt.Sprintf("%s/auth/verify?token=%s", s.frontendURL, token)

	var sendErr error
	switch kind {
	case registrationConfirmation:
		sendErr = s.mailer.SendRegistrationConfirmation(user.Email, user.Name, code, link)
	case loginConfirmation:
		sendErr = s.mailer.SendLoginConfirmation(user.Email, user.Name, code, link)
	}
	if sendErr != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrEmailSendFailed, sendErr)
	}
	return nil
}
