package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "github.com/Rafael-Rueda/academic-manager-api/internal/errors"
	"github.com/Rafael-Rueda/academic-manager-api/internal/model"
	"github.com/Rafael-Rueda/academic-manager-api/internal/service"
)

// AuthHandler handles registration, login and verification endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// LoginRequest represents a login request (sends a confirmation email).
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyRequest represents an email verification request. The code is
// optional when a confirmation token is sent in the Authorization header.
type VerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code,omitempty" validate:"omitempty,len=6,numeric"`
}

// MessageResponse wraps a human-readable outcome plus the affected user id.
type MessageResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// VerifyResponse carries the verified user and a fresh session token.
type VerifyResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
	Token   string      `json:"token"`
}

// Register godoc
// @Summary Register a new user (requires email confirmation)
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ValidationErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ValidationErrorResponse{
			Errors: apperrors.FormatValidationErrors(err),
		})
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, MessageResponse{
		Message: "Registration created! Check your email to confirm the account.",
		UserID:  user.ID.String(),
	})
}

// Login godoc
// @Summary Request a login confirmation email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login data"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ValidationErrorResponse{
			Errors: apperrors.FormatValidationErrors(err),
		})
	}

	user, err := h.authService.RequestLogin(c.Request().Context(), req.Email)
	if err != nil {
		// An unknown email on login is a client error, not a 404.
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
				Error: "Failed to find the specified user",
				Code:  "USER_NOT_FOUND",
			})
		}
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Message: "Login email sent! Check your email to confirm the account.",
		UserID:  user.ID.String(),
	})
}

// Verify godoc
// @Summary Verify email with a 6-digit code or a confirmation token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Verification data"
// @Param Authorization header string false "Bearer confirmation token"
// @Success 200 {object} VerifyResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/verify [post]
func (h *AuthHandler) Verify(c echo.Context) error {
	var req VerifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ValidationErrorResponse{
			Errors: apperrors.FormatValidationErrors(err),
		})
	}

	token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))

	user, sessionToken, err := h.authService.Verify(c.Request().Context(), req.Email, req.Code, token)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, VerifyResponse{
		Message: "Email confirmed successfully! You are now logged in.",
		User:    user,
		Token:   sessionToken,
	})
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
