package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	// ErrUserCreationFailed is returned when a user row can neither be inserted nor found.
	ErrUserCreationFailed = errors.New("failed to create user")
	// ErrUserNotFound is returned when no user exists for the given email or id.
	ErrUserNotFound = errors.New("user not found")
	// ErrMissingCredential is returned when verification is attempted without a code or token.
	ErrMissingCredential = errors.New("either 'code' in body or 'Authorization' header with JWT is required")
	// ErrInvalidCode is returned when a confirmation code is unknown or already used.
	ErrInvalidCode = errors.New("invalid or already used confirmation code")
	// ErrCodeExpired is returned when a confirmation code exists but has expired.
	ErrCodeExpired = errors.New("confirmation code has expired")
	// ErrInvalidToken is returned when a JWT fails signature or expiry checks.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrInvalidTokenType is returned when a JWT carries the wrong purpose claim.
	ErrInvalidTokenType = errors.New("invalid token type")
	// ErrTokenUserMismatch is returned when a token's subject differs from the requested user.
	ErrTokenUserMismatch = errors.New("token does not match user")
	// ErrEmailSendFailed is returned when the confirmation email cannot be delivered.
	ErrEmailSendFailed = errors.New("failed to send confirmation email")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ValidationErrorResponse carries per-field validation messages.
type ValidationErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain and store errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserCreationFailed):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USER_CREATION_FAILED")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrMissingCredential):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_CREDENTIAL")
	case errors.Is(err, ErrInvalidCode):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CODE")
	case errors.Is(err, ErrCodeExpired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CODE_EXPIRED")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrInvalidTokenType):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_TOKEN_TYPE")
	case errors.Is(err, ErrTokenUserMismatch):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "TOKEN_USER_MISMATCH")
	case errors.Is(err, ErrEmailSendFailed):
		return NewHTTPError(http.StatusBadGateway, err.Error(), "EMAIL_SEND_FAILED")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NewHTTPError(http.StatusNotFound, "record not found", "NOT_FOUND")
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mapMySQLError(mysqlErr)
	}

	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}

// MySQL server error numbers for constraint violations.
const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrNoReferencedRow = 1452
	mysqlErrColumnNotNull   = 1048
	mysqlErrCheckViolated   = 3819
)

// mapMySQLError classifies constraint violations the way the store reports
// them, deriving a human-readable message from the violated key name.
func mapMySQLError(err *mysql.MySQLError) *HTTPError {
	switch err.Number {
	case mysqlErrDuplicateEntry:
		return NewHTTPError(http.StatusConflict, duplicateEntryMessage(err.Message), "DUPLICATE_ENTRY")
	case mysqlErrNoReferencedRow:
		return NewHTTPError(http.StatusBadRequest, foreignKeyMessage(err.Message), "INVALID_REFERENCE")
	case mysqlErrColumnNotNull:
		return NewHTTPError(http.StatusBadRequest, "Required field is missing.", "MISSING_FIELD")
	case mysqlErrCheckViolated:
		return NewHTTPError(http.StatusBadRequest, "Invalid data format or value.", "INVALID_DATA")
	default:
		return NewHTTPError(http.StatusInternalServerError, "database operation failed", "DATABASE_ERROR")
	}
}

// duplicateEntryMessage inspects the violated key name embedded in a
// 1062 message ("Duplicate entry 'x' for key 'courses.courses_title_unique'").
func duplicateEntryMessage(detail string) string {
	switch {
	case strings.Contains(detail, "users_email_unique"):
		return "Email address is already registered."
	case strings.Contains(detail, "courses_title_unique"):
		return "Course title already exists."
	case strings.Contains(detail, "enrollment_unique_per_user_and_course"):
		return "User is already enrolled in this course."
	case strings.Contains(detail, "email"):
		return "Email address is already registered."
	case strings.Contains(detail, "title"):
		return "Title already exists."
	default:
		return "Duplicate entry detected. This value already exists."
	}
}

func foreignKeyMessage(detail string) string {
	switch {
	case strings.Contains(detail, "user"):
		return "Invalid user reference."
	case strings.Contains(detail, "course"):
		return "Invalid course reference."
	default:
		return "Invalid reference to related data."
	}
}

// FormatValidationErrors flattens validator failures into a field → message map.
func FormatValidationErrors(err error) map[string]string {
	formatted := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		formatted["request"] = "Invalid request data"
		return formatted
	}

	for _, fieldErr := range validationErrs {
		field := strings.ToLower(fieldErr.Field()[:1]) + fieldErr.Field()[1:]
		formatted[field] = validationMessage(fieldErr)
	}
	return formatted
}

func validationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return "Invalid email address"
	case "min":
		return err.Field() + " must have a minimum of " + err.Param() + " characters"
	case "gte":
		return err.Field() + " cannot be negative"
	case "len":
		return err.Field() + " must be " + err.Param() + " characters"
	case "numeric":
		return err.Field() + " must contain only digits"
	default:
		return err.Field() + " is invalid"
	}
}
