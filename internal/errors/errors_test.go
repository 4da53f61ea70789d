package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapErrorToHTTP_DomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"user creation failed", ErrUserCreationFailed, http.StatusBadRequest, "USER_CREATION_FAILED"},
		{"user not found", ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{"missing credential", ErrMissingCredential, http.StatusBadRequest, "MISSING_CREDENTIAL"},
		{"invalid code", ErrInvalidCode, http.StatusBadRequest, "INVALID_CODE"},
		{"expired code", ErrCodeExpired, http.StatusBadRequest, "CODE_EXPIRED"},
		{"invalid token", ErrInvalidToken, http.StatusBadRequest, "INVALID_TOKEN"},
		{"wrong token type", ErrInvalidTokenType, http.StatusBadRequest, "INVALID_TOKEN_TYPE"},
		{"token user mismatch", ErrTokenUserMismatch, http.StatusBadRequest, "TOKEN_USER_MISMATCH"},
		{"mail failure", ErrEmailSendFailed, http.StatusBadGateway, "EMAIL_SEND_FAILED"},
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_WrappedDomainError(t *testing.T) {
	wrapped := fmt.Errorf("%w: smtp: connection refused", ErrEmailSendFailed)
	httpErr := MapErrorToHTTP(wrapped)
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
	assert.Equal(t, "EMAIL_SEND_FAILED", httpErr.Code)
}

func TestMapErrorToHTTP_ConstraintViolations(t *testing.T) {
	tests := []struct {
		name        string
		err         *mysql.MySQLError
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "duplicate email",
			err:         &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'jo@x.com' for key 'users.users_email_unique'"},
			wantStatus:  http.StatusConflict,
			wantMessage: "Email address is already registered.",
		},
		{
			name:        "duplicate course title",
			err:         &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'Databases' for key 'courses.courses_title_unique'"},
			wantStatus:  http.StatusConflict,
			wantMessage: "Course title already exists.",
		},
		{
			name:        "duplicate enrollment",
			err:         &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a-b' for key 'enrollments.enrollment_unique_per_user_and_course'"},
			wantStatus:  http.StatusConflict,
			wantMessage: "User is already enrolled in this course.",
		},
		{
			name:        "unmapped duplicate falls back to generic wording",
			err:         &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'x' for key 'widgets.widgets_code_unique'"},
			wantStatus:  http.StatusConflict,
			wantMessage: "Duplicate entry detected. This value already exists.",
		},
		{
			name:        "foreign key to users",
			err:         &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row: a foreign key constraint fails (`enrollments`, CONSTRAINT `fk_users_enrollments`)"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid user reference.",
		},
		{
			name:        "not null",
			err:         &mysql.MySQLError{Number: 1048, Message: "Column 'title' cannot be null"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Required field is missing.",
		},
		{
			name:        "check violation",
			err:         &mysql.MySQLError{Number: 3819, Message: "Check constraint 'price_nonnegative' is violated."},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid data format or value.",
		},
		{
			name:        "unknown store error degrades to 500",
			err:         &mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "database operation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantMessage, httpErr.Message)
		})
	}
}

func TestMapErrorToHTTP_WrappedMySQLError(t *testing.T) {
	wrapped := fmt.Errorf("create course: %w", &mysql.MySQLError{
		Number:  1062,
		Message: "Duplicate entry 'Databases' for key 'courses.courses_title_unique'",
	})
	httpErr := MapErrorToHTTP(wrapped)
	assert.Equal(t, http.StatusConflict, httpErr.StatusCode)
	assert.Equal(t, "Course title already exists.", httpErr.Message)
}
