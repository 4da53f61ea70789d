package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "github.com/Rafael-Rueda/academic-manager-api/internal/errors"
	"github.com/Rafael-Rueda/academic-manager-api/internal/model"
	"github.com/Rafael-Rueda/academic-manager-api/internal/repository"
)

// MockCourseService is a mock implementation of service.CourseService.
type MockCourseService struct {
	mock.Mock
}

func (m *MockCourseService) ListCourses(ctx context.Context, search, orderBy string, page int) ([]repository.CourseWithEnrollments, int64, error) {
	args := m.Called(ctx, search, orderBy, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]repository.CourseWithEnrollments), args.Get(1).(int64), args.Error(2)
}

func (m *MockCourseService) GetCourse(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Course), args.Error(1)
}

func (m *MockCourseService) CreateCourse(ctx context.Context, title string, description *string, price *decimal.Decimal) (*model.Course, error) {
	args := m.Called(ctx, title, description, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Course), args.Error(1)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

func TestCourseHandler_CreateCourse(t *testing.T) {
	t.Run("short title fails validation with a field message", func(t *testing.T) {
		e := newTestEcho()
		svc := new(MockCourseService)
		h := NewCourseHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/courses", strings.NewReader(`{"title":"abc"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := h.CreateCourse(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body apperrors.ValidationErrorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body.Errors, "title")
		svc.AssertNotCalled(t, "CreateCourse", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("negative price fails validation", func(t *testing.T) {
		e := newTestEcho()
		svc := new(MockCourseService)
		h := NewCourseHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/courses", strings.NewReader(`{"title":"Databases 101","price":-10}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := h.CreateCourse(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body apperrors.ValidationErrorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body.Errors, "price")
	})

	t.Run("duplicate title maps to a conflict", func(t *testing.T) {
		e := newTestEcho()
		svc := new(MockCourseService)
		h := NewCourseHandler(svc)

		svc.On("CreateCourse", mock.Anything, "Databases 101", mock.Anything, mock.Anything).
			Return(nil, &mysql.MySQLError{
				Number:  1062,
				Message: "Duplicate entry 'Databases 101' for key 'courses.courses_title_unique'",
			})

		req := httptest.NewRequest(http.MethodPost, "/courses", strings.NewReader(`{"title":"Databases 101"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := h.CreateCourse(c)

		var httpErr *echo.HTTPError
		assert.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusConflict, httpErr.Code)
	})

	t.Run("valid payload returns the new course id", func(t *testing.T) {
		e := newTestEcho()
		svc := new(MockCourseService)
		h := NewCourseHandler(svc)

		courseID := uuid.New()
		svc.On("CreateCourse", mock.Anything, "Databases 101", mock.Anything, mock.Anything).
			Return(&model.Course{ID: courseID, Title: "Databases 101"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/courses", strings.NewReader(`{"title":"Databases 101","price":120}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := h.CreateCourse(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var body CreateCourseResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, courseID.String(), body.CourseID)
	})
}

func TestCourseHandler_GetCourse(t *testing.T) {
	t.Run("malformed id is a bad request", func(t *testing.T) {
		e := newTestEcho()
		svc := new(MockCourseService)
		h := NewCourseHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/courses/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("not-a-uuid")

		err := h.GetCourse(c)

		var httpErr *echo.HTTPError
		assert.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		svc.AssertNotCalled(t, "GetCourse", mock.Anything, mock.Anything)
	})

	t.Run("missing course is a 404", func(t *testing.T) {
		e := newTestEcho()
		svc := new(MockCourseService)
		h := NewCourseHandler(svc)

		courseID := uuid.New()
		svc.On("GetCourse", mock.Anything, courseID).Return(nil, gorm.ErrRecordNotFound)

		req := httptest.NewRequest(http.MethodGet, "/courses/"+courseID.String(), nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(courseID.String())

		err := h.GetCourse(c)

		var httpErr *echo.HTTPError
		assert.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Code)
	})

	t.Run("found course is returned and terminal", func(t *testing.T) {
		e := newTestEcho()
		svc := new(MockCourseService)
		h := NewCourseHandler(svc)

		courseID := uuid.New()
		svc.On("GetCourse", mock.Anything, courseID).Return(&model.Course{ID: courseID, Title: "Databases 101"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/courses/"+courseID.String(), nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(courseID.String())

		err := h.GetCourse(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var body CourseResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Databases 101", body.Course.Title)
	})
}

func TestCourseHandler_ListCourses(t *testing.T) {
	t.Run("query parameters pass through to the service", func(t *testing.T) {
		e := newTestEcho()
		svc := new(MockCourseService)
		h := NewCourseHandler(svc)

		rows := []repository.CourseWithEnrollments{
			{ID: uuid.New(), Title: "Go for Beginners", Enrollments: 2},
		}
		svc.On("ListCourses", mock.Anything, "go", "title", 3).Return(rows, int64(7), nil)

		req := httptest.NewRequest(http.MethodGet, "/courses?search=go&orderBy=title&page=3", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := h.ListCourses(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var body ListCoursesResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, int64(7), body.Total)
		assert.Len(t, body.Courses, 1)
	})

	t.Run("unknown sort key fails validation", func(t *testing.T) {
		e := newTestEcho()
		svc := new(MockCourseService)
		h := NewCourseHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/courses?orderBy=description", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := h.ListCourses(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "ListCourses", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty result is an empty list, not null", func(t *testing.T) {
		e := newTestEcho()
		svc := new(MockCourseService)
		h := NewCourseHandler(svc)

		svc.On("ListCourses", mock.Anything, "", "", 0).Return(nil, int64(0), nil)

		req := httptest.NewRequest(http.MethodGet, "/courses", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := h.ListCourses(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"courses":[]`)
	})
}
