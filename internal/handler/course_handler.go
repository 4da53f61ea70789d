package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/Rafael-Rueda/academic-manager-api/internal/errors"
	"github.com/Rafael-Rueda/academic-manager-api/internal/model"
	"github.com/Rafael-Rueda/academic-manager-api/internal/repository"
	"github.com/Rafael-Rueda/academic-manager-api/internal/service"
)

// CourseHandler handles catalog endpoints.
type CourseHandler struct {
	courseService service.CourseService
}

// NewCourseHandler creates a new course handler.
func NewCourseHandler(courseService service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// ListCoursesQuery represents the listing query string.
type ListCoursesQuery struct {
	Search  string `query:"search"`
	OrderBy string `query:"orderBy" validate:"omitempty,oneof=id title price"`
	Page    int    `query:"page" validate:"omitempty,gte=1"`
}

// ListCoursesResponse is one page of courses plus the total matching rows.
type ListCoursesResponse struct {
	Courses []repository.CourseWithEnrollments `json:"courses"`
	Total   int64                              `json:"total"`
}

// CourseResponse wraps a single course.
type CourseResponse struct {
	Course *model.Course `json:"course"`
}

// CreateCourseRequest represents a course creation request.
type CreateCourseRequest struct {
	Title       string   `json:"title" validate:"required,min=5"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
}

// CreateCourseResponse returns the new course identity.
type CreateCourseResponse struct {
	CourseID string `json:"courseId"`
}

// ListCourses godoc
// @Summary Get all courses
// @Tags courses
// @Produce json
// @Param search query string false "Case-insensitive substring filter on title"
// @Param orderBy query string false "Sort key" Enums(id, title, price)
// @Param page query int false "1-based page number"
// @Success 200 {object} ListCoursesResponse
// @Failure 400 {object} errors.ValidationErrorResponse
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c echo.Context) error {
	var query ListCoursesQuery
	if err := c.Bind(&query); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query string")
	}
	if err := c.Validate(&query); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ValidationErrorResponse{
			Errors: apperrors.FormatValidationErrors(err),
		})
	}

	courses, total, err := h.courseService.ListCourses(c.Request().Context(), query.Search, query.OrderBy, query.Page)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if courses == nil {
		courses = []repository.CourseWithEnrollments{}
	}
	return c.JSON(http.StatusOK, ListCoursesResponse{Courses: courses, Total: total})
}

// GetCourse godoc
// @Summary Get a specific course
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} CourseResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid course ID",
			Code:  "INVALID_UUID",
		})
	}

	course, err := h.courseService.GetCourse(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, apperrors.ErrorResponse{
				Error: "course not found",
				Code:  "NOT_FOUND",
			})
		}
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, CourseResponse{Course: course})
}

// CreateCourse godoc
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body CreateCourseRequest true "Course data"
// @Success 201 {object} CreateCourseResponse
// @Failure 400 {object} errors.ValidationErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c echo.Context) error {
	var req CreateCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ValidationErrorResponse{
			Errors: apperrors.FormatValidationErrors(err),
		})
	}

	var price *decimal.Decimal
	if req.Price != nil {
		p := decimal.NewFromFloat(*req.Price)
		price = &p
	}

	course, err := h.courseService.CreateCourse(c.Request().Context(), req.Title, req.Description, price)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, CreateCourseResponse{CourseID: course.ID.String()})
}
