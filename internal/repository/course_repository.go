package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Rafael-Rueda/academic-manager-api/internal/model"
)

// CourseWithEnrollments is a course row joined with its enrollment count.
type CourseWithEnrollments struct {
	ID          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Enrollments int64            `json:"enrollments"`
}

// CourseListParams filter, order and paginate course listings.
type CourseListParams struct {
	Search   string
	OrderBy  string
	Page     int
	PageSize int
}

// CourseRepository defines course persistence operations.
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Course, error)
	// List returns one page of courses with enrollment counts plus the
	// total number of matching rows independent of pagination.
	List(ctx context.Context, params CourseListParams) ([]CourseWithEnrollments, int64, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository builds a GORM-backed repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	var course model.Course
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// orderColumns whitelists sortable columns; anything else falls back to id.
var orderColumns = map[string]string{
	"id":    "courses.id",
	"title": "courses.title",
	"price": "courses.price",
}

func (r *courseRepository) List(ctx context.Context, params CourseListParams) ([]CourseWithEnrollments, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Course{})
	if params.Search != "" {
		base = base.Where("LOWER(courses.title) LIKE ?", "%"+strings.ToLower(params.Search)+"%")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := orderColumns[params.OrderBy]
	if !ok {
		column = orderColumns["id"]
	}

	var rows []CourseWithEnrollments
	err := base.Session(&gorm.Session{}).
		Select("courses.id, courses.title, courses.description, courses.price, COUNT(enrollments.id) AS enrollments").
		Joins("LEFT JOIN enrollments ON enrollments.course_id = courses.id").
		Group("courses.id").
		Order(column + " ASC").
		Limit(params.PageSize).
		Offset((params.Page - 1) * params.PageSize).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
