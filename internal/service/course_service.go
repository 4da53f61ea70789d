package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Rafael-Rueda/academic-manager-api/internal/cache"
	"github.com/Rafael-Rueda/academic-manager-api/internal/model"
	"github.com/Rafael-Rueda/academic-manager-api/internal/repository"
)

const (
	// coursePageSize is the fixed page size of the listing endpoint.
	coursePageSize = 2
	courseCacheTTL = 5 * time.Minute
)

// CourseService exposes catalog operations.
type CourseService interface {
	ListCourses(ctx context.Context, search, orderBy string, page int) ([]repository.CourseWithEnrollments, int64, error)
	GetCourse(ctx context.Context, id uuid.UUID) (*model.Course, error)
	CreateCourse(ctx context.Context, title string, description *string, price *decimal.Decimal) (*model.Course, error)
}

type courseService struct {
	repo  repository.CourseRepository
	cache *cache.Client
}

// NewCourseService builds a CourseService with repository and cache.
func NewCourseService(repo repository.CourseRepository, cacheClient *cache.Client) CourseService {
	return &courseService{repo: repo, cache: cacheClient}
}

func (s *courseService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("course:%s", id)
}

func (s *courseService) ListCourses(ctx context.Context, search, orderBy string, page int) ([]repository.CourseWithEnrollments, int64, error) {
	if orderBy == "" {
		orderBy = "id"
	}
	if page < 1 {
		page = 1
	}

	return s.repo.List(ctx, repository.CourseListParams{
		Search:   search,
		OrderBy:  orderBy,
		Page:     page,
		PageSize: coursePageSize,
	})
}

func (s *courseService) GetCourse(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	var cached model.Course
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), course, courseCacheTTL)
	return course, nil
}

func (s *courseService) CreateCourse(ctx context.Context, title string, description *string, price *decimal.Decimal) (*model.Course, error) {
	course := &model.Course{
		Title:       title,
		Description: description,
		Price:       price,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}
