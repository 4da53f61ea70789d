package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Rafael-Rueda/academic-manager-api/internal/model"
)

// EnrollmentRepository defines enrollment persistence operations. The
// at-most-one-enrollment-per-pair invariant is the store's composite
// unique index, not application logic.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *model.Enrollment) error
	CountByCourse(ctx context.Context, courseID uuid.UUID) (int64, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository builds a GORM-backed repository.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *model.Enrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *enrollmentRepository) CountByCourse(ctx context.Context, courseID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}
