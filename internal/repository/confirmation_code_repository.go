package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Rafael-Rueda/academic-manager-api/internal/model"
)

// ConfirmationCodeRepository defines persistence operations for emailed
// confirmation codes.
type ConfirmationCodeRepository interface {
	Create(ctx context.Context, code *model.EmailConfirmationCode) error
	// FindActive returns the unused code row matching the user and code
	// exactly, or gorm.ErrRecordNotFound.
	FindActive(ctx context.Context, userID uuid.UUID, code string) (*model.EmailConfirmationCode, error)
	// Consume marks a code used. The update is guarded on used=false so a
	// code can be consumed at most once; losing the race surfaces as
	// gorm.ErrRecordNotFound.
	Consume(ctx context.Context, id uuid.UUID) error
	// ConsumeAndConfirmUser consumes a code and confirms its user inside a
	// single transaction.
	ConsumeAndConfirmUser(ctx context.Context, codeID, userID uuid.UUID) error
}

type confirmationCodeRepository struct {
	db *gorm.DB
}

// NewConfirmationCodeRepository builds a GORM-backed repository.
func NewConfirmationCodeRepository(db *gorm.DB) ConfirmationCodeRepository {
	return &confirmationCodeRepository{db: db}
}

func (r *confirmationCodeRepository) Create(ctx context.Context, code *model.EmailConfirmationCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *confirmationCodeRepository) FindActive(ctx context.Context, userID uuid.UUID, code string) (*model.EmailConfirmationCode, error) {
	var row model.EmailConfirmationCode
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND code = ? AND used = ?", userID, code, false).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *confirmationCodeRepository) Consume(ctx context.Context, id uuid.UUID) error {
	return consumeCode(r.db.WithContext(ctx), id)
}

func (r *confirmationCodeRepository) ConsumeAndConfirmUser(ctx context.Context, codeID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := consumeCode(tx, codeID); err != nil {
			return err
		}
		return tx.Model(&model.User{}).
			Where("id = ?", userID).
			Update("confirmed", true).Error
	})
}

func consumeCode(tx *gorm.DB, id uuid.UUID) error {
	result := tx.Model(&model.EmailConfirmationCode{}).
		Where("id = ? AND used = ?", id, false).
		Update("used", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
