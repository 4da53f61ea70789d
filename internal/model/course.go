package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Course represents a course offered in the catalog. Title is unique;
// description and price are optional.
type Course struct {
	ID          uuid.UUID        `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string           `json:"title" gorm:"uniqueIndex:courses_title_unique;size:255;not null"`
	Description *string          `json:"description" gorm:"type:text"`
	Price       *decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`

	// Relations
	Enrollments []Enrollment `json:"-" gorm:"foreignKey:CourseID"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
