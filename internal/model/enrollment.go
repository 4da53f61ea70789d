package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment links a user to a course. At most one enrollment may exist
// per (user, course) pair, enforced by a composite unique index.
type Enrollment struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:char(36);not null;uniqueIndex:enrollment_unique_per_user_and_course"`
	CourseID  uuid.UUID `json:"courseId" gorm:"type:char(36);not null;uniqueIndex:enrollment_unique_per_user_and_course"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	User   User   `json:"-" gorm:"foreignKey:UserID"`
	Course Course `json:"-" gorm:"foreignKey:CourseID"`
}

// BeforeCreate sets UUID before creating the record.
func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
