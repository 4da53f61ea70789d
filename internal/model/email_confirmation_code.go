package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmailConfirmationCode is a short-lived 6-digit single-use credential
// issued on registration and login requests. Rows are deleted along with
// their owning user.
type EmailConfirmationCode struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:char(36);not null;index"`
	Code      string    `json:"code" gorm:"size:6;not null"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null"`
	Used      bool      `json:"used" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (c *EmailConfirmationCode) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
