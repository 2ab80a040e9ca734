package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notice is an announcement broadcast by a warden or chief warden.
type Notice struct {
	ID         uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title      string    `json:"title" gorm:"size:255;not null"`
	Message    string    `json:"message" gorm:"type:text;not null"`
	ImageURL   string    `json:"image_url,omitempty" gorm:"size:512"`
	PostedByID uuid.UUID `json:"posted_by_id" gorm:"type:char(36);not null"`
	PostedRole Role      `json:"posted_role" gorm:"type:varchar(20);not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	PostedBy *User `json:"posted_by,omitempty" gorm:"foreignKey:PostedByID"`
}

// BeforeCreate sets UUID before creating the record.
func (n *Notice) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
