package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Hostel is a dormitory block. Created once by the chief warden and rarely
// mutated afterwards; every hostel has a fixed four floors (ground + 3).
type Hostel struct {
	ID          uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string     `json:"name" gorm:"uniqueIndex;size:255;not null"`
	Code        string     `json:"code" gorm:"uniqueIndex;size:50;not null"` // e.g. "A_BLOCK"
	TotalFloors int        `json:"total_floors" gorm:"not null;default:4"`
	WardenID    *uuid.UUID `json:"warden_id,omitempty" gorm:"type:char(36);index"`
	Description string     `json:"description,omitempty" gorm:"size:512"`
	CreatedByID uuid.UUID  `json:"created_by_id" gorm:"type:char(36);not null"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (h *Hostel) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
