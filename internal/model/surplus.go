package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SurplusStatus is the lifecycle state of a surplus food posting.
//
// Flow: available -> claimed -> distributed, or available -> expired.
// Expiry is driven by the deadline, lazily at read/claim time and by the
// periodic sweep.
type SurplusStatus string

const (
	SurplusStatusAvailable   SurplusStatus = "available"
	SurplusStatusClaimed     SurplusStatus = "claimed"
	SurplusStatusExpired     SurplusStatus = "expired"
	SurplusStatusDistributed SurplusStatus = "distributed"
)

// SurplusFood is a surplus-food posting by a mess manager, claimable by
// exactly one NGO before its deadline.
type SurplusFood struct {
	ID          uuid.UUID     `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string        `json:"title" gorm:"size:255;default:'Surplus Food'"`
	Description string        `json:"description" gorm:"type:text;not null"`
	Quantity    string        `json:"quantity" gorm:"size:50;not null"` // free text: "10 kg", "25 plates"
	ImageURL    string        `json:"image_url,omitempty" gorm:"size:512"`
	Deadline    time.Time     `json:"deadline" gorm:"not null;index"`
	PostedByID  uuid.UUID     `json:"posted_by_id" gorm:"type:char(36);not null;index"`
	ClaimedByID *uuid.UUID    `json:"claimed_by_id,omitempty" gorm:"type:char(36);index"`
	Status      SurplusStatus `json:"status" gorm:"type:varchar(20);not null;default:'available';index"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Relations
	PostedBy  *User `json:"posted_by,omitempty" gorm:"foreignKey:PostedByID"`
	ClaimedBy *User `json:"claimed_by,omitempty" gorm:"foreignKey:ClaimedByID"`
}

// BeforeCreate sets UUID before creating the record.
func (s *SurplusFood) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
