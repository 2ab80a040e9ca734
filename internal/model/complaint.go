package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ComplaintCategory routes a complaint to the staff trade that handles it.
type ComplaintCategory string

const (
	CategoryElectrical ComplaintCategory = "electrical"
	CategoryPlumbing   ComplaintCategory = "plumbing"
	CategoryCleaning   ComplaintCategory = "cleaning"
	CategoryRoomBoy    ComplaintCategory = "roomBoy"
	CategoryCarpenter  ComplaintCategory = "carpenter"
	CategoryCivil      ComplaintCategory = "civil"
	CategoryOther      ComplaintCategory = "other"
)

// ValidComplaintCategory reports whether c is a known category.
func ValidComplaintCategory(c ComplaintCategory) bool {
	switch c {
	case CategoryElectrical, CategoryPlumbing, CategoryCleaning, CategoryRoomBoy,
		CategoryCarpenter, CategoryCivil, CategoryOther:
		return true
	}
	return false
}

// ComplaintStatus is a stored complaint state.
//
// Flow: pending -> in-progress -> closed (staff resolves)
//
//	pending -> in-progress -> not-resolvable -> closed (warden escalation)
//
// "resolved" is an input signal from staff, never a stored value: it is
// recorded as closed together with the resolution evidence.
type ComplaintStatus string

const (
	ComplaintStatusPending       ComplaintStatus = "pending"
	ComplaintStatusInProgress    ComplaintStatus = "in-progress"
	ComplaintStatusNotResolvable ComplaintStatus = "not-resolvable"
	ComplaintStatusClosed        ComplaintStatus = "closed"
)

// Complaint is a maintenance complaint raised by a student. Category and
// creator are immutable after creation; HostelID is always derived from the
// creating student, never caller-supplied.
type Complaint struct {
	ID                 uuid.UUID         `json:"id" gorm:"type:char(36);primaryKey"`
	Title              string            `json:"title" gorm:"size:255;default:'Complaint'"`
	Description        string            `json:"description" gorm:"type:text;not null"`
	Category           ComplaintCategory `json:"category" gorm:"type:varchar(20);not null;index"`
	CreatedByID        uuid.UUID         `json:"created_by_id" gorm:"type:char(36);not null;index"`
	HostelID           uuid.UUID         `json:"hostel_id" gorm:"type:char(36);not null;index"`
	ImageURL           string            `json:"image_url,omitempty" gorm:"size:512"`
	ResolutionImageURL string            `json:"resolution_image_url,omitempty" gorm:"size:512"`
	Status             ComplaintStatus   `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	HandledByID        *uuid.UUID        `json:"handled_by_id,omitempty" gorm:"type:char(36);index"`
	WardenNote         string            `json:"warden_note,omitempty" gorm:"size:512"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`

	// Relations
	CreatedBy *User `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	HandledBy *User `json:"handled_by,omitempty" gorm:"foreignKey:HandledByID"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Complaint) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
