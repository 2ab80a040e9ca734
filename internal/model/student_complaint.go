package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentComplaintStatus is the two-state disciplinary complaint lifecycle.
type StudentComplaintStatus string

const (
	StudentComplaintOpen   StudentComplaintStatus = "open"
	StudentComplaintClosed StudentComplaintStatus = "closed"
)

// StudentComplaint is a disciplinary complaint raised by a warden or chief
// warden about a student, visible to the student's linked parent.
type StudentComplaint struct {
	ID          uuid.UUID              `json:"id" gorm:"type:char(36);primaryKey"`
	StudentID   uuid.UUID              `json:"student_id" gorm:"type:char(36);not null;index"`
	ParentID    *uuid.UUID             `json:"parent_id,omitempty" gorm:"type:char(36);index"`
	RaisedByID  uuid.UUID              `json:"raised_by_id" gorm:"type:char(36);not null"`
	RaisedRole  Role                   `json:"raised_role" gorm:"type:varchar(20);not null"` // warden or chiefWarden
	Title       string                 `json:"title" gorm:"size:255;not null"`
	Description string                 `json:"description" gorm:"type:text;not null"`
	Status      StudentComplaintStatus `json:"status" gorm:"type:varchar(10);not null;default:'open';index"`
	ClosedByID  *uuid.UUID             `json:"closed_by_id,omitempty" gorm:"type:char(36)"`
	ClosedNote  string                 `json:"closed_note,omitempty" gorm:"size:512"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`

	// Relations
	Student  *User `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	RaisedBy *User `json:"raised_by,omitempty" gorm:"foreignKey:RaisedByID"`
}

// BeforeCreate sets UUID before creating the record.
func (sc *StudentComplaint) BeforeCreate(tx *gorm.DB) error {
	if sc.ID == uuid.Nil {
		sc.ID = uuid.New()
	}
	return nil
}
