package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role identifies what a user is allowed to do.
type Role string

const (
	RoleChiefWarden Role = "chiefWarden"
	RoleWarden      Role = "warden"
	RoleStaff       Role = "staff"
	RoleStudent     Role = "student"
	RoleParent      Role = "parent"
	RoleMessManager Role = "messManager"
	RoleNGO         Role = "ngo"
)

// ValidRole reports whether r is one of the seven known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleChiefWarden, RoleWarden, RoleStaff, RoleStudent, RoleParent, RoleMessManager, RoleNGO:
		return true
	}
	return false
}

// StaffType is a staff member's trade. Values match complaint categories so
// a staff member may only act on complaints of their own trade.
type StaffType string

const (
	StaffTypeElectrical StaffType = "electrical"
	StaffTypePlumbing   StaffType = "plumbing"
	StaffTypeCleaning   StaffType = "cleaning"
	StaffTypeRoomBoy    StaffType = "roomBoy"
	StaffTypeCarpenter  StaffType = "carpenter"
	StaffTypeCivil      StaffType = "civil"
)

// ValidStaffType reports whether t is a known trade.
func ValidStaffType(t StaffType) bool {
	switch t {
	case StaffTypeElectrical, StaffTypePlumbing, StaffTypeCleaning, StaffTypeRoomBoy, StaffTypeCarpenter, StaffTypeCivil:
		return true
	}
	return false
}

// User represents any account in the system: chief warden, warden, staff,
// student, parent, mess manager or NGO. Role-specific fields are nullable.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        *string   `json:"email,omitempty" gorm:"uniqueIndex;size:255"` // nullable: staff may log in by phone
	Phone        string    `json:"phone,omitempty" gorm:"size:20;index"`
	USN          *string   `json:"usn,omitempty" gorm:"uniqueIndex;size:20"` // student registration number
	PasswordHash string    `json:"-" gorm:"size:255;not null"`               // Never expose in JSON
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;index"`
	StaffType    StaffType `json:"staff_type,omitempty" gorm:"type:varchar(20);index"`

	HostelID        *uuid.UUID `json:"hostel_id,omitempty" gorm:"type:char(36);index"`
	RoomID          *uuid.UUID `json:"room_id,omitempty" gorm:"type:char(36);index"`
	LinkedStudentID *uuid.UUID `json:"linked_student_id,omitempty" gorm:"type:char(36);index"` // parent -> student
	CreatedByID     *uuid.UUID `json:"created_by_id,omitempty" gorm:"type:char(36)"`

	TempPassword            bool       `json:"temp_password" gorm:"default:true"`
	EmailVerified           bool       `json:"email_verified" gorm:"default:false"`
	EmailVerificationCode   *string    `json:"-" gorm:"size:6"`
	EmailVerificationExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Hostel *Hostel `json:"hostel,omitempty" gorm:"foreignKey:HostelID"`
	Room   *Room   `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
