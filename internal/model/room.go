package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoomStatus is the occupancy state of a room.
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusFull        RoomStatus = "full"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

// ValidRoomStatus reports whether s is a known room status.
func ValidRoomStatus(s RoomStatus) bool {
	switch s {
	case RoomStatusAvailable, RoomStatusFull, RoomStatusMaintenance:
		return true
	}
	return false
}

// RoomType is the room configuration.
type RoomType string

const (
	RoomTypeSingle       RoomType = "single"
	RoomTypeSingleAttach RoomType = "singleAttach"
	RoomTypeDouble       RoomType = "double"
	RoomTypeDoubleAttach RoomType = "doubleAttach"
	RoomTypeTriple       RoomType = "triple"
	RoomTypeTripleAttach RoomType = "tripleAttach"
	RoomTypeFour         RoomType = "four"
)

// ValidRoomType reports whether t is a known room type.
func ValidRoomType(t RoomType) bool {
	switch t {
	case RoomTypeSingle, RoomTypeSingleAttach, RoomTypeDouble, RoomTypeDoubleAttach,
		RoomTypeTriple, RoomTypeTripleAttach, RoomTypeFour:
		return true
	}
	return false
}

// Room belongs to exactly one hostel. The occupant list is not stored on the
// row: User.RoomID is the single source of truth and Occupants is the gorm
// association over it, so membership and the back-reference can never drift.
// Only students carry a room reference; occupancy queries filter on role.
// Invariant: the number of occupants never exceeds Capacity.
type Room struct {
	ID         uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	HostelID   uuid.UUID  `json:"hostel_id" gorm:"type:char(36);not null;index;uniqueIndex:idx_hostel_room_number"`
	Floor      int        `json:"floor" gorm:"not null"` // 0..3, ground + 3 floors
	RoomNumber string     `json:"room_number" gorm:"size:20;not null;uniqueIndex:idx_hostel_room_number"`
	RoomType   RoomType   `json:"room_type" gorm:"type:varchar(20);not null"`
	Capacity   int        `json:"capacity" gorm:"not null"`
	Status     RoomStatus `json:"status" gorm:"type:varchar(20);not null;default:'available';index"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Relations
	Occupants []User `json:"occupants,omitempty" gorm:"foreignKey:RoomID"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// DeriveRoomStatus is the single occupancy->status derivation. Every
// occupant-mutating path must go through it; maintenance is never derived,
// only set by explicit administrative action.
func DeriveRoomStatus(capacity, occupantCount int) RoomStatus {
	if occupantCount >= capacity {
		return RoomStatusFull
	}
	return RoomStatusAvailable
}
