package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Hegpro/Samrt-hostel-management/internal/model"
)

// RoomRepository defines room persistence operations, including occupant
// membership: occupancy lives on users.room_id, so occupant-mutating methods
// write the users table but belong to the room aggregate.
type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	Save(ctx context.Context, room *model.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Room, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Room, error)
	FindByHostelAndNumber(ctx context.Context, hostelID uuid.UUID, roomNumber string) (*model.Room, error)
	ListByHostel(ctx context.Context, hostelID uuid.UUID) ([]model.Room, error)
	ListByHostelWithOccupants(ctx context.Context, hostelID uuid.UUID) ([]model.Room, error)
	CountOccupants(ctx context.Context, roomID uuid.UUID) (int64, error)
	AssignOccupant(ctx context.Context, roomID, hostelID, studentID uuid.UUID) error
	RemoveOccupant(ctx context.Context, roomID, studentID uuid.UUID) (bool, error)
	MoveOccupants(ctx context.Context, oldRoomID, newRoomID, newHostelID uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, roomID uuid.UUID, status model.RoomStatus) error
	ClearAllOccupancy(ctx context.Context) error
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo RoomRepository) error) error
}

type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates a new room repository.
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

// Create creates a new room.
func (r *roomRepository) Create(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

// Save updates an existing room.
func (r *roomRepository) Save(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

// FindByID finds a room by ID with its student occupants.
func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	var room model.Room
	if err := r.db.WithContext(ctx).Preload("Occupants", "role = ?", model.RoleStudent).
		Where("id = ?", id).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// FindByIDForUpdate finds a room by ID with a row-level lock. All
// capacity-changing paths lock the room row first, which serializes
// concurrent occupancy mutations on the same room.
func (r *roomRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	var room model.Room
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// FindByHostelAndNumber finds a room by its number within a hostel.
func (r *roomRepository) FindByHostelAndNumber(ctx context.Context, hostelID uuid.UUID, roomNumber string) (*model.Room, error) {
	var room model.Room
	if err := r.db.WithContext(ctx).
		Where("hostel_id = ? AND room_number = ?", hostelID, roomNumber).
		First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// ListByHostel lists a hostel's rooms ordered by floor then number.
func (r *roomRepository) ListByHostel(ctx context.Context, hostelID uuid.UUID) ([]model.Room, error) {
	var rooms []model.Room
	if err := r.db.WithContext(ctx).
		Where("hostel_id = ?", hostelID).
		Order("floor, room_number").
		Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// ListByHostelWithOccupants lists a hostel's rooms with student occupants
// preloaded.
func (r *roomRepository) ListByHostelWithOccupants(ctx context.Context, hostelID uuid.UUID) ([]model.Room, error) {
	var rooms []model.Room
	if err := r.db.WithContext(ctx).Preload("Occupants", "role = ?", model.RoleStudent).
		Where("hostel_id = ?", hostelID).
		Order("floor, room_number").
		Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// CountOccupants counts the students currently assigned to a room. Only
// students occupy rooms; the role filter keeps any other row that ends up
// with a room reference out of capacity checks.
func (r *roomRepository) CountOccupants(ctx context.Context, roomID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("room_id = ? AND role = ?", roomID, model.RoleStudent).
		Count(&count).Error
	return count, err
}

// AssignOccupant points a student's room and hostel references at the room.
func (r *roomRepository) AssignOccupant(ctx context.Context, roomID, hostelID, studentID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", studentID).
		Updates(map[string]interface{}{"room_id": roomID, "hostel_id": hostelID}).Error
}

// RemoveOccupant clears a student's room reference. Idempotent: returns
// false without error when the student was not in the room.
func (r *roomRepository) RemoveOccupant(ctx context.Context, roomID, studentID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND room_id = ?", studentID, roomID).
		Update("room_id", nil)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MoveOccupants repoints every occupant of oldRoomID at newRoomID in one
// statement and returns how many moved.
func (r *roomRepository) MoveOccupants(ctx context.Context, oldRoomID, newRoomID, newHostelID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("room_id = ? AND role = ?", oldRoomID, model.RoleStudent).
		Updates(map[string]interface{}{"room_id": newRoomID, "hostel_id": newHostelID})
	return res.RowsAffected, res.Error
}

// UpdateStatus sets the status of a room.
func (r *roomRepository) UpdateStatus(ctx context.Context, roomID uuid.UUID, status model.RoomStatus) error {
	return r.db.WithContext(ctx).Model(&model.Room{}).
		Where("id = ?", roomID).
		Update("status", status).Error
}

// ClearAllOccupancy detaches every student from every room and resets
// non-maintenance room statuses. Used by the academic-year reset.
func (r *roomRepository) ClearAllOccupancy(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("room_id IS NOT NULL").
		Update("room_id", nil).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&model.Room{}).
		Where("status <> ?", model.RoomStatusMaintenance).
		Update("status", model.RoomStatusAvailable).Error
}

// WithTransaction executes a function within a database transaction.
func (r *roomRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo RoomRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &roomRepository{db: tx})
	})
}
