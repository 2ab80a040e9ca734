package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Hegpro/Samrt-hostel-management/internal/errors"
	"github.com/Hegpro/Samrt-hostel-management/internal/model"
	"github.com/Hegpro/Samrt-hostel-management/internal/repository"
)

// RelocationResult reports the outcome of a full-room relocation.
type RelocationResult struct {
	MovedStudents int    `json:"moved_students"`
	FromRoom      string `json:"from"`
	ToRoom        string `json:"to"`
}

// RoomService maintains the room capacity invariant and status consistency
// on every occupant-mutating path.
type RoomService interface {
	CreateRoom(ctx context.Context, hostelID uuid.UUID, floor int, roomNumber string, roomType model.RoomType, capacity int) (*model.Room, error)
	GetRoom(ctx context.Context, roomID uuid.UUID) (*model.Room, error)
	ListByHostel(ctx context.Context, hostelID uuid.UUID) (*model.Hostel, []model.Room, error)
	AssignStudent(ctx context.Context, roomID, studentID uuid.UUID) (*model.Room, error)
	RemoveStudent(ctx context.Context, roomID, studentID uuid.UUID) (*model.Room, error)
	Relocate(ctx context.Context, oldRoomID, newRoomID uuid.UUID) (*RelocationResult, error)
	UpdateStatus(ctx context.Context, roomID uuid.UUID, status model.RoomStatus) (*model.Room, error)
}

type roomService struct {
	roomRepo   repository.RoomRepository
	hostelRepo repository.HostelRepository
	userRepo   repository.UserRepository
	roomLocks  *keyedMutex
}

// NewRoomService creates a new room service.
func NewRoomService(roomRepo repository.RoomRepository, hostelRepo repository.HostelRepository, userRepo repository.UserRepository, roomLocks *keyedMutex) RoomService {
	return &roomService{
		roomRepo:   roomRepo,
		hostelRepo: hostelRepo,
		userRepo:   userRepo,
		roomLocks:  roomLocks,
	}
}

// NewRoomLocks creates the shared per-room lock set. One instance is shared
// by every service that mutates occupancy.
func NewRoomLocks() *keyedMutex {
	return &keyedMutex{}
}

// CreateRoom creates a room in a hostel. Room numbers are unique per hostel.
func (s *roomService) CreateRoom(ctx context.Context, hostelID uuid.UUID, floor int, roomNumber string, roomType model.RoomType, capacity int) (*model.Room, error) {
	if !model.ValidRoomType(roomType) || capacity < 1 || floor < 0 {
		return nil, errors.ErrValidation
	}

	if _, err := s.hostelRepo.FindByID(ctx, hostelID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrHostelNotFound
		}
		return nil, fmt.Errorf("find hostel: %w", err)
	}

	if _, err := s.roomRepo.FindByHostelAndNumber(ctx, hostelID, roomNumber); err == nil {
		return nil, errors.ErrRoomExists
	} else if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check room number: %w", err)
	}

	room := &model.Room{
		HostelID:   hostelID,
		Floor:      floor,
		RoomNumber: roomNumber,
		RoomType:   roomType,
		Capacity:   capacity,
		Status:     model.RoomStatusAvailable,
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}
	return room, nil
}

// GetRoom returns a room with its occupants.
func (s *roomService) GetRoom(ctx context.Context, roomID uuid.UUID) (*model.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("find room: %w", err)
	}
	return room, nil
}

// ListByHostel returns a hostel and its rooms ordered by floor and number.
func (s *roomService) ListByHostel(ctx context.Context, hostelID uuid.UUID) (*model.Hostel, []model.Room, error) {
	hostel, err := s.hostelRepo.FindByID(ctx, hostelID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, errors.ErrHostelNotFound
		}
		return nil, nil, fmt.Errorf("find hostel: %w", err)
	}
	rooms, err := s.roomRepo.ListByHostelWithOccupants(ctx, hostelID)
	if err != nil {
		return nil, nil, fmt.Errorf("list rooms: %w", err)
	}
	return hostel, rooms, nil
}

// AssignStudent adds a student to a room. The room row is locked for the
// duration of the check-and-write, so two concurrent assignments into a
// nearly-full room cannot both succeed.
func (s *roomService) AssignStudent(ctx context.Context, roomID, studentID uuid.UUID) (*model.Room, error) {
	student, err := s.userRepo.FindByID(ctx, studentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	if student.Role != model.RoleStudent {
		return nil, errors.ErrValidation
	}

	unlock := s.roomLocks.lock(roomID)
	defer unlock()

	err = s.roomRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.RoomRepository) error {
		room, err := repo.FindByIDForUpdate(ctx, roomID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrRoomNotFound
			}
			return fmt.Errorf("lock room: %w", err)
		}

		count, err := repo.CountOccupants(ctx, roomID)
		if err != nil {
			return fmt.Errorf("count occupants: %w", err)
		}
		if int(count) >= room.Capacity {
			return errors.ErrRoomFull
		}

		if err := repo.AssignOccupant(ctx, roomID, room.HostelID, studentID); err != nil {
			return fmt.Errorf("assign occupant: %w", err)
		}
		return repo.UpdateStatus(ctx, roomID, model.DeriveRoomStatus(room.Capacity, int(count)+1))
	})
	if err != nil {
		return nil, err
	}
	return s.roomRepo.FindByID(ctx, roomID)
}

// RemoveStudent pulls a student out of a room. Idempotent when the student
// is not in the room; status is recomputed either way.
func (s *roomService) RemoveStudent(ctx context.Context, roomID, studentID uuid.UUID) (*model.Room, error) {
	unlock := s.roomLocks.lock(roomID)
	defer unlock()

	err := s.roomRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.RoomRepository) error {
		room, err := repo.FindByIDForUpdate(ctx, roomID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrRoomNotFound
			}
			return fmt.Errorf("lock room: %w", err)
		}

		if _, err := repo.RemoveOccupant(ctx, roomID, studentID); err != nil {
			return fmt.Errorf("remove occupant: %w", err)
		}

		count, err := repo.CountOccupants(ctx, roomID)
		if err != nil {
			return fmt.Errorf("count occupants: %w", err)
		}
		if room.Status == model.RoomStatusMaintenance {
			// maintenance is only left by explicit administrative action
			return nil
		}
		return repo.UpdateStatus(ctx, roomID, model.DeriveRoomStatus(room.Capacity, int(count)))
	})
	if err != nil {
		return nil, err
	}
	return s.roomRepo.FindByID(ctx, roomID)
}

// Relocate moves all occupants of the old room into the new room as one
// transaction. Ordered per-room locks keep concurrent assignments and
// relocations on either room from interleaving with the multi-step move.
func (s *roomService) Relocate(ctx context.Context, oldRoomID, newRoomID uuid.UUID) (*RelocationResult, error) {
	if oldRoomID == newRoomID {
		return nil, errors.ErrValidation
	}

	unlock := s.roomLocks.lockPair(oldRoomID, newRoomID)
	defer unlock()

	var result RelocationResult
	err := s.roomRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.RoomRepository) error {
		oldRoom, err := repo.FindByIDForUpdate(ctx, oldRoomID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrRoomNotFound
			}
			return fmt.Errorf("lock old room: %w", err)
		}
		newRoom, err := repo.FindByIDForUpdate(ctx, newRoomID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrRoomNotFound
			}
			return fmt.Errorf("lock new room: %w", err)
		}

		if newRoom.Status == model.RoomStatusMaintenance {
			return errors.ErrRoomUnderMaintenance
		}

		movingCount, err := repo.CountOccupants(ctx, oldRoomID)
		if err != nil {
			return fmt.Errorf("count old occupants: %w", err)
		}
		existingCount, err := repo.CountOccupants(ctx, newRoomID)
		if err != nil {
			return fmt.Errorf("count new occupants: %w", err)
		}
		if newRoom.Capacity-int(existingCount) < int(movingCount) {
			return errors.ErrInsufficientCapacity
		}

		moved, err := repo.MoveOccupants(ctx, oldRoomID, newRoomID, newRoom.HostelID)
		if err != nil {
			return fmt.Errorf("move occupants: %w", err)
		}

		if err := repo.UpdateStatus(ctx, oldRoomID, model.RoomStatusAvailable); err != nil {
			return fmt.Errorf("update old room status: %w", err)
		}
		newStatus := model.DeriveRoomStatus(newRoom.Capacity, int(existingCount+moved))
		if err := repo.UpdateStatus(ctx, newRoomID, newStatus); err != nil {
			return fmt.Errorf("update new room status: %w", err)
		}

		result = RelocationResult{
			MovedStudents: int(moved),
			FromRoom:      oldRoom.RoomNumber,
			ToRoom:        newRoom.RoomNumber,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateStatus is the administrative status override, including moving a
// room into and out of maintenance.
func (s *roomService) UpdateStatus(ctx context.Context, roomID uuid.UUID, status model.RoomStatus) (*model.Room, error) {
	if !model.ValidRoomStatus(status) {
		return nil, errors.ErrInvalidRoomStatus
	}

	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("find room: %w", err)
	}

	if err := s.roomRepo.UpdateStatus(ctx, roomID, status); err != nil {
		return nil, fmt.Errorf("update room status: %w", err)
	}
	room.Status = status
	return room, nil
}
