package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Hegpro/Samrt-hostel-management/internal/auth"
	"github.com/Hegpro/Samrt-hostel-management/internal/errors"
	"github.com/Hegpro/Samrt-hostel-management/internal/model"
	"github.com/Hegpro/Samrt-hostel-management/internal/repository"

	"github.com/google/uuid"
)

// CreatedStudent is the result of provisioning a student together with the
// linked parent account. The shared password is returned exactly once.
type CreatedStudent struct {
	Student  *model.User `json:"student"`
	Parent   *model.User `json:"parent"`
	Password string      `json:"password"`
}

// UserService provisions and manages accounts. Wardens, staff, mess
// managers and students are created by privileged roles with generated
// temporary passwords.
type UserService interface {
	CreateWarden(ctx context.Context, creatorID uuid.UUID, name, email, phone string, hostelID uuid.UUID) (*model.User, string, error)
	CreateStaff(ctx context.Context, wardenID uuid.UUID, name, email, phone string, staffType model.StaffType) (*model.User, string, error)
	CreateMessManager(ctx context.Context, creatorID uuid.UUID, name, email, phone string) (*model.User, string, error)
	CreateStudent(ctx context.Context, creatorID uuid.UUID, name, usn, email, phone string, roomID uuid.UUID) (*CreatedStudent, error)
	DeleteStudent(ctx context.Context, studentID uuid.UUID) error
	DeleteUserInRole(ctx context.Context, id uuid.UUID, role model.Role) error
	ListWardens(ctx context.Context) ([]model.User, error)
	ListMessManagers(ctx context.Context) ([]model.User, error)
	ListNGOs(ctx context.Context) ([]model.User, error)
	ListStaff(ctx context.Context, wardenID uuid.UUID) ([]model.User, error)
	ListStudents(ctx context.Context, actorID uuid.UUID) ([]model.User, error)
	ListStudentsByRoom(ctx context.Context, roomID uuid.UUID) ([]model.User, error)
}

type userService struct {
	userRepo  repository.UserRepository
	roomRepo  repository.RoomRepository
	roomLocks *keyedMutex
}

// NewUserService creates a new user service. The room lock set must be the
// same instance the room service uses, so student provisioning and room
// assignment serialize on the same per-room mutexes.
func NewUserService(userRepo repository.UserRepository, roomRepo repository.RoomRepository, roomLocks *keyedMutex) UserService {
	return &userService{
		userRepo:  userRepo,
		roomRepo:  roomRepo,
		roomLocks: roomLocks,
	}
}

func (s *userService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return errors.ErrEmailExists
	}
	if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check email: %w", err)
	}
	return nil
}

// CreateWarden provisions a hostel warden with a generated password.
func (s *userService) CreateWarden(ctx context.Context, creatorID uuid.UUID, name, email, phone string, hostelID uuid.UUID) (*model.User, string, error) {
	if name == "" || email == "" || hostelID == uuid.Nil {
		return nil, "", errors.ErrValidation
	}
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, "", err
	}

	rawPass := auth.GeneratePassword(10)
	hashed, err := bcrypt.GenerateFromPassword([]byte(rawPass), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	warden := &model.User{
		Name:         name,
		Email:        &email,
		Phone:        phone,
		PasswordHash: string(hashed),
		Role:         model.RoleWarden,
		HostelID:     &hostelID,
		CreatedByID:  &creatorID,
		TempPassword: true,
	}
	if err := s.userRepo.Create(ctx, warden); err != nil {
		return nil, "", fmt.Errorf("create warden: %w", err)
	}
	return warden, rawPass, nil
}

// CreateStaff provisions a maintenance staff member under the warden's own
// hostel. The staff type fixes which complaint category they can work.
func (s *userService) CreateStaff(ctx context.Context, wardenID uuid.UUID, name, email, phone string, staffType model.StaffType) (*model.User, string, error) {
	if name == "" || email == "" {
		return nil, "", errors.ErrValidation
	}
	if !model.ValidStaffType(staffType) {
		return nil, "", errors.ErrValidation
	}

	warden, err := s.userRepo.FindByID(ctx, wardenID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", errors.ErrUserNotFound
		}
		return nil, "", fmt.Errorf("find warden: %w", err)
	}
	if warden.Role != model.RoleWarden || warden.HostelID == nil {
		return nil, "", errors.ErrForbidden
	}
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, "", err
	}

	rawPass := auth.GeneratePassword(8)
	hashed, err := bcrypt.GenerateFromPassword([]byte(rawPass), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	staff := &model.User{
		Name:         name,
		Email:        &email,
		Phone:        phone,
		PasswordHash: string(hashed),
		Role:         model.RoleStaff,
		StaffType:    staffType,
		HostelID:     warden.HostelID,
		CreatedByID:  &warden.ID,
		TempPassword: true,
	}
	if err := s.userRepo.Create(ctx, staff); err != nil {
		return nil, "", fmt.Errorf("create staff: %w", err)
	}
	return staff, rawPass, nil
}

// CreateMessManager provisions a mess manager with a generated password.
func (s *userService) CreateMessManager(ctx context.Context, creatorID uuid.UUID, name, email, phone string) (*model.User, string, error) {
	if name == "" || email == "" {
		return nil, "", errors.ErrValidation
	}
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, "", err
	}

	rawPass := auth.GeneratePassword(10)
	hashed, err := bcrypt.GenerateFromPassword([]byte(rawPass), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	manager := &model.User{
		Name:         name,
		Email:        &email,
		Phone:        phone,
		PasswordHash: string(hashed),
		Role:         model.RoleMessManager,
		CreatedByID:  &creatorID,
		TempPassword: true,
	}
	if err := s.userRepo.Create(ctx, manager); err != nil {
		return nil, "", fmt.Errorf("create mess manager: %w", err)
	}
	return manager, rawPass, nil
}

// CreateStudent provisions a student and the linked parent account in one
// transaction, sharing one generated password. The room's capacity is
// checked under the room lock before anything is written, and the room
// status is recomputed afterwards.
func (s *userService) CreateStudent(ctx context.Context, creatorID uuid.UUID, name, usn, email, phone string, roomID uuid.UUID) (*CreatedStudent, error) {
	if name == "" || usn == "" || roomID == uuid.Nil {
		return nil, errors.ErrValidation
	}

	if _, err := s.userRepo.FindByUSN(ctx, usn); err == nil {
		return nil, errors.ErrUSNExists
	} else if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check usn: %w", err)
	}
	if email != "" {
		if err := s.ensureEmailFree(ctx, email); err != nil {
			return nil, err
		}
	}

	rawPass := auth.GeneratePassword(8)
	hashed, err := bcrypt.GenerateFromPassword([]byte(rawPass), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	unlock := s.roomLocks.lock(roomID)
	defer unlock()

	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("find room: %w", err)
	}
	if room.Status == model.RoomStatusMaintenance {
		return nil, errors.ErrRoomUnderMaintenance
	}
	count, err := s.roomRepo.CountOccupants(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("count occupants: %w", err)
	}
	if int(count) >= room.Capacity {
		return nil, errors.ErrRoomFull
	}

	student := &model.User{
		Name:         name,
		USN:          &usn,
		Phone:        phone,
		PasswordHash: string(hashed),
		Role:         model.RoleStudent,
		HostelID:     &room.HostelID,
		RoomID:       &room.ID,
		CreatedByID:  &creatorID,
		TempPassword: true,
	}
	if email != "" {
		student.Email = &email
	}
	// The parent keeps the hostel for display but never a room: only
	// students occupy rooms, and occupancy is counted off users.room_id.
	parent := &model.User{
		Name:         name + "'s Parent",
		PasswordHash: string(hashed),
		Role:         model.RoleParent,
		HostelID:     &room.HostelID,
		CreatedByID:  &creatorID,
		TempPassword: true,
	}

	err = s.userRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		if err := repo.Create(ctx, student); err != nil {
			return fmt.Errorf("create student: %w", err)
		}
		parent.LinkedStudentID = &student.ID
		return repo.Create(ctx, parent)
	})
	if err != nil {
		return nil, err
	}

	if err := s.roomRepo.UpdateStatus(ctx, roomID, model.DeriveRoomStatus(room.Capacity, int(count)+1)); err != nil {
		return nil, fmt.Errorf("update room status: %w", err)
	}

	return &CreatedStudent{Student: student, Parent: parent, Password: rawPass}, nil
}

// DeleteStudent removes a student and the linked parent account, then
// recomputes the room the student occupied.
func (s *userService) DeleteStudent(ctx context.Context, studentID uuid.UUID) error {
	student, err := s.userRepo.FindByID(ctx, studentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find student: %w", err)
	}
	if student.Role != model.RoleStudent {
		return errors.ErrUserNotFound
	}

	var unlock func()
	if student.RoomID != nil {
		unlock = s.roomLocks.lock(*student.RoomID)
		defer unlock()
	}

	err = s.userRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		if parent, err := repo.FindParentOfStudent(ctx, student.ID); err == nil {
			if err := repo.Delete(ctx, parent.ID); err != nil {
				return fmt.Errorf("delete parent: %w", err)
			}
		} else if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("find parent: %w", err)
		}
		return repo.Delete(ctx, student.ID)
	})
	if err != nil {
		return err
	}

	if student.RoomID != nil {
		room, err := s.roomRepo.FindByID(ctx, *student.RoomID)
		if err != nil {
			return fmt.Errorf("find room: %w", err)
		}
		if room.Status != model.RoomStatusMaintenance {
			count, err := s.roomRepo.CountOccupants(ctx, room.ID)
			if err != nil {
				return fmt.Errorf("count occupants: %w", err)
			}
			if err := s.roomRepo.UpdateStatus(ctx, room.ID, model.DeriveRoomStatus(room.Capacity, int(count))); err != nil {
				return fmt.Errorf("update room status: %w", err)
			}
		}
	}
	return nil
}

// DeleteUserInRole removes a user after checking they actually hold the
// expected role, so a warden delete cannot remove a student by ID.
func (s *userService) DeleteUserInRole(ctx context.Context, id uuid.UUID, role model.Role) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	if user.Role != role {
		return errors.ErrUserNotFound
	}
	return s.userRepo.Delete(ctx, id)
}

// ListWardens lists all wardens.
func (s *userService) ListWardens(ctx context.Context) ([]model.User, error) {
	return s.userRepo.ListByRole(ctx, model.RoleWarden)
}

// ListMessManagers lists all mess managers.
func (s *userService) ListMessManagers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.ListByRole(ctx, model.RoleMessManager)
}

// ListNGOs lists all registered NGOs.
func (s *userService) ListNGOs(ctx context.Context) ([]model.User, error) {
	return s.userRepo.ListByRole(ctx, model.RoleNGO)
}

// ListStaff lists the staff of the warden's own hostel.
func (s *userService) ListStaff(ctx context.Context, wardenID uuid.UUID) ([]model.User, error) {
	warden, err := s.userRepo.FindByID(ctx, wardenID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find warden: %w", err)
	}
	if warden.HostelID == nil {
		return nil, errors.ErrForbidden
	}
	return s.userRepo.ListByRoleAndHostel(ctx, model.RoleStaff, *warden.HostelID)
}

// ListStudents lists students, scoped to the actor's hostel when they have
// one; the chief warden sees all.
func (s *userService) ListStudents(ctx context.Context, actorID uuid.UUID) ([]model.User, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find actor: %w", err)
	}
	if actor.HostelID != nil {
		return s.userRepo.ListByRoleAndHostel(ctx, model.RoleStudent, *actor.HostelID)
	}
	return s.userRepo.ListByRole(ctx, model.RoleStudent)
}

// ListStudentsByRoom lists the students assigned to a room.
func (s *userService) ListStudentsByRoom(ctx context.Context, roomID uuid.UUID) ([]model.User, error) {
	return s.userRepo.ListStudentsByRoom(ctx, roomID)
}
