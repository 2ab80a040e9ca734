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

// HostelService manages hostel buildings.
type HostelService interface {
	CreateHostel(ctx context.Context, creatorID uuid.UUID, name, code string, totalFloors int) (*model.Hostel, error)
	GetHostel(ctx context.Context, id uuid.UUID) (*model.Hostel, error)
	ListHostels(ctx context.Context) ([]model.Hostel, error)
	AssignWarden(ctx context.Context, hostelID, wardenID uuid.UUID) (*model.Hostel, error)
}

type hostelService struct {
	hostelRepo repository.HostelRepository
	userRepo   repository.UserRepository
}

// NewHostelService creates a new hostel service.
func NewHostelService(hostelRepo repository.HostelRepository, userRepo repository.UserRepository) HostelService {
	return &hostelService{
		hostelRepo: hostelRepo,
		userRepo:   userRepo,
	}
}

// CreateHostel creates a hostel building. Name and code are unique.
func (s *hostelService) CreateHostel(ctx context.Context, creatorID uuid.UUID, name, code string, totalFloors int) (*model.Hostel, error) {
	if name == "" || code == "" {
		return nil, errors.ErrValidation
	}
	if totalFloors < 1 {
		totalFloors = 4
	}

	if _, err := s.hostelRepo.FindByNameOrCode(ctx, name, code); err == nil {
		return nil, errors.ErrHostelExists
	} else if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check hostel: %w", err)
	}

	hostel := &model.Hostel{
		Name:        name,
		Code:        code,
		TotalFloors: totalFloors,
		CreatedByID: creatorID,
	}
	if err := s.hostelRepo.Create(ctx, hostel); err != nil {
		return nil, fmt.Errorf("create hostel: %w", err)
	}
	return hostel, nil
}

// GetHostel returns a hostel by ID.
func (s *hostelService) GetHostel(ctx context.Context, id uuid.UUID) (*model.Hostel, error) {
	hostel, err := s.hostelRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrHostelNotFound
		}
		return nil, fmt.Errorf("find hostel: %w", err)
	}
	return hostel, nil
}

// ListHostels lists all hostels.
func (s *hostelService) ListHostels(ctx context.Context) ([]model.Hostel, error) {
	return s.hostelRepo.ListAll(ctx)
}

// AssignWarden ties a warden to a hostel on both sides of the relation.
func (s *hostelService) AssignWarden(ctx context.Context, hostelID, wardenID uuid.UUID) (*model.Hostel, error) {
	hostel, err := s.hostelRepo.FindByID(ctx, hostelID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrHostelNotFound
		}
		return nil, fmt.Errorf("find hostel: %w", err)
	}

	warden, err := s.userRepo.FindByID(ctx, wardenID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find warden: %w", err)
	}
	if warden.Role != model.RoleWarden {
		return nil, errors.ErrValidation
	}

	hostel.WardenID = &warden.ID
	if err := s.hostelRepo.Update(ctx, hostel); err != nil {
		return nil, fmt.Errorf("update hostel: %w", err)
	}
	warden.HostelID = &hostel.ID
	if err := s.userRepo.Update(ctx, warden); err != nil {
		return nil, fmt.Errorf("update warden: %w", err)
	}
	return hostel, nil
}
