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

// ResetConfirmation is the phrase the chief warden must send to wipe the
// academic year. Anything else aborts.
const ResetConfirmation = "RESET-ACADEMIC-YEAR"

// AdminService performs destructive administrative operations.
type AdminService interface {
	ResetAcademicYear(ctx context.Context, chiefID uuid.UUID, confirm string) error
}

type adminService struct {
	userRepo             repository.UserRepository
	roomRepo             repository.RoomRepository
	complaintRepo        repository.ComplaintRepository
	studentComplaintRepo repository.StudentComplaintRepository
	surplusRepo          repository.SurplusRepository
	noticeRepo           repository.NoticeRepository
	dashboards           DashboardService
}

// NewAdminService creates a new admin service.
func NewAdminService(
	userRepo repository.UserRepository,
	roomRepo repository.RoomRepository,
	complaintRepo repository.ComplaintRepository,
	studentComplaintRepo repository.StudentComplaintRepository,
	surplusRepo repository.SurplusRepository,
	noticeRepo repository.NoticeRepository,
	dashboards DashboardService,
) AdminService {
	return &adminService{
		userRepo:             userRepo,
		roomRepo:             roomRepo,
		complaintRepo:        complaintRepo,
		studentComplaintRepo: studentComplaintRepo,
		surplusRepo:          surplusRepo,
		noticeRepo:           noticeRepo,
		dashboards:           dashboards,
	}
}

// ResetAcademicYear wipes students, parents, complaints, surplus postings
// and notices, and empties every room. Wardens, staff, mess managers,
// hostels and the room structure are retained.
func (s *adminService) ResetAcademicYear(ctx context.Context, chiefID uuid.UUID, confirm string) error {
	chief, err := s.userRepo.FindByID(ctx, chiefID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find chief: %w", err)
	}
	if chief.Role != model.RoleChiefWarden {
		return errors.ErrForbidden
	}
	if confirm != ResetConfirmation {
		return errors.ErrConfirmationRequired
	}

	err = s.userRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		return repo.DeleteByRoles(ctx, model.RoleStudent, model.RoleParent)
	})
	if err != nil {
		return fmt.Errorf("delete students and parents: %w", err)
	}
	if err := s.complaintRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete complaints: %w", err)
	}
	if err := s.studentComplaintRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete student complaints: %w", err)
	}
	if err := s.surplusRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete surplus postings: %w", err)
	}
	if err := s.noticeRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete notices: %w", err)
	}
	if err := s.roomRepo.ClearAllOccupancy(ctx); err != nil {
		return fmt.Errorf("clear room occupancy: %w", err)
	}

	s.dashboards.InvalidateChiefDashboard(ctx)
	return nil
}
