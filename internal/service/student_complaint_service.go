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

// StudentComplaintService handles disciplinary complaints raised by wardens
// against students, visible to the student's parent.
type StudentComplaintService interface {
	Raise(ctx context.Context, raiserID uuid.UUID, usn, title, description string) (*model.StudentComplaint, error)
	ListByParent(ctx context.Context, parentID uuid.UUID) ([]model.StudentComplaint, error)
	Close(ctx context.Context, complaintID, closerID uuid.UUID, note string) (*model.StudentComplaint, error)
}

type studentComplaintService struct {
	complaintRepo repository.StudentComplaintRepository
	userRepo      repository.UserRepository
}

// NewStudentComplaintService creates a new student complaint service.
func NewStudentComplaintService(complaintRepo repository.StudentComplaintRepository, userRepo repository.UserRepository) StudentComplaintService {
	return &studentComplaintService{
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
	}
}

// Raise opens a complaint against the student with the given USN. The
// student's parent, when provisioned, is attached so they can see it.
func (s *studentComplaintService) Raise(ctx context.Context, raiserID uuid.UUID, usn, title, description string) (*model.StudentComplaint, error) {
	if usn == "" || title == "" || description == "" {
		return nil, errors.ErrValidation
	}

	raiser, err := s.userRepo.FindByID(ctx, raiserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find raiser: %w", err)
	}

	student, err := s.userRepo.FindStudentByUSN(ctx, usn)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find student: %w", err)
	}

	complaint := &model.StudentComplaint{
		StudentID:   student.ID,
		RaisedByID:  raiser.ID,
		RaisedRole:  raiser.Role,
		Title:       title,
		Description: description,
		Status:      model.StudentComplaintOpen,
	}
	if parent, err := s.userRepo.FindParentOfStudent(ctx, student.ID); err == nil {
		complaint.ParentID = &parent.ID
	}

	if err := s.complaintRepo.Create(ctx, complaint); err != nil {
		return nil, fmt.Errorf("create student complaint: %w", err)
	}
	return complaint, nil
}

// ListByParent lists complaints about the parent's child, newest first.
func (s *studentComplaintService) ListByParent(ctx context.Context, parentID uuid.UUID) ([]model.StudentComplaint, error) {
	return s.complaintRepo.ListByParent(ctx, parentID)
}

// Close closes a complaint with an optional note. Wardens may only close
// complaints about students of their own hostel; the chief may close any.
func (s *studentComplaintService) Close(ctx context.Context, complaintID, closerID uuid.UUID, note string) (*model.StudentComplaint, error) {
	complaint, err := s.complaintRepo.FindByID(ctx, complaintID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrComplaintNotFound
		}
		return nil, fmt.Errorf("find student complaint: %w", err)
	}

	closer, err := s.userRepo.FindByID(ctx, closerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find closer: %w", err)
	}
	if closer.Role == model.RoleWarden {
		student, err := s.userRepo.FindByID(ctx, complaint.StudentID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.ErrUserNotFound
			}
			return nil, fmt.Errorf("find student: %w", err)
		}
		if closer.HostelID == nil || student.HostelID == nil || *closer.HostelID != *student.HostelID {
			return nil, errors.ErrForbidden
		}
	}

	complaint.Status = model.StudentComplaintClosed
	complaint.ClosedByID = &closer.ID
	complaint.ClosedNote = note
	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, fmt.Errorf("update student complaint: %w", err)
	}
	return complaint, nil
}
