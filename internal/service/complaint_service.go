package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Hegpro/Samrt-hostel-management/internal/blob"
	"github.com/Hegpro/Samrt-hostel-management/internal/errors"
	"github.com/Hegpro/Samrt-hostel-management/internal/model"
	"github.com/Hegpro/Samrt-hostel-management/internal/repository"
)

// TransitionSignal is a staff input to the complaint workflow. "resolved" is
// accepted as a signal but stored as closed.
type TransitionSignal string

const (
	SignalInProgress    TransitionSignal = "in-progress"
	SignalResolved      TransitionSignal = "resolved"
	SignalNotResolvable TransitionSignal = "not-resolvable"
)

// ComplaintPage is one page of a filtered complaint listing.
type ComplaintPage struct {
	Complaints []model.Complaint `json:"complaints"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

// ComplaintService drives the complaint state machine:
// pending -> in-progress -> {closed | not-resolvable}, not-resolvable -> closed.
type ComplaintService interface {
	Create(ctx context.Context, studentID uuid.UUID, title, description string, category model.ComplaintCategory, image []byte) (*model.Complaint, error)
	Transition(ctx context.Context, complaintID, staffID uuid.UUID, signal TransitionSignal, resolutionImage []byte) (*model.Complaint, error)
	WardenClose(ctx context.Context, complaintID, wardenID uuid.UUID, note string) (*model.Complaint, error)
	DeleteByStudent(ctx context.Context, complaintID, studentID uuid.UUID) error
	ListForStaff(ctx context.Context, staffID, hostelID uuid.UUID) ([]model.Complaint, error)
	ListEscalated(ctx context.Context, wardenID uuid.UUID) ([]model.Complaint, error)
	ListForChief(ctx context.Context, hostelID *uuid.UUID) ([]model.Complaint, error)
	ListMine(ctx context.Context, studentID uuid.UUID) ([]model.Complaint, error)
	ListFiltered(ctx context.Context, actorID uuid.UUID, filter repository.ComplaintFilter) (*ComplaintPage, error)
	Summary(ctx context.Context, actorID uuid.UUID, hostelID *uuid.UUID, from, to *time.Time) (map[model.ComplaintStatus]int64, error)
	TrendByMonth(ctx context.Context, actorID uuid.UUID, hostelID *uuid.UUID, months int) ([]repository.MonthCount, error)
}

type complaintService struct {
	complaintRepo repository.ComplaintRepository
	userRepo      repository.UserRepository
	blobStore     blob.Store
}

// NewComplaintService creates a new complaint service.
func NewComplaintService(complaintRepo repository.ComplaintRepository, userRepo repository.UserRepository, blobStore blob.Store) ComplaintService {
	return &complaintService{
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
		blobStore:     blobStore,
	}
}

// Create opens a complaint for a student. The hostel is always derived from
// the student's own hostel, never taken from the caller.
func (s *complaintService) Create(ctx context.Context, studentID uuid.UUID, title, description string, category model.ComplaintCategory, image []byte) (*model.Complaint, error) {
	if description == "" {
		return nil, errors.ErrValidation
	}
	if !model.ValidComplaintCategory(category) {
		return nil, errors.ErrInvalidCategory
	}

	student, err := s.userRepo.FindByID(ctx, studentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	if student.HostelID == nil {
		return nil, errors.ErrValidation
	}

	var imageURL string
	if len(image) > 0 {
		imageURL, err = s.blobStore.Upload(ctx, image, "complaints")
		if err != nil {
			return nil, fmt.Errorf("upload complaint image: %w", err)
		}
	}

	if title == "" {
		title = "Complaint"
	}
	complaint := &model.Complaint{
		Title:       title,
		Description: description,
		Category:    category,
		CreatedByID: student.ID,
		HostelID:    *student.HostelID,
		ImageURL:    imageURL,
		Status:      model.ComplaintStatusPending,
	}
	if err := s.complaintRepo.Create(ctx, complaint); err != nil {
		return nil, fmt.Errorf("create complaint: %w", err)
	}
	return complaint, nil
}

// Transition applies a staff signal to a complaint. Staff may only act on
// complaints of their own trade; "resolved" is stored as closed together
// with the resolution evidence and handler reference.
func (s *complaintService) Transition(ctx context.Context, complaintID, staffID uuid.UUID, signal TransitionSignal, resolutionImage []byte) (*model.Complaint, error) {
	switch signal {
	case SignalInProgress, SignalResolved, SignalNotResolvable:
	default:
		return nil, errors.ErrInvalidTransition
	}

	complaint, err := s.complaintRepo.FindByID(ctx, complaintID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrComplaintNotFound
		}
		return nil, fmt.Errorf("find complaint: %w", err)
	}
	if complaint.Status == model.ComplaintStatusClosed {
		return nil, errors.ErrInvalidState
	}

	staff, err := s.userRepo.FindByID(ctx, staffID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find staff: %w", err)
	}
	if string(staff.StaffType) != string(complaint.Category) {
		return nil, errors.ErrCategoryMismatch
	}

	switch signal {
	case SignalResolved:
		if len(resolutionImage) > 0 {
			url, err := s.blobStore.Upload(ctx, resolutionImage, "complaints/resolution")
			if err != nil {
				return nil, fmt.Errorf("upload resolution image: %w", err)
			}
			complaint.ResolutionImageURL = url
		}
		complaint.Status = model.ComplaintStatusClosed
	case SignalNotResolvable:
		complaint.Status = model.ComplaintStatusNotResolvable
	case SignalInProgress:
		complaint.Status = model.ComplaintStatusInProgress
	}
	complaint.HandledByID = &staff.ID

	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, fmt.Errorf("update complaint: %w", err)
	}
	return complaint, nil
}

// WardenClose closes an escalated complaint. Only the warden of the
// complaint's hostel may close it, and only from not-resolvable.
func (s *complaintService) WardenClose(ctx context.Context, complaintID, wardenID uuid.UUID, note string) (*model.Complaint, error) {
	complaint, err := s.complaintRepo.FindByID(ctx, complaintID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrComplaintNotFound
		}
		return nil, fmt.Errorf("find complaint: %w", err)
	}

	warden, err := s.userRepo.FindByID(ctx, wardenID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find warden: %w", err)
	}
	if warden.HostelID == nil || *warden.HostelID != complaint.HostelID {
		return nil, errors.ErrForbidden
	}
	if complaint.Status != model.ComplaintStatusNotResolvable {
		return nil, errors.ErrInvalidState
	}

	complaint.Status = model.ComplaintStatusClosed
	complaint.WardenNote = note
	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, fmt.Errorf("update complaint: %w", err)
	}
	return complaint, nil
}

// DeleteByStudent withdraws a complaint. Only the creator may withdraw, and
// only while the complaint is still pending.
func (s *complaintService) DeleteByStudent(ctx context.Context, complaintID, studentID uuid.UUID) error {
	complaint, err := s.complaintRepo.FindByID(ctx, complaintID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrComplaintNotFound
		}
		return fmt.Errorf("find complaint: %w", err)
	}
	if complaint.CreatedByID != studentID {
		return errors.ErrForbidden
	}
	if complaint.Status != model.ComplaintStatusPending {
		return errors.ErrInvalidState
	}
	return s.complaintRepo.Delete(ctx, complaintID)
}

// ListForStaff is the staff work queue: open complaints of the staff
// member's trade within the requested hostel, oldest first.
func (s *complaintService) ListForStaff(ctx context.Context, staffID, hostelID uuid.UUID) ([]model.Complaint, error) {
	staff, err := s.userRepo.FindByID(ctx, staffID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find staff: %w", err)
	}
	if staff.StaffType == "" {
		return nil, errors.ErrForbidden
	}
	return s.complaintRepo.ListOpenByCategoryAndHostel(ctx, model.ComplaintCategory(staff.StaffType), hostelID)
}

// ListEscalated lists the not-resolvable complaints of the warden's hostel.
func (s *complaintService) ListEscalated(ctx context.Context, wardenID uuid.UUID) ([]model.Complaint, error) {
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
	return s.complaintRepo.ListByStatusAndHostel(ctx, model.ComplaintStatusNotResolvable, *warden.HostelID)
}

// ListForChief lists all complaints, optionally filtered by hostel.
func (s *complaintService) ListForChief(ctx context.Context, hostelID *uuid.UUID) ([]model.Complaint, error) {
	page, _, err := s.complaintRepo.ListFiltered(ctx, repository.ComplaintFilter{HostelID: hostelID, Limit: 1000})
	return page, err
}

// ListMine lists a student's own complaints.
func (s *complaintService) ListMine(ctx context.Context, studentID uuid.UUID) ([]model.Complaint, error) {
	return s.complaintRepo.ListByCreator(ctx, studentID)
}

// scopeHostel forces wardens onto their own hostel; other roles keep the
// requested filter. Role scoping is enforced here, not left to callers.
func (s *complaintService) scopeHostel(ctx context.Context, actorID uuid.UUID, requested *uuid.UUID) (*uuid.UUID, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find actor: %w", err)
	}
	if actor.Role == model.RoleWarden {
		return actor.HostelID, nil
	}
	return requested, nil
}

// ListFiltered lists complaints matching a filter with pagination; wardens
// are always scoped to their own hostel.
func (s *complaintService) ListFiltered(ctx context.Context, actorID uuid.UUID, filter repository.ComplaintFilter) (*ComplaintPage, error) {
	hostelID, err := s.scopeHostel(ctx, actorID, filter.HostelID)
	if err != nil {
		return nil, err
	}
	filter.HostelID = hostelID

	complaints, total, err := s.complaintRepo.ListFiltered(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	return &ComplaintPage{Complaints: complaints, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// Summary counts complaints per status, warden-scoped.
func (s *complaintService) Summary(ctx context.Context, actorID uuid.UUID, hostelID *uuid.UUID, from, to *time.Time) (map[model.ComplaintStatus]int64, error) {
	scoped, err := s.scopeHostel(ctx, actorID, hostelID)
	if err != nil {
		return nil, err
	}
	return s.complaintRepo.SummaryByStatus(ctx, scoped, from, to)
}

// TrendByMonth counts complaints per calendar month over the last N months,
// warden-scoped.
func (s *complaintService) TrendByMonth(ctx context.Context, actorID uuid.UUID, hostelID *uuid.UUID, months int) ([]repository.MonthCount, error) {
	if months < 1 {
		months = 6
	}
	scoped, err := s.scopeHostel(ctx, actorID, hostelID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(months - 1), 0)

	trend, err := s.complaintRepo.TrendByMonth(ctx, scoped, start)
	if err != nil {
		log.Printf("complaint trend query: %v", err)
		return nil, fmt.Errorf("complaint trend: %w", err)
	}
	return trend, nil
}
