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
	"github.com/Hegpro/Samrt-hostel-management/internal/mail"
	"github.com/Hegpro/Samrt-hostel-management/internal/model"
	"github.com/Hegpro/Samrt-hostel-management/internal/repository"
)

// SurplusService manages surplus food postings from mess managers and
// first-claim-wins pickup by NGOs.
type SurplusService interface {
	Post(ctx context.Context, posterID uuid.UUID, title, description, quantity string, deadline time.Time, image []byte) (*model.SurplusFood, error)
	ListAvailable(ctx context.Context) ([]model.SurplusFood, error)
	Claim(ctx context.Context, surplusID, ngoID uuid.UUID) (*model.SurplusFood, error)
	UpdateStatus(ctx context.Context, surplusID, posterID uuid.UUID, status model.SurplusStatus) (*model.SurplusFood, error)
	ListMine(ctx context.Context, posterID uuid.UUID) ([]model.SurplusFood, error)
	ListClaimed(ctx context.Context, ngoID uuid.UUID) ([]model.SurplusFood, error)
	SweepExpired(ctx context.Context) (int, error)
}

type surplusService struct {
	surplusRepo repository.SurplusRepository
	userRepo    repository.UserRepository
	blobStore   blob.Store
	mailer      mail.Mailer
}

// NewSurplusService creates a new surplus food service.
func NewSurplusService(surplusRepo repository.SurplusRepository, userRepo repository.UserRepository, blobStore blob.Store, mailer mail.Mailer) SurplusService {
	return &surplusService{
		surplusRepo: surplusRepo,
		userRepo:    userRepo,
		blobStore:   blobStore,
		mailer:      mailer,
	}
}

// Post creates a surplus posting and notifies all verified NGOs by email.
func (s *surplusService) Post(ctx context.Context, posterID uuid.UUID, title, description, quantity string, deadline time.Time, image []byte) (*model.SurplusFood, error) {
	if description == "" || quantity == "" {
		return nil, errors.ErrValidation
	}
	if !deadline.After(time.Now()) {
		return nil, errors.ErrInvalidDeadline
	}

	var imageURL string
	if len(image) > 0 {
		url, err := s.blobStore.Upload(ctx, image, "surplus")
		if err != nil {
			return nil, fmt.Errorf("upload surplus image: %w", err)
		}
		imageURL = url
	}

	if title == "" {
		title = "Surplus Food"
	}
	surplus := &model.SurplusFood{
		Title:       title,
		Description: description,
		Quantity:    quantity,
		ImageURL:    imageURL,
		Deadline:    deadline,
		PostedByID:  posterID,
		Status:      model.SurplusStatusAvailable,
	}
	if err := s.surplusRepo.Create(ctx, surplus); err != nil {
		return nil, fmt.Errorf("create surplus posting: %w", err)
	}

	go s.notifyNGOs(surplus)
	return surplus, nil
}

// notifyNGOs emails every verified NGO about a new posting. Delivery is
// best effort and never blocks the posting itself.
func (s *surplusService) notifyNGOs(surplus *model.SurplusFood) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ngos, err := s.userRepo.ListByRole(ctx, model.RoleNGO)
	if err != nil {
		log.Printf("list ngos for surplus notification: %v", err)
		return
	}
	subject := "Surplus food available: " + surplus.Title
	text := fmt.Sprintf("%s (%s) is available for pickup until %s. First to claim gets it.",
		surplus.Title, surplus.Quantity, surplus.Deadline.Format(time.RFC1123))
	for _, ngo := range ngos {
		if ngo.Email == nil || !ngo.EmailVerified {
			continue
		}
		s.mailer.Send(ngo.Name, *ngo.Email, subject, text, "")
	}
}

// ListAvailable returns postings still open for claiming. Postings whose
// deadline has passed are expired lazily before the list is read.
func (s *surplusService) ListAvailable(ctx context.Context) ([]model.SurplusFood, error) {
	if _, err := s.surplusRepo.SweepExpired(ctx, time.Now()); err != nil {
		log.Printf("sweep expired surplus: %v", err)
	}
	return s.surplusRepo.ListAvailable(ctx)
}

// Claim atomically claims a posting for an NGO. Exactly one claimant can
// win; everyone else gets ErrAlreadyUnavailable. A posting past its
// deadline is expired on the spot instead of claimed.
func (s *surplusService) Claim(ctx context.Context, surplusID, ngoID uuid.UUID) (*model.SurplusFood, error) {
	surplus, err := s.surplusRepo.FindByID(ctx, surplusID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrSurplusNotFound
		}
		return nil, fmt.Errorf("find surplus posting: %w", err)
	}

	if surplus.Status == model.SurplusStatusAvailable && !surplus.Deadline.After(time.Now()) {
		if _, err := s.surplusRepo.MarkExpired(ctx, surplusID); err != nil {
			return nil, fmt.Errorf("expire surplus posting: %w", err)
		}
		return nil, errors.ErrSurplusExpired
	}

	won, err := s.surplusRepo.Claim(ctx, surplusID, ngoID)
	if err != nil {
		return nil, fmt.Errorf("claim surplus posting: %w", err)
	}
	if !won {
		return nil, errors.ErrAlreadyUnavailable
	}

	claimed, err := s.surplusRepo.FindByID(ctx, surplusID)
	if err != nil {
		return nil, fmt.Errorf("reload surplus posting: %w", err)
	}
	go s.notifyPoster(claimed, ngoID)
	return claimed, nil
}

func (s *surplusService) notifyPoster(surplus *model.SurplusFood, ngoID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	poster, err := s.userRepo.FindByID(ctx, surplus.PostedByID)
	if err != nil {
		log.Printf("find surplus poster for notification: %v", err)
		return
	}
	if poster.Email == nil {
		return
	}
	ngoName := "an NGO"
	ngoContact := ""
	if ngo, err := s.userRepo.FindByID(ctx, ngoID); err == nil {
		ngoName = ngo.Name
		ngoContact = ngo.Phone
	}
	subject := "Your surplus posting was claimed"
	text := fmt.Sprintf("%s has claimed %s (%s). Contact: %s.",
		ngoName, surplus.Title, surplus.Quantity, ngoContact)
	s.mailer.Send(poster.Name, *poster.Email, subject, text, "")
}

// UpdateStatus lets the poster mark a claimed posting distributed, or an
// available one expired. Other transitions are rejected.
func (s *surplusService) UpdateStatus(ctx context.Context, surplusID, posterID uuid.UUID, status model.SurplusStatus) (*model.SurplusFood, error) {
	surplus, err := s.surplusRepo.FindByID(ctx, surplusID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrSurplusNotFound
		}
		return nil, fmt.Errorf("find surplus posting: %w", err)
	}
	if surplus.PostedByID != posterID {
		return nil, errors.ErrForbidden
	}

	switch status {
	case model.SurplusStatusDistributed:
		if surplus.Status != model.SurplusStatusClaimed {
			return nil, errors.ErrInvalidState
		}
	case model.SurplusStatusExpired:
		if surplus.Status != model.SurplusStatusAvailable {
			return nil, errors.ErrInvalidState
		}
	default:
		return nil, errors.ErrInvalidSurplusStatus
	}

	if err := s.surplusRepo.UpdateStatus(ctx, surplusID, status); err != nil {
		return nil, fmt.Errorf("update surplus status: %w", err)
	}
	surplus.Status = status
	return surplus, nil
}

// ListMine lists the postings created by a mess manager, including who
// claimed each one.
func (s *surplusService) ListMine(ctx context.Context, posterID uuid.UUID) ([]model.SurplusFood, error) {
	return s.surplusRepo.ListByPoster(ctx, posterID)
}

// ListClaimed lists the postings an NGO has claimed.
func (s *surplusService) ListClaimed(ctx context.Context, ngoID uuid.UUID) ([]model.SurplusFood, error) {
	return s.surplusRepo.ListByClaimant(ctx, ngoID)
}

// SweepExpired expires all available postings past their deadline. It is
// called periodically by the scheduler and reports how many were expired.
func (s *surplusService) SweepExpired(ctx context.Context) (int, error) {
	ids, err := s.surplusRepo.SweepExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("sweep expired surplus: %w", err)
	}
	return len(ids), nil
}
