package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Hegpro/Samrt-hostel-management/internal/blob"
	"github.com/Hegpro/Samrt-hostel-management/internal/errors"
	"github.com/Hegpro/Samrt-hostel-management/internal/model"
	"github.com/Hegpro/Samrt-hostel-management/internal/repository"
)

// NoticeService manages the notice board.
type NoticeService interface {
	CreateNotice(ctx context.Context, posterID uuid.UUID, title, message string, image []byte) (*model.Notice, error)
	ListNotices(ctx context.Context) ([]model.Notice, error)
}

type noticeService struct {
	noticeRepo repository.NoticeRepository
	userRepo   repository.UserRepository
	blobStore  blob.Store
}

// NewNoticeService creates a new notice service.
func NewNoticeService(noticeRepo repository.NoticeRepository, userRepo repository.UserRepository, blobStore blob.Store) NoticeService {
	return &noticeService{
		noticeRepo: noticeRepo,
		userRepo:   userRepo,
		blobStore:  blobStore,
	}
}

// CreateNotice posts a notice, with an optional image attachment.
func (s *noticeService) CreateNotice(ctx context.Context, posterID uuid.UUID, title, message string, image []byte) (*model.Notice, error) {
	if title == "" || message == "" {
		return nil, errors.ErrValidation
	}

	poster, err := s.userRepo.FindByID(ctx, posterID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find poster: %w", err)
	}

	var imageURL string
	if len(image) > 0 {
		imageURL, err = s.blobStore.Upload(ctx, image, "notices")
		if err != nil {
			return nil, fmt.Errorf("upload notice image: %w", err)
		}
	}

	notice := &model.Notice{
		Title:      title,
		Message:    message,
		ImageURL:   imageURL,
		PostedByID: poster.ID,
		PostedRole: poster.Role,
	}
	if err := s.noticeRepo.Create(ctx, notice); err != nil {
		return nil, fmt.Errorf("create notice: %w", err)
	}
	return notice, nil
}

// ListNotices lists all notices, newest first.
func (s *noticeService) ListNotices(ctx context.Context) ([]model.Notice, error) {
	return s.noticeRepo.ListAll(ctx)
}
