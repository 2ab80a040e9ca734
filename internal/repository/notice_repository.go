package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Hegpro/Samrt-hostel-management/internal/model"
)

// NoticeRepository defines notice persistence operations.
type NoticeRepository interface {
	Create(ctx context.Context, notice *model.Notice) error
	ListAll(ctx context.Context) ([]model.Notice, error)
	ListRecent(ctx context.Context, limit int) ([]model.Notice, error)
	DeleteAll(ctx context.Context) error
}

type noticeRepository struct {
	db *gorm.DB
}

// NewNoticeRepository creates a new notice repository.
func NewNoticeRepository(db *gorm.DB) NoticeRepository {
	return &noticeRepository{db: db}
}

// Create creates a new notice.
func (r *noticeRepository) Create(ctx context.Context, notice *model.Notice) error {
	return r.db.WithContext(ctx).Create(notice).Error
}

// ListAll lists all notices, newest first.
func (r *noticeRepository) ListAll(ctx context.Context) ([]model.Notice, error) {
	var notices []model.Notice
	if err := r.db.WithContext(ctx).Preload("PostedBy").
		Order("created_at DESC").
		Find(&notices).Error; err != nil {
		return nil, err
	}
	return notices, nil
}

// ListRecent lists the most recent notices.
func (r *noticeRepository) ListRecent(ctx context.Context, limit int) ([]model.Notice, error) {
	var notices []model.Notice
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").Limit(limit).
		Find(&notices).Error; err != nil {
		return nil, err
	}
	return notices, nil
}

// DeleteAll removes every notice. Used by the academic-year reset.
func (r *noticeRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Notice{}).Error
}
