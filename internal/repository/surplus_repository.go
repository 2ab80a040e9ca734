package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Hegpro/Samrt-hostel-management/internal/model"
)

// SurplusRepository defines surplus food persistence operations.
//
// Claim and MarkExpired are atomic compare-and-set updates: the status check
// and the write happen in one conditional UPDATE, so two concurrent claims on
// the same posting can never both succeed.
type SurplusRepository interface {
	Create(ctx context.Context, surplus *model.SurplusFood) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SurplusFood, error)
	ListAvailable(ctx context.Context) ([]model.SurplusFood, error)
	ListByPoster(ctx context.Context, posterID uuid.UUID) ([]model.SurplusFood, error)
	ListByClaimant(ctx context.Context, claimantID uuid.UUID) ([]model.SurplusFood, error)
	ListRecent(ctx context.Context, limit int) ([]model.SurplusFood, error)
	Claim(ctx context.Context, id, ngoID uuid.UUID) (bool, error)
	MarkExpired(ctx context.Context, id uuid.UUID) (bool, error)
	SweepExpired(ctx context.Context, now time.Time) ([]uuid.UUID, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.SurplusStatus) error
	CountByStatus(ctx context.Context) (map[model.SurplusStatus]int64, error)
	DeleteAll(ctx context.Context) error
}

type surplusRepository struct {
	db *gorm.DB
}

// NewSurplusRepository creates a new surplus repository.
func NewSurplusRepository(db *gorm.DB) SurplusRepository {
	return &surplusRepository{db: db}
}

// Create creates a new surplus posting.
func (r *surplusRepository) Create(ctx context.Context, surplus *model.SurplusFood) error {
	return r.db.WithContext(ctx).Create(surplus).Error
}

// FindByID finds a surplus posting by ID.
func (r *surplusRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SurplusFood, error) {
	var surplus model.SurplusFood
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&surplus).Error; err != nil {
		return nil, err
	}
	return &surplus, nil
}

// ListAvailable lists available postings, newest first.
func (r *surplusRepository) ListAvailable(ctx context.Context) ([]model.SurplusFood, error) {
	var items []model.SurplusFood
	if err := r.db.WithContext(ctx).
		Where("status = ?", model.SurplusStatusAvailable).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListByPoster lists a mess manager's own postings with claimant contact,
// newest first.
func (r *surplusRepository) ListByPoster(ctx context.Context, posterID uuid.UUID) ([]model.SurplusFood, error) {
	var items []model.SurplusFood
	if err := r.db.WithContext(ctx).Preload("ClaimedBy").
		Where("posted_by_id = ?", posterID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListByClaimant lists the postings claimed by an NGO.
func (r *surplusRepository) ListByClaimant(ctx context.Context, claimantID uuid.UUID) ([]model.SurplusFood, error) {
	var items []model.SurplusFood
	if err := r.db.WithContext(ctx).
		Where("claimed_by_id = ?", claimantID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListRecent lists the most recent postings.
func (r *surplusRepository) ListRecent(ctx context.Context, limit int) ([]model.SurplusFood, error) {
	var items []model.SurplusFood
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Claim atomically claims an available posting for an NGO. Returns false
// when the posting was no longer available (lost race or already taken).
func (r *surplusRepository) Claim(ctx context.Context, id, ngoID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.SurplusFood{}).
		Where("id = ? AND status = ?", id, model.SurplusStatusAvailable).
		Updates(map[string]interface{}{
			"status":        model.SurplusStatusClaimed,
			"claimed_by_id": ngoID,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkExpired atomically expires an available posting. Returns false when
// the posting was no longer available.
func (r *surplusRepository) MarkExpired(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.SurplusFood{}).
		Where("id = ? AND status = ?", id, model.SurplusStatusAvailable).
		Update("status", model.SurplusStatusExpired)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SweepExpired flips every available posting whose deadline has passed to
// expired and returns the IDs that were flipped. The update is conditional
// on status, so the sweep is idempotent and safe against concurrent claims.
func (r *surplusRepository) SweepExpired(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&model.SurplusFood{}).
		Where("status = ? AND deadline < ?", model.SurplusStatusAvailable, now).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	res := r.db.WithContext(ctx).Model(&model.SurplusFood{}).
		Where("id IN ? AND status = ?", ids, model.SurplusStatusAvailable).
		Update("status", model.SurplusStatusExpired)
	if res.Error != nil {
		return nil, res.Error
	}
	return ids, nil
}

// UpdateStatus sets the status of a posting.
func (r *surplusRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.SurplusStatus) error {
	return r.db.WithContext(ctx).Model(&model.SurplusFood{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// CountByStatus counts postings per status.
func (r *surplusRepository) CountByStatus(ctx context.Context) (map[model.SurplusStatus]int64, error) {
	var rows []struct {
		Status model.SurplusStatus
		Count  int64
	}
	if err := r.db.WithContext(ctx).Model(&model.SurplusFood{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[model.SurplusStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// DeleteAll removes every posting. Used by the academic-year reset.
func (r *surplusRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.SurplusFood{}).Error
}
