package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Hegpro/Samrt-hostel-management/internal/model"
)

// ComplaintFilter narrows complaint list queries. Zero values mean "any".
type ComplaintFilter struct {
	HostelID *uuid.UUID
	Status   model.ComplaintStatus
	Category model.ComplaintCategory
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
}

// MonthCount is one month's complaint volume.
type MonthCount struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// ComplaintRepository defines complaint persistence operations.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *model.Complaint) error
	Update(ctx context.Context, complaint *model.Complaint) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Complaint, error)
	ListOpenByCategoryAndHostel(ctx context.Context, category model.ComplaintCategory, hostelID uuid.UUID) ([]model.Complaint, error)
	ListByStatusAndHostel(ctx context.Context, status model.ComplaintStatus, hostelID uuid.UUID) ([]model.Complaint, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]model.Complaint, error)
	ListFiltered(ctx context.Context, filter ComplaintFilter) ([]model.Complaint, int64, error)
	ListByCategory(ctx context.Context, category model.ComplaintCategory) ([]model.Complaint, error)
	ListRecent(ctx context.Context, hostelID *uuid.UUID, limit int) ([]model.Complaint, error)
	SummaryByStatus(ctx context.Context, hostelID *uuid.UUID, from, to *time.Time) (map[model.ComplaintStatus]int64, error)
	TrendByMonth(ctx context.Context, hostelID *uuid.UUID, since time.Time) ([]MonthCount, error)
	CountByStatusAndHostel(ctx context.Context, status model.ComplaintStatus, hostelID uuid.UUID) (int64, error)
	DeleteAll(ctx context.Context) error
}

type complaintRepository struct {
	db *gorm.DB
}

// NewComplaintRepository creates a new complaint repository.
func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &complaintRepository{db: db}
}

func (r *complaintRepository) preload(db *gorm.DB) *gorm.DB {
	return db.Preload("CreatedBy").Preload("CreatedBy.Room").Preload("HandledBy")
}

// Create creates a new complaint.
func (r *complaintRepository) Create(ctx context.Context, complaint *model.Complaint) error {
	return r.db.WithContext(ctx).Create(complaint).Error
}

// Update updates an existing complaint.
func (r *complaintRepository) Update(ctx context.Context, complaint *model.Complaint) error {
	return r.db.WithContext(ctx).Save(complaint).Error
}

// Delete removes a complaint.
func (r *complaintRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Complaint{}, "id = ?", id).Error
}

// FindByID finds a complaint by ID.
func (r *complaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Complaint, error) {
	var complaint model.Complaint
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&complaint).Error; err != nil {
		return nil, err
	}
	return &complaint, nil
}

// ListOpenByCategoryAndHostel lists non-closed complaints of a category
// within a hostel, oldest first (staff work queue order).
func (r *complaintRepository) ListOpenByCategoryAndHostel(ctx context.Context, category model.ComplaintCategory, hostelID uuid.UUID) ([]model.Complaint, error) {
	var complaints []model.Complaint
	if err := r.preload(r.db.WithContext(ctx)).
		Where("category = ? AND hostel_id = ? AND status <> ?", category, hostelID, model.ComplaintStatusClosed).
		Order("created_at").
		Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

// ListByStatusAndHostel lists complaints with a status within a hostel,
// oldest first.
func (r *complaintRepository) ListByStatusAndHostel(ctx context.Context, status model.ComplaintStatus, hostelID uuid.UUID) ([]model.Complaint, error) {
	var complaints []model.Complaint
	if err := r.preload(r.db.WithContext(ctx)).
		Where("status = ? AND hostel_id = ?", status, hostelID).
		Order("created_at").
		Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

// ListByCreator lists a student's own complaints, newest first.
func (r *complaintRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]model.Complaint, error) {
	var complaints []model.Complaint
	if err := r.db.WithContext(ctx).
		Where("created_by_id = ?", creatorID).
		Order("created_at DESC").
		Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

// ListByCategory lists all complaints of a category, oldest first.
func (r *complaintRepository) ListByCategory(ctx context.Context, category model.ComplaintCategory) ([]model.Complaint, error) {
	var complaints []model.Complaint
	if err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("created_at").
		Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

// ListRecent lists the most recent complaints, optionally hostel-scoped.
func (r *complaintRepository) ListRecent(ctx context.Context, hostelID *uuid.UUID, limit int) ([]model.Complaint, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if hostelID != nil {
		q = q.Where("hostel_id = ?", *hostelID)
	}
	var complaints []model.Complaint
	if err := q.Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

func (r *complaintRepository) applyFilter(q *gorm.DB, filter ComplaintFilter) *gorm.DB {
	if filter.HostelID != nil {
		q = q.Where("hostel_id = ?", *filter.HostelID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at <= ?", *filter.To)
	}
	return q
}

// ListFiltered lists complaints matching the filter, newest first, with the
// total count for pagination.
func (r *complaintRepository) ListFiltered(ctx context.Context, filter ComplaintFilter) ([]model.Complaint, int64, error) {
	var total int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&model.Complaint{}), filter).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	var complaints []model.Complaint
	q := r.applyFilter(r.preload(r.db.WithContext(ctx)), filter).
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit)
	if err := q.Find(&complaints).Error; err != nil {
		return nil, 0, err
	}
	return complaints, total, nil
}

// SummaryByStatus counts complaints per status, optionally scoped by hostel
// and creation date range.
func (r *complaintRepository) SummaryByStatus(ctx context.Context, hostelID *uuid.UUID, from, to *time.Time) (map[model.ComplaintStatus]int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Complaint{})
	if hostelID != nil {
		q = q.Where("hostel_id = ?", *hostelID)
	}
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("created_at <= ?", *to)
	}

	var rows []struct {
		Status model.ComplaintStatus
		Count  int64
	}
	if err := q.Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	summary := make(map[model.ComplaintStatus]int64, len(rows))
	for _, row := range rows {
		summary[row.Status] = row.Count
	}
	return summary, nil
}

// TrendByMonth counts complaints per calendar month since the given time.
func (r *complaintRepository) TrendByMonth(ctx context.Context, hostelID *uuid.UUID, since time.Time) ([]MonthCount, error) {
	q := r.db.WithContext(ctx).Model(&model.Complaint{}).
		Where("created_at >= ?", since)
	if hostelID != nil {
		q = q.Where("hostel_id = ?", *hostelID)
	}

	var rows []MonthCount
	if err := q.Select("YEAR(created_at) AS year, MONTH(created_at) AS month, COUNT(*) AS count").
		Group("YEAR(created_at), MONTH(created_at)").
		Order("year, month").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountByStatusAndHostel counts complaints with a status within a hostel.
func (r *complaintRepository) CountByStatusAndHostel(ctx context.Context, status model.ComplaintStatus, hostelID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Complaint{}).
		Where("status = ? AND hostel_id = ?", status, hostelID).
		Count(&count).Error
	return count, err
}

// DeleteAll removes every complaint. Used by the academic-year reset.
func (r *complaintRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Complaint{}).Error
}
