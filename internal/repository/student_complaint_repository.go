package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Hegpro/Samrt-hostel-management/internal/model"
)

// StudentComplaintRepository defines disciplinary complaint persistence.
type StudentComplaintRepository interface {
	Create(ctx context.Context, complaint *model.StudentComplaint) error
	Update(ctx context.Context, complaint *model.StudentComplaint) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.StudentComplaint, error)
	ListByParent(ctx context.Context, parentID uuid.UUID) ([]model.StudentComplaint, error)
	DeleteAll(ctx context.Context) error
}

type studentComplaintRepository struct {
	db *gorm.DB
}

// NewStudentComplaintRepository creates a new student complaint repository.
func NewStudentComplaintRepository(db *gorm.DB) StudentComplaintRepository {
	return &studentComplaintRepository{db: db}
}

// Create creates a new student complaint.
func (r *studentComplaintRepository) Create(ctx context.Context, complaint *model.StudentComplaint) error {
	return r.db.WithContext(ctx).Create(complaint).Error
}

// Update updates an existing student complaint.
func (r *studentComplaintRepository) Update(ctx context.Context, complaint *model.StudentComplaint) error {
	return r.db.WithContext(ctx).Save(complaint).Error
}

// FindByID finds a student complaint by ID.
func (r *studentComplaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.StudentComplaint, error) {
	var complaint model.StudentComplaint
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&complaint).Error; err != nil {
		return nil, err
	}
	return &complaint, nil
}

// ListByParent lists the complaints visible to a parent, newest first.
func (r *studentComplaintRepository) ListByParent(ctx context.Context, parentID uuid.UUID) ([]model.StudentComplaint, error) {
	var complaints []model.StudentComplaint
	if err := r.db.WithContext(ctx).
		Preload("Student").Preload("RaisedBy").
		Where("parent_id = ?", parentID).
		Order("created_at DESC").
		Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

// DeleteAll removes every student complaint. Used by the academic-year reset.
func (r *studentComplaintRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.StudentComplaint{}).Error
}
