package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Hegpro/Samrt-hostel-management/internal/model"
)

// HostelRepository defines hostel persistence operations.
type HostelRepository interface {
	Create(ctx context.Context, hostel *model.Hostel) error
	Update(ctx context.Context, hostel *model.Hostel) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Hostel, error)
	FindByNameOrCode(ctx context.Context, name, code string) (*model.Hostel, error)
	ListAll(ctx context.Context) ([]model.Hostel, error)
	Count(ctx context.Context) (int64, error)
}

type hostelRepository struct {
	db *gorm.DB
}

// NewHostelRepository creates a new hostel repository.
func NewHostelRepository(db *gorm.DB) HostelRepository {
	return &hostelRepository{db: db}
}

// Create creates a new hostel.
func (r *hostelRepository) Create(ctx context.Context, hostel *model.Hostel) error {
	return r.db.WithContext(ctx).Create(hostel).Error
}

// Update updates an existing hostel.
func (r *hostelRepository) Update(ctx context.Context, hostel *model.Hostel) error {
	return r.db.WithContext(ctx).Save(hostel).Error
}

// FindByID finds a hostel by ID.
func (r *hostelRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Hostel, error) {
	var hostel model.Hostel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&hostel).Error; err != nil {
		return nil, err
	}
	return &hostel, nil
}

// FindByNameOrCode finds a hostel whose name or code matches.
func (r *hostelRepository) FindByNameOrCode(ctx context.Context, name, code string) (*model.Hostel, error) {
	var hostel model.Hostel
	if err := r.db.WithContext(ctx).
		Where("name = ? OR code = ?", name, code).
		First(&hostel).Error; err != nil {
		return nil, err
	}
	return &hostel, nil
}

// ListAll lists all hostels.
func (r *hostelRepository) ListAll(ctx context.Context) ([]model.Hostel, error) {
	var hostels []model.Hostel
	if err := r.db.WithContext(ctx).Order("name").Find(&hostels).Error; err != nil {
		return nil, err
	}
	return hostels, nil
}

// Count counts all hostels.
func (r *hostelRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Hostel{}).Count(&count).Error
	return count, err
}
