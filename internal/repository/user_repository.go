package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Hegpro/Samrt-hostel-management/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUSN(ctx context.Context, usn string) (*model.User, error)
	FindByPhone(ctx context.Context, phone string) (*model.User, error)
	FindStudentByUSN(ctx context.Context, usn string) (*model.User, error)
	FindParentOfStudent(ctx context.Context, studentID uuid.UUID) (*model.User, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
	ListByRoleAndHostel(ctx context.Context, role model.Role, hostelID uuid.UUID) ([]model.User, error)
	ListStudentsByRoom(ctx context.Context, roomID uuid.UUID) ([]model.User, error)
	CountByRole(ctx context.Context, role model.Role) (int64, error)
	CountByRoleAndHostel(ctx context.Context, role model.Role, hostelID uuid.UUID) (int64, error)
	DeleteByRoles(ctx context.Context, roles ...model.Role) error
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UserRepository) error) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update updates an existing user.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete removes a user by ID.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id).Error
}

// FindByID finds a user by ID.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUSN finds a user by student registration number.
func (r *userRepository) FindByUSN(ctx context.Context, usn string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("usn = ?", usn).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByPhone finds a user by phone number.
func (r *userRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindStudentByUSN finds a student by USN.
func (r *userRepository) FindStudentByUSN(ctx context.Context, usn string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("role = ? AND usn = ?", model.RoleStudent, usn).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindParentOfStudent finds the parent linked to the given student.
func (r *userRepository) FindParentOfStudent(ctx context.Context, studentID uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("role = ? AND linked_student_id = ?", model.RoleParent, studentID).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListByRole lists all users with the given role, newest first.
func (r *userRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListByRoleAndHostel lists users with the given role within a hostel.
func (r *userRepository) ListByRoleAndHostel(ctx context.Context, role model.Role, hostelID uuid.UUID) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).
		Where("role = ? AND hostel_id = ?", role, hostelID).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListStudentsByRoom lists the students currently assigned to a room.
func (r *userRepository) ListStudentsByRoom(ctx context.Context, roomID uuid.UUID) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).
		Where("role = ? AND room_id = ?", model.RoleStudent, roomID).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CountByRole counts users with the given role.
func (r *userRepository) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("role = ?", role).
		Count(&count).Error
	return count, err
}

// CountByRoleAndHostel counts users with the given role within a hostel.
func (r *userRepository) CountByRoleAndHostel(ctx context.Context, role model.Role, hostelID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("role = ? AND hostel_id = ?", role, hostelID).
		Count(&count).Error
	return count, err
}

// DeleteByRoles removes every user holding one of the given roles.
func (r *userRepository) DeleteByRoles(ctx context.Context, roles ...model.Role) error {
	return r.db.WithContext(ctx).
		Where("role IN ?", roles).
		Delete(&model.User{}).Error
}

// WithTransaction executes a function within a database transaction.
func (r *userRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &userRepository{db: tx})
	})
}
