package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/Hegpro/Samrt-hostel-management/internal/errors"
	"github.com/Hegpro/Samrt-hostel-management/internal/model"
)

func TestUserService_CreateStudent(t *testing.T) {
	creatorID := uuid.New()
	hostelID := uuid.New()
	roomID := uuid.New()

	tests := []struct {
		name          string
		usn           string
		setupMock     func(*MockUserRepository, *MockRoomRepository)
		expectedError error
	}{
		{
			name: "creates student and linked parent",
			usn:  "1RV21CS042",
			setupMock: func(mUser *MockUserRepository, mRoom *MockRoomRepository) {
				mUser.On("FindByUSN", mock.Anything, "1RV21CS042").Return(nil, gorm.ErrRecordNotFound)
				mRoom.On("FindByID", mock.Anything, roomID).Return(&model.Room{
					ID: roomID, HostelID: hostelID, Capacity: 2, Status: model.RoomStatusAvailable,
				}, nil)
				mRoom.On("CountOccupants", mock.Anything, roomID).Return(int64(1), nil)
				mUser.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				mUser.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.Role == model.RoleStudent
				})).Return(nil)
				mUser.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.Role == model.RoleParent && u.LinkedStudentID != nil && u.RoomID == nil
				})).Return(nil)
				mRoom.On("UpdateStatus", mock.Anything, roomID, model.RoomStatusFull).Return(nil)
			},
		},
		{
			name: "duplicate usn",
			usn:  "1RV21CS042",
			setupMock: func(mUser *MockUserRepository, mRoom *MockRoomRepository) {
				mUser.On("FindByUSN", mock.Anything, "1RV21CS042").Return(&model.User{Role: model.RoleStudent}, nil)
			},
			expectedError: errors.ErrUSNExists,
		},
		{
			name: "room under maintenance",
			usn:  "1RV21CS043",
			setupMock: func(mUser *MockUserRepository, mRoom *MockRoomRepository) {
				mUser.On("FindByUSN", mock.Anything, "1RV21CS043").Return(nil, gorm.ErrRecordNotFound)
				mRoom.On("FindByID", mock.Anything, roomID).Return(&model.Room{
					ID: roomID, HostelID: hostelID, Capacity: 2, Status: model.RoomStatusMaintenance,
				}, nil)
			},
			expectedError: errors.ErrRoomUnderMaintenance,
		},
		{
			name: "room full",
			usn:  "1RV21CS044",
			setupMock: func(mUser *MockUserRepository, mRoom *MockRoomRepository) {
				mUser.On("FindByUSN", mock.Anything, "1RV21CS044").Return(nil, gorm.ErrRecordNotFound)
				mRoom.On("FindByID", mock.Anything, roomID).Return(&model.Room{
					ID: roomID, HostelID: hostelID, Capacity: 2, Status: model.RoomStatusAvailable,
				}, nil)
				mRoom.On("CountOccupants", mock.Anything, roomID).Return(int64(2), nil)
			},
			expectedError: errors.ErrRoomFull,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockRoomRepo := new(MockRoomRepository)
			tt.setupMock(mockUserRepo, mockRoomRepo)

			service := NewUserService(mockUserRepo, mockRoomRepo, NewRoomLocks())
			created, err := service.CreateStudent(context.Background(), creatorID, "Asha Rao", tt.usn, "", "9876543210", roomID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, created)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.RoleStudent, created.Student.Role)
				assert.Equal(t, model.RoleParent, created.Parent.Role)
				assert.Equal(t, created.Student.ID, *created.Parent.LinkedStudentID)
				assert.NotEmpty(t, created.Password)
			}

			mockUserRepo.AssertExpectations(t)
			mockRoomRepo.AssertExpectations(t)
		})
	}
}

// Provisioning a student creates a parent account too, but the parent must
// not hold a room reference: a double room with one student in it still has
// space for a second, and the occupant list stays students-only.
func TestUserService_CreateStudent_ParentNeverOccupiesRoom(t *testing.T) {
	creatorID := uuid.New()
	hostelID := uuid.New()
	roomID := uuid.New()

	newStudentMocks := func(occupants int64) (*MockUserRepository, *MockRoomRepository) {
		mUser := new(MockUserRepository)
		mRoom := new(MockRoomRepository)
		mUser.On("FindByUSN", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)
		mRoom.On("FindByID", mock.Anything, roomID).Return(&model.Room{
			ID: roomID, HostelID: hostelID, Capacity: 2, Status: model.RoomStatusAvailable,
		}, nil)
		mRoom.On("CountOccupants", mock.Anything, roomID).Return(occupants, nil)
		mUser.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
		mUser.On("Create", mock.Anything, mock.Anything).Return(nil)
		mRoom.On("UpdateStatus", mock.Anything, roomID, mock.Anything).Return(nil)
		return mUser, mRoom
	}

	mUser, mRoom := newStudentMocks(0)
	service := NewUserService(mUser, mRoom, NewRoomLocks())
	first, err := service.CreateStudent(context.Background(), creatorID, "Asha Rao", "1RV21CS042", "", "9876543210", roomID)
	assert.NoError(t, err)
	assert.NotNil(t, first.Student.RoomID)
	assert.Equal(t, roomID, *first.Student.RoomID)
	assert.Nil(t, first.Parent.RoomID)
	assert.Equal(t, hostelID, *first.Parent.HostelID)

	// One student in, so the occupant count the second provisioning sees is
	// 1, not 2, and the double room still admits another student.
	mUser2, mRoom2 := newStudentMocks(1)
	service = NewUserService(mUser2, mRoom2, NewRoomLocks())
	second, err := service.CreateStudent(context.Background(), creatorID, "Ravi Kumar", "1RV21CS043", "", "9876543211", roomID)
	assert.NoError(t, err)
	assert.Nil(t, second.Parent.RoomID)
	mRoom2.AssertCalled(t, "UpdateStatus", mock.Anything, roomID, model.RoomStatusFull)
}

func TestUserService_DeleteUserInRole(t *testing.T) {
	id := uuid.New()

	t.Run("role mismatch is treated as not found", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("FindByID", mock.Anything, id).Return(&model.User{ID: id, Role: model.RoleStudent}, nil)

		service := NewUserService(mockUserRepo, new(MockRoomRepository), NewRoomLocks())
		err := service.DeleteUserInRole(context.Background(), id, model.RoleWarden)

		assert.Equal(t, errors.ErrUserNotFound, err)
		mockUserRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("matching role is deleted", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("FindByID", mock.Anything, id).Return(&model.User{ID: id, Role: model.RoleWarden}, nil)
		mockUserRepo.On("Delete", mock.Anything, id).Return(nil)

		service := NewUserService(mockUserRepo, new(MockRoomRepository), NewRoomLocks())
		err := service.DeleteUserInRole(context.Background(), id, model.RoleWarden)

		assert.NoError(t, err)
		mockUserRepo.AssertExpectations(t)
	})
}

func TestUserService_DeleteStudent_RemovesParentAndRecomputesRoom(t *testing.T) {
	studentID := uuid.New()
	parentID := uuid.New()
	roomID := uuid.New()

	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("FindByID", mock.Anything, studentID).Return(&model.User{
		ID: studentID, Role: model.RoleStudent, RoomID: &roomID,
	}, nil)
	mockUserRepo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	mockUserRepo.On("FindParentOfStudent", mock.Anything, studentID).Return(&model.User{
		ID: parentID, Role: model.RoleParent,
	}, nil)
	mockUserRepo.On("Delete", mock.Anything, parentID).Return(nil)
	mockUserRepo.On("Delete", mock.Anything, studentID).Return(nil)

	mockRoomRepo := new(MockRoomRepository)
	mockRoomRepo.On("FindByID", mock.Anything, roomID).Return(&model.Room{
		ID: roomID, Capacity: 2, Status: model.RoomStatusFull,
	}, nil)
	mockRoomRepo.On("CountOccupants", mock.Anything, roomID).Return(int64(1), nil)
	mockRoomRepo.On("UpdateStatus", mock.Anything, roomID, model.RoomStatusAvailable).Return(nil)

	service := NewUserService(mockUserRepo, mockRoomRepo, NewRoomLocks())
	err := service.DeleteStudent(context.Background(), studentID)

	assert.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
	mockRoomRepo.AssertExpectations(t)
}
