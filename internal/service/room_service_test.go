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

func TestRoomService_AssignStudent(t *testing.T) {
	hostelID := uuid.New()
	roomID := uuid.New()
	studentID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockRoomRepository, *MockUserRepository)
		expectedError error
	}{
		{
			name: "successful assignment fills the room",
			setupMock: func(mRoom *MockRoomRepository, mUser *MockUserRepository) {
				mUser.On("FindByID", mock.Anything, studentID).Return(&model.User{ID: studentID, Role: model.RoleStudent}, nil)
				mRoom.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				mRoom.On("FindByIDForUpdate", mock.Anything, roomID).Return(&model.Room{ID: roomID, HostelID: hostelID, Capacity: 2}, nil)
				mRoom.On("CountOccupants", mock.Anything, roomID).Return(int64(1), nil)
				mRoom.On("AssignOccupant", mock.Anything, roomID, hostelID, studentID).Return(nil)
				mRoom.On("UpdateStatus", mock.Anything, roomID, model.RoomStatusFull).Return(nil)
				mRoom.On("FindByID", mock.Anything, roomID).Return(&model.Room{ID: roomID, Capacity: 2, Status: model.RoomStatusFull}, nil)
			},
		},
		{
			name: "room already full",
			setupMock: func(mRoom *MockRoomRepository, mUser *MockUserRepository) {
				mUser.On("FindByID", mock.Anything, studentID).Return(&model.User{ID: studentID, Role: model.RoleStudent}, nil)
				mRoom.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				mRoom.On("FindByIDForUpdate", mock.Anything, roomID).Return(&model.Room{ID: roomID, HostelID: hostelID, Capacity: 2}, nil)
				mRoom.On("CountOccupants", mock.Anything, roomID).Return(int64(2), nil)
			},
			expectedError: errors.ErrRoomFull,
		},
		{
			name: "target user is not a student",
			setupMock: func(mRoom *MockRoomRepository, mUser *MockUserRepository) {
				mUser.On("FindByID", mock.Anything, studentID).Return(&model.User{ID: studentID, Role: model.RoleWarden}, nil)
			},
			expectedError: errors.ErrValidation,
		},
		{
			name: "room does not exist",
			setupMock: func(mRoom *MockRoomRepository, mUser *MockUserRepository) {
				mUser.On("FindByID", mock.Anything, studentID).Return(&model.User{ID: studentID, Role: model.RoleStudent}, nil)
				mRoom.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				mRoom.On("FindByIDForUpdate", mock.Anything, roomID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrRoomNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRoomRepo := new(MockRoomRepository)
			mockUserRepo := new(MockUserRepository)
			tt.setupMock(mockRoomRepo, mockUserRepo)

			service := NewRoomService(mockRoomRepo, new(MockHostelRepository), mockUserRepo, NewRoomLocks())
			room, err := service.AssignStudent(context.Background(), roomID, studentID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, room)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, room)
				assert.Equal(t, model.RoomStatusFull, room.Status)
			}

			mockRoomRepo.AssertExpectations(t)
			mockUserRepo.AssertExpectations(t)
		})
	}
}

func TestRoomService_RemoveStudent_KeepsMaintenanceStatus(t *testing.T) {
	roomID := uuid.New()
	studentID := uuid.New()

	mockRoomRepo := new(MockRoomRepository)
	mockRoomRepo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	mockRoomRepo.On("FindByIDForUpdate", mock.Anything, roomID).Return(&model.Room{
		ID: roomID, Capacity: 2, Status: model.RoomStatusMaintenance,
	}, nil)
	mockRoomRepo.On("RemoveOccupant", mock.Anything, roomID, studentID).Return(true, nil)
	mockRoomRepo.On("CountOccupants", mock.Anything, roomID).Return(int64(0), nil)
	mockRoomRepo.On("FindByID", mock.Anything, roomID).Return(&model.Room{
		ID: roomID, Capacity: 2, Status: model.RoomStatusMaintenance,
	}, nil)

	service := NewRoomService(mockRoomRepo, new(MockHostelRepository), new(MockUserRepository), NewRoomLocks())
	room, err := service.RemoveStudent(context.Background(), roomID, studentID)

	assert.NoError(t, err)
	assert.Equal(t, model.RoomStatusMaintenance, room.Status)
	mockRoomRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	mockRoomRepo.AssertExpectations(t)
}

func TestRoomService_Relocate(t *testing.T) {
	oldRoomID := uuid.New()
	newRoomID := uuid.New()
	newHostelID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockRoomRepository)
		expectedMoved int
		expectedError error
	}{
		{
			name: "successful relocation",
			setupMock: func(m *MockRoomRepository) {
				m.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				m.On("FindByIDForUpdate", mock.Anything, oldRoomID).Return(&model.Room{ID: oldRoomID, RoomNumber: "101", Capacity: 2}, nil)
				m.On("FindByIDForUpdate", mock.Anything, newRoomID).Return(&model.Room{ID: newRoomID, HostelID: newHostelID, RoomNumber: "205", Capacity: 4}, nil)
				m.On("CountOccupants", mock.Anything, oldRoomID).Return(int64(2), nil)
				m.On("CountOccupants", mock.Anything, newRoomID).Return(int64(1), nil)
				m.On("MoveOccupants", mock.Anything, oldRoomID, newRoomID, newHostelID).Return(int64(2), nil)
				m.On("UpdateStatus", mock.Anything, oldRoomID, model.RoomStatusAvailable).Return(nil)
				m.On("UpdateStatus", mock.Anything, newRoomID, model.RoomStatusAvailable).Return(nil)
			},
			expectedMoved: 2,
		},
		{
			name: "not enough space in new room",
			setupMock: func(m *MockRoomRepository) {
				m.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				m.On("FindByIDForUpdate", mock.Anything, oldRoomID).Return(&model.Room{ID: oldRoomID, Capacity: 4}, nil)
				m.On("FindByIDForUpdate", mock.Anything, newRoomID).Return(&model.Room{ID: newRoomID, HostelID: newHostelID, Capacity: 2}, nil)
				m.On("CountOccupants", mock.Anything, oldRoomID).Return(int64(3), nil)
				m.On("CountOccupants", mock.Anything, newRoomID).Return(int64(1), nil)
			},
			expectedError: errors.ErrInsufficientCapacity,
		},
		{
			name: "new room under maintenance",
			setupMock: func(m *MockRoomRepository) {
				m.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				m.On("FindByIDForUpdate", mock.Anything, oldRoomID).Return(&model.Room{ID: oldRoomID, Capacity: 2}, nil)
				m.On("FindByIDForUpdate", mock.Anything, newRoomID).Return(&model.Room{ID: newRoomID, Capacity: 4, Status: model.RoomStatusMaintenance}, nil)
			},
			expectedError: errors.ErrRoomUnderMaintenance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRoomRepo := new(MockRoomRepository)
			tt.setupMock(mockRoomRepo)

			service := NewRoomService(mockRoomRepo, new(MockHostelRepository), new(MockUserRepository), NewRoomLocks())
			result, err := service.Relocate(context.Background(), oldRoomID, newRoomID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedMoved, result.MovedStudents)
				assert.Equal(t, "101", result.FromRoom)
				assert.Equal(t, "205", result.ToRoom)
			}

			mockRoomRepo.AssertExpectations(t)
		})
	}
}

func TestRoomService_Relocate_SameRoom(t *testing.T) {
	roomID := uuid.New()
	service := NewRoomService(new(MockRoomRepository), new(MockHostelRepository), new(MockUserRepository), NewRoomLocks())

	result, err := service.Relocate(context.Background(), roomID, roomID)
	assert.Equal(t, errors.ErrValidation, err)
	assert.Nil(t, result)
}

func TestRoomService_UpdateStatus_InvalidStatus(t *testing.T) {
	service := NewRoomService(new(MockRoomRepository), new(MockHostelRepository), new(MockUserRepository), NewRoomLocks())

	room, err := service.UpdateStatus(context.Background(), uuid.New(), model.RoomStatus("occupied"))
	assert.Equal(t, errors.ErrInvalidRoomStatus, err)
	assert.Nil(t, room)
}
