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

func TestStudentComplaintService_Raise(t *testing.T) {
	raiserID := uuid.New()
	studentID := uuid.New()
	parentID := uuid.New()

	t.Run("attaches parent when one exists", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("FindByID", mock.Anything, raiserID).Return(&model.User{ID: raiserID, Role: model.RoleWarden}, nil)
		mockUserRepo.On("FindStudentByUSN", mock.Anything, "1RV21CS042").Return(&model.User{ID: studentID, Role: model.RoleStudent}, nil)
		mockUserRepo.On("FindParentOfStudent", mock.Anything, studentID).Return(&model.User{ID: parentID, Role: model.RoleParent}, nil)
		mockComplaintRepo := new(MockStudentComplaintRepository)
		mockComplaintRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.StudentComplaint")).Return(nil)

		service := NewStudentComplaintService(mockComplaintRepo, mockUserRepo)
		complaint, err := service.Raise(context.Background(), raiserID, "1RV21CS042", "Curfew violation", "Returned after midnight twice this week")

		assert.NoError(t, err)
		assert.Equal(t, studentID, complaint.StudentID)
		assert.Equal(t, parentID, *complaint.ParentID)
		assert.Equal(t, model.RoleWarden, complaint.RaisedRole)
		assert.Equal(t, model.StudentComplaintOpen, complaint.Status)
		mockUserRepo.AssertExpectations(t)
		mockComplaintRepo.AssertExpectations(t)
	})

	t.Run("missing parent is not an error", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("FindByID", mock.Anything, raiserID).Return(&model.User{ID: raiserID, Role: model.RoleChiefWarden}, nil)
		mockUserRepo.On("FindStudentByUSN", mock.Anything, "1RV21CS042").Return(&model.User{ID: studentID, Role: model.RoleStudent}, nil)
		mockUserRepo.On("FindParentOfStudent", mock.Anything, studentID).Return(nil, gorm.ErrRecordNotFound)
		mockComplaintRepo := new(MockStudentComplaintRepository)
		mockComplaintRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.StudentComplaint")).Return(nil)

		service := NewStudentComplaintService(mockComplaintRepo, mockUserRepo)
		complaint, err := service.Raise(context.Background(), raiserID, "1RV21CS042", "Property damage", "Broke the common room window")

		assert.NoError(t, err)
		assert.Nil(t, complaint.ParentID)
	})

	t.Run("unknown usn", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("FindByID", mock.Anything, raiserID).Return(&model.User{ID: raiserID, Role: model.RoleWarden}, nil)
		mockUserRepo.On("FindStudentByUSN", mock.Anything, "NOPE").Return(nil, gorm.ErrRecordNotFound)

		service := NewStudentComplaintService(new(MockStudentComplaintRepository), mockUserRepo)
		complaint, err := service.Raise(context.Background(), raiserID, "NOPE", "Curfew violation", "Late again")

		assert.Equal(t, errors.ErrUserNotFound, err)
		assert.Nil(t, complaint)
	})
}

func TestStudentComplaintService_Close(t *testing.T) {
	complaintID := uuid.New()
	studentID := uuid.New()
	wardenID := uuid.New()
	hostelID := uuid.New()
	otherHostelID := uuid.New()

	tests := []struct {
		name          string
		closer        *model.User
		studentHostel *uuid.UUID
		expectedError error
	}{
		{
			name:          "warden of the student's hostel closes",
			closer:        &model.User{ID: wardenID, Role: model.RoleWarden, HostelID: &hostelID},
			studentHostel: &hostelID,
		},
		{
			name:          "warden of another hostel is rejected",
			closer:        &model.User{ID: wardenID, Role: model.RoleWarden, HostelID: &otherHostelID},
			studentHostel: &hostelID,
			expectedError: errors.ErrForbidden,
		},
		{
			name:          "chief may close regardless of hostel",
			closer:        &model.User{ID: wardenID, Role: model.RoleChiefWarden},
			studentHostel: &hostelID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockComplaintRepo := new(MockStudentComplaintRepository)
			mockComplaintRepo.On("FindByID", mock.Anything, complaintID).Return(&model.StudentComplaint{
				ID: complaintID, StudentID: studentID, Status: model.StudentComplaintOpen,
			}, nil)
			mockUserRepo := new(MockUserRepository)
			mockUserRepo.On("FindByID", mock.Anything, wardenID).Return(tt.closer, nil)
			if tt.closer.Role == model.RoleWarden {
				mockUserRepo.On("FindByID", mock.Anything, studentID).Return(&model.User{
					ID: studentID, Role: model.RoleStudent, HostelID: tt.studentHostel,
				}, nil)
			}
			if tt.expectedError == nil {
				mockComplaintRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.StudentComplaint")).Return(nil)
			}

			service := NewStudentComplaintService(mockComplaintRepo, mockUserRepo)
			complaint, err := service.Close(context.Background(), complaintID, wardenID, "spoke with the student")

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, complaint)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.StudentComplaintClosed, complaint.Status)
				assert.Equal(t, wardenID, *complaint.ClosedByID)
				assert.Equal(t, "spoke with the student", complaint.ClosedNote)
			}

			mockComplaintRepo.AssertExpectations(t)
			mockUserRepo.AssertExpectations(t)
		})
	}
}
