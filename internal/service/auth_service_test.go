package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Hegpro/Samrt-hostel-management/internal/auth"
	"github.com/Hegpro/Samrt-hostel-management/internal/errors"
	"github.com/Hegpro/Samrt-hostel-management/internal/model"
)

func TestAuthService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name          string
		identifier    string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedRole  model.Role
		expectedError error
	}{
		{
			name:       "login by email",
			identifier: "warden@example.com",
			password:   "password123",
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenStore) {
				mUser.On("FindByEmail", mock.Anything, "warden@example.com").Return(&model.User{
					ID: uuid.New(), Role: model.RoleWarden, PasswordHash: string(hashedPassword),
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, model.RoleWarden, mock.Anything).Return(nil)
			},
			expectedRole: model.RoleWarden,
		},
		{
			name:       "student falls through to usn lookup",
			identifier: "1RV21CS042",
			password:   "password123",
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenStore) {
				mUser.On("FindByEmail", mock.Anything, "1RV21CS042").Return(nil, gorm.ErrRecordNotFound)
				mUser.On("FindStudentByUSN", mock.Anything, "1RV21CS042").Return(&model.User{
					ID: uuid.New(), Role: model.RoleStudent, PasswordHash: string(hashedPassword),
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, model.RoleStudent, mock.Anything).Return(nil)
			},
			expectedRole: model.RoleStudent,
		},
		{
			name:       "staff falls through to phone lookup",
			identifier: "9876543210",
			password:   "password123",
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenStore) {
				mUser.On("FindByEmail", mock.Anything, "9876543210").Return(nil, gorm.ErrRecordNotFound)
				mUser.On("FindStudentByUSN", mock.Anything, "9876543210").Return(nil, gorm.ErrRecordNotFound)
				mUser.On("FindByPhone", mock.Anything, "9876543210").Return(&model.User{
					ID: uuid.New(), Role: model.RoleStaff, PasswordHash: string(hashedPassword),
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, model.RoleStaff, mock.Anything).Return(nil)
			},
			expectedRole: model.RoleStaff,
		},
		{
			name:       "wrong password",
			identifier: "warden@example.com",
			password:   "nope",
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenStore) {
				mUser.On("FindByEmail", mock.Anything, "warden@example.com").Return(&model.User{
					ID: uuid.New(), Role: model.RoleWarden, PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:       "unknown identifier",
			identifier: "ghost@example.com",
			password:   "password123",
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenStore) {
				mUser.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
				mUser.On("FindStudentByUSN", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
				mUser.On("FindByPhone", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:          "empty credentials",
			setupMock:     func(*MockUserRepository, *MockTokenStore) {},
			expectedError: errors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockUserRepo, mockTokenStore)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockUserRepo, jwtService, mockTokenStore, new(MockMailer), 15*time.Minute)

			accessToken, refreshToken, user, err := service.Login(context.Background(), tt.identifier, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.Equal(t, tt.expectedRole, user.Role)
			}

			mockUserRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_ParentLogin(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("parentpass"), 10)
	studentID := uuid.New()

	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("FindStudentByUSN", mock.Anything, "1RV21CS042").Return(&model.User{
		ID: studentID, Role: model.RoleStudent,
	}, nil)
	mockUserRepo.On("FindParentOfStudent", mock.Anything, studentID).Return(&model.User{
		ID: uuid.New(), Role: model.RoleParent, PasswordHash: string(hashedPassword), LinkedStudentID: &studentID,
	}, nil)
	mockTokenStore := new(MockTokenStore)
	mockTokenStore.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, model.RoleParent, mock.Anything).Return(nil)

	jwtService := auth.NewJWTService("test-secret")
	service := NewAuthService(mockUserRepo, jwtService, mockTokenStore, new(MockMailer), 15*time.Minute)

	accessToken, refreshToken, parent, err := service.ParentLogin(context.Background(), "1RV21CS042", "parentpass")

	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, model.RoleParent, parent.Role)
	mockUserRepo.AssertExpectations(t)
	mockTokenStore.AssertExpectations(t)
}

func TestAuthService_ChangePassword(t *testing.T) {
	userID := uuid.New()
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("old-password"), 10)

	tests := []struct {
		name          string
		oldPassword   string
		newPassword   string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:        "successful change clears temp flag",
			oldPassword: "old-password",
			newPassword: "new-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(&model.User{
					ID: userID, PasswordHash: string(hashedPassword), TempPassword: true,
				}, nil)
				m.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return !u.TempPassword && bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("new-password")) == nil
				})).Return(nil)
			},
		},
		{
			name:        "wrong old password",
			oldPassword: "not-it",
			newPassword: "new-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(&model.User{
					ID: userID, PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedError: errors.ErrWrongPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			tt.setupMock(mockUserRepo)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockUserRepo, jwtService, new(MockTokenStore), new(MockMailer), 15*time.Minute)

			err := service.ChangePassword(context.Background(), userID, tt.oldPassword, tt.newPassword)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}
			mockUserRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_VerifyNGOCodeAndRegister(t *testing.T) {
	code := "482913"
	future := time.Now().Add(5 * time.Minute)
	past := time.Now().Add(-5 * time.Minute)

	tests := []struct {
		name          string
		code          string
		user          *model.User
		setupUpdate   bool
		expectedError error
	}{
		{
			name: "valid code verifies the account",
			code: code,
			user: &model.User{
				Role: model.RoleNGO, PasswordHash: "PENDING",
				EmailVerificationCode: &code, EmailVerificationExpiry: &future,
			},
			setupUpdate: true,
		},
		{
			name: "expired code",
			code: code,
			user: &model.User{
				Role: model.RoleNGO, PasswordHash: "PENDING",
				EmailVerificationCode: &code, EmailVerificationExpiry: &past,
			},
			expectedError: errors.ErrOTPExpired,
		},
		{
			name: "wrong code",
			code: "000000",
			user: &model.User{
				Role: model.RoleNGO, PasswordHash: "PENDING",
				EmailVerificationCode: &code, EmailVerificationExpiry: &future,
			},
			expectedError: errors.ErrInvalidOTP,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email := "ngo@example.org"
			tt.user.Email = &email

			mockUserRepo := new(MockUserRepository)
			mockUserRepo.On("FindByEmail", mock.Anything, email).Return(tt.user, nil)
			if tt.setupUpdate {
				mockUserRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.EmailVerified && u.EmailVerificationCode == nil
				})).Return(nil)
			}

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockUserRepo, jwtService, new(MockTokenStore), new(MockMailer), 15*time.Minute)

			ngo, err := service.VerifyNGOCodeAndRegister(context.Background(), email, tt.code, "realpassword")

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, ngo)
			} else {
				assert.NoError(t, err)
				assert.True(t, ngo.EmailVerified)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(ngo.PasswordHash), []byte("realpassword")))
			}
			mockUserRepo.AssertExpectations(t)
		})
	}
}
