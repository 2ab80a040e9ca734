package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Hegpro/Samrt-hostel-management/internal/auth"
	"github.com/Hegpro/Samrt-hostel-management/internal/errors"
	"github.com/Hegpro/Samrt-hostel-management/internal/mail"
	"github.com/Hegpro/Samrt-hostel-management/internal/model"
	"github.com/Hegpro/Samrt-hostel-management/internal/repository"

	"github.com/google/uuid"
)

const bcryptCost = 10

// ngoVerificationExpiry bounds how long an NGO signup OTP stays valid.
const ngoVerificationExpiry = 10 * time.Minute

// AuthService handles authentication and self-service account operations.
type AuthService interface {
	Login(ctx context.Context, identifier, password string) (accessToken, refreshToken string, user *model.User, err error)
	ParentLogin(ctx context.Context, usn, password string) (accessToken, refreshToken string, user *model.User, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
	SendPasswordResetCode(ctx context.Context, email string) error
	VerifyCodeAndResetPassword(ctx context.Context, email, code, newPassword string) error
	SendNGOVerificationCode(ctx context.Context, name, email string) error
	VerifyNGOCodeAndRegister(ctx context.Context, email, code, password string) (*model.User, error)
	GetMe(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

type authService struct {
	userRepo        repository.UserRepository
	jwtService      *auth.JWTService
	tokenStore      auth.TokenStoreInterface
	mailer          mail.Mailer
	resetCodeExpiry time.Duration
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface, mailer mail.Mailer, resetCodeExpiry time.Duration) AuthService {
	return &authService{
		userRepo:        userRepo,
		jwtService:      jwtService,
		tokenStore:      tokenStore,
		mailer:          mailer,
		resetCodeExpiry: resetCodeExpiry,
	}
}

// findByIdentifier resolves a login identifier, trying email, then USN,
// then phone. Students log in with their USN, staff with their phone.
func (s *authService) findByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	if user, err := s.userRepo.FindByEmail(ctx, identifier); err == nil {
		return user, nil
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if user, err := s.userRepo.FindStudentByUSN(ctx, identifier); err == nil {
		return user, nil
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	return s.userRepo.FindByPhone(ctx, identifier)
}

// issueTokens generates an access/refresh token pair and stores the refresh
// token ID in Redis.
func (s *authService) issueTokens(ctx context.Context, user *model.User) (string, string, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return "", "", fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return "", "", fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Role, auth.RefreshTokenExpiry); err != nil {
		return "", "", fmt.Errorf("store refresh token: %w", err)
	}
	return accessToken, refreshToken, nil
}

// Login authenticates any user by email, USN or phone.
func (s *authService) Login(ctx context.Context, identifier, password string) (string, string, *model.User, error) {
	if identifier == "" || password == "" {
		return "", "", nil, errors.ErrValidation
	}

	user, err := s.findByIdentifier(ctx, identifier)
	if err != nil {
		return "", "", nil, errors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, errors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, user)
	if err != nil {
		return "", "", nil, err
	}
	return accessToken, refreshToken, user, nil
}

// ParentLogin authenticates the parent linked to a student. Parents share
// the student's USN as their login identifier.
func (s *authService) ParentLogin(ctx context.Context, usn, password string) (string, string, *model.User, error) {
	if usn == "" || password == "" {
		return "", "", nil, errors.ErrValidation
	}

	student, err := s.userRepo.FindStudentByUSN(ctx, usn)
	if err != nil {
		return "", "", nil, errors.ErrInvalidCredentials
	}
	parent, err := s.userRepo.FindParentOfStudent(ctx, student.ID)
	if err != nil {
		return "", "", nil, errors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(parent.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, errors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, parent)
	if err != nil {
		return "", "", nil, err
	}
	return accessToken, refreshToken, parent, nil
}

// RefreshToken validates a refresh token against Redis and issues a new
// access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", errors.ErrInvalidRefreshToken
	}

	userID, role, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", errors.ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(userID, role)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout invalidates a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return errors.ErrInvalidRefreshToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}

// ChangePassword updates a user's password after checking the old one, and
// clears the temp-password flag set by provisioning.
func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return errors.ErrValidation
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return errors.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashed)
	user.TempPassword = false
	return s.userRepo.Update(ctx, user)
}

// SendPasswordResetCode emails a 6-digit reset code with a bounded expiry.
func (s *authService) SendPasswordResetCode(ctx context.Context, email string) error {
	if email == "" {
		return errors.ErrValidation
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	code := auth.GenerateOTP()
	expiry := time.Now().Add(s.resetCodeExpiry)
	user.EmailVerificationCode = &code
	user.EmailVerificationExpiry = &expiry
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("store reset code: %w", err)
	}

	minutes := int(s.resetCodeExpiry.Minutes())
	subject := "Smart Hostel password reset code"
	text := fmt.Sprintf("Your password reset code is %s. It expires in %d minutes.", code, minutes)
	html := fmt.Sprintf("<p>Hello %s,</p><p>Your password reset code is:</p><h2>%s</h2><p>This code expires in %d minutes. If you didn't request this, ignore this email.</p>",
		user.Name, code, minutes)
	s.mailer.Send(user.Name, email, subject, text, html)
	return nil
}

// VerifyCodeAndResetPassword consumes a reset code and sets a new password.
func (s *authService) VerifyCodeAndResetPassword(ctx context.Context, email, code, newPassword string) error {
	if email == "" || code == "" || newPassword == "" {
		return errors.ErrValidation
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	if user.EmailVerificationCode == nil || user.EmailVerificationExpiry == nil {
		return errors.ErrInvalidOTP
	}
	if *user.EmailVerificationCode != code {
		return errors.ErrInvalidOTP
	}
	if time.Now().After(*user.EmailVerificationExpiry) {
		return errors.ErrOTPExpired
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashed)
	user.EmailVerificationCode = nil
	user.EmailVerificationExpiry = nil
	user.TempPassword = false
	return s.userRepo.Update(ctx, user)
}

// SendNGOVerificationCode starts NGO self-registration: a placeholder
// account is created and a 6-digit code mailed to the address.
func (s *authService) SendNGOVerificationCode(ctx context.Context, name, email string) error {
	if name == "" || email == "" {
		return errors.ErrValidation
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check email: %w", err)
	}
	if err == nil && existing.EmailVerified {
		return errors.ErrEmailExists
	}

	code := auth.GenerateOTP()
	expiry := time.Now().Add(ngoVerificationExpiry)

	if existing != nil {
		// re-request before verification: refresh the code
		existing.Name = name
		existing.EmailVerificationCode = &code
		existing.EmailVerificationExpiry = &expiry
		if err := s.userRepo.Update(ctx, existing); err != nil {
			return fmt.Errorf("refresh ngo verification: %w", err)
		}
	} else {
		ngo := &model.User{
			Name:                    name,
			Email:                   &email,
			Role:                    model.RoleNGO,
			PasswordHash:            "PENDING",
			TempPassword:            true,
			EmailVerified:           false,
			EmailVerificationCode:   &code,
			EmailVerificationExpiry: &expiry,
		}
		if err := s.userRepo.Create(ctx, ngo); err != nil {
			return fmt.Errorf("create pending ngo: %w", err)
		}
	}

	subject := "NGO verification code"
	text := fmt.Sprintf("Your NGO verification code is %s. It expires in 10 minutes.", code)
	s.mailer.Send(name, email, subject, text, "")
	return nil
}

// VerifyNGOCodeAndRegister completes NGO registration: the code is
// consumed, the real password set and the account marked verified.
func (s *authService) VerifyNGOCodeAndRegister(ctx context.Context, email, code, password string) (*model.User, error) {
	if email == "" || code == "" || password == "" {
		return nil, errors.ErrValidation
	}

	ngo, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find ngo: %w", err)
	}
	if ngo.EmailVerificationCode == nil || ngo.EmailVerificationExpiry == nil {
		return nil, errors.ErrInvalidOTP
	}
	if time.Now().After(*ngo.EmailVerificationExpiry) {
		return nil, errors.ErrOTPExpired
	}
	if *ngo.EmailVerificationCode != code {
		return nil, errors.ErrInvalidOTP
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	ngo.PasswordHash = string(hashed)
	ngo.EmailVerificationCode = nil
	ngo.EmailVerificationExpiry = nil
	ngo.EmailVerified = true
	ngo.TempPassword = false
	if err := s.userRepo.Update(ctx, ngo); err != nil {
		return nil, fmt.Errorf("update ngo: %w", err)
	}
	return ngo, nil
}

// GetMe returns the authenticated user's own record.
func (s *authService) GetMe(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
