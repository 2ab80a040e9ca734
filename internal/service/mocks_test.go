package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Hegpro/Samrt-hostel-management/internal/model"
	"github.com/Hegpro/Samrt-hostel-management/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUSN(ctx context.Context, usn string) (*model.User, error) {
	args := m.Called(ctx, usn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindStudentByUSN(ctx context.Context, usn string) (*model.User, error) {
	args := m.Called(ctx, usn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindParentOfStudent(ctx context.Context, studentID uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) ListByRoleAndHostel(ctx context.Context, role model.Role, hostelID uuid.UUID) ([]model.User, error) {
	args := m.Called(ctx, role, hostelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) ListStudentsByRoom(ctx context.Context, roomID uuid.UUID) ([]model.User, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountByRoleAndHostel(ctx context.Context, role model.Role, hostelID uuid.UUID) (int64, error) {
	args := m.Called(ctx, role, hostelID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) DeleteByRoles(ctx context.Context, roles ...model.Role) error {
	callArgs := make([]interface{}, 0, len(roles)+1)
	callArgs = append(callArgs, ctx)
	for _, role := range roles {
		callArgs = append(callArgs, role)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}

func (m *MockUserRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.UserRepository) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx, m)
}

// MockRoomRepository is a mock implementation of RoomRepository.
type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, room *model.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) Save(ctx context.Context, room *model.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}

func (m *MockRoomRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}

func (m *MockRoomRepository) FindByHostelAndNumber(ctx context.Context, hostelID uuid.UUID, roomNumber string) (*model.Room, error) {
	args := m.Called(ctx, hostelID, roomNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}

func (m *MockRoomRepository) ListByHostel(ctx context.Context, hostelID uuid.UUID) ([]model.Room, error) {
	args := m.Called(ctx, hostelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Room), args.Error(1)
}

func (m *MockRoomRepository) ListByHostelWithOccupants(ctx context.Context, hostelID uuid.UUID) ([]model.Room, error) {
	args := m.Called(ctx, hostelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Room), args.Error(1)
}

func (m *MockRoomRepository) CountOccupants(ctx context.Context, roomID uuid.UUID) (int64, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRoomRepository) AssignOccupant(ctx context.Context, roomID, hostelID, studentID uuid.UUID) error {
	args := m.Called(ctx, roomID, hostelID, studentID)
	return args.Error(0)
}

func (m *MockRoomRepository) RemoveOccupant(ctx context.Context, roomID, studentID uuid.UUID) (bool, error) {
	args := m.Called(ctx, roomID, studentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoomRepository) MoveOccupants(ctx context.Context, oldRoomID, newRoomID, newHostelID uuid.UUID) (int64, error) {
	args := m.Called(ctx, oldRoomID, newRoomID, newHostelID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRoomRepository) UpdateStatus(ctx context.Context, roomID uuid.UUID, status model.RoomStatus) error {
	args := m.Called(ctx, roomID, status)
	return args.Error(0)
}

func (m *MockRoomRepository) ClearAllOccupancy(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRoomRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.RoomRepository) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx, m)
}

// MockHostelRepository is a mock implementation of HostelRepository.
type MockHostelRepository struct {
	mock.Mock
}

func (m *MockHostelRepository) Create(ctx context.Context, hostel *model.Hostel) error {
	args := m.Called(ctx, hostel)
	return args.Error(0)
}

func (m *MockHostelRepository) Update(ctx context.Context, hostel *model.Hostel) error {
	args := m.Called(ctx, hostel)
	return args.Error(0)
}

func (m *MockHostelRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Hostel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hostel), args.Error(1)
}

func (m *MockHostelRepository) FindByNameOrCode(ctx context.Context, name, code string) (*model.Hostel, error) {
	args := m.Called(ctx, name, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hostel), args.Error(1)
}

func (m *MockHostelRepository) ListAll(ctx context.Context) ([]model.Hostel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Hostel), args.Error(1)
}

func (m *MockHostelRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockComplaintRepository is a mock implementation of ComplaintRepository.
type MockComplaintRepository struct {
	mock.Mock
}

func (m *MockComplaintRepository) Create(ctx context.Context, complaint *model.Complaint) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}

func (m *MockComplaintRepository) Update(ctx context.Context, complaint *model.Complaint) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}

func (m *MockComplaintRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockComplaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) ListOpenByCategoryAndHostel(ctx context.Context, category model.ComplaintCategory, hostelID uuid.UUID) ([]model.Complaint, error) {
	args := m.Called(ctx, category, hostelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) ListByStatusAndHostel(ctx context.Context, status model.ComplaintStatus, hostelID uuid.UUID) ([]model.Complaint, error) {
	args := m.Called(ctx, status, hostelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]model.Complaint, error) {
	args := m.Called(ctx, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) ListFiltered(ctx context.Context, filter repository.ComplaintFilter) ([]model.Complaint, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Complaint), args.Get(1).(int64), args.Error(2)
}

func (m *MockComplaintRepository) ListByCategory(ctx context.Context, category model.ComplaintCategory) ([]model.Complaint, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) ListRecent(ctx context.Context, hostelID *uuid.UUID, limit int) ([]model.Complaint, error) {
	args := m.Called(ctx, hostelID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) SummaryByStatus(ctx context.Context, hostelID *uuid.UUID, from, to *time.Time) (map[model.ComplaintStatus]int64, error) {
	args := m.Called(ctx, hostelID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.ComplaintStatus]int64), args.Error(1)
}

func (m *MockComplaintRepository) TrendByMonth(ctx context.Context, hostelID *uuid.UUID, since time.Time) ([]repository.MonthCount, error) {
	args := m.Called(ctx, hostelID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.MonthCount), args.Error(1)
}

func (m *MockComplaintRepository) CountByStatusAndHostel(ctx context.Context, status model.ComplaintStatus, hostelID uuid.UUID) (int64, error) {
	args := m.Called(ctx, status, hostelID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockComplaintRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockStudentComplaintRepository is a mock implementation of StudentComplaintRepository.
type MockStudentComplaintRepository struct {
	mock.Mock
}

func (m *MockStudentComplaintRepository) Create(ctx context.Context, complaint *model.StudentComplaint) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}

func (m *MockStudentComplaintRepository) Update(ctx context.Context, complaint *model.StudentComplaint) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}

func (m *MockStudentComplaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.StudentComplaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StudentComplaint), args.Error(1)
}

func (m *MockStudentComplaintRepository) ListByParent(ctx context.Context, parentID uuid.UUID) ([]model.StudentComplaint, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StudentComplaint), args.Error(1)
}

func (m *MockStudentComplaintRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockSurplusRepository is a mock implementation of SurplusRepository.
type MockSurplusRepository struct {
	mock.Mock
}

func (m *MockSurplusRepository) Create(ctx context.Context, surplus *model.SurplusFood) error {
	args := m.Called(ctx, surplus)
	return args.Error(0)
}

func (m *MockSurplusRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SurplusFood, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SurplusFood), args.Error(1)
}

func (m *MockSurplusRepository) ListAvailable(ctx context.Context) ([]model.SurplusFood, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SurplusFood), args.Error(1)
}

func (m *MockSurplusRepository) ListByPoster(ctx context.Context, posterID uuid.UUID) ([]model.SurplusFood, error) {
	args := m.Called(ctx, posterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SurplusFood), args.Error(1)
}

func (m *MockSurplusRepository) ListByClaimant(ctx context.Context, claimantID uuid.UUID) ([]model.SurplusFood, error) {
	args := m.Called(ctx, claimantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SurplusFood), args.Error(1)
}

func (m *MockSurplusRepository) ListRecent(ctx context.Context, limit int) ([]model.SurplusFood, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SurplusFood), args.Error(1)
}

func (m *MockSurplusRepository) Claim(ctx context.Context, id, ngoID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, ngoID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSurplusRepository) MarkExpired(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockSurplusRepository) SweepExpired(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockSurplusRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.SurplusStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockSurplusRepository) CountByStatus(ctx context.Context) (map[model.SurplusStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.SurplusStatus]int64), args.Error(1)
}

func (m *MockSurplusRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockNoticeRepository is a mock implementation of NoticeRepository.
type MockNoticeRepository struct {
	mock.Mock
}

func (m *MockNoticeRepository) Create(ctx context.Context, notice *model.Notice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}

func (m *MockNoticeRepository) ListAll(ctx context.Context) ([]model.Notice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notice), args.Error(1)
}

func (m *MockNoticeRepository) ListRecent(ctx context.Context, limit int) ([]model.Notice, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notice), args.Error(1)
}

func (m *MockNoticeRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uuid.UUID, role model.Role, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, role, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uuid.UUID, model.Role, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uuid.UUID), args.Get(1).(model.Role), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// MockBlobStore is a mock implementation of blob.Store.
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Upload(ctx context.Context, data []byte, folder string) (string, error) {
	args := m.Called(ctx, data, folder)
	return args.String(0), args.Error(1)
}

// MockMailer records sent mail without delivering anything.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(toName, toAddress, subject, text, html string) {
	m.Called(toName, toAddress, subject, text, html)
}

// MockDashboardService is a mock implementation of DashboardService.
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) StudentDashboard(ctx context.Context, studentID uuid.UUID) (*StudentDashboard, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StudentDashboard), args.Error(1)
}

func (m *MockDashboardService) ParentDashboard(ctx context.Context, parentID uuid.UUID) (*StudentDashboard, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StudentDashboard), args.Error(1)
}

func (m *MockDashboardService) ChiefDashboard(ctx context.Context) (*ChiefDashboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ChiefDashboard), args.Error(1)
}

func (m *MockDashboardService) WardenDashboard(ctx context.Context, wardenID uuid.UUID) (*WardenDashboard, error) {
	args := m.Called(ctx, wardenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*WardenDashboard), args.Error(1)
}

func (m *MockDashboardService) StaffDashboard(ctx context.Context, staffID uuid.UUID) (*StaffDashboard, error) {
	args := m.Called(ctx, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StaffDashboard), args.Error(1)
}

func (m *MockDashboardService) MessManagerDashboard(ctx context.Context, managerID uuid.UUID) (*MessManagerDashboard, error) {
	args := m.Called(ctx, managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MessManagerDashboard), args.Error(1)
}

func (m *MockDashboardService) NGODashboard(ctx context.Context, ngoID uuid.UUID) (*NGODashboard, error) {
	args := m.Called(ctx, ngoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*NGODashboard), args.Error(1)
}

func (m *MockDashboardService) InvalidateChiefDashboard(ctx context.Context) {
	m.Called(ctx)
}
