package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Hegpro/Samrt-hostel-management/internal/cache"
	"github.com/Hegpro/Samrt-hostel-management/internal/errors"
	"github.com/Hegpro/Samrt-hostel-management/internal/model"
	"github.com/Hegpro/Samrt-hostel-management/internal/repository"
)

const (
	chiefDashboardKey = "dashboard:chief"
	chiefDashboardTTL = 60 * time.Second
	recentLimit       = 5
)

// StudentDashboard is the student home screen payload. The parent
// dashboard reuses it, resolved through the linked student.
type StudentDashboard struct {
	Student    *model.User       `json:"student"`
	Hostel     *model.Hostel     `json:"hostel,omitempty"`
	Room       *model.Room       `json:"room,omitempty"`
	Roommates  []model.User      `json:"roommates"`
	Complaints []model.Complaint `json:"complaints"`
	Notices    []model.Notice    `json:"notices"`
}

// ChiefDashboard is the chief warden overview across all hostels.
type ChiefDashboard struct {
	TotalHostels     int64                           `json:"total_hostels"`
	TotalStudents    int64                           `json:"total_students"`
	TotalWardens     int64                           `json:"total_wardens"`
	TotalStaff       int64                           `json:"total_staff"`
	ComplaintSummary map[model.ComplaintStatus]int64 `json:"complaint_summary"`
	SurplusSummary   map[model.SurplusStatus]int64   `json:"surplus_summary"`
	RecentComplaints []model.Complaint               `json:"recent_complaints"`
	RecentNotices    []model.Notice                  `json:"recent_notices"`
	GeneratedAt      time.Time                       `json:"generated_at"`
}

// RoomStats splits a hostel's rooms into occupied and empty.
type RoomStats struct {
	Filled int `json:"filled"`
	Empty  int `json:"empty"`
}

// WardenDashboard is the warden overview of their own hostel.
type WardenDashboard struct {
	StudentCount     int64                           `json:"student_count"`
	StaffCount       int64                           `json:"staff_count"`
	ComplaintSummary map[model.ComplaintStatus]int64 `json:"complaint_summary"`
	EscalatedCount   int64                           `json:"escalated_count"`
	RoomStats        RoomStats                       `json:"room_stats"`
	RecentComplaints []model.Complaint               `json:"recent_complaints"`
	Notices          []model.Notice                  `json:"notices"`
}

// StaffDashboard summarizes the complaints of the staff member's trade.
type StaffDashboard struct {
	Total         int               `json:"total"`
	Pending       int               `json:"pending"`
	InProgress    int               `json:"in_progress"`
	Closed        int               `json:"closed"`
	NotResolvable int               `json:"not_resolvable"`
	Latest        []model.Complaint `json:"latest"`
}

// MessManagerDashboard summarizes surplus postings.
type MessManagerDashboard struct {
	Posted     int64                         `json:"posted"`
	ByStatus   map[model.SurplusStatus]int64 `json:"by_status"`
	Latest     []model.SurplusFood           `json:"latest"`
	MyPostings []model.SurplusFood           `json:"my_postings"`
}

// NGODashboard shows what an NGO can claim and has claimed.
type NGODashboard struct {
	Available []model.SurplusFood `json:"available"`
	Claimed   []model.SurplusFood `json:"claimed"`
	Latest    []model.SurplusFood `json:"latest"`
}

// DashboardService aggregates per-role home screen payloads.
type DashboardService interface {
	StudentDashboard(ctx context.Context, studentID uuid.UUID) (*StudentDashboard, error)
	ParentDashboard(ctx context.Context, parentID uuid.UUID) (*StudentDashboard, error)
	ChiefDashboard(ctx context.Context) (*ChiefDashboard, error)
	WardenDashboard(ctx context.Context, wardenID uuid.UUID) (*WardenDashboard, error)
	StaffDashboard(ctx context.Context, staffID uuid.UUID) (*StaffDashboard, error)
	MessManagerDashboard(ctx context.Context, managerID uuid.UUID) (*MessManagerDashboard, error)
	NGODashboard(ctx context.Context, ngoID uuid.UUID) (*NGODashboard, error)
	InvalidateChiefDashboard(ctx context.Context)
}

type dashboardService struct {
	userRepo      repository.UserRepository
	hostelRepo    repository.HostelRepository
	roomRepo      repository.RoomRepository
	complaintRepo repository.ComplaintRepository
	surplusRepo   repository.SurplusRepository
	noticeRepo    repository.NoticeRepository
	cache         *cache.Client
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(
	userRepo repository.UserRepository,
	hostelRepo repository.HostelRepository,
	roomRepo repository.RoomRepository,
	complaintRepo repository.ComplaintRepository,
	surplusRepo repository.SurplusRepository,
	noticeRepo repository.NoticeRepository,
	cacheClient *cache.Client,
) DashboardService {
	return &dashboardService{
		userRepo:      userRepo,
		hostelRepo:    hostelRepo,
		roomRepo:      roomRepo,
		complaintRepo: complaintRepo,
		surplusRepo:   surplusRepo,
		noticeRepo:    noticeRepo,
		cache:         cacheClient,
	}
}

func (s *dashboardService) studentView(ctx context.Context, student *model.User) (*StudentDashboard, error) {
	dash := &StudentDashboard{Student: student, Roommates: []model.User{}}

	if student.HostelID != nil {
		hostel, err := s.hostelRepo.FindByID(ctx, *student.HostelID)
		if err == nil {
			dash.Hostel = hostel
		} else if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("find hostel: %w", err)
		}
	}
	if student.RoomID != nil {
		room, err := s.roomRepo.FindByID(ctx, *student.RoomID)
		if err == nil {
			dash.Room = room
			for _, occupant := range room.Occupants {
				if occupant.ID != student.ID {
					dash.Roommates = append(dash.Roommates, occupant)
				}
			}
		} else if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("find room: %w", err)
		}
	}

	complaints, err := s.complaintRepo.ListByCreator(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	dash.Complaints = complaints

	notices, err := s.noticeRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	dash.Notices = notices
	return dash, nil
}

// StudentDashboard returns the student's room, roommates, complaints and
// the notice board.
func (s *dashboardService) StudentDashboard(ctx context.Context, studentID uuid.UUID) (*StudentDashboard, error) {
	student, err := s.userRepo.FindByID(ctx, studentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return s.studentView(ctx, student)
}

// ParentDashboard resolves the parent's linked student and returns that
// student's view.
func (s *dashboardService) ParentDashboard(ctx context.Context, parentID uuid.UUID) (*StudentDashboard, error) {
	parent, err := s.userRepo.FindByID(ctx, parentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find parent: %w", err)
	}
	if parent.LinkedStudentID == nil {
		return nil, errors.ErrUserNotFound
	}
	student, err := s.userRepo.FindByID(ctx, *parent.LinkedStudentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find linked student: %w", err)
	}
	return s.studentView(ctx, student)
}

// ChiefDashboard aggregates counts over the whole system. The snapshot is
// cached in redis with a short TTL since every widget on the chief's home
// screen polls it.
func (s *dashboardService) ChiefDashboard(ctx context.Context) (*ChiefDashboard, error) {
	if data, _ := s.cache.Get(ctx, chiefDashboardKey); data != nil {
		var cached ChiefDashboard
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	dash := &ChiefDashboard{GeneratedAt: time.Now()}
	var err error

	if dash.TotalHostels, err = s.hostelRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count hostels: %w", err)
	}
	if dash.TotalStudents, err = s.userRepo.CountByRole(ctx, model.RoleStudent); err != nil {
		return nil, fmt.Errorf("count students: %w", err)
	}
	if dash.TotalWardens, err = s.userRepo.CountByRole(ctx, model.RoleWarden); err != nil {
		return nil, fmt.Errorf("count wardens: %w", err)
	}
	if dash.TotalStaff, err = s.userRepo.CountByRole(ctx, model.RoleStaff); err != nil {
		return nil, fmt.Errorf("count staff: %w", err)
	}
	if dash.ComplaintSummary, err = s.complaintRepo.SummaryByStatus(ctx, nil, nil, nil); err != nil {
		return nil, fmt.Errorf("complaint summary: %w", err)
	}
	if dash.SurplusSummary, err = s.surplusRepo.CountByStatus(ctx); err != nil {
		return nil, fmt.Errorf("surplus summary: %w", err)
	}
	if dash.RecentComplaints, err = s.complaintRepo.ListRecent(ctx, nil, recentLimit); err != nil {
		return nil, fmt.Errorf("recent complaints: %w", err)
	}
	if dash.RecentNotices, err = s.noticeRepo.ListRecent(ctx, recentLimit); err != nil {
		return nil, fmt.Errorf("recent notices: %w", err)
	}

	if payload, err := json.Marshal(dash); err == nil {
		_ = s.cache.Set(ctx, chiefDashboardKey, payload, chiefDashboardTTL)
	}
	return dash, nil
}

// InvalidateChiefDashboard drops the cached chief snapshot, used after the
// academic year reset.
func (s *dashboardService) InvalidateChiefDashboard(ctx context.Context) {
	_ = s.cache.Delete(ctx, chiefDashboardKey)
}

// WardenDashboard aggregates the warden's hostel: headcounts, complaint
// summary, escalations and room fill.
func (s *dashboardService) WardenDashboard(ctx context.Context, wardenID uuid.UUID) (*WardenDashboard, error) {
	warden, err := s.userRepo.FindByID(ctx, wardenID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find warden: %w", err)
	}
	if warden.HostelID == nil {
		return nil, errors.ErrForbidden
	}
	hostelID := *warden.HostelID

	dash := &WardenDashboard{}
	if dash.StudentCount, err = s.userRepo.CountByRoleAndHostel(ctx, model.RoleStudent, hostelID); err != nil {
		return nil, fmt.Errorf("count students: %w", err)
	}
	if dash.StaffCount, err = s.userRepo.CountByRoleAndHostel(ctx, model.RoleStaff, hostelID); err != nil {
		return nil, fmt.Errorf("count staff: %w", err)
	}
	if dash.ComplaintSummary, err = s.complaintRepo.SummaryByStatus(ctx, &hostelID, nil, nil); err != nil {
		return nil, fmt.Errorf("complaint summary: %w", err)
	}
	if dash.EscalatedCount, err = s.complaintRepo.CountByStatusAndHostel(ctx, model.ComplaintStatusNotResolvable, hostelID); err != nil {
		return nil, fmt.Errorf("count escalated: %w", err)
	}

	rooms, err := s.roomRepo.ListByHostelWithOccupants(ctx, hostelID)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	for _, room := range rooms {
		if len(room.Occupants) > 0 {
			dash.RoomStats.Filled++
		} else {
			dash.RoomStats.Empty++
		}
	}

	if dash.RecentComplaints, err = s.complaintRepo.ListRecent(ctx, &hostelID, recentLimit); err != nil {
		return nil, fmt.Errorf("recent complaints: %w", err)
	}
	if dash.Notices, err = s.noticeRepo.ListRecent(ctx, recentLimit); err != nil {
		return nil, fmt.Errorf("recent notices: %w", err)
	}
	return dash, nil
}

// StaffDashboard summarizes complaints of the staff member's trade across
// hostels, oldest open first in the latest list.
func (s *dashboardService) StaffDashboard(ctx context.Context, staffID uuid.UUID) (*StaffDashboard, error) {
	staff, err := s.userRepo.FindByID(ctx, staffID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find staff: %w", err)
	}
	if staff.StaffType == "" {
		return nil, errors.ErrForbidden
	}

	complaints, err := s.complaintRepo.ListByCategory(ctx, model.ComplaintCategory(staff.StaffType))
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}

	dash := &StaffDashboard{Total: len(complaints)}
	for _, complaint := range complaints {
		switch complaint.Status {
		case model.ComplaintStatusPending:
			dash.Pending++
		case model.ComplaintStatusInProgress:
			dash.InProgress++
		case model.ComplaintStatusClosed:
			dash.Closed++
		case model.ComplaintStatusNotResolvable:
			dash.NotResolvable++
		}
	}
	if len(complaints) > recentLimit {
		complaints = complaints[:recentLimit]
	}
	dash.Latest = complaints
	return dash, nil
}

// MessManagerDashboard summarizes surplus postings system-wide plus the
// manager's own.
func (s *dashboardService) MessManagerDashboard(ctx context.Context, managerID uuid.UUID) (*MessManagerDashboard, error) {
	byStatus, err := s.surplusRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("surplus summary: %w", err)
	}
	var posted int64
	for _, count := range byStatus {
		posted += count
	}

	latest, err := s.surplusRepo.ListRecent(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("recent surplus: %w", err)
	}
	mine, err := s.surplusRepo.ListByPoster(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("own surplus: %w", err)
	}

	return &MessManagerDashboard{
		Posted:     posted,
		ByStatus:   byStatus,
		Latest:     latest,
		MyPostings: mine,
	}, nil
}

// NGODashboard shows claimable and claimed postings for an NGO.
func (s *dashboardService) NGODashboard(ctx context.Context, ngoID uuid.UUID) (*NGODashboard, error) {
	available, err := s.surplusRepo.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("available surplus: %w", err)
	}
	claimed, err := s.surplusRepo.ListByClaimant(ctx, ngoID)
	if err != nil {
		return nil, fmt.Errorf("claimed surplus: %w", err)
	}
	latest, err := s.surplusRepo.ListRecent(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("recent surplus: %w", err)
	}
	return &NGODashboard{Available: available, Claimed: claimed, Latest: latest}, nil
}
