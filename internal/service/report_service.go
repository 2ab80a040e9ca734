package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Hegpro/Samrt-hostel-management/internal/errors"
	"github.com/Hegpro/Samrt-hostel-management/internal/model"
	"github.com/Hegpro/Samrt-hostel-management/internal/report"
	"github.com/Hegpro/Samrt-hostel-management/internal/repository"
)

// HostelOccupancy groups the occupancy report per hostel.
type HostelOccupancy struct {
	HostelID   uuid.UUID    `json:"hostel_id"`
	HostelName string       `json:"hostel_name"`
	Rooms      []model.Room `json:"rooms"`
}

// ReportService builds the room occupancy report and its exports. Wardens
// are always scoped to their own hostel; the chief can pick any or all.
type ReportService interface {
	RoomOccupancy(ctx context.Context, actorID uuid.UUID, hostelID *uuid.UUID) ([]HostelOccupancy, error)
	RoomOccupancyExcel(ctx context.Context, actorID uuid.UUID, hostelID *uuid.UUID) ([]byte, error)
	RoomOccupancyPDF(ctx context.Context, actorID uuid.UUID, hostelID *uuid.UUID) ([]byte, error)
}

type reportService struct {
	hostelRepo repository.HostelRepository
	roomRepo   repository.RoomRepository
	userRepo   repository.UserRepository
}

// NewReportService creates a new report service.
func NewReportService(hostelRepo repository.HostelRepository, roomRepo repository.RoomRepository, userRepo repository.UserRepository) ReportService {
	return &reportService{
		hostelRepo: hostelRepo,
		roomRepo:   roomRepo,
		userRepo:   userRepo,
	}
}

// RoomOccupancy returns the occupancy report grouped per hostel, each room
// carrying its occupants.
func (s *reportService) RoomOccupancy(ctx context.Context, actorID uuid.UUID, hostelID *uuid.UUID) ([]HostelOccupancy, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find actor: %w", err)
	}
	if actor.Role == model.RoleWarden {
		hostelID = actor.HostelID
	}

	var hostels []model.Hostel
	if hostelID != nil {
		hostel, err := s.hostelRepo.FindByID(ctx, *hostelID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.ErrHostelNotFound
			}
			return nil, fmt.Errorf("find hostel: %w", err)
		}
		hostels = []model.Hostel{*hostel}
	} else {
		hostels, err = s.hostelRepo.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("list hostels: %w", err)
		}
	}

	out := make([]HostelOccupancy, 0, len(hostels))
	for _, hostel := range hostels {
		rooms, err := s.roomRepo.ListByHostelWithOccupants(ctx, hostel.ID)
		if err != nil {
			return nil, fmt.Errorf("list rooms of %s: %w", hostel.Name, err)
		}
		out = append(out, HostelOccupancy{
			HostelID:   hostel.ID,
			HostelName: hostel.Name,
			Rooms:      rooms,
		})
	}
	return out, nil
}

func occupancyRows(occupancy []HostelOccupancy) []report.OccupancyRow {
	var rows []report.OccupancyRow
	for _, h := range occupancy {
		for _, room := range h.Rooms {
			names := make([]string, 0, len(room.Occupants))
			for _, occupant := range room.Occupants {
				usn := ""
				if occupant.USN != nil {
					usn = *occupant.USN
				}
				names = append(names, fmt.Sprintf("%s (%s)", occupant.Name, usn))
			}
			rows = append(rows, report.OccupancyRow{
				Hostel:     h.HostelName,
				RoomNumber: room.RoomNumber,
				RoomType:   string(room.RoomType),
				Floor:      room.Floor,
				Status:     string(room.Status),
				Occupants:  strings.Join(names, ", "),
				Count:      len(room.Occupants),
				Capacity:   room.Capacity,
			})
		}
	}
	return rows
}

// RoomOccupancyExcel renders the occupancy report as an xlsx workbook.
func (s *reportService) RoomOccupancyExcel(ctx context.Context, actorID uuid.UUID, hostelID *uuid.UUID) ([]byte, error) {
	occupancy, err := s.RoomOccupancy(ctx, actorID, hostelID)
	if err != nil {
		return nil, err
	}
	return report.RenderOccupancyExcel(occupancyRows(occupancy))
}

// RoomOccupancyPDF renders the occupancy report as a PDF document.
func (s *reportService) RoomOccupancyPDF(ctx context.Context, actorID uuid.UUID, hostelID *uuid.UUID) ([]byte, error) {
	occupancy, err := s.RoomOccupancy(ctx, actorID, hostelID)
	if err != nil {
		return nil, err
	}
	return report.RenderOccupancyPDF(occupancyRows(occupancy))
}
