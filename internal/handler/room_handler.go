package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Hegpro/Samrt-hostel-management/internal/model"
	"github.com/Hegpro/Samrt-hostel-management/internal/service"
)

// RoomHandler handles room allocation endpoints.
type RoomHandler struct {
	roomService service.RoomService
}

// NewRoomHandler creates a new room handler.
func NewRoomHandler(roomService service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// CreateRoomRequest creates a room within a hostel.
type CreateRoomRequest struct {
	HostelID   string `json:"hostel_id" validate:"required,uuid"`
	Floor      int    `json:"floor" validate:"min=0"`
	RoomNumber string `json:"room_number" validate:"required"`
	RoomType   string `json:"room_type" validate:"required"`
	Capacity   int    `json:"capacity" validate:"required,min=1"`
}

// AssignStudentRequest puts a student into a room.
type AssignStudentRequest struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
}

// RelocateRequest moves all occupants between rooms.
type RelocateRequest struct {
	OldRoomID string `json:"old_room_id" validate:"required,uuid"`
	NewRoomID string `json:"new_room_id" validate:"required,uuid"`
}

// UpdateRoomStatusRequest overrides a room's status.
type UpdateRoomStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CreateRoom godoc
// @Summary Create a room
// @Tags rooms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateRoomRequest true "Room data"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} errors.ErrorResponse
// @Router /rooms [post]
func (h *RoomHandler) CreateRoom(c echo.Context) error {
	var req CreateRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	hostelID, err := uuid.Parse(req.HostelID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid hostel id")
	}

	room, err := h.roomService.CreateRoom(c.Request().Context(), hostelID, req.Floor, req.RoomNumber, model.RoomType(req.RoomType), req.Capacity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "room created",
		"room":    room,
	})
}

// GetRoom godoc
// @Summary Get a room with its occupants
// @Tags rooms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /rooms/{id} [get]
func (h *RoomHandler) GetRoom(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid room id")
	}
	room, err := h.roomService.GetRoom(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"room": room})
}

// ListByHostel godoc
// @Summary List the rooms of a hostel
// @Tags rooms
// @Security BearerAuth
// @Produce json
// @Param hostelId path string true "Hostel ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /hostels/{hostelId}/rooms [get]
func (h *RoomHandler) ListByHostel(c echo.Context) error {
	hostelID, err := uuid.Parse(c.Param("hostelId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid hostel id")
	}
	hostel, rooms, err := h.roomService.ListByHostel(c.Request().Context(), hostelID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"hostel": hostel,
		"rooms":  rooms,
	})
}

// AssignStudent godoc
// @Summary Assign a student to a room
// @Tags rooms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body AssignStudentRequest true "Student reference"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /rooms/{id}/students [post]
func (h *RoomHandler) AssignStudent(c echo.Context) error {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid room id")
	}

	var req AssignStudentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid student id")
	}

	room, err := h.roomService.AssignStudent(c.Request().Context(), roomID, studentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "student assigned",
		"room":    room,
	})
}

// RemoveStudent godoc
// @Summary Remove a student from a room
// @Tags rooms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Room ID"
// @Param studentId path string true "Student ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /rooms/{id}/students/{studentId} [delete]
func (h *RoomHandler) RemoveStudent(c echo.Context) error {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid room id")
	}
	studentID, err := uuid.Parse(c.Param("studentId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid student id")
	}

	room, err := h.roomService.RemoveStudent(c.Request().Context(), roomID, studentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "student removed",
		"room":    room,
	})
}

// Relocate godoc
// @Summary Relocate all occupants of one room into another
// @Tags rooms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body RelocateRequest true "Old and new room"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /rooms/relocate [post]
func (h *RoomHandler) Relocate(c echo.Context) error {
	var req RelocateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	oldRoomID, err := uuid.Parse(req.OldRoomID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid old room id")
	}
	newRoomID, err := uuid.Parse(req.NewRoomID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid new room id")
	}

	result, err := h.roomService.Relocate(c.Request().Context(), oldRoomID, newRoomID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "relocation complete",
		"relocation": result,
	})
}

// UpdateStatus godoc
// @Summary Override a room's status
// @Tags rooms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body UpdateRoomStatusRequest true "New status"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /rooms/{id}/status [put]
func (h *RoomHandler) UpdateStatus(c echo.Context) error {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid room id")
	}

	var req UpdateRoomStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	room, err := h.roomService.UpdateStatus(c.Request().Context(), roomID, model.RoomStatus(req.Status))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "room status updated",
		"room":    room,
	})
}
