package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Hegpro/Samrt-hostel-management/internal/service"
)

// HostelHandler handles hostel endpoints.
type HostelHandler struct {
	hostelService service.HostelService
}

// NewHostelHandler creates a new hostel handler.
func NewHostelHandler(hostelService service.HostelService) *HostelHandler {
	return &HostelHandler{hostelService: hostelService}
}

// CreateHostelRequest creates a hostel building.
type CreateHostelRequest struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required"`
	TotalFloors int    `json:"total_floors"`
}

// AssignWardenRequest ties a warden to a hostel.
type AssignWardenRequest struct {
	WardenID string `json:"warden_id" validate:"required,uuid"`
}

// CreateHostel godoc
// @Summary Create a hostel (chief warden only)
// @Tags hostels
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateHostelRequest true "Hostel data"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} errors.ErrorResponse
// @Router /hostels [post]
func (h *HostelHandler) CreateHostel(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req CreateHostelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	hostel, err := h.hostelService.CreateHostel(c.Request().Context(), claims.UserID, req.Name, req.Code, req.TotalFloors)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "hostel created",
		"hostel":  hostel,
	})
}

// ListHostels godoc
// @Summary List all hostels
// @Tags hostels
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /hostels [get]
func (h *HostelHandler) ListHostels(c echo.Context) error {
	hostels, err := h.hostelService.ListHostels(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"hostels": hostels})
}

// AssignWarden godoc
// @Summary Assign a warden to a hostel
// @Tags hostels
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Hostel ID"
// @Param request body AssignWardenRequest true "Warden reference"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /hostels/{id}/warden [put]
func (h *HostelHandler) AssignWarden(c echo.Context) error {
	hostelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid hostel id")
	}

	var req AssignWardenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	wardenID, err := uuid.Parse(req.WardenID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid warden id")
	}

	hostel, err := h.hostelService.AssignWarden(c.Request().Context(), hostelID, wardenID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "warden assigned",
		"hostel":  hostel,
	})
}
