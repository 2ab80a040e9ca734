package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Hegpro/Samrt-hostel-management/internal/service"
)

// AdminHandler handles destructive administrative endpoints.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ResetRequest carries the confirmation phrase for the academic year reset.
type ResetRequest struct {
	Confirm string `json:"confirm" validate:"required"`
}

// ResetAcademicYear godoc
// @Summary Wipe students, parents, complaints, surplus and notices (chief warden only)
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ResetRequest true "Confirmation phrase"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/reset [post]
func (h *AdminHandler) ResetAcademicYear(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req ResetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.adminService.ResetAcademicYear(c.Request().Context(), claims.UserID, req.Confirm); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{
		Message: "academic year reset successful, students, parents, complaints, surplus and notices cleared",
	})
}
