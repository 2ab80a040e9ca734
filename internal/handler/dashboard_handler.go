package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Hegpro/Samrt-hostel-management/internal/service"
)

// DashboardHandler serves the per-role dashboard endpoints.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Student godoc
// @Summary Student dashboard
// @Tags dashboards
// @Security BearerAuth
// @Produce json
// @Success 200 {object} service.StudentDashboard
// @Router /dashboards/student [get]
func (h *DashboardHandler) Student(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	dash, err := h.dashboardService.StudentDashboard(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dash)
}

// Parent godoc
// @Summary Parent dashboard resolved through the linked student
// @Tags dashboards
// @Security BearerAuth
// @Produce json
// @Success 200 {object} service.StudentDashboard
// @Router /dashboards/parent [get]
func (h *DashboardHandler) Parent(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	dash, err := h.dashboardService.ParentDashboard(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dash)
}

// Chief godoc
// @Summary Chief warden dashboard, cached snapshot
// @Tags dashboards
// @Security BearerAuth
// @Produce json
// @Success 200 {object} service.ChiefDashboard
// @Router /dashboards/chief [get]
func (h *DashboardHandler) Chief(c echo.Context) error {
	dash, err := h.dashboardService.ChiefDashboard(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dash)
}

// Warden godoc
// @Summary Warden dashboard for their own hostel
// @Tags dashboards
// @Security BearerAuth
// @Produce json
// @Success 200 {object} service.WardenDashboard
// @Router /dashboards/warden [get]
func (h *DashboardHandler) Warden(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	dash, err := h.dashboardService.WardenDashboard(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dash)
}

// Staff godoc
// @Summary Staff dashboard for the caller's trade
// @Tags dashboards
// @Security BearerAuth
// @Produce json
// @Success 200 {object} service.StaffDashboard
// @Router /dashboards/staff [get]
func (h *DashboardHandler) Staff(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	dash, err := h.dashboardService.StaffDashboard(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dash)
}

// MessManager godoc
// @Summary Mess manager dashboard
// @Tags dashboards
// @Security BearerAuth
// @Produce json
// @Success 200 {object} service.MessManagerDashboard
// @Router /dashboards/mess-manager [get]
func (h *DashboardHandler) MessManager(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	dash, err := h.dashboardService.MessManagerDashboard(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dash)
}

// NGO godoc
// @Summary NGO dashboard
// @Tags dashboards
// @Security BearerAuth
// @Produce json
// @Success 200 {object} service.NGODashboard
// @Router /dashboards/ngo [get]
func (h *DashboardHandler) NGO(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	dash, err := h.dashboardService.NGODashboard(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dash)
}
