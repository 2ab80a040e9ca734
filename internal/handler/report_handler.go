package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Hegpro/Samrt-hostel-management/internal/service"
)

// ReportHandler handles occupancy report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func hostelQuery(c echo.Context) (*uuid.UUID, error) {
	raw := c.QueryParam("hostelId")
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid hostel id")
	}
	return &id, nil
}

// RoomOccupancy godoc
// @Summary Room occupancy report (warden sees own hostel, chief any)
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Param hostelId query string false "Hostel ID"
// @Success 200 {object} map[string]interface{}
// @Router /reports/occupancy [get]
func (h *ReportHandler) RoomOccupancy(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	hostelID, err := hostelQuery(c)
	if err != nil {
		return err
	}

	occupancy, err := h.reportService.RoomOccupancy(c.Request().Context(), claims.UserID, hostelID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "room occupancy report generated",
		"report":  occupancy,
	})
}

// RoomOccupancyExcel godoc
// @Summary Download the occupancy report as xlsx
// @Tags reports
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param hostelId query string false "Hostel ID"
// @Success 200 {file} binary
// @Router /reports/occupancy/excel [get]
func (h *ReportHandler) RoomOccupancyExcel(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	hostelID, err := hostelQuery(c)
	if err != nil {
		return err
	}

	data, err := h.reportService.RoomOccupancyExcel(c.Request().Context(), claims.UserID, hostelID)
	if err != nil {
		return respondError(c, err)
	}

	filename := fmt.Sprintf("room_occupancy_%d.xlsx", time.Now().Unix())
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// RoomOccupancyPDF godoc
// @Summary Download the occupancy report as PDF
// @Tags reports
// @Security BearerAuth
// @Produce application/pdf
// @Param hostelId query string false "Hostel ID"
// @Success 200 {file} binary
// @Router /reports/occupancy/pdf [get]
func (h *ReportHandler) RoomOccupancyPDF(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	hostelID, err := hostelQuery(c)
	if err != nil {
		return err
	}

	data, err := h.reportService.RoomOccupancyPDF(c.Request().Context(), claims.UserID, hostelID)
	if err != nil {
		return respondError(c, err)
	}

	filename := fmt.Sprintf("room_occupancy_%d.pdf", time.Now().Unix())
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "application/pdf", data)
}
