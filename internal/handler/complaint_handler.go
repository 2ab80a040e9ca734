package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Hegpro/Samrt-hostel-management/internal/model"
	"github.com/Hegpro/Samrt-hostel-management/internal/repository"
	"github.com/Hegpro/Samrt-hostel-management/internal/service"
)

// ComplaintHandler handles maintenance complaint endpoints.
type ComplaintHandler struct {
	complaintService service.ComplaintService
}

// NewComplaintHandler creates a new complaint handler.
func NewComplaintHandler(complaintService service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService}
}

// CloseComplaintRequest carries the warden's closing note.
type CloseComplaintRequest struct {
	Note string `json:"note"`
}

// Create godoc
// @Summary Raise a complaint (student). Multipart with optional image.
// @Tags complaints
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Param title formData string false "Title"
// @Param description formData string true "Description"
// @Param category formData string true "Category"
// @Param image formData file false "Photo of the issue"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /complaints [post]
func (h *ComplaintHandler) Create(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	title := c.FormValue("title")
	description := c.FormValue("description")
	category := model.ComplaintCategory(c.FormValue("category"))
	image, err := readFormImage(c, "image")
	if err != nil {
		return err
	}

	complaint, err := h.complaintService.Create(c.Request().Context(), claims.UserID, title, description, category, image)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":   "complaint created",
		"complaint": complaint,
	})
}

// Transition godoc
// @Summary Move a complaint through the workflow (staff). Multipart with optional resolution image.
// @Tags complaints
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Param id path string true "Complaint ID"
// @Param status formData string true "in-progress, resolved or not-resolvable"
// @Param image formData file false "Resolution evidence"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /complaints/{id}/status [put]
func (h *ComplaintHandler) Transition(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	complaintID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid complaint id")
	}

	signal := service.TransitionSignal(c.FormValue("status"))
	image, err := readFormImage(c, "image")
	if err != nil {
		return err
	}

	complaint, err := h.complaintService.Transition(c.Request().Context(), complaintID, claims.UserID, signal, image)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "complaint updated",
		"complaint": complaint,
	})
}

// WardenClose godoc
// @Summary Close an escalated complaint (warden)
// @Tags complaints
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Param request body CloseComplaintRequest true "Closing note"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /complaints/{id}/close [put]
func (h *ComplaintHandler) WardenClose(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	complaintID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid complaint id")
	}

	var req CloseComplaintRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	complaint, err := h.complaintService.WardenClose(c.Request().Context(), complaintID, claims.UserID, req.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "complaint closed",
		"complaint": complaint,
	})
}

// Delete godoc
// @Summary Withdraw a pending complaint (creator only)
// @Tags complaints
// @Security BearerAuth
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /complaints/{id} [delete]
func (h *ComplaintHandler) Delete(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	complaintID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid complaint id")
	}

	if err := h.complaintService.DeleteByStudent(c.Request().Context(), complaintID, claims.UserID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "complaint deleted"})
}

// ListMine godoc
// @Summary List the caller's own complaints (student)
// @Tags complaints
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /complaints/mine [get]
func (h *ComplaintHandler) ListMine(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	complaints, err := h.complaintService.ListMine(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"complaints": complaints})
}

// ListForStaff godoc
// @Summary Staff work queue: open complaints of the caller's trade in a hostel
// @Tags complaints
// @Security BearerAuth
// @Produce json
// @Param hostelId query string true "Hostel ID"
// @Success 200 {object} map[string]interface{}
// @Router /complaints/queue [get]
func (h *ComplaintHandler) ListForStaff(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	hostelID, err := uuid.Parse(c.QueryParam("hostelId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid hostel id")
	}

	complaints, err := h.complaintService.ListForStaff(c.Request().Context(), claims.UserID, hostelID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"complaints": complaints})
}

// ListEscalated godoc
// @Summary Escalated complaints of the warden's hostel
// @Tags complaints
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /complaints/escalated [get]
func (h *ComplaintHandler) ListEscalated(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	complaints, err := h.complaintService.ListEscalated(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"complaints": complaints})
}

// queryFilter builds a complaint filter from query parameters.
func queryFilter(c echo.Context) (repository.ComplaintFilter, error) {
	var filter repository.ComplaintFilter

	if raw := c.QueryParam("hostelId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "invalid hostel id")
		}
		filter.HostelID = &id
	}
	if raw := c.QueryParam("status"); raw != "" {
		filter.Status = model.ComplaintStatus(raw)
	}
	if raw := c.QueryParam("category"); raw != "" {
		filter.Category = model.ComplaintCategory(raw)
	}
	if raw := c.QueryParam("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "invalid from timestamp")
		}
		filter.From = &t
	}
	if raw := c.QueryParam("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "invalid to timestamp")
		}
		filter.To = &t
	}
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	return filter, nil
}

// ListFiltered godoc
// @Summary List complaints with filters and pagination (warden/chief)
// @Tags complaints
// @Security BearerAuth
// @Produce json
// @Param hostelId query string false "Hostel ID"
// @Param status query string false "Status"
// @Param category query string false "Category"
// @Param from query string false "RFC3339 lower bound"
// @Param to query string false "RFC3339 upper bound"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} service.ComplaintPage
// @Router /complaints [get]
func (h *ComplaintHandler) ListFiltered(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	filter, err := queryFilter(c)
	if err != nil {
		return err
	}

	page, err := h.complaintService.ListFiltered(c.Request().Context(), claims.UserID, filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// Summary godoc
// @Summary Complaint counts per status (warden/chief)
// @Tags complaints
// @Security BearerAuth
// @Produce json
// @Param hostelId query string false "Hostel ID"
// @Param from query string false "RFC3339 lower bound"
// @Param to query string false "RFC3339 upper bound"
// @Success 200 {object} map[string]interface{}
// @Router /complaints/summary [get]
func (h *ComplaintHandler) Summary(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	filter, err := queryFilter(c)
	if err != nil {
		return err
	}

	summary, err := h.complaintService.Summary(c.Request().Context(), claims.UserID, filter.HostelID, filter.From, filter.To)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"summary": summary})
}

// Trend godoc
// @Summary Complaint counts per month over the last N months (warden/chief)
// @Tags complaints
// @Security BearerAuth
// @Produce json
// @Param hostelId query string false "Hostel ID"
// @Param months query int false "Window in months, default 6"
// @Success 200 {object} map[string]interface{}
// @Router /complaints/trend [get]
func (h *ComplaintHandler) Trend(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	filter, err := queryFilter(c)
	if err != nil {
		return err
	}
	months, _ := strconv.Atoi(c.QueryParam("months"))

	trend, err := h.complaintService.TrendByMonth(c.Request().Context(), claims.UserID, filter.HostelID, months)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"trend": trend})
}
