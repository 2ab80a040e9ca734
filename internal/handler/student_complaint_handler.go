package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Hegpro/Samrt-hostel-management/internal/service"
)

// StudentComplaintHandler handles disciplinary complaint endpoints.
type StudentComplaintHandler struct {
	studentComplaintService service.StudentComplaintService
}

// NewStudentComplaintHandler creates a new student complaint handler.
func NewStudentComplaintHandler(studentComplaintService service.StudentComplaintService) *StudentComplaintHandler {
	return &StudentComplaintHandler{studentComplaintService: studentComplaintService}
}

// RaiseStudentComplaintRequest raises a complaint against a student by USN.
type RaiseStudentComplaintRequest struct {
	USN         string `json:"usn" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// CloseStudentComplaintRequest closes a complaint with an optional note.
type CloseStudentComplaintRequest struct {
	Note string `json:"note"`
}

// Raise godoc
// @Summary Raise a complaint against a student (warden/chief)
// @Tags student-complaints
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body RaiseStudentComplaintRequest true "Complaint data"
// @Success 201 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /student-complaints [post]
func (h *StudentComplaintHandler) Raise(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req RaiseStudentComplaintRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	complaint, err := h.studentComplaintService.Raise(c.Request().Context(), claims.UserID, req.USN, req.Title, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":   "student complaint created",
		"complaint": complaint,
	})
}

// ListByParent godoc
// @Summary List complaints about the caller's child (parent)
// @Tags student-complaints
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /student-complaints [get]
func (h *StudentComplaintHandler) ListByParent(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	complaints, err := h.studentComplaintService.ListByParent(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"complaints": complaints})
}

// Close godoc
// @Summary Close a student complaint (warden/chief)
// @Tags student-complaints
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Param request body CloseStudentComplaintRequest true "Closing note"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Router /student-complaints/{id}/close [put]
func (h *StudentComplaintHandler) Close(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	complaintID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid complaint id")
	}

	var req CloseStudentComplaintRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	complaint, err := h.studentComplaintService.Close(c.Request().Context(), complaintID, claims.UserID, req.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "student complaint closed",
		"complaint": complaint,
	})
}
