package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Hegpro/Samrt-hostel-management/internal/model"
	"github.com/Hegpro/Samrt-hostel-management/internal/service"
)

// SurplusHandler handles surplus food endpoints.
type SurplusHandler struct {
	surplusService service.SurplusService
}

// NewSurplusHandler creates a new surplus handler.
func NewSurplusHandler(surplusService service.SurplusService) *SurplusHandler {
	return &SurplusHandler{surplusService: surplusService}
}

// UpdateSurplusStatusRequest moves a posting to distributed or expired.
type UpdateSurplusStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Post godoc
// @Summary Post surplus food (mess manager). Multipart with optional image.
// @Tags surplus
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Param title formData string false "Title"
// @Param description formData string true "Description"
// @Param quantity formData string true "Quantity, free text"
// @Param deadline formData string true "Pickup deadline, RFC3339"
// @Param image formData file false "Photo"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /surplus [post]
func (h *SurplusHandler) Post(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	deadline, err := time.Parse(time.RFC3339, c.FormValue("deadline"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid deadline, expected RFC3339")
	}
	image, err := readFormImage(c, "image")
	if err != nil {
		return err
	}

	surplus, err := h.surplusService.Post(c.Request().Context(), claims.UserID,
		c.FormValue("title"), c.FormValue("description"), c.FormValue("quantity"), deadline, image)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "surplus posted",
		"surplus": surplus,
	})
}

// ListAvailable godoc
// @Summary List surplus postings open for claiming
// @Tags surplus
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /surplus/available [get]
func (h *SurplusHandler) ListAvailable(c echo.Context) error {
	surplus, err := h.surplusService.ListAvailable(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"surplus": surplus})
}

// Claim godoc
// @Summary Claim a surplus posting (NGO, first claim wins)
// @Tags surplus
// @Security BearerAuth
// @Produce json
// @Param id path string true "Surplus ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /surplus/{id}/claim [post]
func (h *SurplusHandler) Claim(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	surplusID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid surplus id")
	}

	surplus, err := h.surplusService.Claim(c.Request().Context(), surplusID, claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "surplus claimed",
		"surplus": surplus,
	})
}

// UpdateStatus godoc
// @Summary Mark a posting distributed or expired (poster only)
// @Tags surplus
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Surplus ID"
// @Param request body UpdateSurplusStatusRequest true "New status"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /surplus/{id}/status [put]
func (h *SurplusHandler) UpdateStatus(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	surplusID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid surplus id")
	}

	var req UpdateSurplusStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	surplus, err := h.surplusService.UpdateStatus(c.Request().Context(), surplusID, claims.UserID, model.SurplusStatus(req.Status))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "surplus status updated",
		"surplus": surplus,
	})
}

// ListMine godoc
// @Summary List the caller's own postings (mess manager)
// @Tags surplus
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /surplus/mine [get]
func (h *SurplusHandler) ListMine(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	surplus, err := h.surplusService.ListMine(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"surplus": surplus})
}

// ListClaimed godoc
// @Summary List the postings the caller has claimed (NGO)
// @Tags surplus
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /surplus/claimed [get]
func (h *SurplusHandler) ListClaimed(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	surplus, err := h.surplusService.ListClaimed(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"surplus": surplus})
}
