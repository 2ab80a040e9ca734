package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Hegpro/Samrt-hostel-management/internal/service"
)

// NoticeHandler handles notice board endpoints.
type NoticeHandler struct {
	noticeService service.NoticeService
}

// NewNoticeHandler creates a new notice handler.
func NewNoticeHandler(noticeService service.NoticeService) *NoticeHandler {
	return &NoticeHandler{noticeService: noticeService}
}

// Create godoc
// @Summary Post a notice (warden/chief). Multipart with optional image.
// @Tags notices
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Param title formData string true "Title"
// @Param message formData string true "Message"
// @Param image formData file false "Attachment"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /notices [post]
func (h *NoticeHandler) Create(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	image, err := readFormImage(c, "image")
	if err != nil {
		return err
	}

	notice, err := h.noticeService.CreateNotice(c.Request().Context(), claims.UserID, c.FormValue("title"), c.FormValue("message"), image)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "notice posted",
		"notice":  notice,
	})
}

// List godoc
// @Summary List notices, newest first
// @Tags notices
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /notices [get]
func (h *NoticeHandler) List(c echo.Context) error {
	notices, err := h.noticeService.ListNotices(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"notices": notices})
}
