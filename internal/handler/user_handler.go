package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Hegpro/Samrt-hostel-management/internal/model"
	"github.com/Hegpro/Samrt-hostel-management/internal/service"
)

// UserHandler handles account provisioning and listing endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateWardenRequest provisions a warden for a hostel.
type CreateWardenRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	HostelID string `json:"hostel_id" validate:"required,uuid"`
}

// CreateStaffRequest provisions a maintenance staff member.
type CreateStaffRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	StaffType string `json:"staff_type" validate:"required"`
}

// CreateMessManagerRequest provisions a mess manager.
type CreateMessManagerRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
}

// CreateStudentRequest provisions a student plus linked parent.
type CreateStudentRequest struct {
	Name   string `json:"name" validate:"required"`
	USN    string `json:"usn" validate:"required"`
	Email  string `json:"email" validate:"omitempty,email"`
	Phone  string `json:"phone"`
	RoomID string `json:"room_id" validate:"required,uuid"`
}

// CreatedUserResponse returns the new account and its one-time password.
type CreatedUserResponse struct {
	Message  string      `json:"message"`
	User     interface{} `json:"user"`
	Password string      `json:"password"`
}

// CreateWarden godoc
// @Summary Create a warden (chief warden only)
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateWardenRequest true "Warden data"
// @Success 201 {object} CreatedUserResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/wardens [post]
func (h *UserHandler) CreateWarden(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req CreateWardenRequest
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

	warden, password, err := h.userService.CreateWarden(c.Request().Context(), claims.UserID, req.Name, req.Email, req.Phone, hostelID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, CreatedUserResponse{
		Message:  "warden created",
		User:     warden,
		Password: password,
	})
}

// CreateStaff godoc
// @Summary Create a staff member in the warden's hostel
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateStaffRequest true "Staff data"
// @Success 201 {object} CreatedUserResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/staff [post]
func (h *UserHandler) CreateStaff(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req CreateStaffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	staff, password, err := h.userService.CreateStaff(c.Request().Context(), claims.UserID, req.Name, req.Email, req.Phone, model.StaffType(req.StaffType))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, CreatedUserResponse{
		Message:  "staff created",
		User:     staff,
		Password: password,
	})
}

// CreateMessManager godoc
// @Summary Create a mess manager (chief warden only)
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateMessManagerRequest true "Mess manager data"
// @Success 201 {object} CreatedUserResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/mess-managers [post]
func (h *UserHandler) CreateMessManager(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req CreateMessManagerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	manager, password, err := h.userService.CreateMessManager(c.Request().Context(), claims.UserID, req.Name, req.Email, req.Phone)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, CreatedUserResponse{
		Message:  "mess manager created",
		User:     manager,
		Password: password,
	})
}

// CreateStudent godoc
// @Summary Create a student and linked parent (chief warden only)
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateStudentRequest true "Student data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/students [post]
func (h *UserHandler) CreateStudent(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req CreateStudentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid room id")
	}

	created, err := h.userService.CreateStudent(c.Request().Context(), claims.UserID, req.Name, req.USN, req.Email, req.Phone, roomID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "student and parent created successfully",
		"student":  created.Student,
		"parent":   created.Parent,
		"password": created.Password,
	})
}

// DeleteStudent godoc
// @Summary Delete a student and the linked parent
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/students/{id} [delete]
func (h *UserHandler) DeleteStudent(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid student id")
	}
	if err := h.userService.DeleteStudent(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "student deleted successfully"})
}

func (h *UserHandler) deleteInRole(c echo.Context, role model.Role, what string) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.userService.DeleteUserInRole(c.Request().Context(), id, role); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: what + " deleted successfully"})
}

// DeleteWarden godoc
// @Summary Delete a warden
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path string true "Warden ID"
// @Success 200 {object} MessageResponse
// @Router /users/wardens/{id} [delete]
func (h *UserHandler) DeleteWarden(c echo.Context) error {
	return h.deleteInRole(c, model.RoleWarden, "warden")
}

// DeleteStaff godoc
// @Summary Delete a staff member
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path string true "Staff ID"
// @Success 200 {object} MessageResponse
// @Router /users/staff/{id} [delete]
func (h *UserHandler) DeleteStaff(c echo.Context) error {
	return h.deleteInRole(c, model.RoleStaff, "staff")
}

// DeleteMessManager godoc
// @Summary Delete a mess manager
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path string true "Mess manager ID"
// @Success 200 {object} MessageResponse
// @Router /users/mess-managers/{id} [delete]
func (h *UserHandler) DeleteMessManager(c echo.Context) error {
	return h.deleteInRole(c, model.RoleMessManager, "mess manager")
}

// DeleteNGO godoc
// @Summary Delete an NGO account
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path string true "NGO ID"
// @Success 200 {object} MessageResponse
// @Router /users/ngos/{id} [delete]
func (h *UserHandler) DeleteNGO(c echo.Context) error {
	return h.deleteInRole(c, model.RoleNGO, "ngo")
}

// ListWardens godoc
// @Summary List all wardens
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /users/wardens [get]
func (h *UserHandler) ListWardens(c echo.Context) error {
	wardens, err := h.userService.ListWardens(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"wardens": wardens})
}

// ListMessManagers godoc
// @Summary List all mess managers
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /users/mess-managers [get]
func (h *UserHandler) ListMessManagers(c echo.Context) error {
	managers, err := h.userService.ListMessManagers(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"mess_managers": managers})
}

// ListNGOs godoc
// @Summary List registered NGOs
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /users/ngos [get]
func (h *UserHandler) ListNGOs(c echo.Context) error {
	ngos, err := h.userService.ListNGOs(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"ngos": ngos})
}

// ListStaff godoc
// @Summary List the staff of the warden's hostel
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /users/staff [get]
func (h *UserHandler) ListStaff(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	staff, err := h.userService.ListStaff(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"staff": staff})
}

// ListStudents godoc
// @Summary List students, scoped to the caller's hostel when they have one
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /users/students [get]
func (h *UserHandler) ListStudents(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	students, err := h.userService.ListStudents(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"students": students})
}

// ListStudentsByRoom godoc
// @Summary List the students assigned to a room
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param roomId path string true "Room ID"
// @Success 200 {object} map[string]interface{}
// @Router /users/students/by-room/{roomId} [get]
func (h *UserHandler) ListStudentsByRoom(c echo.Context) error {
	roomID, err := uuid.Parse(c.Param("roomId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid room id")
	}
	students, err := h.userService.ListStudentsByRoom(c.Request().Context(), roomID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"students": students})
}
