package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Hegpro/Samrt-hostel-management/internal/auth"
	"github.com/Hegpro/Samrt-hostel-management/internal/config"
	"github.com/Hegpro/Samrt-hostel-management/internal/handler"
	"github.com/Hegpro/Samrt-hostel-management/internal/model"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth             *handler.AuthHandler
	User             *handler.UserHandler
	Hostel           *handler.HostelHandler
	Room             *handler.RoomHandler
	Complaint        *handler.ComplaintHandler
	StudentComplaint *handler.StudentComplaintHandler
	Surplus          *handler.SurplusHandler
	Notice           *handler.NoticeHandler
	Report           *handler.ReportHandler
	Dashboard        *handler.DashboardHandler
	Admin            *handler.AdminHandler
}

// RequireRoles allows only the listed roles through, read from the typed
// JWT claims.
func RequireRoles(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			if _, ok := allowed[claims.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "access denied")
			}
			return next(c)
		}
	}
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, h Handlers) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/parent-login", h.Auth.ParentLogin)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.POST("/auth/logout", h.Auth.Logout)
	api.POST("/auth/password-reset/send-code", h.Auth.SendPasswordResetCode)
	api.POST("/auth/password-reset/verify", h.Auth.VerifyCodeAndResetPassword)
	api.POST("/auth/ngo/send-code", h.Auth.SendNGOVerificationCode)
	api.POST("/auth/ngo/verify", h.Auth.VerifyNGOCodeAndRegister)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/me", h.Auth.GetMe)
	secured.POST("/auth/change-password", h.Auth.ChangePassword)

	chief := RequireRoles(model.RoleChiefWarden)
	warden := RequireRoles(model.RoleWarden)
	chiefOrWarden := RequireRoles(model.RoleChiefWarden, model.RoleWarden)

	// Provisioning
	secured.POST("/users/wardens", h.User.CreateWarden, chief)
	secured.GET("/users/wardens", h.User.ListWardens, chief)
	secured.DELETE("/users/wardens/:id", h.User.DeleteWarden, chief)
	secured.POST("/users/staff", h.User.CreateStaff, warden)
	secured.GET("/users/staff", h.User.ListStaff, warden)
	secured.DELETE("/users/staff/:id", h.User.DeleteStaff, chiefOrWarden)
	secured.POST("/users/mess-managers", h.User.CreateMessManager, chief)
	secured.GET("/users/mess-managers", h.User.ListMessManagers, chief)
	secured.DELETE("/users/mess-managers/:id", h.User.DeleteMessManager, chief)
	secured.POST("/users/students", h.User.CreateStudent, chief)
	secured.GET("/users/students", h.User.ListStudents, chiefOrWarden)
	secured.DELETE("/users/students/:id", h.User.DeleteStudent, chiefOrWarden)
	secured.GET("/users/students/by-room/:roomId", h.User.ListStudentsByRoom, chiefOrWarden)
	secured.GET("/users/ngos", h.User.ListNGOs, RequireRoles(model.RoleChiefWarden, model.RoleMessManager))
	secured.DELETE("/users/ngos/:id", h.User.DeleteNGO, RequireRoles(model.RoleChiefWarden, model.RoleMessManager))

	// Hostels and rooms
	secured.POST("/hostels", h.Hostel.CreateHostel, chief)
	secured.GET("/hostels", h.Hostel.ListHostels)
	secured.PUT("/hostels/:id/warden", h.Hostel.AssignWarden, chief)
	secured.GET("/hostels/:hostelId/rooms", h.Room.ListByHostel, chiefOrWarden)
	secured.POST("/rooms", h.Room.CreateRoom, chief)
	secured.GET("/rooms/:id", h.Room.GetRoom, chiefOrWarden)
	secured.POST("/rooms/:id/students", h.Room.AssignStudent, chiefOrWarden)
	secured.DELETE("/rooms/:id/students/:studentId", h.Room.RemoveStudent, chiefOrWarden)
	secured.POST("/rooms/relocate", h.Room.Relocate, chiefOrWarden)
	secured.PUT("/rooms/:id/status", h.Room.UpdateStatus, chiefOrWarden)

	// Maintenance complaints
	secured.POST("/complaints", h.Complaint.Create, RequireRoles(model.RoleStudent))
	secured.GET("/complaints/mine", h.Complaint.ListMine, RequireRoles(model.RoleStudent))
	secured.DELETE("/complaints/:id", h.Complaint.Delete, RequireRoles(model.RoleStudent))
	secured.GET("/complaints/queue", h.Complaint.ListForStaff, RequireRoles(model.RoleStaff))
	secured.PUT("/complaints/:id/status", h.Complaint.Transition, RequireRoles(model.RoleStaff))
	secured.GET("/complaints/escalated", h.Complaint.ListEscalated, warden)
	secured.PUT("/complaints/:id/close", h.Complaint.WardenClose, warden)
	secured.GET("/complaints", h.Complaint.ListFiltered, chiefOrWarden)
	secured.GET("/complaints/summary", h.Complaint.Summary, chiefOrWarden)
	secured.GET("/complaints/trend", h.Complaint.Trend, chiefOrWarden)

	// Student (disciplinary) complaints
	secured.POST("/student-complaints", h.StudentComplaint.Raise, chiefOrWarden)
	secured.PUT("/student-complaints/:id/close", h.StudentComplaint.Close, chiefOrWarden)
	secured.GET("/student-complaints", h.StudentComplaint.ListByParent, RequireRoles(model.RoleParent))

	// Surplus food
	secured.POST("/surplus", h.Surplus.Post, RequireRoles(model.RoleMessManager))
	secured.GET("/surplus/mine", h.Surplus.ListMine, RequireRoles(model.RoleMessManager))
	secured.PUT("/surplus/:id/status", h.Surplus.UpdateStatus, RequireRoles(model.RoleMessManager))
	secured.GET("/surplus/available", h.Surplus.ListAvailable, RequireRoles(model.RoleNGO, model.RoleMessManager, model.RoleChiefWarden))
	secured.POST("/surplus/:id/claim", h.Surplus.Claim, RequireRoles(model.RoleNGO))
	secured.GET("/surplus/claimed", h.Surplus.ListClaimed, RequireRoles(model.RoleNGO))

	// Notices
	secured.POST("/notices", h.Notice.Create, chiefOrWarden)
	secured.GET("/notices", h.Notice.List)

	// Reports
	secured.GET("/reports/occupancy", h.Report.RoomOccupancy, chiefOrWarden)
	secured.GET("/reports/occupancy/excel", h.Report.RoomOccupancyExcel, chiefOrWarden)
	secured.GET("/reports/occupancy/pdf", h.Report.RoomOccupancyPDF, chiefOrWarden)

	// Dashboards
	secured.GET("/dashboards/student", h.Dashboard.Student, RequireRoles(model.RoleStudent))
	secured.GET("/dashboards/parent", h.Dashboard.Parent, RequireRoles(model.RoleParent))
	secured.GET("/dashboards/chief", h.Dashboard.Chief, chief)
	secured.GET("/dashboards/warden", h.Dashboard.Warden, warden)
	secured.GET("/dashboards/staff", h.Dashboard.Staff, RequireRoles(model.RoleStaff))
	secured.GET("/dashboards/mess-manager", h.Dashboard.MessManager, RequireRoles(model.RoleMessManager))
	secured.GET("/dashboards/ngo", h.Dashboard.NGO, RequireRoles(model.RoleNGO))

	// Admin
	secured.POST("/admin/reset", h.Admin.ResetAcademicYear, chief)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
