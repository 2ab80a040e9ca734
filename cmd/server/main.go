package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/Hegpro/Samrt-hostel-management/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Hegpro/Samrt-hostel-management/internal/auth"
	"github.com/Hegpro/Samrt-hostel-management/internal/blob"
	"github.com/Hegpro/Samrt-hostel-management/internal/cache"
	"github.com/Hegpro/Samrt-hostel-management/internal/config"
	"github.com/Hegpro/Samrt-hostel-management/internal/db"
	"github.com/Hegpro/Samrt-hostel-management/internal/handler"
	"github.com/Hegpro/Samrt-hostel-management/internal/mail"
	"github.com/Hegpro/Samrt-hostel-management/internal/model"
	"github.com/Hegpro/Samrt-hostel-management/internal/repository"
	"github.com/Hegpro/Samrt-hostel-management/internal/router"
	"github.com/Hegpro/Samrt-hostel-management/internal/scheduler"
	"github.com/Hegpro/Samrt-hostel-management/internal/service"
)

// @title Smart Hostel Management API
// @version 1.0
// @description Hostel management API with role-based access, room allocation, complaint tracking, surplus food redistribution, and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Notice{},
			&model.SurplusFood{},
			&model.StudentComplaint{},
			&model.Complaint{},
			&model.User{},
			&model.Room{},
			&model.Hostel{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.Hostel{},
		&model.Room{},
		&model.User{},
		&model.Complaint{},
		&model.StudentComplaint{},
		&model.SurplusFood{},
		&model.Notice{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	blobStore, err := blob.NewCloudinaryStore(cfg.CloudinaryURL)
	if err != nil {
		log.Printf("cloudinary unavailable, image uploads disabled: %v", err)
		blobStore = blob.NewNoopStore()
	}

	var mailer mail.Mailer
	if cfg.SendgridKey != "" {
		mailer = mail.NewSendgridMailer(cfg.SendgridKey, cfg.FromName, cfg.FromEmail)
	} else {
		log.Println("sendgrid key missing, logging mail to console")
		mailer = mail.NewConsoleMailer()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	hostelRepo := repository.NewHostelRepository(gormDB)
	roomRepo := repository.NewRoomRepository(gormDB)
	complaintRepo := repository.NewComplaintRepository(gormDB)
	studentComplaintRepo := repository.NewStudentComplaintRepository(gormDB)
	surplusRepo := repository.NewSurplusRepository(gormDB)
	noticeRepo := repository.NewNoticeRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	roomLocks := service.NewRoomLocks()
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, mailer, cfg.ResetCodeExpiry)
	userService := service.NewUserService(userRepo, roomRepo, roomLocks)
	hostelService := service.NewHostelService(hostelRepo, userRepo)
	roomService := service.NewRoomService(roomRepo, hostelRepo, userRepo, roomLocks)
	complaintService := service.NewComplaintService(complaintRepo, userRepo, blobStore)
	studentComplaintService := service.NewStudentComplaintService(studentComplaintRepo, userRepo)
	surplusService := service.NewSurplusService(surplusRepo, userRepo, blobStore, mailer)
	noticeService := service.NewNoticeService(noticeRepo, userRepo, blobStore)
	reportService := service.NewReportService(hostelRepo, roomRepo, userRepo)
	dashboardService := service.NewDashboardService(userRepo, hostelRepo, roomRepo, complaintRepo, surplusRepo, noticeRepo, cacheClient)
	adminService := service.NewAdminService(userRepo, roomRepo, complaintRepo, studentComplaintRepo, surplusRepo, noticeRepo, dashboardService)

	// Expire stale surplus postings in the background
	expiry := scheduler.NewSurplusExpiry(surplusService, cfg.SurplusSweepEvery)
	expiry.Start()

	// Register routes
	router.Register(e, cfg, router.Handlers{
		Auth:             handler.NewAuthHandler(authService),
		User:             handler.NewUserHandler(userService),
		Hostel:           handler.NewHostelHandler(hostelService),
		Room:             handler.NewRoomHandler(roomService),
		Complaint:        handler.NewComplaintHandler(complaintService),
		StudentComplaint: handler.NewStudentComplaintHandler(studentComplaintService),
		Surplus:          handler.NewSurplusHandler(surplusService),
		Notice:           handler.NewNoticeHandler(noticeService),
		Report:           handler.NewReportHandler(reportService),
		Dashboard:        handler.NewDashboardHandler(dashboardService),
		Admin:            handler.NewAdminHandler(adminService),
	})

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	expiry.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown: %v", err)
	}
}
