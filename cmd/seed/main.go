package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Hegpro/Samrt-hostel-management/internal/config"
	"github.com/Hegpro/Samrt-hostel-management/internal/db"
	"github.com/Hegpro/Samrt-hostel-management/internal/model"
	"github.com/Hegpro/Samrt-hostel-management/internal/repository"
)

func main() {
	log.Println("Starting seed script...")

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
	cfg := config.Load()

	if cfg.SeedChiefPassword == "" {
		log.Fatal("SEED_CHIEF_PASSWORD must be set")
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	existing, err := userRepo.FindByEmail(ctx, cfg.SeedChiefEmail)
	if err != nil && err != gorm.ErrRecordNotFound {
		log.Fatalf("Error checking chief warden: %v", err)
	}
	if existing != nil {
		log.Printf("Chief warden already exists: %s", cfg.SeedChiefEmail)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedChiefPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	email := cfg.SeedChiefEmail
	chief := &model.User{
		Name:         cfg.SeedChiefName,
		Email:        &email,
		PasswordHash: string(hash),
		Role:         model.RoleChiefWarden,
		TempPassword: false,
	}
	if err := userRepo.Create(ctx, chief); err != nil {
		log.Fatalf("Failed to create chief warden: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Chief warden created: %s (%s)", chief.Name, cfg.SeedChiefEmail)
}
