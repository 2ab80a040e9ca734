package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string
	JWTSecret  string

	CloudinaryURL string
	SendgridKey   string
	FromEmail     string
	FromName      string

	ResetCodeExpiry   time.Duration
	SurplusSweepEvery time.Duration
	SwaggerHost       string
	SeedChiefEmail    string
	SeedChiefPassword string
	SeedChiefName     string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/hostel?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:    getEnvInt("REDIS_DB", 0),
		RedisPass:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:  getEnv("JWT_SECRET", "change-me"),

		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
		SendgridKey:   os.Getenv("SENDGRID_API_KEY"),
		FromEmail:     getEnv("FROM_EMAIL", "no-reply@smarthostel.local"),
		FromName:      getEnv("FROM_NAME", "Smart Hostel"),

		ResetCodeExpiry:   time.Duration(getEnvInt("RESET_CODE_EXPIRY_MIN", 15)) * time.Minute,
		SurplusSweepEvery: time.Duration(getEnvInt("SURPLUS_SWEEP_SECONDS", 60)) * time.Second,
		SwaggerHost:       os.Getenv("SWAGGER_HOST"),
		SeedChiefEmail:    getEnv("SEED_CHIEF_EMAIL", "chief@smarthostel.local"),
		SeedChiefPassword: os.Getenv("SEED_CHIEF_PASSWORD"),
		SeedChiefName:     getEnv("SEED_CHIEF_NAME", "Chief Warden"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
