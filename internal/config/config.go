package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Storage    StorageConfig
	SMTP       SMTPConfig
	Face       FaceConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// StorageConfig holds file storage configuration
type StorageConfig struct {
	Type     string // "local"
	BasePath string
	BaseURL  string
}

// SMTPConfig holds email delivery configuration. Host may be empty, in
// which case notification emails are skipped.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// FaceConfig configures the face match verifier. Threshold gates the
// confidence returned by the vision backend; ServiceURL points at the
// external verification service and may be empty outside production.
type FaceConfig struct {
	ServiceURL string
	Threshold  float64
}

// AttendanceConfig holds the fallback work-hour policy used when a
// division has no configured policy.
type AttendanceConfig struct {
	DefaultWorkStart string // "HH:MM"
	DefaultWorkEnd   string // "HH:MM"
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "presensia"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Storage configuration
	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
	}

	// SMTP configuration
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", ""),
	}

	// Face verification configuration
	faceThreshold, err := strconv.ParseFloat(getEnv("FACE_MATCH_THRESHOLD", "0.8"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid FACE_MATCH_THRESHOLD: %w", err)
	}

	config.Face = FaceConfig{
		ServiceURL: getEnv("FACE_SERVICE_URL", ""),
		Threshold:  faceThreshold,
	}

	// Attendance configuration
	config.Attendance = AttendanceConfig{
		DefaultWorkStart: getEnv("DEFAULT_WORK_START", "08:00"),
		DefaultWorkEnd:   getEnv("DEFAULT_WORK_END", "17:00"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Face.Threshold <= 0 || c.Face.Threshold > 1 {
		return fmt.Errorf("FACE_MATCH_THRESHOLD must be in (0, 1]")
	}
	if c.Storage.Type != "local" {
		return fmt.Errorf("unsupported STORAGE_TYPE: %s", c.Storage.Type)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
