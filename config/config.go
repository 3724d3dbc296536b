package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Security   SecurityConfig
	Revocation RevocationConfig
	Redis      RedisConfig
	CORS       CORSConfig
	S3         S3Config
	Admin      AdminSeedConfig
}

type ServerConfig struct {
	Port         string
	GinMode      string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxIdleConns int
	MaxOpenConns int
}

type JWTConfig struct {
	Secret      string
	TokenExpiry time.Duration
}

type SecurityConfig struct {
	BcryptCost int
}

// RevocationConfig controls the logout ledger maintenance
type RevocationConfig struct {
	Retention     time.Duration // how long invalidated tokens are kept
	SweepSchedule string        // cron spec for the cleanup job
}

// RedisConfig is optional; an empty Host disables the shared revocation tier
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type CORSConfig struct {
	AllowedOrigins []string
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string // CloudFront or S3 direct URL
}

func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// AdminSeedConfig describes the default administrator created on first migration
type AdminSeedConfig struct {
	Name     string
	Email    string
	Password string
	Address  string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "5000"),
			GinMode:      getEnv("GIN_MODE", "debug"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			ReadTimeout:  parseDuration(getEnv("SERVER_READ_TIMEOUT", "15s"), 15*time.Second),
			WriteTimeout: parseDuration(getEnv("SERVER_WRITE_TIMEOUT", "15s"), 15*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			DBName:       getEnv("DB_NAME", "store_rating"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxIdleConns: parseInt(getEnv("DB_MAX_IDLE_CONNS", "10"), 10),
			MaxOpenConns: parseInt(getEnv("DB_MAX_OPEN_CONNS", "100"), 100),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", ""),
			TokenExpiry: parseDuration(getEnv("JWT_TOKEN_EXPIRY", "24h"), 24*time.Hour),
		},
		Security: SecurityConfig{
			BcryptCost: parseInt(getEnv("BCRYPT_COST", "10"), 10),
		},
		Revocation: RevocationConfig{
			Retention:     parseDuration(getEnv("REVOCATION_RETENTION", "48h"), 48*time.Hour),
			SweepSchedule: getEnv("REVOCATION_SWEEP_SCHEDULE", "@every 6h"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		S3: S3Config{
			Region:          getEnv("AWS_REGION", "ap-south-1"),
			Bucket:          getEnv("AWS_S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			BaseURL:         getEnv("AWS_S3_BASE_URL", ""),
		},
		Admin: AdminSeedConfig{
			Name:     getEnv("ADMIN_NAME", "Default Administrator Account"),
			Email:    getEnv("ADMIN_EMAIL", "admin@roxiler.com"),
			Password: getEnv("ADMIN_PASSWORD", "Admin@123"),
			Address:  getEnv("ADMIN_ADDRESS", "123 Admin Street, Admin City, Admin State 12345"),
		},
	}

	if config.JWT.Secret == "" && !config.IsProduction() {
		config.JWT.Secret = "dev-only-secret-change-me"
		log.Println("JWT_SECRET not set, using development secret")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// Validate rejects settings the server cannot run with
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWT.TokenExpiry <= 0 {
		return errors.New("JWT_TOKEN_EXPIRY must be positive")
	}
	if c.Revocation.Retention <= 0 {
		return errors.New("REVOCATION_RETENTION must be positive")
	}
	if c.JWT.TokenExpiry > c.Revocation.Retention {
		log.Printf("JWT_TOKEN_EXPIRY (%s) exceeds REVOCATION_RETENTION (%s); revoked rows are kept until their token expires",
			c.JWT.TokenExpiry, c.Revocation.Retention)
	}
	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return n
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
