package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string
	DatabasePath    string
	DatabaseURL     string
	MigrationsPath  string
	StaticFilesPath string

	JikanBaseURL string
	SessionTTL   time.Duration

	AdminPasswordHash string
	AdminTokenSecret  string

	AWSRegion     string
	SESFromEmail  string
	SESFromName   string
	DigestToEmail string

	AvatarMaxSize int64
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./guessanime.db"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		StaticFilesPath: getEnv("STATIC_PATH", "./static"),

		JikanBaseURL: getEnv("JIKAN_BASE_URL", "https://api.jikan.moe/v4"),
		SessionTTL:   2 * time.Hour,

		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		AdminTokenSecret:  getEnv("ADMIN_TOKEN_SECRET", ""),

		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail:  getEnv("SES_FROM_EMAIL", ""),
		SESFromName:   getEnv("SES_FROM_NAME", "GuessAnime"),
		DigestToEmail: getEnv("DIGEST_TO_EMAIL", ""),

		AvatarMaxSize: 2 * 1024 * 1024, // 2MB
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
