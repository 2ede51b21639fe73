package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	BotToken       string
	WebhookBaseURL string
	WebhookSecret  string
	ServerPort     string
	AdminContact   string

	AssetsDir string
	TempDir   string

	RenderWorkers int
	BatchTimeout  time.Duration
	CacheTTL      time.Duration
	ArtifactAge   time.Duration
}

func Load() *Config {
	// Missing .env is fine in production; env vars win either way.
	godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "testchecker"),

		BotToken:       getEnv("BOT_TOKEN", ""),
		WebhookBaseURL: getEnv("WEBHOOK_BASE_URL", ""),
		WebhookSecret:  getEnv("WEBHOOK_SECRET", "webhook-secret-change-me"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		AdminContact:   getEnv("ADMIN_CONTACT", "@admin"),

		AssetsDir: getEnv("ASSETS_DIR", "sertifikatlar"),
		TempDir:   getEnv("TEMP_DIR", "tmp"),

		RenderWorkers: getEnvInt("RENDER_WORKERS", 4),
		BatchTimeout:  time.Duration(getEnvInt("BATCH_TIMEOUT_SEC", 300)) * time.Second,
		CacheTTL:      time.Duration(getEnvInt("CACHE_TTL_SEC", 300)) * time.Second,
		ArtifactAge:   time.Duration(getEnvInt("ARTIFACT_MAX_AGE_MIN", 120)) * time.Minute,
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}
