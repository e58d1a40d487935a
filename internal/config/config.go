package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string
	DatabasePath    string
	DatabaseURL     string
	StaticFilesPath string
	LogMode         string

	SessionSecret     string
	SessionDuration   time.Duration
	AdminPasswordHash string

	// Parent dashboard heuristics
	Timezone        string
	MinutesPerItem  float64
	DailyCapMinutes float64
	DashboardLevels int

	// totalItems stamped on a newly created progress record
	DefaultTotalItems int
	// Dashboard totals for levels a user has not started
	ReadingLevelItems int
	MathLevelItems    int

	BadWordsURL string

	// Spoken pronunciations; an empty AudioCachePath disables the audio routes
	AudioCachePath string
	TTSURL         string

	// Emailed progress reports
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string
}

// DefaultBadWordsURL is the public word list used when BAD_WORDS_URL is unset
const DefaultBadWordsURL = "https://raw.githubusercontent.com/LDNOOBW/List-of-Dirty-Naughty-Obscene-and-Otherwise-Bad-Words/refs/heads/master/en"

// Load reads configuration from the environment (and an optional .env file)
// with sensible defaults
func Load() *Config {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./kidlearn.db"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		StaticFilesPath: getEnv("STATIC_PATH", "./static"),
		LogMode:         getEnv("LOG_MODE", "development"),

		SessionSecret:     getEnv("SESSION_SECRET", "change-me-in-production"),
		SessionDuration:   getEnvDuration("SESSION_DURATION", 30*24*time.Hour),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		Timezone:        getEnv("TIMEZONE", "Local"),
		MinutesPerItem:  getEnvFloat("MINUTES_PER_ITEM", 2.5),
		DailyCapMinutes: getEnvFloat("DAILY_CAP_MINUTES", 60),
		DashboardLevels: getEnvInt("DASHBOARD_LEVELS", 6),

		DefaultTotalItems: getEnvInt("DEFAULT_TOTAL_ITEMS", 10),
		ReadingLevelItems: getEnvInt("READING_LEVEL_ITEMS", 12),
		MathLevelItems:    getEnvInt("MATH_LEVEL_ITEMS", 10),

		BadWordsURL: getEnv("BAD_WORDS_URL", DefaultBadWordsURL),

		AudioCachePath: getEnv("AUDIO_CACHE_PATH", ""),
		TTSURL:         getEnv("TTS_URL", ""),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "KidLearn"),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:8080"),
	}
}

// Location resolves Timezone, falling back to the server's local zone when
// the name is unknown.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// AdminEnabled reports whether content writes are gated behind an admin token
func (c *Config) AdminEnabled() bool {
	return c.AdminPasswordHash != ""
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
