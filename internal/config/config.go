package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// MaxSearchDepth bounds SEARCH_DEPTH; every extra ply multiplies the work
// of each bot move.
const MaxSearchDepth = 4

type Config struct {
	Port           string
	AllowedOrigins []string

	BotDifficulty  string
	SearchDepth    int
	SearchParallel bool

	RedisURL      string
	RedisPassword string
	MoveCacheTTL  time.Duration

	SessionTTL      time.Duration
	CleanupInterval time.Duration

	LogLevel  string
	LogPretty bool
}

func LoadConfig() *Config {
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")

	// Frontend URL first, then the CSV extras.
	allowedOrigins := []string{frontendURL}
	for _, origin := range strings.Split(GetEnv("ALLOWED_ORIGINS", ""), ",") {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" && trimmed != frontendURL {
			allowedOrigins = append(allowedOrigins, trimmed)
		}
	}

	return &Config{
		Port:           GetEnv("PORT", "8080"),
		AllowedOrigins: allowedOrigins,

		BotDifficulty:  GetEnv("BOT_DIFFICULTY", "hard"),
		SearchDepth:    GetEnvAsIntInRange("SEARCH_DEPTH", 3, 0, MaxSearchDepth),
		SearchParallel: GetEnvAsBool("SEARCH_PARALLEL", false),

		RedisURL:      GetEnv("REDIS_URL", ""),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		MoveCacheTTL:  GetEnvAsDuration("MOVE_CACHE_TTL", 24*time.Hour),

		SessionTTL:      GetEnvAsDuration("SESSION_TTL", time.Hour),
		CleanupInterval: GetEnvAsDuration("CLEANUP_INTERVAL", 10*time.Minute),

		LogLevel:  GetEnv("LOG_LEVEL", "info"),
		LogPretty: GetEnvAsBool("LOG_PRETTY", false),
	}
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).Msg("invalid integer, using default")
		return defaultValue
	}
	return value
}

// GetEnvAsIntInRange clamps the value into [lo, hi].
func GetEnvAsIntInRange(key string, defaultValue, lo, hi int) int {
	value := GetEnvAsInt(key, defaultValue)
	clamped := max(lo, min(value, hi))
	if clamped != value {
		log.Warn().Str("key", key).Int("value", value).Int("using", clamped).Msg("value out of range, clamping")
	}
	return clamped
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Bool("default", defaultValue).Msg("invalid boolean, using default")
		return defaultValue
	}
	return value
}

func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil || value <= 0 {
		log.Warn().Str("key", key).Str("value", valueStr).Dur("default", defaultValue).Msg("invalid duration, using default")
		return defaultValue
	}
	return value
}
