package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string
	RedisURL    string

	MeiliSearchHost string
	MeiliMasterKey  string

	JWTSecret string

	// Gamification tuning. Loaded once at startup, immutable afterwards.
	DailyLoginBase        int
	StreakBonusMultiplier float64
	LeaderboardCacheTTL   time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		MeiliSearchHost: getEnv("MEILISEARCH_HOST", "http://localhost:7700"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		JWTSecret: getEnv("JWT_SECRET", "dev-secret"),
	}

	var err error
	cfg.DailyLoginBase, err = parseInt(getEnv("DAILY_LOGIN_BASE", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DAILY_LOGIN_BASE: %w", err)
	}

	cfg.StreakBonusMultiplier, err = strconv.ParseFloat(getEnv("STREAK_BONUS_MULTIPLIER", "0.5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid STREAK_BONUS_MULTIPLIER: %w", err)
	}

	cfg.LeaderboardCacheTTL, err = time.ParseDuration(getEnv("LEADERBOARD_CACHE_TTL", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEADERBOARD_CACHE_TTL: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(s)
}
