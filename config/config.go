package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port             string
	DBPath           string
	SessionCookie    string
	SessionTTL       time.Duration
	SeedDefaultUsers bool
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	ttlHours, err := strconv.Atoi(get("SESSION_TTL_HOURS", "24"))
	if err != nil || ttlHours <= 0 {
		ttlHours = 24
	}
	cfg := AppConfig{
		Port:             get("PORT", "8080"),
		DBPath:           get("DB_PATH", "agriyield.db"),
		SessionCookie:    get("SESSION_COOKIE", "agriyield_session"),
		SessionTTL:       time.Duration(ttlHours) * time.Hour,
		SeedDefaultUsers: get("SEED_DEFAULT_USERS", "true") == "true",
	}
	log.Printf("[cfg] port=%s db=%s session_ttl=%s seed=%v", cfg.Port, cfg.DBPath, cfg.SessionTTL, cfg.SeedDefaultUsers)
	return cfg
}
