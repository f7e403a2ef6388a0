package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Cart snapshot backends.
const (
	CartBackendMemory   = "memory"
	CartBackendDatabase = "database"
	CartBackendRedis    = "redis"
)

type Config struct {
	Port string

	DBDriver    string // postgres | sqlite
	DatabaseURL string
	SQLitePath  string

	CatalogAPIURL  string
	CatalogTimeout time.Duration

	FeedEndpoint string
	FeedCacheTTL time.Duration

	WhatsAppNumber  string
	WhatsAppBaseURL string

	JWTSecret   string
	AdminAPIKey string

	SessionTTL           time.Duration
	SessionSweepInterval time.Duration

	CartBackend string
	RedisAddr   string

	CORSOrigins []string
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds the config from a lookup function so tests can feed values
// without touching the real environment.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Port:            get("PORT", "8080"),
		DBDriver:        strings.ToLower(get("DB_DRIVER", "postgres")),
		SQLitePath:      get("SQLITE_PATH", "kataplum.db"),
		CatalogAPIURL:   get("CATALOG_API_URL", "http://localhost:3001"),
		FeedEndpoint:    get("IG_ENDPOINT", ""),
		WhatsAppNumber:  get("WHATSAPP_NUMBER", "5561996291414"),
		WhatsAppBaseURL: get("WHATSAPP_BASE_URL", "https://wa.me"),
		JWTSecret:       get("JWT_SECRET", ""),
		AdminAPIKey:     get("ADMIN_API_KEY", ""),
		CartBackend:     strings.ToLower(get("CART_BACKEND", CartBackendDatabase)),
		RedisAddr:       get("REDIS_ADDR", ""),
	}

	cfg.DatabaseURL = get("DATABASE_URL", "")
	if cfg.DatabaseURL == "" && cfg.DBDriver == "postgres" {
		cfg.DatabaseURL = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			get("DB_HOST", "localhost"), get("DB_USER", "postgres"), get("DB_PASSWORD", ""),
			get("DB_NAME", "kataplum"), get("DB_PORT", "5432"),
		)
	}

	for _, origin := range strings.Split(get("CORS_ORIGINS", "*"), ",") {
		if o := strings.TrimSpace(origin); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	durations := []struct {
		key string
		def time.Duration
		dst *time.Duration
	}{
		{"CATALOG_TIMEOUT", 10 * time.Second, &cfg.CatalogTimeout},
		{"FEED_CACHE_TTL", 30 * time.Minute, &cfg.FeedCacheTTL},
		{"SESSION_TTL", 24 * time.Hour, &cfg.SessionTTL},
		{"SESSION_SWEEP_INTERVAL", time.Hour, &cfg.SessionSweepInterval},
	}
	for _, d := range durations {
		raw := getenv(d.key)
		if strings.TrimSpace(raw) == "" {
			*d.dst = d.def
			continue
		}
		v, err := time.ParseDuration(strings.TrimSpace(raw))
		if err != nil || v <= 0 {
			return Config{}, errors.Errorf("invalid %s %q", d.key, raw)
		}
		*d.dst = v
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return errors.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.CartBackend {
	case CartBackendMemory, CartBackendDatabase:
	case CartBackendRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required when CART_BACKEND=redis")
		}
	default:
		return errors.Errorf("unsupported CART_BACKEND %q", c.CartBackend)
	}
	return nil
}
