package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"8080"`

	// Remote planning service (itinerary, lookups, scenes, photos, PDF).
	PlannerAPIBaseURL string        `env:"PLANNER_API_BASE_URL" envDefault:"http://127.0.0.1:5001"`
	RequestTimeout    time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	DefaultOrigin     string        `env:"DEFAULT_ORIGIN" envDefault:"New York"`

	// local renders PDFs in-process; remote posts to the planning service.
	PDFRenderer string `env:"PDF_RENDERER" envDefault:"local"`
	UseAIScene  bool   `env:"USE_AI_SCENE" envDefault:"true"`

	NominatimBaseURL string `env:"NOMINATIM_BASE_URL" envDefault:"https://nominatim.openstreetmap.org"`
	UserAgent        string `env:"USER_AGENT" envDefault:"trip-planner-service/1.0"`

	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"data/tripctl.db"`

	RedisAddr      string        `env:"REDIS_ADDR"`
	RedisPassword  string        `env:"REDIS_PASSWORD"`
	RedisDB        int           `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix    string        `env:"REDIS_PREFIX" envDefault:"tps"`
	LookupCacheTTL time.Duration `env:"LOOKUP_CACHE_TTL" envDefault:"15m"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	LoggerLevel  string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat string `env:"LOGGER_FORMAT" envDefault:"text"`
}

// Load reads an optional .env file and then the process environment.
// The returned note is non-empty when no .env file was found.
func Load() (Config, string, error) {
	var note string
	if err := godotenv.Load(); err != nil {
		note = "No .env file found (using environment variables)"
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, note, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, note, err
	}
	return cfg, note, nil
}

func (c Config) Validate() error {
	u, err := url.Parse(c.PlannerAPIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: PLANNER_API_BASE_URL %q is not an absolute URL", c.PlannerAPIBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("config: REQUEST_TIMEOUT must be positive")
	}
	switch c.PDFRenderer {
	case "local", "remote":
	default:
		return fmt.Errorf("config: PDF_RENDERER must be local or remote, got %q", c.PDFRenderer)
	}
	if c.LookupCacheTTL < 0 {
		return errors.New("config: LOOKUP_CACHE_TTL must not be negative")
	}
	return nil
}

// BaseURL returns the planning service URL without a trailing slash.
func (c Config) BaseURL() string {
	return strings.TrimRight(c.PlannerAPIBaseURL, "/")
}

func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}
