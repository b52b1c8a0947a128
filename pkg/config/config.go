package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Redis   RedisConfig
	CORS    CORSConfig
	Log     LogConfig
	Cache   CacheConfig
	Layout  LayoutConfig
	Catalog CatalogConfig
	Exports ExportsConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CacheConfig toggles Redis-backed caching of search results and layouts.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	// WarmupWorkers projects every layout into the cache at start-up; 0 disables it.
	WarmupWorkers int
}

// LayoutConfig holds the default projection constants for seating charts.
type LayoutConfig struct {
	CellSize float64
	Padding  float64
}

// CatalogConfig drives the reference data generator run at start-up.
type CatalogConfig struct {
	Seed          int64
	Students      int
	Classrooms    int
	Exams         int
	ExamStartDate time.Time
}

// ExportsConfig gates roster and seating chart downloads.
type ExportsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("ENABLE_CACHE"),
		TTL:     parseDuration(v.GetString("CACHE_TTL"), 10*time.Minute),

		WarmupWorkers: v.GetInt("CACHE_WARMUP_WORKERS"),
	}

	cfg.Layout = LayoutConfig{
		CellSize: positiveFloat(v.GetFloat64("LAYOUT_CELL_SIZE"), 60),
		Padding:  nonNegativeFloat(v.GetFloat64("LAYOUT_PADDING"), 40),
	}

	cfg.Catalog = CatalogConfig{
		Seed:          v.GetInt64("CATALOG_SEED"),
		Students:      positiveInt(v.GetInt("CATALOG_STUDENTS"), 120),
		Classrooms:    positiveInt(v.GetInt("CATALOG_CLASSROOMS"), 3),
		Exams:         positiveInt(v.GetInt("CATALOG_EXAMS"), 4),
		ExamStartDate: parseDate(v.GetString("CATALOG_EXAM_START_DATE"), time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)),
	}

	cfg.Exports = ExportsConfig{
		Enabled: v.GetBool("ENABLE_EXPORTS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("CACHE_TTL", "10m")
	v.SetDefault("CACHE_WARMUP_WORKERS", 2)

	v.SetDefault("LAYOUT_CELL_SIZE", 60)
	v.SetDefault("LAYOUT_PADDING", 40)

	v.SetDefault("CATALOG_SEED", 42)
	v.SetDefault("CATALOG_STUDENTS", 120)
	v.SetDefault("CATALOG_CLASSROOMS", 3)
	v.SetDefault("CATALOG_EXAMS", 4)
	v.SetDefault("CATALOG_EXAM_START_DATE", "2025-03-10")

	v.SetDefault("ENABLE_EXPORTS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func parseDate(raw string, fallback time.Time) time.Time {
	if raw == "" {
		return fallback
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return fallback
	}
	return d
}

func positiveInt(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}

func positiveFloat(value, fallback float64) float64 {
	if value <= 0 {
		return fallback
	}
	return value
}

func nonNegativeFloat(value, fallback float64) float64 {
	if value < 0 {
		return fallback
	}
	return value
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
