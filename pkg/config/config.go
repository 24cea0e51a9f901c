package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Upstream UpstreamConfig
	Cache    CacheConfig
	Redis    RedisConfig
	Resolver ResolverConfig
	CORS     CORSConfig
	Log      LogConfig
}

// UpstreamConfig points the gateway at the legacy booking API.
type UpstreamConfig struct {
	BaseURL          string
	Timeout          time.Duration
	RetryMaxAttempts int
	RetryBackoff     time.Duration
}

// CacheConfig tunes the bounded TTL caches.
type CacheConfig struct {
	Backend         string
	RosterTTL       time.Duration
	BookingTTL      time.Duration
	AvailabilityTTL time.Duration
	// StaleFactor stretches the physical retention of entries past their
	// logical TTL so the serve-stale-on-error path has something to serve.
	StaleFactor int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// ResolverConfig governs booking-form resolution sessions.
type ResolverConfig struct {
	SessionTTL time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
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
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Upstream = UpstreamConfig{
		BaseURL:          strings.TrimRight(v.GetString("UPSTREAM_BASE_URL"), "/"),
		Timeout:          parseDuration(v.GetString("UPSTREAM_TIMEOUT"), 10*time.Second),
		RetryMaxAttempts: v.GetInt("UPSTREAM_RETRY_MAX_ATTEMPTS"),
		RetryBackoff:     parseDuration(v.GetString("UPSTREAM_RETRY_BACKOFF"), 200*time.Millisecond),
	}

	cfg.Cache = CacheConfig{
		Backend:         v.GetString("CACHE_BACKEND"),
		RosterTTL:       parseDuration(v.GetString("CACHE_ROSTER_TTL"), 5*time.Minute),
		BookingTTL:      parseDuration(v.GetString("CACHE_BOOKING_TTL"), 5*time.Minute),
		AvailabilityTTL: parseDuration(v.GetString("CACHE_AVAILABILITY_TTL"), 10*time.Minute),
		StaleFactor:     v.GetInt("CACHE_STALE_FACTOR"),
	}
	if cfg.Cache.StaleFactor < 1 {
		cfg.Cache.StaleFactor = 3
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Resolver = ResolverConfig{
		SessionTTL: parseDuration(v.GetString("RESOLVER_SESSION_TTL"), 30*time.Minute),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("UPSTREAM_BASE_URL", "http://localhost:3000/api")
	v.SetDefault("UPSTREAM_TIMEOUT", "10s")
	v.SetDefault("UPSTREAM_RETRY_MAX_ATTEMPTS", 3)
	v.SetDefault("UPSTREAM_RETRY_BACKOFF", "200ms")

	v.SetDefault("CACHE_BACKEND", CacheBackendMemory)
	v.SetDefault("CACHE_ROSTER_TTL", "5m")
	v.SetDefault("CACHE_BOOKING_TTL", "5m")
	v.SetDefault("CACHE_AVAILABILITY_TTL", "10m")
	v.SetDefault("CACHE_STALE_FACTOR", 3)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("RESOLVER_SESSION_TTL", "30m")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
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
