package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Cache        CacheConfig
	Gamification GamificationConfig
	Logging      LoggingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetime    time.Duration
	ConnMaxIdleTime    time.Duration
	SlowQueryThreshold time.Duration
	ConnectTimeout     time.Duration
	MigrationsPath     string
}

// CacheConfig holds cache configuration
type CacheConfig struct {
	Provider       string // "memory", "redis"
	RedisURL       string
	RedisDB        int
	RedisPassword  string
	PoolSize       int
	DefaultTTL     time.Duration
	LeaderboardTTL time.Duration
}

// GamificationConfig holds gamification engine configuration
type GamificationConfig struct {
	// Time zone for calendar-day streak boundaries
	Timezone string

	// Rank gates: rank-based badges are only evaluated when the user's
	// rank is within these windows
	GlobalRankGate      int
	InstitutionRankGate int
	ProgramRankGate     int

	// Upper bound on how many days a streak walk may look back
	StreakMaxLookbackDays int

	// Default leaderboard page size
	LeaderboardLimit int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from the environment, loading a .env file
// first outside of production.
func Load() (*Config, error) {
	env := getEnv("GO_ENV", "development")
	if env != "production" {
		envFile := fmt.Sprintf(".env.%s", env)
		if _, err := os.Stat(envFile); err == nil {
			_ = godotenv.Load(envFile)
		} else {
			_ = godotenv.Load()
		}
	}

	config := &Config{
		Server:       loadServerConfig(env),
		Database:     loadDatabaseConfig(),
		Cache:        loadCacheConfig(),
		Gamification: loadGamificationConfig(),
		Logging:      loadLoggingConfig(env),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadServerConfig(env string) ServerConfig {
	return ServerConfig{
		Port:         getEnv("PORT", "9000"),
		Host:         getEnv("HOST", "0.0.0.0"),
		Environment:  env,
		ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 60*time.Second),
	}
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URL:                getEnv("DATABASE_URL", ""),
		MaxOpenConns:       getIntEnv("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:       getIntEnv("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime:    getDurationEnv("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		ConnMaxIdleTime:    getDurationEnv("DB_CONN_MAX_IDLE_TIME", 10*time.Minute),
		SlowQueryThreshold: getDurationEnv("DB_SLOW_QUERY_THRESHOLD", 100*time.Millisecond),
		ConnectTimeout:     getDurationEnv("DB_CONNECT_TIMEOUT", 10*time.Second),
		MigrationsPath:     getEnv("DB_MIGRATIONS_PATH", "migrations"),
	}
}

func loadCacheConfig() CacheConfig {
	return CacheConfig{
		Provider:       getEnv("CACHE_PROVIDER", "memory"),
		RedisURL:       getEnv("REDIS_URL", ""),
		RedisDB:        getIntEnv("REDIS_DB", 0),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		PoolSize:       getIntEnv("REDIS_POOL_SIZE", 10),
		DefaultTTL:     getDurationEnv("CACHE_DEFAULT_TTL", 15*time.Minute),
		LeaderboardTTL: getDurationEnv("CACHE_LEADERBOARD_TTL", 1*time.Minute),
	}
}

func loadGamificationConfig() GamificationConfig {
	return GamificationConfig{
		Timezone:              getEnv("GAMIFICATION_TIMEZONE", "UTC"),
		GlobalRankGate:        getIntEnv("GAMIFICATION_GLOBAL_RANK_GATE", 50),
		InstitutionRankGate:   getIntEnv("GAMIFICATION_INSTITUTION_RANK_GATE", 10),
		ProgramRankGate:       getIntEnv("GAMIFICATION_PROGRAM_RANK_GATE", 5),
		StreakMaxLookbackDays: getIntEnv("GAMIFICATION_STREAK_MAX_LOOKBACK_DAYS", 366),
		LeaderboardLimit:      getIntEnv("GAMIFICATION_LEADERBOARD_LIMIT", 25),
	}
}

func loadLoggingConfig(env string) LoggingConfig {
	return LoggingConfig{
		Level:  getEnv("LOG_LEVEL", getDefaultLogLevel(env)),
		Format: getEnv("LOG_FORMAT", "json"),
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Cache.Provider == "redis" && c.Cache.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required when CACHE_PROVIDER=redis")
	}
	if _, err := time.LoadLocation(c.Gamification.Timezone); err != nil {
		return fmt.Errorf("invalid GAMIFICATION_TIMEZONE %q: %w", c.Gamification.Timezone, err)
	}
	if c.Gamification.GlobalRankGate <= 0 || c.Gamification.InstitutionRankGate <= 0 || c.Gamification.ProgramRankGate <= 0 {
		return fmt.Errorf("rank gates must be positive")
	}
	return nil
}

// Location resolves the configured gamification time zone.
func (c *GamificationConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getDefaultLogLevel(env string) string {
	if env == "production" {
		return "info"
	}
	return "debug"
}
