package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	APIKey      string // API key for service-to-service authentication
	LogLevel    string
	LogFormat   string
	Environment string
	Version     string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	RedisAddr     string // empty disables the leaderboard invalidation signal
	RedisPassword string
	RedisDB       int

	OpenAIKey     string
	OpenAIModel   string
	OracleTimeout time.Duration

	SweepSchedule string // cron expression for the lifecycle sweep
	DailyReward   int    // points awarded per daily claim

	SeedDemoData bool
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:        getEnv("API_KEY", ""),
		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		Environment:   getEnv("ENVIRONMENT", "dev"),
		Version:       getEnv("VERSION", "dev"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBName:        getEnv("DB_NAME", "marketengine"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", DefaultOracleModel),
		SweepSchedule: getEnv("SWEEP_SCHEDULE", DefaultSweepSchedule),
	}

	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	cfg.RedisDB, err = getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	cfg.DailyReward, err = getEnvInt("DAILY_REWARD_POINTS", DefaultDailyReward)
	if err != nil {
		return nil, err
	}
	if cfg.DailyReward <= 0 {
		return nil, fmt.Errorf("DAILY_REWARD_POINTS must be positive, got %d", cfg.DailyReward)
	}

	timeoutSecs, err := getEnvInt("ORACLE_TIMEOUT_SECONDS", DefaultOracleTimeoutSeconds)
	if err != nil {
		return nil, err
	}
	cfg.OracleTimeout = time.Duration(timeoutSecs) * time.Second

	cfg.SeedDemoData = getEnv("SEED_DEMO_DATA", "false") == "true"

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
