package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment
// variables. It is the single source of truth for runtime parameters;
// table names stay with their repositories.
type Config struct {
	Port string
	Env  string

	AWS    AWSConfig
	Redis  RedisConfig
	Wizard WizardConfig
}

// AWSConfig contains DynamoDB connection parameters. Endpoint is only set
// when pointing at a local DynamoDB container.
type AWSConfig struct {
	Region           string
	AccessKeyID      string
	SecretAccessKey  string
	DynamoDBEndpoint string
}

// RedisConfig contains Redis connection parameters for the wizard draft
// store.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// WizardConfig tunes draft persistence.
type WizardConfig struct {
	DraftTTL     time.Duration
	SaveDebounce time.Duration
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it is loaded first.
func Load() (*Config, error) {
	// Missing .env is fine; production relies on real environment variables.
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),
		AWS: AWSConfig{
			Region:           getEnv("AWS_REGION", "eu-west-1"),
			AccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", "local"),
			SecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", "local"),
			DynamoDBEndpoint: getEnv("DYNAMODB_ENDPOINT", ""),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "redis"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
	}

	var err error
	if cfg.Wizard.DraftTTL, err = parseDurationEnv("WIZARD_DRAFT_TTL", "720h"); err != nil {
		return nil, fmt.Errorf("invalid WIZARD_DRAFT_TTL: %w", err)
	}
	if cfg.Wizard.SaveDebounce, err = parseDurationEnv("WIZARD_SAVE_DEBOUNCE", "2s"); err != nil {
		return nil, fmt.Errorf("invalid WIZARD_SAVE_DEBOUNCE: %w", err)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
