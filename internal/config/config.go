package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendDynamoDB = "dynamodb"
	BackendPostgres = "postgres"
)

var (
	ErrMissingAPIKey       = errors.New("API_KEY is required")
	ErrUnknownStoreBackend = errors.New("STORE_BACKEND must be one of: dynamodb, postgres")
	ErrMissingRegion       = errors.New("AWS_REGION is required for the dynamodb store")
	ErrMissingDSN          = errors.New("DATABASE_URL is required for the postgres store")
)

type Config struct {
	NewsAPIKey         string
	NewsAPIBaseURL     string
	ServerPort         string
	UpstreamTimeout    time.Duration
	LogLevel           string
	PersistenceEnabled bool
	StoreBackend       string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	DynamoDBEndpoint   string
	TableName          string
	PostgresDSN        string
}

// Load reads the process environment, after merging a .env file from the
// working directory when one exists. Variables already set in the
// environment win over the file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		NewsAPIKey:         getEnv("API_KEY", getEnv("NEWS_API_KEY", "")),
		NewsAPIBaseURL:     strings.TrimRight(getEnv("NEWS_API_BASE_URL", "https://newsapi.org/v2"), "/"),
		ServerPort:         getEnv("PORT", getEnv("SERVER_PORT", "3000")),
		UpstreamTimeout:    getEnvAsDuration("UPSTREAM_TIMEOUT", 0),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		PersistenceEnabled: getEnvAsBool("PERSISTENCE_ENABLED", false),
		StoreBackend:       strings.ToLower(getEnv("STORE_BACKEND", BackendDynamoDB)),
		AWSRegion:          getEnv("AWS_REGION", ""),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoDBEndpoint:   getEnv("DYNAMODB_ENDPOINT", ""),
		TableName:          getEnv("DYNAMODB_TABLE", "NewsArticles"),
		PostgresDSN:        getEnv("DATABASE_URL", ""),
	}
}

// Validate reports the first setting that would leave the service unable to
// answer requests. Store settings are only checked when persistence is on.
func (c *Config) Validate() error {
	if c.NewsAPIKey == "" {
		return ErrMissingAPIKey
	}

	if !c.PersistenceEnabled {
		return nil
	}

	switch c.StoreBackend {
	case BackendDynamoDB:
		if c.AWSRegion == "" {
			return ErrMissingRegion
		}
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return ErrMissingDSN
		}
	default:
		return ErrUnknownStoreBackend
	}

	return nil
}

func (c *Config) Addr() string {
	return ":" + c.ServerPort
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
