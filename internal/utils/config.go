package utils

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServerPort string
	Auth       AuthConfig
	Mongo      MongoConfig
	GitHub     GitHubConfig
	Logging    LoggingConfig
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

type GitHubConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

type LoggingConfig struct {
	Level        string
	Encoding     string
	Development  bool
	EnableCaller bool
	ServiceName  string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: envOrDefault("PORT", "5000"),
		Auth: AuthConfig{
			JWTSecret: envOrDefault("JWT_SECRET", "dev-secret"),
			// The legacy deployment issued tokens valid for 360000 seconds.
			TokenTTL: parseDuration(envOrDefault("TOKEN_TTL", "100h"), 100*time.Hour),
		},
		Mongo: MongoConfig{
			URI:            envOrDefault("MONGO_URI", "mongodb://localhost:27017"),
			Database:       envOrDefault("MONGO_DATABASE", "devconnect"),
			ConnectTimeout: parseDuration(envOrDefault("MONGO_CONNECT_TIMEOUT", "5s"), 5*time.Second),
		},
		GitHub: GitHubConfig{
			BaseURL:      envOrDefault("GITHUB_API_BASE", "https://api.github.com"),
			ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
			ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
			Timeout:      parseDuration(envOrDefault("GITHUB_TIMEOUT", "15s"), 15*time.Second),
		},
		Logging: LoggingConfig{
			Level:        strings.ToLower(envOrDefault("LOG_LEVEL", "info")),
			Encoding:     strings.ToLower(envOrDefault("LOG_ENCODING", "console")),
			Development:  parseBool(envOrDefault("LOG_DEVELOPMENT", "false"), false),
			EnableCaller: parseBool(envOrDefault("LOG_CALLER", "false"), false),
			ServiceName:  envOrDefault("SERVICE_NAME", "devconnect-api"),
		},
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func parseBool(value string, fallback bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return v
}
