package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Wikipedia WikipediaConfig
	Fetch     FetchConfig
	Logging   LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	GRPCPort      string
	ServerTimeout time.Duration
	MetricsPort   string
}

// WikipediaConfig holds Wikipedia API configuration
type WikipediaConfig struct {
	// APIURL is the api.php endpoint; "{lang}" is replaced by the language code.
	APIURL string
	// ArticleURL is the article link template; "{lang}" and "{title}" are replaced.
	ArticleURL         string
	UserAgent          string
	RequestTimeout     time.Duration
	InsecureSkipVerify bool
}

// FetchConfig holds the defaults applied to every fetch request
type FetchConfig struct {
	Language   string
	Languages  []string
	MinLength  int
	MaxLength  int
	MaxRetries int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

const (
	DefaultAPIURL     = "https://{lang}.wikipedia.org/w/api.php"
	DefaultArticleURL = "https://{lang}.wikipedia.org/wiki/{title}"
	DefaultUserAgent  = "random-wiki/1.0 (https://github.com/farhapartex/random-wiki)"
)

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			GRPCPort:      getEnv("GRPC_SERVER_PORT", "50051"),
			ServerTimeout: getDurationEnv("SERVER_TIMEOUT_MS", 30000) * time.Millisecond,
			MetricsPort:   os.Getenv("METRICS_PORT"),
		},
		Wikipedia: WikipediaConfig{
			APIURL:             getEnv("WIKIPEDIA_API_URL", DefaultAPIURL),
			ArticleURL:         getEnv("WIKIPEDIA_ARTICLE_URL", DefaultArticleURL),
			UserAgent:          getEnv("WIKIPEDIA_USER_AGENT", DefaultUserAgent),
			RequestTimeout:     getDurationEnv("WIKIPEDIA_REQUEST_TIMEOUT_MS", 10000) * time.Millisecond,
			InsecureSkipVerify: getBoolEnv("WIKIPEDIA_INSECURE_SKIP_VERIFY", false),
		},
		Fetch: FetchConfig{
			Language:   getEnv("FETCH_LANGUAGE", "en"),
			Languages:  getListEnv("FETCH_LANGUAGES", []string{"en", "ko", "ja", "de", "fr", "es", "it", "pt", "ru", "zh"}),
			MinLength:  getIntEnv("FETCH_MIN_LENGTH", 200),
			MaxLength:  getIntEnv("FETCH_MAX_LENGTH", 3000),
			MaxRetries: getIntEnv("FETCH_MAX_RETRIES", 5),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	config.Fetch.normalize()

	// METRICS_PORT may be set to an empty string on purpose to disable the endpoint
	if _, ok := os.LookupEnv("METRICS_PORT"); !ok {
		config.Server.MetricsPort = "9090"
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate checks that the configured values are usable
func (c *Config) Validate() error {
	if !strings.Contains(c.Wikipedia.APIURL, "{lang}") {
		log.Warn().Str("url", c.Wikipedia.APIURL).Msg("WIKIPEDIA_API_URL has no {lang} placeholder, every language hits the same endpoint")
	}

	if !strings.Contains(c.Wikipedia.ArticleURL, "{title}") {
		return fmt.Errorf("WIKIPEDIA_ARTICLE_URL must contain a {title} placeholder")
	}

	if c.Wikipedia.InsecureSkipVerify {
		log.Warn().Msg("WIKIPEDIA_INSECURE_SKIP_VERIFY is enabled, TLS certificates will not be verified")
	}

	if len(c.Fetch.Languages) == 0 {
		return fmt.Errorf("FETCH_LANGUAGES cannot be empty")
	}

	for _, lang := range c.Fetch.Languages {
		if _, err := language.ParseBase(lang); err != nil {
			return fmt.Errorf("invalid language %q in FETCH_LANGUAGES: %w", lang, err)
		}
	}

	if !c.Fetch.Supports(c.Fetch.Language) {
		return fmt.Errorf("FETCH_LANGUAGE %q is not listed in FETCH_LANGUAGES", c.Fetch.Language)
	}

	if c.Fetch.MaxRetries < 1 {
		return fmt.Errorf("FETCH_MAX_RETRIES must be at least 1, got %d", c.Fetch.MaxRetries)
	}

	if c.Fetch.MinLength < 0 {
		return fmt.Errorf("FETCH_MIN_LENGTH cannot be negative, got %d", c.Fetch.MinLength)
	}

	if c.Fetch.MaxLength < c.Fetch.MinLength || c.Fetch.MaxLength <= 0 {
		return fmt.Errorf("FETCH_MAX_LENGTH (%d) must be positive and not below FETCH_MIN_LENGTH (%d)",
			c.Fetch.MaxLength, c.Fetch.MinLength)
	}

	return nil
}

// normalize lower-cases language codes so they compare equal to request input
func (f *FetchConfig) normalize() {
	f.Language = strings.ToLower(strings.TrimSpace(f.Language))
	for i, l := range f.Languages {
		f.Languages[i] = strings.ToLower(l)
	}
}

// Supports reports whether lang is one of the configured languages
func (f FetchConfig) Supports(lang string) bool {
	for _, l := range f.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// Helper functions to get environment variables with defaults

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).Msg("invalid integer value, using default")
		return defaultValue
	}

	return value
}

func getBoolEnv(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Bool("default", defaultValue).Msg("invalid boolean value, using default")
		return defaultValue
	}

	return value
}

func getDurationEnv(key string, defaultValue int) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return time.Duration(defaultValue)
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).Msg("invalid duration value, using default")
		return time.Duration(defaultValue)
	}

	return time.Duration(value)
}

func getListEnv(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var values []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}

	return values
}
