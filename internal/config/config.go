package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPlantName       = "Tomato Plant"
	DefaultReplyDelay      = 1500 * time.Millisecond
	DefaultHistoryLimit    = 10
	DefaultWeatherLocation = "Your Farm"
)

// Config aggregates every setting of the service.
type Config struct {
	Server    ServerConfig
	Assistant AssistantConfig
	Insights  InsightConfig
	Log       LogConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	assistant, err := loadAssistantConfig()
	if err != nil {
		return nil, err
	}

	logCfg, err := loadLogConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:    server,
		Assistant: assistant,
		Insights:  InsightConfig{WeatherLocation: getEnvOrDefault("FARMAI_WEATHER_LOCATION", DefaultWeatherLocation)},
		Log:       logCfg,
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}
	return ParseAddr(port)
}

// ParseAddr accepts a bare port ("8080") or a host:port pair (":8080",
// "127.0.0.1:8080").
func ParseAddr(value string) (ServerConfig, error) {
	value = strings.TrimSpace(value)
	if strings.Contains(value, ":") {
		return ServerConfig{Addr: value}, nil
	}

	if value == "" || strings.Contains(value, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", value)
	}
	if _, err := strconv.Atoi(value); err != nil {
		return ServerConfig{}, fmt.Errorf("invalid PORT value %q: %w", value, err)
	}

	return ServerConfig{Addr: ":" + value}, nil
}

// AssistantConfig describes the scripted assistant.
type AssistantConfig struct {
	StreamResponse bool
	ReplyDelay     time.Duration
	DefaultPlant   string
	HistoryLimit   int
	CatalogPath    string
}

func loadAssistantConfig() (AssistantConfig, error) {
	stream, err := parseBoolEnv("FARMAI_STREAM", true)
	if err != nil {
		return AssistantConfig{}, err
	}

	delay, err := parseDurationEnv("FARMAI_REPLY_DELAY", DefaultReplyDelay)
	if err != nil {
		return AssistantConfig{}, err
	}
	if delay < 0 {
		return AssistantConfig{}, fmt.Errorf("invalid FARMAI_REPLY_DELAY value %q: must not be negative", delay)
	}

	historyLimit := DefaultHistoryLimit
	if override, err := parseOptionalIntEnv("FARMAI_HISTORY_LIMIT"); err != nil {
		return AssistantConfig{}, err
	} else if override != nil {
		historyLimit = max(*override, 1)
	}

	return AssistantConfig{
		StreamResponse: stream,
		ReplyDelay:     delay,
		DefaultPlant:   getEnvOrDefault("FARMAI_DEFAULT_PLANT", DefaultPlantName),
		HistoryLimit:   historyLimit,
		CatalogPath:    strings.TrimSpace(os.Getenv("FARMAI_CATALOG")),
	}, nil
}

// InsightConfig describes the mocked market and weather widgets.
type InsightConfig struct {
	WeatherLocation string
}

// LogConfig selects the zap logger flavour.
type LogConfig struct {
	Level  string
	Format string
}

func loadLogConfig() (LogConfig, error) {
	level := strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info"))
	switch level {
	case "debug", "info", "warn", "error":
	default:
		return LogConfig{}, fmt.Errorf("invalid LOG_LEVEL value: %q", level)
	}

	format := strings.ToLower(getEnvOrDefault("LOG_FORMAT", "json"))
	if format != "json" && format != "console" {
		return LogConfig{}, fmt.Errorf("invalid LOG_FORMAT value: %q", format)
	}

	return LogConfig{Level: level, Format: format}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
