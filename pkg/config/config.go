package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config holds the configuration for the Berlin Clock display agent
type Config struct {
	// MQTT configuration
	MQTTBroker   string `yaml:"mqtt_broker"`
	MQTTPort     int    `yaml:"mqtt_port"`
	MQTTUser     string `yaml:"mqtt_user"`
	MQTTPassword string `yaml:"mqtt_password"`
	MQTTClientID string `yaml:"mqtt_client_id"`

	// Redis configuration
	RedisHost     string `yaml:"redis_host"`
	RedisPort     int    `yaml:"redis_port"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	// Service configuration
	ServiceName string `yaml:"service_name"`
	HealthPort  int    `yaml:"health_port"`
	LogLevel    string `yaml:"log_level"`

	// Display configuration
	DisplayID         string `yaml:"display_id"`
	TimeZone          string `yaml:"time_zone"`
	PublishIntervalMs int    `yaml:"publish_interval_ms"`
	RetainState       bool   `yaml:"retain_state"`
	StateTTLSec       int    `yaml:"state_ttl_sec"`
	HistoryLength     int    `yaml:"history_length"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		MQTTBroker:        "localhost",
		MQTTPort:          1883,
		RedisHost:         "localhost",
		RedisPort:         6379,
		RedisDB:           0,
		ServiceName:       "berlin-clock-agent",
		HealthPort:        8080,
		LogLevel:          "info",
		DisplayID:         "hallway",
		TimeZone:          "Europe/Berlin",
		PublishIntervalMs: 250,
		RetainState:       true,
		StateTTLSec:       3600,
		HistoryLength:     60,
	}
}

// LoadFromFile overlays values from a YAML file. Keys missing from the file keep their current values
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return nil
}

// LoadFromEnv loads configuration from environment variables with JEEVES_ prefix
func (c *Config) LoadFromEnv() {
	// MQTT configuration
	if v := os.Getenv("JEEVES_MQTT_BROKER"); v != "" {
		c.MQTTBroker = v
	}
	if v := os.Getenv("JEEVES_MQTT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.MQTTPort = port
		}
	}
	if v := os.Getenv("JEEVES_MQTT_USER"); v != "" {
		c.MQTTUser = v
	}
	if v := os.Getenv("JEEVES_MQTT_PASSWORD"); v != "" {
		c.MQTTPassword = v
	}
	if v := os.Getenv("JEEVES_MQTT_CLIENT_ID"); v != "" {
		c.MQTTClientID = v
	}

	// Redis configuration
	if v := os.Getenv("JEEVES_REDIS_HOST"); v != "" {
		c.RedisHost = v
	}
	if v := os.Getenv("JEEVES_REDIS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.RedisPort = port
		}
	}
	if v := os.Getenv("JEEVES_REDIS_PASSWORD"); v != "" {
		c.RedisPassword = v
	}
	if v := os.Getenv("JEEVES_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.RedisDB = db
		}
	}

	// Service configuration
	if v := os.Getenv("JEEVES_SERVICE_NAME"); v != "" {
		c.ServiceName = v
	}
	if v := os.Getenv("JEEVES_HEALTH_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.HealthPort = port
		}
	}
	if v := os.Getenv("JEEVES_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	// Display configuration
	if v := os.Getenv("JEEVES_DISPLAY_ID"); v != "" {
		c.DisplayID = v
	}
	if v := os.Getenv("JEEVES_TIME_ZONE"); v != "" {
		c.TimeZone = v
	}
	if v := os.Getenv("JEEVES_PUBLISH_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			c.PublishIntervalMs = ms
		}
	}
	if v := os.Getenv("JEEVES_RETAIN_STATE"); v != "" {
		if retain, err := strconv.ParseBool(v); err == nil {
			c.RetainState = retain
		}
	}
	if v := os.Getenv("JEEVES_STATE_TTL_SEC"); v != "" {
		if ttl, err := strconv.Atoi(v); err == nil {
			c.StateTTLSec = ttl
		}
	}
	if v := os.Getenv("JEEVES_HISTORY_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.HistoryLength = n
		}
	}
}

// LoadFromFlags parses command-line flags and overrides config values
func (c *Config) LoadFromFlags() {
	c.RegisterFlags(pflag.CommandLine)
	pflag.Parse()
}

// RegisterFlags binds every config value to a flag in fs, using current values as defaults
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	// MQTT flags
	fs.StringVar(&c.MQTTBroker, "mqtt-broker", c.MQTTBroker, "MQTT broker hostname")
	fs.IntVar(&c.MQTTPort, "mqtt-port", c.MQTTPort, "MQTT broker port")
	fs.StringVar(&c.MQTTUser, "mqtt-user", c.MQTTUser, "MQTT username")
	fs.StringVar(&c.MQTTPassword, "mqtt-password", c.MQTTPassword, "MQTT password")
	fs.StringVar(&c.MQTTClientID, "mqtt-client-id", c.MQTTClientID, "MQTT client ID")

	// Redis flags
	fs.StringVar(&c.RedisHost, "redis-host", c.RedisHost, "Redis hostname")
	fs.IntVar(&c.RedisPort, "redis-port", c.RedisPort, "Redis port")
	fs.StringVar(&c.RedisPassword, "redis-password", c.RedisPassword, "Redis password")
	fs.IntVar(&c.RedisDB, "redis-db", c.RedisDB, "Redis database number")

	// Service flags
	fs.StringVar(&c.ServiceName, "service-name", c.ServiceName, "Service name")
	fs.IntVar(&c.HealthPort, "health-port", c.HealthPort, "Health check HTTP port")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (debug, info, warn, error)")

	// Display flags
	fs.StringVar(&c.DisplayID, "display-id", c.DisplayID, "Display identifier used in topics and keys")
	fs.StringVar(&c.TimeZone, "time-zone", c.TimeZone, "IANA time zone shown on the clock")
	fs.IntVar(&c.PublishIntervalMs, "publish-interval-ms", c.PublishIntervalMs, "How often the clock is sampled (ms)")
	fs.BoolVar(&c.RetainState, "retain-state", c.RetainState, "Publish lamp state as a retained MQTT message")
	fs.IntVar(&c.StateTTLSec, "state-ttl-sec", c.StateTTLSec, "TTL of the lamp state stored in Redis (seconds)")
	fs.IntVar(&c.HistoryLength, "history-length", c.HistoryLength, "Number of recent lamp states kept in Redis")
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT broker is required")
	}
	if c.MQTTPort <= 0 || c.MQTTPort > 65535 {
		return fmt.Errorf("MQTT port must be between 1 and 65535")
	}
	if c.RedisHost == "" {
		return fmt.Errorf("Redis host is required")
	}
	if c.RedisPort <= 0 || c.RedisPort > 65535 {
		return fmt.Errorf("Redis port must be between 1 and 65535")
	}
	if c.HealthPort <= 0 || c.HealthPort > 65535 {
		return fmt.Errorf("Health port must be between 1 and 65535")
	}
	if c.ServiceName == "" {
		return fmt.Errorf("Service name is required")
	}
	if c.DisplayID == "" {
		return fmt.Errorf("Display ID is required")
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("invalid time zone %q: %w", c.TimeZone, err)
	}
	if c.PublishIntervalMs <= 0 || c.PublishIntervalMs > 1000 {
		return fmt.Errorf("publish interval must be between 1 and 1000 ms")
	}
	if c.StateTTLSec < 0 {
		return fmt.Errorf("state TTL must not be negative")
	}
	if c.HistoryLength < 0 {
		return fmt.Errorf("history length must not be negative")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Location returns the configured time zone. Call Validate first
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// PublishInterval returns the sampling interval as a duration
func (c *Config) PublishInterval() time.Duration {
	return time.Duration(c.PublishIntervalMs) * time.Millisecond
}

// StateTTL returns the Redis TTL as a duration. Zero means no expiry
func (c *Config) StateTTL() time.Duration {
	return time.Duration(c.StateTTLSec) * time.Second
}

// MQTTAddress returns the full MQTT broker address
func (c *Config) MQTTAddress() string {
	return fmt.Sprintf("tcp://%s:%d", c.MQTTBroker, c.MQTTPort)
}

// RedisAddress returns the full Redis address
func (c *Config) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}
