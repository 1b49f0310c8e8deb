// Package config loads the YAML configuration files of the propertyhub
// services. Values of the form ${VAR} are expanded from the environment,
// and an optional .env file is read first for local runs.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LogConfig selects the zap level and encoding.
type LogConfig struct {
	Level  string `yaml:"LEVEL"`
	Format string `yaml:"FORMAT"`
}

// DatabaseConfig holds the PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"HOST"`
	Port     int    `yaml:"PORT"`
	User     string `yaml:"USER"`
	Password string `yaml:"PASSWORD"`
	Name     string `yaml:"NAME"`
	SSLMode  string `yaml:"SSLMODE"`
}

// KafkaConfig holds broker addresses and the component events topic.
type KafkaConfig struct {
	Brokers []string `yaml:"BROKERS"`
	Topic   string   `yaml:"TOPIC"`
	GroupID string   `yaml:"GROUP_ID"`
}

// PropertyBase is the configuration of cmd/propertybase.
type PropertyBase struct {
	HTTPPort  int            `yaml:"HTTP_PORT"`
	JWTSecret string         `yaml:"JWT_SECRET"`
	Log       LogConfig      `yaml:"LOG"`
	Database  DatabaseConfig `yaml:"DATABASE"`
	Kafka     KafkaConfig    `yaml:"KAFKA"`
}

// UpstreamConfig describes an HTTP service core talks to.
type UpstreamConfig struct {
	BaseURL string        `yaml:"BASE_URL"`
	Timeout time.Duration `yaml:"TIMEOUT"`
	Retries int           `yaml:"RETRIES"`
}

// RedisConfig enables the core read cache when Addr is set.
type RedisConfig struct {
	Addr     string        `yaml:"ADDR"`
	Password string        `yaml:"PASSWORD"`
	DB       int           `yaml:"DB"`
	TTL      time.Duration `yaml:"TTL"`
}

// RateLimitConfig bounds requests per client.
type RateLimitConfig struct {
	RequestsPerSecond int `yaml:"REQUESTS_PER_SECOND"`
	Burst             int `yaml:"BURST"`
}

// Core is the configuration of cmd/core.
type Core struct {
	HTTPPort     int             `yaml:"HTTP_PORT"`
	JWTSecret    string          `yaml:"JWT_SECRET"`
	ServiceName  string          `yaml:"SERVICE_NAME"`
	Log          LogConfig       `yaml:"LOG"`
	PropertyBase UpstreamConfig  `yaml:"PROPERTY_BASE"`
	Leasing      UpstreamConfig  `yaml:"LEASING"`
	Redis        RedisConfig     `yaml:"REDIS"`
	Kafka        KafkaConfig     `yaml:"KAFKA"`
	RateLimit    RateLimitConfig `yaml:"RATE_LIMIT"`
	CORSOrigins  []string        `yaml:"CORS_ORIGINS"`
}

// Load reads the YAML file at path into out after expanding environment
// references. A missing .env file is not an error.
func Load(path string, out any) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(raw))), out); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Path returns the config file named by envVar, or fallback.
func Path(envVar, fallback string) string {
	if p := os.Getenv(envVar); p != "" {
		return p
	}
	return fallback
}

// Defaults fills zero values of a PropertyBase config.
func (c *PropertyBase) Defaults() {
	if c.HTTPPort == 0 {
		c.HTTPPort = 8090
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "propertybase.components"
	}
	c.Kafka.Brokers = compact(c.Kafka.Brokers)
}

// Defaults fills zero values of a Core config.
func (c *Core) Defaults() {
	if c.HTTPPort == 0 {
		c.HTTPPort = 8080
	}
	if c.ServiceName == "" {
		c.ServiceName = "core"
	}
	for _, u := range []*UpstreamConfig{&c.PropertyBase, &c.Leasing} {
		if u.Timeout == 0 {
			u.Timeout = 10 * time.Second
		}
	}
	if c.Redis.TTL == 0 {
		c.Redis.TTL = 5 * time.Minute
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "core-cache"
	}
	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = 50
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 100
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "propertybase.components"
	}
	c.Kafka.Brokers = compact(c.Kafka.Brokers)
	c.CORSOrigins = compact(c.CORSOrigins)
}

// compact drops the empty entries an unset ${VAR} leaves in a list.
func compact(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
