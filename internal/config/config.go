package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application parameters. It is built once in main and
// passed to components at construction time; nothing reads it as a global.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Auth     AuthConfig     `yaml:"auth"`
}

type HTTPConfig struct {
	Port             int `yaml:"port"`
	ShutdownGraceSec int `yaml:"shutdown_grace_seconds"`
}

func (h HTTPConfig) ShutdownGrace() time.Duration {
	return time.Duration(h.ShutdownGraceSec) * time.Second
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
	MaxConns int    `yaml:"max_conns"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s&pool_max_conns=%d",
		d.User, d.Password, d.Host, d.Port, d.Database, d.SSLMode, d.MaxConns)
}

type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	VHost    string `yaml:"vhost"`
}

// Enabled reports whether a broker is configured at all. The server runs
// without one; order events are simply not published then.
func (r RabbitMQConfig) Enabled() bool { return r.Host != "" }

func (r RabbitMQConfig) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/%s", r.User, r.Password, r.Host, r.Port, r.VHost)
}

type AuthConfig struct {
	JWTSecret       string   `yaml:"jwt_secret"`
	TokenTTLMinutes int      `yaml:"token_ttl_minutes"`
	AdminEmails     []string `yaml:"admin_emails"`
}

func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

// Load reads the YAML config at path. A .env file, if present, is loaded
// first; DB_PASSWORD and JWT_SECRET environment variables override the
// file so secrets can stay out of it.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTP: HTTPConfig{Port: 8000, ShutdownGraceSec: 5},
		Database: DatabaseConfig{
			Port:     5432,
			SSLMode:  "disable",
			MaxConns: 10,
		},
		RabbitMQ: RabbitMQConfig{Port: 5672, VHost: "/"},
		Auth:     AuthConfig{TokenTTLMinutes: 30},
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Port = p
		}
	}

	if cfg.Database.Host == "" || cfg.Database.User == "" || cfg.Database.Database == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret is required (or JWT_SECRET env)")
	}
	return cfg, nil
}
