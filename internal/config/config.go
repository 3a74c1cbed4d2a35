package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config application configuration loaded from a per-environment yaml file
type Config struct {
	Server struct {
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"database"`

	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		PoolSize int    `yaml:"pool_size"`
	} `yaml:"redis"`

	Session struct {
		// TTLMinutes bounds both the browsing-session cookie and the
		// view markers derived from it.
		TTLMinutes int `yaml:"ttl_minutes"`
	} `yaml:"session"`

	Auth struct {
		TokenSecret string `yaml:"token_secret"`
	} `yaml:"auth"`
}

// Load reads the yaml config at path. Environment variables override the
// secrets (DB_PASSWORD, REDIS_PASSWORD, AUTH_TOKEN_SECRET).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("AUTH_TOKEN_SECRET"); v != "" {
		cfg.Auth.TokenSecret = v
	}

	if cfg.Session.TTLMinutes <= 0 {
		cfg.Session.TTLMinutes = 30
	}
	return &cfg, nil
}

// DSN builds the MySQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Name)
}

// SessionTTL returns the session lifetime as a duration
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}
