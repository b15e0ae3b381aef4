// Package config loads regiontree settings from a YAML file, an optional
// .env file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/1F47E/geo-region-tree/pkg/logger"
)

// Config is the full set of runtime settings
type Config struct {
	Regions string        `yaml:"regions"`
	Server  Server        `yaml:"server"`
	PostGIS PostGIS       `yaml:"postgis"`
	Log     logger.Logger `yaml:"log"`
}

// Server configures the HTTP lookup service
type Server struct {
	Addr      string `yaml:"addr"`
	CacheSize int    `yaml:"cache_size"`
}

// PostGIS holds connection settings for the cross-check database
type PostGIS struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns a lib/pq key=value connection string
func (p PostGIS) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// Default returns the settings used when nothing else is provided
func Default() Config {
	return Config{
		Regions: "regions.json",
		Server: Server{
			Addr:      ":8080",
			CacheSize: 10000,
		},
		PostGIS: PostGIS{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "geodb",
			SSLMode:  "disable",
		},
		Log: logger.Logger{
			Level:  "info",
			Format: logger.FormatAuto,
		},
	}
}

// Load reads defaults, then the YAML file at path (skipped when path is
// empty), then .env, then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Regions, "REGIONTREE_REGIONS")
	setString(&c.Server.Addr, "REGIONTREE_ADDR")
	if err := setInt(&c.Server.CacheSize, "REGIONTREE_CACHE_SIZE"); err != nil {
		return err
	}

	setString(&c.PostGIS.Host, "POSTGIS_HOST")
	if err := setInt(&c.PostGIS.Port, "POSTGIS_PORT"); err != nil {
		return err
	}
	setString(&c.PostGIS.User, "POSTGIS_USER")
	setString(&c.PostGIS.Password, "POSTGIS_PASSWORD")
	setString(&c.PostGIS.Database, "POSTGIS_DB")
	setString(&c.PostGIS.SSLMode, "POSTGIS_SSLMODE")

	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}
