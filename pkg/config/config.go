package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultConfigFile is the YAML file read by Load when no path is given.
const DefaultConfigFile = "config.yaml"

// Config holds all configuration for the surveyor client.
// Configuration can come from a YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (the credentials key) must only come from environment variables.
type Config struct {
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Survey backend configuration
	API APIConfig `yaml:"api"`

	// StateDir holds the local state database and the credentials file.
	StateDir string `yaml:"state_dir" env:"SURVEYOR_STATE_DIR" env-default:"~/.surveyor"`

	// DatabasePath is the SQLite file for the survey snapshot and barrier markers.
	// Derived from StateDir when empty.
	DatabasePath string `yaml:"database_path" env:"SURVEYOR_DATABASE_PATH" env-default:""`

	// CredentialsFile stores the encrypted username/password pair.
	// Derived from StateDir when empty.
	CredentialsFile string `yaml:"credentials_file" env:"SURVEYOR_CREDENTIALS_FILE" env-default:""`

	// CredentialsKey encrypts the stored credentials.
	// Either a base64 32-byte key (openssl rand -base64 32) or a passphrase.
	CredentialsKey string `yaml:"-" env:"SURVEYOR_CREDENTIALS_KEY"` // Secret - not in YAML
}

// APIConfig holds settings for the survey backend.
type APIConfig struct {
	BaseURL string `yaml:"base_url" env:"SURVEY_API_BASE_URL" env-default:"https://ada1.evanterry.com"`

	// BarrierPath is the endpoint receiving new barrier records.
	BarrierPath string `yaml:"barrier_path" env:"SURVEY_API_BARRIER_PATH" env-default:"/evanterry/surveyors.nsf/createBarrier"`

	// Timeout bounds a single request. Zero leaves the transport default (no client timeout).
	Timeout time.Duration `yaml:"timeout" env:"SURVEY_API_TIMEOUT" env-default:"0s"`

	UserAgent string `yaml:"user_agent" env:"SURVEY_API_USER_AGENT" env-default:""`
}

// IsDevelopment returns true for local and dev environments.
func (c *Config) IsDevelopment() bool {
	switch strings.ToLower(c.Env) {
	case "local", "dev", "development", "test":
		return true
	}
	return false
}

// Load reads configuration from path (config.yaml when empty) with environment variable overrides.
// A missing file is not an error: environment variables and defaults are used instead.
// The version parameter is injected at build time and set on the returned Config.
func Load(path, version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	if _, statErr := os.Stat(path); statErr == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else {
		if explicit {
			return nil, fmt.Errorf("config file %s: %w", path, statErr)
		}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.resolvePaths(); err != nil {
		return nil, fmt.Errorf("failed to resolve state paths: %w", err)
	}

	if err := cfg.validateAPI(); err != nil {
		return nil, fmt.Errorf("invalid api configuration: %w", err)
	}

	return cfg, nil
}

// resolvePaths expands ~ and derives the database and credentials paths from StateDir.
func (c *Config) resolvePaths() error {
	dir, err := expandHome(c.StateDir)
	if err != nil {
		return err
	}
	c.StateDir = dir

	if c.DatabasePath == "" {
		c.DatabasePath = filepath.Join(c.StateDir, "state.db")
	} else if c.DatabasePath, err = expandHome(c.DatabasePath); err != nil {
		return err
	}

	if c.CredentialsFile == "" {
		c.CredentialsFile = filepath.Join(c.StateDir, "credentials.yaml")
	} else if c.CredentialsFile, err = expandHome(c.CredentialsFile); err != nil {
		return err
	}
	return nil
}

// validateAPI ensures the base URL is absolute and rewrites loopback hosts when running in Docker.
func (c *Config) validateAPI() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return errors.New("base_url must include scheme and host")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url scheme %q not supported", u.Scheme)
	}
	if c.API.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	if c.API.BarrierPath != "" && !strings.HasPrefix(c.API.BarrierPath, "/") {
		c.API.BarrierPath = "/" + c.API.BarrierPath
	}

	c.API.BaseURL = ResolveURLForDocker(u).String()
	return nil
}

func expandHome(p string) (string, error) {
	if p == "" || p[0] != '~' {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p[1:], "/")), nil
}
