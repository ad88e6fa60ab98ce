package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for CareerForge.
type Config struct {
	Backend BackendConfig
	History HistoryConfig
	Log     LogConfig
	Stub    StubConfig
}

// BackendConfig points the client at the analysis backend.
type BackendConfig struct {
	BaseURL string        // defaults to http://localhost:8000
	Timeout time.Duration // 0 leaves the transport default (no client timeout)
}

// HistoryConfig controls the local run journal.
type HistoryConfig struct {
	Enabled   bool
	Path      string        // sqlite file
	Retention time.Duration // runs older than this are pruned on startup; 0 keeps everything
}

// LogConfig controls diagnostics output.
type LogConfig struct {
	File  string // the TUI logs here; empty discards
	Level slog.Level
}

// StubConfig configures the development backend stub.
type StubConfig struct {
	Addr    string
	Fixture string // optional YAML fixture with canned responses
}

const (
	DefaultBaseURL     = "http://localhost:8000"
	defaultHistoryPath = "careerforge.db"
	defaultStubAddr    = ":8000"
)

// rawConfig is used for YAML unmarshaling (snake_case fields and durations as strings).
type rawConfig struct {
	Backend rawBackendConfig `yaml:"backend"`
	History rawHistoryConfig `yaml:"history"`
	Log     rawLogConfig     `yaml:"log"`
	Stub    rawStubConfig    `yaml:"stub"`
}

type rawBackendConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type rawHistoryConfig struct {
	Enabled   *bool  `yaml:"enabled"`
	Path      string `yaml:"path"`
	Retention string `yaml:"retention"`
}

type rawLogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

type rawStubConfig struct {
	Addr    string `yaml:"addr"`
	Fixture string `yaml:"fixture"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg, _ := build(rawConfig{})
	return cfg
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// LoadOptional behaves like Load but returns defaults when path does not exist.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes YAML after expanding ${VAR} references from the environment.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg, err := build(raw)
	if err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func build(raw rawConfig) (*Config, error) {
	var err error

	timeout := time.Duration(0) // no client timeout unless asked for
	if raw.Backend.Timeout != "" {
		timeout, err = time.ParseDuration(raw.Backend.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse backend.timeout %q: %w", raw.Backend.Timeout, err)
		}
	}

	var retention time.Duration
	if raw.History.Retention != "" {
		retention, err = time.ParseDuration(raw.History.Retention)
		if err != nil {
			return nil, fmt.Errorf("parse history.retention %q: %w", raw.History.Retention, err)
		}
	}

	level := slog.LevelInfo
	if raw.Log.Level != "" {
		if err := level.UnmarshalText([]byte(raw.Log.Level)); err != nil {
			return nil, fmt.Errorf("parse log.level %q: %w", raw.Log.Level, err)
		}
	}

	baseURL := strings.TrimRight(raw.Backend.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	historyEnabled := true // default: keep a local journal
	if raw.History.Enabled != nil {
		historyEnabled = *raw.History.Enabled
	}
	historyPath := raw.History.Path
	if historyPath == "" {
		historyPath = defaultHistoryPath
	}

	stubAddr := raw.Stub.Addr
	if stubAddr == "" {
		stubAddr = defaultStubAddr
	}

	return &Config{
		Backend: BackendConfig{
			BaseURL: baseURL,
			Timeout: timeout,
		},
		History: HistoryConfig{
			Enabled:   historyEnabled,
			Path:      historyPath,
			Retention: retention,
		},
		Log: LogConfig{
			File:  raw.Log.File,
			Level: level,
		},
		Stub: StubConfig{
			Addr:    stubAddr,
			Fixture: raw.Stub.Fixture,
		},
	}, nil
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.Backend.BaseURL)
	if err != nil {
		return fmt.Errorf("backend.base_url %q: %w", cfg.Backend.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.base_url must be an http(s) URL, got %q", cfg.Backend.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("backend.base_url %q has no host", cfg.Backend.BaseURL)
	}

	if cfg.Backend.Timeout < 0 {
		return fmt.Errorf("backend.timeout must not be negative, got %v", cfg.Backend.Timeout)
	}
	if cfg.History.Retention < 0 {
		return fmt.Errorf("history.retention must not be negative, got %v", cfg.History.Retention)
	}

	return nil
}
