// Package config loads settings from an optional YAML file, .env files and
// the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/evalyze/evalyze/internal/judge"
	"github.com/evalyze/evalyze/internal/llm"
	"github.com/evalyze/evalyze/internal/telemetry"
)

// Config is the full application configuration.
type Config struct {
	LLM       llm.Config       `yaml:"llm"`
	Judge0    judge.Config     `yaml:"judge0"`
	Server    ServerConfig     `yaml:"server"`
	Store     StoreConfig      `yaml:"store"`
	Telegram  TelegramConfig   `yaml:"telegram"`
	Telemetry telemetry.Config `yaml:"telemetry"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// StoreConfig selects the database. An empty DSN uses the default
// SQLite file.
type StoreConfig struct {
	DSN string `yaml:"dsn"`
}

// TelegramConfig configures the bot front end.
type TelegramConfig struct {
	Token       string        `yaml:"token"`
	PollTimeout time.Duration `yaml:"poll_timeout"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		LLM:    llm.DefaultConfig(),
		Judge0: judge.DefaultConfig(),
		Server: ServerConfig{Addr: ":8080"},
		Telegram: TelegramConfig{
			PollTimeout: 10 * time.Second,
		},
		Telemetry: telemetry.DefaultConfig(),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/evalyze/config.yaml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "evalyze", "config.yaml"), nil
}

// LoadDotEnv loads .env.local then .env from the working directory.
// Existing variables are never overridden; missing files are ignored.
func LoadDotEnv() {
	for _, f := range []string{".env.local", ".env"} {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}
}

// Load builds the configuration. An explicit path must exist; when path is
// empty the default file is read if present. Environment variables are
// applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := loadFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	applyEnv(&cfg)
	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	llm.ApplyEnv(&cfg.LLM)

	if k := os.Getenv("JUDGE0_API_KEY"); k != "" {
		cfg.Judge0.APIKey = k
	}
	if u := os.Getenv("EVALYZE_JUDGE0_URL"); u != "" {
		cfg.Judge0.BaseURL = u
	}
	if h := os.Getenv("EVALYZE_JUDGE0_HOST"); h != "" {
		cfg.Judge0.Host = h
	}
	if d := os.Getenv("EVALYZE_DB"); d != "" {
		cfg.Store.DSN = d
	}
	if a := os.Getenv("EVALYZE_ADDR"); a != "" {
		cfg.Server.Addr = a
	}
	if t := os.Getenv("EVALYZE_TELEGRAM_TOKEN"); t != "" {
		cfg.Telegram.Token = t
	}
	if e := os.Getenv("EVALYZE_OTEL_ENDPOINT"); e != "" {
		cfg.Telemetry.Endpoint = e
		cfg.Telemetry.Enabled = true
	}
}
