package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel      string         `yaml:"log_level" validate:"oneof=debug info warn error"`
	ListenTimeout time.Duration  `yaml:"listen_timeout" validate:"gt=0"`
	StationsFile  string         `yaml:"stations_file"`
	Stations      []string       `yaml:"stations"`
	DownloadsDir  string         `yaml:"downloads_dir" validate:"required"`
	MetricsAddr   string         `yaml:"metrics_addr" validate:"omitempty,hostname_port"`
	Store         StoreConfig    `yaml:"store"`
	Speech        SpeechConfig   `yaml:"speech"`
	Telegram      TelegramConfig `yaml:"telegram"`
}

type StoreConfig struct {
	// SharedTickets lets every session see every ticket.
	SharedTickets bool `yaml:"shared_tickets"`
}

type SpeechConfig struct {
	Command string        `yaml:"command"`
	Args    []string      `yaml:"args"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
}

type TelegramConfig struct {
	TokenFile string `yaml:"token_file"`
}

func DefaultConfig() Config {
	return Config{
		LogLevel:      "info",
		ListenTimeout: 30 * time.Second,
		DownloadsDir:  "downloads",
		Speech: SpeechConfig{
			Timeout: 20 * time.Second,
		},
		Telegram: TelegramConfig{
			TokenFile: "./token.txt",
		},
	}
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("failed to read the config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse the config file %s: %w", path, err)
			}
		}
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
