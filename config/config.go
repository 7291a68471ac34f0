package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the full bot configuration, loaded from a TOML file with a few
// environment variable overrides for deployment secrets.
type Config struct {
	Telegram TelegramConfig `toml:"telegram"`
	Backend  BackendConfig  `toml:"backend"`
	Storage  StorageConfig  `toml:"storage"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Digest   DigestConfig   `toml:"digest"`
	Business BusinessConfig `toml:"business"`
	Logs     LogsConfig     `toml:"logs"`
}

type TelegramConfig struct {
	Token        string  `toml:"token"`
	AdminChatIDs []int64 `toml:"admin_chat_ids"`
	Debug        bool    `toml:"debug"`
}

// BackendConfig points the bot at the shop's booking backend. The base URL
// is never hardcoded; it always comes from here.
type BackendConfig struct {
	BaseURL        string  `toml:"base_url"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	RateLimitRPS   float64 `toml:"rate_limit_rps"`
	RateLimitBurst int     `toml:"rate_limit_burst"`
}

type StorageConfig struct {
	Path string `toml:"path"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Addr        string `toml:"addr"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type DigestConfig struct {
	Enabled bool `toml:"enabled"`
	Hour    int  `toml:"hour"`
}

// BusinessConfig carries the shop details shown by /contato.
type BusinessConfig struct {
	Name     string `toml:"name"`
	Address  string `toml:"address"`
	Phone    string `toml:"phone"`
	WhatsApp string `toml:"whatsapp"`
	Hours    string `toml:"hours"`
}

type LogsConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// Load reads the TOML config file, applies environment overrides and
// defaults, and validates the required fields.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	// Env overrides for values that usually come from the deployment
	// environment rather than the checked-in config file.
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.Token = v
	}
	if v := os.Getenv("BACKEND_BASE_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.Storage.Path = v
	}

	cfg.applyDefaults()

	if cfg.Telegram.Token == "" {
		return nil, fmt.Errorf("telegram token is required (set telegram.token or TELEGRAM_BOT_TOKEN)")
	}
	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("backend base URL is required (set backend.base_url or BACKEND_BASE_URL)")
	}
	if cfg.Digest.Hour < 0 || cfg.Digest.Hour > 23 {
		return nil, fmt.Errorf("digest hour must be between 0 and 23, got %d", cfg.Digest.Hour)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Backend.TimeoutSeconds <= 0 {
		c.Backend.TimeoutSeconds = 15
	}
	if c.Backend.RateLimitRPS <= 0 {
		c.Backend.RateLimitRPS = 10
	}
	if c.Backend.RateLimitBurst <= 0 {
		c.Backend.RateLimitBurst = 5
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "data/barberbot.db"
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9091"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "barberbot"
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
}
