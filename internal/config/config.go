package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Core
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Telegram
	TelegramToken              string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramDropPendingUpdates bool   `env:"TELEGRAM_DROP_PENDING_UPDATES" envDefault:"false"`

	// Discord
	DiscordToken   string `env:"DISCORD_BOT_TOKEN"`
	DiscordAppID   string `env:"DISCORD_CLIENT_ID"`
	DiscordGuildID string `env:"DISCORD_DEV_GUILD_ID"`

	// Bot behavior
	CommandCooldown  time.Duration `env:"COMMAND_COOLDOWN" envDefault:"10s"`
	PresenceSchedule string        `env:"PRESENCE_SCHEDULE" envDefault:"@every 1h"`

	// Logging
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
	LogTelegramChatID int64  `env:"LOG_TELEGRAM_CHAT_ID"`
	LogTopicError     int    `env:"LOG_TOPIC_ERROR"`
}

// Load reads an optional dotenv file and parses the environment.
// APP_ENV selects .env.<APP_ENV> instead of .env.
func Load() (*Config, error) {
	if err := loadDotEnv(os.Getenv("APP_ENV")); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CommandsConfig is what cmd/registercommands needs; it does not touch the
// database.
type CommandsConfig struct {
	DiscordToken   string `env:"DISCORD_BOT_TOKEN,required"`
	DiscordAppID   string `env:"DISCORD_CLIENT_ID,required"`
	DiscordGuildID string `env:"DISCORD_DEV_GUILD_ID"`
}

func LoadCommands() (*CommandsConfig, error) {
	if err := loadDotEnv(os.Getenv("APP_ENV")); err != nil {
		return nil, err
	}

	cfg := &CommandsConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func loadDotEnv(appEnv string) error {
	name := ".env"
	if appEnv != "" {
		name = ".env." + appEnv
	}
	if err := godotenv.Load(name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", name, err)
	}
	return nil
}

func (c *Config) Validate() error {
	if !c.TelegramEnabled() && !c.DiscordEnabled() {
		return errors.New("config: set TELEGRAM_BOT_TOKEN or DISCORD_BOT_TOKEN")
	}
	if c.CommandCooldown < 0 {
		return fmt.Errorf("config: COMMAND_COOLDOWN must not be negative, got %s", c.CommandCooldown)
	}
	return nil
}

func (c *Config) TelegramEnabled() bool { return c.TelegramToken != "" }

func (c *Config) DiscordEnabled() bool { return c.DiscordToken != "" }

// SlogLevel maps LogLevel onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
