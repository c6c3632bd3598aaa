package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/storage"
)

// Config holds all configuration for the application
type Config struct {
	Discord DiscordConfig `envPrefix:"DISCORD_"`
	Redis   RedisConfig   `envPrefix:"REDIS_"`
	Log     LogConfig     `envPrefix:"LOG_"`
	Game    GameConfig
}

// DiscordConfig holds Discord-specific configuration
type DiscordConfig struct {
	Token   string `env:"TOKEN,required"`
	AppID   string `env:"APP_ID,required"`
	GuildID string `env:"GUILD_ID"` // Optional: for guild-specific commands
}

// RedisConfig holds Redis-specific configuration. An empty URL runs the bot
// on in-memory repositories.
type RedisConfig struct {
	URL string `env:"URL"`
}

// LogConfig selects the slog handler
type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"text"`
}

// GameConfig holds rules that are switchable per deployment
type GameConfig struct {
	TwoHandedPolicy              string `env:"TWO_HANDED_POLICY" envDefault:"exclusive"`
	AllowDuplicateLootCategories bool   `env:"LOOT_ALLOW_DUPLICATE_CATEGORIES" envDefault:"false"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if _, err := cfg.Game.TwoHanded(); err != nil {
		return nil, err
	}
	if _, err := cfg.Log.SlogLevel(); err != nil {
		return nil, err
	}
	if f := strings.ToLower(cfg.Log.Format); f != "text" && f != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.Log.Format)
	}

	return &cfg, nil
}

// TwoHanded parses the configured two-handed policy
func (g GameConfig) TwoHanded() (storage.TwoHandedPolicy, error) {
	return storage.ParseTwoHandedPolicy(g.TwoHandedPolicy)
}

// SlogLevel parses the configured level
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}
