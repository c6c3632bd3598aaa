package config_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/config"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/storage"
)

func setRequired(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DISCORD_APP_ID", "app")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.Discord.Token)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.False(t, cfg.Game.AllowDuplicateLootCategories)

	policy, err := cfg.Game.TwoHanded()
	require.NoError(t, err)
	assert.Equal(t, storage.TwoHandedExclusive, policy)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("TWO_HANDED_POLICY", "permissive")
	t.Setenv("LOOT_ALLOW_DUPLICATE_CATEGORIES", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "redis://localhost:6379/1", cfg.Redis.URL)
	assert.True(t, cfg.Game.AllowDuplicateLootCategories)

	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	policy, err := cfg.Game.TwoHanded()
	require.NoError(t, err)
	assert.Equal(t, storage.TwoHandedPermissive, policy)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing token", env: map[string]string{"DISCORD_APP_ID": "app"}},
		{name: "bad policy", env: map[string]string{"DISCORD_TOKEN": "t", "DISCORD_APP_ID": "a", "TWO_HANDED_POLICY": "sometimes"}},
		{name: "bad level", env: map[string]string{"DISCORD_TOKEN": "t", "DISCORD_APP_ID": "a", "LOG_LEVEL": "loud"}},
		{name: "bad format", env: map[string]string{"DISCORD_TOKEN": "t", "DISCORD_APP_ID": "a", "LOG_FORMAT": "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DISCORD_TOKEN", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
