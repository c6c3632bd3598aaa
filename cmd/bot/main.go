package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/config"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/handlers/discord"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/repositories/items"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/repositories/rngstates"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/repositories/units"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/services"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/services/monster"
)

func main() {
	if err := run(); err != nil {
		slog.Error("bot stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Info("no .env file found")
	}

	logger.Info("starting bot",
		"app_id", cfg.Discord.AppID,
		"guild_id", cfg.Discord.GuildID)

	twoHanded, err := cfg.Game.TwoHanded()
	if err != nil {
		return err
	}

	providerConfig := &services.ProviderConfig{
		TwoHandedPolicy: twoHanded,
		LootPolicy:      monster.LootPolicy{AllowDuplicateCategories: cfg.Game.AllowDuplicateLootCategories},
		Logger:          logger,
	}

	// Keep Redis client for cleanup
	var redisClient *redis.Client

	if cfg.Redis.URL != "" {
		redisClient, err = connectRedis(cfg.Redis.URL)
		if err != nil {
			logger.Warn("falling back to in-memory repositories", "error", err)
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					logger.Error("error closing Redis connection", "error", err)
				}
			}()

			providerConfig.UnitRepository = units.NewRedis(redisClient)
			providerConfig.ItemRepository = items.NewRedis(redisClient)
			providerConfig.RNGRepository = rngstates.NewRedis(redisClient)
			logger.Info("using Redis for persistence")
		}
	} else {
		logger.Info("no REDIS_URL found, using in-memory repositories")
	}

	serviceProvider := services.NewProvider(providerConfig)

	handler := discord.NewHandler(&discord.HandlerConfig{
		ServiceProvider: serviceProvider,
		Logger:          logger.With("component", "discord"),
	})

	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return err
	}
	dg.AddHandler(handler.HandleInteraction)

	if err := dg.Open(); err != nil {
		return err
	}
	defer func() {
		if err := dg.Close(); err != nil {
			logger.Error("failed to close Discord connection", "error", err)
		}
	}()

	// Use empty string for global commands, or set a specific guild ID for testing
	if err := handler.RegisterCommands(dg, cfg.Discord.GuildID); err != nil {
		return err
	}
	if cfg.Discord.GuildID != "" {
		logger.Info("registered commands for guild", "guild_id", cfg.Discord.GuildID)
	} else {
		logger.Info("registered global commands (may take up to 1 hour to propagate)")
	}

	logger.Info("bot is now running, press CTRL-C to exit")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.Info("shutting down")
	return nil
}

func connectRedis(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	level, err := cfg.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
