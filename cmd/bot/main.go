package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	crouton "github.com/set-night/crouton"
	"github.com/set-night/crouton/internal/config"
	"github.com/set-night/crouton/internal/discord"
	"github.com/set-night/crouton/internal/handler"
	"github.com/set-night/crouton/internal/middleware"
	"github.com/set-night/crouton/internal/repository"
	"github.com/set-night/crouton/internal/service"
	"github.com/set-night/crouton/internal/telegram"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("bot stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("bot stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config) error {
	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(crouton.MigrationsFS, "migrations")
	if err != nil {
		return err
	}
	if _, err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		return err
	}

	queries := repository.New(pool)

	// Initialize services
	rolls := service.NewRollService()
	puns := service.NewPunService(queries)
	nicknames := service.NewNicknameService(queries)
	presence := service.NewPresenceService(queries)
	cooldowns := service.NewCooldowns(cfg.CommandCooldown)

	if err := presence.Load(ctx); err != nil {
		slog.Warn("presence activities unavailable", "error", err)
	}

	tgLogger := telegram.NewTelegramLogger(cfg)

	var tgBot *bot.Bot
	if cfg.TelegramEnabled() {
		tgBot, err = newTelegramBot(ctx, cfg, rolls, puns, cooldowns, tgLogger)
		if err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	if tgBot != nil {
		g.Go(func() error {
			slog.Info("starting telegram bot")
			tgBot.Start(ctx)
			return nil
		})
	}

	if cfg.DiscordEnabled() {
		dc := discord.New(discord.Deps{
			Rolls:     rolls,
			Puns:      puns,
			Nicknames: nicknames,
			Presence:  presence,
			Cooldowns: cooldowns,
			Reporter:  tgLogger,
		})
		g.Go(func() error { return dc.Run(ctx, cfg.DiscordToken) })
		g.Go(func() error { return presence.Run(ctx, cfg.PresenceSchedule) })
		g.Go(func() error {
			return presence.Watch(ctx, listener(pool), config.PresenceChannel, config.ListenRetryDelay)
		})
	}

	g.Go(func() error { return cooldowns.Run(ctx, config.CooldownSweepInterval) })

	return g.Wait()
}

func newTelegramBot(ctx context.Context, cfg *config.Config, rolls *service.RollService, puns *service.PunService, cooldowns *service.Cooldowns, tgLogger *telegram.TelegramLogger) (*bot.Bot, error) {
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(tgLogger),
			middleware.Logging(),
			middleware.Cooldown(cooldowns, handler.CooldownCommands...),
		),
	}

	b, err := bot.New(cfg.TelegramToken, opts...)
	if err != nil {
		return nil, err
	}
	tgLogger.SetBot(b)

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("bot info retrieved", "id", me.ID, "username", me.Username)

	if cfg.TelegramDropPendingUpdates {
		if _, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: true}); err != nil {
			return nil, err
		}
	}

	h := handler.New(handler.Deps{
		Bot:      b,
		Rolls:    rolls,
		Puns:     puns,
		TgLogger: tgLogger,
	})
	h.Register()

	return b, nil
}

func listener(pool *pgxpool.Pool) service.ListenFunc {
	return func(ctx context.Context, channel string, fn func(payload string)) error {
		return repository.Listen(ctx, pool, channel, fn)
	}
}
