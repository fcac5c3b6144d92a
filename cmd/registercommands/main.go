package main

import (
	"log/slog"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/set-night/crouton/internal/config"
	"github.com/set-night/crouton/internal/discord"
)

// registercommands publishes the Discord slash commands. With
// DISCORD_DEV_GUILD_ID set they are registered on that guild only, which
// takes effect immediately.
func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.LoadCommands()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		slog.Error("failed to create discord session", "error", err)
		os.Exit(1)
	}

	created, err := discord.RegisterCommands(dg, cfg.DiscordAppID, cfg.DiscordGuildID)
	if err != nil {
		slog.Error("failed to register commands", "error", err)
		os.Exit(1)
	}

	scope := "global"
	if cfg.DiscordGuildID != "" {
		scope = "guild " + cfg.DiscordGuildID
	}
	slog.Info("commands registered", "count", len(created), "scope", scope)
}
