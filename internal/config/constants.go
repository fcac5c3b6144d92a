package config

import "time"

const (
	// Telegram limits
	MaxTelegramCallbackData = 64

	// Discord limits
	MaxDiscordCustomID = 100

	// How long notices stay in the chat before the bot deletes them
	ErrorNoticeTTL    = 30 * time.Second
	CooldownNoticeTTL = 5 * time.Second
	ResetMenuTTL      = 60 * time.Second

	// Cooldown bookkeeping
	CooldownSweepInterval = time.Minute

	// Telegram error log timeout
	LogSendTimeout = 10 * time.Second

	// Database pool sizing
	PoolMaxConns = 10
	PoolMinConns = 2

	// Postgres notification channel for presence changes
	PresenceChannel = "presence_changed"

	// Reconnect delay for the presence listener
	ListenRetryDelay = 5 * time.Second
)
