package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/crouton/internal/config"
	"github.com/set-night/crouton/internal/service"
	"github.com/set-night/crouton/internal/telegram"
)

// Cooldown returns middleware that throttles the given commands per user.
// Other updates pass through untouched.
func Cooldown(cooldowns *service.Cooldowns, commands ...string) bot.Middleware {
	limited := make(map[string]bool, len(commands))
	for _, c := range commands {
		limited[c] = true
	}

	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			msg := update.Message
			if msg == nil || msg.From == nil {
				next(ctx, b, update)
				return
			}

			command := CommandName(msg.Text)
			if !limited[command] {
				next(ctx, b, update)
				return
			}

			key := service.CooldownKey(command, strconv.FormatInt(msg.From.ID, 10))
			wait, ok := cooldowns.Allow(key)
			if !ok {
				slog.Debug("command on cooldown", "command", command, "user_id", msg.From.ID, "wait", wait)
				text := fmt.Sprintf("You have to wait %d second(s) to use this command again.", service.WaitSeconds(wait))
				replyTo := msg.ID
				if err := telegram.SendTemporary(ctx, b, msg.Chat.ID, text, &replyTo, config.CooldownNoticeTTL); err != nil {
					slog.Error("failed to send cooldown notice", "error", err, "chat_id", msg.Chat.ID)
				}
				return
			}

			next(ctx, b, update)
		}
	}
}

// CommandName extracts "roll" from "/roll@CroutonBot 1d20".
func CommandName(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	first, _, _ := strings.Cut(text[1:], " ")
	first, _, _ = strings.Cut(first, "\n")
	name, _, _ := strings.Cut(first, "@")
	return strings.ToLower(name)
}
