package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Logging returns middleware that logs each update once it is handled.
func Logging() bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			start := time.Now()
			next(ctx, b, update)

			attrs := append(updateAttrs(update), slog.Duration("duration", time.Since(start)))
			slog.LogAttrs(ctx, slog.LevelDebug, "update processed", attrs...)
		}
	}
}

func updateAttrs(update *models.Update) []slog.Attr {
	switch {
	case update.Message != nil:
		msg := update.Message
		attrs := []slog.Attr{
			slog.String("type", "message"),
			slog.Int64("chat_id", msg.Chat.ID),
		}
		if msg.From != nil {
			attrs = append(attrs, slog.Int64("user_id", msg.From.ID))
		}
		if cmd := CommandName(msg.Text); cmd != "" {
			attrs = append(attrs, slog.String("command", cmd))
		}
		return attrs
	case update.CallbackQuery != nil:
		cq := update.CallbackQuery
		attrs := []slog.Attr{
			slog.String("type", "callback_query"),
			slog.Int64("user_id", cq.From.ID),
		}
		if cq.Message.Message != nil {
			attrs = append(attrs, slog.Int64("chat_id", cq.Message.Message.Chat.ID))
		}
		return attrs
	default:
		return []slog.Attr{slog.String("type", "other"), slog.Int64("update_id", update.ID)}
	}
}
