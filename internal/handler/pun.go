package handler

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/crouton/internal/telegram"
)

// Telegram chats have no guild, so only global puns are served.
func (h *Handler) handlePun(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil {
		return
	}
	chatID := msg.Chat.ID
	replyTo := msg.ID

	pun, err := h.puns.Random(ctx, "")
	if err != nil {
		h.replyError(ctx, b, chatID, &replyTo, err, "pun")
		return
	}

	if _, err := telegram.SendText(ctx, b, chatID, pun.Pun, &replyTo, nil); err != nil {
		slog.Error("failed to send pun", "error", err, "chat_id", chatID)
	}
}
