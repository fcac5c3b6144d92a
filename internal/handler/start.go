package handler

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/crouton/internal/telegram"
)

const helpText = "🥐 Crouton is open for orders!\n\n" +
	"/roll <dice> - roll dice, e.g. /roll 1d20 2d4\n" +
	"/odds <dice> - minimum, maximum and average of a roll\n" +
	"/pun - a fresh bread pun\n" +
	"/help - this menu\n\n" +
	"Chain dice with single spaces. Every roll comes with a Reroll button."

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	if _, err := telegram.SendText(ctx, b, chatID, helpText, nil, nil); err != nil {
		slog.Error("failed to send help", "error", err, "chat_id", chatID)
	}
}
