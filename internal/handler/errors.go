package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/set-night/crouton/internal/config"
	"github.com/set-night/crouton/internal/domain"
	"github.com/set-night/crouton/internal/service"
	"github.com/set-night/crouton/internal/telegram"
)

const (
	generalErrorText = "Something went wrong in the bakery. Please try sending your order again."
	noPunsText       = "We regret to inform you that our bread puns have all been gobbled up. Please try again when we've baked some fresh ones."
	missingDiceText  = "Tell me what to roll, e.g. /roll 1d20 2d4"
)

// replyError tells the user their order failed and deletes the notice after
// a while. Errors the user did not cause are also reported to the log chat.
func (h *Handler) replyError(ctx context.Context, b *bot.Bot, chatID int64, replyTo *int, err error, where string) {
	text := generalErrorText
	switch {
	case errors.Is(err, domain.ErrNoPuns):
		text = noPunsText
	case service.IsUserError(err):
		slog.Debug("rejected order", "error", err, "chat_id", chatID, "command", where)
	default:
		slog.Error("command failed", "error", err, "chat_id", chatID, "command", where)
		h.tgLogger.LogError(err, "telegram "+where)
	}

	if sendErr := telegram.SendTemporary(ctx, b, chatID, text, replyTo, config.ErrorNoticeTTL); sendErr != nil {
		slog.Error("failed to send error notice", "error", sendErr, "chat_id", chatID)
	}
}
