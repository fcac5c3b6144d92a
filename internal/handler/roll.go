package handler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/crouton/internal/config"
	"github.com/set-night/crouton/internal/telegram"
)

// commandArgs returns everything after the command word.
func commandArgs(text string) string {
	_, args, _ := strings.Cut(text, " ")
	return strings.TrimSpace(args)
}

func (h *Handler) handleRoll(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil {
		return
	}
	chatID := msg.Chat.ID
	replyTo := msg.ID

	dice := commandArgs(msg.Text)
	if dice == "" {
		if err := telegram.SendTemporary(ctx, b, chatID, missingDiceText, &replyTo, config.ErrorNoticeTTL); err != nil {
			slog.Error("failed to send usage", "error", err, "chat_id", chatID)
		}
		return
	}

	res, err := h.rolls.Roll(dice, config.MaxTelegramCallbackData)
	if err != nil {
		h.replyError(ctx, b, chatID, &replyTo, err, "roll")
		return
	}

	if _, err := telegram.SendText(ctx, b, chatID, res.Text, &replyTo, telegram.RerollKeyboard(res.ControlID)); err != nil {
		slog.Error("failed to send roll", "error", err, "chat_id", chatID, "roll_id", res.ID)
	}
}

func (h *Handler) handleOdds(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil {
		return
	}
	chatID := msg.Chat.ID
	replyTo := msg.ID

	dice := commandArgs(msg.Text)
	if dice == "" {
		if err := telegram.SendTemporary(ctx, b, chatID, missingDiceText, &replyTo, config.ErrorNoticeTTL); err != nil {
			slog.Error("failed to send usage", "error", err, "chat_id", chatID)
		}
		return
	}

	text, err := h.rolls.Odds(dice)
	if err != nil {
		h.replyError(ctx, b, chatID, &replyTo, err, "odds")
		return
	}

	if _, err := telegram.SendText(ctx, b, chatID, text, &replyTo, nil); err != nil {
		slog.Error("failed to send odds", "error", err, "chat_id", chatID)
	}
}

// handleReroll takes the button off the old report and posts a new roll
// with the next sequence number.
func (h *Handler) handleReroll(ctx context.Context, b *bot.Bot, update *models.Update) {
	cq := update.CallbackQuery
	if cq == nil {
		return
	}

	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: cq.ID,
	})

	prev := cq.Message.Message
	if prev == nil {
		slog.Warn("reroll on inaccessible message", "user_id", cq.From.ID)
		return
	}
	chatID := prev.Chat.ID

	res, err := h.rolls.Reroll(cq.Data, prev.Text, config.MaxTelegramCallbackData)
	if err != nil {
		h.replyError(ctx, b, chatID, nil, err, "reroll")
		return
	}

	if err := telegram.RemoveKeyboard(ctx, b, chatID, prev.ID); err != nil {
		slog.Warn("failed to remove reroll button", "error", err, "chat_id", chatID)
	}

	if _, err := telegram.SendText(ctx, b, chatID, res.Text, nil, telegram.RerollKeyboard(res.ControlID)); err != nil {
		slog.Error("failed to send reroll", "error", err, "chat_id", chatID, "roll_id", res.ID)
	}
}
