package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const MaxMessageLen = 4096

// SendText sends plain text, replying to replyToID when it is set.
func SendText(ctx context.Context, b *bot.Bot, chatID int64, text string, replyToID *int, markup models.ReplyMarkup) (*models.Message, error) {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if replyToID != nil {
		params.ReplyParameters = &models.ReplyParameters{
			MessageID:                *replyToID,
			AllowSendingWithoutReply: true,
		}
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}

	msg, err := b.SendMessage(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return msg, nil
}

// SendTemporary sends text that deletes itself after ttl.
func SendTemporary(ctx context.Context, b *bot.Bot, chatID int64, text string, replyToID *int, ttl time.Duration) error {
	msg, err := SendText(ctx, b, chatID, text, replyToID, nil)
	if err != nil {
		return err
	}
	DeleteAfter(b, chatID, msg.ID, ttl)
	return nil
}

// DeleteAfter deletes a message once ttl has passed. The deletion outlives
// the update's context.
func DeleteAfter(b *bot.Bot, chatID int64, messageID int, ttl time.Duration) {
	time.AfterFunc(ttl, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		_, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{
			ChatID:    chatID,
			MessageID: messageID,
		})
		if err != nil {
			slog.Warn("failed to delete message", "error", err, "chat_id", chatID, "message_id", messageID)
		}
	})
}

// RemoveKeyboard strips the inline keyboard from a sent message.
func RemoveKeyboard(ctx context.Context, b *bot.Bot, chatID int64, messageID int) error {
	_, err := b.EditMessageReplyMarkup(ctx, &bot.EditMessageReplyMarkupParams{
		ChatID:      chatID,
		MessageID:   messageID,
		ReplyMarkup: EmptyKeyboard(),
	})
	if err != nil {
		return fmt.Errorf("remove keyboard: %w", err)
	}
	return nil
}
