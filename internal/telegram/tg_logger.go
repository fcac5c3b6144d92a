package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/crouton/internal/config"
)

// TelegramLogger mirrors notable events into a Telegram log chat.
type TelegramLogger struct {
	bot *bot.Bot
	cfg *config.Config
}

func NewTelegramLogger(cfg *config.Config) *TelegramLogger {
	return &TelegramLogger{cfg: cfg}
}

// SetBot attaches the bot used for sending. Logs are dropped until it is set.
// Call it before the logger is shared between goroutines.
func (l *TelegramLogger) SetBot(b *bot.Bot) {
	l.bot = b
}

type LogType string

const (
	LogTypeError LogType = "error"
)

func (l *TelegramLogger) Log(logType LogType, message string) {
	if l == nil || l.bot == nil || l.cfg.LogTelegramChatID == 0 {
		return
	}

	topicID := l.getTopicID(logType)

	// Truncate if too long
	if len([]rune(message)) > MaxMessageLen {
		message = string([]rune(message)[:MaxMessageLen-20]) + "\n\n... (truncated)"
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.LogSendTimeout)
	defer cancel()

	params := &bot.SendMessageParams{
		ChatID:          l.cfg.LogTelegramChatID,
		Text:            message,
		ParseMode:       models.ParseModeMarkdownV1,
		MessageThreadID: topicID,
	}
	if _, err := l.bot.SendMessage(ctx, params); err != nil {
		// Error text often breaks Markdown entities.
		params.ParseMode = ""
		if _, err := l.bot.SendMessage(ctx, params); err != nil {
			slog.Error("failed to send telegram log", "type", logType, "error", err)
		}
	}
}

// LogError reports an unexpected error. where names the platform and the
// command it happened in.
func (l *TelegramLogger) LogError(err error, where string) {
	msg := fmt.Sprintf("❌ *Error*\n\n*Context:* %s\n*Error:* `%s`\n*Time:* %s",
		where, err.Error(), time.Now().Format("2006-01-02 15:04:05"))
	l.Log(LogTypeError, msg)
}

func (l *TelegramLogger) getTopicID(logType LogType) int {
	switch logType {
	case LogTypeError:
		return l.cfg.LogTopicError
	default:
		return 0
	}
}
