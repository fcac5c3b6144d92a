package handler

import (
	"github.com/go-telegram/bot"
	"github.com/set-night/crouton/internal/service"
	"github.com/set-night/crouton/internal/telegram"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot      *bot.Bot
	rolls    *service.RollService
	puns     *service.PunService
	tgLogger *telegram.TelegramLogger
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot      *bot.Bot
	Rolls    *service.RollService
	Puns     *service.PunService
	TgLogger *telegram.TelegramLogger
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:      deps.Bot,
		rolls:    deps.Rolls,
		puns:     deps.Puns,
		tgLogger: deps.TgLogger,
	}
}
