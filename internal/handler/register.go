package handler

import (
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/crouton/internal/middleware"
	"github.com/set-night/crouton/internal/service"
)

// CooldownCommands are the commands throttled per user.
var CooldownCommands = []string{"roll", "odds", "pun"}

// Register registers all command and callback handlers on the bot instance.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandlerMatchFunc(matchCommand("start"), h.handleStart)
	h.bot.RegisterHandlerMatchFunc(matchCommand("help"), h.handleStart)
	h.bot.RegisterHandlerMatchFunc(matchCommand("roll"), h.handleRoll)
	h.bot.RegisterHandlerMatchFunc(matchCommand("odds"), h.handleOdds)
	h.bot.RegisterHandlerMatchFunc(matchCommand("pun"), h.handlePun)

	// Reroll button
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, service.RerollControl, bot.MatchTypePrefix, h.handleReroll)
}

// matchCommand matches "/name", "/name args" and "/name@Bot args" but not
// "/names".
func matchCommand(name string) bot.MatchFunc {
	return func(update *models.Update) bool {
		if update.Message == nil {
			return false
		}
		return middleware.CommandName(update.Message.Text) == name
	}
}
