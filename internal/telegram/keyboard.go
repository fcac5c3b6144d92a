package telegram

import (
	"github.com/go-telegram/bot/models"
)

const RerollButtonText = "🎲 Reroll"

// InlineButton creates a single inline keyboard button.
func InlineButton(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

// InlineKeyboard creates an inline keyboard from rows of buttons.
func InlineKeyboard(rows ...[]models.InlineKeyboardButton) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: rows,
	}
}

// ButtonRow creates a row of inline buttons.
func ButtonRow(buttons ...models.InlineKeyboardButton) []models.InlineKeyboardButton {
	return buttons
}

// RerollKeyboard is the keyboard attached to every roll report.
func RerollKeyboard(callbackData string) *models.InlineKeyboardMarkup {
	return InlineKeyboard(ButtonRow(InlineButton(RerollButtonText, callbackData)))
}

// EmptyKeyboard removes the inline keyboard from a message when edited in.
func EmptyKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{}}
}
