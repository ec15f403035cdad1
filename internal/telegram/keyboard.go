package telegram

import (
	"github.com/go-telegram/bot/models"

	"github.com/edgard/halalbot/internal/i18n"
)

// LanguageKeyboard is the persistent one-row language selector.
func LanguageKeyboard() *models.ReplyKeyboardMarkup {
	labels := i18n.Labels()
	row := make([]models.KeyboardButton, 0, len(labels))
	for _, l := range labels {
		row = append(row, models.KeyboardButton{Text: l})
	}
	return &models.ReplyKeyboardMarkup{
		Keyboard:       [][]models.KeyboardButton{row},
		ResizeKeyboard: true,
		IsPersistent:   true,
	}
}
