package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/halalbot/internal/conversation"
	"github.com/edgard/halalbot/internal/telegram"
)

// NewLanguageHandler returns a handler for the language selector buttons.
func NewLanguageHandler(deps HandlerDeps) bot.HandlerFunc {
	return languageHandler{deps}.Handle
}

type languageHandler struct {
	deps HandlerDeps
}

func (h languageHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.deps.Logger.DebugContext(ctx, "Language button pressed", "handler", "language", "chat_id", update.Message.Chat.ID, "label", update.Message.Text)

	t := telegram.NewTransport(b, h.deps.Config.Telegram.Token, h.deps.TransportOptions...)
	h.deps.Dispatcher.Handle(ctx, t, eventFromMessage(conversation.EventText, update.Message))
}
