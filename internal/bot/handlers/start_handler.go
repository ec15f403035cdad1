package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/halalbot/internal/conversation"
	"github.com/edgard/halalbot/internal/telegram"
)

// NewStartHandler returns a handler for the /start command.
func NewStartHandler(deps HandlerDeps) bot.HandlerFunc {
	return startHandler{deps}.Handle
}

// startHandler resets the user's session and shows the language selector.
type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "start")

	if update.Message == nil {
		log.WarnContext(ctx, "Start handler received update with nil message", "update_id", update.ID)
		return
	}

	log.InfoContext(ctx, "Handling /start command", "chat_id", update.Message.Chat.ID)

	t := telegram.NewTransport(b, h.deps.Config.Telegram.Token, h.deps.TransportOptions...)
	h.deps.Dispatcher.Handle(ctx, t, eventFromMessage(conversation.EventStart, update.Message))
}
