package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/halalbot/internal/conversation"
	"github.com/edgard/halalbot/internal/telegram"
)

// NewDefaultHandler returns the handler for every update no registered
// pattern matched: photos and free text. Anything else is ignored. It is
// installed with bot.WithDefaultHandler, so it carries its own Recover.
func NewDefaultHandler(deps HandlerDeps) bot.HandlerFunc {
	return Recover(deps)(defaultHandler{deps}.Handle)
}

type defaultHandler struct {
	deps HandlerDeps
}

func (h defaultHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "default")

	msg := update.Message
	if msg == nil {
		log.DebugContext(ctx, "Ignoring non-message update", "update_id", update.ID)
		return
	}

	var kind conversation.EventKind
	switch {
	case len(msg.Photo) > 0:
		kind = conversation.EventPhoto
	case msg.Text != "":
		kind = conversation.EventText
	default:
		log.DebugContext(ctx, "Ignoring message without text or photo", "chat_id", msg.Chat.ID, "message_id", msg.ID)
		return
	}

	t := telegram.NewTransport(b, h.deps.Config.Telegram.Token, h.deps.TransportOptions...)
	h.deps.Dispatcher.Handle(ctx, t, eventFromMessage(kind, msg))
}
