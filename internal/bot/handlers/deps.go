package handlers

import (
	"context"
	"log/slog"

	"github.com/edgard/halalbot/internal/config"
	"github.com/edgard/halalbot/internal/conversation"
	"github.com/edgard/halalbot/internal/telegram"
)

// Dispatcher consumes conversation events. *conversation.Machine implements it.
type Dispatcher interface {
	Handle(ctx context.Context, t conversation.Transport, ev conversation.Event)
}

// HandlerDeps provides dependencies for Telegram handlers.
type HandlerDeps struct {
	Logger     *slog.Logger
	Config     *config.Config
	Dispatcher Dispatcher
	// TransportOptions are applied to every per-update transport.
	TransportOptions []telegram.TransportOption
}
