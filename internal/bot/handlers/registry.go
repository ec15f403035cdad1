package handlers

import (
	tgbot "github.com/go-telegram/bot"

	"github.com/edgard/halalbot/internal/i18n"
)

// RegisteredHandler represents a handler with its match rule and middleware.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
}

// RegisterAllCommands returns the /start command and one exact-match handler
// per language selector label, keyed by pattern.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)
	common := []tgbot.Middleware{Recover(deps)}

	handlers["/start"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "start",
		Handler:     NewStartHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  common,
	}

	language := NewLanguageHandler(deps)
	for _, label := range i18n.Labels() {
		handlers[label] = RegisteredHandler{
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     label,
			Handler:     language,
			MatchType:   tgbot.MatchTypeExact,
			Middleware:  common,
		}
	}

	return handlers
}
