package handlers

import (
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/edgard/halalbot/internal/conversation"
)

// eventFromMessage converts a Telegram message into a conversation event.
func eventFromMessage(kind conversation.EventKind, msg *models.Message) conversation.Event {
	ev := conversation.Event{
		Kind:      kind,
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text:      msg.Text,
	}
	if msg.From != nil {
		ev.UserID = msg.From.ID
		ev.DisplayName = displayName(msg.From)
	} else {
		// Channel posts and anonymous admins carry no sender; key them by chat.
		ev.UserID = msg.Chat.ID
	}
	for _, p := range msg.Photo {
		ev.Photos = append(ev.Photos, conversation.Photo{
			FileID:   p.FileID,
			Width:    p.Width,
			Height:   p.Height,
			FileSize: int64(p.FileSize),
		})
	}
	return ev
}

func displayName(u *models.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	return u.Username
}
