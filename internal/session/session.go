// Package session keeps the per-user conversation state: the selected reply
// language and where the user is in the conversation.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/edgard/halalbot/internal/i18n"
)

// ErrNotFound is returned by Store.Get for users without a session.
var ErrNotFound = errors.New("session not found")

// State is the position of a user in the conversation.
type State int

const (
	// StateSelectingLanguage is the initial state; the bot waits for a language choice.
	StateSelectingLanguage State = iota
	// StateReadyForImage accepts product photos for analysis.
	StateReadyForImage
)

func (s State) String() string {
	switch s {
	case StateSelectingLanguage:
		return "selecting_language"
	case StateReadyForImage:
		return "ready_for_image"
	default:
		return "unknown"
	}
}

// Session is the conversation record of one user.
type Session struct {
	UserID    int64         `json:"user_id"`
	ChatID    int64         `json:"chat_id"`
	Language  i18n.Language `json:"language"`
	State     State         `json:"state"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// New returns the default session for a user who has not chosen anything yet.
func New(userID, chatID int64) *Session {
	return &Session{
		UserID:   userID,
		ChatID:   chatID,
		Language: i18n.Default,
		State:    StateSelectingLanguage,
	}
}

// Store persists sessions keyed by user ID. Saves are upserts and the last
// write wins; sessions are never deleted.
type Store interface {
	// Get returns the session of userID or ErrNotFound.
	Get(ctx context.Context, userID int64) (*Session, error)
	// Save inserts or replaces the session.
	Save(ctx context.Context, s *Session) error
}
