// Package conversation drives the per-user dialogue: language selection and
// the product image analysis pipeline. It talks to the chat platform only
// through the Transport interface.
package conversation

import (
	"context"
	"io"
)

// EventKind classifies an inbound update.
type EventKind int

const (
	// EventStart is the /start command.
	EventStart EventKind = iota
	// EventText is any other text message.
	EventText
	// EventPhoto is a message carrying a photo.
	EventPhoto
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventText:
		return "text"
	case EventPhoto:
		return "photo"
	default:
		return "unknown"
	}
}

// Photo is one resolution variant of an uploaded photo.
type Photo struct {
	FileID   string
	Width    int
	Height   int
	FileSize int64
}

// Event is a platform-neutral inbound message.
type Event struct {
	Kind        EventKind
	UserID      int64
	ChatID      int64
	MessageID   int
	DisplayName string
	Text        string
	Photos      []Photo
}

// Reply is an outbound message. Keyboard attaches the language selector.
type Reply struct {
	ChatID   int64
	ReplyTo  int
	Text     string
	Keyboard bool
}

// Transport sends messages and fetches files on the chat platform.
type Transport interface {
	// Send delivers r and returns the platform message ID.
	Send(ctx context.Context, r Reply) (int, error)
	// Edit replaces the text of a previously sent message.
	Edit(ctx context.Context, chatID int64, messageID int, text string) error
	// Download writes the content of fileID to w.
	Download(ctx context.Context, fileID string, w io.Writer) error
}

// largestPhoto returns the variant with the most pixels, breaking ties by file size.
func largestPhoto(photos []Photo) (Photo, bool) {
	if len(photos) == 0 {
		return Photo{}, false
	}
	best := photos[0]
	for _, p := range photos[1:] {
		area, bestArea := p.Width*p.Height, best.Width*best.Height
		if area > bestArea || (area == bestArea && p.FileSize > best.FileSize) {
			best = p
		}
	}
	return best, true
}
