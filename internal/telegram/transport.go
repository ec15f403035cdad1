package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/halalbot/internal/config"
	"github.com/edgard/halalbot/internal/conversation"
	"github.com/edgard/halalbot/internal/errs"
)

const (
	defaultFileServerURL = "https://api.telegram.org"
	sendMessageTimeout   = 10 * time.Second
	maxPhotoSize         = 20 * 1024 * 1024
)

// Transport implements conversation.Transport over a go-telegram bot.
type Transport struct {
	bot        *bot.Bot
	token      string
	fileServer string
	httpClient *http.Client
}

// TransportOption customizes a Transport.
type TransportOption func(*Transport)

// WithFileServerURL points file downloads at another Bot API server.
func WithFileServerURL(url string) TransportOption {
	return func(t *Transport) {
		t.fileServer = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient sets the client used for file downloads.
func WithHTTPClient(c *http.Client) TransportOption {
	return func(t *Transport) {
		t.httpClient = c
	}
}

// NewTransport wraps b. The token is needed to build file download URLs.
func NewTransport(b *bot.Bot, token string, opts ...TransportOption) *Transport {
	t := &Transport{
		bot:        b,
		token:      token,
		fileServer: defaultFileServerURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Send sends an HTML message, optionally as a reply and with the language keyboard.
func (t *Transport) Send(ctx context.Context, r conversation.Reply) (int, error) {
	params := &bot.SendMessageParams{
		ChatID:    r.ChatID,
		Text:      r.Text,
		ParseMode: models.ParseModeHTML,
	}
	if r.ReplyTo > 0 {
		params.ReplyParameters = &models.ReplyParameters{MessageID: r.ReplyTo, AllowSendingWithoutReply: true}
	}
	if r.Keyboard {
		params.ReplyMarkup = LanguageKeyboard()
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendMessageTimeout)
	defer cancel()

	msg, err := t.bot.SendMessage(sendCtx, params)
	if err != nil {
		return 0, errs.NewTransportError("failed to send message", err)
	}
	return msg.ID, nil
}

// Edit replaces the text of a sent message.
func (t *Transport) Edit(ctx context.Context, chatID int64, messageID int, text string) error {
	sendCtx, cancel := context.WithTimeout(ctx, sendMessageTimeout)
	defer cancel()

	_, err := t.bot.EditMessageText(sendCtx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return errs.NewTransportError("failed to edit message", err)
	}
	return nil
}

// Download resolves fileID and streams the file into w.
func (t *Transport) Download(ctx context.Context, fileID string, w io.Writer) error {
	if fileID == "" {
		return errs.NewTransportError("empty file ID", nil)
	}

	downloadCtx, cancel := context.WithTimeout(ctx, config.PhotoDownloadTimeout)
	defer cancel()

	fileObj, err := t.bot.GetFile(downloadCtx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return errs.NewTransportError("failed to get file", err)
	}
	if fileObj.FilePath == "" {
		return errs.NewTransportError("empty file path returned from Telegram", nil)
	}

	url := fmt.Sprintf("%s/file/bot%s/%s", t.fileServer, t.token, fileObj.FilePath)
	req, err := http.NewRequestWithContext(downloadCtx, http.MethodGet, url, nil)
	if err != nil {
		return errs.NewTransportError("failed to create download request", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return errs.NewTransportError("failed to download file", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errs.NewTransportError(fmt.Sprintf("unexpected status code %d", resp.StatusCode), nil)
	}

	n, err := io.Copy(w, io.LimitReader(resp.Body, maxPhotoSize+1))
	if err != nil {
		return errs.NewTransportError("failed to read file data", err)
	}
	switch {
	case n == 0:
		return errs.NewTransportError("received empty file data", nil)
	case n > maxPhotoSize:
		return errs.NewTransportError("file exceeds size limit", nil)
	}
	return nil
}

var _ conversation.Transport = (*Transport)(nil)
