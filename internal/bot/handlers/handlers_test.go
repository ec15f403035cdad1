package handlers

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/halalbot/internal/config"
	"github.com/edgard/halalbot/internal/conversation"
	"github.com/edgard/halalbot/internal/i18n"
)

type fakeDispatcher struct {
	mu         sync.Mutex
	events     []conversation.Event
	transports []conversation.Transport
	panicWith  any
}

func (f *fakeDispatcher) Handle(_ context.Context, t conversation.Transport, ev conversation.Event) {
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	f.transports = append(f.transports, t)
}

func testDeps(d Dispatcher) HandlerDeps {
	return HandlerDeps{
		Logger:     slog.New(slog.DiscardHandler),
		Config:     &config.Config{Telegram: config.TelegramConfig{Token: "token"}},
		Dispatcher: d,
	}
}

func message() *models.Message {
	return &models.Message{
		ID:   10,
		Chat: models.Chat{ID: 500, Type: models.ChatTypePrivate},
		From: &models.User{ID: 42, FirstName: "Ali", LastName: "Valiyev", Username: "ali"},
	}
}

func TestEventFromMessage(t *testing.T) {
	t.Parallel()

	msg := message()
	msg.Photo = []models.PhotoSize{
		{FileID: "a", Width: 90, Height: 60, FileSize: 1200},
		{FileID: "b", Width: 1280, Height: 853, FileSize: 98000},
	}

	ev := eventFromMessage(conversation.EventPhoto, msg)
	assert.Equal(t, conversation.EventPhoto, ev.Kind)
	assert.Equal(t, int64(42), ev.UserID)
	assert.Equal(t, int64(500), ev.ChatID)
	assert.Equal(t, 10, ev.MessageID)
	assert.Equal(t, "Ali Valiyev", ev.DisplayName)
	require.Len(t, ev.Photos, 2)
	assert.Equal(t, conversation.Photo{FileID: "b", Width: 1280, Height: 853, FileSize: 98000}, ev.Photos[1])
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		user models.User
		want string
	}{
		{name: "first and last", user: models.User{FirstName: "Ali", LastName: "Valiyev"}, want: "Ali Valiyev"},
		{name: "first only", user: models.User{FirstName: "Ali"}, want: "Ali"},
		{name: "username fallback", user: models.User{Username: "ali"}, want: "ali"},
		{name: "nothing", user: models.User{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, displayName(&tt.user))
		})
	}
}

func TestEventFromMessage_NoSender(t *testing.T) {
	t.Parallel()

	msg := message()
	msg.From = nil
	ev := eventFromMessage(conversation.EventText, msg)
	assert.Equal(t, int64(500), ev.UserID)
	assert.Empty(t, ev.DisplayName)
}

func TestDefaultHandler_Routing(t *testing.T) {
	t.Parallel()

	d := &fakeDispatcher{}
	h := NewDefaultHandler(testDeps(d))

	photoMsg := message()
	photoMsg.Photo = []models.PhotoSize{{FileID: "p", Width: 10, Height: 10}}
	h(context.Background(), nil, &models.Update{ID: 1, Message: photoMsg})

	textMsg := message()
	textMsg.Text = "hello"
	h(context.Background(), nil, &models.Update{ID: 2, Message: textMsg})

	stickerMsg := message()
	h(context.Background(), nil, &models.Update{ID: 3, Message: stickerMsg})

	h(context.Background(), nil, &models.Update{ID: 4})

	require.Len(t, d.events, 2)
	assert.Equal(t, conversation.EventPhoto, d.events[0].Kind)
	assert.Equal(t, conversation.EventText, d.events[1].Kind)
	assert.Equal(t, "hello", d.events[1].Text)
	assert.NotNil(t, d.transports[0])
}

func TestStartAndLanguageHandlers(t *testing.T) {
	t.Parallel()

	d := &fakeDispatcher{}
	deps := testDeps(d)

	startMsg := message()
	startMsg.Text = "/start"
	NewStartHandler(deps)(context.Background(), nil, &models.Update{ID: 1, Message: startMsg})

	langMsg := message()
	langMsg.Text = i18n.LabelUzbek
	NewLanguageHandler(deps)(context.Background(), nil, &models.Update{ID: 2, Message: langMsg})

	require.Len(t, d.events, 2)
	assert.Equal(t, conversation.EventStart, d.events[0].Kind)
	assert.Equal(t, conversation.EventText, d.events[1].Kind)
	assert.Equal(t, i18n.LabelUzbek, d.events[1].Text)
}

func TestRecover(t *testing.T) {
	t.Parallel()

	d := &fakeDispatcher{panicWith: "boom"}
	h := NewDefaultHandler(testDeps(d))

	msg := message()
	msg.Text = "hello"
	assert.NotPanics(t, func() {
		h(context.Background(), nil, &models.Update{ID: 1, Message: msg})
	})
}

func TestRegisterAllCommands(t *testing.T) {
	t.Parallel()

	regs := RegisterAllCommands(testDeps(&fakeDispatcher{}))
	require.Len(t, regs, 3)

	start := regs["/start"]
	assert.Equal(t, "start", start.Pattern)
	assert.Equal(t, tgbot.MatchTypeCommandStartOnly, start.MatchType)

	for _, label := range []string{i18n.LabelEnglish, i18n.LabelUzbek} {
		reg, ok := regs[label]
		require.True(t, ok, label)
		assert.Equal(t, label, reg.Pattern)
		assert.Equal(t, tgbot.MatchTypeExact, reg.MatchType)
		assert.Equal(t, tgbot.HandlerTypeMessageText, reg.HandlerType)
		assert.NotNil(t, reg.Handler)
	}
}

func TestApplyMiddleware_Order(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) tgbot.Middleware {
		return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
			return func(ctx context.Context, b *tgbot.Bot, u *models.Update) {
				order = append(order, name)
				next(ctx, b, u)
			}
		}
	}

	h := applyMiddleware(func(context.Context, *tgbot.Bot, *models.Update) {
		order = append(order, "handler")
	}, []tgbot.Middleware{mw("outer"), mw("inner")})
	h(context.Background(), nil, &models.Update{})

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestRegisterHandlers_NilBot(t *testing.T) {
	t.Parallel()

	_, err := RegisterHandlers(nil, nil, RegisterAllCommands(testDeps(&fakeDispatcher{})))
	assert.Error(t, err)
}
