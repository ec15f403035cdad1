package conversation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/edgard/halalbot/internal/errs"
	"github.com/edgard/halalbot/internal/i18n"
	"github.com/edgard/halalbot/internal/session"
)

// Analyzer turns a stored product image into a free-text analysis.
type Analyzer interface {
	Analyze(ctx context.Context, imagePath string, lang i18n.Language) (string, error)
}

// InteractionRecorder stores analytics for a finished analysis. It must not
// report failures to the caller.
type InteractionRecorder interface {
	Record(ctx context.Context, analysis string, userID int64, displayName string)
}

// Options tunes the analysis pipeline.
type Options struct {
	// MediaDir holds the temporary image artifacts.
	MediaDir string
	// AnalysisTimeout bounds a single Analyzer call.
	AnalysisTimeout time.Duration
}

// Machine applies inbound events to user sessions.
type Machine struct {
	sessions session.Store
	analyzer Analyzer
	recorder InteractionRecorder
	opts     Options
	log      *slog.Logger

	locks     sync.Map // user ID -> *sync.Mutex
	recording sync.WaitGroup
}

// NewMachine creates a Machine.
func NewMachine(sessions session.Store, analyzer Analyzer, recorder InteractionRecorder, opts Options, logger *slog.Logger) *Machine {
	if opts.AnalysisTimeout <= 0 {
		opts.AnalysisTimeout = 2 * time.Minute
	}
	if opts.MediaDir == "" {
		opts.MediaDir = "media"
	}
	return &Machine{
		sessions: sessions,
		analyzer: analyzer,
		recorder: recorder,
		opts:     opts,
		log:      logger.With("component", "conversation"),
	}
}

// Handle processes one event and sends the replies through t.
func (m *Machine) Handle(ctx context.Context, t Transport, ev Event) {
	log := m.log.With("user_id", ev.UserID, "chat_id", ev.ChatID, "event", ev.Kind.String())

	switch ev.Kind {
	case EventStart:
		m.handleStart(ctx, t, ev, log)
	case EventText:
		if lang, ok := i18n.LanguageForLabel(ev.Text); ok {
			m.handleLanguage(ctx, t, ev, lang, log)
			return
		}
		m.handleOther(ctx, t, ev, log)
	case EventPhoto:
		s := m.load(ctx, ev, log)
		if s.State != session.StateReadyForImage {
			m.send(ctx, t, log, Reply{ChatID: ev.ChatID, ReplyTo: ev.MessageID, Text: i18n.Lookup(s.Language).Welcome, Keyboard: true})
			return
		}
		m.analyze(ctx, t, ev, s.Language, log)
	default:
		log.WarnContext(ctx, "Ignoring event of unknown kind")
	}
}

// Wait blocks until every pending interaction record has been written.
func (m *Machine) Wait() {
	m.recording.Wait()
}

func (m *Machine) handleStart(ctx context.Context, t Transport, ev Event, log *slog.Logger) {
	unlock := m.lock(ev.UserID)
	m.save(ctx, session.New(ev.UserID, ev.ChatID), log)
	unlock()

	log.InfoContext(ctx, "Session started")
	m.send(ctx, t, log, Reply{ChatID: ev.ChatID, ReplyTo: ev.MessageID, Text: i18n.Lookup(i18n.English).Welcome, Keyboard: true})
}

func (m *Machine) handleLanguage(ctx context.Context, t Transport, ev Event, lang i18n.Language, log *slog.Logger) {
	unlock := m.lock(ev.UserID)
	s := m.load(ctx, ev, log)
	s.Language = lang
	s.State = session.StateReadyForImage
	m.save(ctx, s, log)
	unlock()

	log.InfoContext(ctx, "Language selected", "language", string(lang))
	m.send(ctx, t, log, Reply{ChatID: ev.ChatID, ReplyTo: ev.MessageID, Text: i18n.Lookup(lang).LanguageSelected, Keyboard: true})
}

func (m *Machine) handleOther(ctx context.Context, t Transport, ev Event, log *slog.Logger) {
	s := m.load(ctx, ev, log)
	c := i18n.Lookup(s.Language)

	if s.State == session.StateReadyForImage {
		m.send(ctx, t, log, Reply{ChatID: ev.ChatID, ReplyTo: ev.MessageID, Text: c.SendImage})
		return
	}
	m.send(ctx, t, log, Reply{ChatID: ev.ChatID, ReplyTo: ev.MessageID, Text: c.Welcome, Keyboard: true})
}

// load returns the stored session or a fresh default one. Store failures are
// logged and treated like a missing session.
func (m *Machine) load(ctx context.Context, ev Event, log *slog.Logger) *session.Session {
	s, err := m.sessions.Get(ctx, ev.UserID)
	if err == nil {
		return s
	}
	if !errors.Is(err, session.ErrNotFound) {
		log.ErrorContext(ctx, "Failed to load session", "error", err, "code", errs.Code(err))
	}
	return session.New(ev.UserID, ev.ChatID)
}

func (m *Machine) save(ctx context.Context, s *session.Session, log *slog.Logger) {
	if err := m.sessions.Save(ctx, s); err != nil {
		log.ErrorContext(ctx, "Failed to save session", "error", err, "code", errs.Code(err))
	}
}

func (m *Machine) send(ctx context.Context, t Transport, log *slog.Logger, r Reply) int {
	id, err := t.Send(ctx, r)
	if err != nil {
		log.ErrorContext(ctx, "Failed to send reply", "error", err, "code", errs.Code(err))
		return 0
	}
	return id
}

// lock serializes session updates of one user. Entries in locks are never
// pruned, so the map grows with the number of distinct users, like the
// session store, which never deletes sessions either.
func (m *Machine) lock(userID int64) func() {
	v, _ := m.locks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
