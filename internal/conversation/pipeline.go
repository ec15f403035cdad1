package conversation

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/edgard/halalbot/internal/errs"
	"github.com/edgard/halalbot/internal/i18n"
	"github.com/edgard/halalbot/internal/report"
)

// TempFilePattern names the image artifacts written to the media directory.
const TempFilePattern = "temp_*.jpg"

// analyze runs the photo pipeline and always ends with exactly one final reply:
// the report or the localized error message.
func (m *Machine) analyze(ctx context.Context, t Transport, ev Event, lang i18n.Language, log *slog.Logger) {
	c := i18n.Lookup(lang)
	start := time.Now()

	statusID := m.send(ctx, t, log, Reply{ChatID: ev.ChatID, ReplyTo: ev.MessageID, Text: c.Processing})

	analysis, err := m.runAnalysis(ctx, t, ev, lang, statusID, log)
	if err != nil {
		log.ErrorContext(ctx, "Image analysis failed", "error", err, "code", errs.Code(err), "duration", time.Since(start))
		m.send(ctx, t, log, Reply{ChatID: ev.ChatID, ReplyTo: ev.MessageID, Text: c.Error})
		return
	}

	m.recording.Add(1)
	go func() {
		defer m.recording.Done()
		m.recorder.Record(context.WithoutCancel(ctx), analysis, ev.UserID, ev.DisplayName)
	}()

	log.InfoContext(ctx, "Image analysis completed", "language", string(lang), "duration", time.Since(start))
	m.send(ctx, t, log, Reply{ChatID: ev.ChatID, ReplyTo: ev.MessageID, Text: report.Format(lang, analysis)})
}

func (m *Machine) runAnalysis(ctx context.Context, t Transport, ev Event, lang i18n.Language, statusID int, log *slog.Logger) (string, error) {
	photo, ok := largestPhoto(ev.Photos)
	if !ok {
		return "", errs.NewTransportError("photo message without photo sizes", nil)
	}

	if err := os.MkdirAll(m.opts.MediaDir, 0o750); err != nil {
		return "", errs.NewTransportError("failed to create media directory", err)
	}

	f, err := os.CreateTemp(m.opts.MediaDir, TempFilePattern)
	if err != nil {
		return "", errs.NewTransportError("failed to create temporary image file", err)
	}
	path := f.Name()
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.WarnContext(ctx, "Failed to remove temporary image file", "path", path, "error", err)
		}
	}()

	if err := t.Download(ctx, photo.FileID, f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", errs.NewTransportError("failed to write temporary image file", err)
	}

	if statusID != 0 {
		if err := t.Edit(ctx, ev.ChatID, statusID, i18n.Lookup(lang).Analyzing); err != nil {
			log.WarnContext(ctx, "Failed to update status message", "error", err)
		}
	}

	analyzeCtx, cancel := context.WithTimeout(ctx, m.opts.AnalysisTimeout)
	defer cancel()

	return m.analyzer.Analyze(analyzeCtx, path, lang)
}
