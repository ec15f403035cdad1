package interaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/edgard/halalbot/internal/database"
	"github.com/edgard/halalbot/internal/errs"
)

const appendTimeout = 15 * time.Second

// Recorder appends interaction records. It never fails its caller: every
// error is logged and dropped.
type Recorder struct {
	store     database.InteractionStore
	extractor Extractor
	log       *slog.Logger
	now       func() time.Time
}

// NewRecorder creates a recorder writing to store.
func NewRecorder(store database.InteractionStore, extractor Extractor, logger *slog.Logger) *Recorder {
	if extractor == nil {
		extractor = NewProductTypeExtractor()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		store:     store,
		extractor: extractor,
		log:       logger.With("component", "interaction_recorder"),
		now:       time.Now,
	}
}

// Record stores one interaction for the given analysis text.
func (r *Recorder) Record(ctx context.Context, analysis string, userID int64, displayName string) {
	if err := r.record(ctx, analysis, userID, displayName); err != nil {
		r.log.ErrorContext(ctx, "Failed to record interaction",
			"user_id", userID, "error", err, "code", errs.Code(err))
	}
}

func (r *Recorder) record(ctx context.Context, analysis string, userID int64, displayName string) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errs.NewPersistenceError(fmt.Sprintf("panic while recording interaction: %v", p), nil)
		}
	}()

	rec := &database.Interaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		DisplayName: displayName,
		CreatedAt:   r.now().UTC(),
	}
	if pt, ok := r.extractor.ProductType(analysis); ok {
		rec.ProductType = &pt
	}

	appendCtx, cancel := context.WithTimeout(ctx, appendTimeout)
	defer cancel()

	if err := r.store.AppendInteraction(appendCtx, rec); err != nil {
		return err
	}

	r.log.DebugContext(ctx, "Interaction recorded", "id", rec.ID, "user_id", userID, "has_product_type", rec.ProductType != nil)
	return nil
}
