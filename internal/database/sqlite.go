package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/edgard/halalbot/internal/errs"
)

// SQLiteStore appends interactions to the interaction_records table.
type SQLiteStore struct {
	dsn    string
	logger *slog.Logger
}

// NewSQLiteStore creates a store for dsn. The schema must already be migrated.
func NewSQLiteStore(dsn string, logger *slog.Logger) *SQLiteStore {
	return &SQLiteStore{
		dsn:    dsn,
		logger: logger.With("component", "store", "backend", BackendSQLite),
	}
}

// AppendInteraction connects, inserts rec and disconnects.
func (s *SQLiteStore) AppendInteraction(ctx context.Context, rec *Interaction) error {
	if rec == nil {
		return errs.NewPersistenceError("cannot save nil interaction", nil)
	}
	if rec.UserID == 0 {
		return errs.NewPersistenceError("interaction must have a non-zero user id", nil)
	}

	db, err := OpenSQLite(ctx, s.dsn)
	if err != nil {
		return errs.NewPersistenceError("failed to open sqlite", err)
	}
	defer CloseDB(db)

	query := `
        INSERT INTO interaction_records (id, tg_user_id, tg_user_fullname, created_date, product_type)
        VALUES (:id, :tg_user_id, :tg_user_fullname, :created_date, :product_type);
    `
	result, err := db.NamedExecContext(ctx, query, rec)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving interaction", "user_id", rec.UserID, "error", err)
		return errs.NewPersistenceError(fmt.Sprintf("failed to save interaction for user %d", rec.UserID), err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected != 1 {
		s.logger.WarnContext(ctx, "Unexpected number of rows affected when saving interaction",
			"user_id", rec.UserID, "affected", affected)
	}

	s.logger.DebugContext(ctx, "Interaction saved", "id", rec.ID, "user_id", rec.UserID)
	return nil
}

// RunSQLMaintenance executes VACUUM on the SQLite database.
func (s *SQLiteStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	db, err := OpenSQLite(ctx, s.dsn)
	if err != nil {
		return errs.NewPersistenceError("failed to open sqlite", err)
	}
	defer CloseDB(db)

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")
	if _, err := db.ExecContext(ctx, "VACUUM;"); err != nil {
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)
	}
	s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed successfully")
	return nil
}

var (
	_ InteractionStore = (*SQLiteStore)(nil)
	_ Maintainer       = (*SQLiteStore)(nil)
)
