package database

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/edgard/halalbot/internal/config"
)

// InteractionStore appends interaction records to a persistent backend.
// Implementations open a fresh connection for every append and close it
// before returning.
type InteractionStore interface {
	AppendInteraction(ctx context.Context, rec *Interaction) error
}

// Maintainer is implemented by stores that support periodic maintenance.
type Maintainer interface {
	RunSQLMaintenance(ctx context.Context) error
}

// Backend names reported by Kind.
const (
	BackendSQLite = "sqlite"
	BackendMongo  = "mongodb"
)

// Kind returns the backend selected by a connection string.
func Kind(connectionString string) string {
	s := strings.ToLower(strings.TrimSpace(connectionString))
	if strings.HasPrefix(s, "mongodb://") || strings.HasPrefix(s, "mongodb+srv://") {
		return BackendMongo
	}
	return BackendSQLite
}

// NewInteractionStore builds the store for cfg. SQLite stores have their
// migrations applied before they are returned.
func NewInteractionStore(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (InteractionStore, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	switch Kind(cfg.ConnectionString) {
	case BackendMongo:
		logger.Info("Using MongoDB interaction store", "database", cfg.Name, "collection", cfg.Collection)
		return NewMongoStore(cfg.ConnectionString, cfg.Name, cfg.Collection, logger), nil
	default:
		dsn := SQLiteDSN(cfg.ConnectionString)
		if err := MigrateSQLite(ctx, dsn); err != nil {
			return nil, fmt.Errorf("failed to prepare sqlite store: %w", err)
		}
		logger.Info("Using SQLite interaction store", "path", ExtractDBNameFromPath(dsn), "database", cfg.Name)
		return NewSQLiteStore(dsn, logger), nil
	}
}
