package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/edgard/halalbot/internal/database"
)

// newSQLMaintenanceTask creates the task that compacts the SQLite interaction
// store. Stores without SQL maintenance are skipped.
func newSQLMaintenanceTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", SQLMaintenanceTask)

	return func(ctx context.Context) error {
		m, ok := deps.Store.(database.Maintainer)
		if !ok {
			log.DebugContext(ctx, "Interaction store does not support SQL maintenance, skipping")
			return nil
		}

		log.InfoContext(ctx, "Starting scheduled SQL maintenance task...")
		startTime := time.Now()

		err := m.RunSQLMaintenance(ctx)
		duration := time.Since(startTime)
		if err != nil {
			log.ErrorContext(ctx, "SQL maintenance task failed", "error", err, "duration", duration)
			return fmt.Errorf("sql maintenance failed: %w", err)
		}

		log.InfoContext(ctx, "Scheduled SQL maintenance task completed successfully", "duration", duration)
		return nil
	}
}
